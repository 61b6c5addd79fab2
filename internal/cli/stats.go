package cli

import (
	"strconv"
	"strings"

	"content-indexer/domain"

	"github.com/spf13/cobra"
)

func newStatsCommand(a *app) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show index statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := a.client.Stats(cmd.Context())
			if err != nil {
				return err
			}
			if jsonOutput {
				return a.printer.JSON(res.Stats)
			}
			return a.printStats(res.Stats)
		},
	}
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "output as JSON")
	return cmd
}

func (a *app) printStats(stats domain.IndexStats) error {
	a.printer.Header("Index")
	table := a.newTable("METRIC", "VALUE")
	table.AddRow("entries", strconv.Itoa(stats.TotalEntries))
	table.AddRow("content types", joinOrDash(stats.ContentTypes))
	table.AddRow("locales", joinOrDash(stats.Locales))
	return table.Render()
}

func joinOrDash(values []string) string {
	if len(values) == 0 {
		return "-"
	}
	return strings.Join(values, ", ")
}
