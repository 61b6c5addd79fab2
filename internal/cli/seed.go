package cli

import (
	"github.com/spf13/cobra"
)

func newSeedCommand(a *app) *cobra.Command {
	var catalog bool

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load sample content",
		Long: `Replay three sample entry.published webhooks through the normal ingest path.
With --catalog, load the five-entry demo catalog instead.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if catalog {
				res, err := a.client.InitIndex(cmd.Context())
				if err != nil {
					return err
				}
				a.printer.Success("%s (%d entries)", res.Message, res.Stats.TotalEntries)
				return nil
			}

			res, err := a.client.SeedTestData(cmd.Context())
			if err != nil {
				return err
			}
			for _, title := range res.Entries {
				a.printer.Print("  • %s", title)
			}
			a.printer.Success("Replayed %d sample webhooks (%d entries indexed)", len(res.Entries), res.Stats.TotalEntries)
			return nil
		},
	}
	cmd.Flags().BoolVar(&catalog, "catalog", false, "load the demo catalog instead of replaying webhooks")
	return cmd
}
