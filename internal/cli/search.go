package cli

import (
	"errors"
	"strings"

	"content-indexer/internal/client"

	"github.com/spf13/cobra"
)

func newSearchCommand(a *app) *cobra.Command {
	var (
		opts       client.SearchOptions
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "search QUERY",
		Short: "Search entries by title and field text",
		Long: `Search entries with a case-insensitive substring match.

A title match scores 0.8, a match anywhere in the entry fields 0.6, and both 1.4.
Multiple arguments are joined with spaces.

Examples:
  indexctl search rain
  indexctl search "high top" --content-type product --limit 5`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := strings.Join(args, " ")
			if strings.TrimSpace(query) == "" {
				return errors.New("query must not be blank")
			}
			if opts.Limit < 0 {
				return errors.New("--limit must not be negative")
			}

			res, err := a.client.Search(cmd.Context(), query, opts)
			if err != nil {
				return err
			}
			if jsonOutput {
				return a.printer.JSON(res.Entries)
			}

			if len(res.Entries) == 0 {
				a.printer.Info("No entries match %q", query)
				return nil
			}
			table := a.newTable("SCORE", "UID", "TITLE", "CONTENT TYPE", "LOCALE")
			for _, e := range res.Entries {
				table.AddRow(a.printer.Score(e.SimilarityScore), a.printer.Bold(e.UID), e.Title, e.ContentTypeUID, orDash(e.Locale))
			}
			if err := table.Render(); err != nil {
				return err
			}
			if res.Stats != nil {
				a.printer.Info("%d of %d entries matched %q", len(res.Entries), res.Stats.TotalEntries, query)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&opts.ContentType, "content-type", "", "only entries of this content type uid")
	cmd.Flags().StringVar(&opts.Locale, "locale", "", "only entries in this locale")
	cmd.Flags().IntVar(&opts.Limit, "limit", 0, "maximum number of results (server default when 0)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "output as JSON")
	return cmd
}
