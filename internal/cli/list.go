package cli

import (
	"errors"

	"content-indexer/domain"
	"content-indexer/internal/client"

	"github.com/spf13/cobra"
)

func newListCommand(a *app) *cobra.Command {
	var (
		opts       client.ListOptions
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List indexed entries",
		Long: `List indexed entries, optionally narrowed to one content type or one locale.

Examples:
  indexctl list                         # Every entry
  indexctl list --content-type product  # Products only
  indexctl list --locale fr-fr --json   # French entries as JSON`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.ContentType != "" && opts.Locale != "" {
				return errors.New("--content-type and --locale cannot be combined")
			}
			res, err := a.client.List(cmd.Context(), opts)
			if err != nil {
				return err
			}
			if jsonOutput {
				return a.printer.JSON(res.Entries)
			}
			return a.printEntries(res.Message, res.Entries)
		},
	}
	cmd.Flags().StringVar(&opts.ContentType, "content-type", "", "only entries of this content type uid")
	cmd.Flags().StringVar(&opts.Locale, "locale", "", "only entries in this locale")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "output as JSON")
	return cmd
}

func (a *app) printEntries(message string, entries []domain.Entry) error {
	if len(entries) == 0 {
		a.printer.Info("%s", message)
		return nil
	}
	table := a.newTable("UID", "TITLE", "CONTENT TYPE", "LOCALE", "UPDATED")
	for _, e := range entries {
		table.AddRow(a.printer.Bold(e.UID), e.Title, e.ContentTypeUID, orDash(e.Locale), orDash(e.UpdatedAt))
	}
	if err := table.Render(); err != nil {
		return err
	}
	a.printer.Info("%s", message)
	return nil
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
