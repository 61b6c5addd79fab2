package cli

import (
	"encoding/json"
	"time"

	"content-indexer/domain"
	"content-indexer/internal/client"

	"github.com/spf13/cobra"
)

func newWatchCommand(a *app) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Follow index changes as they happen",
		Long: `Follow /api/events. The stream starts with a snapshot of the index and then
prints one line per upsert, removal or clear. Dropped connections are retried.
Stop with Ctrl-C.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := client.WatchOptions{
				MaxRetryInterval: 30 * time.Second,
				OnReconnect: func(err error, wait time.Duration) {
					a.printer.Warning("change stream lost (%v), reconnecting in %s", err, wait.Round(time.Millisecond))
				},
			}
			enc := json.NewEncoder(a.printer.Out())
			return a.client.Watch(cmd.Context(), opts, func(ev domain.ChangeEvent) error {
				if jsonOutput {
					return enc.Encode(ev)
				}
				a.printChange(ev)
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "print each event as a JSON line")
	return cmd
}

func (a *app) printChange(ev domain.ChangeEvent) {
	ts := ev.Timestamp.Local().Format(time.TimeOnly)
	switch ev.Type {
	case domain.ChangeSnapshot:
		a.printer.Info("%s %s %d entries, content types: %s",
			a.printer.Dim(ts), a.printer.EventBadge(string(ev.Type)), ev.Stats.TotalEntries, joinOrDash(ev.Stats.ContentTypes))
	case domain.ChangeEntryUpsert:
		title := ""
		if ev.Entry != nil {
			title = ev.Entry.Title
		}
		a.printer.Print("%s %s %s %q (%s, total %d)",
			a.printer.Dim(ts), a.printer.EventBadge(string(ev.Type)), a.printer.Bold(ev.UID), title, ev.Event, ev.Stats.TotalEntries)
	case domain.ChangeEntryRemoved:
		a.printer.Print("%s %s %s (%s, total %d)",
			a.printer.Dim(ts), a.printer.EventBadge(string(ev.Type)), a.printer.Bold(ev.UID), ev.Event, ev.Stats.TotalEntries)
	default:
		a.printer.Print("%s %s total %d",
			a.printer.Dim(ts), a.printer.EventBadge(string(ev.Type)), ev.Stats.TotalEntries)
	}
}
