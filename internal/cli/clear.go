package cli

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newClearCommand(a *app) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove every entry from the index",
		Long: `Remove every entry from the index. Connected watchers receive an
index.cleared event. The index is rebuilt only by new webhooks or a seed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				fmt.Fprintf(cmd.OutOrStdout(), "Clear the index at %s? [y/N] ", a.cfg.Server.URL)
				answer, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if reply := strings.ToLower(strings.TrimSpace(answer)); reply != "y" && reply != "yes" {
					fmt.Fprintln(cmd.OutOrStdout(), "aborted")
					return nil
				}
			}

			res, err := a.client.Clear(cmd.Context())
			if err != nil {
				return err
			}
			a.printer.Success("Index cleared, %d entries removed", res.Removed)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")
	return cmd
}
