// Package cli implements the indexctl commands.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"content-indexer/internal/client"
	"content-indexer/internal/output"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// app is the state shared by every command once the config is loaded.
type app struct {
	cfgFile string
	verbose bool

	v       *viper.Viper
	cfg     *Config
	logger  *slog.Logger
	printer *output.Printer
	client  *client.Client
}

// NewRootCommand builds the indexctl command tree.
func NewRootCommand(version string) *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "indexctl",
		Short: "Operator CLI for the content-indexer service",
		Long: `indexctl inspects and drives a running content-indexer.

Example usage:
  indexctl stats                          # Entry count, content types and locales
  indexctl search "running shoes"         # Ranked substring search
  indexctl list --content-type product    # Browse one content type
  indexctl send --file webhook.json       # Deliver a webhook payload
  indexctl watch                          # Follow index changes live`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file (default is .indexctl.yaml)")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "verbose output")
	flags.String("server", "", "content-indexer base URL (default http://localhost:3001)")
	flags.Duration("timeout", 0, "request timeout (default 10s)")
	flags.String("color", "", "color output: auto, always or never")
	flags.BoolP("quiet", "q", false, "suppress informational output")

	root.AddCommand(
		newStatsCommand(a),
		newListCommand(a),
		newSearchCommand(a),
		newClearCommand(a),
		newSeedCommand(a),
		newSendCommand(a),
		newWatchCommand(a),
	)
	return root
}

func (a *app) init(cmd *cobra.Command) error {
	level := slog.LevelInfo
	if a.verbose {
		level = slog.LevelDebug
	}
	a.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

	a.v = newViper(a.cfgFile)
	flags := cmd.Root().PersistentFlags()
	for key, name := range map[string]string{
		"server.url":     "server",
		"server.timeout": "timeout",
		"output.color":   "color",
		"output.quiet":   "quiet",
	} {
		if err := a.v.BindPFlag(key, flags.Lookup(name)); err != nil {
			return fmt.Errorf("binding --%s: %w", name, err)
		}
	}

	cfg, err := loadConfig(a.v)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	a.cfg = cfg

	mode, _ := output.ParseColorMode(cfg.Output.Color)
	useColors := output.ResolveColors(mode)
	color.NoColor = !useColors
	a.printer = output.NewPrinter(cmd.OutOrStdout(), cmd.ErrOrStderr(), useColors, cfg.Output.Quiet)
	a.client = client.New(cfg.Server.URL, cfg.Server.Timeout)

	a.logger.Debug("configuration loaded",
		"config_file", a.v.ConfigFileUsed(),
		"server_url", cfg.Server.URL,
		"timeout", cfg.Server.Timeout,
	)
	return nil
}

// Execute runs indexctl and prints a failure to errOut. It returns the
// process exit code.
func Execute(ctx context.Context, version string, args []string, in io.Reader, out, errOut io.Writer) int {
	root := NewRootCommand(version)
	root.SetArgs(args)
	root.SetIn(in)
	root.SetOut(out)
	root.SetErr(errOut)
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(errOut, "Error: %v\n", err)
		return 1
	}
	return 0
}

func (a *app) newTable(headers ...string) *output.Table {
	return output.NewTable(a.printer.Out(), headers, a.printer.IsQuiet())
}
