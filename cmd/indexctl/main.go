// Command indexctl is the operator CLI for content-indexer.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"content-indexer/internal/cli"
)

// version is set at build time via ldflags
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := cli.Execute(ctx, version, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}
