package main

import (
	"context"
	"errors"
	"os/signal"
	"syscall"

	"github.com/praetorian-inc/bytewalk/pkg/check"
	"github.com/praetorian-inc/bytewalk/pkg/serve"
	"github.com/spf13/cobra"
)

type serveOptions struct {
	*globalOptions
}

func newServeCmd(global *globalOptions) *cobra.Command {
	opts := &serveOptions{globalOptions: global}

	return &cobra.Command{
		Use:   "serve",
		Short: "Run as a streaming NDJSON server",
		Long: `Run bytewalk as a long-lived server that reads check and locate requests
from stdin and writes one response per line to stdout using NDJSON.

The process serves requests until stdin closes, a "close" request arrives or
SIGTERM is received. max_diagnostics from the config file applies to every
check.`,
		Args: cobra.NoArgs,
		RunE: opts.run,
	}
}

func (o *serveOptions) run(cmd *cobra.Command, args []string) error {
	cfg, err := o.loadConfig()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	srv := serve.NewServer(check.New(check.Options{MaxDiagnostics: cfg.MaxDiagnostics}), cmd.InOrStdin(), cmd.OutOrStdout())
	if err := srv.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
