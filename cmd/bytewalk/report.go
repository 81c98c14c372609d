package main

import (
	"fmt"
	"os"

	"github.com/praetorian-inc/bytewalk/pkg/config"
	"github.com/praetorian-inc/bytewalk/pkg/store"
	"github.com/spf13/cobra"
)

type reportOptions struct {
	*globalOptions

	datastore string
	format    string
	color     string
}

func newReportCmd(global *globalOptions) *cobra.Command {
	opts := &reportOptions{globalOptions: global}
	defaults := config.Default()

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Generate a report from check results",
		Long:  "Read diagnostics from a datastore written by 'check --output' and render them",
		Args:  cobra.NoArgs,
		RunE:  opts.run,
	}

	cmd.Flags().StringVar(&opts.datastore, "datastore", "bytewalk.db", "Path to datastore file")
	cmd.Flags().StringVar(&opts.format, "format", defaults.Format, "Output format: human, json, sarif")
	cmd.Flags().StringVar(&opts.color, "color", defaults.Color, "Color output: auto, always, never")

	return cmd
}

func (o *reportOptions) run(cmd *cobra.Command, args []string) error {
	cfg, err := o.loadConfig()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("format") {
		cfg.Format = o.format
	}
	if cmd.Flags().Changed("color") {
		cfg.Color = o.color
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	if o.datastore == ":memory:" {
		return fmt.Errorf("cannot report from in-memory store")
	}
	info, err := os.Stat(o.datastore)
	if err != nil {
		return fmt.Errorf("datastore not found: %s", o.datastore)
	}
	if info.IsDir() {
		return fmt.Errorf("datastore is a directory: %s", o.datastore)
	}

	s, err := store.New(store.Config{Path: o.datastore})
	if err != nil {
		return fmt.Errorf("opening datastore: %w", err)
	}
	defer s.Close()

	diags, err := storedDiagnostics(s)
	if err != nil {
		return err
	}

	if err := writeDiagnostics(cmd.OutOrStdout(), cfg.Format, cfg.Color, diags); err != nil {
		return err
	}

	if o.quiet {
		return nil
	}

	stats, err := s.Stats()
	if err != nil {
		return fmt.Errorf("reading stats: %w", err)
	}
	summaryOut := cmd.OutOrStdout()
	if cfg.Format != "human" {
		summaryOut = cmd.ErrOrStderr()
	}
	st := newStyles(colorEnabled(cfg.Color, summaryOut))
	fmt.Fprintf(summaryOut, "%s %d blobs, %d diagnostics in %s\n",
		st.heading.Sprint("Datastore:"), stats.Blobs, stats.Diagnostics, o.datastore)
	return nil
}
