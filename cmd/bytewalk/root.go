package main

import (
	"fmt"

	"github.com/praetorian-inc/bytewalk/pkg/config"
	"github.com/spf13/cobra"
)

// globalOptions holds the persistent flags shared by every subcommand.
type globalOptions struct {
	verbose    bool
	quiet      bool
	configPath string
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}

	cmd := &cobra.Command{
		Use:   "bytewalk",
		Short: "bytewalk - UTF-8 validator and byte offset locator",
		Long: `bytewalk walks files one character at a time and reports every malformed
UTF-8 sequence with its byte range and line:column position.

It can also translate raw byte offsets (from a parser, a stack trace or a
binary diff) into line:column positions.`,
		SilenceUsage: true,
	}

	pf := cmd.PersistentFlags()
	pf.BoolVarP(&opts.verbose, "verbose", "v", false, "Verbose output")
	pf.BoolVarP(&opts.quiet, "quiet", "q", false, "Quiet mode (errors only)")
	pf.StringVar(&opts.configPath, "config", "", "Path to config file (default "+config.DefaultFile+" if present)")
	cmd.MarkFlagsMutuallyExclusive("verbose", "quiet")

	cmd.AddCommand(newCheckCmd(opts))
	cmd.AddCommand(newLocateCmd())
	cmd.AddCommand(newReportCmd(opts))
	cmd.AddCommand(newServeCmd(opts))
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// loadConfig reads the config file named by --config, or the default file.
func (o *globalOptions) loadConfig() (config.Config, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return config.Config{}, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// Execute runs the root command.
func Execute() error {
	return newRootCmd().Execute()
}
