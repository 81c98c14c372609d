package main

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/dustin/go-humanize"
	"github.com/praetorian-inc/bytewalk/pkg/check"
	"github.com/praetorian-inc/bytewalk/pkg/config"
	"github.com/praetorian-inc/bytewalk/pkg/enum"
	"github.com/praetorian-inc/bytewalk/pkg/store"
	"github.com/praetorian-inc/bytewalk/pkg/types"
	"github.com/spf13/cobra"
)

type checkOptions struct {
	*globalOptions

	output         string
	format         string
	color          string
	maxFileSize    int64
	maxDiagnostics int
	includeHidden  bool
	includeBinary  bool
	exclude        []string
	incremental    bool
	fail           bool
	workers        int
}

func newCheckCmd(global *globalOptions) *cobra.Command {
	opts := &checkOptions{globalOptions: global}
	defaults := config.Default()

	cmd := &cobra.Command{
		Use:   "check <target>...",
		Short: "Check files for malformed UTF-8",
		Long: `Check files or directories for malformed UTF-8 sequences.

Each file is walked one character at a time; every sequence that cannot be
decoded is reported with its byte range, line:column position and raw bytes.
Use "-" as a target to read from stdin. A file reached through more than
one target is checked once.`,
		Args: cobra.MinimumNArgs(1),
		RunE: opts.run,
	}

	f := cmd.Flags()
	f.StringVar(&opts.output, "output", defaults.Output, "Output database path (:memory: keeps results in memory)")
	f.StringVar(&opts.format, "format", defaults.Format, "Output format: human, json, sarif")
	f.StringVar(&opts.color, "color", defaults.Color, "Color output: auto, always, never")
	f.Int64Var(&opts.maxFileSize, "max-file-size", defaults.MaxFileSize, "Maximum file size to check in bytes (0 = no limit)")
	f.IntVar(&opts.maxDiagnostics, "max-diagnostics", defaults.MaxDiagnostics, "Stop checking a file after this many diagnostics (0 = no limit)")
	f.BoolVar(&opts.includeHidden, "include-hidden", defaults.IncludeHidden, "Include hidden files and directories")
	f.BoolVar(&opts.includeBinary, "include-binary", defaults.IncludeBinary, "Include files that look binary")
	f.StringArrayVar(&opts.exclude, "exclude", nil, "Gitignore-style pattern to skip (repeatable)")
	f.BoolVar(&opts.incremental, "incremental", false, "Skip blobs already recorded in the output database")
	f.BoolVar(&opts.fail, "fail", false, "Exit with an error when malformed UTF-8 is found")
	f.IntVar(&opts.workers, "workers", 0, "Number of parallel file readers (0 = number of CPUs)")

	return cmd
}

// resolveConfig layers explicitly set flags over the config file.
func (o *checkOptions) resolveConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := o.loadConfig()
	if err != nil {
		return config.Config{}, err
	}

	f := cmd.Flags()
	if f.Changed("output") {
		cfg.Output = o.output
	}
	if f.Changed("format") {
		cfg.Format = o.format
	}
	if f.Changed("color") {
		cfg.Color = o.color
	}
	if f.Changed("max-file-size") {
		cfg.MaxFileSize = o.maxFileSize
	}
	if f.Changed("max-diagnostics") {
		cfg.MaxDiagnostics = o.maxDiagnostics
	}
	if f.Changed("include-hidden") {
		cfg.IncludeHidden = o.includeHidden
	}
	if f.Changed("include-binary") {
		cfg.IncludeBinary = o.includeBinary
	}
	cfg.Exclude = append(cfg.Exclude, o.exclude...)

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// checkSummary accumulates totals over every checked blob.
type checkSummary struct {
	files       int
	bytes       int64
	chars       int
	diagnostics int
	badFiles    int
	truncated   int
	skipped     int
}

func (o *checkOptions) run(cmd *cobra.Command, targets []string) error {
	cfg, err := o.resolveConfig(cmd)
	if err != nil {
		return err
	}

	enumerators := make([]enum.Enumerator, 0, len(targets))
	for _, target := range targets {
		e, err := o.enumerator(cmd, target, cfg)
		if err != nil {
			return err
		}
		enumerators = append(enumerators, e)
	}
	enumerator := enumerators[0]
	if len(enumerators) > 1 {
		enumerator = enum.NewCombinedEnumerator(enumerators...)
	}

	s, err := store.New(store.Config{Path: cfg.Output})
	if err != nil {
		return fmt.Errorf("creating store: %w", err)
	}
	defer s.Close()

	checker := check.New(check.Options{MaxDiagnostics: cfg.MaxDiagnostics})
	errOut := cmd.ErrOrStderr()

	// The enumerator invokes the callback from several goroutines; store
	// writes and the summary are serialized, checking is not.
	var (
		mu  sync.Mutex
		sum checkSummary
	)

	err = enumerator.Enumerate(cmd.Context(), func(content []byte, blobID types.BlobID, prov types.Provenance) error {
		mu.Lock()
		if o.incremental {
			exists, err := s.BlobExists(blobID)
			if err != nil {
				mu.Unlock()
				return fmt.Errorf("checking blob: %w", err)
			}
			if exists {
				// Known content at a new path is still reported there.
				err := s.AddProvenance(blobID, prov)
				sum.skipped++
				mu.Unlock()
				if err != nil {
					return fmt.Errorf("storing provenance: %w", err)
				}
				if o.verbose {
					fmt.Fprintf(errOut, "skipped %s (already checked)\n", prov.Path())
				}
				return nil
			}
		}
		if err := s.AddBlob(blobID, int64(len(content))); err != nil {
			mu.Unlock()
			return fmt.Errorf("storing blob: %w", err)
		}
		if err := s.AddProvenance(blobID, prov); err != nil {
			mu.Unlock()
			return fmt.Errorf("storing provenance: %w", err)
		}
		mu.Unlock()

		res := checker.CheckBlob(content, blobID, prov.Path())

		mu.Lock()
		defer mu.Unlock()
		for _, d := range res.Diagnostics {
			if err := s.AddDiagnostic(d); err != nil {
				return fmt.Errorf("storing diagnostic: %w", err)
			}
		}
		sum.add(res)

		if o.verbose {
			fmt.Fprintf(errOut, "%s: %s\n", prov.Path(), describeResult(res))
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("checking: %w", err)
	}

	diags, err := storedDiagnostics(s)
	if err != nil {
		return err
	}

	// Keep stdout pure JSON for machine formats.
	summaryOut := cmd.OutOrStdout()
	if cfg.Format != "human" {
		summaryOut = errOut
	}

	if err := writeDiagnostics(cmd.OutOrStdout(), cfg.Format, cfg.Color, diags); err != nil {
		return err
	}

	if !o.quiet {
		sum.write(summaryOut, newStyles(colorEnabled(cfg.Color, summaryOut)), o.incremental)
		if cfg.Output != ":memory:" {
			fmt.Fprintf(summaryOut, "Results stored in: %s\n", cfg.Output)
		}
	}

	if o.fail && sum.diagnostics > 0 {
		return fmt.Errorf("found %d malformed UTF-8 sequences in %d files", sum.diagnostics, sum.badFiles)
	}
	return nil
}

func (o *checkOptions) enumerator(cmd *cobra.Command, target string, cfg config.Config) (enum.Enumerator, error) {
	if target == "-" {
		return enum.NewReaderEnumerator("<stdin>", cmd.InOrStdin()), nil
	}

	if _, err := os.Stat(target); err != nil {
		return nil, fmt.Errorf("target does not exist: %s", target)
	}

	return enum.NewFilesystemEnumerator(enum.Config{
		Root:           target,
		IncludeHidden:  cfg.IncludeHidden,
		IncludeBinary:  cfg.IncludeBinary,
		MaxFileSize:    cfg.MaxFileSize,
		FollowSymlinks: false,
		Exclude:        cfg.Exclude,
		Workers:        o.workers,
	}), nil
}

func (s *checkSummary) add(res *check.Result) {
	s.files++
	s.bytes += int64(res.Bytes)
	s.chars += res.Chars
	s.diagnostics += len(res.Diagnostics)
	if !res.Valid() {
		s.badFiles++
	}
	if res.Truncated {
		s.truncated++
	}
}

func (s *checkSummary) write(w io.Writer, st *styles, incremental bool) {
	fmt.Fprintf(w, "%s %d files, %s, %d characters\n",
		st.heading.Sprint("Checked"), s.files, humanize.Bytes(uint64(s.bytes)), s.chars)

	if s.diagnostics == 0 {
		fmt.Fprintf(w, "%s\n", st.ok.Sprint("No malformed UTF-8 found."))
	} else {
		fmt.Fprintf(w, "%s\n", st.code.Sprintf("%d malformed sequences in %d files", s.diagnostics, s.badFiles))
	}
	if s.truncated > 0 {
		fmt.Fprintf(w, "%d files stopped early at the diagnostic limit\n", s.truncated)
	}
	if incremental {
		fmt.Fprintf(w, "%d blobs skipped\n", s.skipped)
	}
}

func describeResult(res *check.Result) string {
	if res.Valid() {
		return fmt.Sprintf("ok (%d lines, %d characters)", res.Lines, res.Chars)
	}
	msg := fmt.Sprintf("%d malformed sequences", len(res.Diagnostics))
	if res.Truncated {
		msg += " (stopped at limit)"
	}
	return msg
}
