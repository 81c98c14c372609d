package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/praetorian-inc/bytewalk/pkg/location"
	"github.com/spf13/cobra"
)

type locateOptions struct {
	oneBased bool
	json     bool
}

func newLocateCmd() *cobra.Command {
	opts := &locateOptions{}

	cmd := &cobra.Command{
		Use:   "locate <file> <offset>...",
		Short: "Translate byte offsets into line:column positions",
		Long: `Translate byte offsets in a file into line:column positions.

Lines are split on LF, CR and CRLF. Columns count characters, so a multibyte
UTF-8 character counts once. Positions are zero-indexed unless --one-based is
given. Use "-" as the file to read from stdin.`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(cmd, args[0], args[1:])
		},
	}

	cmd.Flags().BoolVar(&opts.oneBased, "one-based", false, "Report 1-based lines and columns")
	cmd.Flags().BoolVar(&opts.json, "json", false, "Output JSON")

	return cmd
}

// locatedOffset is one resolved offset.
type locatedOffset struct {
	Offset int `json:"offset"`
	Line   int `json:"line"`
	Column int `json:"column"`
}

func (o *locateOptions) run(cmd *cobra.Command, path string, args []string) error {
	offsets := make([]int, len(args))
	for i, arg := range args {
		n, err := strconv.Atoi(arg)
		if err != nil {
			return fmt.Errorf("invalid offset %q: %w", arg, err)
		}
		offsets[i] = n
	}

	content, err := readInput(cmd, path)
	if err != nil {
		return err
	}

	results := make([]locatedOffset, len(offsets))
	for i, offset := range offsets {
		if offset < 0 || offset > len(content) {
			return fmt.Errorf("offset %d out of range: %s is %d bytes", offset, path, len(content))
		}
		line, column := location.Compute(content, offset)
		if o.oneBased {
			line++
			column++
		}
		results[i] = locatedOffset{Offset: offset, Line: line, Column: column}
	}

	out := cmd.OutOrStdout()
	if o.json {
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		return encoder.Encode(results)
	}
	for _, r := range results {
		fmt.Fprintf(out, "%d: %d:%d\n", r.Offset, r.Line, r.Column)
	}
	return nil
}

func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "-" {
		content, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}
		return content, nil
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return content, nil
}
