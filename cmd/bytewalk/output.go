package main

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/fatih/color"
	"github.com/praetorian-inc/bytewalk/pkg/sarif"
	"github.com/praetorian-inc/bytewalk/pkg/store"
	"github.com/praetorian-inc/bytewalk/pkg/types"
	"golang.org/x/term"
)

// styles holds color formatters for human output.
type styles struct {
	path     *color.Color
	position *color.Color
	code     *color.Color
	bytes    *color.Color
	heading  *color.Color
	ok       *color.Color
}

// newStyles creates color formatters. Color is forced on or off per
// formatter so the global color.NoColor setting is left alone.
func newStyles(enabled bool) *styles {
	s := &styles{
		path:     color.New(color.Bold),
		position: color.New(color.FgHiBlue),
		code:     color.New(color.Bold, color.FgHiRed),
		bytes:    color.New(color.FgYellow),
		heading:  color.New(color.Bold, color.FgHiWhite),
		ok:       color.New(color.FgHiGreen),
	}

	for _, c := range []*color.Color{s.path, s.position, s.code, s.bytes, s.heading, s.ok} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return s
}

// colorEnabled resolves a --color mode (auto, always, never) for w.
// auto enables color only when w is a terminal and NO_COLOR is unset.
func colorEnabled(mode string, w io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// writeDiagnostics renders diagnostics in the requested format.
func writeDiagnostics(w io.Writer, format string, colorMode string, diags []*types.Diagnostic) error {
	switch format {
	case "json":
		return writeJSON(w, diags)
	case "sarif":
		return writeSARIF(w, diags)
	case "human":
		writeHuman(w, newStyles(colorEnabled(colorMode, w)), diags)
		return nil
	default:
		return fmt.Errorf("unknown output format: %s", format)
	}
}

func writeJSON(w io.Writer, diags []*types.Diagnostic) error {
	if diags == nil {
		diags = []*types.Diagnostic{}
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(diags)
}

func writeSARIF(w io.Writer, diags []*types.Diagnostic) error {
	report := sarif.NewReport()
	for _, d := range diags {
		report.AddResult(d)
	}

	data, err := report.ToJSON()
	if err != nil {
		return fmt.Errorf("serializing SARIF: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("writing SARIF output: %w", err)
	}
	return nil
}

// writeHuman prints one compiler-style line per diagnostic followed by the
// offending bytes:
//
//	notes.txt:2:3: Invalid3rdOf3: utf-8: 3rd byte of a 3-byte sequence is not a continuation byte
//	    bytes e2 82 28 at offset 5
func writeHuman(w io.Writer, s *styles, diags []*types.Diagnostic) {
	for _, d := range diags {
		start := d.Location.Source.Start
		fmt.Fprintf(w, "%s:%s: %s: %s\n",
			s.path.Sprint(d.Path),
			s.position.Sprintf("%d:%d", start.Line, start.Column),
			s.code.Sprint(d.Code),
			d.Message)
		fmt.Fprintf(w, "    bytes %s at offset %d\n",
			s.bytes.Sprint(hexBytes(d.Bytes)),
			d.Location.Offset.Start)
	}
}

// hexBytes formats b as space separated hex pairs.
func hexBytes(b []byte) string {
	if len(b) == 0 {
		return ""
	}
	out := make([]byte, 0, len(b)*3-1)
	for i, c := range b {
		if i > 0 {
			out = append(out, ' ')
		}
		out = hex.AppendEncode(out, []byte{c})
	}
	return string(out)
}

// storedDiagnostics loads every diagnostic in s and reports it once per
// provenance of its blob, so identical content found under several paths
// is listed at each of them. The result is ordered by path and offset.
func storedDiagnostics(s store.Store) ([]*types.Diagnostic, error) {
	diags, err := s.GetAllDiagnostics()
	if err != nil {
		return nil, fmt.Errorf("retrieving diagnostics: %w", err)
	}

	provCache := make(map[types.BlobID][]types.Provenance)
	result := make([]*types.Diagnostic, 0, len(diags))
	for _, d := range diags {
		provs, ok := provCache[d.BlobID]
		if !ok {
			provs, err = s.GetProvenance(d.BlobID)
			if err != nil {
				return nil, fmt.Errorf("retrieving provenance: %w", err)
			}
			provCache[d.BlobID] = provs
		}

		if len(provs) == 0 {
			result = append(result, d)
			continue
		}
		for _, prov := range provs {
			at := *d
			at.Path = prov.Path()
			result = append(result, &at)
		}
	}

	sort.SliceStable(result, func(i, j int) bool {
		if result[i].Path != result[j].Path {
			return result[i].Path < result[j].Path
		}
		return result[i].Location.Offset.Start < result[j].Location.Offset.Start
	})
	return result, nil
}
