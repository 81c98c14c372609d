// Package sarif renders diagnostics as a SARIF 2.1.0 log.
package sarif

import (
	"encoding/base64"
	"encoding/json"
	"path/filepath"
	"strings"

	"github.com/praetorian-inc/bytewalk/pkg/cursor"
	"github.com/praetorian-inc/bytewalk/pkg/types"
)

// SARIF 2.1.0 constants
const (
	SchemaURI   = "https://raw.githubusercontent.com/oasis-tcs/sarif-spec/master/Schemata/sarif-schema-2.1.0.json"
	Version     = "2.1.0"
	ToolName    = "bytewalk"
	ToolVersion = "0.1.0"
)

// Report is the top-level SARIF report structure
type Report struct {
	Schema  string `json:"$schema"`
	Version string `json:"version"`
	Runs    []Run  `json:"runs"`
}

// Run represents a single invocation of the tool
type Run struct {
	Tool    Tool     `json:"tool"`
	Results []Result `json:"results"`
}

// Tool describes the analysis tool
type Tool struct {
	Driver Driver `json:"driver"`
}

// Driver contains tool metadata
type Driver struct {
	Name    string `json:"name"`
	Version string `json:"version"`
	Rules   []Rule `json:"rules,omitempty"`
}

// Rule describes one kind of decode error.
type Rule struct {
	ID               string  `json:"id"`
	Name             string  `json:"name"`
	ShortDescription Message `json:"shortDescription"`
}

// Result represents a single diagnostic
type Result struct {
	RuleID    string     `json:"ruleId"`
	RuleIndex int        `json:"ruleIndex"`
	Level     string     `json:"level"`
	Message   Message    `json:"message"`
	Locations []Location `json:"locations"`
}

// Message contains text shown to the user
type Message struct {
	Text string `json:"text"`
}

// Location describes where a result was found
type Location struct {
	PhysicalLocation PhysicalLocation `json:"physicalLocation"`
}

// PhysicalLocation specifies file location
type PhysicalLocation struct {
	ArtifactLocation ArtifactLocation `json:"artifactLocation"`
	Region           Region           `json:"region"`
}

// ArtifactLocation identifies the file
type ArtifactLocation struct {
	URI string `json:"uri"`
}

// Region specifies the line/column and byte range
type Region struct {
	StartLine   int      `json:"startLine"`
	StartColumn int      `json:"startColumn"`
	EndLine     int      `json:"endLine"`
	EndColumn   int      `json:"endColumn"`
	ByteOffset  int64    `json:"byteOffset"`
	ByteLength  int64    `json:"byteLength"`
	Snippet     *Snippet `json:"snippet,omitempty"`
}

// Snippet carries the offending bytes. They are not valid UTF-8, so they are
// base64 encoded rather than emitted as text.
type Snippet struct {
	Binary string `json:"binary"`
}

// NewReport creates a report whose driver lists every decode error as a rule.
func NewReport() *Report {
	rules := make([]Rule, 0, len(cursor.Errors))
	for _, e := range cursor.Errors {
		rules = append(rules, Rule{
			ID:               e.String(),
			Name:             e.String(),
			ShortDescription: Message{Text: e.Error()},
		})
	}

	return &Report{
		Schema:  SchemaURI,
		Version: Version,
		Runs: []Run{
			{
				Tool: Tool{
					Driver: Driver{
						Name:    ToolName,
						Version: ToolVersion,
						Rules:   rules,
					},
				},
				Results: []Result{},
			},
		},
	}
}

// AddResult adds a diagnostic to the report.
func (r *Report) AddResult(d *types.Diagnostic) {
	region := Region{
		StartLine:   d.Location.Source.Start.Line,
		StartColumn: d.Location.Source.Start.Column,
		EndLine:     d.Location.Source.End.Line,
		EndColumn:   d.Location.Source.End.Column,
		ByteOffset:  d.Location.Offset.Start,
		ByteLength:  d.Location.Offset.Len(),
	}
	if len(d.Bytes) > 0 {
		region.Snippet = &Snippet{Binary: base64.StdEncoding.EncodeToString(d.Bytes)}
	}

	r.Runs[0].Results = append(r.Runs[0].Results, Result{
		RuleID:    d.Code,
		RuleIndex: r.ruleIndex(d.Code),
		Level:     "error",
		Message:   Message{Text: d.Message},
		Locations: []Location{
			{
				PhysicalLocation: PhysicalLocation{
					ArtifactLocation: ArtifactLocation{URI: formatFileURI(d.Path)},
					Region:           region,
				},
			},
		},
	})
}

func (r *Report) ruleIndex(id string) int {
	for i, rule := range r.Runs[0].Tool.Driver.Rules {
		if rule.ID == id {
			return i
		}
	}
	return -1
}

// ToJSON serializes the report to JSON bytes
func (r *Report) ToJSON() ([]byte, error) {
	return json.MarshalIndent(r, "", "  ")
}

// formatFileURI converts a file path to SARIF URI format
// Absolute paths get file:// prefix, relative paths stay as-is
func formatFileURI(path string) string {
	if filepath.IsAbs(path) {
		path = filepath.ToSlash(path)
		if !strings.HasPrefix(path, "/") {
			path = "/" + path
		}
		return "file://" + path
	}
	return filepath.ToSlash(path)
}
