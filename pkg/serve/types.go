package serve

import (
	"encoding/json"

	"github.com/praetorian-inc/bytewalk/pkg/types"
)

// Request represents an incoming NDJSON request
type Request struct {
	Type    string          `json:"type"` // "check" | "check_batch" | "locate" | "close"
	Payload json.RawMessage `json:"payload"`
}

// CheckPayload is the payload for "check" requests and the items of a batch.
// Content is base64 in JSON so that malformed bytes survive transport; Text
// is used when Content is empty.
type CheckPayload struct {
	Content []byte `json:"content,omitempty"`
	Text    string `json:"text,omitempty"`
	Source  string `json:"source"`
}

func (p CheckPayload) bytes() []byte {
	if len(p.Content) > 0 {
		return p.Content
	}
	return []byte(p.Text)
}

// CheckBatchPayload is the payload for "check_batch" requests
type CheckBatchPayload struct {
	Items []CheckPayload `json:"items"`
}

// LocatePayload is the payload for "locate" requests
type LocatePayload struct {
	Content  []byte `json:"content,omitempty"`
	Text     string `json:"text,omitempty"`
	Offsets  []int  `json:"offsets"`
	OneBased bool   `json:"one_based"`
}

// CheckResult is the result of checking one item
type CheckResult struct {
	Source      string              `json:"source"`
	Valid       bool                `json:"valid"`
	Bytes       int                 `json:"bytes"`
	Chars       int                 `json:"chars"`
	Lines       int                 `json:"lines"`
	Truncated   bool                `json:"truncated"`
	Diagnostics []*types.Diagnostic `json:"diagnostics"`
}

// BatchCheckResult is the result of a "check_batch" request
type BatchCheckResult struct {
	Results []CheckResult `json:"results"`
	Total   int           `json:"total"` // diagnostics across all items
}

// Position is one resolved offset
type Position struct {
	Offset int `json:"offset"`
	Line   int `json:"line"`
	Column int `json:"column"`
}

// LocateResult is the result of a "locate" request
type LocateResult struct {
	Positions []Position `json:"positions"`
}

// Response represents an outgoing NDJSON response
type Response struct {
	Success bool            `json:"success"`
	Type    string          `json:"type"` // "ready" | "check" | "check_batch" | "locate" | "error"
	Data    json.RawMessage `json:"data,omitempty"`
	Error   string          `json:"error,omitempty"`
}

// ReadyData is the data field for "ready" responses
type ReadyData struct {
	Version string `json:"version"`
}
