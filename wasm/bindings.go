//go:build wasm

package main

import (
	"encoding/json"
	"fmt"
	"syscall/js"

	"github.com/praetorian-inc/bytewalk/pkg/check"
	"github.com/praetorian-inc/bytewalk/pkg/location"
	"github.com/praetorian-inc/bytewalk/pkg/serve"
)

// contentArg converts a JS string or Uint8Array argument to bytes. A string
// is always well-formed UTF-8 by the time it reaches Go.
func contentArg(v js.Value) ([]byte, error) {
	switch v.Type() {
	case js.TypeString:
		return []byte(v.String()), nil
	case js.TypeObject:
		if !v.InstanceOf(js.Global().Get("Uint8Array")) {
			return nil, fmt.Errorf("content must be a string or Uint8Array")
		}
		b := make([]byte, v.Get("length").Int())
		js.CopyBytesToGo(b, v)
		return b, nil
	default:
		return nil, fmt.Errorf("content must be a string or Uint8Array")
	}
}

func errorResult(msg string) map[string]any {
	return map[string]any{"error": msg}
}

// checkContent checks content for malformed UTF-8.
// JS: BytewalkCheck(content, source?, maxDiagnostics?) -> JSON result or {error}
func checkContent(this js.Value, args []js.Value) any {
	if len(args) < 1 {
		return errorResult("content argument required")
	}
	content, err := contentArg(args[0])
	if err != nil {
		return errorResult(err.Error())
	}
	source := ""
	if len(args) > 1 && args[1].Type() == js.TypeString {
		source = args[1].String()
	}
	opts := check.DefaultOptions()
	if len(args) > 2 && args[2].Type() == js.TypeNumber {
		opts.MaxDiagnostics = args[2].Int()
	}

	res := check.New(opts).Check(content, source)
	jsonBytes, err := json.Marshal(serve.CheckResult{
		Source:      source,
		Valid:       res.Valid(),
		Bytes:       res.Bytes,
		Chars:       res.Chars,
		Lines:       res.Lines,
		Truncated:   res.Truncated,
		Diagnostics: res.Diagnostics,
	})
	if err != nil {
		return errorResult("failed to marshal result: " + err.Error())
	}
	return string(jsonBytes)
}

// locate resolves byte offsets to zero-indexed line and column positions.
// JS: BytewalkLocate(content, offsets[], oneBased?) -> JSON result or {error}
func locate(this js.Value, args []js.Value) any {
	if len(args) < 2 {
		return errorResult("content and offsets arguments required")
	}
	content, err := contentArg(args[0])
	if err != nil {
		return errorResult(err.Error())
	}
	oneBased := len(args) > 2 && args[2].Truthy()

	offsets := args[1]
	result := serve.LocateResult{Positions: make([]serve.Position, 0, offsets.Length())}
	for i := 0; i < offsets.Length(); i++ {
		offset := offsets.Index(i).Int()
		if offset < 0 || offset > len(content) {
			return errorResult(fmt.Sprintf("offset %d out of range [0, %d]", offset, len(content)))
		}
		line, column := location.Compute(content, offset)
		if oneBased {
			line++
			column++
		}
		result.Positions = append(result.Positions, serve.Position{Offset: offset, Line: line, Column: column})
	}

	jsonBytes, err := json.Marshal(result)
	if err != nil {
		return errorResult("failed to marshal result: " + err.Error())
	}
	return string(jsonBytes)
}

// valid reports whether content is well-formed.
// JS: BytewalkValid(content) -> bool or {error}
func valid(this js.Value, args []js.Value) any {
	if len(args) < 1 {
		return errorResult("content argument required")
	}
	content, err := contentArg(args[0])
	if err != nil {
		return errorResult(err.Error())
	}
	return check.New(check.Options{MaxDiagnostics: 1}).Check(content, "").Valid()
}
