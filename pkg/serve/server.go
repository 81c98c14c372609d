// Package serve runs bytewalk as a long-lived NDJSON server: one JSON request
// per input line, one JSON response per output line.
package serve

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/praetorian-inc/bytewalk/pkg/check"
	"github.com/praetorian-inc/bytewalk/pkg/location"
)

// Version is the server protocol version
const Version = "1.0.0"

// Server answers check and locate requests read from a stream.
type Server struct {
	checker *check.Checker
	encoder *json.Encoder
	decoder *json.Decoder
}

// NewServer creates a new streaming server
func NewServer(checker *check.Checker, in io.Reader, out io.Writer) *Server {
	return &Server{
		checker: checker,
		encoder: json.NewEncoder(out),
		decoder: json.NewDecoder(bufio.NewReader(in)),
	}
}

// Run sends a ready message, then serves requests until the input ends, a
// "close" request arrives or ctx is cancelled.
//
// Run never closes the input. When it returns before the input ends, the
// goroutine reading requests stays blocked in Read until the caller closes
// the reader, and anything it decodes after that is discarded. A Server
// should not be Run again on the same input.
func (s *Server) Run(ctx context.Context) error {
	s.sendReady()

	reqChan := make(chan Request, 1)
	errChan := make(chan error, 1)
	done := make(chan struct{})
	defer close(done)

	go func() {
		for {
			var req Request
			if err := s.decoder.Decode(&req); err != nil {
				errChan <- err
				return
			}
			select {
			case reqChan <- req:
			case <-done:
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case err := <-errChan:
			// Drain a request decoded just before the error.
			for {
				select {
				case req := <-reqChan:
					if s.processRequest(req) {
						return nil
					}
				default:
					if err == io.EOF {
						return nil
					}
					s.sendError("decode", err.Error())
					return nil
				}
			}
		case req := <-reqChan:
			if s.processRequest(req) {
				return nil
			}
		}
	}
}

// processRequest handles a single request and returns true if the server should exit
func (s *Server) processRequest(req Request) bool {
	switch req.Type {
	case "check":
		s.handleCheck(req.Payload)
	case "check_batch":
		s.handleCheckBatch(req.Payload)
	case "locate":
		s.handleLocate(req.Payload)
	case "close":
		return true
	default:
		s.sendError("unknown", "unknown request type: "+req.Type)
	}
	return false
}

func (s *Server) sendReady() {
	s.send("ready", ReadyData{Version: Version})
}

func (s *Server) check(p CheckPayload) CheckResult {
	res := s.checker.Check(p.bytes(), p.Source)
	return CheckResult{
		Source:      p.Source,
		Valid:       res.Valid(),
		Bytes:       res.Bytes,
		Chars:       res.Chars,
		Lines:       res.Lines,
		Truncated:   res.Truncated,
		Diagnostics: res.Diagnostics,
	}
}

func (s *Server) handleCheck(payload json.RawMessage) {
	var p CheckPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		s.sendError("check", err.Error())
		return
	}
	s.send("check", s.check(p))
}

func (s *Server) handleCheckBatch(payload json.RawMessage) {
	var p CheckBatchPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		s.sendError("check_batch", err.Error())
		return
	}

	batch := BatchCheckResult{Results: make([]CheckResult, 0, len(p.Items))}
	for _, item := range p.Items {
		r := s.check(item)
		batch.Total += len(r.Diagnostics)
		batch.Results = append(batch.Results, r)
	}
	s.send("check_batch", batch)
}

func (s *Server) handleLocate(payload json.RawMessage) {
	var p LocatePayload
	if err := json.Unmarshal(payload, &p); err != nil {
		s.sendError("locate", err.Error())
		return
	}

	content := p.Content
	if len(content) == 0 {
		content = []byte(p.Text)
	}

	result := LocateResult{Positions: make([]Position, 0, len(p.Offsets))}
	for _, offset := range p.Offsets {
		if offset < 0 || offset > len(content) {
			s.sendError("locate", fmt.Sprintf("offset %d out of range [0, %d]", offset, len(content)))
			return
		}
		line, column := location.Compute(content, offset)
		if p.OneBased {
			line++
			column++
		}
		result.Positions = append(result.Positions, Position{Offset: offset, Line: line, Column: column})
	}
	s.send("locate", result)
}

func (s *Server) send(respType string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		s.sendError(respType, err.Error())
		return
	}
	s.encoder.Encode(Response{
		Success: true,
		Type:    respType,
		Data:    data,
	})
}

func (s *Server) sendError(reqType, msg string) {
	s.encoder.Encode(Response{
		Success: false,
		Type:    reqType,
		Error:   msg,
	})
}
