package types

import (
	"crypto/sha1"
	"encoding/hex"
	"strconv"
)

// Diagnostic is a single malformed UTF-8 sequence found in a blob.
type Diagnostic struct {
	BlobID   BlobID   `json:"blob_id"`
	ID       string   `json:"id"`      // SHA-1(blob_id + '\0' + code + '\0' + start)
	Code     string   `json:"code"`    // e.g. "Missing3rdOf4"
	Message  string   `json:"message"` // human readable description
	Path     string   `json:"path"`    // where the blob came from
	Location Location `json:"location"`
	Bytes    []byte   `json:"bytes"` // the raw bytes examined before the error was detected
}

// ComputeID computes a content-based unique ID for the diagnostic.
func (d *Diagnostic) ComputeID() string {
	h := sha1.New()

	h.Write(d.BlobID[:])
	h.Write([]byte{0})

	h.Write([]byte(d.Code))
	h.Write([]byte{0})

	h.Write([]byte(strconv.FormatInt(d.Location.Offset.Start, 10)))

	return hex.EncodeToString(h.Sum(nil))
}
