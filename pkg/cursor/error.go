package cursor

// Error identifies why AdvanceChar rejected a byte sequence.
//
// The values are ordered for deterministic sorting only; a larger value is
// not a more severe error.
type Error uint8

const (
	// EncounteredContinuationByte means a continuation byte (or 0xF8-0xFF)
	// appeared where a lead byte was expected.
	EncounteredContinuationByte Error = iota

	// Missing2ndOf2 means the input ended before the 2nd byte of a 2-byte sequence.
	Missing2ndOf2
	// Invalid2ndOf2 means the 2nd byte of a 2-byte sequence is not a continuation byte.
	Invalid2ndOf2

	Missing2ndOf3
	Invalid2ndOf3
	Missing3rdOf3
	Invalid3rdOf3

	Missing2ndOf4
	Invalid2ndOf4
	Missing3rdOf4
	Invalid3rdOf4
	Missing4thOf4
	Invalid4thOf4
)

var errorText = [...]string{
	EncounteredContinuationByte: "encountered continuation byte where a lead byte was expected",
	Missing2ndOf2:               "input ended before the 2nd byte of a 2-byte sequence",
	Invalid2ndOf2:               "2nd byte of a 2-byte sequence is not a continuation byte",
	Missing2ndOf3:               "input ended before the 2nd byte of a 3-byte sequence",
	Invalid2ndOf3:               "2nd byte of a 3-byte sequence is not a continuation byte",
	Missing3rdOf3:               "input ended before the 3rd byte of a 3-byte sequence",
	Invalid3rdOf3:               "3rd byte of a 3-byte sequence is not a continuation byte",
	Missing2ndOf4:               "input ended before the 2nd byte of a 4-byte sequence",
	Invalid2ndOf4:               "2nd byte of a 4-byte sequence is not a continuation byte",
	Missing3rdOf4:               "input ended before the 3rd byte of a 4-byte sequence",
	Invalid3rdOf4:               "3rd byte of a 4-byte sequence is not a continuation byte",
	Missing4thOf4:               "input ended before the 4th byte of a 4-byte sequence",
	Invalid4thOf4:               "4th byte of a 4-byte sequence is not a continuation byte",
}

var errorNames = [...]string{
	EncounteredContinuationByte: "EncounteredContinuationByte",
	Missing2ndOf2:               "Missing2ndOf2",
	Invalid2ndOf2:               "Invalid2ndOf2",
	Missing2ndOf3:               "Missing2ndOf3",
	Invalid2ndOf3:               "Invalid2ndOf3",
	Missing3rdOf3:               "Missing3rdOf3",
	Invalid3rdOf3:               "Invalid3rdOf3",
	Missing2ndOf4:               "Missing2ndOf4",
	Invalid2ndOf4:               "Invalid2ndOf4",
	Missing3rdOf4:               "Missing3rdOf4",
	Invalid3rdOf4:               "Invalid3rdOf4",
	Missing4thOf4:               "Missing4thOf4",
	Invalid4thOf4:               "Invalid4thOf4",
}

// Errors lists every Error value in order.
var Errors = []Error{
	EncounteredContinuationByte,
	Missing2ndOf2, Invalid2ndOf2,
	Missing2ndOf3, Invalid2ndOf3, Missing3rdOf3, Invalid3rdOf3,
	Missing2ndOf4, Invalid2ndOf4, Missing3rdOf4, Invalid3rdOf4, Missing4thOf4, Invalid4thOf4,
}

// Error implements the error interface.
func (e Error) Error() string {
	if int(e) < len(errorText) {
		return "utf-8: " + errorText[e]
	}
	return "utf-8: unknown error"
}

// String returns the identifier of e, e.g. "Missing3rdOf4".
func (e Error) String() string {
	if int(e) < len(errorNames) {
		return errorNames[e]
	}
	return "Error(unknown)"
}

// SequenceLen returns the sequence length the lead byte declared, or 0
// for EncounteredContinuationByte.
func (e Error) SequenceLen() int {
	switch {
	case e == EncounteredContinuationByte:
		return 0
	case e <= Invalid2ndOf2:
		return 2
	case e <= Invalid3rdOf3:
		return 3
	default:
		return 4
	}
}

// ByteIndex returns the 1-based position of the offending byte within its
// sequence (2 for "2nd", 3 for "3rd", 4 for "4th"), or 1 for
// EncounteredContinuationByte.
func (e Error) ByteIndex() int {
	switch e {
	case EncounteredContinuationByte:
		return 1
	case Missing2ndOf2, Invalid2ndOf2, Missing2ndOf3, Invalid2ndOf3, Missing2ndOf4, Invalid2ndOf4:
		return 2
	case Missing3rdOf3, Invalid3rdOf3, Missing3rdOf4, Invalid3rdOf4:
		return 3
	default:
		return 4
	}
}

// Missing reports whether e was caused by the input ending mid-sequence.
func (e Error) Missing() bool {
	switch e {
	case Missing2ndOf2, Missing2ndOf3, Missing3rdOf3, Missing2ndOf4, Missing3rdOf4, Missing4thOf4:
		return true
	}
	return false
}
