// SPDX-License-Identifier: GPL-2.0-only

package deflate

import (
	"errors"
	"fmt"
)

// Sentinel errors. Check with errors.Is; Status reports the same condition
// as a plain code for callers that prefer to switch on it instead.
var (
	// ErrStreamError is returned for invalid parameter combinations, calls
	// made out of order, or other programmer-fault usage errors.
	ErrStreamError = errors.New("deflate: stream error")
	// ErrBufError is returned when no progress is possible: zero AvailOut
	// with nothing pending, or a NoFlush call that consumed no input and
	// produced no output. Not fatal; retry with more input or output space.
	ErrBufError = errors.New("deflate: buffer error")
	// ErrDataError is returned by End when the stream was not finished.
	ErrDataError = errors.New("deflate: stream not finished")
	// ErrDictionaryTooLate is returned by SetDictionary when called after
	// compression has already started.
	ErrDictionaryTooLate = errors.New("deflate: SetDictionary called after compression started")
)

// Status mirrors the zlib-style return codes of Deflate and End.
type Status int

const (
	// StatusOK means progress was made; the stream is not finished.
	StatusOK Status = iota
	// StatusStreamEnd means the stream is fully flushed and terminated.
	StatusStreamEnd
	// StatusBufError means no progress was possible on this call.
	StatusBufError
	// StatusStreamError means the call was invalid; see Stream.Msg.
	StatusStreamError
	// StatusDataError means End was called before the stream finished.
	StatusDataError
)

// String names the status for diagnostics.
func (s Status) String() string {
	switch s {
	case StatusOK:
		return "OK"
	case StatusStreamEnd:
		return "STREAM_END"
	case StatusBufError:
		return "BUF_ERROR"
	case StatusStreamError:
		return "STREAM_ERROR"
	case StatusDataError:
		return "DATA_ERROR"
	default:
		return "UNKNOWN"
	}
}

// streamErrorf builds a StatusStreamError/ErrStreamError pair carrying msg
// in the wrapped error text; Stream.streamError also records it in
// Stream.Msg.
func streamErrorf(format string, args ...any) (Status, error) {
	msg := fmt.Sprintf(format, args...)
	return StatusStreamError, fmt.Errorf("%w: %s", ErrStreamError, msg)
}

// dictionaryTooLateError builds a StatusStreamError pair wrapping both
// ErrStreamError and the more specific ErrDictionaryTooLate, so callers
// can match on either with errors.Is.
func dictionaryTooLateError() (Status, error) {
	return StatusStreamError, fmt.Errorf("%w: %w", ErrStreamError, ErrDictionaryTooLate)
}
