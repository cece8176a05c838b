package framing

import "github.com/rotisserie/eris"

// ErrorFrameType enumerates the error conditions the stream automaton
// reports, scoped to either the whole connection or a single stream. No
// ERROR frame variant is on the v1.0 wire in this profile; these helpers
// exist so the scope invariant is ready the day one is reintroduced (§4.7,
// §9 "error frame helpers retained").
type ErrorFrameType uint8

const (
	ErrorInvalidSetup ErrorFrameType = iota
	ErrorUnsupportedSetup
	ErrorRejectedSetup
	ErrorRejectedResume
	ErrorConnectionError
	ErrorApplicationError
	ErrorRejected
	ErrorCanceled
	ErrorInvalid
)

// IsConnectionScoped reports whether t belongs to the connection-scoped
// error family (INVALID_SETUP, UNSUPPORTED_SETUP, REJECTED_SETUP,
// REJECTED_RESUME, CONNECTION_ERROR), which must be constructed with
// streamId == 0.
func (t ErrorFrameType) IsConnectionScoped() bool {
	switch t {
	case ErrorInvalidSetup, ErrorUnsupportedSetup, ErrorRejectedSetup, ErrorRejectedResume, ErrorConnectionError:
		return true
	default:
		return false
	}
}

// ValidateErrorFrameScope enforces §4.7: connection-scoped error types
// require streamId == 0, stream-scoped error types (APPLICATION_ERROR,
// REJECTED, CANCELED, INVALID) forbid it.
func ValidateErrorFrameScope(t ErrorFrameType, streamID StreamID) error {
	if t.IsConnectionScoped() {
		if streamID != 0 {
			return eris.Wrapf(ErrInvalidArgument, "%s is connection-scoped and must use stream id 0, got %d", t, streamID)
		}
		return nil
	}
	if streamID == 0 {
		return eris.Wrapf(ErrInvalidArgument, "%s is stream-scoped and requires a non-zero stream id", t)
	}
	return nil
}
