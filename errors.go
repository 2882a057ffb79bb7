package dockersock

import "fmt"

// Custom error types for dockersock client operations.
// Every failure a call can produce is one of the five kinds below; they are
// mutually exclusive so callers can branch on the kind instead of matching
// message text. All of them are ordinary recoverable values, nothing in this
// package panics on daemon input.

type (
	// ErrRequestFormat indicates the inputs could not be assembled into a
	// valid HTTP request. This is a configuration error on the caller's side
	// (bad endpoint, unsupported method), not a transport failure.
	ErrRequestFormat struct{ Msg string }

	// ErrNoResponse indicates the transport obtained no response at all from
	// the daemon. Distinct from ErrMalformedResponse: here there were no bytes
	// to parse in the first place.
	ErrNoResponse struct{ Msg string }

	// ErrMalformedResponse indicates a response was obtained but could not be
	// interpreted as an HTTP response (missing status line or header/body
	// separator), so no body could be extracted.
	ErrMalformedResponse struct{ Msg string }

	// ErrDecode indicates an extracted body did not match the expected JSON
	// schema. The wrapped (Unwrap) error is the json package's own diagnostic
	// so callers see the decoder's message verbatim.
	ErrDecode struct{ Err error }

	// ErrEncode indicates a typed configuration could not be serialized before
	// sending. Should be unreachable for well-formed config values but is
	// still reported as a distinct kind rather than a crash.
	ErrEncode struct{ Err error }
)

func (e *ErrRequestFormat) Error() string {
	return fmt.Sprintf("error while preparing request: %s", e.Msg)
}

func (e *ErrNoResponse) Error() string {
	return fmt.Sprintf("got no response from docker host: %s", e.Msg)
}

func (e *ErrMalformedResponse) Error() string {
	return fmt.Sprintf("response was not a valid HTTP response: %s", e.Msg)
}

func (e *ErrDecode) Error() string {
	return fmt.Sprintf("error while deserializing JSON response: %v", e.Err)
}

func (e *ErrDecode) Unwrap() error { return e.Err }

func (e *ErrEncode) Error() string {
	return fmt.Sprintf("error while serializing request body: %v", e.Err)
}

func (e *ErrEncode) Unwrap() error { return e.Err }
