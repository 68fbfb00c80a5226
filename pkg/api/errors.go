package api

import (
	"errors"
	"fmt"
)

// TransportError wraps a network-level failure: unreachable host,
// timeout, connection reset. Transient and safe to retry once the
// operator asks for it; never corrupts rendered state.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// ServerError carries a non-success response with the server's
// structured error payload. Shown verbatim; not retryable until the
// filters change.
type ServerError struct {
	Op      string
	Status  int
	Message string
	Details string
}

func (e *ServerError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %s (HTTP %d)", e.Op, e.Message, e.Status)
	}
	return fmt.Sprintf("%s: HTTP %d", e.Op, e.Status)
}

// IsRetryable reports whether the error is transient (transport-level)
// rather than a definitive server rejection.
func IsRetryable(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}

// errorPayload is the server's error envelope: {ok:false, error, details}.
type errorPayload struct {
	OK      bool   `json:"ok"`
	Message string `json:"error"`
	Details string `json:"details"`
}
