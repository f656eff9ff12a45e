package stream

import (
	"errors"
	"fmt"
)

// ErrRetryExhausted is returned by Connect when the reconnect attempt
// counter reaches the configured maximum.
var ErrRetryExhausted = errors.New("max reconnect attempts reached")

// SetupError wraps a failure to establish the subscribe stream. It occurs
// before any stream is obtained and is not retried.
type SetupError struct {
	Err error
}

func (e *SetupError) Error() string {
	return fmt.Sprintf("stream setup failed: %v", e.Err)
}

func (e *SetupError) Unwrap() error {
	return e.Err
}

// StreamError wraps a failure on an established stream: a decode error,
// remote termination, or a failed keepalive send. It is recoverable and
// triggers a reconnect.
type StreamError struct {
	Err error
}

func (e *StreamError) Error() string {
	return fmt.Sprintf("stream failed: %v", e.Err)
}

func (e *StreamError) Unwrap() error {
	return e.Err
}
