package riak

import (
	"errors"
	"fmt"
)

var (
	// ErrBroken is returned by every operation after the session has lost
	// its transport or its frame alignment. No further I/O is attempted.
	ErrBroken = errors.New("riak: session broken")

	// ErrSessionBusy is returned when an operation is attempted while a
	// streaming listing still owns the connection.
	ErrSessionBusy = errors.New("riak: session busy with a streaming request")

	// ErrStreamDone is returned by stream Next calls after the final page.
	ErrStreamDone = errors.New("riak: stream exhausted")
)

// ConnectionError wraps a transport failure: dial, write, or a read that
// failed below the framing layer. The session is broken afterwards.
type ConnectionError struct {
	Op  string
	Err error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("riak: %s: connection: %v", e.Op, e.Err)
}

func (e *ConnectionError) Unwrap() error { return e.Err }

// FramingError reports a violated frame contract: a truncated header or
// body, a declared length of zero, an oversized message, or a response
// code that does not answer the request. Frame alignment is lost, so the
// session is broken afterwards.
type FramingError struct {
	Op  string
	Err error
}

func (e *FramingError) Error() string {
	return fmt.Sprintf("riak: %s: framing: %v", e.Op, e.Err)
}

func (e *FramingError) Unwrap() error { return e.Err }

// ServerError is a well-formed error response from the server. The
// exchange completed cleanly, so the session stays usable.
type ServerError struct {
	Code    uint32
	Message string
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("riak: server error code=%d: %s", e.Code, e.Message)
}
