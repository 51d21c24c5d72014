package transport

import "errors"

var (
	// ErrNotConnected indicates that Send or Receive was called without a
	// live connection.
	ErrNotConnected = errors.New("transport: not connected")

	// ErrClosed indicates that the stream ended before a complete frame
	// was received.
	ErrClosed = errors.New("transport: connection closed")

	// ErrInvalidFrame indicates that Send was given bytes that are not a
	// single '['...']' delimited frame.
	ErrInvalidFrame = errors.New("transport: invalid frame")
)
