// Package transport provides the byte-stream transports that carry Seymour
// protocol frames: a TCP variant for Global Caché IP2SL serial bridges and
// a local serial-port variant.
//
// A Transport owns exactly one underlying connection. Send and Receive
// operate on whole frames; Receive blocks until the closing frame
// delimiter has been read. Neither applies a timeout: request timeouts are
// the client's responsibility. Transports are not safe for concurrent
// Send/Receive pairs; the client package serializes access to the wire.
package transport

import "time"

// Default connection parameters for Seymour controllers.
const (
	// BaudRate is the controller's fixed serial line speed.
	BaudRate = 115200

	// ITachSerialPort is the TCP port a Global Caché IP2SL bridge exposes
	// for its first serial port.
	ITachSerialPort = 4999

	// DefaultDialTimeout bounds TCP connection establishment.
	DefaultDialTimeout = 5 * time.Second
)

// Transport is the byte-stream contract consumed by the client: connect,
// exchange delimited frames, close.
type Transport interface {
	// Connect establishes the underlying connection. Calling Connect on an
	// already-connected transport closes the stale connection first, so a
	// reconnect can never leak the previous one.
	Connect() error

	// Send writes one complete frame and returns once the write has been
	// handed to the operating system. The frame must already carry the
	// '['...']' delimiters; Send rejects anything else with ErrInvalidFrame.
	// Fails with ErrNotConnected when no live connection exists.
	Send(frame []byte) error

	// Receive blocks until a full frame, up to and including the next ']'
	// delimiter, has been read. Fails with ErrNotConnected when no live
	// connection exists and with ErrClosed when the stream ends before a
	// delimiter is seen.
	Receive() ([]byte, error)

	// Close releases the underlying connection. It is a no-op when not
	// connected, and it always clears the connection reference even if the
	// underlying close reports an error, leaving the transport reusable.
	Close() error

	// String describes the endpoint for logging.
	String() string
}
