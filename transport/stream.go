package transport

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/seymourav/go-seymour/protocol"
)

// stream is the shared connection core embedded by both concrete
// transports. It owns the live connection handle and implements the
// frame-boundary discipline of Send/Receive/Close; the embedding type
// supplies Connect.
type stream struct {
	mu   sync.Mutex
	conn io.ReadWriteCloser
	rd   *bufio.Reader
}

// attach installs a freshly connected byte stream, replacing any previous
// one. The caller is responsible for having closed the previous connection.
func (s *stream) attach(conn io.ReadWriteCloser) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.conn = conn
	s.rd = bufio.NewReader(conn)
}

func (s *stream) current() (io.ReadWriteCloser, *bufio.Reader) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.conn, s.rd
}

// Send writes one complete frame to the stream.
func (s *stream) Send(frame []byte) error {
	if len(frame) < 2 || frame[0] != protocol.FrameStart || frame[len(frame)-1] != protocol.FrameEnd {
		return fmt.Errorf("%w: %q", ErrInvalidFrame, frame)
	}

	conn, _ := s.current()
	if conn == nil {
		return ErrNotConnected
	}

	if _, err := conn.Write(frame); err != nil {
		return fmt.Errorf("transport: send frame: %w", err)
	}

	return nil
}

// Receive reads one complete frame, up to and including the ']' delimiter.
func (s *stream) Receive() ([]byte, error) {
	conn, rd := s.current()
	if conn == nil || rd == nil {
		return nil, ErrNotConnected
	}

	frame, err := rd.ReadBytes(protocol.FrameEnd)
	if err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, fmt.Errorf("%w: stream ended before frame delimiter: %w", ErrClosed, err)
		}

		return nil, fmt.Errorf("transport: receive frame: %w", err)
	}

	return frame, nil
}

// Close releases the underlying connection. The connection reference is
// cleared unconditionally so the transport stays reusable even when the
// underlying close fails.
func (s *stream) Close() error {
	s.mu.Lock()
	conn := s.conn
	s.conn = nil
	s.rd = nil
	s.mu.Unlock()

	if conn == nil {
		return nil
	}

	if err := conn.Close(); err != nil {
		return fmt.Errorf("transport: close: %w", err)
	}

	return nil
}
