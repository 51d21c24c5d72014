package client

import (
	"errors"
	"fmt"
	"net"
	"strings"
	"sync"

	"github.com/seymourav/go-seymour/transport"
)

// fakeTransport is a scripted in-memory transport. It records every call in
// an ordered event log so tests can assert on the exact wire-level call
// sequence, and synthesizes a canned response frame for the last sent
// command.
type fakeTransport struct {
	mu sync.Mutex

	connected bool
	events    []string
	lastSent  []byte
	closedCh  chan struct{}

	// connectFailures makes the next N Connect calls fail with a dial
	// error before one succeeds.
	connectFailures int

	// sendErrs is consumed one entry per Send call; a nil entry means the
	// send succeeds.
	sendErrs []error

	// recvErr, when set, fails every Receive.
	recvErr error

	// blockRecv makes Receive block until the transport is closed.
	blockRecv bool

	// respond overrides the canned response synthesis.
	respond func(sent []byte) []byte
}

func newFakeTransport() *fakeTransport {
	return &fakeTransport{}
}

func (f *fakeTransport) Connect() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.events = append(f.events, "connect")

	if f.connectFailures > 0 {
		f.connectFailures--
		return &net.OpError{Op: "dial", Err: errors.New("connection refused")}
	}

	f.connected = true
	f.closedCh = make(chan struct{})

	return nil
}

func (f *fakeTransport) Send(frame []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if !f.connected {
		return transport.ErrNotConnected
	}

	f.events = append(f.events, "send:"+string(frame))
	f.lastSent = append([]byte(nil), frame...)

	if len(f.sendErrs) > 0 {
		err := f.sendErrs[0]
		f.sendErrs = f.sendErrs[1:]

		return err
	}

	return nil
}

func (f *fakeTransport) Receive() ([]byte, error) {
	f.mu.Lock()

	if !f.connected {
		f.mu.Unlock()
		return nil, transport.ErrNotConnected
	}

	f.events = append(f.events, "receive")

	if f.blockRecv {
		closed := f.closedCh
		f.mu.Unlock()

		<-closed

		return nil, transport.ErrClosed
	}

	defer f.mu.Unlock()

	if f.recvErr != nil {
		return nil, f.recvErr
	}

	if f.respond != nil {
		return f.respond(f.lastSent), nil
	}

	return cannedResponse(f.lastSent), nil
}

func (f *fakeTransport) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.events = append(f.events, "close")

	if f.connected {
		f.connected = false
		close(f.closedCh)
	}

	return nil
}

func (f *fakeTransport) String() string { return "fake://controller" }

// dropLink simulates the peer silently dropping the connection: the next
// transport access fails while the client still believes it is connected.
func (f *fakeTransport) dropLink() {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.connected {
		f.connected = false
		close(f.closedCh)
	}
}

func (f *fakeTransport) eventLog() []string {
	f.mu.Lock()
	defer f.mu.Unlock()

	return append([]string(nil), f.events...)
}

func (f *fakeTransport) countEvents(name string) int {
	count := 0
	for _, e := range f.eventLog() {
		if e == name || strings.HasPrefix(e, name+":") {
			count++
		}
	}

	return count
}

// cannedResponse synthesizes a plausible response frame for the given
// request frame.
func cannedResponse(sent []byte) []byte {
	if len(sent) < 4 {
		return []byte("[01E]")
	}

	switch sent[3] {
	case 'S':
		return []byte("[01P123]")
	case 'P':
		return []byte("[011T50.0]")
	case 'Y':
		return []byte(fmt.Sprintf("[01%-20s0072.50042.6AB-1225-12345TB]", "Premier 240"))
	case 'R':
		return []byte("[01000]")
	case '@':
		return []byte("[01ok]")
	default:
		return []byte("[01E]")
	}
}
