package transport

import (
	"fmt"
	"net"
	"strconv"
	"time"
)

// TCPTransport carries frames over a TCP connection to a serial bridge
// such as the Global Caché IP2SL.
type TCPTransport struct {
	stream

	host        string
	port        int
	dialTimeout time.Duration
}

var _ Transport = (*TCPTransport)(nil)

// NewTCPTransport creates a transport that dials host:port. A port of zero
// selects the IP2SL default, 4999.
func NewTCPTransport(host string, port int) *TCPTransport {
	if port <= 0 {
		port = ITachSerialPort
	}

	return &TCPTransport{
		host:        host,
		port:        port,
		dialTimeout: DefaultDialTimeout,
	}
}

// Connect dials the bridge. Any stale connection is closed first: the
// IP2SL accepts a single TCP connection per serial port, so a leaked
// socket would hold that slot and block all future connects.
func (t *TCPTransport) Connect() error {
	_ = t.stream.Close()

	conn, err := net.DialTimeout("tcp", net.JoinHostPort(t.host, strconv.Itoa(t.port)), t.dialTimeout)
	if err != nil {
		return fmt.Errorf("transport: dial %s: %w", t, err)
	}

	t.attach(conn)

	return nil
}

func (t *TCPTransport) String() string {
	return "tcp://" + net.JoinHostPort(t.host, strconv.Itoa(t.port))
}
