package transport

import (
	"fmt"

	"go.bug.st/serial"
)

// SerialTransport carries frames over a local serial port wired directly
// to the controller.
type SerialTransport struct {
	stream

	device string
	baud   int
}

var _ Transport = (*SerialTransport)(nil)

// NewSerialTransport creates a transport that opens the given serial
// device. A baud rate of zero selects the controller default, 115200.
func NewSerialTransport(device string, baud int) *SerialTransport {
	if baud <= 0 {
		baud = BaudRate
	}

	return &SerialTransport{
		device: device,
		baud:   baud,
	}
}

// Connect opens the serial device, closing any stale port first so a
// reconnect never leaks the previous file handle.
func (t *SerialTransport) Connect() error {
	_ = t.stream.Close()

	port, err := serial.Open(t.device, &serial.Mode{BaudRate: t.baud})
	if err != nil {
		return fmt.Errorf("transport: open serial port %s: %w", t.device, err)
	}

	t.attach(port)

	return nil
}

func (t *SerialTransport) String() string {
	return fmt.Sprintf("serial://%s@%d", t.device, t.baud)
}
