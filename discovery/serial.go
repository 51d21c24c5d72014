package discovery

import (
	"fmt"
	"slices"
	"strings"

	"go.bug.st/serial/enumerator"

	"github.com/seymourav/go-seymour/transport"
)

// SerialPort is one local serial device a controller may be attached to.
type SerialPort struct {
	// Device is the OS device path, e.g. "/dev/ttyUSB0" or "COM3".
	Device string
	// Baud is the line speed the transport will open the device at.
	Baud int
	// Description is the OS-reported product name, when available.
	Description string
	// HardwareID identifies USB adapters by vendor, product, and serial
	// number; empty for non-USB ports.
	HardwareID string
}

// Transport returns a serial transport opening this port.
func (p SerialPort) Transport() transport.Transport {
	return transport.NewSerialTransport(p.Device, p.Baud)
}

// ListSerialPorts enumerates the local serial ports, sorted by device name.
// The baud rate is recorded on every candidate so Transport can open the
// port without further configuration; it must be positive. Enumeration
// failures wrap ErrDiscovery.
func ListSerialPorts(baud int) ([]SerialPort, error) {
	if baud <= 0 {
		return nil, fmt.Errorf("%w: baud rate %d is not positive", ErrDiscovery, baud)
	}

	details, err := enumerator.GetDetailedPortsList()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDiscovery, err)
	}

	ports := make([]SerialPort, 0, len(details))
	for _, d := range details {
		port := SerialPort{
			Device:      d.Name,
			Baud:        baud,
			Description: d.Product,
		}

		if d.IsUSB {
			port.HardwareID = usbHardwareID(d)
		}

		ports = append(ports, port)
	}

	slices.SortFunc(ports, func(a, b SerialPort) int {
		return strings.Compare(a.Device, b.Device)
	})

	return ports, nil
}

func usbHardwareID(d *enumerator.PortDetails) string {
	id := fmt.Sprintf("USB VID:PID=%s:%s", d.VID, d.PID)
	if d.SerialNumber != "" {
		id += " SER=" + d.SerialNumber
	}

	return id
}
