package discovery

import (
	"context"
	"fmt"
	"net"
	"slices"
	"strings"
	"time"

	"github.com/puzpuzpuz/xsync/v3"
	"golang.org/x/net/ipv4"

	"github.com/seymourav/go-seymour/transport"
)

const (
	// MulticastGroup is the AMX device-discovery multicast group the iTach
	// beacons on.
	MulticastGroup = "239.255.250.250"

	// MulticastPort is the AMX device-discovery UDP port.
	MulticastPort = 9131

	// DefaultListenInterval covers at least one beacon period; the iTach
	// announces itself roughly every 10 seconds.
	DefaultListenInterval = 12 * time.Second

	maxBeaconSize = 2048

	beaconPrefix = "AMXB"
)

// Endpoint is one discovered network-reachable controller bridge.
type Endpoint struct {
	// Host is the bridge's IP address.
	Host string
	// Port is the TCP port of the bridge's serial tunnel.
	Port int
	// Metadata holds the key/value fields of the announcement beacon, e.g.
	// "UUID", "Make", "Model". Empty when the beacon carried none.
	Metadata map[string]string
	// RawBeacon is the beacon text as received, for logging.
	RawBeacon string
}

// Transport returns a TCP transport connecting to this endpoint.
func (e Endpoint) Transport() transport.Transport {
	return transport.NewTCPTransport(e.Host, e.Port)
}

// ListenEndpoints joins the AMX discovery multicast group and collects
// announcement beacons until the interval elapses or ctx is canceled,
// whichever comes first. An interval of zero or below selects
// DefaultListenInterval.
//
// Beacons are deduplicated by source host and the result is sorted by host.
// Cancellation returns whatever was collected so far; an empty result means
// no bridge announced itself during the window. Socket failures wrap
// ErrDiscovery.
func ListenEndpoints(ctx context.Context, interval time.Duration) ([]Endpoint, error) {
	if interval <= 0 {
		interval = DefaultListenInterval
	}

	conn, err := net.ListenPacket("udp4", fmt.Sprintf(":%d", MulticastPort))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDiscovery, err)
	}
	defer func() { _ = conn.Close() }()

	group := &net.UDPAddr{IP: net.ParseIP(MulticastGroup)}

	pc := ipv4.NewPacketConn(conn)
	if err := pc.JoinGroup(nil, group); err != nil {
		return nil, fmt.Errorf("%w: join %s: %w", ErrDiscovery, MulticastGroup, err)
	}
	defer func() { _ = pc.LeaveGroup(nil, group) }()

	found := xsync.NewMapOf[string, Endpoint]()

	readDone := make(chan error, 1)
	go func() {
		buf := make([]byte, maxBeaconSize)
		for {
			n, addr, rerr := conn.ReadFrom(buf)
			if rerr != nil {
				readDone <- rerr
				return
			}

			host, _, serr := net.SplitHostPort(addr.String())
			if serr != nil {
				continue
			}

			if ep, ok := parseBeacon(host, buf[:n]); ok {
				found.Store(host, ep)
			}
		}
	}()

	timer := time.NewTimer(interval)
	defer timer.Stop()

	select {
	case <-ctx.Done():
	case <-timer.C:
	case err := <-readDone:
		return nil, fmt.Errorf("%w: %w", ErrDiscovery, err)
	}

	// Closing the socket unblocks the reader; join it before collecting.
	_ = conn.Close()
	<-readDone

	endpoints := make([]Endpoint, 0, found.Size())
	found.Range(func(_ string, ep Endpoint) bool {
		endpoints = append(endpoints, ep)
		return true
	})

	slices.SortFunc(endpoints, func(a, b Endpoint) int {
		return strings.Compare(a.Host, b.Host)
	})

	return endpoints, nil
}

// parseBeacon builds an Endpoint from one received datagram. Non-AMXB
// datagrams are rejected; an AMXB beacon whose fields cannot be parsed
// still yields an endpoint with empty metadata, since the source address
// alone names a connectable bridge.
func parseBeacon(host string, data []byte) (Endpoint, bool) {
	text := strings.TrimSpace(string(data))
	if !strings.HasPrefix(text, beaconPrefix) {
		return Endpoint{}, false
	}

	ep := Endpoint{
		Host:      host,
		Port:      transport.ITachSerialPort,
		Metadata:  make(map[string]string),
		RawBeacon: text,
	}

	// Beacon fields look like "<-UUID=GlobalCache_000C1E024239>".
	for _, field := range strings.Split(text[len(beaconPrefix):], "<-") {
		field = strings.Trim(field, "<)(> \r\n\t")
		if field == "" {
			continue
		}

		key, value, ok := strings.Cut(field, "=")
		if !ok {
			continue
		}

		ep.Metadata[key] = value
	}

	return ep, true
}
