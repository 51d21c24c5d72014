package discovery

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleBeacon = "AMXB<-UUID=GlobalCache_000C1E024239><-SDKClass=Utility>" +
	"<-Make=GlobalCache><-Model=iTachIP2SL><-Revision=710-1005-05>" +
	"<-Config-URL=http://192.168.1.70>"

func TestParseBeacon(t *testing.T) {
	t.Parallel()

	ep, ok := parseBeacon("192.168.1.70", []byte(sampleBeacon))
	require.True(t, ok)

	assert.Equal(t, "192.168.1.70", ep.Host)
	assert.Equal(t, 4999, ep.Port)
	assert.Equal(t, sampleBeacon, ep.RawBeacon)

	assert.Equal(t, "GlobalCache_000C1E024239", ep.Metadata["UUID"])
	assert.Equal(t, "GlobalCache", ep.Metadata["Make"])
	assert.Equal(t, "iTachIP2SL", ep.Metadata["Model"])
	assert.Equal(t, "http://192.168.1.70", ep.Metadata["Config-URL"])
	assert.Len(t, ep.Metadata, 6)
}

func TestParseBeaconRejectsForeignDatagrams(t *testing.T) {
	t.Parallel()

	for _, data := range []string{
		"",
		"NOTIFY * HTTP/1.1",
		"amxb<-UUID=lowercase-prefix>",
	} {
		_, ok := parseBeacon("10.0.0.1", []byte(data))
		assert.False(t, ok, "datagram %q", data)
	}
}

func TestParseBeaconUnparseableFieldsKeepEmptyMetadata(t *testing.T) {
	t.Parallel()

	// The source address alone names a connectable bridge, so a mangled
	// beacon still yields an endpoint.
	ep, ok := parseBeacon("10.0.0.9", []byte("AMXB garbage without fields"))
	require.True(t, ok)

	assert.Equal(t, "10.0.0.9", ep.Host)
	assert.Equal(t, 4999, ep.Port)
	assert.Empty(t, ep.Metadata)
}

func TestParseBeaconTrimsFraming(t *testing.T) {
	t.Parallel()

	ep, ok := parseBeacon("10.0.0.2", []byte("AMXB<-Make=GlobalCache>\r\n"))
	require.True(t, ok)
	assert.Equal(t, "GlobalCache", ep.Metadata["Make"])
}

func TestEndpointTransport(t *testing.T) {
	t.Parallel()

	ep := Endpoint{Host: "192.168.1.70", Port: 4999}
	assert.Equal(t, "tcp://192.168.1.70:4999", ep.Transport().String())
}
