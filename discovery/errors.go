package discovery

import "errors"

// ErrDiscovery indicates the scan mechanism itself was unavailable, e.g.
// the multicast socket could not be opened or serial enumeration failed.
// Finding zero candidates is not an error.
var ErrDiscovery = errors.New("discovery: scan failed")
