// Package discovery locates connectable masking controllers.
//
// Controllers are reached either through a Global Caché iTach IP2SL
// serial-to-TCP bridge or a directly attached serial adapter. The iTach
// announces itself with AMX-style "AMXB" beacons on the multicast group
// 239.255.250.250:9131; ListenEndpoints collects those beacons for a scan
// window. ListSerialPorts enumerates local serial devices instead.
//
// Both return candidate descriptors that yield a ready-to-use
// transport.Transport via their Transport method; discovery never opens the
// controller connection itself.
package discovery
