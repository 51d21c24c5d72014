// Package client provides the operation coordinator for a Seymour-Screen
// Excellence masking controller, turning the half-duplex request/response
// wire into a reliable concurrent API.
//
// The controller accepts exactly one connection and exchanges frames
// strictly one at a time: two overlapping requests would interleave bytes
// on the wire and a caller could receive a syntactically valid response
// belonging to someone else's request, with no wire-level way to detect the
// mismatch. The Client therefore serializes every operation with one mutex
// held across the whole exchange:
//
//   - reconnect if the link is down
//   - send the request frame
//   - read the response frame, for query-style commands
//
// # Failure Handling
//
// Each attempt is bounded by a request timeout; transport-class failures
// and timeouts are retried with exponential backoff. Exhausted retries
// surface wrapped in [ErrConnection], undecodable responses and other
// unexpected failures in [ErrProtocol]. Either way the client flips to
// disconnected and the next operation reconnects transparently, so callers
// never manage the link themselves.
//
// # Health Monitoring
//
// An optional background monitor (StartHealthMonitoring) probes the
// controller with a status query at a fixed interval, skipping the probe
// when real traffic succeeded recently. A failed probe marks the client
// disconnected without stopping the monitor.
//
// Movement commands are fire-and-forget; use [Client.WaitForStatus] to
// block until the controller settles.
package client
