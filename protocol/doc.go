// Package protocol implements the Seymour RS232 masking-controller wire
// protocol, version 01.
//
// The controller speaks a small ASCII framed request/response protocol:
// every message is a single frame of the form '[' + two-digit protocol
// version + payload + ']'. The payload of a command frame is a one-byte
// command code followed by fixed-width ASCII parameter fields.
//
// Key Features:
//   - Command Encoding: One Encode function per controller command
//     (movement, homing, halting, calibration, preset management, status
//     and configuration queries, diagnostics).
//   - Response Decoding: One Decode function per response kind (status,
//     motor positions, system info, stored ratio settings), implemented as
//     explicit byte-offset field parsing so decode failures name the field
//     that did not match.
//   - Value Types: Validated immutable value types for ratio preset
//     identifiers and device serial numbers.
//
// The package is pure: no I/O, no goroutines, no shared state. Transports
// and connection management live in the transport and client packages.
package protocol
