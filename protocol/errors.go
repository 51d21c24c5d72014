package protocol

import "errors"

var (
	// ErrMalformedResponse indicates that a response frame did not match the
	// expected shape for the requested response kind. A decode function never
	// returns a partially populated result together with this error.
	ErrMalformedResponse = errors.New("protocol: malformed response")

	// ErrInvalidRatio indicates that a ratio preset identifier is not exactly
	// three ASCII digits.
	ErrInvalidRatio = errors.New("protocol: invalid ratio id")

	// ErrInvalidSerialNumber indicates that a device serial number does not
	// match the "XX-MMYY-PPPPP" layout.
	ErrInvalidSerialNumber = errors.New("protocol: malformed serial number")
)
