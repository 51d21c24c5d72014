package protocol

import "fmt"

// Frame delimiters and the single supported protocol version.
const (
	FrameStart byte = '['
	FrameEnd   byte = ']'

	// Version is the two-digit ASCII protocol version carried by every frame.
	Version = "01"
)

// frame wraps a payload into a complete wire frame:
// '[' + version + payload + ']'.
func frame(payload []byte) []byte {
	buf := make([]byte, 0, len(Version)+len(payload)+2)
	buf = append(buf, FrameStart)
	buf = append(buf, Version...)
	buf = append(buf, payload...)
	buf = append(buf, FrameEnd)

	return buf
}

// framePayload validates the frame delimiters and protocol version of a raw
// response frame and returns the payload between them.
func framePayload(raw []byte) ([]byte, error) {
	if len(raw) < len(Version)+2 || raw[0] != FrameStart || raw[len(raw)-1] != FrameEnd {
		return nil, fmt.Errorf("%w: frame %q is not delimited by %q and %q",
			ErrMalformedResponse, raw, FrameStart, FrameEnd)
	}

	if string(raw[1:1+len(Version)]) != Version {
		return nil, fmt.Errorf("%w: frame %q carries unsupported protocol version %q",
			ErrMalformedResponse, raw, raw[1:1+len(Version)])
	}

	return raw[1+len(Version) : len(raw)-1], nil
}
