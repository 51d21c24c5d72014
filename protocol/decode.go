package protocol

import (
	"fmt"
	"strconv"
	"strings"
)

// Fixed wire field widths.
const (
	pctFieldLen = 4 // signed percentage, e.g. "25.5" or "-10."
	dimFieldLen = 6 // dimension in inches, e.g. "110.25"

	positionEntryLen = 1 + pctFieldLen // motor code + percentage

	labelFieldLen = 8
	modelFieldLen = 20

	minSystemMasks = 1
	maxSystemMasks = 5
)

// RatioSettingEntryLen returns the byte width of one stored ratio setting
// entry for a device with numMotors installed motors: ratio id, label,
// width, height, then one position and one adjustment field per motor.
func RatioSettingEntryLen(numMotors int) int {
	return ratioIDLen + labelFieldLen + 2*dimFieldLen + 2*numMotors*pctFieldLen
}

// DecodeStatus decodes a status response frame, e.g. "[01P123]" or "[01H]".
func DecodeStatus(raw []byte) (MaskStatus, error) {
	payload, err := framePayload(raw)
	if err != nil {
		return MaskStatus{}, err
	}

	if len(payload) == 0 {
		return MaskStatus{}, fmt.Errorf("%w: status frame %q has an empty payload",
			ErrMalformedResponse, raw)
	}

	code := StatusCode(payload[0])
	if !code.IsValid() {
		return MaskStatus{}, fmt.Errorf("%w: status frame %q has unknown status code %q",
			ErrMalformedResponse, raw, payload[0])
	}

	rest := payload[1:]

	switch len(rest) {
	case 0:
		return MaskStatus{Code: code}, nil

	case ratioIDLen:
		ratio, err := NewRatio(string(rest))
		if err != nil {
			return MaskStatus{}, fmt.Errorf("%w: status frame %q: %v", ErrMalformedResponse, raw, err)
		}

		return MaskStatus{Code: code, Ratio: &ratio}, nil

	default:
		return MaskStatus{}, fmt.Errorf("%w: status frame %q has %d trailing bytes after the status code",
			ErrMalformedResponse, raw, len(rest))
	}
}

// DecodePositions decodes a motor positions response frame, e.g.
// "[013T25.5B75.0L-10.]". The leading digit names how many motor entries
// follow; a length that does not match exactly is a decode failure.
func DecodePositions(raw []byte) ([]MaskPosition, error) {
	payload, err := framePayload(raw)
	if err != nil {
		return nil, err
	}

	if len(payload) == 0 {
		return nil, fmt.Errorf("%w: positions frame %q has an empty payload", ErrMalformedResponse, raw)
	}

	if payload[0] < '1' || payload[0] > '4' {
		return nil, fmt.Errorf("%w: positions frame %q has invalid motor count %q",
			ErrMalformedResponse, raw, payload[0])
	}

	count := int(payload[0] - '0')
	entries := payload[1:]

	if len(entries) != count*positionEntryLen {
		return nil, fmt.Errorf("%w: positions frame %q: expected %d entries of %d bytes, got %d payload bytes",
			ErrMalformedResponse, raw, count, positionEntryLen, len(entries))
	}

	positions := make([]MaskPosition, 0, count)

	for i := 0; i < count; i++ {
		entry := entries[i*positionEntryLen : (i+1)*positionEntryLen]

		motor := MotorID(entry[0])
		if !motor.IsValid() {
			return nil, fmt.Errorf("%w: positions frame %q: entry %d has unknown motor id %q",
				ErrMalformedResponse, raw, i, entry[0])
		}

		pct, err := parseASCIIFloat(entry[1:], true)
		if err != nil {
			return nil, fmt.Errorf("%w: positions frame %q: entry %d position field: %v",
				ErrMalformedResponse, raw, i, err)
		}

		positions = append(positions, MaskPosition{MotorID: motor, PositionPct: pct})
	}

	return positions, nil
}

// DecodeSystemInfo decodes a system info response frame: a space-padded
// 20-byte model name, six-byte width and height fields, a 13-byte serial
// number, and one byte per installed masking motor.
func DecodeSystemInfo(raw []byte) (SystemInfo, error) {
	payload, err := framePayload(raw)
	if err != nil {
		return SystemInfo{}, err
	}

	fixed := modelFieldLen + 2*dimFieldLen + serialNumberLen

	if len(payload) < fixed+minSystemMasks || len(payload) > fixed+maxSystemMasks {
		return SystemInfo{}, fmt.Errorf("%w: system info frame %q has payload length %d",
			ErrMalformedResponse, raw, len(payload))
	}

	model := strings.TrimSpace(string(payload[:modelFieldLen]))

	width, err := parseASCIIFloat(payload[modelFieldLen:modelFieldLen+dimFieldLen], false)
	if err != nil {
		return SystemInfo{}, fmt.Errorf("%w: system info frame %q: width field: %v",
			ErrMalformedResponse, raw, err)
	}

	height, err := parseASCIIFloat(payload[modelFieldLen+dimFieldLen:modelFieldLen+2*dimFieldLen], false)
	if err != nil {
		return SystemInfo{}, fmt.Errorf("%w: system info frame %q: height field: %v",
			ErrMalformedResponse, raw, err)
	}

	serial, err := ParseSerialNumber(payload[modelFieldLen+2*dimFieldLen : fixed])
	if err != nil {
		return SystemInfo{}, fmt.Errorf("%w: system info frame %q: %v", ErrMalformedResponse, raw, err)
	}

	maskBytes := payload[fixed:]
	maskIDs := make([]MotorID, 0, len(maskBytes))

	for _, b := range maskBytes {
		// The firmware reports individual masking axes only, never the
		// vertical/horizontal pairs or the all-axes selector.
		switch MotorID(b) {
		case MotorTop, MotorBottom, MotorLeft, MotorRight:
			maskIDs = append(maskIDs, MotorID(b))
		default:
			return SystemInfo{}, fmt.Errorf("%w: system info frame %q has unknown mask id %q",
				ErrMalformedResponse, raw, b)
		}
	}

	return SystemInfo{
		ScreenModel:  model,
		WidthInches:  width,
		HeightInches: height,
		SerialNumber: serial,
		MaskIDs:      maskIDs,
	}, nil
}

// DecodeSettings decodes a stored-settings response frame: a one-digit
// motor count, a two-digit ratio count, then that many fixed-width setting
// entries. The total payload length must match exactly or decoding fails
// with a length mismatch error.
func DecodeSettings(raw []byte) ([]RatioSetting, error) {
	payload, err := framePayload(raw)
	if err != nil {
		return nil, err
	}

	if len(payload) < 3 {
		return nil, fmt.Errorf("%w: settings frame %q is missing its count fields",
			ErrMalformedResponse, raw)
	}

	if payload[0] < '0' || payload[0] > '9' {
		return nil, fmt.Errorf("%w: settings frame %q has non-numeric motor count %q",
			ErrMalformedResponse, raw, payload[0])
	}

	numMotors := int(payload[0] - '0')

	numRatios, err := parseTwoDigits(payload[1:3])
	if err != nil {
		return nil, fmt.Errorf("%w: settings frame %q has non-numeric ratio count %q",
			ErrMalformedResponse, raw, payload[1:3])
	}

	entryLen := RatioSettingEntryLen(numMotors)
	entries := payload[3:]

	if len(entries) != entryLen*numRatios {
		return nil, fmt.Errorf("%w: settings frame %q: expected %d ratio entries of length %d, got total length %d",
			ErrMalformedResponse, raw, numRatios, entryLen, len(entries))
	}

	settings := make([]RatioSetting, 0, numRatios)

	for i := 0; i < numRatios; i++ {
		entry := entries[i*entryLen : (i+1)*entryLen]

		setting, err := decodeSettingEntry(entry, numMotors)
		if err != nil {
			return nil, fmt.Errorf("%w: settings frame %q: entry %d: %v", ErrMalformedResponse, raw, i, err)
		}

		settings = append(settings, setting)
	}

	return settings, nil
}

// decodeSettingEntry parses one fixed-width ratio setting entry: 3-byte
// ratio id, 8-byte space-padded label, 6-byte width and height, then one
// 4-byte position field and one 4-byte adjustment field per motor.
func decodeSettingEntry(entry []byte, numMotors int) (RatioSetting, error) {
	ratio, err := NewRatio(string(entry[:ratioIDLen]))
	if err != nil {
		return RatioSetting{}, err
	}

	label := strings.TrimSpace(string(entry[ratioIDLen : ratioIDLen+labelFieldLen]))

	off := ratioIDLen + labelFieldLen

	width, err := parseASCIIFloat(entry[off:off+dimFieldLen], false)
	if err != nil {
		return RatioSetting{}, fmt.Errorf("width field: %w", err)
	}

	height, err := parseASCIIFloat(entry[off+dimFieldLen:off+2*dimFieldLen], false)
	if err != nil {
		return RatioSetting{}, fmt.Errorf("height field: %w", err)
	}

	off += 2 * dimFieldLen

	positions := make([]float64, 0, numMotors)
	adjustments := make([]float64, 0, numMotors)

	for m := 0; m < numMotors; m++ {
		pos, err := parseASCIIFloat(entry[off+m*pctFieldLen:off+(m+1)*pctFieldLen], true)
		if err != nil {
			return RatioSetting{}, fmt.Errorf("position field %d: %w", m, err)
		}

		positions = append(positions, pos)
	}

	off += numMotors * pctFieldLen

	for m := 0; m < numMotors; m++ {
		adj, err := parseASCIIFloat(entry[off+m*pctFieldLen:off+(m+1)*pctFieldLen], true)
		if err != nil {
			return RatioSetting{}, fmt.Errorf("adjustment field %d: %w", m, err)
		}

		adjustments = append(adjustments, adj)
	}

	return RatioSetting{
		Ratio:             ratio,
		Label:             label,
		WidthInches:       width,
		HeightInches:      height,
		MotorPositionsPct: positions,
		MotorAdjustsPct:   adjustments,
	}, nil
}

// DecodeDiagnostics validates the frame delimiters and version of a
// diagnostics response and returns its payload text.
func DecodeDiagnostics(raw []byte) (string, error) {
	payload, err := framePayload(raw)
	if err != nil {
		return "", err
	}

	return string(payload), nil
}

// parseASCIIFloat parses a fixed-width ASCII floating point wire field.
// The accepted character set is digits and '.', plus '-' for signed
// fields; anything else fails before the numeric parse so the error can
// name the offending character.
func parseASCIIFloat(field []byte, signed bool) (float64, error) {
	for _, b := range field {
		if b >= '0' && b <= '9' || b == '.' {
			continue
		}

		if signed && b == '-' {
			continue
		}

		return 0, fmt.Errorf("invalid character %q in numeric field %q", b, field)
	}

	v, err := strconv.ParseFloat(string(field), 64)
	if err != nil {
		return 0, fmt.Errorf("non-numeric field %q", field)
	}

	return v, nil
}
