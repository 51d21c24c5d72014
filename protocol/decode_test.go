package protocol

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ===========================================================================
// DecodeStatus tests
// ===========================================================================

func TestDecodeStatus_WithRatio(t *testing.T) {
	t.Parallel()

	status, err := DecodeStatus([]byte("[01P123]"))
	require.NoError(t, err)

	assert.Equal(t, StatusStoppedAtRatio, status.Code)
	require.NotNil(t, status.Ratio)
	assert.Equal(t, "123", status.Ratio.ID())
}

func TestDecodeStatus_WithoutRatio(t *testing.T) {
	t.Parallel()

	status, err := DecodeStatus([]byte("[01H]"))
	require.NoError(t, err)

	assert.Equal(t, StatusHalted, status.Code)
	assert.Nil(t, status.Ratio)
}

func TestDecodeStatus_AllCodes(t *testing.T) {
	t.Parallel()

	for _, code := range []StatusCode{
		StatusStoppedAtRatio, StatusMovingToRatio, StatusHalted, StatusHoming,
		StatusCalibrating, StatusMovingOutward, StatusMovingInward, StatusError,
	} {
		status, err := DecodeStatus([]byte{FrameStart, '0', '1', byte(code), FrameEnd})
		require.NoError(t, err, "status code %q", byte(code))
		assert.Equal(t, code, status.Code)
	}
}

func TestDecodeStatus_Malformed(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"unknown status code": "[01Z]",
		"wrong version":       "[02P123]",
		"missing start":       "01P123]",
		"missing end":         "[01P123",
		"empty payload":       "[01]",
		"short ratio":         "[01P12]",
		"long ratio":          "[01P1234]",
		"non-digit ratio":     "[01Pabc]",
	}

	for name, raw := range cases {
		_, err := DecodeStatus([]byte(raw))
		require.ErrorIs(t, err, ErrMalformedResponse, "case %s", name)
	}
}

// ===========================================================================
// DecodePositions tests
// ===========================================================================

func TestDecodePositions(t *testing.T) {
	t.Parallel()

	positions, err := DecodePositions([]byte("[013T25.5B75.0L-10.]"))
	require.NoError(t, err)
	require.Len(t, positions, 3)

	assert.Equal(t, MaskPosition{MotorID: MotorTop, PositionPct: 25.5}, positions[0])
	assert.Equal(t, MaskPosition{MotorID: MotorBottom, PositionPct: 75.0}, positions[1])
	assert.Equal(t, MaskPosition{MotorID: MotorLeft, PositionPct: -10.0}, positions[2])
}

func TestDecodePositions_SingleMotor(t *testing.T) {
	t.Parallel()

	positions, err := DecodePositions([]byte("[011T50.0]"))
	require.NoError(t, err)
	require.Len(t, positions, 1)

	assert.Equal(t, MotorTop, positions[0].MotorID)
	assert.InDelta(t, 50.0, positions[0].PositionPct, 1e-9)
}

func TestDecodePositions_CountMismatch(t *testing.T) {
	t.Parallel()

	// Count field says 2 but only one entry follows.
	_, err := DecodePositions([]byte("[012T25.5]"))
	require.ErrorIs(t, err, ErrMalformedResponse)

	// Count field says 1 but two entries follow.
	_, err = DecodePositions([]byte("[011T25.5B75.0]"))
	require.ErrorIs(t, err, ErrMalformedResponse)
}

func TestDecodePositions_Malformed(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"zero count":           "[010]",
		"count too large":      "[015T25.5B75.0L-10.R12.5V50.0]",
		"unknown motor":        "[011Z25.5]",
		"non-numeric position": "[011Tx5.5]",
		"empty payload":        "[01]",
	}

	for name, raw := range cases {
		_, err := DecodePositions([]byte(raw))
		require.ErrorIs(t, err, ErrMalformedResponse, "case %s", name)
	}
}

// ===========================================================================
// DecodeSystemInfo tests
// ===========================================================================

func systemInfoFrame(model, width, height, serial, masks string) []byte {
	return []byte("[01" + model + width + height + serial + masks + "]")
}

func TestDecodeSystemInfo(t *testing.T) {
	t.Parallel()

	raw := systemInfoFrame("Premier 235         ", "110.25", "046.75", "AB-1225-12345", "TBLR")

	info, err := DecodeSystemInfo(raw)
	require.NoError(t, err)

	assert.Equal(t, "Premier 235", info.ScreenModel)
	assert.InDelta(t, 110.25, info.WidthInches, 1e-9)
	assert.InDelta(t, 46.75, info.HeightInches, 1e-9)
	assert.Equal(t, "AB-1225-12345", info.SerialNumber.String())
	assert.Equal(t, []MotorID{MotorTop, MotorBottom, MotorLeft, MotorRight}, info.MaskIDs)
}

func TestDecodeSystemInfo_SingleMask(t *testing.T) {
	t.Parallel()

	raw := systemInfoFrame(strings.Repeat(" ", 10)+"Reference ", "100.00", "056.25", "RF-0124-00042", "T")

	info, err := DecodeSystemInfo(raw)
	require.NoError(t, err)

	assert.Equal(t, "Reference", info.ScreenModel)
	assert.Equal(t, []MotorID{MotorTop}, info.MaskIDs)
}

func TestDecodeSystemInfo_Malformed(t *testing.T) {
	t.Parallel()

	cases := map[string][]byte{
		"no masks":       systemInfoFrame("Premier 235         ", "110.25", "046.75", "AB-1225-12345", ""),
		"too many masks": systemInfoFrame("Premier 235         ", "110.25", "046.75", "AB-1225-12345", "TBLRTB"),
		"bad mask id":    systemInfoFrame("Premier 235         ", "110.25", "046.75", "AB-1225-12345", "TBLV"),
		"bad width":      systemInfoFrame("Premier 235         ", "x10.25", "046.75", "AB-1225-12345", "TB"),
		"bad serial":     systemInfoFrame("Premier 235         ", "110.25", "046.75", "AB+1225+12345", "TB"),
		"truncated":      []byte("[01Premier]"),
	}

	for name, raw := range cases {
		_, err := DecodeSystemInfo(raw)
		require.ErrorIs(t, err, ErrMalformedResponse, "case %s", name)
	}
}

// ===========================================================================
// DecodeSettings tests
// ===========================================================================

// settingEntry builds one wire entry: ratio + label + width + height +
// per-motor positions and adjustments.
func settingEntry(ratio, label, width, height string, positions, adjustments []string) string {
	var sb strings.Builder

	sb.WriteString(ratio)
	sb.WriteString(label)
	sb.WriteString(width)
	sb.WriteString(height)

	for _, p := range positions {
		sb.WriteString(p)
	}

	for _, a := range adjustments {
		sb.WriteString(a)
	}

	return sb.String()
}

func TestRatioSettingEntryLen(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 23, RatioSettingEntryLen(0))
	assert.Equal(t, 31, RatioSettingEntryLen(1))
	assert.Equal(t, 39, RatioSettingEntryLen(2))
	assert.Equal(t, 55, RatioSettingEntryLen(4))
}

func TestDecodeSettings(t *testing.T) {
	t.Parallel()

	entry1 := settingEntry("235", "Scope   ", "110.25", "046.75",
		[]string{"25.5", "75.0"}, []string{"-1.5", "00.0"})
	entry2 := settingEntry("178", "Flat    ", "098.50", "055.25",
		[]string{"00.0", "10.5"}, []string{"02.5", "-0.5"})

	raw := []byte("[01" + "2" + "02" + entry1 + entry2 + "]")

	settings, err := DecodeSettings(raw)
	require.NoError(t, err)
	require.Len(t, settings, 2)

	first := settings[0]
	assert.Equal(t, "235", first.Ratio.ID())
	assert.Equal(t, "Scope", first.Label)
	assert.InDelta(t, 110.25, first.WidthInches, 1e-9)
	assert.InDelta(t, 46.75, first.HeightInches, 1e-9)
	assert.Equal(t, []float64{25.5, 75.0}, first.MotorPositionsPct)
	assert.Equal(t, []float64{-1.5, 0.0}, first.MotorAdjustsPct)

	second := settings[1]
	assert.Equal(t, "178", second.Ratio.ID())
	assert.Equal(t, "Flat", second.Label)
	assert.Equal(t, []float64{0.0, 10.5}, second.MotorPositionsPct)
	assert.Equal(t, []float64{2.5, -0.5}, second.MotorAdjustsPct)
}

func TestDecodeSettings_NoRatios(t *testing.T) {
	t.Parallel()

	settings, err := DecodeSettings([]byte("[01200]"))
	require.NoError(t, err)
	assert.Empty(t, settings)
}

func TestDecodeSettings_LengthMismatch(t *testing.T) {
	t.Parallel()

	entry := settingEntry("235", "Scope   ", "110.25", "046.75",
		[]string{"25.5", "75.0"}, []string{"-1.5", "00.0"})

	// Ratio count claims two entries but only one is present.
	_, err := DecodeSettings([]byte("[01" + "2" + "02" + entry + "]"))
	require.ErrorIs(t, err, ErrMalformedResponse)
	assert.Contains(t, err.Error(), "expected 2 ratio entries of length 39")

	// Truncated entry.
	_, err = DecodeSettings([]byte("[01" + "2" + "01" + entry[:len(entry)-1] + "]"))
	require.ErrorIs(t, err, ErrMalformedResponse)
}

func TestDecodeSettings_BadFields(t *testing.T) {
	t.Parallel()

	badRatio := settingEntry("2x5", "Scope   ", "110.25", "046.75",
		[]string{"25.5"}, []string{"-1.5"})
	_, err := DecodeSettings([]byte("[01" + "1" + "01" + badRatio + "]"))
	require.ErrorIs(t, err, ErrMalformedResponse)

	badPosition := settingEntry("235", "Scope   ", "110.25", "046.75",
		[]string{"2z.5"}, []string{"-1.5"})
	_, err = DecodeSettings([]byte("[01" + "1" + "01" + badPosition + "]"))
	require.ErrorIs(t, err, ErrMalformedResponse)
}

// ===========================================================================
// DecodeDiagnostics tests
// ===========================================================================

func TestDecodeDiagnostics(t *testing.T) {
	t.Parallel()

	payload, err := DecodeDiagnostics([]byte("[01@D10 settings.json 1024 bytes]"))
	require.NoError(t, err)
	assert.Equal(t, "@D10 settings.json 1024 bytes", payload)

	_, err = DecodeDiagnostics([]byte("no frame"))
	require.ErrorIs(t, err, ErrMalformedResponse)
}
