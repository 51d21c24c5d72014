package protocol

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustRatio(t *testing.T, id string) Ratio {
	t.Helper()

	ratio, err := NewRatio(id)
	require.NoError(t, err)

	return ratio
}

func TestEncodeMovement(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []byte("[01OTJ]"), EncodeMoveOut(MotorTop, MoveJog))
	assert.Equal(t, []byte("[01OLJ]"), EncodeMoveOut(MotorLeft, MoveJog))
	assert.Equal(t, []byte("[01IB]"), EncodeMoveIn(MotorBottom, MoveUntilLimit))
	assert.Equal(t, []byte("[01IAM]"), EncodeMoveIn(MotorAll, MoveStep))
}

func TestEncodeMoveToRatio(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []byte("[01M123]"), EncodeMoveToRatio(mustRatio(t, "123")))
	assert.Equal(t, []byte("[01M235]"), EncodeMoveToRatio(mustRatio(t, "235")))
}

func TestEncodeMotorCommands(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []byte("[01AT]"), EncodeHome(MotorTop))
	assert.Equal(t, []byte("[01HA]"), EncodeHalt(MotorAll))
	assert.Equal(t, []byte("[01CV]"), EncodeCalibrate(MotorVertical))
}

func TestEncodeQueries(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []byte("[01S]"), EncodeStatus())
	assert.Equal(t, []byte("[01P]"), EncodePositions())
	assert.Equal(t, []byte("[01Y]"), EncodeReadSystemInfo())
	assert.Equal(t, []byte("[01R]"), EncodeReadSettings())
}

func TestEncodeSettingsCommands(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []byte("[01U456]"), EncodeUpdateRatio(mustRatio(t, "456")))

	ratio := mustRatio(t, "789")
	assert.Equal(t, []byte("[01X789]"), EncodeClearSettings(&ratio))
	assert.Equal(t, []byte("[01X]"), EncodeClearSettings(nil), "nil ratio clears all presets")
}

func TestEncodeDiagnostics(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []byte("[01@D10]"), EncodeDiagnostics(DiagSettingsJSON))
	assert.Equal(t, []byte("[01@D00]"), EncodeDiagnostics(DiagListFilesystem))
	assert.Equal(t, []byte("[01@D20]"), EncodeDiagnostics(DiagSystemJSON))
}

func TestEncodeDeterministic(t *testing.T) {
	t.Parallel()

	// Calling an encoder twice with identical arguments yields byte-identical frames.
	assert.Equal(t, EncodeMoveOut(MotorTop, MoveJog), EncodeMoveOut(MotorTop, MoveJog))
	assert.Equal(t, EncodeMoveToRatio(mustRatio(t, "178")), EncodeMoveToRatio(mustRatio(t, "178")))
	assert.Equal(t, EncodeStatus(), EncodeStatus())
}

func TestEncodedFramesAreDelimited(t *testing.T) {
	t.Parallel()

	frames := [][]byte{
		EncodeMoveOut(MotorTop, MoveJog),
		EncodeMoveIn(MotorBottom, MoveUntilLimit),
		EncodeMoveToRatio(mustRatio(t, "235")),
		EncodeHome(MotorAll),
		EncodeHalt(MotorAll),
		EncodeCalibrate(MotorAll),
		EncodeStatus(),
		EncodePositions(),
		EncodeUpdateRatio(mustRatio(t, "235")),
		EncodeClearSettings(nil),
		EncodeReadSystemInfo(),
		EncodeReadSettings(),
		EncodeDiagnostics(DiagListFilesystem),
	}

	for _, f := range frames {
		require.GreaterOrEqual(t, len(f), 4)
		assert.Equal(t, FrameStart, f[0])
		assert.Equal(t, FrameEnd, f[len(f)-1])
		assert.Equal(t, Version, string(f[1:3]))
	}
}
