package protocol

// EncodeMoveOut encodes a command that moves the selected motor(s) outward
// by the given increment.
func EncodeMoveOut(motor MotorID, movement Movement) []byte {
	payload := []byte{cmdMoveOut, byte(motor)}
	payload = append(payload, movement...)

	return frame(payload)
}

// EncodeMoveIn encodes a command that moves the selected motor(s) inward
// by the given increment.
func EncodeMoveIn(motor MotorID, movement Movement) []byte {
	payload := []byte{cmdMoveIn, byte(motor)}
	payload = append(payload, movement...)

	return frame(payload)
}

// EncodeMoveToRatio encodes a command that moves the motors to the stored
// preset identified by ratio.
func EncodeMoveToRatio(ratio Ratio) []byte {
	payload := []byte{cmdMoveToRatio}
	payload = append(payload, ratio.ID()...)

	return frame(payload)
}

// EncodeHome encodes a command that moves the selected motor(s) to their
// home position.
func EncodeHome(motor MotorID) []byte {
	return frame([]byte{cmdHome, byte(motor)})
}

// EncodeHalt encodes a command that stops the selected motor(s) at their
// current position.
func EncodeHalt(motor MotorID) []byte {
	return frame([]byte{cmdHalt, byte(motor)})
}

// EncodeCalibrate encodes a command that calibrates the selected motor(s)
// by driving them through their full range.
func EncodeCalibrate(motor MotorID) []byte {
	return frame([]byte{cmdCalibrate, byte(motor)})
}

// EncodeStatus encodes a status query.
func EncodeStatus() []byte {
	return frame([]byte{cmdStatus})
}

// EncodePositions encodes a motor position query.
func EncodePositions() []byte {
	return frame([]byte{cmdPositions})
}

// EncodeUpdateRatio encodes a command that stores the current motor
// positions under the preset identified by ratio.
func EncodeUpdateRatio(ratio Ratio) []byte {
	payload := []byte{cmdUpdateRatio}
	payload = append(payload, ratio.ID()...)

	return frame(payload)
}

// EncodeClearSettings encodes a command that restores the given preset to
// its factory default. A nil ratio clears every stored preset.
func EncodeClearSettings(ratio *Ratio) []byte {
	payload := []byte{cmdClearSettings}
	if ratio != nil {
		payload = append(payload, ratio.ID()...)
	}

	return frame(payload)
}

// EncodeReadSystemInfo encodes a system info query.
func EncodeReadSystemInfo() []byte {
	return frame([]byte{cmdReadSystemInfo})
}

// EncodeReadSettings encodes a query for all stored ratio presets.
func EncodeReadSettings() []byte {
	return frame([]byte{cmdReadSettings})
}

// EncodeDiagnostics encodes a debug-log diagnostic query for the given
// report option.
func EncodeDiagnostics(option DiagnosticOption) []byte {
	payload := []byte{cmdDiagnostics, diagDebugLog}
	payload = append(payload, option...)

	return frame(payload)
}
