package protocol

// Controller command codes, one per frame kind.
const (
	cmdMoveOut        byte = 'O'
	cmdMoveIn         byte = 'I'
	cmdMoveToRatio    byte = 'M'
	cmdHome           byte = 'A'
	cmdHalt           byte = 'H'
	cmdCalibrate      byte = 'C'
	cmdStatus         byte = 'S'
	cmdPositions      byte = 'P'
	cmdUpdateRatio    byte = 'U'
	cmdReadSystemInfo byte = 'Y'
	cmdReadSettings   byte = 'R'
	cmdClearSettings  byte = 'X'
	cmdDiagnostics    byte = '@'

	// diagDebugLog selects the controller's debug-log diagnostic channel;
	// it is the only diagnostic command the firmware implements.
	diagDebugLog byte = 'D'
)

// MotorID identifies one controllable masking axis, or all of them.
type MotorID byte

// Motor selector codes.
const (
	MotorTop        MotorID = 'T'
	MotorBottom     MotorID = 'B'
	MotorLeft       MotorID = 'L'
	MotorRight      MotorID = 'R'
	MotorVertical   MotorID = 'V'
	MotorHorizontal MotorID = 'H'
	MotorAll        MotorID = 'A'
)

// IsValid reports whether m is a member of the motor selector set.
func (m MotorID) IsValid() bool {
	switch m {
	case MotorTop, MotorBottom, MotorLeft, MotorRight, MotorVertical, MotorHorizontal, MotorAll:
		return true
	default:
		return false
	}
}

// String returns a human-readable name for the motor selector.
func (m MotorID) String() string {
	switch m {
	case MotorTop:
		return "top"
	case MotorBottom:
		return "bottom"
	case MotorLeft:
		return "left"
	case MotorRight:
		return "right"
	case MotorVertical:
		return "vertical"
	case MotorHorizontal:
		return "horizontal"
	case MotorAll:
		return "all"
	default:
		return "unknown"
	}
}

// Movement selects the increment of a relative move command.
//
// The empty string is a valid, meaningful encoding: it requests movement
// until the physical limit switch is reached.
type Movement string

// Movement increments.
const (
	// MoveUntilLimit drives the motor until its physical limit.
	MoveUntilLimit Movement = ""
	// MoveJog is the smallest increment the firmware supports (<0.1%).
	MoveJog Movement = "J"
	// MoveStep is a calibrated 1% move; the firmware ignores it on
	// uncalibrated motors.
	MoveStep Movement = "M"
)

// IsValid reports whether mv is a member of the movement increment set.
func (mv Movement) IsValid() bool {
	switch mv {
	case MoveUntilLimit, MoveJog, MoveStep:
		return true
	default:
		return false
	}
}

// StatusCode is the controller's one-byte operating state.
type StatusCode byte

// Controller status codes.
const (
	StatusStoppedAtRatio StatusCode = 'P'
	StatusMovingToRatio  StatusCode = 'M'
	StatusHalted         StatusCode = 'H'
	StatusHoming         StatusCode = 'A'
	StatusCalibrating    StatusCode = 'C'
	StatusMovingOutward  StatusCode = 'O'
	StatusMovingInward   StatusCode = 'I'
	StatusError          StatusCode = 'E'
)

// IsValid reports whether s is a member of the status code set.
func (s StatusCode) IsValid() bool {
	switch s {
	case StatusStoppedAtRatio, StatusMovingToRatio, StatusHalted, StatusHoming,
		StatusCalibrating, StatusMovingOutward, StatusMovingInward, StatusError:
		return true
	default:
		return false
	}
}

// String returns a human-readable name for the status code.
func (s StatusCode) String() string {
	switch s {
	case StatusStoppedAtRatio:
		return "stopped-at-ratio"
	case StatusMovingToRatio:
		return "moving-to-ratio"
	case StatusHalted:
		return "halted"
	case StatusHoming:
		return "homing"
	case StatusCalibrating:
		return "calibrating"
	case StatusMovingOutward:
		return "moving-outward"
	case StatusMovingInward:
		return "moving-inward"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}

// DiagnosticOption selects one diagnostic report from the controller's
// debug-log channel.
type DiagnosticOption string

// Diagnostic report options.
const (
	DiagListFilesystem DiagnosticOption = "00"
	DiagSettingsJSON   DiagnosticOption = "10"
	DiagSystemJSON     DiagnosticOption = "20"
)

// IsValid reports whether d is a member of the diagnostic option set.
func (d DiagnosticOption) IsValid() bool {
	switch d {
	case DiagListFilesystem, DiagSettingsJSON, DiagSystemJSON:
		return true
	default:
		return false
	}
}
