package protocol

// MaskStatus is the controller's operating state. Ratio is non-nil only
// when the controller reports which preset it is stopped at or moving to.
type MaskStatus struct {
	Code  StatusCode
	Ratio *Ratio
}

// MaskPosition is one motor's absolute position as a percentage of its
// travel range. The percentage may be negative on motors that allow
// movement past their home position.
type MaskPosition struct {
	MotorID     MotorID
	PositionPct float64
}

// SystemInfo is the static device descriptor reported by the controller.
type SystemInfo struct {
	ScreenModel  string
	WidthInches  float64
	HeightInches float64
	SerialNumber SerialNumber
	MaskIDs      []MotorID
}

// RatioSetting is one stored aspect-ratio preset. The per-motor slices are
// ordered the same way as SystemInfo.MaskIDs and have one entry per
// installed motor.
type RatioSetting struct {
	Ratio             Ratio
	Label             string
	WidthInches       float64
	HeightInches      float64
	MotorPositionsPct []float64
	MotorAdjustsPct   []float64
}
