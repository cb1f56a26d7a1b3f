package frame

// TargetState is the detection state reported in a telemetry frame.
type TargetState int

// Target states. Unavailable is reported when no valid telemetry
// frame has been captured.
const (
	TargetUnavailable TargetState = -1
	TargetNone        TargetState = 0
	TargetMoving      TargetState = 1
	TargetStatic      TargetState = 2
	TargetBoth        TargetState = 3
)

// String implements fmt.Stringer.
func (s TargetState) String() string {
	switch s {
	case TargetNone:
		return "none"
	case TargetMoving:
		return "moving"
	case TargetStatic:
		return "static"
	case TargetBoth:
		return "moving+static"
	default:
		return "unavailable"
	}
}

// Telemetry field offsets within the 21-byte frame.
const (
	offTargetState    = 8
	offMovingDistance = 9 // 2 bytes, little-endian
	offMovingEnergy   = 11
	offStaticDistance = 12 // 2 bytes, little-endian
	offStaticEnergy   = 14
)

// TelemetryFrame is one validated 21-byte detection-data frame.
type TelemetryFrame [TelemetryLen]byte

// TargetState returns the detection state byte.
func (f TelemetryFrame) TargetState() TargetState {
	return TargetState(f[offTargetState])
}

// MovingDistanceCM returns the moving target distance in centimeters.
func (f TelemetryFrame) MovingDistanceCM() int {
	return int(f[offMovingDistance]) | (int(f[offMovingDistance+1]) << 8)
}

// MovingEnergy returns the moving target energy value.
func (f TelemetryFrame) MovingEnergy() int {
	return int(f[offMovingEnergy])
}

// StaticDistanceCM returns the static target distance in centimeters.
func (f TelemetryFrame) StaticDistanceCM() int {
	return int(f[offStaticDistance]) | (int(f[offStaticDistance+1]) << 8)
}

// StaticEnergy returns the static target energy value.
func (f TelemetryFrame) StaticEnergy() int {
	return int(f[offStaticEnergy])
}
