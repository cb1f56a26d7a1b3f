package radar

import (
	fx "github.com/wavesense/ld2412.go/pkg/framework"
	"github.com/wavesense/ld2412.go/pkg/radar/frame"
)

// NumGates is the number of distance gates with independently
// configurable sensitivity.
const NumGates = 14

// Device is the public driver surface over one LD2412 module. It
// owns the port exclusively; all calls must be serialized by the
// caller.
type Device struct {
	ack     *AckChannel
	session *ConfigSession
	stream  *StreamReader
}

// New creates a Device over a port using the system clock.
func New(port Port) *Device {
	return NewWithTime(port, fx.SystemTime)
}

// NewWithTime creates a Device with an injected time source.
func NewWithTime(port Port, ts fx.TimeSource) *Device {
	ack := NewAckChannel(port)
	ack.Time = ts
	stream := NewStreamReader(port)
	stream.Time = ts
	return &Device{
		ack:     ack,
		session: NewConfigSession(ack),
		stream:  stream,
	}
}

// Ack exposes the underlying command channel for tuning.
func (d *Device) Ack() *AckChannel {
	return d.ack
}

// Stream exposes the underlying telemetry reader for tuning.
func (d *Device) Stream() *StreamReader {
	return d.stream
}

// Telemetry accessors. Each is backed by one StreamReader capture
// (or its cache) and returns a -1 sentinel alongside the error when
// no frame could be collected.

// TargetState returns the current detection state.
func (d *Device) TargetState() (frame.TargetState, error) {
	f, err := d.stream.Capture()
	if err != nil {
		return frame.TargetUnavailable, err
	}
	return f.TargetState(), nil
}

// MovingDistanceCM returns the moving target distance in centimeters.
func (d *Device) MovingDistanceCM() (int, error) {
	f, err := d.stream.Capture()
	if err != nil {
		return -1, err
	}
	return f.MovingDistanceCM(), nil
}

// MovingEnergy returns the moving target energy.
func (d *Device) MovingEnergy() (int, error) {
	f, err := d.stream.Capture()
	if err != nil {
		return -1, err
	}
	return f.MovingEnergy(), nil
}

// StaticDistanceCM returns the static target distance in centimeters.
func (d *Device) StaticDistanceCM() (int, error) {
	f, err := d.stream.Capture()
	if err != nil {
		return -1, err
	}
	return f.StaticDistanceCM(), nil
}

// StaticEnergy returns the static target energy.
func (d *Device) StaticEnergy() (int, error) {
	f, err := d.stream.Capture()
	if err != nil {
		return -1, err
	}
	return f.StaticEnergy(), nil
}
