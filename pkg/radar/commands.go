package radar

import (
	"encoding/binary"
	"fmt"

	"github.com/wavesense/ld2412.go/pkg/radar/frame"
)

// Result byte indexes within the fields view returned by Exchange,
// which starts at ack offset 9 (the byte after the status byte).
const (
	paramMin      = 1
	paramMax      = 2
	paramDuration = 3
	paramPolarity = 5 // offset 4 is a spacer, mirroring the set payload
	sensFirstGate = 1
	calProgress   = 1
	fwType        = 1
)

// OutputParams is the basic output parameter set.
type OutputParams struct {
	MinGate          uint8 // nearest detected gate, 1..14
	MaxGate          uint8 // farthest detected gate, 1..14
	UnmannedDuration uint8 // seconds before reporting unmanned
	OutPinPolarity   uint8 // 0: manned drives OUT high, 1: low
}

// FirmwareVersion identifies the module firmware.
type FirmwareVersion struct {
	Type  uint16
	Major uint16
	Minor uint32
}

// String implements fmt.Stringer.
func (v FirmwareVersion) String() string {
	return fmt.Sprintf("V%d.%02d.%08X", v.Major>>8, v.Major&0xFF, v.Minor)
}

// CalibrationState is the dynamic background calibration progress.
type CalibrationState int

// Calibration states.
const (
	CalibrationUnknown    CalibrationState = -1
	CalibrationIdle       CalibrationState = 0
	CalibrationInProgress CalibrationState = 1
	CalibrationDone       CalibrationState = 2
)

// String implements fmt.Stringer.
func (s CalibrationState) String() string {
	switch s {
	case CalibrationIdle:
		return "idle"
	case CalibrationInProgress:
		return "in progress"
	case CalibrationDone:
		return "done"
	default:
		return "unknown"
	}
}

// baudIndex maps supported baud rates to their command bytes.
var baudIndex = map[int]byte{
	9600:   0x01,
	19200:  0x02,
	38400:  0x03,
	57600:  0x04,
	115200: 0x05,
	230400: 0x06,
	256000: 0x07,
	460800: 0x08,
}

// ResetFactory restores all configuration values to factory settings.
// They take effect after the module restarts.
func (d *Device) ResetFactory() error {
	_, err := d.session.Do(frame.CmdFactoryReset, []byte{0x00}, frame.AckLenStatus)
	return err
}

// Restart restarts the module after the ack is sent.
func (d *Device) Restart() error {
	_, err := d.session.Do(frame.CmdRestart, []byte{0x00}, frame.AckLenStatus)
	return err
}

// SetOutputParams configures gates, unmanned duration and OUT pin
// polarity.
func (d *Device) SetOutputParams(p OutputParams) error {
	if p.MinGate < 1 || p.MaxGate > NumGates || p.MinGate > p.MaxGate {
		return ErrUnsupportedValue
	}
	payload := []byte{0x00, p.MinGate, p.MaxGate, p.UnmannedDuration, 0x00, p.OutPinPolarity}
	_, err := d.session.Do(frame.CmdSetParams, payload, frame.AckLenStatus)
	return err
}

// OutputParams reads the current output parameter set.
func (d *Device) OutputParams() (OutputParams, error) {
	fields, err := d.session.Do(frame.CmdReadParams, []byte{0x00}, frame.AckLenReadParams)
	if err != nil {
		return OutputParams{}, err
	}
	return OutputParams{
		MinGate:          fields[paramMin],
		MaxGate:          fields[paramMax],
		UnmannedDuration: fields[paramDuration],
		OutPinPolarity:   fields[paramPolarity],
	}, nil
}

// SetMotionSensitivity sets all 14 gates to one motion sensitivity
// value (0..100).
func (d *Device) SetMotionSensitivity(v int) error {
	gates, err := uniformGates(v)
	if err != nil {
		return err
	}
	return d.setSensitivity(frame.CmdSetMotionSens, gates)
}

// SetMotionGateSensitivity sets per-gate motion sensitivities.
func (d *Device) SetMotionGateSensitivity(gates [NumGates]byte) error {
	return d.setSensitivity(frame.CmdSetMotionSens, gates)
}

// SetStaticSensitivity sets all 14 gates to one static sensitivity
// value (0..100).
func (d *Device) SetStaticSensitivity(v int) error {
	gates, err := uniformGates(v)
	if err != nil {
		return err
	}
	return d.setSensitivity(frame.CmdSetStaticSens, gates)
}

// SetStaticGateSensitivity sets per-gate static sensitivities.
func (d *Device) SetStaticGateSensitivity(gates [NumGates]byte) error {
	return d.setSensitivity(frame.CmdSetStaticSens, gates)
}

func (d *Device) setSensitivity(cmd byte, gates [NumGates]byte) error {
	for _, g := range gates {
		if g > 100 {
			return ErrUnsupportedValue
		}
	}
	payload := make([]byte, 1+NumGates)
	copy(payload[1:], gates[:])
	_, err := d.session.Do(cmd, payload, frame.AckLenStatus)
	return err
}

func uniformGates(v int) (gates [NumGates]byte, err error) {
	if v < 0 || v > 100 {
		return gates, ErrUnsupportedValue
	}
	for i := range gates {
		gates[i] = byte(v)
	}
	return gates, nil
}

// MotionSensitivity returns the lowest motion sensitivity across all
// gates, or -1 with an error.
func (d *Device) MotionSensitivity() (int, error) {
	gates, err := d.MotionGateSensitivity()
	if err != nil {
		return -1, err
	}
	return minGate(gates), nil
}

// MotionGateSensitivity returns the per-gate motion sensitivities.
func (d *Device) MotionGateSensitivity() ([NumGates]byte, error) {
	return d.gateSensitivity(frame.CmdReadMotionSens)
}

// StaticSensitivity returns the lowest static sensitivity across all
// gates, or -1 with an error.
func (d *Device) StaticSensitivity() (int, error) {
	gates, err := d.StaticGateSensitivity()
	if err != nil {
		return -1, err
	}
	return minGate(gates), nil
}

// StaticGateSensitivity returns the per-gate static sensitivities.
func (d *Device) StaticGateSensitivity() ([NumGates]byte, error) {
	return d.gateSensitivity(frame.CmdReadStaticSens)
}

func (d *Device) gateSensitivity(cmd byte) (gates [NumGates]byte, err error) {
	fields, err := d.session.Do(cmd, []byte{0x00}, frame.AckLenReadSens)
	if err != nil {
		return gates, err
	}
	copy(gates[:], fields[sensFirstGate:sensFirstGate+NumGates])
	return gates, nil
}

func minGate(gates [NumGates]byte) int {
	min := int(gates[0])
	for _, g := range gates[1:] {
		if int(g) < min {
			min = int(g)
		}
	}
	return min
}

// SetBaudRate selects the serial baud rate. The value takes effect
// after the module restarts. Unsupported rates are rejected before
// any transport I/O.
func (d *Device) SetBaudRate(baud int) error {
	code, ok := baudIndex[baud]
	if !ok {
		return ErrUnsupportedValue
	}
	_, err := d.session.Do(code, []byte{0x00}, frame.AckLenStatus)
	return err
}

// FirmwareVersion reads the firmware identification.
func (d *Device) FirmwareVersion() (FirmwareVersion, error) {
	fields, err := d.session.Do(frame.CmdFirmwareVersion, []byte{0x00}, frame.AckLenFirmwareVersion)
	if err != nil {
		return FirmwareVersion{}, err
	}
	return FirmwareVersion{
		Type:  binary.LittleEndian.Uint16(fields[fwType : fwType+2]),
		Major: binary.LittleEndian.Uint16(fields[fwType+2 : fwType+4]),
		Minor: binary.LittleEndian.Uint32(fields[fwType+4 : fwType+8]),
	}, nil
}

// EnterCalibration starts dynamic background calibration. Progress is
// observable via CalibrationStatus.
func (d *Device) EnterCalibration() error {
	_, err := d.session.Do(frame.CmdEnterCalibration, []byte{0x00}, frame.AckLenStatus)
	return err
}

// CalibrationStatus queries the dynamic background calibration
// progress.
func (d *Device) CalibrationStatus() (CalibrationState, error) {
	fields, err := d.session.Do(frame.CmdQueryCalibration, []byte{0x00}, frame.AckLenQueryCal)
	if err != nil {
		return CalibrationUnknown, err
	}
	st := CalibrationState(fields[calProgress])
	if st < CalibrationIdle || st > CalibrationDone {
		return CalibrationUnknown, nil
	}
	return st, nil
}
