// Package frame implements the LD2412 wire framing: command frame
// encoding, ack validation and telemetry frame validation. It does no
// I/O.
package frame

import (
	"encoding/binary"
)

// Command words echoed back in the ack of each exchange. Baud-rate
// selection is special: the rate index (0x01..0x08) occupies the
// command-word slot itself.
const (
	CmdEnableConfig     byte = 0xFF
	CmdDisableConfig    byte = 0xFE
	CmdSetParams        byte = 0x02
	CmdSetMotionSens    byte = 0x03
	CmdSetStaticSens    byte = 0x04
	CmdEnterCalibration byte = 0x0B
	CmdReadParams       byte = 0x12
	CmdReadMotionSens   byte = 0x13
	CmdReadStaticSens   byte = 0x14
	CmdQueryCalibration byte = 0x1B
	CmdFirmwareVersion  byte = 0xA0
	CmdFactoryReset     byte = 0xA2
	CmdRestart          byte = 0xA3
)

// Total ack frame lengths, per command.
const (
	AckLenConfig          = 18 // enable/disable config
	AckLenStatus          = 14 // status-only acks (set/reset/restart)
	AckLenReadParams      = 19
	AckLenReadSens        = 28
	AckLenQueryCal        = 16
	AckLenFirmwareVersion = 22
)

// TelemetryLen is the fixed telemetry frame size.
const TelemetryLen = 21

// Control and telemetry frames use distinct header/footer sequences.
// The two families must never be confused.
var (
	ctrlHeader      = [4]byte{0xFD, 0xFC, 0xFB, 0xFA}
	ctrlFooter      = [4]byte{0x04, 0x03, 0x02, 0x01}
	telemetryHeader = [4]byte{0xF4, 0xF3, 0xF2, 0xF1}
	telemetryFooter = [4]byte{0xF8, 0xF7, 0xF6, 0xF5}
)

// TelemetryHeaderByte returns the expected telemetry header byte at pos.
func TelemetryHeaderByte(pos int) byte {
	return telemetryHeader[pos]
}

// Encode wraps a command word and its value payload into a control
// frame. The length field counts the command word plus the payload
// bytes actually supplied.
func Encode(cmd byte, payload []byte) []byte {
	b := make([]byte, 0, 4+2+1+len(payload)+4)
	b = append(b, ctrlHeader[:]...)
	var dataLen [2]byte
	binary.LittleEndian.PutUint16(dataLen[:], uint16(1+len(payload)))
	b = append(b, dataLen[:]...)
	b = append(b, cmd)
	b = append(b, payload...)
	b = append(b, ctrlFooter[:]...)
	return b
}

// ValidateAck checks a received window of total bytes against the ack
// layout for cmd: control header, payload length (total-12), 0x00
// spacer, echoed command word, 0x01 ack marker and control footer.
// On success it returns the status byte at offset 8 and a view over
// the command-specific result bytes (offsets 9..total-5).
func ValidateAck(buf []byte, cmd byte, total int) (status byte, fields []byte, err error) {
	if len(buf) < total || total < 13 {
		return 0, nil, ErrInvalidFrame
	}
	for i := 0; i < total; i++ {
		switch {
		case i < 4:
			if buf[i] != ctrlHeader[i] {
				return 0, nil, ErrInvalidFrame
			}
		case i == 4:
			if buf[i] != byte(total-12) {
				return 0, nil, ErrInvalidFrame
			}
		case i == 5:
			if buf[i] != 0x00 {
				return 0, nil, ErrInvalidFrame
			}
		case i == 6:
			if buf[i] != cmd {
				return 0, nil, ErrInvalidFrame
			}
		case i == 7:
			if buf[i] != 0x01 {
				return 0, nil, ErrInvalidFrame
			}
		case i > total-5 && i < total:
			if buf[i] != ctrlFooter[i-(total-4)] {
				return 0, nil, ErrInvalidFrame
			}
		}
	}
	return buf[8], buf[9 : total-4], nil
}

// ValidateTelemetry checks the header and footer of a 21-byte window
// and returns it as a TelemetryFrame.
func ValidateTelemetry(buf []byte) (TelemetryFrame, error) {
	var f TelemetryFrame
	if len(buf) < TelemetryLen {
		return f, ErrMisaligned
	}
	for i := 0; i < 4; i++ {
		if buf[i] != telemetryHeader[i] {
			return f, ErrMisaligned
		}
		if buf[TelemetryLen-4+i] != telemetryFooter[i] {
			return f, ErrMisaligned
		}
	}
	copy(f[:], buf[:TelemetryLen])
	return f, nil
}
