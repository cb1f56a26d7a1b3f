package frame

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func makeAck(cmd byte, total int, status byte, fields ...byte) []byte {
	buf := make([]byte, total)
	copy(buf, []byte{0xFD, 0xFC, 0xFB, 0xFA})
	buf[4] = byte(total - 12)
	buf[6] = cmd
	buf[7] = 0x01
	buf[8] = status
	copy(buf[9:total-4], fields)
	copy(buf[total-4:], []byte{0x04, 0x03, 0x02, 0x01})
	return buf
}

func TestEncode(t *testing.T) {
	testCases := []struct {
		name    string
		cmd     byte
		payload []byte
		expect  []byte
	}{
		{
			name:    "enable config",
			cmd:     CmdEnableConfig,
			payload: []byte{0x00, 0x01, 0x00},
			expect: []byte{
				0xFD, 0xFC, 0xFB, 0xFA,
				0x04, 0x00,
				0xFF, 0x00, 0x01, 0x00,
				0x04, 0x03, 0x02, 0x01,
			},
		},
		{
			name:    "no payload",
			cmd:     CmdRestart,
			payload: nil,
			expect: []byte{
				0xFD, 0xFC, 0xFB, 0xFA,
				0x01, 0x00,
				0xA3,
				0x04, 0x03, 0x02, 0x01,
			},
		},
		{
			name:    "sensitivity payload counts every byte",
			cmd:     CmdSetMotionSens,
			payload: []byte{0x00, 40, 40, 40, 40, 40, 40, 40, 40, 40, 40, 40, 40, 40, 40},
			expect: append(append(
				[]byte{0xFD, 0xFC, 0xFB, 0xFA, 0x10, 0x00, 0x03, 0x00},
				40, 40, 40, 40, 40, 40, 40, 40, 40, 40, 40, 40, 40, 40),
				0x04, 0x03, 0x02, 0x01),
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.expect, Encode(tc.cmd, tc.payload))
		})
	}
}

func TestValidateAck(t *testing.T) {
	buf := makeAck(CmdEnableConfig, AckLenConfig, 0x00, 0x00, 0x01, 0x00, 0x28, 0x00)
	status, fields, err := ValidateAck(buf, CmdEnableConfig, AckLenConfig)
	require.NoError(t, err)
	require.Equal(t, byte(0x00), status)
	require.Equal(t, []byte{0x00, 0x01, 0x00, 0x28, 0x00}, fields)
}

func TestValidateAckStatus(t *testing.T) {
	buf := makeAck(CmdSetParams, AckLenStatus, 0x01)
	status, _, err := ValidateAck(buf, CmdSetParams, AckLenStatus)
	require.NoError(t, err)
	require.Equal(t, byte(0x01), status)
}

func TestValidateAckSingleByteCorruption(t *testing.T) {
	// every checked position rejects a one-byte flip
	checked := []int{
		0, 1, 2, 3, // header
		4, // length
		5, // spacer
		6, // command echo
		7, // ack marker
		10, 11, 12, 13, // footer
	}
	for _, pos := range checked {
		buf := makeAck(CmdFactoryReset, AckLenStatus, 0x00)
		buf[pos] ^= 0xFF
		_, _, err := ValidateAck(buf, CmdFactoryReset, AckLenStatus)
		require.Equalf(t, ErrInvalidFrame, err, "position %d accepted corrupt byte", pos)
	}
}

func TestValidateAckUncheckedPositions(t *testing.T) {
	// status and result bytes are payload, not structure
	for _, pos := range []int{8, 9} {
		buf := makeAck(CmdFactoryReset, AckLenStatus, 0x00)
		buf[pos] = 0x5A
		_, _, err := ValidateAck(buf, CmdFactoryReset, AckLenStatus)
		require.NoErrorf(t, err, "position %d", pos)
	}
}

func TestValidateAckShortBuffer(t *testing.T) {
	buf := makeAck(CmdRestart, AckLenStatus, 0x00)
	_, _, err := ValidateAck(buf[:10], CmdRestart, AckLenStatus)
	require.Equal(t, ErrInvalidFrame, err)
}

func TestValidateAckWrongCommandEcho(t *testing.T) {
	buf := makeAck(CmdRestart, AckLenStatus, 0x00)
	_, _, err := ValidateAck(buf, CmdFactoryReset, AckLenStatus)
	require.Equal(t, ErrInvalidFrame, err)
}

func telemetryBytes() []byte {
	buf := make([]byte, TelemetryLen)
	copy(buf, []byte{0xF4, 0xF3, 0xF2, 0xF1})
	buf[8] = 0x03
	buf[9], buf[10] = 0x2C, 0x01
	buf[11] = 55
	buf[12], buf[13] = 0x90, 0x01
	buf[14] = 42
	copy(buf[17:], []byte{0xF8, 0xF7, 0xF6, 0xF5})
	return buf
}

func TestValidateTelemetry(t *testing.T) {
	f, err := ValidateTelemetry(telemetryBytes())
	require.NoError(t, err)
	require.Equal(t, TargetBoth, f.TargetState())

	for _, pos := range []int{0, 1, 2, 3, 17, 18, 19, 20} {
		buf := telemetryBytes()
		buf[pos] ^= 0xFF
		_, err := ValidateTelemetry(buf)
		require.Equalf(t, ErrMisaligned, err, "position %d", pos)
	}

	_, err = ValidateTelemetry(telemetryBytes()[:20])
	require.Equal(t, ErrMisaligned, err)
}

func TestTelemetryProjections(t *testing.T) {
	f, err := ValidateTelemetry(telemetryBytes())
	require.NoError(t, err)
	// 0x2C + (0x01 << 8), not a shift applied to the sum
	require.Equal(t, 300, f.MovingDistanceCM())
	require.Equal(t, 55, f.MovingEnergy())
	require.Equal(t, 400, f.StaticDistanceCM())
	require.Equal(t, 42, f.StaticEnergy())
}

func TestTargetStateString(t *testing.T) {
	testCases := []struct {
		state TargetState
		str   string
	}{
		{TargetNone, "none"},
		{TargetMoving, "moving"},
		{TargetStatic, "static"},
		{TargetBoth, "moving+static"},
		{TargetUnavailable, "unavailable"},
	}
	for _, tc := range testCases {
		require.Equal(t, tc.str, tc.state.String())
	}
}
