package radar

import (
	"io"
	"time"

	"github.com/golang/glog"

	fx "github.com/wavesense/ld2412.go/pkg/framework"
	"github.com/wavesense/ld2412.go/pkg/radar/frame"
)

// recvBufSize must exceed the largest expected ack (28 bytes).
const recvBufSize = 32

// AckChannel drives one command/response exchange over the port:
// encode and write the command frame, accumulate response bytes until
// the expected length or the timeout, then validate.
type AckChannel struct {
	Port    Port
	Time    fx.TimeSource
	Timeout time.Duration
	// Idle suspends the caller between availability polls. Tests
	// replace it to drive a fake TimeSource.
	Idle func(time.Duration)
}

// NewAckChannel creates an AckChannel with default timing.
func NewAckChannel(port Port) *AckChannel {
	return &AckChannel{
		Port:    port,
		Time:    fx.SystemTime,
		Timeout: DefaultAckTimeout,
		Idle:    time.Sleep,
	}
}

// Exchange sends cmd with its value payload and waits for an ack of
// ackLen total bytes. On success it returns the command-specific
// result bytes following the status byte. A non-zero status byte is
// reported as *DeviceError, distinct from framing failure.
func (a *AckChannel) Exchange(cmd byte, payload []byte, ackLen int) ([]byte, error) {
	if ackLen > recvBufSize {
		return nil, frame.ErrInvalidFrame
	}
	fr := frame.Encode(cmd, payload)
	if n, err := a.Port.Write(fr); err != nil {
		return nil, err
	} else if n != len(fr) {
		return nil, io.ErrShortWrite
	}
	if glog.V(3) {
		glog.Infof("cmd %02x sent % x", cmd, fr)
	}

	var buf [recvBufSize]byte
	n, overflow := 0, false
	deadline := a.Time.Time().Add(a.Timeout)
	for n < ackLen && a.Time.Time().Before(deadline) {
		avail := a.Port.Available()
		if avail == 0 {
			a.Idle(pollInterval)
			continue
		}
		for ; avail > 0; avail-- {
			b, err := a.Port.ReadByte()
			if err != nil {
				return nil, err
			}
			if n < recvBufSize {
				buf[n] = b
				n++
			} else {
				// Overflow bytes are discarded, and the exchange is
				// failed rather than silently truncated.
				overflow = true
			}
		}
	}
	if overflow {
		return nil, frame.ErrInvalidFrame
	}
	if n < ackLen {
		glog.V(3).Infof("cmd %02x ack timeout after %d bytes", cmd, n)
		return nil, ErrTimeout
	}

	status, fields, err := frame.ValidateAck(buf[:n], cmd, ackLen)
	if err != nil {
		return nil, err
	}
	if status != 0x00 {
		return nil, &DeviceError{Status: status}
	}
	return fields, nil
}
