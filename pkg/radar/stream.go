package radar

import (
	"time"

	"github.com/golang/glog"

	fx "github.com/wavesense/ld2412.go/pkg/framework"
	"github.com/wavesense/ld2412.go/pkg/radar/frame"
)

// StreamReader captures periodic 21-byte telemetry frames from the
// port, realigning on the telemetry header whenever bytes do not
// match, and caches the last valid frame so bursts of reads coalesce
// into one underlying capture.
type StreamReader struct {
	Port    Port
	Time    fx.TimeSource
	Timeout time.Duration
	// RefreshThreshold is the cache age below which Capture returns
	// the cached frame without touching the port.
	RefreshThreshold time.Duration
	// Idle suspends the caller between availability polls.
	Idle func(time.Duration)

	cache      frame.TelemetryFrame
	capturedAt time.Time
	cached     bool
}

// NewStreamReader creates a StreamReader with default timing.
func NewStreamReader(port Port) *StreamReader {
	return &StreamReader{
		Port:             port,
		Time:             fx.SystemTime,
		Timeout:          DefaultCaptureTimeout,
		RefreshThreshold: DefaultRefreshThreshold,
		Idle:             time.Sleep,
	}
}

// Capture returns the cached telemetry frame when it is fresher than
// RefreshThreshold, otherwise reads the port byte-by-byte into a
// sliding window until one well-formed frame is collected. Header
// mismatches discard the window and matching restarts at the next
// byte; a footer mismatch after a fully aligned header fails the
// attempt. The whole call is bounded by Timeout regardless of how
// many restarts occur.
func (s *StreamReader) Capture() (frame.TelemetryFrame, error) {
	now := s.Time.Time()
	if s.cached && now.Sub(s.capturedAt) < s.RefreshThreshold {
		return s.cache, nil
	}

	var win [frame.TelemetryLen]byte
	deadline := now.Add(s.Timeout)
	i := 0
	for i < frame.TelemetryLen {
		if !s.Time.Time().Before(deadline) {
			return frame.TelemetryFrame{}, ErrTimeout
		}
		if s.Port.Available() == 0 {
			s.Idle(pollInterval)
			continue
		}
		b, err := s.Port.ReadByte()
		if err != nil {
			return frame.TelemetryFrame{}, err
		}
		win[i] = b
		i++
		if !headerAligned(win[:], i) {
			i = 0
		}
	}

	f, err := frame.ValidateTelemetry(win[:])
	if err != nil {
		glog.V(3).Infof("telemetry capture failed: % x", win)
		return frame.TelemetryFrame{}, err
	}
	s.cache, s.capturedAt, s.cached = f, s.Time.Time(), true
	return f, nil
}

// headerAligned reports whether the first n window bytes still match
// the telemetry header prefix.
func headerAligned(win []byte, n int) bool {
	for k := 0; k < n && k < 4; k++ {
		if win[k] != frame.TelemetryHeaderByte(k) {
			return false
		}
	}
	return true
}
