package radar

import "time"

// Port is the duplex byte transport underneath the driver. It is a
// raw pipe with no message boundaries: ReadByte is only valid while
// Available reports pending bytes.
type Port interface {
	Write(p []byte) (int, error)
	Available() int
	ReadByte() (byte, error)
}

// pollInterval is how long a component idles between availability
// checks while waiting for bytes.
const pollInterval = time.Millisecond

// Default time bounds, matching the module's ~100ms response cadence.
const (
	DefaultAckTimeout       = 200 * time.Millisecond
	DefaultCaptureTimeout   = 200 * time.Millisecond
	DefaultRefreshThreshold = time.Second
)
