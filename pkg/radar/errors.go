package radar

import (
	"errors"
	"fmt"
)

var (
	// ErrTimeout indicates no (or insufficient) response arrived
	// within the operation's time bound. Operations are never retried
	// automatically.
	ErrTimeout = errors.New("timeout")
	// ErrUnsupportedValue indicates a request value outside the
	// device's accepted range. Rejected before any transport I/O.
	ErrUnsupportedValue = errors.New("unsupported value")
)

// DeviceError indicates the device received a well-formed command and
// explicitly declined it with a non-zero status byte.
type DeviceError struct {
	Status byte
}

// Error implements error.
func (e *DeviceError) Error() string {
	return fmt.Sprintf("device rejected command (status 0x%02x)", e.Status)
}
