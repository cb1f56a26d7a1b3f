package frame

import "errors"

var (
	// ErrInvalidFrame indicates a received window fails
	// header/length/echo/marker/footer validation.
	ErrInvalidFrame = errors.New("invalid frame")
	// ErrMisaligned indicates a telemetry window is not aligned on
	// the telemetry header/footer.
	ErrMisaligned = errors.New("telemetry frame misaligned")
)
