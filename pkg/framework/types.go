package framework

import (
	"context"
	"time"
)

// Named is an abstraction for things with a name.
type Named interface {
	Name() string
}

// Runnable defines a generic interface for background runners.
type Runnable interface {
	Run(context.Context) error
}

// TimeSource provides the current time for timeout and cache-age
// computation. Components take a TimeSource instead of calling
// time.Now so tests can drive time deterministically.
type TimeSource interface {
	Time() time.Time
}

// TimeFunc is the func form of TimeSource.
type TimeFunc func() time.Time

// Time implements TimeSource.
func (f TimeFunc) Time() time.Time {
	return f()
}

// SystemTime is the wall-clock TimeSource.
var SystemTime TimeSource = TimeFunc(time.Now)
