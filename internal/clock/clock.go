package clock

import (
	"time"

	bclock "github.com/benbjohnson/clock"
)

// Clock is the time source of the chain host.
type Clock = bclock.Clock

// Mock is a manually advanced Clock.
type Mock = bclock.Mock

// New returns a Clock backed by the wall clock.
func New() Clock {
	return bclock.New()
}

// NewMock returns a Mock positioned at start.
func NewMock(start time.Time) *Mock {
	m := bclock.NewMock()
	m.Set(start)
	return m
}
