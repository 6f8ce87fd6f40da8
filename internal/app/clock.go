package app

import "time"

// Clock supplies the time used for animation phase and idle timeouts.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }
