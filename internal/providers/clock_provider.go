package providers

import "time"

// Clock abstracts the "now" source so day-delta arithmetic in the streak
// and engagement code is testable without sleeping through midnight.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

func NewSystemClock() Clock { return systemClock{} }
