package channel

import "time"

// Timer is a pending delayed callback.
type Timer interface {
	Stop() bool
}

// Scheduler creates delayed callbacks. Tests swap in a manual one.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type realScheduler struct{}

func (realScheduler) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}
