package core

import (
	"sync"
	"sync/atomic"
	"time"
)

// CoarseClockResolution is how often the coarse clock refreshes.
const CoarseClockResolution = 500 * time.Microsecond

var (
	coarseClockOnce sync.Once
	coarseNow       atomic.Pointer[time.Time]
)

// StartCoarseClock starts the goroutine that caches time.Now every
// CoarseClockResolution. Calls after the first do nothing. The goroutine
// lives for the rest of the process.
func StartCoarseClock() {
	coarseClockOnce.Do(func() {
		t := time.Now()
		coarseNow.Store(&t)
		go func() {
			ticker := time.NewTicker(CoarseClockResolution)
			for range ticker.C {
				t := time.Now()
				coarseNow.Store(&t)
			}
		}()
	})
}

// CoarseNow returns the cached time. Before StartCoarseClock it falls back
// to time.Now.
func CoarseNow() time.Time {
	if t := coarseNow.Load(); t != nil {
		return *t
	}
	return time.Now()
}
