package utils

import (
	"sync"
	"time"
)

// Debounce returns a function that runs fn once calls have stopped for wait.
// Each call restarts the timer.
func Debounce(fn func(), wait time.Duration) func() {
	var (
		mu    sync.Mutex
		timer *time.Timer
	)
	return func() {
		mu.Lock()
		defer mu.Unlock()
		if timer != nil {
			timer.Stop()
		}
		timer = time.AfterFunc(wait, fn)
	}
}

// Throttle returns a function that runs fn at most once per interval.
// Calls inside the interval are dropped.
func Throttle(fn func(), interval time.Duration) func() {
	var (
		mu   sync.Mutex
		last time.Time
	)
	return func() {
		mu.Lock()
		now := time.Now()
		if !last.IsZero() && now.Sub(last) < interval {
			mu.Unlock()
			return
		}
		last = now
		mu.Unlock()
		fn()
	}
}
