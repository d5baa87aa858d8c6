package nube

import (
	"sync"
	"time"
)

// limiter paces outbound platform calls. Install fires a short burst (one
// carrier plus eight options) and the API meters requests per app, so each
// call claims its own send time before going out.
type limiter struct {
	mu    sync.Mutex
	every time.Duration
	last  time.Time
}

func newLimiter(requestsPerSecond int) *limiter {
	if requestsPerSecond <= 0 {
		requestsPerSecond = 1
	}
	return &limiter{every: time.Second / time.Duration(requestsPerSecond)}
}

// wait blocks until this call's claimed send time. Claims happen under the
// lock, the sleep does not, so a sleeping caller never blocks the next claim.
func (l *limiter) wait() {
	l.mu.Lock()
	at := l.last.Add(l.every)
	if now := time.Now(); at.Before(now) {
		at = now
	}
	l.last = at
	l.mu.Unlock()

	time.Sleep(time.Until(at))
}
