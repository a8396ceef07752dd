package utils

import (
	"sync"
	"time"
)

var (
	clockMu  sync.Mutex
	lastTick int64
)

// NextTimestamp returns a unix-millisecond timestamp that is strictly greater
// than any value returned by a previous call, so payment-history ordering
// stays stable even when calls land inside the same millisecond.
func NextTimestamp() int64 {
	clockMu.Lock()
	defer clockMu.Unlock()

	now := time.Now().UnixMilli()
	if now <= lastTick {
		now = lastTick + 1
	}
	lastTick = now
	return now
}
