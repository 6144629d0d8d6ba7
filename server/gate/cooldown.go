package gate

import (
	"sync"
	"time"
)

// CooldownBuffer is added to the configured warning timeout to absorb timing
// jitter, so that a drop arriving a few milliseconds before the timeout ends
// does not yet produce a second warning.
const CooldownBuffer = 500 * time.Millisecond

// CooldownTable tracks when each player was last warned. It is safe for use
// by multiple goroutines. The zero value is ready for use.
type CooldownTable struct {
	mu   sync.Mutex
	last map[string]time.Duration
}

// NewCooldownTable returns an empty CooldownTable.
func NewCooldownTable() *CooldownTable {
	return &CooldownTable{last: make(map[string]time.Duration)}
}

// Acquire reports if the player passed may be warned at now, given the
// minimum window between two warnings. If so, now is recorded as the time of
// the last warning. The check and the update happen atomically, so two
// concurrent calls for the same player within one window never both succeed.
func (t *CooldownTable) Acquire(name string, now, window time.Duration) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if last, ok := t.last[name]; ok && now-last < window {
		return false
	}
	if t.last == nil {
		t.last = make(map[string]time.Duration)
	}
	t.last[name] = now
	return true
}

// Last returns the time at which the player passed was last warned.
func (t *CooldownTable) Last(name string) (time.Duration, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	last, ok := t.last[name]
	return last, ok
}

// Len returns the amount of players currently tracked.
func (t *CooldownTable) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.last)
}

// Reset forgets all players.
func (t *CooldownTable) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	clear(t.last)
}

// Prune removes every player last warned at least maxAge before now and
// returns the amount of players removed.
func (t *CooldownTable) Prune(now, maxAge time.Duration) int {
	t.mu.Lock()
	defer t.mu.Unlock()

	n := 0
	for name, last := range t.last {
		if now-last >= maxAge {
			delete(t.last, name)
			n++
		}
	}
	return n
}
