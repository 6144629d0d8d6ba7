package gate

import (
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

type recordingActor struct {
	name string

	mu       sync.Mutex
	messages []string
}

func (a *recordingActor) Name() string { return a.name }

func (a *recordingActor) Message(args ...any) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.messages = append(a.messages, fmt.Sprint(args...))
}

// next pops the oldest unread message, if any.
func (a *recordingActor) next() (string, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if len(a.messages) == 0 {
		return "", false
	}
	msg := a.messages[0]
	a.messages = a.messages[1:]
	return msg, true
}

func (a *recordingActor) count() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.messages)
}

type fakeClock struct {
	mu  sync.Mutex
	now time.Duration
}

func (c *fakeClock) Now() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) set(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = d
}

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}
