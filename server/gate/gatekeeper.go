package gate

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"
)

// DropEvent is a single attempt of a player to drop an item.
type DropEvent struct {
	// Actor is the player dropping the item.
	Actor Actor
	// Item is the identifier of the type of the item dropped, for example
	// "minecraft:stone".
	Item string

	cancelled bool
}

// Cancel marks the drop as cancelled, so that the item stays in the inventory
// of the player.
func (e *DropEvent) Cancel() {
	e.cancelled = true
}

// Cancelled reports if the drop was cancelled.
func (e *DropEvent) Cancelled() bool {
	return e.cancelled
}

func (e *DropEvent) validate() error {
	if e == nil {
		return fmt.Errorf("%w: nil event", ErrInvalidEvent)
	}
	if e.Actor == nil {
		return fmt.Errorf("%w: missing player", ErrInvalidEvent)
	}
	if e.Item == "" {
		return fmt.Errorf("%w: missing item", ErrInvalidEvent)
	}
	return nil
}

// Stats holds counters of the drops handled by a Gatekeeper.
type Stats struct {
	Allowed, Denied     uint64
	Warned, Suppressed  uint64
	Invalid, Misconfigs uint64
}

// Gatekeeper decides on drop attempts and warns players whose drops are
// cancelled. A Gatekeeper is safe for use by multiple goroutines.
type Gatekeeper struct {
	policy   atomic.Pointer[Policy]
	notifier *Notifier
	clock    Clock
	log      *slog.Logger

	allowed, denied    atomic.Uint64
	warned, suppressed atomic.Uint64
	invalid, misconfig atomic.Uint64
}

// New creates a Gatekeeper using conf. If clock is nil, MonotonicClock is used.
// If log is nil, slog.Default() is used. Problems found by Config.Validate are
// logged but do not prevent drops from being handled.
func New(conf Config, clock Clock, log *slog.Logger) *Gatekeeper {
	if clock == nil {
		clock = MonotonicClock()
	}
	if log == nil {
		log = slog.Default()
	}
	g := &Gatekeeper{clock: clock, log: log}
	g.notifier = NewNotifier(NewCooldownTable(), log)
	g.store(conf)
	return g
}

// Policy returns the Policy currently in use.
func (g *Gatekeeper) Policy() *Policy {
	return g.policy.Load()
}

// Reload replaces the configuration used for subsequent drops. Warning
// cooldowns of players are kept.
func (g *Gatekeeper) Reload(conf Config) {
	g.store(conf)
	g.log.Info("Reloaded drop configuration.", "blocking", conf.DisableItemDrops, "allowlisting", conf.ItemAllowlisting, "allowlist", len(conf.ItemAllowlist))
}

func (g *Gatekeeper) store(conf Config) {
	if err := conf.Validate(); err != nil {
		g.log.Error("Drop configuration is invalid.", "error", err)
	}
	g.policy.Store(NewPolicy(conf))
}

// HandleDrop evaluates the drop attempt passed. If the drop is denied, ev is
// cancelled and, if enabled, the player is warned. An error wrapping
// ErrInvalidEvent is returned, and ev left as is, if ev lacks a player or an
// item. An error wrapping ErrConfiguration is returned, after cancelling ev,
// if the player should be warned but no warning message is configured.
func (g *Gatekeeper) HandleDrop(ev *DropEvent) (Decision, error) {
	if err := ev.validate(); err != nil {
		g.invalid.Add(1)
		return Allow, err
	}
	p := g.policy.Load()
	if p.Evaluate(ev.Item) == Allow {
		g.allowed.Add(1)
		return Allow, nil
	}
	g.denied.Add(1)
	ev.Cancel()

	if !p.conf.WarnPlayerOnDrop {
		return Deny, nil
	}
	sent, err := g.notifier.Notify(p, ev.Actor, g.clock.Now())
	switch {
	case err != nil:
		g.misconfig.Add(1)
		return Deny, err
	case sent:
		g.warned.Add(1)
	default:
		g.suppressed.Add(1)
	}
	return Deny, nil
}

// Stats returns the counters of all drops handled so far.
func (g *Gatekeeper) Stats() Stats {
	return Stats{
		Allowed:    g.allowed.Load(),
		Denied:     g.denied.Load(),
		Warned:     g.warned.Load(),
		Suppressed: g.suppressed.Load(),
		Invalid:    g.invalid.Load(),
		Misconfigs: g.misconfig.Load(),
	}
}

// Cooldowns returns the amount of players that currently have a warning
// cooldown recorded.
func (g *Gatekeeper) Cooldowns() int {
	return g.notifier.Table().Len()
}

// ResetCooldowns forgets when players were last warned, so that the next
// denied drop of every player produces a warning.
func (g *Gatekeeper) ResetCooldowns() {
	g.notifier.Table().Reset()
}

// Sweep removes cooldown entries older than the configured expiry and returns
// the amount removed. Sweep does nothing if no expiry is configured.
func (g *Gatekeeper) Sweep() int {
	expiry := g.policy.Load().conf.Expiry()
	if expiry == 0 {
		return 0
	}
	return g.notifier.Table().Prune(g.clock.Now(), expiry)
}

// RunSweeper calls Sweep every interval until ctx is cancelled.
func (g *Gatekeeper) RunSweeper(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := g.Sweep(); n > 0 {
				g.log.Debug("Removed expired warning cooldowns.", "count", n)
			}
		}
	}
}
