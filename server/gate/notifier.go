package gate

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/sandertv/gophertunnel/minecraft/text"
)

// Actor is the player attempting to drop an item. *player.Player implements
// Actor.
type Actor interface {
	// Name returns the display name of the player, which is also used to
	// track warning cooldowns.
	Name() string
	// Message sends a chat message to the player.
	Message(a ...any)
}

// Notifier sends rate limited warnings to players whose drops were cancelled.
type Notifier struct {
	table *CooldownTable
	log   *slog.Logger
}

// NewNotifier returns a Notifier that records warnings in the table passed. If
// table is nil, a new table is created.
func NewNotifier(table *CooldownTable, log *slog.Logger) *Notifier {
	if table == nil {
		table = NewCooldownTable()
	}
	if log == nil {
		log = slog.Default()
	}
	return &Notifier{table: table, log: log}
}

// Table returns the CooldownTable used by the Notifier.
func (n *Notifier) Table() *CooldownTable {
	return n.table
}

// Notify warns a using the message of the Policy passed, unless a was already
// warned within the cooldown window ending at now. Notify returns true if a
// message was sent. An error wrapping ErrConfiguration is returned without
// sending anything if the Policy has no warning message.
func (n *Notifier) Notify(p *Policy, a Actor, now time.Duration) (bool, error) {
	template := p.conf.WarningMessage
	if template == "" {
		return false, fmt.Errorf("%w: warning-message is empty while warn-player-on-drop is enabled", ErrConfiguration)
	}
	name := a.Name()
	if !n.table.Acquire(name, now, p.conf.Window()) {
		return false, nil
	}
	msg := Render(template, name)
	a.Message(msg)
	n.log.Debug("Warned player about dropping an item.", "player", name, "message", text.Clean(msg))
	return true, nil
}
