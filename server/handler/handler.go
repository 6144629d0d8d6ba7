// Package handler connects the drop gatekeeper to dragonfly players.
package handler

import (
	"errors"
	"log/slog"

	"github.com/df-mc/dragonfly/server/item"
	"github.com/df-mc/dragonfly/server/player"
	"github.com/df-mc/dropstop/server/gate"
)

// Handler is a player.Handler that cancels item drops denied by a
// gate.Gatekeeper. All other events, and drops that are not cancelled, are
// passed on to the handler it wraps. Drops without a player or an item are
// rejected and not passed on.
type Handler struct {
	player.Handler
	g   *gate.Gatekeeper
	log *slog.Logger
}

// New returns a Handler that consults g for every item dropped and passes
// events on to base. If base is nil, player.NopHandler is used.
func New(g *gate.Gatekeeper, base player.Handler, log *slog.Logger) *Handler {
	if base == nil {
		base = player.NopHandler{}
	}
	if log == nil {
		log = slog.Default()
	}
	return &Handler{Handler: base, g: g, log: log}
}

// HandleItemDrop ...
func (h *Handler) HandleItemDrop(ctx *player.Context, s item.Stack) {
	ev := &gate.DropEvent{Item: ItemType(s)}
	// Only assign a non-nil player so that a missing player is reported as
	// such instead of being hidden in a typed nil interface.
	if p := ctx.Val(); p != nil {
		ev.Actor = p
	}
	decision, err := h.g.HandleDrop(ev)
	if ev.Cancelled() {
		ctx.Cancel()
	}
	if err != nil {
		h.logError(ev, decision, err)
		if errors.Is(err, gate.ErrInvalidEvent) {
			return
		}
	}
	if !ctx.Cancelled() {
		h.Handler.HandleItemDrop(ctx, s)
	}
}

func (h *Handler) logError(ev *gate.DropEvent, decision gate.Decision, err error) {
	attrs := []any{"item", ev.Item, "decision", decision.String(), "error", err}
	if ev.Actor != nil {
		attrs = append(attrs, "player", ev.Actor.Name())
	}
	switch {
	case errors.Is(err, gate.ErrConfiguration):
		h.log.Error("Could not warn player about dropping an item.", attrs...)
	case errors.Is(err, gate.ErrInvalidEvent):
		h.log.Error("Rejected invalid item drop.", attrs...)
	default:
		h.log.Error("Handle item drop.", attrs...)
	}
}

// ItemType returns the identifier of the type of item in s, such as
// "minecraft:stone", or an empty string if s is empty.
func ItemType(s item.Stack) string {
	if s.Empty() {
		return ""
	}
	it := s.Item()
	if it == nil {
		return ""
	}
	name, _ := it.EncodeItem()
	return name
}

var _ player.Handler = (*Handler)(nil)
