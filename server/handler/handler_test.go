package handler

import (
	"io"
	"log/slog"
	"testing"

	"github.com/df-mc/dragonfly/server/event"
	"github.com/df-mc/dragonfly/server/item"
	"github.com/df-mc/dragonfly/server/player"
	"github.com/df-mc/dropstop/server/gate"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

type recordingHandler struct {
	player.NopHandler
	drops int
}

func (h *recordingHandler) HandleItemDrop(*player.Context, item.Stack) {
	h.drops++
}

func TestItemType(t *testing.T) {
	if got := ItemType(item.NewStack(item.Apple{}, 1)); got != "minecraft:apple" {
		t.Fatalf("ItemType(apple) = %q, want minecraft:apple", got)
	}
	if got := ItemType(item.Stack{}); got != "" {
		t.Fatalf("ItemType(empty) = %q, want empty", got)
	}
}

func TestHandleItemDropRejectsMissingPlayer(t *testing.T) {
	g := gate.New(gate.Config{DisableItemDrops: true}, nil, discardLogger())
	base := &recordingHandler{}
	h := New(g, base, discardLogger())

	ctx := event.C[*player.Player](nil)
	h.HandleItemDrop(ctx, item.NewStack(item.Apple{}, 1))

	if ctx.Cancelled() {
		t.Fatalf("drop without a player should not be cancelled")
	}
	if base.drops != 0 {
		t.Fatalf("wrapped handler received %d rejected drops, want 0", base.drops)
	}
	if got := g.Stats().Invalid; got != 1 {
		t.Fatalf("Stats().Invalid = %d, want 1", got)
	}
}

func TestHandleItemDropRejectsEmptyStack(t *testing.T) {
	g := gate.New(gate.Config{DisableItemDrops: true}, nil, discardLogger())
	base := &recordingHandler{}
	h := New(g, base, discardLogger())

	ctx := event.C[*player.Player](nil)
	h.HandleItemDrop(ctx, item.Stack{})
	if base.drops != 0 {
		t.Fatalf("wrapped handler received %d rejected drops, want 0", base.drops)
	}

	if ctx.Cancelled() {
		t.Fatalf("drop of an empty stack should not be cancelled")
	}
	if got := g.Stats(); got.Invalid != 1 || got.Denied != 0 {
		t.Fatalf("unexpected stats %+v", got)
	}
}

func TestHandlerPassesThroughCancelledContext(t *testing.T) {
	g := gate.New(gate.Config{}, nil, discardLogger())
	base := &recordingHandler{}
	h := New(g, base, discardLogger())

	ctx := event.C[*player.Player](nil)
	ctx.Cancel()
	h.HandleItemDrop(ctx, item.NewStack(item.Apple{}, 1))
	if base.drops != 0 {
		t.Fatalf("wrapped handler should not see drops cancelled before it")
	}
}
