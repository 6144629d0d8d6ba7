package builtin

import (
	"errors"
	"sort"
	"strings"

	"github.com/df-mc/dragonfly/server/cmd"
	"github.com/df-mc/dragonfly/server/player"
	"github.com/df-mc/dragonfly/server/world"
	"github.com/df-mc/dropstop/server/gate"
	"github.com/sandertv/gophertunnel/minecraft/text"
)

// dropState is the state shared by the dropstop sub commands.
type dropState struct {
	g    *gate.Gatekeeper
	file *gate.ConfigFile
}

// reload applies the configuration last read from or written to the file.
func (s dropState) reload() {
	s.g.Reload(s.file.Config())
}

type dropStatusCommand struct {
	state dropState
	Sub   cmd.SubCommand `cmd:"status"`
}

type dropReloadCommand struct {
	state dropState
	Sub   cmd.SubCommand `cmd:"reload"`
}

type dropResetCommand struct {
	state dropState
	Sub   cmd.SubCommand `cmd:"reset"`
}

// The sub command fields are named Sub because every command also has an
// Allow method restricting it to the console.
type dropAllowCommand struct {
	state dropState
	Sub   cmd.SubCommand `cmd:"allow"`
	Item  string         `cmd:"item"`
}

type dropDisallowCommand struct {
	state dropState
	Sub   cmd.SubCommand `cmd:"disallow"`
	Item  string         `cmd:"item"`
}

// NewDropStopCommand returns the dropstop command, which is used to inspect
// and change the drop configuration while the server is running.
func NewDropStopCommand(g *gate.Gatekeeper, file *gate.ConfigFile) cmd.Command {
	state := dropState{g: g, file: file}
	return cmd.New(
		"dropstop",
		"Manages item drop blocking.",
		nil,
		dropStatusCommand{state: state},
		dropReloadCommand{state: state},
		dropResetCommand{state: state},
		dropAllowCommand{state: state},
		dropDisallowCommand{state: state},
	)
}

func (c dropStatusCommand) Run(_ cmd.Source, o *cmd.Output, _ *world.Tx) {
	conf := c.state.g.Policy().Config()
	o.Printf("Item drops blocked: %v. Allowlisting: %v. Warnings: %v (timeout %ds).",
		conf.DisableItemDrops, conf.ItemAllowlisting, conf.WarnPlayerOnDrop, conf.WarningTimeout)
	if len(conf.ItemAllowlist) != 0 {
		items := append([]string(nil), conf.ItemAllowlist...)
		sort.Strings(items)
		o.Printf("Allowlist (%d): %s", len(items), strings.Join(items, ", "))
	}
	stats := c.state.g.Stats()
	o.Printf("Drops allowed: %d, denied: %d. Warnings sent: %d, suppressed: %d. Tracked players: %d.",
		stats.Allowed, stats.Denied, stats.Warned, stats.Suppressed, c.state.g.Cooldowns())
	if stats.Invalid != 0 || stats.Misconfigs != 0 {
		o.Printf("Invalid drop events: %d. Failed warnings: %d.", stats.Invalid, stats.Misconfigs)
	}
	if err := conf.Validate(); err != nil {
		o.Error(err)
	}
}

func (c dropReloadCommand) Run(_ cmd.Source, o *cmd.Output, _ *world.Tx) {
	if err := c.state.file.Reload(); err != nil {
		o.Errorf("Could not reload %s: %v", c.state.file.Path(), err)
		return
	}
	c.state.reload()
	o.Print(text.Colourf("<green>Reloaded %s.</green>", c.state.file.Path()))
}

func (c dropResetCommand) Run(_ cmd.Source, o *cmd.Output, _ *world.Tx) {
	n := c.state.g.Cooldowns()
	c.state.g.ResetCooldowns()
	o.Printf("Cleared warning cooldowns of %d player(s).", n)
}

func (c dropAllowCommand) Run(_ cmd.Source, o *cmd.Output, _ *world.Tx) {
	added, err := c.state.file.Allow(c.Item)
	if err != nil {
		if errors.Is(err, gate.ErrInvalidItem) {
			o.Errorf("Invalid item: %q", c.Item)
			return
		}
		o.Error(err)
		return
	}
	if !added {
		o.Printf("%s is already on the allowlist.", c.Item)
		return
	}
	c.state.reload()
	o.Printf("Added %s to the allowlist.", c.Item)
}

func (c dropDisallowCommand) Run(_ cmd.Source, o *cmd.Output, _ *world.Tx) {
	removed, err := c.state.file.Disallow(c.Item)
	if err != nil {
		if errors.Is(err, gate.ErrInvalidItem) {
			o.Errorf("Invalid item: %q", c.Item)
			return
		}
		o.Error(err)
		return
	}
	if !removed {
		o.Printf("%s is not on the allowlist.", c.Item)
		return
	}
	c.state.reload()
	o.Printf("Removed %s from the allowlist.", c.Item)
}

func (dropStatusCommand) Allow(src cmd.Source) bool   { return consoleOnly(src) }
func (dropReloadCommand) Allow(src cmd.Source) bool   { return consoleOnly(src) }
func (dropResetCommand) Allow(src cmd.Source) bool    { return consoleOnly(src) }
func (dropAllowCommand) Allow(src cmd.Source) bool    { return consoleOnly(src) }
func (dropDisallowCommand) Allow(src cmd.Source) bool { return consoleOnly(src) }

// consoleOnly reports if src is not a player. Drop settings may only be
// changed from the console.
func consoleOnly(src cmd.Source) bool {
	_, isPlayer := src.(*player.Player)
	return !isPlayer
}
