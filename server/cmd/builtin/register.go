// Package builtin holds the commands registered by the dropstop server.
package builtin

import (
	"github.com/df-mc/dragonfly/server/cmd"
	"github.com/df-mc/dropstop/server/gate"
)

// Register registers the built-in command set.
func Register(g *gate.Gatekeeper, file *gate.ConfigFile) {
	cmd.Register(NewDropStopCommand(g, file))
}
