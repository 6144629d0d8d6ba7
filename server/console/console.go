// Package console runs commands typed into the terminal of the server.
package console

import (
	"bufio"
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/df-mc/dragonfly/server/cmd"
	"github.com/df-mc/dragonfly/server/world"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/sandertv/gophertunnel/minecraft/text"
)

// Executor gives the console a world to run commands in. *server.Server
// implements Executor.
type Executor interface {
	World() *world.World
}

// Console lets operators run commands such as /dropstop from the terminal the
// server was started in. Command output is written to a logger.
type Console struct {
	srv Executor
	src *Source
	in  io.Reader
}

// New returns a Console that reads commands from os.Stdin and runs them in the
// world of srv.
func New(srv Executor, log *slog.Logger) *Console {
	return &Console{srv: srv, src: NewSource(log), in: os.Stdin}
}

// WithReader makes the Console read commands from r instead of os.Stdin.
func (c *Console) WithReader(r io.Reader) *Console {
	if r != nil {
		c.in = r
	}
	return c
}

// Run reads one command per line and executes it, waiting for each command to
// finish before reading the next. Run returns when ctx is cancelled or the
// input is exhausted.
func (c *Console) Run(ctx context.Context) {
	lines := bufio.NewScanner(c.in)
	for ctx.Err() == nil && lines.Scan() {
		line := lines.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		<-c.srv.World().Exec(func(tx *world.Tx) {
			ExecuteLine(c.src, line, tx)
		})
	}
	if err := lines.Err(); err != nil {
		c.src.log.Error("Read console input.", "error", err)
	}
}

// ExecuteLine executes a command line on behalf of the Source passed. The
// leading slash is optional. If no command with the name passed exists, an
// error is sent to the Source.
func ExecuteLine(source cmd.Source, commandLine string, tx *world.Tx) {
	name, args, _ := strings.Cut(strings.TrimSpace(commandLine), " ")
	name = strings.TrimPrefix(name, "/")
	if name == "" {
		return
	}
	command, ok := cmd.ByAlias(name)
	if !ok {
		output := &cmd.Output{}
		output.Errorf("Unknown command: %s. Please check that the command exists and that you have permission to use it.", name)
		source.SendCommandOutput(output)
		return
	}
	command.Execute(strings.TrimSpace(args), source, tx)
}

// Source is the cmd.Source of commands run from the console. Formatting codes
// are stripped from the output before it is logged.
type Source struct {
	log *slog.Logger
}

// NewSource returns a Source writing command output to log.
func NewSource(log *slog.Logger) *Source {
	if log == nil {
		log = slog.Default()
	}
	return &Source{log: log}
}

// Position returns the origin: the console has no place in a world.
func (s *Source) Position() mgl64.Vec3 { return mgl64.Vec3{} }

// Name returns "Console".
func (s *Source) Name() string { return "Console" }

// SendCommandOutput logs every message of o at info level and every error at
// error level.
func (s *Source) SendCommandOutput(o *cmd.Output) {
	for _, m := range o.Messages() {
		s.log.Info(text.Clean(m.String()))
	}
	for _, err := range o.Errors() {
		s.log.Error(text.Clean(err.Error()))
	}
}
