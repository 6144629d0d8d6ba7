package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/df-mc/dragonfly/server"
	"github.com/df-mc/dragonfly/server/player/chat"
	"github.com/df-mc/dropstop/server/cmd/builtin"
	"github.com/df-mc/dropstop/server/console"
	"github.com/df-mc/dropstop/server/gate"
	"github.com/df-mc/dropstop/server/handler"
	"github.com/pelletier/go-toml"
)

const (
	serverConfigPath = "config.toml"
	dropConfigPath   = "dropstop.toml"
	sweepInterval    = time.Minute
)

func main() {
	start := time.Now()
	log := slog.Default()
	chat.Global.Subscribe(chat.StdoutSubscriber{})

	conf, err := readConfig(log)
	if err != nil {
		log.Error("Read server config.", "error", err)
		os.Exit(1)
	}
	file, err := gate.OpenConfigFile(dropConfigPath)
	if err != nil {
		log.Error("Read drop config.", "error", err)
		os.Exit(1)
	}
	dropLog := log.With("component", "dropstop")
	g := gate.New(file.Config(), nil, dropLog)
	builtin.Register(g, file)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	srv := conf.New()
	srv.CloseOnProgramEnd()

	go g.RunSweeper(ctx, sweepInterval)
	go console.New(srv, log).Run(ctx)

	srv.Listen()
	policy := g.Policy().Config()
	dropLog.Info("DropStop initialised.", "took", time.Since(start).Round(time.Millisecond), "blocking", policy.DisableItemDrops, "allowlisting", policy.ItemAllowlisting)

	for p := range srv.Accept() {
		p.Handle(handler.New(g, nil, dropLog))
	}
	dropLog.Info("DropStop stopped.")
}

// readConfig reads the configuration from the config.toml file, or creates the
// file if it does not yet exist.
func readConfig(log *slog.Logger) (server.Config, error) {
	c := server.DefaultConfig()
	var zero server.Config
	if _, err := os.Stat(serverConfigPath); os.IsNotExist(err) {
		data, err := toml.Marshal(c)
		if err != nil {
			return zero, fmt.Errorf("encode default config: %v", err)
		}
		if err := os.WriteFile(serverConfigPath, data, 0644); err != nil {
			return zero, fmt.Errorf("create default config: %v", err)
		}
		return c.Config(log)
	}
	data, err := os.ReadFile(serverConfigPath)
	if err != nil {
		return zero, fmt.Errorf("read config: %v", err)
	}
	if err := toml.Unmarshal(data, &c); err != nil {
		return zero, fmt.Errorf("decode config: %v", err)
	}
	return c.Config(log)
}
