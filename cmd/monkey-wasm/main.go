//go:build js && wasm

// monkey-wasm runs the Runner inside a js host. The region lives in the wasm
// linear memory; the host finds it through the globals installed by
// shm.ExportJS and acts as the Controller.
package main

import (
	"context"
	"os"

	"github.com/charmbracelet/log"

	"github.com/vstrozzi/monkey-3d-game/internal/config"
	"github.com/vstrozzi/monkey-3d-game/internal/shm"
	"github.com/vstrozzi/monkey-3d-game/internal/sim"
)

func main() {
	cfg := config.DefaultConfig()
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "monkey-wasm",
	})
	if lvl, err := log.ParseLevel(cfg.Runner.LogLevel); err == nil {
		logger.SetLevel(lvl)
	}

	shm.ExportJS()

	runner := sim.New(sim.CreateRegion(shm.Options{Name: cfg.Shm.Name}), cfg.Runner.TickRate, logger)
	logger.Info("runner started", "offset", shm.InitStatic().BaseOffset())
	if err := runner.Run(context.Background()); err != nil {
		logger.Fatal("runner stopped", "error", err)
	}
}
