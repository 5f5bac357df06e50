package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vstrozzi/monkey-3d-game/internal/shm"
	"github.com/vstrozzi/monkey-3d-game/internal/sim"
)

var runnerCmd = &cobra.Command{
	Use:   "runner",
	Short: "Create the region and run the headless simulation",
	Long: `Create (or recreate) the shared region and run the Runner's simulation
until interrupted.

Each tick the Runner consumes commands, adopts a newly published round on
reset, and writes telemetry back to the region. Only one Runner may own a
region name at a time.

Examples:
  monkey runner
  monkey runner --name lab1 --dir /dev/shm --fps 120
  monkey runner --log-level debug`,
	Run: runRunner,
}

func runRunner(cmd *cobra.Command, _ []string) {
	cfg := loadSettings(cmd)
	logger := newLogger(cfg.Runner.LogLevel)
	opts := shmOptions(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runner := sim.New(sim.CreateRegion(opts), cfg.Runner.TickRate, logger)
	logger.Info("runner started", "region", opts.Name, "path", shm.BackingPath(opts), "fps", cfg.Runner.TickRate)

	err := runner.Run(ctx)
	if cerr := runner.Close(); cerr != nil {
		logger.Error("close region", "error", cerr)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Runner error: %v\n", err)
		os.Exit(1)
	}
	logger.Info("runner stopped")
}
