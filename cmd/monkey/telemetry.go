package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vstrozzi/monkey-3d-game/internal/protocol"
)

var (
	flagWatch   time.Duration
	flagControl bool
)

var telemetryCmd = &cobra.Command{
	Use:   "telemetry",
	Short: "Print the Runner's telemetry",
	Long: `Print the Runner copy of the region as YAML, along with the sequence
counters. Fields are read one at a time, so a report taken while the Runner
is writing may mix two consecutive frames.

Examples:
  monkey telemetry
  monkey telemetry --control
  monkey telemetry --watch 250ms`,
	Run: runTelemetry,
}

func init() {
	telemetryCmd.Flags().DurationVar(&flagWatch, "watch", 0, "Repeat at this interval until interrupted")
	telemetryCmd.Flags().BoolVar(&flagControl, "control", false, "Print the Control copy instead")
}

// telemetryReport is the printed form of one read.
type telemetryReport struct {
	CommandsSeq uint32              `yaml:"commands_seq"`
	ControlSeq  uint32              `yaml:"control_seq"`
	GameSeq     uint32              `yaml:"game_seq"`
	Commands    protocol.CommandSet `yaml:"commands"`
	Game        protocol.Telemetry  `yaml:"game"`
}

func runTelemetry(cmd *cobra.Command, _ []string) {
	cfg := loadSettings(cmd)

	ctrl, err := protocol.Connect(shmOptions(cfg))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error attaching to region: %v\n", err)
		os.Exit(1)
	}
	defer ctrl.Close()

	emit := func() {
		report := telemetryReport{
			CommandsSeq: ctrl.CommandsSeq(),
			ControlSeq:  ctrl.ControlSeq(),
			GameSeq:     ctrl.GameSeq(),
			Commands:    ctrl.Commands(),
			Game:        ctrl.Telemetry(),
		}
		if flagControl {
			report.Game = ctrl.Control()
		}
		out, err := yaml.Marshal(report)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error encoding telemetry: %v\n", err)
			os.Exit(1)
		}
		fmt.Print(string(out))
	}

	if flagWatch <= 0 {
		emit()
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	ticker := time.NewTicker(flagWatch)
	defer ticker.Stop()
	for {
		emit()
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			fmt.Println("---")
		}
	}
}
