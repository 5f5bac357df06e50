package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vstrozzi/monkey-3d-game/internal/config"
	"github.com/vstrozzi/monkey-3d-game/internal/platform/tui"
	"github.com/vstrozzi/monkey-3d-game/internal/protocol"
	"github.com/vstrozzi/monkey-3d-game/internal/storage"
)

var (
	flagTrials   string
	flagNoRecord bool
)

var monitorCmd = &cobra.Command{
	Use:   "monitor",
	Short: "Interactive controller dashboard",
	Long: `Attach to a running Runner and drive it from the keyboard.

The first trial is published as soon as the monitor starts. Rounds are
recorded to the history database when the target is aligned, or on demand.

Controls:
  Left/Right  - Rotate the pyramid (held)
  Up/Down     - Zoom in/out (held)
  Space       - Check alignment and open the door
  R/Enter     - Publish the next trial
  C           - Retry the current trial
  B           - Toggle blank screen
  P / O       - Stop / resume rendering
  Shift+S     - Record the current round
  Q/Ctrl+C    - Quit

Examples:
  monkey monitor
  monkey monitor --trials ./trials.jsonl
  monkey monitor --no-record`,
	Run: runMonitor,
}

func init() {
	monitorCmd.Flags().StringVar(&flagTrials, "trials", "", "Trial list (JSON lines or YAML)")
	monitorCmd.Flags().BoolVar(&flagNoRecord, "no-record", false, "Do not record rounds to the history database")
}

func runMonitor(cmd *cobra.Command, _ []string) {
	cfg := loadSettings(cmd)
	logger := newLogger(cfg.Runner.LogLevel)
	if cmd.Flags().Changed("trials") {
		cfg.Monitor.Trials = flagTrials
	}

	ctrl, err := protocol.Connect(shmOptions(cfg))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error attaching to region: %v\n", err)
		fmt.Fprintln(os.Stderr, "Start the Runner first with 'monkey runner'.")
		os.Exit(1)
	}
	defer ctrl.Close()

	// A broken trial file should not keep the experimenter from driving the
	// Runner; the default round stands in.
	var trials []protocol.RoundConfig
	if cfg.Monitor.Trials != "" {
		trials, err = config.LoadTrials(cfg.Monitor.Trials)
		if err != nil {
			logger.Warn("using default round", "error", err)
			trials = nil
		}
	}

	var store *storage.Store
	if !flagNoRecord {
		store, err = storage.Open(cfg.Storage.DBPath)
		if err != nil {
			logger.Warn("round history disabled", "error", err)
			store = nil
		} else {
			defer store.Close()
		}
	}

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	// Log lines written to the terminal would tear the alternate screen;
	// keep them only when stderr is redirected.
	if term.IsTerminal(int(os.Stderr.Fd())) {
		logger.SetOutput(io.Discard)
	}

	err = tui.Run(ctrl, tui.Options{
		PollRate:   cfg.Monitor.PollRate,
		HoldWindow: cfg.Monitor.HoldWindow,
		Trials:     trials,
		Store:      store,
		Logger:     logger,
		Width:      width,
		Height:     height,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error running monitor: %v\n", err)
		os.Exit(1)
	}
}
