package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vstrozzi/monkey-3d-game/internal/config"
	"github.com/vstrozzi/monkey-3d-game/internal/protocol"
)

var (
	flagIndex       int
	flagSeed        uint64
	flagTargetDoor  uint32
	flagStartOrient float32
	flagThreshold   float32
	flagArm         bool
)

var publishCmd = &cobra.Command{
	Use:   "publish [trials]",
	Short: "Publish a round configuration",
	Long: `Write a round configuration to the Control copy and pulse reset. The
Runner adopts it on its next tick.

Without a trials file the default round is published. Flags override single
fields of whichever round is chosen.

A round can only be published after at least one command has been sent.
Use --arm to send an empty command set first.

Examples:
  monkey publish --arm
  monkey publish ./trials.jsonl --index 3
  monkey publish --seed 42 --target-door 2 --threshold 0.9`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPublish,
}

func init() {
	publishCmd.Flags().IntVar(&flagIndex, "index", 0, "Trial index (wraps around the list)")
	publishCmd.Flags().Uint64Var(&flagSeed, "seed", 0, "Override the round seed")
	publishCmd.Flags().Uint32Var(&flagTargetDoor, "target-door", 0, "Override the target door (0-2)")
	publishCmd.Flags().Float32Var(&flagStartOrient, "start-orient", 0, "Override the start orientation (radians)")
	publishCmd.Flags().Float32Var(&flagThreshold, "threshold", 0, "Override the alignment threshold")
	publishCmd.Flags().BoolVar(&flagArm, "arm", false, "Send an empty command set before publishing")
}

func runPublish(cmd *cobra.Command, args []string) {
	cfg := loadSettings(cmd)

	rc := protocol.DefaultRoundConfig()
	if len(args) == 1 {
		trials, err := config.LoadTrials(args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading trials: %v\n", err)
			os.Exit(1)
		}
		idx := flagIndex % len(trials)
		if idx < 0 {
			idx += len(trials)
		}
		rc = trials[idx]
	}

	flags := cmd.Flags()
	if flags.Changed("seed") {
		rc.Seed = flagSeed
	}
	if flags.Changed("target-door") {
		rc.TargetDoor = flagTargetDoor
	}
	if flags.Changed("start-orient") {
		rc.StartOrient = flagStartOrient
	}
	if flags.Changed("threshold") {
		rc.AlignmentThreshold = flagThreshold
	}

	ctrl, err := protocol.Connect(shmOptions(cfg))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error attaching to region: %v\n", err)
		os.Exit(1)
	}
	defer ctrl.Close()

	if flagArm {
		ctrl.Hold(protocol.CommandSet{})
	}

	if err := ctrl.PublishRound(rc); err != nil {
		fmt.Fprintf(os.Stderr, "Error publishing round: %v\n", err)
		if errors.Is(err, protocol.ErrNotReady) {
			fmt.Fprintln(os.Stderr, "Send a command first, or pass --arm.")
		}
		os.Exit(1)
	}

	fmt.Printf("Published round: seed %d, target door %d (control seq %d)\n",
		rc.Seed, rc.TargetDoor, ctrl.ControlSeq())
}
