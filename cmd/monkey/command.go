package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vstrozzi/monkey-3d-game/internal/protocol"
)

var flagHoldFor time.Duration

var commandCmd = &cobra.Command{
	Use:   "command [name...]",
	Short: "Send commands",
	Long: `Write a command set to the region. With no names every flag is cleared,
which also releases any held rotation or zoom.

Continuous commands stay set until the next write; pass --hold to release
them automatically. One-shot commands are seen by exactly one Runner tick.

Commands:
  rotate_left, rotate_right, zoom_in, zoom_out          (continuous)
  check, reset, blank, stop, resume, door               (one-shot)

Examples:
  monkey command check door
  monkey command rotate_left --hold 2s
  monkey command`,
	Run: runCommand,
}

func init() {
	commandCmd.Flags().DurationVar(&flagHoldFor, "hold", 0, "Release continuous commands after this long")
}

func runCommand(cmd *cobra.Command, args []string) {
	cfg := loadSettings(cmd)

	var cs protocol.CommandSet
	for _, name := range args {
		if !protocol.ParseCommand(&cs, name) {
			fmt.Fprintf(os.Stderr, "Error: unknown command %q\n", name)
			os.Exit(1)
		}
	}

	ctrl, err := protocol.Connect(shmOptions(cfg))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error attaching to region: %v\n", err)
		os.Exit(1)
	}
	defer ctrl.Close()

	ctrl.PublishCommands(cs)
	fmt.Printf("Sent %s (commands seq %d)\n", cs, ctrl.CommandsSeq())

	continuous := cs.RotateLeft || cs.RotateRight || cs.ZoomIn || cs.ZoomOut
	if flagHoldFor > 0 && continuous {
		time.Sleep(flagHoldFor)
		ctrl.Hold(protocol.CommandSet{})
		fmt.Println("Released")
	}
}
