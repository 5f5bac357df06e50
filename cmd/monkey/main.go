// monkey drives the shared-memory link between the experiment Runner and its
// Controller.
//
// Usage:
//
//	monkey runner               - Create the region and run the headless simulation
//	monkey monitor              - Interactive controller dashboard
//	monkey publish [trials]     - Publish a round
//	monkey command <name>...    - Send commands
//	monkey telemetry            - Print the Runner's telemetry
//	monkey offsets              - Print the region's field offsets
//	monkey history              - List recorded rounds
//
// Global flags:
//
//	--name <name>       - Region name (default: monkey_game)
//	--dir <path>        - Directory of the backing file (default: system temp)
//	--fps <rate>        - Runner tick rate (default: 60)
//	--config <path>     - Settings file
//	--log-level <lvl>   - debug, info, warn or error
//	--db <path>         - Round history database (default: ~/.monkey/rounds.db)
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vstrozzi/monkey-3d-game/internal/config"
	"github.com/vstrozzi/monkey-3d-game/internal/shm"
)

var (
	// Global flags
	flagName     string
	flagDir      string
	flagFPS      int
	flagConfig   string
	flagLogLevel string
	flagDBPath   string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "monkey",
	Short: "Monkey 3D game link - run and control experiment rounds",
	Long: `monkey connects the experiment Runner and its Controller through a
named shared-memory region.

The Runner creates the region and simulates the scene; every other command
attaches to it. Start the Runner first.

Available commands:
  runner     - Create the region and run the headless simulation
  monitor    - Interactive controller dashboard
  publish    - Publish a round configuration
  command    - Send commands
  telemetry  - Print the Runner's telemetry
  offsets    - Print the region's field offsets
  history    - List recorded rounds

Examples:
  monkey runner --fps 60
  monkey monitor --trials ./trials.jsonl
  monkey publish --arm --seed 42 --target-door 2
  monkey command check door
  monkey telemetry --watch 500ms`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&flagName, "name", shm.DefaultName, "Shared region name")
	rootCmd.PersistentFlags().StringVar(&flagDir, "dir", "", "Directory holding the region's backing file")
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Runner tick rate (frames per second)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to settings YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.monkey/rounds.db", "Path to round history database")

	// Add subcommands
	rootCmd.AddCommand(runnerCmd)
	rootCmd.AddCommand(monitorCmd)
	rootCmd.AddCommand(publishCmd)
	rootCmd.AddCommand(commandCmd)
	rootCmd.AddCommand(telemetryCmd)
	rootCmd.AddCommand(offsetsCmd)
	rootCmd.AddCommand(historyCmd)
}

// loadSettings reads the settings file and environment, then applies any
// flag given on the command line.
func loadSettings(cmd *cobra.Command) config.Config {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading settings: %v\n", err)
		os.Exit(1)
	}

	flags := cmd.Flags()
	if flags.Changed("name") {
		cfg.Shm.Name = flagName
	}
	if flags.Changed("dir") {
		cfg.Shm.Dir = flagDir
	}
	if flags.Changed("fps") {
		cfg.Runner.TickRate = flagFPS
	}
	if flags.Changed("log-level") {
		cfg.Runner.LogLevel = flagLogLevel
	}
	if flags.Changed("db") {
		cfg.Storage.DBPath = flagDBPath
	}
	return cfg
}

func shmOptions(cfg config.Config) shm.Options {
	return shm.Options{Name: cfg.Shm.Name, Dir: cfg.Shm.Dir}
}

func newLogger(level string) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "monkey",
	})
	lvl, err := log.ParseLevel(level)
	if err != nil {
		logger.Warn("unknown log level, using info", "level", level)
		lvl = log.InfoLevel
	}
	logger.SetLevel(lvl)
	return logger
}
