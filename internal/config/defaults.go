package config

import (
	_ "embed"
	"time"

	"github.com/vstrozzi/monkey-3d-game/internal/layout"
	"github.com/vstrozzi/monkey-3d-game/internal/shm"
)

//go:embed defaults/monkey.yaml
var defaultYAML []byte

// DefaultConfig returns the built-in settings.
func DefaultConfig() Config {
	return Config{
		Shm: ShmConfig{
			Name: shm.DefaultName,
		},
		Runner: RunnerConfig{
			TickRate: int(layout.RefreshRateHz),
			LogLevel: "info",
		},
		Monitor: MonitorConfig{
			PollRate:   30,
			HoldWindow: 150 * time.Millisecond,
		},
		Storage: StorageConfig{
			DBPath: "~/.monkey/rounds.db",
		},
	}
}
