// Package config provides YAML-based settings loading with environment
// overrides, and the trial list reader used by the monitor.
package config

import "time"

// Config holds every setting of the monkey binary.
type Config struct {
	Shm     ShmConfig     `yaml:"shm"`
	Runner  RunnerConfig  `yaml:"runner"`
	Monitor MonitorConfig `yaml:"monitor"`
	Storage StorageConfig `yaml:"storage"`
}

// ShmConfig locates the shared region. Both processes must agree on it.
type ShmConfig struct {
	Name string `yaml:"name" env:"MONKEY_SHM_NAME"`
	Dir  string `yaml:"dir" env:"MONKEY_SHM_DIR"`
}

// RunnerConfig tunes the headless simulation.
type RunnerConfig struct {
	TickRate int    `yaml:"tick_rate" env:"MONKEY_TICK_RATE"`
	LogLevel string `yaml:"log_level" env:"MONKEY_LOG_LEVEL"`
}

// MonitorConfig tunes the controller dashboard.
type MonitorConfig struct {
	PollRate int `yaml:"poll_rate" env:"MONKEY_POLL_RATE"`

	// HoldWindow is how long a continuous key stays pressed after its last
	// repeat; terminals report presses but never releases.
	HoldWindow time.Duration `yaml:"hold_window" env:"MONKEY_HOLD_WINDOW"`

	Trials string `yaml:"trials" env:"MONKEY_TRIALS"`
}

// StorageConfig locates the round history database.
type StorageConfig struct {
	DBPath string `yaml:"db_path" env:"MONKEY_DB"`
}
