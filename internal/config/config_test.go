package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/vstrozzi/monkey-3d-game/internal/protocol"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}
	return path
}

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg != DefaultConfig() {
		t.Errorf("embedded config = %+v, expected %+v", cfg, DefaultConfig())
	}
}

func TestLoadCustomPath(t *testing.T) {
	path := writeFile(t, "custom.yaml", `
shm:
  name: lab_a
runner:
  tick_rate: 120
monitor:
  hold_window: 250ms
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Shm.Name != "lab_a" || cfg.Runner.TickRate != 120 {
		t.Errorf("overrides not applied: %+v", cfg)
	}
	if cfg.Monitor.HoldWindow != 250*time.Millisecond {
		t.Errorf("HoldWindow = %v, expected 250ms", cfg.Monitor.HoldWindow)
	}
	// Keys absent from the file keep their defaults.
	if cfg.Monitor.PollRate != DefaultConfig().Monitor.PollRate || cfg.Storage.DBPath != DefaultConfig().Storage.DBPath {
		t.Errorf("defaults lost: %+v", cfg)
	}
}

func TestLoadUserConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	dir := filepath.Join(home, ".monkey", "configs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("MkdirAll() failed: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, FileName), []byte("runner:\n  log_level: debug\n"), 0o644); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Runner.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, expected debug", cfg.Runner.LogLevel)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Load() of a missing file succeeded")
	}

	path := writeFile(t, "bad.yaml", "runner: [not, a, mapping\n")
	if _, err := Load(path); err == nil || !strings.Contains(err.Error(), "failed to parse config") {
		t.Errorf("Load() error = %v, expected a parse error", err)
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("MONKEY_SHM_NAME", "from_env")
	t.Setenv("MONKEY_SHM_DIR", "/dev/shm")
	t.Setenv("MONKEY_TICK_RATE", "90")
	t.Setenv("MONKEY_DB", "/tmp/rounds.db")

	cfg := DefaultConfig()
	if err := ApplyEnv(&cfg); err != nil {
		t.Fatalf("ApplyEnv() failed: %v", err)
	}
	if cfg.Shm.Name != "from_env" || cfg.Shm.Dir != "/dev/shm" {
		t.Errorf("Shm = %+v", cfg.Shm)
	}
	if cfg.Runner.TickRate != 90 {
		t.Errorf("TickRate = %d, expected 90", cfg.Runner.TickRate)
	}
	if cfg.Storage.DBPath != "/tmp/rounds.db" {
		t.Errorf("DBPath = %q", cfg.Storage.DBPath)
	}
	// Unset variables leave values alone.
	if cfg.Monitor.PollRate != DefaultConfig().Monitor.PollRate {
		t.Errorf("PollRate = %d, expected default", cfg.Monitor.PollRate)
	}

	t.Setenv("MONKEY_TICK_RATE", "fast")
	if err := ApplyEnv(&cfg); err == nil || !strings.HasPrefix(err.Error(), "parse env:") {
		t.Errorf("ApplyEnv() error = %v, expected parse env error", err)
	}
}

func TestLoadTrialsJSONLines(t *testing.T) {
	path := writeFile(t, "trials.jsonl", `{"seed": 1, "target_door": 2}

# comment lines are skipped
{"seed": 2, "base_radius": 3.5, "colors": [[1,1,1,1],[0,0,0,1],[0.5,0.5,0.5,1]], "decorations_count": [0, 0, 1]}
`)
	trials, err := LoadTrials(path)
	if err != nil {
		t.Fatalf("LoadTrials() failed: %v", err)
	}
	if len(trials) != 2 {
		t.Fatalf("LoadTrials() returned %d trials, expected 2", len(trials))
	}

	want := protocol.DefaultRoundConfig()
	want.Seed = 1
	want.TargetDoor = 2
	if !reflect.DeepEqual(trials[0], want) {
		t.Errorf("trial 1 = %+v, expected %+v", trials[0], want)
	}

	second := trials[1]
	if second.Seed != 2 || second.BaseRadius != 3.5 {
		t.Errorf("trial 2 = %+v", second)
	}
	if !reflect.DeepEqual(second.Colors[1], []float32{0, 0, 0, 1}) {
		t.Errorf("trial 2 colors = %v", second.Colors)
	}
	if !reflect.DeepEqual(second.DecorationsCount, []uint32{0, 0, 1}) {
		t.Errorf("trial 2 decorations_count = %v", second.DecorationsCount)
	}
	if second.Height != protocol.DefaultRoundConfig().Height {
		t.Errorf("trial 2 height = %v, expected default", second.Height)
	}
}

func TestLoadTrialsYAML(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"list", "- seed: 10\n- seed: 11\n  target_door: 1\n"},
		{"mapping", "trials:\n  - seed: 10\n  - seed: 11\n    target_door: 1\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			trials, err := LoadTrials(writeFile(t, "trials.yaml", tt.content))
			if err != nil {
				t.Fatalf("LoadTrials() failed: %v", err)
			}
			if len(trials) != 2 || trials[0].Seed != 10 || trials[1].Seed != 11 || trials[1].TargetDoor != 1 {
				t.Errorf("LoadTrials() = %+v", trials)
			}
			if trials[0].AlignmentThreshold != protocol.DefaultRoundConfig().AlignmentThreshold {
				t.Errorf("threshold = %v, expected default", trials[0].AlignmentThreshold)
			}
		})
	}
}

func TestLoadTrialsRejects(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		target  error
	}{
		{"bad shape", "t.jsonl", `{"colors": [[1,1,1,1]]}`, protocol.ErrShape},
		{"empty", "t.jsonl", "\n\n", ErrNoTrials},
		{"empty yaml", "t.yaml", "", ErrNoTrials},
		{"bad door", "t.yaml", "- target_door: 5\n", protocol.ErrShape},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadTrials(writeFile(t, tt.file, tt.content))
			if !errors.Is(err, tt.target) {
				t.Errorf("LoadTrials() error = %v, expected %v", err, tt.target)
			}
		})
	}

}

func TestLoadTrialsSingleRound(t *testing.T) {
	trials, err := LoadTrials(writeFile(t, "round.yaml", "seed: 1\ntarget_door: 2\n"))
	if err != nil {
		t.Fatalf("LoadTrials() failed: %v", err)
	}
	if len(trials) != 1 || trials[0].Seed != 1 || trials[0].TargetDoor != 2 {
		t.Errorf("LoadTrials() = %+v", trials)
	}
}
