package main

import (
	"testing"

	"github.com/vstrozzi/monkey-3d-game/internal/layout"
)

func TestSelectOffsets(t *testing.T) {
	all, err := selectOffsets(nil)
	if err != nil {
		t.Fatalf("selectOffsets() failed: %v", err)
	}
	if len(all) != len(layout.Offsets()) {
		t.Errorf("selectOffsets() returned %d fields, expected %d", len(all), len(layout.Offsets()))
	}

	got, err := selectOffsets([]string{"game_seq", "control.seed"})
	if err != nil {
		t.Fatalf("selectOffsets() failed: %v", err)
	}
	if len(got) != 2 || got[0].Name != "game_seq" || got[1].Name != "control.seed" {
		t.Errorf("selectOffsets() = %+v, expected game_seq then control.seed", got)
	}

	if _, err := selectOffsets([]string{"control.nope"}); err == nil {
		t.Error("selectOffsets() accepted an unknown field")
	}
}
