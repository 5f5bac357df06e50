package shm

import (
	"errors"
	"sync"
	"testing"

	"github.com/vstrozzi/monkey-3d-game/internal/layout"
)

func resetStatic() {
	staticOnce = sync.Once{}
	staticInitialized.Store(false)
}

func TestStaticLifecycle(t *testing.T) {
	resetStatic()
	t.Cleanup(resetStatic)

	if _, err := AttachStatic(); !errors.Is(err, ErrNotInitialized) {
		t.Fatalf("AttachStatic() before init error = %v, expected ErrNotInitialized", err)
	}

	s := InitStatic()
	if got := s.Region().Control.Seed.Load(); got != layout.DefaultSeed {
		t.Errorf("seed = %d, expected %d", got, layout.DefaultSeed)
	}
	s.Region().Control.Seed.Store(99)

	// A second init must not reset the region.
	again := InitStatic()
	if again.BaseOffset() != s.BaseOffset() {
		t.Errorf("BaseOffset changed: %#x vs %#x", again.BaseOffset(), s.BaseOffset())
	}
	if got := again.Region().Control.Seed.Load(); got != 99 {
		t.Errorf("seed = %d after second init, expected 99", got)
	}

	a, err := AttachStatic()
	if err != nil {
		t.Fatalf("AttachStatic() failed: %v", err)
	}
	if a.BaseOffset()%uintptr(layout.Align) != 0 {
		t.Errorf("BaseOffset %#x not aligned to %d", a.BaseOffset(), layout.Align)
	}
	if err := a.Close(); err != nil {
		t.Errorf("Close() failed: %v", err)
	}
	if got := a.View().Control().Seed; got != 99 {
		t.Errorf("view seed = %d after close, expected 99", got)
	}
}
