//go:build unix

package shm

import (
	"errors"
	"os"
	"testing"

	"github.com/vstrozzi/monkey-3d-game/internal/layout"
)

func testOptions(t *testing.T) Options {
	t.Helper()
	return Options{Name: "test", Dir: t.TempDir()}
}

func TestOpenBeforeCreate(t *testing.T) {
	_, err := Open(testOptions(t))
	if !errors.Is(err, ErrNotInitialized) {
		t.Fatalf("Open() error = %v, expected ErrNotInitialized", err)
	}
}

func TestOpenRejectsWrongSize(t *testing.T) {
	opts := testOptions(t)
	if err := os.WriteFile(BackingPath(opts), make([]byte, 16), 0o600); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}
	if _, err := OpenMapped(opts); !errors.Is(err, ErrNotInitialized) {
		t.Fatalf("OpenMapped() error = %v, expected ErrNotInitialized", err)
	}
}

func TestCreateThenOpenShareMemory(t *testing.T) {
	opts := testOptions(t)

	creator, err := CreateMapped(opts)
	if err != nil {
		t.Fatalf("CreateMapped() failed: %v", err)
	}
	defer creator.Close()

	if !creator.Creator() {
		t.Error("Creator() = false for the creating handle")
	}
	if got := creator.Region().Control.Seed.Load(); got != layout.DefaultSeed {
		t.Errorf("initial seed = %d, expected %d", got, layout.DefaultSeed)
	}

	// Changes made before attaching must survive the attach.
	creator.Region().Control.Seed.Store(42)

	attached, err := OpenMapped(opts)
	if err != nil {
		t.Fatalf("OpenMapped() failed: %v", err)
	}
	defer attached.Close()

	if attached.Creator() {
		t.Error("Creator() = true for an attaching handle")
	}
	if got := attached.Region().Control.Seed.Load(); got != 42 {
		t.Errorf("attached seed = %d, expected 42 (open must not reinitialize)", got)
	}

	attached.Region().Runner.FrameNumber.Store(1234)
	if got := creator.Region().Runner.FrameNumber.Load(); got != 1234 {
		t.Errorf("creator sees frame %d, expected 1234", got)
	}

	creator.Region().Runner.CameraX.Store(-7.5)
	if got := attached.View().Telemetry().CameraPosition[0]; got != -7.5 {
		t.Errorf("attached view camera x = %v, expected -7.5", got)
	}
}

func TestSecondCreatorIsRefused(t *testing.T) {
	opts := testOptions(t)

	first, err := CreateMapped(opts)
	if err != nil {
		t.Fatalf("CreateMapped() failed: %v", err)
	}
	first.Region().Control.Seed.Store(7)

	if _, err := CreateMapped(opts); !errors.Is(err, ErrRegionBusy) {
		t.Fatalf("second CreateMapped() error = %v, expected ErrRegionBusy", err)
	}
	if got := first.Region().Control.Seed.Load(); got != 7 {
		t.Errorf("seed = %d after refused create, expected 7", got)
	}

	if err := first.Close(); err != nil {
		t.Fatalf("Close() failed: %v", err)
	}

	// With the first creator gone the name can be created again.
	again, err := CreateMapped(opts)
	if err != nil {
		t.Fatalf("CreateMapped() after release failed: %v", err)
	}
	defer again.Close()
	if got := again.Region().Control.Seed.Load(); got != layout.DefaultSeed {
		t.Errorf("recreated seed = %d, expected %d", got, layout.DefaultSeed)
	}
}

func TestRetainClose(t *testing.T) {
	m, err := CreateMapped(testOptions(t))
	if err != nil {
		t.Fatalf("CreateMapped() failed: %v", err)
	}

	if _, err := m.Retain(); err != nil {
		t.Fatalf("Retain() failed: %v", err)
	}
	if m.Refs() != 2 {
		t.Fatalf("Refs() = %d, expected 2", m.Refs())
	}

	if err := m.Close(); err != nil {
		t.Fatalf("Close() failed: %v", err)
	}
	// One reference left; the region is still usable.
	m.Region().GameSeq.Add(1)

	if err := m.Close(); err != nil {
		t.Fatalf("final Close() failed: %v", err)
	}
	if m.Refs() != 0 {
		t.Errorf("Refs() = %d after final close", m.Refs())
	}
	if _, err := m.Retain(); !errors.Is(err, ErrClosed) {
		t.Errorf("Retain() after close error = %v, expected ErrClosed", err)
	}
	if err := m.Close(); !errors.Is(err, ErrClosed) {
		t.Errorf("extra Close() error = %v, expected ErrClosed", err)
	}
}

func TestHandleInterface(t *testing.T) {
	opts := testOptions(t)
	h, err := Create(opts)
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	defer h.Close()

	o, err := Open(opts)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer o.Close()

	h.Region().CommandsSeq.Store(3)
	if got := o.View().CommandsSeq(); got != 3 {
		t.Errorf("CommandsSeq() = %d, expected 3", got)
	}
}
