// Package shm owns the memory that backs the shared region.
//
// Two variants sit behind the Handle interface and are selected at build
// time: a file-backed mapping shared between processes (unix) and a single
// static allocation inside the process's linear memory (js/wasm), where the
// host builds its own view from the exported offset table.
//
// The handle adds no locking of its own; every field of the region is an
// independent atomic word.
package shm

import (
	"errors"

	"github.com/vstrozzi/monkey-3d-game/internal/layout"
)

// DefaultName identifies the region when no name is configured.
const DefaultName = "monkey_game"

var (
	// ErrNotInitialized means the region has not been created yet. The caller
	// should retry on a later tick.
	ErrNotInitialized = errors.New("shm: region not initialized")

	// ErrRegionBusy means another live process already owns creation of the
	// named region.
	ErrRegionBusy = errors.New("shm: region is owned by another creator")

	// ErrClosed is returned when using a handle after its last release.
	ErrClosed = errors.New("shm: handle closed")
)

// Handle gives access to an attached region.
type Handle interface {
	// Region returns the read-write schema.
	Region() *layout.Region

	// View returns a read-only window onto the schema.
	View() layout.View

	// Close releases this reference. The backing memory is released with
	// the last reference; Region must not be used afterwards.
	Close() error
}

// Options locates a named region.
type Options struct {
	// Name identifies the region; both sides must agree on it.
	Name string

	// Dir holds the backing file on file-backed targets. Empty means the
	// system temp directory.
	Dir string
}

func (o Options) name() string {
	if o.Name == "" {
		return DefaultName
	}
	return o.Name
}
