package shm

import (
	"sync"
	"sync/atomic"
	"unsafe"

	"github.com/vstrozzi/monkey-3d-game/internal/layout"
)

// The sandboxed variant keeps the region in static storage. In a js/wasm
// build the address of staticRegion is an offset into linear memory that the
// host wraps in its own typed view.
var (
	staticRegion      layout.Region
	staticOnce        sync.Once
	staticInitialized atomic.Bool
)

// Static is a handle onto the process-wide static region. Copies share the
// same memory; Close is a no-op because static storage is never released.
type Static struct {
	region *layout.Region
}

// InitStatic initializes the static region on first call and returns a handle
// to it. Later calls return a handle to the same, untouched region.
func InitStatic() Static {
	staticOnce.Do(func() {
		staticRegion.Populate()
		staticInitialized.Store(true)
	})
	return Static{region: &staticRegion}
}

// AttachStatic returns a handle to the static region, or ErrNotInitialized if
// InitStatic has not run yet.
func AttachStatic() (Static, error) {
	if !staticInitialized.Load() {
		return Static{}, ErrNotInitialized
	}
	return Static{region: &staticRegion}, nil
}

// BaseOffset returns the address of the static region. Under js/wasm this is
// the byte offset into linear memory.
func (s Static) BaseOffset() uintptr {
	return uintptr(unsafe.Pointer(s.region))
}

// Region returns the read-write schema.
func (s Static) Region() *layout.Region {
	return s.region
}

// View returns a read-only window onto the schema.
func (s Static) View() layout.View {
	return layout.NewView(s.region)
}

// Close is a no-op.
func (s Static) Close() error {
	return nil
}
