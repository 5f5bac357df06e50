//go:build unix

package shm

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"

	"golang.org/x/sys/unix"

	"github.com/vstrozzi/monkey-3d-game/internal/layout"
)

// Mapped is a region backed by a file mapped MAP_SHARED into this process.
// It is reference counted: Retain adds a reference and Close drops one; the
// mapping is released with the last reference.
type Mapped struct {
	path    string
	file    *os.File
	mem     []byte
	region  *layout.Region
	creator bool

	refs      atomic.Int32
	closeOnce sync.Once
	closeErr  error
}

// BackingPath returns the file that backs the region named in opts.
func BackingPath(opts Options) string {
	dir := opts.Dir
	if dir == "" {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "monkey_shm_"+opts.name())
}

// CreateMapped creates (or truncates) the backing file, zero-fills it to the
// region size, maps it and writes the default contents.
//
// Creation is exclusive: the creator holds a non-blocking exclusive lock on
// the file for the life of the mapping, so a second creator racing on the
// same name fails with ErrRegionBusy instead of truncating a live region.
func CreateMapped(opts Options) (*Mapped, error) {
	path := BackingPath(opts)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("shm: cannot create directory for %s: %w", path, err)
	}

	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o600)
	if err != nil {
		return nil, fmt.Errorf("shm: cannot open %s: %w", path, err)
	}

	if err := unix.Flock(int(f.Fd()), unix.LOCK_EX|unix.LOCK_NB); err != nil {
		f.Close()
		if errors.Is(err, unix.EWOULDBLOCK) {
			return nil, fmt.Errorf("%w: %s", ErrRegionBusy, path)
		}
		return nil, fmt.Errorf("shm: cannot lock %s: %w", path, err)
	}

	// Truncate to zero first so every byte reads as zero after growing.
	if err := f.Truncate(0); err != nil {
		f.Close()
		return nil, fmt.Errorf("shm: cannot truncate %s: %w", path, err)
	}
	if err := f.Truncate(int64(layout.Size)); err != nil {
		f.Close()
		return nil, fmt.Errorf("shm: cannot size %s: %w", path, err)
	}

	m, err := mapFile(path, f, true)
	if err != nil {
		f.Close()
		return nil, err
	}
	m.region.Populate()
	if err := f.Sync(); err != nil {
		m.Close()
		return nil, fmt.Errorf("shm: cannot sync %s: %w", path, err)
	}
	return m, nil
}

// OpenMapped attaches to a region created by another process. It never
// initializes anything; a missing or undersized file yields ErrNotInitialized.
func OpenMapped(opts Options) (*Mapped, error) {
	path := BackingPath(opts)

	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s does not exist", ErrNotInitialized, path)
		}
		return nil, fmt.Errorf("shm: cannot open %s: %w", path, err)
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("shm: cannot stat %s: %w", path, err)
	}
	if info.Size() != int64(layout.Size) {
		f.Close()
		return nil, fmt.Errorf("%w: %s is %d bytes, expected %d", ErrNotInitialized, path, info.Size(), layout.Size)
	}

	m, err := mapFile(path, f, false)
	if err != nil {
		f.Close()
		return nil, err
	}
	return m, nil
}

func mapFile(path string, f *os.File, creator bool) (*Mapped, error) {
	mem, err := unix.Mmap(int(f.Fd()), 0, layout.Size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		return nil, fmt.Errorf("shm: cannot map %s: %w", path, err)
	}

	region, err := layout.Overlay(mem)
	if err != nil {
		unix.Munmap(mem)
		return nil, fmt.Errorf("shm: %s: %w", path, err)
	}

	m := &Mapped{
		path:    path,
		file:    f,
		mem:     mem,
		region:  region,
		creator: creator,
	}
	m.refs.Store(1)
	return m, nil
}

// Path returns the backing file path.
func (m *Mapped) Path() string {
	return m.path
}

// Creator reports whether this handle created and initialized the region.
func (m *Mapped) Creator() bool {
	return m.creator
}

// Region returns the read-write schema.
func (m *Mapped) Region() *layout.Region {
	return m.region
}

// View returns a read-only window onto the schema.
func (m *Mapped) View() layout.View {
	return layout.NewView(m.region)
}

// Retain adds a reference for another owner, typically another goroutine
// that will call Close independently.
func (m *Mapped) Retain() (*Mapped, error) {
	for {
		n := m.refs.Load()
		if n <= 0 {
			return nil, ErrClosed
		}
		if m.refs.CompareAndSwap(n, n+1) {
			return m, nil
		}
	}
}

// Refs returns the number of live references.
func (m *Mapped) Refs() int {
	return int(m.refs.Load())
}

// Close drops one reference. The last reference unmaps the region, releases
// the creator lock and closes the file. The backing file stays on disk so
// late attachers see a region rather than a missing file.
func (m *Mapped) Close() error {
	n := m.refs.Add(-1)
	if n > 0 {
		return nil
	}
	if n < 0 {
		m.refs.Store(0)
		return ErrClosed
	}

	m.closeOnce.Do(func() {
		var errs []error
		if err := unix.Munmap(m.mem); err != nil {
			errs = append(errs, fmt.Errorf("shm: cannot unmap %s: %w", m.path, err))
		}
		m.mem = nil
		m.region = nil
		// Closing the descriptor also drops the flock.
		if err := m.file.Close(); err != nil {
			errs = append(errs, fmt.Errorf("shm: cannot close %s: %w", m.path, err))
		}
		m.closeErr = errors.Join(errs...)
	})
	return m.closeErr
}
