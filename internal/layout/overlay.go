package layout

import (
	"errors"
	"fmt"
	"reflect"
	"unsafe"
)

var (
	ErrTooSmall   = errors.New("layout: backing memory smaller than region")
	ErrMisaligned = errors.New("layout: backing memory is not aligned")
)

// Overlay interprets mem as a Region. mem must be at least Size bytes and its
// first byte must satisfy Align. The returned pointer aliases mem; the caller
// keeps mem alive and unmapped for as long as the Region is used.
func Overlay(mem []byte) (*Region, error) {
	if len(mem) < Size {
		return nil, fmt.Errorf("%w: have %d bytes, need %d", ErrTooSmall, len(mem), Size)
	}
	base := unsafe.Pointer(unsafe.SliceData(mem))
	if uintptr(base)%uintptr(Align) != 0 {
		return nil, fmt.Errorf("%w: address %#x, need %d-byte alignment", ErrMisaligned, uintptr(base), Align)
	}
	return (*Region)(base), nil
}

// FieldOffset locates one atomic slot inside the region.
type FieldOffset struct {
	Name   string  `yaml:"name"`
	Offset uintptr `yaml:"offset"`
	Width  uintptr `yaml:"width"`
}

var offsets = buildOffsets()

// Offsets returns the byte offset and width of every slot, in address order.
// Hosts that cannot import this package build their typed views from it
// instead of hardcoding positions.
func Offsets() []FieldOffset {
	out := make([]FieldOffset, len(offsets))
	copy(out, offsets)
	return out
}

// Lookup returns the offset entry for name.
func Lookup(name string) (FieldOffset, bool) {
	for _, f := range offsets {
		if f.Name == name {
			return f, true
		}
	}
	return FieldOffset{}, false
}

func buildOffsets() []FieldOffset {
	var out []FieldOffset
	walk(reflect.TypeFor[Region](), "", 0, &out)
	return out
}

// walk flattens t into leaf slots. Leaves are the atomic wrappers and Float32;
// arrays expand to name[i].
func walk(t reflect.Type, prefix string, base uintptr, out *[]FieldOffset) {
	if isSlot(t) {
		*out = append(*out, FieldOffset{Name: prefix, Offset: base, Width: slotWidth(t)})
		return
	}
	switch t.Kind() {
	case reflect.Array:
		elem := t.Elem()
		for i := 0; i < t.Len(); i++ {
			walk(elem, fmt.Sprintf("%s[%d]", prefix, i), base+uintptr(i)*elem.Size(), out)
		}
	case reflect.Struct:
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			name := snake(f.Name)
			if prefix != "" {
				name = prefix + "." + name
			}
			walk(f.Type, name, base+f.Offset, out)
		}
	}
}

func isSlot(t reflect.Type) bool {
	if t == reflect.TypeFor[Float32]() {
		return true
	}
	return t.Kind() == reflect.Struct && t.PkgPath() == "sync/atomic"
}

// slotWidth is the size of the value word, excluding zero-size markers.
func slotWidth(t reflect.Type) uintptr {
	var w uintptr
	for i := 0; i < t.NumField(); i++ {
		w += t.Field(i).Type.Size()
	}
	if w == 0 {
		return t.Size()
	}
	return w
}

// snake converts a Go field name to snake_case.
func snake(s string) string {
	b := make([]byte, 0, len(s)+4)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= 'A' && c <= 'Z' {
			if i > 0 {
				b = append(b, '_')
			}
			c += 'a' - 'A'
		}
		b = append(b, c)
	}
	return string(b)
}
