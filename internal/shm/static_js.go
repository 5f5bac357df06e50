//go:build js && wasm

package shm

import (
	"syscall/js"

	"github.com/vstrozzi/monkey-3d-game/internal/layout"
)

// ExportJS publishes the region to the js host:
//
//	monkeyShmCreate()  -> byte offset of the region in wasm memory
//	monkeyShmOffsets() -> { "runner.frame_number": 1234, ... }
//	monkeyShmSize()    -> region size in bytes
//
// The host wraps memory.buffer at the returned offset and resolves every field
// through the offset table.
func ExportJS() {
	js.Global().Set("monkeyShmCreate", js.FuncOf(func(js.Value, []js.Value) any {
		return float64(InitStatic().BaseOffset())
	}))

	js.Global().Set("monkeyShmOffsets", js.FuncOf(func(js.Value, []js.Value) any {
		table := make(map[string]any, len(layout.Offsets()))
		for _, f := range layout.Offsets() {
			table[f.Name] = float64(f.Offset)
		}
		return js.ValueOf(table)
	}))

	js.Global().Set("monkeyShmSize", js.FuncOf(func(js.Value, []js.Value) any {
		return float64(layout.Size)
	}))
}
