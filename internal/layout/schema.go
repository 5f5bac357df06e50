// Package layout defines the fixed shape of the shared region.
//
// The region is a plain struct of atomic words with no pointers, so it can be
// overlaid on a memory mapping or placed in static storage. Every field is an
// independent atomic slot; nothing enforces consistency across fields.
//
//	Region {
//	    Commands     Controller -> Runner flags
//	    Runner       Runner-written game structure (live values)
//	    Control      Controller-written game structure (next round)
//	    CommandsSeq, ControlSeq, GameSeq
//	}
package layout

import (
	"sync/atomic"
	"unsafe"
)

// Faces is the number of pyramid faces; Channels is RGBA.
const (
	Faces    = 3
	Channels = 4
)

// Commands holds the directive flags written by the Controller.
type Commands struct {
	// Continuous: sampled every tick, cleared by the Controller.
	RotateLeft  atomic.Bool
	RotateRight atomic.Bool
	ZoomIn      atomic.Bool
	ZoomOut     atomic.Bool

	// Edge-triggered: consumed by the Runner with Swap(false).
	CheckAlignment  atomic.Bool
	Reset           atomic.Bool
	BlankScreen     atomic.Bool
	StopRendering   atomic.Bool
	ResumeRendering atomic.Bool
	AnimationDoor   atomic.Bool
}

// GameStructure is the per-round configuration plus live telemetry.
// The region holds two copies, each with exactly one writer.
type GameStructure struct {
	// Round configuration.
	Seed        atomic.Uint64
	BaseRadius  Float32
	Height      Float32
	StartOrient Float32
	TargetDoor  atomic.Uint32

	// Colors holds Faces x Channels slots, face-major.
	Colors           [Faces * Channels]Float32
	DecorationsCount [Faces]atomic.Uint32
	DecorationsSize  [Faces]Float32

	AlignmentThreshold Float32

	DoorAnimFadeOut  Float32
	DoorAnimStayOpen Float32
	DoorAnimFadeIn   Float32

	MainSpotlightIntensity Float32
	AmbientBrightness      Float32
	MaxSpotlightIntensity  Float32

	// Telemetry.
	FrameNumber      atomic.Uint64
	ElapsedSecs      Float32
	CameraRadius     Float32
	CameraX          Float32
	CameraY          Float32
	CameraZ          Float32
	Attempts         atomic.Uint32
	CurrentAlignment Float32
	CurrentAngle     Float32
	IsAnimating      atomic.Bool
	WinTime          Float32
}

// Region is the complete shared block.
type Region struct {
	Commands Commands
	Runner   GameStructure
	Control  GameStructure

	CommandsSeq atomic.Uint32
	ControlSeq  atomic.Uint32
	GameSeq     atomic.Uint32
}

// Size is the byte size of Region; backing storage must be at least this long.
const Size = int(unsafe.Sizeof(Region{}))

// Align is the alignment the backing storage must satisfy.
const Align = int(unsafe.Alignof(Region{}))

// ColorIndex returns the slot index of channel c on face f.
func ColorIndex(face, channel int) int {
	return face*Channels + channel
}
