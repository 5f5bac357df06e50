package layout

import (
	"math"
	"sync/atomic"
)

// Game defaults.
const (
	RefreshRateHz         = 60.0
	DefaultSeed    uint64 = 69
	AlignmentToWin        = float32(0.95) // approx 18 degrees off-axis
	WinBlankFrames uint64 = 60
)

// Camera defaults.
const (
	CameraInitialX      = float32(0.0)
	CameraInitialY      = float32(1.0)
	CameraInitialZ      = float32(15.0)
	CameraInitialRadius = float32(15.0)
	CameraSpeedRotate   = float32(0.05)
	CameraSpeedZoom     = float32(0.10)
	CameraMinRadius     = float32(12.0)
	CameraMaxRadius     = float32(20.0)
)

// Pyramid defaults.
const (
	PyramidBaseRadius            = float32(2.5)
	PyramidHeight                = float32(4.0)
	PyramidStartOrient           = float32(0.0)
	PyramidTargetDoor     uint32 = 0
	PyramidAngleIncrement        = float32(120.0 * math.Pi / 180.0)

	DoorAnimFadeOut  = float32(0.5)
	DoorAnimStayOpen = float32(0.5)
	DoorAnimFadeIn   = float32(0.5)
)

// Lighting defaults.
const (
	SpotlightIntensity    = float32(5_000_000.0)
	AmbientIntensity      = float32(200.0)
	MaxSpotlightIntensity = float32(1_000_000.0)
)

// PyramidColors is the default RGBA color per face.
var PyramidColors = [Faces][Channels]float32{
	{1.0, 0.0, 0.0, 1.0},
	{0.0, 1.0, 0.0, 1.0},
	{0.0, 0.0, 1.0, 1.0},
}

// Decoration defaults per face.
var (
	PyramidDecorationsCount = [Faces]uint32{50, 20, 10}
	PyramidDecorationsSize  = [Faces]float32{0.1, 0.2, 0.3}
)

// FramesToSeconds converts a frame count to seconds at the refresh rate.
func FramesToSeconds(frames uint64) float32 {
	return float32(frames) / RefreshRateHz
}

// Populate writes default values into every field of g.
func (g *GameStructure) Populate() {
	g.Seed.Store(DefaultSeed)
	g.BaseRadius.Store(PyramidBaseRadius)
	g.Height.Store(PyramidHeight)
	g.StartOrient.Store(PyramidStartOrient)
	g.TargetDoor.Store(PyramidTargetDoor)
	for f := 0; f < Faces; f++ {
		for c := 0; c < Channels; c++ {
			g.Colors[ColorIndex(f, c)].Store(PyramidColors[f][c])
		}
		g.DecorationsCount[f].Store(PyramidDecorationsCount[f])
		g.DecorationsSize[f].Store(PyramidDecorationsSize[f])
	}
	g.AlignmentThreshold.Store(AlignmentToWin)
	g.DoorAnimFadeOut.Store(DoorAnimFadeOut)
	g.DoorAnimStayOpen.Store(DoorAnimStayOpen)
	g.DoorAnimFadeIn.Store(DoorAnimFadeIn)
	g.MainSpotlightIntensity.Store(SpotlightIntensity)
	g.AmbientBrightness.Store(AmbientIntensity)
	g.MaxSpotlightIntensity.Store(MaxSpotlightIntensity)

	g.FrameNumber.Store(0)
	g.ElapsedSecs.Store(0)
	g.CameraRadius.Store(CameraInitialRadius)
	g.CameraX.Store(CameraInitialX)
	g.CameraY.Store(CameraInitialY)
	g.CameraZ.Store(CameraInitialZ)
	g.Attempts.Store(0)
	g.CurrentAlignment.Store(0)
	g.CurrentAngle.Store(0)
	g.IsAnimating.Store(false)
	g.WinTime.Store(0)
}

// Populate writes the start-of-life contents of the region: every command
// cleared, both game structures at their defaults, sequence counters at zero.
func (r *Region) Populate() {
	c := &r.Commands
	for _, flag := range []*atomic.Bool{
		&c.RotateLeft, &c.RotateRight, &c.ZoomIn, &c.ZoomOut,
		&c.CheckAlignment, &c.Reset, &c.BlankScreen,
		&c.StopRendering, &c.ResumeRendering, &c.AnimationDoor,
	} {
		flag.Store(false)
	}
	r.Runner.Populate()
	r.Control.Populate()
	r.CommandsSeq.Store(0)
	r.ControlSeq.Store(0)
	r.GameSeq.Store(0)
}
