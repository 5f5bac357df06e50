package protocol

import (
	"errors"
	"fmt"
	"math"

	"github.com/vstrozzi/monkey-3d-game/internal/layout"
)

var (
	// ErrShape matches every *ShapeError.
	ErrShape = errors.New("protocol: malformed round configuration")

	// ErrNotReady is returned by a round publish attempted before any command
	// has ever been issued. Nothing is written.
	ErrNotReady = errors.New("protocol: cannot publish round while command sequence is zero")
)

// MaxDecorationsPerFace bounds decorations_count so a round cannot make the
// Runner allocate without limit.
const MaxDecorationsPerFace = 10_000

// ShapeError describes a configuration array of the wrong shape.
type ShapeError struct {
	Field string
	Want  string
	Got   string
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("protocol: %s: expected %s, got %s", e.Field, e.Want, e.Got)
}

func (e *ShapeError) Is(target error) bool {
	return target == ErrShape
}

// RoundConfig is everything the Controller sets for one round. Arrays are
// slices so that configurations decoded from YAML or JSON can be checked for
// shape before anything reaches the region.
type RoundConfig struct {
	Seed        uint64  `yaml:"seed" json:"seed"`
	BaseRadius  float32 `yaml:"base_radius" json:"base_radius"`
	Height      float32 `yaml:"height" json:"height"`
	StartOrient float32 `yaml:"start_orient" json:"start_orient"`
	TargetDoor  uint32  `yaml:"target_door" json:"target_door"`

	Colors           [][]float32 `yaml:"colors" json:"colors"`
	DecorationsCount []uint32    `yaml:"decorations_count" json:"decorations_count"`
	DecorationsSize  []float32   `yaml:"decorations_size" json:"decorations_size"`

	AlignmentThreshold float32 `yaml:"cosine_alignment_threshold" json:"cosine_alignment_threshold"`

	DoorAnimFadeOut  float32 `yaml:"door_anim_fade_out" json:"door_anim_fade_out"`
	DoorAnimStayOpen float32 `yaml:"door_anim_stay_open" json:"door_anim_stay_open"`
	DoorAnimFadeIn   float32 `yaml:"door_anim_fade_in" json:"door_anim_fade_in"`

	MainSpotlightIntensity float32 `yaml:"main_spotlight_intensity" json:"main_spotlight_intensity"`
	AmbientBrightness      float32 `yaml:"ambient_brightness" json:"ambient_brightness"`
	MaxSpotlightIntensity  float32 `yaml:"max_spotlight_intensity" json:"max_spotlight_intensity"`
}

// DefaultRoundConfig returns the round the region is populated with.
func DefaultRoundConfig() RoundConfig {
	colors := make([][]float32, layout.Faces)
	for f := range colors {
		colors[f] = append([]float32(nil), layout.PyramidColors[f][:]...)
	}
	return RoundConfig{
		Seed:                   layout.DefaultSeed,
		BaseRadius:             layout.PyramidBaseRadius,
		Height:                 layout.PyramidHeight,
		StartOrient:            layout.PyramidStartOrient,
		TargetDoor:             layout.PyramidTargetDoor,
		Colors:                 colors,
		DecorationsCount:       append([]uint32(nil), layout.PyramidDecorationsCount[:]...),
		DecorationsSize:        append([]float32(nil), layout.PyramidDecorationsSize[:]...),
		AlignmentThreshold:     layout.AlignmentToWin,
		DoorAnimFadeOut:        layout.DoorAnimFadeOut,
		DoorAnimStayOpen:       layout.DoorAnimStayOpen,
		DoorAnimFadeIn:         layout.DoorAnimFadeIn,
		MainSpotlightIntensity: layout.SpotlightIntensity,
		AmbientBrightness:      layout.AmbientIntensity,
		MaxSpotlightIntensity:  layout.MaxSpotlightIntensity,
	}
}

// Clone returns a copy of rc that shares no slices with it.
func (rc RoundConfig) Clone() RoundConfig {
	out := rc
	if rc.Colors != nil {
		out.Colors = make([][]float32, len(rc.Colors))
		for f, row := range rc.Colors {
			out.Colors[f] = append([]float32(nil), row...)
		}
	}
	out.DecorationsCount = append([]uint32(nil), rc.DecorationsCount...)
	out.DecorationsSize = append([]float32(nil), rc.DecorationsSize...)
	return out
}

// RoundFromSnapshot extracts the configuration half of a snapshot.
func RoundFromSnapshot(s layout.Snapshot) RoundConfig {
	colors := make([][]float32, layout.Faces)
	for f := range colors {
		colors[f] = append([]float32(nil), s.Colors[f][:]...)
	}
	return RoundConfig{
		Seed:                   s.Seed,
		BaseRadius:             s.BaseRadius,
		Height:                 s.Height,
		StartOrient:            s.StartOrient,
		TargetDoor:             s.TargetDoor,
		Colors:                 colors,
		DecorationsCount:       append([]uint32(nil), s.DecorationsCount[:]...),
		DecorationsSize:        append([]float32(nil), s.DecorationsSize[:]...),
		AlignmentThreshold:     s.AlignmentThreshold,
		DoorAnimFadeOut:        s.DoorAnimFadeOut,
		DoorAnimStayOpen:       s.DoorAnimStayOpen,
		DoorAnimFadeIn:         s.DoorAnimFadeIn,
		MainSpotlightIntensity: s.MainSpotlight,
		AmbientBrightness:      s.AmbientBrightness,
		MaxSpotlightIntensity:  s.MaxSpotlight,
	}
}

// Validate checks the array shapes, the target door index, the decoration
// counts and that every float is finite.
func (rc RoundConfig) Validate() error {
	if len(rc.Colors) != layout.Faces {
		return &ShapeError{Field: "colors", Want: fmt.Sprintf("%d faces", layout.Faces), Got: fmt.Sprintf("%d", len(rc.Colors))}
	}
	for i, face := range rc.Colors {
		if len(face) != layout.Channels {
			rows := make([]int, len(rc.Colors))
			for j := range rc.Colors {
				rows[j] = len(rc.Colors[j])
			}
			return &ShapeError{
				Field: fmt.Sprintf("colors[%d]", i),
				Want:  fmt.Sprintf("%dx%d matrix", layout.Faces, layout.Channels),
				Got:   fmt.Sprintf("row lengths %v", rows),
			}
		}
	}
	if len(rc.DecorationsCount) != layout.Faces {
		return &ShapeError{Field: "decorations_count", Want: fmt.Sprintf("%d values", layout.Faces), Got: fmt.Sprintf("%d", len(rc.DecorationsCount))}
	}
	if len(rc.DecorationsSize) != layout.Faces {
		return &ShapeError{Field: "decorations_size", Want: fmt.Sprintf("%d values", layout.Faces), Got: fmt.Sprintf("%d", len(rc.DecorationsSize))}
	}
	if rc.TargetDoor >= layout.Faces {
		return &ShapeError{Field: "target_door", Want: fmt.Sprintf("index below %d", layout.Faces), Got: fmt.Sprintf("%d", rc.TargetDoor)}
	}
	for i, n := range rc.DecorationsCount {
		if n > MaxDecorationsPerFace {
			return &ShapeError{
				Field: fmt.Sprintf("decorations_count[%d]", i),
				Want:  fmt.Sprintf("at most %d", MaxDecorationsPerFace),
				Got:   fmt.Sprintf("%d", n),
			}
		}
	}
	return rc.validateFinite()
}

// validateFinite rejects NaN and infinite values, which would poison the
// alignment math on the Runner.
func (rc RoundConfig) validateFinite() error {
	type field struct {
		name string
		v    float32
	}
	fields := []field{
		{"base_radius", rc.BaseRadius},
		{"height", rc.Height},
		{"start_orient", rc.StartOrient},
		{"cosine_alignment_threshold", rc.AlignmentThreshold},
		{"door_anim_fade_out", rc.DoorAnimFadeOut},
		{"door_anim_stay_open", rc.DoorAnimStayOpen},
		{"door_anim_fade_in", rc.DoorAnimFadeIn},
		{"main_spotlight_intensity", rc.MainSpotlightIntensity},
		{"ambient_brightness", rc.AmbientBrightness},
		{"max_spotlight_intensity", rc.MaxSpotlightIntensity},
	}
	for f, face := range rc.Colors {
		for c, v := range face {
			fields = append(fields, field{fmt.Sprintf("colors[%d][%d]", f, c), v})
		}
	}
	for i, v := range rc.DecorationsSize {
		fields = append(fields, field{fmt.Sprintf("decorations_size[%d]", i), v})
	}

	for _, f := range fields {
		if math.IsNaN(float64(f.v)) || math.IsInf(float64(f.v), 0) {
			return &ShapeError{Field: f.name, Want: "finite value", Got: fmt.Sprintf("%v", f.v)}
		}
	}
	return nil
}

// writeRound stores every configuration field of rc into g. rc must be valid.
func writeRound(g *layout.GameStructure, rc RoundConfig) {
	g.Seed.Store(rc.Seed)
	g.BaseRadius.Store(rc.BaseRadius)
	g.Height.Store(rc.Height)
	g.StartOrient.Store(rc.StartOrient)
	g.TargetDoor.Store(rc.TargetDoor)

	for f, face := range rc.Colors {
		for c, v := range face {
			g.Colors[layout.ColorIndex(f, c)].Store(v)
		}
	}
	for i := 0; i < layout.Faces; i++ {
		g.DecorationsCount[i].Store(rc.DecorationsCount[i])
		g.DecorationsSize[i].Store(rc.DecorationsSize[i])
	}

	g.AlignmentThreshold.Store(rc.AlignmentThreshold)
	g.DoorAnimFadeOut.Store(rc.DoorAnimFadeOut)
	g.DoorAnimStayOpen.Store(rc.DoorAnimStayOpen)
	g.DoorAnimFadeIn.Store(rc.DoorAnimFadeIn)
	g.MainSpotlightIntensity.Store(rc.MainSpotlightIntensity)
	g.AmbientBrightness.Store(rc.AmbientBrightness)
	g.MaxSpotlightIntensity.Store(rc.MaxSpotlightIntensity)
}

// PublishRound runs the Controller half of the round handshake on r:
// validate, check the readiness gate, write the Control copy, raise reset and
// bump the sequences. On error nothing has been written.
func PublishRound(r *layout.Region, rc RoundConfig) error {
	if err := rc.Validate(); err != nil {
		return err
	}
	if r.CommandsSeq.Load() == 0 {
		return ErrNotReady
	}

	writeRound(&r.Control, rc)
	r.Commands.Reset.Store(true)
	r.ControlSeq.Add(1)
	r.CommandsSeq.Add(1)
	return nil
}
