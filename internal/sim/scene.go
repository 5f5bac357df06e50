package sim

import (
	"encoding/binary"
	"math/rand/v2"

	"github.com/vstrozzi/monkey-3d-game/internal/core"
	"github.com/vstrozzi/monkey-3d-game/internal/layout"
)

// EntityID names a scene object. IDs are never reused across rebuilds, so a
// reference held over a reset resolves to nothing instead of a new object.
type EntityID uint32

// Light is the spotlight behind one door.
type Light struct {
	Door      int
	Intensity float32
	Visible   bool
}

// Decoration is one ornament on a pyramid face, in barycentric face
// coordinates (U, V with U+V <= 1).
type Decoration struct {
	Face int
	U, V float32
	Size float32
}

// Scene is the Runner's model of the current round.
type Scene struct {
	StartOrient float32
	Decorations []Decoration
	Lights      map[EntityID]*Light

	MainSpotlight float32
	Ambient       float32

	doorLights [layout.Faces]EntityID
}

// newRNG seeds a ChaCha8 stream from a 64-bit round seed.
func newRNG(seed uint64) *rand.Rand {
	var key [32]byte
	binary.LittleEndian.PutUint64(key[:8], seed)
	return rand.New(rand.NewChaCha8(key))
}

// buildScene lays out a round from the Runner copy. ids supplies fresh
// entity IDs.
func buildScene(g *layout.GameStructure, rng *rand.Rand, ids *EntityID) *Scene {
	s := &Scene{
		StartOrient:   g.StartOrient.Load(),
		Lights:        make(map[EntityID]*Light, layout.Faces),
		MainSpotlight: g.MainSpotlightIntensity.Load(),
		Ambient:       g.AmbientBrightness.Load(),
	}

	for face := 0; face < layout.Faces; face++ {
		*ids++
		s.Lights[*ids] = &Light{Door: face}
		s.doorLights[face] = *ids

		size := g.DecorationsSize[face].Load()
		for n := g.DecorationsCount[face].Load(); n > 0; n-- {
			u, v := rng.Float32(), rng.Float32()
			if u+v > 1 {
				u, v = 1-u, 1-v
			}
			s.Decorations = append(s.Decorations, Decoration{Face: face, U: u, V: v, Size: size})
		}
	}
	return s
}

// DoorLight returns the light entity behind door.
func (s *Scene) DoorLight(door int) (EntityID, bool) {
	if door < 0 || door >= layout.Faces {
		return 0, false
	}
	id := s.doorLights[door]
	_, ok := s.Lights[id]
	return id, ok
}

// DoorNormal returns the ground-plane direction door faces, given the
// pyramid's accumulated yaw.
func (s *Scene) DoorNormal(door int, yaw float32) core.Vec2 {
	return core.FromYaw(s.StartOrient + yaw + float32(door)*layout.PyramidAngleIncrement)
}

// Alignment is the cosine between the direction door faces and the camera's
// ground-plane position: 1 when the door faces the camera head on.
func Alignment(doorNormal core.Vec2, camera core.Vec2) float32 {
	return doorNormal.Normalize().Dot(camera.Normalize())
}
