package layout

// Snapshot is a plain copy of one game structure with floats decoded.
// Fields are read one at a time, so a snapshot taken while the writer is
// active may mix values from consecutive updates.
type Snapshot struct {
	Seed               uint64                   `yaml:"seed"`
	BaseRadius         float32                  `yaml:"base_radius"`
	Height             float32                  `yaml:"height"`
	StartOrient        float32                  `yaml:"start_orient"`
	TargetDoor         uint32                   `yaml:"target_door"`
	Colors             [Faces][Channels]float32 `yaml:"colors"`
	DecorationsCount   [Faces]uint32            `yaml:"decorations_count"`
	DecorationsSize    [Faces]float32           `yaml:"decorations_size"`
	AlignmentThreshold float32                  `yaml:"cosine_alignment_threshold"`
	DoorAnimFadeOut    float32                  `yaml:"door_anim_fade_out"`
	DoorAnimStayOpen   float32                  `yaml:"door_anim_stay_open"`
	DoorAnimFadeIn     float32                  `yaml:"door_anim_fade_in"`
	MainSpotlight      float32                  `yaml:"main_spotlight_intensity"`
	AmbientBrightness  float32                  `yaml:"ambient_brightness"`
	MaxSpotlight       float32                  `yaml:"max_spotlight_intensity"`
	FrameNumber        uint64                   `yaml:"frame_number"`
	ElapsedSecs        float32                  `yaml:"elapsed_secs"`
	CameraRadius       float32                  `yaml:"camera_radius"`
	CameraPosition     [3]float32               `yaml:"camera_position"`
	Attempts           uint32                   `yaml:"attempts"`
	CurrentAlignment   float32                  `yaml:"cosine_alignment"`
	CurrentAngle       float32                  `yaml:"current_angle"`
	IsAnimating        bool                     `yaml:"is_animating"`
	WinTime            float32                  `yaml:"win_elapsed_secs"`
}

// Snapshot reads every field of g.
func (g *GameStructure) Snapshot() Snapshot {
	s := Snapshot{
		Seed:               g.Seed.Load(),
		BaseRadius:         g.BaseRadius.Load(),
		Height:             g.Height.Load(),
		StartOrient:        g.StartOrient.Load(),
		TargetDoor:         g.TargetDoor.Load(),
		AlignmentThreshold: g.AlignmentThreshold.Load(),
		DoorAnimFadeOut:    g.DoorAnimFadeOut.Load(),
		DoorAnimStayOpen:   g.DoorAnimStayOpen.Load(),
		DoorAnimFadeIn:     g.DoorAnimFadeIn.Load(),
		MainSpotlight:      g.MainSpotlightIntensity.Load(),
		AmbientBrightness:  g.AmbientBrightness.Load(),
		MaxSpotlight:       g.MaxSpotlightIntensity.Load(),
		FrameNumber:        g.FrameNumber.Load(),
		ElapsedSecs:        g.ElapsedSecs.Load(),
		CameraRadius:       g.CameraRadius.Load(),
		CameraPosition:     [3]float32{g.CameraX.Load(), g.CameraY.Load(), g.CameraZ.Load()},
		Attempts:           g.Attempts.Load(),
		CurrentAlignment:   g.CurrentAlignment.Load(),
		CurrentAngle:       g.CurrentAngle.Load(),
		IsAnimating:        g.IsAnimating.Load(),
		WinTime:            g.WinTime.Load(),
	}
	for f := 0; f < Faces; f++ {
		for c := 0; c < Channels; c++ {
			s.Colors[f][c] = g.Colors[ColorIndex(f, c)].Load()
		}
		s.DecorationsCount[f] = g.DecorationsCount[f].Load()
		s.DecorationsSize[f] = g.DecorationsSize[f].Load()
	}
	return s
}

// View is a read-only window onto a region.
type View struct {
	r *Region
}

// NewView wraps r for reading.
func NewView(r *Region) View {
	return View{r: r}
}

// Telemetry returns the Runner copy.
func (v View) Telemetry() Snapshot {
	return v.r.Runner.Snapshot()
}

// Control returns the Controller copy.
func (v View) Control() Snapshot {
	return v.r.Control.Snapshot()
}

// CommandsSeq returns the command sequence counter.
func (v View) CommandsSeq() uint32 {
	return v.r.CommandsSeq.Load()
}

// ControlSeq returns the control-structure sequence counter.
func (v View) ControlSeq() uint32 {
	return v.r.ControlSeq.Load()
}

// GameSeq returns the game-structure sequence counter.
func (v View) GameSeq() uint32 {
	return v.r.GameSeq.Load()
}
