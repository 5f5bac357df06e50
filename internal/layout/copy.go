package layout

// CopyFrom copies every field of src into g, slot by slot. Bits are copied
// verbatim so the destination is an exact replica of what was read.
//
// Each slot is read and written atomically, but the copy as a whole is not:
// a writer racing on src may leave g with a mix of old and new values.
func (g *GameStructure) CopyFrom(src *GameStructure) {
	g.Seed.Store(src.Seed.Load())
	g.BaseRadius.StoreBits(src.BaseRadius.LoadBits())
	g.Height.StoreBits(src.Height.LoadBits())
	g.StartOrient.StoreBits(src.StartOrient.LoadBits())
	g.TargetDoor.Store(src.TargetDoor.Load())
	for i := range g.Colors {
		g.Colors[i].StoreBits(src.Colors[i].LoadBits())
	}
	for i := 0; i < Faces; i++ {
		g.DecorationsCount[i].Store(src.DecorationsCount[i].Load())
		g.DecorationsSize[i].StoreBits(src.DecorationsSize[i].LoadBits())
	}
	g.AlignmentThreshold.StoreBits(src.AlignmentThreshold.LoadBits())
	g.DoorAnimFadeOut.StoreBits(src.DoorAnimFadeOut.LoadBits())
	g.DoorAnimStayOpen.StoreBits(src.DoorAnimStayOpen.LoadBits())
	g.DoorAnimFadeIn.StoreBits(src.DoorAnimFadeIn.LoadBits())
	g.MainSpotlightIntensity.StoreBits(src.MainSpotlightIntensity.LoadBits())
	g.AmbientBrightness.StoreBits(src.AmbientBrightness.LoadBits())
	g.MaxSpotlightIntensity.StoreBits(src.MaxSpotlightIntensity.LoadBits())

	g.FrameNumber.Store(src.FrameNumber.Load())
	g.ElapsedSecs.StoreBits(src.ElapsedSecs.LoadBits())
	g.CameraRadius.StoreBits(src.CameraRadius.LoadBits())
	g.CameraX.StoreBits(src.CameraX.LoadBits())
	g.CameraY.StoreBits(src.CameraY.LoadBits())
	g.CameraZ.StoreBits(src.CameraZ.LoadBits())
	g.Attempts.Store(src.Attempts.Load())
	g.CurrentAlignment.StoreBits(src.CurrentAlignment.LoadBits())
	g.CurrentAngle.StoreBits(src.CurrentAngle.LoadBits())
	g.IsAnimating.Store(src.IsAnimating.Load())
	g.WinTime.StoreBits(src.WinTime.LoadBits())
}
