package sim

// doorAnimation tracks the light currently being animated. The flag the
// Controller sees lives in the region (Runner copy IsAnimating); this is
// the Runner-local half and the two can disagree after a reset or a
// restart, which progressAnimation repairs.
type doorAnimation struct {
	started bool
	start   float64
	light   EntityID
}

func (r *Runner) startAnimation() {
	g := &r.r.Runner
	if g.IsAnimating.Load() {
		r.logger.Info("door animation ignored: already animating")
		return
	}

	target := int(g.TargetDoor.Load())
	id, ok := r.scene.DoorLight(target)
	if !ok {
		r.logger.Warn("door animation: no light found", "target_door", target)
		return
	}

	r.anim = doorAnimation{started: true, start: r.clock, light: id}
	g.IsAnimating.Store(true)
	r.logger.Info("door animation started", "target_door", target, "light", id)
}

// progressAnimation drives the fade-out, stay-open, fade-in sequence.
func (r *Runner) progressAnimation() {
	g := &r.r.Runner
	if !g.IsAnimating.Load() {
		return
	}

	if !r.anim.started {
		r.logger.Warn("door animation flagged without a start time, clearing")
		r.clearAnimation()
		return
	}
	light, ok := r.scene.Lights[r.anim.light]
	if !ok {
		r.logger.Warn("door animation light no longer exists, clearing", "light", r.anim.light)
		r.clearAnimation()
		return
	}

	fadeOut := g.DoorAnimFadeOut.Load()
	stayOpen := g.DoorAnimStayOpen.Load()
	fadeIn := g.DoorAnimFadeIn.Load()
	t := float32(r.clock - r.anim.start)

	factor, done := animationFactor(t, fadeOut, stayOpen, fadeIn)
	if done {
		light.Visible = false
		light.Intensity = 0
		r.clearAnimation()
		return
	}
	light.Visible = true
	light.Intensity = g.MaxSpotlightIntensity.Load() * factor
}

func (r *Runner) clearAnimation() {
	r.anim = doorAnimation{}
	r.r.Runner.IsAnimating.Store(false)
}

// animationFactor returns the light level in [0, 1] at t seconds into the
// sequence, and whether the sequence has finished.
func animationFactor(t, fadeOut, stayOpen, fadeIn float32) (float32, bool) {
	openEnd := fadeOut + stayOpen
	closeEnd := openEnd + fadeIn
	switch {
	case t >= closeEnd:
		return 0, true
	case t < fadeOut:
		return t / fadeOut, false
	case t < openEnd:
		return 1, false
	default:
		return 1 - (t-openEnd)/fadeIn, false
	}
}
