// Package sim is a headless Runner: it owns the shared region, consumes
// commands, adopts rounds and writes telemetry once per tick, without any
// rendering.
package sim

import (
	"context"
	"io"
	"math/rand/v2"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vstrozzi/monkey-3d-game/internal/core"
	"github.com/vstrozzi/monkey-3d-game/internal/layout"
	"github.com/vstrozzi/monkey-3d-game/internal/protocol"
	"github.com/vstrozzi/monkey-3d-game/internal/shm"
)

// AttachFunc produces the region handle. It is retried every tick until it
// succeeds.
type AttachFunc func() (shm.Handle, error)

// Runner is the simulation side of the link.
type Runner struct {
	logger   *log.Logger
	attach   AttachFunc
	tickRate int

	h      shm.Handle
	r      *layout.Region
	warned bool

	rng   *rand.Rand
	scene *Scene
	ids   EntityID
	anim  doorAnimation

	yaw    float32 // accumulated pyramid rotation
	camera [3]float32

	frame   uint64
	elapsed float32 // seconds since the round started
	clock   float64 // unpaused seconds since attach, drives animations
	paused  bool
	blank   bool
}

// New creates a Runner. A nil logger discards output.
func New(attach AttachFunc, tickRate int, logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if tickRate <= 0 {
		tickRate = int(layout.RefreshRateHz)
	}
	return &Runner{
		logger:   logger,
		attach:   attach,
		tickRate: tickRate,
	}
}

// CreateRegion returns an AttachFunc that creates the named region, the
// Runner's role on file-backed targets.
func CreateRegion(opts shm.Options) AttachFunc {
	return func() (shm.Handle, error) {
		return shm.Create(opts)
	}
}

// Run ticks at the configured rate until ctx is done.
func (r *Runner) Run(ctx context.Context) error {
	ticker := time.NewTicker(time.Second / time.Duration(r.tickRate))
	defer ticker.Stop()

	dt := 1 / float32(r.tickRate)
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			r.Tick(dt)
		}
	}
}

// Close releases the region handle.
func (r *Runner) Close() error {
	if r.h == nil {
		return nil
	}
	err := r.h.Close()
	r.h, r.r = nil, nil
	return err
}

// Tick advances the simulation by dt seconds.
func (r *Runner) Tick(dt float32) {
	if !r.ensureAttached() {
		return
	}
	// The animation clock stops with the simulation so a paused door
	// animation resumes where it left off.
	if !r.paused {
		r.clock += float64(dt)
	}

	cs := protocol.ConsumeCommands(r.r)

	if cs.Reset {
		r.resetRound()
	}
	r.elapsed += dt

	if cs.BlankScreen {
		r.blank = !r.blank
		r.logger.Info("blank screen", "active", r.blank)
	}
	if cs.StopRendering && !r.paused {
		r.paused = true
		r.logger.Info("rendering paused")
	}
	if cs.ResumeRendering && r.paused {
		r.paused = false
		r.logger.Info("rendering resumed")
	}

	// While paused, consumed pulses for movement and checks are dropped.
	if !r.paused {
		if !r.r.Runner.IsAnimating.Load() {
			r.yaw += cs.Rotation()
			if z := cs.Zoom(); z != 0 {
				r.zoom(z)
			}
		}
		if cs.CheckAlignment {
			r.checkAlignment()
		}
	}
	if cs.AnimationDoor {
		r.startAnimation()
	}
	if !r.paused {
		r.progressAnimation()
		r.frame++
	}
	r.emit()
}

func (r *Runner) ensureAttached() bool {
	if r.h != nil {
		return true
	}
	h, err := r.attach()
	if err != nil {
		if !r.warned {
			r.logger.Warn("shared memory unavailable, retrying every tick", "error", err)
			r.warned = true
		}
		return false
	}

	r.h, r.r = h, h.Region()
	r.warned = false
	g := &r.r.Runner
	r.rng = newRNG(g.Seed.Load())
	r.scene = buildScene(g, r.rng, &r.ids)
	r.camera = [3]float32{g.CameraX.Load(), g.CameraY.Load(), g.CameraZ.Load()}
	r.logger.Info("attached to shared memory", "seed", g.Seed.Load())
	return true
}

// resetRound adopts the Control copy and starts the round from scratch.
func (r *Runner) resetRound() {
	seed := protocol.AdoptRound(r.r)
	g := &r.r.Runner

	r.rng = newRNG(seed)
	r.frame = 0
	r.elapsed = 0
	r.yaw = 0
	r.anim = doorAnimation{}
	g.IsAnimating.Store(false)
	g.WinTime.Store(0)

	r.camera = [3]float32{g.CameraX.Load(), g.CameraY.Load(), g.CameraZ.Load()}
	r.scene = buildScene(g, r.rng, &r.ids)

	r.logger.Info("round adopted",
		"seed", seed,
		"target_door", g.TargetDoor.Load(),
		"decorations", len(r.scene.Decorations),
	)
}

// zoom moves the camera along its ground-plane ray, keeping its yaw.
func (r *Runner) zoom(delta float32) {
	pos := core.Vec2{X: r.camera[0], Z: r.camera[2]}
	radius := core.Clamp(pos.Len()+delta, layout.CameraMinRadius, layout.CameraMaxRadius)
	p := core.FromYaw(pos.Yaw()).Scale(radius)
	r.camera = [3]float32{p.X, layout.CameraInitialY, p.Z}
}

func (r *Runner) cameraXZ() core.Vec2 {
	return core.Vec2{X: r.camera[0], Z: r.camera[2]}
}

// targetAlignment measures the target door read from the Runner copy.
func (r *Runner) targetAlignment() float32 {
	door := int(r.r.Runner.TargetDoor.Load())
	return Alignment(r.scene.DoorNormal(door, r.yaw), r.cameraXZ())
}

func (r *Runner) checkAlignment() {
	g := &r.r.Runner
	attempts := g.Attempts.Add(1)
	alignment := r.targetAlignment()
	g.CurrentAlignment.Store(alignment)

	won := alignment >= g.AlignmentThreshold.Load()
	if won && g.WinTime.Load() == 0 {
		g.WinTime.Store(r.elapsed)
	}
	r.logger.Info("alignment checked", "attempt", attempts, "alignment", alignment, "won", won)
}

// emit publishes this tick's telemetry and bumps the game sequence.
func (r *Runner) emit() {
	g := &r.r.Runner
	g.FrameNumber.Store(r.frame)
	g.ElapsedSecs.Store(r.elapsed)

	g.CameraRadius.Store(r.cameraXZ().Len())
	g.CameraX.Store(r.camera[0])
	g.CameraY.Store(r.camera[1])
	g.CameraZ.Store(r.camera[2])

	alignment := r.targetAlignment()
	g.CurrentAlignment.Store(alignment)
	g.CurrentAngle.Store(core.Angle(alignment))

	r.r.GameSeq.Add(1)
}

// Attached reports whether the Runner holds a region.
func (r *Runner) Attached() bool { return r.h != nil }

// Blank reports whether the screen is blanked.
func (r *Runner) Blank() bool { return r.blank }

// Paused reports whether frame counting is stopped.
func (r *Runner) Paused() bool { return r.paused }

// Scene returns the current round's scene, or nil before attach.
func (r *Runner) Scene() *Scene { return r.scene }

// Yaw returns the accumulated pyramid rotation.
func (r *Runner) Yaw() float32 { return r.yaw }
