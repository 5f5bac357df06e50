package protocol

import (
	"errors"
	"sync"

	"github.com/vstrozzi/monkey-3d-game/internal/layout"
	"github.com/vstrozzi/monkey-3d-game/internal/shm"
)

var (
	// ErrNoRound is returned by Retry before any round has been published.
	ErrNoRound = errors.New("protocol: no round published yet")

	// ErrNoTrials is returned by NextRound when no trial list is set.
	ErrNoTrials = errors.New("protocol: no trials loaded")
)

// Telemetry is the decoded Runner copy.
type Telemetry = layout.Snapshot

// Controller is the control-side client of the region. It only attaches;
// the Runner owns creation.
type Controller struct {
	h shm.Handle
	r *layout.Region

	mu      sync.Mutex
	trials  []RoundConfig
	next    int
	current *RoundConfig
}

// NewController wraps an attached handle. The Controller takes ownership of
// the handle's reference and releases it on Close.
func NewController(h shm.Handle) *Controller {
	return &Controller{h: h, r: h.Region()}
}

// Connect attaches to the named region.
func Connect(opts shm.Options) (*Controller, error) {
	h, err := shm.Open(opts)
	if err != nil {
		return nil, err
	}
	return NewController(h), nil
}

// Close releases the region handle.
func (c *Controller) Close() error {
	return c.h.Close()
}

// PublishRound validates rc, checks the readiness gate, writes the Control
// copy and pulses reset. The controller keeps its own copy of rc for Retry.
func (c *Controller) PublishRound(rc RoundConfig) error {
	if err := PublishRound(c.r, rc); err != nil {
		return err
	}
	rc = rc.Clone()
	c.mu.Lock()
	c.current = &rc
	c.mu.Unlock()
	return nil
}

// PublishCommands stores every flag of cs.
func (c *Controller) PublishCommands(cs CommandSet) {
	WriteCommands(c.r, cs)
}

// Pulse raises the edge flags of cs with the continuous flags taken from
// held, so sending an edge command does not release a key that is being held
// down. Edges already pending stay set.
func (c *Controller) Pulse(held, cs CommandSet) {
	cs.RotateLeft = held.RotateLeft
	cs.RotateRight = held.RotateRight
	cs.ZoomIn = held.ZoomIn
	cs.ZoomOut = held.ZoomOut
	RaiseCommands(c.r, cs)
}

// Hold updates only the continuous flags.
func (c *Controller) Hold(held CommandSet) {
	c.Pulse(held, CommandSet{})
}

// Telemetry reads the Runner copy.
func (c *Controller) Telemetry() Telemetry {
	return c.h.View().Telemetry()
}

// Control reads back the Control copy.
func (c *Controller) Control() layout.Snapshot {
	return c.h.View().Control()
}

// Commands reads the command block without consuming it.
func (c *Controller) Commands() CommandSet {
	return PeekCommands(c.r)
}

func (c *Controller) CommandsSeq() uint32 { return c.r.CommandsSeq.Load() }
func (c *Controller) ControlSeq() uint32  { return c.r.ControlSeq.Load() }
func (c *Controller) GameSeq() uint32     { return c.r.GameSeq.Load() }

// SetTrials replaces the trial list and rewinds to its start.
func (c *Controller) SetTrials(trials []RoundConfig) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.trials = trials
	c.next = 0
}

// TrialIndex returns the index of the trial NextRound will publish and the
// length of the list.
func (c *Controller) TrialIndex() (int, int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.trials) == 0 {
		return 0, 0
	}
	return c.next % len(c.trials), len(c.trials)
}

// NextRound publishes the next trial, wrapping to the first after the last.
// The cursor only advances on success, so a round refused by the readiness
// gate is offered again.
func (c *Controller) NextRound() (RoundConfig, error) {
	c.mu.Lock()
	if len(c.trials) == 0 {
		c.mu.Unlock()
		return RoundConfig{}, ErrNoTrials
	}
	rc := c.trials[c.next%len(c.trials)]
	c.mu.Unlock()

	if err := c.PublishRound(rc); err != nil {
		return RoundConfig{}, err
	}

	c.mu.Lock()
	c.next++
	c.mu.Unlock()
	return rc, nil
}

// Retry publishes the last published round again.
func (c *Controller) Retry() (RoundConfig, error) {
	c.mu.Lock()
	cur := c.current
	c.mu.Unlock()
	if cur == nil {
		return RoundConfig{}, ErrNoRound
	}
	if err := c.PublishRound(*cur); err != nil {
		return RoundConfig{}, err
	}
	return cur.Clone(), nil
}

// Current returns the last published round.
func (c *Controller) Current() (RoundConfig, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.current == nil {
		return RoundConfig{}, false
	}
	return c.current.Clone(), true
}
