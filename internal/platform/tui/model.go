package tui

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vstrozzi/monkey-3d-game/internal/layout"
	"github.com/vstrozzi/monkey-3d-game/internal/protocol"
	"github.com/vstrozzi/monkey-3d-game/internal/storage"
)

const defaultHoldWindow = 150 * time.Millisecond

// winBlank tracks the blank screen shown between a win and the next round.
type winBlank int

const (
	blankIdle    winBlank = iota
	blankPending          // won, waiting for the door animation to end
	blankActive
)

// Options configures a monitor.
type Options struct {
	PollRate   int
	HoldWindow time.Duration
	Trials     []protocol.RoundConfig
	Store      *storage.Store
	Logger     *log.Logger
	Width      int
	Height     int
}

// MonitorModel is the Bubble Tea model of the experiment dashboard.
type MonitorModel struct {
	ctrl   *protocol.Controller
	store  *storage.Store
	logger *log.Logger

	keys MonitorKeyMap
	help help.Model

	pollRate   int
	holdWindow time.Duration

	// Terminals report key repeats but no releases, so a continuous key
	// stays down until its deadline passes without another repeat.
	deadlines [heldCount]time.Time
	pressed   [heldCount]bool

	tel        protocol.Telemetry
	control    protocol.Telemetry
	gameSeq    uint32
	stalePolls int
	regressed  bool
	awaitReset bool
	started    bool
	savedSeq   uint32

	blank     winBlank
	blankFrom uint64

	status    string
	statusErr bool

	width    int
	height   int
	quitting bool
}

// NewMonitorModel creates a monitor around an attached controller. With no
// trials the default round is used as a one-entry list.
func NewMonitorModel(ctrl *protocol.Controller, opts Options) MonitorModel {
	trials := opts.Trials
	if len(trials) == 0 {
		trials = []protocol.RoundConfig{protocol.DefaultRoundConfig()}
	}
	ctrl.SetTrials(trials)

	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	hold := opts.HoldWindow
	if hold <= 0 {
		hold = defaultHoldWindow
	}
	pollRate := opts.PollRate
	if pollRate <= 0 {
		pollRate = 30
	}

	h := help.New()
	h.ShowAll = false

	return MonitorModel{
		ctrl:       ctrl,
		store:      opts.Store,
		logger:     logger,
		keys:       DefaultMonitorKeyMap(),
		help:       h,
		pollRate:   pollRate,
		holdWindow: hold,
		width:      opts.Width,
		height:     opts.Height,
	}
}

// Init starts polling.
func (m MonitorModel) Init() tea.Cmd {
	return tickCmd(m.pollRate)
}

// Update handles messages for the monitor.
func (m MonitorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg, time.Now())

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		m.poll(time.Time(msg))
		return m, tickCmd(m.pollRate)
	}
	return m, nil
}

func (m MonitorModel) handleKey(msg tea.KeyMsg, now time.Time) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		m.ctrl.Hold(protocol.CommandSet{})
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, m.keys.NextTrial):
		m.publish(m.ctrl.NextRound)
		return m, nil

	case key.Matches(msg, m.keys.Retry):
		m.publish(m.ctrl.Retry)
		return m, nil

	case key.Matches(msg, m.keys.Save):
		m.saveRound()
		return m, nil
	}

	if k, ok := m.keys.continuous(msg); ok {
		m.deadlines[k] = now.Add(m.holdWindow)
		if !m.pressed[k] {
			m.pressed[k] = true
			m.ctrl.Hold(held(m.pressed))
		}
		return m, nil
	}

	if cs, ok := m.keys.edge(msg); ok {
		m.ctrl.Pulse(held(m.pressed), cs)
		m.setStatus("sent " + cs.String())
	}
	return m, nil
}

// poll releases expired keys and refreshes telemetry.
func (m *MonitorModel) poll(now time.Time) {
	if !m.started {
		m.start()
	}

	changed := false
	for k := range m.pressed {
		if m.pressed[k] && !now.Before(m.deadlines[k]) {
			m.pressed[k] = false
			changed = true
		}
	}
	if changed {
		m.ctrl.Hold(held(m.pressed))
	}

	tel := m.ctrl.Telemetry()
	seq := m.ctrl.GameSeq()

	if seq == m.gameSeq {
		m.stalePolls++
	} else {
		m.stalePolls = 0
	}
	// The frame counter only goes backwards on the reset that follows a
	// publish. Anything else means the Runner restarted under us.
	if tel.FrameNumber < m.tel.FrameNumber {
		m.regressed = !m.awaitReset
		m.awaitReset = false
	}

	won := tel.WinTime > 0 && m.tel.WinTime == 0
	m.tel = tel
	m.gameSeq = seq
	m.control = m.ctrl.Control()

	if won {
		m.setStatus(fmt.Sprintf("target aligned after %d attempts, %.2fs", tel.Attempts, tel.WinTime))
		m.saveRound()
		m.blank = blankPending
	}
	m.stepBlank()
}

// stepBlank blanks the screen once the winning door animation ends and
// restores it after layout.WinBlankFrames frames. A reset in between also
// ends the blank, since the reset does not clear it on the Runner side.
func (m *MonitorModel) stepBlank() {
	toggle := protocol.CommandSet{BlankScreen: true}
	switch m.blank {
	case blankPending:
		if m.tel.IsAnimating {
			return
		}
		m.ctrl.Pulse(held(m.pressed), toggle)
		m.blank, m.blankFrom = blankActive, m.tel.FrameNumber
		m.logger.Debug("win blank started", "frame", m.blankFrom)
	case blankActive:
		frame := m.tel.FrameNumber
		if frame >= m.blankFrom && frame-m.blankFrom < layout.WinBlankFrames {
			return
		}
		m.ctrl.Pulse(held(m.pressed), toggle)
		m.blank = blankIdle
		m.logger.Debug("win blank ended", "frame", frame)
	}
}

// start arms the readiness gate and publishes the first trial.
func (m *MonitorModel) start() {
	m.started = true
	m.ctrl.Hold(protocol.CommandSet{})
	m.publish(m.ctrl.NextRound)
}

func (m *MonitorModel) publish(fn func() (protocol.RoundConfig, error)) {
	rc, err := fn()
	if err != nil {
		m.logger.Warn("publish round failed", "error", err)
		m.setError(err)
		return
	}
	m.awaitReset = true
	m.regressed = false
	idx, n := m.ctrl.TrialIndex()
	m.logger.Info("published round", "seed", rc.Seed, "target_door", rc.TargetDoor)
	m.setStatus(fmt.Sprintf("published seed %d (next trial %d/%d)", rc.Seed, idx+1, n))
}

// saveRound records the current round once per publish.
func (m *MonitorModel) saveRound() {
	if m.store == nil {
		return
	}
	seq := m.ctrl.ControlSeq()
	if seq == 0 || seq == m.savedSeq {
		return
	}
	rc, ok := m.ctrl.Current()
	if !ok {
		m.setError(protocol.ErrNoRound)
		return
	}
	id, err := m.store.SaveRound(rc, m.tel)
	if err != nil {
		m.logger.Error("save round failed", "error", err)
		m.setError(err)
		return
	}
	m.savedSeq = seq
	m.logger.Info("saved round", "id", id, "seed", rc.Seed)
}

func (m *MonitorModel) setStatus(s string) {
	m.status = s
	m.statusErr = false
}

func (m *MonitorModel) setError(err error) {
	switch {
	case errors.Is(err, protocol.ErrNotReady):
		m.status = "runner not ready: send any command first"
	default:
		m.status = err.Error()
	}
	m.statusErr = true
}

// Stalled reports whether the Runner has not emitted telemetry for about a
// second.
func (m MonitorModel) Stalled() bool {
	return m.stalePolls >= m.pollRate
}

// Pressed returns the continuous commands currently held.
func (m MonitorModel) Pressed() protocol.CommandSet {
	return held(m.pressed)
}

// IsQuitting returns true if the user asked to quit.
func (m MonitorModel) IsQuitting() bool {
	return m.quitting
}

// Run runs the monitor until the user quits.
func Run(ctrl *protocol.Controller, opts Options) error {
	model := NewMonitorModel(ctrl, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
