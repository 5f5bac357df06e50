// Package protocol implements both ends of the exchange over the shared
// region: the Controller publishes rounds and commands, the Runner consumes
// commands and adopts rounds.
package protocol

import (
	"strings"
	"sync/atomic"

	"github.com/vstrozzi/monkey-3d-game/internal/layout"
)

// CommandSet carries one value per command flag.
type CommandSet struct {
	// Continuous: the Runner applies them on every tick they stay set.
	RotateLeft  bool `yaml:"rotate_left"`
	RotateRight bool `yaml:"rotate_right"`
	ZoomIn      bool `yaml:"zoom_in"`
	ZoomOut     bool `yaml:"zoom_out"`

	// Edge-triggered: observed by at most one Runner tick.
	CheckAlignment  bool `yaml:"check_alignment"`
	Reset           bool `yaml:"reset"`
	BlankScreen     bool `yaml:"blank_screen"`
	StopRendering   bool `yaml:"stop_rendering"`
	ResumeRendering bool `yaml:"resume_rendering"`
	AnimationDoor   bool `yaml:"animation_door"`
}

// WriteCommands stores every flag of cs and bumps the commands sequence.
// Continuous flags are overwritten, so a false value releases a held key.
func WriteCommands(r *layout.Region, cs CommandSet) {
	c := &r.Commands
	c.RotateLeft.Store(cs.RotateLeft)
	c.RotateRight.Store(cs.RotateRight)
	c.ZoomIn.Store(cs.ZoomIn)
	c.ZoomOut.Store(cs.ZoomOut)
	c.CheckAlignment.Store(cs.CheckAlignment)
	c.Reset.Store(cs.Reset)
	c.BlankScreen.Store(cs.BlankScreen)
	c.StopRendering.Store(cs.StopRendering)
	c.ResumeRendering.Store(cs.ResumeRendering)
	c.AnimationDoor.Store(cs.AnimationDoor)
	r.CommandsSeq.Add(1)
}

// RaiseCommands stores the continuous flags of cs and sets its edge flags
// without clearing edges that are still pending from an earlier write.
func RaiseCommands(r *layout.Region, cs CommandSet) {
	c := &r.Commands
	c.RotateLeft.Store(cs.RotateLeft)
	c.RotateRight.Store(cs.RotateRight)
	c.ZoomIn.Store(cs.ZoomIn)
	c.ZoomOut.Store(cs.ZoomOut)
	for _, f := range []struct {
		on   bool
		flag *atomic.Bool
	}{
		{cs.CheckAlignment, &c.CheckAlignment},
		{cs.Reset, &c.Reset},
		{cs.BlankScreen, &c.BlankScreen},
		{cs.StopRendering, &c.StopRendering},
		{cs.ResumeRendering, &c.ResumeRendering},
		{cs.AnimationDoor, &c.AnimationDoor},
	} {
		if f.on {
			f.flag.Store(true)
		}
	}
	r.CommandsSeq.Add(1)
}

// ConsumeCommands is the Runner's per-tick read. Continuous flags are
// sampled and left in place; edge flags are cleared as they are read, so a
// pulse is seen by exactly one call.
func ConsumeCommands(r *layout.Region) CommandSet {
	c := &r.Commands
	return CommandSet{
		RotateLeft:  c.RotateLeft.Load(),
		RotateRight: c.RotateRight.Load(),
		ZoomIn:      c.ZoomIn.Load(),
		ZoomOut:     c.ZoomOut.Load(),

		CheckAlignment:  c.CheckAlignment.Swap(false),
		Reset:           c.Reset.Swap(false),
		BlankScreen:     c.BlankScreen.Swap(false),
		StopRendering:   c.StopRendering.Swap(false),
		ResumeRendering: c.ResumeRendering.Swap(false),
		AnimationDoor:   c.AnimationDoor.Swap(false),
	}
}

// PeekCommands reads every flag without consuming anything.
func PeekCommands(r *layout.Region) CommandSet {
	c := &r.Commands
	return CommandSet{
		RotateLeft:      c.RotateLeft.Load(),
		RotateRight:     c.RotateRight.Load(),
		ZoomIn:          c.ZoomIn.Load(),
		ZoomOut:         c.ZoomOut.Load(),
		CheckAlignment:  c.CheckAlignment.Load(),
		Reset:           c.Reset.Load(),
		BlankScreen:     c.BlankScreen.Load(),
		StopRendering:   c.StopRendering.Load(),
		ResumeRendering: c.ResumeRendering.Load(),
		AnimationDoor:   c.AnimationDoor.Load(),
	}
}

// Rotation returns the net yaw step for this tick: negative for left.
func (cs CommandSet) Rotation() float32 {
	var d float32
	if cs.RotateLeft {
		d -= layout.CameraSpeedRotate
	}
	if cs.RotateRight {
		d += layout.CameraSpeedRotate
	}
	return d
}

// Zoom returns the net radius step for this tick: negative moves closer.
func (cs CommandSet) Zoom() float32 {
	var d float32
	if cs.ZoomIn {
		d -= layout.CameraSpeedZoom
	}
	if cs.ZoomOut {
		d += layout.CameraSpeedZoom
	}
	return d
}

// String lists the set flags, e.g. "rotate_left+reset".
func (cs CommandSet) String() string {
	var names []string
	for _, f := range []struct {
		on   bool
		name string
	}{
		{cs.RotateLeft, "rotate_left"},
		{cs.RotateRight, "rotate_right"},
		{cs.ZoomIn, "zoom_in"},
		{cs.ZoomOut, "zoom_out"},
		{cs.CheckAlignment, "check_alignment"},
		{cs.Reset, "reset"},
		{cs.BlankScreen, "blank_screen"},
		{cs.StopRendering, "stop_rendering"},
		{cs.ResumeRendering, "resume_rendering"},
		{cs.AnimationDoor, "animation_door"},
	} {
		if f.on {
			names = append(names, f.name)
		}
	}
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, "+")
}

// ParseCommand sets the flag called name (snake_case, as in String) on cs.
func ParseCommand(cs *CommandSet, name string) bool {
	switch name {
	case "rotate_left":
		cs.RotateLeft = true
	case "rotate_right":
		cs.RotateRight = true
	case "zoom_in":
		cs.ZoomIn = true
	case "zoom_out":
		cs.ZoomOut = true
	case "check_alignment", "check":
		cs.CheckAlignment = true
	case "reset":
		cs.Reset = true
	case "blank_screen", "blank":
		cs.BlankScreen = true
	case "stop_rendering", "stop":
		cs.StopRendering = true
	case "resume_rendering", "resume":
		cs.ResumeRendering = true
	case "animation_door", "door":
		cs.AnimationDoor = true
	default:
		return false
	}
	return true
}
