package protocol

import "github.com/vstrozzi/monkey-3d-game/internal/layout"

// AdoptRound copies the Control copy into the Runner copy field by field and
// returns the adopted seed. It is the only path by which configuration
// reaches the Runner; call it after ConsumeCommands reports Reset.
func AdoptRound(r *layout.Region) uint64 {
	r.Runner.CopyFrom(&r.Control)
	return r.Runner.Seed.Load()
}
