package sim

// Context is the blackboard a tree evaluation reads: a read-only snapshot
// of the world, the evaluating player, and the tunables. It is rebuilt for
// every player every tick; trees never retain it.
//
// Override state is carried here (on Self) rather than in any module-level
// singleton, so dry runs and snapshot restores evaluate correctly against
// alternate hypothetical worlds.
type Context struct {
	World *WorldState
	Self  *PlayerState
	Tun   *Tunables
}

// Phase returns the current rally phase.
func (c *Context) Phase() RallyPhase { return c.World.Rally.Phase }

// PhaseIs reports whether the current phase is one of the given phases.
func (c *Context) PhaseIs(phases ...RallyPhase) bool {
	for _, p := range phases {
		if c.World.Rally.Phase == p {
			return true
		}
	}
	return false
}

// TouchCount returns the team touch count since the last net crossing.
func (c *Context) TouchCount() int { return c.World.Rally.TouchCount }

// BallOnOurSide reports whether the ball is on the evaluating player's side
// of the net.
func (c *Context) BallOnOurSide() bool { return c.World.Ball.Side == c.Self.Side }

// WeAreServing reports whether it is the evaluating player's team's serve.
func (c *Context) WeAreServing() bool { return c.World.Rally.ServingSide == c.Self.Side }

// WeTouchedLast reports whether the last contact was by the player's team.
func (c *Context) WeTouchedLast() bool { return c.World.Rally.LastTouch == c.Self.Side }

// Teammates returns the active teammates of Self, excluding Self, in
// stable list order.
func (c *Context) Teammates() []*PlayerState {
	var out []*PlayerState
	for _, p := range c.World.PlayersOnSide(c.Self.Side) {
		if p.Active && p.ID != c.Self.ID {
			out = append(out, p)
		}
	}
	return out
}

// Opponents returns the active players on the other side in stable order.
func (c *Context) Opponents() []*PlayerState {
	var out []*PlayerState
	for _, p := range c.World.PlayersOnSide(c.Self.Side.Opponent()) {
		if p.Active {
			out = append(out, p)
		}
	}
	return out
}

// SetterTarget is where this team's passes are aimed.
func (c *Context) SetterTarget() Vec2 { return c.World.Court.SetterTarget(c.Self.Side) }
