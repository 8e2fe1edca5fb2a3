package sim

// Condition library: pure predicates over the evaluation context answering
// the spatial and tactical questions the trees gate on. Every predicate is
// deterministic given identical inputs: randomness lives only behind the
// controller's seeded RNG, never here.

// IsFrontRow reports whether the player is currently front row under the
// rotation rules.
func IsFrontRow(ctx *Context) bool { return ctx.World.FrontRow(ctx.Self) }

// IsBackRow is the complement of IsFrontRow.
func IsBackRow(ctx *Context) bool { return !ctx.World.FrontRow(ctx.Self) }

// IsDesignatedServer reports whether this player serves for the current
// rotation and it is their team's serve.
func IsDesignatedServer(ctx *Context) bool {
	if !ctx.WeAreServing() {
		return false
	}
	srv := ctx.World.ServerFor(ctx.Self.Side)
	return srv != nil && srv.ID == ctx.Self.ID
}

// IsPrimaryPasser reports whether the player is part of the serve-receive
// pattern: the libero and the back-row hitters pass; front-row hitters,
// middles and the setter stay out of the lanes.
func IsPrimaryPasser(ctx *Context) bool {
	switch ctx.Self.Category {
	case CategoryLibero:
		return true
	case CategoryHitter:
		return IsBackRow(ctx)
	default:
		return false
	}
}

// IsPinnedAtNet encodes the overlap rule: a front-row player who is not
// passing must hold position at the net until serve contact so rotational
// order is preserved.
func IsPinnedAtNet(ctx *Context) bool {
	return IsFrontRow(ctx) && !IsPrimaryPasser(ctx)
}

// ShouldHelpReceive reports whether a non-passer should still drop back:
// the pattern is down a passer when the libero is off the floor.
func ShouldHelpReceive(ctx *Context) bool {
	if IsPrimaryPasser(ctx) || ctx.Self.Category != CategoryHitter {
		return false
	}
	lib := ctx.World.PlayerByRole(ctx.Self.Side, RoleLibero)
	return lib == nil || !lib.Active
}

// reachTicks is the biased time for a player to reach a point: raw travel
// time minus a head start proportional to the player's contact priority.
// The bias is what makes the race deterministic under exact distance ties.
func reachTicks(p *PlayerState, target Vec2, bias float64) float64 {
	t := p.Pos.Dist(target) / p.MaxSpeed
	return t - bias*float64(p.Priority)
}

// CanReachFirst runs the reach-priority race for the ball's predicted
// landing point: true when this player's biased reach time beats every
// active teammate's. Exact ties resolve by priority, then by player ID, so
// repeated evaluation always yields the same winner.
func CanReachFirst(ctx *Context) bool {
	landing := ctx.World.Ball.Landing
	bias := ctx.Tun.PriorityBias * float64(ctx.Tun.TicksPerSecond)
	mine := reachTicks(ctx.Self, landing, bias)
	for _, mate := range ctx.Teammates() {
		theirs := reachTicks(mate, landing, bias)
		if theirs < mine {
			return false
		}
		if theirs == mine {
			if mate.Priority > ctx.Self.Priority {
				return false
			}
			if mate.Priority == ctx.Self.Priority && mate.ID < ctx.Self.ID {
				return false
			}
		}
	}
	return true
}

// BallLooseOnOurSide detects a broken play: our touch sent the ball
// somewhere no structured contact will happen, so somebody has to run it
// down before it drops.
func BallLooseOnOurSide(ctx *Context) bool {
	ball := ctx.World.Ball
	if !ctx.BallOnOurSide() || !ball.InFlight || !ctx.WeTouchedLast() {
		return false
	}
	switch ctx.TouchCount() {
	case 1:
		// First ball in the air: loose when it will miss the setter target.
		return ball.Landing.Dist(ctx.SetterTarget()) > ctx.Tun.SetterBailRadius
	case 2:
		// Second ball in the air is a delivery aimed at an attack lane, not
		// the setter target: loose only when it will miss every lane.
		best := ball.Landing.Dist(attackSpot(ctx.World.Court, ctx.Self.Side, 0))
		for lane := 1; lane < 3; lane++ {
			d := ball.Landing.Dist(attackSpot(ctx.World.Court, ctx.Self.Side, lane))
			if d < best {
				best = d
			}
		}
		return best > ctx.Tun.SetterBailRadius
	default:
		return false
	}
}

// InSystem reports pass quality: the ball is headed close enough to the
// setter target to run the full set of attack options.
func InSystem(ctx *Context) bool {
	return ctx.World.Ball.Landing.Dist(ctx.SetterTarget()) <= ctx.Tun.InSystemRadius
}

// SetterShouldBail reports that the pass is so far off target the setter
// gives up on a real set and sends a freeball.
func SetterShouldBail(ctx *Context) bool {
	return ctx.World.Ball.Landing.Dist(ctx.SetterTarget()) > ctx.Tun.SetterBailRadius
}

// MiddleQuickAvailable reports whether this team's front-row middle is
// close enough to the setter target, in time, to run the quick.
func MiddleQuickAvailable(ctx *Context) bool {
	target := ctx.SetterTarget()
	for _, role := range []Role{RoleMiddle1, RoleMiddle2} {
		m := ctx.World.PlayerByRole(ctx.Self.Side, role)
		if m == nil || !m.Active || !ctx.World.FrontRow(m) {
			continue
		}
		if m.Pos.Dist(target) <= 2.5*ctx.Tun.InSystemRadius {
			return true
		}
	}
	return false
}

// BlockersInLane counts opposing front-row players fronting the given
// attack lane (0=left, 1=middle, 2=right from this team's perspective):
// close to the net and within the lane's column.
func BlockersInLane(ctx *Context, lane int) int {
	netPoint := ctx.World.Court.NetPoint(ctx.Self.Side, lane)
	count := 0
	for _, opp := range ctx.Opponents() {
		if !ctx.World.FrontRow(opp) {
			continue
		}
		nearNet := absFloat(opp.Pos.Y-ctx.World.Court.NetY) < 0.25
		inColumn := absFloat(opp.Pos.X-netPoint.X) < 0.20
		if nearNet && inColumn {
			count++
		}
	}
	return count
}

// BlockGapRightSide reports a back-set opportunity: the opponents show a
// gap, or at most one blocker, against our right-side attacker.
func BlockGapRightSide(ctx *Context) bool {
	return BlockersInLane(ctx, 2) <= 1
}

// AttackLaneOf returns a hitter's assigned lane from their own team's
// perspective: outsides swing left, the opposite swings right, middles hit
// the middle.
func AttackLaneOf(p *PlayerState) int {
	switch p.Role {
	case RoleOpposite:
		return 2
	case RoleMiddle1, RoleMiddle2:
		return 1
	default:
		return 0
	}
}

// ThreatLane guesses where the opposing attack is coming from: the lane
// column nearest the ball's predicted landing on the opponent side. Used by
// blockers to pick an assignment.
func ThreatLane(ctx *Context) int {
	landing := ctx.World.Ball.Landing
	best, bestDist := 1, 99.0
	for lane := 0; lane < 3; lane++ {
		// opponent's lane columns, seen from our side of the net
		np := ctx.World.Court.NetPoint(ctx.Self.Side.Opponent(), lane)
		if d := absFloat(np.X - landing.X); d < bestDist {
			best, bestDist = lane, d
		}
	}
	// mirror into our blocking lanes: their left is our right
	return 2 - best
}

func absFloat(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
