package sim

import "math/rand"

// Ball flight, contact resolution and launch selection. All randomness here
// is positional scatter drawn from the tick-derived variance stream, so the
// same world always produces the same contacts.

// advanceBall moves the ball one tick and resolves whatever the movement
// triggers: a net crossing, a contact at the predicted landing point, a held
// ball being delivered, or a drop that ends the rally. Returned events are
// in occurrence order and feed the rally reducer.
func (pl *Pipeline) advanceBall(w *WorldState) []RallyEvent {
	b := &w.Ball
	var events []RallyEvent

	if !b.InFlight {
		return pl.deliverHeldBall(w)
	}

	b.Pos = b.Pos.Add(b.Vel)
	if inCourt(w.Court, b.Pos) {
		if side := w.Court.SideOf(b.Pos); side != b.Side {
			b.Side = side
			events = append(events, RallyEvent{Kind: EventBallCrossedNet, Team: side})
		}
	}

	if w.Tick < b.ArrivalTick {
		return events
	}

	// Flight resolves: the ball is at its landing point.
	b.Pos = b.Landing
	b.Ground()

	if !inCourt(w.Court, b.Landing) {
		events = append(events, deadBall(w, b.LastTouch.Opponent())...)
		return events
	}

	contacter := pl.nearestContacter(w, b.Landing)
	if contacter == nil {
		// Nobody got there. The side it dropped on loses the point.
		events = append(events, deadBall(w, w.Court.SideOf(b.Landing).Opponent())...)
		return events
	}

	if w.Rally.TouchCount >= 3 && contacter.Side == w.Rally.LastTouch {
		// Four touches by the same team is a fault.
		events = append(events, deadBall(w, contacter.Side.Opponent())...)
		return events
	}

	events = append(events, RallyEvent{Kind: EventBallTouched, Team: contacter.Side})
	b.LastTouch = contacter.Side
	b.Pos = contacter.Pos
	pl.launchFromContact(w, contacter)
	return events
}

// launchFromContact sends the ball on its next flight according to what the
// contacting player was trying to do. The setter taking the second ball is
// the one case with no immediate launch: the ball is held until the next
// tick, when the set-selection subtree has chosen a delivery.
func (pl *Pipeline) launchFromContact(w *WorldState, p *PlayerState) {
	goal := GoalMaintainBase
	if p.Requested != nil {
		goal = p.Requested.Goal
	}

	switch goal {
	case GoalChaseBall:
		if p.Role == RoleSetter && w.Rally.TouchCount == 1 {
			return // held second ball, delivered next tick
		}
		pl.launchPassOrOver(w, p, pl.Tun.VarianceFor().Pass)

	case GoalReceiveServe, GoalHelpReceive, GoalEmergencySet:
		pl.launchPassOrOver(w, p, pl.Tun.VarianceFor().Pass)

	case GoalDig:
		pl.launchPassOrOver(w, p, pl.Tun.VarianceFor().Dig)

	case GoalApproachAttack:
		pl.launchAttack(w, p)

	case GoalQuickSetMiddle, GoalBackSetOpposite, GoalHighSetOutside:
		pl.launchSet(w, p, goal)

	case GoalSetterDump:
		pl.launchCross(w, p, frontCourtTarget(w.Court, p.Side.Opponent()),
			pl.Tun.Timing.AttackCross, pl.Tun.VarianceFor().Attack)

	case GoalBailFreeball:
		pl.launchCross(w, p, w.Court.ZoneCenter(p.Side.Opponent(), 6),
			pl.Tun.Timing.Freeball, pl.Tun.VarianceFor().Pass)

	default:
		// A touch with no ball plan still has to keep the rally legal:
		// freeball it over.
		pl.launchCross(w, p, w.Court.ZoneCenter(p.Side.Opponent(), 6),
			pl.Tun.Timing.Freeball, pl.Tun.VarianceFor().Pass)
	}
}

// deliverHeldBall launches a ball the setter is holding, once the
// set-selection subtree has attached a delivery goal. Any other goal on the
// holder falls back to a freeball so the rally always makes progress, and a
// held ball found outside the set phase is freeballed over unconditionally.
// No events come out of a delivery; the touch was counted at the catch.
func (pl *Pipeline) deliverHeldBall(w *WorldState) []RallyEvent {
	switch w.Rally.Phase {
	case PhasePreServe, PhaseServeInAir, PhaseBallDead:
		return nil
	}
	holder := pl.nearestContacter(w, w.Ball.Pos)
	if holder == nil {
		return nil
	}
	goal := GoalBailFreeball
	if w.Rally.Phase == PhaseSet && holder.Requested != nil {
		goal = holder.Requested.Goal
	}
	switch goal {
	case GoalQuickSetMiddle, GoalBackSetOpposite, GoalHighSetOutside:
		pl.launchSet(w, holder, goal)
	case GoalSetterDump:
		pl.launchCross(w, holder, frontCourtTarget(w.Court, holder.Side.Opponent()),
			pl.Tun.Timing.AttackCross, pl.Tun.VarianceFor().Attack)
	case GoalChaseBall:
		// Selection not made yet, hold one more tick.
		return nil
	default:
		pl.launchCross(w, holder, w.Court.ZoneCenter(holder.Side.Opponent(), 6),
			pl.Tun.Timing.Freeball, pl.Tun.VarianceFor().Pass)
	}
	return nil
}

// launchPassOrOver keeps a ball-control contact legal: the first and second
// touches build toward the setter target, a third touch has to cross the
// net, so it goes over as a freeball instead.
func (pl *Pipeline) launchPassOrOver(w *WorldState, p *PlayerState, scatter float64) {
	if w.Rally.TouchCount >= 2 {
		pl.launchCross(w, p, w.Court.ZoneCenter(p.Side.Opponent(), 6),
			pl.Tun.Timing.Freeball, scatter)
		return
	}
	target := w.Court.SetterTarget(p.Side)
	target = pl.scatter(w, target, scatter)
	target = w.Court.ClampToSide(target, p.Side)
	w.Ball.LaunchAt(target, w.Tick, pl.Tun.Scaled(pl.Tun.Timing.PassToSet))
}

// launchSet delivers the second ball to a hitter's lane.
func (pl *Pipeline) launchSet(w *WorldState, p *PlayerState, goal Goal) {
	lane := 0
	ticks := pl.Tun.Timing.SetToAttack
	switch goal {
	case GoalQuickSetMiddle:
		lane = 1
		ticks = ticks / 2 // the quick is in the air half as long
	case GoalBackSetOpposite:
		lane = 2
	}
	if ticks < 1 {
		ticks = 1
	}
	target := attackSpot(w.Court, p.Side, lane)
	target = pl.scatter(w, target, pl.Tun.VarianceFor().Set)
	target = w.Court.ClampToSide(target, p.Side)
	w.Ball.LaunchAt(target, w.Tick, pl.Tun.Scaled(ticks))
}

// launchAttack is the third contact: a swing into the opponent court, aimed
// deep in the hitter's cross-court lane.
func (pl *Pipeline) launchAttack(w *WorldState, p *PlayerState) {
	opp := p.Side.Opponent()
	deepZones := [3]int{1, 6, 5}
	target := w.Court.ZoneCenter(opp, deepZones[AttackLaneOf(p)])
	pl.launchCross(w, p, target, pl.Tun.Timing.AttackCross, pl.Tun.VarianceFor().Attack)
}

// launchCross sends the ball over the net with scatter. The scattered point
// is deliberately not clamped: errant contacts sail out.
func (pl *Pipeline) launchCross(w *WorldState, p *PlayerState, target Vec2, ticks int64, scatter float64) {
	target = pl.scatter(w, target, scatter)
	w.Ball.LaunchAt(target, w.Tick, pl.Tun.Scaled(ticks))
}

// scatter perturbs a target point with tier-dependent gaussian noise drawn
// from the tick-derived variance stream.
func (pl *Pipeline) scatter(w *WorldState, target Vec2, magnitude float64) Vec2 {
	rng := pl.RNG.ForTick(SubsystemVariance, w.Tick)
	return scatterWith(rng, target, magnitude)
}

func scatterWith(rng *rand.Rand, target Vec2, magnitude float64) Vec2 {
	return Vec2{
		X: target.X + rng.NormFloat64()*magnitude,
		Y: target.Y + rng.NormFloat64()*magnitude,
	}
}

// nearestContacter finds the closest active player on the ball's side within
// contact reach, or nil when the ball is unplayable.
func (pl *Pipeline) nearestContacter(w *WorldState, at Vec2) *PlayerState {
	var best *PlayerState
	var bestDist float64
	for _, p := range w.PlayersOnSide(w.Ball.Side) {
		if !p.Active {
			continue
		}
		d := p.Pos.Dist(at)
		if d > pl.Tun.ReachRadius {
			continue
		}
		if best == nil || d < bestDist {
			best, bestDist = p, d
		}
	}
	return best
}

// deadBall grounds the ball and emits the dead-ball and point events.
func deadBall(w *WorldState, winner TeamSide) []RallyEvent {
	w.Ball.Ground()
	return []RallyEvent{
		{Kind: EventBallDead},
		{Kind: EventPointScored, Team: winner},
	}
}

// frontCourtTarget is where a setter dump aims: the undefended short middle
// of the opponent court.
func frontCourtTarget(c Court, side TeamSide) Vec2 {
	p := c.ZoneCenter(side, 3)
	return pullBack(c, side, p, -0.08)
}

// inCourt reports whether a point is inside the playing boundary.
func inCourt(c Court, p Vec2) bool {
	return p.X >= 0 && p.X <= c.Width && p.Y >= 0 && p.Y <= c.Length
}
