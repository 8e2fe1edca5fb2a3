package sim

import (
	"github.com/sirupsen/logrus"

	"github.com/volleysim/volleysim/sim/bt"
	"github.com/volleysim/volleysim/sim/trace"
)

// TickResult is everything one tick produces: the successor world, the
// intents every tree emitted, the decision traces for explainability, and
// the rally events the tick derived. NextWorld shares no state with the
// input world; the caller decides whether to adopt it.
type TickResult struct {
	NextWorld *WorldState         `json:"nextWorld"`
	Intents   []Intent            `json:"intents"`
	Traces    []trace.PlayerTrace `json:"traces"`
	Events    []RallyEvent        `json:"events"`
}

// Trace bundles the tick's per-player traces into a single record for
// export to visualization tooling.
func (r *TickResult) Trace() trace.TickTrace {
	return trace.TickTrace{
		Tick:    r.NextWorld.Tick,
		Phase:   string(r.NextWorld.Rally.Phase),
		Players: r.Traces,
	}
}

// Pipeline evaluates one tick of the rally: tree evaluation for every
// active player, intent resolution into movement and ball state, and FSM
// reduction of the derived events. It holds no world state of its own.
type Pipeline struct {
	Trees map[Role]*node
	Tun   *Tunables
	RNG   *PartitionedRNG
}

// NewPipeline builds a pipeline with freshly constructed role trees.
func NewPipeline(tun *Tunables, rng *PartitionedRNG) *Pipeline {
	return &Pipeline{Trees: BuildTrees(), Tun: tun, RNG: rng}
}

// StepTick advances the world by one tick and returns the result without
// touching the input world. Players are evaluated in stable list order;
// every draw of randomness is derived from (seed, tick), so stepping the
// same world twice produces identical results.
func (pl *Pipeline) StepTick(w *WorldState) *TickResult {
	next := w.Clone()
	next.Tick++

	res := &TickResult{NextWorld: next}

	for _, p := range next.Players {
		if !p.Active {
			continue
		}
		ctx := &Context{World: next, Self: p, Tun: pl.Tun}
		tree, ok := pl.Trees[p.Role]
		if !ok {
			logrus.Warnf("no tree for role %s, skipping %s", p.Role, p.ID)
			continue
		}
		out, visits := bt.Evaluate(tree, ctx)
		if out.Status != bt.Success {
			// Structurally impossible: every root selector ends in an
			// always-true fallback.
			logrus.Warnf("tree root returned %s for %s", out.Status, p.ID)
		}
		res.Intents = append(res.Intents, out.Emitted...)
		pt := trace.PlayerTrace{PlayerID: p.ID, Role: string(p.Role), Tick: next.Tick, Visits: visits}
		for _, in := range out.Emitted {
			pt.Goals = append(pt.Goals, string(in.Goal))
		}
		res.Traces = append(res.Traces, pt)
	}

	pl.resolveIntents(next, res.Intents)
	res.Events = pl.advanceBall(next)

	for _, ev := range res.Events {
		var fx Effects
		next.Rally, fx = ReduceRally(next.Rally, ev)
		if fx.PointTo != SideNone {
			logrus.Infof("[tick %07d] point %s, score %d-%d", next.Tick, fx.PointTo,
				next.Rally.ScoreHome, next.Rally.ScoreAway)
		}
		if fx.Sideout {
			next.applyLiberoExchange()
		}
	}
	next.Ball.TouchCount = next.Rally.TouchCount

	return res
}

// SimulateUntil steps the world until pred holds or maxTicks is exhausted,
// returning the final world and the number of ticks actually run. A
// predicate that is already true on entry returns immediately with the
// input world untouched. maxTicks is the hard safety bound against a
// predicate that never becomes true.
func (pl *Pipeline) SimulateUntil(w *WorldState, pred func(*WorldState) bool, maxTicks int) (*WorldState, int) {
	if pred(w) {
		return w, 0
	}
	cur := w
	for n := 1; n <= maxTicks; n++ {
		cur = pl.StepTick(cur).NextWorld
		if pred(cur) {
			return cur, n
		}
	}
	return cur, maxTicks
}

// resolveIntents turns intents into per-player requested goals and
// integrates movement toward each goal's target, capped by max speed.
func (pl *Pipeline) resolveIntents(w *WorldState, intents []Intent) {
	for _, in := range intents {
		p := w.PlayerByID(in.PlayerID)
		if p == nil || !p.Active {
			continue
		}
		goal := in.Goal
		if _, ok := ParseGoal(string(goal)); !ok {
			goal = GoalMaintainBase
		}
		p.Requested = &PlayerGoal{Goal: goal, Target: pl.goalTarget(w, p, goal), Reason: in.Reason}
		if logrus.IsLevelEnabled(logrus.DebugLevel) {
			logrus.Debugf("[tick %07d] %s -> %s (%s)", w.Tick, p.ID, goal, DescribeIntent(in))
		}
	}

	for _, p := range w.Players {
		if !p.Active || p.Requested == nil {
			continue
		}
		before := p.Pos
		p.Pos = before.Toward(p.Requested.Target, p.MaxSpeed)
		p.Vel = p.Pos.Sub(before)
	}
}

// goalTarget maps a goal to the position the player should move toward.
func (pl *Pipeline) goalTarget(w *WorldState, p *PlayerState, goal Goal) Vec2 {
	court := w.Court
	side := p.Side
	zone := w.ZoneOf(p)

	switch goal {
	case GoalMoveToServe, GoalServe:
		return court.ServePosition(side)

	case GoalReceiveServe, GoalHelpReceive:
		// Track the incoming serve if it is ours to take, otherwise hold
		// the receive spot in our zone.
		if w.Ball.Side == side && w.Ball.InFlight {
			ctx := &Context{World: w, Self: p, Tun: pl.Tun}
			if CanReachFirst(ctx) {
				return court.ClampToSide(w.Ball.Landing, side)
			}
		}
		return court.ZoneCenter(side, zone)

	case GoalPinnedAtNet:
		base := court.ZoneCenter(side, zone)
		return Vec2{X: base.X, Y: nearNetY(court, side)}

	case GoalHideFromReceive:
		if p.Role == RoleSetter {
			return court.SetterTarget(side)
		}
		base := court.ZoneCenter(side, zone)
		// tuck toward the sideline, out of the passing lanes
		if base.X < court.Width/2 {
			base.X = 0.08
		} else {
			base.X = court.Width - 0.08
		}
		return base

	case GoalChaseBall, GoalDig, GoalEmergencySet:
		if w.Ball.Side == side && w.Ball.InFlight {
			return court.ClampToSide(w.Ball.Landing, side)
		}
		return court.ZoneCenter(side, zone)

	case GoalQuickSetMiddle, GoalBackSetOpposite, GoalHighSetOutside,
		GoalBailFreeball, GoalSetterDump:
		// Ball-delivery goals: hold position, the launch is the action.
		return p.Pos

	case GoalApproachAttack:
		return attackSpot(court, side, AttackLaneOf(p))

	case GoalCoverHitter:
		spot := attackSpot(court, side, AttackLaneOf(p))
		return pullBack(court, side, spot, 0.25)

	case GoalBlockLeftSide:
		return blockSpot(court, side, 0)
	case GoalBlockMiddle:
		return blockSpot(court, side, 1)
	case GoalBlockRightSide:
		return blockSpot(court, side, 2)

	case GoalDefendBase, GoalMaintainBase:
		return court.ZoneCenter(side, zone)

	default:
		return court.ZoneCenter(side, zone)
	}
}

// nearNetY is the y coordinate just off the net on a side.
func nearNetY(c Court, side TeamSide) float64 {
	if side == SideAway {
		return c.NetY + 0.06
	}
	return c.NetY - 0.06
}

// attackSpot is where a hitter meets the set: the lane column, a step off
// the net.
func attackSpot(c Court, side TeamSide, lane int) Vec2 {
	np := c.NetPoint(side, lane)
	return pullBack(c, side, np, 0.12)
}

// blockSpot is where a blocker fronts a lane: the lane column, tight to
// the net.
func blockSpot(c Court, side TeamSide, lane int) Vec2 {
	np := c.NetPoint(side, lane)
	return Vec2{X: np.X, Y: nearNetY(c, side)}
}

// pullBack moves a point away from the net into the side's court.
func pullBack(c Court, side TeamSide, p Vec2, dist float64) Vec2 {
	if side == SideAway {
		p.Y += dist
	} else {
		p.Y -= dist
	}
	return c.ClampToSide(p, side)
}
