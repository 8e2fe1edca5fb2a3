package sim

// RallyPhase is one state in the serve → rally → dead-ball cycle.
type RallyPhase string

const (
	PhasePreServe          RallyPhase = "pre-serve"
	PhaseServeInAir        RallyPhase = "serve-in-air"
	PhaseServeReceive      RallyPhase = "serve-receive"
	PhaseTransitionOffense RallyPhase = "transition-to-offense"
	PhaseSet               RallyPhase = "set"
	PhaseAttack            RallyPhase = "attack"
	PhaseTransitionDefense RallyPhase = "transition-to-defense"
	PhaseDefense           RallyPhase = "defense"
	PhaseBallDead          RallyPhase = "ball-dead"
)

// RallyPhases lists the cycle in order.
var RallyPhases = []RallyPhase{
	PhasePreServe, PhaseServeInAir, PhaseServeReceive, PhaseTransitionOffense,
	PhaseSet, PhaseAttack, PhaseTransitionDefense, PhaseDefense, PhaseBallDead,
}

// EventKind identifies a discrete rally event fed into the reducer.
type EventKind string

const (
	EventServeContact   EventKind = "serve-contact"
	EventBallTouched    EventKind = "ball-touched"
	EventBallCrossedNet EventKind = "ball-crossed-net"
	EventBallDead       EventKind = "ball-dead"
	EventPointScored    EventKind = "point-scored"
	EventRallyReset     EventKind = "rally-reset"
)

// RallyEvent is one discrete occurrence during a rally. Team identifies the
// acting (touching, scoring) side where applicable.
type RallyEvent struct {
	Kind EventKind `json:"kind"`
	Team TeamSide  `json:"team,omitempty"`
}

// RallyState is the FSM slice of the world: current phase plus the score
// and rotation bookkeeping the reducer maintains.
type RallyState struct {
	Phase       RallyPhase `json:"phase"`
	ServingSide TeamSide   `json:"servingSide"`
	ScoreHome   int        `json:"scoreHome"`
	ScoreAway   int        `json:"scoreAway"`
	TouchCount  int        `json:"touchCount"`
	LastTouch   TeamSide   `json:"lastTouch"`
	RotationHome int       `json:"rotationHome"` // 1-6
	RotationAway int       `json:"rotationAway"` // 1-6
}

// Rotation returns the side's rotation index.
func (r RallyState) Rotation(side TeamSide) int {
	if side == SideAway {
		return r.RotationAway
	}
	return r.RotationHome
}

// Score returns the side's score.
func (r RallyState) Score(side TeamSide) int {
	if side == SideAway {
		return r.ScoreAway
	}
	return r.ScoreHome
}

// Effects reports the side effects of one reduction: a point awarded and
// whether it came with a sideout (rotation advance of the new serving side).
type Effects struct {
	PointTo TeamSide
	Sideout bool
}

// ReduceRally is the pure rally-phase reducer: given the current state and
// one event it returns the next state and any score/rotation side effects.
// Events that do not apply to the current phase are no-ops, not errors, so
// the simulation never halts on an out-of-order event.
func ReduceRally(s RallyState, ev RallyEvent) (RallyState, Effects) {
	var fx Effects

	switch ev.Kind {
	case EventServeContact:
		if s.Phase != PhasePreServe {
			return s, fx
		}
		s.Phase = PhaseServeInAir
		s.TouchCount = 0
		s.LastTouch = s.ServingSide

	case EventBallCrossedNet:
		switch s.Phase {
		case PhaseServeInAir:
			s.Phase = PhaseServeReceive
			s.TouchCount = 0
		case PhaseAttack, PhaseSet, PhaseTransitionOffense:
			// attack (or an over-set/freeball) crossing to the defenders
			s.Phase = PhaseTransitionDefense
			s.TouchCount = 0
		default:
			return s, fx
		}

	case EventBallTouched:
		switch s.Phase {
		case PhaseServeReceive, PhaseDefense, PhaseTransitionDefense:
			s.TouchCount = 1
			s.LastTouch = ev.Team
			s.Phase = PhaseTransitionOffense
		case PhaseTransitionOffense:
			s.TouchCount = 2
			s.LastTouch = ev.Team
			s.Phase = PhaseSet
		case PhaseSet:
			s.TouchCount = 3
			s.LastTouch = ev.Team
			s.Phase = PhaseAttack
		default:
			return s, fx
		}

	case EventBallDead:
		if s.Phase == PhaseBallDead || s.Phase == PhasePreServe {
			return s, fx
		}
		s.Phase = PhaseBallDead

	case EventPointScored:
		if s.Phase != PhaseBallDead || ev.Team == SideNone {
			return s, fx
		}
		fx.PointTo = ev.Team
		if ev.Team == SideHome {
			s.ScoreHome++
		} else {
			s.ScoreAway++
		}
		if ev.Team != s.ServingSide {
			// Sideout: serve changes hands and the new serving side rotates.
			fx.Sideout = true
			s.ServingSide = ev.Team
			if ev.Team == SideHome {
				s.RotationHome = s.RotationHome%6 + 1
			} else {
				s.RotationAway = s.RotationAway%6 + 1
			}
		}

	case EventRallyReset:
		if s.Phase != PhaseBallDead {
			return s, fx
		}
		s.Phase = PhasePreServe
		s.TouchCount = 0
		s.LastTouch = SideNone

	default:
		// Unknown events are no-ops by design.
	}

	return s, fx
}
