package sim

import "github.com/volleysim/volleysim/sim/bt"

// node is the concrete tree node type all role trees are built from.
type node = bt.Node[*Context, Intent]

// result is the concrete action result type.
type result = bt.Result[Intent]

// Builder shorthands. Role trees are plain data built once and shared; the
// generic parameters never vary, so these keep the tree files readable.

func seq(name string, children ...*node) *node { return bt.Sequence(name, children...) }
func sel(name string, children ...*node) *node { return bt.Selector(name, children...) }

func cond(name string, pred func(*Context) bool) *node {
	return bt.Condition[*Context, Intent](name, pred)
}

// emit builds an action leaf that emits a single intent with a fixed goal
// and reason code.
func emit(name string, goal Goal, reason Reason) *node {
	return bt.Action(name, func(ctx *Context) result {
		return result{
			Status: bt.Success,
			Emitted: []Intent{{
				PlayerID: ctx.Self.ID,
				Goal:     goal,
				Reason:   reason,
				Source:   SourceTree,
			}},
		}
	})
}

// emitFn builds an action leaf whose goal and reason depend on the context.
func emitFn(name string, pick func(*Context) (Goal, Reason)) *node {
	return bt.Action(name, func(ctx *Context) result {
		goal, reason := pick(ctx)
		return result{
			Status: bt.Success,
			Emitted: []Intent{{
				PlayerID: ctx.Self.ID,
				Goal:     goal,
				Reason:   reason,
				Source:   SourceTree,
			}},
		}
	})
}

// phaseIs builds a condition gating on the current rally phase.
func phaseIs(name string, phases ...RallyPhase) *node {
	return cond(name, func(ctx *Context) bool { return ctx.PhaseIs(phases...) })
}

// ourBall gates offense branches on possession: the rally phase is global,
// so without this the defending team would run the attacking behaviors.
func ourBall() *node {
	return cond("our-ball", func(ctx *Context) bool { return ctx.WeTouchedLast() })
}

// weReceive gates receive branches so the serving team stays out of them.
func weReceive() *node {
	return cond("we-receive", func(ctx *Context) bool { return !ctx.WeAreServing() })
}

// overrideBranch is checked first in every tree, every tick: an active
// manual or scripted override is applied verbatim after validation against
// the closed goal enumeration, short-circuiting all autonomous behavior.
// Because it is re-checked rather than latched, clearing the override takes
// effect on the very next tick.
func overrideBranch() *node {
	return seq("override",
		cond("override-active", func(ctx *Context) bool { return ctx.Self.Override.Active }),
		bt.Decorate("apply-override", bt.DecorateForceSuccess,
			bt.Action("override-goal", func(ctx *Context) result {
				return result{
					Status: bt.Success,
					Emitted: []Intent{{
						PlayerID: ctx.Self.ID,
						Goal:     GoalOrMaintainBase(ctx.Self.Override.Goal),
						Reason:   ReasonOverride,
						Source:   SourceOverride,
					}},
				}
			})),
	)
}

// servingBranch handles the designated server: move to the serve position
// before the whistle, drop straight into defense once the serve is away.
func servingBranch() *node {
	return seq("serving",
		cond("is-designated-server", IsDesignatedServer),
		sel("serve-phase",
			seq("before-contact",
				phaseIs("phase-pre-serve", PhasePreServe),
				emit("go-serve", GoalMoveToServe, ReasonDesignatedServer)),
			seq("after-contact",
				phaseIs("phase-serve-in-air", PhaseServeInAir),
				emit("server-to-defense", GoalDefendBase, ReasonServeContact)),
		),
	)
}

// emergencyBranch handles broken plays: the ball is loose on our side and
// this player wins the reach-priority race, so they take the action rather
// than waiting on structure that is not coming.
func emergencyBranch(action *node) *node {
	return seq("emergency",
		cond("ball-loose", BallLooseOnOurSide),
		cond("can-reach-first", CanReachFirst),
		action,
	)
}

// emergencyContact is the default emergency action: put up an emergency
// set on the second ball, otherwise just run the ball down.
func emergencyContact() *node {
	return sel("emergency-action",
		seq("second-ball-up",
			cond("one-touch-taken", func(ctx *Context) bool { return ctx.TouchCount() == 1 }),
			emit("emergency-set", GoalEmergencySet, ReasonEmergencyReach)),
		emit("run-it-down", GoalChaseBall, ReasonEmergencyReach),
	)
}

// fallbackBranch guarantees the root selector never fails: an always-true
// condition gating the base-responsibility action.
func fallbackBranch() *node {
	return seq("fallback",
		cond("always", func(*Context) bool { return true }),
		emit("maintain-base", GoalMaintainBase, ReasonBaseFallback),
	)
}

// blockAssignment picks a block goal from the player's current front-row
// zone: zone 4 fronts the left lane, 3 the middle, 2 the right.
func blockAssignment() *node {
	return emitFn("block-assignment", func(ctx *Context) (Goal, Reason) {
		switch ctx.World.ZoneOf(ctx.Self) {
		case 4:
			return GoalBlockLeftSide, ReasonBlockAssignment
		case 3:
			return GoalBlockMiddle, ReasonBlockAssignment
		default:
			return GoalBlockRightSide, ReasonBlockAssignment
		}
	})
}

// defenseBranch is the shared defensive split: front-row players block,
// back-row players dig.
func defenseBranch() *node {
	return seq("defense",
		phaseIs("phase-defense", PhaseDefense, PhaseTransitionDefense),
		sel("defense-split",
			seq("front-row-block", cond("front-row", IsFrontRow), blockAssignment()),
			emit("back-row-dig", GoalDig, ReasonBackRowDig),
		),
	)
}

// BuildTrees constructs the per-role decision trees. Trees are pure data;
// one shared set serves every player, every world, every tick.
func BuildTrees() map[Role]*node {
	return map[Role]*node{
		RoleSetter:   SetterTree(),
		RoleOutside1: OutsideTree(),
		RoleOutside2: OutsideTree(),
		RoleMiddle1:  MiddleTree(),
		RoleMiddle2:  MiddleTree(),
		RoleOpposite: OppositeTree(),
		RoleLibero:   LiberoTree(),
	}
}
