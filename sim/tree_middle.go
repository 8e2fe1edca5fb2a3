package sim

// MiddleTree is the decision tree for a middle blocker. An active middle
// is front row in every phase except when serving (the libero exchange
// benches back-row middles), so its tree leans on the net game: quick
// attacks in system, lane-committed blocking on defense.
func MiddleTree() *node {
	return sel("middle",
		overrideBranch(),
		servingBranch(),
		emergencyBranch(emergencyContact()),
		middlePhases(),
		fallbackBranch(),
	)
}

func middlePhases() *node {
	return sel("middle-phases",
		seq("pre-serve",
			phaseIs("phase-pre-serve", PhasePreServe),
			emit("align", GoalMaintainBase, ReasonBaseFallback)),

		seq("serve-receive",
			phaseIs("phase-receive", PhaseServeInAir, PhaseServeReceive),
			weReceive(),
			sel("receive-stance",
				seq("pinned", cond("pinned-at-net", IsPinnedAtNet),
					emit("hold-at-net", GoalPinnedAtNet, ReasonOverlapPinned)),
				emit("tuck-away", GoalHideFromReceive, ReasonNotPassing),
			)),

		// A middle only gets the quick if the approach starts before the
		// setter touches the ball, so the load happens on the pass.
		seq("load-quick",
			phaseIs("phase-offense", PhaseTransitionOffense, PhaseSet),
			ourBall(),
			sel("quick-or-decoy",
				seq("quick-approach",
					cond("front-row", IsFrontRow),
					cond("in-system", InSystem),
					emit("load-quick-attack", GoalApproachAttack, ReasonQuickAvailable)),
				seq("decoy-approach",
					cond("front-row", IsFrontRow),
					emit("approach-middle", GoalApproachAttack, ReasonAttackLane)),
				emit("balance", GoalDefendBase, ReasonBaseFallback),
			)),

		seq("attack-coverage",
			phaseIs("phase-attack", PhaseAttack),
			ourBall(),
			emit("cover", GoalCoverHitter, ReasonCoverage)),

		// On defense the middle reads the threat lane and commits to it
		// rather than staying zone-locked like the pins.
		seq("defense",
			phaseIs("phase-defense", PhaseDefense, PhaseTransitionDefense),
			sel("defense-split",
				seq("front-row-commit",
					cond("front-row", IsFrontRow),
					emitFn("commit-to-threat", func(ctx *Context) (Goal, Reason) {
						switch ThreatLane(ctx) {
						case 0:
							return GoalBlockLeftSide, ReasonBlockAssignment
						case 2:
							return GoalBlockRightSide, ReasonBlockAssignment
						default:
							return GoalBlockMiddle, ReasonBlockAssignment
						}
					})),
				emit("back-row-dig", GoalDig, ReasonBackRowDig),
			)),
	)
}
