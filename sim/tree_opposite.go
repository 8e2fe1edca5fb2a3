package sim

// OppositeTree is the decision tree for the opposite (right-side) hitter.
// Mirrors the outside tree on the other pin, but the opposite stays out of
// serve receive unless the pattern is short a passer.
func OppositeTree() *node {
	return sel("opposite",
		overrideBranch(),
		servingBranch(),
		emergencyBranch(emergencyContact()),
		oppositePhases(),
		fallbackBranch(),
	)
}

func oppositePhases() *node {
	return sel("opposite-phases",
		seq("pre-serve",
			phaseIs("phase-pre-serve", PhasePreServe),
			emit("align", GoalMaintainBase, ReasonBaseFallback)),

		seq("serve-receive",
			phaseIs("phase-receive", PhaseServeInAir, PhaseServeReceive),
			weReceive(),
			sel("receive-role",
				seq("pinned", cond("pinned-at-net", IsPinnedAtNet),
					emit("hold-at-net", GoalPinnedAtNet, ReasonOverlapPinned)),
				seq("pass", cond("primary-passer", IsPrimaryPasser),
					emit("receive", GoalReceiveServe, ReasonPrimaryPasser)),
				seq("help", cond("short-a-passer", ShouldHelpReceive),
					emit("drop-to-pass", GoalHelpReceive, ReasonPrimaryPasser)),
				emit("tuck-away", GoalHideFromReceive, ReasonNotPassing),
			)),

		seq("load-attack",
			phaseIs("phase-offense", PhaseTransitionOffense, PhaseSet),
			ourBall(),
			sel("attack-role",
				seq("approach", cond("front-row", IsFrontRow),
					emit("approach-right", GoalApproachAttack, ReasonAttackLane)),
				emit("balance", GoalDefendBase, ReasonBaseFallback),
			)),

		seq("attack-coverage",
			phaseIs("phase-attack", PhaseAttack),
			ourBall(),
			emit("cover", GoalCoverHitter, ReasonCoverage)),

		defenseBranch(),
	)
}
