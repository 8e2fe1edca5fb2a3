package sim

// OutsideTree is the decision tree for an outside hitter. Both outsides
// share one tree; row membership and the rotation decide which behaviors
// fire.
func OutsideTree() *node {
	return sel("outside",
		overrideBranch(),
		servingBranch(),
		emergencyBranch(emergencyContact()),
		outsidePhases(),
		fallbackBranch(),
	)
}

func outsidePhases() *node {
	return sel("outside-phases",
		seq("pre-serve",
			phaseIs("phase-pre-serve", PhasePreServe),
			emit("align", GoalMaintainBase, ReasonBaseFallback)),

		// Serve receive: back-row outsides are primary passers; front-row
		// outsides hold at the net under the overlap rule until contact,
		// unless the pattern is short a passer.
		seq("serve-receive",
			phaseIs("phase-receive", PhaseServeInAir, PhaseServeReceive),
			weReceive(),
			sel("receive-role",
				seq("pass", cond("primary-passer", IsPrimaryPasser),
					emit("receive", GoalReceiveServe, ReasonPrimaryPasser)),
				seq("pinned", cond("pinned-at-net", IsPinnedAtNet),
					emit("hold-at-net", GoalPinnedAtNet, ReasonOverlapPinned)),
				seq("help", cond("short-a-passer", ShouldHelpReceive),
					emit("drop-to-pass", GoalHelpReceive, ReasonPrimaryPasser)),
				emit("tuck-away", GoalHideFromReceive, ReasonNotPassing),
			)),

		// Pass in the air: front-row outsides start the approach so the
		// high set has a hitter waiting; back-row outsides balance the
		// court behind them.
		seq("load-attack",
			phaseIs("phase-offense", PhaseTransitionOffense, PhaseSet),
			ourBall(),
			sel("attack-role",
				seq("approach", cond("front-row", IsFrontRow),
					emit("approach-left", GoalApproachAttack, ReasonAttackLane)),
				emit("balance", GoalDefendBase, ReasonBaseFallback),
			)),

		// Our attack is crossing: everyone covers the block rebound.
		seq("attack-coverage",
			phaseIs("phase-attack", PhaseAttack),
			ourBall(),
			emit("cover", GoalCoverHitter, ReasonCoverage)),

		defenseBranch(),
	)
}
