package sim

// SetterTree is the decision tree for the setter. The root is a
// priority-ordered selector: override, serving duty, emergency ball
// control, phase behavior, then the base-responsibility fallback.
func SetterTree() *node {
	return sel("setter",
		overrideBranch(),
		servingBranch(),
		emergencyBranch(setterEmergency()),
		setterPhases(),
		fallbackBranch(),
	)
}

// setterEmergency: a setter chasing a loose second ball near the net takes
// it over on two rather than burning the team's attack on a scramble.
func setterEmergency() *node {
	return sel("setter-emergency",
		seq("dump-second-ball",
			cond("one-touch-taken", func(ctx *Context) bool { return ctx.TouchCount() == 1 }),
			cond("ball-tight-to-net", func(ctx *Context) bool {
				return absFloat(ctx.World.Ball.Landing.Y-ctx.World.Court.NetY) < 0.20
			}),
			cond("front-row", IsFrontRow),
			emit("setter-dump", GoalSetterDump, ReasonSecondBallDump)),
		emergencyContact(),
	)
}

func setterPhases() *node {
	return sel("setter-phases",
		seq("pre-serve",
			phaseIs("phase-pre-serve", PhasePreServe),
			emit("align", GoalMaintainBase, ReasonBaseFallback)),

		// The setter never passes: pinned at the net when front row,
		// otherwise tucked away from the passing lanes, ready to release
		// to the target on contact.
		seq("serve-receive",
			phaseIs("phase-receive", PhaseServeInAir, PhaseServeReceive),
			weReceive(),
			sel("receive-stance",
				seq("pinned", cond("pinned-at-net", IsPinnedAtNet),
					emit("hold-at-net", GoalPinnedAtNet, ReasonOverlapPinned)),
				emit("tuck-away", GoalHideFromReceive, ReasonNotPassing),
			)),

		// First ball in the air toward us: converge on the pass.
		seq("to-second-ball",
			phaseIs("phase-transition-offense", PhaseTransitionOffense),
			cond("ball-on-our-side", func(ctx *Context) bool { return ctx.BallOnOurSide() }),
			emit("converge-on-pass", GoalChaseBall, ReasonSecondBall)),

		// Set selection on two touches. Ordered by preference with
		// explicit tie-break conditions; the trailing safety set means
		// this selector cannot fail once its phase gate passes.
		seq("run-offense",
			phaseIs("phase-set", PhaseSet),
			ourBall(),
			sel("set-selection",
				seq("bail",
					cond("pass-off-target", SetterShouldBail),
					emit("freeball-over", GoalBailFreeball, ReasonPassOffTarget)),
				seq("quick-middle",
					cond("in-system", InSystem),
					cond("middle-ready", MiddleQuickAvailable),
					emit("quick-set-middle", GoalQuickSetMiddle, ReasonMiddleReady)),
				seq("back-set",
					cond("gap-right-side", BlockGapRightSide),
					emit("back-set-opposite", GoalBackSetOpposite, ReasonBlockGap)),
				seq("outside-high",
					cond("in-system", InSystem),
					emit("high-set-outside", GoalHighSetOutside, ReasonInSystemOutside)),
				emit("safety-set", GoalHighSetOutside, ReasonOutOfSystemSafe),
			)),

		seq("attack-coverage",
			phaseIs("phase-attack", PhaseAttack),
			ourBall(),
			emit("cover", GoalCoverHitter, ReasonCoverage)),

		// On defense a front-row setter blocks the right side; in the
		// back row they release for the second ball off the dig, which
		// base responsibility already positions them for.
		seq("defense",
			phaseIs("phase-defense", PhaseDefense, PhaseTransitionDefense),
			sel("defense-split",
				seq("front-row-block", cond("front-row", IsFrontRow),
					emit("block-right", GoalBlockRightSide, ReasonBlockAssignment)),
				emit("defend", GoalDefendBase, ReasonBackRowDig),
			)),
	)
}
