package sim

// LiberoTree is the decision tree for the libero, who is only on the floor
// in back-row rotations: always a primary passer, never a server, never an
// attacker. First contact is their job, so the emergency branch fires for
// them more than anyone (their reach priority is the highest).
func LiberoTree() *node {
	return sel("libero",
		overrideBranch(),
		emergencyBranch(emergencyContact()),
		liberoPhases(),
		fallbackBranch(),
	)
}

func liberoPhases() *node {
	return sel("libero-phases",
		seq("pre-serve",
			phaseIs("phase-pre-serve", PhasePreServe),
			emit("align", GoalMaintainBase, ReasonBaseFallback)),

		seq("serve-receive",
			phaseIs("phase-receive", PhaseServeInAir, PhaseServeReceive),
			weReceive(),
			emit("receive", GoalReceiveServe, ReasonPrimaryPasser)),

		seq("offense-coverage",
			phaseIs("phase-offense", PhaseTransitionOffense, PhaseSet, PhaseAttack),
			ourBall(),
			emit("cover", GoalCoverHitter, ReasonCoverage)),

		seq("defense",
			phaseIs("phase-defense", PhaseDefense, PhaseTransitionDefense),
			emit("dig", GoalDig, ReasonBackRowDig)),
	)
}
