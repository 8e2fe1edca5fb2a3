package sim

// Goal is a closed enumeration of tactical outcomes: the vocabulary both
// the decision trees and human overrides speak.
type Goal string

const (
	GoalMaintainBase    Goal = "maintain-base-responsibility"
	GoalMoveToServe     Goal = "move-to-serve-position"
	GoalServe           Goal = "serve"
	GoalReceiveServe    Goal = "receive-serve"
	GoalHideFromReceive Goal = "hide-from-receive"
	GoalPinnedAtNet     Goal = "pinned-at-net"
	GoalHelpReceive     Goal = "help-receive"

	GoalChaseBall    Goal = "chase-ball"
	GoalEmergencySet Goal = "emergency-set"
	GoalSetterDump   Goal = "setter-dump"
	GoalBailFreeball Goal = "bail-freeball"

	GoalQuickSetMiddle  Goal = "quick-set-middle"
	GoalBackSetOpposite Goal = "back-set-opposite"
	GoalHighSetOutside  Goal = "high-set-outside"

	GoalApproachAttack Goal = "approach-attack"
	GoalCoverHitter    Goal = "cover-hitter"

	GoalBlockLeftSide  Goal = "block-left-side"
	GoalBlockMiddle    Goal = "block-middle"
	GoalBlockRightSide Goal = "block-right-side"
	GoalDig            Goal = "dig"
	GoalDefendBase     Goal = "defend-base"
)

// validGoals is the closed set; anything else falls back to
// GoalMaintainBase at the point of use.
var validGoals = map[Goal]bool{
	GoalMaintainBase:    true,
	GoalMoveToServe:     true,
	GoalServe:           true,
	GoalReceiveServe:    true,
	GoalHideFromReceive: true,
	GoalPinnedAtNet:     true,
	GoalHelpReceive:     true,
	GoalChaseBall:       true,
	GoalEmergencySet:    true,
	GoalSetterDump:      true,
	GoalBailFreeball:    true,
	GoalQuickSetMiddle:  true,
	GoalBackSetOpposite: true,
	GoalHighSetOutside:  true,
	GoalApproachAttack:  true,
	GoalCoverHitter:     true,
	GoalBlockLeftSide:   true,
	GoalBlockMiddle:     true,
	GoalBlockRightSide:  true,
	GoalDig:             true,
	GoalDefendBase:      true,
}

// ParseGoal reports whether s names a recognized goal.
func ParseGoal(s string) (Goal, bool) {
	g := Goal(s)
	return g, validGoals[g]
}

// GoalOrMaintainBase validates s against the closed enumeration,
// substituting the base-responsibility fallback for unrecognized values.
// Invalid overrides are recovered here, never surfaced to the caller.
func GoalOrMaintainBase(s string) Goal {
	if g, ok := ParseGoal(s); ok {
		return g
	}
	return GoalMaintainBase
}

// Reason is a structured reason code attached to an Intent. Display text is
// generated separately (DescribeIntent) so decision logic stays
// table-testable without string assertions.
type Reason string

const (
	ReasonOverride        Reason = "override"
	ReasonDesignatedServer Reason = "designated-server"
	ReasonServeContact    Reason = "serve-contact"
	ReasonEmergencyReach  Reason = "emergency-reach"
	ReasonSecondBall      Reason = "second-ball"
	ReasonSecondBallDump  Reason = "second-ball-dump"
	ReasonPassOffTarget   Reason = "pass-off-target"
	ReasonMiddleReady     Reason = "middle-ready"
	ReasonBlockGap        Reason = "block-gap"
	ReasonInSystemOutside Reason = "in-system-outside"
	ReasonOutOfSystemSafe Reason = "out-of-system-safety"
	ReasonPrimaryPasser   Reason = "primary-passer"
	ReasonNotPassing      Reason = "not-passing"
	ReasonOverlapPinned   Reason = "overlap-pinned"
	ReasonQuickAvailable  Reason = "quick-available"
	ReasonAttackLane      Reason = "attack-lane"
	ReasonCoverage        Reason = "coverage"
	ReasonBlockAssignment Reason = "block-assignment"
	ReasonBackRowDig      Reason = "back-row-dig"
	ReasonBaseFallback    Reason = "base-fallback"
)
