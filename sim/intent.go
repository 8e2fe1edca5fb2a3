package sim

import "fmt"

// IntentSource tells where an intent came from.
type IntentSource string

const (
	SourceTree     IntentSource = "tree"
	SourceOverride IntentSource = "override"
)

// Intent is the structured record a tree leaf emits: this player wants to
// attempt this goal for this reason. The reason is a code, not display
// text; DescribeIntent renders it for humans. Downstream logic never reads
// the rendered text.
type Intent struct {
	PlayerID string       `json:"playerId"`
	Goal     Goal         `json:"goalType"`
	Reason   Reason       `json:"reason"`
	Source   IntentSource `json:"source"`
}

// reasonText maps reason codes to display templates. Kept apart from the
// trees so presentation edits never touch decision logic.
var reasonText = map[Reason]string{
	ReasonOverride:         "following a manual override",
	ReasonDesignatedServer: "I'm the designated server this rotation",
	ReasonServeContact:     "served, transitioning straight to defense",
	ReasonEmergencyReach:   "free ball on our side and I can get there first",
	ReasonSecondBall:       "second ball is mine, converging on the pass",
	ReasonSecondBallDump:   "second ball is tight, dumping it over myself",
	ReasonPassOffTarget:    "pass is too far off target, sending a freeball",
	ReasonMiddleReady:      "in-system and the middle is ready for the quick",
	ReasonBlockGap:         "their block shows a gap on the right side",
	ReasonInSystemOutside:  "in-system, running the high outside set",
	ReasonOutOfSystemSafe:  "out of system, high safety set to the outside",
	ReasonPrimaryPasser:    "serve is coming to my receive lane",
	ReasonNotPassing:       "not my pass, tucking in out of the passing lanes",
	ReasonOverlapPinned:    "overlap rule pins me at the net until contact",
	ReasonQuickAvailable:   "in-system pass, loading for the quick attack",
	ReasonAttackLane:       "approaching my attack lane",
	ReasonCoverage:         "covering my hitter against the block",
	ReasonBlockAssignment:  "fronting the likely attacker",
	ReasonBackRowDig:       "back-row dig responsibility",
	ReasonBaseFallback:     "nothing urgent, holding base responsibility",
}

// DescribeIntent renders a human-readable rationale for an intent. Unknown
// reason codes fall back to naming the goal.
func DescribeIntent(in Intent) string {
	if text, ok := reasonText[in.Reason]; ok {
		return text
	}
	return fmt.Sprintf("attempting %s", in.Goal)
}
