// Package trace holds decision-trace record types for explainability
// tooling. It depends only on sim/bt and stores pure data.
package trace

import "github.com/volleysim/volleysim/sim/bt"

// PlayerTrace captures one player's full tree evaluation for one tick:
// every node visited and its status, plus the goals the evaluation emitted.
// It is consumed only by tree-visualization tooling, never by simulation
// logic.
type PlayerTrace struct {
	PlayerID string     `json:"playerId"`
	Role     string     `json:"role"`
	Tick     int64      `json:"tick"`
	Visits   []bt.Visit `json:"visits"`
	Goals    []string   `json:"goals"`
}

// TickTrace aggregates the per-player traces of a single tick.
type TickTrace struct {
	Tick    int64         `json:"tick"`
	Phase   string        `json:"phase"`
	Players []PlayerTrace `json:"players"`
}
