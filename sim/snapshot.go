package sim

import "time"

// Snapshot is a frozen copy of a committed world, captured for later
// restore. The copy is deep: nothing the controller does afterwards, restore
// included, can reach back into it.
type Snapshot struct {
	ID        int         `json:"id"`
	Timestamp time.Time   `json:"timestamp"`
	Label     string      `json:"label"`
	World     *WorldState `json:"world"`
}
