// Package sim implements a deterministic tick-based volleyball rally
// simulation: per-role behavior trees decide player goals, a pure reducer
// drives the rally-phase FSM, and a controller owns the committed world.
//
// Suggested reading order:
//
//   - vec.go, court.go: geometry and the normalized court model
//   - player.go, ball.go, goal.go: the core records and the goal vocabulary
//   - phase.go: rally phases, events and the ReduceRally reducer
//   - world.go: WorldState, rotations and the libero exchange
//   - conditions.go: the predicate library the trees gate on
//   - tree.go and the tree_*.go files: the per-role decision trees
//   - tick.go, contact.go: the tick pipeline, ball flight and contacts
//   - controller.go: pause/step/dry-run, snapshots, serialization
//
// Determinism: every run is reproducible from a SimulationKey. Randomness is
// confined to the serve-target and contact-variance streams in rng.go, and
// every draw is derived from (key, subsystem, tick), so stepping a given
// world is a pure function. Dry runs and snapshot restores therefore replay
// bit for bit.
package sim
