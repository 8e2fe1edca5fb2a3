package sim

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// UpdateKind classifies controller notifications for observers.
type UpdateKind string

const (
	UpdateTick    UpdateKind = "tick"
	UpdateControl UpdateKind = "control"
)

// Update is one notification pushed to observers: a committed tick with its
// full result, or a control action (pause, serve, reset, manual edit) with
// the world it produced.
type Update struct {
	Kind   UpdateKind   `json:"kind"`
	Action string       `json:"action,omitempty"`
	Tick   int64        `json:"tick"`
	Result *TickResult  `json:"result,omitempty"`
	Events []RallyEvent `json:"events,omitempty"`
}

// Observer receives controller updates. Called synchronously under the
// controller lock; observers that block stall the simulation.
type Observer func(Update)

// StepOptions control a single manual step.
type StepOptions struct {
	// Commit adopts the resulting world as the new committed state. A
	// non-committed step is a dry run: the result is returned but the
	// committed world is untouched.
	Commit bool
}

// Controller owns the committed world state and is its sole writer. All
// advancement, manual edits, snapshots and serialization go through it; the
// pipeline itself never sees the committed copy, only clones.
//
// Thread-safety: all exported methods are safe for concurrent use. Tick
// evaluation itself is single-threaded under the lock.
type Controller struct {
	mu sync.Mutex

	pipeline *Pipeline
	tun      *Tunables
	rng      *PartitionedRNG
	initOpts InitOptions

	world  *WorldState
	paused bool

	snapshots      map[int]*Snapshot
	nextSnapshotID int

	observers  map[int]Observer
	nextObsID  int
	rallyStart int64

	Metrics RallyMetrics
}

// NewController builds a controller around a fresh default world. The
// controller starts paused: nothing moves until Resume or an explicit Step.
func NewController(tun *Tunables, key SimulationKey, opts InitOptions) *Controller {
	rng := NewPartitionedRNG(key)
	return &Controller{
		pipeline:  NewPipeline(tun, rng),
		tun:       tun,
		rng:       rng,
		initOpts:  opts,
		world:     NewDefaultWorld(tun, opts),
		paused:    true,
		snapshots: make(map[int]*Snapshot),
		observers: make(map[int]Observer),
	}
}

// World returns a deep copy of the committed world. Callers can inspect or
// mutate it freely without affecting the simulation.
func (c *Controller) World() *WorldState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.world.Clone()
}

// Paused reports whether the controller is paused.
func (c *Controller) Paused() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.paused
}

// Pause stops continuous advancement. Pausing an already paused controller
// is a no-op.
func (c *Controller) Pause() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.paused {
		return
	}
	c.paused = true
	c.notify(Update{Kind: UpdateControl, Action: "pause", Tick: c.world.Tick})
}

// Resume allows continuous advancement. Resuming a running controller is a
// no-op.
func (c *Controller) Resume() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.paused {
		return
	}
	c.paused = false
	c.notify(Update{Kind: UpdateControl, Action: "resume", Tick: c.world.Tick})
}

// TogglePause flips the pause state and returns the new value.
func (c *Controller) TogglePause() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.paused = !c.paused
	action := "resume"
	if c.paused {
		action = "pause"
	}
	c.notify(Update{Kind: UpdateControl, Action: action, Tick: c.world.Tick})
	return c.paused
}

// Step advances exactly one tick, regardless of pause state. With Commit the
// result becomes the new committed world; without it this is a dry run that
// leaves the committed world byte-for-byte unchanged.
func (c *Controller) Step(opts StepOptions) *TickResult {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.step(opts.Commit)
}

// DryRun evaluates one tick against the committed world without committing.
func (c *Controller) DryRun() *TickResult {
	return c.Step(StepOptions{Commit: false})
}

func (c *Controller) step(commit bool) *TickResult {
	res := c.pipeline.StepTick(c.world)
	if !commit {
		return res
	}
	prevServing := c.world.Rally.ServingSide
	c.world = res.NextWorld
	c.recordOutcomes(res.Events, prevServing)
	c.notify(Update{Kind: UpdateTick, Tick: c.world.Tick, Result: res, Events: res.Events})
	return res
}

// SimulateUntil commits ticks until pred holds on the committed world or
// maxTicks have run, returning the tick count actually executed. A predicate
// already true on entry runs zero ticks.
func (c *Controller) SimulateUntil(pred func(*WorldState) bool, maxTicks int) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	if pred(c.world) {
		return 0
	}
	for n := 1; n <= maxTicks; n++ {
		c.step(true)
		if pred(c.world) {
			return n
		}
	}
	logrus.Warnf("simulate-until hit the %d tick bound", maxTicks)
	return maxTicks
}

// UntilPhase builds a predicate that holds once the rally reaches the given
// phase.
func UntilPhase(phase RallyPhase) func(*WorldState) bool {
	return func(w *WorldState) bool { return w.Rally.Phase == phase }
}

// UntilBallDead holds once the rally is over.
func UntilBallDead() func(*WorldState) bool {
	return UntilPhase(PhaseBallDead)
}

// Serve puts the serve in play: the designated server contacts the ball
// toward a back-row receiving zone chosen from the seeded serve stream.
// Outside the pre-serve phase the call is a no-op.
func (c *Controller) Serve() {
	c.mu.Lock()
	defer c.mu.Unlock()

	w := c.world
	if w.Rally.Phase != PhasePreServe {
		logrus.Debugf("serve ignored in phase %s", w.Rally.Phase)
		return
	}
	server := w.ServerFor(w.Rally.ServingSide)
	if server == nil {
		logrus.Errorf("no server found for side %s", w.Rally.ServingSide)
		return
	}
	c.rallyStart = w.Tick

	serveRNG := c.rng.ForTick(SubsystemServe, w.Tick)
	receivingZones := [3]int{1, 6, 5}
	zone := receivingZones[serveRNG.Intn(len(receivingZones))]
	target := w.Court.ZoneCenter(w.Rally.ServingSide.Opponent(), zone)
	target = scatterWith(serveRNG, target, c.tun.VarianceFor().Serve)

	w.Ball.Pos = server.Pos
	w.Ball.Side = w.Rally.ServingSide
	w.Ball.LastTouch = w.Rally.ServingSide
	w.Ball.LaunchAt(target, w.Tick, c.tun.Scaled(c.tun.Timing.ServeFlight))

	ev := RallyEvent{Kind: EventServeContact, Team: w.Rally.ServingSide}
	w.Rally, _ = ReduceRally(w.Rally, ev)
	c.notify(Update{Kind: UpdateControl, Action: "serve", Tick: w.Tick, Events: []RallyEvent{ev}})
}

// ResetRally returns a dead ball to the pre-serve phase: players to base,
// libero exchange re-derived, ball staged at the serve position. Score and
// rotations carry over. An optional serving side overrides who serves next.
// Outside the ball-dead phase the call is a no-op.
func (c *Controller) ResetRally(servingOverride ...TeamSide) {
	c.mu.Lock()
	defer c.mu.Unlock()

	w := c.world
	if w.Rally.Phase != PhaseBallDead {
		logrus.Debugf("rally reset ignored in phase %s", w.Rally.Phase)
		return
	}
	if len(servingOverride) > 0 && servingOverride[0] != SideNone {
		w.Rally.ServingSide = servingOverride[0]
	}
	ev := RallyEvent{Kind: EventRallyReset}
	w.Rally, _ = ReduceRally(w.Rally, ev)
	w.applyLiberoExchange()
	w.PlaceAtBase()
	w.Ball = Ball{
		Pos:  w.Court.ServePosition(w.Rally.ServingSide),
		Side: w.Rally.ServingSide,
	}
	c.notify(Update{Kind: UpdateControl, Action: "rally-reset", Tick: w.Tick, Events: []RallyEvent{ev}})
}

// Reset rebuilds the world from the original init options: scores, rotations
// and tick counter all return to their starting values. Snapshots survive.
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.world = NewDefaultWorld(c.tun, c.initOpts)
	c.rallyStart = 0
	c.Metrics = RallyMetrics{}
	c.notify(Update{Kind: UpdateControl, Action: "reset", Tick: 0})
}

// MovePlayer sets a player's position directly, clamped to their side.
func (c *Controller) MovePlayer(id string, pos Vec2) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	p := c.world.PlayerByID(id)
	if p == nil {
		return fmt.Errorf("unknown player %q", id)
	}
	p.Pos = c.world.Court.ClampToSide(pos, p.Side)
	p.Vel = Vec2{}
	c.notify(Update{Kind: UpdateControl, Action: "move-player", Tick: c.world.Tick})
	return nil
}

// SetPlayerGoal activates a goal override on a player. The goal string is
// validated lazily at evaluation time; unrecognized goals degrade to the
// base responsibility rather than erroring here.
func (c *Controller) SetPlayerGoal(id, goal string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	p := c.world.PlayerByID(id)
	if p == nil {
		return fmt.Errorf("unknown player %q", id)
	}
	p.Override = Override{Active: true, Goal: goal}
	c.notify(Update{Kind: UpdateControl, Action: "set-goal", Tick: c.world.Tick})
	return nil
}

// ClearPlayerGoal removes a player's override; the tree takes back over on
// the next tick.
func (c *Controller) ClearPlayerGoal(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	p := c.world.PlayerByID(id)
	if p == nil {
		return fmt.Errorf("unknown player %q", id)
	}
	p.Override = Override{}
	c.notify(Update{Kind: UpdateControl, Action: "clear-goal", Tick: c.world.Tick})
	return nil
}

// SetBallPosition teleports the ball, grounding any flight in progress. The
// ball's side is re-derived from the position.
func (c *Controller) SetBallPosition(pos Vec2) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.world.Ball.Ground()
	c.world.Ball.Pos = pos
	c.world.Ball.Side = c.world.Court.SideOf(pos)
	c.notify(Update{Kind: UpdateControl, Action: "set-ball", Tick: c.world.Tick})
}

// SetPhase forces the rally FSM into a phase, bypassing the reducer. Meant
// for scenario setup, not live play.
func (c *Controller) SetPhase(phase RallyPhase) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, p := range RallyPhases {
		if p == phase {
			c.world.Rally.Phase = phase
			c.notify(Update{Kind: UpdateControl, Action: "set-phase", Tick: c.world.Tick})
			return nil
		}
	}
	return fmt.Errorf("unknown rally phase %q", phase)
}

// SetRotation sets a side's rotation index and re-derives positions.
func (c *Controller) SetRotation(side TeamSide, rotation int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.world.SetRotation(side, rotation); err != nil {
		return err
	}
	c.world.PlaceAtBase()
	c.notify(Update{Kind: UpdateControl, Action: "set-rotation", Tick: c.world.Tick})
	return nil
}

// CreateSnapshot captures the committed world under a fresh ID.
func (c *Controller) CreateSnapshot(label string) *Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.nextSnapshotID++
	snap := &Snapshot{
		ID:        c.nextSnapshotID,
		Timestamp: time.Now(),
		Label:     label,
		World:     c.world.Clone(),
	}
	c.snapshots[snap.ID] = snap
	c.notify(Update{Kind: UpdateControl, Action: "create-snapshot", Tick: c.world.Tick})
	return snap
}

// RestoreSnapshot replaces the committed world with a copy of the snapshot's
// world. The snapshot itself stays intact and restorable again. Unknown IDs
// return an error and leave the committed world untouched.
func (c *Controller) RestoreSnapshot(id int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	snap, ok := c.snapshots[id]
	if !ok {
		return fmt.Errorf("unknown snapshot %d", id)
	}
	c.world = snap.World.Clone()
	c.notify(Update{Kind: UpdateControl, Action: "restore-snapshot", Tick: c.world.Tick})
	return nil
}

// Snapshots lists stored snapshots in creation order.
func (c *Controller) Snapshots() []*Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]*Snapshot, 0, len(c.snapshots))
	for _, s := range c.snapshots {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// ClearSnapshots drops all stored snapshots.
func (c *Controller) ClearSnapshots() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.snapshots = make(map[int]*Snapshot)
}

// ExportState serializes the committed world.
func (c *Controller) ExportState() ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return SerializeWorldState(c.world)
}

// ImportState replaces the committed world with a deserialized one. On any
// decode error the committed world is left untouched.
func (c *Controller) ImportState(data []byte) error {
	w, err := DeserializeWorldState(data)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.world = w
	c.notify(Update{Kind: UpdateControl, Action: "import-state", Tick: w.Tick})
	return nil
}

// Subscribe registers an observer and returns an unsubscribe function.
func (c *Controller) Subscribe(obs Observer) func() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.nextObsID++
	id := c.nextObsID
	c.observers[id] = obs
	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.observers, id)
	}
}

// notify fans an update out to all observers. Caller holds the lock.
func (c *Controller) notify(u Update) {
	for _, obs := range c.observers {
		obs(u)
	}
}

// recordOutcomes folds a committed tick's events into the run metrics.
// Caller holds the lock.
func (c *Controller) recordOutcomes(events []RallyEvent, prevServing TeamSide) {
	for _, ev := range events {
		if ev.Kind != EventPointScored || ev.Team == SideNone {
			continue
		}
		c.Metrics.RecordPoint(ev.Team, ev.Team != prevServing, c.world.Tick-c.rallyStart)
		c.rallyStart = c.world.Tick
	}
}
