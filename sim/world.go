package sim

import "fmt"

// rotationalLineup is the 5-1 serve order: the slot a role occupies in the
// rotation. Slot 1 serves in rotation 1.
var rotationalLineup = []Role{
	RoleSetter, RoleOutside1, RoleMiddle1, RoleOpposite, RoleOutside2, RoleMiddle2,
}

// SlotOf returns a role's lineup slot (1-6), or 0 for the libero, who never
// rotates.
func SlotOf(role Role) int {
	for i, r := range rotationalLineup {
		if r == role {
			return i + 1
		}
	}
	return 0
}

// WorldState is the aggregate per-tick state: court, players, ball and the
// rally FSM slice. It is immutable by convention: every mutation produces
// (or is applied to) a clone, and the controller is the sole writer of the
// committed copy.
type WorldState struct {
	Court   Court          `json:"court"`
	Players []*PlayerState `json:"players"`
	Ball    Ball           `json:"ball"`
	Rally   RallyState     `json:"rally"`
	Tick    int64          `json:"tick"`
}

// InitOptions seed world creation. Zero values mean home serve, rotation 1
// on both sides, default positions.
type InitOptions struct {
	ServingSide  TeamSide
	RotationHome int
	RotationAway int
	// Positions optionally overrides starting positions per player ID
	// (externally loaded custom layouts).
	Positions map[string]Vec2
}

// NewDefaultWorld creates two full teams of seven in their rotation base
// positions, phase pre-serve.
func NewDefaultWorld(tun *Tunables, opts InitOptions) *WorldState {
	if opts.ServingSide == SideNone {
		opts.ServingSide = SideHome
	}
	if opts.RotationHome < 1 || opts.RotationHome > 6 {
		opts.RotationHome = 1
	}
	if opts.RotationAway < 1 || opts.RotationAway > 6 {
		opts.RotationAway = 1
	}

	w := &WorldState{
		Court: NewCourt(),
		Rally: RallyState{
			Phase:        PhasePreServe,
			ServingSide:  opts.ServingSide,
			RotationHome: opts.RotationHome,
			RotationAway: opts.RotationAway,
		},
	}

	tier := tun.VarianceFor()
	skill := skillFromVariance(tier)
	for _, side := range []TeamSide{SideHome, SideAway} {
		for _, role := range Roles {
			p := &PlayerState{
				ID:       PlayerID(side, role),
				Side:     side,
				Role:     role,
				Category: CategoryOf(role),
				MaxSpeed: 0.035, // court-normalized distance per tick
				BaseGoal: GoalMaintainBase,
				Active:   role != RoleLibero,
				Skill:    skill,
			}
			p.Priority = PriorityOf(p.Category)
			w.Players = append(w.Players, p)
		}
	}

	w.PlaceAtBase()
	w.applyLiberoExchange()
	for id, pos := range opts.Positions {
		if p := w.PlayerByID(id); p != nil {
			p.Pos = w.Court.ClampToSide(pos, p.Side)
		}
	}

	w.Ball.Pos = w.Court.ServePosition(opts.ServingSide)
	w.Ball.Side = opts.ServingSide
	return w
}

// skillFromVariance derives flat skill ratings from the tier's scatter: a
// tighter scatter means a stronger player. Ratings stay in [0,1].
func skillFromVariance(v VarianceTable) SkillRatings {
	r := func(scatter float64) float64 { return clamp(1-3*scatter, 0.05, 0.99) }
	return SkillRatings{
		Pass: r(v.Pass), Set: r(v.Set), Attack: r(v.Attack),
		Serve: r(v.Serve), Block: r(v.Block), Dig: r(v.Dig),
	}
}

// Clone returns an independent deep copy with no aliasing back into w.
func (w *WorldState) Clone() *WorldState {
	cp := *w
	cp.Players = make([]*PlayerState, len(w.Players))
	for i, p := range w.Players {
		cp.Players[i] = p.Clone()
	}
	return &cp
}

// PlayerByID finds a player, or nil.
func (w *WorldState) PlayerByID(id string) *PlayerState {
	for _, p := range w.Players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// PlayerByRole finds the side's player in the given role, or nil.
func (w *WorldState) PlayerByRole(side TeamSide, role Role) *PlayerState {
	return w.PlayerByID(PlayerID(side, role))
}

// PlayersOnSide returns the side's players in stable list order.
func (w *WorldState) PlayersOnSide(side TeamSide) []*PlayerState {
	var out []*PlayerState
	for _, p := range w.Players {
		if p.Side == side {
			out = append(out, p)
		}
	}
	return out
}

// ZoneOf returns the court zone (1-6) a player currently occupies under the
// rotation rules. The libero reports the zone of the middle it replaced.
func (w *WorldState) ZoneOf(p *PlayerState) int {
	role := p.Role
	if role == RoleLibero {
		if m := w.backRowMiddle(p.Side); m != nil {
			role = m.Role
		} else {
			return 6
		}
	}
	slot := SlotOf(role)
	if slot == 0 {
		panic(fmt.Sprintf("player %s has no rotation slot", p.ID))
	}
	return RotationZone(slot, w.Rally.Rotation(p.Side))
}

// FrontRow reports whether the player is currently front row.
func (w *WorldState) FrontRow(p *PlayerState) bool {
	return FrontRowZone(w.ZoneOf(p))
}

// backRowMiddle returns the side's middle currently in the back row, or nil
// when both middles are front row (never true in a legal rotation).
func (w *WorldState) backRowMiddle(side TeamSide) *PlayerState {
	for _, role := range []Role{RoleMiddle1, RoleMiddle2} {
		m := w.PlayerByRole(side, role)
		if m == nil {
			continue
		}
		zone := RotationZone(SlotOf(role), w.Rally.Rotation(side))
		if !FrontRowZone(zone) {
			return m
		}
	}
	return nil
}

// applyLiberoExchange benches each side's back-row middle in favor of the
// libero, except when that middle is the designated server. Re-run after
// every rotation or phase reset.
func (w *WorldState) applyLiberoExchange() {
	for _, side := range []TeamSide{SideHome, SideAway} {
		lib := w.PlayerByRole(side, RoleLibero)
		if lib == nil {
			continue
		}
		mid := w.backRowMiddle(side)
		serving := side == w.Rally.ServingSide
		if mid != nil && !(serving && w.ZoneOf(mid) == 1) {
			mid.Active = false
			lib.Active = true
			lib.Pos = w.Court.ZoneCenter(side, w.ZoneOf(mid))
		} else {
			lib.Active = false
			for _, role := range []Role{RoleMiddle1, RoleMiddle2} {
				if m := w.PlayerByRole(side, role); m != nil {
					m.Active = true
				}
			}
		}
	}
}

// PlaceAtBase moves every rotational player to its zone center.
func (w *WorldState) PlaceAtBase() {
	for _, p := range w.Players {
		if p.Role == RoleLibero {
			continue
		}
		p.Pos = w.Court.ZoneCenter(p.Side, w.ZoneOf(p))
		p.Vel = Vec2{}
		p.Requested = nil
	}
}

// ServerFor returns the player serving for the side under the current
// rotation: whoever occupies zone 1.
func (w *WorldState) ServerFor(side TeamSide) *PlayerState {
	for _, p := range w.PlayersOnSide(side) {
		if p.Role != RoleLibero && w.ZoneOf(p) == 1 {
			return p
		}
	}
	return nil
}

// SetRotation sets a side's rotation index (1-6) and re-derives libero
// activity and base positions.
func (w *WorldState) SetRotation(side TeamSide, rotation int) error {
	if rotation < 1 || rotation > 6 {
		return fmt.Errorf("rotation %d out of range 1-6", rotation)
	}
	if side == SideAway {
		w.Rally.RotationAway = rotation
	} else {
		w.Rally.RotationHome = rotation
	}
	w.applyLiberoExchange()
	return nil
}
