package sim

import "fmt"

// TeamSide identifies one of the two teams (or neither).
type TeamSide string

const (
	SideHome TeamSide = "home"
	SideAway TeamSide = "away"
	SideNone TeamSide = ""
)

// Opponent returns the other side; SideNone maps to itself.
func (s TeamSide) Opponent() TeamSide {
	switch s {
	case SideHome:
		return SideAway
	case SideAway:
		return SideHome
	default:
		return SideNone
	}
}

// Role is a playing role. Each side fields one of each.
type Role string

const (
	RoleSetter   Role = "setter"
	RoleOutside1 Role = "outside-1" // left-side hitter, first rotation slot
	RoleOutside2 Role = "outside-2"
	RoleMiddle1  Role = "middle-1"
	RoleMiddle2  Role = "middle-2"
	RoleOpposite Role = "opposite"
	RoleLibero   Role = "libero"
)

// Roles lists all roles in lineup order. The first six are the rotational
// lineup (serve order for rotation 1); the libero substitutes for back-row
// middles and never rotates.
var Roles = []Role{
	RoleOutside1, RoleMiddle1, RoleSetter, RoleOutside2, RoleMiddle2, RoleOpposite, RoleLibero,
}

// RoleCategory groups roles for priority and tree selection.
type RoleCategory string

const (
	CategorySetter RoleCategory = "setter"
	CategoryHitter RoleCategory = "hitter"
	CategoryMiddle RoleCategory = "middle"
	CategoryLibero RoleCategory = "libero"
)

// CategoryOf derives the category from a role.
func CategoryOf(r Role) RoleCategory {
	switch r {
	case RoleSetter:
		return CategorySetter
	case RoleMiddle1, RoleMiddle2:
		return CategoryMiddle
	case RoleLibero:
		return CategoryLibero
	default:
		return CategoryHitter
	}
}

// PriorityOf derives the ball-reach priority from a category. Higher wins
// ties in the reach race: the libero takes first contact over hitters,
// hitters over middles, and the setter stays out of the first touch so
// their hands are free for the second.
func PriorityOf(c RoleCategory) int {
	switch c {
	case CategoryLibero:
		return 4
	case CategoryHitter:
		return 3
	case CategoryMiddle:
		return 2
	case CategorySetter:
		return 1
	default:
		return 0
	}
}

// SkillRatings hold per-skill ability in [0,1].
type SkillRatings struct {
	Pass   float64 `json:"pass"`
	Set    float64 `json:"set"`
	Attack float64 `json:"attack"`
	Serve  float64 `json:"serve"`
	Block  float64 `json:"block"`
	Dig    float64 `json:"dig"`
}

// Override is an externally supplied goal that preempts autonomous tree
// decisions for as long as it stays active. It is re-checked every tick,
// never latched: clearing it takes effect on the very next tick.
type Override struct {
	Active bool   `json:"active"`
	Goal   string `json:"goal"` // raw goal string, validated at evaluation time
}

// PlayerGoal is a player's currently requested tactical goal together with
// the movement target it resolves to.
type PlayerGoal struct {
	Goal   Goal   `json:"goal"`
	Target Vec2   `json:"target"`
	Reason Reason `json:"reason"`
}

// PlayerState is the canonical per-player record. It is owned exclusively
// by the WorldState it belongs to; mutation happens only through the tick
// pipeline or explicit controller edit calls.
type PlayerState struct {
	ID       string       `json:"id"`
	Side     TeamSide     `json:"side"`
	Role     Role         `json:"role"`
	Category RoleCategory `json:"category"`
	Priority int          `json:"priority"`

	Pos      Vec2    `json:"pos"`
	Vel      Vec2    `json:"vel"`
	MaxSpeed float64 `json:"maxSpeed"`

	Requested *PlayerGoal `json:"requested,omitempty"` // active requested goal, nil when idle
	BaseGoal  Goal        `json:"baseGoal"`            // fallback responsibility
	Override  Override    `json:"override"`

	Active bool         `json:"active"` // false = benched (libero while its middle is front row)
	Skill  SkillRatings `json:"skill"`
}

// Clone returns an independent deep copy of the player.
func (p *PlayerState) Clone() *PlayerState {
	cp := *p
	if p.Requested != nil {
		g := *p.Requested
		cp.Requested = &g
	}
	return &cp
}

// PlayerID builds the canonical player identifier for a side and role.
func PlayerID(side TeamSide, role Role) string {
	return fmt.Sprintf("%s/%s", side, role)
}
