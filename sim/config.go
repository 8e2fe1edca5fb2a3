package sim

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// TimingWindows hold flight durations, in ticks, for each ball contact.
// The pace multiplier from Tunables scales all of them.
type TimingWindows struct {
	ServeFlight int64 `yaml:"serve_flight"`
	PassToSet   int64 `yaml:"pass_to_set"`
	SetToAttack int64 `yaml:"set_to_attack"`
	AttackCross int64 `yaml:"attack_cross"`
	Freeball    int64 `yaml:"freeball"`
}

// VarianceTable holds per-skill positional scatter (court-normalized
// distance) applied to contact outcomes for one skill tier.
type VarianceTable struct {
	Pass   float64 `yaml:"pass"`
	Set    float64 `yaml:"set"`
	Attack float64 `yaml:"attack"`
	Serve  float64 `yaml:"serve"`
	Block  float64 `yaml:"block"`
	Dig    float64 `yaml:"dig"`
}

// Tunables is the externally supplied configuration record consumed by the
// condition library and action leaves. The engine treats it as already
// validated: unrecognized preset names fall back to defaults, recognized
// fields are used as-is.
type Tunables struct {
	Formation      string  `yaml:"formation"`       // "5-1" is the only formation the trees model
	SkillTier      string  `yaml:"skill_tier"`      // key into Variance
	PlayStyle      string  `yaml:"play_style"`      // "balanced", "fast", "conservative"
	PaceMultiplier float64 `yaml:"pace_multiplier"` // scales all timing windows

	TicksPerSecond int           `yaml:"ticks_per_second"`
	Timing         TimingWindows `yaml:"timing"`

	// Condition library thresholds, court-normalized distances.
	InSystemRadius   float64 `yaml:"in_system_radius"`   // pass close enough to run a full offense
	SetterBailRadius float64 `yaml:"setter_bail_radius"` // beyond this the setter sends a freeball
	ReachRadius      float64 `yaml:"reach_radius"`       // contact radius around a landing point
	PriorityBias     float64 `yaml:"priority_bias"`      // per-priority-point head start in the reach race

	Variance map[string]VarianceTable `yaml:"variance"`
}

// DefaultTunables returns the club-level defaults.
func DefaultTunables() *Tunables {
	return &Tunables{
		Formation:      "5-1",
		SkillTier:      "club",
		PlayStyle:      "balanced",
		PaceMultiplier: 1.0,
		TicksPerSecond: 20,
		Timing: TimingWindows{
			ServeFlight: 24,
			PassToSet:   18,
			SetToAttack: 16,
			AttackCross: 10,
			Freeball:    30,
		},
		InSystemRadius:   0.18,
		SetterBailRadius: 0.40,
		ReachRadius:      0.12,
		PriorityBias:     0.03,
		Variance: map[string]VarianceTable{
			"beginner":    {Pass: 0.22, Set: 0.16, Attack: 0.20, Serve: 0.25, Block: 0.20, Dig: 0.22},
			"high-school": {Pass: 0.15, Set: 0.11, Attack: 0.14, Serve: 0.17, Block: 0.14, Dig: 0.15},
			"club":        {Pass: 0.10, Set: 0.07, Attack: 0.10, Serve: 0.12, Block: 0.10, Dig: 0.10},
			"college":     {Pass: 0.06, Set: 0.04, Attack: 0.06, Serve: 0.08, Block: 0.06, Dig: 0.06},
		},
	}
}

// PresetTunables returns the tunables for a named preset. Unknown names
// return the defaults.
func PresetTunables(name string) *Tunables {
	t := DefaultTunables()
	switch name {
	case "beginner":
		t.SkillTier = "beginner"
		t.PaceMultiplier = 1.5
	case "high-school":
		t.SkillTier = "high-school"
		t.PaceMultiplier = 1.2
	case "club", "":
		// defaults
	case "college":
		t.SkillTier = "college"
		t.PaceMultiplier = 0.85
		t.PlayStyle = "fast"
	}
	return t
}

// LoadTunables reads a YAML tunables file, layering it over the defaults so
// partial files are valid.
func LoadTunables(path string) (*Tunables, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read tunables: %w", err)
	}
	t := DefaultTunables()
	if err := yaml.Unmarshal(data, t); err != nil {
		return nil, fmt.Errorf("parse tunables %s: %w", path, err)
	}
	if t.PaceMultiplier <= 0 {
		t.PaceMultiplier = 1.0
	}
	if t.TicksPerSecond <= 0 {
		t.TicksPerSecond = 20
	}
	return t, nil
}

// VarianceFor returns the active tier's variance table, defaulting to club
// when the tier is unknown.
func (t *Tunables) VarianceFor() VarianceTable {
	if v, ok := t.Variance[t.SkillTier]; ok {
		return v
	}
	return t.Variance["club"]
}

// Scaled returns a timing window scaled by the pace multiplier, never less
// than one tick.
func (t *Tunables) Scaled(ticks int64) int64 {
	scaled := int64(float64(ticks) * t.PaceMultiplier)
	if scaled < 1 {
		return 1
	}
	return scaled
}
