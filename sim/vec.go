package sim

import "math"

// Vec2 is a 2D point or velocity in court coordinates.
type Vec2 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func (v Vec2) Add(o Vec2) Vec2      { return Vec2{v.X + o.X, v.Y + o.Y} }
func (v Vec2) Sub(o Vec2) Vec2      { return Vec2{v.X - o.X, v.Y - o.Y} }
func (v Vec2) Scale(s float64) Vec2 { return Vec2{v.X * s, v.Y * s} }

// Len returns the Euclidean length of v.
func (v Vec2) Len() float64 { return math.Hypot(v.X, v.Y) }

// Dist returns the distance between v and o.
func (v Vec2) Dist(o Vec2) float64 { return v.Sub(o).Len() }

// Unit returns the unit vector in the direction of v, or the zero vector
// if v is (near) zero length.
func (v Vec2) Unit() Vec2 {
	l := v.Len()
	if l <= 1e-9 {
		return Vec2{}
	}
	return v.Scale(1 / l)
}

// Toward returns a step of at most maxStep from v in the direction of
// target, stopping exactly on target when it is closer than maxStep.
func (v Vec2) Toward(target Vec2, maxStep float64) Vec2 {
	d := target.Sub(v)
	if d.Len() <= maxStep {
		return target
	}
	return v.Add(d.Unit().Scale(maxStep))
}

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
