package sim

// Court coordinates are normalized: X runs 0..1 across the width, Y runs
// 0..2 along the length with the net at Y=1. The home side occupies Y<1,
// the away side Y>1. Away-side landmarks are the home-side ones rotated
// 180 degrees about the court center.
const (
	CourtWidth  = 1.0
	CourtLength = 2.0
	NetY        = 1.0

	frontRowY = 0.85 // distance-normalized front row line, home frame
	backRowY  = 0.35
	serveY    = 0.05
)

// Court describes the playing area. All geometry helpers hang off it so a
// WorldState carries its own court rather than reading package globals.
type Court struct {
	Width  float64 `json:"width"`
	Length float64 `json:"length"`
	NetY   float64 `json:"netY"`
}

// NewCourt returns the normalized regulation court.
func NewCourt() Court {
	return Court{Width: CourtWidth, Length: CourtLength, NetY: NetY}
}

// homeZoneCenters maps volleyball zones 1-6 to home-side positions.
// Zones 2,3,4 are the front row, 1,6,5 the back row; zone 1 is back-right
// (the serving position's column).
var homeZoneCenters = map[int]Vec2{
	1: {X: 0.83, Y: backRowY},
	2: {X: 0.83, Y: frontRowY},
	3: {X: 0.50, Y: frontRowY},
	4: {X: 0.17, Y: frontRowY},
	5: {X: 0.17, Y: backRowY},
	6: {X: 0.50, Y: backRowY},
}

// mirror rotates a home-frame position 180 degrees into the away frame.
func (c Court) mirror(p Vec2) Vec2 {
	return Vec2{X: c.Width - p.X, Y: c.Length - p.Y}
}

// ZoneCenter returns the center of the given zone (1-6) on the given side.
// Unknown zones map to the court center of that side.
func (c Court) ZoneCenter(side TeamSide, zone int) Vec2 {
	p, ok := homeZoneCenters[zone]
	if !ok {
		p = Vec2{X: 0.5, Y: 0.5}
	}
	if side == SideAway {
		return c.mirror(p)
	}
	return p
}

// ServePosition returns where the server stands, behind the baseline in
// the zone-1 column.
func (c Court) ServePosition(side TeamSide) Vec2 {
	p := Vec2{X: 0.83, Y: serveY}
	if side == SideAway {
		return c.mirror(p)
	}
	return p
}

// SetterTarget is the zone the pass is aimed at: between zones 2 and 3,
// tight to the net.
func (c Court) SetterTarget(side TeamSide) Vec2 {
	p := Vec2{X: 0.67, Y: 0.92}
	if side == SideAway {
		return c.mirror(p)
	}
	return p
}

// NetPoint returns the point on the net in the given attack lane column
// (0=left, 1=middle, 2=right) from the perspective of side.
func (c Court) NetPoint(side TeamSide, lane int) Vec2 {
	x := [3]float64{0.17, 0.50, 0.83}[lane%3]
	if side == SideAway {
		x = c.Width - x
	}
	return Vec2{X: x, Y: c.NetY}
}

// SideOf reports which half of the court a position lies in.
func (c Court) SideOf(p Vec2) TeamSide {
	if p.Y < c.NetY {
		return SideHome
	}
	return SideAway
}

// ClampToSide pins p into the given side's half (keeps manual edits from
// placing players through the net or out the back).
func (c Court) ClampToSide(p Vec2, side TeamSide) Vec2 {
	p.X = clamp(p.X, 0, c.Width)
	if side == SideHome {
		p.Y = clamp(p.Y, 0, c.NetY-0.02)
	} else {
		p.Y = clamp(p.Y, c.NetY+0.02, c.Length)
	}
	return p
}

// FrontRowZone reports whether zone is one of the three net zones.
func FrontRowZone(zone int) bool {
	return zone == 2 || zone == 3 || zone == 4
}

// RotationZone maps a lineup slot (1-6, serve order) and the side's current
// rotation index (1-6) to the court zone the slot occupies. Rotation 1 puts
// slot 1 in zone 1; each rotation advance shifts every slot one zone
// clockwise.
func RotationZone(slot, rotation int) int {
	return ((slot-rotation)%6+6)%6 + 1
}
