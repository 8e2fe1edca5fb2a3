package sim

// Ball is the canonical ball record. TouchCount resets whenever the ball
// crosses the net.
type Ball struct {
	Pos     Vec2 `json:"pos"`
	Vel     Vec2 `json:"vel"`
	Landing Vec2 `json:"landing"` // predicted landing point of the current flight

	InFlight    bool  `json:"inFlight"`
	ArrivalTick int64 `json:"arrivalTick"` // tick at which the current flight resolves

	TouchCount int      `json:"touchCount"`
	Side       TeamSide `json:"side"`      // which side of the net the ball is on
	LastTouch  TeamSide `json:"lastTouch"` // team that last contacted the ball
}

// LaunchAt puts the ball in flight toward landing, resolving at arrival.
// Velocity is derived so the rendered position tracks the flight linearly.
func (b *Ball) LaunchAt(landing Vec2, now, flightTicks int64) {
	if flightTicks < 1 {
		flightTicks = 1
	}
	b.Landing = landing
	b.InFlight = true
	b.ArrivalTick = now + flightTicks
	b.Vel = landing.Sub(b.Pos).Scale(1 / float64(flightTicks))
}

// Ground stops the flight where the ball currently is.
func (b *Ball) Ground() {
	b.InFlight = false
	b.Vel = Vec2{}
}
