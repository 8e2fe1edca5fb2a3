package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsPrimaryPasser(t *testing.T) {
	w, tun := testWorld(t)

	// Rotation 1, home: outside-1 (zone 2) is front row, outside-2 (zone 5)
	// back row, libero in for middle-2.
	assert.False(t, IsPrimaryPasser(ctxFor(t, w, tun, SideHome, RoleOutside1)))
	assert.True(t, IsPrimaryPasser(ctxFor(t, w, tun, SideHome, RoleOutside2)))
	assert.True(t, IsPrimaryPasser(ctxFor(t, w, tun, SideHome, RoleLibero)))
	assert.False(t, IsPrimaryPasser(ctxFor(t, w, tun, SideHome, RoleSetter)))
	assert.False(t, IsPrimaryPasser(ctxFor(t, w, tun, SideHome, RoleMiddle1)))
}

func TestIsPinnedAtNet(t *testing.T) {
	w, tun := testWorld(t)

	assert.True(t, IsPinnedAtNet(ctxFor(t, w, tun, SideHome, RoleOutside1)),
		"front-row hitter who is not passing is pinned")
	assert.True(t, IsPinnedAtNet(ctxFor(t, w, tun, SideHome, RoleMiddle1)))
	assert.False(t, IsPinnedAtNet(ctxFor(t, w, tun, SideHome, RoleOutside2)),
		"back-row hitter passes instead")
	assert.False(t, IsPinnedAtNet(ctxFor(t, w, tun, SideHome, RoleSetter)),
		"rotation 1 setter is back row")
}

func TestIsDesignatedServer(t *testing.T) {
	w, tun := testWorld(t)

	assert.True(t, IsDesignatedServer(ctxFor(t, w, tun, SideHome, RoleSetter)))
	assert.False(t, IsDesignatedServer(ctxFor(t, w, tun, SideHome, RoleOutside1)))
	assert.False(t, IsDesignatedServer(ctxFor(t, w, tun, SideAway, RoleSetter)),
		"receiving side has no server")
}

func TestCanReachFirst_PriorityWinsTies(t *testing.T) {
	w, tun := testWorld(t)
	w.Ball.Landing = Vec2{X: 0.5, Y: 0.5}

	lib := w.PlayerByRole(SideHome, RoleLibero)
	oh2 := w.PlayerByRole(SideHome, RoleOutside2)
	require.True(t, lib.Active)

	// Equidistant from the landing point: the libero's higher contact
	// priority gives it the head start.
	lib.Pos = Vec2{X: 0.3, Y: 0.5}
	oh2.Pos = Vec2{X: 0.7, Y: 0.5}
	for _, p := range w.PlayersOnSide(SideHome) {
		if p.ID != lib.ID && p.ID != oh2.ID {
			p.Pos = Vec2{X: 0.1, Y: 0.05} // parked far away
		}
	}

	assert.True(t, CanReachFirst(&Context{World: w, Self: lib, Tun: tun}))
	assert.False(t, CanReachFirst(&Context{World: w, Self: oh2, Tun: tun}))
}

func TestCanReachFirst_Deterministic(t *testing.T) {
	w, tun := testWorld(t)
	w.Ball.Landing = Vec2{X: 0.4, Y: 0.6}

	// Exactly one active home player must win, and repeated evaluation must
	// agree with itself.
	var winners []string
	for i := 0; i < 3; i++ {
		var won []string
		for _, p := range w.PlayersOnSide(SideHome) {
			if p.Active && CanReachFirst(&Context{World: w, Self: p, Tun: tun}) {
				won = append(won, p.ID)
			}
		}
		require.Len(t, won, 1)
		winners = append(winners, won[0])
	}
	assert.Equal(t, winners[0], winners[1])
	assert.Equal(t, winners[1], winners[2])
}

func TestInSystemAndBail(t *testing.T) {
	w, tun := testWorld(t)
	target := w.Court.SetterTarget(SideHome)
	ctx := ctxFor(t, w, tun, SideHome, RoleSetter)

	w.Ball.Landing = target
	assert.True(t, InSystem(ctx))
	assert.False(t, SetterShouldBail(ctx))

	w.Ball.Landing = Vec2{X: target.X - 0.25, Y: target.Y - 0.25}
	assert.False(t, InSystem(ctx))
	assert.False(t, SetterShouldBail(ctx), "off target but inside the bail radius")

	w.Ball.Landing = Vec2{X: 0.1, Y: 0.2}
	assert.True(t, SetterShouldBail(ctx))
}

func TestBallLooseOnOurSide(t *testing.T) {
	w, tun := testWorld(t)
	ctx := ctxFor(t, w, tun, SideHome, RoleOutside2)

	w.Ball.Side = SideHome
	w.Ball.InFlight = true
	w.Ball.Landing = Vec2{X: 0.2, Y: 0.2}
	w.Rally.LastTouch = SideHome
	w.Rally.TouchCount = 1
	assert.True(t, BallLooseOnOurSide(ctx))

	w.Rally.TouchCount = 0
	assert.False(t, BallLooseOnOurSide(ctx), "no touches yet means the serve is incoming, not loose")

	w.Rally.TouchCount = 3
	assert.False(t, BallLooseOnOurSide(ctx), "third touch must cross, not be rescued")

	w.Rally.TouchCount = 1
	w.Ball.Landing = w.Court.SetterTarget(SideHome)
	assert.False(t, BallLooseOnOurSide(ctx), "a playable pass is not a broken play")

	w.Rally.TouchCount = 2
	w.Ball.Landing = attackSpot(w.Court, SideHome, 0)
	assert.False(t, BallLooseOnOurSide(ctx), "a set on its way to an attack lane is a delivery, not a scramble")

	w.Ball.Landing = Vec2{X: 0.2, Y: 0.2}
	assert.True(t, BallLooseOnOurSide(ctx), "a shanked set far from every lane is loose")
}

func TestMiddleQuickAvailable(t *testing.T) {
	w, tun := testWorld(t)
	ctx := ctxFor(t, w, tun, SideHome, RoleSetter)

	// Rotation 1: middle-1 holds zone 3, close enough to the target.
	assert.True(t, MiddleQuickAvailable(ctx))

	w.PlayerByRole(SideHome, RoleMiddle1).Pos = Vec2{X: 0.1, Y: 0.4}
	assert.False(t, MiddleQuickAvailable(ctx))
}

func TestAttackLaneOf(t *testing.T) {
	w, _ := testWorld(t)
	assert.Equal(t, 0, AttackLaneOf(w.PlayerByRole(SideHome, RoleOutside1)))
	assert.Equal(t, 1, AttackLaneOf(w.PlayerByRole(SideHome, RoleMiddle1)))
	assert.Equal(t, 2, AttackLaneOf(w.PlayerByRole(SideHome, RoleOpposite)))
}

func TestBlockersInLane(t *testing.T) {
	w, tun := testWorld(t)
	ctx := ctxFor(t, w, tun, SideHome, RoleSetter)

	// Park the away front row on their right pin (home's left lane).
	lane0 := w.Court.NetPoint(SideHome, 0)
	for _, role := range []Role{RoleOutside1, RoleMiddle1, RoleOpposite} {
		p := w.PlayerByRole(SideAway, role)
		if w.FrontRow(p) {
			p.Pos = Vec2{X: lane0.X, Y: w.Court.NetY + 0.1}
		}
	}

	assert.GreaterOrEqual(t, BlockersInLane(ctx, 0), 1)
	assert.Equal(t, 0, BlockersInLane(ctx, 2))
	assert.True(t, BlockGapRightSide(ctx))
}
