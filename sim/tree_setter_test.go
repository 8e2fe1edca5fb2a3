package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// offenseWorld stages the second-ball decision: home took the first touch
// and the pass is in the air, phase set, setter on the ball.
func offenseWorld(t *testing.T) (*WorldState, *Tunables) {
	t.Helper()
	w, tun := testWorld(t)
	w.Rally.Phase = PhaseSet
	w.Rally.ServingSide = SideAway
	w.Rally.LastTouch = SideHome
	w.Rally.TouchCount = 2
	w.Ball.Side = SideHome
	w.Ball.Landing = w.Court.SetterTarget(SideHome)
	return w, tun
}

func TestSetterTree_QuickSetWhenInSystemAndMiddleReady(t *testing.T) {
	w, tun := offenseWorld(t)

	// Rotation 1 has middle-1 at zone 3, inside the quick window.
	intents := evalTree(t, SetterTree(), ctxFor(t, w, tun, SideHome, RoleSetter))
	require.Len(t, intents, 1)
	assert.Equal(t, GoalQuickSetMiddle, intents[0].Goal)
	assert.Equal(t, ReasonMiddleReady, intents[0].Reason)
	assert.Equal(t, SourceTree, intents[0].Source)
}

func TestSetterTree_BackSetWhenMiddleUnavailable(t *testing.T) {
	w, tun := offenseWorld(t)
	w.PlayerByRole(SideHome, RoleMiddle1).Pos = Vec2{X: 0.1, Y: 0.3}

	// Away's lone right-lane blocker leaves the gap open.
	intents := evalTree(t, SetterTree(), ctxFor(t, w, tun, SideHome, RoleSetter))
	require.Len(t, intents, 1)
	assert.Equal(t, GoalBackSetOpposite, intents[0].Goal)
	assert.Equal(t, ReasonBlockGap, intents[0].Reason)
}

func TestSetterTree_HighOutsideWhenRightSideCrowded(t *testing.T) {
	w, tun := offenseWorld(t)
	w.PlayerByRole(SideHome, RoleMiddle1).Pos = Vec2{X: 0.1, Y: 0.3}

	// Stack two away blockers on home's right lane to close the back set.
	lane2 := w.Court.NetPoint(SideHome, 2)
	w.PlayerByRole(SideAway, RoleOutside1).Pos = Vec2{X: lane2.X, Y: w.Court.NetY + 0.1}
	w.PlayerByRole(SideAway, RoleMiddle1).Pos = Vec2{X: lane2.X, Y: w.Court.NetY + 0.12}

	intents := evalTree(t, SetterTree(), ctxFor(t, w, tun, SideHome, RoleSetter))
	require.Len(t, intents, 1)
	assert.Equal(t, GoalHighSetOutside, intents[0].Goal)
	assert.Equal(t, ReasonInSystemOutside, intents[0].Reason)
}

func TestSetterTree_SafetySetWhenOutOfSystem(t *testing.T) {
	w, tun := offenseWorld(t)
	w.PlayerByRole(SideHome, RoleMiddle1).Pos = Vec2{X: 0.1, Y: 0.3}
	// Off target but inside the bail radius: no quick, no in-system sets.
	target := w.Court.SetterTarget(SideHome)
	w.Ball.Landing = Vec2{X: target.X - 0.2, Y: target.Y - 0.2}

	lane2 := w.Court.NetPoint(SideHome, 2)
	w.PlayerByRole(SideAway, RoleOutside1).Pos = Vec2{X: lane2.X, Y: w.Court.NetY + 0.1}
	w.PlayerByRole(SideAway, RoleMiddle1).Pos = Vec2{X: lane2.X, Y: w.Court.NetY + 0.12}

	intents := evalTree(t, SetterTree(), ctxFor(t, w, tun, SideHome, RoleSetter))
	require.Len(t, intents, 1)
	assert.Equal(t, GoalHighSetOutside, intents[0].Goal)
	assert.Equal(t, ReasonOutOfSystemSafe, intents[0].Reason)
}

func TestSetterTree_BailOnBadPass(t *testing.T) {
	w, tun := offenseWorld(t)
	w.Ball.Landing = Vec2{X: 0.1, Y: 0.1}

	intents := evalTree(t, SetterTree(), ctxFor(t, w, tun, SideHome, RoleSetter))
	require.Len(t, intents, 1)
	assert.Equal(t, GoalBailFreeball, intents[0].Goal)
	assert.Equal(t, ReasonPassOffTarget, intents[0].Reason)
}

func TestSetterTree_ConvergesOnFirstTouch(t *testing.T) {
	w, tun := offenseWorld(t)
	w.Rally.Phase = PhaseTransitionOffense
	w.Rally.TouchCount = 1

	intents := evalTree(t, SetterTree(), ctxFor(t, w, tun, SideHome, RoleSetter))
	require.Len(t, intents, 1)
	assert.Equal(t, GoalChaseBall, intents[0].Goal)
	assert.Equal(t, ReasonSecondBall, intents[0].Reason)
}

func TestSetterTree_NoSetOnOpponentBall(t *testing.T) {
	w, tun := offenseWorld(t)
	w.Rally.LastTouch = SideAway
	w.Ball.Side = SideAway
	w.Ball.Landing = w.Court.SetterTarget(SideAway)

	intents := evalTree(t, SetterTree(), ctxFor(t, w, tun, SideHome, RoleSetter))
	require.Len(t, intents, 1)
	assert.NotContains(t, []Goal{GoalQuickSetMiddle, GoalBackSetOpposite, GoalHighSetOutside},
		intents[0].Goal, "setter never runs a set on the opponent's possession")
}
