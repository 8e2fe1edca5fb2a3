package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/volleysim/volleysim/sim/bt"
)

// receiveWorld stages serve receive for the home side: away serving, serve
// in the air toward home's back court.
func receiveWorld(t *testing.T) (*WorldState, *Tunables) {
	t.Helper()
	tun := DefaultTunables()
	w := NewDefaultWorld(tun, InitOptions{ServingSide: SideAway})
	w.Rally.Phase = PhaseServeReceive
	w.Rally.LastTouch = SideAway
	w.Ball.Side = SideHome
	w.Ball.InFlight = true
	w.Ball.Landing = w.Court.ZoneCenter(SideHome, 6)
	return w, tun
}

func TestReceivePattern_RowsSplitResponsibility(t *testing.T) {
	w, tun := receiveWorld(t)
	trees := BuildTrees()

	// Rotation 1: outside-1 is front row and pinned, outside-2 is back row
	// and passes. Same tree, different rotation position.
	in := evalTree(t, trees[RoleOutside1], ctxFor(t, w, tun, SideHome, RoleOutside1))
	require.Len(t, in, 1)
	assert.Equal(t, GoalPinnedAtNet, in[0].Goal)
	assert.Equal(t, ReasonOverlapPinned, in[0].Reason)

	in = evalTree(t, trees[RoleOutside2], ctxFor(t, w, tun, SideHome, RoleOutside2))
	require.Len(t, in, 1)
	assert.Equal(t, GoalReceiveServe, in[0].Goal)
	assert.Equal(t, ReasonPrimaryPasser, in[0].Reason)

	in = evalTree(t, trees[RoleLibero], ctxFor(t, w, tun, SideHome, RoleLibero))
	require.Len(t, in, 1)
	assert.Equal(t, GoalReceiveServe, in[0].Goal)

	in = evalTree(t, trees[RoleSetter], ctxFor(t, w, tun, SideHome, RoleSetter))
	require.Len(t, in, 1)
	assert.Equal(t, GoalHideFromReceive, in[0].Goal, "back-row setter tucks out of the lanes")

	in = evalTree(t, trees[RoleMiddle1], ctxFor(t, w, tun, SideHome, RoleMiddle1))
	require.Len(t, in, 1)
	assert.Equal(t, GoalPinnedAtNet, in[0].Goal)
}

func TestBackRowOppositePasses(t *testing.T) {
	w, tun := receiveWorld(t)

	// Rotation 4 drops the opposite (slot 4) into zone 1.
	require.NoError(t, w.SetRotation(SideHome, 4))

	ctx := ctxFor(t, w, tun, SideHome, RoleOpposite)
	require.True(t, IsBackRow(ctx))
	in := evalTree(t, OppositeTree(), ctx)
	require.Len(t, in, 1)
	assert.Equal(t, GoalReceiveServe, in[0].Goal, "back-row opposite passes like any back-row hitter")
}

func TestOverride_PreemptsTreeAndValidates(t *testing.T) {
	w, tun := receiveWorld(t)
	trees := BuildTrees()

	oh2 := w.PlayerByRole(SideHome, RoleOutside2)
	oh2.Override = Override{Active: true, Goal: string(GoalBlockMiddle)}
	in := evalTree(t, trees[RoleOutside2], ctxFor(t, w, tun, SideHome, RoleOutside2))
	require.Len(t, in, 1)
	assert.Equal(t, GoalBlockMiddle, in[0].Goal)
	assert.Equal(t, SourceOverride, in[0].Source)
	assert.Equal(t, ReasonOverride, in[0].Reason)

	// An unrecognized override goal degrades to base responsibility instead
	// of failing the tree.
	oh2.Override = Override{Active: true, Goal: "sky-hook"}
	in = evalTree(t, trees[RoleOutside2], ctxFor(t, w, tun, SideHome, RoleOutside2))
	require.Len(t, in, 1)
	assert.Equal(t, GoalMaintainBase, in[0].Goal)
	assert.Equal(t, SourceOverride, in[0].Source)

	// Clearing the override hands control back to the tree immediately.
	oh2.Override = Override{}
	in = evalTree(t, trees[RoleOutside2], ctxFor(t, w, tun, SideHome, RoleOutside2))
	require.Len(t, in, 1)
	assert.Equal(t, SourceTree, in[0].Source)
}

func TestServingBranch(t *testing.T) {
	w, tun := testWorld(t)
	trees := BuildTrees()

	// Home serves, rotation 1: the setter is the designated server.
	in := evalTree(t, trees[RoleSetter], ctxFor(t, w, tun, SideHome, RoleSetter))
	require.Len(t, in, 1)
	assert.Equal(t, GoalMoveToServe, in[0].Goal)
	assert.Equal(t, ReasonDesignatedServer, in[0].Reason)

	w.Rally.Phase = PhaseServeInAir
	w.Rally.LastTouch = SideHome
	in = evalTree(t, trees[RoleSetter], ctxFor(t, w, tun, SideHome, RoleSetter))
	require.Len(t, in, 1)
	assert.Equal(t, GoalDefendBase, in[0].Goal, "server releases to defense once the serve is away")
}

// TestHitterAttacksCleanSet guards the offense path: a set flying to an
// attack lane is a structured delivery, so the intended hitter approaches
// instead of treating the ball as a broken play and chasing it down.
func TestHitterAttacksCleanSet(t *testing.T) {
	tun := DefaultTunables()
	w := NewDefaultWorld(tun, InitOptions{ServingSide: SideAway})
	w.Rally.Phase = PhaseSet
	w.Rally.TouchCount = 2
	w.Rally.LastTouch = SideHome
	w.Ball.Side = SideHome
	w.Ball.InFlight = true
	w.Ball.Landing = attackSpot(w.Court, SideHome, 0)

	ctx := ctxFor(t, w, tun, SideHome, RoleOutside1)
	require.False(t, BallLooseOnOurSide(ctx))
	in := evalTree(t, OutsideTree(), ctx)
	require.Len(t, in, 1)
	assert.Equal(t, GoalApproachAttack, in[0].Goal)
	assert.Equal(t, ReasonAttackLane, in[0].Reason)
}

// TestEveryTreeResolvesEverywhere sweeps phases, rotations and touch counts:
// whatever the situation, every active player's tree must succeed and emit
// exactly one goal from the closed enumeration.
func TestEveryTreeResolvesEverywhere(t *testing.T) {
	tun := DefaultTunables()
	trees := BuildTrees()

	for _, serving := range []TeamSide{SideHome, SideAway} {
		for rot := 1; rot <= 6; rot++ {
			w := NewDefaultWorld(tun, InitOptions{
				ServingSide: serving, RotationHome: rot, RotationAway: 7 - rot,
			})
			for _, phase := range RallyPhases {
				for _, touches := range []int{0, 1, 2, 3} {
					w.Rally.Phase = phase
					w.Rally.TouchCount = touches
					w.Rally.LastTouch = SideHome
					w.Ball.Landing = Vec2{X: 0.3, Y: 0.7}
					w.Ball.InFlight = phase != PhasePreServe && phase != PhaseBallDead
					w.Ball.Side = SideHome

					for _, p := range w.Players {
						if !p.Active {
							continue
						}
						res, visits := bt.Evaluate(trees[p.Role], &Context{World: w, Self: p, Tun: tun})
						require.Equal(t, bt.Success, res.Status,
							"%s phase=%s rot=%d touches=%d", p.ID, phase, rot, touches)
						require.Len(t, res.Emitted, 1)
						_, known := ParseGoal(string(res.Emitted[0].Goal))
						assert.True(t, known, "goal %q outside the enumeration", res.Emitted[0].Goal)
						assert.NotEmpty(t, visits)

						if phase == PhasePreServe {
							want := GoalMaintainBase
							if srv := w.ServerFor(serving); srv != nil && srv.ID == p.ID {
								want = GoalMoveToServe
							}
							assert.Equal(t, want, res.Emitted[0].Goal,
								"%s phase=%s rot=%d", p.ID, phase, rot)
						}
					}
				}
			}
		}
	}
}
