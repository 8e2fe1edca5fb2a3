package sim

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/volleysim/volleysim/sim/bt"
)

// testWorld builds a default world (home serving, rotation 1 both sides)
// with default tunables.
func testWorld(t *testing.T) (*WorldState, *Tunables) {
	t.Helper()
	tun := DefaultTunables()
	return NewDefaultWorld(tun, InitOptions{}), tun
}

// ctxFor builds an evaluation context for the side's player in a role,
// failing the test if that player is missing.
func ctxFor(t *testing.T, w *WorldState, tun *Tunables, side TeamSide, role Role) *Context {
	t.Helper()
	p := w.PlayerByRole(side, role)
	require.NotNil(t, p, "player %s/%s", side, role)
	return &Context{World: w, Self: p, Tun: tun}
}

// evalTree evaluates a role tree for a player and returns the emitted
// intents, requiring overall success.
func evalTree(t *testing.T, tree *node, ctx *Context) []Intent {
	t.Helper()
	res, _ := bt.Evaluate(tree, ctx)
	require.Equal(t, bt.Success, res.Status, "tree root must resolve for %s", ctx.Self.ID)
	require.NotEmpty(t, res.Emitted, "tree must emit an intent for %s", ctx.Self.ID)
	return res.Emitted
}
