package bt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testCtx struct {
	flags map[string]bool
}

func flag(name string) *Node[*testCtx, string] {
	return Condition[*testCtx, string](name, func(c *testCtx) bool { return c.flags[name] })
}

func say(name, payload string) *Node[*testCtx, string] {
	return Action(name, func(*testCtx) Result[string] {
		return Result[string]{Status: Success, Emitted: []string{payload}}
	})
}

func TestSequence_StopsAtFirstFailure(t *testing.T) {
	tree := Sequence("root", say("a", "a"), flag("gate"), say("b", "b"))
	res, _ := Evaluate(tree, &testCtx{flags: map[string]bool{}})
	assert.Equal(t, Failure, res.Status)
	assert.Equal(t, []string{"a"}, res.Emitted, "emissions before the failing child are kept")
}

func TestSequence_AllSucceed(t *testing.T) {
	tree := Sequence("root", say("a", "a"), say("b", "b"))
	res, _ := Evaluate(tree, &testCtx{})
	assert.Equal(t, Success, res.Status)
	assert.Equal(t, []string{"a", "b"}, res.Emitted)
}

func TestSelector_TakesFirstNonFailure(t *testing.T) {
	tree := Selector("root",
		Sequence("first", flag("no"), say("x", "x")),
		say("second", "picked"),
		say("third", "never"),
	)
	res, _ := Evaluate(tree, &testCtx{flags: map[string]bool{}})
	assert.Equal(t, Success, res.Status)
	assert.Equal(t, []string{"picked"}, res.Emitted)
}

func TestSelector_AllFail(t *testing.T) {
	tree := Selector("root", flag("a"), flag("b"))
	res, _ := Evaluate(tree, &testCtx{flags: map[string]bool{}})
	assert.Equal(t, Failure, res.Status)
	assert.Empty(t, res.Emitted)
}

func TestDecorators(t *testing.T) {
	ctx := &testCtx{flags: map[string]bool{}}

	res, _ := Evaluate(Yield[*testCtx, string]("noop"), ctx)
	assert.Equal(t, Success, res.Status)
	assert.Equal(t, "yield", res.Note)

	failing := Sequence("fails", flag("never"), say("x", "x"))
	res, _ = Evaluate(Decorate("force", DecorateForceSuccess, failing), ctx)
	assert.Equal(t, Success, res.Status, "force-success masks the child failure")

	res, _ = Evaluate(Decorate("invert", DecorateInvert, failing), ctx)
	assert.Equal(t, Success, res.Status)
	res, _ = Evaluate(Decorate("invert", DecorateInvert, say("ok", "ok")), ctx)
	assert.Equal(t, Failure, res.Status)
}

func TestEvaluate_VisitTraceOrder(t *testing.T) {
	tree := Selector("root",
		Sequence("branch", flag("gate"), say("act", "a")),
		say("fallback", "f"),
	)
	_, visits := Evaluate(tree, &testCtx{flags: map[string]bool{"gate": true}})

	var names []string
	for _, v := range visits {
		names = append(names, v.Name)
	}
	// children finish before their parents
	require.Equal(t, []string{"gate", "act", "branch", "root"}, names)
	assert.Equal(t, "condition", visits[0].Kind)
	assert.Equal(t, "success", visits[0].Status)
}

func TestStatusAndKindStrings(t *testing.T) {
	assert.Equal(t, "success", Success.String())
	assert.Equal(t, "failure", Failure.String())
	assert.Equal(t, "running", Running.String())
	assert.Equal(t, "selector", KindSelector.String())
	assert.Equal(t, "decorator", KindDecorator.String())
}
