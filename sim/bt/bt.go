// Package bt provides the generic behavior tree core used by the per-role
// decision trees. It has no dependencies on sim/: node kinds are a closed
// tagged union and evaluation is a single exhaustive switch, so tree
// construction is pure data building and evaluation is a pure function of
// (node, context). The package is generic over the context type C and the
// payload type P emitted by action leaves.
package bt

import "fmt"

// Status is the result of evaluating a behavior tree node.
type Status int

const (
	// Failure means the node's condition did not hold or all of a
	// selector's children failed.
	Failure Status = iota
	// Success means the node resolved.
	Success
	// Running is part of the node contract but unused across ticks: trees
	// are re-evaluated from the root every tick with no persisted per-node
	// continuation.
	Running
)

// String returns the human-readable status name.
func (s Status) String() string {
	switch s {
	case Failure:
		return "failure"
	case Success:
		return "success"
	case Running:
		return "running"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// Kind identifies the node variant. The set is closed; Evaluate switches
// exhaustively over it.
type Kind int

const (
	KindSequence Kind = iota
	KindSelector
	KindCondition
	KindAction
	KindDecorator
)

// String returns the node kind name.
func (k Kind) String() string {
	switch k {
	case KindSequence:
		return "sequence"
	case KindSelector:
		return "selector"
	case KindCondition:
		return "condition"
	case KindAction:
		return "action"
	case KindDecorator:
		return "decorator"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// DecoratorKind selects the behavior of a decorator node.
type DecoratorKind int

const (
	// DecorateYield evaluates its child (if any), discards the status and
	// always succeeds: "no override, defer to default movement".
	DecorateYield DecoratorKind = iota
	// DecorateForceSuccess evaluates its child, keeps its emissions and
	// forces success. Used to synthesize a goal request without a
	// condition gate.
	DecorateForceSuccess
	// DecorateInvert swaps success and failure; running passes through.
	DecorateInvert
)

// Result is what an action leaf (and, transitively, any node) produces.
type Result[P any] struct {
	Status  Status
	Emitted []P    // payloads emitted by action leaves, in evaluation order
	Note    string // optional free-form note attached by the leaf
}

// Node is one node in a behavior tree. Exactly one of the variant fields is
// meaningful, selected by Kind. Nodes are immutable after construction and
// safe to share across evaluations.
type Node[C, P any] struct {
	Kind     Kind
	Name     string
	Children []*Node[C, P]    // Sequence, Selector
	Pred     func(C) bool     // Condition
	Act      func(C) Result[P] // Action
	Decor    DecoratorKind    // Decorator; child is Children[0]
}

// Visit records one node evaluation for explainability tooling. Visits are
// appended in the order nodes finish evaluating.
type Visit struct {
	Name   string `json:"node"`
	Kind   string `json:"kind"`
	Status string `json:"status"`
}

// Sequence evaluates children in order, stopping at the first non-success
// status; succeeds only if all children succeed.
func Sequence[C, P any](name string, children ...*Node[C, P]) *Node[C, P] {
	return &Node[C, P]{Kind: KindSequence, Name: name, Children: children}
}

// Selector evaluates children in order, stopping at the first non-failure
// status; fails only if all children fail.
func Selector[C, P any](name string, children ...*Node[C, P]) *Node[C, P] {
	return &Node[C, P]{Kind: KindSelector, Name: name, Children: children}
}

// Condition wraps a named pure predicate. It returns success or failure,
// never running.
func Condition[C, P any](name string, pred func(C) bool) *Node[C, P] {
	return &Node[C, P]{Kind: KindCondition, Name: name, Pred: pred}
}

// Action wraps a named leaf that may emit zero or more payloads.
func Action[C, P any](name string, act func(C) Result[P]) *Node[C, P] {
	return &Node[C, P]{Kind: KindAction, Name: name, Act: act}
}

// Decorate wraps a single child with the given decorator behavior.
func Decorate[C, P any](name string, kind DecoratorKind, child *Node[C, P]) *Node[C, P] {
	return &Node[C, P]{Kind: KindDecorator, Name: name, Decor: kind, Children: []*Node[C, P]{child}}
}

// Yield builds a decorator that always succeeds without emitting anything,
// signalling "defer to default movement".
func Yield[C, P any](name string) *Node[C, P] {
	return &Node[C, P]{Kind: KindDecorator, Name: name, Decor: DecorateYield}
}

// Evaluate walks the tree rooted at n against ctx. It is synchronous and
// side-effect free: the only outputs are the Result and the visit trace.
// Trees must terminate in finite depth; authors are responsible for this
// (no cycle detection is performed).
func Evaluate[C, P any](n *Node[C, P], ctx C) (Result[P], []Visit) {
	var visits []Visit
	res := eval(n, ctx, &visits)
	return res, visits
}

func eval[C, P any](n *Node[C, P], ctx C, visits *[]Visit) Result[P] {
	var res Result[P]

	switch n.Kind {
	case KindSequence:
		res.Status = Success
		for _, child := range n.Children {
			cr := eval(child, ctx, visits)
			res.Emitted = append(res.Emitted, cr.Emitted...)
			if cr.Status != Success {
				res.Status = cr.Status
				break
			}
		}

	case KindSelector:
		res.Status = Failure
		for _, child := range n.Children {
			cr := eval(child, ctx, visits)
			if cr.Status != Failure {
				res.Status = cr.Status
				res.Emitted = append(res.Emitted, cr.Emitted...)
				res.Note = cr.Note
				break
			}
		}

	case KindCondition:
		if n.Pred(ctx) {
			res.Status = Success
		} else {
			res.Status = Failure
		}

	case KindAction:
		res = n.Act(ctx)

	case KindDecorator:
		var cr Result[P]
		if len(n.Children) > 0 {
			cr = eval(n.Children[0], ctx, visits)
		}
		switch n.Decor {
		case DecorateYield:
			res.Status = Success
			res.Note = "yield"
		case DecorateForceSuccess:
			res = cr
			res.Status = Success
		case DecorateInvert:
			res = cr
			switch cr.Status {
			case Success:
				res.Status = Failure
			case Failure:
				res.Status = Success
			}
		}
	}

	*visits = append(*visits, Visit{Name: n.Name, Kind: n.Kind.String(), Status: res.Status.String()})
	return res
}
