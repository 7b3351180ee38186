// Package implicits computes which arguments of a function type are
// forced by later arguments or by the expected return type, and may
// therefore be elided at call sites. It also owns the process-wide table
// of declared implicit statuses.
package implicits

import "fmt"

// Position locates one occurrence of a bound variable: inside the type of
// a later hypothesis (1-based from the start of the binder chain) or in
// the conclusion.
type Position struct {
	hyp int // 0 means conclusion
}

// Conclusion is the position of the final, non-product return type.
func Conclusion() Position { return Position{} }

// Hypothesis is the position of the i-th binder, counted from the start
// of the binder chain. i must be >= 1.
func Hypothesis(i int) Position {
	if i < 1 {
		panic(fmt.Sprintf("implicits: hypothesis index %d out of range", i))
	}
	return Position{hyp: i}
}

// IsConclusion reports whether the position is the conclusion.
func (p Position) IsConclusion() bool { return p.hyp == 0 }

// Index returns the 1-based hypothesis index; it is meaningless for the
// conclusion.
func (p Position) Index() int { return p.hyp }

// Less is the total order on positions: earlier hypotheses come first and
// every hypothesis precedes the conclusion.
func (p Position) Less(q Position) bool {
	switch {
	case p.IsConclusion():
		return false
	case q.IsConclusion():
		return true
	default:
		return p.hyp < q.hyp
	}
}

// String renders the position for error messages.
func (p Position) String() string {
	if p.IsConclusion() {
		return "the conclusion"
	}
	return fmt.Sprintf("hypothesis %d", p.hyp)
}
