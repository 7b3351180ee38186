package term

import "fmt"

// Definition is what the global environment knows about one symbol.
// Body is nil for axioms and opaque definitions that have been sealed.
type Definition struct {
	Name   QualifiedName
	Type   Term
	Body   Term
	Opaque bool
}

// Env is the slice of the global environment this core consumes. Lookups
// are synchronous; a missing symbol is reported as an error wrapping
// ErrSymbolNotFound.
type Env interface {
	// Lookup resolves a global symbol to its definition.
	Lookup(name QualifiedName) (*Definition, error)
	// FreshInstance instantiates a global reference with fresh universe
	// and parameter metavariables, yielding a usable term.
	FreshInstance(ref GlobalRef) Term
}

// ErrSymbolNotFound reports a failed environment lookup.
var ErrSymbolNotFound = fmt.Errorf("symbol not found")

// Whd exposes weak head normalization. The occurrence classifier depends
// only on this capability, so it can be tested against a mock evaluator
// over synthetic term algebras.
type Whd interface {
	// NormalizeHead reduces t just enough to expose its outermost
	// constructor or head, without reducing inside arguments.
	NormalizeHead(t Term) Term
}

// Engine is the reduction-engine surface consumed by the numeral bridge.
// Both operations are synchronous and must not be called concurrently.
type Engine interface {
	// TypeOf computes the type of t, failing if t does not type-check.
	TypeOf(t Term) (Term, error)
	// Normalize forces t to its normal form. The term is assumed to have
	// been type-checked by the caller.
	Normalize(t Term) (Term, error)
}
