package numeral

import (
	"fmt"

	"github.com/axiom-lang/axiom/internal/term"
)

// Bridge applies a conversion function to an argument and forces the
// result to a normal form through the external reduction engine.
//
// The function term on its own is not assumed well-typed (it may be a
// partially applied conversion); only the fully applied expression is
// type-checked, and only then reduced.
type Bridge struct {
	Engine term.Engine
}

// ApplyNormalize builds fn applied to arg, type-checks the application,
// and normalizes it. Engine failures surface wrapped in ErrTyping so
// callers can decide whether to decline or to fail hard.
func (b *Bridge) ApplyNormalize(fn, arg term.Term) (term.Term, error) {
	app := term.MkApp(fn, arg)
	if _, err := b.Engine.TypeOf(app); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTyping, err)
	}
	nf, err := b.Engine.Normalize(app)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTyping, err)
	}
	return nf, nil
}
