// Package termtest provides a map-backed global environment and a small
// beta/delta/zeta evaluator, enough to exercise the numeral and implicit
// pipelines against synthetic term algebras without the real kernel.
package termtest

import (
	"fmt"

	"github.com/axiom-lang/axiom/internal/term"
)

// MapEnv is an in-memory global environment.
type MapEnv struct {
	Defs  map[term.QualifiedName]*term.Definition
	Inds  map[term.IndRef]term.Term       // arity/type of each inductive
	Ctors map[term.ConstructRef]term.Term // type of each constructor
}

// NewMapEnv returns an empty environment.
func NewMapEnv() *MapEnv {
	return &MapEnv{
		Defs:  make(map[term.QualifiedName]*term.Definition),
		Inds:  make(map[term.IndRef]term.Term),
		Ctors: make(map[term.ConstructRef]term.Term),
	}
}

// Define installs a global definition and returns its reference.
func (e *MapEnv) Define(name term.QualifiedName, ty, body term.Term) term.GlobalRef {
	e.Defs[name] = &term.Definition{Name: name, Type: ty, Body: body}
	return term.GlobalRef{Name: name}
}

// Axiom installs a bodiless global and returns its reference.
func (e *MapEnv) Axiom(name term.QualifiedName, ty term.Term) term.GlobalRef {
	e.Defs[name] = &term.Definition{Name: name, Type: ty}
	return term.GlobalRef{Name: name}
}

// Lookup implements term.Env.
func (e *MapEnv) Lookup(name term.QualifiedName) (*term.Definition, error) {
	if d, ok := e.Defs[name]; ok {
		return d, nil
	}
	return nil, fmt.Errorf("%w: %s", term.ErrSymbolNotFound, name)
}

// FreshInstance implements term.Env. The test environment has no
// universe polymorphism, so instances are plain references.
func (e *MapEnv) FreshInstance(ref term.GlobalRef) term.Term {
	return &term.Const{Ref: ref}
}

// Evaluator implements term.Whd and term.Engine over a MapEnv.
type Evaluator struct {
	Env *MapEnv
}

// NewEvaluator wraps env in an evaluator.
func NewEvaluator(env *MapEnv) *Evaluator { return &Evaluator{Env: env} }

const maxSteps = 100000

// NormalizeHead implements term.Whd: it unfolds transparent constants and
// contracts beta and zeta redexes until the head is stable.
func (ev *Evaluator) NormalizeHead(t term.Term) term.Term {
	for steps := 0; steps < maxSteps; steps++ {
		switch x := t.(type) {
		case *term.Const:
			def, err := ev.Env.Lookup(x.Ref.Name)
			if err != nil || def.Body == nil || def.Opaque {
				return t
			}
			t = def.Body
		case *term.LetIn:
			t = term.Subst1(x.Body, x.Value)
		case *term.App:
			switch h := x.Head.(type) {
			case *term.Lambda:
				contracted := term.Subst1(h.Body, x.Args[0])
				t = term.MkApp(contracted, x.Args[1:]...)
			case *term.Const:
				def, err := ev.Env.Lookup(h.Ref.Name)
				if err != nil || def.Body == nil || def.Opaque {
					return t
				}
				t = term.MkApp(def.Body, x.Args...)
			case *term.LetIn:
				t = term.MkApp(term.Subst1(h.Body, h.Value), x.Args...)
			default:
				return t
			}
		default:
			return t
		}
	}
	return t
}

// Normalize implements term.Engine: full normalization by weak head
// reduction followed by recursive descent into the remaining subterms.
func (ev *Evaluator) Normalize(t term.Term) (term.Term, error) {
	return ev.normalize(t, 0)
}

func (ev *Evaluator) normalize(t term.Term, depth int) (term.Term, error) {
	if depth > 10000 {
		return nil, fmt.Errorf("normalization did not terminate")
	}
	t = ev.NormalizeHead(t)
	switch x := t.(type) {
	case *term.App:
		args := make([]term.Term, len(x.Args))
		for i, a := range x.Args {
			na, err := ev.normalize(a, depth+1)
			if err != nil {
				return nil, err
			}
			args[i] = na
		}
		return term.MkApp(x.Head, args...), nil
	case *term.Lambda:
		body, err := ev.normalize(x.Body, depth+1)
		if err != nil {
			return nil, err
		}
		return &term.Lambda{Name: x.Name, Type: x.Type, Body: body}, nil
	case *term.Prod:
		ty, err := ev.normalize(x.Type, depth+1)
		if err != nil {
			return nil, err
		}
		body, err := ev.normalize(x.Body, depth+1)
		if err != nil {
			return nil, err
		}
		return &term.Prod{Name: x.Name, Type: ty, Body: body}, nil
	default:
		return t, nil
	}
}

// TypeOf implements term.Engine with just enough typing for the tests:
// globals, inductives and constructors carry declared types, and
// applications are checked arity-wise with a shallow head comparison on
// inductive argument types.
func (ev *Evaluator) TypeOf(t term.Term) (term.Term, error) {
	switch x := t.(type) {
	case *term.Const:
		def, err := ev.Env.Lookup(x.Ref.Name)
		if err != nil {
			return nil, err
		}
		return def.Type, nil
	case *term.Ind:
		if ty, ok := ev.Env.Inds[x.Ref]; ok {
			return ty, nil
		}
		return nil, fmt.Errorf("%w: %s", term.ErrSymbolNotFound, x.Ref.Key())
	case *term.Construct:
		if ty, ok := ev.Env.Ctors[x.Ref]; ok {
			return ty, nil
		}
		return nil, fmt.Errorf("%w: %s", term.ErrSymbolNotFound, x.Ref.Key())
	case *term.Sort:
		return &term.Sort{Universe: "Type"}, nil
	case *term.App:
		ty, err := ev.TypeOf(x.Head)
		if err != nil {
			return nil, err
		}
		for _, a := range x.Args {
			ty = ev.NormalizeHead(ty)
			prod, ok := ty.(*term.Prod)
			if !ok {
				return nil, fmt.Errorf("cannot apply term of non-function type %s", ty)
			}
			if err := ev.checkArg(prod.Type, a); err != nil {
				return nil, err
			}
			ty = term.Subst1(prod.Body, a)
		}
		return ty, nil
	default:
		return nil, fmt.Errorf("cannot type %T", t)
	}
}

// checkArg compares the declared parameter type with the argument's type,
// but only when both reduce to plain inductive heads. Everything else is
// accepted; the test engine infers rather than fully checks.
func (ev *Evaluator) checkArg(paramTy term.Term, arg term.Term) error {
	argTy, err := ev.TypeOf(arg)
	if err != nil {
		// Arguments the shallow engine cannot type are accepted.
		return nil
	}
	p, pok := ev.NormalizeHead(paramTy).(*term.Ind)
	a, aok := ev.NormalizeHead(argTy).(*term.Ind)
	if pok && aok && p.Ref != a.Ref {
		return fmt.Errorf("type mismatch: expected %s, got %s", p.Ref.Key(), a.Ref.Key())
	}
	return nil
}
