package termtest

import (
	"github.com/axiom-lang/axiom/internal/rawnum"
	"github.com/axiom-lang/axiom/internal/term"
)

// Prelude is a ready-made environment carrying the standard numeral
// inductives (unary digit lists, signed digit lists, binary positives and
// integers) and a two-constructor option wrapper.
type Prelude struct {
	Env  *MapEnv
	Eval *Evaluator

	Uint     rawnum.UnaryShape
	Int      rawnum.SignedShape
	Positive rawnum.BinaryShape
	Z        rawnum.ZShape

	OptionInd  term.IndRef
	OptionSome term.ConstructRef
	OptionNone term.ConstructRef
}

// NewPrelude builds the standard environment.
func NewPrelude() *Prelude {
	env := NewMapEnv()
	p := &Prelude{Env: env, Eval: NewEvaluator(env)}

	set := &term.Sort{Universe: "Set"}
	typ := &term.Sort{Universe: "Type"}

	uintInd := term.IndRef{Name: "Prelude.Decimal.uint"}
	p.Uint = rawnum.StdUnaryShape(uintInd)
	env.Inds[uintInd] = set
	uintTy := &term.Ind{Ref: uintInd}
	env.Ctors[p.Uint.Nil] = uintTy
	for d := 0; d < 10; d++ {
		env.Ctors[p.Uint.Digits[d]] = &term.Prod{Type: uintTy, Body: uintTy}
	}

	intInd := term.IndRef{Name: "Prelude.Decimal.int"}
	p.Int = rawnum.StdSignedShape(intInd, p.Uint)
	env.Inds[intInd] = set
	intTy := &term.Ind{Ref: intInd}
	env.Ctors[p.Int.Pos] = &term.Prod{Type: uintTy, Body: intTy}
	env.Ctors[p.Int.Neg] = &term.Prod{Type: uintTy, Body: intTy}

	posInd := term.IndRef{Name: "Prelude.BinNums.positive"}
	p.Positive = rawnum.StdBinaryShape(posInd)
	env.Inds[posInd] = set
	posTy := &term.Ind{Ref: posInd}
	env.Ctors[p.Positive.TwicePlusOne] = &term.Prod{Type: posTy, Body: posTy}
	env.Ctors[p.Positive.Twice] = &term.Prod{Type: posTy, Body: posTy}
	env.Ctors[p.Positive.Top] = posTy

	zInd := term.IndRef{Name: "Prelude.BinNums.Z"}
	p.Z = rawnum.StdZShape(zInd, p.Positive)
	env.Inds[zInd] = set
	zTy := &term.Ind{Ref: zInd}
	env.Ctors[p.Z.Zero] = zTy
	env.Ctors[p.Z.Pos] = &term.Prod{Type: posTy, Body: zTy}
	env.Ctors[p.Z.Neg] = &term.Prod{Type: posTy, Body: zTy}

	p.OptionInd = term.IndRef{Name: "Prelude.Datatypes.option"}
	p.OptionSome = term.ConstructRef{Ind: p.OptionInd, Index: 1}
	p.OptionNone = term.ConstructRef{Ind: p.OptionInd, Index: 2}
	env.Inds[p.OptionInd] = &term.Prod{Name: "A", Type: typ, Body: typ}
	optOf := func(t term.Term) term.Term {
		return term.MkApp(&term.Ind{Ref: p.OptionInd}, t)
	}
	env.Ctors[p.OptionSome] = &term.Prod{
		Name: "A",
		Type: typ,
		Body: &term.Prod{Type: &term.Rel{N: 1}, Body: optOf(&term.Rel{N: 2})},
	}
	env.Ctors[p.OptionNone] = &term.Prod{Name: "A", Type: typ, Body: optOf(&term.Rel{N: 1})}

	return p
}

// OptionOf applies the option inductive to an element type.
func (p *Prelude) OptionOf(t term.Term) term.Term {
	return term.MkApp(&term.Ind{Ref: p.OptionInd}, t)
}

// Some wraps v : ty in the option's present arm.
func (p *Prelude) Some(ty, v term.Term) term.Term {
	return term.MkApp(&term.Construct{Ref: p.OptionSome}, ty, v)
}

// None is the option's absent arm at element type ty.
func (p *Prelude) None(ty term.Term) term.Term {
	return term.MkApp(&term.Construct{Ref: p.OptionNone}, ty)
}

// IdentityFn installs a definition `name : dom -> dom := fun x => x` and
// returns its reference. Handy for identity-shaped conversion functions.
func (p *Prelude) IdentityFn(name term.QualifiedName, dom term.Term) term.GlobalRef {
	return p.Env.Define(name,
		&term.Prod{Name: "x", Type: dom, Body: term.Lift(dom, 1, 1)},
		&term.Lambda{Name: "x", Type: dom, Body: &term.Rel{N: 1}},
	)
}
