package rawnum

import "github.com/axiom-lang/axiom/internal/term"

// UnaryShape identifies the constructors of a unary digit-list inductive:
// a terminator plus one constructor per decimal digit. Digits[d] carries
// digit d. The shape is resolved once, at notation registration time.
type UnaryShape struct {
	Ind    term.IndRef
	Nil    term.ConstructRef
	Digits [10]term.ConstructRef
}

// SignedShape identifies a two-armed sign wrapper around a unary digit
// list.
type SignedShape struct {
	Ind   term.IndRef
	Pos   term.ConstructRef
	Neg   term.ConstructRef
	Unary UnaryShape
}

// BinaryShape identifies the constructors of an arbitrary-precision
// strictly-positive binary inductive: Top is the most-significant 1 bit,
// Twice doubles, TwicePlusOne doubles and adds one. The outermost
// constructor of an encoded term is the least significant bit.
type BinaryShape struct {
	Ind          term.IndRef
	TwicePlusOne term.ConstructRef
	Twice        term.ConstructRef
	Top          term.ConstructRef
}

// ZShape identifies a three-armed integer wrapper (zero, positive,
// negative) around a binary positive.
type ZShape struct {
	Ind    term.IndRef
	Zero   term.ConstructRef
	Pos    term.ConstructRef
	Neg    term.ConstructRef
	Binary BinaryShape
}

// StdUnaryShape derives the conventional constructor layout for a unary
// digit-list inductive: constructor 1 is the terminator, constructors
// 2 through 11 are the digits 0 through 9.
func StdUnaryShape(ind term.IndRef) UnaryShape {
	s := UnaryShape{Ind: ind, Nil: term.ConstructRef{Ind: ind, Index: 1}}
	for d := 0; d < 10; d++ {
		s.Digits[d] = term.ConstructRef{Ind: ind, Index: d + 2}
	}
	return s
}

// StdSignedShape derives the conventional layout for a signed digit-list
// inductive: constructor 1 is positive, constructor 2 is negative.
func StdSignedShape(ind term.IndRef, unary UnaryShape) SignedShape {
	return SignedShape{
		Ind:   ind,
		Pos:   term.ConstructRef{Ind: ind, Index: 1},
		Neg:   term.ConstructRef{Ind: ind, Index: 2},
		Unary: unary,
	}
}

// StdBinaryShape derives the conventional layout for a binary positive
// inductive: constructor 1 is twice-plus-one, 2 is twice, 3 is the top bit.
func StdBinaryShape(ind term.IndRef) BinaryShape {
	return BinaryShape{
		Ind:          ind,
		TwicePlusOne: term.ConstructRef{Ind: ind, Index: 1},
		Twice:        term.ConstructRef{Ind: ind, Index: 2},
		Top:          term.ConstructRef{Ind: ind, Index: 3},
	}
}

// StdZShape derives the conventional layout for a binary integer
// inductive: constructor 1 is zero, 2 is positive, 3 is negative.
func StdZShape(ind term.IndRef, binary BinaryShape) ZShape {
	return ZShape{
		Ind:    ind,
		Zero:   term.ConstructRef{Ind: ind, Index: 1},
		Pos:    term.ConstructRef{Ind: ind, Index: 2},
		Neg:    term.ConstructRef{Ind: ind, Index: 3},
		Binary: binary,
	}
}
