package rawnum

import (
	"fmt"
	"math/big"

	"github.com/axiom-lang/axiom/internal/term"
)

// DecodeBinaryPositive reads a binary bit-chain term back into a strictly
// positive integer. The outermost constructor is the least significant
// bit, so the chain is folded inside out by doubling.
func DecodeBinaryPositive(s BinaryShape, t term.Term) (*big.Int, error) {
	// 1 for a twice-plus-one step, 0 for a twice step, outermost first.
	var bits []byte
	for {
		head, args := term.Decompose(t)
		c, ok := head.(*term.Construct)
		if !ok {
			return nil, fmt.Errorf("%w: binary numeral head is %T", ErrNotANumber, head)
		}
		switch c.Ref {
		case s.Top:
			if len(args) != 0 {
				return nil, fmt.Errorf("%w: top bit applied to %d arguments", ErrNotANumber, len(args))
			}
			v := big.NewInt(1)
			for i := len(bits) - 1; i >= 0; i-- {
				v.Lsh(v, 1)
				if bits[i] == 1 {
					v.Add(v, bigOne)
				}
			}
			return v, nil
		case s.TwicePlusOne, s.Twice:
			if len(args) != 1 {
				return nil, fmt.Errorf("%w: bit constructor expects 1 argument, got %d", ErrNotANumber, len(args))
			}
			if c.Ref == s.TwicePlusOne {
				bits = append(bits, 1)
			} else {
				bits = append(bits, 0)
			}
			t = args[0]
		default:
			return nil, fmt.Errorf("%w: unrecognized constructor %s", ErrNotANumber, c.Ref.Key())
		}
	}
}

var bigOne = big.NewInt(1)

// EncodeBinaryPositive builds the bit-chain term for a strictly positive
// integer, wrapping outward from the most significant bit.
func EncodeBinaryPositive(s BinaryShape, n *big.Int) (term.Term, error) {
	if n.Sign() <= 0 {
		return nil, fmt.Errorf("%w: %s is not strictly positive", ErrNotANumber, n)
	}
	var acc term.Term = &term.Construct{Ref: s.Top}
	for i := n.BitLen() - 2; i >= 0; i-- {
		if n.Bit(i) == 1 {
			acc = term.MkApp(&term.Construct{Ref: s.TwicePlusOne}, acc)
		} else {
			acc = term.MkApp(&term.Construct{Ref: s.Twice}, acc)
		}
	}
	return acc, nil
}

// DecodeSignedZ reads a three-armed integer term (zero, positive,
// negative) back into a Number with decimal digits.
func DecodeSignedZ(s ZShape, t term.Term) (Number, error) {
	head, args := term.Decompose(t)
	c, ok := head.(*term.Construct)
	if !ok {
		return Number{}, fmt.Errorf("%w: integer head is %T", ErrNotANumber, head)
	}
	switch c.Ref {
	case s.Zero:
		if len(args) != 0 {
			return Number{}, fmt.Errorf("%w: zero applied to %d arguments", ErrNotANumber, len(args))
		}
		return Number{Digits: "0", Positive: true}, nil
	case s.Pos, s.Neg:
		if len(args) != 1 {
			return Number{}, fmt.Errorf("%w: sign constructor expects 1 argument, got %d", ErrNotANumber, len(args))
		}
		v, err := DecodeBinaryPositive(s.Binary, args[0])
		if err != nil {
			return Number{}, err
		}
		return Number{Digits: v.String(), Positive: c.Ref == s.Pos}, nil
	default:
		return Number{}, fmt.Errorf("%w: unrecognized constructor %s", ErrNotANumber, c.Ref.Key())
	}
}

// EncodeSignedZ builds the three-armed integer term for a Number.
func EncodeSignedZ(s ZShape, n Number) (term.Term, error) {
	v, ok := new(big.Int).SetString(n.Digits, 10)
	if !ok {
		return nil, fmt.Errorf("%w: invalid digit string %q", ErrNotANumber, n.Digits)
	}
	if v.Sign() == 0 {
		return &term.Construct{Ref: s.Zero}, nil
	}
	inner, err := EncodeBinaryPositive(s.Binary, v)
	if err != nil {
		return nil, err
	}
	sign := s.Pos
	if !n.Positive {
		sign = s.Neg
	}
	return term.MkApp(&term.Construct{Ref: sign}, inner), nil
}
