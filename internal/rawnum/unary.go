package rawnum

import (
	"fmt"
	"strings"

	"github.com/axiom-lang/axiom/internal/term"
)

// DecodeUnary reads a right-nested digit-list application chain back into
// its digit string. The bare terminator is rejected with ErrNotANumber
// rather than rendered as "0": an empty chain and a single zero digit are
// distinct values, and collapsing them would make the codec lossy.
func DecodeUnary(s UnaryShape, t term.Term) (string, error) {
	var sb strings.Builder
	for {
		head, args := term.Decompose(t)
		c, ok := head.(*term.Construct)
		if !ok {
			return "", fmt.Errorf("%w: digit list head is %T", ErrNotANumber, head)
		}
		if c.Ref == s.Nil {
			if len(args) != 0 {
				return "", fmt.Errorf("%w: terminator applied to %d arguments", ErrNotANumber, len(args))
			}
			if sb.Len() == 0 {
				return "", fmt.Errorf("%w: empty digit list", ErrNotANumber)
			}
			return sb.String(), nil
		}
		d, ok := s.digitOf(c.Ref)
		if !ok {
			return "", fmt.Errorf("%w: unrecognized constructor %s", ErrNotANumber, c.Ref.Key())
		}
		if len(args) != 1 {
			return "", fmt.Errorf("%w: digit constructor expects 1 argument, got %d", ErrNotANumber, len(args))
		}
		sb.WriteByte('0' + d)
		t = args[0]
	}
}

func (s UnaryShape) digitOf(ref term.ConstructRef) (byte, bool) {
	for d, dr := range s.Digits {
		if ref == dr {
			return byte(d), true
		}
	}
	return 0, false
}

// EncodeUnary builds the digit-list application chain for a digit string,
// folding from the last character inward over the terminator.
func EncodeUnary(s UnaryShape, digits string) (term.Term, error) {
	if digits == "" {
		return nil, fmt.Errorf("%w: empty digit string", ErrNotANumber)
	}
	var acc term.Term = &term.Construct{Ref: s.Nil}
	for i := len(digits) - 1; i >= 0; i-- {
		if digits[i] < '0' || digits[i] > '9' {
			return nil, fmt.Errorf("%w: invalid digit %q", ErrNotANumber, digits[i])
		}
		acc = term.MkApp(&term.Construct{Ref: s.Digits[digits[i]-'0']}, acc)
	}
	return acc, nil
}

// DecodeSigned reads a sign wrapper around a digit list back into a
// Number.
func DecodeSigned(s SignedShape, t term.Term) (Number, error) {
	head, args := term.Decompose(t)
	c, ok := head.(*term.Construct)
	if !ok {
		return Number{}, fmt.Errorf("%w: signed numeral head is %T", ErrNotANumber, head)
	}
	var positive bool
	switch c.Ref {
	case s.Pos:
		positive = true
	case s.Neg:
		positive = false
	default:
		return Number{}, fmt.Errorf("%w: unrecognized sign constructor %s", ErrNotANumber, c.Ref.Key())
	}
	if len(args) != 1 {
		return Number{}, fmt.Errorf("%w: sign constructor expects 1 argument, got %d", ErrNotANumber, len(args))
	}
	digits, err := DecodeUnary(s.Unary, args[0])
	if err != nil {
		return Number{}, err
	}
	return New(digits, positive)
}

// EncodeSigned builds the sign-wrapped digit-list term for a Number.
func EncodeSigned(s SignedShape, n Number) (term.Term, error) {
	inner, err := EncodeUnary(s.Unary, n.Digits)
	if err != nil {
		return nil, err
	}
	sign := s.Pos
	if !n.Positive {
		sign = s.Neg
	}
	return term.MkApp(&term.Construct{Ref: sign}, inner), nil
}
