// Package rawnum implements the bidirectional codec between raw decimal
// literals and the inductive numeral representations understood by the
// kernel: unary digit lists, signed digit lists, and arbitrary-precision
// binary integers.
package rawnum

import (
	"fmt"
	"strings"
)

// ErrNotANumber reports that an internal term does not match any
// recognized numeral shape. It is always recoverable: callers at the
// pipeline boundary convert it into a decline rather than propagating it.
var ErrNotANumber = fmt.Errorf("not a number")

// Number is a raw numeral: an ASCII digit string plus a sign. The zero
// magnitude is sign-normalized to positive, so "-0" cannot be represented.
// Leading zeros are preserved; magnitude comparison ignores them.
type Number struct {
	Digits   string
	Positive bool
}

// New builds a Number after validating the digit string. A zero magnitude
// is normalized to positive regardless of the requested sign.
func New(digits string, positive bool) (Number, error) {
	if digits == "" {
		return Number{}, fmt.Errorf("%w: empty digit string", ErrNotANumber)
	}
	for i := 0; i < len(digits); i++ {
		if digits[i] < '0' || digits[i] > '9' {
			return Number{}, fmt.Errorf("%w: invalid digit %q", ErrNotANumber, digits[i])
		}
	}
	if isZero(digits) {
		positive = true
	}
	return Number{Digits: digits, Positive: positive}, nil
}

// String renders the number the way it appeared in the surface syntax.
func (n Number) String() string {
	if n.Positive {
		return n.Digits
	}
	return "-" + n.Digits
}

// IsZero reports whether the magnitude is zero.
func (n Number) IsZero() bool { return isZero(n.Digits) }

func isZero(digits string) bool {
	return strings.Trim(digits, "0") == "" && digits != ""
}

// CompareMagnitude numerically compares two digit strings, tolerating
// leading zeros: CompareMagnitude("007", "7") == 0. It returns -1, 0 or 1.
// It is used only to evaluate warning thresholds, never for codec
// correctness.
func CompareMagnitude(a, b string) int {
	a = strings.TrimLeft(a, "0")
	b = strings.TrimLeft(b, "0")
	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
