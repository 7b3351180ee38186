package numeral

import (
	"fmt"

	"github.com/axiom-lang/axiom/internal/rawnum"
	"github.com/axiom-lang/axiom/internal/report"
	"github.com/axiom-lang/axiom/internal/term"
)

// Warning categories emitted while interpreting literals.
const (
	WarnCategoryLarge    = "large-number"
	WarnCategoryAbstract = "abstract-large-number"
	WarnCategoryConfig   = "numeral-notation-config"
)

// Notation evaluates registered conversion specs in both directions. It
// is a pure function of the spec and the reduction-engine snapshot; all
// state lives in the registry.
type Notation struct {
	Bridge Bridge
	Sink   report.Sink
}

// NewNotation wires an engine and a warning sink.
func NewNotation(engine term.Engine, sink report.Sink) *Notation {
	return &Notation{Bridge: Bridge{Engine: engine}, Sink: sink}
}

// Interpret translates a raw literal into an internal term under sp.
//
// Failure modes: ErrNoSuchNumber when the literal has no image (negative
// into an unsigned kind, or an Optional conversion declined),
// ErrMalformedResult on unexpected post-reduction shapes, ErrTyping when
// the built application does not type-check. All abort only this literal.
func (n *Notation) Interpret(sp *Spec, raw rawnum.Number) (term.Term, error) {
	if sp.Warning.Mode == WarnLarge && raw.Positive && sp.Warning.hits(raw.Digits) {
		n.warn(WarnCategoryLarge, fmt.Sprintf("interpreting %s, a large number (threshold %s)", raw, sp.Warning.Threshold))
	}

	encoded, err := encode(sp.To.Kind, raw)
	if err != nil {
		return nil, err
	}

	fn := &term.Const{Ref: sp.To.Fn}
	if sp.Warning.Mode == WarnAbstract && sp.To.Direct == Direct && sp.Warning.hits(raw.Digits) {
		n.warn(WarnCategoryAbstract, fmt.Sprintf("%s is above the abstraction threshold %s; leaving it unevaluated", raw, sp.Warning.Threshold))
		return term.MkApp(fn, encoded), nil
	}

	result, err := n.Bridge.ApplyNormalize(fn, encoded)
	if err != nil {
		return nil, err
	}
	if sp.To.Direct == Optional {
		return unwrapOption(sp.Option, result)
	}
	return result, nil
}

// Uninterpret translates an internal term back into a raw literal, or
// returns nil when the term is not in the notation's image. This path is
// used opportunistically by the printer, so every failure is a silent
// decline rather than an error.
func (n *Notation) Uninterpret(sp *Spec, t term.Term) *rawnum.Number {
	result, err := n.Bridge.ApplyNormalize(&term.Const{Ref: sp.Of.Fn}, t)
	if err != nil {
		return nil
	}
	if sp.Of.Direct == Optional {
		result, err = unwrapOption(sp.Option, result)
		if err != nil {
			return nil
		}
	}
	num, err := decode(sp.Of.Kind, result)
	if err != nil {
		return nil
	}
	return &num
}

func (n *Notation) warn(category, msg string) {
	if n.Sink != nil {
		n.Sink.Warn(category, msg)
	}
}

func encode(kind TargetKind, raw rawnum.Number) (term.Term, error) {
	switch kind.Family {
	case FamilyUnary:
		return rawnum.EncodeSigned(*kind.Signed, raw)
	case FamilyUnsignedUnary:
		if !raw.Positive {
			return nil, fmt.Errorf("%w: %s is negative and the target kind is unsigned", ErrNoSuchNumber, raw)
		}
		return rawnum.EncodeUnary(*kind.Unsigned, raw.Digits)
	case FamilyBinary:
		return rawnum.EncodeSignedZ(*kind.Z, raw)
	default:
		return nil, fmt.Errorf("%w: unknown target kind", ErrMalformedResult)
	}
}

func decode(kind TargetKind, t term.Term) (rawnum.Number, error) {
	switch kind.Family {
	case FamilyUnary:
		return rawnum.DecodeSigned(*kind.Signed, t)
	case FamilyUnsignedUnary:
		digits, err := rawnum.DecodeUnary(*kind.Unsigned, t)
		if err != nil {
			return rawnum.Number{}, err
		}
		return rawnum.New(digits, true)
	case FamilyBinary:
		return rawnum.DecodeSignedZ(*kind.Z, t)
	default:
		return rawnum.Number{}, fmt.Errorf("%w: unknown target kind", rawnum.ErrNotANumber)
	}
}

// unwrapOption peels the option wrapper off an Optional conversion
// result: the present arm yields its payload, the absent arm is "no such
// number", and anything else is a malformed result.
func unwrapOption(opt OptionShape, t term.Term) (term.Term, error) {
	head, args := term.Decompose(t)
	c, ok := head.(*term.Construct)
	if !ok {
		return nil, fmt.Errorf("%w: expected an option constructor, got %s", ErrMalformedResult, t)
	}
	switch c.Ref {
	case opt.Some:
		if len(args) == 0 {
			return nil, fmt.Errorf("%w: present arm carries no value", ErrMalformedResult)
		}
		return args[len(args)-1], nil
	case opt.None:
		return nil, ErrNoSuchNumber
	default:
		return nil, fmt.Errorf("%w: %s is not an option constructor", ErrMalformedResult, c.Ref.Key())
	}
}
