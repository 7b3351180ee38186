// Package numeral implements numeral-literal notations: user-registered
// conversion functions, evaluated by the kernel reduction engine, that
// translate between raw decimal literals and a target type's values.
package numeral

import (
	"fmt"
	"strings"

	"github.com/axiom-lang/axiom/internal/rawnum"
	"github.com/axiom-lang/axiom/internal/term"
)

// Family selects which inductive numeral representation a conversion
// function consumes or produces.
type Family int

const (
	// FamilyUnary is the signed decimal digit-list representation.
	FamilyUnary Family = iota
	// FamilyUnsignedUnary is the unsigned decimal digit-list
	// representation; negative literals have no image in it.
	FamilyUnsignedUnary
	// FamilyBinary is the arbitrary-precision binary integer
	// representation.
	FamilyBinary
)

// String returns the family name used in identities and error messages.
func (f Family) String() string {
	switch f {
	case FamilyUnary:
		return "unary"
	case FamilyUnsignedUnary:
		return "unsigned-unary"
	case FamilyBinary:
		return "binary"
	default:
		return "unknown"
	}
}

// Directness states whether a conversion function returns the target
// value directly or wrapped in an option.
type Directness int

const (
	// Direct conversions return the target value itself.
	Direct Directness = iota
	// Optional conversions return an option of the target value; the
	// absent arm means "no such number".
	Optional
)

// String returns the directness name used in identities.
func (d Directness) String() string {
	if d == Optional {
		return "optional"
	}
	return "direct"
}

// WarnMode selects a warning policy for large literals.
type WarnMode int

const (
	// WarnNever disables size warnings.
	WarnNever WarnMode = iota
	// WarnLarge warns when a non-negative literal reaches the
	// threshold, then interprets normally.
	WarnLarge
	// WarnAbstract warns when a literal reaches the threshold and
	// skips reduction, returning the unevaluated conversion
	// application instead. An escape hatch for literals large enough
	// to make evaluation expensive or crash-prone.
	WarnAbstract
)

// String returns the mode name used in identities.
func (m WarnMode) String() string {
	switch m {
	case WarnLarge:
		return "warn-above"
	case WarnAbstract:
		return "abstract-above"
	default:
		return "none"
	}
}

// WarningPolicy is a warn mode plus its decimal threshold.
type WarningPolicy struct {
	Mode      WarnMode `yaml:"mode"`
	Threshold string   `yaml:"threshold,omitempty"`
}

func (w WarningPolicy) hits(digits string) bool {
	return w.Mode != WarnNever && rawnum.CompareMagnitude(digits, w.Threshold) >= 0
}

// OptionShape identifies the two-constructor option wrapper used by
// Optional conversions.
type OptionShape struct {
	Ind  term.IndRef
	Some term.ConstructRef
	None term.ConstructRef
}

// TargetKind is a numeral family together with the constructor shapes of
// its inductives. Exactly one of the shape fields is set, matching Family.
type TargetKind struct {
	Family   Family
	Signed   *rawnum.SignedShape `yaml:"signed,omitempty"`
	Unsigned *rawnum.UnaryShape  `yaml:"unsigned,omitempty"`
	Z        *rawnum.ZShape      `yaml:"z,omitempty"`
}

// Conversion is one direction of a notation: the numeral kind, the
// directness of the function's result, and the function itself.
type Conversion struct {
	Kind   TargetKind
	Direct Directness
	Fn     term.GlobalRef
}

// Spec is a registered numeral notation. Immutable after construction;
// owned by the registry and keyed by Key.
type Spec struct {
	To      Conversion
	Of      Conversion
	Subject term.QualifiedName
	Warning WarningPolicy
	Option  OptionShape
}

// Key returns the notation's stable identity: a deterministic rendering
// of every distinguishing field. Two registrations with identical
// semantics collide on it, and the later one overwrites the earlier.
func (sp *Spec) Key() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "to=%s/%s/%s;", sp.To.Kind.Family, sp.To.Direct, sp.To.Fn.Name)
	fmt.Fprintf(&sb, "of=%s/%s/%s;", sp.Of.Kind.Family, sp.Of.Direct, sp.Of.Fn.Name)
	fmt.Fprintf(&sb, "subject=%s;warning=%s", sp.Subject, sp.Warning.Mode)
	if sp.Warning.Mode != WarnNever {
		fmt.Fprintf(&sb, "/%s", sp.Warning.Threshold)
	}
	return sb.String()
}
