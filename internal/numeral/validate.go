package numeral

import (
	"fmt"

	"github.com/axiom-lang/axiom/internal/term"
)

// validate type-checks both conversion functions against the supported
// shapes and assembles the immutable Spec. Nothing is installed here:
// every configuration error leaves the registry untouched.
func (r *Registry) validate(req Request) (*Spec, error) {
	to, err := r.classifyToFn(req.ToFn, req.Subject)
	if err != nil {
		return nil, err
	}
	of, err := r.classifyOfFn(req.OfFn, req.Subject)
	if err != nil {
		return nil, err
	}
	if req.Warning.Mode == WarnAbstract && to.Direct == Optional {
		// Abstraction only skips reduction for direct conversions, so
		// the threshold can never fire. Likely a misconfiguration.
		if r.sink != nil {
			r.sink.Warn(WarnCategoryConfig,
				fmt.Sprintf("abstract-above threshold has no effect: %s returns an option", req.ToFn.Name))
		}
	}
	return &Spec{
		To:      to,
		Of:      of,
		Subject: req.Subject,
		Warning: req.Warning,
		Option:  r.prims.Option,
	}, nil
}

// classifyToFn matches fn against `<numeral> -> Target` or
// `<numeral> -> option Target`, trying the unary, unsigned-unary and
// binary numeral domains in that order.
func (r *Registry) classifyToFn(fn term.GlobalRef, subject term.QualifiedName) (Conversion, error) {
	prod, err := r.functionType(fn)
	if err != nil {
		return Conversion{}, err
	}
	kind, ok := r.numeralKind(prod.Type)
	if !ok {
		return Conversion{}, r.shapeError(fn, subject)
	}
	target, direct := r.splitOption(prod.Body)
	if !r.matchesSubject(target, subject) {
		return Conversion{}, r.shapeError(fn, subject)
	}
	return Conversion{Kind: kind, Direct: direct, Fn: fn}, nil
}

// classifyOfFn matches fn against `Target -> <numeral>` or
// `Target -> option <numeral>`, with the same numeral precedence.
func (r *Registry) classifyOfFn(fn term.GlobalRef, subject term.QualifiedName) (Conversion, error) {
	prod, err := r.functionType(fn)
	if err != nil {
		return Conversion{}, err
	}
	if !r.matchesSubject(prod.Type, subject) {
		return Conversion{}, r.reverseShapeError(fn, subject)
	}
	numeral, direct := r.splitOption(prod.Body)
	kind, ok := r.numeralKind(numeral)
	if !ok {
		return Conversion{}, r.reverseShapeError(fn, subject)
	}
	return Conversion{Kind: kind, Direct: direct, Fn: fn}, nil
}

func (r *Registry) functionType(fn term.GlobalRef) (*term.Prod, error) {
	ty, err := r.notation.Bridge.Engine.TypeOf(&term.Const{Ref: fn})
	if err != nil {
		return nil, configErrorf("conversion function %s: %v", fn.Name, err)
	}
	prod, ok := r.whd.NormalizeHead(ty).(*term.Prod)
	if !ok {
		return nil, configErrorf("conversion function %s has non-function type %s", fn.Name, ty)
	}
	return prod, nil
}

// numeralKind recognizes a numeral inductive domain, in the precedence
// order unary, unsigned-unary, binary.
func (r *Registry) numeralKind(t term.Term) (TargetKind, bool) {
	ind, ok := r.whd.NormalizeHead(t).(*term.Ind)
	if !ok {
		return TargetKind{}, false
	}
	switch ind.Ref {
	case r.prims.Signed.Ind:
		return TargetKind{Family: FamilyUnary, Signed: &r.prims.Signed}, true
	case r.prims.Unsigned.Ind:
		return TargetKind{Family: FamilyUnsignedUnary, Unsigned: &r.prims.Unsigned}, true
	case r.prims.Z.Ind:
		return TargetKind{Family: FamilyBinary, Z: &r.prims.Z}, true
	default:
		return TargetKind{}, false
	}
}

// splitOption strips one option layer off a result type, reporting
// whether the conversion is Direct or Optional.
func (r *Registry) splitOption(t term.Term) (term.Term, Directness) {
	head, args := term.Decompose(r.whd.NormalizeHead(t))
	if ind, ok := head.(*term.Ind); ok && ind.Ref == r.prims.Option.Ind && len(args) == 1 {
		return args[0], Optional
	}
	return t, Direct
}

func (r *Registry) matchesSubject(t term.Term, subject term.QualifiedName) bool {
	switch x := r.whd.NormalizeHead(t).(type) {
	case *term.Ind:
		return x.Ref.Name == subject
	case *term.Const:
		return x.Ref.Name == subject
	default:
		return false
	}
}

func (r *Registry) shapeError(fn term.GlobalRef, subject term.QualifiedName) *ConfigError {
	return configErrorf(
		"conversion function %s does not have any of the expected types: %s -> %s, %s -> %s, %s -> %s, or the same shapes returning %s %s",
		fn.Name,
		r.prims.Signed.Ind.Name, subject,
		r.prims.Unsigned.Ind.Name, subject,
		r.prims.Z.Ind.Name, subject,
		r.prims.Option.Ind.Name, subject,
	)
}

func (r *Registry) reverseShapeError(fn term.GlobalRef, subject term.QualifiedName) *ConfigError {
	return configErrorf(
		"conversion function %s does not have any of the expected types: %s -> %s, %s -> %s, %s -> %s, or the same shapes returning an %s-wrapped numeral",
		fn.Name,
		subject, r.prims.Signed.Ind.Name,
		subject, r.prims.Unsigned.Ind.Name,
		subject, r.prims.Z.Ind.Name,
		r.prims.Option.Ind.Name,
	)
}
