package numeral

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/axiom-lang/axiom/internal/objstore"
	"github.com/axiom-lang/axiom/internal/rawnum"
	"github.com/axiom-lang/axiom/internal/report"
	"github.com/axiom-lang/axiom/internal/term"
)

// JournalKindTag names notation registrations inside the object journal.
const JournalKindTag = "numeral-notation"

// InterpretFn and UninterpretFn are the closures handed to the surface
// syntax so it can parse and print literals in a notation scope.
type (
	InterpretFn   func(raw rawnum.Number) (term.Term, error)
	UninterpretFn func(t term.Term) *rawnum.Number
)

// SyntaxBridge is the surface-syntax collaborator. Bind is called exactly
// once per notation identity; requires lists the symbols that must be
// loaded before the notation is usable.
type SyntaxBridge interface {
	Bind(key string, interp InterpretFn, uninterp UninterpretFn, requires []term.GlobalRef)
}

// Primitives holds the numeral inductive shapes and the option wrapper,
// resolved once from symbol names when the registry is built.
type Primitives struct {
	Signed   rawnum.SignedShape
	Unsigned rawnum.UnaryShape
	Z        rawnum.ZShape
	Option   OptionShape
}

// Request is a notation registration as written by the user: two
// conversion functions, the subject type, and a warning policy. Kinds and
// directness are inferred from the functions' types during validation.
type Request struct {
	ToFn    term.GlobalRef     `yaml:"to_fn"`
	OfFn    term.GlobalRef     `yaml:"of_fn"`
	Subject term.QualifiedName `yaml:"subject"`
	Warning WarningPolicy      `yaml:"warning"`
}

// Registry owns the registered notations. Mutation is single-writer and
// run-to-completion: Register validates fully before installing, so a
// failed registration leaves no trace.
type Registry struct {
	notation *Notation
	whd      term.Whd
	sink     report.Sink
	prims    Primitives
	syntax   SyntaxBridge
	journal  *objstore.Journal

	specs map[string]*Spec
	order []string
	bound map[string]bool
}

// NewRegistry builds an empty registry. syntax and journal may be nil
// when surface binding or persistence is not wanted (tests, tooling).
func NewRegistry(engine term.Engine, whd term.Whd, sink report.Sink, prims Primitives, syntax SyntaxBridge, journal *objstore.Journal) *Registry {
	return &Registry{
		notation: NewNotation(engine, sink),
		whd:      whd,
		sink:     sink,
		prims:    prims,
		syntax:   syntax,
		journal:  journal,
		specs:    make(map[string]*Spec),
		bound:    make(map[string]bool),
	}
}

// Register validates a request, installs the resulting spec under its
// identity (overwriting any previous registration with the same
// identity), declares it to the surface syntax once, and journals it.
// Returns the identity.
func (r *Registry) Register(req Request) (string, error) {
	sp, err := r.validate(req)
	if err != nil {
		return "", err
	}
	key := r.install(sp)
	if r.journal != nil {
		payload, err := yaml.Marshal(req)
		if err != nil {
			return "", fmt.Errorf("encoding notation registration: %w", err)
		}
		r.journal.Append(JournalKindTag, string(payload))
	}
	return key, nil
}

func (r *Registry) install(sp *Spec) string {
	key := sp.Key()
	if _, seen := r.specs[key]; !seen {
		r.order = append(r.order, key)
	}
	r.specs[key] = sp
	if r.syntax != nil && !r.bound[key] {
		r.syntax.Bind(key,
			func(raw rawnum.Number) (term.Term, error) { return r.InterpretLiteral(key, raw) },
			func(t term.Term) *rawnum.Number { return r.UninterpretLiteral(key, t) },
			[]term.GlobalRef{sp.To.Fn, sp.Of.Fn},
		)
		r.bound[key] = true
	}
	return key
}

// InterpretLiteral interprets a raw literal under the notation registered
// at the given identity.
func (r *Registry) InterpretLiteral(key string, raw rawnum.Number) (term.Term, error) {
	sp, ok := r.specs[key]
	if !ok {
		return nil, configErrorf("no numeral notation registered under %q", key)
	}
	return r.notation.Interpret(sp, raw)
}

// UninterpretLiteral renders a term back into a raw literal, or nil when
// the term is outside the notation's image.
func (r *Registry) UninterpretLiteral(key string, t term.Term) *rawnum.Number {
	sp, ok := r.specs[key]
	if !ok {
		return nil
	}
	return r.notation.Uninterpret(sp, t)
}

// Spec returns the registered spec for an identity.
func (r *Registry) Spec(key string) (*Spec, bool) {
	sp, ok := r.specs[key]
	return sp, ok
}

// Keys returns the registered identities in first-registration order.
func (r *Registry) Keys() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Reset drops every registration.
func (r *Registry) Reset() {
	r.specs = make(map[string]*Spec)
	r.bound = make(map[string]bool)
	r.order = nil
}

// JournalKind wires the registry into the persistent object store.
// Replayed entries are re-validated and re-installed without being
// journaled again, so re-registration after reload is idempotent.
func (r *Registry) JournalKind() objstore.Kind {
	return objstore.Kind{
		Tag: JournalKindTag,
		Load: func(payload string) error {
			var req Request
			if err := yaml.Unmarshal([]byte(payload), &req); err != nil {
				return fmt.Errorf("decoding notation registration: %w", err)
			}
			sp, err := r.validate(req)
			if err != nil {
				return err
			}
			r.install(sp)
			return nil
		},
		Substitute: func(payload string, rename map[string]string) (string, error) {
			var req Request
			if err := yaml.Unmarshal([]byte(payload), &req); err != nil {
				return "", fmt.Errorf("decoding notation registration: %w", err)
			}
			if to, ok := rename[req.ToFn.Name]; ok {
				req.ToFn.Name = to
			}
			if of, ok := rename[req.OfFn.Name]; ok {
				req.OfFn.Name = of
			}
			if subj, ok := rename[req.Subject]; ok {
				req.Subject = subj
			}
			out, err := yaml.Marshal(req)
			if err != nil {
				return "", err
			}
			return string(out), nil
		},
	}
}
