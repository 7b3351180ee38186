package implicits

import (
	"errors"
	"fmt"

	"github.com/axiom-lang/axiom/internal/objstore"
	"github.com/axiom-lang/axiom/internal/term"
)

// JournalKindTag names implicit declarations inside the object journal.
const JournalKindTag = "implicit-arguments"

// ErrManualDischarge is the hard limitation on manually-declared
// implicits: they cannot be recomputed across a module boundary, so both
// reload and discharge reject them.
var ErrManualDischarge = errors.New("discharge of manual implicits is not supported")

// Registry maps declared symbols to their current implicit-status
// sequence. Mutation is single-writer and run-to-completion: statuses are
// computed fully before anything is installed, so a failed declaration
// leaves prior state untouched.
type Registry struct {
	engine  term.Engine
	env     term.Env
	whd     term.Whd
	journal *objstore.Journal
	table   map[string]Status
}

// NewRegistry builds an empty registry. journal may be nil when
// persistence is not wanted.
func NewRegistry(engine term.Engine, env term.Env, whd term.Whd, journal *objstore.Journal) *Registry {
	return &Registry{
		engine:  engine,
		env:     env,
		whd:     whd,
		journal: journal,
		table:   make(map[string]Status),
	}
}

// DeclareConstant computes and installs the implicit status of a global
// constant.
func (r *Registry) DeclareConstant(ref term.GlobalRef, policy Policy) error {
	return r.declareAuto(ref, policy)
}

// DeclareVariable computes and installs the implicit status of a section
// variable.
func (r *Registry) DeclareVariable(ref term.VarRef, policy Policy) error {
	return r.declareAuto(ref, policy)
}

// Declare computes and installs the implicit status of any declarable
// reference. It is the entry point used by interactive declarations.
func (r *Registry) Declare(ref term.Ref, policy Policy) error {
	return r.declareAuto(ref, policy)
}

// DeclareInductive installs statuses for an inductive family and its
// constructors, all or nothing: every status is computed before any entry
// is written.
func (r *Registry) DeclareInductive(ind term.IndRef, nctors int, policy Policy) error {
	type pending struct {
		key string
		st  Status
	}
	batch := make([]pending, 0, nctors+1)

	st, err := r.compute(ind, policy)
	if err != nil {
		return err
	}
	batch = append(batch, pending{key: ind.Key(), st: st})
	for i := 1; i <= nctors; i++ {
		ctor := term.ConstructRef{Ind: ind, Index: i}
		st, err := r.compute(ctor, policy)
		if err != nil {
			return err
		}
		batch = append(batch, pending{key: ctor.Key(), st: st})
	}
	for _, p := range batch {
		r.table[p.key] = p.st
	}
	r.append(journalRecord{
		Declare: declareInductive,
		Name:    ind.Name,
		Block:   ind.Block,
		Ctors:   nctors,
		Policy:  policy,
	})
	return nil
}

// DeclareManual installs a user-declared implicit selection over the
// automatically computed slots.
func (r *Registry) DeclareManual(ref term.Ref, policy Policy, selectors []Selector) error {
	ty, err := r.typeOfRef(ref)
	if err != nil {
		return err
	}
	st, err := ComputeManual(r.env, r.whd, policy, ty, selectors)
	if err != nil {
		return err
	}
	r.table[ref.Key()] = st
	rec, err := recordFor(ref)
	if err != nil {
		return err
	}
	rec.Declare = declareManual
	rec.Policy = policy
	rec.Selectors = selectors
	r.append(rec)
	return nil
}

// ImplicitsOf returns the declared status sequence of a symbol, empty if
// none was declared.
func (r *Registry) ImplicitsOf(ref term.Ref) Status {
	return r.table[ref.Key()]
}

// Rename moves a symbol's entry to a new identity. Values are unchanged;
// this is the pure key-rename used when the environment is relocated.
func (r *Registry) Rename(from, to term.Ref) {
	st, ok := r.table[from.Key()]
	if !ok {
		return
	}
	delete(r.table, from.Key())
	r.table[to.Key()] = st
}

// Reset drops every declaration.
func (r *Registry) Reset() {
	r.table = make(map[string]Status)
}

// Len returns the number of declared symbols.
func (r *Registry) Len() int { return len(r.table) }

func (r *Registry) declareAuto(ref term.Ref, policy Policy) error {
	st, err := r.compute(ref, policy)
	if err != nil {
		return err
	}
	r.table[ref.Key()] = st
	rec, err := recordFor(ref)
	if err != nil {
		return err
	}
	rec.Policy = policy
	r.append(rec)
	return nil
}

func (r *Registry) compute(ref term.Ref, policy Policy) (Status, error) {
	if !policy.Enabled {
		return nil, nil
	}
	ty, err := r.typeOfRef(ref)
	if err != nil {
		return nil, err
	}
	slots, err := Compute(r.env, r.whd, policy, ty)
	if err != nil {
		return nil, err
	}
	return statusOf(slots), nil
}

func (r *Registry) typeOfRef(ref term.Ref) (term.Term, error) {
	switch x := ref.(type) {
	case term.GlobalRef:
		return r.engine.TypeOf(&term.Const{Ref: x})
	case term.VarRef:
		return r.engine.TypeOf(&term.Const{Ref: term.GlobalRef{Name: x.Name}})
	case term.IndRef:
		return r.engine.TypeOf(&term.Ind{Ref: x})
	case term.ConstructRef:
		return r.engine.TypeOf(&term.Construct{Ref: x})
	default:
		return nil, fmt.Errorf("cannot declare implicits for reference %s", ref.Key())
	}
}
