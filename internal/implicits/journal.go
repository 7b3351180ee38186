package implicits

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/axiom-lang/axiom/internal/objstore"
	"github.com/axiom-lang/axiom/internal/term"
)

const (
	declareConstant  = "constant"
	declareVariable  = "variable"
	declareInductive = "inductive"
	declareConstruct = "constructor"
	declareManual    = "manual"
)

// journalRecord is the persisted form of one declaration. Statuses are
// not stored: reload recomputes them from the policy and the symbol's
// type, so a record is a pure function description of its mutation.
type journalRecord struct {
	Declare   string     `yaml:"declare"`
	Name      string     `yaml:"name"`
	Block     int        `yaml:"block,omitempty"`
	Index     int        `yaml:"index,omitempty"`
	Ctors     int        `yaml:"ctors,omitempty"`
	Policy    Policy     `yaml:"policy"`
	Selectors []Selector `yaml:"selectors,omitempty"`
}

func recordFor(ref term.Ref) (journalRecord, error) {
	switch x := ref.(type) {
	case term.GlobalRef:
		return journalRecord{Declare: declareConstant, Name: x.Name}, nil
	case term.VarRef:
		return journalRecord{Declare: declareVariable, Name: x.Name}, nil
	case term.IndRef:
		return journalRecord{Declare: declareInductive, Name: x.Name, Block: x.Block}, nil
	case term.ConstructRef:
		return journalRecord{Declare: declareConstruct, Name: x.Ind.Name, Block: x.Ind.Block, Index: x.Index}, nil
	default:
		return journalRecord{}, fmt.Errorf("cannot persist declaration for reference %s", ref.Key())
	}
}

func (rec journalRecord) ref() (term.Ref, error) {
	switch rec.Declare {
	case declareConstant:
		return term.GlobalRef{Name: rec.Name}, nil
	case declareVariable:
		return term.VarRef{Name: rec.Name}, nil
	case declareConstruct:
		return term.ConstructRef{Ind: term.IndRef{Name: rec.Name, Block: rec.Block}, Index: rec.Index}, nil
	default:
		return nil, fmt.Errorf("record kind %q carries no single reference", rec.Declare)
	}
}

func (r *Registry) append(rec journalRecord) {
	if r.journal == nil {
		return
	}
	payload, err := yaml.Marshal(rec)
	if err != nil {
		// journalRecord is a flat struct of plain fields; Marshal
		// cannot fail on it.
		panic(err)
	}
	r.journal.Append(JournalKindTag, string(payload))
}

// JournalKind wires the registry into the persistent object store.
// Reload recomputes every automatic declaration from its recorded policy
// and the live symbol; manually-declared entries are rejected, a hard
// limitation carried over from the declaration model.
func (r *Registry) JournalKind() objstore.Kind {
	return objstore.Kind{
		Tag: JournalKindTag,
		Load: func(payload string) error {
			var rec journalRecord
			if err := yaml.Unmarshal([]byte(payload), &rec); err != nil {
				return fmt.Errorf("decoding implicit declaration: %w", err)
			}
			return r.reload(rec)
		},
		Substitute: func(payload string, rename map[string]string) (string, error) {
			var rec journalRecord
			if err := yaml.Unmarshal([]byte(payload), &rec); err != nil {
				return "", fmt.Errorf("decoding implicit declaration: %w", err)
			}
			if name, ok := rename[rec.Name]; ok {
				rec.Name = name
			}
			out, err := yaml.Marshal(rec)
			if err != nil {
				return "", err
			}
			return string(out), nil
		},
		Discharge: func(payload string) (string, error) {
			var rec journalRecord
			if err := yaml.Unmarshal([]byte(payload), &rec); err != nil {
				return "", fmt.Errorf("decoding implicit declaration: %w", err)
			}
			if rec.Declare == declareManual {
				return "", ErrManualDischarge
			}
			return payload, nil
		},
	}
}

func (r *Registry) reload(rec journalRecord) error {
	switch rec.Declare {
	case declareManual:
		return ErrManualDischarge
	case declareInductive:
		ind := term.IndRef{Name: rec.Name, Block: rec.Block}
		st, err := r.compute(ind, rec.Policy)
		if err != nil {
			return err
		}
		batch := map[string]Status{ind.Key(): st}
		for i := 1; i <= rec.Ctors; i++ {
			ctor := term.ConstructRef{Ind: ind, Index: i}
			st, err := r.compute(ctor, rec.Policy)
			if err != nil {
				return err
			}
			batch[ctor.Key()] = st
		}
		for k, v := range batch {
			r.table[k] = v
		}
		return nil
	default:
		ref, err := rec.ref()
		if err != nil {
			return err
		}
		st, err := r.compute(ref, rec.Policy)
		if err != nil {
			return err
		}
		r.table[ref.Key()] = st
		return nil
	}
}
