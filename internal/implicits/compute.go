package implicits

import (
	"fmt"

	"github.com/axiom-lang/axiom/internal/term"
)

// Policy is the inference configuration, threaded explicitly through
// every entry point instead of living in ambient flags.
type Policy struct {
	// Enabled turns automatic implicit-argument inference on.
	Enabled bool `yaml:"enabled"`
	// Strict restricts evidence to positions that survive any
	// substitution (no descent under flexible heads).
	Strict bool `yaml:"strict"`
	// Contextual additionally mines the conclusion for evidence.
	Contextual bool `yaml:"contextual"`
}

// Slot is the computed record for one binder, in source declaration
// order.
type Slot struct {
	Name     term.Name
	Evidence Evidence
}

// Arg is the externally visible implicit status of one argument.
type Arg struct {
	Name     term.Name
	Evidence Evidence
}

// Status is the ordered implicit-status sequence of a symbol: one entry
// per binder, nil for explicit arguments.
type Status []*Arg

// Compute analyzes a function type's binder chain. Each binder's type is
// classified against the binders already crossed, at that binder's
// 1-based hypothesis position; when contextual is set, the conclusion is
// classified last against the whole chain.
func Compute(env term.Env, whd term.Whd, policy Policy, ty term.Term) ([]Slot, error) {
	cls := &Classifier{Strict: policy.Strict, Whd: whd, Env: env}
	var (
		names []term.Name
		acc   []Evidence
	)
	t := ty
	for {
		prod, ok := whd.NormalizeHead(t).(*term.Prod)
		if !ok {
			break
		}
		cls.Classify(len(acc), prod.Type, Hypothesis(len(acc)+1), acc)
		names = append(names, prod.Name)
		acc = append(acc, Evidence{})
		t = prod.Body
	}
	if policy.Contextual {
		cls.Classify(len(acc), t, Conclusion(), acc)
	}

	slots := make([]Slot, len(names))
	for i := range names {
		if names[i] == "" && acc[i].Seen() {
			return nil, &Anomaly{Msg: fmt.Sprintf("argument %d accrued dependency evidence but has no name", i+1)}
		}
		slots[i] = Slot{Name: names[i], Evidence: acc[i]}
	}
	return slots, nil
}

// Inferable decides whether an argument with the given evidence can be
// left out at a call site that supplies nargs later arguments.
// inConclusionCtx states whether the call site's expected type is known.
func Inferable(inConclusionCtx bool, nargs int, e Evidence) bool {
	switch e.Kind {
	case KindManual:
		return true
	case KindRigid:
		if e.RigidPos.IsConclusion() {
			return inConclusionCtx
		}
		return nargs >= e.RigidPos.Index()
	case KindBoth:
		if e.RigidPos.IsConclusion() {
			return false
		}
		return nargs >= e.RigidPos.Index()
	default:
		return false
	}
}

// statusOf freezes computed slots into the externally visible sequence:
// binders with evidence become implicit, the rest stay explicit.
func statusOf(slots []Slot) Status {
	st := make(Status, len(slots))
	for i, s := range slots {
		if s.Evidence.Seen() {
			st[i] = &Arg{Name: s.Name, Evidence: s.Evidence}
		}
	}
	return st
}

// Selector picks one argument in a manual implicit declaration, by name
// or by 1-based position.
type Selector struct {
	Name term.Name `yaml:"name,omitempty"`
	Pos  int       `yaml:"pos,omitempty"`
}

// ByName selects the argument bound under the given name.
func ByName(name term.Name) Selector { return Selector{Name: name} }

// ByPos selects the argument at the given 1-based position.
func ByPos(i int) Selector { return Selector{Pos: i} }

func (s Selector) String() string {
	if s.Name != "" {
		return string(s.Name)
	}
	return fmt.Sprintf("#%d", s.Pos)
}

func (s Selector) matches(index int, name term.Name) bool {
	if s.Name != "" {
		return name != "" && s.Name == name
	}
	return s.Pos == index
}

// ComputeManual recomputes automatic evidence, then overlays the user's
// selectors: each selector must match exactly one slot, a selected slot
// keeps its computed evidence (Manual when it has none), and every
// unselected slot becomes explicit.
func ComputeManual(env term.Env, whd term.Whd, policy Policy, ty term.Term, selectors []Selector) (Status, error) {
	for i := range selectors {
		for j := i + 1; j < len(selectors); j++ {
			if selectors[i] == selectors[j] {
				return nil, &ConfigError{Msg: fmt.Sprintf("argument %s is selected more than once", selectors[i])}
			}
		}
	}

	slots, err := Compute(env, whd, policy, ty)
	if err != nil {
		return nil, err
	}

	consumed := make([]bool, len(selectors))
	st := make(Status, len(slots))
	for i, slot := range slots {
		for k, sel := range selectors {
			if consumed[k] || !sel.matches(i+1, slot.Name) {
				continue
			}
			if slot.Name == "" {
				return nil, &ConfigError{Msg: fmt.Sprintf("cannot declare argument %d implicit: it has no name to display", i+1)}
			}
			ev := slot.Evidence
			if !ev.Seen() {
				ev = ManualEvidence()
			}
			st[i] = &Arg{Name: slot.Name, Evidence: ev}
			consumed[k] = true
			break
		}
	}
	for k, sel := range selectors {
		if !consumed[k] {
			return nil, &ConfigError{Msg: fmt.Sprintf("selector %s does not match any argument", sel)}
		}
	}
	return st, nil
}
