package implicits

import "github.com/axiom-lang/axiom/internal/term"

// Classifier walks a type term and records, for each tracked binder, the
// strongest occurrence evidence found. Weak head normalization is an
// injected capability so the classifier can run against a mock evaluator.
//
// Strict mode refuses to look under flexible elimination positions
// (applications with a flexible head, case analyses) at all; non-strict
// mode descends but downgrades to flexible occurrences.
type Classifier struct {
	Strict bool
	Whd    term.Whd
	Env    term.Env
}

// Classify records into acc the occurrences, inside t, of the innermost
// `bound` binders of the surrounding context. acc must have at least
// `bound` entries; entry 0 is the outermost tracked binder. pos is the
// position t itself occupies in the binder chain. The result depends only
// on (Strict, t, bound): merging is associative and commutative over the
// evidence lattice, so traversal order does not matter.
func (c *Classifier) Classify(bound int, t term.Term, pos Position, acc []Evidence) {
	if bound > 0 {
		c.walk(true, 0, bound, t, pos, acc)
	}
}

func (c *Classifier) walk(rigid bool, depth, bound int, t term.Term, pos Position, acc []Evidence) {
	// Occurrences hidden behind definitional unfolding still count as
	// dependencies, so the head is normalized before inspection.
	t = c.Whd.NormalizeHead(t)
	switch x := t.(type) {
	case *term.Rel:
		if k := x.N - depth; k >= 1 && k <= bound {
			slot := bound - k
			acc[slot] = acc[slot].Merge(pos, rigid)
		}
	case *term.App:
		if rigid && c.flexibleHead(x.Head, depth, bound) {
			if c.Strict {
				return
			}
			rigid = false
		}
		c.walk(rigid, depth, bound, x.Head, pos, acc)
		for _, a := range x.Args {
			c.walk(rigid, depth, bound, a, pos, acc)
		}
	case *term.Case:
		if rigid {
			if c.Strict {
				return
			}
			rigid = false
		}
		c.walk(rigid, depth, bound, x.Scrutinee, pos, acc)
		for _, b := range x.Branches {
			c.walk(rigid, depth, bound, b, pos, acc)
		}
	case *term.Lambda:
		c.walk(rigid, depth, bound, x.Type, pos, acc)
		c.walk(rigid, depth+1, bound, x.Body, pos, acc)
	case *term.Prod:
		c.walk(rigid, depth, bound, x.Type, pos, acc)
		c.walk(rigid, depth+1, bound, x.Body, pos, acc)
	case *term.LetIn:
		c.walk(rigid, depth, bound, x.Value, pos, acc)
		c.walk(rigid, depth, bound, x.Type, pos, acc)
		c.walk(rigid, depth+1, bound, x.Body, pos, acc)
	default:
		// Const, Construct, Ind, Sort: no subterms to visit.
	}
}

// flexibleHead reports whether an application head could vanish once
// arguments are substituted: a reference to a tracked binder, or a global
// with an unfoldable body. Constructors, inductives and local variables
// (whose definitions are already expanded) are rigid.
func (c *Classifier) flexibleHead(head term.Term, depth, bound int) bool {
	switch x := head.(type) {
	case *term.Rel:
		k := x.N - depth
		return k >= 1 && k <= bound
	case *term.Const:
		if c.Env == nil {
			return false
		}
		def, err := c.Env.Lookup(x.Ref.Name)
		return err == nil && def.Body != nil && !def.Opaque
	case *term.Ind, *term.Construct:
		return false
	default:
		return true
	}
}
