// Package term defines the kernel term representation shared by the
// numeral-notation and implicit-argument subsystems, together with the
// interfaces through which those subsystems reach the surrounding
// environment and reduction engine.
//
// Terms use 1-based de Bruijn indices: Rel{1} refers to the innermost
// enclosing binder. Applications are kept flattened (the head of an App is
// never itself an App); MkApp maintains that invariant.
package term

import (
	"fmt"
	"strings"
)

// Name is a binder name. The empty string is the anonymous binder.
type Name = string

// QualifiedName is a dot-joined path identifying a global symbol,
// e.g. "Prelude.Decimal.uint".
type QualifiedName = string

// GlobalRef identifies a global definition (a constant or section variable).
type GlobalRef struct {
	Name QualifiedName
}

// IndRef identifies one inductive type inside a (possibly mutual) block.
type IndRef struct {
	Name  QualifiedName
	Block int
}

// ConstructRef identifies a constructor of an inductive type. Index is
// 1-based, in declaration order.
type ConstructRef struct {
	Ind   IndRef
	Index int
}

// Key returns a stable textual identity for the reference, usable as a
// table key across process restarts.
func (r GlobalRef) Key() string { return "const:" + r.Name }

// Key returns a stable textual identity for the reference.
func (r IndRef) Key() string { return fmt.Sprintf("ind:%s#%d", r.Name, r.Block) }

// Key returns a stable textual identity for the reference.
func (r ConstructRef) Key() string {
	return fmt.Sprintf("ctor:%s#%d.%d", r.Ind.Name, r.Ind.Block, r.Index)
}

// VarRef identifies a section variable. Section variables occur in terms
// as constants; the distinct reference kind only keys declaration tables.
type VarRef struct {
	Name QualifiedName
}

// Key returns a stable textual identity for the reference.
func (r VarRef) Key() string { return "var:" + r.Name }

// Ref is any declarable symbol reference.
type Ref interface {
	Key() string
}

// Term is the sealed interface over kernel term shapes.
type Term interface {
	isTerm()
	String() string
}

// Rel is a bound-variable reference by de Bruijn index (1-based).
type Rel struct {
	N int
}

// Const references a global definition.
type Const struct {
	Ref GlobalRef
}

// Construct references an inductive constructor.
type Construct struct {
	Ref ConstructRef
}

// Ind references an inductive type.
type Ind struct {
	Ref IndRef
}

// Sort is a type universe.
type Sort struct {
	Universe string
}

// App is an n-ary application. Head is never itself an *App.
type App struct {
	Head Term
	Args []Term
}

// Lambda is a typed abstraction binding one variable.
type Lambda struct {
	Name Name
	Type Term
	Body Term
}

// Prod is a dependent product (function type) binding one variable.
type Prod struct {
	Name Name
	Type Term
	Body Term
}

// LetIn binds a definition inside a term.
type LetIn struct {
	Name  Name
	Value Term
	Type  Term
	Body  Term
}

// Case is a case analysis over an inductive scrutinee. Branch bodies are
// kept positionally; this core never evaluates them, it only needs to
// recognize the shape.
type Case struct {
	Scrutinee Term
	Branches  []Term
}

func (*Rel) isTerm()       {}
func (*Const) isTerm()     {}
func (*Construct) isTerm() {}
func (*Ind) isTerm()       {}
func (*Sort) isTerm()      {}
func (*App) isTerm()       {}
func (*Lambda) isTerm()    {}
func (*Prod) isTerm()      {}
func (*LetIn) isTerm()     {}
func (*Case) isTerm()      {}

func (t *Rel) String() string       { return fmt.Sprintf("#%d", t.N) }
func (t *Const) String() string     { return t.Ref.Name }
func (t *Construct) String() string { return t.Ref.Key() }
func (t *Ind) String() string       { return t.Ref.Name }
func (t *Sort) String() string      { return t.Universe }

func (t *App) String() string {
	var sb strings.Builder
	sb.WriteString("(")
	sb.WriteString(t.Head.String())
	for _, a := range t.Args {
		sb.WriteString(" ")
		sb.WriteString(a.String())
	}
	sb.WriteString(")")
	return sb.String()
}

func (t *Lambda) String() string {
	return fmt.Sprintf("(fun %s : %s => %s)", displayName(t.Name), t.Type, t.Body)
}

func (t *Prod) String() string {
	return fmt.Sprintf("(forall %s : %s, %s)", displayName(t.Name), t.Type, t.Body)
}

func (t *LetIn) String() string {
	return fmt.Sprintf("(let %s : %s := %s in %s)", displayName(t.Name), t.Type, t.Value, t.Body)
}

func (t *Case) String() string {
	var sb strings.Builder
	sb.WriteString("(match ")
	sb.WriteString(t.Scrutinee.String())
	sb.WriteString(" with")
	for i, b := range t.Branches {
		sb.WriteString(fmt.Sprintf(" | %d => %s", i+1, b))
	}
	sb.WriteString(")")
	return sb.String()
}

func displayName(n Name) string {
	if n == "" {
		return "_"
	}
	return n
}

// MkApp builds an application of head to args, flattening nested
// applications so the invariant on App.Head is preserved. MkApp with no
// arguments returns head unchanged.
func MkApp(head Term, args ...Term) Term {
	if len(args) == 0 {
		return head
	}
	if app, ok := head.(*App); ok {
		merged := make([]Term, 0, len(app.Args)+len(args))
		merged = append(merged, app.Args...)
		merged = append(merged, args...)
		return &App{Head: app.Head, Args: merged}
	}
	return &App{Head: head, Args: args}
}

// Decompose splits a term into its head and argument spine. Non-application
// terms decompose into themselves and an empty spine.
func Decompose(t Term) (Term, []Term) {
	if app, ok := t.(*App); ok {
		return app.Head, app.Args
	}
	return t, nil
}

// Equal reports structural equality of two terms, including binder names.
func Equal(a, b Term) bool {
	switch x := a.(type) {
	case *Rel:
		y, ok := b.(*Rel)
		return ok && x.N == y.N
	case *Const:
		y, ok := b.(*Const)
		return ok && x.Ref == y.Ref
	case *Construct:
		y, ok := b.(*Construct)
		return ok && x.Ref == y.Ref
	case *Ind:
		y, ok := b.(*Ind)
		return ok && x.Ref == y.Ref
	case *Sort:
		y, ok := b.(*Sort)
		return ok && x.Universe == y.Universe
	case *App:
		y, ok := b.(*App)
		if !ok || len(x.Args) != len(y.Args) || !Equal(x.Head, y.Head) {
			return false
		}
		for i := range x.Args {
			if !Equal(x.Args[i], y.Args[i]) {
				return false
			}
		}
		return true
	case *Lambda:
		y, ok := b.(*Lambda)
		return ok && x.Name == y.Name && Equal(x.Type, y.Type) && Equal(x.Body, y.Body)
	case *Prod:
		y, ok := b.(*Prod)
		return ok && x.Name == y.Name && Equal(x.Type, y.Type) && Equal(x.Body, y.Body)
	case *LetIn:
		y, ok := b.(*LetIn)
		return ok && x.Name == y.Name && Equal(x.Value, y.Value) &&
			Equal(x.Type, y.Type) && Equal(x.Body, y.Body)
	case *Case:
		y, ok := b.(*Case)
		if !ok || len(x.Branches) != len(y.Branches) || !Equal(x.Scrutinee, y.Scrutinee) {
			return false
		}
		for i := range x.Branches {
			if !Equal(x.Branches[i], y.Branches[i]) {
				return false
			}
		}
		return true
	default:
		return false
	}
}
