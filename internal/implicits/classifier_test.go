package implicits

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/axiom-lang/axiom/internal/term"
	"github.com/axiom-lang/axiom/internal/term/termtest"
)

func newClassifier(t *testing.T, strict bool) (*Classifier, *termtest.Prelude) {
	t.Helper()
	p := termtest.NewPrelude()
	return &Classifier{Strict: strict, Whd: p.Eval, Env: p.Env}, p
}

func TestClassify_DirectOccurrenceIsRigid(t *testing.T) {
	cls, _ := newClassifier(t, false)
	acc := make([]Evidence, 1)

	// The tracked binder occurs bare in hypothesis 2.
	cls.Classify(1, &term.Rel{N: 1}, Hypothesis(2), acc)

	assert.Equal(t, KindRigid, acc[0].Kind)
	assert.Equal(t, Hypothesis(2), acc[0].RigidPos)
}

func TestClassify_SlotIndexing(t *testing.T) {
	cls, _ := newClassifier(t, false)
	acc := make([]Evidence, 3)

	// With three tracked binders, #3 is the outermost (slot 0) and #1 the
	// innermost (slot 2).
	cls.Classify(3, &term.Rel{N: 3}, Hypothesis(4), acc)
	cls.Classify(3, &term.Rel{N: 1}, Hypothesis(4), acc)

	assert.Equal(t, KindRigid, acc[0].Kind)
	assert.Equal(t, KindUnseen, acc[1].Kind)
	assert.Equal(t, KindRigid, acc[2].Kind)
}

func TestClassify_DepthAdjustment(t *testing.T) {
	cls, _ := newClassifier(t, false)
	acc := make([]Evidence, 1)

	// fun y => #2: under one binder, #2 refers to the tracked binder and
	// #1 does not.
	set := &term.Sort{Universe: "Set"}
	cls.Classify(1, &term.Lambda{Name: "y", Type: set, Body: &term.Rel{N: 2}}, Hypothesis(2), acc)
	assert.Equal(t, KindRigid, acc[0].Kind)

	acc2 := make([]Evidence, 1)
	cls.Classify(1, &term.Lambda{Name: "y", Type: set, Body: &term.Rel{N: 1}}, Hypothesis(2), acc2)
	assert.Equal(t, KindUnseen, acc2[0].Kind)
}

func TestClassify_FlexibleHeadNonStrict(t *testing.T) {
	cls, _ := newClassifier(t, false)
	acc := make([]Evidence, 3)

	// Tracked binders f (#2 here) and x (#1 here): the occurrence `f x`
	// has a flexible head, so both are recorded flexible.
	cls.Classify(3, term.MkApp(&term.Rel{N: 2}, &term.Rel{N: 1}), Hypothesis(4), acc)

	assert.Equal(t, KindUnseen, acc[0].Kind)
	assert.Equal(t, KindFlexible, acc[1].Kind, "application head bound by a later argument")
	assert.Equal(t, KindFlexible, acc[2].Kind, "argument under a flexible head")
}

func TestClassify_FlexibleHeadStrictPrunes(t *testing.T) {
	cls, _ := newClassifier(t, true)
	acc := make([]Evidence, 3)

	cls.Classify(3, term.MkApp(&term.Rel{N: 2}, &term.Rel{N: 1}), Hypothesis(4), acc)

	for i, e := range acc {
		assert.Equal(t, KindUnseen, e.Kind, "slot %d must stay untracked under strict mode", i)
	}
}

func TestClassify_RigidHeadKeepsRigidity(t *testing.T) {
	cls, p := newClassifier(t, false)
	acc := make([]Evidence, 1)

	// A constructor head is rigid, so the argument occurrence stays
	// rigid.
	cls.Classify(1, term.MkApp(&term.Construct{Ref: p.Int.Pos}, &term.Rel{N: 1}), Hypothesis(2), acc)

	assert.Equal(t, KindRigid, acc[0].Kind)
}

func TestClassify_TransparentConstHeadIsFlexible(t *testing.T) {
	cls, p := newClassifier(t, false)
	intTy := &term.Ind{Ref: p.Int.Ind}
	fn := p.IdentityFn("Test.transparent", intTy)

	acc := make([]Evidence, 1)
	// The head delta-unfolds to a lambda, so whd reduces `transparent #1`
	// to `#1` before the head is ever judged: the occurrence is rigid.
	cls.Classify(1, term.MkApp(&term.Const{Ref: fn}, &term.Rel{N: 1}), Hypothesis(2), acc)
	assert.Equal(t, KindRigid, acc[0].Kind, "whd exposes the occurrence before the head is judged")

	// An opaque constant head does not unfold and is rigid.
	sealed := term.GlobalRef{Name: "Test.sealed"}
	p.Env.Defs[sealed.Name] = &term.Definition{
		Name:   sealed.Name,
		Type:   &term.Prod{Type: intTy, Body: intTy},
		Body:   &term.Lambda{Name: "x", Type: intTy, Body: &term.Rel{N: 1}},
		Opaque: true,
	}
	acc2 := make([]Evidence, 1)
	cls.Classify(1, term.MkApp(&term.Const{Ref: sealed}, &term.Rel{N: 1}), Hypothesis(2), acc2)
	assert.Equal(t, KindRigid, acc2[0].Kind)
}

func TestClassify_OccurrenceHiddenBehindDefinition(t *testing.T) {
	cls, p := newClassifier(t, false)
	set := &term.Sort{Universe: "Set"}

	// wrap := fun X => X. The occurrence of the tracked binder inside
	// `wrap #1` is only visible after delta and beta reduction.
	wrap := p.Env.Define("Test.wrap",
		&term.Prod{Name: "X", Type: set, Body: set},
		&term.Lambda{Name: "X", Type: set, Body: &term.Rel{N: 1}},
	)

	acc := make([]Evidence, 1)
	cls.Classify(1, term.MkApp(&term.Const{Ref: wrap}, &term.Rel{N: 1}), Hypothesis(2), acc)

	require.Equal(t, KindRigid, acc[0].Kind, "occurrences behind unfolding must still be found")
	assert.Equal(t, Hypothesis(2), acc[0].RigidPos)
}

func TestClassify_CaseIsFlexibleElimination(t *testing.T) {
	scrutinee := &term.Rel{N: 1}
	caseTerm := &term.Case{Scrutinee: scrutinee, Branches: []term.Term{&term.Rel{N: 1}}}

	cls, _ := newClassifier(t, false)
	acc := make([]Evidence, 1)
	cls.Classify(1, caseTerm, Hypothesis(2), acc)
	assert.Equal(t, KindFlexible, acc[0].Kind)

	strictCls, _ := newClassifier(t, true)
	acc2 := make([]Evidence, 1)
	strictCls.Classify(1, caseTerm, Hypothesis(2), acc2)
	assert.Equal(t, KindUnseen, acc2[0].Kind)
}

func TestClassify_ZeroBoundIsNoop(t *testing.T) {
	cls, _ := newClassifier(t, false)
	cls.Classify(0, &term.Rel{N: 1}, Hypothesis(1), nil)
}
