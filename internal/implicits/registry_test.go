package implicits

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/axiom-lang/axiom/internal/objstore"
	"github.com/axiom-lang/axiom/internal/term"
	"github.com/axiom-lang/axiom/internal/term/termtest"
)

func newTestRegistry(t *testing.T) (*Registry, *termtest.Prelude, *objstore.Journal) {
	t.Helper()
	p := termtest.NewPrelude()
	journal := objstore.NewJournal()
	return NewRegistry(p.Eval, p.Env, p.Eval, journal), p, journal
}

func defineIdentityConst(p *termtest.Prelude, name term.QualifiedName) term.GlobalRef {
	return p.Env.Axiom(name, &term.Prod{
		Name: "A",
		Type: &term.Sort{Universe: "Type"},
		Body: &term.Prod{Name: "x", Type: &term.Rel{N: 1}, Body: &term.Rel{N: 2}},
	})
}

func TestRegistry_DeclareConstant(t *testing.T) {
	reg, p, journal := newTestRegistry(t)
	ref := defineIdentityConst(p, "Test.id")

	require.NoError(t, reg.DeclareConstant(ref, Policy{Enabled: true}))

	st := reg.ImplicitsOf(ref)
	require.Len(t, st, 2)
	require.NotNil(t, st[0])
	assert.Equal(t, term.Name("A"), st[0].Name)
	assert.Equal(t, KindRigid, st[0].Evidence.Kind)
	assert.Nil(t, st[1])
	assert.Equal(t, 1, journal.Len())
}

func TestRegistry_DisabledPolicyInstallsNothingImplicit(t *testing.T) {
	reg, p, _ := newTestRegistry(t)
	ref := defineIdentityConst(p, "Test.id")

	require.NoError(t, reg.DeclareConstant(ref, Policy{Enabled: false}))
	assert.Empty(t, reg.ImplicitsOf(ref))
}

func TestRegistry_UndeclaredSymbolIsEmpty(t *testing.T) {
	reg, _, _ := newTestRegistry(t)
	assert.Empty(t, reg.ImplicitsOf(term.GlobalRef{Name: "Test.ghost"}))
}

func TestRegistry_DeclareVariable(t *testing.T) {
	reg, p, _ := newTestRegistry(t)
	p.Env.Axiom("section.h", &term.Prod{
		Name: "A",
		Type: &term.Sort{Universe: "Type"},
		Body: &term.Prod{Name: "x", Type: &term.Rel{N: 1}, Body: &term.Rel{N: 2}},
	})

	ref := term.VarRef{Name: "section.h"}
	require.NoError(t, reg.DeclareVariable(ref, Policy{Enabled: true}))
	st := reg.ImplicitsOf(ref)
	require.Len(t, st, 2)
	assert.NotNil(t, st[0])
}

func TestRegistry_DeclareInductive(t *testing.T) {
	reg, p, _ := newTestRegistry(t)

	// The prelude option: the family's parameter accrues no evidence,
	// but Some's type parameter does.
	require.NoError(t, reg.DeclareInductive(p.OptionInd, 2, Policy{Enabled: true}))

	family := reg.ImplicitsOf(p.OptionInd)
	require.Len(t, family, 1)
	assert.Nil(t, family[0])

	some := reg.ImplicitsOf(p.OptionSome)
	require.Len(t, some, 2)
	require.NotNil(t, some[0])
	assert.Equal(t, term.Name("A"), some[0].Name)

	none := reg.ImplicitsOf(p.OptionNone)
	require.Len(t, none, 1)
	assert.Nil(t, none[0], "None's parameter is only used in the conclusion, which is off by default")
}

func TestRegistry_DeclareInductiveIsAtomic(t *testing.T) {
	reg, p, journal := newTestRegistry(t)

	// Constructor 3 does not exist, so the whole declaration must fail
	// without installing the family or the first two constructors.
	err := reg.DeclareInductive(p.OptionInd, 3, Policy{Enabled: true})
	require.Error(t, err)
	assert.Empty(t, reg.ImplicitsOf(p.OptionInd))
	assert.Empty(t, reg.ImplicitsOf(p.OptionSome))
	assert.Equal(t, 0, journal.Len(), "failed declarations leave no journal record")
}

func TestRegistry_DeclareManual(t *testing.T) {
	reg, p, _ := newTestRegistry(t)
	ref := defineIdentityConst(p, "Test.id")

	require.NoError(t, reg.DeclareManual(ref, Policy{Enabled: true}, []Selector{ByName("x")}))
	st := reg.ImplicitsOf(ref)
	require.Len(t, st, 2)
	assert.Nil(t, st[0])
	require.NotNil(t, st[1])
	assert.Equal(t, KindManual, st[1].Evidence.Kind)
}

func TestRegistry_DeclareManualRejectsBadSelectors(t *testing.T) {
	reg, p, journal := newTestRegistry(t)
	ref := defineIdentityConst(p, "Test.id")

	err := reg.DeclareManual(ref, Policy{Enabled: true}, []Selector{ByPos(1), ByPos(1)})
	var cfg *ConfigError
	require.ErrorAs(t, err, &cfg)
	assert.Empty(t, reg.ImplicitsOf(ref), "failed declaration leaves prior state untouched")
	assert.Equal(t, 0, journal.Len())
}

func TestRegistry_OverwriteOnRedeclaration(t *testing.T) {
	reg, p, _ := newTestRegistry(t)
	ref := defineIdentityConst(p, "Test.id")

	require.NoError(t, reg.DeclareConstant(ref, Policy{Enabled: true}))
	require.NotNil(t, reg.ImplicitsOf(ref)[0])

	require.NoError(t, reg.DeclareConstant(ref, Policy{Enabled: false}))
	assert.Empty(t, reg.ImplicitsOf(ref))
}

func TestRegistry_Rename(t *testing.T) {
	reg, p, _ := newTestRegistry(t)
	ref := defineIdentityConst(p, "Test.id")
	require.NoError(t, reg.DeclareConstant(ref, Policy{Enabled: true}))
	before := reg.ImplicitsOf(ref)

	moved := term.GlobalRef{Name: "Elsewhere.id"}
	reg.Rename(ref, moved)

	assert.Empty(t, reg.ImplicitsOf(ref))
	assert.Equal(t, before, reg.ImplicitsOf(moved), "rename moves the value unchanged")
}

func TestRegistry_Reset(t *testing.T) {
	reg, p, _ := newTestRegistry(t)
	ref := defineIdentityConst(p, "Test.id")
	require.NoError(t, reg.DeclareConstant(ref, Policy{Enabled: true}))
	reg.Reset()
	assert.Zero(t, reg.Len())
}

func TestRegistry_ReloadRecomputesFromJournal(t *testing.T) {
	reg, p, journal := newTestRegistry(t)
	ref := defineIdentityConst(p, "Test.id")
	require.NoError(t, reg.DeclareConstant(ref, Policy{Enabled: true}))
	require.NoError(t, reg.DeclareInductive(p.OptionInd, 2, Policy{Enabled: true, Contextual: true}))

	reloaded := NewRegistry(p.Eval, p.Env, p.Eval, nil)
	store := objstore.NewStore()
	require.NoError(t, store.RegisterKind(reloaded.JournalKind()))
	require.NoError(t, store.Replay(journal))

	assert.Equal(t, reg.ImplicitsOf(ref), reloaded.ImplicitsOf(ref))
	assert.Equal(t, reg.ImplicitsOf(p.OptionSome), reloaded.ImplicitsOf(p.OptionSome))

	// Contextual was recorded, so None's conclusion-only dependency
	// comes back after reload too.
	none := reloaded.ImplicitsOf(p.OptionNone)
	require.Len(t, none, 1)
	require.NotNil(t, none[0])
	assert.True(t, none[0].Evidence.RigidPos.IsConclusion())
}

func TestRegistry_ReloadRejectsManualEntries(t *testing.T) {
	reg, p, journal := newTestRegistry(t)
	ref := defineIdentityConst(p, "Test.id")
	require.NoError(t, reg.DeclareManual(ref, Policy{Enabled: true}, []Selector{ByName("x")}))

	reloaded := NewRegistry(p.Eval, p.Env, p.Eval, nil)
	store := objstore.NewStore()
	require.NoError(t, store.RegisterKind(reloaded.JournalKind()))

	err := store.Replay(journal)
	require.ErrorIs(t, err, ErrManualDischarge)
}

func TestRegistry_DischargeRejectsManualEntries(t *testing.T) {
	reg, p, journal := newTestRegistry(t)
	ref := defineIdentityConst(p, "Test.id")
	require.NoError(t, reg.DeclareConstant(ref, Policy{Enabled: true}))

	store := objstore.NewStore()
	require.NoError(t, store.RegisterKind(reg.JournalKind()))

	// Automatic entries pass through a discharge unchanged.
	out, err := store.Discharge(journal)
	require.NoError(t, err)
	assert.Equal(t, journal.Len(), out.Len())

	require.NoError(t, reg.DeclareManual(ref, Policy{Enabled: true}, []Selector{ByName("x")}))
	_, err = store.Discharge(journal)
	require.ErrorIs(t, err, ErrManualDischarge)
}

func TestRegistry_SubstituteRenamesJournal(t *testing.T) {
	reg, p, journal := newTestRegistry(t)
	ref := defineIdentityConst(p, "Test.id")
	require.NoError(t, reg.DeclareConstant(ref, Policy{Enabled: true}))

	store := objstore.NewStore()
	require.NoError(t, store.RegisterKind(reg.JournalKind()))
	renamed, err := store.Substitute(journal, map[string]string{"Test.id": "Moved.id"})
	require.NoError(t, err)

	// Replaying the substituted journal installs under the new identity.
	p.Env.Axiom("Moved.id", p.Env.Defs["Test.id"].Type)
	reloaded := NewRegistry(p.Eval, p.Env, p.Eval, nil)
	store2 := objstore.NewStore()
	require.NoError(t, store2.RegisterKind(reloaded.JournalKind()))
	require.NoError(t, store2.Replay(renamed))

	assert.Empty(t, reloaded.ImplicitsOf(ref))
	assert.NotEmpty(t, reloaded.ImplicitsOf(term.GlobalRef{Name: "Moved.id"}))
}
