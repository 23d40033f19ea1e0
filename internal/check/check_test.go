package check

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hash-org/lang/internal/subst"
	"github.com/hash-org/lang/internal/term"
)

func TestUnifyBindsUnresolvedHole(t *testing.T) {
	store := term.NewGlobalStore()
	c := New(store)

	hole := store.CreateTerm(&term.Unresolved{ResolutionId: store.NewResolutionId()})
	concrete := store.CreateTerm(&term.Level2Term{Value: &term.AnyTy{}})

	sub, err := c.Unify(hole, concrete, subst.Sub{})
	require.NoError(t, err)
	assert.Equal(t, concrete, sub[subst.Resolution(1)])
}

func TestUnifyOccursCheckRejectsSelfReference(t *testing.T) {
	store := term.NewGlobalStore()
	c := New(store)

	holeId := store.NewResolutionId()
	hole := store.CreateTerm(&term.Unresolved{ResolutionId: holeId})
	wrapped := store.CreateTerm(&term.TyOf{Term: hole})

	_, err := c.Unify(hole, wrapped, subst.Sub{})
	assert.Error(t, err, "expected occurs-check failure")
}

func TestUnifyFailsOnMismatchedNominal(t *testing.T) {
	store := term.NewGlobalStore()
	c := New(store)

	a := store.CreateTerm(&term.Level1Term{Value: &term.NominalTy{Def: 1}})
	b := store.CreateTerm(&term.Level1Term{Value: &term.NominalTy{Def: 2}})

	_, err := c.Unify(a, b, subst.Sub{})
	assert.Error(t, err, "expected unification of distinct nominals to fail")
}

func TestUnifyFnTypesStructurally(t *testing.T) {
	store := term.NewGlobalStore()
	c := New(store)

	anyTy := store.CreateTerm(&term.Level2Term{Value: &term.AnyTy{}})
	name := term.Ident{Name: "a"}
	params := store.CreateParams(term.Params{Origin: term.OriginFn, Items: []term.Param{{Name: &name, Ty: anyTy}}})

	f1 := store.CreateTerm(&term.Level1Term{Value: &term.Fn{Params: params, Return: anyTy}})
	f2 := store.CreateTerm(&term.Level1Term{Value: &term.Fn{Params: params, Return: anyTy}})

	_, err := c.Unify(f1, f2, subst.Sub{})
	assert.NoError(t, err, "expected structurally identical Fn types to unify")
}

// TestUnifyMergeSubsumption exercises §4.5's asymmetric subsumption rule:
// Merge(ts) ≡ T holds when T unifies with every t in ts, and Union(ts) ≡ T
// holds when T unifies with any one t, neither requiring the other side to
// already be the same kind with matching arity.
func TestUnifyMergeSubsumption(t *testing.T) {
	store := term.NewGlobalStore()
	c := New(store)

	dogDefId := store.CreateNominalDef(&term.StructDef{Fields: term.OpaqueFields{}})
	dog := store.CreateTerm(&term.Level1Term{Value: &term.NominalTy{Def: dogDefId}})
	anyTy1 := store.CreateTerm(&term.Level2Term{Value: &term.AnyTy{}})
	anyTy2 := store.CreateTerm(&term.Level2Term{Value: &term.AnyTy{}})

	t.Run("merge succeeds when target unifies with every element", func(t *testing.T) {
		merge := store.CreateTerm(&term.Merge{Terms: []term.TermId{anyTy1, anyTy2}})
		_, err := c.Unify(merge, dog, subst.Sub{})
		assert.Error(t, err, "Dog should not unify with two AnyTy terms (level mismatch)")

		traitLike := store.CreateTerm(&term.Level2Term{Value: &term.AnyTy{}})
		mergeOfAny := store.CreateTerm(&term.Merge{Terms: []term.TermId{anyTy1, traitLike}})
		_, err = c.Unify(mergeOfAny, anyTy2, subst.Sub{})
		assert.NoError(t, err, "AnyTy should unify with every element of a Merge of AnyTy terms")
	})

	t.Run("merge fails when target fails against any element", func(t *testing.T) {
		other := store.CreateTerm(&term.Level1Term{Value: &term.NominalTy{Def: 99}})
		merge := store.CreateTerm(&term.Merge{Terms: []term.TermId{dog, other}})
		_, err := c.Unify(merge, dog, subst.Sub{})
		assert.Error(t, err, "Dog should not unify with Merge(Dog, OtherNominal)")
	})

	t.Run("union succeeds when target unifies with any element", func(t *testing.T) {
		other := store.CreateTerm(&term.Level1Term{Value: &term.NominalTy{Def: 99}})
		union := store.CreateTerm(&term.Union{Terms: []term.TermId{other, dog}})
		_, err := c.Unify(union, dog, subst.Sub{})
		assert.NoError(t, err, "Dog should unify with Union(OtherNominal, Dog) via its second element")
	})

	t.Run("union fails when target matches no element", func(t *testing.T) {
		otherA := store.CreateTerm(&term.Level1Term{Value: &term.NominalTy{Def: 97}})
		otherB := store.CreateTerm(&term.Level1Term{Value: &term.NominalTy{Def: 98}})
		union := store.CreateTerm(&term.Union{Terms: []term.TermId{otherA, otherB}})
		_, err := c.Unify(union, dog, subst.Sub{})
		assert.Error(t, err, "Dog should not unify with a Union containing neither alternative")
	})

	t.Run("merge subsumption applies symmetrically when target is the Merge", func(t *testing.T) {
		merge := store.CreateTerm(&term.Merge{Terms: []term.TermId{anyTy1, anyTy2}})
		otherAny := store.CreateTerm(&term.Level2Term{Value: &term.AnyTy{}})
		_, err := c.Unify(otherAny, merge, subst.Sub{})
		assert.NoError(t, err, "AnyTy should unify with Merge(AnyTy, AnyTy) regardless of which side is the Merge")
	})
}

func TestSimplifyResolvesScopeVarToMemberValue(t *testing.T) {
	store := term.NewGlobalStore()
	c := New(store)

	value := store.CreateTerm(&term.Level2Term{Value: &term.AnyTy{}})
	name := term.Ident{Name: "x"}
	scopeId := store.CreateScope(term.Scope{
		Kind: term.Constant,
		Members: []term.Member{
			{Name: name, Data: term.InitialisedWithTy{Ty: 0, Value: value}},
		},
	})
	sv := store.CreateTerm(&term.ScopeVar{Name: name, Scope: scopeId, Index: 0})

	got, err := c.Simplify(sv)
	require.NoError(t, err)
	assert.Equal(t, value, got)
}

func TestSimplifyMergeDedupesIdenticalElements(t *testing.T) {
	store := term.NewGlobalStore()
	c := New(store)

	anyTy := store.CreateTerm(&term.Level2Term{Value: &term.AnyTy{}})
	merge := store.CreateTerm(&term.Merge{Terms: []term.TermId{anyTy, anyTy}})

	got, err := c.Simplify(merge)
	require.NoError(t, err)
	assert.Equal(t, anyTy, got, "expected merge of identical elements to collapse to the single element")
}

func TestSimplifyMergeDedupesStructurallyEqualSeparatelyInternedTerms(t *testing.T) {
	store := term.NewGlobalStore()
	c := New(store)

	// Two separately-interned NominalTy terms referring to the same def
	// (legal per §3 invariant 1: interning does not imply identity).
	// Reusing one TermId twice would mask the bug dedupeBySub is meant to
	// catch; these must be distinct ids with the same structure.
	a := store.CreateTerm(&term.Level1Term{Value: &term.NominalTy{Def: 1}})
	b := store.CreateTerm(&term.Level1Term{Value: &term.NominalTy{Def: 1}})
	require.NotEqual(t, a, b, "expected distinct ids for separately interned terms")
	merge := store.CreateTerm(&term.Merge{Terms: []term.TermId{a, b}})

	got, err := c.Simplify(merge)
	require.NoError(t, err)
	assert.Equal(t, a, got, "expected merge of structurally-equal terms to collapse to the first")
}

func TestSimplifyMergeRejectsTwoNominals(t *testing.T) {
	store := term.NewGlobalStore()
	c := New(store)
	c.StrictMergeNominal = true

	a := store.CreateTerm(&term.Level1Term{Value: &term.NominalTy{Def: 1}})
	b := store.CreateTerm(&term.Level1Term{Value: &term.NominalTy{Def: 2}})
	merge := store.CreateTerm(&term.Merge{Terms: []term.TermId{a, b}})

	_, err := c.Simplify(merge)
	assert.Error(t, err, "expected merge with two nominals to be rejected")
}

func TestSimplifyIsMemoized(t *testing.T) {
	store := term.NewGlobalStore()
	c := New(store)

	anyTy := store.CreateTerm(&term.Level2Term{Value: &term.AnyTy{}})
	merge := store.CreateTerm(&term.Merge{Terms: []term.TermId{anyTy, anyTy}})

	first, err := c.Simplify(merge)
	require.NoError(t, err)
	_, cached := c.simplifyCache[merge]
	assert.True(t, cached, "expected simplify result to be cached")

	second, err := c.Simplify(merge)
	require.NoError(t, err)
	assert.Equal(t, first, second, "expected repeated simplify calls to agree")
}

func TestTypeOfLevel0RtReturnsItsType(t *testing.T) {
	store := term.NewGlobalStore()
	c := New(store)

	anyTy := store.CreateTerm(&term.Level2Term{Value: &term.AnyTy{}})
	rt := store.CreateTerm(&term.Level0Term{Value: &term.Rt{Ty: anyTy}})

	got, err := c.TypeOf(rt)
	require.NoError(t, err)
	assert.Equal(t, anyTy, got)
}

func TestTypeOfTrtKindIsRoot(t *testing.T) {
	store := term.NewGlobalStore()
	c := New(store)

	trtKind := store.CreateTerm(&term.Level3Term{Value: &term.TrtKind{}})
	got, err := c.TypeOf(trtKind)
	require.NoError(t, err)
	assert.IsType(t, &term.Root{}, store.Term(got))
}

func TestValidateRuntimeInstantiableRejectsNonLevel1(t *testing.T) {
	store := term.NewGlobalStore()
	c := New(store)

	anyTy := store.CreateTerm(&term.Level2Term{Value: &term.AnyTy{}})
	assert.Error(t, c.ValidateRuntimeInstantiable(anyTy), "expected Level2 term to fail runtime-instantiability check")

	level1 := store.CreateTerm(&term.Level1Term{Value: &term.NominalTy{Def: 1}})
	assert.NoError(t, c.ValidateRuntimeInstantiable(level1), "expected Level1 term to pass")
}

func TestTermIsFnTySeesThroughSetBound(t *testing.T) {
	store := term.NewGlobalStore()
	c := New(store)

	anyTy := store.CreateTerm(&term.Level2Term{Value: &term.AnyTy{}})
	params := store.CreateParams(term.Params{Origin: term.OriginFn})
	fn := store.CreateTerm(&term.Level1Term{Value: &term.Fn{Params: params, Return: anyTy}})
	scope := store.CreateScope(term.Scope{Kind: term.SetBound})
	wrapped := store.CreateTerm(&term.SetBound{Term: fn, Scope: scope})

	isFn, err := c.TermIsFnTy(wrapped)
	require.NoError(t, err)
	assert.True(t, isFn, "expected SetBound-wrapped Fn to be recognised as a function type")
}

// TestMethodCallSynthesisFromTrtImpl exercises §8 scenario 5: a struct Dog
// with an `impl Hash for Dog` providing `hash: (self: Dog) -> u64`, where
// `d.hash` (d: Dog) must synthesise a callable with `self` stripped.
func TestMethodCallSynthesisFromTrtImpl(t *testing.T) {
	store := term.NewGlobalStore()
	c := New(store)

	dogDefId := store.CreateNominalDef(&term.StructDef{Fields: term.OpaqueFields{}})
	dogTy := store.CreateTerm(&term.Level1Term{Value: &term.NominalTy{Def: dogDefId}})

	u64DefId := store.CreateNominalDef(&term.StructDef{Fields: term.OpaqueFields{}})
	u64Ty := store.CreateTerm(&term.Level1Term{Value: &term.NominalTy{Def: u64DefId}})

	self := term.NewIdent("self")
	hashParams := store.CreateParams(term.Params{
		Origin: term.OriginFn,
		Items:  []term.Param{{Name: &self, Ty: dogTy}},
	})
	hashFnTy := store.CreateTerm(&term.Level1Term{Value: &term.Fn{Params: hashParams, Return: u64Ty}})

	implScope := store.CreateScope(term.Scope{
		Kind: term.Constant,
		Members: []term.Member{
			{Name: term.NewIdent("hash"), Data: term.InitialisedWithTy{Ty: 0, Value: hashFnTy}},
		},
	})
	store.CreateModDef(term.ModDef{Members: implScope, Origin: term.OriginTrtImpl, ForNominal: &dogDefId})

	d := store.CreateTerm(&term.Level0Term{Value: &term.Rt{Ty: dogTy}})
	access := store.CreateTerm(&term.Access{Subject: d, Name: term.NewIdent("hash"), Op: term.Property})

	got, err := c.Simplify(access)
	require.NoError(t, err)

	l0, ok := store.Term(got).(*term.Level0Term)
	require.True(t, ok, "expected d.hash to simplify to a Level0Term, got %T", store.Term(got))
	rt, ok := l0.Value.(*term.Rt)
	require.True(t, ok, "expected d.hash to be an Rt value, got %T", l0.Value)
	fnTyTerm, ok := store.Term(rt.Ty).(*term.Level1Term)
	require.True(t, ok, "expected d.hash's type to be a Level1Term, got %T", store.Term(rt.Ty))
	fn, ok := fnTyTerm.Value.(*term.Fn)
	require.True(t, ok, "expected d.hash's type to be Fn, got %T", fnTyTerm.Value)
	assert.Empty(t, store.Params(fn.Params).Items, "expected self to be stripped from the synthesised method")
	assert.Equal(t, u64Ty, fn.Return, "expected synthesised method to return u64")

	call := store.CreateTerm(&term.Level0Term{Value: &term.FnCall{
		Subject: access,
		Args:    store.CreateArgs(term.Args{}),
	}})
	called, err := c.Simplify(call)
	require.NoError(t, err, "unexpected error calling d.hash()")
	calledL0, ok := store.Term(called).(*term.Level0Term)
	require.True(t, ok, "expected d.hash() to simplify to a Level0Term, got %T", store.Term(called))
	calledRt, ok := calledL0.Value.(*term.Rt)
	require.True(t, ok, "expected d.hash() to be an Rt value, got %T", calledL0.Value)
	assert.Equal(t, u64Ty, calledRt.Ty, "expected d.hash() to be Rt(u64)")
}
