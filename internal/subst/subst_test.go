package subst

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hash-org/lang/internal/term"
)

func TestApplyTermReplacesFreeVar(t *testing.T) {
	store := term.NewGlobalStore()
	s := New(store)

	xVar := store.CreateTerm(&term.Var{Name: term.Ident{Name: "x"}})
	replacement := store.CreateTerm(&term.Level2Term{Value: &term.AnyTy{}})

	sub := Sub{Name(term.Ident{Name: "x"}): replacement}
	got := s.ApplyTerm(sub, xVar)

	assert.Equal(t, replacement, got)
}

func TestApplyTermLeavesUnmatchedVarAlone(t *testing.T) {
	store := term.NewGlobalStore()
	s := New(store)

	yVar := store.CreateTerm(&term.Var{Name: term.Ident{Name: "y"}})
	replacement := store.CreateTerm(&term.Level2Term{Value: &term.AnyTy{}})

	sub := Sub{Name(term.Ident{Name: "x"}): replacement}
	got := s.ApplyTerm(sub, yVar)

	assert.Equal(t, yVar, got, "expected unmatched Var to be returned unchanged")
}

func TestApplyTermNeverTouchesBoundVar(t *testing.T) {
	store := term.NewGlobalStore()
	s := New(store)

	bound := store.CreateTerm(&term.BoundVar{Name: term.Ident{Name: "x"}})
	replacement := store.CreateTerm(&term.Level2Term{Value: &term.AnyTy{}})

	// Even though the name matches, BoundVar is never in Sub's domain:
	// it represents a bound occurrence, so it is capture-avoiding by
	// construction rather than by a name-based shadow check.
	sub := Sub{Name(term.Ident{Name: "x"}): replacement}
	got := s.ApplyTerm(sub, bound)

	assert.Equal(t, bound, got, "expected BoundVar to be left untouched")
}

func TestApplyTermRecursesIntoAccess(t *testing.T) {
	store := term.NewGlobalStore()
	s := New(store)

	xVar := store.CreateTerm(&term.Var{Name: term.Ident{Name: "x"}})
	access := store.CreateTerm(&term.Access{Subject: xVar, Name: term.Ident{Name: "field"}, Op: term.Property})
	replacement := store.CreateTerm(&term.Level2Term{Value: &term.AnyTy{}})

	sub := Sub{Name(term.Ident{Name: "x"}): replacement}
	got := s.ApplyTerm(sub, access)

	assert.NotEqual(t, access, got, "expected a fresh Access term after substituting its subject")
	rewritten, ok := store.Term(got).(*term.Access)
	require.True(t, ok, "expected rewritten term to still be an Access, got %T", store.Term(got))
	assert.Equal(t, replacement, rewritten.Subject)
}

func TestApplyTermSetBoundOnlyRecursesIntoInnerTerm(t *testing.T) {
	store := term.NewGlobalStore()
	s := New(store)

	scope := store.CreateScope(term.Scope{Kind: term.SetBound})
	xVar := store.CreateTerm(&term.Var{Name: term.Ident{Name: "x"}})
	setBound := store.CreateTerm(&term.SetBound{Term: xVar, Scope: scope})
	replacement := store.CreateTerm(&term.Level2Term{Value: &term.AnyTy{}})

	sub := Sub{Name(term.Ident{Name: "x"}): replacement}
	got := s.ApplyTerm(sub, setBound)

	rewritten, ok := store.Term(got).(*term.SetBound)
	require.True(t, ok, "expected rewritten term to still be a SetBound, got %T", store.Term(got))
	assert.Equal(t, replacement, rewritten.Term, "expected inner term substituted")
	assert.Equal(t, scope, rewritten.Scope, "expected scope id untouched (opaque)")
}

func TestApplyParamsSubstitutesTypesAndDefaults(t *testing.T) {
	store := term.NewGlobalStore()
	s := New(store)

	xVar := store.CreateTerm(&term.Var{Name: term.Ident{Name: "x"}})
	replacement := store.CreateTerm(&term.Level2Term{Value: &term.AnyTy{}})
	name := term.Ident{Name: "a"}
	defaultVal := xVar

	paramsId := store.CreateParams(term.Params{
		Origin: term.OriginFn,
		Items:  []term.Param{{Name: &name, Ty: xVar, DefaultValue: &defaultVal}},
	})

	sub := Sub{Name(term.Ident{Name: "x"}): replacement}
	gotId := s.ApplyParams(sub, paramsId)

	assert.NotEqual(t, paramsId, gotId, "expected a fresh ParamsId since the substitution touched a param type")
	got := store.Params(gotId)
	assert.Equal(t, replacement, got.Items[0].Ty)
	require.NotNil(t, got.Items[0].DefaultValue)
	assert.Equal(t, replacement, *got.Items[0].DefaultValue)
}

func TestApplyTermNoopWhenSubEmpty(t *testing.T) {
	store := term.NewGlobalStore()
	s := New(store)

	xVar := store.CreateTerm(&term.Var{Name: term.Ident{Name: "x"}})
	got := s.ApplyTerm(Sub{}, xVar)

	assert.Equal(t, xVar, got, "expected empty substitution to be a no-op")
}

func TestCompose(t *testing.T) {
	store := term.NewGlobalStore()
	s := New(store)

	xName := term.Ident{Name: "x"}
	yName := term.Ident{Name: "y"}
	yVar := store.CreateTerm(&term.Var{Name: yName})
	final := store.CreateTerm(&term.Level2Term{Value: &term.AnyTy{}})

	// s1: x -> y ; s2: y -> final. Composing should give x -> final.
	s1 := Sub{Name(xName): yVar}
	s2 := Sub{Name(yName): final}

	composed := s.Compose(s1, s2)

	assert.Equal(t, final, composed[Name(xName)], "expected composed substitution to chain x -> y -> final")
	assert.Equal(t, final, composed[Name(yName)], "expected composed substitution to retain s2's own binding for y")
}
