package scope

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hash-org/lang/internal/tcerr"
	"github.com/hash-org/lang/internal/term"
)

func TestEnterScopePushesAndPopsOnSuccess(t *testing.T) {
	store := term.NewGlobalStore()
	m := NewManager(store)
	scopeId := store.CreateScope(term.Scope{Kind: term.Constant})

	var sawStack []term.ScopeId
	err := m.EnterScope(scopeId, func() error {
		sawStack = m.Stack()
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []term.ScopeId{scopeId}, sawStack, "expected scope pushed during f")
	assert.Empty(t, m.Stack(), "expected scope popped after EnterScope returns")
}

func TestEnterScopePopsOnError(t *testing.T) {
	store := term.NewGlobalStore()
	m := NewManager(store)
	scopeId := store.CreateScope(term.Scope{Kind: term.Constant})

	boom := &testError{}
	err := m.EnterScope(scopeId, func() error { return boom })
	assert.Same(t, boom, err, "expected the f's error to propagate")
	assert.Empty(t, m.Stack(), "expected scope popped after f returns an error")
}

func TestEnterScopePopsOnPanic(t *testing.T) {
	store := term.NewGlobalStore()
	m := NewManager(store)
	scopeId := store.CreateScope(term.Scope{Kind: term.Constant})

	assert.Panics(t, func() {
		_ = m.EnterScope(scopeId, func() error {
			panic("boom")
		})
	}, "expected the panic to propagate through EnterScope")

	assert.Empty(t, m.Stack(), "expected scope popped even though f panicked")
}

func TestEnterScopeNestsCorrectly(t *testing.T) {
	store := term.NewGlobalStore()
	m := NewManager(store)
	outer := store.CreateScope(term.Scope{Kind: term.Constant})
	inner := store.CreateScope(term.Scope{Kind: term.Variable})

	var innerStack []term.ScopeId
	err := m.EnterScope(outer, func() error {
		return m.EnterScope(inner, func() error {
			innerStack = m.Stack()
			return nil
		})
	})
	require.NoError(t, err)
	assert.Equal(t, []term.ScopeId{outer, inner}, innerStack)
	assert.Empty(t, m.Stack(), "expected both scopes popped")
}

type testError struct{}

func (*testError) Error() string { return "boom" }

func TestMakeBoundScopeMirrorsNamedParamsAsUninitialised(t *testing.T) {
	store := term.NewGlobalStore()
	m := NewManager(store)

	anyTy := store.CreateTerm(&term.Level2Term{Value: &term.AnyTy{}})
	xName := term.Ident{Name: "x"}
	params := term.Params{
		Origin: term.OriginTyFn,
		Items: []term.Param{
			{Name: &xName, Ty: anyTy},
			{Name: nil, Ty: anyTy}, // unnamed params carry no resolvable binding
		},
	}

	scopeId := m.MakeBoundScope(params)
	sc := store.Scope(scopeId)
	assert.Equal(t, term.Bound, sc.Kind)
	require.Len(t, sc.Members, 1, "expected only the named param to produce a member")
	assert.Equal(t, xName, sc.Members[0].Name)

	uninit, ok := sc.Members[0].Data.(term.Uninitialised)
	require.True(t, ok, "expected Uninitialised data, got %+v", sc.Members[0].Data)
	assert.Equal(t, anyTy, uninit.Ty)
}

func TestMakeSetBoundScopePairsArgsToParams(t *testing.T) {
	store := term.NewGlobalStore()
	m := NewManager(store)

	anyTy := store.CreateTerm(&term.Level2Term{Value: &term.AnyTy{}})
	value := store.CreateTerm(&term.Level0Term{Value: &term.Lit{Kind: term.IntLit, Value: int64(1)}})

	xName := term.Ident{Name: "x"}
	params := term.Params{Origin: term.OriginFn, Items: []term.Param{{Name: &xName, Ty: anyTy}}}
	args := term.Args{Origin: term.OriginFn, Items: []term.Arg{{Value: value}}}

	scopeId, err := m.MakeSetBoundScope(params, args, 0, 0)
	require.NoError(t, err)
	sc := store.Scope(scopeId)
	assert.Equal(t, term.SetBound, sc.Kind)
	require.Len(t, sc.Members, 1)
	assert.Equal(t, xName, sc.Members[0].Name)

	data, ok := sc.Members[0].Data.(term.InitialisedWithTy)
	require.True(t, ok, "expected InitialisedWithTy data, got %+v", sc.Members[0].Data)
	assert.Equal(t, anyTy, data.Ty)
	assert.Equal(t, value, data.Value)
}

func TestMakeSetBoundScopePropagatesPairingError(t *testing.T) {
	store := term.NewGlobalStore()
	m := NewManager(store)

	anyTy := store.CreateTerm(&term.Level2Term{Value: &term.AnyTy{}})
	value := store.CreateTerm(&term.Level0Term{Value: &term.Lit{Kind: term.IntLit, Value: int64(1)}})

	xName := term.Ident{Name: "x"}
	params := term.Params{Origin: term.OriginFn, Items: []term.Param{{Name: &xName, Ty: anyTy}}}
	// Two positional args against one param: arity mismatch.
	args := term.Args{Origin: term.OriginFn, Items: []term.Arg{{Value: value}, {Value: value}}}

	_, err := m.MakeSetBoundScope(params, args, 0, 0)
	assert.Error(t, err, "expected an arity mismatch error")
}

func TestGetScopeVarMemberResolvesByIndex(t *testing.T) {
	store := term.NewGlobalStore()
	m := NewManager(store)

	anyTy := store.CreateTerm(&term.Level2Term{Value: &term.AnyTy{}})
	xName := term.Ident{Name: "x"}
	yName := term.Ident{Name: "y"}
	scopeId := store.CreateScope(term.Scope{
		Kind: term.Constant,
		Members: []term.Member{
			{Name: xName, Data: term.InitialisedWithTy{Ty: anyTy, Value: anyTy}},
			{Name: yName, Data: term.InitialisedWithTy{Ty: anyTy, Value: anyTy}},
		},
	})

	sv := &term.ScopeVar{Name: yName, Scope: scopeId, Index: 1}
	member := m.GetScopeVarMember(sv)
	assert.Equal(t, yName, member.Name)
}

func TestResolveNameInScopesInnermostWins(t *testing.T) {
	store := term.NewGlobalStore()
	m := NewManager(store)

	anyTy := store.CreateTerm(&term.Level2Term{Value: &term.AnyTy{}})
	outerVal := store.CreateTerm(&term.Level0Term{Value: &term.Lit{Kind: term.IntLit, Value: int64(1)}})
	innerVal := store.CreateTerm(&term.Level0Term{Value: &term.Lit{Kind: term.IntLit, Value: int64(2)}})
	xName := term.Ident{Name: "x"}

	outer := store.CreateScope(term.Scope{
		Kind:    term.Constant,
		Members: []term.Member{{Name: xName, Data: term.InitialisedWithTy{Ty: anyTy, Value: outerVal}}},
	})
	inner := store.CreateScope(term.Scope{
		Kind:    term.Variable,
		Members: []term.Member{{Name: xName, Data: term.InitialisedWithTy{Ty: anyTy, Value: innerVal}}},
	})

	var resolved ResolvedName
	var resolveErr *tcerr.TcError
	err := m.EnterScope(outer, func() error {
		return m.EnterScope(inner, func() error {
			resolved, resolveErr = m.ResolveNameInScopes(xName, 0)
			return nil
		})
	})
	require.NoError(t, err)
	require.Nil(t, resolveErr)

	data, ok := resolved.Member.Data.(term.InitialisedWithTy)
	require.True(t, ok, "expected InitialisedWithTy data, got %+v", resolved.Member.Data)
	assert.Equal(t, innerVal, data.Value, "expected innermost x to win")
}

func TestResolveNameInScopesFailsWhenAbsent(t *testing.T) {
	store := term.NewGlobalStore()
	m := NewManager(store)
	scopeId := store.CreateScope(term.Scope{Kind: term.Constant})

	var err error
	_ = m.EnterScope(scopeId, func() error {
		_, resErr := m.ResolveNameInScopes(term.Ident{Name: "missing"}, 0)
		err = resErr
		return nil
	})
	assert.Error(t, err, "expected an unresolved-variable error")
}

func TestFilterScopeKeepsOnlyMatchingMembers(t *testing.T) {
	store := term.NewGlobalStore()
	m := NewManager(store)

	anyTy := store.CreateTerm(&term.Level2Term{Value: &term.AnyTy{}})
	xName := term.Ident{Name: "x"}
	yName := term.Ident{Name: "y"}
	scopeId := store.CreateScope(term.Scope{
		Kind: term.SetBound,
		Members: []term.Member{
			{Name: xName, Data: term.InitialisedWithTy{Ty: anyTy, Value: anyTy}},
			{Name: yName, Data: term.InitialisedWithTy{Ty: anyTy, Value: anyTy}},
		},
	})

	filtered := m.FilterScope(scopeId, func(mem term.Member) bool { return mem.Name == xName })
	sc := store.Scope(filtered)
	require.Len(t, sc.Members, 1)
	assert.Equal(t, xName, sc.Members[0].Name)
	assert.Equal(t, term.SetBound, sc.Kind, "expected filtered scope to keep the original kind")

	// The original scope is untouched (append-only store discipline).
	assert.Len(t, store.Scope(scopeId).Members, 2, "expected original scope to still have both members")
}
