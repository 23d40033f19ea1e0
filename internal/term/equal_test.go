package term

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreInterningIsMonotonic(t *testing.T) {
	s := NewGlobalStore()
	a := s.CreateTerm(&Root{})
	b := s.CreateTerm(&Root{})
	assert.NotEqual(t, a, b, "expected distinct ids for distinct CreateTerm calls")
	assert.NotNil(t, s.Term(a))
	assert.NotNil(t, s.Term(b))
}

func TestLookupByAbsentIdPanics(t *testing.T) {
	s := NewGlobalStore()
	assert.Panics(t, func() {
		_ = s.Term(TermId(0))
	}, "expected panic on lookup of an id never produced by this store")
}

func TestScopeIndexOf(t *testing.T) {
	sc := Scope{
		Kind: Constant,
		Members: []Member{
			{Name: Ident{Name: "x"}, Data: Uninitialised{}},
			{Name: Ident{Name: "y"}, Data: Uninitialised{}},
		},
	}
	idx, ok := sc.IndexOf(Ident{Name: "y"})
	require.True(t, ok)
	assert.Equal(t, 1, idx)

	_, ok = sc.IndexOf(Ident{Name: "z"})
	assert.False(t, ok, "expected z to be absent")
}

func TestParamsGetByName(t *testing.T) {
	name := Ident{Name: "a"}
	ps := Params{Origin: OriginFn, Items: []Param{{Name: &name, Ty: TermId(0)}}}
	idx, p, ok := ps.GetByName(name)
	require.True(t, ok)
	assert.Equal(t, 0, idx)
	require.NotNil(t, p.Name)
	assert.Equal(t, name, *p.Name)
}
