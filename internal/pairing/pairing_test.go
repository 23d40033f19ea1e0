package pairing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hash-org/lang/internal/tcerr"
	"github.com/hash-org/lang/internal/term"
)

func name(s string) *term.Ident {
	n := term.NewIdent(s)
	return &n
}

func TestPairMatchesPositionalArgsInOrder(t *testing.T) {
	params := term.Params{Origin: term.OriginFn, Items: []term.Param{
		{Name: name("a"), Ty: 1},
		{Name: name("b"), Ty: 2},
	}}
	args := term.Args{Origin: term.OriginFn, Items: []term.Arg{
		{Value: 10},
		{Value: 20},
	}}

	pairs, err := Pair(params, args, tcerr.OriginArgsList, 0, 0)
	require.NoError(t, err)
	require.Len(t, pairs, 2)
	assert.Equal(t, term.TermId(10), pairs[0].Arg.Value)
	assert.Equal(t, term.TermId(20), pairs[1].Arg.Value)
}

func TestPairRejectsPositionalAfterNamed(t *testing.T) {
	params := term.Params{Origin: term.OriginFn, Items: []term.Param{
		{Name: name("a"), Ty: 1},
		{Name: name("b"), Ty: 2},
	}}
	args := term.Args{Origin: term.OriginFn, Items: []term.Arg{
		{Name: name("a"), Value: 10},
		{Value: 20},
	}}

	_, err := Pair(params, args, tcerr.OriginArgsList, 0, 0)
	require.Error(t, err)
	assert.Equal(t, tcerr.CodeAmbiguousArgumentOrdering, err.Code)
}

func TestPairFillsNamedDefaultsInDeclarationOrder(t *testing.T) {
	def := term.TermId(99)
	params := term.Params{Origin: term.OriginFn, Items: []term.Param{
		{Name: name("a"), Ty: 1},
		{Name: name("b"), Ty: 2, DefaultValue: &def},
	}}
	args := term.Args{Origin: term.OriginFn, Items: []term.Arg{
		{Value: 10},
	}}

	pairs, err := Pair(params, args, tcerr.OriginArgsList, 0, 0)
	require.NoError(t, err)
	require.Len(t, pairs, 2, "expected the default to fill the missing arg")
	assert.Equal(t, def, pairs[1].Arg.Value, "expected the default value to be used")
}

func TestPairRejectsMissingRequiredParam(t *testing.T) {
	params := term.Params{Origin: term.OriginFn, Items: []term.Param{
		{Name: name("a"), Ty: 1},
		{Name: name("b"), Ty: 2},
	}}
	args := term.Args{Origin: term.OriginFn, Items: []term.Arg{
		{Value: 10},
	}}

	_, err := Pair(params, args, tcerr.OriginArgsList, 0, 0)
	require.Error(t, err)
	assert.Equal(t, tcerr.CodeMismatchingArgParamLength, err.Code)
}

func TestPairIgnoresUnnamedDefaultByDefault(t *testing.T) {
	def := term.TermId(99)
	params := term.Params{Origin: term.OriginFn, Items: []term.Param{
		{Ty: 1, DefaultValue: &def},
	}}
	args := term.Args{Origin: term.OriginFn}

	_, err := Pair(params, args, tcerr.OriginArgsList, 0, 0)
	require.Error(t, err, "expected an unnamed default to still require an argument")
	assert.Equal(t, tcerr.CodeMismatchingArgParamLength, err.Code)
}

func TestPairWithConfigFillsUnnamedDefaultWhenEnabled(t *testing.T) {
	def := term.TermId(99)
	params := term.Params{Origin: term.OriginFn, Items: []term.Param{
		{Ty: 1, DefaultValue: &def},
	}}
	args := term.Args{Origin: term.OriginFn}

	pairs, err := PairWithConfig(params, args, tcerr.OriginArgsList, 0, 0, true)
	require.NoError(t, err)
	require.Len(t, pairs, 1)
	assert.Equal(t, def, pairs[0].Arg.Value, "expected the unnamed default to fill the slot")
}
