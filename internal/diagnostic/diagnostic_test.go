package diagnostic

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hash-org/lang/internal/tcerr"
	"github.com/hash-org/lang/internal/term"
)

func TestRenderIncludesCodeAndMessage(t *testing.T) {
	err := &tcerr.TcError{Code: tcerr.CodeCannotUnify, Src: 1, Target: 2}
	got := Render(err)
	assert.Contains(t, got, "cannot unify")
	assert.Contains(t, got, string(tcerr.CodeCannotUnify))
}

func TestRenderBreaksDownTyFnApplicationFailures(t *testing.T) {
	err := &tcerr.TcError{
		Code:   tcerr.CodeInvalidTyFnApplication,
		TypeFn: 1,
		UnificationErrors: []*tcerr.TcError{
			{Code: tcerr.CodeCannotUnify, Src: 2, Target: 3},
		},
	}
	got := Render(err)
	assert.Contains(t, got, "case 0", "expected a per-case breakdown line")
}

func TestRenderAllJoinsMultipleErrors(t *testing.T) {
	errs := []*tcerr.TcError{
		{Code: tcerr.CodeUnresolvedVariable, Name: term.Ident{Name: "x"}},
		{Code: tcerr.CodeUnresolvedVariable, Name: term.Ident{Name: "y"}},
	}
	got := RenderAll(errs)
	assert.Equal(t, 2, strings.Count(got, "error:"))
}

func TestRenderNilIsEmpty(t *testing.T) {
	assert.Empty(t, Render(nil))
}
