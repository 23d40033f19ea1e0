package tcerr

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hash-org/lang/internal/term"
)

func TestCannotUnifyErrorMessage(t *testing.T) {
	err := &TcError{Code: CodeCannotUnify, Src: term.TermId(1), Target: term.TermId(2)}
	assert.Contains(t, err.Error(), "cannot unify")
}

func TestMissingPatternBoundsSortsNames(t *testing.T) {
	err := &TcError{
		Code:   CodeMissingPatternBounds,
		Bounds: []term.Ident{{Name: "z"}, {Name: "a"}},
	}
	msg := err.Error()
	assert.Contains(t, msg, "missing bound(s): a, z", "expected sorted bound names in message")
}

func TestErrorListRendersCount(t *testing.T) {
	list := ErrorList{}.Add(&TcError{Code: CodeNotATyFn}).Add(&TcError{Code: CodeInvalidCallSubject}).Add(nil)
	assert.Len(t, list, 2, "expected nil errors to be dropped")
	assert.True(t, strings.HasPrefix(list.Error(), "2 type errors:"), "expected count-prefixed rendering, got %q", list.Error())
}
