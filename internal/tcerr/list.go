package tcerr

import (
	"fmt"
	"strings"
)

// ErrorList collects the errors surfaced across independent top-level
// members of a module (§7: "a failure in one top-level member does not
// prevent checking of others"), mirroring the teacher's types.ErrorList.
type ErrorList []*TcError

func (e ErrorList) Error() string {
	switch len(e) {
	case 0:
		return "no errors"
	case 1:
		return e[0].Error()
	default:
		parts := []string{fmt.Sprintf("%d type errors:", len(e))}
		for i, err := range e {
			parts = append(parts, fmt.Sprintf("\n[%d] %s", i+1, err.Error()))
		}
		return strings.Join(parts, "\n")
	}
}

// Add appends err to the list if it is non-nil, returning the updated list.
func (e ErrorList) Add(err *TcError) ErrorList {
	if err == nil {
		return e
	}
	return append(e, err)
}
