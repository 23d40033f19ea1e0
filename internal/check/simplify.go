package check

import (
	"github.com/hash-org/lang/internal/tcerr"
	"github.com/hash-org/lang/internal/term"
)

// Simplify normalizes id to a canonical form: scope variables are resolved
// to their bound value, accesses are resolved against their subject, type
// function calls are applied where a matching case exists, and merges and
// unions are flattened and deduplicated. Results are memoized in
// simplifyCache the same way the teacher's normalize.go consults its own
// cache before doing any work (§4.7 "idempotent up to cache").
func (c *Checker) Simplify(id term.TermId) (term.TermId, *tcerr.TcError) {
	if cached, ok := c.simplifyCache[id]; ok {
		return cached, nil
	}

	done, recErr := c.enterRecursion()
	defer done()
	if recErr != nil {
		return 0, recErr
	}

	result, err := c.simplifyOnce(id)
	if err != nil {
		return 0, err
	}
	c.simplifyCache[id] = result
	if result != id {
		// A term simplifies to a fixed point once its own rewrite no
		// longer changes anything; memoize that too so repeated lookups
		// of the simplified id are O(1) rather than re-entering here.
		c.simplifyCache[result] = result
	}
	return result, nil
}

func (c *Checker) simplifyOnce(id term.TermId) (term.TermId, *tcerr.TcError) {
	switch n := c.Store.Term(id).(type) {
	case *term.ScopeVar:
		member := c.Scopes.GetScopeVarMember(n)
		switch data := member.Data.(type) {
		case term.InitialisedWithTy:
			return c.Simplify(data.Value)
		case term.InitialisedWithInferredTy:
			return c.Simplify(data.Value)
		default:
			return id, nil
		}

	case *term.Access:
		return c.simplifyAccess(id, n)

	case *term.TyFnCall:
		return c.simplifyTyFnCall(id, n)

	case *term.Merge:
		return c.simplifyMerge(id, n)

	case *term.Union:
		return c.simplifyUnion(id, n)

	case *term.TyOf:
		ty, err := c.TypeOf(n.Term)
		if err != nil {
			return 0, err
		}
		return c.Simplify(ty)

	case *term.SetBound:
		newInner, err := c.Simplify(n.Term)
		if err != nil {
			return 0, err
		}
		if len(c.Discover.FreeBoundVars(newInner)) == 0 {
			// Nothing left in the simplified inner term needs the
			// witness scope: drop the wrapper (§4.7.3 style minimality).
			return newInner, nil
		}
		if newInner == n.Term {
			return id, nil
		}
		return c.Store.CreateTerm(&term.SetBound{Term: newInner, Scope: n.Scope}), nil

	case *term.Level0Term:
		if fnCall, ok := n.Value.(*term.FnCall); ok {
			return c.simplifyFnCall(id, fnCall)
		}
		return id, nil

	default:
		return id, nil
	}
}
