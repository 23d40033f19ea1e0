// Package check holds the Unifier (§4.5), Simplifier (§4.7), Typer (§4.8)
// and Validator (§4.9) in one package. They are mutually recursive in the
// same way the teacher's internal/types keeps unification, defaulting and
// instance resolution together: the simplifier's TyOf case asks the typer
// for a term's type, and the typer's application case asks the simplifier
// to normalize the result, so splitting them into separate packages would
// require an import cycle Go cannot express. Each concern still gets its
// own file.
package check

import (
	"github.com/hash-org/lang/internal/discover"
	"github.com/hash-org/lang/internal/scope"
	"github.com/hash-org/lang/internal/subst"
	"github.com/hash-org/lang/internal/tcerr"
	"github.com/hash-org/lang/internal/term"
)

// Checker is the shared context every concern in this package operates
// over: the term store, the active scope stack, the substituter and
// discoverer, and the configuration governing recursion limits (§6).
type Checker struct {
	Store    *term.GlobalStore
	Scopes   *scope.Manager
	Sub      *subst.Substituter
	Discover *discover.Discoverer

	RecursionDepthLimit       int
	StrictMergeNominal        bool
	InferUnnamedParamDefaults bool

	simplifyCache map[term.TermId]term.TermId
	depth         int
}

// New creates a Checker over a fresh or existing store.
func New(store *term.GlobalStore) *Checker {
	scopes := scope.NewManager(store)
	return &Checker{
		Store:               store,
		Scopes:              scopes,
		Sub:                 subst.New(store),
		Discover:            discover.New(store, scopes),
		RecursionDepthLimit: 512,
		StrictMergeNominal:  true,
		simplifyCache:       make(map[term.TermId]term.TermId),
	}
}

// enterRecursion bumps the recursion depth counter and returns a function
// that restores it, plus an error if the configured limit (§6) was
// exceeded. Every recursive entry point in this package (simplify, unify,
// type-of) calls this so runaway type functions fail structurally instead
// of blowing the Go stack.
func (c *Checker) enterRecursion() (func(), *tcerr.TcError) {
	c.depth++
	if c.depth > c.RecursionDepthLimit {
		depth := c.depth
		c.depth--
		return func() {}, &tcerr.TcError{
			Code:  tcerr.CodeRecursionDepthExceeded,
			Depth: depth,
			Limit: c.RecursionDepthLimit,
		}
	}
	return func() { c.depth-- }, nil
}
