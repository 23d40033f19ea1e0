// Package discover implements the Discoverer (§4.6): enumerating the free
// substitution variables and free bound variables of a term, and pushing a
// SetBound scope down through a term's structure so nested subterms see the
// same witnessed bindings as their parent.
package discover

import (
	"github.com/hash-org/lang/internal/scope"
	"github.com/hash-org/lang/internal/term"
)

// Discoverer walks terms to collect free variables and to push SetBound
// wrappers down to leaves that actually mention a bound name.
type Discoverer struct {
	store  *term.GlobalStore
	scopes *scope.Manager
}

// New creates a Discoverer over the given store, using scopes to build the
// filtered witness scopes ApplySetBoundToTerm's leaf-wrap step needs (§4.6).
func New(store *term.GlobalStore, scopes *scope.Manager) *Discoverer {
	return &Discoverer{store: store, scopes: scopes}
}

// FreeSubVars returns every Unresolved resolution id and free Var name
// reachable from id, accumulated the way the teacher's collectFreeTypeVars
// walks a Type: a map passed down through the recursion, not rebuilt at
// each level.
func (d *Discoverer) FreeSubVars(id term.TermId) map[subVarKey]bool {
	free := make(map[subVarKey]bool)
	d.collectFreeSubVars(id, free)
	return free
}

// subVarKey is a comparable summary of a free substitution variable, either
// an Unresolved resolution id or a free Var name.
type subVarKey struct {
	isResolution bool
	resolutionId uint64
	name         term.Ident
}

func resolutionKey(id uint64) subVarKey { return subVarKey{isResolution: true, resolutionId: id} }
func nameKey(name term.Ident) subVarKey { return subVarKey{name: name} }

func (d *Discoverer) collectFreeSubVars(id term.TermId, free map[subVarKey]bool) {
	switch n := d.store.Term(id).(type) {
	case *term.Var:
		free[nameKey(n.Name)] = true
	case *term.Unresolved:
		free[resolutionKey(n.ResolutionId)] = true
	case *term.Access:
		d.collectFreeSubVars(n.Subject, free)
	case *term.Merge:
		for _, t := range n.Terms {
			d.collectFreeSubVars(t, free)
		}
	case *term.Union:
		for _, t := range n.Terms {
			d.collectFreeSubVars(t, free)
		}
	case *term.TyFn:
		d.collectFreeSubVarsInParams(n.GeneralParams, free)
		d.collectFreeSubVars(n.GeneralReturnTy, free)
		for _, c := range n.Cases {
			d.collectFreeSubVarsInParams(c.Params, free)
			d.collectFreeSubVars(c.ReturnTy, free)
			d.collectFreeSubVars(c.ReturnValue, free)
		}
	case *term.TyFnTy:
		d.collectFreeSubVarsInParams(n.Params, free)
		d.collectFreeSubVars(n.ReturnTy, free)
	case *term.TyFnCall:
		d.collectFreeSubVars(n.Subject, free)
		d.collectFreeSubVarsInArgs(n.Args, free)
	case *term.SetBound:
		d.collectFreeSubVars(n.Term, free)
	case *term.TyOf:
		d.collectFreeSubVars(n.Term, free)
	case *term.Level0Term:
		d.collectFreeSubVarsL0(n.Value, free)
	case *term.Level1Term:
		d.collectFreeSubVarsL1(n.Value, free)
	}
	// BoundVar, ScopeVar, Root, Level2Term, Level3Term contribute nothing:
	// a BoundVar is never free by definition, and a ScopeVar's binding
	// lives in its scope rather than the term itself.
}

func (d *Discoverer) collectFreeSubVarsInParams(id term.ParamsId, free map[subVarKey]bool) {
	for _, p := range d.store.Params(id).Items {
		d.collectFreeSubVars(p.Ty, free)
		if p.DefaultValue != nil {
			d.collectFreeSubVars(*p.DefaultValue, free)
		}
	}
}

func (d *Discoverer) collectFreeSubVarsInArgs(id term.ArgsId, free map[subVarKey]bool) {
	for _, a := range d.store.Args(id).Items {
		d.collectFreeSubVars(a.Value, free)
	}
}

func (d *Discoverer) collectFreeSubVarsL0(v term.L0Value, free map[subVarKey]bool) {
	switch n := v.(type) {
	case *term.Rt:
		d.collectFreeSubVars(n.Ty, free)
	case *term.FnLit:
		d.collectFreeSubVars(n.FnTy, free)
		d.collectFreeSubVars(n.Body, free)
	case *term.FnCall:
		d.collectFreeSubVars(n.Subject, free)
		d.collectFreeSubVarsInArgs(n.Args, free)
	case *term.TupleLit:
		d.collectFreeSubVarsInArgs(n.Args, free)
	case *term.Constructed:
		d.collectFreeSubVars(n.Subject, free)
		d.collectFreeSubVarsInArgs(n.Members, free)
	}
}

func (d *Discoverer) collectFreeSubVarsL1(v term.L1Value, free map[subVarKey]bool) {
	switch n := v.(type) {
	case *term.Fn:
		d.collectFreeSubVarsInParams(n.Params, free)
		d.collectFreeSubVars(n.Return, free)
	case *term.Tuple:
		d.collectFreeSubVarsInParams(n.Params, free)
	}
}

// ContainsResolution reports whether id's free sub-vars include the given
// Unresolved resolution id — the occurs check the unifier runs before
// binding a hole, so `?0 = f(?0)` is rejected instead of looping forever.
func (d *Discoverer) ContainsResolution(id term.TermId, resolutionId uint64) bool {
	free := d.FreeSubVars(id)
	return free[resolutionKey(resolutionId)]
}

// FreeBoundVars returns the names of every BoundVar reachable from id that
// is not itself introduced by a TyFn case nested inside id — the set a
// caller must close over (or reject as unresolved) before the term can
// leave its binder's scope.
func (d *Discoverer) FreeBoundVars(id term.TermId) map[term.Ident]bool {
	free := make(map[term.Ident]bool)
	d.collectFreeBoundVars(id, free, map[term.Ident]bool{})
	return free
}

func (d *Discoverer) collectFreeBoundVars(id term.TermId, free map[term.Ident]bool, bound map[term.Ident]bool) {
	switch n := d.store.Term(id).(type) {
	case *term.BoundVar:
		if !bound[n.Name] {
			free[n.Name] = true
		}
	case *term.Access:
		d.collectFreeBoundVars(n.Subject, free, bound)
	case *term.Merge:
		for _, t := range n.Terms {
			d.collectFreeBoundVars(t, free, bound)
		}
	case *term.Union:
		for _, t := range n.Terms {
			d.collectFreeBoundVars(t, free, bound)
		}
	case *term.TyFn:
		inner := shadow(bound, d.store.Params(n.GeneralParams))
		d.collectFreeBoundVarsInParams(n.GeneralParams, free, bound)
		d.collectFreeBoundVars(n.GeneralReturnTy, free, inner)
		for _, c := range n.Cases {
			caseInner := shadow(bound, d.store.Params(c.Params))
			d.collectFreeBoundVarsInParams(c.Params, free, bound)
			d.collectFreeBoundVars(c.ReturnTy, free, caseInner)
			d.collectFreeBoundVars(c.ReturnValue, free, caseInner)
		}
	case *term.TyFnTy:
		inner := shadow(bound, d.store.Params(n.Params))
		d.collectFreeBoundVarsInParams(n.Params, free, bound)
		d.collectFreeBoundVars(n.ReturnTy, free, inner)
	case *term.TyFnCall:
		d.collectFreeBoundVars(n.Subject, free, bound)
		d.collectFreeBoundVarsInArgs(n.Args, free, bound)
	case *term.SetBound:
		d.collectFreeBoundVars(n.Term, free, bound)
	case *term.TyOf:
		d.collectFreeBoundVars(n.Term, free, bound)
	case *term.Level0Term:
		d.collectFreeBoundVarsL0(n.Value, free, bound)
	case *term.Level1Term:
		d.collectFreeBoundVarsL1(n.Value, free, bound)
	}
}

func shadow(bound map[term.Ident]bool, params term.Params) map[term.Ident]bool {
	next := make(map[term.Ident]bool, len(bound)+len(params.Items))
	for k := range bound {
		next[k] = true
	}
	for _, p := range params.Items {
		if p.Name != nil {
			next[*p.Name] = true
		}
	}
	return next
}

func (d *Discoverer) collectFreeBoundVarsInParams(id term.ParamsId, free map[term.Ident]bool, bound map[term.Ident]bool) {
	for _, p := range d.store.Params(id).Items {
		d.collectFreeBoundVars(p.Ty, free, bound)
		if p.DefaultValue != nil {
			d.collectFreeBoundVars(*p.DefaultValue, free, bound)
		}
	}
}

func (d *Discoverer) collectFreeBoundVarsInArgs(id term.ArgsId, free map[term.Ident]bool, bound map[term.Ident]bool) {
	for _, a := range d.store.Args(id).Items {
		d.collectFreeBoundVars(a.Value, free, bound)
	}
}

func (d *Discoverer) collectFreeBoundVarsL0(v term.L0Value, free map[term.Ident]bool, bound map[term.Ident]bool) {
	switch n := v.(type) {
	case *term.Rt:
		d.collectFreeBoundVars(n.Ty, free, bound)
	case *term.FnLit:
		d.collectFreeBoundVars(n.FnTy, free, bound)
		d.collectFreeBoundVars(n.Body, free, bound)
	case *term.FnCall:
		d.collectFreeBoundVars(n.Subject, free, bound)
		d.collectFreeBoundVarsInArgs(n.Args, free, bound)
	case *term.TupleLit:
		d.collectFreeBoundVarsInArgs(n.Args, free, bound)
	case *term.Constructed:
		d.collectFreeBoundVars(n.Subject, free, bound)
		d.collectFreeBoundVarsInArgs(n.Members, free, bound)
	}
}

func (d *Discoverer) collectFreeBoundVarsL1(v term.L1Value, free map[term.Ident]bool, bound map[term.Ident]bool) {
	switch n := v.(type) {
	case *term.Fn:
		d.collectFreeBoundVarsInParams(n.Params, free, bound)
		d.collectFreeBoundVars(n.Return, free, bound)
	case *term.Tuple:
		d.collectFreeBoundVarsInParams(n.Params, free, bound)
	}
}

// ApplySetBoundToTerm pushes a SetBound wrapper down through id's structure,
// stopping at any subterm that does not mention a BoundVar the scope could
// witness, so the result wraps only the leaves that need it rather than
// blanket-wrapping the whole term. ignoreBoundVars holds names the
// free-bound-var scan treats as already bound; ApplySetBoundToTerm starts
// it empty and the recursion passes it down unchanged.
func (d *Discoverer) ApplySetBoundToTerm(scope term.ScopeId, id term.TermId) term.TermId {
	return d.applySetBoundRec(scope, id, map[term.Ident]bool{})
}

func (d *Discoverer) applySetBoundRec(scope term.ScopeId, id term.TermId, ignoreBoundVars map[term.Ident]bool) term.TermId {
	free := map[term.Ident]bool{}
	d.collectFreeBoundVars(id, free, ignoreBoundVars)
	sc := d.store.Scope(scope)
	for name := range free {
		if _, ok := sc.IndexOf(name); !ok {
			delete(free, name)
		}
	}
	if len(free) == 0 {
		// Nothing in id could possibly be resolved by scope; leave as-is.
		return id
	}

	switch n := d.store.Term(id).(type) {
	case *term.BoundVar:
		return d.store.CreateTerm(&term.SetBound{Term: id, Scope: scope})

	case *term.Access:
		newSubject := d.applySetBoundRec(scope, n.Subject, ignoreBoundVars)
		if newSubject == n.Subject {
			return id
		}
		return d.store.CreateTerm(&term.Access{Subject: newSubject, Name: n.Name, Op: n.Op})

	case *term.Merge:
		changed := false
		newTerms := make([]term.TermId, len(n.Terms))
		for i, t := range n.Terms {
			newTerms[i] = d.applySetBoundRec(scope, t, ignoreBoundVars)
			if newTerms[i] != t {
				changed = true
			}
		}
		if !changed {
			return id
		}
		return d.store.CreateTerm(&term.Merge{Terms: newTerms})

	case *term.Union:
		changed := false
		newTerms := make([]term.TermId, len(n.Terms))
		for i, t := range n.Terms {
			newTerms[i] = d.applySetBoundRec(scope, t, ignoreBoundVars)
			if newTerms[i] != t {
				changed = true
			}
		}
		if !changed {
			return id
		}
		return d.store.CreateTerm(&term.Union{Terms: newTerms})

	case *term.TyFnCall:
		newSubject := d.applySetBoundRec(scope, n.Subject, ignoreBoundVars)
		if newSubject == n.Subject {
			return id
		}
		return d.store.CreateTerm(&term.TyFnCall{Subject: newSubject, Args: n.Args})

	case *term.TyOf:
		newInner := d.applySetBoundRec(scope, n.Term, ignoreBoundVars)
		if newInner == n.Term {
			return id
		}
		return d.store.CreateTerm(&term.TyOf{Term: newInner})

	case *term.SetBound:
		// Already wrapped by an inner, more specific set-bound scope —
		// leave opaque rather than layering a second wrapper on top.
		return id

	default:
		// Any other structure that still mentions a free bound var (a
		// TyFn's own cases, a Level0/Level1 payload) is wrapped wholesale
		// rather than recursed into piecewise, since the set-bound scope
		// witnesses the whole subterm's binder at once. Re-wrap with a
		// filtered scope retaining only the names id actually references
		// (§4.6), not the full scope, so wrapped terms stay small and
		// structural unification against them stays shallow.
		filtered := d.scopes.FilterScope(scope, func(m term.Member) bool { return free[m.Name] })
		return d.store.CreateTerm(&term.SetBound{Term: id, Scope: filtered})
	}
}
