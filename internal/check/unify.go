package check

import (
	"github.com/hash-org/lang/internal/subst"
	"github.com/hash-org/lang/internal/tcerr"
	"github.com/hash-org/lang/internal/term"
)

// Unify attempts to make src and target equal under sub, extending it with
// whatever bindings are needed and failing with CodeCannotUnify (or a more
// specific params/args code) if they cannot agree (§4.5). Like the
// teacher's Unifier.Unify, the current substitution is applied to both
// sides before dispatching on structure.
func (c *Checker) Unify(src, target term.TermId, sub subst.Sub) (subst.Sub, *tcerr.TcError) {
	done, recErr := c.enterRecursion()
	defer done()
	if recErr != nil {
		return nil, recErr
	}

	src = c.Sub.ApplyTerm(sub, src)
	target = c.Sub.ApplyTerm(sub, target)

	if src == target {
		return sub, nil
	}

	switch s := c.Store.Term(src).(type) {
	case *term.Unresolved:
		return c.bindUnresolved(s.ResolutionId, target, sub, src, target)

	case *term.Var:
		if t, ok := c.Store.Term(target).(*term.Var); ok && t.Name == s.Name {
			return sub, nil
		}

	case *term.BoundVar:
		if t, ok := c.Store.Term(target).(*term.BoundVar); ok && t.Name == s.Name {
			return sub, nil
		}

	case *term.ScopeVar:
		if t, ok := c.Store.Term(target).(*term.ScopeVar); ok && t.Scope == s.Scope && t.Index == s.Index {
			return sub, nil
		}

	case *term.Access:
		if t, ok := c.Store.Term(target).(*term.Access); ok && t.Name == s.Name && t.Op == s.Op {
			return c.Unify(s.Subject, t.Subject, sub)
		}

	case *term.Merge:
		// §4.5: Merge(ts) ≡ T holds whenever T unifies with every t in ts;
		// T need not itself be a Merge. Each element's unification threads
		// the growing substitution into the next (a conjunction).
		return c.unifyMergeWithEvery(s.Terms, target, sub)

	case *term.Union:
		// §4.5: Union(ts) ≡ T holds whenever T unifies with any one t in
		// ts. Each candidate is tried against the substitution as handed
		// in, not threaded from a prior failed attempt.
		return c.unifyUnionWithAny(s.Terms, target, sub, src, target)

	case *term.TyFnTy:
		if t, ok := c.Store.Term(target).(*term.TyFnTy); ok {
			var err *tcerr.TcError
			sub, err = c.unifyParams(s.Params, t.Params, sub)
			if err != nil {
				return nil, err
			}
			return c.Unify(s.ReturnTy, t.ReturnTy, sub)
		}

	case *term.TyFnCall:
		if t, ok := c.Store.Term(target).(*term.TyFnCall); ok {
			var err *tcerr.TcError
			sub, err = c.Unify(s.Subject, t.Subject, sub)
			if err != nil {
				return nil, err
			}
			return c.unifyArgs(s.Args, t.Args, sub)
		}

	case *term.SetBound:
		if t, ok := c.Store.Term(target).(*term.SetBound); ok {
			return c.Unify(s.Term, t.Term, sub)
		}

	case *term.TyOf:
		if t, ok := c.Store.Term(target).(*term.TyOf); ok {
			return c.Unify(s.Term, t.Term, sub)
		}

	case *term.Level0Term:
		if t, ok := c.Store.Term(target).(*term.Level0Term); ok {
			return c.unifyL0(s.Value, t.Value, sub, src, target)
		}

	case *term.Level1Term:
		if t, ok := c.Store.Term(target).(*term.Level1Term); ok {
			return c.unifyL1(s.Value, t.Value, sub, src, target)
		}

	case *term.Level2Term:
		if t, ok := c.Store.Term(target).(*term.Level2Term); ok {
			return c.unifyL2(s.Value, t.Value, sub, src, target)
		}

	case *term.Level3Term:
		if _, ok := c.Store.Term(target).(*term.Level3Term); ok {
			// Both TrtKind: the only Level3 value.
			return sub, nil
		}

	case *term.Root:
		if _, ok := c.Store.Term(target).(*term.Root); ok {
			return sub, nil
		}
	}

	// target may itself be Unresolved even when src wasn't handled above
	// (e.g. src is a concrete Level1 term and target is a hole): swap and
	// retry once rather than duplicating every case symmetrically.
	if _, ok := c.Store.Term(target).(*term.Unresolved); ok {
		return c.Unify(target, src, sub)
	}

	// Symmetric counterpart of the Merge/Union cases above: src fell
	// through every case (it is not itself a Merge/Union) but target is
	// one, so the same subsumption rule from §4.5 applies with the sides
	// swapped.
	if tm, ok := c.Store.Term(target).(*term.Merge); ok {
		return c.unifyMergeWithEvery(tm.Terms, src, sub)
	}
	if tu, ok := c.Store.Term(target).(*term.Union); ok {
		return c.unifyUnionWithAny(tu.Terms, src, sub, src, target)
	}

	return nil, &tcerr.TcError{Code: tcerr.CodeCannotUnify, Src: src, Target: target}
}

// unifyMergeWithEvery implements §4.5's Merge subsumption rule: Merge(ts) ≡
// other holds iff other unifies with every t in ts. Each element's
// unification threads its resulting substitution into the next, since all
// of them must hold simultaneously under one consistent binding.
func (c *Checker) unifyMergeWithEvery(ts []term.TermId, other term.TermId, sub subst.Sub) (subst.Sub, *tcerr.TcError) {
	var err *tcerr.TcError
	for _, t := range ts {
		sub, err = c.Unify(t, other, sub)
		if err != nil {
			return nil, err
		}
	}
	return sub, nil
}

// unifyUnionWithAny implements §4.5's Union subsumption rule: Union(ts) ≡
// other holds iff other unifies with at least one t in ts. Candidates are
// tried against the substitution as handed in, not threaded from a prior
// failed attempt, since only one of them need hold.
func (c *Checker) unifyUnionWithAny(ts []term.TermId, other term.TermId, sub subst.Sub, errSrc, errTarget term.TermId) (subst.Sub, *tcerr.TcError) {
	var lastErr *tcerr.TcError
	for _, t := range ts {
		if result, err := c.Unify(t, other, sub); err == nil {
			return result, nil
		} else {
			lastErr = err
		}
	}
	if lastErr == nil {
		lastErr = &tcerr.TcError{Code: tcerr.CodeCannotUnify, Src: errSrc, Target: errTarget}
	}
	return nil, lastErr
}

func (c *Checker) bindUnresolved(resolutionId uint64, target term.TermId, sub subst.Sub, src, origTarget term.TermId) (subst.Sub, *tcerr.TcError) {
	if c.Discover.ContainsResolution(target, resolutionId) {
		return nil, &tcerr.TcError{Code: tcerr.CodeCannotUnify, Src: src, Target: origTarget}
	}
	next := make(subst.Sub, len(sub)+1)
	for k, v := range sub {
		next[k] = v
	}
	next[subst.Resolution(resolutionId)] = target
	return next, nil
}

func (c *Checker) unifyParams(p1, p2 term.ParamsId, sub subst.Sub) (subst.Sub, *tcerr.TcError) {
	a := c.Store.Params(p1)
	b := c.Store.Params(p2)
	if len(a.Items) != len(b.Items) {
		return nil, &tcerr.TcError{
			Code: tcerr.CodeCannotUnifyParams, SrcParams: p1, TargetParams: p2,
			ParamsReason: tcerr.ReasonLengthMismatch,
		}
	}
	var err *tcerr.TcError
	for i := range a.Items {
		if a.Items[i].Name != nil && b.Items[i].Name != nil && *a.Items[i].Name != *b.Items[i].Name {
			return nil, &tcerr.TcError{
				Code: tcerr.CodeCannotUnifyParams, SrcParams: p1, TargetParams: p2,
				ParamsReason: tcerr.ReasonNameMismatch, MismatchIndex: i,
			}
		}
		sub, err = c.Unify(a.Items[i].Ty, b.Items[i].Ty, sub)
		if err != nil {
			return nil, err
		}
	}
	return sub, nil
}

func (c *Checker) unifyArgs(a1, a2 term.ArgsId, sub subst.Sub) (subst.Sub, *tcerr.TcError) {
	a := c.Store.Args(a1)
	b := c.Store.Args(a2)
	if len(a.Items) != len(b.Items) {
		return nil, &tcerr.TcError{
			Code: tcerr.CodeCannotUnifyArgs, SrcArgs: a1, TargetArgs: a2,
			ParamsReason: tcerr.ReasonLengthMismatch,
		}
	}
	var err *tcerr.TcError
	for i := range a.Items {
		sub, err = c.Unify(a.Items[i].Value, b.Items[i].Value, sub)
		if err != nil {
			return nil, err
		}
	}
	return sub, nil
}

func (c *Checker) unifyL0(v1, v2 term.L0Value, sub subst.Sub, src, target term.TermId) (subst.Sub, *tcerr.TcError) {
	switch a := v1.(type) {
	case *term.Rt:
		if b, ok := v2.(*term.Rt); ok {
			return c.Unify(a.Ty, b.Ty, sub)
		}
	case *term.Lit:
		if b, ok := v2.(*term.Lit); ok && a.Kind == b.Kind && a.Value == b.Value {
			return sub, nil
		}
	case *term.FnLit:
		if b, ok := v2.(*term.FnLit); ok {
			var err *tcerr.TcError
			sub, err = c.Unify(a.FnTy, b.FnTy, sub)
			if err != nil {
				return nil, err
			}
			return c.Unify(a.Body, b.Body, sub)
		}
	case *term.FnCall:
		if b, ok := v2.(*term.FnCall); ok {
			var err *tcerr.TcError
			sub, err = c.Unify(a.Subject, b.Subject, sub)
			if err != nil {
				return nil, err
			}
			return c.unifyArgs(a.Args, b.Args, sub)
		}
	case *term.TupleLit:
		if b, ok := v2.(*term.TupleLit); ok {
			return c.unifyArgs(a.Args, b.Args, sub)
		}
	case *term.Constructed:
		if b, ok := v2.(*term.Constructed); ok {
			var err *tcerr.TcError
			sub, err = c.Unify(a.Subject, b.Subject, sub)
			if err != nil {
				return nil, err
			}
			return c.unifyArgs(a.Members, b.Members, sub)
		}
	case *term.EnumVariant:
		if b, ok := v2.(*term.EnumVariant); ok && a.Enum == b.Enum && a.Variant == b.Variant {
			return sub, nil
		}
	}
	return nil, &tcerr.TcError{Code: tcerr.CodeCannotUnify, Src: src, Target: target}
}

func (c *Checker) unifyL1(v1, v2 term.L1Value, sub subst.Sub, src, target term.TermId) (subst.Sub, *tcerr.TcError) {
	switch a := v1.(type) {
	case *term.NominalTy:
		if b, ok := v2.(*term.NominalTy); ok && a.Def == b.Def {
			return sub, nil
		}
	case *term.Tuple:
		if b, ok := v2.(*term.Tuple); ok {
			return c.unifyParams(a.Params, b.Params, sub)
		}
	case *term.Fn:
		if b, ok := v2.(*term.Fn); ok {
			var err *tcerr.TcError
			sub, err = c.unifyParams(a.Params, b.Params, sub)
			if err != nil {
				return nil, err
			}
			return c.Unify(a.Return, b.Return, sub)
		}
	case *term.ModuleTy:
		if b, ok := v2.(*term.ModuleTy); ok && a.Def == b.Def {
			return sub, nil
		}
	}
	return nil, &tcerr.TcError{Code: tcerr.CodeCannotUnify, Src: src, Target: target}
}

func (c *Checker) unifyL2(v1, v2 term.L2Value, sub subst.Sub, src, target term.TermId) (subst.Sub, *tcerr.TcError) {
	switch a := v1.(type) {
	case *term.Trt:
		if b, ok := v2.(*term.Trt); ok && a.Def == b.Def {
			return sub, nil
		}
		if _, ok := v2.(*term.AnyTy); ok {
			return sub, nil
		}
	case *term.AnyTy:
		// AnyTy unifies with any Level-2 term.
		return sub, nil
	}
	return nil, &tcerr.TcError{Code: tcerr.CodeCannotUnify, Src: src, Target: target}
}
