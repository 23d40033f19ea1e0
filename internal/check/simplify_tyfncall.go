package check

import (
	"github.com/hash-org/lang/internal/pairing"
	"github.com/hash-org/lang/internal/subst"
	"github.com/hash-org/lang/internal/tcerr"
	"github.com/hash-org/lang/internal/term"
)

// simplifyTyFnCall implements §4.7.2: simplify the subject, unify the call
// args against its general params, then try every case in turn, wrapping
// each successful case's return value in a SetBound scope witnessing the
// matched parameters. Multiple successful cases merge into one Merge term.
func (c *Checker) simplifyTyFnCall(id term.TermId, n *term.TyFnCall) (term.TermId, *tcerr.TcError) {
	subject, err := c.Simplify(n.Subject)
	if err != nil {
		return 0, err
	}

	tyFn, ok := c.asTyFn(subject)
	if !ok {
		if _, isMerge := c.Store.Term(subject).(*term.Merge); isMerge {
			return 0, &tcerr.TcError{Code: tcerr.CodeUnsupportedTyFnApplication, Subject: subject}
		}
		newArgs, aErr := c.simplifyArgsStructurally(n.Args)
		if aErr != nil {
			return 0, aErr
		}
		if subject == n.Subject && newArgs == n.Args {
			return id, nil
		}
		return c.Store.CreateTerm(&term.TyFnCall{Subject: subject, Args: newArgs}), nil
	}

	generalSub, gErr := c.unifyArgsAgainstParams(tyFn.GeneralParams, n.Args, subject)
	if gErr != nil {
		return 0, gErr
	}
	args := c.Sub.ApplyArgs(generalSub, n.Args)

	var results []term.TermId
	var caseErrors []*tcerr.TcError
	for _, caseDef := range tyFn.Cases {
		result, cErr := c.tryTyFnCase(caseDef, args, subject)
		if cErr != nil {
			caseErrors = append(caseErrors, cErr)
			continue
		}
		results = append(results, result)
	}

	switch len(results) {
	case 0:
		return 0, &tcerr.TcError{
			Code: tcerr.CodeInvalidTyFnApplication,
			TypeFn: subject, Cases: tyFn.Cases, Args: args,
			UnificationErrors: caseErrors,
		}
	case 1:
		return results[0], nil
	default:
		return c.Store.CreateTerm(&term.Merge{Terms: results}), nil
	}
}

// unifyArgsAgainstParams pairs args to params by name/position (§4.4) and
// unifies each parameter's declared type against the inferred type of the
// matching argument value, accumulating one substitution.
func (c *Checker) unifyArgsAgainstParams(paramsId term.ParamsId, argsId term.ArgsId, subject term.TermId) (subst.Sub, *tcerr.TcError) {
	pairs, pErr := pairing.PairWithConfig(c.Store.Params(paramsId), c.Store.Args(argsId), tcerr.OriginArgsList, subject, subject, c.InferUnnamedParamDefaults)
	if pErr != nil {
		return nil, pErr
	}
	sub := subst.Sub{}
	for _, pr := range pairs {
		argTy, tErr := c.TypeOf(pr.Arg.Value)
		if tErr != nil {
			return nil, tErr
		}
		var uErr *tcerr.TcError
		sub, uErr = c.Unify(pr.Param.Ty, argTy, sub)
		if uErr != nil {
			return nil, uErr
		}
	}
	return sub, nil
}

func (c *Checker) tryTyFnCase(caseDef term.TyFnCase, args term.ArgsId, subject term.TermId) (term.TermId, *tcerr.TcError) {
	if _, uErr := c.unifyArgsAgainstParams(caseDef.Params, args, subject); uErr != nil {
		return 0, uErr
	}
	pairs, pErr := pairing.PairWithConfig(c.Store.Params(caseDef.Params), c.Store.Args(args), tcerr.OriginArgsList, 0, subject, c.InferUnnamedParamDefaults)
	if pErr != nil {
		return 0, pErr
	}
	members := make([]term.Member, 0, len(pairs))
	for _, pr := range pairs {
		if pr.Param.Name == nil {
			continue
		}
		members = append(members, term.Member{
			Name: *pr.Param.Name,
			Data: term.InitialisedWithTy{Ty: pr.Param.Ty, Value: pr.Arg.Value},
		})
	}
	scope := c.Store.CreateScope(term.Scope{Kind: term.SetBound, Members: members})
	wrapped := c.Discover.ApplySetBoundToTerm(scope, caseDef.ReturnValue)
	return c.Simplify(wrapped)
}

func (c *Checker) asTyFn(id term.TermId) (*term.TyFn, bool) {
	t, ok := c.Store.Term(id).(*term.TyFn)
	return t, ok
}

func (c *Checker) simplifyArgsStructurally(id term.ArgsId) (term.ArgsId, *tcerr.TcError) {
	args := c.Store.Args(id)
	changed := false
	newItems := make([]term.Arg, len(args.Items))
	for i, a := range args.Items {
		v, err := c.Simplify(a.Value)
		if err != nil {
			return id, err
		}
		if v != a.Value {
			changed = true
		}
		newItems[i] = term.Arg{Name: a.Name, Value: v}
	}
	if !changed {
		return id, nil
	}
	return c.Store.CreateArgs(term.Args{Origin: args.Origin, Items: newItems}), nil
}
