package check

import (
	"github.com/hash-org/lang/internal/pairing"
	"github.com/hash-org/lang/internal/tcerr"
	"github.com/hash-org/lang/internal/term"
)

// TypeOf implements infer_ty_of_term (§4.8): the term whose value is t's
// type.
func (c *Checker) TypeOf(t term.TermId) (term.TermId, *tcerr.TcError) {
	done, recErr := c.enterRecursion()
	defer done()
	if recErr != nil {
		return 0, recErr
	}

	switch n := c.Store.Term(t).(type) {
	case *term.Level0Term:
		return c.typeOfL0(n.Value)

	case *term.Level1Term:
		return c.typeOfL1(n.Value)

	case *term.Level2Term:
		switch n.Value.(type) {
		case *term.Trt:
			return c.Store.CreateTerm(&term.Level3Term{Value: &term.TrtKind{}}), nil
		case *term.AnyTy:
			return c.Store.CreateTerm(&term.Level3Term{Value: &term.TrtKind{}}), nil
		}

	case *term.Level3Term:
		return c.Store.CreateTerm(&term.Root{}), nil

	case *term.TyFn:
		return c.Store.CreateTerm(&term.TyFnTy{Params: n.GeneralParams, ReturnTy: n.GeneralReturnTy}), nil

	case *term.TyFnCall:
		simplified, err := c.Simplify(t)
		if err != nil {
			return 0, err
		}
		if simplified == t {
			// Could not reduce further (e.g. subject still unresolved):
			// no type can be inferred, so report that below.
			break
		}
		return c.TypeOf(simplified)

	case *term.SetBound:
		inner, err := c.TypeOf(n.Term)
		if err != nil {
			return 0, err
		}
		if len(c.Discover.FreeBoundVars(inner)) == 0 {
			return inner, nil
		}
		return c.Store.CreateTerm(&term.SetBound{Term: inner, Scope: n.Scope}), nil

	case *term.ScopeVar, *term.BoundVar, *term.Var, *term.Unresolved:
		simplified, err := c.Simplify(t)
		if err != nil {
			return 0, err
		}
		if simplified != t {
			return c.TypeOf(simplified)
		}
	}

	return 0, &tcerr.TcError{Code: tcerr.CodeNeedMoreTypeAnnotationsToResolve, Term: t}
}

func (c *Checker) typeOfL0(v term.L0Value) (term.TermId, *tcerr.TcError) {
	switch n := v.(type) {
	case *term.Rt:
		return n.Ty, nil
	case *term.Lit:
		return c.nominalForLitKind(n.Kind), nil
	case *term.FnLit:
		return n.FnTy, nil
	case *term.Constructed:
		return n.Subject, nil
	case *term.EnumVariant:
		return c.Store.CreateTerm(&term.Level1Term{Value: &term.NominalTy{Def: n.Enum}}), nil
	case *term.TupleLit:
		return c.Store.CreateTerm(&term.Level1Term{Value: &term.Tuple{Params: c.argsAsParams(n.Args)}}), nil
	case *term.FnCall:
		simplified, err := c.Simplify(c.Store.CreateTerm(&term.Level0Term{Value: n}))
		if err != nil {
			return 0, err
		}
		return c.TypeOf(simplified)
	}
	return 0, &tcerr.TcError{Code: tcerr.CodeNeedMoreTypeAnnotationsToResolve}
}

func (c *Checker) typeOfL1(v term.L1Value) (term.TermId, *tcerr.TcError) {
	switch n := v.(type) {
	case *term.Tuple:
		return c.Store.CreateTerm(&term.Level2Term{Value: &term.AnyTy{}}), nil
	case *term.Fn:
		return c.Store.CreateTerm(&term.Level2Term{Value: &term.AnyTy{}}), nil
	case *term.NominalTy:
		return c.Store.CreateTerm(&term.Level2Term{Value: &term.AnyTy{}}), nil
	case *term.ModuleTy:
		def := c.Store.ModDef(n.Def)
		if def.Origin == term.OriginTrtImpl && def.Impl != nil {
			return c.Store.CreateTerm(&term.Level2Term{Value: &term.Trt{Def: *def.Impl}}), nil
		}
		return c.Store.CreateTerm(&term.Level2Term{Value: &term.AnyTy{}}), nil
	}
	return 0, &tcerr.TcError{Code: tcerr.CodeNeedMoreTypeAnnotationsToResolve}
}

// nominalForLitKind maps a literal's kind to the (conventionally named)
// primitive nominal a host driver registers for it — e.g. "int", "str".
// The checking core does not hardcode these defs; it expects the host to
// have registered a NominalDef under the matching well-known name and
// resolves it through a Var lookup in the ambient scope so primitive
// literal typing is just an ordinary name resolution.
func (c *Checker) nominalForLitKind(kind term.LitKind) term.TermId {
	name := "unknown"
	switch kind {
	case term.IntLit:
		name = "int"
	case term.FloatLit:
		name = "float"
	case term.StringLit:
		name = "str"
	case term.BoolLit:
		name = "bool"
	case term.CharLit:
		name = "char"
	}
	resolved, err := c.Scopes.ResolveNameInScopes(term.NewIdent(name), 0)
	if err != nil {
		return c.Store.CreateTerm(&term.Unresolved{ResolutionId: c.Store.NewResolutionId()})
	}
	sc := c.Store.Scope(resolved.Scope)
	idx, _ := sc.IndexOf(term.NewIdent(name))
	return c.Store.CreateTerm(&term.ScopeVar{Name: term.NewIdent(name), Scope: resolved.Scope, Index: idx})
}

func (c *Checker) argsAsParams(argsId term.ArgsId) term.ParamsId {
	args := c.Store.Args(argsId)
	items := make([]term.Param, len(args.Items))
	for i, a := range args.Items {
		ty, err := c.TypeOf(a.Value)
		if err != nil {
			ty = c.Store.CreateTerm(&term.Unresolved{ResolutionId: c.Store.NewResolutionId()})
		}
		items[i] = term.Param{Name: a.Name, Ty: ty}
	}
	return c.Store.CreateParams(term.Params{Origin: term.OriginTuple, Items: items})
}

// InferArgsFromParams implements infer_args_from_params (§4.8): pair args
// to params (§4.4) and produce a fresh ArgsId aligned with params,
// materialising default-value arguments for unsupplied named parameters.
func (c *Checker) InferArgsFromParams(paramsId term.ParamsId, argsId term.ArgsId, paramsSubject, argsSubject term.TermId) (term.ArgsId, *tcerr.TcError) {
	pairs, err := pairing.PairWithConfig(c.Store.Params(paramsId), c.Store.Args(argsId), tcerr.OriginArgsList, paramsSubject, argsSubject, c.InferUnnamedParamDefaults)
	if err != nil {
		return 0, err
	}
	items := make([]term.Arg, len(pairs))
	for i, pr := range pairs {
		items[i] = pr.Arg
	}
	return c.Store.CreateArgs(term.Args{Origin: term.OriginFn, Items: items}), nil
}
