package check

import (
	"github.com/hash-org/lang/internal/subst"
	"github.com/hash-org/lang/internal/tcerr"
	"github.com/hash-org/lang/internal/term"
)

// simplifyAccess resolves Access{subject, name, op} per §4.7.1: the
// subject is simplified first, then dispatched on its kind. Distribution
// over Union/Merge/SetBound happens before any kind-specific lookup.
func (c *Checker) simplifyAccess(id term.TermId, n *term.Access) (term.TermId, *tcerr.TcError) {
	subject, err := c.Simplify(n.Subject)
	if err != nil {
		return 0, err
	}

	switch s := c.Store.Term(subject).(type) {
	case *term.Union:
		newTerms := make([]term.TermId, len(s.Terms))
		for i, t := range s.Terms {
			access := c.Store.CreateTerm(&term.Access{Subject: t, Name: n.Name, Op: n.Op})
			simplified, err := c.Simplify(access)
			if err != nil {
				return 0, err
			}
			newTerms[i] = simplified
		}
		return c.simplifyUnion(0, &term.Union{Terms: newTerms})

	case *term.Merge:
		results := make([]term.TermId, 0, len(s.Terms))
		for _, t := range s.Terms {
			access := c.Store.CreateTerm(&term.Access{Subject: t, Name: n.Name, Op: n.Op})
			simplified, aErr := c.Simplify(access)
			if aErr == nil {
				results = append(results, simplified)
			}
		}
		switch len(results) {
		case 0:
			return id, nil
		case 1:
			return results[0], nil
		default:
			return 0, &tcerr.TcError{Code: tcerr.CodeAmbiguousAccess, Name: n.Name, Subject: subject, Results: results}
		}

	case *term.SetBound:
		inner := c.Store.CreateTerm(&term.Access{Subject: s.Term, Name: n.Name, Op: n.Op})
		simplified, err := c.Simplify(inner)
		if err != nil {
			return 0, err
		}
		if len(c.Discover.FreeBoundVars(simplified)) == 0 {
			return simplified, nil
		}
		return c.Store.CreateTerm(&term.SetBound{Term: simplified, Scope: s.Scope}), nil

	case *term.Level3Term:
		return 0, &tcerr.TcError{Code: tcerr.CodeUnsupportedPropertyAccess, Value: subject, Name: n.Name}

	case *term.Level2Term:
		switch v := s.Value.(type) {
		case *term.Trt:
			if n.Op != term.Namespace {
				return 0, &tcerr.TcError{Code: tcerr.CodeUnsupportedPropertyAccess, Value: subject, Name: n.Name}
			}
			return c.resolveNamespaceMember(c.Store.TrtDef(v.Def).Members, n.Name, subject)
		case *term.AnyTy:
			return 0, &tcerr.TcError{Code: tcerr.CodeUnsupportedAccess, Value: subject, Name: n.Name}
		}

	case *term.Level1Term:
		switch v := s.Value.(type) {
		case *term.ModuleTy:
			if n.Op != term.Namespace {
				return 0, &tcerr.TcError{Code: tcerr.CodeUnsupportedPropertyAccess, Value: subject, Name: n.Name}
			}
			return c.resolveNamespaceMember(c.Store.ModDef(v.Def).Members, n.Name, subject)
		case *term.NominalTy:
			def := c.Store.NominalDef(v.Def)
			switch nd := def.(type) {
			case *term.EnumDef:
				if n.Op != term.Namespace {
					return 0, &tcerr.TcError{Code: tcerr.CodeUnsupportedPropertyAccess, Value: subject, Name: n.Name}
				}
				if variant, ok := nd.Variants[n.Name.Name]; ok {
					_ = variant
					return c.Store.CreateTerm(&term.Level0Term{Value: &term.EnumVariant{Enum: v.Def, Variant: n.Name}}), nil
				}
				return 0, &tcerr.TcError{Code: tcerr.CodeUnresolvedNameInValue, Name: n.Name, Value: subject, Op: n.Op}
			case *term.StructDef:
				if n.Op != term.Namespace {
					return 0, &tcerr.TcError{Code: tcerr.CodeUnsupportedPropertyAccess, Value: subject, Name: n.Name}
				}
				// Structs carry no member scope of their own; methods live
				// on the trait-impl modules registered against them (§4.7.1,
				// §8 scenario 5's `d.hash()` path starts here via the
				// Rt(ty)::name namespace lookup in simplifyPropertyAccessOnRt).
				return c.resolveImplMember(v.Def, n.Name, subject)
			default:
				return 0, &tcerr.TcError{Code: tcerr.CodeUnsupportedAccess, Value: subject, Name: n.Name}
			}
		case *term.Tuple, *term.Fn:
			return 0, &tcerr.TcError{Code: tcerr.CodeUnsupportedAccess, Value: subject, Name: n.Name}
		}

	case *term.Level0Term:
		if rt, ok := s.Value.(*term.Rt); ok {
			return c.simplifyPropertyAccessOnRt(subject, rt, n)
		}
	}

	return 0, &tcerr.TcError{Code: tcerr.CodeUnsupportedAccess, Value: subject, Name: n.Name}
}

// resolveNamespaceMember looks name up in a definition's member scope and
// simplifies a ScopeVar pointing at that member; a name the scope lacks is
// an UnresolvedNameInValue error.
func (c *Checker) resolveNamespaceMember(scopeId term.ScopeId, name term.Ident, subject term.TermId) (term.TermId, *tcerr.TcError) {
	sc := c.Store.Scope(scopeId)
	idx, ok := sc.IndexOf(name)
	if !ok {
		return 0, &tcerr.TcError{Code: tcerr.CodeUnresolvedNameInValue, Name: name, Value: subject, Op: term.Namespace}
	}
	sv := c.Store.CreateTerm(&term.ScopeVar{Name: name, Scope: scopeId, Index: idx})
	return c.Simplify(sv)
}

// resolveImplMember looks name up across every trait-impl module registered
// against def (via ImplsForNominal), the linkage that lets `Dog::hash`
// (and, through simplifyPropertyAccessOnRt, `d.hash()`) find a method
// defined in `impl Hash for Dog` even though StructDef itself has no member
// scope. Ambiguity between two impls providing the same name is reported
// the same way Merge subject access reports it.
func (c *Checker) resolveImplMember(def term.NominalDefId, name term.Ident, subject term.TermId) (term.TermId, *tcerr.TcError) {
	impls := c.Store.ImplsForNominal(def)
	results := make([]term.TermId, 0, len(impls))
	for _, implId := range impls {
		sc := c.Store.Scope(c.Store.ModDef(implId).Members)
		idx, ok := sc.IndexOf(name)
		if !ok {
			continue
		}
		sv := c.Store.CreateTerm(&term.ScopeVar{Name: name, Scope: c.Store.ModDef(implId).Members, Index: idx})
		simplified, err := c.Simplify(sv)
		if err != nil {
			return 0, err
		}
		results = append(results, simplified)
	}
	switch len(results) {
	case 0:
		return 0, &tcerr.TcError{Code: tcerr.CodeUnresolvedNameInValue, Name: name, Value: subject, Op: term.Namespace}
	case 1:
		return results[0], nil
	default:
		return 0, &tcerr.TcError{Code: tcerr.CodeAmbiguousAccess, Name: name, Subject: subject, Results: results}
	}
}

// simplifyPropertyAccessOnRt implements the Rt(ty) property-access rule:
// direct struct/tuple field, else a method synthesised from a namespace
// member whose first parameter unifies with ty.
func (c *Checker) simplifyPropertyAccessOnRt(subject term.TermId, rt *term.Rt, n *term.Access) (term.TermId, *tcerr.TcError) {
	tyTerm := c.Store.Term(rt.Ty)
	if l1, ok := tyTerm.(*term.Level1Term); ok {
		var fieldParams term.ParamsId
		hasFields := false
		switch v := l1.Value.(type) {
		case *term.Tuple:
			fieldParams, hasFields = v.Params, true
		case *term.NominalTy:
			if sd, ok := c.Store.NominalDef(v.Def).(*term.StructDef); ok {
				if ef, ok := sd.Fields.(term.ExplicitFields); ok {
					fieldParams, hasFields = ef.Fields, true
				}
			}
		}
		if hasFields {
			if idx, param, ok := c.Store.Params(fieldParams).GetByName(n.Name); ok {
				_ = idx
				return c.Store.CreateTerm(&term.Level0Term{Value: &term.Rt{Ty: param.Ty}}), nil
			}
		}
	}

	namespaceAccess := c.Store.CreateTerm(&term.Access{Subject: rt.Ty, Name: n.Name, Op: term.Namespace})
	candidate, nErr := c.Simplify(namespaceAccess)
	if nErr == nil {
		if fnParams, fnReturn, ok := c.asCallable(candidate); ok {
			params := c.Store.Params(fnParams)
			if len(params.Items) > 0 {
				_, uErr := c.Unify(params.Items[0].Ty, rt.Ty, subst.Sub{})
				if uErr == nil {
					restParams := c.Store.CreateParams(term.Params{Origin: params.Origin, Items: params.Items[1:]})
					fnTy := c.Store.CreateTerm(&term.Level1Term{Value: &term.Fn{Params: restParams, Return: fnReturn}})
					// Rt-wrapped so the synthesised method is itself a
					// callable FnCall subject (§4.7.4's Level0Term/Rt case),
					// not just a bare type — `d.hash()` must still reduce
					// to Rt(u64) through the ordinary call path.
					return c.Store.CreateTerm(&term.Level0Term{Value: &term.Rt{Ty: fnTy}}), nil
				}
			}
		}
	}

	return 0, &tcerr.TcError{Code: tcerr.CodeUnresolvedNameInValue, Name: n.Name, Value: subject, Op: n.Op}
}

// asCallable extracts the (params, return) pair of a namespace member that
// can be called with a leading self-like argument: either a TyFnTy (a
// generic type-function's type) or a concrete Level1 Fn (an ordinary
// method's type, the common case for `impl Trt for Nominal` members).
func (c *Checker) asCallable(id term.TermId) (term.ParamsId, term.TermId, bool) {
	switch t := c.Store.Term(id).(type) {
	case *term.TyFnTy:
		return t.Params, t.ReturnTy, true
	case *term.Level1Term:
		if fn, ok := t.Value.(*term.Fn); ok {
			return fn.Params, fn.Return, true
		}
	}
	return 0, 0, false
}
