package check

import (
	"github.com/hash-org/lang/internal/tcerr"
	"github.com/hash-org/lang/internal/term"
)

// simplifyFnCall implements §4.7.4. A FnCall subject that resolves to a
// constructable nominal becomes a Constructed value; otherwise the subject
// is resolved to a callable FnTy and the call reduces to Rt(return type).
func (c *Checker) simplifyFnCall(id term.TermId, n *term.FnCall) (term.TermId, *tcerr.TcError) {
	subject, err := c.Simplify(n.Subject)
	if err != nil {
		return 0, err
	}

	if structDef, structDefId, ok := c.asConstructableStruct(subject); ok {
		fields, hasFields := structDef.Fields.(term.ExplicitFields)
		if !hasFields {
			return 0, &tcerr.TcError{Code: tcerr.CodeNoConstructorOnType, Subject: subject}
		}
		members, iErr := c.inferArgsFromParams(fields.Fields, n.Args, structDefId, subject)
		if iErr != nil {
			return 0, iErr
		}
		return c.Store.CreateTerm(&term.Level0Term{Value: &term.Constructed{Subject: subject, Members: members}}), nil
	}

	fnTy, fErr := c.useTermAsFnCallSubject(subject)
	if fErr != nil {
		return 0, fErr
	}

	sub, uErr := c.unifyArgsAgainstParams(fnTy.Params, n.Args, subject)
	if uErr != nil {
		return 0, uErr
	}
	returnTy := c.Sub.ApplyTerm(sub, fnTy.ReturnTy)
	return c.Store.CreateTerm(&term.Level0Term{Value: &term.Rt{Ty: returnTy}}), nil
}

// asConstructableStruct reports whether subject is (or contains, via a
// Merge) a struct nominal usable as a constructor subject.
func (c *Checker) asConstructableStruct(subject term.TermId) (*term.StructDef, term.TermId, bool) {
	switch n := c.Store.Term(subject).(type) {
	case *term.Level1Term:
		if nomTy, ok := n.Value.(*term.NominalTy); ok {
			if sd, ok := c.Store.NominalDef(nomTy.Def).(*term.StructDef); ok {
				return sd, subject, true
			}
		}
	case *term.Merge:
		for _, t := range n.Terms {
			if sd, id, ok := c.asConstructableStruct(t); ok {
				return sd, id, true
			}
		}
	}
	return nil, 0, false
}

// inferArgsFromParams pairs args to params (§4.4, via Typer.InferArgsFromParams)
// and builds the resulting Args list, the constructor's member values.
func (c *Checker) inferArgsFromParams(paramsId term.ParamsId, argsId term.ArgsId, paramsSubject, argsSubject term.TermId) (term.ArgsId, *tcerr.TcError) {
	return c.InferArgsFromParams(paramsId, argsId, paramsSubject, argsSubject)
}

// useTermAsFnCallSubject resolves subject to a callable FnTy per §4.7.4's
// case list.
func (c *Checker) useTermAsFnCallSubject(subject term.TermId) (*term.TyFnTy, *tcerr.TcError) {
	switch n := c.Store.Term(subject).(type) {
	case *term.Merge:
		var found *term.TyFnTy
		var rest []term.TermId
		for _, t := range n.Terms {
			if fnTy, err := c.useTermAsFnCallSubject(t); err == nil {
				if found != nil {
					return nil, &tcerr.TcError{Code: tcerr.CodeInvalidCallSubject, Term: subject}
				}
				found = fnTy
				continue
			}
			rest = append(rest, t)
		}
		if found == nil {
			return nil, &tcerr.TcError{Code: tcerr.CodeInvalidCallSubject, Term: subject}
		}
		returnTy := found.ReturnTy
		if len(rest) > 0 {
			merged := append([]term.TermId{returnTy}, rest...)
			returnTy = c.Store.CreateTerm(&term.Merge{Terms: merged})
		}
		return &term.TyFnTy{Params: found.Params, ReturnTy: returnTy}, nil

	case *term.SetBound:
		inner, err := c.useTermAsFnCallSubject(n.Term)
		if err != nil {
			return nil, err
		}
		return inner, nil

	case *term.Level0Term:
		switch v := n.Value.(type) {
		case *term.Rt:
			if l1, ok := c.Store.Term(v.Ty).(*term.Level1Term); ok {
				if fn, ok := l1.Value.(*term.Fn); ok {
					return &term.TyFnTy{Params: fn.Params, ReturnTy: fn.Return}, nil
				}
			}
		case *term.FnLit:
			if fnTy, ok := c.Store.Term(v.FnTy).(*term.TyFnTy); ok {
				return fnTy, nil
			}
		case *term.EnumVariant:
			def, ok := c.Store.NominalDef(v.Enum).(*term.EnumDef)
			if !ok {
				break
			}
			variant, ok := def.Variants[v.Variant.Name]
			if !ok {
				break
			}
			return &term.TyFnTy{
				Params:   variant.Fields,
				ReturnTy: c.Store.CreateTerm(&term.Level1Term{Value: &term.NominalTy{Def: v.Enum}}),
			}, nil
		}
	}
	return nil, &tcerr.TcError{Code: tcerr.CodeInvalidCallSubject, Term: subject}
}
