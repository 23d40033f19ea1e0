package check

import (
	"github.com/hash-org/lang/internal/subst"
	"github.com/hash-org/lang/internal/tcerr"
	"github.com/hash-org/lang/internal/term"
)

// TermIsFnTy reports whether t reduces to Level1::Fn, looking through
// SetBound wrappers transparently (§4.9).
func (c *Checker) TermIsFnTy(t term.TermId) (bool, *tcerr.TcError) {
	simplified, err := c.Simplify(t)
	if err != nil {
		return false, err
	}
	for {
		if sb, ok := c.Store.Term(simplified).(*term.SetBound); ok {
			simplified = sb.Term
			continue
		}
		break
	}
	if l1, ok := c.Store.Term(simplified).(*term.Level1Term); ok {
		_, isFn := l1.Value.(*term.Fn)
		return isFn, nil
	}
	return false, nil
}

// ValidateRuntimeInstantiable checks that requesting Rt(ty) makes sense:
// ty must simplify to a Level1 term (§4.9 "Runtime-instantiability").
func (c *Checker) ValidateRuntimeInstantiable(ty term.TermId) *tcerr.TcError {
	simplified, err := c.Simplify(ty)
	if err != nil {
		return err
	}
	if _, ok := c.Store.Term(simplified).(*term.Level1Term); ok {
		return nil
	}
	return &tcerr.TcError{Code: tcerr.CodeTermIsNotRuntimeInstantiable, Term: ty}
}

// ValidateMerge re-runs the merge well-formedness check standalone (used
// when a Merge arrives already simplified, e.g. from a trait impl scope
// rather than through simplifyMerge's own flatten/dedupe pipeline).
func (c *Checker) ValidateMerge(mergeId term.TermId, terms []term.TermId) *tcerr.TcError {
	return c.validateMergeWellFormed(mergeId, terms)
}

// ValidateTrtImpl checks trait impl completeness (§4.9): every member of
// the trait's scope must have a same-named member in the impl's scope
// whose type unifies with the trait member's declared type.
func (c *Checker) ValidateTrtImpl(trtDefId term.TrtDefId, implModId term.ModDefId, implTerm, trtDefTerm term.TermId) *tcerr.TcError {
	trtDef := c.Store.TrtDef(trtDefId)
	implDef := c.Store.ModDef(implModId)
	trtScope := c.Store.Scope(trtDef.Members)
	implScope := c.Store.Scope(implDef.Members)

	for _, trtMember := range trtScope.Members {
		idx, ok := implScope.IndexOf(trtMember.Name)
		if !ok {
			return &tcerr.TcError{
				Code: tcerr.CodeTraitImplMissingMember,
				TrtImplTerm: implTerm, TrtDefTerm: trtDefTerm,
				TrtDefMissingMemberTerm: c.memberTypeTerm(trtMember),
			}
		}
		implMember := implScope.Members[idx]
		trtTy := c.memberTypeTerm(trtMember)
		implTy := c.memberTypeTerm(implMember)
		if _, uErr := c.Unify(trtTy, implTy, subst.Sub{}); uErr != nil {
			return &tcerr.TcError{
				Code: tcerr.CodeTraitImplMissingMember,
				TrtImplTerm: implTerm, TrtDefTerm: trtDefTerm,
				TrtDefMissingMemberTerm: trtTy,
			}
		}
	}
	return nil
}

func (c *Checker) memberTypeTerm(m term.Member) term.TermId {
	switch d := m.Data.(type) {
	case term.InitialisedWithTy:
		return d.Ty
	case term.InitialisedWithInferredTy:
		ty, err := c.TypeOf(d.Value)
		if err != nil {
			return c.Store.CreateTerm(&term.Unresolved{ResolutionId: c.Store.NewResolutionId()})
		}
		return ty
	case term.Uninitialised:
		return d.Ty
	}
	return c.Store.CreateTerm(&term.Unresolved{ResolutionId: c.Store.NewResolutionId()})
}

// ValidateUselessMatchCase flags a pattern whose term has empty
// intersection with the subject, approximated per §4.9 by the pattern's
// underlying constant/constructor term failing to unify with the subject.
func (c *Checker) ValidateUselessMatchCase(patTerm, subject term.TermId, patId term.PatId) *tcerr.TcError {
	if _, err := c.Unify(patTerm, subject, subst.Sub{}); err != nil {
		return &tcerr.TcError{Code: tcerr.CodeUselessMatchCase, Pat: patId, Subject: subject}
	}
	return nil
}

// ValidateOrPatternBounds walks an Or-pattern's alternatives collecting
// bound names (§4.9): each name must appear at most once per alternative,
// and the set of bound names must be identical across every alternative.
func (c *Checker) ValidateOrPatternBounds(store *term.GlobalStore, orPat *term.OrPat) *tcerr.TcError {
	var reference map[term.Ident]bool
	for i, altId := range orPat.Alternatives {
		bounds := make(map[term.Ident]bool)
		var dup *term.Ident
		collectPatBindings(store, altId, bounds, &dup)
		if dup != nil {
			return &tcerr.TcError{Code: tcerr.CodeIdentifierBoundMultipleTimes, Name: *dup, Pat: altId}
		}
		if i == 0 {
			reference = bounds
			continue
		}
		missing := diffBounds(reference, bounds)
		if len(missing) > 0 {
			return &tcerr.TcError{Code: tcerr.CodeMissingPatternBounds, Pat: altId, Bounds: missing}
		}
		missing = diffBounds(bounds, reference)
		if len(missing) > 0 {
			return &tcerr.TcError{Code: tcerr.CodeMissingPatternBounds, Pat: altId, Bounds: missing}
		}
	}
	return nil
}

func diffBounds(a, b map[term.Ident]bool) []term.Ident {
	var out []term.Ident
	for name := range a {
		if !b[name] {
			out = append(out, name)
		}
	}
	return out
}

func collectPatBindings(store *term.GlobalStore, id term.PatId, bounds map[term.Ident]bool, dup **term.Ident) {
	if *dup != nil {
		return
	}
	switch p := store.Pat(id).(type) {
	case *term.BindingPat:
		if bounds[p.Name] {
			name := p.Name
			*dup = &name
			return
		}
		bounds[p.Name] = true
	case *term.AccessPat:
		collectPatBindings(store, p.Subject, bounds, dup)
	case *term.ConstructorPat:
		collectPatArgBindings(store, p.Args, bounds, dup)
	case *term.ListPat:
		collectPatBindings(store, p.Inner, bounds, dup)
	case *term.TuplePat:
		collectPatArgBindings(store, p.Args, bounds, dup)
	case *term.ModPat:
		collectPatArgBindings(store, p.Members, bounds, dup)
	case *term.OrPat:
		if len(p.Alternatives) > 0 {
			collectPatBindings(store, p.Alternatives[0], bounds, dup)
		}
	case *term.IfPat:
		collectPatBindings(store, p.Pat, bounds, dup)
	case *term.SpreadPat:
		if p.Name != nil {
			if bounds[*p.Name] {
				name := *p.Name
				*dup = &name
				return
			}
			bounds[*p.Name] = true
		}
	}
}

func collectPatArgBindings(store *term.GlobalStore, id term.PatArgsId, bounds map[term.Ident]bool, dup **term.Ident) {
	for _, a := range store.PatArgs(id).Items {
		collectPatBindings(store, a.Value, bounds, dup)
	}
}
