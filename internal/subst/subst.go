// Package subst implements the Substituter (§4.3): applying a mapping from
// inference variables and free names to concrete terms, capture-avoiding
// with respect to BoundVar and opaque with respect to SetBound scopes.
package subst

import (
	"github.com/hash-org/lang/internal/term"
)

// SubVarKind discriminates the two things a substitution can replace:
// inference holes (Unresolved) and free names (Var), per §3/§4.3.
type SubVarKind int

const (
	ResolutionVar SubVarKind = iota
	NameVar
)

// SubVar is a single substitutable variable. It is a plain comparable
// struct so Sub can be a normal Go map.
type SubVar struct {
	Kind         SubVarKind
	ResolutionId uint64
	Name         term.Ident
}

// Resolution builds the SubVar for an Unresolved{resolution_id}.
func Resolution(id uint64) SubVar { return SubVar{Kind: ResolutionVar, ResolutionId: id} }

// Name builds the SubVar for a free Var{name}.
func Name(name term.Ident) SubVar { return SubVar{Kind: NameVar, Name: name} }

// Sub maps substitutable variables to the term that replaces them.
type Sub map[SubVar]term.TermId

// Substituter applies a Sub over terms, params and args, minting fresh ids
// only where something actually changed (so unaffected subterms keep their
// original id and any location attached to it).
type Substituter struct {
	store *term.GlobalStore
}

// New creates a Substituter over the given store.
func New(store *term.GlobalStore) *Substituter { return &Substituter{store: store} }

// ApplyTerm applies sub to the term id, returning a (possibly new) id.
// BoundVar nodes are never substituted — the domain of Sub is exactly
// {Unresolved, free Var}, so a BoundVar simply cannot match a SubVar, which
// is what gives capture-avoidance for free type-function/set-bound binders.
// A SetBound's own scope is treated as opaque: only its wrapped Term is
// recursed into, never the scope's members.
func (s *Substituter) ApplyTerm(sub Sub, id term.TermId) term.TermId {
	if len(sub) == 0 {
		return id
	}
	t := s.store.Term(id)
	switch n := t.(type) {
	case *term.Var:
		if repl, ok := sub[Name(n.Name)]; ok {
			s.store.CopyLocation(id, repl)
			return repl
		}
		return id

	case *term.Unresolved:
		if repl, ok := sub[Resolution(n.ResolutionId)]; ok {
			s.store.CopyLocation(id, repl)
			return repl
		}
		return id

	case *term.BoundVar:
		return id

	case *term.ScopeVar:
		return id

	case *term.Access:
		newSubject := s.ApplyTerm(sub, n.Subject)
		if newSubject == n.Subject {
			return id
		}
		return s.copyLoc(id, s.store.CreateTerm(&term.Access{Subject: newSubject, Name: n.Name, Op: n.Op}))

	case *term.Merge:
		newTerms, changed := s.applyTermList(sub, n.Terms)
		if !changed {
			return id
		}
		return s.copyLoc(id, s.store.CreateTerm(&term.Merge{Terms: newTerms}))

	case *term.Union:
		newTerms, changed := s.applyTermList(sub, n.Terms)
		if !changed {
			return id
		}
		return s.copyLoc(id, s.store.CreateTerm(&term.Union{Terms: newTerms}))

	case *term.TyFn:
		changed := false
		newGeneralParams := s.ApplyParams(sub, n.GeneralParams)
		changed = changed || newGeneralParams != n.GeneralParams
		newGeneralReturnTy := s.ApplyTerm(sub, n.GeneralReturnTy)
		changed = changed || newGeneralReturnTy != n.GeneralReturnTy
		newCases := make([]term.TyFnCase, len(n.Cases))
		for i, c := range n.Cases {
			newParams := s.ApplyParams(sub, c.Params)
			newReturnTy := s.ApplyTerm(sub, c.ReturnTy)
			newReturnValue := s.ApplyTerm(sub, c.ReturnValue)
			if newParams != c.Params || newReturnTy != c.ReturnTy || newReturnValue != c.ReturnValue {
				changed = true
			}
			newCases[i] = term.TyFnCase{Params: newParams, ReturnTy: newReturnTy, ReturnValue: newReturnValue}
		}
		if !changed {
			return id
		}
		return s.copyLoc(id, s.store.CreateTerm(&term.TyFn{
			Name: n.Name, GeneralParams: newGeneralParams, GeneralReturnTy: newGeneralReturnTy, Cases: newCases,
		}))

	case *term.TyFnTy:
		newParams := s.ApplyParams(sub, n.Params)
		newReturnTy := s.ApplyTerm(sub, n.ReturnTy)
		if newParams == n.Params && newReturnTy == n.ReturnTy {
			return id
		}
		return s.copyLoc(id, s.store.CreateTerm(&term.TyFnTy{Params: newParams, ReturnTy: newReturnTy}))

	case *term.TyFnCall:
		newSubject := s.ApplyTerm(sub, n.Subject)
		newArgs := s.ApplyArgs(sub, n.Args)
		if newSubject == n.Subject && newArgs == n.Args {
			return id
		}
		return s.copyLoc(id, s.store.CreateTerm(&term.TyFnCall{Subject: newSubject, Args: newArgs}))

	case *term.SetBound:
		newInner := s.ApplyTerm(sub, n.Term)
		if newInner == n.Term {
			return id
		}
		return s.copyLoc(id, s.store.CreateTerm(&term.SetBound{Term: newInner, Scope: n.Scope}))

	case *term.TyOf:
		newInner := s.ApplyTerm(sub, n.Term)
		if newInner == n.Term {
			return id
		}
		return s.copyLoc(id, s.store.CreateTerm(&term.TyOf{Term: newInner}))

	case *term.Level0Term:
		newVal, changed := s.applyL0(sub, n.Value)
		if !changed {
			return id
		}
		return s.copyLoc(id, s.store.CreateTerm(&term.Level0Term{Value: newVal}))

	case *term.Level1Term:
		newVal, changed := s.applyL1(sub, n.Value)
		if !changed {
			return id
		}
		return s.copyLoc(id, s.store.CreateTerm(&term.Level1Term{Value: newVal}))

	default:
		// Root, Level2Term, Level3Term carry no sub-term ids.
		return id
	}
}

func (s *Substituter) copyLoc(from, to term.TermId) term.TermId {
	if from != to {
		s.store.CopyLocation(from, to)
	}
	return to
}

func (s *Substituter) applyTermList(sub Sub, ids []term.TermId) ([]term.TermId, bool) {
	changed := false
	out := make([]term.TermId, len(ids))
	for i, id := range ids {
		newId := s.ApplyTerm(sub, id)
		if newId != id {
			changed = true
		}
		out[i] = newId
	}
	return out, changed
}

func (s *Substituter) applyL0(sub Sub, v term.L0Value) (term.L0Value, bool) {
	switch n := v.(type) {
	case *term.Rt:
		newTy := s.ApplyTerm(sub, n.Ty)
		if newTy == n.Ty {
			return v, false
		}
		return &term.Rt{Ty: newTy}, true
	case *term.FnLit:
		newFnTy := s.ApplyTerm(sub, n.FnTy)
		newBody := s.ApplyTerm(sub, n.Body)
		if newFnTy == n.FnTy && newBody == n.Body {
			return v, false
		}
		return &term.FnLit{FnTy: newFnTy, Body: newBody}, true
	case *term.FnCall:
		newSubject := s.ApplyTerm(sub, n.Subject)
		newArgs := s.ApplyArgs(sub, n.Args)
		if newSubject == n.Subject && newArgs == n.Args {
			return v, false
		}
		return &term.FnCall{Subject: newSubject, Args: newArgs}, true
	case *term.TupleLit:
		newArgs := s.ApplyArgs(sub, n.Args)
		if newArgs == n.Args {
			return v, false
		}
		return &term.TupleLit{Args: newArgs}, true
	case *term.Constructed:
		newSubject := s.ApplyTerm(sub, n.Subject)
		newMembers := s.ApplyArgs(sub, n.Members)
		if newSubject == n.Subject && newMembers == n.Members {
			return v, false
		}
		return &term.Constructed{Subject: newSubject, Members: newMembers}, true
	default:
		// Lit and EnumVariant carry no sub-term ids.
		return v, false
	}
}

func (s *Substituter) applyL1(sub Sub, v term.L1Value) (term.L1Value, bool) {
	switch n := v.(type) {
	case *term.Fn:
		newParams := s.ApplyParams(sub, n.Params)
		newReturn := s.ApplyTerm(sub, n.Return)
		if newParams == n.Params && newReturn == n.Return {
			return v, false
		}
		return &term.Fn{Params: newParams, Return: newReturn}, true
	case *term.Tuple:
		newParams := s.ApplyParams(sub, n.Params)
		if newParams == n.Params {
			return v, false
		}
		return &term.Tuple{Params: newParams}, true
	default:
		// NominalTy and ModuleTy refer to definitions by id, not terms.
		return v, false
	}
}

// ApplyParams applies sub to every parameter's type and default value,
// minting a fresh ParamsId only if something changed.
func (s *Substituter) ApplyParams(sub Sub, id term.ParamsId) term.ParamsId {
	if len(sub) == 0 {
		return id
	}
	ps := s.store.Params(id)
	changed := false
	newItems := make([]term.Param, len(ps.Items))
	for i, p := range ps.Items {
		newTy := s.ApplyTerm(sub, p.Ty)
		var newDefault *term.TermId
		if p.DefaultValue != nil {
			v := s.ApplyTerm(sub, *p.DefaultValue)
			newDefault = &v
			if v != *p.DefaultValue {
				changed = true
			}
		}
		if newTy != p.Ty {
			changed = true
		}
		newItems[i] = term.Param{Name: p.Name, Ty: newTy, DefaultValue: newDefault}
	}
	if !changed {
		return id
	}
	return s.store.CreateParams(term.Params{Origin: ps.Origin, Items: newItems})
}

// ApplyArgs applies sub to every argument's value, minting a fresh ArgsId
// only if something changed.
func (s *Substituter) ApplyArgs(sub Sub, id term.ArgsId) term.ArgsId {
	if len(sub) == 0 {
		return id
	}
	as := s.store.Args(id)
	changed := false
	newItems := make([]term.Arg, len(as.Items))
	for i, a := range as.Items {
		newVal := s.ApplyTerm(sub, a.Value)
		if newVal != a.Value {
			changed = true
		}
		newItems[i] = term.Arg{Name: a.Name, Value: newVal}
	}
	if !changed {
		return id
	}
	return s.store.CreateArgs(term.Args{Origin: as.Origin, Items: newItems})
}

// Compose returns s2 ∘ s1: apply s1 first, then s2 to the result and to
// s2's own range (§4.5 "Composition is sequential").
func (s *Substituter) Compose(s1, s2 Sub) Sub {
	result := make(Sub, len(s1)+len(s2))
	for v, t := range s1 {
		result[v] = s.ApplyTerm(s2, t)
	}
	for v, t := range s2 {
		if _, exists := result[v]; !exists {
			result[v] = t
		}
	}
	return result
}
