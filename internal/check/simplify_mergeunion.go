package check

import (
	"github.com/hash-org/lang/internal/subst"
	"github.com/hash-org/lang/internal/tcerr"
	"github.com/hash-org/lang/internal/term"
)

// simplifyMerge implements §4.7.3 for Merge: flatten nested merges,
// simplify each child, drop later children the unifier reports equal to
// an earlier one, and validate merge well-formedness (at most one nominal
// element, uniform level) when StrictMergeNominal is set.
func (c *Checker) simplifyMerge(id term.TermId, n *term.Merge) (term.TermId, *tcerr.TcError) {
	flattened := make([]term.TermId, 0, len(n.Terms))
	flattenChanged := flattenInto(&flattened, n.Terms, func(t term.TermId) ([]term.TermId, bool) {
		if m, ok := c.Store.Term(t).(*term.Merge); ok {
			return m.Terms, true
		}
		return nil, false
	})

	simplified := make([]term.TermId, len(flattened))
	simplifyChanged := false
	for i, t := range flattened {
		st, err := c.Simplify(t)
		if err != nil {
			return 0, err
		}
		if st != t {
			simplifyChanged = true
		}
		simplified[i] = st
	}

	deduped, dedupChanged := c.dedupeBySub(simplified)

	if err := c.validateMergeWellFormed(id, deduped); err != nil {
		return 0, err
	}

	if len(deduped) == 1 {
		return deduped[0], nil
	}
	if !flattenChanged && !simplifyChanged && !dedupChanged && id != 0 {
		return id, nil
	}
	return c.Store.CreateTerm(&term.Merge{Terms: deduped}), nil
}

// simplifyUnion mirrors simplifyMerge without the nominal/level checks
// (unions don't carry that restriction). id == 0 signals "no original id
// to reuse" — callers synthesising a union from distributed accesses pass
// 0 and get a fresh Union term back, unless only one element remains, in
// which case that element is returned.
func (c *Checker) simplifyUnion(id term.TermId, n *term.Union) (term.TermId, *tcerr.TcError) {
	flattened := make([]term.TermId, 0, len(n.Terms))
	flattenChanged := flattenInto(&flattened, n.Terms, func(t term.TermId) ([]term.TermId, bool) {
		if u, ok := c.Store.Term(t).(*term.Union); ok {
			return u.Terms, true
		}
		return nil, false
	})

	simplified := make([]term.TermId, len(flattened))
	simplifyChanged := false
	for i, t := range flattened {
		st, err := c.Simplify(t)
		if err != nil {
			return 0, err
		}
		if st != t {
			simplifyChanged = true
		}
		simplified[i] = st
	}

	deduped, dedupChanged := c.dedupeBySub(simplified)

	if len(deduped) == 1 {
		return deduped[0], nil
	}
	if !flattenChanged && !simplifyChanged && !dedupChanged && id != 0 {
		return id, nil
	}
	return c.Store.CreateTerm(&term.Union{Terms: deduped}), nil
}

func flattenInto(out *[]term.TermId, terms []term.TermId, expand func(term.TermId) ([]term.TermId, bool)) bool {
	changed := false
	for _, t := range terms {
		if inner, ok := expand(t); ok {
			changed = true
			*out = append(*out, inner...)
			continue
		}
		*out = append(*out, t)
	}
	return changed
}

// dedupeBySub drops later elements the unifier reports equal to an
// earlier one, leaving the first occurrence (§4.7.3 idempotency step).
// Unification is attempted against an empty substitution purely as an
// equality probe; its result (if any) is discarded.
func (c *Checker) dedupeBySub(terms []term.TermId) ([]term.TermId, bool) {
	kept := make([]term.TermId, 0, len(terms))
	changed := false
	for _, t := range terms {
		duplicate := false
		for _, k := range kept {
			if t == k {
				duplicate = true
				break
			}
			if _, err := c.Unify(t, k, subst.Sub{}); err == nil {
				duplicate = true
				break
			}
		}
		if duplicate {
			changed = true
			continue
		}
		kept = append(kept, t)
	}
	return kept, changed
}

func (c *Checker) validateMergeWellFormed(mergeId term.TermId, terms []term.TermId) *tcerr.TcError {
	if !c.StrictMergeNominal {
		return nil
	}
	var firstNominal term.TermId
	hasNominal := false
	var level *int
	for _, t := range terms {
		lvl, isNominal := c.classifyForMerge(t)
		if isNominal {
			if hasNominal {
				return &tcerr.TcError{
					Code: tcerr.CodeMergeShouldOnlyContainOneNominal,
					MergeTerm: mergeId, InitialTerm: firstNominal, OffendingTerm: t,
				}
			}
			hasNominal = true
			firstNominal = t
		}
		if lvl == nil {
			continue
		}
		if level == nil {
			level = lvl
			continue
		}
		if *level != *lvl {
			code := tcerr.CodeMergeShouldBeLevel1
			if *level == 2 {
				code = tcerr.CodeMergeShouldBeLevel2
			}
			return &tcerr.TcError{Code: code, MergeTerm: mergeId, OffendingTerm: t}
		}
	}
	return nil
}

// classifyForMerge returns the term's level (1 or 2; nil for others) and
// whether it is a nominal (struct/enum) type, for merge well-formedness.
func (c *Checker) classifyForMerge(id term.TermId) (*int, bool) {
	switch n := c.Store.Term(id).(type) {
	case *term.Level1Term:
		lvl := 1
		_, isNominal := n.Value.(*term.NominalTy)
		return &lvl, isNominal
	case *term.Level2Term:
		lvl := 2
		return &lvl, false
	default:
		return nil, false
	}
}
