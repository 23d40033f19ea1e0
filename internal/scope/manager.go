// Package scope implements the scope manager (§4.2): name resolution over
// a stack of active scopes, RAII-style entry/exit, and construction of the
// Bound and SetBound scopes the simplifier and typer need to elaborate
// type-function bodies and beta-reductions.
package scope

import (
	"github.com/hash-org/lang/internal/pairing"
	"github.com/hash-org/lang/internal/tcerr"
	"github.com/hash-org/lang/internal/term"
)

// Manager maintains the stack of active scopes for one checking run.
// Single-threaded, cooperative — it holds no locks (§5).
type Manager struct {
	store         *term.GlobalStore
	stack         []term.ScopeId
	currentSource string
}

// NewManager creates a scope manager over the given store with an empty
// stack.
func NewManager(store *term.GlobalStore) *Manager {
	return &Manager{store: store}
}

// SetCurrentSource records which source unit subsequent errors should be
// attributed to, mirroring `current_source` in §4.2.
func (m *Manager) SetCurrentSource(source string) { m.currentSource = source }

// CurrentSource returns the most recently set source unit.
func (m *Manager) CurrentSource() string { return m.currentSource }

// Stack returns a snapshot of the active scope stack, innermost last.
func (m *Manager) Stack() []term.ScopeId {
	out := make([]term.ScopeId, len(m.stack))
	copy(out, m.stack)
	return out
}

// ResolvedName is the result of a successful resolve_name_in_scopes call.
type ResolvedName struct {
	Scope  term.ScopeId
	Member term.Member
	Index  int
}

// ResolveNameInScopes walks the stack from innermost to outermost; the
// first matching member wins.
func (m *Manager) ResolveNameInScopes(name term.Ident, originatingTerm term.TermId) (ResolvedName, *tcerr.TcError) {
	for i := len(m.stack) - 1; i >= 0; i-- {
		scopeId := m.stack[i]
		sc := m.store.Scope(scopeId)
		if idx, ok := sc.IndexOf(name); ok {
			return ResolvedName{Scope: scopeId, Member: sc.Members[idx], Index: idx}, nil
		}
	}
	return ResolvedName{}, &tcerr.TcError{
		Code:  tcerr.CodeUnresolvedVariable,
		Name:  name,
		Value: originatingTerm,
	}
}

// EnterScope pushes scopeId, runs f, and guarantees the pop happens on
// every exit path — success, error return, or panic — via defer, the idiom
// the rest of this codebase uses for scoped resource acquisition.
func (m *Manager) EnterScope(scopeId term.ScopeId, f func() error) error {
	m.stack = append(m.stack, scopeId)
	defer func() {
		m.stack = m.stack[:len(m.stack)-1]
	}()
	return f()
}

// MakeBoundScope builds a Bound-kind scope whose members mirror params,
// each Uninitialised with the parameter's declared type. Used when entering
// a type-function body to elaborate its return type/value.
func (m *Manager) MakeBoundScope(params term.Params) term.ScopeId {
	members := make([]term.Member, 0, len(params.Items))
	for _, p := range params.Items {
		if p.Name == nil {
			continue
		}
		members = append(members, term.Member{
			Name: *p.Name,
			Data: term.Uninitialised{Ty: p.Ty},
		})
	}
	return m.store.CreateScope(term.Scope{Kind: term.Bound, Members: members})
}

// MakeSetBoundScope pairs args to params (§4.4) and produces a SetBound-kind
// scope mapping each parameter name to the concrete argument value with its
// declared type — the witness that justifies beta-reduction without
// eagerly substituting.
func (m *Manager) MakeSetBoundScope(
	params term.Params, args term.Args,
	paramsSubject, argsSubject term.TermId,
) (term.ScopeId, *tcerr.TcError) {
	pairs, err := pairing.Pair(params, args, tcerr.OriginArgsList, paramsSubject, argsSubject)
	if err != nil {
		return 0, err
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
	return m.store.CreateScope(term.Scope{Kind: term.SetBound, Members: members}), nil
}

// GetScopeVarMember resolves a ScopeVar to its member in constant time.
func (m *Manager) GetScopeVarMember(sv *term.ScopeVar) term.Member {
	sc := m.store.Scope(sv.Scope)
	return sc.Members[sv.Index]
}

// FilterScope materializes a new scope, of the same kind as scopeId,
// containing only the members satisfying predicate, keeping SetBound
// wrappers minimal per §4.2/§4.6.
func (m *Manager) FilterScope(scopeId term.ScopeId, predicate func(term.Member) bool) term.ScopeId {
	sc := m.store.Scope(scopeId)
	filtered := make([]term.Member, 0, len(sc.Members))
	for _, mem := range sc.Members {
		if predicate(mem) {
			filtered = append(filtered, mem)
		}
	}
	return m.store.CreateScope(term.Scope{Kind: sc.Kind, Members: filtered})
}
