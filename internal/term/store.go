package term

// GlobalStore is the append-only interning table for every entity kind in
// the term graph (§4.1). Stores grow monotonically for the lifetime of a
// checking run; nothing is ever deleted. A checker run owns its own store —
// stores are not process-global (§9 "Scope as a process-wide collection").
type GlobalStore struct {
	terms       []Term
	params      []Params
	args        []Args
	pats        []Pat
	patArgs     []PatArgs
	scopes      []Scope
	modDefs     []ModDef
	nominalDefs []NominalDef
	trtDefs     []TrtDef

	// implsByNominal indexes trait-impl modules (Origin == OriginTrtImpl)
	// by the nominal def they implement for, so namespace access on a
	// NominalTy can find method members without a NominalDef itself
	// needing a member scope (§4.7.1).
	implsByNominal map[NominalDefId][]ModDefId

	locations map[TermId]Location

	nextResolutionId uint64
}

// NewGlobalStore creates an empty store for one checking run.
func NewGlobalStore() *GlobalStore {
	return &GlobalStore{
		locations:      make(map[TermId]Location),
		implsByNominal: make(map[NominalDefId][]ModDefId),
	}
}

// CreateTerm interns a term and returns its fresh id.
func (s *GlobalStore) CreateTerm(t Term) TermId {
	id := TermId(len(s.terms))
	s.terms = append(s.terms, t)
	return id
}

// Term looks up a previously interned term. It panics if id was not
// produced by this store, per §4.1's stated failure mode.
func (s *GlobalStore) Term(id TermId) Term {
	return s.terms[uint64(id)]
}

// SetTerm overwrites a previously interned term in place. The simplifier
// does not use it: its rewrites mint fresh ids, recorded in its
// memoization cache.
func (s *GlobalStore) SetTerm(id TermId, t Term) {
	s.terms[uint64(id)] = t
}

// NewResolutionId allocates a fresh, unique inference-hole identity for an
// Unresolved term.
func (s *GlobalStore) NewResolutionId() uint64 {
	s.nextResolutionId++
	return s.nextResolutionId
}

// CreateParams interns a Params list.
func (s *GlobalStore) CreateParams(p Params) ParamsId {
	id := ParamsId(len(s.params))
	s.params = append(s.params, p)
	return id
}

// Params looks up a previously interned Params list.
func (s *GlobalStore) Params(id ParamsId) Params {
	return s.params[uint64(id)]
}

// CreateArgs interns an Args list.
func (s *GlobalStore) CreateArgs(a Args) ArgsId {
	id := ArgsId(len(s.args))
	s.args = append(s.args, a)
	return id
}

// Args looks up a previously interned Args list.
func (s *GlobalStore) Args(id ArgsId) Args {
	return s.args[uint64(id)]
}

// CreatePat interns a pattern.
func (s *GlobalStore) CreatePat(p Pat) PatId {
	id := PatId(len(s.pats))
	s.pats = append(s.pats, p)
	return id
}

// Pat looks up a previously interned pattern.
func (s *GlobalStore) Pat(id PatId) Pat {
	return s.pats[uint64(id)]
}

// CreatePatArgs interns a pattern-argument list.
func (s *GlobalStore) CreatePatArgs(a PatArgs) PatArgsId {
	id := PatArgsId(len(s.patArgs))
	s.patArgs = append(s.patArgs, a)
	return id
}

// PatArgs looks up a previously interned pattern-argument list.
func (s *GlobalStore) PatArgs(id PatArgsId) PatArgs {
	return s.patArgs[uint64(id)]
}

// CreateScope interns a scope.
func (s *GlobalStore) CreateScope(sc Scope) ScopeId {
	id := ScopeId(len(s.scopes))
	s.scopes = append(s.scopes, sc)
	return id
}

// Scope looks up a previously interned scope.
func (s *GlobalStore) Scope(id ScopeId) Scope {
	return s.scopes[uint64(id)]
}

// SetScope overwrites a previously interned scope in place. The Builder
// uses it to append members to its ambient scope as named definitions are
// registered; FilterScope does not (it creates a new scope).
func (s *GlobalStore) SetScope(id ScopeId, sc Scope) {
	s.scopes[uint64(id)] = sc
}

// CreateModDef interns a module definition. Trait-impl modules written
// against a nominal (Origin == OriginTrtImpl, ForNominal != nil) are
// additionally indexed so ImplsForNominal can find them later.
func (s *GlobalStore) CreateModDef(m ModDef) ModDefId {
	id := ModDefId(len(s.modDefs))
	s.modDefs = append(s.modDefs, m)
	if m.Origin == OriginTrtImpl && m.ForNominal != nil {
		s.implsByNominal[*m.ForNominal] = append(s.implsByNominal[*m.ForNominal], id)
	}
	return id
}

// ModDef looks up a previously interned module definition.
func (s *GlobalStore) ModDef(id ModDefId) ModDef {
	return s.modDefs[uint64(id)]
}

// ImplsForNominal returns the trait-impl modules registered against def, in
// registration order.
func (s *GlobalStore) ImplsForNominal(def NominalDefId) []ModDefId {
	return s.implsByNominal[def]
}

// CreateNominalDef interns a nominal (struct/enum) definition.
func (s *GlobalStore) CreateNominalDef(n NominalDef) NominalDefId {
	id := NominalDefId(len(s.nominalDefs))
	s.nominalDefs = append(s.nominalDefs, n)
	return id
}

// NominalDef looks up a previously interned nominal definition.
func (s *GlobalStore) NominalDef(id NominalDefId) NominalDef {
	return s.nominalDefs[uint64(id)]
}

// CreateTrtDef interns a trait definition.
func (s *GlobalStore) CreateTrtDef(t TrtDef) TrtDefId {
	id := TrtDefId(len(s.trtDefs))
	s.trtDefs = append(s.trtDefs, t)
	return id
}

// TrtDef looks up a previously interned trait definition.
func (s *GlobalStore) TrtDef(id TrtDefId) TrtDef {
	return s.trtDefs[uint64(id)]
}

// SetLocation attaches a source location to a term id (§3 invariant 7).
func (s *GlobalStore) SetLocation(id TermId, loc Location) {
	s.locations[id] = loc
}

// Location returns the location attached to a term id, if any.
func (s *GlobalStore) Location(id TermId) (Location, bool) {
	loc, ok := s.locations[id]
	return loc, ok
}

// CopyLocation copies the location attached to `from` onto `to`, the
// discipline simplification follows when it mints a fresh id for a
// normalized term (§3 invariant 7: "copying a term for simplification
// copies its location").
func (s *GlobalStore) CopyLocation(from, to TermId) {
	if loc, ok := s.locations[from]; ok {
		s.locations[to] = loc
	}
}
