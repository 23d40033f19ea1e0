package term

// Builder is an ergonomic construction layer over a GlobalStore (§4.1). For
// named top-level definitions (nominal, trait, module, type function) it
// also inserts a public member into an ambient scope, so the definition
// becomes referenceable by name without the caller threading scope-member
// bookkeeping through every call site — mirroring the teacher's fluent
// `Builder` while adding the ambient-scope auto-registration §4.1 requires.
type Builder struct {
	store  *GlobalStore
	scopes *scopeCell
}

// scopeCell holds the swappable ambient scope. It is a pointer-to-pointer
// so that WithAmbientScope can be used temporarily (save, swap, restore)
// without invalidating Builders that captured an earlier cell.
type scopeCell struct {
	id *ScopeId
}

// NewBuilder creates a Builder with no ambient scope: auto-registration of
// named definitions is a no-op until WithAmbientScope is called.
func NewBuilder(store *GlobalStore) *Builder {
	return &Builder{store: store, scopes: &scopeCell{}}
}

// WithAmbientScope swaps in a new ambient scope and returns a function that
// restores the previous one. Named definitions created while the new scope
// is active register themselves as public members of it.
func (b *Builder) WithAmbientScope(id ScopeId) (restore func()) {
	prev := b.scopes.id
	next := id
	b.scopes.id = &next
	return func() { b.scopes.id = prev }
}

// AmbientScope reports the currently active ambient scope, if any.
func (b *Builder) AmbientScope() (ScopeId, bool) {
	if b.scopes.id == nil {
		return 0, false
	}
	return *b.scopes.id, true
}

// registerInAmbientScope appends a closed public member to the ambient
// scope, if one is active. It is called by every named-definition
// constructor below.
func (b *Builder) registerInAmbientScope(name Ident, ty TermId, value TermId) {
	if b.scopes.id == nil {
		return
	}
	scopeId := *b.scopes.id
	sc := b.store.Scope(scopeId)
	sc.Members = append(sc.Members, Member{
		Name:       name,
		Visibility: Public,
		Mutability: false,
		Data:       InitialisedWithTy{Ty: ty, Value: value},
	})
	b.store.SetScope(scopeId, sc)
}

// Store exposes the underlying store for callers that need direct access
// (e.g. to build Params/Args lists before handing them to a constructor).
func (b *Builder) Store() *GlobalStore { return b.store }

func identPtr(i Ident) *Ident { return &i }

// --- Cross-cutting term constructors ---

func (b *Builder) Root() TermId { return b.store.CreateTerm(&Root{}) }

func (b *Builder) Var(name string) TermId {
	return b.store.CreateTerm(&Var{Name: NewIdent(name)})
}

func (b *Builder) ScopeVar(name string, scope ScopeId, index int) TermId {
	return b.store.CreateTerm(&ScopeVar{Name: NewIdent(name), Scope: scope, Index: index})
}

func (b *Builder) BoundVar(name string) TermId {
	return b.store.CreateTerm(&BoundVar{Name: NewIdent(name)})
}

func (b *Builder) Access(subject TermId, name string, op AccessOp) TermId {
	return b.store.CreateTerm(&Access{Subject: subject, Name: NewIdent(name), Op: op})
}

func (b *Builder) Merge(terms ...TermId) TermId {
	return b.store.CreateTerm(&Merge{Terms: terms})
}

func (b *Builder) Union(terms ...TermId) TermId {
	return b.store.CreateTerm(&Union{Terms: terms})
}

func (b *Builder) TyFnTy(params ParamsId, returnTy TermId) TermId {
	return b.store.CreateTerm(&TyFnTy{Params: params, ReturnTy: returnTy})
}

func (b *Builder) TyFnCall(subject TermId, args ArgsId) TermId {
	return b.store.CreateTerm(&TyFnCall{Subject: subject, Args: args})
}

func (b *Builder) SetBound(inner TermId, scope ScopeId) TermId {
	return b.store.CreateTerm(&SetBound{Term: inner, Scope: scope})
}

func (b *Builder) TyOf(inner TermId) TermId {
	return b.store.CreateTerm(&TyOf{Term: inner})
}

func (b *Builder) Unresolved() TermId {
	return b.store.CreateTerm(&Unresolved{ResolutionId: b.store.NewResolutionId()})
}

// NamedTyFn creates a type function with ≥1 case and, if it has a name,
// registers it in the ambient scope with type TyFnTy{general_params,
// general_return_ty}.
func (b *Builder) NamedTyFn(name *string, generalParams ParamsId, generalReturnTy TermId, cases []TyFnCase) TermId {
	var ident *Ident
	if name != nil {
		ident = identPtr(NewIdent(*name))
	}
	id := b.store.CreateTerm(&TyFn{
		Name:            ident,
		GeneralParams:   generalParams,
		GeneralReturnTy: generalReturnTy,
		Cases:           cases,
	})
	if ident != nil {
		ty := b.TyFnTy(generalParams, generalReturnTy)
		b.registerInAmbientScope(*ident, ty, id)
	}
	return id
}

// --- Level constructors ---

func (b *Builder) Level0(v L0Value) TermId { return b.store.CreateTerm(&Level0Term{Value: v}) }
func (b *Builder) Level1(v L1Value) TermId { return b.store.CreateTerm(&Level1Term{Value: v}) }
func (b *Builder) Level2(v L2Value) TermId { return b.store.CreateTerm(&Level2Term{Value: v}) }
func (b *Builder) Level3(v L3Value) TermId { return b.store.CreateTerm(&Level3Term{Value: v}) }

func (b *Builder) AnyTy() TermId     { return b.Level2(&AnyTy{}) }
func (b *Builder) TrtKind() TermId   { return b.Level3(&TrtKind{}) }
func (b *Builder) RtOf(ty TermId) TermId { return b.Level0(&Rt{Ty: ty}) }

func (b *Builder) IntLit(v int64) TermId {
	return b.Level0(&Lit{Kind: IntLit, Value: v})
}

func (b *Builder) StringLit(v string) TermId {
	return b.Level0(&Lit{Kind: StringLit, Value: v})
}

func (b *Builder) BoolLit(v bool) TermId {
	return b.Level0(&Lit{Kind: BoolLit, Value: v})
}

func (b *Builder) FnTy(params ParamsId, ret TermId) TermId {
	return b.Level1(&Fn{Params: params, Return: ret})
}

func (b *Builder) TupleTy(params ParamsId) TermId {
	return b.Level1(&Tuple{Params: params})
}

// --- Named definition constructors (auto-register in ambient scope) ---

// NamedStructDef creates a struct nominal definition and, if named,
// registers it in the ambient scope with type AnyTy (nominal defs, like
// mod defs other than trait impls, are of type AnyTy per §4.8).
func (b *Builder) NamedStructDef(name *string, fields StructFields) TermId {
	var ident *Ident
	if name != nil {
		ident = identPtr(NewIdent(*name))
	}
	defId := b.store.CreateNominalDef(&StructDef{Name: ident, Fields: fields})
	termId := b.Level1(&NominalTy{Def: defId})
	if ident != nil {
		b.registerInAmbientScope(*ident, b.AnyTy(), termId)
	}
	return termId
}

// NamedEnumDef creates an enum nominal definition and, if named, registers
// it in the ambient scope.
func (b *Builder) NamedEnumDef(name *string, variants map[string]EnumVariantDef) TermId {
	var ident *Ident
	if name != nil {
		ident = identPtr(NewIdent(*name))
	}
	defId := b.store.CreateNominalDef(&EnumDef{Name: ident, Variants: variants})
	termId := b.Level1(&NominalTy{Def: defId})
	if ident != nil {
		b.registerInAmbientScope(*ident, b.AnyTy(), termId)
	}
	return termId
}

// NamedModDef creates a module definition over a fresh/given members scope
// and, if named, registers it in the ambient scope. Trait-impl modules
// (origin == OriginTrtImpl) are of type Trt{impl}; all others are AnyTy,
// per §4.8. forNominal is set for trait impls written against a nominal
// type (e.g. `impl Hash for Dog`), linking the impl back to that nominal so
// namespace access on it can find the impl's methods (§4.7.1).
func (b *Builder) NamedModDef(name *string, members ScopeId, origin ModDefOrigin, impl *TrtDefId, forNominal *NominalDefId) TermId {
	var ident *Ident
	if name != nil {
		ident = identPtr(NewIdent(*name))
	}
	defId := b.store.CreateModDef(ModDef{Name: ident, Members: members, Origin: origin, Impl: impl, ForNominal: forNominal})
	termId := b.Level1(&ModuleTy{Def: defId})
	if ident != nil {
		var ty TermId
		if origin == OriginTrtImpl && impl != nil {
			ty = b.Level2(&Trt{Def: *impl})
		} else {
			ty = b.AnyTy()
		}
		b.registerInAmbientScope(*ident, ty, termId)
	}
	return termId
}

// NamedTrtDef creates a trait definition and, if named, registers it in the
// ambient scope with type TrtKind.
func (b *Builder) NamedTrtDef(name *string, members ScopeId) TermId {
	var ident *Ident
	if name != nil {
		ident = identPtr(NewIdent(*name))
	}
	defId := b.store.CreateTrtDef(TrtDef{Name: ident, Members: members})
	termId := b.Level2(&Trt{Def: defId})
	if ident != nil {
		b.registerInAmbientScope(*ident, b.TrtKind(), termId)
	}
	return termId
}
