package term

// Reader is read-only access to a GlobalStore's interned entities: a
// narrower capability than the full GlobalStore for code that only reads,
// sharing its storage. The Discoverer and the Checker hold the full
// *GlobalStore rather than a Reader, since both intern new terms.
type Reader struct {
	store *GlobalStore
}

// NewReader wraps a store for read-only use.
func NewReader(store *GlobalStore) Reader { return Reader{store: store} }

func (r Reader) Term(id TermId) Term             { return r.store.Term(id) }
func (r Reader) Params(id ParamsId) Params        { return r.store.Params(id) }
func (r Reader) Args(id ArgsId) Args              { return r.store.Args(id) }
func (r Reader) Pat(id PatId) Pat                 { return r.store.Pat(id) }
func (r Reader) PatArgs(id PatArgsId) PatArgs     { return r.store.PatArgs(id) }
func (r Reader) Scope(id ScopeId) Scope           { return r.store.Scope(id) }
func (r Reader) ModDef(id ModDefId) ModDef        { return r.store.ModDef(id) }
func (r Reader) NominalDef(id NominalDefId) NominalDef { return r.store.NominalDef(id) }
func (r Reader) TrtDef(id TrtDefId) TrtDef        { return r.store.TrtDef(id) }

func (r Reader) Location(id TermId) (Location, bool) { return r.store.Location(id) }
