package term

// Term is the tagged variant at the heart of the term graph (§3). Every
// concrete term type below implements it via an unexported marker method,
// following the same sum-type-over-interface discipline the rest of the
// checking core uses for Params, Args, Pat and Scope members.
type Term interface {
	termNode()
}

// Root is the top of the level lattice.
type Root struct{}

func (*Root) termNode() {}

// Var is an unresolved identifier reference, prior to name resolution.
type Var struct {
	Name Ident
}

func (*Var) termNode() {}

// ScopeVar is a reference resolved to a concrete member slot in a concrete
// scope.
type ScopeVar struct {
	Name  Ident
	Scope ScopeId
	Index int
}

func (*ScopeVar) termNode() {}

// BoundVar is a reference bound by an enclosing type-function or set-bound
// scope, not yet substituted.
type BoundVar struct {
	Name Ident
}

func (*BoundVar) termNode() {}

// AccessOp distinguishes `a::b` (Namespace) from `a.b` (Property) access.
type AccessOp int

const (
	Namespace AccessOp = iota
	Property
)

func (op AccessOp) String() string {
	if op == Namespace {
		return "::"
	}
	return "."
}

// Access is member access on a subject term.
type Access struct {
	Subject TermId
	Name    Ident
	Op      AccessOp
}

func (*Access) termNode() {}

// Merge is the intersection/conjunction of terms.
type Merge struct {
	Terms []TermId
}

func (*Merge) termNode() {}

// Union is the disjunction of terms; an empty Union is the never type.
type Union struct {
	Terms []TermId
}

func (*Union) termNode() {}

// TyFnCase is one discriminated case of a type function.
type TyFnCase struct {
	Params      ParamsId
	ReturnTy    TermId
	ReturnValue TermId
}

// TyFn is a type function with one or more cases, discriminated by argument
// unification at call sites.
type TyFn struct {
	Name            *Ident
	GeneralParams   ParamsId
	GeneralReturnTy TermId
	Cases           []TyFnCase
}

func (*TyFn) termNode() {}

// TyFnTy is the type of a type function.
type TyFnTy struct {
	Params   ParamsId
	ReturnTy TermId
}

func (*TyFnTy) termNode() {}

// TyFnCall is the application of a type function to arguments.
type TyFnCall struct {
	Subject TermId
	Args    ArgsId
}

func (*TyFnCall) termNode() {}

// SetBound wraps a term with the scope that supplies concrete values for
// its free bound variables; it is the witness that justifies beta-reduction
// without eagerly substituting.
type SetBound struct {
	Term  TermId
	Scope ScopeId
}

func (*SetBound) termNode() {}

// TyOf is the type-of operator.
type TyOf struct {
	Term TermId
}

func (*TyOf) termNode() {}

// Unresolved is an inference hole created where a type is expected but not
// yet known.
type Unresolved struct {
	ResolutionId uint64
}

func (*Unresolved) termNode() {}

// Level0Term wraps a Level-0 (runtime value) construct.
type Level0Term struct {
	Value L0Value
}

func (*Level0Term) termNode() {}

// Level1Term wraps a Level-1 (type) construct.
type Level1Term struct {
	Value L1Value
}

func (*Level1Term) termNode() {}

// Level2Term wraps a Level-2 (trait) construct.
type Level2Term struct {
	Value L2Value
}

func (*Level2Term) termNode() {}

// Level3Term wraps a Level-3 (trait-kind) construct.
type Level3Term struct {
	Value L3Value
}

func (*Level3Term) termNode() {}

// L0Value is the payload of a Level0Term: runtime values, literals, function
// literals/calls, tuple literals, constructed nominals, enum variants.
type L0Value interface {
	l0Value()
}

// Rt is a runtime value of the given type.
type Rt struct {
	Ty TermId
}

func (*Rt) l0Value() {}

// LitKind discriminates the literal classes a Lit value can take.
type LitKind int

const (
	IntLit LitKind = iota
	FloatLit
	StringLit
	BoolLit
	CharLit
)

// Lit is a literal value of a known literal class.
type Lit struct {
	Kind  LitKind
	Value interface{}
}

func (*Lit) l0Value() {}

// FnLit is a function literal: its type plus its (unevaluated) body term.
type FnLit struct {
	FnTy TermId
	Body TermId
}

func (*FnLit) l0Value() {}

// FnCall is the application of a Level-0 callable to arguments.
type FnCall struct {
	Subject TermId
	Args    ArgsId
}

func (*FnCall) l0Value() {}

// TupleLit is a tuple value literal.
type TupleLit struct {
	Args ArgsId
}

func (*TupleLit) l0Value() {}

// Constructed is a struct value built from a constructor call.
type Constructed struct {
	Subject TermId
	Members ArgsId
}

func (*Constructed) l0Value() {}

// EnumVariant is a constructed enum variant value.
type EnumVariant struct {
	Enum    NominalDefId
	Variant Ident
}

func (*EnumVariant) l0Value() {}

// L1Value is the payload of a Level1Term: nominal defs, tuples, functions,
// module defs.
type L1Value interface {
	l1Value()
}

// NominalTy is a reference to a struct/enum definition, used as a type.
type NominalTy struct {
	Def NominalDefId
}

func (*NominalTy) l1Value() {}

// Tuple is a tuple type, described by its members as a Params list.
type Tuple struct {
	Params ParamsId
}

func (*Tuple) l1Value() {}

// Fn is a function type.
type Fn struct {
	Params ParamsId
	Return TermId
}

func (*Fn) l1Value() {}

// ModuleTy is a reference to a module definition, used as a type.
type ModuleTy struct {
	Def ModDefId
}

func (*ModuleTy) l1Value() {}

// L2Value is the payload of a Level2Term: traits and the universal type.
type L2Value interface {
	l2Value()
}

// Trt is a reference to a trait definition.
type Trt struct {
	Def TrtDefId
}

func (*Trt) l2Value() {}

// AnyTy is the universal type: unifies with any Level-2 term.
type AnyTy struct{}

func (*AnyTy) l2Value() {}

// L3Value is the payload of a Level3Term: the kind of trait kinds.
type L3Value interface {
	l3Value()
}

// TrtKind is the (sole) kind of trait kinds.
type TrtKind struct{}

func (*TrtKind) l3Value() {}
