package term

// Origin tags a Params/Args list with the kind of construct it belongs to.
type Origin int

const (
	OriginFn Origin = iota
	OriginTyFn
	OriginStruct
	OriginEnumVariant
	OriginTuple
	OriginModule
)

func (o Origin) String() string {
	switch o {
	case OriginFn:
		return "fn"
	case OriginTyFn:
		return "tyfn"
	case OriginStruct:
		return "struct"
	case OriginEnumVariant:
		return "enum-variant"
	case OriginTuple:
		return "tuple"
	case OriginModule:
		return "module"
	default:
		return "unknown"
	}
}

// Param is a single declared parameter: an optional name, a type, and an
// optional default value.
type Param struct {
	Name         *Ident
	Ty           TermId
	DefaultValue *TermId
}

// GetNameOpt reports the parameter's name, if any (used by pairing, which
// is generic over both Param and Arg via the Named constraint).
func (p Param) GetNameOpt() *Ident { return p.Name }

// Arg is a single supplied argument: an optional name and a value.
type Arg struct {
	Name  *Ident
	Value TermId
}

// GetNameOpt reports the argument's name, if any.
func (a Arg) GetNameOpt() *Ident { return a.Name }

// Named is satisfied by anything carrying an optional name — the
// constraint pairing.ValidateParamListOrdering is generic over, mirroring
// the original's `GetNameOpt` trait bound.
type Named interface {
	GetNameOpt() *Ident
}

// ParamList is an ordered, origin-tagged sequence of T (Param or Arg).
// Names, when present on Params, are unique within the list.
type ParamList[T Named] struct {
	Origin Origin
	Items  []T
}

// Params is a declaration-side parameter list.
type Params = ParamList[Param]

// Args is a call/construction-side argument list.
type Args = ParamList[Arg]

// GetByName finds a Param by name, returning its index.
func (p Params) GetByName(name Ident) (int, Param, bool) {
	for i, item := range p.Items {
		if item.Name != nil && *item.Name == name {
			return i, item, true
		}
	}
	return 0, Param{}, false
}
