package term

// NominalDef is the tagged variant of struct/enum definitions.
type NominalDef interface {
	nominalDef()
}

// StructFields is the tagged variant of how a struct's fields are known.
type StructFields interface {
	structFields()
}

// ExplicitFields is a struct whose fields are a concrete Params list.
type ExplicitFields struct {
	Fields ParamsId
}

func (ExplicitFields) structFields() {}

// OpaqueFields is a struct whose fields are not visible to this checking
// run (an externally-defined nominal).
type OpaqueFields struct{}

func (OpaqueFields) structFields() {}

// StructDef is a struct definition.
type StructDef struct {
	Name   *Ident
	Fields StructFields
}

func (*StructDef) nominalDef() {}

// EnumVariantDef is a single named variant of an enum, with its own fields.
type EnumVariantDef struct {
	Name   Ident
	Fields ParamsId
}

// EnumDef is an enum definition: a set of named variants.
type EnumDef struct {
	Name     *Ident
	Variants map[string]EnumVariantDef
}

func (*EnumDef) nominalDef() {}

// ModDefOrigin records where a module definition came from.
type ModDefOrigin int

const (
	OriginSource ModDefOrigin = iota
	OriginBlock
	OriginTrtImpl
	OriginAnonImpl
)

// ModDef is a module definition.
type ModDef struct {
	Name    *Ident
	Members ScopeId
	Origin  ModDefOrigin
	// Impl is set when Origin == OriginTrtImpl: the trait this module
	// implements.
	Impl *TrtDefId
	// ForNominal is set when Origin == OriginTrtImpl: the nominal type the
	// impl is written against (the `Dog` in `impl Hash for Dog`). This is
	// what lets namespace access on a NominalTy find methods synthesised
	// from its trait impls (§4.7.1, §8 scenario 5) rather than only from
	// the nominal's own (struct defs have none) member scope.
	ForNominal *NominalDefId
}

// TrtDef is a trait definition.
type TrtDef struct {
	Name    *Ident
	Members ScopeId
}
