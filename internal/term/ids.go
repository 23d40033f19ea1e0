// Package term defines the term graph that the type-checking core operates
// over: interned, immutable-once-created nodes identified by typed ids,
// stratified into the four levels described by the language's type system.
package term

import (
	"fmt"

	"golang.org/x/text/unicode/norm"
)

// TermId identifies a single interned Term.
type TermId uint64

func (id TermId) String() string { return fmt.Sprintf("#%d", uint64(id)) }

// ParamsId identifies an interned Params list (a function/type-fn/struct/
// tuple/module parameter declaration).
type ParamsId uint64

func (id ParamsId) String() string { return fmt.Sprintf("params#%d", uint64(id)) }

// ArgsId identifies an interned Args list (the arguments of a call).
type ArgsId uint64

func (id ArgsId) String() string { return fmt.Sprintf("args#%d", uint64(id)) }

// PatId identifies an interned Pat (pattern).
type PatId uint64

func (id PatId) String() string { return fmt.Sprintf("pat#%d", uint64(id)) }

// PatArgsId identifies an interned list of pattern arguments.
type PatArgsId uint64

func (id PatArgsId) String() string { return fmt.Sprintf("patargs#%d", uint64(id)) }

// ScopeId identifies an interned Scope.
type ScopeId uint64

func (id ScopeId) String() string { return fmt.Sprintf("scope#%d", uint64(id)) }

// ModDefId identifies an interned ModDef.
type ModDefId uint64

func (id ModDefId) String() string { return fmt.Sprintf("mod#%d", uint64(id)) }

// NominalDefId identifies an interned NominalDef.
type NominalDefId uint64

func (id NominalDefId) String() string { return fmt.Sprintf("nominal#%d", uint64(id)) }

// TrtDefId identifies an interned TrtDef.
type TrtDefId uint64

func (id TrtDefId) String() string { return fmt.Sprintf("trt#%d", uint64(id)) }

// Ident is an interned identifier. Two Idents with the same Name compare
// equal; NewIdent NFC-normalizes names before they become Idents so
// visually-identical source spellings intern identically (an Ident built
// directly as Ident{Name: ...} is not normalized).
type Ident struct {
	Name string
}

func (i Ident) String() string { return i.Name }

// NewIdent NFC-normalizes name before wrapping it, so that source spellings
// which are visually identical but byte-distinct (combining-mark sequences
// vs. precomposed runes) intern to the same Ident. Every call site that
// turns a raw source string into an Ident should go through this rather
// than constructing Ident{Name: ...} directly.
func NewIdent(name string) Ident {
	return Ident{Name: norm.NFC.String(name)}
}
