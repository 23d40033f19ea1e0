// Package tcerr defines the structured error taxonomy the type-checking
// core produces (§7). No variant carries a human-facing message string —
// every field is typed data a host diagnostic renderer can format. This
// mirrors the teacher's internal/types/errors.go: a Kind enum, a struct per
// failure with typed payload fields, and an Error() string assembled only
// for Go's error interface / log lines, never for end-user display.
package tcerr

import (
	"fmt"
	"sort"
	"strings"

	"github.com/hash-org/lang/internal/term"
)

// Code identifies the kind of a TcError, mirroring the teacher's
// TypeErrorKind constants.
type Code string

const (
	CodeCannotUnify                   Code = "cannot_unify"
	CodeCannotUnifyParams             Code = "cannot_unify_params"
	CodeCannotUnifyArgs               Code = "cannot_unify_args"
	CodeUnresolvedVariable            Code = "unresolved_variable"
	CodeUnresolvedNameInValue         Code = "unresolved_name_in_value"
	CodeUnsupportedAccess             Code = "unsupported_access"
	CodeUnsupportedNamespaceAccess    Code = "unsupported_namespace_access"
	CodeUnsupportedPropertyAccess     Code = "unsupported_property_access"
	CodeAmbiguousAccess               Code = "ambiguous_access"
	CodeNotATyFn                      Code = "not_a_tyfn"
	CodeInvalidTyFnApplication        Code = "invalid_tyfn_application"
	CodeUnsupportedTyFnApplication    Code = "unsupported_tyfn_application"
	CodeInvalidTyFnParamTy            Code = "invalid_tyfn_param_ty"
	CodeInvalidTyFnReturnTy           Code = "invalid_tyfn_return_ty"
	CodeInvalidTyFnReturnValue        Code = "invalid_tyfn_return_value"
	CodeMismatchingArgParamLength     Code = "mismatching_arg_param_length"
	CodeParamNotFound                 Code = "param_not_found"
	CodeParamGivenTwice               Code = "param_given_twice"
	CodeAmbiguousArgumentOrdering     Code = "ambiguous_argument_ordering"
	CodeInvalidMergeElement           Code = "invalid_merge_element"
	CodeInvalidUnionElement           Code = "invalid_union_element"
	CodeMergeShouldOnlyContainOneNominal Code = "merge_should_only_contain_one_nominal"
	CodeMergeShouldBeLevel1           Code = "merge_should_be_level1"
	CodeMergeShouldBeLevel2           Code = "merge_should_be_level2"
	CodeCannotUseValueAsTy            Code = "cannot_use_value_as_ty"
	CodeInvalidCallSubject            Code = "invalid_call_subject"
	CodeInvalidPropertyAccessOfNonMethod Code = "invalid_property_access_of_non_method"
	CodeTermIsNotRuntimeInstantiable  Code = "term_is_not_runtime_instantiable"
	CodeNoConstructorOnType           Code = "no_constructor_on_type"
	CodeNeedMoreTypeAnnotationsToResolve Code = "need_more_type_annotations_to_resolve"
	CodeUninitialisedMemberNotAllowed Code = "uninitialised_member_not_allowed"
	CodeCannotImplementNonTrait       Code = "cannot_implement_non_trait"
	CodeTraitImplMissingMember        Code = "trait_impl_missing_member"
	CodeCannotPatMatchWithoutAssignment Code = "cannot_pat_match_without_assignment"
	CodeInvalidAssignSubject          Code = "invalid_assign_subject"
	CodeUselessMatchCase              Code = "useless_match_case"
	CodeIdentifierBoundMultipleTimes  Code = "identifier_bound_multiple_times"
	CodeMissingPatternBounds          Code = "missing_pattern_bounds"
	CodeRecursionDepthExceeded        Code = "recursion_depth_exceeded"
)

// ParamListOrigin records which side of a mismatched pairing is at fault —
// the declaration's Params list, or the call/pattern's Args/PatArgs list.
// Supplemented from original_source's ParamListKind distinction (see
// SPEC_FULL.md "Supplemented features").
type ParamListOrigin int

const (
	OriginParamsList ParamListOrigin = iota
	OriginArgsList
)

func (o ParamListOrigin) String() string {
	if o == OriginArgsList {
		return "args"
	}
	return "params"
}

// ParamUnificationReason distinguishes why unify_params failed.
type ParamUnificationReason int

const (
	ReasonLengthMismatch ParamUnificationReason = iota
	ReasonNameMismatch
)

// TcError is a single structured failure from the checking core. Exactly
// one TcError is returned per failing operation (§7 propagation); the
// fields populated depend on Code.
type TcError struct {
	Code Code

	// Unification
	Src, Target         term.TermId
	ParamsReason         ParamUnificationReason
	MismatchIndex        int
	SrcParams            term.ParamsId
	TargetParams         term.ParamsId
	SrcArgs              term.ArgsId
	TargetArgs           term.ArgsId

	// Resolution
	Name  term.Ident
	Value term.TermId
	Op    term.AccessOp

	// Type functions
	TypeFn            term.TermId
	Cases             []term.TyFnCase
	Args              term.ArgsId
	UnificationErrors []*TcError

	// Merge/union
	MergeTerm      term.TermId
	InitialTerm    term.TermId
	OffendingTerm  term.TermId

	// Parameters/arguments
	ParamsId     term.ParamsId
	ArgsId       term.ArgsId
	ParamsSubject term.TermId
	ArgsSubject   term.TermId
	ParamOrigin   ParamListOrigin
	Index         int

	// Use-site
	Term     term.TermId
	Subject  term.TermId
	Property term.Ident
	// Results holds the candidate results of an ambiguous access (§4.7.1).
	Results []term.TermId

	// Declarations/impls
	MemberTy                term.TermId
	TrtImplTerm             term.TermId
	TrtDefTerm              term.TermId
	TrtDefMissingMemberTerm term.TermId

	// Patterns
	Pat    term.PatId
	Bounds []term.Ident

	// Recursion
	Depth, Limit int
}

// Error renders a TcError for Go's error interface and for log lines. It is
// not the host-facing diagnostic format (§1: diagnostic rendering is an
// external collaborator); it exists so TcError satisfies `error` and so a
// developer staring at a failing test sees something legible.
func (e *TcError) Error() string {
	switch e.Code {
	case CodeCannotUnify:
		return fmt.Sprintf("cannot unify %s with %s", e.Src, e.Target)
	case CodeCannotUnifyParams:
		return fmt.Sprintf("cannot unify params %s with %s: %s", e.SrcParams, e.TargetParams, reasonString(e.ParamsReason, e.MismatchIndex))
	case CodeCannotUnifyArgs:
		return fmt.Sprintf("cannot unify args %s with %s: %s", e.SrcArgs, e.TargetArgs, reasonString(e.ParamsReason, e.MismatchIndex))
	case CodeUnresolvedVariable:
		return fmt.Sprintf("unresolved variable: %s", e.Name)
	case CodeUnresolvedNameInValue:
		return fmt.Sprintf("unresolved name %q%s in value %s", e.Name, e.Op, e.Value)
	case CodeUnsupportedAccess:
		return fmt.Sprintf("value %s does not support access to %q", e.Value, e.Name)
	case CodeUnsupportedNamespaceAccess:
		return fmt.Sprintf("value %s does not support namespace access to %q", e.Value, e.Name)
	case CodeUnsupportedPropertyAccess:
		return fmt.Sprintf("value %s does not support property access to %q", e.Value, e.Name)
	case CodeAmbiguousAccess:
		return fmt.Sprintf("ambiguous access %q on %s: %d results", e.Name, e.Subject, len(e.Results))
	case CodeNotATyFn:
		return fmt.Sprintf("%s is not a type function", e.Term)
	case CodeInvalidTyFnApplication:
		return fmt.Sprintf("type function %s cannot be applied to args %s (%d case(s) failed)", e.TypeFn, e.Args, len(e.UnificationErrors))
	case CodeUnsupportedTyFnApplication:
		return fmt.Sprintf("%s cannot be used as a type function application subject", e.Subject)
	case CodeInvalidTyFnParamTy:
		return fmt.Sprintf("%s cannot be used as a type function parameter type", e.Term)
	case CodeInvalidTyFnReturnTy:
		return fmt.Sprintf("%s cannot be used as a type function return type", e.Term)
	case CodeInvalidTyFnReturnValue:
		return fmt.Sprintf("%s cannot be used as a type function return value", e.Term)
	case CodeMismatchingArgParamLength:
		return fmt.Sprintf("mismatching argument/parameter length between %s and %s", e.ParamsId, e.ArgsId)
	case CodeParamNotFound:
		return fmt.Sprintf("parameter %q not found in %s", e.Name, e.ParamsId)
	case CodeParamGivenTwice:
		return fmt.Sprintf("%s given twice at index %d (%s)", e.ParamOrigin, e.Index, e.ParamOrigin)
	case CodeAmbiguousArgumentOrdering:
		return fmt.Sprintf("positional %s after named %s at index %d", e.ParamOrigin, e.ParamOrigin, e.Index)
	case CodeInvalidMergeElement:
		return fmt.Sprintf("%s cannot be used as a merge element", e.Term)
	case CodeInvalidUnionElement:
		return fmt.Sprintf("%s cannot be used as a union element", e.Term)
	case CodeMergeShouldOnlyContainOneNominal:
		return fmt.Sprintf("merge %s contains more than one nominal element (%s and %s)", e.MergeTerm, e.InitialTerm, e.OffendingTerm)
	case CodeMergeShouldBeLevel1:
		return fmt.Sprintf("merge %s should contain only level-1 terms; %s is not", e.MergeTerm, e.OffendingTerm)
	case CodeMergeShouldBeLevel2:
		return fmt.Sprintf("merge %s should contain only level-2 terms; %s is not", e.MergeTerm, e.OffendingTerm)
	case CodeCannotUseValueAsTy:
		return fmt.Sprintf("%s cannot be used as a type", e.Value)
	case CodeInvalidCallSubject:
		return fmt.Sprintf("%s cannot be used as a call subject", e.Term)
	case CodeInvalidPropertyAccessOfNonMethod:
		return fmt.Sprintf("%s.%s does not resolve to a method", e.Subject, e.Property)
	case CodeTermIsNotRuntimeInstantiable:
		return fmt.Sprintf("%s cannot be instantiated at runtime", e.Term)
	case CodeNoConstructorOnType:
		return fmt.Sprintf("%s has no constructor", e.Subject)
	case CodeNeedMoreTypeAnnotationsToResolve:
		return fmt.Sprintf("need more type annotations to resolve %s", e.Term)
	case CodeUninitialisedMemberNotAllowed:
		return fmt.Sprintf("member of type %s requires an initialiser in this scope", e.MemberTy)
	case CodeCannotImplementNonTrait:
		return fmt.Sprintf("%s is not a trait and cannot be implemented", e.Term)
	case CodeTraitImplMissingMember:
		return fmt.Sprintf("impl %s is missing member %s required by trait %s", e.TrtImplTerm, e.TrtDefMissingMemberTerm, e.TrtDefTerm)
	case CodeUselessMatchCase:
		return fmt.Sprintf("pattern %s can never match subject %s", e.Pat, e.Subject)
	case CodeCannotPatMatchWithoutAssignment:
		return fmt.Sprintf("pattern %s cannot be used without an assignment", e.Pat)
	case CodeInvalidAssignSubject:
		return fmt.Sprintf("%s is not a valid assignment subject", e.Term)
	case CodeIdentifierBoundMultipleTimes:
		return fmt.Sprintf("%q is bound multiple times in pattern %s", e.Name, e.Pat)
	case CodeMissingPatternBounds:
		names := make([]string, len(e.Bounds))
		for i, n := range e.Bounds {
			names[i] = n.Name
		}
		sort.Strings(names)
		return fmt.Sprintf("pattern %s is missing bound(s): %s", e.Pat, strings.Join(names, ", "))
	case CodeRecursionDepthExceeded:
		return fmt.Sprintf("recursion depth %d exceeds limit %d", e.Depth, e.Limit)
	default:
		return fmt.Sprintf("type error (%s)", e.Code)
	}
}

func reasonString(r ParamUnificationReason, idx int) string {
	if r == ReasonNameMismatch {
		return fmt.Sprintf("name mismatch at index %d", idx)
	}
	return "length mismatch"
}
