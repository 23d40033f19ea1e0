// Package pairing implements §4.4: matching call/pattern arguments to a
// declaration's parameters by name and position, accounting for defaults.
// Grounded directly on original_source's
// compiler/hash-typecheck/src/ops/params.rs::pair_args_with_params and
// ::validate_param_list_ordering (see SPEC_FULL.md "Supplemented
// features") — the used_params/default_params bookkeeping and the
// done_positional flag are reproduced verbatim in Go idiom.
package pairing

import (
	"github.com/hash-org/lang/internal/tcerr"
	"github.com/hash-org/lang/internal/term"
)

// Pairing is one matched (Param, Arg) pair.
type Pairing struct {
	Param term.Param
	Arg   term.Arg
}

// Pair matches args against params left-to-right, honouring names,
// positions and defaults (§4.4's algorithm). origin records which side of a
// mismatch (params vs args) should be blamed in the returned error.
func Pair(
	params term.Params, args term.Args,
	origin tcerr.ParamListOrigin,
	paramsSubject, argsSubject term.TermId,
) ([]Pairing, *tcerr.TcError) {
	return pair(params, args, origin, paramsSubject, argsSubject, false)
}

// PairWithConfig is Pair, but when inferUnnamedParamDefaults is true (§6) an
// unnamed parameter carrying a default value may also be left unsupplied by
// the call, not just named ones.
func PairWithConfig(
	params term.Params, args term.Args,
	origin tcerr.ParamListOrigin,
	paramsSubject, argsSubject term.TermId,
	inferUnnamedParamDefaults bool,
) ([]Pairing, *tcerr.TcError) {
	return pair(params, args, origin, paramsSubject, argsSubject, inferUnnamedParamDefaults)
}

func pair(
	params term.Params, args term.Args,
	origin tcerr.ParamListOrigin,
	paramsSubject, argsSubject term.TermId,
	inferUnnamedParamDefaults bool,
) ([]Pairing, *tcerr.TcError) {
	result := make([]Pairing, 0, len(args.Items))
	paramIdx := make([]int, 0, len(args.Items))
	usedParams := make(map[int]bool)

	// Every named parameter carrying a default starts in defaultParams;
	// an argument (named or positional) that fills that slot removes it.
	// With inferUnnamedParamDefaults, an unnamed defaulted parameter counts
	// too (tracked by index since it has no name to key on).
	defaultParams := make(map[term.Ident]bool)
	defaultedUnnamed := make(map[int]bool)
	for i, p := range params.Items {
		if p.DefaultValue == nil {
			continue
		}
		if p.Name != nil {
			defaultParams[*p.Name] = true
		} else if inferUnnamedParamDefaults {
			defaultedUnnamed[i] = true
		}
	}

	donePositional := false
	for i, arg := range args.Items {
		if arg.Name != nil {
			donePositional = true
			idx, param, ok := params.GetByName(*arg.Name)
			if !ok {
				return nil, &tcerr.TcError{
					Code:          tcerr.CodeParamNotFound,
					Name:          *arg.Name,
					ParamsId:      0,
					ParamsSubject: paramsSubject,
				}
			}
			if usedParams[idx] {
				return nil, &tcerr.TcError{
					Code:        tcerr.CodeParamGivenTwice,
					ParamOrigin: origin,
					Index:       idx,
				}
			}
			usedParams[idx] = true
			result = append(result, Pairing{Param: param, Arg: arg})
			paramIdx = append(paramIdx, idx)
			delete(defaultParams, *arg.Name)
			continue
		}

		// Positional argument.
		if donePositional {
			return nil, &tcerr.TcError{
				Code:        tcerr.CodeAmbiguousArgumentOrdering,
				ParamOrigin: origin,
				Index:       i,
			}
		}
		if usedParams[i] {
			return nil, &tcerr.TcError{
				Code:        tcerr.CodeParamGivenTwice,
				ParamOrigin: origin,
				Index:       i,
			}
		}
		if i >= len(params.Items) {
			return nil, &tcerr.TcError{
				Code:          tcerr.CodeMismatchingArgParamLength,
				ParamsSubject: paramsSubject,
				ArgsSubject:   argsSubject,
			}
		}
		usedParams[i] = true
		param := params.Items[i]
		result = append(result, Pairing{Param: param, Arg: arg})
		paramIdx = append(paramIdx, i)
		if param.Name != nil {
			delete(defaultParams, *param.Name)
		}
		delete(defaultedUnnamed, i)
	}

	if len(params.Items) != len(args.Items)+len(defaultParams)+len(defaultedUnnamed) {
		return nil, &tcerr.TcError{
			Code:          tcerr.CodeMismatchingArgParamLength,
			ParamsSubject: paramsSubject,
			ArgsSubject:   argsSubject,
		}
	}

	// Append default values for params left unfilled by the call; the
	// result is then put in params' declaration order, so it aligns with
	// params positionally (§8 testable property 6).
	for idx, param := range params.Items {
		if usedParams[idx] {
			continue
		}
		if param.DefaultValue == nil {
			continue
		}
		if param.Name == nil && !defaultedUnnamed[idx] {
			continue
		}
		result = append(result, Pairing{
			Param: param,
			Arg:   term.Arg{Name: param.Name, Value: *param.DefaultValue},
		})
		paramIdx = append(paramIdx, idx)
	}

	aligned := make([]Pairing, 0, len(result))
	for want := range params.Items {
		for j, got := range paramIdx {
			if got == want {
				aligned = append(aligned, result[j])
			}
		}
	}
	return aligned, nil
}

// ValidateParamListOrdering checks the ordering-only property independent
// of any particular params declaration: named entries are each used at
// most once, and no positional entry follows a named one. Used to validate
// calls or pattern-argument lists before full type checking.
func ValidateParamListOrdering[T term.Named](list term.ParamList[T], origin tcerr.ParamListOrigin) *tcerr.TcError {
	used := make(map[term.Ident]bool)
	donePositional := false
	for i, item := range list.Items {
		name := item.GetNameOpt()
		if name != nil {
			if used[*name] {
				return &tcerr.TcError{Code: tcerr.CodeParamGivenTwice, ParamOrigin: origin, Index: i}
			}
			used[*name] = true
			donePositional = true
			continue
		}
		if donePositional {
			return &tcerr.TcError{Code: tcerr.CodeAmbiguousArgumentOrdering, ParamOrigin: origin, Index: i}
		}
	}
	return nil
}
