// Package diagnostic renders TcErrors for a human reading a terminal,
// separate from TcError.Error()'s plain string (which only exists to
// satisfy Go's error interface). It follows the teacher's internal/repl
// colour-scheme idiom — package-level SprintFuncs built from fatih/color
// rather than a bespoke ANSI writer.
package diagnostic

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"github.com/hash-org/lang/internal/tcerr"
)

var (
	red    = color.New(color.FgRed, color.Bold).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	cyan   = color.New(color.FgCyan).SprintFunc()
	dim    = color.New(color.Faint).SprintFunc()
)

// Render formats err as a short, coloured diagnostic line suitable for a
// terminal: a red "error:" tag and the message, the error's code under a
// dimmed "code:" label, and (for codes that carry child errors, candidates
// or missing bounds) a breakdown underneath marked in yellow.
func Render(err *tcerr.TcError) string {
	if err == nil {
		return ""
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", red("error:"), err.Error())
	fmt.Fprintf(&b, "  %s %s\n", dim("code:"), cyan(string(err.Code)))

	switch err.Code {
	case tcerr.CodeInvalidTyFnApplication:
		for i, inner := range err.UnificationErrors {
			fmt.Fprintf(&b, "  %s case %d: %s\n", yellow("-"), i, inner.Error())
		}
	case tcerr.CodeAmbiguousAccess:
		fmt.Fprintf(&b, "  %s %d candidate(s)\n", yellow("note:"), len(err.Results))
	case tcerr.CodeMissingPatternBounds:
		names := make([]string, len(err.Bounds))
		for i, n := range err.Bounds {
			names[i] = n.Name
		}
		fmt.Fprintf(&b, "  %s %s\n", yellow("missing:"), strings.Join(names, ", "))
	}

	return b.String()
}

// RenderAll renders a batch of errors separated by blank lines, the shape a
// caller accumulating failures across a whole check pass ends up with.
func RenderAll(errs []*tcerr.TcError) string {
	parts := make([]string, len(errs))
	for i, e := range errs {
		parts[i] = Render(e)
	}
	return strings.Join(parts, "\n")
}
