// Command tcrepl is a minimal interactive shell over the checking core,
// for exercising the Unifier/Simplifier/Typer against small built-in
// scenarios without wiring up a surface-language parser. Modelled on the
// teacher's internal/repl: a liner.Liner for history/editing, fatih/color
// for output, and a small leading-colon command set.
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/peterh/liner"

	"github.com/hash-org/lang/internal/check"
	"github.com/hash-org/lang/internal/diagnostic"
	"github.com/hash-org/lang/internal/tcconfig"
	"github.com/hash-org/lang/internal/term"
)

var (
	green = color.New(color.FgGreen).SprintFunc()
	bold  = color.New(color.Bold).SprintFunc()
	dim   = color.New(color.Faint).SprintFunc()
)

type session struct {
	store   *term.GlobalStore
	checker *check.Checker
	cfg     tcconfig.Config
}

func newSession() *session {
	store := term.NewGlobalStore()
	c := check.New(store)
	cfg := tcconfig.Defaults()
	tcconfig.Apply(c, cfg)
	return &session{store: store, checker: c, cfg: cfg}
}

func main() {
	s := newSession()

	line := liner.NewLiner()
	defer line.Close()
	line.SetMultiLineMode(false)

	historyFile := filepath.Join(os.TempDir(), ".tcrepl_history")
	if f, err := os.Open(historyFile); err == nil {
		_, _ = line.ReadHistory(f)
		f.Close()
	}

	line.SetCompleter(func(in string) (c []string) {
		for _, cmd := range []string{":help", ":quit", ":config", ":demo-unify-ok",
			":demo-unify-fail", ":demo-merge", ":demo-tyfn"} {
			if strings.HasPrefix(cmd, in) {
				c = append(c, cmd)
			}
		}
		return
	})

	fmt.Printf("%s\n", bold("tcrepl"))
	fmt.Println(dim("Type :help for commands, :quit to exit"))

	for {
		input, err := line.Prompt("tc> ")
		if err == io.EOF {
			fmt.Println(green("\nGoodbye!"))
			break
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "input error: %v\n", err)
			break
		}
		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		line.AppendHistory(input)
		if f, ferr := os.Create(historyFile); ferr == nil {
			_, _ = line.WriteHistory(f)
			f.Close()
		}

		s.dispatch(input)
	}
}

func (s *session) dispatch(input string) {
	switch {
	case input == ":quit" || input == ":q":
		os.Exit(0)
	case input == ":help":
		s.printHelp()
	case input == ":config":
		s.printConfig()
	case strings.HasPrefix(input, ":config "):
		s.setConfig(strings.TrimPrefix(input, ":config "))
	case input == ":demo-unify-ok":
		s.demoUnifyOK()
	case input == ":demo-unify-fail":
		s.demoUnifyFail()
	case input == ":demo-merge":
		s.demoMerge()
	case input == ":demo-tyfn":
		s.demoTyFn()
	default:
		fmt.Printf("unknown command %q; try :help\n", input)
	}
}

func (s *session) printHelp() {
	fmt.Println(`commands:
  :help               show this message
  :config              show the active configuration
  :config <key>=<val>  set recursion_depth_limit / strict_merge_nominal / infer_unnamed_param_defaults
  :demo-unify-ok       unify two structurally identical Fn types
  :demo-unify-fail     unify two distinct nominals (expect a diagnostic)
  :demo-merge          simplify a Merge of duplicate elements
  :demo-tyfn           apply a trivial type function
  :quit                exit`)
}

func (s *session) printConfig() {
	fmt.Printf("recursion_depth_limit: %d\nstrict_merge_nominal: %t\ninfer_unnamed_param_defaults: %t\n",
		s.cfg.RecursionDepthLimit, s.cfg.StrictMergeNominal, s.cfg.InferUnnamedParamDefaults)
}

func (s *session) setConfig(kv string) {
	parts := strings.SplitN(kv, "=", 2)
	if len(parts) != 2 {
		fmt.Println("usage: :config <key>=<value>")
		return
	}
	key, val := strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])
	switch key {
	case "recursion_depth_limit":
		var n int
		if _, err := fmt.Sscanf(val, "%d", &n); err != nil || n <= 0 {
			fmt.Println("expected a positive integer")
			return
		}
		s.cfg.RecursionDepthLimit = n
	case "strict_merge_nominal":
		s.cfg.StrictMergeNominal = val == "true"
	case "infer_unnamed_param_defaults":
		s.cfg.InferUnnamedParamDefaults = val == "true"
	default:
		fmt.Printf("unknown config key %q\n", key)
		return
	}
	tcconfig.Apply(s.checker, s.cfg)
	s.printConfig()
}

func (s *session) demoUnifyOK() {
	anyTy := s.store.CreateTerm(&term.Level2Term{Value: &term.AnyTy{}})
	name := term.NewIdent("a")
	params := s.store.CreateParams(term.Params{Origin: term.OriginFn, Items: []term.Param{{Name: &name, Ty: anyTy}}})
	f1 := s.store.CreateTerm(&term.Level1Term{Value: &term.Fn{Params: params, Return: anyTy}})
	f2 := s.store.CreateTerm(&term.Level1Term{Value: &term.Fn{Params: params, Return: anyTy}})

	if _, err := s.checker.Unify(f1, f2, nil); err != nil {
		fmt.Print(diagnostic.Render(err))
		return
	}
	fmt.Println(green("ok: (a: AnyTy) -> AnyTy unifies with itself"))
}

func (s *session) demoUnifyFail() {
	a := s.store.CreateTerm(&term.Level1Term{Value: &term.NominalTy{Def: 1}})
	b := s.store.CreateTerm(&term.Level1Term{Value: &term.NominalTy{Def: 2}})
	if _, err := s.checker.Unify(a, b, nil); err != nil {
		fmt.Print(diagnostic.Render(err))
		return
	}
	fmt.Println("unexpectedly unified")
}

func (s *session) demoMerge() {
	anyTy := s.store.CreateTerm(&term.Level2Term{Value: &term.AnyTy{}})
	merge := s.store.CreateTerm(&term.Merge{Terms: []term.TermId{anyTy, anyTy}})
	got, err := s.checker.Simplify(merge)
	if err != nil {
		fmt.Print(diagnostic.Render(err))
		return
	}
	fmt.Printf("%s simplified %s to %s\n", green("ok:"), merge, got)
}

func (s *session) demoTyFn() {
	anyTy := s.store.CreateTerm(&term.Level2Term{Value: &term.AnyTy{}})
	name := term.NewIdent("T")
	params := s.store.CreateParams(term.Params{Origin: term.OriginTyFn, Items: []term.Param{{Name: &name, Ty: anyTy}}})
	caseParams := s.store.CreateParams(term.Params{Origin: term.OriginTyFn, Items: []term.Param{{Name: &name, Ty: anyTy}}})
	tyFn := s.store.CreateTerm(&term.TyFn{
		GeneralParams:    params,
		GeneralReturnTy:  anyTy,
		Cases: []term.TyFnCase{
			{Params: caseParams, ReturnTy: anyTy, ReturnValue: anyTy},
		},
	})
	args := s.store.CreateArgs(term.Args{Origin: term.OriginTyFn, Items: []term.Arg{{Name: &name, Value: anyTy}}})
	call := s.store.CreateTerm(&term.TyFnCall{Subject: tyFn, Args: args})

	got, err := s.checker.Simplify(call)
	if err != nil {
		fmt.Print(diagnostic.Render(err))
		return
	}
	fmt.Printf("%s applied the type function, got %s\n", green("ok:"), got)
}
