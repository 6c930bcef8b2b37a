package command

import (
	"fmt"
	"strings"

	"github.com/lambdapi-core/engine/internal/engine"
	"github.com/lambdapi-core/engine/internal/normal"
	"github.com/lambdapi-core/engine/internal/term"
)

// DeclareSymbol declares a fresh symbol handle in s.Signature (or
// returns the existing one, per sig.Signature.Declare's idempotence).
type DeclareSymbol struct {
	Path       []string
	Name       string
	IsConstant bool
	Pos        *Position
}

func (c DeclareSymbol) Run(s State) (State, *Result) {
	s.Signature.Declare(c.Path, c.Name, c.IsConstant)
	return s, ok(c.Pos, fmt.Sprintf("declared %s", qualifiedName(c.Path, c.Name)))
}

// SetType assigns a type to an already-declared symbol.
type SetType struct {
	Path []string
	Name string
	Type term.Term
	Pos  *Position
}

func (c SetType) Run(s State) (State, *Result) {
	sym, found := s.Signature.Lookup(c.Path, c.Name)
	if !found {
		return s, fail(c.Pos, fmt.Errorf("command: undeclared symbol %s", qualifiedName(c.Path, c.Name)))
	}
	sym.SetType(c.Type)
	return s, ok(c.Pos, fmt.Sprintf("%s : %s", qualifiedName(c.Path, c.Name), Pretty(c.Type)))
}

// AddRule attaches a rewrite rule to an already-declared symbol.
type AddRule struct {
	Path []string
	Name string
	Rule *term.Rule
	Pos  *Position
}

func (c AddRule) Run(s State) (State, *Result) {
	sym, found := s.Signature.Lookup(c.Path, c.Name)
	if !found {
		return s, fail(c.Pos, fmt.Errorf("command: undeclared symbol %s", qualifiedName(c.Path, c.Name)))
	}
	if err := sym.AddRule(c.Rule); err != nil {
		return s, fail(c.Pos, fmt.Errorf("command: adding rule to %s: %w", qualifiedName(c.Path, c.Name), err))
	}
	return s, ok(c.Pos, fmt.Sprintf("rule added to %s", qualifiedName(c.Path, c.Name)))
}

// Eval normalizes Term under the state's active evaluation
// configuration, optionally overriding its strategy for this one
// command.
type Eval struct {
	Term     term.Term
	Strategy *normal.Strategy
	Pos      *Position
}

func (c Eval) Run(s State) (State, *Result) {
	cfg := s.Eval
	if c.Strategy != nil {
		cfg.Strategy = *c.Strategy
	}
	result := normal.Eval(cfg, c.Term)
	s.Tracer.Reduction(Pretty(c.Term), Pretty(result))
	return s, ok(c.Pos, Pretty(result))
}

// EqModulo reports whether A and B are convertible under the core's
// rewrite rules and beta, logging the verdict through the state's
// tracer (a no-op when no tracer is configured).
type EqModulo struct {
	A, B term.Term
	Pos  *Position
}

func (c EqModulo) Run(s State) (State, *Result) {
	equal := engine.EqModulo(c.A, c.B)
	s.Tracer.Conversion(Pretty(c.A), Pretty(c.B), equal)
	verdict := "false"
	if equal {
		verdict = "true"
	}
	return s, ok(c.Pos, verdict)
}

// SetStrategy replaces the evaluation configuration used by later Eval
// commands that do not specify their own override.
type SetStrategy struct {
	Strategy  normal.Strategy
	StepBound int
	Pos       *Position
}

func (c SetStrategy) Run(s State) (State, *Result) {
	s.Eval = normal.Config{Strategy: c.Strategy, StepBound: c.StepBound}
	return s, ok(c.Pos, fmt.Sprintf("strategy set to %s", c.Strategy))
}

func qualifiedName(path []string, name string) string {
	if len(path) == 0 {
		return name
	}
	return strings.Join(path, ".") + "." + name
}
