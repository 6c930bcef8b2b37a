// Package normal implements the three reduction strategies exposed to
// callers on top of internal/engine's abstract machine: weak head,
// head, and strong normal form, plus the bounded Eval entry point that
// wraps them behind a configuration.
package normal

import (
	"log"

	"github.com/lambdapi-core/engine/internal/config"
	"github.com/lambdapi-core/engine/internal/engine"
	"github.com/lambdapi-core/engine/internal/term"
)

// Whnf reduces t to weak head normal form: no reduction is performed
// under a binder, and a stuck spine's arguments are left untouched.
func Whnf(t term.Term) term.Term {
	return engine.Whnf(t)
}

// Hnf reduces t to head normal form: like Whnf, but once the head is
// stuck behind a binder, the binder is opened and its body is itself
// reduced to head normal form. Spine arguments of a stuck application
// are never touched, matching Whnf.
func Hnf(t term.Term) term.Term {
	head, stk := engine.WhnfStack(t, nil)
	switch x := head.(type) {
	case term.Abst:
		// WhnfStack only returns an Abst head once its argument stack
		// is exhausted, so there is no pending spine to rebuild here.
		v, body := x.Body.Open()
		return term.Unbox(term.BindAbst(term.BoxConst(x.Dom), v, term.Lift(Hnf(body))))
	case term.Prod:
		v, cod := x.Cod.Open()
		return term.Unbox(term.BindProd(term.BoxConst(x.Dom), v, term.Lift(Hnf(cod))))
	}
	return rebuildWith(head, stk, func(u term.Term) term.Term { return u })
}

// Snf reduces t to strong normal form: every subterm, including
// binder domains, codomains/bodies, and spine arguments, is reduced.
func Snf(t term.Term) term.Term {
	head, stk := engine.WhnfStack(t, nil)
	switch x := head.(type) {
	case term.Abst:
		v, body := x.Body.Open()
		return term.Unbox(term.BindAbst(term.BoxConst(Snf(x.Dom)), v, term.Lift(Snf(body))))
	case term.Prod:
		v, cod := x.Cod.Open()
		return term.Unbox(term.BindProd(term.BoxConst(Snf(x.Dom)), v, term.Lift(Snf(cod))))
	case term.Meta:
		env := make([]term.Term, len(x.Env))
		for i, e := range x.Env {
			env[i] = Snf(e)
		}
		head = term.Meta{M: x.M, Env: env}
	}
	return rebuildWith(head, stk, Snf)
}

func rebuildWith(head term.Term, stk engine.Stack, normalizeArg func(term.Term) term.Term) term.Term {
	args := make([]term.Term, len(stk))
	for i, c := range stk {
		args[i] = normalizeArg(c.Value())
	}
	return term.Apply(head, args)
}

// Strategy selects one of the three reduction disciplines Eval can
// run a term through.
type Strategy int

const (
	StrategyWhnf Strategy = iota
	StrategyHnf
	StrategySnf
)

func (s Strategy) String() string {
	switch s {
	case StrategyWhnf:
		return config.StrategyWhnf
	case StrategyHnf:
		return config.StrategyHnf
	case StrategySnf:
		return config.StrategySnf
	default:
		return "unknown"
	}
}

// Config is an evaluation request: a strategy and an optional
// positive step bound. A zero bound means unbounded; a positive bound
// is the documented-but-unsupported case.
type Config struct {
	Strategy Strategy
	// StepBound, when positive, is supposed to cap the number of
	// reduction steps performed. Not implemented: Eval logs a warning
	// and returns t unchanged whenever StepBound > 0.
	StepBound int
}

// Eval runs cfg.Strategy over t. A zero StepBound runs the strategy to
// completion, same as Whnf/Hnf/Snf directly. Any positive StepBound is
// an acknowledged limitation, not a guarantee: Eval logs a warning and
// returns t unchanged rather than silently ignoring the request.
func Eval(cfg Config, t term.Term) term.Term {
	if cfg.StepBound > 0 {
		log.Printf("normal: positive step bound %d is not implemented for strategy %s, returning input unchanged", cfg.StepBound, cfg.Strategy)
		return t
	}
	switch cfg.Strategy {
	case StrategyWhnf:
		return Whnf(t)
	case StrategyHnf:
		return Hnf(t)
	case StrategySnf:
		return Snf(t)
	default:
		term.Assertf("normal: unknown strategy %d", int(cfg.Strategy))
		return nil
	}
}
