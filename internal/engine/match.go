package engine

import (
	"github.com/lambdapi-core/engine/internal/kernel"
	"github.com/lambdapi-core/engine/internal/term"
)

// MatchRules iterates s's rules in declaration order and returns the
// first one whose left-hand side matches stk. Rule order is
// user-visible and never reordered. The returned stack has the
// matched rule's arguments consumed from the front.
func MatchRules(s *term.Symbol, stk Stack) (term.Term, Stack, bool) {
	for _, r := range s.Rules() {
		if r.Arity > len(stk) {
			continue
		}
		env := make([]*kernel.MBinder[term.Term], r.EnvSize)
		matched := true
		for i, p := range r.LHS {
			if !match(env, p, stk[i]) {
				matched = false
				break
			}
		}
		if !matched {
			continue
		}
		args := make([]term.Term, r.EnvSize)
		for i, b := range env {
			if b != nil {
				args[i] = term.FilledSlot(b)
			}
		}
		rhs := r.RHS.Subst(args)
		return rhs, stk[r.Arity:], true
	}
	return nil, stk, false
}

// match implements spec's higher-order pattern-matching primitive:
// pattern placeholders take priority over structural destructuring,
// in the listed order, so a matched argument is not needlessly
// forced when a cheaper check already decides the outcome.
func match(env []*kernel.MBinder[term.Term], p term.Term, cell *Cell) bool {
	if pt, ok := p.(term.Patt); ok {
		return matchPatt(env, pt, cell)
	}
	return matchStructural(env, p, cell)
}

func matchPatt(env []*kernel.MBinder[term.Term], p term.Patt, cell *Cell) bool {
	if p.Index == nil {
		if len(p.Env) == 0 {
			return true // anonymous wildcard
		}
		_, ok := bindOverEnv(cell.Force(), p.Env)
		return ok
	}
	i := *p.Index
	if env[i] == nil {
		if len(p.Env) == 0 {
			// Linear, no-environment case: defer evaluation -- the
			// slot reads whatever is in the cell when the RHS
			// eventually asks, which may by then be a shared forced
			// value from an unrelated later reference to the same
			// cell.
			env[i] = kernel.NewMBinder[term.Term](nil, wrapVarEngine, func([]term.Term) term.Term {
				return cell.Value()
			}, true)
			return true
		}
		b, ok := bindOverEnv(cell.Force(), p.Env)
		if !ok {
			return false
		}
		env[i] = b
		return true
	}
	// Bound / non-linear case: the slot was already filled by an
	// earlier argument; require the new occurrence, applied to its own
	// local environment, to be convertible with the forced subject.
	applied := env[i].Subst(varsToTerms(p.Env))
	return EqModulo(applied, cell.Force())
}

func varsToTerms(e []*kernel.Var) []term.Term {
	out := make([]term.Term, len(e))
	for i, v := range e {
		out[i] = term.Vari{X: v}
	}
	return out
}

// matchStructural handles the four non-pattern LHS shapes: the
// subject is forced to whnf (updating the cell in place, the one
// mutation sharing permits), then destructured.
func matchStructural(env []*kernel.MBinder[term.Term], p term.Term, cell *Cell) bool {
	subj := cell.Force()
	switch pt := p.(type) {
	case term.Abst:
		sa, ok := subj.(term.Abst)
		if !ok {
			return false
		}
		// Domain annotations are not compared: patterns do not
		// constrain abstraction domains.
		v, pBody := pt.Body.Open()
		sBody := sa.Body.Subst(wrapVarEngine(v))
		return match(env, pBody, NewCell(sBody))
	case term.Appl:
		sa, ok := subj.(term.Appl)
		if !ok {
			return false
		}
		if !match(env, pt.Fun, NewCell(sa.Fun)) {
			return false
		}
		return match(env, pt.Arg, NewCell(sa.Arg))
	case term.Vari:
		sv, ok := subj.(term.Vari)
		return ok && kernel.SameVar(pt.X, sv.X)
	case term.Symb:
		sv, ok := subj.(term.Symb)
		return ok && pt.Sym == sv.Sym
	default:
		term.Assertf("match: unexpected left-hand-side pattern constructor %#v", p)
		return false
	}
}
