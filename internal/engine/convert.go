package engine

import (
	"github.com/lambdapi-core/engine/internal/kernel"
	"github.com/lambdapi-core/engine/internal/term"
)

// Eq decides syntactic α-equality: recursively compares under Unfold,
// variables by identity, symbols by handle, binders by opening both
// with a shared fresh variable, metavariables by handle with
// pointwise-equal environments. It never instantiates a
// metavariable — two occurrences of the same uninstantiated
// metavariable with different environments are simply unequal.
// Pattern and environment placeholders reaching here indicate a term
// escaped its rule context; that is a programming error, not a
// convertibility failure.
func Eq(a, b term.Term) bool {
	x := term.Unfold(a)
	y := term.Unfold(b)
	switch xa := x.(type) {
	case term.Vari:
		yb, ok := y.(term.Vari)
		return ok && kernel.SameVar(xa.X, yb.X)
	case term.Sort:
		yb, ok := y.(term.Sort)
		return ok && xa.Kind == yb.Kind
	case term.Symb:
		yb, ok := y.(term.Symb)
		return ok && xa.Sym == yb.Sym
	case term.Prod:
		yb, ok := y.(term.Prod)
		if !ok || !Eq(xa.Dom, yb.Dom) {
			return false
		}
		return kernel.BinderEqual(xa.Cod, yb.Cod, Eq)
	case term.Abst:
		yb, ok := y.(term.Abst)
		if !ok || !Eq(xa.Dom, yb.Dom) {
			return false
		}
		return kernel.BinderEqual(xa.Body, yb.Body, Eq)
	case term.Appl:
		yb, ok := y.(term.Appl)
		return ok && Eq(xa.Fun, yb.Fun) && Eq(xa.Arg, yb.Arg)
	case term.Meta:
		yb, ok := y.(term.Meta)
		if !ok || xa.M != yb.M || len(xa.Env) != len(yb.Env) {
			return false
		}
		for i := range xa.Env {
			if !Eq(xa.Env[i], yb.Env[i]) {
				return false
			}
		}
		return true
	default:
		term.Assertf("eq: unexpected term variant %#v reaching syntactic equality", x)
		return false
	}
}

type convPair struct{ a, b term.Term }

// EqModulo decides βR-convertibility: whether a and b reduce to the
// same term under whnf_stk and the declared rewrite rules, up to
// α-equality. Not guaranteed to terminate for a non-confluent or
// non-terminating rule system; the caller is responsible for only
// invoking it where the surrounding type-checker's confluence and
// termination obligations hold.
func EqModulo(a, b term.Term) bool {
	worklist := []convPair{{a, b}}
	for len(worklist) > 0 {
		n := len(worklist) - 1
		p := worklist[n]
		worklist = worklist[:n]

		if Eq(p.a, p.b) {
			continue
		}

		ah, sa := WhnfStack(p.a, nil)
		bh, sb := WhnfStack(p.b, nil)

		// Synchronize spines right to left (deepest argument first):
		// Stack[0] is the leftmost (innermost, first-applied) argument,
		// so the tail of each stack holds the last-applied, outermost one.
		for len(sa) > 0 && len(sb) > 0 {
			la, lb := len(sa)-1, len(sb)-1
			worklist = append(worklist, convPair{sa[la].Value(), sb[lb].Value()})
			sa, sb = sa[:la], sb[:lb]
		}
		ahFull := rebuild(ah, sa)
		bhFull := rebuild(bh, sb)

		if Eq(ahFull, bhFull) {
			continue
		}

		switch xa := ahFull.(type) {
		case term.Abst:
			xb, ok := bhFull.(term.Abst)
			if !ok {
				return false
			}
			worklist = append(worklist, convPair{xa.Dom, xb.Dom})
			v, ba := xa.Body.Open()
			bb := xb.Body.Subst(wrapVarEngine(v))
			worklist = append(worklist, convPair{ba, bb})
		case term.Prod:
			xb, ok := bhFull.(term.Prod)
			if !ok {
				return false
			}
			worklist = append(worklist, convPair{xa.Dom, xb.Dom})
			v, ca := xa.Cod.Open()
			cb := xb.Cod.Subst(wrapVarEngine(v))
			worklist = append(worklist, convPair{ca, cb})
		default:
			return false
		}
	}
	return true
}
