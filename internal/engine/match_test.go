package engine

import (
	"testing"

	"github.com/lambdapi-core/engine/internal/kernel"
	"github.com/lambdapi-core/engine/internal/term"
)

func newWildcardPatt() term.Patt { return term.Patt{Name: "_"} }

func TestMatchRulesLinearSlotReturnsArgument(t *testing.T) {
	a := constSymb("A")
	slot := kernel.NewVar("x")
	idx := 0
	lhs := []term.Term{term.Patt{Index: &idx, Name: "x"}}
	rhs := term.NewRHS([]*kernel.Var{slot}, term.BoxTEnvRef(slot, nil))
	f := term.NewSymbol(nil, "f", false)
	if err := f.AddRule(term.NewRule(lhs, rhs, 1)); err != nil {
		t.Fatalf("AddRule: %v", err)
	}

	result, rest, ok := MatchRules(f, Stack{NewCell(a)})
	if !ok {
		t.Fatalf("MatchRules(f, [A]) did not match")
	}
	if len(rest) != 0 {
		t.Errorf("rest stack = %d cells, want 0", len(rest))
	}
	if !Eq(result, a) {
		t.Errorf("f(A) rewrote to %#v, want A", result)
	}
}

func TestMatchRulesWildcardIgnoresArgument(t *testing.T) {
	a, b := constSymb("A"), constSymb("B")
	lhs := []term.Term{newWildcardPatt()}
	rhs := term.NewRHS(nil, term.BoxConst(b))
	g := term.NewSymbol(nil, "g", false)
	if err := g.AddRule(term.NewRule(lhs, rhs, 0)); err != nil {
		t.Fatalf("AddRule: %v", err)
	}

	result, _, ok := MatchRules(g, Stack{NewCell(a)})
	if !ok || !Eq(result, b) {
		t.Fatalf("g(A) = %#v, %v, want B, true", result, ok)
	}
}

func TestMatchRulesNonLinearSlotRequiresConvertibleArguments(t *testing.T) {
	a, b := constSymb("A"), constSymb("B")
	slot := kernel.NewVar("x")
	idx := 0
	p1 := term.Patt{Index: &idx, Name: "x"}
	p2 := term.Patt{Index: &idx, Name: "x"}
	rhs := term.NewRHS([]*kernel.Var{slot}, term.BoxTEnvRef(slot, nil))
	same := term.NewSymbol(nil, "same", false)
	if err := same.AddRule(term.NewRule([]term.Term{p1, p2}, rhs, 1)); err != nil {
		t.Fatalf("AddRule: %v", err)
	}

	result, _, ok := MatchRules(same, Stack{NewCell(a), NewCell(a)})
	if !ok || !Eq(result, a) {
		t.Fatalf("same(A, A) = %#v, %v, want A, true", result, ok)
	}

	_, _, ok = MatchRules(same, Stack{NewCell(a), NewCell(b)})
	if ok {
		t.Errorf("same(A, B) should not match a non-linear slot bound to A")
	}
}

func TestMatchRulesAnonymousEnvRestrictsFreeVariables(t *testing.T) {
	x := kernel.NewVar("x")
	p := term.Patt{Env: []*kernel.Var{x}}
	rhs := term.NewRHS(nil, term.BoxConst(constSymb("A")))
	h := term.NewSymbol(nil, "h", false)
	if err := h.AddRule(term.NewRule([]term.Term{p}, rhs, 0)); err != nil {
		t.Fatalf("AddRule: %v", err)
	}

	_, _, ok := MatchRules(h, Stack{NewCell(term.Vari{X: x})})
	if !ok {
		t.Errorf("h(x) should match a pattern env restricted to exactly x")
	}

	y := kernel.NewVar("y")
	_, _, ok = MatchRules(h, Stack{NewCell(term.Vari{X: y})})
	if ok {
		t.Errorf("h(y) should not match a pattern env restricted to x")
	}
}

func TestMatchRulesTriesRulesInDeclarationOrder(t *testing.T) {
	a, b := constSymb("A"), constSymb("B")
	pick := term.NewSymbol(nil, "pick", false)
	first := term.NewRule([]term.Term{newWildcardPatt()}, term.NewRHS(nil, term.BoxConst(a)), 0)
	second := term.NewRule([]term.Term{newWildcardPatt()}, term.NewRHS(nil, term.BoxConst(b)), 0)
	if err := pick.AddRule(first); err != nil {
		t.Fatalf("AddRule: %v", err)
	}
	if err := pick.AddRule(second); err != nil {
		t.Fatalf("AddRule: %v", err)
	}

	result, _, ok := MatchRules(pick, Stack{NewCell(constSymb("anything"))})
	if !ok || !Eq(result, a) {
		t.Errorf("pick(_) = %#v, want the first declared rule's A", result)
	}
}

func TestMatchRulesSkipsRuleRequiringMoreArgumentsThanAvailable(t *testing.T) {
	a := constSymb("A")
	sym := term.NewSymbol(nil, "s", false)
	twoArg := term.NewRule([]term.Term{newWildcardPatt(), newWildcardPatt()}, term.NewRHS(nil, term.BoxConst(constSymb("B"))), 0)
	zeroArg := term.NewRule(nil, term.NewRHS(nil, term.BoxConst(a)), 0)
	if err := sym.AddRule(twoArg); err != nil {
		t.Fatalf("AddRule: %v", err)
	}
	if err := sym.AddRule(zeroArg); err != nil {
		t.Fatalf("AddRule: %v", err)
	}

	result, rest, ok := MatchRules(sym, Stack{NewCell(constSymb("X"))})
	if !ok || !Eq(result, a) {
		t.Fatalf("MatchRules should fall through the too-wide rule to the nullary one, got %#v, %v", result, ok)
	}
	if len(rest) != 1 {
		t.Errorf("rest stack = %d, want the single untouched argument", len(rest))
	}
}

func TestMatchStructuralAbstSkipsDomainComparison(t *testing.T) {
	a, c := constSymb("A"), constSymb("C")
	x := kernel.NewVar("x")
	pattern := term.Unbox(term.BindAbst(term.BoxConst(a), x, term.BoxVari(x)))
	subject := term.Unbox(term.BindAbst(term.BoxConst(c), x, term.BoxVari(x)))

	var env []*kernel.MBinder[term.Term]
	ok := matchStructural(env, pattern.(term.Abst), NewCell(subject))
	if !ok {
		t.Errorf("matchStructural should match abstractions with differing domains")
	}
}
