package term

import (
	"testing"

	"github.com/lambdapi-core/engine/internal/kernel"
)

func TestNewSymbolDefaults(t *testing.T) {
	s := NewSymbol([]string{"nat"}, "zero", true)
	if s.Type() != nil {
		t.Errorf("Type() = %#v, want nil before SetType", s.Type())
	}
	if len(s.Rules()) != 0 {
		t.Errorf("Rules() = %#v, want empty", s.Rules())
	}
}

func TestSetTypeReplacesCell(t *testing.T) {
	s := NewSymbol(nil, "zero", true)
	ty := Symb{Sym: NewSymbol(nil, "Nat", true)}
	s.SetType(ty)
	if s.Type() != Term(ty) {
		t.Errorf("Type() = %#v, want %#v", s.Type(), ty)
	}
}

func TestAddRuleRejectsConstantSymbol(t *testing.T) {
	s := NewSymbol(nil, "zero", true)
	r := NewRule(nil, NewRHS(nil, BoxConst(Symb{Sym: s})), 0)
	if err := s.AddRule(r); err == nil {
		t.Fatalf("AddRule on a constant symbol should fail")
	}
	if len(s.Rules()) != 0 {
		t.Errorf("Rules() = %#v, want still empty after rejected AddRule", s.Rules())
	}
}

func TestAddRuleAppendsInOrder(t *testing.T) {
	plus := NewSymbol(nil, "plus", false)
	r1 := NewRule(nil, NewRHS(nil, BoxConst(Symb{Sym: plus})), 0)
	r2 := NewRule(nil, NewRHS(nil, BoxConst(Symb{Sym: plus})), 0)

	if err := plus.AddRule(r1); err != nil {
		t.Fatalf("AddRule r1: %v", err)
	}
	if err := plus.AddRule(r2); err != nil {
		t.Fatalf("AddRule r2: %v", err)
	}
	rules := plus.Rules()
	if len(rules) != 2 || rules[0] != r1 || rules[1] != r2 {
		t.Errorf("Rules() = %#v, want [r1 r2] in declaration order", rules)
	}
}

func TestRulesReturnsCopy(t *testing.T) {
	plus := NewSymbol(nil, "plus", false)
	r1 := NewRule(nil, NewRHS(nil, BoxConst(Symb{Sym: plus})), 0)
	if err := plus.AddRule(r1); err != nil {
		t.Fatalf("AddRule: %v", err)
	}
	snapshot := plus.Rules()
	snapshot[0] = nil
	if plus.Rules()[0] != r1 {
		t.Errorf("mutating a Rules() snapshot affected the symbol's own rule list")
	}
}

func TestNewRuleDerivesArityFromLHS(t *testing.T) {
	x := kernel.NewVar("x")
	lhs := []Term{Patt{Index: intPtr(0), Name: "x", Env: nil}}
	r := NewRule(lhs, NewRHS([]*kernel.Var{x}, BoxVari(x)), 1)
	if r.Arity != 1 {
		t.Errorf("Arity = %d, want 1", r.Arity)
	}
}

func intPtr(i int) *int { return &i }
