package command

import (
	"bytes"
	"testing"

	"github.com/lambdapi-core/engine/internal/debugtrace"
	"github.com/lambdapi-core/engine/internal/kernel"
	"github.com/lambdapi-core/engine/internal/normal"
	"github.com/lambdapi-core/engine/internal/term"
)

func TestDeclareSymbolIsIdempotentAndLookupable(t *testing.T) {
	s := NewState()
	s, res := HandleCommand(s, DeclareSymbol{Name: "Nat", IsConstant: true})
	if res.IsError() {
		t.Fatalf("DeclareSymbol failed: %v", res.Err)
	}
	first, ok := s.Signature.Lookup(nil, "Nat")
	if !ok {
		t.Fatalf("Nat not found after DeclareSymbol")
	}
	s, res = HandleCommand(s, DeclareSymbol{Name: "Nat", IsConstant: true})
	if res.IsError() {
		t.Fatalf("second DeclareSymbol failed: %v", res.Err)
	}
	if again, _ := s.Signature.Lookup(nil, "Nat"); again != first {
		t.Errorf("second DeclareSymbol of Nat replaced its handle")
	}
}

func TestSetTypeOnUndeclaredSymbolFails(t *testing.T) {
	s := NewState()
	_, res := HandleCommand(s, SetType{Name: "ghost", Type: term.TypeSort})
	if !res.IsError() {
		t.Fatalf("SetType on an undeclared symbol should fail")
	}
}

func TestSetTypeThenEvalReportsNormalForm(t *testing.T) {
	s := NewState()
	s, _ = HandleCommand(s, DeclareSymbol{Name: "Nat", IsConstant: true})
	s, res := HandleCommand(s, SetType{Name: "Nat", Type: term.TypeSort})
	if res.IsError() {
		t.Fatalf("SetType failed: %v", res.Err)
	}

	natSym, _ := s.Signature.Lookup(nil, "Nat")
	_, res = HandleCommand(s, Eval{Term: term.Symb{Sym: natSym}})
	if res.IsError() {
		t.Fatalf("Eval failed: %v", res.Err)
	}
	if res.Message != "Nat" {
		t.Errorf("Eval message = %q, want %q", res.Message, "Nat")
	}
}

func TestAddRuleThenEvalFiresIt(t *testing.T) {
	s := NewState()
	s, _ = HandleCommand(s, DeclareSymbol{Name: "f"})
	s, _ = HandleCommand(s, DeclareSymbol{Name: "A", IsConstant: true})

	slot := kernel.NewVar("x")
	idx := 0
	rule := term.NewRule(
		[]term.Term{term.Patt{Index: &idx, Name: "x"}},
		term.NewRHS([]*kernel.Var{slot}, term.BoxTEnvRef(slot, nil)),
		1,
	)
	s, res := HandleCommand(s, AddRule{Name: "f", Rule: rule})
	if res.IsError() {
		t.Fatalf("AddRule failed: %v", res.Err)
	}

	aSym, _ := s.Signature.Lookup(nil, "A")
	fSym, _ := s.Signature.Lookup(nil, "f")
	applied := term.Apply(term.Symb{Sym: fSym}, []term.Term{term.Symb{Sym: aSym}})

	_, res = HandleCommand(s, Eval{Term: applied})
	if res.IsError() {
		t.Fatalf("Eval failed: %v", res.Err)
	}
	if res.Message != "A" {
		t.Errorf("Eval(f(A)) message = %q, want %q", res.Message, "A")
	}
}

func TestEqModuloReportsConvertibilityAndTraces(t *testing.T) {
	var buf bytes.Buffer
	tracer := debugtrace.NewTracer(debugtrace.Flags{TraceConversion: true}, &buf, nil)
	s := NewState()
	s.Tracer = tracer

	_, res := HandleCommand(s, EqModulo{A: term.TypeSort, B: term.TypeSort})
	if res.IsError() {
		t.Fatalf("EqModulo failed: %v", res.Err)
	}
	if res.Message != "true" {
		t.Errorf("EqModulo(TYPE, TYPE) message = %q, want true", res.Message)
	}
	if buf.Len() == 0 {
		t.Errorf("EqModulo should have written a conversion trace line")
	}
}

func TestEqModuloDistinguishesDistinctSorts(t *testing.T) {
	s := NewState()
	_, res := HandleCommand(s, EqModulo{A: term.TypeSort, B: term.KindSort})
	if res.Message != "false" {
		t.Errorf("EqModulo(TYPE, KIND) message = %q, want false", res.Message)
	}
}

func TestSetStrategyChangesSubsequentEval(t *testing.T) {
	s := NewState()
	s, _ = HandleCommand(s, DeclareSymbol{Name: "id"})
	idSym, _ := s.Signature.Lookup(nil, "id")

	x := kernel.NewVar("x")
	idTerm := term.Unbox(term.BindAbst(term.BoxConst(term.TypeSort), x, term.BoxVari(x)))
	applied := term.Apply(idTerm, []term.Term{term.Symb{Sym: idSym}})

	s, res := HandleCommand(s, SetStrategy{Strategy: normal.StrategySnf})
	if res.IsError() {
		t.Fatalf("SetStrategy failed: %v", res.Err)
	}
	if s.Eval.Strategy != normal.StrategySnf {
		t.Fatalf("state strategy = %v, want snf", s.Eval.Strategy)
	}

	_, res = HandleCommand(s, Eval{Term: applied})
	if res.Message != "id" {
		t.Errorf("Eval(applied) message = %q, want %q", res.Message, "id")
	}
}
