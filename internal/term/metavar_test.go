package term

import (
	"testing"

	"github.com/lambdapi-core/engine/internal/kernel"
)

func TestMetaNameString(t *testing.T) {
	user := MetaName{User: "foo", IsUser: true}
	if user.String() != "foo" {
		t.Errorf("String() = %s, want foo", user.String())
	}
	internal := MetaName{Internal: 7}
	if internal.String() != "?7" {
		t.Errorf("String() = %s, want ?7", internal.String())
	}
}

func TestNewMetavarStartsUnset(t *testing.T) {
	a := Symb{Sym: NewSymbol(nil, "A", true)}
	m := NewMetavar(MetaName{Internal: 0}, a, 2)
	if !m.Unset() {
		t.Errorf("freshly constructed metavariable should be Unset")
	}
	if m.Value() != nil {
		t.Errorf("Value() = %#v, want nil", m.Value())
	}
}

func TestInstantiateSetsValueOnce(t *testing.T) {
	a := Symb{Sym: NewSymbol(nil, "A", true)}
	m := NewMetavar(MetaName{Internal: 0}, a, 0)
	body := NewRHS(nil, BoxConst(a))

	if err := m.Instantiate(body); err != nil {
		t.Fatalf("first Instantiate: %v", err)
	}
	if m.Unset() {
		t.Errorf("Unset() = true after Instantiate")
	}
	if err := m.Instantiate(body); err == nil {
		t.Fatalf("second Instantiate should fail: metavariable is monotonic")
	}
}

func TestInstantiateRejectsArityMismatch(t *testing.T) {
	a := Symb{Sym: NewSymbol(nil, "A", true)}
	m := NewMetavar(MetaName{Internal: 0}, a, 1)
	x := kernel.NewVar("x")
	body := NewRHS([]*kernel.Var{x}, BoxConst(a))
	body2 := NewRHS(nil, BoxConst(a))

	if err := m.Instantiate(body2); err == nil {
		t.Fatalf("Instantiate with wrong arity (0 vs 1) should fail")
	}
	if err := m.Instantiate(body); err != nil {
		t.Fatalf("Instantiate with matching arity should succeed: %v", err)
	}
}
