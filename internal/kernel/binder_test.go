package kernel

import "testing"

// toyTerm is a minimal term type used only to exercise the generic
// kernel without depending on internal/term.
type toyTerm struct {
	op   string
	name string
	v    *Var
	kids []toyTerm
}

func tVar(v *Var) toyTerm  { return toyTerm{op: "var", v: v} }
func tLeaf(name string) toyTerm { return toyTerm{op: "leaf", name: name} }
func tApp(f, a toyTerm) toyTerm { return toyTerm{op: "app", kids: []toyTerm{f, a}} }

func eqToy(a, b toyTerm) bool {
	if a.op != b.op {
		return false
	}
	switch a.op {
	case "var":
		return SameVar(a.v, b.v)
	case "leaf":
		return a.name == b.name
	case "app":
		return eqToy(a.kids[0], b.kids[0]) && eqToy(a.kids[1], b.kids[1])
	}
	return false
}

func TestVarIdentity(t *testing.T) {
	x := NewVar("x")
	y := NewVar("x") // same hint, different identity
	if !SameVar(x, x) {
		t.Fatalf("variable should equal itself")
	}
	if SameVar(x, y) {
		t.Fatalf("two distinct openings must not be the same variable")
	}
}

func TestBindOpenRoundTrip(t *testing.T) {
	x := NewVar("x")
	body := Apply2T(BoxVar(x, tVar), Unit(tLeaf("c")), tApp)
	boxed := Bind(x, body, tVar)
	binder := Unbox(boxed)

	v, opened := binder.Open()
	want := tApp(tVar(v), tLeaf("c"))
	if !eqToy(opened, want) {
		t.Fatalf("Open produced %+v, want %+v", opened, want)
	}
}

func TestSubstReplacesWithConcreteTerm(t *testing.T) {
	x := NewVar("x")
	body := Apply2T(BoxVar(x, tVar), BoxVar(x, tVar), tApp)
	binder := Unbox(Bind(x, body, tVar))

	arg := tLeaf("42")
	got := binder.Subst(arg)
	want := tApp(arg, arg)
	if !eqToy(got, want) {
		t.Fatalf("Subst = %+v, want %+v", got, want)
	}
}

func TestBinderEqualUnderAlphaRenaming(t *testing.T) {
	// \x. x  and  \y. y  must compare equal: open both with the SAME
	// fresh variable and compare bodies.
	x := NewVar("x")
	b1 := Unbox(Bind(x, BoxVar(x, tVar), tVar))

	y := NewVar("y")
	b2 := Unbox(Bind(y, BoxVar(y, tVar), tVar))

	if !BinderEqual(b1, b2, eqToy) {
		t.Fatalf("alpha-equivalent binders compared unequal")
	}
}

func TestBinderNotEqualWhenBodiesDiffer(t *testing.T) {
	x := NewVar("x")
	b1 := Unbox(Bind(x, BoxVar(x, tVar), tVar))
	b2 := Unbox(Bind(x, Unit(tLeaf("c")), tVar))
	if BinderEqual(b1, b2, eqToy) {
		t.Fatalf("binders with different bodies should not be equal")
	}
}

func TestBoxClosedness(t *testing.T) {
	x := NewVar("x")
	open := BoxVar[toyTerm](x, tVar)
	if open.IsClosed() {
		t.Fatalf("box mentioning a free variable must not be closed")
	}
	closed := Bind(x, open, tVar)
	if !closed.IsClosed() {
		t.Fatalf("binding the only free variable should close the box")
	}
}

func TestMBinderOpenAndSubst(t *testing.T) {
	x := NewVar("x")
	y := NewVar("y")
	body := Apply2T(BoxVar(x, tVar), BoxVar(y, tVar), tApp)
	mb := Unbox(BindMulti([]*Var{x, y}, body, tVar))

	if mb.Arity() != 2 {
		t.Fatalf("Arity() = %d, want 2", mb.Arity())
	}
	if !mb.IsClosed() {
		t.Fatalf("binding both free variables should close the box")
	}

	vars, opened := mb.Open()
	want := tApp(tVar(vars[0]), tVar(vars[1]))
	if !eqToy(opened, want) {
		t.Fatalf("Open = %+v, want %+v", opened, want)
	}

	a, b := tLeaf("a"), tLeaf("b")
	got := mb.Subst([]toyTerm{a, b})
	if !eqToy(got, tApp(a, b)) {
		t.Fatalf("Subst = %+v, want app(a, b)", got)
	}
}

func TestMBinderEqualUnderAlphaRenaming(t *testing.T) {
	x, y := NewVar("x"), NewVar("y")
	b1 := Unbox(BindMulti([]*Var{x, y}, Apply2T(BoxVar(x, tVar), BoxVar(y, tVar), tApp), tVar))

	p, q := NewVar("p"), NewVar("q")
	b2 := Unbox(BindMulti([]*Var{p, q}, Apply2T(BoxVar(p, tVar), BoxVar(q, tVar), tApp), tVar))

	if !MBinderEqual(b1, b2, eqToy) {
		t.Fatalf("alpha-equivalent multi-binders compared unequal")
	}
}

func TestBoxFreeVarsOfApplication(t *testing.T) {
	x, y := NewVar("x"), NewVar("y")
	box := Apply2T(BoxVar(x, tVar), BoxVar(y, tVar), tApp)
	if box.IsClosed() {
		t.Fatalf("application of two free variables must not be closed")
	}
	if len(box.FreeVars()) != 2 {
		t.Fatalf("FreeVars() = %d, want 2", len(box.FreeVars()))
	}
}
