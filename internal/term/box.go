package term

import "github.com/lambdapi-core/engine/internal/kernel"

// Box is a term under construction via internal/kernel's lifted
// layer; binders (Prod's codomain, Abst's body, a rule's RHS
// multi-binder) are only ever formed through this layer.
type Box = kernel.Box[Term]

// wrapVar embeds a kernel variable as a Term; passed to every
// kernel binder/box operation in this package so callers never have
// to repeat it.
func wrapVar(v *kernel.Var) Term { return Vari{X: v} }

// BoxVari lifts a bound variable into a Box.
func BoxVari(x *kernel.Var) Box { return kernel.BoxVar(x, wrapVar) }

// BoxConst lifts an already-closed term (a sort, a symbol occurrence,
// a constant) into a Box with no free variables.
func BoxConst(t Term) Box { return kernel.Unit(t) }

// BindProd constructs a Box for a dependent product from a bound
// variable x and boxes for the domain and the codomain (the latter
// expressed in terms of x, i.e. built using BoxVari(x) for x's
// occurrences).
func BindProd(dom Box, x *kernel.Var, cod Box) Box {
	return kernel.Apply2(dom, kernel.Bind(x, cod, wrapVar), func(d Term, c *kernel.Binder[Term]) Term {
		return Prod{Dom: d, Cod: c}
	})
}

// BindAbst constructs a Box for an abstraction from a bound variable
// x and boxes for the domain and the body (the latter expressed in
// terms of x).
func BindAbst(dom Box, x *kernel.Var, body Box) Box {
	return kernel.Apply2(dom, kernel.Bind(x, body, wrapVar), func(d Term, b *kernel.Binder[Term]) Term {
		return Abst{Dom: d, Body: b}
	})
}

// BoxAppl builds a Box for an application from boxes for the function
// and the argument.
func BoxAppl(fn, arg Box) Box {
	return kernel.Apply2T(fn, arg, func(f, a Term) Term { return Appl{Fun: f, Arg: a} })
}

// BoxMeta builds a Box for a metavariable occurrence from the meta
// handle and boxes for its environment entries.
func BoxMeta(m *Metavar, env []Box) Box {
	return kernel.ApplyNT(env, func(vals []Term) Term { return Meta{M: m, Env: vals} })
}

// BoxPatt builds a Box for a pattern placeholder. e is the (already
// opened) list of bound variables the matched term may depend on;
// each is registered as a free variable of the resulting box so an
// enclosing Bind over one of them renames consistently, and the
// renamed variable (not the one e was built with) is what ends up in
// the Patt the box eventually produces. This matters whenever this
// Patt sits under a Prod/Abst that is later Open()'d with a fresh
// variable: the Env entries must track that fresh variable, not stay
// pinned to whatever variable was in scope when BoxPatt was called.
func BoxPatt(index *int, name string, e []*kernel.Var) Box {
	vars := make([]Box, len(e))
	for i, v := range e {
		vars[i] = BoxVari(v)
	}
	return kernel.ApplyNT(vars, func(vals []Term) Term {
		env := make([]*kernel.Var, len(vals))
		for i, val := range vals {
			vv, ok := val.(Vari)
			if !ok {
				Assertf("BoxPatt: pattern environment entry %#v is not a bound variable", val)
			}
			env[i] = vv.X
		}
		return Patt{Index: index, Name: name, Env: env}
	})
}

// slotValue is produced only as the value a rule's RHS multi-binder
// substitutes for one of its own slot variables while a Box is under
// construction (see FilledSlot/NewRHS below); BoxTEnvRef always
// rewrites it into a TEnv node carrying the occurrence's own local Env
// before the enclosing box is unboxed, so it never appears in a term
// reachable through Unfold.
type slotValue struct {
	filled bool
	b      *kernel.MBinder[Term]
}

func (slotValue) isTerm() {}

// BoxTEnvRef builds a Box for one occurrence, within a rule's static
// RHS template, of a reference to the pattern-variable slot bound by
// the kernel variable slotVar (one of the RHS multi-binder's own
// bound variables; see NewRHS). e is the list of locally bound
// variables this particular occurrence applies the slot's eventual
// value to -- which may differ between occurrences of the same slot
// (a non-linear, higher-order pattern variable applied to different
// arguments at each right-hand-side site).
//
// When the RHS multi-binder is substituted with the matcher's
// populated slot values, this occurrence resolves to a
// TEnv{Cell: EnvFilled} term; Unfold then lazily applies the filled
// multi-binder to e. This realizes spec.md §3's three
// environment-placeholder states (free / filled / empty) without
// mutating any term node in place: substitution always produces a
// fresh TEnv value, never rewrites an existing one.
func BoxTEnvRef(slotVar *kernel.Var, e []*kernel.Var) Box {
	raw := kernel.BoxVar(slotVar, func(*kernel.Var) Term { return slotValue{} })
	boxes := make([]Box, len(e)+1)
	boxes[0] = raw
	for i, v := range e {
		boxes[i+1] = BoxVari(v)
	}
	return kernel.ApplyNT(boxes, func(vals []Term) Term {
		env := make([]*kernel.Var, len(vals)-1)
		for i, val := range vals[1:] {
			vv, ok := val.(Vari)
			if !ok {
				Assertf("BoxTEnvRef: environment entry %#v is not a bound variable", val)
			}
			env[i] = vv.X
		}
		if sv, ok := vals[0].(slotValue); ok && sv.filled {
			return TEnv{Cell: &EnvCell{State: EnvFilled, Value: sv.b}, Env: env}
		}
		// Opened with plain variables (RHS.Open): the free cell refers to
		// the variable the slot was opened to.
		if sv, ok := vals[0].(Vari); ok {
			return TEnv{Cell: &EnvCell{State: EnvFree, Var: sv.X}, Env: env}
		}
		return TEnv{Cell: &EnvCell{State: EnvFree, Var: slotVar}, Env: env}
	})
}

// NewRHS builds a rule's RHS multi-binder: slotVars are the rule's
// pattern-variable slots (one kernel variable per slot index, in
// declaration order), and body is the RHS template box, built using
// BoxTEnvRef at each slot occurrence plus ordinary Box combinators
// everywhere else. Substituting the resulting binder with an array
// built from FilledSlot, one per slot in the same order, yields the
// term a rule firing rewrites to.
func NewRHS(slotVars []*kernel.Var, body Box) *kernel.MBinder[Term] {
	return kernel.Unbox(kernel.BindMulti(slotVars, body, wrapVar))
}

// FilledSlot wraps a matched pattern-variable's multi-binder as the
// value a rule firing substitutes into its RHS slot occurrences.
func FilledSlot(b *kernel.MBinder[Term]) Term { return slotValue{filled: true, b: b} }

// Unbox materializes a closed Box into a concrete Term.
func Unbox(b Box) Term { return kernel.Unbox(b) }

// Lift turns a concrete term into a Box by traversing it and
// re-opening every binder it contains under a fresh variable. It is
// the inverse of Unbox: where Unbox flattens a Box expression down to
// a Term, Lift reconstructs the box structure (and its free-variable
// bookkeeping) from an already-built Term, so that a caller holding a
// Term can still bind one of its free variables through kernel.Bind /
// kernel.BindMulti instead of substituting by hand. Lift reads through
// Unfold, so an instantiated metavariable or filled environment
// placeholder reached along the way is lifted as its resolved value,
// never as the placeholder itself.
func Lift(t Term) Box {
	switch x := Unfold(t).(type) {
	case Vari:
		return BoxVari(x.X)
	case Sort, Symb:
		return BoxConst(x)
	case Appl:
		return BoxAppl(Lift(x.Fun), Lift(x.Arg))
	case Prod:
		v, cod := x.Cod.Open()
		return BindProd(Lift(x.Dom), v, Lift(cod))
	case Abst:
		v, body := x.Body.Open()
		return BindAbst(Lift(x.Dom), v, Lift(body))
	case Meta:
		env := make([]Box, len(x.Env))
		for i, e := range x.Env {
			env[i] = Lift(e)
		}
		return BoxMeta(x.M, env)
	default:
		Assertf("Lift: unexpected term variant %#v reaching the lifted layer", t)
		return Box{}
	}
}
