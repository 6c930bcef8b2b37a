package kernel

// Binder[T] abstracts a single-variable binder over a body of type T.
// Internally it is the function that, given a replacement for the
// bound position (either a fresh variable embedded as T, or a
// concrete term), produces the instantiated body — the classical
// higher-order-abstract-syntax encoding of a binder as a Go closure.
type Binder[T any] struct {
	hint string
	wrap func(*Var) T
	fn   func(T) T
}

// NewBinder constructs a binder directly from its substitution
// function. wrap embeds a *Var as a T (e.g. term.Vari); it is supplied
// once here so Open never needs it passed again.
func NewBinder[T any](hint string, wrap func(*Var) T, fn func(T) T) *Binder[T] {
	return &Binder[T]{hint: hint, wrap: wrap, fn: fn}
}

// Hint returns the binder's preferred display name for the variable
// it introduces.
func (b *Binder[T]) Hint() string { return b.hint }

// Open instantiates b with a fresh variable, returning both.
func (b *Binder[T]) Open() (*Var, T) {
	v := NewVar(b.hint)
	return v, b.fn(b.wrap(v))
}

// Subst applies b to a concrete argument u: the bound position is
// replaced by u directly, never by a fresh variable.
func (b *Binder[T]) Subst(u T) T {
	return b.fn(u)
}

// BinderEqual compares two binders by opening both with the same
// fresh variable and delegating to eqBody.
func BinderEqual[T any](b1, b2 *Binder[T], eqBody func(a, b T) bool) bool {
	v := NewVar(b1.hint)
	return eqBody(b1.fn(b1.wrap(v)), b2.fn(b2.wrap(v)))
}

// MBinder[T] abstracts a multi-variable binder, abstracting an
// ordered array of variables at once.
type MBinder[T any] struct {
	hints  []string
	wrap   func(*Var) T
	fn     func([]T) T
	closed bool
}

// NewMBinder constructs a multi-binder directly from its substitution
// function. closed records whether the box this binder was built from
// had no free variables left once its own bound variables were
// removed (see BindMulti in box.go); it is meaningful only for
// binders produced that way (spec.md §4.1's "closedness check on a
// binder produced by bind_mvar").
func NewMBinder[T any](hints []string, wrap func(*Var) T, fn func([]T) T, closed bool) *MBinder[T] {
	return &MBinder[T]{hints: hints, wrap: wrap, fn: fn, closed: closed}
}

// Arity returns the number of variables this binder abstracts.
func (b *MBinder[T]) Arity() int { return len(b.hints) }

// IsClosed reports whether all variables referenced by the body are
// captured by this binder (meaningful only when built via BindMulti).
func (b *MBinder[T]) IsClosed() bool { return b.closed }

// Open instantiates b with one fresh variable per slot.
func (b *MBinder[T]) Open() ([]*Var, T) {
	vars := make([]*Var, len(b.hints))
	args := make([]T, len(b.hints))
	for i, h := range b.hints {
		v := NewVar(h)
		vars[i] = v
		args[i] = b.wrap(v)
	}
	return vars, b.fn(args)
}

// Subst applies b to a concrete environment of arguments, one per
// bound slot, in order.
func (b *MBinder[T]) Subst(args []T) T {
	return b.fn(args)
}

// MBinderEqual compares two multi-binders of equal arity by opening
// both with the same fresh variables and delegating to eqBody.
func MBinderEqual[T any](b1, b2 *MBinder[T], eqBody func(a, b T) bool) bool {
	if len(b1.hints) != len(b2.hints) {
		return false
	}
	args1 := make([]T, len(b1.hints))
	args2 := make([]T, len(b1.hints))
	for i, h := range b1.hints {
		v := NewVar(h)
		args1[i] = b1.wrap(v)
		args2[i] = b2.wrap(v)
	}
	return eqBody(b1.fn(args1), b2.fn(args2))
}
