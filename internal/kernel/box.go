package kernel

// Env is the substitution environment threaded through a Box
// expression while it is built: a partial map from bound variables to
// the value standing in for them at the point closest to Unbox. It is
// untyped (rather than map[*Var]T) because a single Box expression
// mixes several output types as it is composed -- a Prod pairs a
// Box[T] domain with a Box[*Binder[T]] codomain, both built from the
// same surrounding environment of substituted T values -- and Go
// generics have no way to parametrize a struct's method set over "my
// own type parameter, except when nested one level inside Binder".
// Every value ever stored in an Env is a T for whichever T the Box
// that wrote it abstracts over; BoxVar's type assertion recovers it.
type Env = map[*Var]any

// Box[T] represents a term of type T that is still under construction
// together with the set of free kernel variables it mentions. Binders
// are only ever formed through this layer (via Bind / BindMulti):
// composing boxes keeps track of which outer variables appear where,
// so that binding one of them can never silently capture an unrelated
// occurrence introduced elsewhere in the box expression.
//
// A Box with an empty free set can always be unboxed; one with a
// non-empty free set can still be unboxed by a caller that supplies
// bindings for its free variables (this is exactly what happens
// inside Bind: the variable being bound is given a binding equal to
// the binder's own argument).
type Box[T any] struct {
	free  map[*Var]struct{}
	build func(env Env) T
}

// Unit lifts an already-concrete value with no free variables into a
// Box. Used for constants: sorts, symbols, closed subterms.
func Unit[T any](v T) Box[T] {
	return Box[T]{build: func(Env) T { return v }}
}

// BoxVar lifts a bound variable into a Box. wrap embeds the variable
// as a T when it has not (yet) been captured by an enclosing Bind.
func BoxVar[T any](x *Var, wrap func(*Var) T) Box[T] {
	return Box[T]{
		free: map[*Var]struct{}{x: {}},
		build: func(env Env) T {
			if val, ok := env[x]; ok {
				return val.(T)
			}
			return wrap(x)
		},
	}
}

func union(a, b map[*Var]struct{}) map[*Var]struct{} {
	if len(a) == 0 {
		return b
	}
	if len(b) == 0 {
		return a
	}
	out := make(map[*Var]struct{}, len(a)+len(b))
	for v := range a {
		out[v] = struct{}{}
	}
	for v := range b {
		out[v] = struct{}{}
	}
	return out
}

// Apply1 builds a Box[C] from a single Box[A] sub-term, for
// constructors whose argument type differs from the result type.
func Apply1[A, C any](a Box[A], ctor func(A) C) Box[C] {
	return Box[C]{
		free:  a.free,
		build: func(env Env) C { return ctor(a.build(env)) },
	}
}

// Apply2 builds a Box[C] from two sub-boxes of possibly different
// element types, for constructors like Prod and Abst that pair a
// plain sub-term with one of their own binders.
func Apply2[A, B, C any](a Box[A], b Box[B], ctor func(A, B) C) Box[C] {
	return Box[C]{
		free:  union(a.free, b.free),
		build: func(env Env) C { return ctor(a.build(env), b.build(env)) },
	}
}

// Apply1T is Apply1 specialized to a single output type T.
func Apply1T[T any](a Box[T], ctor func(T) T) Box[T] { return Apply1(a, ctor) }

// Apply2T is Apply2 specialized to a single output type T.
func Apply2T[T any](a, b Box[T], ctor func(x, y T) T) Box[T] { return Apply2(a, b, ctor) }

// ApplyNT builds a Box[T] by combining an arbitrary number of Box[T]
// sub-terms (used for metavariable environments and pattern
// environments).
func ApplyNT[T any](bs []Box[T], ctor func([]T) T) Box[T] {
	free := map[*Var]struct{}{}
	for _, b := range bs {
		free = union(free, b.free)
	}
	return Box[T]{
		free: free,
		build: func(env Env) T {
			vals := make([]T, len(bs))
			for i, b := range bs {
				vals[i] = b.build(env)
			}
			return ctor(vals)
		},
	}
}

// Bind captures x in body, producing a box for a single-variable
// binder: when unboxed, opening the resulting binder with a fresh
// variable reproduces body with x renamed to that fresh variable.
func Bind[T any](x *Var, body Box[T], wrap func(*Var) T) Box[*Binder[T]] {
	free := map[*Var]struct{}{}
	for v := range body.free {
		if v != x {
			free[v] = struct{}{}
		}
	}
	return Box[*Binder[T]]{
		free: free,
		build: func(env Env) *Binder[T] {
			return NewBinder(x.Hint(), wrap, func(arg T) T {
				localEnv := make(Env, len(env)+1)
				for v, t := range env {
					localEnv[v] = t
				}
				localEnv[x] = arg
				return body.build(localEnv)
			})
		},
	}
}

// BindMulti captures xs (in order) in body, producing a box for a
// multi-variable binder.
func BindMulti[T any](xs []*Var, body Box[T], wrap func(*Var) T) Box[*MBinder[T]] {
	set := make(map[*Var]struct{}, len(xs))
	for _, x := range xs {
		set[x] = struct{}{}
	}
	free := map[*Var]struct{}{}
	for v := range body.free {
		if _, bound := set[v]; !bound {
			free[v] = struct{}{}
		}
	}
	closed := len(free) == 0
	hints := make([]string, len(xs))
	for i, x := range xs {
		hints[i] = x.Hint()
	}
	return Box[*MBinder[T]]{
		free: free,
		build: func(env Env) *MBinder[T] {
			return NewMBinder(hints, wrap, func(args []T) T {
				localEnv := make(Env, len(env)+len(xs))
				for v, t := range env {
					localEnv[v] = t
				}
				for i, x := range xs {
					localEnv[x] = args[i]
				}
				return body.build(localEnv)
			}, closed)
		},
	}
}

// IsClosed reports whether b mentions no free kernel variables, i.e.
// whether Unbox(b) can be computed without an ambient environment.
func (b Box[T]) IsClosed() bool { return len(b.free) == 0 }

// FreeVars returns the (unordered) set of free variables a box still
// mentions.
func (b Box[T]) FreeVars() []*Var {
	out := make([]*Var, 0, len(b.free))
	for v := range b.free {
		out = append(out, v)
	}
	return out
}

// Unbox materializes a closed box back into a concrete T.
func Unbox[T any](b Box[T]) T {
	return b.build(nil)
}
