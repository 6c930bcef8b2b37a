package engine

import (
	"github.com/lambdapi-core/engine/internal/kernel"
	"github.com/lambdapi-core/engine/internal/term"
)

// bindOverEnv builds a multi-binder of arity len(e) such that
// substituting it with a fresh argument list reproduces t with every
// occurrence of e[i] replaced by the i-th argument. ok is false if t
// mentions a free variable not in e (the matched term escapes the
// pattern hole's declared environment): lifting t and binding over e
// leaves the resulting box with leftover free variables, which
// kernel.BindMulti's closedness bookkeeping surfaces directly, so
// there is no need to walk t by hand to find them.
func bindOverEnv(t term.Term, e []*kernel.Var) (b *kernel.MBinder[term.Term], ok bool) {
	boxed := kernel.BindMulti(e, term.Lift(t), wrapVarEngine)
	if !boxed.IsClosed() {
		return nil, false
	}
	return kernel.Unbox(boxed), true
}
