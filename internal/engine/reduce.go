// Package engine is the abstract machine, the higher-order rule
// matcher, and the convertibility checker: a mutually recursive trio
// sharing one package scope (WhnfStack calls the matcher on symbol
// heads, the matcher calls WhnfStack to force arguments and EqModulo
// to check non-linear back-references, and EqModulo itself calls
// WhnfStack), kept in separate files by concern.
package engine

import (
	"github.com/lambdapi-core/engine/internal/kernel"
	"github.com/lambdapi-core/engine/internal/term"
)

func wrapVarEngine(v *kernel.Var) term.Term { return term.Vari{X: v} }

// Cell is a mutable one-term slot on the abstract machine's argument
// stack. Mutability exists solely for sharing: once the matcher forces
// a cell to weak-head normal form, the result is written back in place
// so a later inspection of the same argument (a non-linear pattern
// variable's back-reference, or a later rule tried against the same
// stack) does not repeat the reduction.
type Cell struct {
	value  term.Term
	forced bool
}

// NewCell wraps t in a fresh, unforced cell.
func NewCell(t term.Term) *Cell { return &Cell{value: t} }

// Value returns the cell's current contents without forcing it.
func (c *Cell) Value() term.Term { return c.value }

// Force reduces the cell's contents to weak-head normal form exactly
// once, writing the result back into the cell for every later caller.
func (c *Cell) Force() term.Term {
	if !c.forced {
		h, stk := WhnfStack(c.value, nil)
		c.value = rebuild(h, stk)
		c.forced = true
	}
	return c.value
}

// Stack is the machine's pending-argument stack: Stack[0] is the
// first (leftmost) argument still to be applied to the head.
type Stack []*Cell

func valuesOf(stk Stack) []term.Term {
	out := make([]term.Term, len(stk))
	for i, c := range stk {
		out[i] = c.Value()
	}
	return out
}

func rebuild(head term.Term, stk Stack) term.Term {
	return term.Apply(head, valuesOf(stk))
}

// WhnfStack reduces t against an already-pending argument stack to
// machine state: a head that is no longer itself an application or an
// abstraction with an argument to consume, together with the
// (possibly grown or shrunk) stack of arguments still to apply to it.
func WhnfStack(t term.Term, stk Stack) (term.Term, Stack) {
	for {
		t = term.Unfold(t)
		switch x := t.(type) {
		case term.Appl:
			stk = append(Stack{NewCell(x.Arg)}, stk...)
			t = x.Fun
		case term.Abst:
			if len(stk) == 0 {
				return t, stk
			}
			arg := stk[0]
			t = x.Body.Subst(arg.Value())
			stk = stk[1:]
		case term.Symb:
			t2, stk2, ok := MatchRules(x.Sym, stk)
			if !ok {
				return t, stk
			}
			t, stk = t2, stk2
		default:
			return t, stk
		}
	}
}

// Whnf reduces t to weak-head normal form and rebuilds a single term
// from the resulting machine state.
func Whnf(t term.Term) term.Term {
	h, stk := WhnfStack(t, nil)
	return rebuild(h, stk)
}
