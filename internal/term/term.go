// Package term defines the core term representation of the λΠ-calculus
// modulo rewriting: the nine-variant Term sum, symbols and rewrite
// rules attached to them, and metavariables. Binder positions (Prod's
// codomain, Abst's body) are internal/kernel binders over Term,
// giving capture-avoiding substitution by construction.
package term

import (
	"fmt"

	"github.com/lambdapi-core/engine/internal/kernel"
)

// Term is the sealed sum of the nine term variants. Outside a rule's
// LHS/RHS context no Patt or TEnv value should appear in any term
// reached through Unfold; internal/engine treats encountering one
// there as a programming error (see Assertf).
type Term interface {
	isTerm()
}

// Vari is a reference to a binder-bound variable, identified by a
// kernel-managed identity rather than by name.
type Vari struct {
	X *kernel.Var
}

func (Vari) isTerm() {}

// SortKind distinguishes the two atomic universe constants.
type SortKind int

const (
	SortType SortKind = iota
	SortKindKind
)

func (k SortKind) String() string {
	if k == SortType {
		return "TYPE"
	}
	return "KIND"
}

// Sort is one of the two universe constants, TYPE or KIND.
type Sort struct {
	Kind SortKind
}

func (Sort) isTerm() {}

// TypeSort and KindSort are the two Sort values; there is exactly one
// of each, by convention (sorts carry no other data so sharing a
// single value per kind is harmless, but callers must not rely on
// Sort values being pointer-identical — compare via Kind).
var (
	TypeSort = Sort{Kind: SortType}
	KindSort = Sort{Kind: SortKindKind}
)

// Symb is a shared handle to a named constant. Two Symb occurrences
// refer to the same symbol iff their Sym pointers are equal
// (invariant: two symbols with the same (Path, Name) must be the same
// handle object — enforced by the signature that constructs them, not
// by this package).
type Symb struct {
	Sym *Symbol
}

func (Symb) isTerm() {}

// Prod is a dependent product (A, B): A is the domain, B a
// single-variable binder over the codomain.
type Prod struct {
	Dom Term
	Cod *kernel.Binder[Term]
}

func (Prod) isTerm() {}

// Abst is a λ-abstraction (A, t): same shape as Prod, domain plus a
// single-variable binder over the body.
type Abst struct {
	Dom  Term
	Body *kernel.Binder[Term]
}

func (Abst) isTerm() {}

// Appl is unary application; n-ary application is represented by
// left-nesting Appl.
type Appl struct {
	Fun Term
	Arg Term
}

func (Appl) isTerm() {}

// Meta is a metavariable occurrence (m, e): a handle to a mutable
// meta-cell plus an environment of terms supplying the meta's free
// variables. len(Env) must equal M.Arity.
type Meta struct {
	M   *Metavar
	Env []Term
}

func (Meta) isTerm() {}

// Patt is a pattern placeholder (i?, name, e), legal only in a rewrite
// rule's left-hand side. Index is the optional slot index in the
// RHS environment (nil iff this hole is unused in the RHS and linear
// in the LHS). Env restricts which free variables the matched term
// may mention: every element must be a distinct bound-variable
// reference (invariant 2).
type Patt struct {
	Index *int
	Name  string
	Env   []*kernel.Var
}

func (Patt) isTerm() {}

// EnvState distinguishes the three states of an environment
// placeholder's te field (spec.md §3): a still-free reference to a
// rule's RHS slot, an already-filled multi-binder (produced once the
// matcher has populated that slot), or the empty marker used for a
// slot that denotes no multi-binder at all.
type EnvState int

const (
	EnvFree EnvState = iota
	EnvFilled
	EnvEmpty
)

// EnvCell is the mutable-by-substitution payload of a TEnv node. A
// cell starts life as EnvFree (referencing a not-yet-matched RHS
// slot variable) in a rule's static RHS template; RHS substitution
// produces fresh EnvFilled cells (never mutates an EnvFree cell in
// place — terms stay immutable once constructed, per spec.md §3's
// lifecycle invariant).
type EnvCell struct {
	State EnvState
	Var   *kernel.Var           // meaningful when State == EnvFree
	Value *kernel.MBinder[Term] // meaningful when State == EnvFilled
}

// TEnv is an environment placeholder (te, e), legal only in a rewrite
// rule's right-hand side. Env is the array of bound-variable
// references this occurrence applies the slot's eventual value to.
type TEnv struct {
	Cell *EnvCell
	Env  []*kernel.Var
}

func (TEnv) isTerm() {}

// Assertf panics with a formatted message. Used for the "programmer
// error" class of spec.md §7: pattern/env placeholders reaching code
// that only expects fully-elaborated terms, to_var on a non-variable,
// and similar invariant violations that indicate a bug in a caller
// rather than a recoverable failure.
func Assertf(format string, args ...any) {
	panic(assertionError{msg: fmt.Sprintf(format, args...)})
}

type assertionError struct{ msg string }

func (e assertionError) Error() string { return e.msg }
