package term

import "github.com/lambdapi-core/engine/internal/kernel"

// Symbol is a named constant or definable symbol. Two symbols sharing
// (Path, Name) must be the same *Symbol object (invariant 3); this
// package never enforces that on its own — internal/sig is
// responsible for canonicalizing handles when a signature is loaded
// from persistent storage.
type Symbol struct {
	Name       string
	Path       []string
	IsConstant bool

	// typ is a mutable cell holding the symbol's declared type.
	// Mutability (rather than a field fixed at construction) is
	// required so that internal/sig can restore a symbol's type after
	// deserializing a signature without breaking the object identity
	// other terms already refer to (spec.md §3).
	typ Term

	// rules is append-only; grows monotonically via AddRule.
	rules []*Rule
}

// NewSymbol constructs a symbol with no declared type and no rules.
// Call SetType before the symbol is used in any term.
func NewSymbol(path []string, name string, isConstant bool) *Symbol {
	return &Symbol{Path: path, Name: name, IsConstant: isConstant}
}

// Type returns the symbol's currently declared type.
func (s *Symbol) Type() Term { return s.typ }

// SetType replaces the symbol's declared type cell.
func (s *Symbol) SetType(t Term) { s.typ = t }

// Rules returns the symbol's rewrite rules in declaration order. The
// slice is a copy; callers must use AddRule to extend the rule set.
func (s *Symbol) Rules() []*Rule {
	out := make([]*Rule, len(s.rules))
	copy(out, s.rules)
	return out
}

// AddRule appends r to the symbol's rule list. It is an error to add
// a rule to a constant symbol (invariant 5: IsConstant implies Rules
// is always empty).
func (s *Symbol) AddRule(r *Rule) error {
	if s.IsConstant {
		return errConstantSymbol{name: s.Name}
	}
	s.rules = append(s.rules, r)
	return nil
}

type errConstantSymbol struct{ name string }

func (e errConstantSymbol) Error() string {
	return "cannot add a rewrite rule to constant symbol " + e.name
}

// Rule is a higher-order rewrite rule attached to a symbol. LHS holds
// the ordered argument patterns (the head symbol is implicit, taken
// from whichever Symbol the rule is attached to); Arity is len(LHS).
// RHS is a multi-binder mapping the rule's pattern-variable slots
// (EnvSize of them) to the replacement term; occurrences of a slot in
// RHS are represented by TEnv nodes built with BoxTEnvRef (see box.go).
type Rule struct {
	LHS     []Term
	Arity   int
	RHS     *kernel.MBinder[Term]
	EnvSize int
}

// NewRule constructs a rule from its parts. EnvSize must equal
// rhs.Arity() (invariant checked by callers building rules via
// BoxTEnvRef/BindMulti, where the two are derived from the same slot
// count by construction).
func NewRule(lhs []Term, rhs *kernel.MBinder[Term], envSize int) *Rule {
	return &Rule{LHS: lhs, Arity: len(lhs), RHS: rhs, EnvSize: envSize}
}
