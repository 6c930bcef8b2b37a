// Package sig is the persistent-signature seam: the external loader
// spec.md §9 assumes exists, responsible for canonicalizing a
// symbol's handle so that every occurrence of the same (path, name)
// pair in a freshly loaded signature shares one object (invariant 3).
// The core itself never imports this package.
package sig

import (
	"fmt"
	"strings"

	"github.com/lambdapi-core/engine/internal/term"
)

// Signature is a canonicalizing registry of symbol handles keyed by
// (path, name). Declare is idempotent: calling it twice with the same
// key returns the same *term.Symbol both times, which is what lets a
// freshly loaded signature satisfy invariant 3 even though each
// symbol's type and rules are filled in after the handle exists.
type Signature struct {
	byKey map[string]*term.Symbol
	order []string
}

// NewSignature returns an empty signature.
func NewSignature() *Signature {
	return &Signature{byKey: make(map[string]*term.Symbol)}
}

func key(path []string, name string) string {
	return strings.Join(path, "/") + "#" + name
}

// Declare returns the symbol handle for (path, name), creating one
// with SetType/AddRule left for the caller if none exists yet.
func (s *Signature) Declare(path []string, name string, isConstant bool) *term.Symbol {
	k := key(path, name)
	if sym, ok := s.byKey[k]; ok {
		return sym
	}
	sym := term.NewSymbol(path, name, isConstant)
	s.byKey[k] = sym
	s.order = append(s.order, k)
	return sym
}

// Lookup returns the symbol handle for (path, name), if one has been
// declared.
func (s *Signature) Lookup(path []string, name string) (*term.Symbol, bool) {
	sym, ok := s.byKey[key(path, name)]
	return sym, ok
}

// Symbols returns every declared symbol in declaration order.
func (s *Signature) Symbols() []*term.Symbol {
	out := make([]*term.Symbol, len(s.order))
	for i, k := range s.order {
		out[i] = s.byKey[k]
	}
	return out
}

// errUndeclaredSymbol reports a term record referencing a (path,
// name) pair the signature has no handle for — a persisted
// signature that never declares a symbol its terms mention, or a
// corrupted record.
type errUndeclaredSymbol struct {
	path []string
	name string
}

func (e errUndeclaredSymbol) Error() string {
	return fmt.Sprintf("sig: undeclared symbol %s", key(e.path, e.name))
}
