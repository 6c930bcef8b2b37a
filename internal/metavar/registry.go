// Package metavar is the metavariable store: a registry of
// elaboration-time placeholders, indexed both by user-facing name and
// by internally allocated integer id, with a cofinite free-id set so
// a dead metavariable's id can be reused without ever colliding with a
// live one. Single-threaded, no locking, matching spec.md's
// concurrency model for the core.
package metavar

import (
	"fmt"

	"github.com/lambdapi-core/engine/internal/kernel"
	"github.com/lambdapi-core/engine/internal/term"
)

// Registry owns every metavariable created during one elaboration
// session. ByName holds user-supplied metavariables (created once per
// name, looked up thereafter); ByID holds internally allocated ones
// (elaboration-local unification variables with no surface name).
type Registry struct {
	ByName map[string]*term.Metavar
	ByID   map[int]*term.Metavar
	ids    *freeSet
}

// NewRegistry constructs an empty metavariable store.
func NewRegistry() *Registry {
	return &Registry{
		ByName: make(map[string]*term.Metavar),
		ByID:   make(map[int]*term.Metavar),
		ids:    newFreeSet(),
	}
}

// NewUserMeta creates a user-named metavariable of the given type and
// arity. It fails if name is already registered: user metavariable
// names are declared once, and a second declaration under the same
// name is a caller error to be surfaced, not silently merged with the
// first.
func (r *Registry) NewUserMeta(name string, typ term.Term, arity int) (*term.Metavar, error) {
	if _, ok := r.ByName[name]; ok {
		return nil, fmt.Errorf("metavar: %s is already declared", name)
	}
	m := term.NewMetavar(term.MetaName{User: name, IsUser: true}, typ, arity)
	r.ByName[name] = m
	return m, nil
}

// NewInternalMeta allocates a fresh internal metavariable, assigning
// it the least currently-free integer id.
func (r *Registry) NewInternalMeta(typ term.Term, arity int) *term.Metavar {
	id := r.ids.Allocate()
	m := term.NewMetavar(term.MetaName{Internal: id}, typ, arity)
	r.ByID[id] = m
	return m
}

// Find looks up a metavariable by its display name (either a user
// name or the "?<id>" form of an internal one), returning nil if
// absent.
func (r *Registry) Find(name string) *term.Metavar {
	if m, ok := r.ByName[name]; ok {
		return m
	}
	for _, m := range r.ByID {
		if m.Name.String() == name {
			return m
		}
	}
	return nil
}

// Exists reports whether name is currently registered.
func (r *Registry) Exists(name string) bool { return r.Find(name) != nil }

// Instantiate sets m's value, delegating to term.Metavar.Instantiate
// (which enforces the monotonic empty-to-filled transition and the
// arity check).
func (r *Registry) Instantiate(m *term.Metavar, body *kernel.MBinder[term.Term]) error {
	return m.Instantiate(body)
}

// Unset releases an internally allocated, still-uninstantiated
// metavariable's id back to the free set and forgets it; releasing a
// user-named or already-instantiated metavariable is an error (user
// names persist for the whole session, and releasing an id still
// reachable through a filled Value would let the id be reused while
// live references to the old metavariable remain).
func (r *Registry) Unset(id int) error {
	m, ok := r.ByID[id]
	if !ok {
		return fmt.Errorf("metavar: no internal metavariable with id ?%d", id)
	}
	if !m.Unset() {
		return fmt.Errorf("metavar: cannot release instantiated metavariable ?%d", id)
	}
	delete(r.ByID, id)
	r.ids.Release(id)
	return nil
}

// Occurs reports whether m appears anywhere in t. It does not unfold:
// an occurrence buried inside another metavariable's already-filled
// value does not count, since t's own structure is what is about to be
// bound to m, not what that structure's instantiated metas happen to
// currently stand for.
func Occurs(m *term.Metavar, t term.Term) bool {
	switch x := t.(type) {
	case term.Meta:
		if x.M == m {
			return true
		}
		for _, e := range x.Env {
			if Occurs(m, e) {
				return true
			}
		}
		return false
	case term.Prod:
		if Occurs(m, x.Dom) {
			return true
		}
		_, cod := x.Cod.Open()
		return Occurs(m, cod)
	case term.Abst:
		if Occurs(m, x.Dom) {
			return true
		}
		_, body := x.Body.Open()
		return Occurs(m, body)
	case term.Appl:
		return Occurs(m, x.Fun) || Occurs(m, x.Arg)
	default:
		return false
	}
}
