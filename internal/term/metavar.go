package term

import (
	"strconv"

	"github.com/lambdapi-core/engine/internal/kernel"
)

// MetaName is either a user-supplied string name or an internally
// allocated integer id.
type MetaName struct {
	User     string
	Internal int
	IsUser   bool
}

func (n MetaName) String() string {
	if n.IsUser {
		return n.User
	}
	return "?" + strconv.Itoa(n.Internal)
}

// Metavar is a metavariable cell: a placeholder term to be resolved
// later by the elaborator, carrying an environment of the declared
// arity. Value is empty until Instantiate is called; instantiation is
// monotonic (empty -> filled exactly once).
type Metavar struct {
	Name  MetaName
	Type  Term
	Arity int
	value *kernel.MBinder[Term]
}

// NewMetavar constructs an uninstantiated metavariable cell.
func NewMetavar(name MetaName, typ Term, arity int) *Metavar {
	return &Metavar{Name: name, Type: typ, Arity: arity}
}

// Unset reports whether m's value cell is still empty.
func (m *Metavar) Unset() bool { return m.value == nil }

// Value returns the meta's stored multi-binder, or nil if unset.
func (m *Metavar) Value() *kernel.MBinder[Term] { return m.value }

// Instantiate sets m's value to body, which must have arity m.Arity.
// It fails if m is already instantiated (monotonic: empty -> filled
// exactly once, never re-instantiated or reset).
func (m *Metavar) Instantiate(body *kernel.MBinder[Term]) error {
	if m.value != nil {
		return errAlreadyInstantiated{name: m.Name.String()}
	}
	if body.Arity() != m.Arity {
		return errArityMismatch{name: m.Name.String(), want: m.Arity, got: body.Arity()}
	}
	m.value = body
	return nil
}

type errAlreadyInstantiated struct{ name string }

func (e errAlreadyInstantiated) Error() string {
	return "metavariable " + e.name + " is already instantiated"
}

type errArityMismatch struct {
	name     string
	want, got int
}

func (e errArityMismatch) Error() string {
	return "metavariable " + e.name + " instantiation arity mismatch: want " + strconv.Itoa(e.want) + ", got " + strconv.Itoa(e.got)
}
