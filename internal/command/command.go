// Package command is the external command-handler seam spec.md §9
// describes: an opaque State plus a HandleCommand step that returns
// either an updated State or a Result carrying an error and an
// optional source position. The core never calls into this package;
// it exists for a driver (the interactive tactic shell, the CLI,
// batch replay from a fixture) to script declarations, rule
// attachment, normalization and conversion queries against a
// in-memory signature.
package command

import (
	"github.com/lambdapi-core/engine/internal/debugtrace"
	"github.com/lambdapi-core/engine/internal/normal"
	"github.com/lambdapi-core/engine/internal/sig"
)

// Position is a 1-based source location, mirroring the token
// positions the teacher's diagnostics attach to reported errors.
type Position struct {
	Line   int
	Column int
}

// Result is what a command produces in addition to the next State:
// either a human-readable outcome (Message) or an error (Err), both
// optionally pinned to the source position of the command that
// produced them.
type Result struct {
	Position *Position
	Message  string
	Err      error
}

// IsError reports whether r carries a failure. A nil Result means the
// command succeeded with nothing to report.
func (r *Result) IsError() bool { return r != nil && r.Err != nil }

func ok(pos *Position, message string) *Result {
	if message == "" {
		return nil
	}
	return &Result{Position: pos, Message: message}
}

func fail(pos *Position, err error) *Result {
	return &Result{Position: pos, Err: err}
}

// State is the opaque state threaded between command dispatches: the
// signature currently in scope, the active evaluation configuration,
// and the debug tracer commands may consult or replace. HandleCommand
// returns the State to use next as a value; the *sig.Signature it
// points to is shared, and declaration, type and rule commands update
// it in place.
type State struct {
	Signature *sig.Signature
	Eval      normal.Config
	Tracer    *debugtrace.Tracer
}

// NewState returns a fresh State over an empty signature, defaulting
// to whnf evaluation with tracing disabled.
func NewState() State {
	return State{
		Signature: sig.NewSignature(),
		Eval:      normal.Config{Strategy: normal.StrategyWhnf},
	}
}

// Command is one dispatchable unit of work against a State.
type Command interface {
	// Run executes the command against s, returning the next state and
	// an optional result. Run never panics on a malformed command; it
	// reports failures through the returned Result.
	Run(s State) (State, *Result)
}

// HandleCommand applies cmd to s, returning the next state. This is a
// thin indirection over Command.Run so callers depend on a function
// rather than an interface method, matching spec.md §9's literal
// "handle_command step" phrasing.
func HandleCommand(s State, cmd Command) (State, *Result) {
	return cmd.Run(s)
}
