// Package debugtrace provides the three independent trace gates spec.md
// §6 exposes to callers embedding the engine: reduction tracing (one
// before/after line per traced evaluation), rule-matching tracing, and
// conversion tracing.
// None of it feeds back into the engine's behavior; it only observes.
package debugtrace

import (
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"
)

// Flags selects which of the three trace channels are active. All
// three default to off.
type Flags struct {
	TraceReduction  bool
	TraceMatching   bool
	TraceConversion bool
}

// Printer renders a term for a trace line. internal/term's Term
// type has no String method of its own (spec.md keeps the core
// printer-agnostic), so callers supply one; a nil Printer falls back
// to fmt's default formatting.
type Printer func(t any) string

// Tracer writes trace lines to Output as the three gated channels
// fire. A zero-value Tracer with every Flags field false is inert:
// every method becomes a no-op check and nothing is written.
type Tracer struct {
	Flags   Flags
	Output  io.Writer
	Print   Printer
	start   time.Time
	steps   int
	matches int
}

// NewTracer constructs a Tracer writing to out under flags. The
// tracer's step and match counters, and the elapsed-time baseline
// reported in trace lines, start from the moment of construction.
func NewTracer(flags Flags, out io.Writer, print Printer) *Tracer {
	return &Tracer{Flags: flags, Output: out, Print: print, start: time.Now()}
}

func (t *Tracer) render(x any) string {
	if t.Print != nil {
		return t.Print(x)
	}
	return fmt.Sprintf("%v", x)
}

// Reduction logs one traced evaluation: before is the term handed to
// the evaluator, after is the term it reduced to.
func (t *Tracer) Reduction(before, after any) {
	if t == nil || !t.Flags.TraceReduction {
		return
	}
	t.steps++
	fmt.Fprintf(t.Output, "[reduce %s step] %s -> %s (elapsed %s)\n",
		humanize.Comma(int64(t.steps)), t.render(before), t.render(after), humanize.Time(t.start))
}

// Matching logs one rule-matching attempt against a symbol's head:
// ruleIndex is the rule's position in the symbol's declaration order,
// matched reports whether that rule's left-hand side matched.
func (t *Tracer) Matching(symbolName string, ruleIndex int, matched bool) {
	if t == nil || !t.Flags.TraceMatching {
		return
	}
	t.matches++
	outcome := "miss"
	if matched {
		outcome = "hit"
	}
	fmt.Fprintf(t.Output, "[match %s attempt] %s rule #%d: %s\n",
		humanize.Comma(int64(t.matches)), symbolName, ruleIndex, outcome)
}

// Conversion logs one convertibility decision between two terms.
func (t *Tracer) Conversion(a, b any, equal bool) {
	if t == nil || !t.Flags.TraceConversion {
		return
	}
	verdict := "not convertible"
	if equal {
		verdict = "convertible"
	}
	fmt.Fprintf(t.Output, "[convert] %s =?= %s: %s\n", t.render(a), t.render(b), verdict)
}
