package debugtrace

import (
	"bytes"
	"strings"
	"testing"
)

func TestReductionNoOpWhenFlagDisabled(t *testing.T) {
	var buf bytes.Buffer
	tr := NewTracer(Flags{}, &buf, nil)
	tr.Reduction("a", "b")
	if buf.Len() != 0 {
		t.Errorf("Reduction should write nothing when TraceReduction is false, got %q", buf.String())
	}
}

func TestReductionWritesWhenEnabled(t *testing.T) {
	var buf bytes.Buffer
	tr := NewTracer(Flags{TraceReduction: true}, &buf, nil)
	tr.Reduction("before", "after")
	out := buf.String()
	if !strings.Contains(out, "before") || !strings.Contains(out, "after") {
		t.Errorf("Reduction trace line = %q, want it to mention both terms", out)
	}
}

func TestMatchingReportsHitAndMiss(t *testing.T) {
	var buf bytes.Buffer
	tr := NewTracer(Flags{TraceMatching: true}, &buf, nil)
	tr.Matching("plus", 0, false)
	tr.Matching("plus", 1, true)
	out := buf.String()
	if !strings.Contains(out, "miss") || !strings.Contains(out, "hit") {
		t.Errorf("Matching trace output = %q, want both a miss and a hit line", out)
	}
}

func TestConversionReportsVerdict(t *testing.T) {
	var buf bytes.Buffer
	tr := NewTracer(Flags{TraceConversion: true}, &buf, nil)
	tr.Conversion("A", "A", true)
	tr.Conversion("A", "B", false)
	out := buf.String()
	if !strings.Contains(out, "convertible") || !strings.Contains(out, "not convertible") {
		t.Errorf("Conversion trace output = %q, want both verdicts to appear", out)
	}
}

func TestNilTracerMethodsAreNoOps(t *testing.T) {
	var tr *Tracer
	tr.Reduction("a", "b")
	tr.Matching("f", 0, true)
	tr.Conversion("a", "b", true)
}

func TestCustomPrinterIsUsed(t *testing.T) {
	var buf bytes.Buffer
	print := func(x any) string { return "<" + x.(string) + ">" }
	tr := NewTracer(Flags{TraceReduction: true}, &buf, print)
	tr.Reduction("a", "b")
	out := buf.String()
	if !strings.Contains(out, "<a>") || !strings.Contains(out, "<b>") {
		t.Errorf("custom printer should wrap rendered terms, got %q", out)
	}
}
