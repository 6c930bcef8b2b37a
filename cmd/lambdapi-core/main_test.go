package main

import (
	"testing"

	"github.com/lambdapi-core/engine/internal/normal"
)

func TestParseStrategyAcceptsConfigNames(t *testing.T) {
	cases := map[string]normal.Strategy{
		"whnf": normal.StrategyWhnf,
		"hnf":  normal.StrategyHnf,
		"snf":  normal.StrategySnf,
	}
	for name, want := range cases {
		got, err := parseStrategy(name)
		if err != nil {
			t.Fatalf("parseStrategy(%q): %v", name, err)
		}
		if got != want {
			t.Errorf("parseStrategy(%q) = %v, want %v", name, got, want)
		}
	}
}

func TestParseStrategyRejectsUnknownName(t *testing.T) {
	if _, err := parseStrategy("bogus"); err == nil {
		t.Fatalf("parseStrategy(\"bogus\") should fail")
	}
}

func TestLoadSignatureDefaultsToEmpty(t *testing.T) {
	sg, err := loadSignature("", "", "")
	if err != nil {
		t.Fatalf("loadSignature with no path: %v", err)
	}
	if len(sg.Symbols()) != 0 {
		t.Errorf("fresh signature should have no symbols, got %d", len(sg.Symbols()))
	}
}

func TestPaintNoopWhenColorDisabled(t *testing.T) {
	if got := paint(false, 31, "hi"); got != "hi" {
		t.Errorf("paint(false, ...) = %q, want unmodified string", got)
	}
}

func TestPaintWrapsAnsiCodeWhenEnabled(t *testing.T) {
	got := paint(true, 31, "hi")
	want := "\033[31mhi\033[0m"
	if got != want {
		t.Errorf("paint(true, 31, %q) = %q, want %q", "hi", got, want)
	}
}
