package command

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/lambdapi-core/engine/internal/normal"
	"github.com/lambdapi-core/engine/internal/sig"
)

// CommandRecord is a serializable rendering of one Command, the YAML
// wire format a fixture file uses to describe a batch of commands to
// replay in order. Kind selects which of its optional fields are
// read (eq_modulo reads both Term and With).
type CommandRecord struct {
	Kind string `yaml:"kind"`

	Path       []string `yaml:"path,omitempty"`
	Name       string   `yaml:"name,omitempty"`
	IsConstant bool     `yaml:"is_constant,omitempty"`

	Type *sig.TermRecord `yaml:"type,omitempty"`
	Rule *sig.RuleRecord `yaml:"rule,omitempty"`

	Term *sig.TermRecord `yaml:"term,omitempty"` // Kind == "eval" or one side of "eq_modulo"
	With *sig.TermRecord `yaml:"with,omitempty"`  // Kind == "eq_modulo", the other side

	Strategy  string `yaml:"strategy,omitempty"`
	StepBound int    `yaml:"step_bound,omitempty"`
}

// BatchRecord is the top-level fixture document: the ordered list of
// commands to replay.
type BatchRecord struct {
	Commands []*CommandRecord `yaml:"commands"`
}

// strategyFromName maps a fixture's strategy name to a normal.Strategy,
// defaulting to whnf when name is empty.
func strategyFromName(name string) (normal.Strategy, error) {
	switch name {
	case "", "whnf":
		return normal.StrategyWhnf, nil
	case "hnf":
		return normal.StrategyHnf, nil
	case "snf":
		return normal.StrategySnf, nil
	default:
		return 0, fmt.Errorf("command: unknown strategy name %q", name)
	}
}

// DecodeCommand builds a Command from rec, resolving any term/rule
// payload against sg (the signature the resulting command will later
// run against).
func DecodeCommand(rec *CommandRecord, sg *sig.Signature) (Command, error) {
	switch rec.Kind {
	case "declare":
		return DeclareSymbol{Path: rec.Path, Name: rec.Name, IsConstant: rec.IsConstant}, nil
	case "set_type":
		if rec.Type == nil {
			return nil, fmt.Errorf("command: set_type record for %s is missing its type", rec.Name)
		}
		typ, err := sig.DecodeTerm(rec.Type, sg)
		if err != nil {
			return nil, fmt.Errorf("command: decoding type for %s: %w", rec.Name, err)
		}
		return SetType{Path: rec.Path, Name: rec.Name, Type: typ}, nil
	case "add_rule":
		if rec.Rule == nil {
			return nil, fmt.Errorf("command: add_rule record for %s is missing its rule", rec.Name)
		}
		rule, err := sig.DecodeRule(rec.Rule, sg)
		if err != nil {
			return nil, fmt.Errorf("command: decoding rule for %s: %w", rec.Name, err)
		}
		return AddRule{Path: rec.Path, Name: rec.Name, Rule: rule}, nil
	case "eval":
		if rec.Term == nil {
			return nil, fmt.Errorf("command: eval record is missing its term")
		}
		t, err := sig.DecodeTerm(rec.Term, sg)
		if err != nil {
			return nil, fmt.Errorf("command: decoding eval term: %w", err)
		}
		var strategy *normal.Strategy
		if rec.Strategy != "" {
			s, err := strategyFromName(rec.Strategy)
			if err != nil {
				return nil, err
			}
			strategy = &s
		}
		return Eval{Term: t, Strategy: strategy}, nil
	case "eq_modulo":
		if rec.Term == nil || rec.With == nil {
			return nil, fmt.Errorf("command: eq_modulo record is missing a term")
		}
		a, err := sig.DecodeTerm(rec.Term, sg)
		if err != nil {
			return nil, fmt.Errorf("command: decoding eq_modulo left side: %w", err)
		}
		b, err := sig.DecodeTerm(rec.With, sg)
		if err != nil {
			return nil, fmt.Errorf("command: decoding eq_modulo right side: %w", err)
		}
		return EqModulo{A: a, B: b}, nil
	case "set_strategy":
		s, err := strategyFromName(rec.Strategy)
		if err != nil {
			return nil, err
		}
		return SetStrategy{Strategy: s, StepBound: rec.StepBound}, nil
	default:
		return nil, fmt.Errorf("command: unknown command kind %q", rec.Kind)
	}
}

// RunBatch decodes and runs every command in rec against s in order,
// stopping at (and returning) the first error. It returns the final
// state, the result of every command that ran (including the failing
// one, if any), and that failure (nil on full success).
func RunBatch(s State, rec *BatchRecord) (State, []*Result, error) {
	results := make([]*Result, 0, len(rec.Commands))
	for i, cr := range rec.Commands {
		cmd, err := DecodeCommand(cr, s.Signature)
		if err != nil {
			return s, results, fmt.Errorf("command: batch entry #%d: %w", i, err)
		}
		var res *Result
		s, res = HandleCommand(s, cmd)
		results = append(results, res)
		if res.IsError() {
			return s, results, fmt.Errorf("command: batch entry #%d: %w", i, res.Err)
		}
	}
	return s, results, nil
}

// LoadBatchYAML parses a YAML document into a BatchRecord.
func LoadBatchYAML(data []byte) (*BatchRecord, error) {
	var rec BatchRecord
	if err := yaml.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("command: parsing batch YAML: %w", err)
	}
	return &rec, nil
}

// LoadBatchYAMLFile reads and parses a batch fixture from path.
func LoadBatchYAMLFile(path string) (*BatchRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return LoadBatchYAML(data)
}
