package sig

// TermRecord is a serializable rendering of a term.Term, with bound
// variables replaced by the display name the binder that introduced
// them was given at encode time (see codec.go). It is the payload
// both the SQLite store and the YAML export use.
type TermRecord struct {
	Kind string `yaml:"kind"`

	Sort string `yaml:"sort,omitempty"` // "TYPE" or "KIND"; Kind == "sort"

	Var string `yaml:"var,omitempty"` // Kind == "var"

	SymbPath []string `yaml:"symb_path,omitempty"` // Kind == "symb"
	SymbName string   `yaml:"symb_name,omitempty"`

	Dom       *TermRecord `yaml:"dom,omitempty"`        // Kind == "prod" or "abst"
	BoundName string      `yaml:"bound_name,omitempty"` // Kind == "prod" or "abst"
	Body      *TermRecord `yaml:"body,omitempty"`       // Kind == "prod" or "abst"

	Fun *TermRecord `yaml:"fun,omitempty"` // Kind == "appl"
	Arg *TermRecord `yaml:"arg,omitempty"` // Kind == "appl"

	// Kind == "patt": a rewrite-rule left-hand-side placeholder.
	HasIndex  bool     `yaml:"has_index,omitempty"`
	Index     int      `yaml:"index,omitempty"`
	PattName  string   `yaml:"patt_name,omitempty"`
	EnvNames  []string `yaml:"env_names,omitempty"`

	// Kind == "tenv": a rewrite-rule right-hand-side slot reference.
	SlotIndex int `yaml:"slot_index,omitempty"`
}

// RuleRecord is a serializable rendering of a *term.Rule.
type RuleRecord struct {
	LHS     []*TermRecord `yaml:"lhs"`
	RHS     *TermRecord   `yaml:"rhs"`
	EnvSize int           `yaml:"env_size"`
}

// SymbolRecord is a serializable rendering of one *term.Symbol.
type SymbolRecord struct {
	Path       []string      `yaml:"path,omitempty"`
	Name       string        `yaml:"name"`
	IsConstant bool          `yaml:"is_constant"`
	Type       *TermRecord   `yaml:"type,omitempty"`
	Rules      []*RuleRecord `yaml:"rules,omitempty"`
}

// SnapshotRecord is the top-level persisted document: a UUID tagging
// this generation of the signature (so an external loader can tell
// which snapshot it restored), plus every symbol in declaration
// order.
type SnapshotRecord struct {
	SnapshotID string          `yaml:"snapshot_id"`
	Symbols    []*SymbolRecord `yaml:"symbols"`
}
