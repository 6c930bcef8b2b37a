package sig

import (
	"fmt"

	"github.com/lambdapi-core/engine/internal/kernel"
	"github.com/lambdapi-core/engine/internal/term"
)

func sortName(k term.SortKind) string {
	if k == term.SortType {
		return "TYPE"
	}
	return "KIND"
}

func sortKind(name string) (term.SortKind, error) {
	switch name {
	case "TYPE":
		return term.SortType, nil
	case "KIND":
		return term.SortKindKind, nil
	default:
		return 0, fmt.Errorf("sig: unknown sort name %q", name)
	}
}

func freshName(next *int) string {
	n := fmt.Sprintf("x%d", *next)
	*next++
	return n
}

func slotIndexOf(slotVars []*kernel.Var, v *kernel.Var) int {
	for i, s := range slotVars {
		if s == v {
			return i
		}
	}
	return -1
}

// encodeNode renders a single term.Term node, recursing through its
// structure. names maps every bound variable already visited on the
// path from the record's root to its persisted display name; next
// hands out fresh display names for binders as they are encountered.
// allowPatt permits term.Patt nodes (legal only within a rule's
// left-hand side); slotVars, when non-nil, permits term.TEnv nodes
// and resolves them against the rule's right-hand-side slots.
func encodeNode(t term.Term, names map[*kernel.Var]string, next *int, allowPatt bool, slotVars []*kernel.Var) (*TermRecord, error) {
	switch x := term.Unfold(t).(type) {
	case term.Sort:
		return &TermRecord{Kind: "sort", Sort: sortName(x.Kind)}, nil
	case term.Vari:
		name, ok := names[x.X]
		if !ok {
			return nil, fmt.Errorf("sig: variable %q is not in scope at this record", x.X.Hint())
		}
		return &TermRecord{Kind: "var", Var: name}, nil
	case term.Symb:
		return &TermRecord{Kind: "symb", SymbPath: x.Sym.Path, SymbName: x.Sym.Name}, nil
	case term.Prod:
		domRec, err := encodeNode(x.Dom, names, next, allowPatt, slotVars)
		if err != nil {
			return nil, err
		}
		v, cod := x.Cod.Open()
		name := freshName(next)
		names[v] = name
		codRec, err := encodeNode(cod, names, next, allowPatt, slotVars)
		if err != nil {
			return nil, err
		}
		return &TermRecord{Kind: "prod", Dom: domRec, BoundName: name, Body: codRec}, nil
	case term.Abst:
		domRec, err := encodeNode(x.Dom, names, next, allowPatt, slotVars)
		if err != nil {
			return nil, err
		}
		v, body := x.Body.Open()
		name := freshName(next)
		names[v] = name
		bodyRec, err := encodeNode(body, names, next, allowPatt, slotVars)
		if err != nil {
			return nil, err
		}
		return &TermRecord{Kind: "abst", Dom: domRec, BoundName: name, Body: bodyRec}, nil
	case term.Appl:
		funRec, err := encodeNode(x.Fun, names, next, allowPatt, slotVars)
		if err != nil {
			return nil, err
		}
		argRec, err := encodeNode(x.Arg, names, next, allowPatt, slotVars)
		if err != nil {
			return nil, err
		}
		return &TermRecord{Kind: "appl", Fun: funRec, Arg: argRec}, nil
	case term.Patt:
		if !allowPatt {
			return nil, fmt.Errorf("sig: pattern placeholder %q outside a rule's left-hand side", x.Name)
		}
		envNames, err := resolveNames(x.Env, names)
		if err != nil {
			return nil, err
		}
		rec := &TermRecord{Kind: "patt", PattName: x.Name, EnvNames: envNames}
		if x.Index != nil {
			rec.HasIndex = true
			rec.Index = *x.Index
		}
		return rec, nil
	case term.TEnv:
		if slotVars == nil {
			return nil, fmt.Errorf("sig: environment placeholder outside a rule's right-hand side")
		}
		if x.Cell.State != term.EnvFree {
			return nil, fmt.Errorf("sig: cannot persist an already-filled rule template slot")
		}
		idx := slotIndexOf(slotVars, x.Cell.Var)
		if idx < 0 {
			return nil, fmt.Errorf("sig: environment placeholder does not reference a declared right-hand-side slot")
		}
		envNames, err := resolveNames(x.Env, names)
		if err != nil {
			return nil, err
		}
		return &TermRecord{Kind: "tenv", SlotIndex: idx, EnvNames: envNames}, nil
	case term.Meta:
		return nil, fmt.Errorf("sig: cannot persist a metavariable occurrence")
	default:
		return nil, fmt.Errorf("sig: unsupported term node %#v", x)
	}
}

func resolveNames(vars []*kernel.Var, names map[*kernel.Var]string) ([]string, error) {
	out := make([]string, len(vars))
	for i, v := range vars {
		name, ok := names[v]
		if !ok {
			return nil, fmt.Errorf("sig: variable %q is not in scope at this record", v.Hint())
		}
		out[i] = name
	}
	return out, nil
}

// decodeNode is encodeNode's inverse, building a term.Box rather than
// a term.Term directly so that a bound variable's later occurrences
// (captured when an enclosing Prod/Abst substitutes a concrete
// argument) thread through Box's free-variable tracking correctly.
// scope maps each already-decoded display name to the kernel variable
// it denotes; slotVars, when non-nil, resolves "tenv" records against
// a rule's right-hand-side slots.
func decodeNode(r *TermRecord, sg *Signature, scope map[string]*kernel.Var, slotVars []*kernel.Var) (term.Box, error) {
	switch r.Kind {
	case "sort":
		k, err := sortKind(r.Sort)
		if err != nil {
			return term.Box{}, err
		}
		return term.BoxConst(term.Sort{Kind: k}), nil
	case "var":
		v, ok := scope[r.Var]
		if !ok {
			return term.Box{}, fmt.Errorf("sig: undefined variable reference %q", r.Var)
		}
		return term.BoxVari(v), nil
	case "symb":
		s, ok := sg.Lookup(r.SymbPath, r.SymbName)
		if !ok {
			return term.Box{}, errUndeclaredSymbol{path: r.SymbPath, name: r.SymbName}
		}
		return term.BoxConst(term.Symb{Sym: s}), nil
	case "prod":
		domBox, err := decodeNode(r.Dom, sg, scope, slotVars)
		if err != nil {
			return term.Box{}, err
		}
		v := kernel.NewVar(r.BoundName)
		scope[r.BoundName] = v
		codBox, err := decodeNode(r.Body, sg, scope, slotVars)
		if err != nil {
			return term.Box{}, err
		}
		return term.BindProd(domBox, v, codBox), nil
	case "abst":
		domBox, err := decodeNode(r.Dom, sg, scope, slotVars)
		if err != nil {
			return term.Box{}, err
		}
		v := kernel.NewVar(r.BoundName)
		scope[r.BoundName] = v
		bodyBox, err := decodeNode(r.Body, sg, scope, slotVars)
		if err != nil {
			return term.Box{}, err
		}
		return term.BindAbst(domBox, v, bodyBox), nil
	case "appl":
		funBox, err := decodeNode(r.Fun, sg, scope, slotVars)
		if err != nil {
			return term.Box{}, err
		}
		argBox, err := decodeNode(r.Arg, sg, scope, slotVars)
		if err != nil {
			return term.Box{}, err
		}
		return term.BoxAppl(funBox, argBox), nil
	case "patt":
		envVars, err := resolveVars(r.EnvNames, scope)
		if err != nil {
			return term.Box{}, err
		}
		var idx *int
		if r.HasIndex {
			i := r.Index
			idx = &i
		}
		return term.BoxPatt(idx, r.PattName, envVars), nil
	case "tenv":
		if slotVars == nil {
			return term.Box{}, fmt.Errorf("sig: environment placeholder record outside a rule's right-hand side")
		}
		if r.SlotIndex < 0 || r.SlotIndex >= len(slotVars) {
			return term.Box{}, fmt.Errorf("sig: environment placeholder references out-of-range slot %d", r.SlotIndex)
		}
		envVars, err := resolveVars(r.EnvNames, scope)
		if err != nil {
			return term.Box{}, err
		}
		return term.BoxTEnvRef(slotVars[r.SlotIndex], envVars), nil
	default:
		return term.Box{}, fmt.Errorf("sig: unknown term record kind %q", r.Kind)
	}
}

func resolveVars(names []string, scope map[string]*kernel.Var) ([]*kernel.Var, error) {
	out := make([]*kernel.Var, len(names))
	for i, n := range names {
		v, ok := scope[n]
		if !ok {
			return nil, fmt.Errorf("sig: undefined variable reference %q", n)
		}
		out[i] = v
	}
	return out, nil
}

// encodeRule renders r, opening its right-hand-side multi-binder once
// to expose its slot variables and TEnv template in concrete term
// form.
func encodeRule(r *term.Rule) (*RuleRecord, error) {
	names := map[*kernel.Var]string{}
	next := 0
	lhsRecs := make([]*TermRecord, len(r.LHS))
	for i, p := range r.LHS {
		rec, err := encodeNode(p, names, &next, true, nil)
		if err != nil {
			return nil, fmt.Errorf("sig: encoding rule left-hand side #%d: %w", i, err)
		}
		lhsRecs[i] = rec
	}
	slotVars, body := r.RHS.Open()
	bodyRec, err := encodeNode(body, names, &next, false, slotVars)
	if err != nil {
		return nil, fmt.Errorf("sig: encoding rule right-hand side: %w", err)
	}
	return &RuleRecord{LHS: lhsRecs, RHS: bodyRec, EnvSize: r.EnvSize}, nil
}

// decodeRule is encodeRule's inverse.
func decodeRule(rr *RuleRecord, sg *Signature) (*term.Rule, error) {
	scope := map[string]*kernel.Var{}
	lhs := make([]term.Term, len(rr.LHS))
	for i, rec := range rr.LHS {
		box, err := decodeNode(rec, sg, scope, nil)
		if err != nil {
			return nil, fmt.Errorf("sig: decoding rule left-hand side #%d: %w", i, err)
		}
		lhs[i] = term.Unbox(box)
	}
	slotVars := make([]*kernel.Var, rr.EnvSize)
	for i := range slotVars {
		slotVars[i] = kernel.NewVar(fmt.Sprintf("s%d", i))
	}
	rhsBox, err := decodeNode(rr.RHS, sg, scope, slotVars)
	if err != nil {
		return nil, fmt.Errorf("sig: decoding rule right-hand side: %w", err)
	}
	rhs := term.NewRHS(slotVars, rhsBox)
	return term.NewRule(lhs, rhs, rr.EnvSize), nil
}

// encodeSymbol renders one declared symbol, its type (if set) and its
// rules.
func encodeSymbol(s *term.Symbol) (*SymbolRecord, error) {
	rec := &SymbolRecord{Path: s.Path, Name: s.Name, IsConstant: s.IsConstant}
	if t := s.Type(); t != nil {
		typeRec, err := encodeNode(t, map[*kernel.Var]string{}, new(int), false, nil)
		if err != nil {
			return nil, fmt.Errorf("sig: encoding symbol %s's type: %w", s.Name, err)
		}
		rec.Type = typeRec
	}
	for i, r := range s.Rules() {
		ruleRec, err := encodeRule(r)
		if err != nil {
			return nil, fmt.Errorf("sig: encoding symbol %s's rule #%d: %w", s.Name, i, err)
		}
		rec.Rules = append(rec.Rules, ruleRec)
	}
	return rec, nil
}

// DecodeTerm builds a closed term.Term from rec, resolving "symb"
// nodes against sg. For standalone terms outside of a symbol's type
// or a rule's pattern/template — e.g. the term a command batch asks
// to normalize or compare.
func DecodeTerm(rec *TermRecord, sg *Signature) (term.Term, error) {
	box, err := decodeNode(rec, sg, map[string]*kernel.Var{}, nil)
	if err != nil {
		return nil, err
	}
	return term.Unbox(box), nil
}

// EncodeTerm is DecodeTerm's inverse: it renders a closed term.Term
// (no pattern placeholders, no rule-template slots) to its record
// form.
func EncodeTerm(t term.Term) (*TermRecord, error) {
	return encodeNode(t, map[*kernel.Var]string{}, new(int), false, nil)
}

// DecodeRule and EncodeRule expose the rule codec to callers outside
// this package that need to read or write a single rule independent
// of a whole signature snapshot (a command batch's add_rule entries).
func DecodeRule(rr *RuleRecord, sg *Signature) (*term.Rule, error) {
	return decodeRule(rr, sg)
}

func EncodeRule(r *term.Rule) (*RuleRecord, error) {
	return encodeRule(r)
}

// decodeSymbol fills in the type and rules of the handle sg already
// declared for rec (see Restore's two-pass loading discipline in
// store.go).
func decodeSymbol(rec *SymbolRecord, sym *term.Symbol, sg *Signature) error {
	if rec.Type != nil {
		typeBox, err := decodeNode(rec.Type, sg, map[string]*kernel.Var{}, nil)
		if err != nil {
			return fmt.Errorf("sig: decoding symbol %s's type: %w", rec.Name, err)
		}
		sym.SetType(term.Unbox(typeBox))
	}
	for i, ruleRec := range rec.Rules {
		rule, err := decodeRule(ruleRec, sg)
		if err != nil {
			return fmt.Errorf("sig: decoding symbol %s's rule #%d: %w", rec.Name, i, err)
		}
		if err := sym.AddRule(rule); err != nil {
			return fmt.Errorf("sig: adding decoded rule to symbol %s: %w", rec.Name, err)
		}
	}
	return nil
}
