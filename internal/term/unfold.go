package term

import "github.com/lambdapi-core/engine/internal/kernel"

// Unfold resolves a metavariable whose value cell is filled or an
// environment placeholder whose cell is filled, substituting and
// recursing; any other term is returned unchanged. All reduction and
// conversion code in internal/engine matches on Unfold(t), never on
// raw t, so that instantiated metavariables and matched env
// placeholders are transparent to every later traversal.
func Unfold(t Term) Term {
	for {
		switch x := t.(type) {
		case Meta:
			if v := x.M.Value(); v != nil {
				t = v.Subst(x.Env)
				continue
			}
			return t
		case TEnv:
			if x.Cell.State == EnvFilled {
				t = x.Cell.Value.Subst(varsToTerms(x.Env))
				continue
			}
			return t
		default:
			return t
		}
	}
}

func varsToTerms(vs []*kernel.Var) []Term {
	out := make([]Term, len(vs))
	for i, v := range vs {
		out[i] = Vari{X: v}
	}
	return out
}

// HeadAndArgs strips a left-nested application into its head and an
// ordered list of arguments (outermost application's argument last in
// left-to-right application order, i.e. args[0] is the innermost /
// first-applied argument).
func HeadAndArgs(t Term) (Term, []Term) {
	var args []Term
	for {
		if ap, ok := Unfold(t).(Appl); ok {
			args = append(args, ap.Arg)
			t = ap.Fun
			continue
		}
		break
	}
	// args were collected outermost-first; reverse to left-to-right.
	for i, j := 0, len(args)-1; i < j; i, j = i+1, j-1 {
		args[i], args[j] = args[j], args[i]
	}
	return Unfold(t), args
}

// Apply rebuilds a left-nested application from a head and an ordered
// argument list; the inverse of HeadAndArgs.
func Apply(h Term, args []Term) Term {
	t := h
	for _, a := range args {
		t = Appl{Fun: t, Arg: a}
	}
	return t
}

// DistinctVars reports whether a is a sequence of pairwise distinct
// bound variables.
func DistinctVars(a []Term) bool {
	seen := make(map[*kernel.Var]struct{}, len(a))
	for _, t := range a {
		v, ok := Unfold(t).(Vari)
		if !ok {
			return false
		}
		if _, dup := seen[v.X]; dup {
			return false
		}
		seen[v.X] = struct{}{}
	}
	return true
}

// ToVar unwraps a variable term. A caller reaches here only after
// already having a reason to believe t is a variable (e.g. a prior
// DistinctVars check); t turning out not to be one is a programmer
// error, not a recoverable failure.
func ToVar(t Term) *kernel.Var {
	v, ok := Unfold(t).(Vari)
	if !ok {
		Assertf("ToVar: %#v is not a bound variable", t)
	}
	return v.X
}
