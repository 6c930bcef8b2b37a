package command

import (
	"fmt"
	"strings"

	"github.com/lambdapi-core/engine/internal/kernel"
	"github.com/lambdapi-core/engine/internal/term"
)

// Pretty renders t as a human-readable string, the way a command's
// Result.Message reports a normalized or looked-up term. It never
// touches pattern/env placeholders beyond naming them, since those
// never reach a command's Term field (commands only ever carry closed,
// fully-elaborated terms).
func Pretty(t term.Term) string {
	return prettyNode(t, map[*kernel.Var]string{}, new(int))
}

func prettyNode(t term.Term, names map[*kernel.Var]string, next *int) string {
	switch x := term.Unfold(t).(type) {
	case term.Sort:
		if x.Kind == term.SortType {
			return "TYPE"
		}
		return "KIND"
	case term.Vari:
		if n, ok := names[x.X]; ok {
			return n
		}
		return x.X.Hint()
	case term.Symb:
		if len(x.Sym.Path) == 0 {
			return x.Sym.Name
		}
		return strings.Join(x.Sym.Path, ".") + "." + x.Sym.Name
	case term.Prod:
		v, cod := x.Cod.Open()
		name := prettyFreshName(next)
		names[v] = name
		return fmt.Sprintf("(%s : %s) -> %s", name, prettyNode(x.Dom, names, next), prettyNode(cod, names, next))
	case term.Abst:
		v, body := x.Body.Open()
		name := prettyFreshName(next)
		names[v] = name
		return fmt.Sprintf("\\%s : %s . %s", name, prettyNode(x.Dom, names, next), prettyNode(body, names, next))
	case term.Appl:
		return fmt.Sprintf("(%s %s)", prettyNode(x.Fun, names, next), prettyNode(x.Arg, names, next))
	case term.Patt:
		return "?" + x.Name
	case term.TEnv:
		return "<env>"
	case term.Meta:
		return fmt.Sprintf("?%s", x.M.Name)
	default:
		return fmt.Sprintf("%#v", x)
	}
}

func prettyFreshName(next *int) string {
	n := fmt.Sprintf("v%d", *next)
	*next++
	return n
}
