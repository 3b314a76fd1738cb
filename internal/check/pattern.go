package check

import (
	"github.com/sweirich/autoenv/internal/ctx"
	"github.com/sweirich/autoenv/internal/diagnostics"
	"github.com/sweirich/autoenv/internal/syntax"
	"github.com/sweirich/autoenv/internal/telescope"
)

// DeclarePat elaborates a single pattern against its expected type,
// returning the context extended by whatever variables the pattern binds
// and the term the pattern "means" — what the scrutinee must unify with
// for this branch to apply.
func DeclarePat(g *ctx.Globals, c ctx.Context, pat syntax.Pattern, ty syntax.Term) (ctx.Context, syntax.Term, error) {
	switch pat := pat.(type) {
	case syntax.PatVar:
		return c.Extend(ty), syntax.Var(0), nil

	case syntax.PatCon:
		tcName, params, err := ensureTyCon(g, c, ty)
		if err != nil {
			return c, nil, err
		}
		scoped, ok := g.LookupConstructorIn(tcName, pat.Name)
		if !ok {
			return c, nil, diagnostics.New(diagnostics.CodeInternal,
				"%q is not a constructor of %q", pat.Name, tcName)
		}
		theta := telescope.Subst(scoped.Con.Args, params)
		if len(pat.Elems) != len(theta) {
			return c, nil, diagnostics.New(diagnostics.CodePatternArity,
				"constructor %q expects %d argument pattern(s), got %d", pat.Name, len(theta), len(pat.Elems))
		}
		c2, args, err := DeclarePats(g, c, pat.Elems, theta)
		if err != nil {
			return c, nil, err
		}
		return c2, syntax.DataCon{Name: pat.Name, Args: args}, nil

	default:
		return c, nil, diagnostics.New(diagnostics.CodeInternal, "unhandled pattern variant")
	}
}

// DeclarePats walks a constructor's argument telescope against a pattern
// list, consuming one pattern per LocalDecl entry (LocalDef entries bind
// nothing and are skipped — their equations are not re-checked here). It
// returns the extended context and the list of "meaning"
// terms produced for each consumed pattern, aligned with the telescope's
// LocalDecl entries.
func DeclarePats(g *ctx.Globals, c ctx.Context, ps syntax.PatList, theta syntax.Telescope) (ctx.Context, []syntax.Term, error) {
	var args []syntax.Term
	i := 0
	for len(theta) > 0 {
		switch e := theta[0].(type) {
		case syntax.LocalDecl:
			if i >= len(ps) {
				return c, nil, diagnostics.New(diagnostics.CodePatternArity,
					"too few patterns for telescope of %d binding(s)", len(theta))
			}
			c2, tm, err := DeclarePat(g, c, ps[i], e.Type)
			if err != nil {
				return c, nil, err
			}
			k := ps[i].Size()
			i++
			c = c2
			// tm is well-scoped just past the variables this pattern binds;
			// args collected so far are well-scoped before them, so they
			// must shift up by k to stay valid in the now-extended scope.
			for j := range args {
				args[j] = syntax.Shift(args[j], k)
			}
			args = append(args, tm)
			theta = telescope.Subst(telescope.ShiftAbove(theta[1:], k), []syntax.Term{tm})
		case syntax.LocalDef:
			theta = theta[1:]
		default:
			return c, nil, diagnostics.New(diagnostics.CodeInternal, "unhandled telescope entry")
		}
	}
	if i != len(ps) {
		return c, nil, diagnostics.New(diagnostics.CodePatternArity,
			"too many patterns: telescope exhausted with %d pattern(s) left over", len(ps)-i)
	}
	return c, args, nil
}
