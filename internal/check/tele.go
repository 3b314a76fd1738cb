package check

import (
	"github.com/sweirich/autoenv/internal/ctx"
	"github.com/sweirich/autoenv/internal/diagnostics"
	"github.com/sweirich/autoenv/internal/equality"
	"github.com/sweirich/autoenv/internal/scope"
	"github.com/sweirich/autoenv/internal/syntax"
	"github.com/sweirich/autoenv/internal/telescope"
)

// CheckTypeTele checks that delta is a well-formed telescope: every
// LocalDecl's type is itself a type, and every LocalDef's term matches the
// type already on record for the variable it equates. It returns the
// context extended by delta's LocalDecl bindings.
func CheckTypeTele(g *ctx.Globals, c ctx.Context, delta syntax.Telescope) (ctx.Context, error) {
	for _, entry := range delta {
		switch e := entry.(type) {
		case syntax.LocalDecl:
			if err := Check(g, c, e.Type, syntax.TyType{}); err != nil {
				return c, err
			}
			c = c.Extend(e.Type)
		case syntax.LocalDef:
			xt, ok := c.Get(scope.Fin(e.Index))
			if !ok {
				return c, diagnostics.New(diagnostics.CodeInternal, "local-def index %d out of scope", e.Index)
			}
			if err := Check(g, c, e.Def, xt); err != nil {
				return c, err
			}
		default:
			return c, diagnostics.New(diagnostics.CodeInternal, "unhandled telescope entry")
		}
	}
	return c, nil
}

// CheckArgTele checks that args satisfies delta, an argument telescope
// already instantiated to the caller's scope (see internal/telescope.Subst
// for instantiating a constructor's telescope against concrete datatype
// parameters first). It returns the checked argument list, or an error —
// an arity mismatch, a type mismatch on some argument, or (for a LocalDef
// entry) a failed equation.
func CheckArgTele(g *ctx.Globals, c ctx.Context, args []syntax.Term, delta syntax.Telescope) ([]syntax.Term, error) {
	remaining := delta
	checked := make([]syntax.Term, 0, len(args))
	i := 0
	for len(remaining) > 0 {
		switch e := remaining[0].(type) {
		case syntax.LocalDecl:
			if i >= len(args) {
				return nil, diagnostics.ArityMismatch("constructor arguments", len(delta), len(args))
			}
			arg := args[i]
			i++
			if err := Check(g, c, arg, e.Type); err != nil {
				return nil, err
			}
			checked = append(checked, arg)
			remaining = telescope.Subst(remaining[1:], []syntax.Term{arg})
		case syntax.LocalDef:
			ok, err := equality.Equate(g, syntax.Var(scope.Fin(e.Index)), e.Def)
			if err != nil {
				return nil, err
			}
			if !ok {
				return nil, diagnostics.New(diagnostics.CodeIncompatibleRefinement,
					"constructor index does not match expected value").
					With("expected", e.Def).With("found", syntax.Var(scope.Fin(e.Index)))
			}
			remaining = remaining[1:]
		default:
			return nil, diagnostics.New(diagnostics.CodeInternal, "unhandled telescope entry")
		}
	}
	if i != len(args) {
		return nil, diagnostics.ArityMismatch("constructor arguments", i, len(args))
	}
	return checked, nil
}
