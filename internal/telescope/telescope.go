// Package telescope implements the purely structural operations on
// telescopes: instantiating a constructor's telescope against concrete
// datatype parameters, and propagating a substitution through one. The
// operations that need to call the bidirectional checker — checking a
// telescope is well-formed, and checking an argument list against one —
// live in internal/check instead, since they are mutually recursive with
// infer/check and Go has no cheap way to split that across packages.
package telescope

import "github.com/sweirich/autoenv/internal/syntax"

// Subst instantiates theta — a telescope of p2 bindings living under a
// closed parameter telescope of p1 bindings — by substituting params
// (declaration order, length p1) for that enclosing block. The result is
// well-scoped in whatever scope params themselves live in, extended by
// theta's own p2 bindings as they're introduced entry by entry.
func Subst(theta syntax.Telescope, params []syntax.Term) syntax.Telescope {
	if len(params) == 0 {
		return theta
	}
	out := make(syntax.Telescope, len(theta))
	depth := 0
	for i, entry := range theta {
		switch e := entry.(type) {
		case syntax.LocalDecl:
			out[i] = syntax.LocalDecl{Name: e.Name, Type: syntax.SubstBlock(e.Type, depth, params)}
			depth++
		case syntax.LocalDef:
			out[i] = syntax.LocalDef{Index: e.Index, Def: syntax.SubstBlock(e.Def, depth, params)}
		default:
			panic("telescope: Subst: unhandled telescope entry variant")
		}
	}
	return out
}

// ShiftAbove shifts every entry of theta by d, restricted (per entry, at
// its own depth within the walk) to variables referring outside theta
// itself — the telescope analogue of syntax.ShiftAbove.
func ShiftAbove(theta syntax.Telescope, d int) syntax.Telescope {
	if d == 0 {
		return theta
	}
	out := make(syntax.Telescope, len(theta))
	depth := 0
	for i, entry := range theta {
		switch e := entry.(type) {
		case syntax.LocalDecl:
			out[i] = syntax.LocalDecl{Name: e.Name, Type: syntax.ShiftAbove(e.Type, depth, d)}
			depth++
		case syntax.LocalDef:
			out[i] = syntax.LocalDef{Index: e.Index, Def: syntax.ShiftAbove(e.Def, depth, d)}
		default:
			panic("telescope: ShiftAbove: unhandled telescope entry variant")
		}
	}
	return out
}

// DoSubst propagates a refinement-shaped substitution (already in the
// caller's ambient scope) through a telescope, re-expressing each entry at
// the point it's reached during the walk; variables the telescope itself
// introduces (via LocalDecl) are left alone and the substitution is lifted
// under them for the remaining entries. apply must already implement that
// lifting internally (as internal/unify.Refinement.Apply does).
func DoSubst(theta syntax.Telescope, apply func(syntax.Term, int) syntax.Term) syntax.Telescope {
	out := make(syntax.Telescope, len(theta))
	depth := 0
	for i, entry := range theta {
		switch e := entry.(type) {
		case syntax.LocalDecl:
			out[i] = syntax.LocalDecl{Name: e.Name, Type: apply(e.Type, depth)}
			depth++
		case syntax.LocalDef:
			out[i] = syntax.LocalDef{Index: e.Index, Def: apply(e.Def, depth)}
		default:
			panic("telescope: DoSubst: unhandled telescope entry variant")
		}
	}
	return out
}
