// Package whnf reduces terms to weak-head normal form: the head of the term
// is no longer a redex, but subterms are left unreduced. It is the only
// package that unfolds Global definitions or reduces Case, App, Let, and
// Subst; every other package calls into here before inspecting a term's
// shape.
package whnf

import (
	"fmt"

	"github.com/sweirich/autoenv/internal/config"
	"github.com/sweirich/autoenv/internal/ctx"
	"github.com/sweirich/autoenv/internal/diagnostics"
	"github.com/sweirich/autoenv/internal/syntax"
)

// unitCon is the result PrintMe reduces to: a nullary data constructor
// standing in for the debug hole once it has been "resolved" at whnf.
var unitCon = syntax.DataCon{Name: config.UnitConName}

// Whnf reduces t to weak-head normal form under the global signature g. It
// returns an error only when reduction gets stuck on a genuine invariant
// violation (an exhausted Case with no matching branch); a Global with no
// definition, or a Case scrutinee that never becomes a DataCon, are not
// errors — both are valid (neutral) whnf results.
func Whnf(g *ctx.Globals, t syntax.Term) (syntax.Term, error) {
	switch t := t.(type) {
	case syntax.Global:
		entry, ok := g.Lookup(t.Name)
		if !ok || entry.Def == nil {
			return t, nil
		}
		return Whnf(g, entry.Def)

	case syntax.App:
		fn, err := Whnf(g, t.Fn)
		if err != nil {
			return nil, err
		}
		lam, ok := fn.(syntax.Lam)
		if !ok {
			return syntax.App{Fn: fn, Arg: t.Arg}, nil
		}
		return Whnf(g, syntax.Instantiate(lam.Body, t.Arg))

	case syntax.Ann:
		return Whnf(g, t.Term)

	case syntax.Pos:
		return Whnf(g, t.Term)

	case syntax.Let:
		return Whnf(g, syntax.Instantiate(t.Body, t.Rhs))

	case syntax.Case:
		scrut, err := Whnf(g, t.Scrutinee)
		if err != nil {
			return nil, err
		}
		dc, ok := scrut.(syntax.DataCon)
		if !ok {
			return syntax.Case{Scrutinee: scrut, Branches: t.Branches}, nil
		}
		for _, br := range t.Branches {
			args, matched := Match(br.Pat, dc)
			if !matched {
				continue
			}
			body := syntax.InstantiateTele(br.Pat.Size(), br.Body, args)
			return Whnf(g, body)
		}
		return nil, diagnostics.New(diagnostics.CodeInternal,
			"case reduction: no branch matches constructor %q", dc.Name)

	case syntax.Subst:
		proof, err := Whnf(g, t.Proof)
		if err != nil {
			return nil, err
		}
		if _, ok := proof.(syntax.TmRefl); ok {
			return Whnf(g, t.Body)
		}
		return syntax.Subst{Body: t.Body, Proof: proof}, nil

	case syntax.PrintMe:
		return unitCon, nil

	default:
		return t, nil
	}
}

// Match tries to match a whnf'd data constructor against a pattern,
// returning the arguments bound by the pattern in declaration order
// (outermost first) on success. A PatVar always matches, binding the whole
// term; a PatCon matches only a DataCon of the same name and arity, and
// recurses into sub-patterns against the corresponding arguments.
func Match(pat syntax.Pattern, term syntax.Term) ([]syntax.Term, bool) {
	switch pat := pat.(type) {
	case syntax.PatVar:
		return []syntax.Term{term}, true

	case syntax.PatCon:
		dc, ok := term.(syntax.DataCon)
		if !ok || dc.Name != pat.Name || len(dc.Args) != len(pat.Elems) {
			return nil, false
		}
		var out []syntax.Term
		for i, sub := range pat.Elems {
			args, ok := Match(sub, dc.Args[i])
			if !ok {
				return nil, false
			}
			out = append(out, args...)
		}
		return out, true

	default:
		panic(fmt.Sprintf("whnf: unhandled pattern variant %T", pat))
	}
}
