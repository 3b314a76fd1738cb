// Package unify implements the first-order unifier: given two terms, it
// produces a Refinement making them equal, or fails. It is conservative
// about ambiguous (neutral) terms — App, Case, and Subst — skipping rather
// than failing when either side might still reduce under a future
// substitution.
package unify

import (
	"fmt"

	"github.com/sweirich/autoenv/internal/ctx"
	"github.com/sweirich/autoenv/internal/diagnostics"
	"github.com/sweirich/autoenv/internal/equality"
	"github.com/sweirich/autoenv/internal/scope"
	"github.com/sweirich/autoenv/internal/syntax"
	"github.com/sweirich/autoenv/internal/whnf"
)

func errIncompatible(v scope.Fin, a, b syntax.Term) error {
	return diagnostics.New(diagnostics.CodeIncompatibleRefinement,
		"variable %s cannot be refined to both %s and %s", v, a, b).
		With("first", a).With("second", b)
}

// isAmbiguous reports whether t is a neutral elimination that could still
// change shape once more is known about its head — App, Case, and Subst,
// per §4.2.
func isAmbiguous(t syntax.Term) bool {
	switch t.(type) {
	case syntax.App, syntax.Case, syntax.Subst:
		return true
	default:
		return false
	}
}

// Unify produces a Refinement equating x and y, or an error. Both sides are
// understood in a scope of size n; depth tracks how many binders have been
// entered since this call's top-level invocation, so that a solvable
// variable can be expressed back in the caller's scope.
func Unify(g *ctx.Globals, x, y syntax.Term) (Refinement, error) {
	return unify(g, x, y, 0)
}

func unify(g *ctx.Globals, x, y syntax.Term, depth int) (Refinement, error) {
	wx, err := whnf.Whnf(g, x)
	if err != nil {
		return nil, err
	}
	wy, err := whnf.Whnf(g, y)
	if err != nil {
		return nil, err
	}
	if equality.Alpha(wx, wy) {
		return Empty(), nil
	}

	if vx, ok := wx.(syntax.Var); ok {
		if r, ok := solve(vx, wy, depth); ok {
			return r, nil
		}
	}
	if vy, ok := wy.(syntax.Var); ok {
		if r, ok := solve(vy, wx, depth); ok {
			return r, nil
		}
	}

	eq := func(a, b syntax.Term) (bool, error) { return equality.Equate(g, a, b) }

	switch wx := wx.(type) {
	case syntax.DataCon:
		wy, ok := wy.(syntax.DataCon)
		if !ok || wx.Name != wy.Name || len(wx.Args) != len(wy.Args) {
			return ambiguousOrFail(wx, wy)
		}
		return unifyAll(g, wx.Args, wy.Args, depth)
	case syntax.TyCon:
		wy, ok := wy.(syntax.TyCon)
		if !ok || wx.Name != wy.Name || len(wx.Params) != len(wy.Params) {
			return ambiguousOrFail(wx, wy)
		}
		return unifyAll(g, wx.Params, wy.Params, depth)
	case syntax.Lam:
		wy, ok := wy.(syntax.Lam)
		if !ok {
			return ambiguousOrFail(wx, wy)
		}
		return unify(g, wx.Body.Body, wy.Body.Body, depth+1)
	case syntax.Pi:
		wy, ok := wy.(syntax.Pi)
		if !ok {
			return ambiguousOrFail(wx, wy)
		}
		r1, err := unify(g, wx.Domain, wy.Domain, depth)
		if err != nil {
			return nil, err
		}
		r2, err := unify(g, wx.Body.Body, wy.Body.Body, depth+1)
		if err != nil {
			return nil, err
		}
		return Join(r1, r2, eq)
	case syntax.TyEq:
		wy, ok := wy.(syntax.TyEq)
		if !ok {
			return ambiguousOrFail(wx, wy)
		}
		r1, err := unify(g, wx.A, wy.A, depth)
		if err != nil {
			return nil, err
		}
		r2, err := unify(g, wx.B, wy.B, depth)
		if err != nil {
			return nil, err
		}
		return Join(r1, r2, eq)
	default:
		return ambiguousOrFail(wx, wy)
	}
}

func ambiguousOrFail(wx, wy syntax.Term) (Refinement, error) {
	if isAmbiguous(wx) || isAmbiguous(wy) {
		return Empty(), nil
	}
	return nil, diagnostics.Mismatch(wx, wy)
}

func unifyAll(g *ctx.Globals, xs, ys []syntax.Term, depth int) (Refinement, error) {
	eq := func(a, b syntax.Term) (bool, error) { return equality.Equate(g, a, b) }
	r := Empty()
	for i := range xs {
		ri, err := unify(g, xs[i], ys[i], depth)
		if err != nil {
			return nil, err
		}
		r, err = Join(r, ri, eq)
		if err != nil {
			return nil, err
		}
	}
	return r, nil
}

// solve tries to turn Var(v) ~ t into a refinement entry. v must refer to a
// binding from outside the depth binders entered during this unification
// call (otherwise it names a variable local to this comparison, which
// cannot appear in a refinement meant for the caller's scope), t must not
// mention any such local binding either, and v must not occur free in t
// (the occurs check). The second return value is false when any of these
// fails, in which case the caller should treat the pair as "no information"
// rather than a failure, per §4.2.
func solve(v syntax.Var, t syntax.Term, depth int) (Refinement, bool) {
	if int(v) < depth {
		return nil, false
	}
	if hasFreeBelow(t, depth) {
		return nil, false
	}
	outer := scope.Fin(int(v) - depth)
	shifted := syntax.Shift(t, -depth)
	if occursFree(shifted, int(outer)) {
		return nil, false
	}
	return Singleton(outer, shifted), true
}

// hasFreeBelow reports whether t has a free variable with index < k, i.e.
// one that refers to a binder introduced during the current unification
// call rather than the caller's scope.
func hasFreeBelow(t syntax.Term, k int) bool {
	if k == 0 {
		return false
	}
	return anyFreeVar(t, 0, func(idx int) bool { return idx < k })
}

// occursFree reports whether variable v (in the current, outermost scope)
// occurs free anywhere in t.
func occursFree(t syntax.Term, v int) bool {
	return anyFreeVar(t, 0, func(idx int) bool { return idx == v })
}

// anyFreeVar walks t, tracking how many binders (c) have been entered, and
// reports whether any free variable (index - c, once past local binders)
// satisfies pred.
func anyFreeVar(t syntax.Term, c int, pred func(int) bool) bool {
	switch t := t.(type) {
	case syntax.Var:
		return int(t) >= c && pred(int(t)-c)
	case syntax.Global, syntax.TyType, syntax.TmRefl, syntax.TrustMe, syntax.PrintMe:
		return false
	case syntax.Pi:
		return anyFreeVar(t.Domain, c, pred) || anyFreeVar(t.Body.Body, c+1, pred)
	case syntax.Lam:
		return anyFreeVar(t.Body.Body, c+1, pred)
	case syntax.App:
		return anyFreeVar(t.Fn, c, pred) || anyFreeVar(t.Arg, c, pred)
	case syntax.Ann:
		return anyFreeVar(t.Term, c, pred) || anyFreeVar(t.Type, c, pred)
	case syntax.Pos:
		return anyFreeVar(t.Term, c, pred)
	case syntax.Let:
		return anyFreeVar(t.Rhs, c, pred) || anyFreeVar(t.Body.Body, c+1, pred)
	case syntax.TyCon:
		return anyFreeVarList(t.Params, c, pred)
	case syntax.DataCon:
		return anyFreeVarList(t.Args, c, pred)
	case syntax.TyEq:
		return anyFreeVar(t.A, c, pred) || anyFreeVar(t.B, c, pred)
	case syntax.Subst:
		return anyFreeVar(t.Body, c, pred) || anyFreeVar(t.Proof, c, pred)
	case syntax.Contra:
		return anyFreeVar(t.Proof, c, pred)
	case syntax.Case:
		if anyFreeVar(t.Scrutinee, c, pred) {
			return true
		}
		for _, br := range t.Branches {
			if anyFreeVar(br.Body, c+br.Pat.Size(), pred) {
				return true
			}
		}
		return false
	default:
		panic(fmt.Sprintf("unify: unhandled term variant %T", t))
	}
}

func anyFreeVarList(ts []syntax.Term, c int, pred func(int) bool) bool {
	for _, t := range ts {
		if anyFreeVar(t, c, pred) {
			return true
		}
	}
	return false
}
