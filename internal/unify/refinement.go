package unify

import (
	"github.com/sweirich/autoenv/internal/scope"
	"github.com/sweirich/autoenv/internal/syntax"
)

// Refinement is an idempotent partial map from variables to the terms they
// are known to equal. It never maps a variable to a term that mentions that
// same variable (occurs check), and no entry's target mentions a variable
// bound elsewhere in the map (so applying it once is enough — there is no
// need to iterate to a fixpoint).
type Refinement map[scope.Fin]syntax.Term

// Empty is the refinement carrying no information, returned whenever
// unification succeeds without pinning down any variable.
func Empty() Refinement { return nil }

// Singleton builds the one-entry refinement {v -> t}.
func Singleton(v scope.Fin, t syntax.Term) Refinement {
	return Refinement{v: t}
}

// Apply substitutes every variable the refinement maps, leaving unmapped
// variables untouched.
func (r Refinement) Apply(t syntax.Term) syntax.Term {
	if len(r) == 0 {
		return t
	}
	return applyAt(r, t, 0)
}

func applyAt(r Refinement, t syntax.Term, depth int) syntax.Term {
	switch t := t.(type) {
	case syntax.Var:
		if int(t) < depth {
			return t
		}
		if image, ok := r[scope.Fin(int(t)-depth)]; ok {
			return syntax.Shift(image, depth)
		}
		return t
	case syntax.Global, syntax.TyType, syntax.TmRefl, syntax.TrustMe, syntax.PrintMe:
		return t
	case syntax.Pi:
		return syntax.Pi{Domain: applyAt(r, t.Domain, depth), Body: applyBind(r, t.Body, depth)}
	case syntax.Lam:
		return syntax.Lam{Body: applyBind(r, t.Body, depth)}
	case syntax.App:
		return syntax.App{Fn: applyAt(r, t.Fn, depth), Arg: applyAt(r, t.Arg, depth)}
	case syntax.Ann:
		return syntax.Ann{Term: applyAt(r, t.Term, depth), Type: applyAt(r, t.Type, depth)}
	case syntax.Pos:
		return syntax.Pos{At: t.At, Term: applyAt(r, t.Term, depth)}
	case syntax.Let:
		return syntax.Let{Rhs: applyAt(r, t.Rhs, depth), Body: applyBind(r, t.Body, depth)}
	case syntax.TyCon:
		return syntax.TyCon{Name: t.Name, Params: applyAll(r, t.Params, depth)}
	case syntax.DataCon:
		return syntax.DataCon{Name: t.Name, Args: applyAll(r, t.Args, depth)}
	case syntax.TyEq:
		return syntax.TyEq{A: applyAt(r, t.A, depth), B: applyAt(r, t.B, depth)}
	case syntax.Subst:
		return syntax.Subst{Body: applyAt(r, t.Body, depth), Proof: applyAt(r, t.Proof, depth)}
	case syntax.Contra:
		return syntax.Contra{Proof: applyAt(r, t.Proof, depth)}
	case syntax.Case:
		branches := make([]syntax.Branch, len(t.Branches))
		for i, br := range t.Branches {
			branches[i] = syntax.Branch{Pat: br.Pat, Body: applyAt(r, br.Body, depth+br.Pat.Size())}
		}
		return syntax.Case{Scrutinee: applyAt(r, t.Scrutinee, depth), Branches: branches}
	default:
		return t
	}
}

func applyBind(r Refinement, b syntax.Bind, depth int) syntax.Bind {
	return syntax.Bind{Name: b.Name, Body: applyAt(r, b.Body, depth+1)}
}

func applyAll(r Refinement, ts []syntax.Term, depth int) []syntax.Term {
	out := make([]syntax.Term, len(ts))
	for i, t := range ts {
		out[i] = applyAt(r, t, depth)
	}
	return out
}

// Join merges two refinements into one equivalent to applying both in
// sequence, failing if the result would no longer be a valid idempotent
// refinement: a variable mapped to two non-equal terms, or a cycle
// introduced across the two maps (e.g. {0 -> Var 1} joined with
// {1 -> Var 0}). eq is used to compare conflicting targets for equality.
//
// A plain union of the two maps is not enough: either map's targets may
// themselves mention a variable the other map resolves, so each entry is
// composed — its target fully resolved against the merged map — before
// the result is accepted. That composition is also where a cross-map
// cycle becomes visible, as a key reached again while still resolving it.
func Join(r1, r2 Refinement, eq func(a, b syntax.Term) (bool, error)) (Refinement, error) {
	if len(r1) == 0 {
		return r2, nil
	}
	if len(r2) == 0 {
		return r1, nil
	}
	out := make(Refinement, len(r1)+len(r2))
	for k, v := range r1 {
		out[k] = v
	}
	for k, v := range r2 {
		if existing, ok := out[k]; ok {
			equal, err := eq(existing, v)
			if err != nil {
				return nil, err
			}
			if !equal {
				return nil, errIncompatible(k, existing, v)
			}
			continue
		}
		out[k] = v
	}

	memo := make(map[scope.Fin]syntax.Term, len(out))
	resolved := make(Refinement, len(out))
	for k := range out {
		v, err := resolveKey(out, memo, make(map[scope.Fin]bool), k)
		if err != nil {
			return nil, err
		}
		if occursFree(v, int(k)) {
			return nil, errIncompatible(k, v, v)
		}
		resolved[k] = v
	}
	return resolved, nil
}

// resolveKey returns out[k] with every other map key occurring free in it
// replaced by its own (recursively resolved) image, so the result no
// longer mentions any key of out — the idempotence condition. visiting
// tracks the chain of keys currently being resolved on this call path;
// revisiting one of them is a cycle across the two joined maps.
func resolveKey(out Refinement, memo map[scope.Fin]syntax.Term, visiting map[scope.Fin]bool, k scope.Fin) (syntax.Term, error) {
	if v, ok := memo[k]; ok {
		return v, nil
	}
	if visiting[k] {
		t := out[k]
		return nil, errIncompatible(k, t, t)
	}
	visiting[k] = true
	resolved, err := resolveTerm(out, memo, visiting, out[k], 0)
	delete(visiting, k)
	if err != nil {
		return nil, err
	}
	memo[k] = resolved
	return resolved, nil
}

// resolveTerm walks t (found at binder depth `depth` within the
// refinement's own scope) replacing any free variable that is a key of
// out with its fully resolved image via resolveKey, shifted up to the
// occurrence's depth.
func resolveTerm(out Refinement, memo map[scope.Fin]syntax.Term, visiting map[scope.Fin]bool, t syntax.Term, depth int) (syntax.Term, error) {
	switch t := t.(type) {
	case syntax.Var:
		if int(t) < depth {
			return t, nil
		}
		key := scope.Fin(int(t) - depth)
		if _, ok := out[key]; !ok {
			return t, nil
		}
		resolved, err := resolveKey(out, memo, visiting, key)
		if err != nil {
			return nil, err
		}
		return syntax.Shift(resolved, depth), nil
	case syntax.Global, syntax.TyType, syntax.TmRefl, syntax.TrustMe, syntax.PrintMe:
		return t, nil
	case syntax.Pi:
		dom, err := resolveTerm(out, memo, visiting, t.Domain, depth)
		if err != nil {
			return nil, err
		}
		body, err := resolveBind(out, memo, visiting, t.Body, depth)
		if err != nil {
			return nil, err
		}
		return syntax.Pi{Domain: dom, Body: body}, nil
	case syntax.Lam:
		body, err := resolveBind(out, memo, visiting, t.Body, depth)
		if err != nil {
			return nil, err
		}
		return syntax.Lam{Body: body}, nil
	case syntax.App:
		fn, err := resolveTerm(out, memo, visiting, t.Fn, depth)
		if err != nil {
			return nil, err
		}
		arg, err := resolveTerm(out, memo, visiting, t.Arg, depth)
		if err != nil {
			return nil, err
		}
		return syntax.App{Fn: fn, Arg: arg}, nil
	case syntax.Ann:
		term, err := resolveTerm(out, memo, visiting, t.Term, depth)
		if err != nil {
			return nil, err
		}
		ty, err := resolveTerm(out, memo, visiting, t.Type, depth)
		if err != nil {
			return nil, err
		}
		return syntax.Ann{Term: term, Type: ty}, nil
	case syntax.Pos:
		term, err := resolveTerm(out, memo, visiting, t.Term, depth)
		if err != nil {
			return nil, err
		}
		return syntax.Pos{At: t.At, Term: term}, nil
	case syntax.Let:
		rhs, err := resolveTerm(out, memo, visiting, t.Rhs, depth)
		if err != nil {
			return nil, err
		}
		body, err := resolveBind(out, memo, visiting, t.Body, depth)
		if err != nil {
			return nil, err
		}
		return syntax.Let{Rhs: rhs, Body: body}, nil
	case syntax.TyCon:
		params, err := resolveAll(out, memo, visiting, t.Params, depth)
		if err != nil {
			return nil, err
		}
		return syntax.TyCon{Name: t.Name, Params: params}, nil
	case syntax.DataCon:
		args, err := resolveAll(out, memo, visiting, t.Args, depth)
		if err != nil {
			return nil, err
		}
		return syntax.DataCon{Name: t.Name, Args: args}, nil
	case syntax.TyEq:
		a, err := resolveTerm(out, memo, visiting, t.A, depth)
		if err != nil {
			return nil, err
		}
		b, err := resolveTerm(out, memo, visiting, t.B, depth)
		if err != nil {
			return nil, err
		}
		return syntax.TyEq{A: a, B: b}, nil
	case syntax.Subst:
		body, err := resolveTerm(out, memo, visiting, t.Body, depth)
		if err != nil {
			return nil, err
		}
		proof, err := resolveTerm(out, memo, visiting, t.Proof, depth)
		if err != nil {
			return nil, err
		}
		return syntax.Subst{Body: body, Proof: proof}, nil
	case syntax.Contra:
		proof, err := resolveTerm(out, memo, visiting, t.Proof, depth)
		if err != nil {
			return nil, err
		}
		return syntax.Contra{Proof: proof}, nil
	case syntax.Case:
		scrut, err := resolveTerm(out, memo, visiting, t.Scrutinee, depth)
		if err != nil {
			return nil, err
		}
		branches := make([]syntax.Branch, len(t.Branches))
		for i, br := range t.Branches {
			body, err := resolveTerm(out, memo, visiting, br.Body, depth+br.Pat.Size())
			if err != nil {
				return nil, err
			}
			branches[i] = syntax.Branch{Pat: br.Pat, Body: body}
		}
		return syntax.Case{Scrutinee: scrut, Branches: branches}, nil
	default:
		return t, nil
	}
}

func resolveBind(out Refinement, memo map[scope.Fin]syntax.Term, visiting map[scope.Fin]bool, b syntax.Bind, depth int) (syntax.Bind, error) {
	body, err := resolveTerm(out, memo, visiting, b.Body, depth+1)
	if err != nil {
		return syntax.Bind{}, err
	}
	return syntax.Bind{Name: b.Name, Body: body}, nil
}

func resolveAll(out Refinement, memo map[scope.Fin]syntax.Term, visiting map[scope.Fin]bool, ts []syntax.Term, depth int) ([]syntax.Term, error) {
	outTs := make([]syntax.Term, len(ts))
	for i, t := range ts {
		rt, err := resolveTerm(out, memo, visiting, t, depth)
		if err != nil {
			return nil, err
		}
		outTs[i] = rt
	}
	return outTs, nil
}
