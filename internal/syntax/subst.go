package syntax

import "github.com/sweirich/autoenv/internal/scope"

// Instantiate opens a Bind by substituting arg for its bound variable,
// shifting every other free variable in Body down by one. This is the only
// way a Bind's body should ever be inspected outside of whnf/check internals
// that need to recurse under it without opening it (those read Body directly).
func Instantiate(b Bind, arg Term) Term {
	return shift(b.Body, 0, -1, arg)
}

// Shift adjusts every free variable in t by d, for reading t back under d
// additional (d > 0) or fewer (d < 0) enclosing binders than it was built in.
func Shift(t Term, d int) Term {
	if d == 0 {
		return t
	}
	return shift(t, 0, d, nil)
}

// ShiftAbove is Shift restricted to variables at or above cutoff, leaving
// anything bound more locally than that untouched. Used when only part of
// a term's free variables (those referring outside some inner telescope
// segment) should move.
func ShiftAbove(t Term, cutoff, d int) Term {
	if d == 0 {
		return t
	}
	return shift(t, cutoff, d, nil)
}

// shift walks t, and at cutoff c (the number of binders entered so far):
//   - if sub != nil and a Var lands exactly on c, it is replaced by sub
//     shifted up by c (instantiation);
//   - any Var >= c is shifted by d;
//   - any Var < c (bound locally) is left alone.
// Instantiate and Shift are both special cases of this single traversal.
func shift(t Term, c, d int, sub Term) Term {
	switch t := t.(type) {
	case Var:
		switch {
		case sub != nil && int(t) == c:
			return Shift(sub, c)
		case int(t) >= c:
			return Var(scope.Fin(int(t) + d))
		default:
			return t
		}
	case Global, TyType, TmRefl, TrustMe, PrintMe:
		return t
	case Bind:
		return Bind{Name: t.Name, Body: shift(t.Body, c+1, d, sub)}
	case Pi:
		return Pi{Domain: shift(t.Domain, c, d, sub), Body: shift(t.Body, c, d, sub).(Bind)}
	case Lam:
		return Lam{Body: shift(t.Body, c, d, sub).(Bind)}
	case App:
		return App{Fn: shift(t.Fn, c, d, sub), Arg: shift(t.Arg, c, d, sub)}
	case Ann:
		return Ann{Term: shift(t.Term, c, d, sub), Type: shift(t.Type, c, d, sub)}
	case Pos:
		return Pos{At: t.At, Term: shift(t.Term, c, d, sub)}
	case Let:
		return Let{Rhs: shift(t.Rhs, c, d, sub), Body: shift(t.Body, c, d, sub).(Bind)}
	case TyCon:
		return TyCon{Name: t.Name, Params: shiftAll(t.Params, c, d, sub)}
	case DataCon:
		return DataCon{Name: t.Name, Args: shiftAll(t.Args, c, d, sub)}
	case TyEq:
		return TyEq{A: shift(t.A, c, d, sub), B: shift(t.B, c, d, sub)}
	case Subst:
		return Subst{Body: shift(t.Body, c, d, sub), Proof: shift(t.Proof, c, d, sub)}
	case Contra:
		return Contra{Proof: shift(t.Proof, c, d, sub)}
	case Case:
		branches := make([]Branch, len(t.Branches))
		for i, br := range t.Branches {
			k := br.Pat.Size()
			branches[i] = Branch{Pat: br.Pat, Body: shift(br.Body, c+k, d, sub)}
		}
		return Case{Scrutinee: shift(t.Scrutinee, c, d, sub), Branches: branches}
	default:
		panic("syntax: shift: unhandled term variant")
	}
}

func shiftAll(ts []Term, c, d int, sub Term) []Term {
	out := make([]Term, len(ts))
	for i, t := range ts {
		out[i] = shift(t, c, d, sub)
	}
	return out
}

// InstantiateTele opens Body, a term well-scoped k variables larger than its
// surroundings, by substituting args (outermost first) for those k
// variables. Used to instantiate a constructor's or branch's bound term once
// its telescope or pattern has been matched against concrete arguments.
func InstantiateTele(k int, body Term, args []Term) Term {
	if len(args) != k {
		panic("syntax: InstantiateTele: argument count does not match binding count")
	}
	return SubstBlock(body, 0, args)
}

// SubstBlock replaces a contiguous block of len(params) variables starting
// at de Bruijn index depth (params given outermost-declared first, so the
// innermost of the block, at index depth, is params[len-1]) and closes the
// resulting gap: any variable above the block is shifted down by the
// block's size. This is the core operation behind both InstantiateTele and
// telescope instantiation (see internal/telescope).
func SubstBlock(t Term, depth int, params []Term) Term {
	k := len(params)
	if k == 0 {
		return t
	}
	switch t := t.(type) {
	case Var:
		switch {
		case int(t) < depth:
			return t
		case int(t) < depth+k:
			return Shift(params[depth+k-1-int(t)], depth)
		default:
			return Var(scope.Fin(int(t) - k))
		}
	case Global, TyType, TmRefl, TrustMe, PrintMe:
		return t
	case Bind:
		return Bind{Name: t.Name, Body: SubstBlock(t.Body, depth+1, params)}
	case Pi:
		return Pi{Domain: SubstBlock(t.Domain, depth, params), Body: SubstBlock(t.Body, depth, params).(Bind)}
	case Lam:
		return Lam{Body: SubstBlock(t.Body, depth, params).(Bind)}
	case App:
		return App{Fn: SubstBlock(t.Fn, depth, params), Arg: SubstBlock(t.Arg, depth, params)}
	case Ann:
		return Ann{Term: SubstBlock(t.Term, depth, params), Type: SubstBlock(t.Type, depth, params)}
	case Pos:
		return Pos{At: t.At, Term: SubstBlock(t.Term, depth, params)}
	case Let:
		return Let{Rhs: SubstBlock(t.Rhs, depth, params), Body: SubstBlock(t.Body, depth, params).(Bind)}
	case TyCon:
		return TyCon{Name: t.Name, Params: substBlockAll(t.Params, depth, params)}
	case DataCon:
		return DataCon{Name: t.Name, Args: substBlockAll(t.Args, depth, params)}
	case TyEq:
		return TyEq{A: SubstBlock(t.A, depth, params), B: SubstBlock(t.B, depth, params)}
	case Subst:
		return Subst{Body: SubstBlock(t.Body, depth, params), Proof: SubstBlock(t.Proof, depth, params)}
	case Contra:
		return Contra{Proof: SubstBlock(t.Proof, depth, params)}
	case Case:
		branches := make([]Branch, len(t.Branches))
		for i, br := range t.Branches {
			branches[i] = Branch{Pat: br.Pat, Body: SubstBlock(br.Body, depth+br.Pat.Size(), params)}
		}
		return Case{Scrutinee: SubstBlock(t.Scrutinee, depth, params), Branches: branches}
	default:
		panic("syntax: SubstBlock: unhandled term variant")
	}
}

func substBlockAll(ts []Term, depth int, params []Term) []Term {
	out := make([]Term, len(ts))
	for i, t := range ts {
		out[i] = SubstBlock(t, depth, params)
	}
	return out
}
