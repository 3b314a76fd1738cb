// Package equality implements definitional equality: two terms are equal
// iff their weak-head normal forms are structurally alpha-equivalent.
// Because terms use de Bruijn indices, alpha-equivalence needs no renaming
// step — binder names are never compared. Ambiguous neutrals (App, Case,
// Subst) are compared structurally rather than forced further, so equality
// here is not extensional.
package equality

import (
	"github.com/sweirich/autoenv/internal/ctx"
	"github.com/sweirich/autoenv/internal/syntax"
	"github.com/sweirich/autoenv/internal/whnf"
)

// Equate reports whether a and b have the same weak-head normal form, up to
// alpha-equivalence.
func Equate(g *ctx.Globals, a, b syntax.Term) (bool, error) {
	wa, err := whnf.Whnf(g, a)
	if err != nil {
		return false, err
	}
	wb, err := whnf.Whnf(g, b)
	if err != nil {
		return false, err
	}
	return Alpha(wa, wb), nil
}

// Alpha compares two terms structurally, without normalizing. It is used
// directly by the unifier, which has already brought both sides to whnf
// itself and does not want to pay for it twice.
func Alpha(a, b syntax.Term) bool {
	// Ann and Pos are erased by whnf, but Alpha may still see them nested
	// inside an unreduced neutral's subterms, on either side.
	a = unwrap(a)
	b = unwrap(b)
	switch a := a.(type) {
	case syntax.Var:
		b, ok := b.(syntax.Var)
		return ok && a == b
	case syntax.Global:
		b, ok := b.(syntax.Global)
		return ok && a.Name == b.Name
	case syntax.TyType:
		_, ok := b.(syntax.TyType)
		return ok
	case syntax.Pi:
		b, ok := b.(syntax.Pi)
		return ok && Alpha(a.Domain, b.Domain) && Alpha(a.Body.Body, b.Body.Body)
	case syntax.Lam:
		b, ok := b.(syntax.Lam)
		return ok && Alpha(a.Body.Body, b.Body.Body)
	case syntax.App:
		b, ok := b.(syntax.App)
		return ok && Alpha(a.Fn, b.Fn) && Alpha(a.Arg, b.Arg)
	case syntax.TyCon:
		b, ok := b.(syntax.TyCon)
		return ok && a.Name == b.Name && alphaList(a.Params, b.Params)
	case syntax.DataCon:
		b, ok := b.(syntax.DataCon)
		return ok && a.Name == b.Name && alphaList(a.Args, b.Args)
	case syntax.TyEq:
		b, ok := b.(syntax.TyEq)
		return ok && Alpha(a.A, b.A) && Alpha(a.B, b.B)
	case syntax.TmRefl:
		_, ok := b.(syntax.TmRefl)
		return ok
	case syntax.TrustMe:
		_, ok := b.(syntax.TrustMe)
		return ok
	case syntax.PrintMe:
		_, ok := b.(syntax.PrintMe)
		return ok
	case syntax.Subst:
		b, ok := b.(syntax.Subst)
		return ok && Alpha(a.Body, b.Body) && Alpha(a.Proof, b.Proof)
	case syntax.Contra:
		b, ok := b.(syntax.Contra)
		return ok && Alpha(a.Proof, b.Proof)
	case syntax.Case:
		b, ok := b.(syntax.Case)
		if !ok || !Alpha(a.Scrutinee, b.Scrutinee) || len(a.Branches) != len(b.Branches) {
			return false
		}
		for i := range a.Branches {
			if !patternAlpha(a.Branches[i].Pat, b.Branches[i].Pat) {
				return false
			}
			if !Alpha(a.Branches[i].Body, b.Branches[i].Body) {
				return false
			}
		}
		return true
	case syntax.Let:
		b, ok := b.(syntax.Let)
		return ok && Alpha(a.Rhs, b.Rhs) && Alpha(a.Body.Body, b.Body.Body)
	default:
		return false
	}
}

// unwrap strips the erased Ann/Pos wrappers off the head of t, so Alpha
// never has to special-case which side carries one.
func unwrap(t syntax.Term) syntax.Term {
	for {
		switch w := t.(type) {
		case syntax.Ann:
			t = w.Term
		case syntax.Pos:
			t = w.Term
		default:
			return t
		}
	}
}

func alphaList(as, bs []syntax.Term) bool {
	if len(as) != len(bs) {
		return false
	}
	for i := range as {
		if !Alpha(as[i], bs[i]) {
			return false
		}
	}
	return true
}

// patternAlpha compares two patterns up to the branch-order restriction
// documented for Case: constructor names and arities must match; variable
// names are irrelevant.
func patternAlpha(a, b syntax.Pattern) bool {
	switch a := a.(type) {
	case syntax.PatVar:
		_, ok := b.(syntax.PatVar)
		return ok
	case syntax.PatCon:
		b, ok := b.(syntax.PatCon)
		if !ok || a.Name != b.Name || len(a.Elems) != len(b.Elems) {
			return false
		}
		for i := range a.Elems {
			if !patternAlpha(a.Elems[i], b.Elems[i]) {
				return false
			}
		}
		return true
	default:
		return false
	}
}
