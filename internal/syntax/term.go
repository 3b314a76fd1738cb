// Package syntax defines the core's term representation: a small algebraic
// language of dependent types, indexed by de Bruijn variables bounded by a
// runtime scope size (see internal/scope). It knows nothing about checking
// or reduction — those live in whnf, unify, equality, telescope, and check.
package syntax

import (
	"fmt"
	"strings"

	"github.com/sweirich/autoenv/internal/pos"
	"github.com/sweirich/autoenv/internal/scope"
)

// Term is the tagged union every part of the core operates over. The
// concrete variants below are the only implementations; a type switch over
// Term is exhaustive against this list.
type Term interface {
	fmt.Stringer
	isTerm()
}

// Var is a bound variable, an index into the enclosing scope.
type Var scope.Fin

func (Var) isTerm()        {}
func (v Var) String() string { return scope.Fin(v).String() }

// Global is a reference to a top-level name, resolved through the global
// signature (see internal/ctx) rather than carrying its definition inline.
type Global struct{ Name string }

func (Global) isTerm()        {}
func (g Global) String() string { return g.Name }

// TyType is the single universe. It is typed by itself: there is no
// universe hierarchy in this core.
type TyType struct{}

func (TyType) isTerm()        {}
func (TyType) String() string { return "Type" }

// Bind is a single-variable binder: Body is well-scoped one variable larger
// than its surrounding term. Name is carried only for display; checking
// never inspects it.
type Bind struct {
	Name string
	Body Term
}

func (Bind) isTerm()          {}
func (b Bind) String() string { return fmt.Sprintf("%s. %s", b.Name, b.Body) }

// Pi is the dependent function type (x : Domain) -> Body.
type Pi struct {
	Domain Term
	Body   Bind
}

func (Pi) isTerm() {}
func (p Pi) String() string {
	return fmt.Sprintf("(%s : %s) -> %s", p.Body.Name, p.Domain, p.Body.Body)
}

// Lam is a one-argument lambda abstraction.
type Lam struct{ Body Bind }

func (Lam) isTerm()        {}
func (l Lam) String() string { return fmt.Sprintf("\\%s. %s", l.Body.Name, l.Body.Body) }

// App is function application.
type App struct{ Fn, Arg Term }

func (App) isTerm()        {}
func (a App) String() string { return fmt.Sprintf("(%s %s)", a.Fn, a.Arg) }

// Ann is a type ascription; whnf erases it.
type Ann struct{ Term, Type Term }

func (Ann) isTerm()        {}
func (a Ann) String() string { return fmt.Sprintf("(%s : %s)", a.Term, a.Type) }

// Pos wraps a term with the source position it came from; whnf erases it,
// but infer/check use it to extend the location an error is reported at.
type Pos struct {
	At   pos.Position
	Term Term
}

func (Pos) isTerm()        {}
func (p Pos) String() string { return p.Term.String() }

// Let is a local definition; the checker treats it as an immediate
// substitution of Rhs into Body (see DESIGN.md for the alternative considered).
type Let struct {
	Rhs  Term
	Body Bind
}

func (Let) isTerm() {}
func (l Let) String() string {
	return fmt.Sprintf("let %s = %s in %s", l.Body.Name, l.Rhs, l.Body.Body)
}

// TyCon is a fully- or partially-applied type constructor, e.g. `List Int`.
type TyCon struct {
	Name   string
	Params []Term
}

func (TyCon) isTerm() {}
func (t TyCon) String() string {
	if len(t.Params) == 0 {
		return t.Name
	}
	return fmt.Sprintf("(%s %s)", t.Name, joinTerms(t.Params))
}

// DataCon is a data-constructor application, e.g. `S Z` or `Cons x xs`.
type DataCon struct {
	Name string
	Args []Term
}

func (DataCon) isTerm() {}
func (d DataCon) String() string {
	if len(d.Args) == 0 {
		return d.Name
	}
	return fmt.Sprintf("(%s %s)", d.Name, joinTerms(d.Args))
}

// TyEq is the propositional equality type `a = b`.
type TyEq struct{ A, B Term }

func (TyEq) isTerm()        {}
func (t TyEq) String() string { return fmt.Sprintf("%s = %s", t.A, t.B) }

// TmRefl is the single introduction form of TyEq.
type TmRefl struct{}

func (TmRefl) isTerm()        {}
func (TmRefl) String() string { return "Refl" }

// Subst rewrites Body's expected type using the equality Proof. At whnf,
// Subst erases to Body once Proof reduces to Refl.
type Subst struct{ Body, Proof Term }

func (Subst) isTerm() {}
func (s Subst) String() string {
	return fmt.Sprintf("subst %s by %s", s.Body, s.Proof)
}

// Contra derives any goal from a proof that two distinct data constructors
// are propositionally equal.
type Contra struct{ Proof Term }

func (Contra) isTerm()        {}
func (c Contra) String() string { return fmt.Sprintf("contra %s", c.Proof) }

// TrustMe is accepted against any goal type, unconditionally.
type TrustMe struct{}

func (TrustMe) isTerm()        {}
func (TrustMe) String() string { return "TRUSTME" }

// PrintMe reports the current goal and context as an unmet-obligation error;
// it is a debugging hole, never a successful checking result.
type PrintMe struct{}

func (PrintMe) isTerm()        {}
func (PrintMe) String() string { return "PRINTME" }

// Branch is one arm of a Case: Pat is elaborated against the scrutinee's
// datatype and Body is well-scoped Pat.Size() variables larger than the
// Case itself.
type Branch struct {
	Pat  Pattern
	Body Term
}

// Case eliminates a scrutinee of datatype shape by pattern match. It is a
// neutral (ambiguous) elimination when Scrutinee does not whnf to a
// DataCon — see internal/whnf and internal/unify.
type Case struct {
	Scrutinee Term
	Branches  []Branch
}

func (Case) isTerm() {}
func (c Case) String() string {
	arms := make([]string, len(c.Branches))
	for i, br := range c.Branches {
		arms[i] = fmt.Sprintf("%s -> %s", br.Pat, br.Body)
	}
	return fmt.Sprintf("case %s of { %s }", c.Scrutinee, strings.Join(arms, " ; "))
}

func joinTerms(ts []Term) string {
	parts := make([]string, len(ts))
	for i, t := range ts {
		parts[i] = t.String()
	}
	return strings.Join(parts, " ")
}
