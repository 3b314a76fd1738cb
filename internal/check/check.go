// Package check implements the bidirectional type checker: infer produces
// a type, check verifies a term against one already known. Both recurse
// through whnf, equate, and unify whenever two types must be compared, and
// through the telescope engine whenever a datatype or constructor is
// involved.
package check

import (
	"github.com/sweirich/autoenv/internal/ctx"
	"github.com/sweirich/autoenv/internal/diagnostics"
	"github.com/sweirich/autoenv/internal/equality"
	"github.com/sweirich/autoenv/internal/scope"
	"github.com/sweirich/autoenv/internal/syntax"
	"github.com/sweirich/autoenv/internal/telescope"
	"github.com/sweirich/autoenv/internal/unify"
	"github.com/sweirich/autoenv/internal/whnf"
)

// Infer computes t's type, or fails with MissingAnnotation for any term
// shape that does not carry enough information to determine one on its
// own (Lam, Let, Case, Subst, Contra, TrustMe, PrintMe, TmRefl, and a
// DataCon of no parameterless datatype). A DataCon of more than one
// parameterless datatype fails with AmbiguousConstructor.
func Infer(g *ctx.Globals, c ctx.Context, t syntax.Term) (syntax.Term, error) {
	switch t := t.(type) {
	case syntax.Var:
		ty, ok := c.Get(scope.Fin(t))
		if !ok {
			return nil, diagnostics.New(diagnostics.CodeInternal, "variable %s out of scope", t)
		}
		return ty, nil

	case syntax.Global:
		entry, ok := g.Lookup(t.Name)
		if !ok {
			return nil, diagnostics.New(diagnostics.CodeInternal, "unknown global %q", t.Name)
		}
		return entry.Type, nil

	case syntax.TyType:
		return syntax.TyType{}, nil

	case syntax.Pi:
		if err := Check(g, c, t.Domain, syntax.TyType{}); err != nil {
			return nil, err
		}
		if err := Check(g, c.Extend(t.Domain), t.Body.Body, syntax.TyType{}); err != nil {
			return nil, err
		}
		return syntax.TyType{}, nil

	case syntax.App:
		fty, err := Infer(g, c, t.Fn)
		if err != nil {
			return nil, err
		}
		wfty, err := whnf.Whnf(g, fty)
		if err != nil {
			return nil, err
		}
		pi, ok := wfty.(syntax.Pi)
		if !ok {
			return nil, diagnostics.New(diagnostics.CodeNotAFunction, "applied term is not a function").With("type", wfty)
		}
		if err := Check(g, c, t.Arg, pi.Domain); err != nil {
			return nil, err
		}
		return syntax.Instantiate(pi.Body, t.Arg), nil

	case syntax.Ann:
		if err := Check(g, c, t.Type, syntax.TyType{}); err != nil {
			return nil, err
		}
		if err := Check(g, c, t.Term, t.Type); err != nil {
			return nil, err
		}
		return t.Type, nil

	case syntax.Pos:
		ty, err := Infer(g, c, t.Term)
		if err != nil {
			return nil, diagnostics.WithPos(err, t.At)
		}
		return ty, nil

	case syntax.TyCon:
		data, ok := g.LookupData(t.Name)
		if !ok {
			return nil, diagnostics.New(diagnostics.CodeNotADatatype, "unknown type constructor %q", t.Name)
		}
		if len(t.Params) != len(data.Params) {
			return nil, diagnostics.ArityMismatch("type parameters", len(data.Params), len(t.Params))
		}
		if _, err := CheckArgTele(g, c, t.Params, data.Params); err != nil {
			return nil, err
		}
		return syntax.TyType{}, nil

	case syntax.DataCon:
		candidates := g.LookupConstructor(t.Name)
		var nullary []ctx.ScopedConstructorDef
		for _, sc := range candidates {
			if len(sc.Params) == 0 {
				nullary = append(nullary, sc)
			}
		}
		if len(nullary) == 0 {
			return nil, diagnostics.New(diagnostics.CodeMissingAnnotation,
				"cannot infer the type of constructor %q; annotate it", t.Name)
		}
		if len(nullary) > 1 {
			return nil, diagnostics.New(diagnostics.CodeAmbiguousConstructor,
				"constructor %q belongs to more than one datatype; annotate it", t.Name)
		}
		sc := nullary[0]
		if len(t.Args) != len(sc.Con.Args) {
			return nil, diagnostics.ArityMismatch("constructor arguments", len(sc.Con.Args), len(t.Args))
		}
		if _, err := CheckArgTele(g, c, t.Args, sc.Con.Args); err != nil {
			return nil, err
		}
		return syntax.TyCon{Name: sc.TyName}, nil

	case syntax.TyEq:
		aty, err := Infer(g, c, t.A)
		if err != nil {
			return nil, err
		}
		if err := Check(g, c, t.B, aty); err != nil {
			return nil, err
		}
		return syntax.TyType{}, nil

	default:
		return nil, diagnostics.New(diagnostics.CodeMissingAnnotation,
			"cannot infer a type for this term; add an annotation").With("term", t)
	}
}

// Check verifies t against the expected type ty.
func Check(g *ctx.Globals, c ctx.Context, t syntax.Term, ty syntax.Term) error {
	wty, err := whnf.Whnf(g, ty)
	if err != nil {
		return err
	}

	switch t := t.(type) {
	case syntax.Pos:
		if err := Check(g, c, t.Term, wty); err != nil {
			return diagnostics.WithPos(err, t.At)
		}
		return nil

	case syntax.TrustMe:
		return nil

	case syntax.PrintMe:
		return diagnostics.New(diagnostics.CodeUnmetObligation, "unmet obligation").
			With("context", contextStringer(c)).With("goal", wty)

	case syntax.Lam:
		pi, ok := wty.(syntax.Pi)
		if !ok {
			return diagnostics.New(diagnostics.CodeNotAFunction, "lambda checked against a non-function type").With("type", wty)
		}
		return Check(g, c.Extend(pi.Domain), t.Body.Body, pi.Body.Body)

	case syntax.Let:
		return Check(g, c, syntax.Instantiate(t.Body, t.Rhs), wty)

	case syntax.TmRefl:
		eq, ok := wty.(syntax.TyEq)
		if !ok {
			return diagnostics.New(diagnostics.CodeNotAnEquality, "Refl checked against a non-equality type").With("type", wty)
		}
		ok2, err := equality.Equate(g, eq.A, eq.B)
		if err != nil {
			return err
		}
		if !ok2 {
			return diagnostics.Mismatch(eq.A, eq.B)
		}
		return nil

	case syntax.Subst:
		pty, err := Infer(g, c, t.Proof)
		if err != nil {
			return err
		}
		wpty, err := whnf.Whnf(g, pty)
		if err != nil {
			return err
		}
		eq, ok := wpty.(syntax.TyEq)
		if !ok {
			return diagnostics.New(diagnostics.CodeNotAnEquality, "subst proof is not an equality").With("type", wpty)
		}
		eqFn := func(a, b syntax.Term) (bool, error) { return equality.Equate(g, a, b) }
		r1, err := unify.Unify(g, eq.A, eq.B)
		if err != nil {
			return err
		}
		r2, err := unify.Unify(g, t.Proof, syntax.TmRefl{})
		if err != nil {
			return err
		}
		r, err := unify.Join(r1, r2, eqFn)
		if err != nil {
			return err
		}
		return Check(g, applyCtx(r, c), t.Body, r.Apply(wty))

	case syntax.Contra:
		pty, err := Infer(g, c, t.Proof)
		if err != nil {
			return err
		}
		wpty, err := whnf.Whnf(g, pty)
		if err != nil {
			return err
		}
		eq, ok := wpty.(syntax.TyEq)
		if !ok {
			return diagnostics.New(diagnostics.CodeNotAnEquality, "contra proof is not an equality").With("type", wpty)
		}
		wa, err := whnf.Whnf(g, eq.A)
		if err != nil {
			return err
		}
		wb, err := whnf.Whnf(g, eq.B)
		if err != nil {
			return err
		}
		da, aok := wa.(syntax.DataCon)
		db, bok := wb.(syntax.DataCon)
		if !aok || !bok || da.Name == db.Name {
			return diagnostics.New(diagnostics.CodeContradiction,
				"contra requires a proof of equality between distinct constructors").With("left", wa).With("right", wb)
		}
		return nil

	case syntax.DataCon:
		tc, ok := wty.(syntax.TyCon)
		if !ok {
			return diagnostics.New(diagnostics.CodeNotADatatype, "data constructor checked against a non-datatype").With("type", wty)
		}
		scoped, ok := g.LookupConstructorIn(tc.Name, t.Name)
		if !ok {
			return diagnostics.New(diagnostics.CodeMismatch, "%q is not a constructor of %q", t.Name, tc.Name).With("expected", wty)
		}
		theta := telescope.Subst(scoped.Con.Args, tc.Params)
		if len(t.Args) != len(theta) {
			return diagnostics.ArityMismatch("constructor arguments", len(theta), len(t.Args))
		}
		_, err := CheckArgTele(g, c, t.Args, theta)
		return err

	case syntax.Case:
		return checkCase(g, c, t, wty)

	default:
		ity, err := Infer(g, c, t)
		if err != nil {
			return err
		}
		ok, err := equality.Equate(g, ity, wty)
		if err != nil {
			return err
		}
		if !ok {
			return diagnostics.Mismatch(wty, ity)
		}
		return nil
	}
}

func checkCase(g *ctx.Globals, c ctx.Context, t syntax.Case, ty syntax.Term) error {
	sty, err := Infer(g, c, t.Scrutinee)
	if err != nil {
		return err
	}
	tcName, params, err := ensureTyCon(g, c, sty)
	if err != nil {
		return err
	}
	scrut, err := whnf.Whnf(g, t.Scrutinee)
	if err != nil {
		return err
	}
	for _, br := range t.Branches {
		c2, meaning, err := DeclarePat(g, c, br.Pat, syntax.TyCon{Name: tcName, Params: params})
		if err != nil {
			return err
		}
		k := br.Pat.Size()
		r, err := unify.Unify(g, syntax.Shift(scrut, k), meaning)
		if err != nil {
			// A hard mismatch here means the pattern can never match this
			// scrutinee (its constructor shape is already known and
			// disagrees with the pattern); such a branch is unreachable,
			// not ill typed, so its body is accepted without being checked.
			if diagnostics.Is(err, diagnostics.CodeMismatch) {
				continue
			}
			return err
		}
		if err := Check(g, applyCtx(r, c2), br.Body, r.Apply(syntax.Shift(ty, k))); err != nil {
			return err
		}
	}
	return nil
}

// ensureTyCon whnfs ty and requires it to be a TyCon, the shape every
// pattern match and data-constructor check needs its expected type to be.
func ensureTyCon(g *ctx.Globals, c ctx.Context, ty syntax.Term) (string, []syntax.Term, error) {
	wty, err := whnf.Whnf(g, ty)
	if err != nil {
		return "", nil, err
	}
	tc, ok := wty.(syntax.TyCon)
	if !ok {
		return "", nil, diagnostics.New(diagnostics.CodeNotADatatype, "expected a datatype").With("type", wty)
	}
	return tc.Name, tc.Params, nil
}

func applyCtx(r unify.Refinement, c ctx.Context) ctx.Context {
	if len(r) == 0 {
		return c
	}
	types := make([]syntax.Term, len(c.Types))
	for i, ty := range c.Types {
		types[i] = r.Apply(ty)
	}
	return ctx.Context{Types: types}
}

// contextStringer renders a context for diagnostic display only.
type contextStringer ctx.Context

func (c contextStringer) String() string {
	s := ""
	for i, ty := range c.Types {
		if i > 0 {
			s += ", "
		}
		s += ty.String()
	}
	return "[" + s + "]"
}
