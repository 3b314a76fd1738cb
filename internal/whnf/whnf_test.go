package whnf

import (
	"testing"

	"github.com/sweirich/autoenv/internal/ctx"
	"github.com/sweirich/autoenv/internal/syntax"
)

func TestWhnfBetaReducesApplication(t *testing.T) {
	g := ctx.New()
	// (\x. x) Global(u)
	lam := syntax.Lam{Body: syntax.Bind{Name: "x", Body: syntax.Var(0)}}
	app := syntax.App{Fn: lam, Arg: syntax.Global{Name: "u"}}

	got, err := Whnf(g, app)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.String() != "u" {
		t.Fatalf("whnf((\\x.x) u) = %v, want u", got)
	}
}

func TestWhnfUnfoldsDefinedGlobal(t *testing.T) {
	g := ctx.New()
	g.Declare("two", syntax.TyCon{Name: "Nat"})
	two := syntax.DataCon{Name: "S", Args: []syntax.Term{syntax.DataCon{Name: "S", Args: []syntax.Term{syntax.DataCon{Name: "Z"}}}}}
	g.Define("two", syntax.TyCon{Name: "Nat"}, two)

	got, err := Whnf(g, syntax.Global{Name: "two"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.String() != two.String() {
		t.Fatalf("whnf(two) = %v, want %v", got, two)
	}
}

func TestWhnfLeavesUndefinedGlobalNeutral(t *testing.T) {
	g := ctx.New()
	g.Declare("x", syntax.TyType{})

	got, err := Whnf(g, syntax.Global{Name: "x"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.String() != "x" {
		t.Fatalf("whnf(x) = %v, want x (unreduced)", got)
	}
}

func TestWhnfReducesCaseOverMatchingBranch(t *testing.T) {
	g := ctx.New()
	scrut := syntax.DataCon{Name: "S", Args: []syntax.Term{syntax.DataCon{Name: "Z"}}}
	c := syntax.Case{
		Scrutinee: scrut,
		Branches: []syntax.Branch{
			{Pat: syntax.PatCon{Name: "Z"}, Body: syntax.DataCon{Name: "Z"}},
			{Pat: syntax.PatCon{Name: "S", Elems: syntax.PatList{syntax.PatVar{Name: "k"}}}, Body: syntax.Var(0)},
		},
	}
	got, err := Whnf(g, c)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := syntax.DataCon{Name: "Z"}
	if got.String() != want.String() {
		t.Fatalf("whnf(case) = %v, want %v", got, want)
	}
}

func TestWhnfSubstByReflErases(t *testing.T) {
	g := ctx.New()
	s := syntax.Subst{Body: syntax.Global{Name: "body"}, Proof: syntax.TmRefl{}}
	got, err := Whnf(g, s)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.String() != "body" {
		t.Fatalf("whnf(subst _ by Refl) = %v, want body", got)
	}
}

func TestWhnfPrintMeReducesToUnit(t *testing.T) {
	g := ctx.New()
	got, err := Whnf(g, syntax.PrintMe{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.String() != "()" {
		t.Fatalf("whnf(PRINTME) = %v, want ()", got)
	}
}
