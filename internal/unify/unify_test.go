package unify

import (
	"testing"

	"github.com/sweirich/autoenv/internal/ctx"
	"github.com/sweirich/autoenv/internal/diagnostics"
	"github.com/sweirich/autoenv/internal/scope"
	"github.com/sweirich/autoenv/internal/syntax"
)

func TestUnifyAlphaEqualReturnsEmpty(t *testing.T) {
	g := ctx.New()
	r, err := Unify(g, syntax.TyType{}, syntax.TyType{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(r) != 0 {
		t.Fatalf("unify of alpha-equal terms should be empty, got %v", r)
	}
}

func TestUnifySolvesVariable(t *testing.T) {
	g := ctx.New()
	z := syntax.DataCon{Name: "Z"}
	r, err := Unify(g, syntax.Var(0), z)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, ok := r[scope.Fin(0)]
	if !ok {
		t.Fatalf("expected a binding for variable 0, got %v", r)
	}
	if got.String() != z.String() {
		t.Fatalf("got %v, want %v", got, z)
	}
}

func TestUnifyMismatchedConstructorsFails(t *testing.T) {
	g := ctx.New()
	z := syntax.DataCon{Name: "Z"}
	sz := syntax.DataCon{Name: "S", Args: []syntax.Term{z}}
	_, err := Unify(g, z, sz)
	if err == nil {
		t.Fatal("unifying distinct constructors should fail")
	}
	if !diagnostics.Is(err, diagnostics.CodeMismatch) {
		t.Fatalf("expected Mismatch, got: %v", err)
	}
}

func TestUnifySkipsAmbiguousNeutral(t *testing.T) {
	g := ctx.New()
	g.Declare("f", syntax.TyType{}) // declared but not defined: App(f, x) stays neutral
	neutral := syntax.App{Fn: syntax.Global{Name: "f"}, Arg: syntax.DataCon{Name: "Z"}}
	r, err := Unify(g, neutral, syntax.DataCon{Name: "Z"})
	if err != nil {
		t.Fatalf("ambiguous comparisons should not fail, got: %v", err)
	}
	if len(r) != 0 {
		t.Fatalf("expected empty (no information) refinement, got %v", r)
	}
}

func TestJoinConflictingEntriesFails(t *testing.T) {
	g := ctx.New()
	eq := func(a, b syntax.Term) (bool, error) { return equate(g, a, b) }
	r1 := Singleton(scope.Fin(0), syntax.DataCon{Name: "Z"})
	r2 := Singleton(scope.Fin(0), syntax.DataCon{Name: "S", Args: []syntax.Term{syntax.DataCon{Name: "Z"}}})
	_, err := Join(r1, r2, eq)
	if err == nil {
		t.Fatal("joining incompatible refinements should fail")
	}
}

func TestJoinDetectsCrossMapCycle(t *testing.T) {
	g := ctx.New()
	eq := func(a, b syntax.Term) (bool, error) { return equate(g, a, b) }
	r1 := Singleton(scope.Fin(0), syntax.Var(1))
	r2 := Singleton(scope.Fin(1), syntax.Var(0))
	if _, err := Join(r1, r2, eq); err == nil {
		t.Fatal("joining {0 -> Var 1} with {1 -> Var 0} should fail on the cross-map cycle")
	}
}

func TestJoinComposesChainedEntries(t *testing.T) {
	g := ctx.New()
	eq := func(a, b syntax.Term) (bool, error) { return equate(g, a, b) }
	z := syntax.DataCon{Name: "Z"}
	r1 := Singleton(scope.Fin(0), syntax.Var(2))
	r2 := Singleton(scope.Fin(2), z)
	r, err := Join(r1, r2, eq)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, ok := r[scope.Fin(0)]
	if !ok || got.String() != z.String() {
		t.Fatalf("expected variable 0 to resolve through variable 2 to %v, got %v", z, r)
	}
}

func equate(g *ctx.Globals, a, b syntax.Term) (bool, error) {
	r, err := Unify(g, a, b)
	if err != nil {
		return false, nil
	}
	return len(r) == 0, nil
}
