package ctx

import (
	"testing"

	"github.com/sweirich/autoenv/internal/scope"
	"github.com/sweirich/autoenv/internal/syntax"
)

func TestContextExtendAndGet(t *testing.T) {
	var c Context
	c = c.Extend(syntax.TyType{})
	c = c.Extend(syntax.Var(0))

	got, ok := c.Get(scope.Fin(0))
	if !ok || got.String() != "#1" {
		t.Fatalf("Get(0) = %v, %v; want Var(1), true", got, ok)
	}
	got, ok = c.Get(scope.Fin(1))
	if !ok || got.String() != "Type" {
		t.Fatalf("Get(1) = %v, %v; want Type, true", got, ok)
	}
	if _, ok := c.Get(scope.Fin(2)); ok {
		t.Fatal("Get(2) should be out of range")
	}
}

func TestGlobalsDeclareThenDefine(t *testing.T) {
	g := New()
	if !g.Declare("x", syntax.TyType{}) {
		t.Fatal("first declare should succeed")
	}
	if g.Declare("x", syntax.TyType{}) {
		t.Fatal("second declare of the same name should fail")
	}
	if !g.Define("x", syntax.TyType{}, syntax.TyType{}) {
		t.Fatal("define after declare should succeed")
	}
	if g.Define("x", syntax.TyType{}, syntax.TyType{}) {
		t.Fatal("redefining an already-defined name should fail")
	}
}

func TestGlobalsConstructorIndex(t *testing.T) {
	g := New()
	nat := syntax.DataDef{
		Name: "Nat",
		Constructors: []syntax.ConstructorDef{
			{Name: "Z"},
			{Name: "S", Args: syntax.Telescope{syntax.LocalDecl{Name: "n", Type: syntax.TyCon{Name: "Nat"}}}},
		},
	}
	if !g.DeclareData(nat) {
		t.Fatal("declaring Nat should succeed")
	}
	if g.DeclareData(nat) {
		t.Fatal("declaring Nat twice should fail")
	}
	cands := g.LookupConstructor("Z")
	if len(cands) != 1 || cands[0].TyName != "Nat" {
		t.Fatalf("unexpected constructor candidates: %v", cands)
	}
	if _, ok := g.LookupConstructorIn("Nat", "S"); !ok {
		t.Fatal("expected to find S in Nat")
	}
	if _, ok := g.LookupConstructorIn("Nat", "Bogus"); ok {
		t.Fatal("should not find a nonexistent constructor")
	}
}
