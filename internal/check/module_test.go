package check

import (
	"testing"

	"github.com/sweirich/autoenv/internal/ctx"
	"github.com/sweirich/autoenv/internal/diagnostics"
	"github.com/sweirich/autoenv/internal/syntax"
)

func TestCheckModuleDuplicateDeclFails(t *testing.T) {
	g := ctx.New()
	mod := syntax.Module{
		syntax.DeclEntry{Name: "x", Type: syntax.TyType{}},
		syntax.DeclEntry{Name: "x", Type: syntax.TyType{}},
	}
	_, err := CheckModule(g, mod)
	if err == nil || !diagnostics.Is(err, diagnostics.CodeDuplicateBinding) {
		t.Fatalf("expected DuplicateBinding, got: %v", err)
	}
}

func TestCheckModuleFillsMissingDecl(t *testing.T) {
	g := ctx.New()
	mod := syntax.Module{
		syntax.DefEntry{Name: "ty", Term: syntax.TyType{}},
	}
	out, err := CheckModule(g, mod)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("expected a synthesized decl before the def, got %d entries", len(out))
	}
	decl, ok := out[0].(syntax.DeclEntry)
	if !ok || decl.Name != "ty" {
		t.Fatalf("expected a leading DeclEntry for ty, got %v", out[0])
	}
}

// data List (A : Type) where Nil : List A | Cons : A -> List A -> List A
func TestCheckModulePolymorphicDatatype(t *testing.T) {
	g := natGlobals(t)
	list := syntax.DataDef{
		Name:   "List",
		Params: syntax.Telescope{syntax.LocalDecl{Name: "A", Type: syntax.TyType{}}},
		Constructors: []syntax.ConstructorDef{
			{Name: "Nil", Args: nil},
			{Name: "Cons", Args: syntax.Telescope{
				syntax.LocalDecl{Name: "x", Type: syntax.Var(0)},
				syntax.LocalDecl{Name: "xs", Type: syntax.TyCon{Name: "List", Params: []syntax.Term{syntax.Var(1)}}},
			}},
		},
	}
	if _, err := CheckModule(g, syntax.Module{syntax.DataEntry{Data: list}}); err != nil {
		t.Fatalf("checking List datatype: %v", err)
	}

	natList := syntax.TyCon{Name: "List", Params: []syntax.Term{syntax.TyCon{Name: "Nat"}}}
	nilNat := syntax.DataCon{Name: "Nil"}
	if err := Check(g, ctx.Context{}, nilNat, natList); err != nil {
		t.Fatalf("(Nil : List Nat) should check, got: %v", err)
	}

	consTerm := syntax.DataCon{Name: "Cons", Args: []syntax.Term{
		syntax.DataCon{Name: "Z"},
		syntax.DataCon{Name: "Nil"},
	}}
	if err := Check(g, ctx.Context{}, consTerm, natList); err != nil {
		t.Fatalf("(Cons Z Nil) : List Nat should check, got: %v", err)
	}
}
