package check

import (
	"testing"

	"github.com/sweirich/autoenv/internal/ctx"
	"github.com/sweirich/autoenv/internal/syntax"
)

// data Pair where MkPair : Nat -> Nat -> Pair
func pairGlobals(t *testing.T) *ctx.Globals {
	t.Helper()
	g := natGlobals(t)
	pair := syntax.DataDef{
		Name: "Pair",
		Constructors: []syntax.ConstructorDef{
			{Name: "MkPair", Args: syntax.Telescope{
				syntax.LocalDecl{Name: "x", Type: syntax.TyCon{Name: "Nat"}},
				syntax.LocalDecl{Name: "xs", Type: syntax.TyCon{Name: "Nat"}},
			}},
		},
	}
	if _, err := CheckModule(g, syntax.Module{syntax.DataEntry{Data: pair}}); err != nil {
		t.Fatalf("checking Pair datatype: %v", err)
	}
	return g
}

// Regression test for a constructor pattern binding two or more variables:
// each bound variable must get a distinct de Bruijn index in the pattern's
// "meaning" term (what the scrutinee unifies against), not all collapse to
// the innermost one. For (MkPair x xs), in the final extended scope x is
// Var(1) and xs is Var(0).
func TestDeclarePatMultiFieldConstructorDistinguishesBoundVars(t *testing.T) {
	g := pairGlobals(t)
	pat := syntax.PatCon{Name: "MkPair", Elems: syntax.PatList{
		syntax.PatVar{Name: "x"},
		syntax.PatVar{Name: "xs"},
	}}
	_, meaning, err := DeclarePat(g, ctx.Context{}, pat, syntax.TyCon{Name: "Pair"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := syntax.DataCon{Name: "MkPair", Args: []syntax.Term{syntax.Var(1), syntax.Var(0)}}
	if meaning.String() != want.String() {
		t.Fatalf("meaning = %v, want %v", meaning, want)
	}
}

// Same shape with three fields, to rule out the fix only handling the
// two-variable case by coincidence.
func TestDeclarePatThreeFieldConstructorDistinguishesBoundVars(t *testing.T) {
	g := natGlobals(t)
	triple := syntax.DataDef{
		Name: "Triple",
		Constructors: []syntax.ConstructorDef{
			{Name: "MkTriple", Args: syntax.Telescope{
				syntax.LocalDecl{Name: "a", Type: syntax.TyCon{Name: "Nat"}},
				syntax.LocalDecl{Name: "b", Type: syntax.TyCon{Name: "Nat"}},
				syntax.LocalDecl{Name: "c", Type: syntax.TyCon{Name: "Nat"}},
			}},
		},
	}
	if _, err := CheckModule(g, syntax.Module{syntax.DataEntry{Data: triple}}); err != nil {
		t.Fatalf("checking Triple datatype: %v", err)
	}
	pat := syntax.PatCon{Name: "MkTriple", Elems: syntax.PatList{
		syntax.PatVar{Name: "a"},
		syntax.PatVar{Name: "b"},
		syntax.PatVar{Name: "c"},
	}}
	_, meaning, err := DeclarePat(g, ctx.Context{}, pat, syntax.TyCon{Name: "Triple"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := syntax.DataCon{Name: "MkTriple", Args: []syntax.Term{syntax.Var(2), syntax.Var(1), syntax.Var(0)}}
	if meaning.String() != want.String() {
		t.Fatalf("meaning = %v, want %v", meaning, want)
	}
}
