package telescope

import (
	"testing"

	"github.com/sweirich/autoenv/internal/syntax"
)

func TestSubstInstantiatesParamBlock(t *testing.T) {
	// Theta (under a 2-binding Delta): LocalDecl("n", Var(0) `=` the
	// datatype's second parameter, referenced from inside Theta).
	theta := syntax.Telescope{
		syntax.LocalDecl{Name: "n", Type: syntax.Var(0)},
	}
	params := []syntax.Term{syntax.Global{Name: "A"}, syntax.Global{Name: "B"}}

	got := Subst(theta, params)
	decl := got[0].(syntax.LocalDecl)
	if decl.Type.String() != "B" {
		t.Fatalf("Subst: got %v, want B", decl.Type)
	}
}

func TestSubstShiftsTailReferences(t *testing.T) {
	// A second entry referencing the first entry's own bound variable (index
	// 0 relative to itself) plus a Delta parameter (index 1, since it sits
	// past the one local binding introduced by entry 0).
	theta := syntax.Telescope{
		syntax.LocalDecl{Name: "x", Type: syntax.Var(0)},
		syntax.LocalDecl{Name: "y", Type: syntax.App{Fn: syntax.Var(0), Arg: syntax.Var(1)}},
	}
	params := []syntax.Term{syntax.Global{Name: "P"}}

	got := Subst(theta, params)
	decl := got[1].(syntax.LocalDecl)
	want := "(#0 P)"
	if decl.Type.String() != want {
		t.Fatalf("Subst: got %v, want %v", decl.Type, want)
	}
}

func TestShiftAboveLeavesLocalBindingsAlone(t *testing.T) {
	// The second entry's Var(0) is the first entry's own binding x.
	theta := syntax.Telescope{
		syntax.LocalDecl{Name: "x", Type: syntax.TyType{}},
		syntax.LocalDecl{Name: "y", Type: syntax.Var(0)},
	}
	got := ShiftAbove(theta, 2)
	decl := got[1].(syntax.LocalDecl)
	if decl.Type.(syntax.Var) != 0 {
		t.Fatalf("ShiftAbove should not move a reference to the telescope's own binding, got %v", decl.Type)
	}
}
