package syntax

import "testing"

func TestPatternSize(t *testing.T) {
	// S (Cons x xs) -- a nested constructor pattern binding two variables.
	p := PatCon{
		Name: "S",
		Elems: PatList{
			PatCon{Name: "Cons", Elems: PatList{PatVar{Name: "x"}, PatVar{Name: "xs"}}},
		},
	}
	if p.Size() != 2 {
		t.Fatalf("Size() = %d, want 2", p.Size())
	}
}

func TestPatternSizeNullaryConstructor(t *testing.T) {
	p := PatCon{Name: "Z"}
	if p.Size() != 0 {
		t.Fatalf("Size() = %d, want 0", p.Size())
	}
}

func TestPatVarSize(t *testing.T) {
	if (PatVar{Name: "x"}).Size() != 1 {
		t.Fatal("PatVar should bind exactly one variable")
	}
}

func TestTelescopeSizeCountsOnlyLocalDecl(t *testing.T) {
	tele := Telescope{
		LocalDecl{Name: "x", Type: TyType{}},
		LocalDef{Index: 0, Def: TmRefl{}},
		LocalDecl{Name: "y", Type: TyType{}},
	}
	if got := tele.Size(); got != 2 {
		t.Fatalf("Size() = %d, want 2 (LocalDef binds nothing)", got)
	}
}
