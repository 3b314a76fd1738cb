package syntax

import "testing"

func TestInstantiateSubstitutesBoundVariable(t *testing.T) {
	// \x. \y. x, applied (conceptually) to some closed term `u`: the outer
	// bind's body is `\y. x`, i.e. Lam(Bind("y", Var(1))).
	body := Lam{Body: Bind{Name: "y", Body: Var(1)}}
	b := Bind{Name: "x", Body: body}

	u := Global{Name: "u"}
	got := Instantiate(b, u)

	want := Lam{Body: Bind{Name: "y", Body: Global{Name: "u"}}}
	if got.String() != want.String() {
		t.Fatalf("Instantiate: got %v, want %v", got, want)
	}
}

func TestInstantiateShiftsOtherVariablesDown(t *testing.T) {
	// Under one extra binder (Var(0) is fresh, Var(1) is the bind's own
	// variable, Var(2) refers to something outside both): instantiating
	// should leave Var(0) alone but turn the reference to the bind's
	// variable into u, and shift Var(2) down to Var(1).
	body := Lam{Body: Bind{Name: "y", Body: App{Fn: Var(0), Arg: App{Fn: Var(1), Arg: Var(2)}}}}
	b := Bind{Name: "x", Body: body}
	u := Global{Name: "u"}

	got := Instantiate(b, u)
	want := Lam{Body: Bind{Name: "y", Body: App{Fn: Var(0), Arg: App{Fn: Global{Name: "u"}, Arg: Var(1)}}}}
	if got.String() != want.String() {
		t.Fatalf("Instantiate: got %v, want %v", got, want)
	}
}

func TestShiftLeavesClosedTermsUnchanged(t *testing.T) {
	closed := Pi{Domain: TyType{}, Body: Bind{Name: "A", Body: Var(0)}}
	got := Shift(closed, 3)
	if got.String() != closed.String() {
		t.Fatalf("Shift of closed term changed: got %v, want %v", got, closed)
	}
}

func TestShiftMovesFreeVariables(t *testing.T) {
	got := Shift(Var(2), 3)
	if got.(Var) != Var(5) {
		t.Fatalf("Shift(Var(2), 3) = %v, want Var(5)", got)
	}
}

func TestSubstBlockReplacesContiguousRange(t *testing.T) {
	// Var(0), Var(1) are the block being replaced by [p0, p1] (p0 outermost);
	// Var(0) is innermost so it takes the last param.
	term := App{Fn: Var(0), Arg: Var(1)}
	p0 := Global{Name: "p0"}
	p1 := Global{Name: "p1"}

	got := SubstBlock(term, 0, []Term{p0, p1})
	want := App{Fn: p1, Arg: p0}
	if got.String() != want.String() {
		t.Fatalf("SubstBlock: got %v, want %v", got, want)
	}
}

func TestSubstBlockClosesScopeGap(t *testing.T) {
	// A variable above the replaced block of size 2 should shift down by 2.
	got := SubstBlock(Var(5), 0, []Term{Global{Name: "a"}, Global{Name: "b"}})
	if got.(Var) != Var(3) {
		t.Fatalf("SubstBlock: got %v, want Var(3)", got)
	}
}
