package scope

import "testing"

func TestFinValid(t *testing.T) {
	if !Fin(0).Valid(1) {
		t.Fatal("Fin(0) should be valid in scope 1")
	}
	if Fin(1).Valid(1) {
		t.Fatal("Fin(1) should not be valid in scope 1")
	}
	if Fin(-1).Valid(5) {
		t.Fatal("negative index should never be valid")
	}
}

func TestFinShift(t *testing.T) {
	if got := Fin(2).Shift(3); got != Fin(5) {
		t.Fatalf("Fin(2).Shift(3) = %v, want 5", got)
	}
}
