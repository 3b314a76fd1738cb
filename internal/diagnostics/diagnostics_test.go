package diagnostics

import (
	"errors"
	"testing"

	"github.com/sweirich/autoenv/internal/pos"
)

func TestAtOnlySetsUnknownPosition(t *testing.T) {
	e := New(CodeMismatch, "boom")
	inner := pos.Position{File: "a.pi", Line: 3, Column: 1}
	outer := pos.Position{File: "a.pi", Line: 10, Column: 1}

	e.At(inner)
	e.At(outer)

	if e.Pos != inner {
		t.Fatalf("At should keep the first (innermost) position, got %v", e.Pos)
	}
}

func TestIsMatchesCode(t *testing.T) {
	e := New(CodeArityMismatch, "bad arity")
	if !Is(e, CodeArityMismatch) {
		t.Fatal("Is should match the error's own code")
	}
	if Is(e, CodeMismatch) {
		t.Fatal("Is should not match a different code")
	}
	if Is(errors.New("plain"), CodeMismatch) {
		t.Fatal("Is should not match a non-diagnostics error")
	}
}

func TestWithPosIgnoresForeignErrors(t *testing.T) {
	foreign := errors.New("boom")
	if WithPos(foreign, pos.None) != foreign {
		t.Fatal("WithPos should pass through a non-diagnostics error unchanged")
	}
}
