// Package scope gives names to the de Bruijn bookkeeping every other
// package in the core builds on: a bound variable is a Fin index, valid
// only while less than the scope size it was produced in. The package
// carries no knowledge of terms — that lets syntax, whnf, unify, and
// telescope all depend on it without depending on each other.
package scope

import "fmt"

// Fin is a de Bruijn index. Index 0 refers to the most recently introduced
// binding; index n-1 refers to the outermost one still in scope.
type Fin int

func (f Fin) String() string { return fmt.Sprintf("#%d", int(f)) }

// Valid reports whether f is a legal index into a scope of size n.
func (f Fin) Valid(n int) bool {
	return f >= 0 && int(f) < n
}

// Shift adds k to a de Bruijn index, used when a variable captured at scope
// n is read back under k additional enclosing binders.
func (f Fin) Shift(k int) Fin {
	return f + Fin(k)
}
