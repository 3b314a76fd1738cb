package syntax

import "fmt"

// TeleEntry is one entry of a Telescope: either a fresh binding with a type,
// or a let-bound definition carried along for refinement during pattern
// matching (see internal/telescope).
type TeleEntry interface {
	fmt.Stringer
	isTeleEntry()
}

// LocalDecl introduces a fresh variable of the given type. Name is for
// display only.
type LocalDecl struct {
	Name string
	Type Term
}

func (LocalDecl) isTeleEntry() {}
func (d LocalDecl) String() string { return fmt.Sprintf("(%s : %s)", d.Name, d.Type) }

// LocalDef records that the variable at Index is known, by construction, to
// equal Def. A telescope entry like this arises from matching a datatype's
// indices against a constructor's result type.
type LocalDef struct {
	Index int
	Def   Term
}

func (LocalDef) isTeleEntry() {}
func (d LocalDef) String() string { return fmt.Sprintf("(#%d = %s)", d.Index, d.Def) }

// Telescope is an ordered sequence of entries, each well-scoped in the
// scope extended by all the entries before it. It is used both for a
// datatype's parameters and for a constructor's argument list.
type Telescope []TeleEntry

func (tele Telescope) String() string {
	s := ""
	for _, e := range tele {
		s += " " + e.String()
	}
	return s
}

// Size returns how many variables the telescope binds: LocalDecl entries
// each bind one; LocalDef entries bind nothing.
func (tele Telescope) Size() int {
	n := 0
	for _, e := range tele {
		if _, ok := e.(LocalDecl); ok {
			n++
		}
	}
	return n
}
