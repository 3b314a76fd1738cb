package syntax

import (
	"fmt"
	"strings"
)

// Pattern is either a variable (binds one value) or a constructor pattern
// applied to a sequence of sub-patterns. Size reports how many variables a
// pattern binds in total, the runtime stand-in for the source's type-level
// pattern-size quantity (see spec §3).
type Pattern interface {
	fmt.Stringer
	isPattern()
	Size() int
}

// PatVar binds whatever value is matched to a single fresh variable.
type PatVar struct{ Name string }

func (PatVar) isPattern()     {}
func (PatVar) Size() int      { return 1 }
func (p PatVar) String() string { return p.Name }

// PatCon matches a specific data constructor and recurses into its
// arguments. Elems is ordered the same way the constructor's telescope is.
type PatCon struct {
	Name  string
	Elems PatList
}

func (PatCon) isPattern() {}
func (p PatCon) Size() int { return p.Elems.Size() }
func (p PatCon) String() string {
	if len(p.Elems) == 0 {
		return p.Name
	}
	return fmt.Sprintf("(%s %s)", p.Name, p.Elems)
}

// PatList is an ordered sequence of sub-patterns; its Size is the sum of its
// elements' sizes, since each may itself bind more than one variable.
type PatList []Pattern

func (ps PatList) Size() int {
	n := 0
	for _, p := range ps {
		n += p.Size()
	}
	return n
}

func (ps PatList) String() string {
	parts := make([]string, len(ps))
	for i, p := range ps {
		parts[i] = p.String()
	}
	return strings.Join(parts, " ")
}
