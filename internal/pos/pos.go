// Package pos carries source positions through the core for diagnostics.
// The core never reads source files itself; positions are attached by the
// (external) parser and merely threaded through Pos terms and errors.
package pos

import "fmt"

// Position is a single point in a source file, line and column both 1-based.
type Position struct {
	File   string
	Line   int
	Column int
}

// None is the zero Position, used when no location is available.
var None = Position{}

func (p Position) String() string {
	if p.Line == 0 {
		return "<unknown>"
	}
	if p.File == "" {
		return fmt.Sprintf("%d:%d", p.Line, p.Column)
	}
	return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column)
}

// Known reports whether p carries real location information.
func (p Position) Known() bool {
	return p.Line > 0
}
