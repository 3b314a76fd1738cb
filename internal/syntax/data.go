package syntax

import "fmt"

// ConstructorDef is one data constructor belonging to a DataDef: its name
// and the telescope of arguments it takes, scoped under the datatype's own
// parameter telescope.
type ConstructorDef struct {
	Name string
	Args Telescope
}

func (c ConstructorDef) String() string { return fmt.Sprintf("%s%s", c.Name, c.Args) }

// DataDef is a top-level inductive datatype declaration: a name, a
// parameter telescope, and the constructors that build it.
type DataDef struct {
	Name         string
	Params       Telescope
	Constructors []ConstructorDef
}

func (d DataDef) String() string {
	s := fmt.Sprintf("data %s%s where", d.Name, d.Params)
	for _, c := range d.Constructors {
		s += fmt.Sprintf("\n  %s", c)
	}
	return s
}

// Constructor looks up one of the datatype's constructors by name.
func (d DataDef) Constructor(name string) (ConstructorDef, bool) {
	for _, c := range d.Constructors {
		if c.Name == name {
			return c, true
		}
	}
	return ConstructorDef{}, false
}
