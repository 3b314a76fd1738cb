package syntax

import "fmt"

// ModuleEntry is one top-level entry of a module: a type signature, a term
// definition, or a datatype declaration. A module is checked entry by
// entry, in order, each extending the global signature the following
// entries are checked against.
type ModuleEntry interface {
	fmt.Stringer
	isModuleEntry()
	EntryName() string
}

// DeclEntry declares the type of a top-level name, ahead of its Def. A
// Global may be referenced (for a recursive definition) once its Decl has
// been processed, even before its Def is.
type DeclEntry struct {
	Name string
	Type Term
}

func (DeclEntry) isModuleEntry()     {}
func (d DeclEntry) EntryName() string  { return d.Name }
func (d DeclEntry) String() string   { return fmt.Sprintf("%s : %s", d.Name, d.Type) }

// DefEntry gives the term definition of a previously (or concurrently)
// declared top-level name.
type DefEntry struct {
	Name string
	Term Term
}

func (DefEntry) isModuleEntry()    {}
func (d DefEntry) EntryName() string { return d.Name }
func (d DefEntry) String() string  { return fmt.Sprintf("%s = %s", d.Name, d.Term) }

// DataEntry declares a datatype, making both the type constructor and all
// of its data constructors available to subsequent entries.
type DataEntry struct {
	Data DataDef
}

func (DataEntry) isModuleEntry()    {}
func (d DataEntry) EntryName() string { return d.Data.Name }
func (d DataEntry) String() string  { return d.Data.String() }

// Module is an ordered list of top-level entries, checked left to right.
type Module []ModuleEntry
