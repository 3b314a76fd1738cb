// Package ctx holds the two pieces of state threaded through checking: the
// local typing Context (grown and discarded per judgment) and the Globals
// signature (grown monotonically as a module is checked).
package ctx

import (
	"github.com/sweirich/autoenv/internal/scope"
	"github.com/sweirich/autoenv/internal/syntax"
)

// Context is a local typing context. Types is stored outermost-first, so
// the type of Var(0) is the last entry. Every entry is kept well-scoped in
// the full context (Extend shifts the existing entries and the new one past
// the new binding), so lookups are a plain index.
type Context struct {
	Types []syntax.Term
}

// Size is the number of variables bound by the context, i.e. its scope.
func (c Context) Size() int { return len(c.Types) }

// Get returns the type of the variable at Fin, already well-scoped in the
// full context.
func (c Context) Get(v scope.Fin) (syntax.Term, bool) {
	if !v.Valid(len(c.Types)) {
		return nil, false
	}
	// Types is stored outermost-first; Var(0) is the most recently added.
	return c.Types[len(c.Types)-1-int(v)], true
}

// Extend returns a new context with one more variable, of type ty, bound
// innermost (becomes Var(0)). ty is well-scoped in c.
func (c Context) Extend(ty syntax.Term) Context {
	types := make([]syntax.Term, len(c.Types)+1)
	for i, t := range c.Types {
		types[i] = syntax.Shift(t, 1)
	}
	types[len(c.Types)] = syntax.Shift(ty, 1)
	return Context{Types: types}
}

// GlobalDef is one entry of the top-level signature: a required type and an
// optional definition (absent for a forward Decl with no Def yet).
type GlobalDef struct {
	Type syntax.Term
	Def  syntax.Term // nil if undefined
}

// ScopedConstructorDef pairs a constructor with the parameter telescope of
// the datatype it belongs to, the shape needed to instantiate its argument
// telescope against concrete type parameters (see internal/telescope).
type ScopedConstructorDef struct {
	TyName string
	Params syntax.Telescope
	Con    syntax.ConstructorDef
}

// Globals is the module-wide signature: declared/defined names, datatypes,
// and a constructor-name index used to resolve an unannotated DataCon.
type Globals struct {
	defs  map[string]*GlobalDef
	datas map[string]syntax.DataDef
	// cons indexes every constructor name to the datatypes it could belong
	// to; more than one entry means the name is ambiguous without an
	// enclosing TyCon annotation.
	cons map[string][]ScopedConstructorDef
}

// New returns an empty signature.
func New() *Globals {
	return &Globals{
		defs:  make(map[string]*GlobalDef),
		datas: make(map[string]syntax.DataDef),
		cons:  make(map[string][]ScopedConstructorDef),
	}
}

// Lookup returns the signature entry for a top-level name.
func (g *Globals) Lookup(name string) (*GlobalDef, bool) {
	e, ok := g.defs[name]
	return e, ok
}

// HasEntry reports whether name has been declared or defined, the check
// CheckModule uses to reject a duplicate Decl or datatype name.
func (g *Globals) HasEntry(name string) bool {
	_, ok := g.defs[name]
	return ok
}

// Declare records a type hint for name, without a definition. Fails if an
// entry with any content already exists.
func (g *Globals) Declare(name string, ty syntax.Term) bool {
	if g.HasEntry(name) {
		return false
	}
	g.defs[name] = &GlobalDef{Type: ty}
	return true
}

// Define records name's definition, reusing a prior hint's type if there is
// one and otherwise recording ty as the inferred type. Fails only if name
// already has a Def.
func (g *Globals) Define(name string, ty, term syntax.Term) bool {
	e, ok := g.defs[name]
	if ok && e.Def != nil {
		return false
	}
	if ok {
		e.Def = term
		return true
	}
	g.defs[name] = &GlobalDef{Type: ty, Def: term}
	return true
}

// LookupData returns a datatype's definition by its type-constructor name.
func (g *Globals) LookupData(name string) (syntax.DataDef, bool) {
	d, ok := g.datas[name]
	return d, ok
}

// DeclareData records a new datatype and indexes its constructors. Fails if
// the type name is already a global entry or a datatype.
func (g *Globals) DeclareData(d syntax.DataDef) bool {
	if g.HasEntry(d.Name) {
		return false
	}
	if _, ok := g.datas[d.Name]; ok {
		return false
	}
	g.datas[d.Name] = d
	for _, c := range d.Constructors {
		g.cons[c.Name] = append(g.cons[c.Name], ScopedConstructorDef{
			TyName: d.Name,
			Params: d.Params,
			Con:    c,
		})
	}
	return true
}

// LookupConstructor returns every datatype a constructor name could belong
// to. Infer accepts the constructor unannotated only when exactly one of
// the results belongs to a datatype with no parameters.
func (g *Globals) LookupConstructor(name string) []ScopedConstructorDef {
	return g.cons[name]
}

// LookupConstructorIn returns the scoped definition for a constructor known
// to belong to a specific type constructor, used once a TyCon annotation
// disambiguates which datatype is meant.
func (g *Globals) LookupConstructorIn(tyName, conName string) (ScopedConstructorDef, bool) {
	for _, sc := range g.cons[conName] {
		if sc.TyName == tyName {
			return sc, true
		}
	}
	return ScopedConstructorDef{}, false
}
