package check

import (
	"github.com/sweirich/autoenv/internal/ctx"
	"github.com/sweirich/autoenv/internal/diagnostics"
	"github.com/sweirich/autoenv/internal/syntax"
)

// CheckModule checks every entry of mod in order against g, extending g as
// it goes so later entries can refer to earlier ones. It returns the same
// entries with any type declaration missing from a Def filled in by
// inference, decl immediately before its def. Checking stops at the first
// failing entry, tagged with that entry's name.
func CheckModule(g *ctx.Globals, mod syntax.Module) (syntax.Module, error) {
	out := make(syntax.Module, 0, len(mod))
	empty := ctx.Context{}

	for _, entry := range mod {
		switch e := entry.(type) {
		case syntax.DeclEntry:
			if g.HasEntry(e.Name) {
				return nil, diagnostics.New(diagnostics.CodeDuplicateBinding,
					"%q is already declared", e.Name).InDecl(e.Name)
			}
			if err := Check(g, empty, e.Type, syntax.TyType{}); err != nil {
				return nil, diagnostics.WithDecl(err, e.Name)
			}
			g.Declare(e.Name, e.Type)
			out = append(out, e)

		case syntax.DefEntry:
			hint, hasHint := g.Lookup(e.Name)
			if hasHint && hint.Def != nil {
				return nil, diagnostics.New(diagnostics.CodeDuplicateBinding,
					"%q is already defined", e.Name).InDecl(e.Name)
			}
			if hasHint {
				if err := Check(g, empty, e.Term, hint.Type); err != nil {
					return nil, diagnostics.WithDecl(err, e.Name)
				}
				g.Define(e.Name, hint.Type, e.Term)
				out = append(out, e)
				continue
			}
			ty, err := Infer(g, empty, e.Term)
			if err != nil {
				return nil, diagnostics.WithDecl(err, e.Name)
			}
			g.Define(e.Name, ty, e.Term)
			out = append(out, syntax.DeclEntry{Name: e.Name, Type: ty}, e)

		case syntax.DataEntry:
			checked, err := checkDataEntry(g, e.Data)
			if err != nil {
				return nil, diagnostics.WithDecl(err, e.Data.Name)
			}
			out = append(out, checked)

		default:
			return nil, diagnostics.New(diagnostics.CodeInternal, "unhandled module entry")
		}
	}
	return out, nil
}

func checkDataEntry(g *ctx.Globals, d syntax.DataDef) (syntax.ModuleEntry, error) {
	if g.HasEntry(d.Name) {
		return nil, diagnostics.New(diagnostics.CodeDuplicateBinding, "%q is already defined", d.Name)
	}
	if _, ok := g.LookupData(d.Name); ok {
		return nil, diagnostics.New(diagnostics.CodeDuplicateBinding, "datatype %q is already declared", d.Name)
	}
	seen := make(map[string]bool, len(d.Constructors))
	for _, con := range d.Constructors {
		if seen[con.Name] {
			return nil, diagnostics.New(diagnostics.CodeDuplicateConstructor,
				"constructor %q declared twice", con.Name)
		}
		seen[con.Name] = true
	}

	paramCtx, err := CheckTypeTele(g, ctx.Context{}, d.Params)
	if err != nil {
		return nil, err
	}
	if !g.DeclareData(d) {
		return nil, diagnostics.New(diagnostics.CodeDuplicateBinding, "datatype %q is already declared", d.Name)
	}
	for _, con := range d.Constructors {
		if _, err := CheckTypeTele(g, paramCtx, con.Args); err != nil {
			return nil, err
		}
	}
	return syntax.DataEntry{Data: d}, nil
}
