// Package golden provides a YAML fixture format for the checker's test
// suite: terms, patterns, and datatypes written as tagged YAML nodes
// instead of Go struct literals, so a table of checking scenarios can live
// in data rather than code. There is no surface-syntax parser in this
// core, so this is the only textual
// input format the checker accepts — deliberately minimal, and never
// loaded from anywhere but the test suite.
package golden

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/sweirich/autoenv/internal/check"
	"github.com/sweirich/autoenv/internal/ctx"
	"github.com/sweirich/autoenv/internal/syntax"
)

// Term is the YAML-facing surface form of syntax.Term. Kind decides which
// of the other fields Build reads; fields that Kind does not use are
// ignored, not rejected.
type Term struct {
	Kind string `yaml:"kind"`

	Var  *int   `yaml:"var,omitempty"`
	Name string `yaml:"name,omitempty"`

	Domain *Term `yaml:"domain,omitempty"`
	Body   *Term `yaml:"body,omitempty"`

	Fn  *Term `yaml:"fn,omitempty"`
	Arg *Term `yaml:"arg,omitempty"`

	Of *Term `yaml:"of,omitempty"` // Ann.Term, Contra.Proof
	Ty *Term `yaml:"ty,omitempty"` // Ann.Type

	Rhs *Term `yaml:"rhs,omitempty"` // Let.Rhs

	Params []Term `yaml:"params,omitempty"` // TyCon.Params
	Args   []Term `yaml:"args,omitempty"`   // DataCon.Args

	A *Term `yaml:"a,omitempty"` // TyEq.A, Subst.Body
	B *Term `yaml:"b,omitempty"` // TyEq.B, Subst.Proof

	Scrutinee *Term     `yaml:"scrutinee,omitempty"`
	Branches  []Branch  `yaml:"branches,omitempty"`
}

// Branch is the YAML form of syntax.Branch.
type Branch struct {
	Pat  Pattern `yaml:"pat"`
	Body Term    `yaml:"body"`
}

// Pattern is the YAML form of syntax.Pattern.
type Pattern struct {
	Var   string    `yaml:"var,omitempty"`
	Con   string    `yaml:"con,omitempty"`
	Elems []Pattern `yaml:"elems,omitempty"`
}

// Build converts a Pattern fixture into syntax.Pattern.
func (p Pattern) Build() (syntax.Pattern, error) {
	if p.Con == "" {
		if p.Var == "" {
			return nil, fmt.Errorf("golden: pattern needs either var or con")
		}
		return syntax.PatVar{Name: p.Var}, nil
	}
	elems := make(syntax.PatList, len(p.Elems))
	for i, e := range p.Elems {
		sp, err := e.Build()
		if err != nil {
			return nil, err
		}
		elems[i] = sp
	}
	return syntax.PatCon{Name: p.Con, Elems: elems}, nil
}

// Build converts a Term fixture into syntax.Term.
func (t *Term) Build() (syntax.Term, error) {
	if t == nil {
		return nil, fmt.Errorf("golden: nil term")
	}
	switch t.Kind {
	case "var":
		if t.Var == nil {
			return nil, fmt.Errorf("golden: var term missing 'var' index")
		}
		return syntax.Var(*t.Var), nil
	case "global":
		return syntax.Global{Name: t.Name}, nil
	case "type":
		return syntax.TyType{}, nil
	case "pi":
		dom, err := t.Domain.Build()
		if err != nil {
			return nil, err
		}
		body, err := t.Body.Build()
		if err != nil {
			return nil, err
		}
		return syntax.Pi{Domain: dom, Body: syntax.Bind{Name: t.Name, Body: body}}, nil
	case "lam":
		body, err := t.Body.Build()
		if err != nil {
			return nil, err
		}
		return syntax.Lam{Body: syntax.Bind{Name: t.Name, Body: body}}, nil
	case "app":
		fn, err := t.Fn.Build()
		if err != nil {
			return nil, err
		}
		arg, err := t.Arg.Build()
		if err != nil {
			return nil, err
		}
		return syntax.App{Fn: fn, Arg: arg}, nil
	case "ann":
		term, err := t.Of.Build()
		if err != nil {
			return nil, err
		}
		ty, err := t.Ty.Build()
		if err != nil {
			return nil, err
		}
		return syntax.Ann{Term: term, Type: ty}, nil
	case "let":
		rhs, err := t.Rhs.Build()
		if err != nil {
			return nil, err
		}
		body, err := t.Body.Build()
		if err != nil {
			return nil, err
		}
		return syntax.Let{Rhs: rhs, Body: syntax.Bind{Name: t.Name, Body: body}}, nil
	case "tycon":
		params, err := buildAll(t.Params)
		if err != nil {
			return nil, err
		}
		return syntax.TyCon{Name: t.Name, Params: params}, nil
	case "datacon":
		args, err := buildAll(t.Args)
		if err != nil {
			return nil, err
		}
		return syntax.DataCon{Name: t.Name, Args: args}, nil
	case "tyeq":
		a, err := t.A.Build()
		if err != nil {
			return nil, err
		}
		b, err := t.B.Build()
		if err != nil {
			return nil, err
		}
		return syntax.TyEq{A: a, B: b}, nil
	case "refl":
		return syntax.TmRefl{}, nil
	case "subst":
		body, err := t.A.Build()
		if err != nil {
			return nil, err
		}
		proof, err := t.B.Build()
		if err != nil {
			return nil, err
		}
		return syntax.Subst{Body: body, Proof: proof}, nil
	case "contra":
		proof, err := t.Of.Build()
		if err != nil {
			return nil, err
		}
		return syntax.Contra{Proof: proof}, nil
	case "trustme":
		return syntax.TrustMe{}, nil
	case "printme":
		return syntax.PrintMe{}, nil
	case "case":
		scrut, err := t.Scrutinee.Build()
		if err != nil {
			return nil, err
		}
		branches := make([]syntax.Branch, len(t.Branches))
		for i, br := range t.Branches {
			pat, err := br.Pat.Build()
			if err != nil {
				return nil, err
			}
			body, err := br.Body.Build()
			if err != nil {
				return nil, err
			}
			branches[i] = syntax.Branch{Pat: pat, Body: body}
		}
		return syntax.Case{Scrutinee: scrut, Branches: branches}, nil
	default:
		return nil, fmt.Errorf("golden: unknown term kind %q", t.Kind)
	}
}

func buildAll(ts []Term) ([]syntax.Term, error) {
	out := make([]syntax.Term, len(ts))
	for i := range ts {
		st, err := ts[i].Build()
		if err != nil {
			return nil, err
		}
		out[i] = st
	}
	return out, nil
}

// TeleEntry is the YAML form of a syntax.TeleEntry.
type TeleEntry struct {
	Name  string `yaml:"name,omitempty"`
	Type  *Term  `yaml:"type,omitempty"`
	Index *int   `yaml:"index,omitempty"`
	Def   *Term  `yaml:"def,omitempty"`
}

// Build converts a TeleEntry fixture into syntax.TeleEntry.
func (e TeleEntry) Build() (syntax.TeleEntry, error) {
	if e.Def != nil {
		def, err := e.Def.Build()
		if err != nil {
			return nil, err
		}
		index := 0
		if e.Index != nil {
			index = *e.Index
		}
		return syntax.LocalDef{Index: index, Def: def}, nil
	}
	ty, err := e.Type.Build()
	if err != nil {
		return nil, err
	}
	return syntax.LocalDecl{Name: e.Name, Type: ty}, nil
}

// Constructor is the YAML form of a syntax.ConstructorDef.
type Constructor struct {
	Name string      `yaml:"name"`
	Args []TeleEntry `yaml:"args,omitempty"`
}

// Datatype is the YAML form of a syntax.DataDef.
type Datatype struct {
	Name         string        `yaml:"name"`
	Params       []TeleEntry   `yaml:"params,omitempty"`
	Constructors []Constructor `yaml:"constructors"`
}

// Build converts a Datatype fixture into syntax.DataDef.
func (d Datatype) Build() (syntax.DataDef, error) {
	params, err := buildTele(d.Params)
	if err != nil {
		return syntax.DataDef{}, err
	}
	cons := make([]syntax.ConstructorDef, len(d.Constructors))
	for i, c := range d.Constructors {
		args, err := buildTele(c.Args)
		if err != nil {
			return syntax.DataDef{}, err
		}
		cons[i] = syntax.ConstructorDef{Name: c.Name, Args: args}
	}
	return syntax.DataDef{Name: d.Name, Params: params, Constructors: cons}, nil
}

func buildTele(entries []TeleEntry) (syntax.Telescope, error) {
	out := make(syntax.Telescope, len(entries))
	for i, e := range entries {
		te, err := e.Build()
		if err != nil {
			return nil, err
		}
		out[i] = te
	}
	return out, nil
}

// Fixture is one checking scenario: a set of datatypes to register first,
// a term, and either the type it should check against or an inference.
type Fixture struct {
	Datatypes []Datatype `yaml:"datatypes,omitempty"`
	Term      Term       `yaml:"term"`
	Type      *Term      `yaml:"type,omitempty"`
	WantError string     `yaml:"wantError,omitempty"`
}

// Parse decodes a single fixture from YAML source.
func Parse(data []byte) (Fixture, error) {
	var f Fixture
	if err := yaml.Unmarshal(data, &f); err != nil {
		return Fixture{}, fmt.Errorf("golden: parsing fixture: %w", err)
	}
	return f, nil
}

// Run registers the fixture's datatypes in a fresh Globals, then checks
// (or infers, if Type is absent) its term. It returns the resulting error,
// if any, for the caller to compare against WantError.
func Run(f Fixture) error {
	g := ctx.New()
	if len(f.Datatypes) > 0 {
		entries := make(syntax.Module, len(f.Datatypes))
		for i, d := range f.Datatypes {
			dd, err := d.Build()
			if err != nil {
				return err
			}
			entries[i] = syntax.DataEntry{Data: dd}
		}
		if _, err := check.CheckModule(g, entries); err != nil {
			return err
		}
	}
	term, err := f.Term.Build()
	if err != nil {
		return err
	}
	if f.Type != nil {
		ty, err := f.Type.Build()
		if err != nil {
			return err
		}
		return check.Check(g, ctx.Context{}, term, ty)
	}
	_, err = check.Infer(g, ctx.Context{}, term)
	return err
}
