package forcetypes

import (
	"fmt"

	"github.com/saylorsolutions/forcetypes/typex"
)

// ParamKind determines how arguments are bound to a [Param].
type ParamKind int

const (
	Positional    ParamKind = iota // Positional parameters may be bound by position or by keyword.
	VarPositional                  // VarPositional collects extra positional arguments.
	KeywordOnly                    // KeywordOnly parameters may only be bound by keyword.
	VarKeyword                     // VarKeyword collects extra keyword arguments.
)

func (k ParamKind) String() string {
	switch k {
	case Positional:
		return "positional"
	case VarPositional:
		return "varargs"
	case KeywordOnly:
		return "keyword"
	case VarKeyword:
		return "kwargs"
	default:
		return fmt.Sprintf("ParamKind(%d)", int(k))
	}
}

// Param is a single declared parameter of a [Signature].
type Param struct {
	Name string
	// Type is the declared type expression for the argument.
	// A nil Type means that the parameter is undeclared, and will not be checked.
	//
	// For VarPositional parameters Type applies to each extra argument, and for VarKeyword it applies to each extra keyword value.
	Type       typex.Expr
	Kind       ParamKind
	Default    any
	HasDefault bool
}

// Arg creates a [Positional] [Param].
func Arg(name string, typ typex.Expr) Param {
	return Param{Name: name, Type: typ, Kind: Positional}
}

// KeywordArg creates a [KeywordOnly] [Param].
func KeywordArg(name string, typ typex.Expr) Param {
	return Param{Name: name, Type: typ, Kind: KeywordOnly}
}

// VarArgs creates a [VarPositional] [Param].
func VarArgs(name string, typ typex.Expr) Param {
	return Param{Name: name, Type: typ, Kind: VarPositional}
}

// VarKwargs creates a [VarKeyword] [Param].
func VarKwargs(name string, typ typex.Expr) Param {
	return Param{Name: name, Type: typ, Kind: VarKeyword}
}

// WithDefault returns a copy of the [Param] that is no longer required.
// Default values are not type checked.
func (p Param) WithDefault(val any) Param {
	p.Default = val
	p.HasDefault = true
	return p
}

// expr returns the expression that a bound argument for this parameter is checked against.
func (p Param) expr() typex.Expr {
	if p.Type == nil {
		return nil
	}
	switch p.Kind {
	case VarPositional:
		return typex.TupleOf(p.Type)
	case VarKeyword:
		return typex.MappingOf(typex.String, p.Type)
	default:
		return p.Type
	}
}

// Signature declares the parameters and return type of a callable.
type Signature struct {
	Name   string
	Params []Param
	// Return is the declared return type.
	// A nil Return means that the return value will not be checked, use [typex.None] to require a nil return value.
	Return typex.Expr
}

// Param finds a declared parameter by name.
func (s Signature) Param(name string) (Param, bool) {
	for _, p := range s.Params {
		if p.Name == name {
			return p, true
		}
	}
	return Param{}, false
}

// Validate reports all problems with the [Signature] as a [*SignatureError].
//
// Parameters must be ordered by kind: [Positional], [VarPositional], [KeywordOnly], and then [VarKeyword].
// Names must be unique and non-empty, and a required positional parameter may not follow one with a default.
func (s Signature) Validate() error {
	var (
		errs       = &SignatureError{Func: s.Name}
		seen       = map[string]bool{}
		lastKind   = Positional
		hadDefault bool
	)
	for i, p := range s.Params {
		label := p.Name
		if len(label) == 0 {
			label = fmt.Sprintf("#%d", i)
			errs.add("parameter %s has an empty name", label)
		} else if seen[p.Name] {
			errs.add("duplicate parameter '%s'", p.Name)
		}
		seen[p.Name] = true

		switch p.Kind {
		case Positional, KeywordOnly, VarPositional, VarKeyword:
		default:
			errs.add("parameter '%s' has unknown kind %s", label, p.Kind)
			continue
		}
		if p.Kind < lastKind {
			errs.add("%s parameter '%s' may not follow a %s parameter", p.Kind, label, lastKind)
		}
		if p.Kind == lastKind && i > 0 && (p.Kind == VarPositional || p.Kind == VarKeyword) {
			errs.add("more than one %s parameter", p.Kind)
		}
		if p.Kind > lastKind {
			lastKind = p.Kind
		}

		switch p.Kind {
		case Positional:
			if p.HasDefault {
				hadDefault = true
			} else if hadDefault {
				errs.add("required parameter '%s' follows a parameter with a default", label)
			}
		case VarPositional, VarKeyword:
			if p.HasDefault {
				errs.add("%s parameter '%s' may not have a default", p.Kind, label)
			}
		}
	}
	return errs.result()
}
