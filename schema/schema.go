/*
Package schema loads [forcetypes.Signature] declarations from YAML, so that signatures can be supplied at registration time without being built in code.

	syntax: native
	signatures:
	  - name: greet
	    params:
	      - name: foo
	        type: str
	      - name: bar
	        type: int
	        default: 3
	      - name: rest
	        kind: varargs
	        type: int
	    returns: none

The syntax may be "native" (the default), which is parsed with [typex.Registry.Parse], or "hcl", which is parsed with [hcltype.Parse].
A parameter kind may be "positional" (the default), "keyword", "varargs", or "kwargs".
A missing type or returns field leaves that part of the signature undeclared.
*/
package schema

import (
	"errors"
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/saylorsolutions/forcetypes"
	"github.com/saylorsolutions/forcetypes/hcltype"
	"github.com/saylorsolutions/forcetypes/typex"
	"gopkg.in/yaml.v3"
)

const (
	SyntaxNative = "native"
	SyntaxHCL    = "hcl"
)

var (
	ErrSchema  = errors.New("invalid schema")
	ErrNoValue = errors.New("no value")

	ErrAliasCycle    = errors.New("recursive alias")
	ErrTooManyValues = errors.New("document expands to too many values")
)

type fileDoc struct {
	Syntax     string         `yaml:"syntax"`
	Signatures []signatureDoc `yaml:"signatures"`
}

type signatureDoc struct {
	Name    string     `yaml:"name"`
	Params  []paramDoc `yaml:"params"`
	Returns *string    `yaml:"returns"`
}

type paramDoc struct {
	Name    string    `yaml:"name"`
	Kind    string    `yaml:"kind"`
	Type    *string   `yaml:"type"`
	Default yaml.Node `yaml:"default"`
}

var kinds = map[string]forcetypes.ParamKind{
	"":           forcetypes.Positional,
	"positional": forcetypes.Positional,
	"keyword":    forcetypes.KeywordOnly,
	"varargs":    forcetypes.VarPositional,
	"kwargs":     forcetypes.VarKeyword,
}

// Set is a collection of signatures loaded from a schema, in document order.
type Set struct {
	syntax string
	sigs   []forcetypes.Signature
}

// Syntax returns the type expression syntax used by the schema.
func (s *Set) Syntax() string {
	return s.syntax
}

// Signatures returns a copy of all loaded signatures.
func (s *Set) Signatures() []forcetypes.Signature {
	return slices.Clone(s.sigs)
}

// Lookup finds a signature by name.
func (s *Set) Lookup(name string) (forcetypes.Signature, bool) {
	idx := slices.IndexFunc(s.sigs, func(sig forcetypes.Signature) bool {
		return sig.Name == name
	})
	if idx < 0 {
		return forcetypes.Signature{}, false
	}
	return s.sigs[idx], true
}

// Names returns the names of all loaded signatures, in document order.
func (s *Set) Names() []string {
	names := make([]string, len(s.sigs))
	for i, sig := range s.sigs {
		names[i] = sig.Name
	}
	return names
}

// LoadFile loads a schema from the file at path.
func LoadFile(path string, reg *typex.Registry) (*Set, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = f.Close()
	}()
	return Load(f, reg)
}

// Load reads a schema document from r.
// The [typex.Registry] is used for the native syntax, and may be nil to use the built-in names.
//
// Every signature is validated with [forcetypes.Signature.Validate], and all problems are reported together.
func Load(r io.Reader, reg *typex.Registry) (*Set, error) {
	if reg == nil {
		reg = typex.DefaultRegistry()
	}
	var doc fileDoc
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty document", ErrSchema)
		}
		return nil, fmt.Errorf("%w: %w", ErrSchema, err)
	}

	var parse func(string) (typex.Expr, error)
	switch doc.Syntax {
	case "", SyntaxNative:
		doc.Syntax = SyntaxNative
		parse = reg.Parse
	case SyntaxHCL:
		parse = hcltype.Parse
	default:
		return nil, fmt.Errorf("%w: unknown syntax '%s'", ErrSchema, doc.Syntax)
	}

	var (
		set  = &Set{syntax: doc.Syntax}
		errs []error
		seen = map[string]bool{}
	)
	for i, sd := range doc.Signatures {
		sig, err := sd.build(parse)
		if err == nil {
			err = sig.Validate()
		}
		if err == nil && seen[sig.Name] {
			err = fmt.Errorf("duplicate signature")
		}
		if err != nil {
			errs = append(errs, fmt.Errorf("%w: signature %d (%s): %w", ErrSchema, i, sd.Name, err))
			continue
		}
		seen[sig.Name] = true
		set.sigs = append(set.sigs, sig)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return set, nil
}

func (sd signatureDoc) build(parse func(string) (typex.Expr, error)) (forcetypes.Signature, error) {
	sig := forcetypes.Signature{Name: sd.Name}
	if len(sd.Name) == 0 {
		return sig, errors.New("missing name")
	}
	for _, pd := range sd.Params {
		kind, ok := kinds[pd.Kind]
		if !ok {
			return sig, fmt.Errorf("parameter '%s': unknown kind '%s'", pd.Name, pd.Kind)
		}
		p := forcetypes.Param{Name: pd.Name, Kind: kind}
		if pd.Type != nil {
			expr, err := parse(*pd.Type)
			if err != nil {
				return sig, fmt.Errorf("parameter '%s': %w", pd.Name, err)
			}
			p.Type = expr
		}
		if pd.Default.Kind != 0 {
			val, err := newConverter().convert(&pd.Default)
			if err != nil {
				return sig, fmt.Errorf("parameter '%s' default: %w", pd.Name, err)
			}
			p = p.WithDefault(val)
		}
		sig.Params = append(sig.Params, p)
	}
	if sd.Returns != nil {
		expr, err := parse(*sd.Returns)
		if err != nil {
			return sig, fmt.Errorf("returns: %w", err)
		}
		sig.Return = expr
	}
	return sig, nil
}
