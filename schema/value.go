package schema

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/saylorsolutions/forcetypes/typex"
	"gopkg.in/yaml.v3"
)

// DecodeValue decodes a single YAML document into a Go value suitable for checking.
//
// Mappings are decoded as [*typex.OrderedMap] to preserve document order, sequences as []any, and scalars follow YAML's resolution rules (int, float64, bool, string, or nil).
// [ErrNoValue] is returned if r contains no document.
func DecodeValue(r io.Reader) (any, error) {
	var node yaml.Node
	if err := yaml.NewDecoder(r).Decode(&node); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrNoValue
		}
		return nil, err
	}
	return newConverter().convert(&node)
}

// ParseValue is the same as [DecodeValue], but reads from a string.
func ParseValue(src string) (any, error) {
	return DecodeValue(strings.NewReader(src))
}

// ParseArgs decodes a YAML sequence as positional arguments.
// An empty string returns no arguments.
func ParseArgs(src string) ([]any, error) {
	if len(strings.TrimSpace(src)) == 0 {
		return nil, nil
	}
	val, err := ParseValue(src)
	if err != nil {
		return nil, err
	}
	args, ok := val.([]any)
	if !ok {
		return nil, fmt.Errorf("expected a sequence of arguments, got %s", typex.TypeName(val))
	}
	return args, nil
}

// ParseKwargs decodes a YAML mapping with string keys as keyword arguments.
// An empty string returns no arguments.
func ParseKwargs(src string) (map[string]any, error) {
	if len(strings.TrimSpace(src)) == 0 {
		return nil, nil
	}
	val, err := ParseValue(src)
	if err != nil {
		return nil, err
	}
	m, ok := val.(*typex.OrderedMap)
	if !ok {
		return nil, fmt.Errorf("expected a mapping of keyword arguments, got %s", typex.TypeName(val))
	}
	kwargs := make(map[string]any, m.Len())
	var keyErr error
	m.Range(func(key, value any) bool {
		name, ok := key.(string)
		if !ok {
			keyErr = fmt.Errorf("keyword argument names must be strings, got %s", typex.Repr(key))
			return false
		}
		kwargs[name] = value
		return true
	})
	if keyErr != nil {
		return nil, keyErr
	}
	return kwargs, nil
}

// MaxValues limits the number of values a single document may expand to, counting each alias expansion again.
const MaxValues = 100_000

type converter struct {
	expanding map[*yaml.Node]bool
	values    int
}

func newConverter() *converter {
	return &converter{expanding: map[*yaml.Node]bool{}}
}

func (c *converter) convert(node *yaml.Node) (any, error) {
	c.values++
	if c.values > MaxValues {
		return nil, fmt.Errorf("line %d: %w (more than %d)", node.Line, ErrTooManyValues, MaxValues)
	}
	switch node.Kind {
	case yaml.DocumentNode:
		if len(node.Content) == 0 {
			return nil, nil
		}
		return c.convert(node.Content[0])
	case yaml.AliasNode:
		if node.Alias == nil {
			return nil, fmt.Errorf("line %d: unknown anchor '%s'", node.Line, node.Value)
		}
		if c.expanding[node.Alias] {
			return nil, fmt.Errorf("line %d: %w: anchor '%s' contains itself", node.Line, ErrAliasCycle, node.Value)
		}
		return c.convert(node.Alias)
	case yaml.ScalarNode:
		var val any
		if err := node.Decode(&val); err != nil {
			return nil, fmt.Errorf("line %d: %w", node.Line, err)
		}
		return val, nil
	case yaml.SequenceNode:
		c.expanding[node] = true
		defer delete(c.expanding, node)
		seq := make([]any, len(node.Content))
		for i, child := range node.Content {
			val, err := c.convert(child)
			if err != nil {
				return nil, err
			}
			seq[i] = val
		}
		return seq, nil
	case yaml.MappingNode:
		c.expanding[node] = true
		defer delete(c.expanding, node)
		m := typex.NewOrderedMap()
		for i := 0; i+1 < len(node.Content); i += 2 {
			key, err := c.convert(node.Content[i])
			if err != nil {
				return nil, err
			}
			val, err := c.convert(node.Content[i+1])
			if err != nil {
				return nil, err
			}
			m.Set(key, val)
		}
		return m, nil
	default:
		return nil, fmt.Errorf("line %d: unsupported YAML node kind %d", node.Line, node.Kind)
	}
}
