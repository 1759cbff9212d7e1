package schema

import (
	"strings"
	"testing"
	"time"

	"github.com/saylorsolutions/forcetypes"
	"github.com/saylorsolutions/forcetypes/typex"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFile(t *testing.T) {
	set, err := LoadFile("testdata/signatures.yaml", nil)
	require.NoError(t, err)
	assert.Equal(t, SyntaxNative, set.Syntax())
	assert.Equal(t, []string{"greet", "tally"}, set.Names())
	assert.Len(t, set.Signatures(), 2)

	greet, ok := set.Lookup("greet")
	require.True(t, ok)
	require.Len(t, greet.Params, 5)
	assert.Equal(t, "string", greet.Params[0].Type.String())
	assert.Equal(t, forcetypes.Positional, greet.Params[1].Kind)
	assert.True(t, greet.Params[1].HasDefault)
	assert.Equal(t, 3, greet.Params[1].Default)
	assert.Equal(t, forcetypes.VarPositional, greet.Params[2].Kind)
	assert.Equal(t, forcetypes.KeywordOnly, greet.Params[3].Kind)
	assert.Equal(t, false, greet.Params[3].Default)
	assert.Equal(t, forcetypes.VarKeyword, greet.Params[4].Kind)
	assert.Nil(t, greet.Params[4].Type)
	assert.Equal(t, typex.String, greet.Return)

	tally, ok := set.Lookup("tally")
	require.True(t, ok)
	assert.Equal(t, "map[string][]int", tally.Params[0].Type.String())
	assert.Equal(t, typex.None, tally.Return)

	_, ok = set.Lookup("missing")
	assert.False(t, ok)

	_, err = LoadFile("testdata/missing.yaml", nil)
	assert.Error(t, err)
}

func TestLoad_HCL(t *testing.T) {
	set, err := Load(strings.NewReader(`
syntax: hcl
signatures:
  - name: tag
    params:
      - name: labels
        type: map(string)
      - name: counts
        type: list(number)
`), nil)
	require.NoError(t, err)
	sig, ok := set.Lookup("tag")
	require.True(t, ok)
	assert.Equal(t, "map[string]string", sig.Params[0].Type.String())
	assert.Equal(t, "[]number", sig.Params[1].Type.String())
	assert.Nil(t, sig.Return)
}

func TestLoad_Registry(t *testing.T) {
	reg := typex.DefaultRegistry().RegisterClass(typex.Of[time.Duration]())
	set, err := Load(strings.NewReader(`
signatures:
  - name: wait
    params:
      - name: d
        type: time.Duration
`), reg)
	require.NoError(t, err)
	sig, _ := set.Lookup("wait")
	assert.Nil(t, typex.Check(time.Second, sig.Params[0].Type))
}

func TestLoad_Errors(t *testing.T) {
	tests := map[string]string{
		"Empty":        ``,
		"Bad syntax":   "syntax: xml\nsignatures: []",
		"Missing name": "signatures:\n  - params: []",
		"Bad kind":     "signatures:\n  - name: f\n    params:\n      - name: a\n        kind: splat",
		"Bad type":     "signatures:\n  - name: f\n    params:\n      - name: a\n        type: 'list['",
		"Bad return":   "signatures:\n  - name: f\n    returns: widget",
		"Invalid":      "signatures:\n  - name: f\n    params:\n      - name: a\n      - name: a",
		"Duplicate":    "signatures:\n  - name: f\n  - name: f",
		"Bad HCL":      "syntax: hcl\nsignatures:\n  - name: f\n    returns: widget",
		"Not YAML":     "signatures: [",
	}
	for name, src := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Load(strings.NewReader(src), nil)
			assert.ErrorIs(t, err, ErrSchema)
		})
	}

	_, err := Load(strings.NewReader("signatures:\n  - name: f\n    params:\n      - name: a\n      - name: a"), nil)
	assert.ErrorIs(t, err, forcetypes.ErrInvalidSignature)
}

func TestLoad_WrapEndToEnd(t *testing.T) {
	set, err := LoadFile("testdata/signatures.yaml", nil)
	require.NoError(t, err)
	sig, _ := set.Lookup("greet")
	greet := forcetypes.MustWrap(sig, func(call *forcetypes.BoundCall) (any, error) {
		foo, _ := forcetypes.Value[string](call, "foo")
		return "hello " + foo, nil
	})

	result, err := greet.Call([]any{"world", 1, 2}, map[string]any{"loud": true, "extra": 1})
	require.NoError(t, err)
	assert.Equal(t, "hello world", result)

	_, err = greet.Call([]any{"world"}, map[string]any{"bar": "x"})
	assert.ErrorIs(t, err, forcetypes.ErrTypeMismatch)
}

func TestLoad_Defaults(t *testing.T) {
	set, err := Load(strings.NewReader(`
signatures:
  - name: f
    params:
      - {name: a, type: int, default: 3}
      - {name: b, default: null}
      - {name: c, default: {x: [1, 2]}}
      - {name: d, kind: keyword}
`), nil)
	require.NoError(t, err)
	sig, ok := set.Lookup("f")
	require.True(t, ok)

	assert.True(t, sig.Params[0].HasDefault)
	assert.Equal(t, 3, sig.Params[0].Default)
	assert.True(t, sig.Params[1].HasDefault, "An explicit null is a default")
	assert.Nil(t, sig.Params[1].Default)
	assert.Equal(t, typex.NewOrderedMap(typex.Pair{Key: "x", Value: []any{1, 2}}), sig.Params[2].Default)
	assert.False(t, sig.Params[3].HasDefault)

	_, err = Load(strings.NewReader(`
signatures:
  - name: f
    params:
      - {name: a, default: &loop [*loop]}
`), nil)
	assert.ErrorIs(t, err, ErrSchema)
	assert.ErrorIs(t, err, ErrAliasCycle)
}
