package hcltype

import (
	"reflect"
	"testing"

	"github.com/saylorsolutions/forcetypes/typex"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

func TestParse(t *testing.T) {
	tests := map[string]string{
		"string":                                    "string",
		"number":                                    "number",
		"bool":                                      "bool",
		"any":                                       "any",
		"list(string)":                              "[]string",
		"set(number)":                               "set[number]",
		"map(bool)":                                 "map[string]bool",
		"tuple([string, number])":                   "tuple[string, number]",
		"object({ name = string, count = number })": "map[string](number | string)",
		"list(map(string))":                         "[]map[string]string",
	}
	for src, expected := range tests {
		t.Run(src, func(t *testing.T) {
			expr, err := Parse(src)
			require.NoError(t, err)
			assert.Equal(t, expected, expr.String())
		})
	}
}

func TestParse_Errors(t *testing.T) {
	_, err := Parse("list(")
	assert.Error(t, err)

	_, err = Parse("widget")
	assert.Error(t, err)
}

func TestParse_Check(t *testing.T) {
	expr, err := Parse("list(number)")
	require.NoError(t, err)
	assert.Nil(t, typex.Check([]any{1, 2.5, uint(3)}, expr))

	trace := typex.Check([]any{1, "2"}, expr)
	require.Len(t, trace, 2)
	assert.Equal(t, "2", trace[0].Value)
	assert.Equal(t, 1, trace[1].Index)

	expr, err = Parse("set(string)")
	require.NoError(t, err)
	assert.Nil(t, typex.Check(map[string]struct{}{"a": {}}, expr))
	assert.Nil(t, typex.Check([]string{"a"}, expr))
	assert.NotNil(t, typex.Check(map[int]struct{}{1: {}}, expr))
}

func TestFromType_Unsupported(t *testing.T) {
	capsule := cty.Capsule("widget", reflect.TypeOf(0))
	_, err := FromType(capsule)
	assert.ErrorIs(t, err, ErrUnsupportedType)

	_, err = FromType(cty.List(capsule))
	assert.ErrorIs(t, err, ErrUnsupportedType)
}
