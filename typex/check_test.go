package typex

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type userID string

func TestCheck_Concrete(t *testing.T) {
	tests := map[string]struct {
		value any
		expr  Expr
		pass  bool
	}{
		"String":             {"hi", String, true},
		"Named string":       {userID("abc"), String, true},
		"Int as string":      {5, String, false},
		"Int":                {5, Int, true},
		"Int64":              {int64(5), Int, true},
		"Float as int":       {5.0, Int, false},
		"Uint":               {uint8(1), Uint, true},
		"Bool":               {true, Bool, true},
		"Bytes":              {[]byte("abc"), Bytes, true},
		"String as bytes":    {"abc", Bytes, false},
		"Nil as string":      {nil, String, false},
		"Duration":           {time.Second, Of[time.Duration](), true},
		"Int as duration":    {int64(1), Of[time.Duration](), false},
		"Error":              {assert.AnError, Error, true},
		"Complex":            {1 + 2i, Complex, true},
		"Custom class":       {4, NewClass("even", func(v any) bool { i, ok := v.(int); return ok && i%2 == 0 }), true},
		"Custom class fails": {3, NewClass("even", func(v any) bool { i, ok := v.(int); return ok && i%2 == 0 }), false},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			trace := Check(tc.value, tc.expr)
			if tc.pass {
				assert.Nil(t, trace)
				return
			}
			require.Len(t, trace, 1)
			assert.Equal(t, Failure{Value: tc.value, Expr: tc.expr, Index: NoIndex, Level: 0}, trace[0])
		})
	}
}

func TestCheck_Sentinels(t *testing.T) {
	values := []any{nil, 0, "", []int{1}, map[string]int{}, struct{}{}}
	for _, v := range values {
		assert.Nil(t, Check(v, Any))
		assert.Nil(t, Check(v, Object))
		assert.Nil(t, Check(v, Ellipsis))
		assert.Nil(t, Check(v, nil), "Nil expressions are undeclared")
		trace := Check(v, Never)
		require.Len(t, trace, 1)
		assert.Equal(t, Never, trace[0].Expr)
	}
}

func TestCheck_None(t *testing.T) {
	var (
		ptr *int
		mp  map[string]int
	)
	assert.Nil(t, Check(nil, None))
	assert.Nil(t, Check(ptr, None))
	assert.Nil(t, Check(mp, None))
	assert.NotNil(t, Check(0, None))
	assert.NotNil(t, Check("", None))
}

func TestCheck_Union(t *testing.T) {
	strOrInt := Union(String, Int)
	assert.Nil(t, Check(5, strOrInt))
	assert.Nil(t, Check("5", strOrInt))

	trace := Check(5.0, strOrInt)
	require.Len(t, trace, 1, "Only the union is reported, not each member")
	assert.Equal(t, strOrInt, trace[0].Expr)
	assert.Equal(t, 0, trace[0].Level)

	opt := Optional(Int)
	assert.Nil(t, Check(nil, opt))
	assert.Nil(t, Check(3, opt))
	assert.NotNil(t, Check("3", opt))
}

func TestCheck_UnionOfContainers(t *testing.T) {
	expr := Optional(Sequence(Int))
	assert.Nil(t, Check(nil, expr))
	assert.Nil(t, Check([]int{1, 2}, expr))
	trace := Check([]any{1, "a"}, expr)
	require.Len(t, trace, 1)
	assert.Equal(t, expr, trace[0].Expr)
}

func TestCheck_Sequence(t *testing.T) {
	assert.Nil(t, Check([]any{}, Sequence(Int)), "Empty containers always pass")
	assert.Nil(t, Check([]string(nil), Sequence(Int)), "Empty containers always pass")
	assert.Nil(t, Check([3]int{1, 2, 3}, Sequence(Int)))

	value := []any{1, "a"}
	trace := Check(value, Sequence(Int))
	require.Len(t, trace, 2)
	assert.Equal(t, Failure{Value: "a", Expr: Int, Index: NoIndex, Level: 1}, trace[0])
	assert.Equal(t, Failure{Value: value, Expr: Sequence(Int), Index: 1, Level: 0}, trace[1])

	assert.NotNil(t, Check("abc", Sequence(String)), "Strings are not sequences")
	assert.NotNil(t, Check(map[int]int{}, Sequence(Int)))
}

func TestCheck_SequenceOfUnion(t *testing.T) {
	expr := Sequence(Union(String, Int))
	value := []any{"hi", 5.0}
	trace := Check(value, expr)
	require.Len(t, trace, 2)

	deepest, ok := trace.Deepest()
	require.True(t, ok)
	assert.Equal(t, 5.0, deepest.Value)
	assert.Equal(t, "string | int", deepest.Expr.String())

	root, ok := trace.Root()
	require.True(t, ok)
	assert.Equal(t, 1, root.Index)

	lines := trace.Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, "type: float64 -> fails: string | int (at level 1) (from value: 5.0)", lines[0])
	assert.Contains(t, lines[1], "type: []interface {} -> fails: [](string | int) (at level 0, index 1)")
}

func TestCheck_Tuple(t *testing.T) {
	expr := Tuple(Int, String)
	assert.Nil(t, Check([]any{1, "a"}, expr))

	value := []any{1, 2, 3}
	trace := Check(value, expr)
	require.Len(t, trace, 1, "Arity mismatch fails without inspecting elements")
	assert.Equal(t, Failure{Value: value, Expr: expr, Index: NoIndex, Level: 0}, trace[0])

	value = []any{1, 2}
	trace = Check(value, expr)
	require.Len(t, trace, 2)
	assert.Equal(t, 2, trace[0].Value)
	assert.Equal(t, String, trace[0].Expr)
	assert.Equal(t, 1, trace[1].Index)

	assert.Nil(t, Check([]any{1, true}, Tuple()), "A bare tuple only checks the origin")
}

func TestCheck_TupleRepeat(t *testing.T) {
	expr := TupleOf(Int)
	assert.True(t, expr.Repeat())
	assert.Nil(t, Check([]any{}, expr))
	assert.Nil(t, Check([]int{1, 2, 3, 4}, expr))

	trace := Check([]any{1, 2, "x", 4}, expr)
	require.Len(t, trace, 2)
	assert.Equal(t, "x", trace[0].Value)
	assert.Equal(t, 2, trace[1].Index)
}

func TestCheck_Mapping(t *testing.T) {
	expr := MappingOf(Int, String)
	assert.Nil(t, Check(map[int]string{1: "a"}, expr))
	assert.Nil(t, Check(map[int]string{}, expr))

	trace := Check(map[int]int{1: 2}, expr)
	require.Len(t, trace, 2)
	assert.Equal(t, Failure{Value: 2, Expr: String, Index: NoIndex, Level: 1}, trace[0], "The value fails for key 1")
	assert.Equal(t, 0, trace[1].Index)

	trace = Check(map[string]string{"a": "b"}, expr)
	require.Len(t, trace, 2)
	assert.Equal(t, "a", trace[0].Value, "Keys are checked before values")

	assert.NotNil(t, Check([]any{1}, expr))
}

func TestCheck_MappingSortedKeys(t *testing.T) {
	value := map[string]any{"c": "y", "b": "x", "a": 1}
	trace := Check(value, MappingOf(String, Int))
	require.Len(t, trace, 2)
	assert.Equal(t, "x", trace[0].Value)
	assert.Equal(t, 1, trace[1].Index)

	mixed := map[any]int{"b": 1, 2: 1, 1.5: 1, false: 1}
	trace = Check(mixed, MappingOf(Union(Bool, Int, Float), Int))
	require.Len(t, trace, 2)
	assert.Equal(t, "b", trace[0].Value)
	assert.Equal(t, 3, trace[1].Index, "Keys are grouped by kind, with strings last")
}

func TestCheck_OrderedMap(t *testing.T) {
	value := NewOrderedMap(Pair{Key: "b", Value: 1}, Pair{Key: "a", Value: "x"})
	trace := Check(value, MappingOf(String, Int))
	require.Len(t, trace, 2)
	assert.Equal(t, "x", trace[0].Value)
	assert.Equal(t, 1, trace[1].Index, "Insertion order is used")

	assert.Nil(t, Check(NewOrderedMap(), MappingOf(String, Int)))
	assert.NotNil(t, Check(value, Sequence(Any)), "Ordered maps are not sequences")
}

func TestCheck_Generic(t *testing.T) {
	positional := Generic(List, Int, String)
	assert.Nil(t, Check([]any{1, "a"}, positional))

	trace := Check([]any{1, 2}, positional)
	require.Len(t, trace, 2)
	assert.Equal(t, 1, trace[1].Index)

	trace = Check([]any{1}, positional)
	require.Len(t, trace, 1, "Positional arity mismatch fails immediately")

	set := NewClass("set", func(v any) bool {
		_, ok := v.(map[string]struct{})
		return ok
	})
	trace = Check(map[string]struct{}{"b": {}, "a": {}}, Generic(set, Int))
	require.Len(t, trace, 2)
	assert.Equal(t, "a", trace[0].Value, "Set elements are visited in sorted order")
	assert.Equal(t, 0, trace[1].Index)
}

func TestCheck_IteratorsAreOpaque(t *testing.T) {
	ch := make(chan int, 1)
	ch <- 1
	chanClass := NewClass("chan", func(v any) bool {
		_, ok := v.(chan int)
		return ok
	})
	assert.Nil(t, Check(ch, Generic(chanClass, String)))
	assert.Len(t, ch, 1, "The channel should not be consumed")

	seq := func(yield func(int) bool) {
		t.Fatal("Iterator should not be consumed")
	}
	seqClass := NewClass("seq", func(v any) bool {
		_, ok := v.(func(func(int) bool))
		return ok
	})
	assert.Nil(t, Check(seq, Generic(seqClass, String)))
}

func TestCheck_NestingLimit(t *testing.T) {
	expr := Sequence(MappingOf(Int, String))
	assert.Nil(t, Check([]any{map[int]string{1: "a"}}, expr))
	assert.Nil(t, Check([]any{map[int]int{1: 2}}, expr), "Only one level of nesting is inspected by default")
	assert.NotNil(t, Check([]any{"a"}, expr), "Nested origin classes are still checked")

	unlimited := NewMatcher(Unlimited)
	assert.Equal(t, Unlimited, unlimited.MaxDepth())
	trace := unlimited.Check([]any{map[int]int{1: 2}}, expr)
	require.Len(t, trace, 3)
	assert.Equal(t, 2, trace[0].Value)
	assert.Equal(t, 2, trace[0].Level)
	assert.Equal(t, 1, trace[1].Level)
	assert.Equal(t, 0, trace[2].Level)

	flat := NewMatcher(0)
	assert.Nil(t, flat.Check([]any{"a"}, Sequence(Int)))
	assert.NotNil(t, flat.Check(map[int]int{}, Sequence(Int)))
}

func TestCheck_Idempotent(t *testing.T) {
	value := []any{"hi", 5.0}
	expr := Sequence(Union(String, Int))
	assert.Equal(t, Check(value, expr), Check(value, expr))
}

func TestMatcher_CheckAt(t *testing.T) {
	var m *Matcher
	assert.Equal(t, DefaultMaxDepth, m.MaxDepth())
	trace := m.CheckAt("a", Int, 3)
	require.Len(t, trace, 1)
	assert.Equal(t, 3, trace[0].Level)

	assert.Nil(t, m.CheckAt([]any{"a"}, Sequence(Int), 1), "Already at the nesting limit")
}

func TestRepr(t *testing.T) {
	type celsius float64
	tests := map[string]struct {
		value    any
		expected string
	}{
		"Whole float":    {value: 5.0, expected: "5.0"},
		"Fraction":       {value: 2.5, expected: "2.5"},
		"Negative whole": {value: -3.0, expected: "-3.0"},
		"Exponent":       {value: 1e21, expected: "1e+21"},
		"Float32":        {value: float32(0.1), expected: "0.1"},
		"Named float":    {value: celsius(20), expected: "20.0"},
		"Infinity":       {value: math.Inf(1), expected: "+Inf"},
		"NaN":            {value: math.NaN(), expected: "NaN"},
		"Int":            {value: 5, expected: "5"},
		"String":         {value: "5", expected: `"5"`},
		"Nil":            {value: nil, expected: "<nil>"},
		"Slice":          {value: []int{1}, expected: "[]int{1}"},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Repr(tc.value))
		})
	}
}
