package typex

const (
	// DefaultMaxDepth only descends into the elements of the top level container.
	DefaultMaxDepth = 1
	// Unlimited allows a [Matcher] to descend into nested containers at any depth.
	Unlimited = -1
)

// Matcher checks values against expressions.
// A Matcher holds no mutable state, so it's safe for concurrent use.
type Matcher struct {
	maxDepth int
}

var defaultMatcher = NewMatcher(DefaultMaxDepth)

// NewMatcher creates a [Matcher] that inspects container elements down to the given nesting depth.
// A depth of 0 only checks origin classes, and any negative depth is [Unlimited].
func NewMatcher(maxDepth int) *Matcher {
	if maxDepth < 0 {
		maxDepth = Unlimited
	}
	return &Matcher{maxDepth: maxDepth}
}

// MaxDepth returns the configured nesting limit.
func (m *Matcher) MaxDepth() int {
	if m == nil {
		return defaultMatcher.maxDepth
	}
	return m.maxDepth
}

// Check checks value against expr with a [Matcher] using the [DefaultMaxDepth].
// A nil [Trace] is returned if the check passes.
func Check(value any, expr Expr) Trace {
	return defaultMatcher.CheckAt(value, expr, 0)
}

// Check checks value against expr, starting at level 0.
func (m *Matcher) Check(value any, expr Expr) Trace {
	return m.CheckAt(value, expr, 0)
}

// CheckAt checks value against expr at the given nesting level, returning a nil [Trace] if the check passes.
// A nil expr is treated as undeclared, and always passes.
func (m *Matcher) CheckAt(value any, expr Expr, level int) Trace {
	if m == nil {
		m = defaultMatcher
	}
	switch expr {
	case nil, Any, Ellipsis:
		return nil
	case Never:
		return failure(value, expr, level)
	case None:
		if IsNil(value) {
			return nil
		}
		return failure(value, expr, level)
	}

	if u, ok := expr.(*UnionExpr); ok {
		for _, member := range u.members {
			if m.CheckAt(value, member, level) == nil {
				return nil
			}
		}
		return failure(value, u, level)
	}

	if !originOf(expr).IsInstance(value) {
		return failure(value, expr, level)
	}
	if !m.descends(level) {
		return nil
	}
	c, ok := inspect(value)
	if !ok {
		return nil
	}

	var (
		trace Trace
		index int
	)
	switch e := expr.(type) {
	case *SequenceExpr:
		trace, index = m.each(c, level, func(int) Expr { return e.elem })
	case *TupleExpr:
		switch {
		case len(e.elems) == 0:
			return nil
		case e.repeat:
			trace, index = m.each(c, level, func(int) Expr { return e.elems[0] })
		default:
			if c.Len() != len(e.elems) {
				return failure(value, expr, level)
			}
			trace, index = m.each(c, level, func(i int) Expr { return e.elems[i] })
		}
	case *MappingExpr:
		trace, index = m.entries(c, level, e.key, e.value)
	case *GenericExpr:
		switch len(e.args) {
		case 0:
			return nil
		case 1:
			trace, index = m.each(c, level, func(int) Expr { return e.args[0] })
		default:
			if c.Len() != len(e.args) {
				return failure(value, expr, level)
			}
			trace, index = m.each(c, level, func(i int) Expr { return e.args[i] })
		}
	default:
		return nil
	}
	if trace == nil {
		return nil
	}
	return append(trace, Failure{Value: value, Expr: expr, Index: index, Level: level})
}

func (m *Matcher) descends(level int) bool {
	return m.maxDepth == Unlimited || level < m.maxDepth
}

// each checks every element against the expression for its position, stopping at the first failure.
func (m *Matcher) each(c container, level int, exprAt func(i int) Expr) (Trace, int) {
	var (
		trace Trace
		index = NoIndex
	)
	c.elements(func(i int, elem any) bool {
		if trace = m.CheckAt(elem, exprAt(i), level+1); trace != nil {
			index = i
			return false
		}
		return true
	})
	return trace, index
}

// entries checks each key and then each value, stopping at the first failing pair.
func (m *Matcher) entries(c container, level int, key, value Expr) (Trace, int) {
	var (
		trace Trace
		index = NoIndex
	)
	c.pairs(func(i int, k, v any) bool {
		if trace = m.CheckAt(k, key, level+1); trace == nil {
			trace = m.CheckAt(v, value, level+1)
		}
		if trace != nil {
			index = i
			return false
		}
		return true
	})
	return trace, index
}
