/*
Package typex provides type expressions and a recursive matcher that checks runtime values against them.

A type expression ([Expr]) is a declared constraint on a value.
The variants are a closed set:

  - [Any] (and its alias [Object]) accepts everything, as does [Ellipsis] on its own.
  - [Never] accepts nothing.
  - [None] accepts only nil.
  - A [UnionExpr] accepts a value if any member does. [Optional] is a union with [None].
  - A [Class] is a concrete type with a predicate supplied by the integrator.
  - [SequenceExpr], [TupleExpr], [MappingExpr] and [GenericExpr] are parameterized containers.

Expressions are immutable and are intended to be built once, at registration time, either with the constructors in this package or by parsing a textual schema with [Parse].

# Failure traces

[Check] returns nil when a value satisfies an expression.
Otherwise it returns a [Trace], which is a list of [Failure] records ordered deepest first.
The last record always describes the top level expression being checked.

	trace := typex.Check([]any{"hi", 5.0}, typex.Sequence(typex.Union(typex.String, typex.Int)))
	for _, line := range trace.Lines() {
		fmt.Println(line)
	}
	// type: float64 -> fails: string | int (at level 1) (from value: 5.0)
	// type: []interface {} -> fails: [](string | int) (at level 0, index 1) (from value: []interface {}{"hi", 5})

# Nesting limit

Container elements are only inspected down to a fixed depth, which is 1 by default ([DefaultMaxDepth]).
With the default, the elements of a top level container are checked against their declared expression, but when that expression is itself a container, only its origin class is checked.
For example, checking a value against "list[map[int, str]]" verifies that each element is a map, but doesn't inspect the keys and values of each map.
Use [NewMatcher] with a larger depth, or [Unlimited], to lift this.

# Iteration

Slices, arrays, maps, and implementations of [Mapping] are inspected.
Channels and functions (such as iter.Seq) are iterators, and are never consumed to inspect their elements.
Strings are treated as atomic values.
Go maps have no natural order, so their keys are visited in sorted order to keep failure traces deterministic.
Use [OrderedMap] when insertion order matters.
*/
package typex
