/*
Package forcetypes enforces declared argument and return types on function calls at runtime.

A [Signature] describes the parameters of a callable, and the type expression ([typex.Expr]) that each parameter and the return value must satisfy.
Signatures are supplied explicitly when a callable is registered, either in code or loaded from a schema file with the schema package.

	sig := forcetypes.Signature{
		Name: "f",
		Params: []forcetypes.Param{
			forcetypes.Arg("foo", typex.String),
			forcetypes.Arg("bar", typex.Int),
		},
		Return: typex.None,
	}
	f, err := forcetypes.Wrap(sig, func(call *forcetypes.BoundCall) (any, error) {
		return nil, nil
	})
	// ...
	_, err = f.Call([]any{"hi"}, map[string]any{"bar": "x"})
	// f: argument "bar" type mismatch
	// recursive checker traceback (deepest layer first):
	//     type: string -> fails: int (at level 0) (from value: "x")

# Wrappers

There are three ways to wrap a callable, and all of them validate in the same way.

  - [Wrap] wraps a [Callable] that accepts positional and keyword arguments.
  - [WrapAsync] wraps an [AsyncCallable] that returns a [Future], which is awaited by the wrapper.
  - [WrapFunc] wraps a plain Go function, returning a function with exactly the same type.

For each call, arguments are bound to parameter names first.
Binding problems are reported as a [*BindingError] without any type checks.
Each bound parameter with a declared type is then checked, and the first mismatch is reported as a [*MismatchError] before the callable is invoked.
After the callable returns successfully, the result is checked against the declared return type in the same way.
Note that a return value mismatch is reported after the callable has already run, so any side effects are not undone.

# Configuration

Validation may be turned off globally with [Disable], or at startup with the FORCETYPES_DISABLE environment variable.
Building with the 'noforce' tag removes validation altogether.
The FORCETYPES_MAX_DEPTH environment variable sets the nesting limit of the default matcher, and [WithMatcher] may be used to override it per callable.

The library doesn't log anything unless a logger is given with [WithLogger].
*/
package forcetypes
