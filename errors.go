package forcetypes

import (
	"errors"
	"fmt"
	"strings"

	"github.com/saylorsolutions/forcetypes/typex"
)

var (
	ErrTypeMismatch     = errors.New("type mismatch")
	ErrInvalidSignature = errors.New("invalid signature")
	ErrBinding          = errors.New("failed to bind arguments")
	ErrNilFuture        = errors.New("callable returned a nil future")
	ErrNilCallable      = errors.New("nil callable")
)

// Binding failure reasons, wrapped by [BindingError].
var (
	ErrTooManyArgs       = errors.New("too many positional arguments")
	ErrMissingArg        = errors.New("missing required argument")
	ErrMultipleValues    = errors.New("multiple values for argument")
	ErrUnexpectedKeyword = errors.New("unexpected keyword argument")
)

// MismatchError is returned when an argument or return value doesn't satisfy its declared type.
// It matches [ErrTypeMismatch] with [errors.Is].
type MismatchError struct {
	Func     string      // Func is the name of the callable's [Signature], which may be empty.
	Argument string      // Argument is the name of the failing parameter, and is empty for return values.
	Return   bool        // Return is true if the return value failed.
	Trace    typex.Trace // Trace has the failure records, deepest first.
}

// Target describes what failed, either the argument name or "return value".
func (e *MismatchError) Target() string {
	if e.Return {
		return "return value"
	}
	return e.Argument
}

func (e *MismatchError) Error() string {
	var buf strings.Builder
	if len(e.Func) > 0 {
		buf.WriteString(e.Func + ": ")
	}
	if e.Return {
		buf.WriteString("return value type mismatch")
	} else {
		buf.WriteString(fmt.Sprintf("argument \"%s\" type mismatch", e.Argument))
	}
	buf.WriteString("\nrecursive checker traceback (deepest layer first):")
	for _, line := range e.Trace.Lines() {
		buf.WriteString("\n    " + line)
	}
	return buf.String()
}

func (e *MismatchError) Unwrap() error {
	return ErrTypeMismatch
}

// BindingError is returned when arguments can't be bound to a [Signature].
// It matches [ErrBinding], and the specific reason, such as [ErrMissingArg], with [errors.Is].
type BindingError struct {
	Func   string
	Param  string
	Reason error
	detail string
}

func newBindingError(fn, param string, reason error, detailFormat string, args ...any) *BindingError {
	return &BindingError{
		Func:   fn,
		Param:  param,
		Reason: reason,
		detail: fmt.Sprintf(detailFormat, args...),
	}
}

func (e *BindingError) Error() string {
	var buf strings.Builder
	if len(e.Func) > 0 {
		buf.WriteString(e.Func + ": ")
	}
	buf.WriteString(e.Reason.Error())
	if len(e.detail) > 0 {
		buf.WriteString(": " + e.detail)
	}
	return buf.String()
}

func (e *BindingError) Unwrap() []error {
	return []error{ErrBinding, e.Reason}
}

// SignatureError collects every problem found by [Signature.Validate].
// It matches [ErrInvalidSignature] and each collected problem with [errors.Is].
type SignatureError struct {
	Func     string
	Problems []error
}

func (e *SignatureError) add(format string, args ...any) {
	e.Problems = append(e.Problems, fmt.Errorf(format, args...))
}

// result returns nil if no problems have been added.
func (e *SignatureError) result() error {
	if len(e.Problems) > 0 {
		return e
	}
	return nil
}

func (e *SignatureError) Error() string {
	var buf strings.Builder
	buf.WriteString(ErrInvalidSignature.Error())
	if len(e.Func) > 0 {
		buf.WriteString(fmt.Sprintf(" '%s'", e.Func))
	}
	for i, err := range e.Problems {
		if i == 0 {
			buf.WriteString(": ")
		} else {
			buf.WriteString("; ")
		}
		buf.WriteString(err.Error())
	}
	return buf.String()
}

func (e *SignatureError) Unwrap() []error {
	return append([]error{ErrInvalidSignature}, e.Problems...)
}
