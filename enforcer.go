package forcetypes

import (
	"slices"
)

// enforcer holds the validation shared by every kind of wrapper.
type enforcer struct {
	sig Signature
	settings
}

func newEnforcer(sig Signature, opts []Option) (*enforcer, error) {
	if err := sig.Validate(); err != nil {
		return nil, err
	}
	sig.Params = slices.Clone(sig.Params)
	return &enforcer{sig: sig, settings: newSettings(opts)}, nil
}

func (e *enforcer) bind(args []any, kwargs map[string]any) (*BoundCall, error) {
	return e.sig.Bind(args, kwargs)
}

// checkArgs checks each bound argument with a declared type, in parameter order.
func (e *enforcer) checkArgs(call *BoundCall) error {
	if !Enabled() {
		return nil
	}
	for _, arg := range call.bound {
		expr := e.sig.Params[arg.param].expr()
		if expr == nil {
			continue
		}
		if trace := e.matcher.Check(arg.Value, expr); trace != nil {
			return e.mismatch(&MismatchError{Func: e.sig.Name, Argument: arg.Name, Trace: trace})
		}
	}
	return nil
}

func (e *enforcer) checkResult(result any) error {
	if !Enabled() || e.sig.Return == nil {
		return nil
	}
	if trace := e.matcher.Check(result, e.sig.Return); trace != nil {
		return e.mismatch(&MismatchError{Func: e.sig.Name, Return: true, Trace: trace})
	}
	return nil
}

func (e *enforcer) mismatch(err *MismatchError) error {
	e.logger.Debug("Type mismatch",
		"func", err.Func,
		"target", err.Target(),
		"depth", len(err.Trace),
		"trace", err.Trace.Lines(),
	)
	return err
}
