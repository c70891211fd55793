package microlog

import "github.com/google/uuid"

// Tuple is the Value a Call's host function returns when it wants its
// return value spliced onto the I/O fact as more than one argument
// (§4.8's "if the call returns a tuple, concatenate"). A plain, single
// Value return is appended as one argument instead.
type Tuple []Value

// MakeRelation declares a deductive symbol. Call it once per distinct
// name and reuse the result; Relation is a plain comparable value, so
// accidental duplicate calls for the same name are harmless (they still
// compare equal), but reusing one value is the idiomatic way to avoid
// typo'd names diverging silently.
func MakeRelation(name string) Relation {
	return Relation{Name: name}
}

// MakeVariable declares a named logic variable.
func MakeVariable(name string) Variable {
	return Variable{Name: name}
}

// MakeVariables declares several named logic variables at once, the
// common case when writing out a rule body.
func MakeVariables(names ...string) []Variable {
	vars := make([]Variable, len(names))
	for i, n := range names {
		vars[i] = Variable{Name: n}
	}
	return vars
}

// MakeAnonymousVariable returns a Variable guaranteed not to collide
// with any host-chosen name, for the rare rule that needs a positively
// bound placeholder it will never refer to again by name.
func MakeAnonymousVariable() Variable {
	return Variable{Name: "_" + uuid.NewString()}
}

// MakeWildcard returns a Wildcard. Every Wildcard is identical to Blank:
// it carries no label and always prints as "_".
func MakeWildcard() Wildcard { return Wildcard{} }

// MakeOracle wraps a pure, side-effect-free predicate as an Oracle.
// label is used only for String()/diagnostics.
func MakeOracle(label string, fn func([]Value) (bool, error)) *Oracle {
	return &Oracle{label: label, fn: fn}
}

// MakeCall wraps a host function directly, bypassing the fnmapping.
func MakeCall(label string, fn func([]Value) (any, error)) *Call {
	return &Call{label: label, fn: fn}
}

// MakeNamedCall builds a Call resolved against the program's fnmapping
// at evaluation time rather than carrying a function itself. Two
// NamedCalls built with the same name are the same fact-producer (§9):
// symbolKey keys named Calls by name, not by wrapper identity. A Call
// built with MakeCall is never the same producer as a NamedCall, even
// when its label equals the name.
func MakeNamedCall(name string) *Call {
	return &Call{byName: name}
}

// Run drives the program to completion (or to its cycle budget, via
// WithCycles) discarding every observation but the last, and returns
// the last tick's facts plus any evaluation error.
func (p *Program) Run(opts ...RunOption) (Observation, error) {
	ev := NewEvaluator(p, opts...)
	var last Observation
	for {
		obs, ok, err := ev.Next()
		if err != nil {
			return last, err
		}
		if !ok {
			return last, nil
		}
		last = obs
	}
}

// RunCB drives the program tick by tick, invoking cb with each
// Observation as it is produced. cb returning an error stops the run
// early and that error is returned.
func (p *Program) RunCB(cb func(Observation) error, opts ...RunOption) error {
	ev := NewEvaluator(p, opts...)
	for {
		obs, ok, err := ev.Next()
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		if err := cb(obs); err != nil {
			return err
		}
	}
}

// RunGenerator returns an Evaluator the host pulls ticks from directly
// via Next, for callers that want to interleave their own logic between
// ticks rather than hand control to a callback.
func (p *Program) RunGenerator(opts ...RunOption) *Evaluator {
	return NewEvaluator(p, opts...)
}
