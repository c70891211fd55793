package microlog

import "go.uber.org/zap"

// Callable is the shape every host function takes once wrapped by
// MakeCall or resolved through an fnmapping: a positional argument tuple
// in, a single return Value (or a Tuple, whose elements are spliced onto
// the I/O fact, per §4.8) out. Any other slice, including a plain
// []Value, is appended as one field.
type Callable func(args []Value) (any, error)

// FnMapping resolves Calls that were built from a bare name (MakeNamedCall)
// rather than a bound function. Oracles always carry their own function
// and are never looked up here.
// §6: "Whenever a symbol's underlying callable is itself a name ... the
// mapping is consulted at evaluation time."
type FnMapping map[string]Callable

func (m FnMapping) merge(overrides FnMapping) FnMapping {
	if len(overrides) == 0 {
		return m
	}
	out := make(FnMapping, len(m)+len(overrides))
	for k, v := range m {
		out[k] = v
	}
	for k, v := range overrides {
		out[k] = v
	}
	return out
}

// ProgramOptions configures Program construction (§6's Program(rules,
// fnmapping?, reorder_bodies?=true)), expressed the way google/mangle's
// EvalOptions/EvalOption pair configures its engine.
type ProgramOptions struct {
	fnmapping     FnMapping
	reorderBodies bool
	logger        *zap.Logger
}

// ProgramOption configures a Program at construction time.
type ProgramOption func(*ProgramOptions)

func newProgramOptions(opts ...ProgramOption) ProgramOptions {
	o := ProgramOptions{
		reorderBodies: true,
		logger:        zap.NewNop(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithFnMapping supplies a construction-time name->callable mapping.
// Run-time mappings passed to Run/RunCB/RunGenerator are merged on top,
// with run-time entries taking precedence (§9).
func WithFnMapping(m FnMapping) ProgramOption {
	return func(o *ProgramOptions) { o.fnmapping = m }
}

// WithoutBodyReorder disables automatic canonical body reordering
// (§4.4). Hosts that have already hand-ordered bodies correctly can use
// this to skip the pass; with it off, NewProgram rejects with
// ErrRangeRestriction any body that tests a variable (in a negated,
// oracle, or negated-call literal) before an earlier Pos or Call literal
// binds it.
func WithoutBodyReorder() ProgramOption {
	return func(o *ProgramOptions) { o.reorderBodies = false }
}

// WithLogger attaches a *zap.Logger that NewProgram uses for one Debug
// entry of construction diagnostics (rule counts per partition). The
// Evaluator does not log. The default is a no-op logger.
func WithLogger(l *zap.Logger) ProgramOption {
	return func(o *ProgramOptions) {
		if l != nil {
			o.logger = l
		}
	}
}

// RunOptions configures one run of the tick sequence (§6's
// run(cycles?, fnmapping?) family).
type RunOptions struct {
	cycles        int // 0 means unbounded
	fnmapping     FnMapping
	extendedState bool
}

// RunOption configures a single run/run_cb/run_generator invocation.
type RunOption func(*RunOptions)

func newRunOptions(opts ...RunOption) RunOptions {
	o := RunOptions{}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithCycles bounds the tick budget; zero (the default) runs until the
// host stops pulling observations.
func WithCycles(n int) RunOption {
	return func(o *RunOptions) { o.cycles = n }
}

// WithRunFnMapping supplies a run-time name->callable mapping, merged
// over the construction-time mapping with run-time entries winning.
func WithRunFnMapping(m FnMapping) RunOption {
	return func(o *RunOptions) { o.fnmapping = m }
}

// WithExtendedState requests that each observation be the full model
// (facts ∪ I/O facts) rather than just the I/O facts (§6, §4.7 step 4).
func WithExtendedState(on bool) RunOption {
	return func(o *RunOptions) { o.extendedState = on }
}
