package microlog

import "fmt"

// Evaluator steps a Program one tick at a time (§4.7). Each tick: the
// deductive closure (trivial Always rules, then every stratum in order)
// is computed over the current persistent model; NEXT-headed Call rules
// fire against that closure, producing this tick's I/O facts; NEXT-
// headed relation rules produce the persistent model for the following
// tick. The persistent model is never the full deductive closure --
// only what a NEXT rule explicitly re-derives survives to the next tick,
// the same frame-axiom discipline pymicrolog's examples rely on.
type Evaluator struct {
	prog          *Program
	model         *FactStore
	ioPrev        *FactStore
	fn            FnMapping
	extendedState bool
	cycles        int // 0 means unbounded
	ticksRun      int
	tick          int
	err           error
	done          bool
}

// Observation is what a tick exposes to the host: either just the I/O
// facts produced by this tick's Calls, or (WithExtendedState) the full
// deductive closure plus those I/O facts.
type Observation struct {
	Tick  int
	Facts []Fact
}

// NewEvaluator seeds the persistent model from the program's initial
// (START) facts and merges the program's construction-time fnmapping
// with any run-time overrides.
func NewEvaluator(p *Program, opts ...RunOption) *Evaluator {
	ro := newRunOptions(opts...)
	model := NewFactStore()
	for _, r := range p.initial {
		model.Add(r.Head.Lit.Formula.asFact())
	}
	return &Evaluator{
		prog:          p,
		model:         model,
		ioPrev:        NewFactStore(),
		fn:            p.fn.merge(ro.fnmapping),
		extendedState: ro.extendedState,
		cycles:        ro.cycles,
	}
}

// Err returns the error that stopped the evaluator, if any.
func (e *Evaluator) Err() error { return e.err }

// Next advances one tick, returning the resulting Observation. The
// second return is false once the evaluator is exhausted (cycle budget
// spent) or has failed (Err() then returns the cause).
func (e *Evaluator) Next() (Observation, bool, error) {
	if e.err != nil {
		return Observation{}, false, e.err
	}
	if e.done {
		return Observation{}, false, nil
	}
	if e.cycles > 0 && e.ticksRun >= e.cycles {
		e.done = true
		return Observation{}, false, nil
	}

	deduced := e.model.Clone()
	ctx := &matchContext{model: deduced, ioFacts: e.ioPrev}

	if err := applyLayerFixpoint(ctx, deduced, e.prog.always); err != nil {
		e.fail(err)
		return Observation{}, false, err
	}
	for _, layer := range e.prog.strata {
		if err := applyLayerFixpoint(ctx, deduced, layer); err != nil {
			e.fail(err)
			return Observation{}, false, err
		}
	}

	ioFacts := NewFactStore()
	for _, r := range e.prog.next {
		if r.Head.Lit.Kind != LitCall {
			continue
		}
		if err := e.fireCall(ctx, r, ioFacts); err != nil {
			e.fail(err)
			return Observation{}, false, err
		}
	}

	nextModel := NewFactStore()
	for _, r := range e.prog.next {
		if r.Head.Lit.Kind != Pos {
			continue
		}
		substs, err := matchConjunction(ctx, r.Body, Substitution{})
		if err != nil {
			e.fail(err)
			return Observation{}, false, err
		}
		for _, s := range substs {
			nextModel.Add(r.Head.Lit.Formula.applySubst(s).asFact())
		}
	}

	e.model = nextModel
	e.ioPrev = ioFacts
	e.ticksRun++
	observedTick := e.tick
	e.tick++

	facts := ioFacts.All()
	if e.extendedState {
		facts = append(deduced.All(), ioFacts.All()...)
	}
	return Observation{Tick: observedTick, Facts: facts}, true, nil
}

func (e *Evaluator) fail(err error) {
	e.err = err
	e.done = true
}

// applyLayerFixpoint repeatedly applies every rule in a stratum until no
// new fact is derived. Rules within one stratum may be mutually
// recursive through positive edges; this is a naive (not semi-naive)
// fixpoint, which is simple and correct but re-evaluates every rule's
// body on every pass -- acceptable at the scale this evaluator targets
// (bounded, tick-driven models), called out as a simplification rather
// than a fully incremental join.
func applyLayerFixpoint(ctx *matchContext, deduced *FactStore, rules []Rule) error {
	for {
		changed := false
		for _, r := range rules {
			substs, err := matchConjunction(ctx, r.Body, Substitution{})
			if err != nil {
				return err
			}
			for _, s := range substs {
				if deduced.Add(r.Head.Lit.Formula.applySubst(s).asFact()) {
					changed = true
				}
			}
		}
		if !changed {
			return nil
		}
	}
}

// fireCall matches a Call rule's body and invokes the host function once
// per resulting substitution, recording the I/O fact §4.8 describes:
// the call's argument tuple followed by its return value, spliced as a
// tuple if the return is a Tuple, otherwise appended as a single field
// (including when the return is the Unit{} placeholder).
func (e *Evaluator) fireCall(ctx *matchContext, r Rule, ioFacts *FactStore) error {
	call, ok := r.Head.Lit.Formula.Sym.(*Call)
	if !ok {
		return fmt.Errorf("microlog: Call-headed rule %s does not head a *Call", r)
	}
	substs, err := matchConjunction(ctx, r.Body, Substitution{})
	if err != nil {
		return err
	}
	fn, err := resolveCallable(call, e.fn)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrCallFailed, call, err)
	}
	for _, s := range substs {
		args := make([]Value, len(r.Head.Lit.Formula.Args))
		for i, a := range r.Head.Lit.Formula.Args {
			resolved := resolve(a, s)
			if _, isVar := resolved.(Variable); isVar {
				return fmt.Errorf("%w: %s called with an unbound argument", ErrCallFailed, call)
			}
			args[i] = resolved
		}
		ret, err := invokeCall(fn, args)
		if err != nil {
			return fmt.Errorf("%w: %s: %v", ErrCallFailed, call, err)
		}
		ioFacts.Add(Fact{Sym: call, Args: appendReturn(args, ret)})
	}
	return nil
}

func resolveCallable(c *Call, fn FnMapping) (Callable, error) {
	if c.fn != nil {
		return c.fn, nil
	}
	if c.byName == "" {
		return nil, fmt.Errorf("call has neither a bound function nor a name")
	}
	f, ok := fn[c.byName]
	if !ok {
		return nil, fmt.Errorf("no fnmapping entry for %q", c.byName)
	}
	return f, nil
}

func invokeCall(fn Callable, args []Value) (result any, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return fn(args)
}

// appendReturn implements §4.8's I/O fact shape: the call's argument
// tuple followed by its return value. A Tuple return is spliced onto
// the tail instead of appended as one value, so a multi-value host
// return becomes multiple trailing fields; Unit{} still occupies a
// single trailing field (arity must stay stable whether or not the
// host returned anything of interest), the same as every other value.
func appendReturn(args []Value, ret any) []Value {
	switch v := ret.(type) {
	case Tuple:
		out := append([]Value(nil), args...)
		return append(out, v...)
	default:
		return append(append([]Value(nil), args...), v)
	}
}
