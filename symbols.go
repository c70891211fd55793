package microlog

import "fmt"

// Symbol is the function/predicate side of a Formula: a Relation, an
// Oracle, or a Call. Construction is pure and cheap; identity for
// Relations is by name, while identity for Oracle and Call is by identity
// of the wrapping value, so two distinct Call wrappers around the same
// host function are distinct symbols (see symbolKey).
type Symbol interface {
	fmt.Stringer
	isSymbol()
}

// Relation is a purely deductive symbol: it has no executable behavior,
// only an extension of fact tuples built up by rule evaluation. Relation
// is a plain comparable value, so two Relations sharing a name are the
// same symbol -- the host is expected to call MakeRelation once per name
// and reuse the result, but accidentally calling it twice for "foo" still
// behaves as one relation.
type Relation struct {
	Name string
}

func (r Relation) String() string { return r.Name }
func (Relation) isSymbol()        {}

// Of applies the relation to arguments, producing a Formula. The
// resulting Formula still needs to become a Literal (via PosLit/NegLit) or a
// Head (via AtStart/AtNext/Now) before it can appear in a Rule.
func (r Relation) Of(args ...Arg) Formula {
	return Formula{Sym: r, Args: args}
}

// Oracle wraps a pure, side-effect-free host predicate invoked
// synchronously during matching. fn must be deterministic for the
// evaluator's fixpoint guarantees to hold.
type Oracle struct {
	label string
	fn    func([]Value) (bool, error)
}

func (o *Oracle) String() string {
	if o.label != "" {
		return o.label
	}
	return fmt.Sprintf("oracle#%p", o)
}
func (*Oracle) isSymbol() {}

// Test applies the oracle to arguments, producing a positive Oracle
// literal directly usable in a rule body.
func (o *Oracle) Test(args ...Arg) Literal {
	return Literal{Kind: OraclePos, Formula: Formula{Sym: o, Args: args}}
}

// Call wraps an effectful host function. Invocation is observable: its
// return value is appended to the argument tuple to form an I/O fact.
// A Call constructed from a bare name is resolved against the fnmapping
// at evaluation time instead of carrying a function directly.
type Call struct {
	label  string
	fn     func([]Value) (any, error)
	byName string
}

func (c *Call) String() string {
	if c.byName != "" {
		return c.byName
	}
	if c.label != "" {
		return c.label
	}
	return fmt.Sprintf("call#%p", c)
}
func (*Call) isSymbol() {}

// Do applies the call to arguments, producing an (unannotated) Call
// literal. Most rules annotate the resulting Head with AtNext, since
// Calls only fire at the next-tick boundary (see §4.7).
func (c *Call) Do(args ...Arg) Literal {
	return Literal{Kind: LitCall, Formula: Formula{Sym: c, Args: args}}
}

// symbolKey returns a string that is equal for two Symbols iff the
// evaluator must treat them as the same fact-producer. Relations compare
// by name; Oracles compare by wrapper identity; Calls compare by wrapper
// identity UNLESS they were built from the same host name, in which case
// they compare by that name -- this is how the fnmapping's "resolved at
// evaluation time" contract (§6, §9) lets two separately-constructed
// named Calls refer to one I/O fact-producer.
func symbolKey(s Symbol) string {
	switch v := s.(type) {
	case Relation:
		return "rel:" + v.Name
	case *Oracle:
		return fmt.Sprintf("oracle:%p", v)
	case *Call:
		if v.byName != "" {
			return "call-name:" + v.byName
		}
		return fmt.Sprintf("call-ptr:%p", v)
	default:
		return fmt.Sprintf("sym:%p", v)
	}
}

func isRelation(s Symbol) bool {
	_, ok := s.(Relation)
	return ok
}
