// Copyright (c) 2014, Kevin Walsh.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package microlog is an embedded temporal Datalog evaluator with
// stratified negation and side-effecting calls.
package microlog

import "fmt"

// Value is an opaque, hashable, totally-comparable scalar held by a host
// program: integers, strings, symbol identifiers, or opaque host handles.
// Equality is whatever Go's == gives the underlying dynamic type, so a
// Value must be a comparable type -- slices, maps, and funcs are not valid
// Values.
type Value = any

// Unit is the Value placed in an I/O fact's tail when a Call's host
// function returns nothing. A bare Go nil would compare equal to any other
// nil interface regardless of which Call produced it, so a distinct,
// comparable marker keeps arity stable without muddying equality.
type Unit struct{}

// Variable is a name; two variables are equal iff their names are equal.
// Variable carries no value of its own -- it is resolved through a
// Substitution during matching.
type Variable struct {
	Name string
}

func (v Variable) String() string { return v.Name }

// Wildcard is a distinguished placeholder that matches any value without
// binding it to anything. Blank is the canonical Wildcard value; hosts may
// also construct one with MakeWildcard.
type Wildcard struct{}

func (Wildcard) String() string { return "_" }

// Blank is the wildcard argument: it unifies with any value and never
// appears in a Substitution.
var Blank = Wildcard{}

// Arg is an argument slot in a Formula: a Value, a Variable, or a
// Wildcard. Go has no sum type for this, so Arg is documented rather than
// enforced; callers that need to dispatch on the concrete content should
// type-switch on Variable and Wildcard first and treat everything else as
// a Value.
type Arg = any

// Substitution maps variables to values. Keys are unique; substitutions
// are extended (never rebinding a key within one derivation attempt -- see
// extend).
type Substitution map[Variable]Value

// extend returns a copy of sigma with v bound to val, or the original
// sigma unchanged (ok=true) if v is already bound to val. If v is already
// bound to something else, extend reports a conflict.
func (sigma Substitution) extend(v Variable, val Value) (Substitution, bool) {
	if existing, bound := sigma[v]; bound {
		return sigma, valuesEqual(existing, val)
	}
	next := make(Substitution, len(sigma)+1)
	for k, v2 := range sigma {
		next[k] = v2
	}
	next[v] = val
	return next, true
}

// resolve substitutes a single argument through sigma: Values and
// Wildcards pass through unchanged; bound Variables become their Value;
// unbound Variables pass through unchanged.
func resolve(arg Arg, sigma Substitution) Arg {
	v, ok := arg.(Variable)
	if !ok {
		return arg
	}
	if val, bound := sigma[v]; bound {
		return val
	}
	return arg
}

func valuesEqual(a, b Value) (eq bool) {
	defer func() {
		// Value is documented as comparable; a host that hands us a
		// slice/map/func anyway gets treated as never-equal rather than
		// a panic bubbling out of the match engine.
		if recover() != nil {
			eq = false
		}
	}()
	return a == b
}

func argString(a Arg) string {
	switch v := a.(type) {
	case Variable:
		return v.Name
	case Wildcard:
		return "_"
	default:
		return fmt.Sprintf("%v", v)
	}
}
