package microlog

import (
	"cmp"
	"fmt"
)

// order reports how a compares to b for the built-in comparison oracles:
// -1, 0, or 1. It supports the Value shapes a host is likely to compare
// directly -- int, int32, int64, float32, float64, and string -- and
// returns an error for anything else (unsigned and narrower integer
// kinds included) or for a mismatched pair, since "less than" has no
// meaning across kinds.
func order(a, b Value) (int, error) {
	switch av := a.(type) {
	case int:
		bv, ok := b.(int)
		if !ok {
			return 0, fmt.Errorf("cannot compare int to %T", b)
		}
		return cmp.Compare(av, bv), nil
	case int32:
		bv, ok := b.(int32)
		if !ok {
			return 0, fmt.Errorf("cannot compare int32 to %T", b)
		}
		return cmp.Compare(av, bv), nil
	case int64:
		bv, ok := b.(int64)
		if !ok {
			return 0, fmt.Errorf("cannot compare int64 to %T", b)
		}
		return cmp.Compare(av, bv), nil
	case float64:
		bv, ok := b.(float64)
		if !ok {
			return 0, fmt.Errorf("cannot compare float64 to %T", b)
		}
		switch {
		case av < bv:
			return -1, nil
		case av > bv:
			return 1, nil
		default:
			return 0, nil
		}
	case float32:
		bv, ok := b.(float32)
		if !ok {
			return 0, fmt.Errorf("cannot compare float32 to %T", b)
		}
		switch {
		case av < bv:
			return -1, nil
		case av > bv:
			return 1, nil
		default:
			return 0, nil
		}
	case string:
		bv, ok := b.(string)
		if !ok {
			return 0, fmt.Errorf("cannot compare string to %T", b)
		}
		switch {
		case av < bv:
			return -1, nil
		case av > bv:
			return 1, nil
		default:
			return 0, nil
		}
	default:
		return 0, fmt.Errorf("values of type %T are not orderable", a)
	}
}

func comparisonOracle(label string, accept func(int) bool) *Oracle {
	return MakeOracle(label, func(args []Value) (bool, error) {
		if len(args) != 2 {
			return false, fmt.Errorf("%s takes exactly two arguments, got %d", label, len(args))
		}
		o, err := order(args[0], args[1])
		if err != nil {
			return false, err
		}
		return accept(o), nil
	})
}

// LessThan builds the "<" comparison oracle.
func LessThan() *Oracle { return comparisonOracle("<", func(o int) bool { return o < 0 }) }

// AtMost builds the "<=" comparison oracle.
func AtMost() *Oracle { return comparisonOracle("<=", func(o int) bool { return o <= 0 }) }

// Equal builds the "==" comparison oracle. Prefer unifying a shared
// Variable in the rule body where possible; Equal is for comparing two
// already-bound terms.
func Equal() *Oracle { return comparisonOracle("==", func(o int) bool { return o == 0 }) }

// NotEqual builds the "!=" comparison oracle.
func NotEqual() *Oracle { return comparisonOracle("!=", func(o int) bool { return o != 0 }) }

// AtLeast builds the ">=" comparison oracle.
func AtLeast() *Oracle { return comparisonOracle(">=", func(o int) bool { return o >= 0 }) }

// GreaterThan builds the ">" comparison oracle.
func GreaterThan() *Oracle { return comparisonOracle(">", func(o int) bool { return o > 0 }) }
