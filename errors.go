package microlog

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/multierr"
)

// Construction-time error kinds (§7). Program() wraps these with rule
// context via fmt.Errorf("%w: ...", ErrX) and aggregates every violation
// it finds across all rules with multierr, rather than stopping at the
// first.
var (
	// ErrRangeRestriction is returned when a rule's head or a negated/
	// oracle body literal mentions a variable never positively bound in
	// the body (§4.3).
	ErrRangeRestriction = errors.New("microlog: rule not range-restricted")

	// ErrBadRuleShape covers every construction-time shape violation
	// from §7: a START head with a non-empty body, a Call annotated
	// START, or a head that is neither a Relation nor a Call formula.
	ErrBadRuleShape = errors.New("microlog: bad rule shape")

	// ErrUnstratifiable is returned when the relation dependency graph
	// has a cycle through a negative edge (§4.5 step 4).
	ErrUnstratifiable = errors.New("microlog: program is not stratifiable")
)

// Evaluation-time error kinds (§7). These abort the current tick; the
// error surfaces to the host on the next observation (see Evaluator.Err).
var (
	// ErrCallFailed wraps an error or panic from a host Call function.
	ErrCallFailed = errors.New("microlog: call failed")

	// ErrOracleFailed wraps an error or panic from a host Oracle
	// predicate, or an attempt to evaluate an oracle with an unbound
	// argument.
	ErrOracleFailed = errors.New("microlog: oracle failed")
)

// buildError collects every construction-time violation found while
// validating a rule set, so a host fixing one mistake at a time sees all
// the others in one pass rather than one-by-one.
type buildError struct {
	err error
}

func (b *buildError) add(rule Rule, base error, detail string) {
	b.err = multierr.Append(b.err, fmt.Errorf("%w: %s (%s)", base, rule, detail))
}

func (b *buildError) errOrNil() error {
	return b.err
}

func substKey(sigma Substitution) string {
	if len(sigma) == 0 {
		return ""
	}
	names := make([]string, 0, len(sigma))
	for v := range sigma {
		names = append(names, v.Name)
	}
	sort.Strings(names)
	var b strings.Builder
	for _, n := range names {
		fmt.Fprintf(&b, "%s=%#v;", n, sigma[Variable{Name: n}])
	}
	return b.String()
}
