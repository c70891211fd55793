package microlog

import (
	"fmt"

	"go.uber.org/zap"
)

// Program is a validated, stratified rule set, ready to be stepped by an
// Evaluator (§4.5, §4.7). Construction is the only place rules are
// checked; once built, a Program can be driven by any number of
// independent Evaluators (e.g. to explore several initial states).
type Program struct {
	initial []Rule   // START-headed facts, asserted once at tick 0
	always  []Rule   // trivial Always rules: empty body, or oracle-only body
	strata  [][]Rule // unstratified Always rules, grouped into dependency layers
	next    []Rule   // NEXT-headed rules and Call-headed rules
	fn      FnMapping
	logger  *zap.Logger
}

// NewProgram validates and stratifies rules, returning a Program or an
// aggregated error describing every violation found (§7). No rule is
// ever partially accepted: either every rule is well-shaped, range
// restricted, and the resulting dependency graph stratifiable, or
// construction fails outright.
func NewProgram(rules []Rule, opts ...ProgramOption) (*Program, error) {
	options := newProgramOptions(opts...)
	logger := options.logger

	normalized := make([]Rule, len(rules))
	for i, r := range rules {
		if options.reorderBodies {
			r = r.canonicalBody()
		}
		normalized[i] = r
	}

	var errs buildError
	for _, r := range normalized {
		validateRuleShape(&errs, r)
	}
	for _, r := range normalized {
		if !r.isRangeRestricted() {
			errs.add(r, ErrRangeRestriction, "a head/negated/oracle variable is never positively bound")
		} else if !options.reorderBodies && !r.hasEmptyBody() {
			bound := make(map[Variable]struct{})
		order:
			for _, lit := range r.Body.Literals {
				for v := range lit.variables() {
					if _, ok := bound[v]; !ok && !lit.binds() {
						errs.add(r, ErrRangeRestriction, fmt.Sprintf("%s is tested before any earlier literal binds it", v))
						break order
					}
					bound[v] = struct{}{}
				}
			}
		}
	}
	if err := errs.errOrNil(); err != nil {
		return nil, err
	}

	var initial, always, next, unstratifiedCandidates []Rule
	for _, r := range normalized {
		switch {
		case r.Head.When == Start:
			initial = append(initial, r)
		case r.Head.When == Next || r.Head.Lit.Kind == LitCall:
			next = append(next, r)
		case r.hasEmptyBody() || allOracleBody(r):
			always = append(always, r)
		default:
			unstratifiedCandidates = append(unstratifiedCandidates, r)
		}
	}

	edges, heads := buildDependencyGraph(unstratifiedCandidates)
	relStrata, err := stratify(edges)
	if err != nil {
		return nil, err
	}

	byRelation := make(map[Relation][]Rule, len(heads))
	for _, r := range unstratifiedCandidates {
		head := r.Head.Lit.Formula.Sym.(Relation)
		byRelation[head] = append(byRelation[head], r)
	}
	strata := make([][]Rule, 0, len(relStrata))
	for _, layer := range relStrata {
		var group []Rule
		for _, rel := range layer {
			group = append(group, byRelation[rel]...)
		}
		strata = append(strata, group)
	}

	logger.Debug("program constructed",
		zap.Int("initial", len(initial)),
		zap.Int("always", len(always)),
		zap.Int("strata", len(strata)),
		zap.Int("next", len(next)),
	)

	return &Program{
		initial: initial,
		always:  always,
		strata:  strata,
		next:    next,
		fn:      options.fnmapping,
		logger:  logger,
	}, nil
}

// allOracleBody reports whether every body literal is an Oracle literal,
// meaning the rule has no Relation dependency at all and can fire every
// tick without taking part in stratification.
func allOracleBody(r Rule) bool {
	if r.hasEmptyBody() {
		return true
	}
	for _, lit := range r.Body.Literals {
		if lit.Kind != OraclePos && lit.Kind != OracleNeg {
			return false
		}
	}
	return true
}

func validateRuleShape(errs *buildError, r Rule) {
	switch r.Head.Lit.Kind {
	case Pos:
		if r.Head.When == Start && !r.hasEmptyBody() {
			errs.add(r, ErrBadRuleShape, "a START rule must have an empty body")
		}
	case LitCall:
		if r.Head.When == Start {
			errs.add(r, ErrBadRuleShape, "a Call cannot be annotated START")
		}
	default:
		errs.add(r, ErrBadRuleShape, fmt.Sprintf("head literal kind %s cannot head a rule", r.Head.Lit.Kind))
	}
}
