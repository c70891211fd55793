package microlog

import (
	"fmt"
	"sort"
)

// Rule is a head literal plus an optional body conjunction. A nil Body
// means the head is a fact.
type Rule struct {
	Head Head
	Body *Conjunction
}

// NewRule attaches a body to a head, completing the algebraic surface's
// "attach a body to a head" combinator (§4.2). Call with no body literals
// for a fact.
func NewRule(head Head, body ...Literal) Rule {
	if len(body) == 0 {
		return Rule{Head: head}
	}
	return Rule{Head: head, Body: And(body...)}
}

func (r Rule) String() string {
	if r.Body == nil || len(r.Body.Literals) == 0 {
		return r.Head.String()
	}
	return fmt.Sprintf("%s <- %s", r.Head.String(), r.Body.String())
}

func (r Rule) hasEmptyBody() bool {
	return r.Body == nil || len(r.Body.Literals) == 0
}

// isRangeRestricted implements §4.3: with an empty body the head must
// have no variables; otherwise every variable in the head and in any
// Neg/Oracle*/CallNeg body literal must also appear in some Pos or
// CallLit body literal.
func (r Rule) isRangeRestricted() bool {
	if r.hasEmptyBody() {
		return len(r.Head.Lit.variables()) == 0
	}
	positive := make(map[Variable]struct{})
	dependent := make(map[Variable]struct{})
	for v := range r.Head.Lit.variables() {
		dependent[v] = struct{}{}
	}
	for _, lit := range r.Body.Literals {
		target := dependent
		if lit.binds() {
			target = positive
		}
		for v := range lit.variables() {
			target[v] = struct{}{}
		}
	}
	for v := range dependent {
		if _, ok := positive[v]; !ok {
			return false
		}
	}
	return true
}

// literalOrder is the canonical body order from §4.4: bind before you
// test, and evaluate negation/oracles only once their variables are
// bound.
func literalOrder(k LiteralKind) int {
	switch k {
	case Pos:
		return 0
	case LitCall:
		return 1
	case Neg:
		return 2
	case CallNeg:
		return 3
	case OraclePos:
		return 4
	case OracleNeg:
		return 5
	default:
		return 6
	}
}

// canonicalBody returns a copy of the rule with its body literals
// reordered per §4.4, preserving relative order within a kind (stable
// sort).
func (r Rule) canonicalBody() Rule {
	if r.hasEmptyBody() {
		return r
	}
	lits := append([]Literal(nil), r.Body.Literals...)
	sort.SliceStable(lits, func(i, j int) bool {
		return literalOrder(lits[i].Kind) < literalOrder(lits[j].Kind)
	})
	return Rule{Head: r.Head, Body: &Conjunction{Literals: lits}}
}
