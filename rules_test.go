package microlog

import "testing"

func TestRangeRestrictionAcceptsBoundHead(t *testing.T) {
	q, r, p := MakeRelation("q"), MakeRelation("r"), MakeRelation("p")
	x := MakeVariable("X")
	rule := NewRule(p.Of(x).Now(), PosLit(q.Of(x)), NegLit(r.Of(x)))
	if !rule.isRangeRestricted() {
		t.Fatalf("p(X) <- q(X), ~r(X) should be range restricted")
	}
}

func TestRangeRestrictionRejectsUnboundHeadVariable(t *testing.T) {
	q, p := MakeRelation("q"), MakeRelation("p")
	x, y := MakeVariable("X"), MakeVariable("Y")
	rule := NewRule(p.Of(x, y).Now(), PosLit(q.Of(x)))
	if rule.isRangeRestricted() {
		t.Fatalf("p(X, Y) <- q(X) should not be range restricted: Y never appears positively")
	}
}

func TestRangeRestrictionRejectsUnboundNegatedVariable(t *testing.T) {
	q, r, p := MakeRelation("q"), MakeRelation("r"), MakeRelation("p")
	x, y := MakeVariable("X"), MakeVariable("Y")
	rule := NewRule(p.Of(x).Now(), PosLit(q.Of(x)), NegLit(r.Of(y)))
	if rule.isRangeRestricted() {
		t.Fatalf("p(X) <- q(X), ~r(Y) should not be range restricted: Y is only ever negated")
	}
}

func TestRangeRestrictionEmptyBodyRequiresGroundHead(t *testing.T) {
	p := MakeRelation("p")
	ground := NewRule(p.Of(1, 2).Now())
	if !ground.isRangeRestricted() {
		t.Fatalf("a ground fact should be range restricted")
	}
	x := MakeVariable("X")
	open := NewRule(p.Of(x).Now())
	if open.isRangeRestricted() {
		t.Fatalf("a variable head with an empty body should not be range restricted")
	}
}

func TestCanonicalBodyOrdersNegationAfterPositive(t *testing.T) {
	q, r, p := MakeRelation("q"), MakeRelation("r"), MakeRelation("p")
	x := MakeVariable("X")
	lt := MakeOracle("<", func(a []Value) (bool, error) { return true, nil })
	rule := NewRule(p.Of(x).Now(), NegLit(r.Of(x)), lt.Test(x), PosLit(q.Of(x)))

	canon := rule.canonicalBody()
	kinds := make([]LiteralKind, len(canon.Body.Literals))
	for i, l := range canon.Body.Literals {
		kinds[i] = l.Kind
	}
	want := []LiteralKind{Pos, Neg, OraclePos}
	if len(kinds) != len(want) {
		t.Fatalf("canonicalBody changed literal count: got %v", kinds)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Fatalf("canonicalBody order = %v, want Pos, Neg, OraclePos", kinds)
		}
	}
}
