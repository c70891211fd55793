package microlog

import "testing"

func TestNotFlipsEveryPairedKind(t *testing.T) {
	edge := MakeRelation("edge")
	pos := PosLit(edge.Of("a", "b"))
	if Not(pos).Kind != Neg {
		t.Fatalf("Not(Pos) should be Neg")
	}
	if Not(Not(pos)).Kind != Pos {
		t.Fatalf("Not(Not(Pos)) should be Pos again")
	}

	o := MakeOracle("lt", func(a []Value) (bool, error) { return true, nil })
	op := o.Test("X")
	if Not(op).Kind != OracleNeg {
		t.Fatalf("Not(OraclePos) should be OracleNeg")
	}

	c := MakeCall("write", func(a []Value) (any, error) { return Unit{}, nil })
	cl := c.Do("X")
	if Not(cl).Kind != CallNeg {
		t.Fatalf("Not(Call) should be CallNeg")
	}
	if Not(Not(cl)).Kind != LitCall {
		t.Fatalf("Not(Not(Call)) should be Call again")
	}
}

func TestHeadConstructorsRejectNonRelation(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("AtStart on a non-Relation formula should panic")
		}
	}()
	o := MakeOracle("lt", func(a []Value) (bool, error) { return true, nil })
	_ = Formula{Sym: o, Args: nil}.AtStart()
}

func TestCallLiteralNowAndAtNext(t *testing.T) {
	c := MakeCall("write", func(a []Value) (any, error) { return Unit{}, nil })
	h := c.Do("X").AtNext()
	if h.When != Next || h.Lit.Kind != LitCall {
		t.Fatalf("Call.AtNext should produce a NEXT Call head, got %+v", h)
	}
	h2 := c.Do("X").Now()
	if h2.When != Always {
		t.Fatalf("Call.Now should produce an Always-annotated Call head")
	}
}

func TestFormulaVariables(t *testing.T) {
	x := MakeVariable("X")
	edge := MakeRelation("edge")
	f := edge.Of(x, "b", Blank)
	vars := f.Variables()
	if len(vars) != 1 {
		t.Fatalf("Variables() should find exactly one Variable arg, got %d", len(vars))
	}
	if _, ok := vars[x]; !ok {
		t.Fatalf("Variables() should include X")
	}
}

func TestConjunctionHasNoNotMethod(t *testing.T) {
	// This test documents a compile-time guarantee rather than exercising
	// runtime behavior: *Conjunction carries no Not method, so negating an
	// entire conjunction is a type error the compiler catches, not
	// something this test can provoke at runtime.
	edge := MakeRelation("edge")
	conj := And(PosLit(edge.Of("a", "b")))
	if len(conj.Literals) != 1 {
		t.Fatalf("And should collect its literals")
	}
}
