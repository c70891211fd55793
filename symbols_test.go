package microlog

import "testing"

func TestRelationIdentityIsByName(t *testing.T) {
	a := MakeRelation("edge")
	b := MakeRelation("edge")
	if symbolKey(a) != symbolKey(b) {
		t.Fatalf("two Relations sharing a name must be the same symbol")
	}
	if symbolKey(MakeRelation("edge")) == symbolKey(MakeRelation("node")) {
		t.Fatalf("Relations with different names must be different symbols")
	}
}

func TestOracleIdentityIsByWrapper(t *testing.T) {
	fn := func(args []Value) (bool, error) { return true, nil }
	a := MakeOracle("same-label", fn)
	b := MakeOracle("same-label", fn)
	if symbolKey(a) == symbolKey(b) {
		t.Fatalf("two distinct Oracle wrappers must not be the same symbol, even sharing a label and function")
	}
}

func TestNamedCallIdentityIsByName(t *testing.T) {
	a := MakeNamedCall("write_motor")
	b := MakeNamedCall("write_motor")
	if symbolKey(a) != symbolKey(b) {
		t.Fatalf("two named Calls sharing a name must resolve to the same fact-producer")
	}

	bound := MakeCall("write_motor", func(args []Value) (any, error) { return Unit{}, nil })
	if symbolKey(a) == symbolKey(bound) {
		t.Fatalf("a named Call must not collide with a directly bound Call of the same label")
	}
}

func TestRelationOfProducesFormula(t *testing.T) {
	edge := MakeRelation("edge")
	f := edge.Of("a", "b")
	if f.Sym != Symbol(edge) {
		t.Fatalf("Of should build a Formula over the relation itself")
	}
	if len(f.Args) != 2 {
		t.Fatalf("Of should preserve argument count")
	}
}
