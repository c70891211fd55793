package microlog

import "testing"

func TestMakeVariablesBuildsEachName(t *testing.T) {
	vars := MakeVariables("X", "Y", "Z")
	if len(vars) != 3 || vars[1].Name != "Y" {
		t.Fatalf("MakeVariables(...) = %v", vars)
	}
}

func TestMakeAnonymousVariablesAreDistinct(t *testing.T) {
	a := MakeAnonymousVariable()
	b := MakeAnonymousVariable()
	if a == b {
		t.Fatalf("two anonymous variables should never collide")
	}
}

func TestProgramRunStopsAtCycleBudget(t *testing.T) {
	p := MakeRelation("p")
	prog, err := NewProgram([]Rule{NewRule(p.Of().Now())})
	if err != nil {
		t.Fatalf("NewProgram: %v", err)
	}
	ticks := 0
	err = prog.RunCB(func(Observation) error {
		ticks++
		return nil
	}, WithCycles(4))
	if err != nil {
		t.Fatalf("RunCB: %v", err)
	}
	if ticks != 4 {
		t.Fatalf("expected exactly 4 ticks, got %d", ticks)
	}
}

func TestProgramRunGeneratorIsPullBased(t *testing.T) {
	p := MakeRelation("p")
	prog, err := NewProgram([]Rule{NewRule(p.Of().Now())})
	if err != nil {
		t.Fatalf("NewProgram: %v", err)
	}
	ev := prog.RunGenerator(WithCycles(2))
	if _, ok, _ := ev.Next(); !ok {
		t.Fatalf("expected a first tick")
	}
	if _, ok, _ := ev.Next(); !ok {
		t.Fatalf("expected a second tick")
	}
	if _, ok, _ := ev.Next(); ok {
		t.Fatalf("expected no third tick once the cycle budget is spent")
	}
}

func TestProgramRunCBStopsOnCallbackError(t *testing.T) {
	p := MakeRelation("p")
	prog, err := NewProgram([]Rule{NewRule(p.Of().Now())})
	if err != nil {
		t.Fatalf("NewProgram: %v", err)
	}
	sentinel := errInCallback{}
	got := prog.RunCB(func(Observation) error { return sentinel }, WithCycles(10))
	if got != sentinel {
		t.Fatalf("RunCB should propagate the callback's own error, got %v", got)
	}
}

type errInCallback struct{}

func (errInCallback) Error() string { return "stop" }
