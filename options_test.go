package microlog

import "testing"

func TestFnMappingMergeRunTimeOverrides(t *testing.T) {
	base := FnMapping{"f": func(a []Value) (any, error) { return "base", nil }}
	override := FnMapping{"f": func(a []Value) (any, error) { return "override", nil }}
	merged := base.merge(override)
	ret, _ := merged["f"](nil)
	if ret != "override" {
		t.Fatalf("run-time fnmapping entries should win over construction-time ones, got %v", ret)
	}
}

func TestFnMappingMergeKeepsUnshadowedEntries(t *testing.T) {
	base := FnMapping{"f": func(a []Value) (any, error) { return "f", nil }}
	merged := base.merge(FnMapping{"g": func(a []Value) (any, error) { return "g", nil }})
	if _, ok := merged["f"]; !ok {
		t.Fatalf("merge should keep construction-time entries not shadowed by an override")
	}
	if _, ok := merged["g"]; !ok {
		t.Fatalf("merge should add new override entries")
	}
}

func TestProgramOptionsDefaults(t *testing.T) {
	o := newProgramOptions()
	if !o.reorderBodies {
		t.Fatalf("body reordering should default to on")
	}
	if o.logger == nil {
		t.Fatalf("a no-op logger should be the default, not nil")
	}
}

func TestWithoutBodyReorderDisablesTheDefault(t *testing.T) {
	o := newProgramOptions(WithoutBodyReorder())
	if o.reorderBodies {
		t.Fatalf("WithoutBodyReorder should turn reordering off")
	}
}

func TestWithCyclesAndExtendedState(t *testing.T) {
	ro := newRunOptions(WithCycles(3), WithExtendedState(true))
	if ro.cycles != 3 {
		t.Fatalf("cycles = %d, want 3", ro.cycles)
	}
	if !ro.extendedState {
		t.Fatalf("extendedState should be true")
	}
}
