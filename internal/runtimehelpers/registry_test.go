package runtimehelpers

import (
	"strings"
	"testing"
)

func TestRosterIsClosedAndComplete(t *testing.T) {
	want := []Name{
		DynamicGet, DynamicCall, CallFn, Range, ToSequence, ForEach, HashMap,
		Throw, DeepFreeze, GetOp, LazySeq, Delay, Gensym, Trampoline,
	}
	if len(Roster) != len(want) {
		t.Fatalf("roster has %d entries, want %d", len(Roster), len(want))
	}
	for _, n := range want {
		if !IsHelper(string(n)) {
			t.Errorf("expected %q to be a known helper", n)
		}
	}
	if IsHelper("not-a-helper") {
		t.Error("IsHelper should reject names outside the roster")
	}
}

func TestUsageMarkAndReport(t *testing.T) {
	u := NewUsage()
	u.Mark(Range)
	u.Mark(Range)
	u.Mark(DynamicGet)

	if u.Count(Range) != 2 {
		t.Errorf("got %d, want 2", u.Count(Range))
	}
	names := u.Names()
	if len(names) != 2 || names[0] != string(DynamicGet) || names[1] != string(Range) {
		t.Errorf("unexpected sorted names: %v", names)
	}

	doc, err := u.Report()
	if err != nil {
		t.Fatalf("Report: %v", err)
	}
	got := UsedHelpersFromReport(doc)
	if len(got) != 2 {
		t.Fatalf("UsedHelpersFromReport: %v", got)
	}
}

func TestUsageMarkPanicsOnUnknownHelper(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for unknown helper")
		}
	}()
	NewUsage().Mark(Name("not-real"))
}

func TestRosterJSON(t *testing.T) {
	doc, err := RosterJSON()
	if err != nil {
		t.Fatalf("RosterJSON: %v", err)
	}
	if !strings.Contains(doc, string(DynamicGet)) {
		t.Errorf("expected roster JSON to mention %q, got %s", DynamicGet, doc)
	}
}

func TestModuleSourceExportsEveryHelper(t *testing.T) {
	exported := map[Name]string{
		DynamicGet:  "dynamicGet",
		DynamicCall: "dynamicCall",
		CallFn:      "callFn",
		Range:       "range",
		ToSequence:  "toSequence",
		ForEach:     "forEach",
		HashMap:     "hashMap",
		Throw:       "throwHelper",
		DeepFreeze:  "deepFreeze",
		GetOp:       "getOp",
		LazySeq:     "lazySeq",
		Delay:       "delay",
		Gensym:      "gensym",
		Trampoline:  "trampoline",
	}
	for helper, jsName := range exported {
		if !strings.Contains(ModuleSource, "export function "+jsName) &&
			!strings.Contains(ModuleSource, "export function "+jsName+"<") {
			t.Errorf("ModuleSource missing export for helper %q (expected function %q)", helper, jsName)
		}
	}
}
