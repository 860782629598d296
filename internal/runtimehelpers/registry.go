package runtimehelpers

import (
	"fmt"
	"sort"
	"sync"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// Usage tracks which roster helpers a single compilation actually
// referenced. The lowerer, optimizer and emitter each call Mark where
// they produce a helper reference; the driver reads the final set for its used_helpers
// report (SPEC_FULL.md §4.2, §4.9).
type Usage struct {
	mu   sync.Mutex
	seen map[Name]int
}

// NewUsage returns an empty usage tracker.
func NewUsage() *Usage {
	return &Usage{seen: make(map[Name]int)}
}

// Mark records one reference to name. It panics if name is not in the
// closed roster: referencing an undeclared helper is a CodeGenError at
// the call site, not a silent no-op (spec.md §7).
func (u *Usage) Mark(name Name) {
	if _, ok := byName[name]; !ok {
		panic(fmt.Sprintf("runtimehelpers: %q is not in the closed roster", name))
	}
	u.mu.Lock()
	defer u.mu.Unlock()
	u.seen[name]++
}

// Names returns the helpers referenced at least once, sorted for
// deterministic reporting.
func (u *Usage) Names() []string {
	u.mu.Lock()
	defer u.mu.Unlock()
	out := make([]string, 0, len(u.seen))
	for n := range u.seen {
		out = append(out, string(n))
	}
	sort.Strings(out)
	return out
}

// Count returns how many times name was marked.
func (u *Usage) Count(name Name) int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.seen[name]
}

// Report builds the driver-facing `used_helpers` JSON document:
//
//	{"used_helpers": ["dynamic-get", "range", ...], "counts": {"range": 3}}
//
// It is assembled with sjson rather than encoding/json.
func (u *Usage) Report() (string, error) {
	doc := "{}"
	var err error
	doc, err = sjson.Set(doc, "used_helpers", u.Names())
	if err != nil {
		return "", err
	}
	u.mu.Lock()
	counts := make(map[string]int, len(u.seen))
	for n, c := range u.seen {
		counts[string(n)] = c
	}
	u.mu.Unlock()
	doc, err = sjson.Set(doc, "counts", counts)
	if err != nil {
		return "", err
	}
	return doc, nil
}

// RosterJSON serializes the full closed roster (name + contract) for
// `lisc helpers --json`-style introspection.
func RosterJSON() (string, error) {
	doc := "{}"
	var err error
	for i, h := range Roster {
		doc, err = sjson.Set(doc, fmt.Sprintf("helpers.%d.name", i), string(h.Name))
		if err != nil {
			return "", err
		}
		doc, err = sjson.Set(doc, fmt.Sprintf("helpers.%d.contract", i), h.Contract)
		if err != nil {
			return "", err
		}
	}
	return doc, nil
}

// UsedHelpersFromReport extracts the `used_helpers` array back out of a
// document produced by Report, for tests and for the driver's build
// manifest merge step.
func UsedHelpersFromReport(doc string) []string {
	result := gjson.Get(doc, "used_helpers")
	if !result.IsArray() {
		return nil
	}
	names := make([]string, 0, len(result.Array()))
	for _, v := range result.Array() {
		names = append(names, v.String())
	}
	return names
}
