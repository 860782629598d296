// Package runtimehelpers defines the closed set of runtime-helper names
// the emitter may reference. The roster is finite and
// implementation-stable: adding a helper is a breaking change to the
// host contract (spec.md §4.2, §9).
package runtimehelpers

// Name is a helper identifier from the closed roster.
type Name string

const (
	DynamicGet  Name = "dynamic-get"
	DynamicCall Name = "dynamic-call"
	CallFn      Name = "call-fn"
	Range       Name = "range"
	ToSequence  Name = "to-sequence"
	ForEach     Name = "for-each"
	HashMap     Name = "hash-map"
	Throw       Name = "throw"
	DeepFreeze  Name = "deep-freeze"
	GetOp       Name = "get-op"
	LazySeq     Name = "lazy-seq"
	Delay       Name = "delay"
	Gensym      Name = "gensym"
	Trampoline  Name = "trampoline"
)

// Helper describes one entry of the roster: its exported JS identifier
// and a one-line behavioral contract (not a signature — spec.md §4.2).
type Helper struct {
	Name     Name
	Contract string
}

// Roster is the complete, ordered set of runtime helpers the emitter may
// reference. Order matches spec.md §4.2's table.
var Roster = []Helper{
	{DynamicGet, "Given a target and a property key, returns the value; for function targets, additionally attempts a one-argument call with the key and uses its result if defined; otherwise returns a provided default."},
	{DynamicCall, "Resolves a method via dynamic-get and applies it; records failures with source position for error reporting."},
	{CallFn, "Applies a callable with captured this; attaches source position to any raised error."},
	{Range, "Produces a lazy numeric range (inclusive/exclusive, step, possibly infinite)."},
	{ToSequence, "Coerces a value to an iterable sequence (arrays, strings, numbers -> 0..n, iterables -> array, else singleton)."},
	{ForEach, "Iterates any sequence, passing (element, index)."},
	{HashMap, "Builds a keyed record from alternating key/value arguments."},
	{Throw, "Unconditionally raises, wrapping non-error values."},
	{DeepFreeze, "Recursively makes a value immutable."},
	{GetOp, "Maps a textual operator to its binary/unary function."},
	{LazySeq, "Constructs a lazy deferred computation."},
	{Delay, "Constructs a memoized deferred computation."},
	{Gensym, "Returns a textually fresh symbol name."},
	{Trampoline, "Repeatedly invokes a zero-arg thunk while the result is a thunk, returning the first non-thunk value."},
}

var byName = func() map[Name]Helper {
	m := make(map[Name]Helper, len(Roster))
	for _, h := range Roster {
		m[h.Name] = h
	}
	return m
}()

// IsHelper reports whether name belongs to the closed roster.
func IsHelper(name string) bool {
	_, ok := byName[Name(name)]
	return ok
}

// Lookup returns the Helper for name and whether it was found.
func Lookup(name string) (Helper, bool) {
	h, ok := byName[Name(name)]
	return h, ok
}
