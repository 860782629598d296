package resolver

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/lisc-lang/lisc/internal/parser"
)

func TestClassifySpecifiers(t *testing.T) {
	cases := map[string]Scheme{
		"./foo":          SchemeRelative,
		"../bar":         SchemeRelative,
		"https://x.io/a": SchemeURL,
		"http://x.io/a":  SchemeURL,
		"/abs/path":      SchemeAbsolute,
		"some-package":   SchemePackage,
	}
	for spec, want := range cases {
		if got := Classify(spec); got != want {
			t.Errorf("Classify(%q) = %v, want %v", spec, got, want)
		}
	}
}

func TestExportsStablePointerAcrossCycle(t *testing.T) {
	g := NewGraph()
	a, existed := g.GetOrCreate("/a")
	if existed {
		t.Fatal("expected first GetOrCreate to create a new record")
	}
	a.Exports.Set("base", 10)

	// Simulate B importing A while A is still resolving.
	aAgain, existed := g.GetOrCreate("/a")
	if !existed {
		t.Fatal("expected second GetOrCreate to find the existing record")
	}
	if aAgain.Exports != a.Exports {
		t.Fatal("expected the same Exports pointer across a cyclic re-entry")
	}
	v, ok := aAgain.Exports.Get("base")
	if !ok || v != 10 {
		t.Fatalf("expected base=10 visible through the shared pointer, got %v, %v", v, ok)
	}
}

func TestResolveImportsLocalSequential(t *testing.T) {
	dir := t.TempDir()
	mainFile := filepath.Join(dir, "main.lisc")
	depFile := filepath.Join(dir, "dep.lisc")
	if err := os.WriteFile(depFile, []byte("(export [x])(export \"x\" 1)"), 0o644); err != nil {
		t.Fatal(err)
	}

	r := New(nil, "test")
	recs, errs := r.ResolveImports(context.Background(), mainFile, []ImportSpec{{Specifier: "./dep.lisc"}})
	rec, err := recs[0], errs[0]
	if err != nil {
		t.Fatalf("ResolveImports: %v", err)
	}
	if rec.Status != StatusCompiled {
		t.Fatalf("expected StatusCompiled, got %v", rec.Status)
	}
	if len(rec.AST) == 0 {
		t.Fatal("expected parsed forms")
	}
}

func TestDeclaredExportNames(t *testing.T) {
	forms, err := parser.Parse("test.lisc", `(export [a b]) (export "c" 1)`)
	if err != nil {
		t.Fatal(err)
	}
	names := DeclaredExportNames(forms)
	want := map[string]bool{"a": true, "b": true, "c": true}
	if len(names) != 3 {
		t.Fatalf("expected 3 names, got %v", names)
	}
	for _, n := range names {
		if !want[n] {
			t.Errorf("unexpected export name %q", n)
		}
	}
}

func TestCacheRoundTrip(t *testing.T) {
	dir := t.TempDir()
	c, err := OpenCache(dir)
	if err != nil {
		t.Fatal(err)
	}
	hash := HashSource("(export [x])")
	if err := c.Store(CacheEntry{Path: "/a", SourceHash: hash, CompilerVersion: "v1", ArtifactPath: "/out/a.ts"}); err != nil {
		t.Fatal(err)
	}

	reopened, err := OpenCache(dir)
	if err != nil {
		t.Fatal(err)
	}
	entry, ok := reopened.Lookup("/a", hash, "v1")
	if !ok {
		t.Fatal("expected cache hit after reopening manifest from disk")
	}
	if entry.ArtifactPath != "/out/a.ts" {
		t.Errorf("got %q", entry.ArtifactPath)
	}

	if _, ok := reopened.Lookup("/a", hash, "v2"); ok {
		t.Fatal("expected cache miss on compiler version mismatch")
	}
}
