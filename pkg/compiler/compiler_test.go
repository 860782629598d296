package compiler_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lisc-lang/lisc/pkg/compiler"
)

func TestTranspileBasicFunction(t *testing.T) {
	c, err := compiler.New(compiler.Options{CompilerVersion: "test"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	res, err := c.Transpile(`(fn add [a b] (return (+ a b)))`, compiler.TranspileOptions{File: "add.lisc"})
	if err != nil {
		t.Fatalf("Transpile: %v", err)
	}
	if !strings.Contains(res.Code, "function add(") {
		t.Fatalf("expected a function declaration in output, got:\n%s", res.Code)
	}
}

func TestTranspileSessionCacheReturnsSameCode(t *testing.T) {
	c, err := compiler.New(compiler.Options{CompilerVersion: "test"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	source := `(fn id [x] (return x))`
	first, err := c.Transpile(source, compiler.TranspileOptions{File: "id.lisc"})
	if err != nil {
		t.Fatalf("first Transpile: %v", err)
	}
	second, err := c.Transpile(source, compiler.TranspileOptions{File: "id.lisc"})
	if err != nil {
		t.Fatalf("second Transpile: %v", err)
	}
	if first.Code != second.Code {
		t.Fatalf("cached transpile diverged:\n%s\nvs\n%s", first.Code, second.Code)
	}
}

func TestTranspilePropagatesParseErrors(t *testing.T) {
	c, err := compiler.New(compiler.Options{CompilerVersion: "test"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := c.Transpile(`(fn broken [a]`, compiler.TranspileOptions{File: "broken.lisc"}); err == nil {
		t.Fatal("expected a parse error for an unbalanced form")
	}
}

func TestTranspileInlineSourceMapAppendsComment(t *testing.T) {
	c, err := compiler.New(compiler.Options{CompilerVersion: "test", SourceMapMode: compiler.SourceMapInline})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	res, err := c.Transpile(`(fn add [a b] (return (+ a b)))`, compiler.TranspileOptions{File: "add.lisc"})
	if err != nil {
		t.Fatalf("Transpile: %v", err)
	}
	if !strings.Contains(res.Code, "//# sourceMappingURL=data:application/json;base64,") {
		t.Fatalf("expected an inline source-map comment, got:\n%s", res.Code)
	}
}

func TestResolveExportsListsDeclaredNames(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mod.lisc")
	source := "(let answer 42)\n(export [answer])\n"
	if err := os.WriteFile(path, []byte(source), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	c, err := compiler.New(compiler.Options{CompilerVersion: "test"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	names, err := c.ResolveExports(path)
	if err != nil {
		t.Fatalf("ResolveExports: %v", err)
	}
	if len(names) != 1 || names[0] != "answer" {
		t.Fatalf("expected [answer], got %v", names)
	}
}

func TestBuildWritesArtifactsAndDependencyGraph(t *testing.T) {
	dir := t.TempDir()
	libPath := filepath.Join(dir, "lib.lisc")
	mainPath := filepath.Join(dir, "main.lisc")
	out := filepath.Join(dir, "out")

	if err := os.WriteFile(libPath, []byte("(fn double [x] (return (* x 2)))\n(export [double])\n"), 0o644); err != nil {
		t.Fatalf("write lib: %v", err)
	}
	if err := os.WriteFile(mainPath, []byte(`(import [double] from "./lib.lisc")`+"\n"), 0o644); err != nil {
		t.Fatalf("write main: %v", err)
	}

	c, err := compiler.New(compiler.Options{CompilerVersion: "test"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	br, err := c.Build(mainPath, out)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	for _, m := range br.Modules {
		if m.Err != nil {
			t.Fatalf("module %s failed: %v", m.Path, m.Err)
		}
	}
	if _, err := os.Stat(filepath.Join(out, "main.ts")); err != nil {
		t.Fatalf("expected main.ts written: %v", err)
	}
	if _, err := os.Stat(filepath.Join(out, "lib.ts")); err != nil {
		t.Fatalf("expected lib.ts written: %v", err)
	}
	if _, err := os.Stat(filepath.Join(out, "lisc-deps.json")); err != nil {
		t.Fatalf("expected lisc-deps.json written: %v", err)
	}
}

func TestCompileDirContinuesPastAFailingModule(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.lisc")
	bad := filepath.Join(dir, "bad.lisc")
	if err := os.WriteFile(good, []byte("(fn ok [] (return 1))\n"), 0o644); err != nil {
		t.Fatalf("write good: %v", err)
	}
	if err := os.WriteFile(bad, []byte("(fn broken [a]\n"), 0o644); err != nil {
		t.Fatalf("write bad: %v", err)
	}

	c, err := compiler.New(compiler.Options{CompilerVersion: "test"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	results, err := c.CompileDir(dir)
	if err != nil {
		t.Fatalf("CompileDir: %v", err)
	}

	var sawGood, sawBad bool
	for _, r := range results {
		switch r.Path {
		case good:
			sawGood = r.Err == nil
		case bad:
			sawBad = r.Err != nil
		}
	}
	if !sawGood {
		t.Fatal("expected good.lisc to compile successfully")
	}
	if !sawBad {
		t.Fatal("expected bad.lisc to report its parse error")
	}
}
