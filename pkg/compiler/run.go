package compiler

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// Run compiles path (and its transitive imports) into a scratch build
// directory and delegates execution of the generated entry file to the
// host runtime (spec.md §4.9 "compiles, writes artifacts, delegates
// execution to the host"). It returns the exit code spec.md §6
// specifies: 0 on success, 1 for a user-visible diagnostic, 2 for an
// internal one — and, once the host process itself starts, whatever
// exit code that process reports.
func (c *Compiler) Run(path string) (int, error) {
	tmp, err := os.MkdirTemp("", "lisc-run-*")
	if err != nil {
		return 1, err
	}
	defer os.RemoveAll(tmp)

	br, err := c.Build(path, tmp)
	if err != nil {
		return 1, err
	}
	for _, m := range br.Modules {
		if m.Err != nil {
			return diagnosticExitCode(m.Err), m.Err
		}
	}

	entryRel, err := filepath.Rel(filepath.Dir(path), path)
	if err != nil {
		entryRel = filepath.Base(path)
	}
	entryOut := filepath.Join(tmp, strings.TrimSuffix(entryRel, sourceExt)+".ts")

	argv := c.opts.nodeCommand()
	cmd := exec.Command(argv[0], append(argv[1:], entryOut)...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Stdin = os.Stdin

	runErr := cmd.Run()
	if runErr == nil {
		return 0, nil
	}
	if exitErr, ok := runErr.(*exec.ExitError); ok {
		return exitErr.ExitCode(), nil
	}
	return 1, runErr
}
