// Command lisc is the Lisp-to-TypeScript compiler's command-line front
// end: lexing, parsing, and macro-expansion for debugging the pipeline,
// plus build/run against the pkg/compiler driver.
package main

import (
	"os"

	"github.com/lisc-lang/lisc/cmd/lisc/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
