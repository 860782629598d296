package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Version information (set by build flags)
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// exitCode is the process exit code Execute returns. Most commands
// report failure through cobra's usual error return, which maps to 1;
// runCmd instead needs the full 0/1/2/host-process-code range spec.md
// §6 specifies, so it sets exitCode directly and returns nil so cobra
// doesn't also print an "Error:" line for an already-reported failure.
var exitCode int

var rootCmd = &cobra.Command{
	Use:   "lisc",
	Short: "lisc is a Lisp-to-TypeScript compiler",
	Long: `lisc compiles a small Lisp dialect to readable, source-mapped
TypeScript. It exposes every pipeline stage individually for
debugging (lex, parse, expand) as well as the full build/run driver.`,
	Version: Version,
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		if exitCode == 0 {
			exitCode = 1
		}
	}
	return exitCode
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().Bool("trace", false, "trace compiler pipeline stages")
	rootCmd.PersistentFlags().String("config", "", "path to a lisc.yaml config file (default: ./lisc.yaml if present)")
}
