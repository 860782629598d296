package cmd

import (
	"fmt"
	"os"

	"github.com/lisc-lang/lisc/internal/errors"
	"github.com/lisc-lang/lisc/pkg/compiler"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Compile and execute a lisc file",
	Long: `Compile a lisc entry point (and its imports) to a scratch build
directory and delegate execution of the generated TypeScript to the
configured host runtime (node by default).

The process exits with the host runtime's own exit code on a normal
run, or a diagnostic-derived code (1 for a user-visible error, 2 for an
internal one) if compilation itself fails before node ever starts.`,
	Args: cobra.ExactArgs(1),
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	configPath, _ := cmd.Flags().GetString("config")
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	c, err := compiler.New(compilerOptions(cfg))
	if err != nil {
		return fmt.Errorf("failed to construct compiler: %w", err)
	}

	code, runErr := c.Run(args[0])
	if runErr != nil {
		fmt.Fprintln(os.Stderr, diagnosticText(runErr))
	}
	exitCode = code
	return nil
}

// diagnosticText renders err as the diagnostic's own pretty-printed form
// when err is a *errors.Diagnostic, and as a plain message otherwise.
func diagnosticText(err error) string {
	if d, ok := err.(*errors.Diagnostic); ok {
		return d.Format(false)
	}
	return err.Error()
}
