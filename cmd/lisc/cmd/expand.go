package cmd

import (
	"fmt"
	"os"

	"github.com/lisc-lang/lisc/internal/macro"
	"github.com/lisc-lang/lisc/internal/parser"
	"github.com/spf13/cobra"
)

var expandEval string

var expandCmd = &cobra.Command{
	Use:   "expand [file]",
	Short: "Macro-expand lisc source and print the resulting forms",
	Long: `Parse lisc source and fully expand its macros, printing the
forms that reach the lowerer. Useful for debugging a macro definition
or confirming how a built-in sugar form desugars.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExpand,
}

func init() {
	rootCmd.AddCommand(expandCmd)

	expandCmd.Flags().StringVarP(&expandEval, "eval", "e", "", "expand inline code instead of reading from file")
}

func runExpand(cmd *cobra.Command, args []string) error {
	input, file, err := readCommandInput(expandEval, args)
	if err != nil {
		return err
	}

	forms, parseErr := parser.Parse(file, input)
	if parseErr != nil {
		fmt.Fprintf(os.Stderr, "parse error: %s\n", parseErr)
		return fmt.Errorf("parsing failed")
	}

	ex := macro.New(file, nil)
	expanded := ex.Expand(forms)
	if errs := ex.Errors(); len(errs) > 0 {
		for _, e := range errs {
			fmt.Fprintln(os.Stderr, e.Format(false))
		}
		return fmt.Errorf("macro expansion failed with %d error(s)", len(errs))
	}

	for _, f := range expanded {
		fmt.Println(f.String())
	}
	return nil
}
