package cmd

import (
	"fmt"
	"os"

	"github.com/lisc-lang/lisc/internal/ast"
	"github.com/lisc-lang/lisc/internal/parser"
	"github.com/spf13/cobra"
)

var (
	parseEval     string
	parseDumpTree bool
)

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse lisc source and display the S-expression AST",
	Long: `Parse lisc source code into its S-expression AST and print it.

Use -e to parse an inline expression instead of a file. Use --dump-tree
to show the node kinds rather than the re-rendered source text.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)

	parseCmd.Flags().StringVarP(&parseEval, "eval", "e", "", "parse inline code instead of reading from file")
	parseCmd.Flags().BoolVar(&parseDumpTree, "dump-tree", false, "dump node kinds instead of re-rendered source")
}

func runParse(cmd *cobra.Command, args []string) error {
	input, file, err := readCommandInput(parseEval, args)
	if err != nil {
		return err
	}

	forms, parseErr := parser.Parse(file, input)
	if parseErr != nil {
		fmt.Fprintf(os.Stderr, "parse error: %s\n", parseErr)
		return fmt.Errorf("parsing failed")
	}

	if parseDumpTree {
		for _, f := range forms {
			dumpNode(f, 0)
		}
		return nil
	}

	for _, f := range forms {
		fmt.Println(f.String())
	}
	return nil
}

func dumpNode(node ast.Node, indent int) {
	pad := ""
	for i := 0; i < indent; i++ {
		pad += "  "
	}

	switch n := node.(type) {
	case *ast.List:
		fmt.Printf("%sList (%d items)\n", pad, len(n.Items))
		for _, item := range n.Items {
			dumpNode(item, indent+1)
		}
	case *ast.Vector:
		fmt.Printf("%sVector (%d items)\n", pad, len(n.Items))
		for _, item := range n.Items {
			dumpNode(item, indent+1)
		}
	case *ast.Symbol:
		fmt.Printf("%sSymbol: %s\n", pad, n.String())
	case *ast.Literal:
		fmt.Printf("%sLiteral: %s\n", pad, n.String())
	default:
		fmt.Printf("%s%T: %s\n", pad, node, node.String())
	}
}
