package cmd

import (
	"fmt"
	"os"

	"github.com/lisc-lang/lisc/pkg/compiler"
	"github.com/spf13/cobra"
)

var buildOut string

var buildCmd = &cobra.Command{
	Use:   "build [file]",
	Short: "Compile a lisc file and its imports to TypeScript",
	Long: `Compile a lisc entry point and every module it transitively
imports, writing generated TypeScript (and source maps, unless
disabled) to the output directory along with a dependency graph.

Examples:
  # Build to ./dist
  lisc build main.lisc -o dist`,
	Args: cobra.ExactArgs(1),
	RunE: runBuild,
}

func init() {
	rootCmd.AddCommand(buildCmd)

	buildCmd.Flags().StringVarP(&buildOut, "out", "o", "dist", "output directory for generated artifacts")
}

func runBuild(cmd *cobra.Command, args []string) error {
	configPath, _ := cmd.Flags().GetString("config")
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	c, err := compiler.New(compilerOptions(cfg))
	if err != nil {
		return fmt.Errorf("failed to construct compiler: %w", err)
	}

	out := buildOut
	if !cmd.Flags().Changed("out") && cfg.Out != "" {
		out = cfg.Out
	}

	br, err := c.Build(args[0], out)
	if err != nil {
		return fmt.Errorf("build failed: %w", err)
	}

	failed := 0
	for _, m := range br.Modules {
		if m.Err != nil {
			failed++
			fmt.Fprintf(os.Stderr, "%s: %s\n", m.Path, diagnosticText(m.Err))
		}
	}
	if failed > 0 {
		return fmt.Errorf("build failed with errors in %d module(s)", failed)
	}

	fmt.Printf("Built %d module(s) -> %s\n", len(br.Modules), out)
	return nil
}
