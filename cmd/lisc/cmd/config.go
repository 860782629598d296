package cmd

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
	"github.com/lisc-lang/lisc/internal/optimize"
	"github.com/lisc-lang/lisc/pkg/compiler"
)

// defaultConfigFile is read automatically when present and --config was
// not given, the way the on-disk build cache's manifest is read
// automatically from a build directory (internal/resolver.OpenCache).
const defaultConfigFile = "lisc.yaml"

// fileConfig is the on-disk shape of lisc.yaml: everything a project
// wants fixed across every invocation rather than repeated as flags.
// CLI flags always win over a loaded file value — see runBuild's
// handling of -o against Out.
type fileConfig struct {
	Out               string   `yaml:"out"`
	RuntimeImportPath string   `yaml:"runtime_import_path"`
	SourceMap         string   `yaml:"source_map"` // "inline" | "external" | "none"
	DisablePasses     []string `yaml:"disable_passes"`
	NodeCommand       []string `yaml:"node_command"`
}

// loadConfig reads path (or defaultConfigFile if path is empty and that
// file exists), returning a zero fileConfig when no file applies.
func loadConfig(path string) (fileConfig, error) {
	if path == "" {
		if _, err := os.Stat(defaultConfigFile); err != nil {
			return fileConfig{}, nil
		}
		path = defaultConfigFile
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fileConfig{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	var cfg fileConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return fileConfig{}, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

// compilerOptions builds pkg/compiler.Options from a loaded fileConfig.
// The output directory is not part of Options — callers read cfg.Out
// themselves and let an explicit -o flag override it.
func compilerOptions(cfg fileConfig) compiler.Options {
	opts := compiler.Options{
		CompilerVersion:   Version,
		RuntimeImportPath: cfg.RuntimeImportPath,
		NodeCommand:       cfg.NodeCommand,
		SourceMapMode:     parseSourceMapMode(cfg.SourceMap),
	}
	for _, pass := range cfg.DisablePasses {
		opts.OptimizerOptions = append(opts.OptimizerOptions, optimize.WithOptimizationPass(optimize.OptimizationPass(pass), false))
	}
	return opts
}

func parseSourceMapMode(mode string) compiler.SourceMapMode {
	switch mode {
	case "external":
		return compiler.SourceMapExternal
	case "none":
		return compiler.SourceMapNone
	default:
		return compiler.SourceMapInline
	}
}
