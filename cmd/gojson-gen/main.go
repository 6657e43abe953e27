// Command gojson-gen reads Go source files, finds struct declarations,
// and emits a file that registers their fields with gojson/describe at
// init time — a zero-reflection substitute for describe.Lookup's first
// call, for builds that want struct layout fixed at compile time rather
// than discovered the first time a type is seen.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	cfg := NewConfig()

	rootCmd := &cobra.Command{
		Use:           "gojson-gen [flags] file...",
		Short:         "Generate gojson/describe registration tables for Go structs",
		Args:          cobra.MinimumNArgs(1),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cfg, args)
		},
	}

	cfg.RegisterFlags(rootCmd.Flags())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(cfg *Config, inputs []string) error {
	logger, err := newLogger(os.Stderr, cfg.LogLevel)
	if err != nil {
		return err
	}

	var allDecls []structDecl
	pkgName := cfg.Package

	for _, path := range inputs {
		src, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}

		decls, filePkg, err := findStructs(path, src)
		if err != nil {
			return err
		}

		if pkgName == "" {
			pkgName = filePkg
		}

		logger.Info("parsed input", "file", path, "structs", len(decls))
		allDecls = append(allDecls, decls...)
	}

	if pkgName == "" {
		return fmt.Errorf("could not determine package name; pass --%s", cfg.Flags.Package)
	}

	out := render(pkgName, allDecls, logger)

	outPath := cfg.Output
	if outPath == "" {
		outPath = deriveOutputPath(inputs[0])
	}

	if err := os.WriteFile(outPath, out, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", outPath, err)
	}

	logger.Info("wrote registration file", "path", outPath, "structs", len(allDecls))
	return nil
}

func deriveOutputPath(firstInput string) string {
	trimmed := firstInput
	for i := len(trimmed) - 1; i >= 0; i-- {
		if trimmed[i] == '.' {
			trimmed = trimmed[:i]
			break
		}
	}
	return trimmed + "_gojson.go"
}
