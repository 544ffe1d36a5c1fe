// Command velac compiles Vela source files and reports diagnostics.
// Code generation is out of scope (spec.md §1); this binary exercises
// the front-end end to end and prints the resolved program's
// diagnostics, optionally dumping the annotated AST.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/cobra"

	velac "github.com/vela-lang/velac"
)

var (
	configPath string
	dumpAST    bool
	outputPath string
)

func main() {
	root := &cobra.Command{
		Use:   "velac [inputs...]",
		Short: "Compile Vela source files",
		Args:  cobra.MinimumNArgs(1),
		RunE:  run,
	}
	root.Flags().StringVarP(&configPath, "config", "c", "", "path to a YAML config file overriding resolver/diagnostic defaults")
	root.Flags().BoolVar(&dumpAST, "dump-ast", false, "print the resolved AST of every input instead of compiling silently")
	root.Flags().StringVarP(&outputPath, "output", "o", "", "write the AST dump to this path instead of stdout (ignored without --dump-ast)")

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	paths, err := expandInputs(args)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return fmt.Errorf("no input files matched")
	}

	cfg := velac.NewConfig()
	if configPath != "" {
		cfg, err = velac.LoadConfigFile(configPath)
		if err != nil {
			return err
		}
	}

	sources := make([]velac.Source, 0, len(paths))
	for _, p := range paths {
		text, err := os.ReadFile(p)
		if err != nil {
			return fmt.Errorf("reading %s: %w", p, err)
		}
		sources = append(sources, velac.Source{Path: p, Text: text})
	}

	collector := velac.NewDiagnosticCollector(cfg)
	program, ok := velac.Compile(sources, cfg, collector.Sink)

	for _, d := range collector.Diagnostics {
		fmt.Fprintln(os.Stderr, d.String())
	}

	if dumpAST {
		var sb strings.Builder
		for _, f := range program.Files() {
			sb.WriteString(velac.DumpFile(f, program.Registry()))
			sb.WriteString("\n")
		}
		if outputPath == "" {
			fmt.Print(sb.String())
		} else if err := os.WriteFile(outputPath, []byte(sb.String()), 0644); err != nil {
			return fmt.Errorf("writing AST dump: %w", err)
		}
	}

	if !ok {
		os.Exit(1)
	}
	return nil
}

// expandInputs resolves each CLI argument into concrete file paths,
// expanding `*`/`**` glob patterns via doublestar so a build can be
// invoked as `velac src/**/*.vl` the way spec.md §6's external
// interface describes directory expansion.
func expandInputs(args []string) ([]string, error) {
	var out []string
	seen := make(map[string]bool)
	for _, arg := range args {
		if !strings.ContainsAny(arg, "*?[") {
			if !seen[arg] {
				seen[arg] = true
				out = append(out, arg)
			}
			continue
		}
		base, pattern := doublestar.SplitPattern(arg)
		matches, err := doublestar.Glob(os.DirFS(base), pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %s: %w", arg, err)
		}
		for _, m := range matches {
			p := filepath.Join(base, m)
			if !seen[p] {
				seen[p] = true
				out = append(out, p)
			}
		}
	}
	return out, nil
}
