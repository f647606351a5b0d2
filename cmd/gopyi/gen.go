package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gopyi/gopyi/internal/discover"
	"github.com/gopyi/gopyi/internal/runner"
	"github.com/gopyi/gopyi/pyproject"
)

type GenCmd struct {
	Package   string   `help:"Package to scan for a registry export (default: current directory)." short:"p" default:"."`
	Export    string   `help:"Export function name (required if multiple exports exist)." short:"e"`
	PyProject string   `help:"Path to pyproject.toml (default: <package dir>/pyproject.toml)."`
	Module    string   `help:"Root Python module name (overrides pyproject.toml)." short:"m"`
	Out       string   `help:"Output root directory (overrides pyproject.toml)." short:"o"`
	Filter    string   `help:"Only include modules whose dotted name starts with this prefix."`
	Origin    []string `help:"Only include descriptors whose origin path starts with any of these prefixes."`
}

func (c *GenCmd) Run() error {
	opts, err := resolveRunnerOptions(c.Package, c.Export, c.PyProject, c.Module, c.Out, c.Filter, c.Origin)
	if err != nil {
		return err
	}
	opts.Mode = runner.ModeGenerate
	return execRunner(*opts)
}

type CheckCmd struct {
	Package   string   `help:"Package to scan for a registry export (default: current directory)." short:"p" default:"."`
	Export    string   `help:"Export function name (required if multiple exports exist)." short:"e"`
	PyProject string   `help:"Path to pyproject.toml (default: <package dir>/pyproject.toml)."`
	Module    string   `help:"Root Python module name (overrides pyproject.toml)." short:"m"`
	Filter    string   `help:"Only include modules whose dotted name starts with this prefix."`
	Origin    []string `help:"Only include descriptors whose origin path starts with any of these prefixes."`
}

func (c *CheckCmd) Run() error {
	opts, err := resolveRunnerOptions(c.Package, c.Export, c.PyProject, c.Module, "", c.Filter, c.Origin)
	if err != nil {
		return err
	}
	opts.Mode = runner.ModeCheck
	return execRunner(*opts)
}

// resolveRunnerOptions discovers the export function and resolves the module
// name and output root, preferring explicit flags over pyproject.toml.
func resolveRunnerOptions(pkg, exportName, pyprojectPath, module, out, filter string, origins []string) (*runner.Options, error) {
	result, err := discover.Find(pkg)
	if err != nil {
		return nil, fmt.Errorf("discover: %w", err)
	}

	export, err := discover.SelectExport(result.Exports, exportName)
	if err != nil {
		return nil, err
	}

	defaultModule := module
	pythonRoot := out
	if defaultModule == "" || pythonRoot == "" {
		if pyprojectPath == "" {
			pyprojectPath = filepath.Join(result.Dir, "pyproject.toml")
		}
		proj, err := pyproject.Load(pyprojectPath)
		if err != nil {
			return nil, err
		}
		if defaultModule == "" {
			defaultModule = proj.ModuleName()
		}
		if pythonRoot == "" {
			pythonRoot = proj.PythonRoot()
		}
	}

	absRoot, err := filepath.Abs(pythonRoot)
	if err != nil {
		return nil, fmt.Errorf("resolve output path: %w", err)
	}

	return &runner.Options{
		Export:        *export,
		PkgDir:        result.Dir,
		DefaultModule: defaultModule,
		PythonRoot:    absRoot,
		ModuleFilter:  filter,
		OriginFilters: origins,
	}, nil
}

func execRunner(opts runner.Options) error {
	output, err := runner.Exec(opts)
	if err != nil {
		if len(output) > 0 {
			fmt.Fprint(os.Stderr, string(output))
		}
		return err
	}
	if len(output) > 0 {
		fmt.Print(string(output))
	}
	return nil
}
