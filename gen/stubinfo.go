// Package gen assembles registered descriptors into a module tree and writes
// one .pyi stub file per module.
//
// The flow is strictly forward: registry -> filter -> module table ->
// submodule linking -> emission. Filtering and unmatched method blocks are
// silent omissions, never errors; only configuration and filesystem failures
// surface to the caller.
package gen

import (
	"context"
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/gopyi/gopyi"
	"github.com/gopyi/gopyi/gen/ir"
	"github.com/gopyi/gopyi/gen/python"
	"github.com/gopyi/gopyi/gen/sink"
	"github.com/gopyi/gopyi/pyproject"
)

const (
	// stubExt is the file extension of generated stub files.
	stubExt = ".pyi"

	// indexStub is the file emitted inside a module directory. A module
	// with submodules becomes a directory with this index file even when
	// it has no members of its own.
	indexStub = "__init__" + stubExt
)

// StubInfo is a completed aggregation run: the module table plus the resolved
// output root. It is read-only; build a new one for every run.
type StubInfo struct {
	// Modules maps full dotted module names to their assembled records.
	Modules map[string]*ir.Module

	// PythonRoot is the directory stubs are generated under.
	PythonRoot string

	cfg Config
}

// Build aggregates the registry into a StubInfo under the given config.
// The registry is read exactly once and never mutated.
func Build(reg *gopyi.Registry, cfg Config) (*StubInfo, error) {
	if err := validateConfig(&cfg); err != nil {
		return nil, err
	}
	modules := newBuilder(&cfg).build(reg)
	return &StubInfo{
		Modules:    modules,
		PythonRoot: cfg.PythonRoot,
		cfg:        cfg,
	}, nil
}

// FromPyProject aggregates the registry using the module name and python
// source root declared in a pyproject.toml file.
func FromPyProject(reg *gopyi.Registry, pyprojectPath string) (*StubInfo, error) {
	proj, err := pyproject.Load(pyprojectPath)
	if err != nil {
		return nil, fmt.Errorf("load project config: %w", err)
	}
	return Build(reg, Config{
		DefaultModule: proj.ModuleName(),
		PythonRoot:    proj.PythonRoot(),
	})
}

// ModuleNames returns the table keys in lexicographic order.
func (s *StubInfo) ModuleNames() []string {
	names := make([]string, 0, len(s.Modules))
	for name := range s.Modules {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// StubPath returns the output path of a module relative to the python root.
// A leaf module maps to "<path>.pyi"; a module with submodules becomes a
// directory holding an index stub.
func StubPath(m *ir.Module) string {
	rel := strings.ReplaceAll(m.Name, ".", "/")
	if len(m.Submodules) == 0 {
		return rel + stubExt
	}
	return path.Join(rel, indexStub)
}

// Generate writes one stub file per module under PythonRoot, creating
// directories as needed and replacing existing files.
func (s *StubInfo) Generate(ctx context.Context) error {
	return s.GenerateTo(ctx, sink.NewFilesystemSink(s.PythonRoot))
}

// GenerateTo writes the stubs to an arbitrary sink. Modules are emitted
// sequentially in lexicographic name order; the first write failure aborts
// the loop, leaving earlier files in place.
func (s *StubInfo) GenerateTo(ctx context.Context, out sink.OutputSink) error {
	logger := s.cfg.logger()
	for _, name := range s.ModuleNames() {
		m := s.Modules[name]
		dest := StubPath(m)
		if err := out.WriteFile(ctx, dest, []byte(python.Render(m))); err != nil {
			return fmt.Errorf("emit stub for module %q at %s: %w", name, dest, err)
		}
		logger.Info("generated stub", "module", name, "path", dest)
	}
	return nil
}
