// Package discover finds gopyi registry export functions by signature.
//
// It scans a Go package for package-level functions with the signature
//
//	func() *gopyi.Registry
//
// No directives or annotations needed; the signature is the marker.
package discover

import (
	"fmt"
	"go/token"
	"go/types"
	"path/filepath"

	"golang.org/x/tools/go/packages"
)

// registryPkgPath is the import path of the package declaring Registry.
const registryPkgPath = "github.com/gopyi/gopyi"

// Export represents a discovered export function.
type Export struct {
	Name string         // function name
	Pos  token.Position // source location
}

// Result contains discovered exports and package info.
type Result struct {
	Exports     []Export
	PackagePath string
	ModulePath  string
	ModuleDir   string // directory containing go.mod
	Dir         string // directory containing the package
}

// Find scans a Go package for registry export functions.
//
// The pattern follows go command semantics:
//   - "." for current directory
//   - Import path like "github.com/foo/bar"
//   - Absolute or relative directory path
func Find(pattern string) (*Result, error) {
	return FindDir(pattern, "")
}

// FindDir is like Find but allows specifying a working directory.
func FindDir(pattern, dir string) (*Result, error) {
	cfg := &packages.Config{
		Mode: packages.NeedName | packages.NeedFiles |
			packages.NeedTypes | packages.NeedModule,
		Dir: dir,
	}

	pkgs, err := packages.Load(cfg, pattern)
	if err != nil {
		return nil, fmt.Errorf("load package: %w", err)
	}

	if len(pkgs) == 0 {
		return nil, fmt.Errorf("no packages found matching %q", pattern)
	}
	if len(pkgs) > 1 {
		return nil, fmt.Errorf("multiple packages found matching %q; specify a single package", pattern)
	}

	pkg := pkgs[0]
	if len(pkg.Errors) > 0 {
		return nil, fmt.Errorf("package errors: %v", pkg.Errors[0])
	}

	result := &Result{
		PackagePath: pkg.PkgPath,
	}
	if pkg.Module != nil {
		result.ModulePath = pkg.Module.Path
		result.ModuleDir = pkg.Module.Dir
	}
	if len(pkg.GoFiles) > 0 {
		result.Dir = filepath.Dir(pkg.GoFiles[0])
	}

	scope := pkg.Types.Scope()
	for _, name := range scope.Names() {
		obj := scope.Lookup(name)
		fn, ok := obj.(*types.Func)
		if !ok {
			continue
		}

		sig, ok := fn.Type().(*types.Signature)
		if !ok {
			continue
		}

		// Must be package-level with no parameters and one result.
		if sig.Recv() != nil || sig.Params().Len() != 0 || sig.Results().Len() != 1 {
			continue
		}
		if !isRegistryPtr(sig.Results().At(0).Type()) {
			continue
		}

		result.Exports = append(result.Exports, Export{
			Name: fn.Name(),
			Pos:  pkg.Fset.Position(fn.Pos()),
		})
	}

	return result, nil
}

// isRegistryPtr checks if a type is *gopyi.Registry.
func isRegistryPtr(t types.Type) bool {
	ptr, ok := t.(*types.Pointer)
	if !ok {
		return false
	}
	named, ok := ptr.Elem().(*types.Named)
	if !ok {
		return false
	}
	pkg := named.Obj().Pkg()
	if pkg == nil {
		return false
	}
	return pkg.Path() == registryPkgPath && named.Obj().Name() == "Registry"
}

// SelectExport picks the export to use based on found exports and optional name.
//
// If name is empty:
//   - Returns the export if exactly one found
//   - Returns error if zero or multiple found
//
// If name is specified:
//   - Returns the export with that name
//   - Returns error if not found
func SelectExport(exports []Export, name string) (*Export, error) {
	if name != "" {
		for i := range exports {
			if exports[i].Name == name {
				return &exports[i], nil
			}
		}
		return nil, fmt.Errorf("export %q not found", name)
	}

	switch len(exports) {
	case 0:
		return nil, fmt.Errorf("no export found\n\nAdd a function that returns *gopyi.Registry:\n\n    func StubDefs() *gopyi.Registry {\n        return gopyi.Default\n    }")
	case 1:
		return &exports[0], nil
	default:
		msg := "multiple exports found:\n"
		for _, e := range exports {
			msg += fmt.Sprintf("  - %s()\n", e.Name)
		}
		msg += "\nSpecify which one: gopyi gen --export <name>"
		return nil, fmt.Errorf("%s", msg)
	}
}
