// Package runner executes stub generation by building and running a modified
// version of the user's package.
//
// Registries are populated by init functions in the user's module, so
// generation has to happen inside a process that links that module. The
// runner uses Go's -overlay flag to replace the user's main() with one that
// calls the discovered export function and generates the stubs.
package runner

import (
	"bytes"
	"encoding/json"
	"fmt"
	"go/ast"
	"go/format"
	"go/parser"
	"go/token"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/gopyi/gopyi/internal/discover"
)

// Mode selects what the generated runner does with the stub info.
type Mode int

const (
	// ModeGenerate writes stub files under the python root.
	ModeGenerate Mode = iota

	// ModeCheck runs aggregation and rendering into memory without
	// touching the filesystem.
	ModeCheck
)

// Options configures the runner.
type Options struct {
	// Export is the registry export function to call.
	Export discover.Export

	// PkgDir is the directory containing the user's package.
	PkgDir string

	// DefaultModule is the root Python module name.
	DefaultModule string

	// PythonRoot is the directory stubs are written under.
	PythonRoot string

	// ModuleFilter restricts generation to modules with this name prefix.
	ModuleFilter string

	// OriginFilters restricts generation to descriptors whose origin path
	// starts with any entry.
	OriginFilters []string

	// Mode selects generation or a dry-run check.
	Mode Mode
}

// Exec builds and runs the generator inside the user's package.
//
// It creates an overlay that:
//  1. Replaces files containing func main() with versions that have main() removed
//  2. Adds a runner file with our own main()
//
// The overlay approach lets us work with package main and unexported
// export functions.
func Exec(opts Options) (output []byte, err error) {
	tmpDir, err := os.MkdirTemp("", "gopyi-gen-*")
	if err != nil {
		return nil, fmt.Errorf("create temp dir: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	overlay := make(map[string]string)

	files, err := filepath.Glob(filepath.Join(opts.PkgDir, "*.go"))
	if err != nil {
		return nil, fmt.Errorf("glob: %w", err)
	}

	for _, file := range files {
		if strings.HasSuffix(file, "_test.go") {
			continue
		}

		hasMain, modified, err := removeMain(file)
		if err != nil {
			return nil, fmt.Errorf("process %s: %w", file, err)
		}

		if hasMain {
			tmpFile := filepath.Join(tmpDir, filepath.Base(file))
			if err := os.WriteFile(tmpFile, modified, 0644); err != nil {
				return nil, fmt.Errorf("write modified %s: %w", file, err)
			}
			overlay[file] = tmpFile
		}
	}

	runnerSrc, err := generateRunner(opts)
	if err != nil {
		return nil, fmt.Errorf("generate runner: %w", err)
	}

	runnerFile := filepath.Join(tmpDir, "gopyi_runner_main_.go")
	if err := os.WriteFile(runnerFile, runnerSrc, 0644); err != nil {
		return nil, fmt.Errorf("write runner: %w", err)
	}

	// The runner maps to a "new" file inside the user's package.
	overlay[filepath.Join(opts.PkgDir, "gopyi_runner_main_.go")] = runnerFile

	overlayData := struct {
		Replace map[string]string `json:"Replace"`
	}{Replace: overlay}

	overlayJSON, err := json.Marshal(overlayData)
	if err != nil {
		return nil, fmt.Errorf("marshal overlay: %w", err)
	}

	overlayFile := filepath.Join(tmpDir, "overlay.json")
	if err := os.WriteFile(overlayFile, overlayJSON, 0644); err != nil {
		return nil, fmt.Errorf("write overlay: %w", err)
	}

	// Build with overlay. -mod=mod allows updating go.mod/go.sum if needed.
	binaryPath := filepath.Join(tmpDir, "runner")
	buildCmd := exec.Command("go", "build", "-mod=mod", "-overlay", overlayFile, "-o", binaryPath, ".")
	buildCmd.Dir = opts.PkgDir
	buildCmd.Env = append(os.Environ(), "GOWORK=off")
	if buildOut, err := buildCmd.CombinedOutput(); err != nil {
		return buildOut, fmt.Errorf("build: %w\n%s", err, buildOut)
	}

	runCmd := exec.Command(binaryPath)
	runCmd.Dir = opts.PkgDir
	output, err = runCmd.CombinedOutput()
	if err != nil {
		return output, fmt.Errorf("run: %w\n%s", err, output)
	}

	return output, nil
}

// removeMain parses a Go file and returns a version with func main() removed.
// Returns (hasMain, modifiedSource, error).
func removeMain(filename string) (bool, []byte, error) {
	fset := token.NewFileSet()
	f, err := parser.ParseFile(fset, filename, nil, parser.ParseComments)
	if err != nil {
		return false, nil, err
	}

	hasMain := false
	var newDecls []ast.Decl
	for _, decl := range f.Decls {
		fn, ok := decl.(*ast.FuncDecl)
		if ok && fn.Name.Name == "main" && fn.Recv == nil {
			hasMain = true
			continue
		}
		newDecls = append(newDecls, decl)
	}

	if !hasMain {
		return false, nil, nil
	}

	f.Decls = newDecls

	var buf bytes.Buffer
	if err := format.Node(&buf, fset, f); err != nil {
		return false, nil, err
	}

	return true, buf.Bytes(), nil
}

// generateRunner creates the runner main() source.
func generateRunner(opts Options) ([]byte, error) {
	tmplStr := generateTemplate
	if opts.Mode == ModeCheck {
		tmplStr = checkTemplate
	}

	tmpl, err := template.New("runner").Parse(tmplStr)
	if err != nil {
		return nil, err
	}

	data := struct {
		ExportFunc    string
		DefaultModule string
		PythonRoot    string
		ModuleFilter  string
		OriginFilters []string
	}{
		ExportFunc:    opts.Export.Name,
		DefaultModule: opts.DefaultModule,
		PythonRoot:    opts.PythonRoot,
		ModuleFilter:  opts.ModuleFilter,
		OriginFilters: opts.OriginFilters,
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

const generateTemplate = `package main

import (
	"context"
	"fmt"
	"os"

	"github.com/gopyi/gopyi/gen"
)

func main() {
	info, err := gen.Build({{.ExportFunc}}(), gen.Config{
		DefaultModule: {{printf "%q" .DefaultModule}},
		PythonRoot:    {{printf "%q" .PythonRoot}},
		ModuleFilter:  {{printf "%q" .ModuleFilter}},
		OriginFilters: []string{ {{range .OriginFilters}}{{printf "%q" .}}, {{end}} },
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "gopyi gen: %v\n", err)
		os.Exit(1)
	}
	if err := info.Generate(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "gopyi gen: %v\n", err)
		os.Exit(1)
	}
}
`

const checkTemplate = `package main

import (
	"context"
	"fmt"
	"os"

	"github.com/gopyi/gopyi/gen"
	"github.com/gopyi/gopyi/gen/sink"
)

func main() {
	info, err := gen.Build({{.ExportFunc}}(), gen.Config{
		DefaultModule: {{printf "%q" .DefaultModule}},
		PythonRoot:    {{printf "%q" .PythonRoot}},
		ModuleFilter:  {{printf "%q" .ModuleFilter}},
		OriginFilters: []string{ {{range .OriginFilters}}{{printf "%q" .}}, {{end}} },
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "gopyi check: %v\n", err)
		os.Exit(1)
	}
	out := sink.NewMemorySink()
	if err := info.GenerateTo(context.Background(), out); err != nil {
		fmt.Fprintf(os.Stderr, "gopyi check: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("ok: %d modules\n", out.Len())
}
`
