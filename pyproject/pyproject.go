// Package pyproject loads the slice of pyproject.toml that stub generation
// needs: the extension module name and the python source root.
package pyproject

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// PyProject is a parsed pyproject.toml, reduced to the fields gopyi reads.
type PyProject struct {
	Project *Project `toml:"project"`
	Tool    *Tool    `toml:"tool"`

	// dir is the directory containing the file; relative paths in the
	// file resolve against it.
	dir string
}

// Project is the [project] table.
type Project struct {
	Name string `toml:"name"`
}

// Tool is the [tool] table.
type Tool struct {
	Gopyi *GopyiTool `toml:"gopyi"`
}

// GopyiTool is the [tool.gopyi] table.
type GopyiTool struct {
	// PythonSource is the directory containing python sources, relative
	// to the pyproject.toml. Stubs are generated there. Defaults to the
	// project directory itself.
	PythonSource string `toml:"python-source"`

	// ModuleName overrides the module name derived from project.name.
	ModuleName string `toml:"module-name"`
}

// Load reads and parses a pyproject.toml file.
func Load(path string) (*PyProject, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	var proj PyProject
	if err := toml.Unmarshal(data, &proj); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if proj.Project == nil || proj.Project.Name == "" {
		return nil, fmt.Errorf("%s: missing required field project.name", path)
	}
	proj.dir = filepath.Dir(path)
	return &proj, nil
}

// ModuleName returns the root Python module name: the [tool.gopyi]
// module-name override when present, otherwise project.name with dashes
// normalized to underscores the way Python import names require.
func (p *PyProject) ModuleName() string {
	if p.Tool != nil && p.Tool.Gopyi != nil && p.Tool.Gopyi.ModuleName != "" {
		return p.Tool.Gopyi.ModuleName
	}
	return strings.ReplaceAll(p.Project.Name, "-", "_")
}

// PythonRoot returns the directory stubs are generated under.
func (p *PyProject) PythonRoot() string {
	if p.Tool != nil && p.Tool.Gopyi != nil && p.Tool.Gopyi.PythonSource != "" {
		return filepath.Join(p.dir, p.Tool.Gopyi.PythonSource)
	}
	return p.dir
}
