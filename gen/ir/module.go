// Package ir defines the assembled form of a stub module: the mutable records
// the aggregation pass builds from registered descriptors and the renderer
// consumes. Signature and type strings are opaque payload here; nothing in
// this package interprets them.
package ir

import (
	"reflect"
	"sort"
)

// MemberDef is an attribute, getter, or setter of a class or enum.
type MemberDef struct {
	Name string
	Type string
	Doc  string

	// Default is the rendered default value expression; empty means none.
	Default string
}

// MethodDef is a method of a class or enum.
type MethodDef struct {
	Name      string
	Signature string
	Doc       string

	// Static and Class select the decorator; both false means an
	// instance method.
	Static bool
	Class  bool
}

// Members holds the incrementally merged member lists shared by classes and
// enums. Entries are appended in descriptor-encounter order and never
// deduplicated: a later entry with the same name does not replace an earlier
// one.
type Members struct {
	Attrs   []MemberDef
	Getters []MemberDef
	Setters []MemberDef
	Methods []MethodDef
}

// Extend appends the given member lists, preserving their order.
func (m *Members) Extend(attrs, getters, setters []MemberDef, methods []MethodDef) {
	m.Attrs = append(m.Attrs, attrs...)
	m.Getters = append(m.Getters, getters...)
	m.Setters = append(m.Setters, setters...)
	m.Methods = append(m.Methods, methods...)
}

// ClassDef is an assembled class declaration.
type ClassDef struct {
	Name  string
	Doc   string
	Bases []string
	Members
}

// VariantDef is a single enumerator of an EnumDef.
type VariantDef struct {
	Name string
	Doc  string
}

// EnumDef is an assembled enum declaration. Method blocks can target enums
// the same way they target classes, so it carries the same member lists.
type EnumDef struct {
	Name     string
	Doc      string
	Variants []VariantDef
	Members
}

// FunctionDef is a module-level function declaration.
type FunctionDef struct {
	Name      string
	Signature string
	Doc       string
}

// ErrorDef is an exception declaration.
type ErrorDef struct {
	Name string
	Base string
	Doc  string
}

// VariableDef is a module-level variable declaration.
type VariableDef struct {
	Name string
	Type string
}

// Module is one dotted Python module being assembled. Classes and enums are
// keyed by the reflect.Type identity of their backing Go type; a given
// identity lives in at most one Module per run.
type Module struct {
	// Name is the full dotted module name, e.g. "pkg.core".
	Name string

	// DefaultModuleName is the root module of the project this module
	// belongs to.
	DefaultModuleName string

	Classes   map[reflect.Type]*ClassDef
	Enums     map[reflect.Type]*EnumDef
	Functions map[string]*FunctionDef
	Errors    map[string]*ErrorDef
	Variables map[string]*VariableDef

	// Submodules holds the leaf names of direct child modules, e.g.
	// {"core", "io"} for a module "pkg" with children "pkg.core" and
	// "pkg.io".
	Submodules map[string]struct{}
}

// NewModule returns an empty module with the given names.
func NewModule(name, defaultModuleName string) *Module {
	return &Module{
		Name:              name,
		DefaultModuleName: defaultModuleName,
		Classes:           make(map[reflect.Type]*ClassDef),
		Enums:             make(map[reflect.Type]*EnumDef),
		Functions:         make(map[string]*FunctionDef),
		Errors:            make(map[string]*ErrorDef),
		Variables:         make(map[string]*VariableDef),
		Submodules:        make(map[string]struct{}),
	}
}

// SortedClasses returns the classes ordered by name for deterministic output.
func (m *Module) SortedClasses() []*ClassDef {
	defs := make([]*ClassDef, 0, len(m.Classes))
	for _, c := range m.Classes {
		defs = append(defs, c)
	}
	sort.Slice(defs, func(i, j int) bool { return defs[i].Name < defs[j].Name })
	return defs
}

// SortedEnums returns the enums ordered by name.
func (m *Module) SortedEnums() []*EnumDef {
	defs := make([]*EnumDef, 0, len(m.Enums))
	for _, e := range m.Enums {
		defs = append(defs, e)
	}
	sort.Slice(defs, func(i, j int) bool { return defs[i].Name < defs[j].Name })
	return defs
}

// SortedFunctions returns the functions ordered by name.
func (m *Module) SortedFunctions() []*FunctionDef {
	defs := make([]*FunctionDef, 0, len(m.Functions))
	for _, f := range m.Functions {
		defs = append(defs, f)
	}
	sort.Slice(defs, func(i, j int) bool { return defs[i].Name < defs[j].Name })
	return defs
}

// SortedErrors returns the errors ordered by name.
func (m *Module) SortedErrors() []*ErrorDef {
	defs := make([]*ErrorDef, 0, len(m.Errors))
	for _, e := range m.Errors {
		defs = append(defs, e)
	}
	sort.Slice(defs, func(i, j int) bool { return defs[i].Name < defs[j].Name })
	return defs
}

// SortedVariables returns the variables ordered by name.
func (m *Module) SortedVariables() []*VariableDef {
	defs := make([]*VariableDef, 0, len(m.Variables))
	for _, v := range m.Variables {
		defs = append(defs, v)
	}
	sort.Slice(defs, func(i, j int) bool { return defs[i].Name < defs[j].Name })
	return defs
}

// SortedSubmodules returns the submodule leaf names in lexicographic order.
func (m *Module) SortedSubmodules() []string {
	names := make([]string, 0, len(m.Submodules))
	for name := range m.Submodules {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
