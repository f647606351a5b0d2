// Package gopyi collects metadata about the Python-visible constructs of a
// Go-built extension module and generates .pyi type stubs from it.
//
// Packages that contribute classes, enums, functions, errors, or variables to
// the extension module describe them with the Info types in this package and
// register them, usually from an init function. The gen subpackage turns a
// populated Registry into a tree of stub files.
package gopyi

import "reflect"

// TypeExpr is a deferred Python type expression. Formatting a type string can
// be expensive, so descriptors carry a thunk instead of an eager value; the
// generator evaluates it once, and only for descriptors that survive
// filtering.
type TypeExpr func() string

// Str returns a TypeExpr for an already-formatted type string.
func Str(s string) TypeExpr {
	return func() string { return s }
}

// ClassInfo describes a Python class backed by a Go type.
//
// The zero Module means the class lives in the project's default module.
// Type is the identity key: every descriptor carrying the same reflect.Type
// describes the same Python class, which is how method blocks registered by
// other packages find their way back to the class they extend.
type ClassInfo struct {
	// Module is the dotted Python module the class belongs to, e.g.
	// "pkg.core". Empty means the default module from the project config.
	Module string

	// Origin is the import path of the Go package that registered the
	// class. Used only for origin filtering.
	Origin string

	// Type is the backing Go type and serves as the class identity.
	Type reflect.Type

	// Name is the Python class name.
	Name string

	// Doc is the class docstring, carried through verbatim.
	Doc string

	// Bases are base class expressions, carried through verbatim.
	Bases []string
}

// ComplexEnumInfo describes a Python class that models an enum whose variants
// carry data. It shares the class identity space: method blocks may target it
// the same way they target a ClassInfo.
type ComplexEnumInfo struct {
	Module string
	Origin string
	Type   reflect.Type
	Name   string
	Doc    string

	// Variants become class-level attributes in the generated stub.
	Variants []MemberInfo
}

// EnumInfo describes a plain Python enum.
type EnumInfo struct {
	Module string
	Origin string
	Type   reflect.Type
	Name   string
	Doc    string

	Variants []EnumVariantInfo
}

// EnumVariantInfo is a single enumerator.
type EnumVariantInfo struct {
	Name string
	Doc  string
}

// FunctionInfo describes a module-level function.
type FunctionInfo struct {
	Module string
	Origin string
	Name   string

	// Signature yields the parameter list and return annotation, e.g.
	// "(x: int, y: int) -> int". The generator does not interpret it.
	Signature TypeExpr

	Doc string
}

// ErrorInfo describes an exception type exported by the module.
type ErrorInfo struct {
	Module string
	Origin string
	Name   string

	// Base is the Python base exception, e.g. "ValueError".
	Base string

	Doc string
}

// VariableInfo describes a module-level variable.
type VariableInfo struct {
	Module string
	Origin string
	Name   string
	Type   TypeExpr
}

// MemberInfo describes an attribute, getter, or setter contributed to a class
// or enum.
type MemberInfo struct {
	Name string
	Type TypeExpr
	Doc  string

	// Default is the rendered default value expression. Empty means the
	// member has no default.
	Default string
}

// MethodKind selects the decorator emitted for a method.
type MethodKind int

const (
	MethodInstance MethodKind = iota
	MethodStatic
	MethodClass
)

// MethodInfo describes a method contributed to a class or enum.
type MethodInfo struct {
	Name      string
	Signature TypeExpr
	Doc       string
	Kind      MethodKind
}

// MethodsInfo extends an already-registered class or enum with additional
// members. It is matched purely by Type identity, never by name or module:
// one logical class may be declared in one package and extended from several
// others. A block whose identity matches nothing is silently dropped.
type MethodsInfo struct {
	// Type identifies the class or enum the block extends.
	Type reflect.Type

	Attrs   []MemberInfo
	Getters []MemberInfo
	Setters []MemberInfo
	Methods []MethodInfo
}
