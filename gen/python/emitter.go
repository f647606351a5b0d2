// Package python renders an assembled module into .pyi stub syntax.
//
// The renderer treats all type expressions, signatures, docstrings, and
// default values as opaque text: it lays out declarations and carries the
// payload through unchanged.
package python

import (
	"bytes"
	"strings"

	"github.com/gopyi/gopyi/gen/ir"
)

const indent = "    "

// Render produces the .pyi source for a module. Sections appear in a fixed
// order (submodule re-exports, variables, errors, enums, classes, functions),
// each sorted by name; merged members inside a class or enum keep their
// accumulated order.
func Render(m *ir.Module) string {
	e := &emitter{}
	e.emitHeader(m)
	e.emitSubmodules(m)
	e.emitVariables(m)
	e.emitErrors(m)
	for _, enum := range m.SortedEnums() {
		e.emitEnum(enum)
	}
	for _, class := range m.SortedClasses() {
		e.emitClass(class)
	}
	for _, fn := range m.SortedFunctions() {
		e.emitFunction(fn)
	}
	return e.buf.String()
}

type emitter struct {
	buf bytes.Buffer
}

func (e *emitter) emitHeader(m *ir.Module) {
	e.buf.WriteString("# This file is automatically generated by gopyi.\n")
	e.buf.WriteString("\nfrom __future__ import annotations\n")
	if len(m.Enums) > 0 {
		e.buf.WriteString("\nimport enum\n")
	}
}

func (e *emitter) emitSubmodules(m *ir.Module) {
	subs := m.SortedSubmodules()
	if len(subs) == 0 {
		return
	}
	e.buf.WriteString("\n")
	for _, name := range subs {
		// Redundant aliasing marks the import as a re-export for type
		// checkers.
		e.buf.WriteString("from . import " + name + " as " + name + "\n")
	}
}

func (e *emitter) emitVariables(m *ir.Module) {
	vars := m.SortedVariables()
	if len(vars) == 0 {
		return
	}
	e.buf.WriteString("\n")
	for _, v := range vars {
		e.buf.WriteString(v.Name + ": " + v.Type + "\n")
	}
}

func (e *emitter) emitErrors(m *ir.Module) {
	for _, def := range m.SortedErrors() {
		e.buf.WriteString("\nclass " + def.Name + "(" + def.Base + "):")
		if def.Doc == "" {
			e.buf.WriteString(" ...\n")
			continue
		}
		e.buf.WriteString("\n")
		e.emitDocstring(indent, def.Doc)
		e.buf.WriteString(indent + "...\n")
	}
}

func (e *emitter) emitEnum(def *ir.EnumDef) {
	e.buf.WriteString("\nclass " + def.Name + "(enum.Enum):\n")
	if def.Doc != "" {
		e.emitDocstring(indent, def.Doc)
	}
	for _, v := range def.Variants {
		if v.Doc != "" {
			e.emitComment(indent, v.Doc)
		}
		e.buf.WriteString(indent + v.Name + " = ...\n")
	}
	bodyEmpty := def.Doc == "" && len(def.Variants) == 0
	e.emitMembers(&def.Members, bodyEmpty)
}

func (e *emitter) emitClass(def *ir.ClassDef) {
	e.buf.WriteString("\nclass " + def.Name)
	if len(def.Bases) > 0 {
		e.buf.WriteString("(" + strings.Join(def.Bases, ", ") + ")")
	}
	e.buf.WriteString(":\n")
	if def.Doc != "" {
		e.emitDocstring(indent, def.Doc)
	}
	e.emitMembers(&def.Members, def.Doc == "")
}

// emitMembers writes the merged attr/getter/setter/method lists of a class or
// enum body. bodyEmpty reports whether nothing has been written into the body
// yet, in which case an ellipsis placeholder is required when there are no
// members either.
func (e *emitter) emitMembers(m *ir.Members, bodyEmpty bool) {
	for _, attr := range m.Attrs {
		if attr.Doc != "" {
			e.emitComment(indent, attr.Doc)
		}
		e.buf.WriteString(indent + attr.Name + ": " + attr.Type)
		if attr.Default != "" {
			e.buf.WriteString(" = " + attr.Default)
		}
		e.buf.WriteString("\n")
	}
	for _, getter := range m.Getters {
		e.buf.WriteString(indent + "@property\n")
		e.buf.WriteString(indent + "def " + getter.Name + "(self) -> " + getter.Type + ":")
		e.emitFuncBody(indent, getter.Doc)
	}
	for _, setter := range m.Setters {
		e.buf.WriteString(indent + "@" + setter.Name + ".setter\n")
		e.buf.WriteString(indent + "def " + setter.Name + "(self, value: " + setter.Type + ") -> None:")
		e.emitFuncBody(indent, setter.Doc)
	}
	for _, method := range m.Methods {
		switch {
		case method.Static:
			e.buf.WriteString(indent + "@staticmethod\n")
		case method.Class:
			e.buf.WriteString(indent + "@classmethod\n")
		}
		e.buf.WriteString(indent + "def " + method.Name + method.Signature + ":")
		e.emitFuncBody(indent, method.Doc)
	}
	if bodyEmpty && len(m.Attrs) == 0 && len(m.Getters) == 0 && len(m.Setters) == 0 && len(m.Methods) == 0 {
		e.buf.WriteString(indent + "...\n")
	}
}

func (e *emitter) emitFunction(def *ir.FunctionDef) {
	e.buf.WriteString("\ndef " + def.Name + def.Signature + ":")
	e.emitFuncBody("", def.Doc)
}

// emitFuncBody completes a "def ...:" line, inlining the ellipsis when there
// is no docstring.
func (e *emitter) emitFuncBody(prefix, doc string) {
	if doc == "" {
		e.buf.WriteString(" ...\n")
		return
	}
	e.buf.WriteString("\n")
	e.emitDocstring(prefix+indent, doc)
	e.buf.WriteString(prefix + indent + "...\n")
}

func (e *emitter) emitDocstring(prefix, doc string) {
	lines := strings.Split(strings.TrimRight(doc, "\n"), "\n")
	if len(lines) == 1 {
		e.buf.WriteString(prefix + `"""` + lines[0] + `"""` + "\n")
		return
	}
	e.buf.WriteString(prefix + `"""` + lines[0] + "\n")
	for _, line := range lines[1:] {
		if line == "" {
			e.buf.WriteString("\n")
			continue
		}
		e.buf.WriteString(prefix + line + "\n")
	}
	e.buf.WriteString(prefix + `"""` + "\n")
}

func (e *emitter) emitComment(prefix, doc string) {
	for _, line := range strings.Split(strings.TrimRight(doc, "\n"), "\n") {
		e.buf.WriteString(prefix + "# " + line + "\n")
	}
}
