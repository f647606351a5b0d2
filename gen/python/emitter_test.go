package python

import (
	"strings"
	"testing"

	"github.com/gopyi/gopyi/gen/ir"
)

func TestRenderHeader(t *testing.T) {
	m := ir.NewModule("pkg", "pkg")
	got := Render(m)

	if !strings.HasPrefix(got, "# This file is automatically generated by gopyi.\n") {
		t.Errorf("missing generated-file header:\n%s", got)
	}
	if !strings.Contains(got, "from __future__ import annotations") {
		t.Errorf("missing __future__ import:\n%s", got)
	}
	if strings.Contains(got, "import enum") {
		t.Errorf("enum import emitted for module without enums:\n%s", got)
	}
}

func TestRenderSubmodules(t *testing.T) {
	m := ir.NewModule("pkg", "pkg")
	m.Submodules["io"] = struct{}{}
	m.Submodules["core"] = struct{}{}

	got := Render(m)

	core := strings.Index(got, "from . import core as core")
	io := strings.Index(got, "from . import io as io")
	if core == -1 || io == -1 {
		t.Fatalf("missing submodule re-exports:\n%s", got)
	}
	if core > io {
		t.Errorf("submodules not in sorted order:\n%s", got)
	}
}

func TestRenderClass(t *testing.T) {
	m := ir.NewModule("pkg", "pkg")
	class := &ir.ClassDef{Name: "Widget", Doc: "A widget.", Bases: []string{"Base"}}
	class.Attrs = []ir.MemberDef{{Name: "size", Type: "int", Default: "0"}}
	class.Getters = []ir.MemberDef{{Name: "name", Type: "str"}}
	class.Setters = []ir.MemberDef{{Name: "name", Type: "str"}}
	class.Methods = []ir.MethodDef{
		{Name: "run", Signature: "(self) -> None"},
		{Name: "create", Signature: "(cls) -> Widget", Class: true},
		{Name: "version", Signature: "() -> str", Static: true},
	}
	m.Classes[nil] = class

	got := Render(m)

	for _, want := range []string{
		"class Widget(Base):",
		`"""A widget."""`,
		"    size: int = 0",
		"    @property\n    def name(self) -> str: ...",
		"    @name.setter\n    def name(self, value: str) -> None: ...",
		"    def run(self) -> None: ...",
		"    @classmethod\n    def create(cls) -> Widget: ...",
		"    @staticmethod\n    def version() -> str: ...",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("missing %q in:\n%s", want, got)
		}
	}
}

func TestRenderEmptyClassBody(t *testing.T) {
	m := ir.NewModule("pkg", "pkg")
	m.Classes[nil] = &ir.ClassDef{Name: "Empty"}

	got := Render(m)
	if !strings.Contains(got, "class Empty:\n    ...\n") {
		t.Errorf("empty class has no ellipsis body:\n%s", got)
	}
}

func TestRenderEnum(t *testing.T) {
	m := ir.NewModule("pkg", "pkg")
	enum := &ir.EnumDef{
		Name: "Color",
		Doc:  "A color.",
		Variants: []ir.VariantDef{
			{Name: "RED"},
			{Name: "GREEN", Doc: "The green one."},
		},
	}
	enum.Methods = []ir.MethodDef{{Name: "to_hex", Signature: "(self) -> str"}}
	m.Enums[nil] = enum

	got := Render(m)

	for _, want := range []string{
		"import enum",
		"class Color(enum.Enum):",
		`"""A color."""`,
		"    RED = ...",
		"    # The green one.\n    GREEN = ...",
		"    def to_hex(self) -> str: ...",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("missing %q in:\n%s", want, got)
		}
	}
}

func TestRenderFunctionWithDoc(t *testing.T) {
	m := ir.NewModule("pkg", "pkg")
	m.Functions["helper"] = &ir.FunctionDef{
		Name:      "helper",
		Signature: "(x: int) -> str",
		Doc:       "Does a thing.",
	}

	got := Render(m)
	want := "def helper(x: int) -> str:\n    \"\"\"Does a thing.\"\"\"\n    ...\n"
	if !strings.Contains(got, want) {
		t.Errorf("missing %q in:\n%s", want, got)
	}
}

func TestRenderErrorAndVariable(t *testing.T) {
	m := ir.NewModule("pkg", "pkg")
	m.Errors["MyError"] = &ir.ErrorDef{Name: "MyError", Base: "ValueError"}
	m.Variables["VERSION"] = &ir.VariableDef{Name: "VERSION", Type: "str"}

	got := Render(m)

	if !strings.Contains(got, "class MyError(ValueError): ...") {
		t.Errorf("missing error declaration:\n%s", got)
	}
	if !strings.Contains(got, "VERSION: str") {
		t.Errorf("missing variable declaration:\n%s", got)
	}
}

func TestRenderMultilineDocstring(t *testing.T) {
	m := ir.NewModule("pkg", "pkg")
	m.Classes[nil] = &ir.ClassDef{Name: "Widget", Doc: "Line one.\n\nLine three."}

	got := Render(m)
	want := "    \"\"\"Line one.\n\n    Line three.\n    \"\"\"\n"
	if !strings.Contains(got, want) {
		t.Errorf("multiline docstring rendered wrong, want %q in:\n%s", want, got)
	}
}

func TestRenderMemberOrderPreserved(t *testing.T) {
	m := ir.NewModule("pkg", "pkg")
	class := &ir.ClassDef{Name: "Widget"}
	class.Methods = []ir.MethodDef{
		{Name: "zeta", Signature: "(self) -> None"},
		{Name: "alpha", Signature: "(self) -> None"},
	}
	m.Classes[nil] = class

	got := Render(m)
	if strings.Index(got, "def zeta") > strings.Index(got, "def alpha") {
		t.Errorf("merged methods were reordered:\n%s", got)
	}
}
