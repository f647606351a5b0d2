package ir

import (
	"reflect"
	"testing"
)

func TestMembersExtend(t *testing.T) {
	var m Members
	m.Extend(
		[]MemberDef{{Name: "a"}},
		[]MemberDef{{Name: "g"}},
		nil,
		[]MethodDef{{Name: "m1"}},
	)
	m.Extend(nil, nil, []MemberDef{{Name: "s"}}, []MethodDef{{Name: "m2"}})

	if len(m.Attrs) != 1 || m.Attrs[0].Name != "a" {
		t.Errorf("attrs = %+v", m.Attrs)
	}
	if len(m.Getters) != 1 || len(m.Setters) != 1 {
		t.Errorf("getters/setters = %+v / %+v", m.Getters, m.Setters)
	}
	if len(m.Methods) != 2 || m.Methods[0].Name != "m1" || m.Methods[1].Name != "m2" {
		t.Errorf("methods lost their order: %+v", m.Methods)
	}
}

func TestSortedAccessors(t *testing.T) {
	m := NewModule("pkg", "pkg")
	m.Functions["zeta"] = &FunctionDef{Name: "zeta"}
	m.Functions["alpha"] = &FunctionDef{Name: "alpha"}
	m.Variables["B"] = &VariableDef{Name: "B"}
	m.Variables["A"] = &VariableDef{Name: "A"}
	m.Submodules["io"] = struct{}{}
	m.Submodules["core"] = struct{}{}

	fns := m.SortedFunctions()
	if fns[0].Name != "alpha" || fns[1].Name != "zeta" {
		t.Errorf("functions not sorted: %v, %v", fns[0].Name, fns[1].Name)
	}
	vars := m.SortedVariables()
	if vars[0].Name != "A" || vars[1].Name != "B" {
		t.Errorf("variables not sorted: %v, %v", vars[0].Name, vars[1].Name)
	}
	if got := m.SortedSubmodules(); !reflect.DeepEqual(got, []string{"core", "io"}) {
		t.Errorf("submodules = %v, want [core io]", got)
	}
}

func TestSortedClassesByName(t *testing.T) {
	type a struct{}
	type b struct{}

	m := NewModule("pkg", "pkg")
	m.Classes[reflect.TypeOf(a{})] = &ClassDef{Name: "Zed"}
	m.Classes[reflect.TypeOf(b{})] = &ClassDef{Name: "Abc"}

	classes := m.SortedClasses()
	if classes[0].Name != "Abc" || classes[1].Name != "Zed" {
		t.Errorf("classes not sorted by name: %v, %v", classes[0].Name, classes[1].Name)
	}
}
