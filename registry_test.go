package gopyi

import (
	"reflect"
	"testing"
)

type thing struct{}
type other struct{}

func TestRegistryPreservesRegistrationOrder(t *testing.T) {
	r := NewRegistry()
	r.RegisterFunction(FunctionInfo{Name: "zeta"})
	r.RegisterFunction(FunctionInfo{Name: "alpha"})
	r.RegisterFunction(FunctionInfo{Name: "mid"})

	fns := r.Functions()
	want := []string{"zeta", "alpha", "mid"}
	if len(fns) != len(want) {
		t.Fatalf("got %d functions, want %d", len(fns), len(want))
	}
	for i, name := range want {
		if fns[i].Name != name {
			t.Errorf("functions[%d] = %q, want %q", i, fns[i].Name, name)
		}
	}
}

func TestRegistryAccessorsReturnCopies(t *testing.T) {
	r := NewRegistry()
	r.RegisterClass(ClassInfo{Name: "Widget", Type: reflect.TypeOf(thing{})})

	classes := r.Classes()
	classes[0].Name = "Mutated"

	if got := r.Classes()[0].Name; got != "Widget" {
		t.Errorf("registry state mutated through accessor copy: %q", got)
	}
}

func TestRegistryAllKinds(t *testing.T) {
	r := NewRegistry()
	r.RegisterClass(ClassInfo{Name: "C", Type: reflect.TypeOf(thing{})})
	r.RegisterComplexEnum(ComplexEnumInfo{Name: "CE", Type: reflect.TypeOf(other{})})
	r.RegisterEnum(EnumInfo{Name: "E"})
	r.RegisterFunction(FunctionInfo{Name: "f"})
	r.RegisterError(ErrorInfo{Name: "Err", Base: "Exception"})
	r.RegisterVariable(VariableInfo{Name: "V"})
	r.RegisterMethods(MethodsInfo{Type: reflect.TypeOf(thing{})})

	if len(r.Classes()) != 1 || len(r.ComplexEnums()) != 1 || len(r.Enums()) != 1 ||
		len(r.Functions()) != 1 || len(r.Errors()) != 1 || len(r.Variables()) != 1 ||
		len(r.Methods()) != 1 {
		t.Error("registry lost a descriptor kind")
	}
}

func TestStr(t *testing.T) {
	expr := Str("list[int]")
	if got := expr(); got != "list[int]" {
		t.Errorf("Str thunk = %q, want %q", got, "list[int]")
	}
}

func TestSharedIdentityAcrossDescriptors(t *testing.T) {
	// Two descriptors for the same Go type carry equal identities; a
	// different type does not.
	a := ClassInfo{Type: reflect.TypeOf(thing{})}
	b := MethodsInfo{Type: reflect.TypeOf(thing{})}
	c := ClassInfo{Type: reflect.TypeOf(other{})}

	if a.Type != b.Type {
		t.Error("descriptors for the same type have different identities")
	}
	if a.Type == c.Type {
		t.Error("descriptors for different types share an identity")
	}
}
