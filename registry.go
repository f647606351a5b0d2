package gopyi

import "sync"

// Registry is the collection of descriptors contributed by the packages that
// make up an extension module. Contributing packages register from init
// functions; generation reads the registry once after start-up and never
// mutates it.
//
// Registration order is preserved per descriptor kind and determines the
// order in which merged members appear in the generated stubs.
type Registry struct {
	mu           sync.Mutex
	classes      []ClassInfo
	complexEnums []ComplexEnumInfo
	enums        []EnumInfo
	functions    []FunctionInfo
	errors       []ErrorInfo
	variables    []VariableInfo
	methods      []MethodsInfo
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// RegisterClass adds a class descriptor.
func (r *Registry) RegisterClass(info ClassInfo) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.classes = append(r.classes, info)
}

// RegisterComplexEnum adds a complex enum descriptor.
func (r *Registry) RegisterComplexEnum(info ComplexEnumInfo) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.complexEnums = append(r.complexEnums, info)
}

// RegisterEnum adds a plain enum descriptor.
func (r *Registry) RegisterEnum(info EnumInfo) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.enums = append(r.enums, info)
}

// RegisterFunction adds a module-level function descriptor.
func (r *Registry) RegisterFunction(info FunctionInfo) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.functions = append(r.functions, info)
}

// RegisterError adds an exception descriptor.
func (r *Registry) RegisterError(info ErrorInfo) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errors = append(r.errors, info)
}

// RegisterVariable adds a module-level variable descriptor.
func (r *Registry) RegisterVariable(info VariableInfo) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.variables = append(r.variables, info)
}

// RegisterMethods adds a methods block extending a class or enum.
func (r *Registry) RegisterMethods(info MethodsInfo) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.methods = append(r.methods, info)
}

// Classes returns the registered class descriptors in registration order.
func (r *Registry) Classes() []ClassInfo {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]ClassInfo(nil), r.classes...)
}

// ComplexEnums returns the registered complex enum descriptors.
func (r *Registry) ComplexEnums() []ComplexEnumInfo {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]ComplexEnumInfo(nil), r.complexEnums...)
}

// Enums returns the registered enum descriptors.
func (r *Registry) Enums() []EnumInfo {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]EnumInfo(nil), r.enums...)
}

// Functions returns the registered function descriptors.
func (r *Registry) Functions() []FunctionInfo {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]FunctionInfo(nil), r.functions...)
}

// Errors returns the registered error descriptors.
func (r *Registry) Errors() []ErrorInfo {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]ErrorInfo(nil), r.errors...)
}

// Variables returns the registered variable descriptors.
func (r *Registry) Variables() []VariableInfo {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]VariableInfo(nil), r.variables...)
}

// Methods returns the registered method blocks.
func (r *Registry) Methods() []MethodsInfo {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]MethodsInfo(nil), r.methods...)
}

// Default is the process-wide registry. Contributing packages that do not
// need an explicit registry register here from their init functions, and a
// generator binary passes it to gen.Build.
var Default = NewRegistry()

// RegisterClass adds a class descriptor to the default registry.
func RegisterClass(info ClassInfo) { Default.RegisterClass(info) }

// RegisterComplexEnum adds a complex enum descriptor to the default registry.
func RegisterComplexEnum(info ComplexEnumInfo) { Default.RegisterComplexEnum(info) }

// RegisterEnum adds a plain enum descriptor to the default registry.
func RegisterEnum(info EnumInfo) { Default.RegisterEnum(info) }

// RegisterFunction adds a function descriptor to the default registry.
func RegisterFunction(info FunctionInfo) { Default.RegisterFunction(info) }

// RegisterError adds an exception descriptor to the default registry.
func RegisterError(info ErrorInfo) { Default.RegisterError(info) }

// RegisterVariable adds a variable descriptor to the default registry.
func RegisterVariable(info VariableInfo) { Default.RegisterVariable(info) }

// RegisterMethods adds a methods block to the default registry.
func RegisterMethods(info MethodsInfo) { Default.RegisterMethods(info) }
