package gen

import (
	"reflect"
	"sort"
	"strings"

	"github.com/gopyi/gopyi"
	"github.com/gopyi/gopyi/gen/ir"
)

// builder accumulates registered descriptors into the module table.
//
// Construction runs in a fixed order: all primary declarations (classes,
// enums, functions, errors, variables) are inserted before any method block
// is merged, so a block always finds its target if the target survived
// filtering. The whole pass is single-threaded; the table is not observable
// until build returns.
type builder struct {
	modules       map[string]*ir.Module
	defaultModule string
	moduleFilter  string
	originFilters []string
}

func newBuilder(cfg *Config) *builder {
	return &builder{
		modules:       make(map[string]*ir.Module),
		defaultModule: cfg.DefaultModule,
		moduleFilter:  cfg.ModuleFilter,
		originFilters: cfg.OriginFilters,
	}
}

// getModule returns the module for the given dotted name, creating it on
// first reference. An empty name resolves to the default module.
func (b *builder) getModule(name string) *ir.Module {
	if name == "" {
		name = b.defaultModule
	}
	m, ok := b.modules[name]
	if !ok {
		m = ir.NewModule(name, b.defaultModule)
		b.modules[name] = m
	}
	return m
}

// includeModule reports whether a descriptor targeting the given module name
// passes the module filter. The effective name of a descriptor with no module
// is the default module.
func (b *builder) includeModule(name string) bool {
	if b.moduleFilter == "" {
		return true
	}
	if name == "" {
		name = b.defaultModule
	}
	return strings.HasPrefix(name, b.moduleFilter)
}

// includeOrigin reports whether an origin path passes the origin filters.
// A descriptor is kept if its origin starts with any configured prefix.
func (b *builder) includeOrigin(origin string) bool {
	if len(b.originFilters) == 0 {
		return true
	}
	for _, filter := range b.originFilters {
		if strings.HasPrefix(origin, filter) {
			return true
		}
	}
	return false
}

func (b *builder) include(module, origin string) bool {
	return b.includeModule(module) && b.includeOrigin(origin)
}

// sortedModuleNames returns the table keys in lexicographic order. All
// observable iteration over the table goes through this so that two runs over
// the same registry produce identical output.
func (b *builder) sortedModuleNames() []string {
	names := make([]string, 0, len(b.modules))
	for name := range b.modules {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (b *builder) addClass(info gopyi.ClassInfo) {
	b.getModule(info.Module).Classes[info.Type] = &ir.ClassDef{
		Name:  info.Name,
		Doc:   info.Doc,
		Bases: append([]string(nil), info.Bases...),
	}
}

func (b *builder) addComplexEnum(info gopyi.ComplexEnumInfo) {
	def := &ir.ClassDef{
		Name: info.Name,
		Doc:  info.Doc,
	}
	def.Attrs = evalMembers(info.Variants)
	b.getModule(info.Module).Classes[info.Type] = def
}

func (b *builder) addEnum(info gopyi.EnumInfo) {
	variants := make([]ir.VariantDef, 0, len(info.Variants))
	for _, v := range info.Variants {
		variants = append(variants, ir.VariantDef{Name: v.Name, Doc: v.Doc})
	}
	b.getModule(info.Module).Enums[info.Type] = &ir.EnumDef{
		Name:     info.Name,
		Doc:      info.Doc,
		Variants: variants,
	}
}

func (b *builder) addFunction(info gopyi.FunctionInfo) {
	b.getModule(info.Module).Functions[info.Name] = &ir.FunctionDef{
		Name:      info.Name,
		Signature: evalExpr(info.Signature),
		Doc:       info.Doc,
	}
}

func (b *builder) addError(info gopyi.ErrorInfo) {
	b.getModule(info.Module).Errors[info.Name] = &ir.ErrorDef{
		Name: info.Name,
		Base: info.Base,
		Doc:  info.Doc,
	}
}

func (b *builder) addVariable(info gopyi.VariableInfo) {
	b.getModule(info.Module).Variables[info.Name] = &ir.VariableDef{
		Name: info.Name,
		Type: evalExpr(info.Type),
	}
}

// mergeMethods appends a method block's members to the class or enum sharing
// its identity. Modules are scanned in table order; the first match wins and
// the scan stops, so a block lands in at most one record. A block whose
// identity is nowhere in the table is dropped without diagnostics: the owning
// type was filtered out or never registered, which is a normal outcome.
func (b *builder) mergeMethods(info gopyi.MethodsInfo) {
	attrs := evalMembers(info.Attrs)
	getters := evalMembers(info.Getters)
	setters := evalMembers(info.Setters)
	methods := evalMethods(info.Methods)

	for _, name := range b.sortedModuleNames() {
		m := b.modules[name]
		if class, ok := m.Classes[info.Type]; ok {
			class.Extend(attrs, getters, setters, methods)
			return
		}
		if enum, ok := m.Enums[info.Type]; ok {
			enum.Extend(attrs, getters, setters, methods)
			return
		}
	}
}

// registerSubmodules links every module to its parent, derived purely from
// the dotted-name structure of the table keys. A parent that was never
// materialized is left alone: its children stay in the table as independent
// top-level entries and are still emitted, just not reachable through any
// submodule set.
func (b *builder) registerSubmodules() {
	children := make(map[string]map[string]struct{})
	for name := range b.modules {
		segments := strings.Split(name, ".")
		if len(segments) <= 1 {
			continue
		}
		parent := strings.Join(segments[:len(segments)-1], ".")
		leaf := segments[len(segments)-1]
		if children[parent] == nil {
			children[parent] = make(map[string]struct{})
		}
		children[parent][leaf] = struct{}{}
	}
	for parent, leaves := range children {
		m, ok := b.modules[parent]
		if !ok {
			continue
		}
		for leaf := range leaves {
			m.Submodules[leaf] = struct{}{}
		}
	}
}

// build runs the aggregation pass over a registry.
func (b *builder) build(reg *gopyi.Registry) map[string]*ir.Module {
	for _, info := range reg.Classes() {
		if b.include(info.Module, info.Origin) {
			b.addClass(info)
		}
	}
	for _, info := range reg.ComplexEnums() {
		if b.include(info.Module, info.Origin) {
			b.addComplexEnum(info)
		}
	}
	for _, info := range reg.Enums() {
		if b.include(info.Module, info.Origin) {
			b.addEnum(info)
		}
	}
	for _, info := range reg.Functions() {
		if b.include(info.Module, info.Origin) {
			b.addFunction(info)
		}
	}
	for _, info := range reg.Errors() {
		if b.include(info.Module, info.Origin) {
			b.addError(info)
		}
	}
	for _, info := range reg.Variables() {
		if b.include(info.Module, info.Origin) {
			b.addVariable(info)
		}
	}
	// Method blocks bypass filtering: their effect is gated by whether the
	// target identity made it into the table.
	for _, info := range reg.Methods() {
		b.mergeMethods(info)
	}
	b.registerSubmodules()
	return b.modules
}

// evalExpr evaluates a deferred type expression. Thunks run once, here, after
// filtering, so excluded descriptors never pay the formatting cost.
func evalExpr(expr gopyi.TypeExpr) string {
	if expr == nil {
		return ""
	}
	return expr()
}

func evalMembers(infos []gopyi.MemberInfo) []ir.MemberDef {
	if len(infos) == 0 {
		return nil
	}
	defs := make([]ir.MemberDef, 0, len(infos))
	for _, m := range infos {
		defs = append(defs, ir.MemberDef{
			Name:    m.Name,
			Type:    evalExpr(m.Type),
			Doc:     m.Doc,
			Default: m.Default,
		})
	}
	return defs
}

func evalMethods(infos []gopyi.MethodInfo) []ir.MethodDef {
	if len(infos) == 0 {
		return nil
	}
	defs := make([]ir.MethodDef, 0, len(infos))
	for _, m := range infos {
		defs = append(defs, ir.MethodDef{
			Name:      m.Name,
			Signature: evalExpr(m.Signature),
			Doc:       m.Doc,
			Static:    m.Kind == gopyi.MethodStatic,
			Class:     m.Kind == gopyi.MethodClass,
		})
	}
	return defs
}

// identityOwner reports which module, if any, currently owns the identity.
// Used by tests to assert the at-most-one-module invariant.
func identityOwner(modules map[string]*ir.Module, id reflect.Type) (string, bool) {
	names := make([]string, 0, len(modules))
	for name := range modules {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		m := modules[name]
		if _, ok := m.Classes[id]; ok {
			return name, true
		}
		if _, ok := m.Enums[id]; ok {
			return name, true
		}
	}
	return "", false
}
