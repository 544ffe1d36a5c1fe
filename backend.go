package velac

// Program is the read-only snapshot a backend consumes: every file's
// annotated AST plus the lookups a code generator needs without
// re-walking the tree. It is built once, eagerly, after resolution
// finishes — never incrementally recomputed (spec.md §4.7; see
// DESIGN.md's "Deliberately not ported" entry on why this isn't a
// salsa-style query cache).
type Program struct {
	files      []*SourceFile
	registry   *Registry
	entryPoint *FunctionDecl
	modules    *ModuleGraph
}

// Files returns every source file that took part in the compile, in
// submission order.
func (p *Program) Files() []*SourceFile { return p.files }

// Registry exposes the interned type table backing every ValueType in
// the annotated AST, so a backend can pretty-print or mangle types
// without its own copy of the conversion rules.
func (p *Program) Registry() *Registry { return p.registry }

// EntryPoint returns the resolved `main` function, or nil if none was
// declared (a library compile with no entry point is valid per
// spec.md §4.6; only an executable target requires one).
func (p *Program) EntryPoint() *FunctionDecl { return p.entryPoint }

// TypeOf is a convenience wrapper a backend can use uniformly instead
// of switching on whether it holds an Expression directly.
func (p *Program) TypeOf(e Expression) *TypeID { return e.ValueType() }

// CalleeOf returns the function a resolved call invokes, or nil for a
// call through a function-typed value (no single declaration to
// report) or a call that failed to resolve.
func (p *Program) CalleeOf(call *CallExpr) *FunctionDecl { return call.ResolvedFunc }

// InstancesOf returns every generic instantiation recorded against a
// generic function, struct, or class declaration.
func (p *Program) InstancesOf(decl Declaration) []*GenericInstance {
	switch d := decl.(type) {
	case *FunctionDecl:
		return d.Instances
	case *StructDecl:
		return d.Instances
	case *ClassDecl:
		return d.Instances
	default:
		return nil
	}
}

// MangledNameOf returns the external symbol computed for a function or
// global during header resolution.
func (p *Program) MangledNameOf(decl Declaration) string {
	switch d := decl.(type) {
	case *FunctionDecl:
		return d.MangledName
	case *GlobalVarDecl:
		return mangleGlobal(d)
	default:
		return ""
	}
}

// Modules exposes the resolved module tree for a backend that needs
// to group output by module (e.g. one object file per module).
func (p *Program) Modules() *ModuleGraph { return p.modules }
