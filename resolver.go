package velac

import "fmt"

// Resolver runs the whole-program, staged resolution pass of
// spec.md §4.6 over every file submitted to it together, so overloads
// and generics can cross file boundaries.
type Resolver struct {
	reg   *Registry
	cfg   *Config
	sink  DiagnosticSink
	graph *ModuleGraph
	files []*SourceFile

	entryPoint       *FunctionDecl
	maxInstanceDepth int
	instanceDepth    int

	// bindingsStack holds one map per generic declaration currently
	// being instantiated, binding its GenericParams names to the
	// concrete TypeIDs of the instance under resolution. Checked
	// innermost-first so a generic function instantiated from within
	// a generic struct's method sees both scopes.
	bindingsStack []map[string]*TypeID

	// loopStack and currentReturnType are valid only while resolving
	// one function body at a time (spec.md §5: no concurrent
	// resolution), reset at the start of resolveFunctionBody.
	loopStack         []*LoopScope
	currentReturnType *TypeID

	failed bool
}

func (r *Resolver) pushBindings(b map[string]*TypeID) { r.bindingsStack = append(r.bindingsStack, b) }
func (r *Resolver) popBindings()                      { r.bindingsStack = r.bindingsStack[:len(r.bindingsStack)-1] }

func (r *Resolver) lookupBinding(name string) (*TypeID, bool) {
	for i := len(r.bindingsStack) - 1; i >= 0; i-- {
		if t, ok := r.bindingsStack[i][name]; ok {
			return t, true
		}
	}
	return nil, false
}

func NewResolver(cfg *Config, sink DiagnosticSink) *Resolver {
	return &Resolver{
		reg: NewRegistry(sink), cfg: cfg, sink: sink, graph: NewModuleGraph(),
		maxInstanceDepth: cfg.GetInt("resolver.max_instance_depth"),
	}
}

func (r *Resolver) diag(sev DiagnosticSeverity, file string, sp Span, format string, args ...any) {
	if r.sink == nil {
		return
	}
	r.sink(Diagnostic{Severity: sev, File: file, Span: sp, Message: fmt.Sprintf(format, args...)})
	if sev == DiagnosticError || sev == DiagnosticFatal {
		r.failed = true
	}
}

// Resolve runs all twelve stages of spec.md §4.6 over files, returning
// whether the whole-program resolution succeeded. An error never stops
// resolution: the remaining members of the same declaration, sibling
// declarations and all function bodies are still resolved, and the
// result is false once any error has been reported.
func (r *Resolver) Resolve(files []*SourceFile) bool {
	r.files = files

	// Stage 1: module headers.
	for _, f := range files {
		r.graph.BindFile(f)
	}
	for _, f := range files {
		r.graph.ResolveImports(f, r.sink, f.Path)
	}

	// Stage 2: primitive global headers (constant globals of
	// primitive declared type, needed by array-length expressions and
	// enum initializers).
	for _, f := range files {
		for _, d := range f.Decls {
			if g, ok := d.(*GlobalVarDecl); ok && g.Const && isPrimitiveTypeExpr(g.DeclaredType) {
				r.resolveGlobalHeader(f, g)
			}
		}
	}

	// Stage 3: enum headers.
	for _, f := range files {
		for _, d := range f.Decls {
			if e, ok := d.(*EnumDecl); ok {
				r.resolveEnumHeader(f, e)
			}
		}
	}

	// Stage 4: struct headers.
	for _, f := range files {
		for _, d := range f.Decls {
			if s, ok := d.(*StructDecl); ok {
				r.resolveStructHeader(s)
			}
		}
	}

	// Stage 5: class headers.
	for _, f := range files {
		for _, d := range f.Decls {
			if c, ok := d.(*ClassDecl); ok {
				r.resolveClassHeader(c)
			}
		}
	}

	// Stage 6: typedef headers.
	for _, f := range files {
		for _, d := range f.Decls {
			if t, ok := d.(*TypedefDecl); ok {
				r.resolveTypedefHeader(f, t)
			}
		}
	}

	// Stage 7: macro (exprdef) headers — visibility is already
	// recorded by the parser; nothing else to do before bodies
	// reference them.

	// Stage 8: function, method, and constructor headers.
	for _, f := range files {
		for _, d := range f.Decls {
			switch decl := d.(type) {
			case *FunctionDecl:
				r.resolveFunctionHeader(f, decl)
			case *ClassDecl:
				for _, m := range decl.Methods {
					r.resolveFunctionHeader(f, m)
				}
				if decl.Constructor != nil {
					r.resolveFunctionHeader(f, decl.Constructor)
				}
			}
		}
	}
	r.checkDuplicateFunctions(files)

	// Stage 9: remaining (non-primitive-constant) global headers.
	for _, f := range files {
		for _, d := range f.Decls {
			if g, ok := d.(*GlobalVarDecl); ok && !(g.Const && isPrimitiveTypeExpr(g.DeclaredType)) {
				r.resolveGlobalHeader(f, g)
			}
		}
	}

	// Stage 10: struct and class bodies. Typedef targets are resolved
	// with their headers (stage 6) and enum value initializers in
	// stage 12.
	for _, f := range files {
		for _, d := range f.Decls {
			switch decl := d.(type) {
			case *StructDecl:
				r.resolveStructBody(f, decl)
			case *ClassDecl:
				r.resolveClassBody(f, decl)
			}
		}
	}

	// Stage 11: function and procedure bodies.
	for _, f := range files {
		for _, d := range f.Decls {
			switch decl := d.(type) {
			case *FunctionDecl:
				r.resolveFunctionBody(f, decl)
			case *ClassDecl:
				for _, m := range decl.Methods {
					r.resolveFunctionBody(f, m)
				}
				if decl.Constructor != nil {
					r.resolveFunctionBody(f, decl.Constructor)
				}
			}
		}
	}

	// Stage 12: global initializers and explicit enum value initializers.
	for _, f := range files {
		for _, d := range f.Decls {
			switch decl := d.(type) {
			case *GlobalVarDecl:
				r.resolveGlobalInitializer(f, decl)
			case *EnumDecl:
				for _, v := range decl.Values {
					if v.Init != nil {
						r.resolveExpr(f, NewScope(nil), v.Init)
					}
				}
			}
		}
	}

	return !r.failed
}

func isPrimitiveTypeExpr(t TypeExpr) bool {
	switch t.(type) {
	case *IntTypeExpr, *FloatTypeExpr, *BoolTypeExpr, *StringTypeExpr, *VoidTypeExpr:
		return true
	default:
		return false
	}
}

// resolveTypeExpr converts a parsed TypeExpr into an interned TypeID,
// re-entrantly triggering generic instantiation for `named_type<...>`
// references (spec.md §4.6).
func (r *Resolver) resolveTypeExpr(f *SourceFile, scope *Scope, t TypeExpr) *TypeID {
	if t == nil {
		return r.reg.Void()
	}
	if existing := t.ResolvedType(); existing != nil {
		return existing
	}

	var out *TypeID
	switch n := t.(type) {
	case *VoidTypeExpr:
		out = r.reg.Void()
	case *IntTypeExpr:
		out = r.reg.Integer(n.Width, n.Signed)
	case *FloatTypeExpr:
		out = r.reg.Float(n.Precision)
	case *BoolTypeExpr:
		out = r.reg.Bool()
	case *StringTypeExpr:
		out = r.reg.String()
	case *AnyTypeExpr:
		out = r.reg.Any()
	case *PointerTypeExpr:
		out = r.reg.Pointer(r.resolveTypeExpr(f, scope, n.Elem))
	case *OptionalTypeExpr:
		out = r.reg.Optional(r.resolveTypeExpr(f, scope, n.Elem))
	case *ArrayTypeExpr:
		length := UnboundArrayLength
		if n.Length != nil {
			if v, ok := r.evalConstInt(f, scope, n.Length); ok {
				length = v
			} else {
				r.diag(DiagnosticError, f.Path, n.Length.Span(), "array length must be a constant expression")
			}
		}
		out = r.reg.Array(r.resolveTypeExpr(f, scope, n.Elem), length)
	case *TupleTypeExpr:
		elems := make([]*TypeID, len(n.Elems))
		for i, e := range n.Elems {
			elems[i] = r.resolveTypeExpr(f, scope, e)
		}
		out = r.reg.Tuple(elems)
	case *FunctionTypeExpr:
		params := make([]*TypeID, len(n.Params))
		for i, p := range n.Params {
			params[i] = r.resolveTypeExpr(f, scope, p)
		}
		var varElem *TypeID
		if n.VarElem != nil {
			varElem = r.resolveTypeExpr(f, scope, n.VarElem)
		}
		out = r.reg.Function(r.resolveTypeExpr(f, scope, n.Return), params, n.Varargs, varElem, false, nil)
	case *NamedTypeExpr:
		out = r.resolveNamedType(f, scope, n)
	default:
		out = r.reg.Void()
	}
	t.setResolvedType(out)
	return out
}

// resolveNamedType looks up a named type: a generic parameter bound
// in scope, a struct/class/typedef/enum declaration (triggering
// generic instantiation when type arguments are present), or an
// unresolved-identifier error.
func (r *Resolver) resolveNamedType(f *SourceFile, scope *Scope, n *NamedTypeExpr) *TypeID {
	if bound, ok := r.lookupBinding(n.Name); ok {
		return bound
	}
	decl, ok := r.lookupTypeDecl(f, n.Name)
	if !ok {
		r.diag(DiagnosticError, f.Path, n.Span(), "undefined type `%s`", n.Name)
		return r.reg.Void()
	}

	switch d := decl.(type) {
	case *StructDecl:
		if len(d.GenericParams) == 0 {
			return d.Type
		}
		return r.instantiateStruct(f, scope, d, n.TypeArgs)
	case *ClassDecl:
		if len(d.GenericParams) == 0 {
			return d.Type
		}
		return r.instantiateClass(f, scope, d, n.TypeArgs)
	case *TypedefDecl:
		return d.Type
	case *EnumDecl:
		return d.Type
	default:
		return r.reg.Void()
	}
}

// lookupTypeDecl finds a struct/class/typedef/enum declaration visible
// from f, preferring the file itself, then the module/dependency set.
func (r *Resolver) lookupTypeDecl(f *SourceFile, name string) (Declaration, bool) {
	for _, d := range f.Decls {
		if d.DeclName() == name {
			switch d.(type) {
			case *StructDecl, *ClassDecl, *TypedefDecl, *EnumDecl:
				return d, true
			}
		}
	}
	for _, dep := range f.Dependencies {
		for _, df := range dep.Files {
			if df == f {
				continue
			}
			for _, d := range df.Decls {
				if d.DeclName() != name {
					continue
				}
				switch d.(type) {
				case *StructDecl, *ClassDecl, *TypedefDecl, *EnumDecl:
					if Visible(d, f) {
						return d, true
					}
				}
			}
		}
	}
	return nil, false
}
