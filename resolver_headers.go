package velac

// resolveEnumHeader allocates the enum's alias TypeID (aliasing i32,
// per spec.md §3) so other headers can reference it by name; value
// bodies are resolved in stage 12 alongside global initializers, since
// an enum value's default initializer is "previous + 1".
func (r *Resolver) resolveEnumHeader(f *SourceFile, e *EnumDecl) {
	e.Type = r.reg.NewAlias(e.DeclName(), r.reg.Integer(32, true), e)
}

// resolveStructHeader allocates the struct's own TypeID. Field types
// are filled in during stage 10 (resolveStructBody) since a field can
// reference a struct declared later in the same file.
func (r *Resolver) resolveStructHeader(s *StructDecl) {
	if len(s.GenericParams) > 0 {
		return // generic structs get a TypeID per instantiation, not here
	}
	s.Type = r.reg.NewStruct(s.DeclName(), s, s.HasBody)
}

func (r *Resolver) resolveClassHeader(c *ClassDecl) {
	if len(c.GenericParams) > 0 {
		return
	}
	c.Type = r.reg.NewClass(c.DeclName(), c)
}

// resolveTypedefHeader resolves the aliased type immediately: typedefs
// may not form forward-reference cycles with structs/classes the way
// field types can, since the target must already name a type.
func (r *Resolver) resolveTypedefHeader(f *SourceFile, t *TypedefDecl) {
	target := r.resolveTypeExpr(f, nil, t.Target)
	t.Type = r.reg.NewAlias(t.DeclName(), target, t)
}

// resolveFunctionHeader computes f's signature TypeID and mangled
// name. Body resolution (stage 11) is deferred so every function's
// signature is available for the overload resolution a sibling
// function's body performs.
func (r *Resolver) resolveFunctionHeader(file *SourceFile, fn *FunctionDecl) {
	if len(fn.GenericParams) > 0 {
		return // generic function signatures are built per instantiation
	}

	sawDefault := false
	params := make([]*TypeID, len(fn.Params))
	for i := range fn.Params {
		p := &fn.Params[i]
		p.ResolvedType = r.resolveTypeExpr(file, nil, p.DeclaredType)
		if p.Default != nil {
			sawDefault = true
		} else if sawDefault {
			r.diag(DiagnosticError, file.Path, p.Span, "parameter `%s` without a default follows a parameter with one", p.Name)
		}
		params[i] = p.ResolvedType
	}

	ret := r.reg.Void()
	if fn.ReturnType != nil {
		ret = r.resolveTypeExpr(file, nil, fn.ReturnType)
	}

	var varElem *TypeID
	if fn.Varargs && fn.VarargsElem != nil {
		varElem = r.resolveTypeExpr(file, nil, fn.VarargsElem)
	}

	var instanceType *TypeID
	if fn.Kind != FuncFree && fn.Receiver != nil {
		instanceType = fn.Receiver.Type
	}

	fn.Type = r.reg.Function(ret, params, fn.Varargs, varElem, fn.Kind != FuncFree, instanceType)
	fn.MangledName = mangleFunction(fn)

	if fn.IsEntryPoint {
		if r.entryPoint != nil {
			r.diag(DiagnosticError, file.Path, fn.DeclSpan(), "duplicate entry point `main`; first defined in %s", r.entryPoint.OwningFile().Path)
		} else if len(fn.Params) != 0 || !isValidEntryPointReturn(ret) {
			r.diag(DiagnosticError, file.Path, fn.DeclSpan(), "`main` must take no parameters and return void or i32")
		} else {
			r.entryPoint = fn
		}
	}
}

// isValidEntryPointReturn reports whether ret is one of the two return
// types spec.md §4.6 stage 8 allows for `main`: void, or a 32-bit
// signed integer exit code.
func isValidEntryPointReturn(ret *TypeID) bool {
	u := unwrap(ret)
	if u.Kind == TypeVoid {
		return true
	}
	return u.Kind == TypeInteger && u.Width == 32 && u.Signed
}

// checkDuplicateFunctions reports same-module, same-mangled-name
// collisions: two non-generic overloads whose parameter lists produced
// an identical mangled symbol (spec.md §4.6's duplicate-definition
// check; generic instances are excluded since each instantiation
// mints a distinct mangled name).
func (r *Resolver) checkDuplicateFunctions(files []*SourceFile) {
	seen := make(map[string]*FunctionDecl)
	visit := func(file *SourceFile, fn *FunctionDecl) {
		if fn.Extern || len(fn.GenericParams) > 0 || fn.MangledName == "" {
			return
		}
		if prior, ok := seen[fn.MangledName]; ok {
			r.diag(DiagnosticError, file.Path, fn.DeclSpan(),
				"function `%s` redeclares a function with the same signature, first defined in %s", fn.DeclName(), prior.OwningFile().Path)
			return
		}
		seen[fn.MangledName] = fn
	}
	for _, f := range files {
		for _, d := range f.Decls {
			switch decl := d.(type) {
			case *FunctionDecl:
				visit(f, decl)
			case *ClassDecl:
				for _, m := range decl.Methods {
					visit(f, m)
				}
				if decl.Constructor != nil {
					visit(f, decl.Constructor)
				}
			}
		}
	}
}

func (r *Resolver) resolveGlobalHeader(f *SourceFile, g *GlobalVarDecl) {
	if g.ResolvedType != nil {
		return
	}
	g.ResolvedType = r.resolveTypeExpr(f, nil, g.DeclaredType)
}

func (r *Resolver) resolveStructBody(f *SourceFile, s *StructDecl) {
	if len(s.GenericParams) > 0 {
		return
	}
	names := make([]string, len(s.Fields))
	types := make([]*TypeID, len(s.Fields))
	for i := range s.Fields {
		field := &s.Fields[i]
		field.ResolvedType = r.resolveTypeExpr(f, nil, field.DeclaredType)
		names[i] = field.Name
		types[i] = field.ResolvedType
	}
	s.Type.FieldNames = names
	s.Type.FieldTypes = types
	s.Type.HasBody = true
	checkDuplicateFieldNames(r, f, s.DeclName(), s.Fields)
}

func (r *Resolver) resolveClassBody(f *SourceFile, c *ClassDecl) {
	if len(c.GenericParams) > 0 {
		return
	}
	names := make([]string, len(c.Fields))
	types := make([]*TypeID, len(c.Fields))
	for i := range c.Fields {
		field := &c.Fields[i]
		field.ResolvedType = r.resolveTypeExpr(f, nil, field.DeclaredType)
		names[i] = field.Name
		types[i] = field.ResolvedType
	}
	c.Type.FieldNames = names
	c.Type.FieldTypes = types
	c.Type.HasBody = true
	checkDuplicateFieldNames(r, f, c.DeclName(), c.Fields)
}

func checkDuplicateFieldNames(r *Resolver, f *SourceFile, owner string, fields []Field) {
	seen := make(map[string]Span)
	for _, field := range fields {
		if prior, ok := seen[field.Name]; ok {
			r.diag(DiagnosticError, f.Path, field.Span, "duplicate field `%s` in `%s`, first declared at %s", field.Name, owner, prior)
			continue
		}
		seen[field.Name] = field.Span
	}
}

func (r *Resolver) resolveGlobalInitializer(f *SourceFile, g *GlobalVarDecl) {
	if g.Init == nil {
		return
	}
	fileScope := NewScope(nil)
	globalScope := NewScope(fileScope)
	r.resolveExpr(f, globalScope, g.Init)
	if !canConvertImplicit(g.Init.ValueType(), g.ResolvedType, isConstantExpr(g.Init)) {
		r.diag(DiagnosticError, f.Path, g.Init.Span(), "cannot initialize `%s` of type %s with value of type %s",
			g.DeclName(), r.reg.Pretty(g.ResolvedType), r.reg.Pretty(g.Init.ValueType()))
	}
}
