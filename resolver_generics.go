package velac

// evalConstInt evaluates a constant integer expression (array
// lengths) without a full body resolution pass: integer literals,
// parentheses, unary minus, `+ - * /`, and references to constant
// globals with an initializer are supported.
func (r *Resolver) evalConstInt(f *SourceFile, scope *Scope, e Expression) (int, bool) {
	switch n := e.(type) {
	case *IntLiteralExpr:
		return int(n.Value), true
	case *ParenExpr:
		return r.evalConstInt(f, scope, n.Inner)
	case *UnaryExpr:
		v, ok := r.evalConstInt(f, scope, n.Operand)
		if !ok {
			return 0, false
		}
		if n.Op == UnaryNeg {
			return -v, true
		}
		return 0, false
	case *BinaryExpr:
		l, ok := r.evalConstInt(f, scope, n.Left)
		if !ok {
			return 0, false
		}
		rv, ok := r.evalConstInt(f, scope, n.Right)
		if !ok {
			return 0, false
		}
		switch n.Op {
		case BinAdd:
			return l + rv, true
		case BinSub:
			return l - rv, true
		case BinMul:
			return l * rv, true
		case BinDiv:
			if rv == 0 {
				return 0, false
			}
			return l / rv, true
		}
		return 0, false
	case *IdentifierExpr:
		if decl, ok := r.lookupTypeDeclOrGlobal(f, n.Name); ok {
			if g, ok := decl.(*GlobalVarDecl); ok && g.Const && g.Init != nil {
				return r.evalConstInt(f, scope, g.Init)
			}
		}
		return 0, false
	default:
		return 0, false
	}
}

func (r *Resolver) lookupTypeDeclOrGlobal(f *SourceFile, name string) (Declaration, bool) {
	for _, d := range f.Decls {
		if d.DeclName() == name {
			return d, true
		}
	}
	for _, dep := range f.Dependencies {
		for _, df := range dep.Files {
			for _, d := range df.Decls {
				if d.DeclName() == name && Visible(d, f) {
					return d, true
				}
			}
		}
	}
	return nil, false
}

// findInstance returns a previously built instance of decl's
// Instances list matching args structurally, per spec.md §4.4's
// "generic instances are deduplicated by structural equality of their
// argument tuple" rule.
func findInstance(instances []*GenericInstance, args []*TypeID) *GenericInstance {
	for _, inst := range instances {
		if sameTypeSlice(inst.Args, args) {
			return inst
		}
	}
	return nil
}

func (r *Resolver) resolveTypeArgs(f *SourceFile, scope *Scope, typeArgs []TypeExpr) []*TypeID {
	args := make([]*TypeID, len(typeArgs))
	for i, t := range typeArgs {
		args[i] = r.resolveTypeExpr(f, scope, t)
	}
	return args
}

// instantiateStruct finds or builds the instance of s for args,
// registering the instance in s.Instances before resolving the
// clone's body so a self-referential generic struct (a node holding a
// pointer to a Box<T> of itself) terminates instead of looping.
func (r *Resolver) instantiateStruct(f *SourceFile, scope *Scope, s *StructDecl, typeArgExprs []TypeExpr) *TypeID {
	args := r.resolveTypeArgs(f, scope, typeArgExprs)
	if len(args) != len(s.GenericParams) {
		r.diag(DiagnosticError, f.Path, s.DeclSpan(), "struct `%s` expects %d type argument(s), got %d", s.DeclName(), len(s.GenericParams), len(args))
		return r.reg.Void()
	}
	if inst := findInstance(s.Instances, args); inst != nil {
		return inst.Struct.Type
	}

	r.instanceDepth++
	defer func() { r.instanceDepth-- }()
	if r.instanceDepth > r.maxInstanceDepth {
		r.diag(DiagnosticFatal, f.Path, s.DeclSpan(), "generic instantiation depth exceeded instantiating `%s`", s.DeclName())
		return r.reg.Void()
	}

	clone := &StructDecl{
		declBase: s.declBase, GenericParams: nil, HasBody: s.HasBody, Origin: s,
	}
	clone.Fields = make([]Field, len(s.Fields))
	for i, fl := range s.Fields {
		clone.Fields[i] = Field{Name: fl.Name, DeclaredType: cloneTypeExpr(fl.DeclaredType), Span: fl.Span}
	}
	clone.Type = r.reg.NewStruct(s.DeclName(), clone, s.HasBody)

	bindings := make(map[string]*TypeID, len(s.GenericParams))
	for i, name := range s.GenericParams {
		bindings[name] = args[i]
	}
	clone.InstanceArgs = bindings

	inst := &GenericInstance{Args: args, Struct: clone}
	s.Instances = append(s.Instances, inst)

	r.pushBindings(bindings)
	r.resolveStructBody(f, clone)
	r.popBindings()

	return clone.Type
}

func (r *Resolver) instantiateClass(f *SourceFile, scope *Scope, c *ClassDecl, typeArgExprs []TypeExpr) *TypeID {
	args := r.resolveTypeArgs(f, scope, typeArgExprs)
	if len(args) != len(c.GenericParams) {
		r.diag(DiagnosticError, f.Path, c.DeclSpan(), "class `%s` expects %d type argument(s), got %d", c.DeclName(), len(c.GenericParams), len(args))
		return r.reg.Void()
	}
	if inst := findInstance(c.Instances, args); inst != nil {
		return inst.Class.Type
	}

	r.instanceDepth++
	defer func() { r.instanceDepth-- }()
	if r.instanceDepth > r.maxInstanceDepth {
		r.diag(DiagnosticFatal, f.Path, c.DeclSpan(), "generic instantiation depth exceeded instantiating `%s`", c.DeclName())
		return r.reg.Void()
	}

	clone := &ClassDecl{declBase: c.declBase, GenericParams: nil, Origin: c}
	clone.Fields = make([]Field, len(c.Fields))
	for i, fl := range c.Fields {
		clone.Fields[i] = Field{Name: fl.Name, DeclaredType: cloneTypeExpr(fl.DeclaredType), Span: fl.Span}
	}
	clone.Type = r.reg.NewClass(c.DeclName(), clone)

	bindings := make(map[string]*TypeID, len(c.GenericParams))
	for i, name := range c.GenericParams {
		bindings[name] = args[i]
	}
	clone.InstanceArgs = bindings

	inst := &GenericInstance{Args: args, Class: clone}
	c.Instances = append(c.Instances, inst)

	r.pushBindings(bindings)
	clone.Methods = make([]*FunctionDecl, len(c.Methods))
	for i, m := range c.Methods {
		clone.Methods[i] = r.cloneFunctionForInstance(f, m, clone, bindings)
	}
	if c.Constructor != nil {
		clone.Constructor = r.cloneFunctionForInstance(f, c.Constructor, clone, bindings)
	}
	r.resolveClassBody(f, clone)
	for _, m := range clone.Methods {
		r.resolveFunctionHeader(f, m)
		r.resolveFunctionBody(f, m)
	}
	if clone.Constructor != nil {
		r.resolveFunctionHeader(f, clone.Constructor)
		r.resolveFunctionBody(f, clone.Constructor)
	}
	r.popBindings()

	return clone.Type
}

// cloneFunctionForInstance clones a non-generic method/constructor
// body so each class instantiation gets its own resolved copy bound
// to the instance's receiver type; the clone carries no
// GenericParams of its own (the class's params are already bound).
func (r *Resolver) cloneFunctionForInstance(f *SourceFile, m *FunctionDecl, receiver *ClassDecl, bindings map[string]*TypeID) *FunctionDecl {
	clone := &FunctionDecl{
		declBase: m.declBase, Kind: m.Kind, Receiver: receiver,
		Varargs: m.Varargs, Extern: m.Extern, Origin: m, InstanceArgs: bindings,
	}
	clone.Params = make([]Param, len(m.Params))
	for i, p := range m.Params {
		clone.Params[i] = Param{Name: p.Name, DeclaredType: cloneTypeExpr(p.DeclaredType), Default: cloneExpr(p.Default), Span: p.Span}
	}
	clone.ReturnType = cloneTypeExpr(m.ReturnType)
	clone.VarargsElem = cloneTypeExpr(m.VarargsElem)
	if m.Body != nil {
		clone.Body = cloneStmt(m.Body).(*BlockStmt)
	}
	return clone
}

// instantiateFunction finds or builds the instance of fn bound to
// args, resolving the clone's header and body under those bindings.
func (r *Resolver) instantiateFunction(f *SourceFile, fn *FunctionDecl, args []*TypeID) *GenericInstance {
	if inst := findInstance(fn.Instances, args); inst != nil {
		return inst
	}

	r.instanceDepth++
	defer func() { r.instanceDepth-- }()
	if r.instanceDepth > r.maxInstanceDepth {
		r.diag(DiagnosticFatal, f.Path, fn.DeclSpan(), "generic instantiation depth exceeded instantiating `%s`", fn.DeclName())
		return nil
	}

	bindings := make(map[string]*TypeID, len(fn.GenericParams))
	for i, name := range fn.GenericParams {
		bindings[name] = args[i]
	}

	clone := &FunctionDecl{
		declBase: fn.declBase, Kind: fn.Kind, Receiver: fn.Receiver,
		Varargs: fn.Varargs, Extern: fn.Extern, Origin: fn, InstanceArgs: bindings,
	}
	clone.Params = make([]Param, len(fn.Params))
	for i, p := range fn.Params {
		clone.Params[i] = Param{Name: p.Name, DeclaredType: cloneTypeExpr(p.DeclaredType), Default: cloneExpr(p.Default), Span: p.Span}
	}
	clone.ReturnType = cloneTypeExpr(fn.ReturnType)
	clone.VarargsElem = cloneTypeExpr(fn.VarargsElem)
	if fn.Body != nil {
		clone.Body = cloneStmt(fn.Body).(*BlockStmt)
	}

	inst := &GenericInstance{Args: args, Func: clone}
	fn.Instances = append(fn.Instances, inst)

	r.pushBindings(bindings)
	r.resolveFunctionHeader(f, clone)
	r.resolveFunctionBody(f, clone)
	r.popBindings()

	return inst
}

// deduceTypeArgs unifies a generic function's declared parameter
// TypeExprs against the resolved argument types at a call site,
// binding each GenericParams name the first time it's encountered
// (spec.md §4.6's implicit type-argument deduction, used when a
// generic call omits explicit `<...>` arguments).
func deduceTypeArgs(params []TypeExpr, argTypes []*TypeID, generics []string) (map[string]*TypeID, bool) {
	bound := make(map[string]*TypeID, len(generics))
	isGeneric := make(map[string]bool, len(generics))
	for _, g := range generics {
		isGeneric[g] = true
	}

	var unify func(decl TypeExpr, actual *TypeID) bool
	unify = func(decl TypeExpr, actual *TypeID) bool {
		switch d := decl.(type) {
		case *NamedTypeExpr:
			if isGeneric[d.Name] {
				if existing, ok := bound[d.Name]; ok {
					return compareTypes(existing, actual)
				}
				bound[d.Name] = actual
				return true
			}
			return true
		case *PointerTypeExpr:
			u := unwrap(actual)
			if u.Kind != TypePointer {
				return false
			}
			return unify(d.Elem, u.Elem)
		case *OptionalTypeExpr:
			u := unwrap(actual)
			if u.Kind != TypeOptional {
				return false
			}
			return unify(d.Elem, u.Elem)
		case *ArrayTypeExpr:
			u := unwrap(actual)
			if u.Kind != TypeArray {
				return false
			}
			return unify(d.Elem, u.Elem)
		default:
			return true
		}
	}

	for i, p := range params {
		if i >= len(argTypes) {
			break
		}
		if !unify(p, argTypes[i]) {
			return nil, false
		}
	}
	for _, g := range generics {
		if _, ok := bound[g]; !ok {
			return nil, false
		}
	}
	return bound, true
}
