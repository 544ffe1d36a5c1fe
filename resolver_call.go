package velac

// resolveCall dispatches a call expression to construction (the
// callee names a struct/class), a method call (the callee is a field
// access into a class instance), a free-function overload call, or a
// plain call through a function-typed value, per spec.md §4.6.
func (r *Resolver) resolveCall(f *SourceFile, scope *Scope, n *CallExpr) {
	for _, a := range n.Args {
		r.resolveExpr(f, scope, a)
	}
	argTypes := make([]*TypeID, len(n.Args))
	argConst := make([]bool, len(n.Args))
	for i, a := range n.Args {
		argTypes[i] = a.ValueType()
		argConst[i] = isConstantExpr(a)
	}
	explicitTypeArgs := r.resolveTypeArgs(f, scope, n.TypeArgs)

	if ident, ok := n.Callee.(*IdentifierExpr); ok {
		if decl, ok := r.lookupTypeDecl(f, ident.Name); ok {
			r.resolveConstructionCall(f, scope, n, decl, explicitTypeArgs, argTypes, argConst)
			return
		}

		candidates := r.collectFreeFunctionCandidates(f, ident.Name)
		if len(candidates) == 0 {
			r.diag(DiagnosticError, f.Path, n.Span(), "undefined function `%s`", ident.Name)
			n.SetValueType(r.reg.Void())
			return
		}
		fn, inst := r.resolveOverload(f, f, n.Span(), ident.Name, candidates, argTypes, argConst, explicitTypeArgs)
		r.finishCall(f, n, fn, inst)
		return
	}

	if fa, ok := n.Callee.(*FieldAccessExpr); ok && !fa.ByIndex {
		r.resolveExpr(f, scope, fa.Target)
		t := unwrap(fa.Target.ValueType())
		if t.Kind == TypePointer {
			t = unwrap(t.Elem)
		}
		if t.Kind == TypeClass || t.Kind == TypeStruct {
			candidates := collectMethodCandidates(t, fa.Name)
			if len(candidates) == 0 {
				r.diag(DiagnosticError, f.Path, n.Span(), "%s has no method `%s`", r.reg.Pretty(t), fa.Name)
				n.SetValueType(r.reg.Void())
				return
			}
			fn, inst := r.resolveOverload(f, f, n.Span(), fa.Name, candidates, argTypes, argConst, explicitTypeArgs)
			fa.SetValueType(r.reg.Void())
			r.finishCall(f, n, fn, inst)
			return
		}
	}

	// Plain call through a function-typed expression: no overload set
	// to rank, just arity/conversion checks against its single type.
	r.resolveExpr(f, scope, n.Callee)
	ft := unwrap(n.Callee.ValueType())
	if ft.Kind != TypeFunction {
		r.diag(DiagnosticError, f.Path, n.Span(), "expression is not callable")
		n.SetValueType(r.reg.Void())
		return
	}
	if len(n.Args) != len(ft.Params) && !ft.Varargs {
		r.diag(DiagnosticError, f.Path, n.Span(), "expected %d argument(s), got %d", len(ft.Params), len(n.Args))
	}
	for i := 0; i < len(ft.Params) && i < len(n.Args); i++ {
		if !canConvertImplicit(argTypes[i], ft.Params[i], argConst[i]) {
			r.diag(DiagnosticError, f.Path, n.Args[i].Span(), "argument %d: cannot convert %s to %s", i+1, r.reg.Pretty(argTypes[i]), r.reg.Pretty(ft.Params[i]))
		}
	}
	n.SetValueType(ft.Return)
}

func (r *Resolver) finishCall(f *SourceFile, n *CallExpr, fn *FunctionDecl, inst *GenericInstance) {
	if fn == nil {
		n.SetValueType(r.reg.Void())
		return
	}
	n.ResolvedFunc = fn
	n.Instance = inst
	n.SetValueType(fn.Type.Return)
}

// resolveConstructionCall handles `Name(args)` where Name is a
// struct (positional field initializer) or class (constructor call,
// default-constructed when the class declares none) declaration,
// instantiating first when Name is generic.
func (r *Resolver) resolveConstructionCall(f *SourceFile, scope *Scope, n *CallExpr, decl Declaration, explicitTypeArgs, argTypes []*TypeID, argConst []bool) {
	switch d := decl.(type) {
	case *StructDecl:
		var target *StructDecl
		if len(d.GenericParams) > 0 {
			typeArgExprs := make([]TypeExpr, len(n.TypeArgs))
			copy(typeArgExprs, n.TypeArgs)
			st := r.instantiateStruct(f, scope, d, typeArgExprs)
			target, _ = st.Decl.(*StructDecl)
		} else {
			target = d
		}
		if target == nil {
			n.SetValueType(r.reg.Void())
			return
		}
		if len(n.Args) != len(target.Fields) {
			r.diag(DiagnosticError, f.Path, n.Span(), "struct `%s` has %d field(s), got %d argument(s)", target.DeclName(), len(target.Fields), len(n.Args))
		}
		for i := 0; i < len(n.Args) && i < len(target.Fields); i++ {
			if !canConvertImplicit(argTypes[i], target.Fields[i].ResolvedType, argConst[i]) {
				r.diag(DiagnosticError, f.Path, n.Args[i].Span(), "field `%s`: cannot convert %s to %s",
					target.Fields[i].Name, r.reg.Pretty(argTypes[i]), r.reg.Pretty(target.Fields[i].ResolvedType))
			}
		}
		n.SetValueType(target.Type)

	case *ClassDecl:
		var target *ClassDecl
		if len(d.GenericParams) > 0 {
			typeArgExprs := make([]TypeExpr, len(n.TypeArgs))
			copy(typeArgExprs, n.TypeArgs)
			ct := r.instantiateClass(f, scope, d, typeArgExprs)
			target, _ = ct.Decl.(*ClassDecl)
		} else {
			target = d
		}
		if target == nil {
			n.SetValueType(r.reg.Void())
			return
		}
		if target.Constructor != nil {
			fn, inst := r.resolveOverload(f, f, n.Span(), target.DeclName(), []*FunctionDecl{target.Constructor}, argTypes, argConst, explicitTypeArgs)
			if fn != nil {
				n.ResolvedFunc = fn
				n.Instance = inst
			}
		} else if len(n.Args) != 0 {
			r.diag(DiagnosticError, f.Path, n.Span(), "class `%s` has no constructor accepting arguments", target.DeclName())
		}
		n.SetValueType(target.Type)

	default:
		r.diag(DiagnosticError, f.Path, n.Span(), "`%s` is not callable", decl.DeclName())
		n.SetValueType(r.reg.Void())
	}
}
