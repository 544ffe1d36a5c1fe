package velac

// isConstantExpr is spec.md §4.4's "constant expression" predicate,
// used wherever the conversion matrix branches on fromIsConstant
// (narrowing integer/float literals, tuple-to-array/struct coercion).
func isConstantExpr(e Expression) bool {
	switch n := e.(type) {
	case *IntLiteralExpr, *FloatLiteralExpr, *BoolLiteralExpr, *CharLiteralExpr, *StringLiteralExpr, *NullLiteralExpr:
		return true
	case *ParenExpr:
		return isConstantExpr(n.Inner)
	case *UnaryExpr:
		return (n.Op == UnaryNeg || n.Op == UnaryNot) && isConstantExpr(n.Operand)
	case *BinaryExpr:
		return !n.Op.IsAssignment() && isConstantExpr(n.Left) && isConstantExpr(n.Right)
	case *TupleExpr:
		for _, it := range n.Items {
			if !isConstantExpr(it) {
				return false
			}
		}
		return true
	case *InitListExpr:
		for _, it := range n.Items {
			if !isConstantExpr(it.Value) {
				return false
			}
		}
		return true
	case *IdentifierExpr:
		if g, ok := n.Bound.(*GlobalVarDecl); ok {
			return g.Const
		}
		return false
	default:
		return false
	}
}

// resolveExpr type-checks e in scope, setting its ValueType/Lvalue in
// place (spec.md §4.6's expression resolution).
func (r *Resolver) resolveExpr(f *SourceFile, scope *Scope, e Expression) {
	switch n := e.(type) {
	case *IntLiteralExpr:
		e.SetValueType(r.reg.Integer(n.Width, n.Signed))
	case *FloatLiteralExpr:
		e.SetValueType(r.reg.Float(n.Precision))
	case *BoolLiteralExpr:
		e.SetValueType(r.reg.Bool())
	case *CharLiteralExpr:
		e.SetValueType(r.reg.Integer(8, false))
	case *NullLiteralExpr:
		e.SetValueType(r.reg.Pointer(r.reg.Void()))
	case *StringLiteralExpr:
		e.SetValueType(r.reg.String())
	case *InitListExpr:
		r.resolveInitList(f, scope, n)
	case *IdentifierExpr:
		r.resolveIdentifier(f, scope, n)
	case *ParenExpr:
		r.resolveExpr(f, scope, n.Inner)
		e.SetValueType(n.Inner.ValueType())
		e.SetLvalue(n.Inner.IsLvalue())
	case *TupleExpr:
		elems := make([]*TypeID, len(n.Items))
		for i, it := range n.Items {
			r.resolveExpr(f, scope, it)
			elems[i] = it.ValueType()
		}
		e.SetValueType(r.reg.Tuple(elems))
	case *CallExpr:
		r.resolveCall(f, scope, n)
	case *SubscriptExpr:
		r.resolveSubscript(f, scope, n)
	case *FieldAccessExpr:
		r.resolveFieldAccess(f, scope, n)
	case *CastExpr:
		r.resolveExpr(f, scope, n.Target)
		to := r.resolveTypeExpr(f, scope, n.Type)
		if !canConvert(n.Target.ValueType(), to, isConstantExpr(n.Target)) {
			r.diag(DiagnosticError, f.Path, n.Span(), "cannot cast %s to %s", r.reg.Pretty(n.Target.ValueType()), r.reg.Pretty(to))
		}
		e.SetValueType(to)
	case *SizeofExpr:
		r.resolveTypeExpr(f, scope, n.Type)
		e.SetValueType(r.reg.Integer(64, false))
	case *AllocExpr:
		r.resolveAlloc(f, scope, n)
	case *UnaryExpr:
		r.resolveUnary(f, scope, n)
	case *BinaryExpr:
		r.resolveBinary(f, scope, n)
	case *TernaryExpr:
		r.resolveTernary(f, scope, n)
	}
}

func (r *Resolver) resolveInitList(f *SourceFile, scope *Scope, n *InitListExpr) {
	for _, it := range n.Items {
		r.resolveExpr(f, scope, it.Value)
	}
	// An init list's own type is the tuple of its items' types. Callers
	// with a declared target type (global and local declarations) check
	// that tuple against the target through the conversion matrix and
	// leave the init list's type unchanged.
	elems := make([]*TypeID, len(n.Items))
	for i, it := range n.Items {
		elems[i] = it.Value.ValueType()
	}
	n.SetValueType(r.reg.Tuple(elems))
}

// resolveIdentifier looks a name up in this order: locals, then
// file/module globals and macro aliases (a macro is found in the same
// pass as globals, so it takes precedence over a function or enum value
// of the same name), then the free-function overload set (bare
// reference to a function value), then enum values.
func (r *Resolver) resolveIdentifier(f *SourceFile, scope *Scope, n *IdentifierExpr) {
	if scope != nil {
		if lv := scope.Lookup(n.Name); lv != nil {
			n.SetValueType(lv.Type)
			n.SetLvalue(!lv.Const)
			return
		}
	}

	if decl, ok := r.lookupTypeDeclOrGlobal(f, n.Name); ok {
		switch d := decl.(type) {
		case *GlobalVarDecl:
			n.Bound = d
			n.SetValueType(d.ResolvedType)
			n.SetLvalue(!d.Const)
			return
		case *EnumDecl:
			for _, v := range d.Values {
				if v.Name == n.Name {
					n.Bound = d
					n.SetValueType(d.Type)
					return
				}
			}
		case *MacroDecl:
			clone := cloneExpr(d.Expr)
			r.resolveExpr(f, scope, clone)
			n.Bound = d
			n.SetValueType(clone.ValueType())
			n.SetLvalue(clone.IsLvalue())
			return
		}
	}

	candidates := r.collectFreeFunctionCandidates(f, n.Name)
	if len(candidates) == 1 {
		fn := candidates[0]
		n.Bound = fn
		n.SetValueType(fn.Type)
		return
	}
	if len(candidates) > 1 {
		r.diag(DiagnosticError, f.Path, n.Span(), "reference to `%s` is ambiguous among %d overloads", n.Name, len(candidates))
		n.SetValueType(r.reg.Void())
		return
	}

	for _, dep := range f.Dependencies {
		for _, df := range dep.Files {
			for _, d := range df.Decls {
				if e, ok := d.(*EnumDecl); ok && Visible(e, f) {
					for _, v := range e.Values {
						if v.Name == n.Name {
							n.Bound = e
							n.SetValueType(e.Type)
							return
						}
					}
				}
			}
		}
	}

	r.diag(DiagnosticError, f.Path, n.Span(), "undefined identifier `%s`", n.Name)
	n.SetValueType(r.reg.Void())
}

func (r *Resolver) resolveSubscript(f *SourceFile, scope *Scope, n *SubscriptExpr) {
	r.resolveExpr(f, scope, n.Target)
	r.resolveExpr(f, scope, n.Index)
	t := unwrap(n.Target.ValueType())
	if !isInteger(n.Index.ValueType()) {
		r.diag(DiagnosticError, f.Path, n.Index.Span(), "array index must be an integer")
	}
	switch t.Kind {
	case TypeArray:
		n.SetValueType(t.Elem)
		n.SetLvalue(n.Target.IsLvalue() || unwrap(n.Target.ValueType()).Kind == TypePointer)
	case TypePointer:
		n.SetValueType(t.Elem)
		n.SetLvalue(true)
	default:
		r.diag(DiagnosticError, f.Path, n.Span(), "type %s is not subscriptable", r.reg.Pretty(n.Target.ValueType()))
		n.SetValueType(r.reg.Void())
	}
}

func (r *Resolver) resolveFieldAccess(f *SourceFile, scope *Scope, n *FieldAccessExpr) {
	r.resolveExpr(f, scope, n.Target)
	t := unwrap(n.Target.ValueType())
	if t.Kind == TypePointer {
		t = unwrap(t.Elem)
	}

	if n.ByIndex {
		if t.Kind != TypeTuple || n.Index < 0 || n.Index >= len(t.Elems) {
			r.diag(DiagnosticError, f.Path, n.Span(), "tuple has no element `.%d`", n.Index)
			n.SetValueType(r.reg.Void())
			return
		}
		n.FieldIndex = n.Index
		n.SetValueType(t.Elems[n.Index])
		n.SetLvalue(n.Target.IsLvalue())
		return
	}

	switch t.Kind {
	case TypeStruct, TypeClass, TypeUnion:
		for i, name := range t.FieldNames {
			if name == n.Name {
				n.FieldIndex = i
				n.SetValueType(t.FieldTypes[i])
				n.SetLvalue(true)
				return
			}
		}
		r.diag(DiagnosticError, f.Path, n.Span(), "%s has no field `%s`", r.reg.Pretty(t), n.Name)
	default:
		r.diag(DiagnosticError, f.Path, n.Span(), "type %s has no field `%s`", r.reg.Pretty(t), n.Name)
	}
	n.SetValueType(r.reg.Void())
}

func (r *Resolver) resolveAlloc(f *SourceFile, scope *Scope, n *AllocExpr) {
	elem := r.resolveTypeExpr(f, scope, n.Type)
	if n.Count != nil {
		r.resolveExpr(f, scope, n.Count)
		if !isInteger(n.Count.ValueType()) {
			r.diag(DiagnosticError, f.Path, n.Count.Span(), "allocation count must be an integer")
		}
	}
	for _, a := range n.Args {
		r.resolveExpr(f, scope, a)
	}
	if cd, ok := elem.Decl.(*ClassDecl); ok && cd.Constructor != nil {
		argTypes := make([]*TypeID, len(n.Args))
		argConst := make([]bool, len(n.Args))
		for i, a := range n.Args {
			argTypes[i] = a.ValueType()
			argConst[i] = isConstantExpr(a)
		}
		n.ResolvedCtor, _ = r.resolveOverload(f, f, n.Span(), cd.DeclName(), []*FunctionDecl{cd.Constructor}, argTypes, argConst, nil)
	}
	if n.Count != nil {
		n.SetValueType(r.reg.Array(elem, UnboundArrayLength))
	} else {
		n.SetValueType(r.reg.Pointer(elem))
	}
}

func (r *Resolver) resolveUnary(f *SourceFile, scope *Scope, n *UnaryExpr) {
	r.resolveExpr(f, scope, n.Operand)
	t := n.Operand.ValueType()
	switch n.Op {
	case UnaryNot:
		n.SetValueType(r.reg.Bool())
	case UnaryNeg:
		n.SetValueType(t)
	case UnaryAddr:
		if !n.Operand.IsLvalue() {
			r.diag(DiagnosticError, f.Path, n.Span(), "cannot take the address of a non-lvalue expression")
		}
		n.SetValueType(r.reg.Pointer(t))
	case UnaryDeref:
		u := unwrap(t)
		if u.Kind != TypePointer {
			r.diag(DiagnosticError, f.Path, n.Span(), "cannot dereference non-pointer type %s", r.reg.Pretty(t))
			n.SetValueType(r.reg.Void())
			return
		}
		n.SetValueType(u.Elem)
		n.SetLvalue(true)
	case UnaryPreInc, UnaryPreDec, UnaryPostInc, UnaryPostDec:
		if !n.Operand.IsLvalue() {
			r.diag(DiagnosticError, f.Path, n.Span(), "increment/decrement target must be an lvalue")
		}
		n.SetValueType(t)
	}
}

func (r *Resolver) resolveTernary(f *SourceFile, scope *Scope, n *TernaryExpr) {
	r.resolveExpr(f, scope, n.Cond)
	r.resolveExpr(f, scope, n.Then)
	if n.Else != nil {
		r.resolveExpr(f, scope, n.Else)
	}
	if !isInteger(n.Cond.ValueType()) && unwrap(n.Cond.ValueType()).Kind != TypeBool {
		r.diag(DiagnosticError, f.Path, n.Cond.Span(), "condition must be a bool")
	}
	if n.Else == nil {
		// `cond ?? else`-style null coalesce parsed through TernaryExpr
		// with Then holding the optional and Else holding the fallback
		// is handled in resolveBinary's BinNullCoalesce case instead;
		// a TernaryExpr always has both branches.
		n.SetValueType(n.Then.ValueType())
		return
	}
	if result, ok := binaryOperatorTypeMeet(r.reg, n.Then.ValueType(), n.Else.ValueType()); ok {
		n.SetValueType(result)
	} else if compareTypes(n.Then.ValueType(), n.Else.ValueType()) {
		n.SetValueType(n.Then.ValueType())
	} else {
		r.diag(DiagnosticError, f.Path, n.Span(), "ternary branches have incompatible types %s and %s",
			r.reg.Pretty(n.Then.ValueType()), r.reg.Pretty(n.Else.ValueType()))
		n.SetValueType(n.Then.ValueType())
	}
}
