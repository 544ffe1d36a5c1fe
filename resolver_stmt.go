package velac

// resolveFunctionBody binds parameters into a fresh top scope and
// resolves the body, checking every reachable return against the
// declared return type (spec.md §4.6 stage 11). Extern and
// generic-original (un-instantiated) declarations have no body to
// walk.
func (r *Resolver) resolveFunctionBody(f *SourceFile, fn *FunctionDecl) {
	if fn.Body == nil || len(fn.GenericParams) > 0 {
		return
	}

	fileScope := NewScope(nil)
	globalScope := NewScope(fileScope)
	paramScope := NewScope(globalScope)

	if fn.Kind != FuncFree && fn.Receiver != nil {
		paramScope.Declare(&LocalVar{Name: "self", Type: r.reg.Pointer(fn.Receiver.Type), Const: false})
	}
	for i := range fn.Params {
		p := &fn.Params[i]
		paramScope.Declare(&LocalVar{Name: p.Name, Type: p.ResolvedType, Const: false, Span: p.Span})
		if p.Default != nil {
			r.resolveExpr(f, paramScope, p.Default)
			if !canConvertImplicit(p.Default.ValueType(), p.ResolvedType, isConstantExpr(p.Default)) {
				r.diag(DiagnosticError, f.Path, p.Default.Span(), "default value for `%s` does not convert to its declared type", p.Name)
			}
		}
	}

	savedLoops, savedReturn := r.loopStack, r.currentReturnType
	r.loopStack = nil
	r.currentReturnType = fn.Type.Return

	r.resolveBlock(f, paramScope, fn.Body)

	r.loopStack, r.currentReturnType = savedLoops, savedReturn
}

func (r *Resolver) resolveBlock(f *SourceFile, parent *Scope, b *BlockStmt) {
	b.Scope = NewScope(parent)
	for _, s := range b.Stmts {
		r.resolveStmt(f, b.Scope, s)
	}
}

func (r *Resolver) resolveStmt(f *SourceFile, scope *Scope, s Statement) {
	switch n := s.(type) {
	case *NoOpStmt:
	case *BlockStmt:
		r.resolveBlock(f, scope, n)
	case *ExprStmt:
		r.resolveExpr(f, scope, n.Expr)
	case *LocalDeclStmt:
		r.resolveLocalDecl(f, scope, n)
	case *IfStmt:
		r.resolveExpr(f, scope, n.Cond)
		r.resolveStmt(f, scope, n.Then)
		if n.Else != nil {
			r.resolveStmt(f, scope, n.Else)
		}
	case *WhileStmt:
		r.resolveExpr(f, scope, n.Cond)
		n.Scope = NewLoopScope(scope)
		r.loopStack = append(r.loopStack, n.Scope)
		r.resolveStmt(f, &n.Scope.Scope, n.Body)
		r.loopStack = r.loopStack[:len(r.loopStack)-1]
	case *ForStmt:
		r.resolveFor(f, scope, n)
	case *BreakStmt:
		if len(r.loopStack) == 0 {
			r.diag(DiagnosticError, f.Path, n.Span(), "`break` outside a loop")
		} else {
			n.Target = r.loopStack[len(r.loopStack)-1]
		}
	case *ContinueStmt:
		if len(r.loopStack) == 0 {
			r.diag(DiagnosticError, f.Path, n.Span(), "`continue` outside a loop")
		} else {
			n.Target = r.loopStack[len(r.loopStack)-1]
		}
	case *ReturnStmt:
		if n.Value != nil {
			r.resolveExpr(f, scope, n.Value)
			if r.currentReturnType != nil && !canConvertImplicit(n.Value.ValueType(), r.currentReturnType, isConstantExpr(n.Value)) {
				r.diag(DiagnosticError, f.Path, n.Value.Span(), "cannot return %s from a function declared to return %s",
					r.reg.Pretty(n.Value.ValueType()), r.reg.Pretty(r.currentReturnType))
			}
		} else if r.currentReturnType != nil && unwrap(r.currentReturnType).Kind != TypeVoid {
			r.diag(DiagnosticError, f.Path, n.Span(), "missing return value; function returns %s", r.reg.Pretty(r.currentReturnType))
		}
	case *AssertStmt:
		r.resolveExpr(f, scope, n.Cond)
		if n.Message != nil {
			r.resolveExpr(f, scope, n.Message)
		}
	case *FreeStmt:
		r.resolveExpr(f, scope, n.Target)
		if unwrap(n.Target.ValueType()).Kind != TypePointer {
			r.diag(DiagnosticError, f.Path, n.Span(), "`free` target must be a pointer")
		}
	}
}

func (r *Resolver) resolveFor(f *SourceFile, scope *Scope, n *ForStmt) {
	n.Scope = NewLoopScope(scope)
	inner := &n.Scope.Scope

	if n.ForEach {
		r.resolveExpr(f, scope, n.Container)
		elemType := r.reg.Void()
		ct := unwrap(n.Container.ValueType())
		switch ct.Kind {
		case TypeArray:
			elemType = ct.Elem
		case TypePointer:
			elemType = ct.Elem
		default:
			r.diag(DiagnosticError, f.Path, n.Container.Span(), "for-each container must be an array or pointer, got %s", r.reg.Pretty(ct))
		}
		inner.Declare(&LocalVar{Name: n.IterName, Type: elemType, Const: n.IterConst})
	} else {
		if n.Init != nil {
			r.resolveStmt(f, inner, n.Init)
		}
		if n.Cond != nil {
			r.resolveExpr(f, inner, n.Cond)
		}
		if n.Step != nil {
			r.resolveExpr(f, inner, n.Step)
		}
	}

	r.loopStack = append(r.loopStack, n.Scope)
	r.resolveStmt(f, inner, n.Body)
	r.loopStack = r.loopStack[:len(r.loopStack)-1]
}

// resolveLocalDecl supports both the explicitly typed `let T name =
// init;` form and the `let`/`var` inference form, where the declared
// type comes from the first declarator's initializer (spec.md §4.3).
func (r *Resolver) resolveLocalDecl(f *SourceFile, scope *Scope, n *LocalDeclStmt) {
	var declared *TypeID
	if n.DeclaredType != nil {
		declared = r.resolveTypeExpr(f, scope, n.DeclaredType)
	}

	for i := range n.Declarators {
		d := &n.Declarators[i]
		var varType *TypeID
		if d.Init != nil {
			r.resolveExpr(f, scope, d.Init)
		}
		switch {
		case declared != nil:
			varType = declared
			if d.Init != nil && !canConvertImplicit(d.Init.ValueType(), declared, isConstantExpr(d.Init)) {
				r.diag(DiagnosticError, f.Path, d.Init.Span(), "cannot initialize `%s` of type %s with value of type %s",
					d.Name, r.reg.Pretty(declared), r.reg.Pretty(d.Init.ValueType()))
			}
		case d.Init != nil:
			varType = d.Init.ValueType()
		default:
			r.diag(DiagnosticError, f.Path, d.Span, "cannot infer the type of `%s` without an initializer", d.Name)
			varType = r.reg.Void()
		}

		local := &LocalVar{Name: d.Name, Type: varType, Const: n.Const, Span: d.Span}
		if prior := scope.Declare(local); prior != nil {
			r.diag(DiagnosticError, f.Path, d.Span, "`%s` redeclares a local already declared at %s", d.Name, prior.Span)
		}
		d.Local = local
	}
}
