package velac

// Generic instantiation clones a declaration's AST before resolving
// the clone against a concrete type-argument binding, so the original
// stays available for the next instantiation (spec.md §4.6's "clone
// before re-entering resolution" instantiation protocol). These
// functions are a plain structural deep copy; ResolvedType/ValueType
// are intentionally left unset on the clone so the resolver computes
// them fresh against the instance's bindings.

func cloneTypeExpr(t TypeExpr) TypeExpr {
	if t == nil {
		return nil
	}
	switch n := t.(type) {
	case *VoidTypeExpr:
		c := *n
		c.rt = nil
		return &c
	case *IntTypeExpr:
		c := *n
		c.rt = nil
		return &c
	case *FloatTypeExpr:
		c := *n
		c.rt = nil
		return &c
	case *BoolTypeExpr:
		c := *n
		c.rt = nil
		return &c
	case *StringTypeExpr:
		c := *n
		c.rt = nil
		c.Length = cloneExpr(n.Length)
		return &c
	case *AnyTypeExpr:
		c := *n
		c.rt = nil
		return &c
	case *NamedTypeExpr:
		c := *n
		c.rt = nil
		c.TypeArgs = make([]TypeExpr, len(n.TypeArgs))
		for i, a := range n.TypeArgs {
			c.TypeArgs[i] = cloneTypeExpr(a)
		}
		return &c
	case *PointerTypeExpr:
		c := *n
		c.rt = nil
		c.Elem = cloneTypeExpr(n.Elem)
		return &c
	case *OptionalTypeExpr:
		c := *n
		c.rt = nil
		c.Elem = cloneTypeExpr(n.Elem)
		return &c
	case *FunctionTypeExpr:
		c := *n
		c.rt = nil
		c.Return = cloneTypeExpr(n.Return)
		c.Params = make([]TypeExpr, len(n.Params))
		for i, p := range n.Params {
			c.Params[i] = cloneTypeExpr(p)
		}
		c.VarElem = cloneTypeExpr(n.VarElem)
		return &c
	case *TupleTypeExpr:
		c := *n
		c.rt = nil
		c.Elems = make([]TypeExpr, len(n.Elems))
		for i, e := range n.Elems {
			c.Elems[i] = cloneTypeExpr(e)
		}
		return &c
	case *ArrayTypeExpr:
		c := *n
		c.rt = nil
		c.Elem = cloneTypeExpr(n.Elem)
		c.Length = cloneExpr(n.Length)
		return &c
	default:
		return t
	}
}

func cloneExpr(e Expression) Expression {
	if e == nil {
		return nil
	}
	switch n := e.(type) {
	case *IntLiteralExpr:
		c := *n
		c.exprBase = exprBase{span: n.span}
		return &c
	case *FloatLiteralExpr:
		c := *n
		c.exprBase = exprBase{span: n.span}
		return &c
	case *BoolLiteralExpr:
		c := *n
		c.exprBase = exprBase{span: n.span}
		return &c
	case *CharLiteralExpr:
		c := *n
		c.exprBase = exprBase{span: n.span}
		return &c
	case *NullLiteralExpr:
		c := *n
		c.exprBase = exprBase{span: n.span}
		return &c
	case *StringLiteralExpr:
		c := *n
		c.exprBase = exprBase{span: n.span}
		return &c
	case *InitListExpr:
		c := *n
		c.exprBase = exprBase{span: n.span}
		c.Items = make([]InitListItem, len(n.Items))
		for i, it := range n.Items {
			c.Items[i] = InitListItem{Label: it.Label, Value: cloneExpr(it.Value)}
		}
		return &c
	case *IdentifierExpr:
		c := *n
		c.exprBase = exprBase{span: n.span}
		c.Bound = nil
		return &c
	case *ParenExpr:
		c := *n
		c.exprBase = exprBase{span: n.span}
		c.Inner = cloneExpr(n.Inner)
		return &c
	case *TupleExpr:
		c := *n
		c.exprBase = exprBase{span: n.span}
		c.Items = make([]Expression, len(n.Items))
		for i, it := range n.Items {
			c.Items[i] = cloneExpr(it)
		}
		return &c
	case *CallExpr:
		c := *n
		c.exprBase = exprBase{span: n.span}
		c.Callee = cloneExpr(n.Callee)
		c.ResolvedFunc, c.Instance = nil, nil
		c.TypeArgs = make([]TypeExpr, len(n.TypeArgs))
		for i, a := range n.TypeArgs {
			c.TypeArgs[i] = cloneTypeExpr(a)
		}
		c.Args = make([]Expression, len(n.Args))
		for i, a := range n.Args {
			c.Args[i] = cloneExpr(a)
		}
		return &c
	case *SubscriptExpr:
		c := *n
		c.exprBase = exprBase{span: n.span}
		c.Target, c.Index = cloneExpr(n.Target), cloneExpr(n.Index)
		return &c
	case *FieldAccessExpr:
		c := *n
		c.exprBase = exprBase{span: n.span}
		c.Target = cloneExpr(n.Target)
		c.FieldIndex = 0
		return &c
	case *CastExpr:
		c := *n
		c.exprBase = exprBase{span: n.span}
		c.Target = cloneExpr(n.Target)
		c.Type = cloneTypeExpr(n.Type)
		return &c
	case *SizeofExpr:
		c := *n
		c.exprBase = exprBase{span: n.span}
		c.Type = cloneTypeExpr(n.Type)
		return &c
	case *AllocExpr:
		c := *n
		c.exprBase = exprBase{span: n.span}
		c.Type = cloneTypeExpr(n.Type)
		c.Count = cloneExpr(n.Count)
		c.ResolvedCtor = nil
		c.Args = make([]Expression, len(n.Args))
		for i, a := range n.Args {
			c.Args[i] = cloneExpr(a)
		}
		return &c
	case *UnaryExpr:
		c := *n
		c.exprBase = exprBase{span: n.span}
		c.Operand = cloneExpr(n.Operand)
		return &c
	case *BinaryExpr:
		c := *n
		c.exprBase = exprBase{span: n.span}
		c.Left, c.Right = cloneExpr(n.Left), cloneExpr(n.Right)
		c.ResolvedOperatorFunc = nil
		return &c
	case *TernaryExpr:
		c := *n
		c.exprBase = exprBase{span: n.span}
		c.Cond, c.Then, c.Else = cloneExpr(n.Cond), cloneExpr(n.Then), cloneExpr(n.Else)
		return &c
	default:
		return e
	}
}

func cloneStmt(s Statement) Statement {
	if s == nil {
		return nil
	}
	switch n := s.(type) {
	case *NoOpStmt:
		c := *n
		return &c
	case *BlockStmt:
		c := *n
		c.Scope = nil
		c.Stmts = make([]Statement, len(n.Stmts))
		for i, st := range n.Stmts {
			c.Stmts[i] = cloneStmt(st)
		}
		return &c
	case *ExprStmt:
		c := *n
		c.Expr = cloneExpr(n.Expr)
		return &c
	case *LocalDeclStmt:
		c := *n
		c.DeclaredType = cloneTypeExpr(n.DeclaredType)
		c.Declarators = make([]Declarator, len(n.Declarators))
		for i, d := range n.Declarators {
			c.Declarators[i] = Declarator{Name: d.Name, Init: cloneExpr(d.Init), Span: d.Span}
		}
		return &c
	case *IfStmt:
		c := *n
		c.Cond = cloneExpr(n.Cond)
		c.Then = cloneStmt(n.Then)
		c.Else = cloneStmt(n.Else)
		return &c
	case *WhileStmt:
		c := *n
		c.Cond = cloneExpr(n.Cond)
		c.Body = cloneStmt(n.Body)
		c.Scope = nil
		return &c
	case *ForStmt:
		c := *n
		c.Init = cloneStmt(n.Init)
		c.Cond = cloneExpr(n.Cond)
		c.Step = cloneExpr(n.Step)
		c.Container = cloneExpr(n.Container)
		c.Body = cloneStmt(n.Body)
		c.Scope = nil
		return &c
	case *BreakStmt:
		c := *n
		c.Target = nil
		return &c
	case *ContinueStmt:
		c := *n
		c.Target = nil
		return &c
	case *ReturnStmt:
		c := *n
		c.Value = cloneExpr(n.Value)
		return &c
	case *AssertStmt:
		c := *n
		c.Cond = cloneExpr(n.Cond)
		c.Message = cloneExpr(n.Message)
		return &c
	case *FreeStmt:
		c := *n
		c.Target = cloneExpr(n.Target)
		return &c
	default:
		return s
	}
}
