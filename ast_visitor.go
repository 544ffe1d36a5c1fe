package velac

// ExprVisitor dispatches over every Expression variant, following the
// teacher's Accept(visitor) convention. Used by the AST dumper and by
// any resolver pass written as a visitor rather than a type switch.
type ExprVisitor interface {
	VisitIntLiteral(*IntLiteralExpr)
	VisitFloatLiteral(*FloatLiteralExpr)
	VisitBoolLiteral(*BoolLiteralExpr)
	VisitCharLiteral(*CharLiteralExpr)
	VisitNullLiteral(*NullLiteralExpr)
	VisitStringLiteral(*StringLiteralExpr)
	VisitInitList(*InitListExpr)
	VisitIdentifier(*IdentifierExpr)
	VisitParen(*ParenExpr)
	VisitTuple(*TupleExpr)
	VisitCall(*CallExpr)
	VisitSubscript(*SubscriptExpr)
	VisitFieldAccess(*FieldAccessExpr)
	VisitCast(*CastExpr)
	VisitSizeof(*SizeofExpr)
	VisitAlloc(*AllocExpr)
	VisitUnary(*UnaryExpr)
	VisitBinary(*BinaryExpr)
	VisitTernary(*TernaryExpr)
}

func (e *IntLiteralExpr) Accept(v ExprVisitor)    { v.VisitIntLiteral(e) }
func (e *FloatLiteralExpr) Accept(v ExprVisitor)  { v.VisitFloatLiteral(e) }
func (e *BoolLiteralExpr) Accept(v ExprVisitor)   { v.VisitBoolLiteral(e) }
func (e *CharLiteralExpr) Accept(v ExprVisitor)   { v.VisitCharLiteral(e) }
func (e *NullLiteralExpr) Accept(v ExprVisitor)   { v.VisitNullLiteral(e) }
func (e *StringLiteralExpr) Accept(v ExprVisitor) { v.VisitStringLiteral(e) }
func (e *InitListExpr) Accept(v ExprVisitor)      { v.VisitInitList(e) }
func (e *IdentifierExpr) Accept(v ExprVisitor)    { v.VisitIdentifier(e) }
func (e *ParenExpr) Accept(v ExprVisitor)         { v.VisitParen(e) }
func (e *TupleExpr) Accept(v ExprVisitor)         { v.VisitTuple(e) }
func (e *CallExpr) Accept(v ExprVisitor)          { v.VisitCall(e) }
func (e *SubscriptExpr) Accept(v ExprVisitor)     { v.VisitSubscript(e) }
func (e *FieldAccessExpr) Accept(v ExprVisitor)   { v.VisitFieldAccess(e) }
func (e *CastExpr) Accept(v ExprVisitor)          { v.VisitCast(e) }
func (e *SizeofExpr) Accept(v ExprVisitor)        { v.VisitSizeof(e) }
func (e *AllocExpr) Accept(v ExprVisitor)         { v.VisitAlloc(e) }
func (e *UnaryExpr) Accept(v ExprVisitor)         { v.VisitUnary(e) }
func (e *BinaryExpr) Accept(v ExprVisitor)        { v.VisitBinary(e) }
func (e *TernaryExpr) Accept(v ExprVisitor)        { v.VisitTernary(e) }

// StmtVisitor dispatches over every Statement variant.
type StmtVisitor interface {
	VisitNoOp(*NoOpStmt)
	VisitBlock(*BlockStmt)
	VisitExprStmt(*ExprStmt)
	VisitLocalDecl(*LocalDeclStmt)
	VisitIf(*IfStmt)
	VisitWhile(*WhileStmt)
	VisitFor(*ForStmt)
	VisitBreak(*BreakStmt)
	VisitContinue(*ContinueStmt)
	VisitReturn(*ReturnStmt)
	VisitAssert(*AssertStmt)
	VisitFree(*FreeStmt)
}

func (s *NoOpStmt) Accept(v StmtVisitor)       { v.VisitNoOp(s) }
func (s *BlockStmt) Accept(v StmtVisitor)      { v.VisitBlock(s) }
func (s *ExprStmt) Accept(v StmtVisitor)       { v.VisitExprStmt(s) }
func (s *LocalDeclStmt) Accept(v StmtVisitor)  { v.VisitLocalDecl(s) }
func (s *IfStmt) Accept(v StmtVisitor)         { v.VisitIf(s) }
func (s *WhileStmt) Accept(v StmtVisitor)      { v.VisitWhile(s) }
func (s *ForStmt) Accept(v StmtVisitor)        { v.VisitFor(s) }
func (s *BreakStmt) Accept(v StmtVisitor)      { v.VisitBreak(s) }
func (s *ContinueStmt) Accept(v StmtVisitor)   { v.VisitContinue(s) }
func (s *ReturnStmt) Accept(v StmtVisitor)     { v.VisitReturn(s) }
func (s *AssertStmt) Accept(v StmtVisitor)     { v.VisitAssert(s) }
func (s *FreeStmt) Accept(v StmtVisitor)       { v.VisitFree(s) }

// DeclVisitor dispatches over every Declaration variant.
type DeclVisitor interface {
	VisitFunction(*FunctionDecl)
	VisitStruct(*StructDecl)
	VisitClass(*ClassDecl)
	VisitTypedef(*TypedefDecl)
	VisitEnum(*EnumDecl)
	VisitMacro(*MacroDecl)
	VisitGlobalVar(*GlobalVarDecl)
}

func (d *FunctionDecl) Accept(v DeclVisitor)  { v.VisitFunction(d) }
func (d *StructDecl) Accept(v DeclVisitor)    { v.VisitStruct(d) }
func (d *ClassDecl) Accept(v DeclVisitor)     { v.VisitClass(d) }
func (d *TypedefDecl) Accept(v DeclVisitor)   { v.VisitTypedef(d) }
func (d *EnumDecl) Accept(v DeclVisitor)      { v.VisitEnum(d) }
func (d *MacroDecl) Accept(v DeclVisitor)     { v.VisitMacro(d) }
func (d *GlobalVarDecl) Accept(v DeclVisitor) { v.VisitGlobalVar(d) }

// DumpFile renders f's declaration tree using treePrinter, mirroring
// the teacher's AST-dump debug aid (the CLI's `--dump-ast` flag).
func DumpFile(f *SourceFile, reg *Registry) string {
	tp := newTreePrinter[Declaration](func(label string, d Declaration) string {
		return label
	})
	for _, d := range f.Decls {
		dumpDecl(tp, d, reg)
	}
	return tp.output.String()
}

func dumpDecl(tp *treePrinter[Declaration], d Declaration, reg *Registry) {
	switch decl := d.(type) {
	case *FunctionDecl:
		tp.pwritel(tp.format("func "+decl.DeclName(), d))
		tp.indent("  ")
		for _, m := range decl.Instances {
			if m.Func != nil {
				dumpDecl(tp, m.Func, reg)
			}
		}
		tp.unindent()
	case *ClassDecl:
		tp.pwritel(tp.format("class "+decl.DeclName(), d))
		tp.indent("  ")
		for _, m := range decl.Methods {
			dumpDecl(tp, m, reg)
		}
		tp.unindent()
	default:
		tp.pwritel(tp.format(d.DeclName(), d))
	}
}
