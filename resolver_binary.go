package velac

// operatorMethodNames maps each overloadable BinaryOp to the class
// method name the resolver searches for when binaryOperatorTypeMeet
// can't combine the operand types arithmetically (spec.md §4.6's
// operator-overload fallback). Assignment/compound-assignment and the
// short-circuiting logical operators are never overloadable.
var operatorMethodNames = map[BinaryOp]string{
	BinAdd: "opAdd", BinSub: "opSub", BinMul: "opMul", BinDiv: "opDiv", BinMod: "opMod",
	BinShl: "opShl", BinShr: "opShr",
	BinLt: "opLt", BinGt: "opGt", BinLe: "opLe", BinGe: "opGe", BinEq: "opEq", BinNe: "opNe",
	BinBitAnd: "opBitAnd", BinBitXor: "opBitXor", BinBitOr: "opBitOr",
}

func compoundBaseOp(op BinaryOp) (BinaryOp, bool) {
	switch op {
	case BinAddAssign:
		return BinAdd, true
	case BinSubAssign:
		return BinSub, true
	case BinMulAssign:
		return BinMul, true
	case BinDivAssign:
		return BinDiv, true
	case BinModAssign:
		return BinMod, true
	case BinShlAssign:
		return BinShl, true
	case BinShrAssign:
		return BinShr, true
	case BinAndAssign:
		return BinBitAnd, true
	case BinXorAssign:
		return BinBitXor, true
	case BinOrAssign:
		return BinBitOr, true
	default:
		return 0, false
	}
}

func (r *Resolver) resolveBinary(f *SourceFile, scope *Scope, n *BinaryExpr) {
	r.resolveExpr(f, scope, n.Left)
	r.resolveExpr(f, scope, n.Right)

	switch {
	case n.Op == BinAssign:
		r.checkAssignable(f, n.Left)
		if !canConvertImplicit(n.Right.ValueType(), n.Left.ValueType(), isConstantExpr(n.Right)) {
			r.diag(DiagnosticError, f.Path, n.Span(), "cannot assign %s to %s", r.reg.Pretty(n.Right.ValueType()), r.reg.Pretty(n.Left.ValueType()))
		}
		n.SetValueType(n.Left.ValueType())
		return

	case n.Op.IsAssignment():
		base, _ := compoundBaseOp(n.Op)
		r.checkAssignable(f, n.Left)
		r.applyBinaryOperator(f, n, base, n.Left.ValueType(), n.Right.ValueType())
		if !canConvertImplicit(n.ValueType(), n.Left.ValueType(), false) {
			r.diag(DiagnosticError, f.Path, n.Span(), "cannot assign result of %s to %s", r.reg.Pretty(n.ValueType()), r.reg.Pretty(n.Left.ValueType()))
		}
		n.SetValueType(n.Left.ValueType())
		return

	case n.Op == BinAnd || n.Op == BinOr:
		n.SetValueType(r.reg.Bool())
		return

	case n.Op == BinNullCoalesce:
		lt := unwrap(n.Left.ValueType())
		if lt.Kind == TypeOptional {
			if result, ok := binaryOperatorTypeMeet(r.reg, lt.Elem, n.Right.ValueType()); ok {
				n.SetValueType(result)
			} else {
				n.SetValueType(lt.Elem)
			}
		} else {
			n.SetValueType(n.Left.ValueType())
		}
		return

	case n.Op == BinEq || n.Op == BinNe || n.Op == BinLt || n.Op == BinGt || n.Op == BinLe || n.Op == BinGe:
		r.applyBinaryOperator(f, n, n.Op, n.Left.ValueType(), n.Right.ValueType())
		if n.ResolvedOperatorFunc == nil {
			n.SetValueType(r.reg.Bool())
		}
		return

	default:
		r.applyBinaryOperator(f, n, n.Op, n.Left.ValueType(), n.Right.ValueType())
	}
}

// applyBinaryOperator tries the arithmetic meet first, then falls
// back to a single-candidate operator-method search on the left
// operand's class type.
func (r *Resolver) applyBinaryOperator(f *SourceFile, n *BinaryExpr, op BinaryOp, lt, rt *TypeID) {
	if result, ok := binaryOperatorTypeMeet(r.reg, lt, rt); ok {
		n.SetValueType(result)
		return
	}

	methodName, overloadable := operatorMethodNames[op]
	if overloadable {
		if ct := unwrap(lt); ct.Kind == TypeClass || ct.Kind == TypeStruct {
			if candidates := collectMethodCandidates(ct, methodName); len(candidates) > 0 {
				fn, _ := r.resolveOverload(f, f, n.Span(), methodName, candidates, []*TypeID{rt}, []bool{false}, nil)
				if fn != nil {
					n.ResolvedOperatorFunc = fn
					n.SetValueType(fn.Type.Return)
					return
				}
			}
		}
	}

	r.diag(DiagnosticError, f.Path, n.Span(), "operator has no meaning between %s and %s", r.reg.Pretty(lt), r.reg.Pretty(rt))
	n.SetValueType(lt)
}

func (r *Resolver) checkAssignable(f *SourceFile, target Expression) {
	if !target.IsLvalue() {
		r.diag(DiagnosticError, f.Path, target.Span(), "assignment target must be an lvalue")
	}
	if id, ok := target.(*IdentifierExpr); ok {
		if g, ok := id.Bound.(*GlobalVarDecl); ok && g.Const {
			r.diag(DiagnosticError, f.Path, target.Span(), "cannot assign to constant `%s`", g.DeclName())
		}
	}
}
