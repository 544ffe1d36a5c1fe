package velac

// TypeExpr is the AST-level (pre-resolution) representation of a
// type as written in source, per spec.md §3's Type variant list.
// Resolution replaces every TypeExpr's ResolvedType with an interned
// TypeID without discarding the AST node (needed for diagnostics and
// for the "pretty-print round-trips" testable property).
type TypeExpr interface {
	astTypeNode()
	Span() Span
	ResolvedType() *TypeID
	setResolvedType(*TypeID)
}

type typeBase struct {
	span Span
	rt   *TypeID
}

func (t *typeBase) astTypeNode()            {}
func (t *typeBase) Span() Span              { return t.span }
func (t *typeBase) ResolvedType() *TypeID   { return t.rt }
func (t *typeBase) setResolvedType(ty *TypeID) { t.rt = ty }

type VoidTypeExpr struct{ typeBase }

type IntTypeExpr struct {
	typeBase
	Width  int
	Signed bool
}

type FloatTypeExpr struct {
	typeBase
	Precision FloatPrecision
}

type BoolTypeExpr struct{ typeBase }

type StringTypeExpr struct {
	typeBase
	Length Expression // nil when unbounded
}

type AnyTypeExpr struct{ typeBase }

// NamedTypeExpr is a reference to a struct/class/typedef/enum/generic
// parameter by name, with an optional type-argument list (`Box<i32>`).
type NamedTypeExpr struct {
	typeBase
	Name     string
	TypeArgs []TypeExpr
}

type PointerTypeExpr struct {
	typeBase
	Elem TypeExpr
}

type OptionalTypeExpr struct {
	typeBase
	Elem TypeExpr
}

type FunctionTypeExpr struct {
	typeBase
	Return   TypeExpr
	Params   []TypeExpr
	Varargs  bool
	VarElem  TypeExpr // element type of the trailing `...` spread, if any
}

type TupleTypeExpr struct {
	typeBase
	Elems []TypeExpr
}

// ArrayTypeExpr's Length is nil for an unbounded/slice array
// (`T[]`), a constant expression for a fixed-length array (`T[8]`).
type ArrayTypeExpr struct {
	typeBase
	Elem   TypeExpr
	Length Expression
}
