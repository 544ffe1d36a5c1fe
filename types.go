package velac

import "fmt"

// TypeKind tags which TypeID variant is populated.
type TypeKind int

const (
	TypeVoid TypeKind = iota
	TypeInteger
	TypeFloat
	TypeBool
	TypeString
	TypeAny
	TypeStruct
	TypeUnion
	TypeClass
	TypeAlias
	TypePointer
	TypeOptional
	TypeFunction
	TypeTuple
	TypeArray
)

type FloatPrecision int

const (
	PrecisionHalf FloatPrecision = iota
	PrecisionSingle
	PrecisionDouble
	PrecisionDecimal
	PrecisionQuad
)

func (p FloatPrecision) String() string {
	switch p {
	case PrecisionHalf:
		return "half"
	case PrecisionSingle:
		return "single"
	case PrecisionDouble:
		return "double"
	case PrecisionDecimal:
		return "decimal"
	case PrecisionQuad:
		return "quad"
	default:
		return "?"
	}
}

// UnboundArrayLength is the sentinel array length meaning "slice/unknown".
const UnboundArrayLength = -1

// TypeID is the resolver's interned, post-resolution type handle. Only
// the fields relevant to Kind are meaningful; see each constructor.
type TypeID struct {
	Kind TypeKind

	// integer
	Width  int
	Signed bool

	// floating-point
	Precision FloatPrecision

	// struct / union / class
	Name       string
	Decl       Declaration
	FieldTypes []*TypeID
	FieldNames []string
	HasBody    bool

	// alias
	Target *TypeID

	// pointer / optional / array element
	Elem *TypeID

	// function
	Return       *TypeID
	Params       []*TypeID
	Varargs      bool
	VarargsElem  *TypeID
	IsMethod     bool
	InstanceType *TypeID

	// tuple
	Elems []*TypeID

	// array
	Length int
}

// Registry is the front-end's only mutable process-wide state
// (spec.md §4.4, §5): primitive singletons plus structural-dedup
// buckets for the compound kinds. It requires no locking because a
// compiler instance is strictly single-threaded (spec.md §5).
type Registry struct {
	sink DiagnosticSink

	voidType   *TypeID
	boolType   *TypeID
	stringType *TypeID
	anyType    *TypeID
	ints       map[intKey]*TypeID
	floats     map[FloatPrecision]*TypeID

	pointers  []*TypeID
	optionals []*TypeID
	functions []*TypeID
	tuples    []*TypeID
	arrays    []*TypeID

	prettyCache map[*TypeID]string
}

type intKey struct {
	width  int
	signed bool
}

func NewRegistry(sink DiagnosticSink) *Registry {
	r := &Registry{
		sink:        sink,
		ints:        make(map[intKey]*TypeID),
		floats:      make(map[FloatPrecision]*TypeID),
		prettyCache: make(map[*TypeID]string),
	}
	r.voidType = &TypeID{Kind: TypeVoid}
	r.boolType = &TypeID{Kind: TypeBool}
	r.stringType = &TypeID{Kind: TypeString}
	r.anyType = &TypeID{Kind: TypeAny}
	for _, w := range []int{8, 16, 32, 64} {
		for _, signed := range []bool{true, false} {
			r.ints[intKey{w, signed}] = &TypeID{Kind: TypeInteger, Width: w, Signed: signed}
		}
	}
	for _, p := range []FloatPrecision{PrecisionSingle, PrecisionDouble} {
		r.floats[p] = &TypeID{Kind: TypeFloat, Precision: p}
	}
	return r
}

func (r *Registry) Void() *TypeID   { return r.voidType }
func (r *Registry) Bool() *TypeID   { return r.boolType }
func (r *Registry) String() *TypeID { return r.stringType }
func (r *Registry) Any() *TypeID    { return r.anyType }

func (r *Registry) Integer(width int, signed bool) *TypeID {
	if t, ok := r.ints[intKey{width, signed}]; ok {
		return t
	}
	t := &TypeID{Kind: TypeInteger, Width: width, Signed: signed}
	r.ints[intKey{width, signed}] = t
	return t
}

// Float downgrades the unsupported half/decimal(80-bit)/quad
// precisions to double, per the Open Question decision recorded in
// DESIGN.md: the syntax is accepted but the registry never silently
// substitutes without a diagnostic.
func (r *Registry) Float(precision FloatPrecision) *TypeID {
	if precision == PrecisionHalf || precision == PrecisionDecimal || precision == PrecisionQuad {
		r.diag(DiagnosticWarning, "%s precision is not supported, using double", precision)
		precision = PrecisionDouble
	}
	if t, ok := r.floats[precision]; ok {
		return t
	}
	t := &TypeID{Kind: TypeFloat, Precision: precision}
	r.floats[precision] = t
	return t
}

func (r *Registry) diag(sev DiagnosticSeverity, format string, args ...any) {
	if r.sink == nil {
		return
	}
	r.sink(Diagnostic{Severity: sev, Message: fmt.Sprintf(format, args...)})
}

func (r *Registry) Pointer(elem *TypeID) *TypeID {
	for _, p := range r.pointers {
		if p.Elem == elem {
			return p
		}
	}
	t := &TypeID{Kind: TypePointer, Elem: elem}
	r.pointers = append(r.pointers, t)
	return t
}

func (r *Registry) Optional(elem *TypeID) *TypeID {
	for _, o := range r.optionals {
		if o.Elem == elem {
			return o
		}
	}
	t := &TypeID{Kind: TypeOptional, Elem: elem}
	r.optionals = append(r.optionals, t)
	return t
}

func (r *Registry) Function(ret *TypeID, params []*TypeID, varargs bool, varargsElem *TypeID, isMethod bool, instanceType *TypeID) *TypeID {
	for _, f := range r.functions {
		if f.Return == ret && f.Varargs == varargs && f.VarargsElem == varargsElem &&
			f.IsMethod == isMethod && f.InstanceType == instanceType && sameTypeSlice(f.Params, params) {
			return f
		}
	}
	t := &TypeID{
		Kind: TypeFunction, Return: ret, Params: append([]*TypeID(nil), params...),
		Varargs: varargs, VarargsElem: varargsElem, IsMethod: isMethod, InstanceType: instanceType,
	}
	r.functions = append(r.functions, t)
	return t
}

func (r *Registry) Tuple(elems []*TypeID) *TypeID {
	for _, tp := range r.tuples {
		if sameTypeSlice(tp.Elems, elems) {
			return tp
		}
	}
	t := &TypeID{Kind: TypeTuple, Elems: append([]*TypeID(nil), elems...)}
	r.tuples = append(r.tuples, t)
	return t
}

func (r *Registry) Array(elem *TypeID, length int) *TypeID {
	for _, a := range r.arrays {
		if a.Elem == elem && a.Length == length {
			return a
		}
	}
	t := &TypeID{Kind: TypeArray, Elem: elem, Length: length}
	r.arrays = append(r.arrays, t)
	return t
}

func sameTypeSlice(a, b []*TypeID) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// NewStruct, NewUnion and NewClass each allocate a fresh TypeID per
// call, per spec.md §4.4 point 3: non-generic named declarations get
// exactly one TypeID on resolver request, anonymous struct/union
// shapes get a fresh TypeID per textual occurrence — neither is
// structurally deduplicated the way pointer/optional/function/tuple/
// array are.
func (r *Registry) NewStruct(name string, decl Declaration, hasBody bool) *TypeID {
	return &TypeID{Kind: TypeStruct, Name: name, Decl: decl, HasBody: hasBody}
}

func (r *Registry) NewUnion(fieldTypes []*TypeID, fieldNames []string, decl Declaration) *TypeID {
	return &TypeID{Kind: TypeUnion, FieldTypes: fieldTypes, FieldNames: fieldNames, Decl: decl}
}

func (r *Registry) NewClass(name string, decl Declaration) *TypeID {
	return &TypeID{Kind: TypeClass, Name: name, Decl: decl}
}

func (r *Registry) NewAlias(name string, target *TypeID, decl Declaration) *TypeID {
	return &TypeID{Kind: TypeAlias, Name: name, Target: target, Decl: decl}
}

// unwrap is the sole operation permitted to dereference an alias
// chain (spec.md §4.4). A cycle guard caps the chase length so a
// pathological self-referential alias cannot hang the compiler.
func unwrap(t *TypeID) *TypeID {
	for i := 0; t.Kind == TypeAlias && i < 64; i++ {
		if t.Target == t {
			return t
		}
		t = t.Target
	}
	return t
}

// compare_types per spec.md §4.4: unwrap both sides, then delegate
// per-kind structural comparison.
func compareTypes(a, b *TypeID) bool {
	a, b = unwrap(a), unwrap(b)
	if a == b {
		return true
	}
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case TypeVoid, TypeBool, TypeString, TypeAny:
		return true
	case TypeInteger:
		return a.Width == b.Width && a.Signed == b.Signed
	case TypeFloat:
		return a.Precision == b.Precision
	case TypeStruct, TypeClass:
		return a.Decl != nil && a.Decl == b.Decl
	case TypeUnion:
		return sameTypeSlice(a.FieldTypes, b.FieldTypes)
	case TypePointer, TypeOptional:
		return compareTypes(a.Elem, b.Elem)
	case TypeArray:
		return a.Length == b.Length && compareTypes(a.Elem, b.Elem)
	case TypeTuple:
		if len(a.Elems) != len(b.Elems) {
			return false
		}
		for i := range a.Elems {
			if !compareTypes(a.Elems[i], b.Elems[i]) {
				return false
			}
		}
		return true
	case TypeFunction:
		if len(a.Params) != len(b.Params) || a.Varargs != b.Varargs {
			return false
		}
		if !compareTypes(a.Return, b.Return) {
			return false
		}
		for i := range a.Params {
			if !compareTypes(a.Params[i], b.Params[i]) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

func isInteger(t *TypeID) bool { return unwrap(t).Kind == TypeInteger }
func isFloat(t *TypeID) bool   { return unwrap(t).Kind == TypeFloat }
func isPointerToVoid(t *TypeID) bool {
	u := unwrap(t)
	return u.Kind == TypePointer && unwrap(u.Elem).Kind == TypeVoid
}

// canConvertImplicit is the full conversion matrix of spec.md §4.4.
func canConvertImplicit(from, to *TypeID, fromIsConstant bool) bool {
	uf, ut := unwrap(from), unwrap(to)

	if compareTypes(uf, ut) {
		return true
	}
	if uf.Kind == TypeInteger && ut.Kind == TypeInteger {
		if ut.Width >= uf.Width {
			return true
		}
		return fromIsConstant && uf.Width <= 32
	}
	if uf.Kind == TypeInteger && ut.Kind == TypeBool {
		return true
	}
	if uf.Kind == TypeBool && ut.Kind == TypeInteger {
		return fromIsConstant
	}
	if uf.Kind == TypeFloat && ut.Kind == TypeFloat {
		if precisionRank(ut.Precision) >= precisionRank(uf.Precision) {
			return true
		}
		return fromIsConstant
	}
	if uf.Kind == TypeInteger && ut.Kind == TypeFloat {
		return true
	}
	if uf.Kind == TypePointer && ut.Kind == TypePointer {
		return unwrap(uf.Elem).Kind == TypeVoid || unwrap(ut.Elem).Kind == TypeVoid
	}
	if isPointerToVoid(uf) && ut.Kind == TypeOptional {
		return true
	}
	if ut.Kind == TypeOptional && uf.Kind != TypeOptional {
		return canConvertImplicit(uf, ut.Elem, fromIsConstant) || compareTypes(uf, ut.Elem)
	}
	if uf.Kind == TypeAny || ut.Kind == TypeAny {
		return true
	}
	if uf.Kind == TypeArray && ut.Kind == TypeArray {
		if ut.Length == UnboundArrayLength && compareTypes(uf.Elem, ut.Elem) {
			return true
		}
		return fromIsConstant && canConvertImplicit(uf.Elem, ut.Elem, fromIsConstant) && arrayLengthsCompatible(uf.Length, ut.Length)
	}
	if uf.Kind == TypeTuple && ut.Kind == TypeArray {
		if !fromIsConstant {
			return false
		}
		for _, e := range uf.Elems {
			if !compareTypes(e, ut.Elem) {
				return false
			}
		}
		return true
	}
	if uf.Kind == TypeTuple && ut.Kind == TypeStruct {
		if !fromIsConstant || len(uf.Elems) != len(ut.FieldTypes) {
			return false
		}
		for i, e := range uf.Elems {
			if !canConvertImplicit(e, ut.FieldTypes[i], fromIsConstant) {
				return false
			}
		}
		return true
	}
	if uf.Kind == TypePointer && (ut.Kind == TypeClass || ut.Kind == TypeFunction) {
		return fromIsConstant
	}
	if uf.Kind == TypePointer && ut.Kind == TypeString {
		return true
	}
	if uf.Kind == TypePointer && unwrap(uf.Elem).Kind == TypeInteger && unwrap(uf.Elem).Width == 8 && ut.Kind == TypeString {
		return true
	}
	return false
}

func precisionRank(p FloatPrecision) int {
	switch p {
	case PrecisionHalf:
		return 0
	case PrecisionSingle:
		return 1
	case PrecisionDouble:
		return 2
	case PrecisionDecimal:
		return 3
	case PrecisionQuad:
		return 4
	default:
		return -1
	}
}

func arrayLengthsCompatible(from, to int) bool {
	if to == UnboundArrayLength {
		return true
	}
	return from == to
}

// canConvert is the explicit-cast superset of canConvertImplicit,
// adding numeric, pointer<->integer, and function<->pointer casts.
func canConvert(from, to *TypeID, fromIsConstant bool) bool {
	if canConvertImplicit(from, to, fromIsConstant) {
		return true
	}
	uf, ut := unwrap(from), unwrap(to)
	if (uf.Kind == TypeInteger || uf.Kind == TypeFloat || uf.Kind == TypeBool) &&
		(ut.Kind == TypeInteger || ut.Kind == TypeFloat || ut.Kind == TypeBool) {
		return true
	}
	if uf.Kind == TypePointer && ut.Kind == TypeInteger {
		return true
	}
	if uf.Kind == TypeInteger && ut.Kind == TypePointer {
		return true
	}
	if uf.Kind == TypeFunction && ut.Kind == TypePointer {
		return true
	}
	if uf.Kind == TypePointer && ut.Kind == TypeFunction {
		return true
	}
	return false
}

// binaryOperatorTypeMeet implements spec.md §4.4's arithmetic
// promotion table. ok is false when neither side combines
// arithmetically, signalling the resolver to fall back to operator
// overload search.
func binaryOperatorTypeMeet(reg *Registry, l, r *TypeID) (result *TypeID, ok bool) {
	ul, ur := unwrap(l), unwrap(r)

	switch {
	case ul.Kind == TypeInteger && ur.Kind == TypeInteger:
		width := ul.Width
		if ur.Width > width {
			width = ur.Width
		}
		return reg.Integer(width, ul.Signed || ur.Signed), true
	case ul.Kind == TypeFloat && ur.Kind == TypeFloat:
		if precisionRank(ur.Precision) > precisionRank(ul.Precision) {
			return reg.Float(ur.Precision), true
		}
		return reg.Float(ul.Precision), true
	case ul.Kind == TypeInteger && ur.Kind == TypeFloat:
		return reg.Float(ur.Precision), true
	case ul.Kind == TypeFloat && ur.Kind == TypeInteger:
		return reg.Float(ul.Precision), true
	case ul.Kind == TypePointer && ur.Kind == TypeInteger:
		return l, true
	case ul.Kind == TypeInteger && ur.Kind == TypePointer:
		return r, true
	case ul.Kind == TypePointer && ur.Kind == TypePointer:
		if unwrap(ul.Elem).Kind == TypeVoid {
			return r, true
		}
		return l, true
	case ul.Kind == TypeString && ur.Kind == TypeString:
		return reg.String(), true
	default:
		return nil, false
	}
}

// Pretty renders the canonical textual form of a type, memoized for
// the primitive singletons (spec.md §4.4 point 4).
func (r *Registry) Pretty(t *TypeID) string {
	if t == nil {
		return "<nil>"
	}
	if s, ok := r.prettyCache[t]; ok {
		return s
	}
	s := r.pretty(t)
	switch t.Kind {
	case TypeVoid, TypeBool, TypeString, TypeAny, TypeInteger, TypeFloat:
		r.prettyCache[t] = s
	}
	return s
}

func (r *Registry) pretty(t *TypeID) string {
	switch t.Kind {
	case TypeVoid:
		return "void"
	case TypeBool:
		return "bool"
	case TypeString:
		return "string"
	case TypeAny:
		return "any"
	case TypeInteger:
		sign := "i"
		if !t.Signed {
			sign = "u"
		}
		return fmt.Sprintf("%s%d", sign, t.Width)
	case TypeFloat:
		return t.Precision.String()
	case TypeStruct, TypeClass:
		return t.Name
	case TypeUnion:
		return "union{...}"
	case TypeAlias:
		return t.Name
	case TypePointer:
		return "*" + r.Pretty(t.Elem)
	case TypeOptional:
		return r.Pretty(t.Elem) + "?"
	case TypeArray:
		if t.Length == UnboundArrayLength {
			return r.Pretty(t.Elem) + "[]"
		}
		return fmt.Sprintf("%s[%d]", r.Pretty(t.Elem), t.Length)
	case TypeTuple:
		s := "("
		for i, e := range t.Elems {
			if i > 0 {
				s += ", "
			}
			s += r.Pretty(e)
		}
		return s + ")"
	case TypeFunction:
		s := "("
		for i, p := range t.Params {
			if i > 0 {
				s += ", "
			}
			s += r.Pretty(p)
		}
		if t.Varargs {
			s += "...)"
		} else {
			s += ")"
		}
		return s + " -> " + r.Pretty(t.Return)
	default:
		return "?"
	}
}
