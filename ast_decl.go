package velac

// Visibility controls cross-module lookup, per spec.md §3 invariant 5.
type Visibility int

const (
	VisPrivate Visibility = iota
	VisPublic
)

// Declaration is any top-level or class-member AST declaration.
type Declaration interface {
	astDeclNode()
	DeclName() string
	DeclSpan() Span
	DeclVisibility() Visibility
	OwningFile() *SourceFile
}

type declBase struct {
	name string
	span Span
	vis  Visibility
	file *SourceFile
}

func (d *declBase) astDeclNode()               {}
func (d *declBase) DeclName() string           { return d.name }
func (d *declBase) DeclSpan() Span             { return d.span }
func (d *declBase) DeclVisibility() Visibility { return d.vis }
func (d *declBase) OwningFile() *SourceFile    { return d.file }

// Param is one function/method/constructor parameter.
type Param struct {
	Name         string
	DeclaredType TypeExpr
	Default      Expression // nil when no default value
	Span         Span

	ResolvedType *TypeID
}

// FunctionKind distinguishes a free function from a class method or
// constructor; methods and constructors additionally carry Receiver.
type FunctionKind int

const (
	FuncFree FunctionKind = iota
	FuncMethod
	FuncConstructor
)

type FunctionDecl struct {
	declBase
	Kind FunctionKind

	GenericParams []string // empty for a non-generic function
	Params        []Param
	ReturnType    TypeExpr // nil means void
	Varargs       bool
	VarargsElem   TypeExpr
	Extern        bool
	Body          *BlockStmt // nil for a declaration-only (extern/header) function

	// Receiver is the owning class for Kind != FuncFree.
	Receiver *ClassDecl

	// Resolved fields.
	Type         *TypeID // function TypeID, built in the header pass
	MangledName  string
	IsEntryPoint bool

	// Generic bookkeeping: nil for non-generic functions and for
	// instances. Populated on the generic original.
	Instances []*GenericInstance
	// InstanceArgs is non-nil on a clone produced by instantiation,
	// mapping GenericParams of the original to concrete TypeIDs.
	InstanceArgs map[string]*TypeID
	// Origin points a generic instance's clone back at the
	// declaration it was cloned from.
	Origin *FunctionDecl
}

// Field is one struct/class field.
type Field struct {
	Name         string
	DeclaredType TypeExpr
	Span         Span
	ResolvedType *TypeID
}

type StructDecl struct {
	declBase
	GenericParams []string
	Fields        []Field
	HasBody       bool // false for a forward-declared, field-less struct

	Type      *TypeID
	Instances []*GenericInstance
	InstanceArgs map[string]*TypeID
	Origin       *StructDecl
}

type ClassDecl struct {
	declBase
	GenericParams []string
	Fields        []Field
	Methods       []*FunctionDecl
	Constructor   *FunctionDecl // nil when the class has no explicit constructor

	Type      *TypeID
	Instances []*GenericInstance
	InstanceArgs map[string]*TypeID
	Origin       *ClassDecl
}

type TypedefDecl struct {
	declBase
	Target TypeExpr
	Type   *TypeID // alias TypeID
}

type EnumValue struct {
	Name string
	Init Expression // nil when auto-assigned (previous + 1, or 0 for the first)
	Span Span
}

type EnumDecl struct {
	declBase
	Values []EnumValue
	Type   *TypeID // alias TypeID aliasing i32 by default
}

// MacroDecl is the `exprdef` alias facility: a name bound to an
// expression, substituted (re-resolved against the call site) at
// every use, per spec.md §4.6's "macro alias" lookup step.
type MacroDecl struct {
	declBase
	Expr Expression
}

type GlobalVarDecl struct {
	declBase
	Const        bool
	DeclaredType TypeExpr
	Init         Expression // nil when uninitialized

	ResolvedType *TypeID
}

// GenericInstance records one concrete instantiation of a generic
// declaration: the argument tuple it was instantiated with and the
// resolved clone produced for it (spec.md §3's "Generic instances").
type GenericInstance struct {
	Args  []*TypeID
	Func  *FunctionDecl // set when instantiating a generic function
	Struct *StructDecl  // set when instantiating a generic struct
	Class  *ClassDecl   // set when instantiating a generic class
}

// ModuleDecl is the file-scoped `module a.b.c;` directive.
type ModuleDecl struct {
	Path []string
	Span Span
}

// NamespaceDecl is the file-scoped `namespace x;` directive.
type NamespaceDecl struct {
	Name string
	Span Span
}

// ImportSpec is one entry of an `import a.b, c.*, d.**;` statement.
type ImportSpec struct {
	Path     []string
	Wildcard ImportWildcard
	Span     Span
}

type ImportWildcard int

const (
	ImportNone         ImportWildcard = iota // import a.b
	ImportChildren                           // import c.*
	ImportDescendants                        // import d.**
)

// SourceFile is one `File` AST root: one source file's declarations,
// plus the module/namespace/import directives that scope it.
type SourceFile struct {
	ID       FileID
	Path     string
	Source   []byte
	Lines    *LineIndex

	Module    *ModuleDecl    // nil when the file declares no module (implicit global module)
	Namespace *NamespaceDecl // nil when absent
	Imports   []ImportSpec

	Decls []Declaration

	// OwningModule and Dependencies are filled in during resolver
	// stage 1 (module headers).
	OwningModule *Module
	Dependencies []*Module
}
