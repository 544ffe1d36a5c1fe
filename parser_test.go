package velac

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseNoErrors(t *testing.T, src string) *SourceFile {
	t.Helper()
	var diags []Diagnostic
	f := ParseFile(FileID(0), "test.vl", []byte(src), func(d Diagnostic) { diags = append(diags, d) })
	require.Empty(t, diags, "unexpected diagnostics: %v", diags)
	return f
}

func TestParseModuleAndImport(t *testing.T) {
	f := parseNoErrors(t, `
module app.core;
import util;
func main() {}
`)
	require.NotNil(t, f.Module)
	assert.Equal(t, []string{"app", "core"}, f.Module.Path)
	require.Len(t, f.Imports, 1)
	assert.Equal(t, []string{"util"}, f.Imports[0].Path)
	assert.Equal(t, ImportNone, f.Imports[0].Wildcard)
}

func TestParseImportWildcards(t *testing.T) {
	f := parseNoErrors(t, `
import a.*, b.**;
func main() {}
`)
	require.Len(t, f.Imports, 2)
	assert.Equal(t, ImportChildren, f.Imports[0].Wildcard)
	assert.Equal(t, ImportDescendants, f.Imports[1].Wildcard)
}

func TestParseFunctionHeaderAndBody(t *testing.T) {
	f := parseNoErrors(t, `
func add(i32 a, i32 b) -> i32 {
	return a + b;
}
`)
	require.Len(t, f.Decls, 1)
	fn, ok := f.Decls[0].(*FunctionDecl)
	require.True(t, ok)
	assert.Equal(t, "add", fn.DeclName())
	require.Len(t, fn.Params, 2)
	assert.Equal(t, "a", fn.Params[0].Name)
	require.NotNil(t, fn.ReturnType)
	require.NotNil(t, fn.Body)
	require.Len(t, fn.Body.Stmts, 1)
}

func TestParseGenericStructDecl(t *testing.T) {
	f := parseNoErrors(t, `
struct Box<T> {
	T value;
}
`)
	require.Len(t, f.Decls, 1)
	s, ok := f.Decls[0].(*StructDecl)
	require.True(t, ok)
	assert.Equal(t, []string{"T"}, s.GenericParams)
	require.Len(t, s.Fields, 1)
	assert.Equal(t, "value", s.Fields[0].Name)
}

func TestParsePublicVisibility(t *testing.T) {
	f := parseNoErrors(t, `public i32 counter;`)
	require.Len(t, f.Decls, 1)
	assert.Equal(t, VisPublic, f.Decls[0].DeclVisibility())
}

func TestParseBinaryOperatorPrecedence(t *testing.T) {
	f := parseNoErrors(t, `
func main() {
	let i32 a = 1 + 2 * 3;
}
`)
	fn := f.Decls[0].(*FunctionDecl)
	decl := fn.Body.Stmts[0].(*LocalDeclStmt)
	require.Len(t, decl.Declarators, 1)
	add, ok := decl.Declarators[0].Init.(*BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, BinAdd, add.Op)
	mul, ok := add.Right.(*BinaryExpr)
	require.True(t, ok, "multiplication must bind tighter than addition")
	assert.Equal(t, BinMul, mul.Op)
}

func TestParseIntLiteralWidthSuffix(t *testing.T) {
	f := parseNoErrors(t, `
func main() {
	let a = 2u64;
	let b = 5i8;
	let c = 9l;
	let d = 7;
}
`)
	fn := f.Decls[0].(*FunctionDecl)

	lit := func(i int) *IntLiteralExpr {
		return fn.Body.Stmts[i].(*LocalDeclStmt).Declarators[0].Init.(*IntLiteralExpr)
	}

	a := lit(0)
	assert.Equal(t, 64, a.Width)
	assert.False(t, a.Signed)

	b := lit(1)
	assert.Equal(t, 8, b.Width)
	assert.True(t, b.Signed)

	c := lit(2)
	assert.Equal(t, 64, c.Width)
	assert.True(t, c.Signed)

	d := lit(3)
	assert.Equal(t, 32, d.Width)
	assert.True(t, d.Signed)
}

func TestParsePointerOptionalArrayTypeSuffixes(t *testing.T) {
	f := parseNoErrors(t, `
func main() {
	let i32* p;
	let i32? o;
	let i32[4] arr;
}
`)
	fn := f.Decls[0].(*FunctionDecl)

	pd := fn.Body.Stmts[0].(*LocalDeclStmt)
	_, isPtr := pd.DeclaredType.(*PointerTypeExpr)
	assert.True(t, isPtr)

	od := fn.Body.Stmts[1].(*LocalDeclStmt)
	_, isOpt := od.DeclaredType.(*OptionalTypeExpr)
	assert.True(t, isOpt)

	ad := fn.Body.Stmts[2].(*LocalDeclStmt)
	arrType, isArr := ad.DeclaredType.(*ArrayTypeExpr)
	require.True(t, isArr)
	require.NotNil(t, arrType.Length)
}

func TestParseGenericTypeArgumentsOnNamedType(t *testing.T) {
	f := parseNoErrors(t, `
func main() {
	let Box<i32> b;
}
`)
	fn := f.Decls[0].(*FunctionDecl)
	decl := fn.Body.Stmts[0].(*LocalDeclStmt)
	nt, ok := decl.DeclaredType.(*NamedTypeExpr)
	require.True(t, ok)
	assert.Equal(t, "Box", nt.Name)
	require.Len(t, nt.TypeArgs, 1)
}

func TestParseCallExpression(t *testing.T) {
	f := parseNoErrors(t, `
func main() {
	add(1, 2);
}
`)
	fn := f.Decls[0].(*FunctionDecl)
	stmt := fn.Body.Stmts[0].(*ExprStmt)
	call, ok := stmt.Expr.(*CallExpr)
	require.True(t, ok)
	require.Len(t, call.Args, 2)
}

func TestParseRecoversAfterSyntaxError(t *testing.T) {
	var diags []Diagnostic
	f := ParseFile(FileID(0), "test.vl", []byte(`
func broken( {
}
func main() {}
`), func(d Diagnostic) { diags = append(diags, d) })
	assert.NotEmpty(t, diags)
	found := false
	for _, d := range f.Decls {
		if fn, ok := d.(*FunctionDecl); ok && fn.DeclName() == "main" {
			found = true
		}
	}
	assert.True(t, found, "parser must resynchronize and still find the later declaration")
}
