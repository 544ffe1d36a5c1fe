package velac

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegistryPrimitiveSingletons(t *testing.T) {
	reg := NewRegistry(nil)
	assert.Same(t, reg.Integer(32, true), reg.Integer(32, true))
	assert.NotSame(t, reg.Integer(32, true), reg.Integer(32, false))
	assert.Same(t, reg.Bool(), reg.Bool())
	assert.Same(t, reg.Void(), reg.Void())
}

func TestRegistryStructuralDedup(t *testing.T) {
	reg := NewRegistry(nil)

	p1 := reg.Pointer(reg.Integer(32, true))
	p2 := reg.Pointer(reg.Integer(32, true))
	assert.Same(t, p1, p2)

	o1 := reg.Optional(reg.Bool())
	o2 := reg.Optional(reg.Bool())
	assert.Same(t, o1, o2)

	tup1 := reg.Tuple([]*TypeID{reg.Integer(32, true), reg.Bool()})
	tup2 := reg.Tuple([]*TypeID{reg.Integer(32, true), reg.Bool()})
	assert.Same(t, tup1, tup2)

	a1 := reg.Array(reg.Integer(8, true), 4)
	a2 := reg.Array(reg.Integer(8, true), 4)
	assert.Same(t, a1, a2)
	a3 := reg.Array(reg.Integer(8, true), 8)
	assert.NotSame(t, a1, a3)
}

func TestRegistryStructAndClassAreNeverDeduped(t *testing.T) {
	reg := NewRegistry(nil)
	s1 := reg.NewStruct("Point", nil, true)
	s2 := reg.NewStruct("Point", nil, true)
	assert.NotSame(t, s1, s2, "two header-resolution calls for distinct decls must get distinct TypeIDs")
}

func TestFloatDowngradesUnsupportedPrecision(t *testing.T) {
	var warnings []Diagnostic
	reg := NewRegistry(func(d Diagnostic) { warnings = append(warnings, d) })

	half := reg.Float(PrecisionHalf)
	assert.Equal(t, PrecisionDouble, half.Precision)
	assert.Len(t, warnings, 1)
	assert.Equal(t, DiagnosticWarning, warnings[0].Severity)

	quad := reg.Float(PrecisionQuad)
	assert.Equal(t, PrecisionDouble, quad.Precision)
	assert.Len(t, warnings, 2)

	decimal := reg.Float(PrecisionDecimal)
	assert.Equal(t, PrecisionDouble, decimal.Precision, "80-bit float must downgrade to double like half/quad")
	assert.Len(t, warnings, 3)
}

func TestCanConvertImplicitIntegerWidening(t *testing.T) {
	reg := NewRegistry(nil)
	i8 := reg.Integer(8, true)
	i32 := reg.Integer(32, true)
	assert.True(t, canConvertImplicit(i8, i32, false))
	assert.False(t, canConvertImplicit(i32, i8, false))
	assert.True(t, canConvertImplicit(i32, i8, true), "a constant that fits narrows implicitly")
}

func TestCanConvertImplicitOptionalWrap(t *testing.T) {
	reg := NewRegistry(nil)
	i32 := reg.Integer(32, true)
	optI32 := reg.Optional(i32)
	assert.True(t, canConvertImplicit(i32, optI32, false))
	assert.False(t, canConvertImplicit(optI32, i32, false))
}

func TestBinaryOperatorTypeMeetArithmetic(t *testing.T) {
	reg := NewRegistry(nil)
	i8 := reg.Integer(8, true)
	i32 := reg.Integer(32, false)

	result, ok := binaryOperatorTypeMeet(reg, i8, i32)
	assert.True(t, ok)
	assert.Equal(t, 32, result.Width)
	assert.True(t, result.Signed, "either operand signed promotes the result to signed")
}

func TestBinaryOperatorTypeMeetRejectsIncompatible(t *testing.T) {
	reg := NewRegistry(nil)
	_, ok := binaryOperatorTypeMeet(reg, reg.Bool(), reg.String())
	assert.False(t, ok)
}

func TestPrettyPrintsCompoundTypes(t *testing.T) {
	reg := NewRegistry(nil)
	i32 := reg.Integer(32, true)
	assert.Equal(t, "i32", reg.Pretty(i32))
	assert.Equal(t, "*i32", reg.Pretty(reg.Pointer(i32)))
	assert.Equal(t, "i32?", reg.Pretty(reg.Optional(i32)))
	assert.Equal(t, "i32[4]", reg.Pretty(reg.Array(i32, 4)))
	assert.Equal(t, "i32[]", reg.Pretty(reg.Array(i32, UnboundArrayLength)))
}
