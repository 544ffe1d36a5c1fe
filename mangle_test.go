package velac

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMangleTypePrimitives(t *testing.T) {
	reg := NewRegistry(nil)
	assert.Equal(t, "i32", mangleType(reg.Integer(32, true)))
	assert.Equal(t, "u8", mangleType(reg.Integer(8, false)))
	assert.Equal(t, "f64", mangleType(reg.Float(PrecisionDouble)))
	assert.Equal(t, "f32", mangleType(reg.Float(PrecisionSingle)))
	assert.Equal(t, "b", mangleType(reg.Bool()))
	assert.Equal(t, "s", mangleType(reg.String()))
	assert.Equal(t, "v", mangleType(reg.Void()))
}

func TestMangleTypeCompound(t *testing.T) {
	reg := NewRegistry(nil)
	i32 := reg.Integer(32, true)
	assert.Equal(t, "pi32", mangleType(reg.Pointer(i32)))
	assert.Equal(t, "oi32", mangleType(reg.Optional(i32)))
	assert.Equal(t, "ai32", mangleType(reg.Array(i32, 4)))
}

func TestMangleTypeAliasUnwrapsToTarget(t *testing.T) {
	reg := NewRegistry(nil)
	i32 := reg.Integer(32, true)
	alias := reg.NewAlias("Meters", i32, nil)
	assert.Equal(t, mangleType(i32), mangleType(alias))
}

func TestStructHashIsStableAndOrderSensitive(t *testing.T) {
	assert.Equal(t, structHash("Point"), structHash("Point"))
	assert.NotEqual(t, structHash("Point"), structHash("tnioP"))
}

func TestMangleFunctionEntryPointIsMain(t *testing.T) {
	fn := &FunctionDecl{IsEntryPoint: true, declBase: declBase{name: "main"}}
	assert.Equal(t, "main", mangleFunction(fn))
}

func TestMangleFunctionExternUsesBareName(t *testing.T) {
	fn := &FunctionDecl{Extern: true, declBase: declBase{name: "puts"}}
	assert.Equal(t, "puts", mangleFunction(fn))
}

func TestMangleFunctionIncludesParamTypes(t *testing.T) {
	reg := NewRegistry(nil)
	f1 := &FunctionDecl{
		declBase: declBase{name: "add"},
		Params:   []Param{{ResolvedType: reg.Integer(32, true)}, {ResolvedType: reg.Integer(32, true)}},
	}
	f2 := &FunctionDecl{
		declBase: declBase{name: "add"},
		Params:   []Param{{ResolvedType: reg.Integer(64, true)}, {ResolvedType: reg.Integer(32, true)}},
	}
	assert.NotEqual(t, mangleFunction(f1), mangleFunction(f2), "overloads differing by parameter type must mangle distinctly")
}

func TestMangleFunctionIncludesGenericInstanceArgs(t *testing.T) {
	reg := NewRegistry(nil)
	base := &FunctionDecl{
		declBase:      declBase{name: "identity"},
		GenericParams: []string{"T"},
		Params:        []Param{{ResolvedType: reg.Integer(32, true)}},
	}
	instI32 := &FunctionDecl{
		declBase:      declBase{name: "identity"},
		GenericParams: []string{"T"},
		Params:        []Param{{ResolvedType: reg.Integer(32, true)}},
		InstanceArgs:  map[string]*TypeID{"T": reg.Integer(32, true)},
	}
	instBool := &FunctionDecl{
		declBase:      declBase{name: "identity"},
		GenericParams: []string{"T"},
		Params:        []Param{{ResolvedType: reg.Bool()}},
		InstanceArgs:  map[string]*TypeID{"T": reg.Bool()},
	}
	assert.NotEqual(t, mangleFunction(base), mangleFunction(instI32))
	assert.NotEqual(t, mangleFunction(instI32), mangleFunction(instBool))
}
