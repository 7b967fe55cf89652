package ir_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tide-lang/tide/ir"
)

func funcType(t *testing.T, args []ir.Type, ret ir.Type, params ...*ir.TypeVar) *ir.FuncType {
	t.Helper()
	ft, err := ir.NewFuncType(args, ret, params, nil)
	require.NoError(t, err)
	return ft
}

func TestAlphaEqualLeaves(t *testing.T) {
	assert.True(t, ir.AlphaEqual(ir.NewPrimType(ir.Int32), ir.NewPrimType(ir.Int32)))
	assert.False(t, ir.AlphaEqual(ir.NewPrimType(ir.Int32), ir.NewPrimType(ir.Int64)))

	assert.True(t, ir.AlphaEqual(ir.TensorTypeOf(ir.Float32, 10, 20), ir.TensorTypeOf(ir.Float32, 10, 20)))
	assert.False(t, ir.AlphaEqual(ir.TensorTypeOf(ir.Float32, 10, 20), ir.TensorTypeOf(ir.Float32, 20, 10)))
	assert.False(t, ir.AlphaEqual(ir.TensorTypeOf(ir.Float32, 10), ir.TensorTypeOf(ir.Int32, 10)))
}

func TestAlphaEqualFoldsTensorDims(t *testing.T) {
	folded := ir.NewTensorType([]ir.IndexExpr{ir.Add(ir.NewIntImm(1), ir.NewIntImm(1))}, ir.Float32)
	assert.True(t, ir.AlphaEqual(folded, ir.TensorTypeOf(ir.Float32, 2)))
}

func TestAlphaEqualHolesByIdentity(t *testing.T) {
	h1 := ir.NewIncompleteType(ir.KindType)
	h2 := ir.NewIncompleteType(ir.KindType)
	assert.True(t, ir.AlphaEqual(h1, h1))
	assert.False(t, ir.AlphaEqual(h1, h2))
}

func TestAlphaEqualFreeVarsByName(t *testing.T) {
	assert.True(t, ir.AlphaEqual(ir.NewTypeVar("a", ir.KindType), ir.NewTypeVar("a", ir.KindType)))
	assert.False(t, ir.AlphaEqual(ir.NewTypeVar("a", ir.KindType), ir.NewTypeVar("b", ir.KindType)))
	assert.False(t, ir.AlphaEqual(ir.NewTypeVar("a", ir.KindType), ir.NewTypeVar("a", ir.KindShape)))
}

func TestAlphaEqualBoundVarsRename(t *testing.T) {
	a := ir.NewTypeVar("a", ir.KindType)
	b := ir.NewTypeVar("b", ir.KindType)

	idA := funcType(t, []ir.Type{a}, a, a)
	idB := funcType(t, []ir.Type{b}, b, b)
	assert.True(t, ir.AlphaEqual(idA, idB))

	// bound on one side, free on the other
	free := funcType(t, []ir.Type{a}, a)
	assert.False(t, ir.AlphaEqual(idA, free))

	// binding structure matters, not just names
	constA := funcType(t, []ir.Type{a, b}, a, a, b)
	constB := funcType(t, []ir.Type{a, b}, b, a, b)
	assert.False(t, ir.AlphaEqual(constA, constB))
}

func TestAlphaEqualShadowing(t *testing.T) {
	a := ir.NewTypeVar("a", ir.KindType)
	b := ir.NewTypeVar("b", ir.KindType)
	c := ir.NewTypeVar("c", ir.KindType)

	// fn <a>(fn <a>(a) -> a) -> a   vs   fn <b>(fn <c>(c) -> c) -> b
	innerA := funcType(t, []ir.Type{a}, a, a)
	outerA := funcType(t, []ir.Type{innerA}, a, a)
	innerC := funcType(t, []ir.Type{c}, c, c)
	outerB := funcType(t, []ir.Type{innerC}, b, b)
	assert.True(t, ir.AlphaEqual(outerA, outerB))

	// fn <b>(fn <c>(c) -> c) -> c leaks the inner binder
	outerLeak := funcType(t, []ir.Type{innerC}, c, b)
	assert.False(t, ir.AlphaEqual(outerA, outerLeak))
}

func TestAlphaEqualTuples(t *testing.T) {
	tensor := ir.TensorTypeOf(ir.Float32, 10)
	assert.True(t, ir.AlphaEqual(
		ir.NewTupleType([]ir.Type{tensor, tensor}),
		ir.NewTupleType([]ir.Type{ir.TensorTypeOf(ir.Float32, 10), tensor}),
	))
	assert.False(t, ir.AlphaEqual(
		ir.NewTupleType([]ir.Type{tensor}),
		ir.NewTupleType([]ir.Type{tensor, tensor}),
	))
	assert.True(t, ir.AlphaEqual(ir.NewTupleType(nil), ir.NewTupleType(nil)))
}
