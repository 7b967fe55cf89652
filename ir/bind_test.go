package ir_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tide-lang/tide/ir"
)

func TestBindSubstitutesByIdentity(t *testing.T) {
	a := ir.NewTypeVar("a", ir.KindType)
	other := ir.NewTypeVar("a", ir.KindType)
	tensor := ir.TensorTypeOf(ir.Float32, 10)

	lookup := func(tv *ir.TypeVar) (ir.Type, bool) {
		if tv == a {
			return tensor, true
		}
		return nil, false
	}

	bound := ir.Bind(ir.NewTupleType([]ir.Type{a, other}), lookup)
	tuple := bound.(*ir.TupleType)
	assert.Same(t, tensor, tuple.Fields[0].(*ir.TensorType))
	assert.Same(t, other, tuple.Fields[1].(*ir.TypeVar))
}

func TestBindDropsSubstitutedParams(t *testing.T) {
	a := ir.NewTypeVar("a", ir.KindType)
	b := ir.NewTypeVar("b", ir.KindType)
	tensor := ir.TensorTypeOf(ir.Float32, 10)
	ft, err := ir.NewFuncType([]ir.Type{a, b}, a, []*ir.TypeVar{a, b}, nil)
	assert.NoError(t, err)

	lookup := func(tv *ir.TypeVar) (ir.Type, bool) {
		if tv == a {
			return tensor, true
		}
		return nil, false
	}

	bound := ir.Bind(ft, lookup).(*ir.FuncType)
	assert.Equal(t, []*ir.TypeVar{b}, bound.TypeParams)
	assert.Same(t, tensor, bound.ArgTypes[0].(*ir.TensorType))
	assert.Same(t, b, bound.ArgTypes[1].(*ir.TypeVar))
	assert.Same(t, tensor, bound.RetType.(*ir.TensorType))
}

func TestBindSharesUntouchedSubtrees(t *testing.T) {
	tensor := ir.TensorTypeOf(ir.Float32, 10)
	tuple := ir.NewTupleType([]ir.Type{tensor})
	bound := ir.Bind(tuple, func(*ir.TypeVar) (ir.Type, bool) { return nil, false })
	assert.Same(t, tuple, bound.(*ir.TupleType))
}
