// Package relations provides ready-made type relations for registering
// with a solver: identity propagation and elementwise broadcasting over
// tensor shapes.
package relations

import (
	"github.com/pkg/errors"

	"github.com/tide-lang/tide/ir"
)

// Identity builds a relation asserting that all its arguments are the same
// type. With one known argument, the rest resolve to it in either
// direction.
func Identity(args ...ir.Type) *ir.TypeRelation {
	return &ir.TypeRelation{
		Name:      "Identity",
		Args:      args,
		NumInputs: len(args) - 1,
		Func:      identityRel,
	}
}

func identityRel(args []ir.Type, _ int, _ any, reporter ir.Reporter) (bool, error) {
	for _, arg := range args[1:] {
		if err := reporter.Assign(arg, args[0]); err != nil {
			return false, err
		}
	}
	return true, nil
}

// Broadcast builds a relation computing out as the elementwise broadcast
// of the tensor types lhs and rhs. It stays pending until both inputs are
// known tensors.
func Broadcast(lhs, rhs, out ir.Type) *ir.TypeRelation {
	return &ir.TypeRelation{
		Name:      "Broadcast",
		Args:      []ir.Type{lhs, rhs, out},
		NumInputs: 2,
		Func:      broadcastRel,
	}
}

func broadcastRel(args []ir.Type, numInputs int, _ any, reporter ir.Reporter) (bool, error) {
	lhs, lhsKnown := args[0].(*ir.TensorType)
	rhs, rhsKnown := args[1].(*ir.TensorType)
	if !lhsKnown || !rhsKnown {
		return false, nil
	}
	if lhs.DType != rhs.DType {
		return false, errors.Errorf("broadcast over mismatched dtypes %s and %s", lhs.DType, rhs.DType)
	}
	shape, err := broadcastShapes(lhs.Shape, rhs.Shape, reporter)
	if err != nil {
		return false, err
	}
	out := &ir.TensorType{Shape: shape, DType: lhs.DType}
	if err := reporter.Assign(args[numInputs], out); err != nil {
		return false, err
	}
	return true, nil
}

// broadcastShapes aligns two shapes at their trailing dimensions and
// merges them pairwise. Missing leading dimensions behave as 1.
func broadcastShapes(a, b []ir.IndexExpr, reporter ir.Reporter) ([]ir.IndexExpr, error) {
	if len(b) > len(a) {
		a, b = b, a
	}
	out := make([]ir.IndexExpr, len(a))
	offset := len(a) - len(b)
	copy(out, a[:offset])
	for i, bdim := range b {
		merged, err := broadcastDim(a[offset+i], bdim, reporter)
		if err != nil {
			return nil, err
		}
		out[offset+i] = merged
	}
	return out, nil
}

func broadcastDim(a, b ir.IndexExpr, reporter ir.Reporter) (ir.IndexExpr, error) {
	if v, ok := ir.AsConstUint(a); ok && v == 1 {
		return b, nil
	}
	if v, ok := ir.AsConstUint(b); ok && v == 1 {
		return a, nil
	}
	if ir.DimEqual(a, b) {
		return a, nil
	}
	av, aConst := ir.AsConstInt(a)
	bv, bConst := ir.AsConstInt(b)
	if aConst && bConst {
		return nil, errors.Errorf("cannot broadcast dimension %d against %d", av, bv)
	}
	if !reporter.AssertEQ(a, b) {
		return nil, errors.Errorf("cannot broadcast dimension %s against %s", a, b)
	}
	return ir.Max(a, b), nil
}
