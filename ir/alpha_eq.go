package ir

import (
	"github.com/tide-lang/tide/util"
)

// AlphaEqual reports structural equality of two types up to renaming of
// bound type parameters. Incomplete types compare by identity: two distinct
// holes are never alpha-equal.
func AlphaEqual(a, b Type) bool {
	eq := alphaEq{fwd: map[*TypeVar]*TypeVar{}, bwd: map[*TypeVar]*TypeVar{}}
	return eq.types(a, b)
}

type alphaEq struct {
	// fwd/bwd pair bound type params of the left side with the right side
	fwd map[*TypeVar]*TypeVar
	bwd map[*TypeVar]*TypeVar
}

func (eq *alphaEq) types(a, b Type) bool {
	if a == nil || b == nil {
		return a == b
	}
	switch a := a.(type) {
	case *IncompleteType:
		return Type(a) == b
	case *TypeVar:
		bVar, ok := b.(*TypeVar)
		if !ok {
			return false
		}
		if paired, bound := eq.fwd[a]; bound {
			return paired == bVar
		}
		if _, bound := eq.bwd[bVar]; bound {
			// bVar is bound on the right but a is free on the left
			return false
		}
		return a.Name == bVar.Name && a.Kind == bVar.Kind
	case *PrimType:
		bPrim, ok := b.(*PrimType)
		return ok && a.DType == bPrim.DType
	case *TensorType:
		bTensor, ok := b.(*TensorType)
		if !ok || a.DType != bTensor.DType || len(a.Shape) != len(bTensor.Shape) {
			return false
		}
		// identical structure short-circuits; otherwise fold dims
		if util.SlicesEquivalent[uint64](a.Shape, bTensor.Shape) {
			return true
		}
		for i := range a.Shape {
			if !DimEqual(a.Shape[i], bTensor.Shape[i]) {
				return false
			}
		}
		return true
	case *TupleType:
		bTuple, ok := b.(*TupleType)
		if !ok || len(a.Fields) != len(bTuple.Fields) {
			return false
		}
		for i := range a.Fields {
			if !eq.types(a.Fields[i], bTuple.Fields[i]) {
				return false
			}
		}
		return true
	case *FuncType:
		bFunc, ok := b.(*FuncType)
		if !ok ||
			len(a.ArgTypes) != len(bFunc.ArgTypes) ||
			len(a.TypeParams) != len(bFunc.TypeParams) ||
			len(a.TypeConstraints) != len(bFunc.TypeConstraints) {
			return false
		}
		prevFwd := make([]util.Pair[*TypeVar, bool], len(a.TypeParams))
		prevBwd := make([]util.Pair[*TypeVar, bool], len(a.TypeParams))
		for i, param := range a.TypeParams {
			prev, had := eq.fwd[param]
			prevFwd[i] = util.NewPair(prev, had)
			prev, had = eq.bwd[bFunc.TypeParams[i]]
			prevBwd[i] = util.NewPair(prev, had)
			eq.fwd[param] = bFunc.TypeParams[i]
			eq.bwd[bFunc.TypeParams[i]] = param
		}
		defer func() {
			for i, param := range a.TypeParams {
				if prevFwd[i].Snd {
					eq.fwd[param] = prevFwd[i].Fst
				} else {
					delete(eq.fwd, param)
				}
				if prevBwd[i].Snd {
					eq.bwd[bFunc.TypeParams[i]] = prevBwd[i].Fst
				} else {
					delete(eq.bwd, bFunc.TypeParams[i])
				}
			}
		}()
		if !eq.types(a.RetType, bFunc.RetType) {
			return false
		}
		for i := range a.ArgTypes {
			if !eq.types(a.ArgTypes[i], bFunc.ArgTypes[i]) {
				return false
			}
		}
		for i := range a.TypeConstraints {
			if !eq.types(a.TypeConstraints[i], bFunc.TypeConstraints[i]) {
				return false
			}
		}
		return true
	case *TypeRelation:
		bRel, ok := b.(*TypeRelation)
		if !ok || a.Name != bRel.Name || a.NumInputs != bRel.NumInputs || len(a.Args) != len(bRel.Args) {
			return false
		}
		for i := range a.Args {
			if !eq.types(a.Args[i], bRel.Args[i]) {
				return false
			}
		}
		return true
	default:
		return false
	}
}
