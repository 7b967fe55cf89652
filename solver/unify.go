package solver

import (
	"github.com/benbjohnson/immutable"

	"github.com/tide-lang/tide/ir"
	"github.com/tide-lang/tide/tyerr"
)

// unifier performs structural unification of two types, merging their
// union-find classes as it learns equalities. TypeVars are instantiated to
// fresh holes, memoized for the lifetime of the solver so the same TypeVar
// object always maps to the same hole.
type unifier struct {
	solver *Solver
	tvMap  *immutable.Map[*ir.TypeVar, ir.Type]
}

// typeVarHasher hashes TypeVars by identity so that distinct variables with
// equal names stay distinct in the memo map.
type typeVarHasher struct{}

func (typeVarHasher) Hash(tv *ir.TypeVar) uint32 { return uint32(tv.Hash()) }
func (typeVarHasher) Equal(a, b *ir.TypeVar) bool { return a == b }

func newUnifier(s *Solver) *unifier {
	return &unifier{
		solver: s,
		tvMap:  immutable.NewMap[*ir.TypeVar, ir.Type](typeVarHasher{}),
	}
}

// unify merges src into dst and returns the type representing both.
func (u *unifier) unify(src, dst ir.Type) (ir.Type, error) {
	src = u.instantiateTypeVar(src)
	dst = u.instantiateTypeVar(dst)

	srcRoot := u.solver.getTypeNode(src).findRoot()
	dstRoot := u.solver.getTypeNode(dst).findRoot()
	if srcRoot == dstRoot {
		return srcRoot.resolvedType, nil
	}

	srcType, dstType := srcRoot.resolvedType, dstRoot.resolvedType

	if hole, ok := srcType.(*ir.IncompleteType); ok {
		if _, alsoHole := dstType.(*ir.IncompleteType); !alsoHole {
			if u.checkOccurs(srcRoot, dstType) {
				return nil, tyerr.New(tyerr.NewOccursCheck{Hole: hole, In: dstType})
			}
		}
		u.solver.mergeFromTo(srcRoot, dstRoot)
		return dstType, nil
	}
	if hole, ok := dstType.(*ir.IncompleteType); ok {
		if u.checkOccurs(dstRoot, srcType) {
			return nil, tyerr.New(tyerr.NewOccursCheck{Hole: hole, In: srcType})
		}
		u.solver.mergeFromTo(dstRoot, srcRoot)
		return srcType, nil
	}

	resolved, err := u.visit(srcType, dstType)
	if err != nil {
		return nil, err
	}
	if resolved == nil {
		return nil, tyerr.New(tyerr.NewUnifyMismatch{First: srcType, Second: dstType})
	}

	u.solver.logger.Debug("unified", "src", srcType, "dst", dstType, "into", resolved)

	resolvedNode := u.solver.getTypeNode(resolved)
	u.solver.mergeFromTo(srcRoot, resolvedNode)
	u.solver.mergeFromTo(dstRoot, resolvedNode)
	return resolved, nil
}

// visit unifies two resolved (non-hole) types structurally. A nil result
// with a nil error means the shapes are incompatible.
func (u *unifier) visit(t1, t2 ir.Type) (ir.Type, error) {
	switch t1 := t1.(type) {
	case *ir.TupleType:
		t2, ok := t2.(*ir.TupleType)
		if !ok {
			return nil, nil
		}
		if len(t1.Fields) != len(t2.Fields) {
			return nil, tyerr.New(tyerr.NewTupleArity{First: t1, Second: t2})
		}
		fields := make([]ir.Type, 0, len(t1.Fields))
		for i, field := range t1.Fields {
			unified, err := u.unify(field, t2.Fields[i])
			if err != nil {
				return nil, err
			}
			fields = append(fields, unified)
		}
		return &ir.TupleType{Fields: fields}, nil

	case *ir.FuncType:
		t2, ok := t2.(*ir.FuncType)
		if !ok {
			return nil, nil
		}
		if len(t1.ArgTypes) != len(t2.ArgTypes) ||
			len(t1.TypeConstraints) != len(t2.TypeConstraints) {
			return nil, nil
		}
		f1 := u.instantiateFuncType(t1)
		f2 := u.instantiateFuncType(t2)

		retType, err := u.unify(f1.RetType, f2.RetType)
		if err != nil {
			return nil, err
		}
		argTypes := make([]ir.Type, 0, len(f1.ArgTypes))
		for i, arg := range f1.ArgTypes {
			unified, err := u.unify(arg, f2.ArgTypes[i])
			if err != nil {
				return nil, err
			}
			argTypes = append(argTypes, unified)
		}
		constraints := make([]ir.TypeConstraint, 0, len(f1.TypeConstraints))
		for i, c1 := range f1.TypeConstraints {
			unified, err := u.unify(c1, f2.TypeConstraints[i])
			if err != nil {
				return nil, err
			}
			constraint, ok := unified.(ir.TypeConstraint)
			if !ok {
				return nil, tyerr.New(tyerr.NewConstraintLost{First: c1, Second: f2.TypeConstraints[i]})
			}
			constraints = append(constraints, constraint)
		}
		return &ir.FuncType{
			ArgTypes:        argTypes,
			RetType:         retType,
			TypeConstraints: constraints,
		}, nil

	default:
		if ir.AlphaEqual(t1, t2) {
			return t1, nil
		}
		return nil, nil
	}
}

// instantiateTypeVar maps a TypeVar to its hole, minting one on first
// sight. Non-variable types pass through.
func (u *unifier) instantiateTypeVar(t ir.Type) ir.Type {
	tv, ok := t.(*ir.TypeVar)
	if !ok {
		return t
	}
	if hole, ok := u.tvMap.Get(tv); ok {
		return hole
	}
	hole := ir.NewIncompleteType(tv.Kind)
	u.tvMap = u.tvMap.Set(tv, hole)
	u.solver.logger.Debug("instantiated type var", "var", ir.Type(tv), "hole", ir.Type(hole))
	return hole
}

// instantiateFuncType rewrites f's bound type parameters to their holes,
// yielding a monomorphic view suitable for pointwise unification.
func (u *unifier) instantiateFuncType(f *ir.FuncType) *ir.FuncType {
	if len(f.TypeParams) == 0 {
		return f
	}
	for _, tv := range f.TypeParams {
		u.instantiateTypeVar(tv)
	}
	bound := ir.Bind(f, func(tv *ir.TypeVar) (ir.Type, bool) {
		return u.tvMap.Get(tv)
	})
	return bound.(*ir.FuncType)
}
