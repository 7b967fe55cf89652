package solver

import "github.com/tide-lang/tide/ir"

// reporter is the callback surface handed to relation functions. Reported
// equalities flow straight back into the solver's union-find.
type reporter struct {
	solver *Solver
}

var _ ir.Reporter = (*reporter)(nil)

func (r *reporter) Assign(dst, src ir.Type) error {
	_, err := r.solver.Unify(dst, src)
	return err
}

// Assert reports whether cond holds. A condition that does not fold to a
// constant is taken to hold; relations re-check once more is known.
func (r *reporter) Assert(cond ir.IndexExpr) bool {
	if v, ok := ir.AsConstUint(cond); ok {
		return v != 0
	}
	return true
}

// AssertEQ reports whether lhs equals rhs, deciding via the constant fold
// of their difference.
func (r *reporter) AssertEQ(lhs, rhs ir.IndexExpr) bool {
	if v, ok := ir.AsConstInt(ir.Sub(lhs, rhs)); ok {
		return v == 0
	}
	return true
}
