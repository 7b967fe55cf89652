package solver

import "github.com/tide-lang/tide/ir"

// checkOccurs reports whether hole's equivalence class is reachable inside
// t. Unifying in that case would build an infinite type.
func (u *unifier) checkOccurs(hole *typeNode, t ir.Type) bool {
	switch t := t.(type) {
	case *ir.IncompleteType:
		return u.solver.getTypeNode(t).findRoot() == hole.findRoot()
	case *ir.TupleType:
		for _, field := range t.Fields {
			if u.checkOccurs(hole, field) {
				return true
			}
		}
		return false
	case *ir.FuncType:
		if u.checkOccurs(hole, t.RetType) {
			return true
		}
		for _, arg := range t.ArgTypes {
			if u.checkOccurs(hole, arg) {
				return true
			}
		}
		for _, tv := range t.TypeParams {
			if u.checkOccurs(hole, tv) {
				return true
			}
		}
		for _, constraint := range t.TypeConstraints {
			if u.checkOccurs(hole, constraint) {
				return true
			}
		}
		return false
	case *ir.TypeRelation:
		for _, arg := range t.Args {
			if u.checkOccurs(hole, arg) {
				return true
			}
		}
		return false
	default:
		return false
	}
}
