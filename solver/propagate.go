package solver

import "github.com/tide-lang/tide/ir"

// propagate attaches rel to every type node reachable from t, so that
// learning anything about a nested component re-fires the relation.
func (s *Solver) propagate(rel *relationNode, t ir.Type) {
	s.attachRel(rel, t)
	switch t := t.(type) {
	case *ir.TupleType:
		for _, field := range t.Fields {
			s.propagate(rel, field)
		}
	case *ir.FuncType:
		s.propagate(rel, t.RetType)
		for _, arg := range t.ArgTypes {
			s.propagate(rel, arg)
		}
		for _, tv := range t.TypeParams {
			s.propagate(rel, tv)
		}
		for _, constraint := range t.TypeConstraints {
			s.propagate(rel, constraint)
		}
	}
}

func (s *Solver) attachRel(rel *relationNode, t ir.Type) {
	root := s.getTypeNode(t).findRoot()
	root.relList = append(root.relList, rel)
}
