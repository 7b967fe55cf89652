package solver

import "github.com/tide-lang/tide/ir"

// Resolve rewrites t under the solver's current knowledge: every hole with
// a known class representative is replaced by that representative, one step
// deep. Unknown holes stay as they are.
func (s *Solver) Resolve(t ir.Type) ir.Type {
	if t == nil {
		return nil
	}
	if node, ok := s.tmap[t]; ok {
		t = node.findRoot().resolvedType
	}
	return s.resolveStep(t)
}

func (s *Solver) resolveStep(t ir.Type) ir.Type {
	switch t := t.(type) {
	case *ir.IncompleteType:
		return s.getTypeNode(t).findRoot().resolvedType
	case *ir.TupleType:
		fields := make([]ir.Type, 0, len(t.Fields))
		changed := false
		for _, field := range t.Fields {
			resolved := s.resolveStep(field)
			changed = changed || resolved != field
			fields = append(fields, resolved)
		}
		if !changed {
			return t
		}
		return &ir.TupleType{Fields: fields}
	case *ir.FuncType:
		retType := s.resolveStep(t.RetType)
		changed := retType != t.RetType
		argTypes := make([]ir.Type, 0, len(t.ArgTypes))
		for _, arg := range t.ArgTypes {
			resolved := s.resolveStep(arg)
			changed = changed || resolved != arg
			argTypes = append(argTypes, resolved)
		}
		constraints := make([]ir.TypeConstraint, 0, len(t.TypeConstraints))
		for _, constraint := range t.TypeConstraints {
			resolved := s.resolveStep(constraint)
			if c, ok := resolved.(ir.TypeConstraint); ok {
				changed = changed || resolved != ir.Type(constraint)
				constraints = append(constraints, c)
				continue
			}
			constraints = append(constraints, constraint)
		}
		if !changed {
			return t
		}
		return &ir.FuncType{
			TypeParams:      t.TypeParams,
			ArgTypes:        argTypes,
			RetType:         retType,
			TypeConstraints: constraints,
		}
	case *ir.TypeRelation:
		args := make([]ir.Type, 0, len(t.Args))
		changed := false
		for _, arg := range t.Args {
			resolved := s.resolveStep(arg)
			changed = changed || resolved != arg
			args = append(args, resolved)
		}
		if !changed {
			return t
		}
		return &ir.TypeRelation{
			Name:      t.Name,
			Args:      args,
			NumInputs: t.NumInputs,
			Attrs:     t.Attrs,
			Func:      t.Func,
		}
	default:
		return t
	}
}
