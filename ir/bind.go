package ir

// Bind rewrites t, replacing every TypeVar for which lookup reports a
// binding. Variables are matched by identity. Bound-and-replaced type
// parameters are dropped from function types; untouched subtrees are
// shared, not copied.
func Bind(t Type, lookup func(*TypeVar) (Type, bool)) Type {
	switch t := t.(type) {
	case *TypeVar:
		if bound, ok := lookup(t); ok {
			return bound
		}
		return t
	case *TupleType:
		fields := make([]Type, len(t.Fields))
		changed := false
		for i, field := range t.Fields {
			fields[i] = Bind(field, lookup)
			changed = changed || fields[i] != field
		}
		if !changed {
			return t
		}
		return &TupleType{Fields: fields}
	case *FuncType:
		args := make([]Type, len(t.ArgTypes))
		changed := false
		for i, arg := range t.ArgTypes {
			args[i] = Bind(arg, lookup)
			changed = changed || args[i] != arg
		}
		ret := Bind(t.RetType, lookup)
		changed = changed || ret != t.RetType

		params := make([]*TypeVar, 0, len(t.TypeParams))
		for _, param := range t.TypeParams {
			if _, ok := lookup(param); ok {
				changed = true
				continue
			}
			params = append(params, param)
		}
		constraints := make([]TypeConstraint, len(t.TypeConstraints))
		for i, constraint := range t.TypeConstraints {
			bound := Bind(constraint, lookup)
			boundConstraint, ok := bound.(TypeConstraint)
			if !ok {
				// substitution cannot change a constraint's head shape
				boundConstraint = constraint
			}
			constraints[i] = boundConstraint
			changed = changed || boundConstraint != constraint
		}
		if !changed {
			return t
		}
		return &FuncType{ArgTypes: args, RetType: ret, TypeParams: params, TypeConstraints: constraints}
	case *TypeRelation:
		args := make([]Type, len(t.Args))
		changed := false
		for i, arg := range t.Args {
			args[i] = Bind(arg, lookup)
			changed = changed || args[i] != arg
		}
		if !changed {
			return t
		}
		return &TypeRelation{Name: t.Name, Func: t.Func, Args: args, NumInputs: t.NumInputs, Attrs: t.Attrs}
	default:
		return t
	}
}
