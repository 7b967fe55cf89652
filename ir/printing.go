package ir

import (
	"fmt"
	"sort"
	"strings"

	"github.com/tide-lang/tide/util"
	"github.com/xtgo/set"
)

// TypeString renders t for diagnostics.
func TypeString(t Type) string {
	if t == nil {
		return "<nil>"
	}
	return t.String()
}

func (t *IncompleteType) String() string {
	if t.Kind == KindType {
		return fmt.Sprintf("?%d", t.id)
	}
	return fmt.Sprintf("?%d:%s", t.id, t.Kind)
}

func (t *TypeVar) String() string {
	if t.Kind == KindType {
		return t.Name
	}
	return fmt.Sprintf("%s:%s", t.Name, t.Kind)
}

func (t *PrimType) String() string { return string(t.DType) }

func (t *TensorType) String() string {
	return fmt.Sprintf("Tensor[(%s), %s]", util.JoinString(t.Shape, ", "), t.DType)
}

func (t *TupleType) String() string {
	return fmt.Sprintf("(%s)", util.JoinString(t.Fields, ", "))
}

func (t *FuncType) String() string {
	sb := strings.Builder{}
	sb.WriteString("fn ")
	if len(t.TypeParams) > 0 {
		sb.WriteString("<")
		sb.WriteString(util.JoinString(t.TypeParams, ", "))
		sb.WriteString(">")
	}
	sb.WriteString("(")
	sb.WriteString(util.JoinString(t.ArgTypes, ", "))
	sb.WriteString(") -> ")
	sb.WriteString(TypeString(t.RetType))
	if len(t.TypeConstraints) > 0 {
		sb.WriteString(" where ")
		sb.WriteString(util.JoinString(t.TypeConstraints, ", "))
	}
	return sb.String()
}

func (t *TypeRelation) String() string {
	return fmt.Sprintf("%s(%s)", t.Name, util.JoinString(t.Args, ", "))
}

// ShapeVarNames returns the sorted, deduplicated names of symbolic
// dimensions reachable from t. Useful when reporting why a relation could
// not be discharged by constant folding alone.
func ShapeVarNames(t Type) []string {
	var names []string
	collectShapeVarNames(t, &names)
	sort.Strings(names)
	n := set.Uniq(sort.StringSlice(names))
	return names[:n]
}

func collectShapeVarNames(t Type, names *[]string) {
	switch t := t.(type) {
	case *TensorType:
		for _, dim := range t.Shape {
			collectExprVarNames(dim, names)
		}
	case *TupleType:
		for _, field := range t.Fields {
			collectShapeVarNames(field, names)
		}
	case *FuncType:
		collectShapeVarNames(t.RetType, names)
		for _, arg := range t.ArgTypes {
			collectShapeVarNames(arg, names)
		}
		for _, constraint := range t.TypeConstraints {
			collectShapeVarNames(constraint, names)
		}
	case *TypeRelation:
		for _, arg := range t.Args {
			collectShapeVarNames(arg, names)
		}
	}
}

func collectExprVarNames(e IndexExpr, names *[]string) {
	switch e := e.(type) {
	case *ShapeVar:
		*names = append(*names, e.Name)
	case *BinaryExpr:
		collectExprVarNames(e.A, names)
		collectExprVarNames(e.B, names)
	}
}
