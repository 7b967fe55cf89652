package ir

import (
	"encoding/binary"
	"hash/fnv"
	"sync/atomic"

	set "github.com/hashicorp/go-set/v3"
	"github.com/pkg/errors"
)

// Kind classifies what a type-level hole or variable may stand for.
type Kind uint8

const (
	// KindType is an ordinary type
	KindType Kind = iota
	// KindShapeVar is a variable standing for a single shape dimension
	KindShapeVar
	// KindBaseType is a variable standing for a scalar element type
	KindBaseType
	// KindShape is a whole shape tuple
	KindShape
)

func (k Kind) String() string {
	switch k {
	case KindType:
		return "Type"
	case KindShapeVar:
		return "ShapeVar"
	case KindBaseType:
		return "BaseType"
	case KindShape:
		return "Shape"
	default:
		return "invalid"
	}
}

// DataType is the scalar element type of a tensor, like "float32".
type DataType string

const (
	Bool    DataType = "bool"
	Int32   DataType = "int32"
	Int64   DataType = "int64"
	Float32 DataType = "float32"
	Float64 DataType = "float64"
)

// Type is any shape the solver can observe.
//
// Composite types are always handled through pointers: the solver interns
// per-object, so two structurally equal values are still distinct holes of
// knowledge until unified.
type Type interface {
	TypeName() string
	Hash() uint64
	String() string
}

// TypeConstraint is a Type that may appear in a FuncType's constraint list
// and be registered with a solver.
type TypeConstraint interface {
	Type
	isTypeConstraint()
}

var (
	_ Type = (*IncompleteType)(nil)
	_ Type = (*TypeVar)(nil)
	_ Type = (*PrimType)(nil)
	_ Type = (*TensorType)(nil)
	_ Type = (*TupleType)(nil)
	_ Type = (*FuncType)(nil)

	_ TypeConstraint = (*TypeRelation)(nil)
)

var incompleteCounter atomic.Uint64

// IncompleteType is an unresolved hole: the unification variable.
// Identity, not structure, distinguishes two holes.
type IncompleteType struct {
	Kind Kind
	id   uint64
}

func NewIncompleteType(kind Kind) *IncompleteType {
	return &IncompleteType{Kind: kind, id: incompleteCounter.Add(1)}
}

func (t *IncompleteType) TypeName() string { return "IncompleteType" }

func (t *IncompleteType) Hash() uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte("IncompleteType"))
	arr := make([]byte, 0)
	arr = binary.LittleEndian.AppendUint64(arr, t.id)
	_, _ = h.Write(arr)
	return h.Sum64()
}

// TypeVar is a bound polymorphic variable. The unifier instantiates it to a
// fresh IncompleteType the first time it is seen.
type TypeVar struct {
	Name string
	Kind Kind
}

func NewTypeVar(name string, kind Kind) *TypeVar {
	return &TypeVar{Name: name, Kind: kind}
}

func (t *TypeVar) TypeName() string { return "TypeVar" }

func (t *TypeVar) Hash() uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte("TypeVar"))
	_, _ = h.Write([]byte(t.Name))
	_, _ = h.Write([]byte{byte(t.Kind)})
	return h.Sum64()
}

// PrimType is a scalar leaf type. Opaque to the solver.
type PrimType struct {
	DType DataType
}

func NewPrimType(dtype DataType) *PrimType { return &PrimType{DType: dtype} }

func (t *PrimType) TypeName() string { return "PrimType" }

func (t *PrimType) Hash() uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte("PrimType"))
	_, _ = h.Write([]byte(t.DType))
	return h.Sum64()
}

// TensorType is a tensor with a (possibly symbolic) shape. Opaque to the
// solver, which only ever compares it for alpha-equality.
type TensorType struct {
	Shape []IndexExpr
	DType DataType
}

func NewTensorType(shape []IndexExpr, dtype DataType) *TensorType {
	return &TensorType{Shape: shape, DType: dtype}
}

// TensorTypeOf builds a TensorType from constant dimensions.
func TensorTypeOf(dtype DataType, dims ...int64) *TensorType {
	shape := make([]IndexExpr, len(dims))
	for i, d := range dims {
		shape[i] = NewIntImm(d)
	}
	return &TensorType{Shape: shape, DType: dtype}
}

func (t *TensorType) TypeName() string { return "TensorType" }

func (t *TensorType) Hash() uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte("TensorType"))
	_, _ = h.Write([]byte(t.DType))
	arr := make([]byte, 0)
	for _, dim := range t.Shape {
		arr = binary.LittleEndian.AppendUint64(arr, dim.Hash())
	}
	_, _ = h.Write(arr)
	return h.Sum64()
}

// TupleType is an ordered product of types.
type TupleType struct {
	Fields []Type
}

func NewTupleType(fields []Type) *TupleType { return &TupleType{Fields: fields} }

func (t *TupleType) TypeName() string { return "TupleType" }

func (t *TupleType) Hash() uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte("TupleType"))
	arr := make([]byte, 0)
	for _, field := range t.Fields {
		arr = binary.LittleEndian.AppendUint64(arr, field.Hash())
	}
	_, _ = h.Write(arr)
	return h.Sum64()
}

// FuncType is a function type, possibly quantified over TypeParams.
type FuncType struct {
	ArgTypes        []Type
	RetType         Type
	TypeParams      []*TypeVar
	TypeConstraints []TypeConstraint
}

// NewFuncType builds a FuncType, rejecting duplicate type parameters.
func NewFuncType(argTypes []Type, retType Type, typeParams []*TypeVar, typeConstraints []TypeConstraint) (*FuncType, error) {
	seen := set.NewHashSet[*TypeVar, uint64](len(typeParams))
	for _, param := range typeParams {
		if !seen.Insert(param) {
			return nil, errors.Errorf("duplicate type parameter %s in function type", param.Name)
		}
	}
	return &FuncType{
		ArgTypes:        argTypes,
		RetType:         retType,
		TypeParams:      typeParams,
		TypeConstraints: typeConstraints,
	}, nil
}

func (t *FuncType) TypeName() string { return "FuncType" }

func (t *FuncType) Hash() uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte("FuncType"))
	arr := make([]byte, 0)
	for _, arg := range t.ArgTypes {
		arr = binary.LittleEndian.AppendUint64(arr, arg.Hash())
	}
	arr = binary.LittleEndian.AppendUint64(arr, t.RetType.Hash())
	for _, param := range t.TypeParams {
		arr = binary.LittleEndian.AppendUint64(arr, param.Hash())
	}
	for _, constraint := range t.TypeConstraints {
		arr = binary.LittleEndian.AppendUint64(arr, constraint.Hash())
	}
	_, _ = h.Write(arr)
	return h.Sum64()
}

// Reporter is the callback surface handed to a firing relation function.
// Assign routes an equality back into the solver; the Assert variants
// constant-fold their conditions and treat anything symbolic as
// not-yet-falsifiable.
type Reporter interface {
	Assign(dst, src Type) error
	Assert(cond IndexExpr) bool
	AssertEQ(lhs, rhs IndexExpr) bool
}

// RelationFunc is a user-supplied predicate over a relation's argument
// types. It reports whether it has extracted all information it can from
// the current state; an error aborts solving.
type RelationFunc func(args []Type, numInputs int, attrs any, reporter Reporter) (bool, error)

// TypeRelation is a constraint relating Args through Func. Args[:NumInputs]
// are input-side by convention; the solver does not interpret the split.
type TypeRelation struct {
	Name      string
	Func      RelationFunc
	Args      []Type
	NumInputs int
	Attrs     any
}

func NewTypeRelation(name string, fn RelationFunc, args []Type, numInputs int, attrs any) *TypeRelation {
	return &TypeRelation{Name: name, Func: fn, Args: args, NumInputs: numInputs, Attrs: attrs}
}

func (t *TypeRelation) TypeName() string { return "TypeRelation" }
func (*TypeRelation) isTypeConstraint()  {}

func (t *TypeRelation) Hash() uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte("TypeRelation"))
	_, _ = h.Write([]byte(t.Name))
	arr := make([]byte, 0)
	arr = binary.LittleEndian.AppendUint64(arr, uint64(t.NumInputs))
	for _, arg := range t.Args {
		arr = binary.LittleEndian.AppendUint64(arr, arg.Hash())
	}
	_, _ = h.Write(arr)
	return h.Sum64()
}
