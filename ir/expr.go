package ir

import (
	"encoding/binary"
	"fmt"
	"hash/fnv"
	"strconv"
)

// IndexExpr is an integer expression appearing in tensor shapes.
// Only constant folding is ever attempted on these; symbolic reasoning is
// out of scope.
type IndexExpr interface {
	ExprName() string
	Hash() uint64
	String() string
}

var (
	_ IndexExpr = (*IntImm)(nil)
	_ IndexExpr = (*ShapeVar)(nil)
	_ IndexExpr = (*BinaryExpr)(nil)
)

// IntImm is an integer immediate.
type IntImm struct {
	Value int64
}

func NewIntImm(value int64) *IntImm { return &IntImm{Value: value} }

func (e *IntImm) ExprName() string { return "IntImm" }
func (e *IntImm) String() string   { return strconv.FormatInt(e.Value, 10) }

func (e *IntImm) Hash() uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte("IntImm"))
	arr := binary.LittleEndian.AppendUint64(nil, uint64(e.Value))
	_, _ = h.Write(arr)
	return h.Sum64()
}

// ShapeVar is a named symbolic dimension.
type ShapeVar struct {
	Name string
}

func NewShapeVar(name string) *ShapeVar { return &ShapeVar{Name: name} }

func (e *ShapeVar) ExprName() string { return "ShapeVar" }
func (e *ShapeVar) String() string   { return e.Name }

func (e *ShapeVar) Hash() uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte("ShapeVar"))
	_, _ = h.Write([]byte(e.Name))
	return h.Sum64()
}

type BinaryOp uint8

const (
	OpAdd BinaryOp = iota
	OpSub
	OpMul
	OpMax
)

func (op BinaryOp) String() string {
	switch op {
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	case OpMul:
		return "*"
	case OpMax:
		return "max"
	default:
		return "invalid"
	}
}

// BinaryExpr combines two index expressions.
type BinaryExpr struct {
	Op   BinaryOp
	A, B IndexExpr
}

func Add(a, b IndexExpr) IndexExpr { return &BinaryExpr{Op: OpAdd, A: a, B: b} }
func Sub(a, b IndexExpr) IndexExpr { return &BinaryExpr{Op: OpSub, A: a, B: b} }
func Mul(a, b IndexExpr) IndexExpr { return &BinaryExpr{Op: OpMul, A: a, B: b} }
func Max(a, b IndexExpr) IndexExpr { return &BinaryExpr{Op: OpMax, A: a, B: b} }

func (e *BinaryExpr) ExprName() string { return "BinaryExpr" }

func (e *BinaryExpr) String() string {
	if e.Op == OpMax {
		return fmt.Sprintf("max(%s, %s)", e.A, e.B)
	}
	return fmt.Sprintf("(%s %s %s)", e.A, e.Op, e.B)
}

func (e *BinaryExpr) Hash() uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte("BinaryExpr"))
	_, _ = h.Write([]byte{byte(e.Op)})
	arr := make([]byte, 0)
	arr = binary.LittleEndian.AppendUint64(arr, e.A.Hash())
	arr = binary.LittleEndian.AppendUint64(arr, e.B.Hash())
	_, _ = h.Write(arr)
	return h.Sum64()
}

// AsConstInt constant-folds e, reporting its value when e contains no free
// shape variables. Subtraction of structurally identical operands folds to
// zero even when symbolic.
func AsConstInt(e IndexExpr) (int64, bool) {
	switch e := e.(type) {
	case *IntImm:
		return e.Value, true
	case *BinaryExpr:
		if e.Op == OpSub && ExprEqual(e.A, e.B) {
			return 0, true
		}
		a, okA := AsConstInt(e.A)
		b, okB := AsConstInt(e.B)
		if !okA || !okB {
			return 0, false
		}
		switch e.Op {
		case OpAdd:
			return a + b, true
		case OpSub:
			return a - b, true
		case OpMul:
			return a * b, true
		case OpMax:
			return max(a, b), true
		}
	}
	return 0, false
}

// AsConstUint is AsConstInt restricted to non-negative results.
func AsConstUint(e IndexExpr) (uint64, bool) {
	v, ok := AsConstInt(e)
	if !ok || v < 0 {
		return 0, false
	}
	return uint64(v), true
}

// ExprEqual reports structural equality of two index expressions.
func ExprEqual(a, b IndexExpr) bool {
	switch a := a.(type) {
	case *IntImm:
		b, ok := b.(*IntImm)
		return ok && a.Value == b.Value
	case *ShapeVar:
		b, ok := b.(*ShapeVar)
		return ok && a.Name == b.Name
	case *BinaryExpr:
		b, ok := b.(*BinaryExpr)
		return ok && a.Op == b.Op && ExprEqual(a.A, b.A) && ExprEqual(a.B, b.B)
	default:
		return false
	}
}

// DimEqual reports whether two shape dimensions are known equal: both fold
// to the same constant, or they are structurally identical.
func DimEqual(a, b IndexExpr) bool {
	ca, okA := AsConstInt(a)
	cb, okB := AsConstInt(b)
	if okA && okB {
		return ca == cb
	}
	return ExprEqual(a, b)
}
