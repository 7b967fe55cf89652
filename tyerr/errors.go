package tyerr

import (
	"fmt"

	"github.com/tide-lang/tide/ir"
)

type NewUnifyMismatch struct {
	First  ir.Type
	Second ir.Type
	stack  []byte
}

func (e NewUnifyMismatch) Error() string {
	return fmt.Sprintf("unable to unify parent types: %s and %s", ir.TypeString(e.First), ir.TypeString(e.Second))
}
func (e NewUnifyMismatch) Code() ErrCode    { return UnifyMismatch }
func (e NewUnifyMismatch) getStack() []byte { return e.stack }
func (e NewUnifyMismatch) withStack(stack []byte) TypeError {
	e.stack = stack
	return e
}

type NewTupleArity struct {
	First  *ir.TupleType
	Second *ir.TupleType
	stack  []byte
}

func (e NewTupleArity) Error() string {
	return fmt.Sprintf("tuple arity mismatch: %s has %d fields but %s has %d",
		e.First, len(e.First.Fields), e.Second, len(e.Second.Fields))
}
func (e NewTupleArity) Code() ErrCode    { return TupleArity }
func (e NewTupleArity) getStack() []byte { return e.stack }
func (e NewTupleArity) withStack(stack []byte) TypeError {
	e.stack = stack
	return e
}

type NewConstraintLost struct {
	First  ir.Type
	Second ir.Type
	stack  []byte
}

func (e NewConstraintLost) Error() string {
	return fmt.Sprintf("two type constraints unified into a non-constraint: %s and %s",
		ir.TypeString(e.First), ir.TypeString(e.Second))
}
func (e NewConstraintLost) Code() ErrCode    { return ConstraintLost }
func (e NewConstraintLost) getStack() []byte { return e.stack }
func (e NewConstraintLost) withStack(stack []byte) TypeError {
	e.stack = stack
	return e
}

type NewOccursCheck struct {
	Hole  ir.Type
	In    ir.Type
	stack []byte
}

func (e NewOccursCheck) Error() string {
	return fmt.Sprintf("incomplete type %s occurs in %s, cannot unify",
		ir.TypeString(e.Hole), ir.TypeString(e.In))
}
func (e NewOccursCheck) Code() ErrCode    { return OccursCheck }
func (e NewOccursCheck) getStack() []byte { return e.stack }
func (e NewOccursCheck) withStack(stack []byte) TypeError {
	e.stack = stack
	return e
}

type NewUnknownConstraint struct {
	Constraint ir.TypeConstraint
	stack      []byte
}

func (e NewUnknownConstraint) Error() string {
	return fmt.Sprintf("do not know how to handle constraint type %s", e.Constraint.TypeName())
}
func (e NewUnknownConstraint) Code() ErrCode    { return UnknownConstraint }
func (e NewUnknownConstraint) getStack() []byte { return e.stack }
func (e NewUnknownConstraint) withStack(stack []byte) TypeError {
	e.stack = stack
	return e
}
