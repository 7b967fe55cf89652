package tyerr_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tide-lang/tide/ir"
	"github.com/tide-lang/tide/tyerr"
)

func TestFormatWithCode(t *testing.T) {
	err := tyerr.New(tyerr.NewUnifyMismatch{
		First:  ir.TensorTypeOf(ir.Float32, 10),
		Second: ir.NewTupleType(nil),
	})
	assert.Equal(t, tyerr.UnifyMismatch, err.Code())
	assert.Contains(t, tyerr.FormatWithCode(err), "(E001)")
	assert.Contains(t, err.Error(), "unable to unify")
}

func TestOccursCheckMessageNamesBothSides(t *testing.T) {
	hole := ir.NewIncompleteType(ir.KindType)
	in := ir.NewTupleType([]ir.Type{hole})
	err := tyerr.New(tyerr.NewOccursCheck{Hole: hole, In: in})
	assert.Equal(t, tyerr.OccursCheck, err.Code())
	assert.Contains(t, err.Error(), hole.String())
	assert.Contains(t, err.Error(), in.String())
}
