package machine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/roach88/ntm/internal/ir"
)

func TestInitial(t *testing.T) {
	input := ir.Tape("01")
	c := Initial(input)

	assert.Equal(t, ir.StateInit, c.State())
	assert.Equal(t, 0, c.Head())
	assert.Equal(t, input, c.Tape())

	input[0] = '1'
	assert.Equal(t, ir.Symbol('0'), c.Read(), "initial configuration must not alias the input")
}

func TestRead(t *testing.T) {
	assert.Equal(t, ir.Symbol('1'), At(ir.Tape("01"), 1, "q").Read())
	assert.Equal(t, ir.Blank, At(ir.Tape("01"), 5, "q").Read(), "past the end reads blank")
	assert.Equal(t, ir.Blank, Initial(nil).Read(), "empty tape reads blank")
}

func TestApply_WriteAndState(t *testing.T) {
	c := At(ir.Tape("010"), 1, ir.StateInit)
	next := c.Apply(ir.Move{Write: 'x', Dir: ir.Stay, To: "q1"})

	assert.Equal(t, "q1", string(next.State()))
	assert.Equal(t, ir.Tape("0x0"), next.Tape())
	assert.Equal(t, 1, next.Head())
}

func TestApply_LeftAtZeroStaysAtZero(t *testing.T) {
	c := At(ir.Tape("1"), 0, ir.StateInit)
	next := c.Apply(ir.Move{Write: '1', Dir: ir.Left, To: ir.StateInit})

	assert.Equal(t, 0, next.Head())
	assert.Equal(t, 1, next.Len(), "left move must not grow or wrap the tape")
}

func TestApply_Left(t *testing.T) {
	c := At(ir.Tape("010"), 2, ir.StateInit)
	next := c.Apply(ir.Move{Write: '1', Dir: ir.Left, To: ir.StateInit})

	assert.Equal(t, 1, next.Head())
	assert.Equal(t, ir.Tape("011"), next.Tape())
}

func TestApply_RightAtEndExtendsByOne(t *testing.T) {
	c := At(ir.Tape("01"), 1, ir.StateInit)
	next := c.Apply(ir.Move{Write: '1', Dir: ir.Right, To: ir.StateInit})

	assert.Equal(t, 2, next.Head())
	assert.Equal(t, 3, next.Len(), "exactly one blank cell is added")
	assert.Equal(t, ir.Tape("010"), next.Tape())
	assert.Equal(t, ir.Blank, next.Read())
}

func TestApply_RightInsideTapeDoesNotGrow(t *testing.T) {
	c := At(ir.Tape("011"), 0, ir.StateInit)
	next := c.Apply(ir.Move{Write: '1', Dir: ir.Right, To: ir.StateInit})

	assert.Equal(t, 1, next.Head())
	assert.Equal(t, 3, next.Len())
}

func TestApply_EmptyTapeMaterialises(t *testing.T) {
	c := Initial(nil)
	next := c.Apply(ir.Move{Write: ir.Blank, Dir: ir.Stay, To: ir.StateAccept})

	assert.Equal(t, []ir.Symbol{ir.Blank}, next.Tape())
	assert.Equal(t, 0, next.Head())
}

func TestApply_HeadPastEndMaterialisesGap(t *testing.T) {
	c := At(ir.Tape("1"), 3, "q")
	next := c.Apply(ir.Move{Write: 'x', Dir: ir.Stay, To: "q"})

	assert.Equal(t, ir.Tape("100x"), next.Tape())
}

func TestApply_NoAliasing(t *testing.T) {
	parent := At(ir.Tape("000"), 1, ir.StateInit)
	a := parent.Apply(ir.Move{Write: 'a', Dir: ir.Right, To: "x"})
	b := parent.Apply(ir.Move{Write: 'b', Dir: ir.Left, To: "y"})

	assert.Equal(t, ir.Tape("000"), parent.Tape(), "parent is unchanged")
	assert.Equal(t, ir.Tape("0a0"), a.Tape())
	assert.Equal(t, ir.Tape("0b0"), b.Tape())

	a2 := a.Apply(ir.Move{Write: 'z', Dir: ir.Stay, To: "x"})
	assert.Equal(t, ir.Tape("0a0"), a.Tape())
	assert.Equal(t, ir.Tape("0az"), a2.Tape())
	assert.Equal(t, ir.Tape("0b0"), b.Tape())
}

func TestKey_Equality(t *testing.T) {
	a := At(ir.Tape("01"), 1, "q")
	b := At(ir.Tape("01"), 1, "q")
	assert.True(t, a.Equal(b))
	assert.Equal(t, a.Key(), b.Key())

	tests := []struct {
		name  string
		other Configuration
	}{
		{"different head", At(ir.Tape("01"), 0, "q")},
		{"different state", At(ir.Tape("01"), 1, "r")},
		{"different tape", At(ir.Tape("00"), 1, "q")},
		{"trailing blank not normalised", At(ir.Tape("010"), 1, "q")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.False(t, a.Equal(tt.other))
			assert.NotEqual(t, a.Key(), tt.other.Key())
		})
	}
}

func TestAt_ClampsNegativeHead(t *testing.T) {
	assert.Equal(t, 0, At(ir.Tape("1"), -4, "q").Head())
}

func TestString(t *testing.T) {
	assert.Equal(t, "start:0[1]0", At(ir.Tape("010"), 1, ir.StateInit).String())
	assert.Equal(t, "q:1[0]", At(ir.Tape("1"), 1, "q").String())
	assert.Equal(t, "q:[0]", At(nil, 0, "q").String())
}
