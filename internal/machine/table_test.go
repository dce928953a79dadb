package machine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/ntm/internal/ir"
)

func tr(from ir.State, read ir.Symbol, to ir.State, write ir.Symbol, dir ir.Direction) ir.Transition {
	return ir.Transition{From: from, Read: read, To: to, Write: write, Dir: dir}
}

func TestTable_LookupAccumulatesInOrder(t *testing.T) {
	table := NewTable([]ir.Transition{
		tr(ir.StateInit, '0', ir.StateAccept, '0', ir.Stay),
		tr(ir.StateInit, '1', "scan", '1', ir.Right),
		tr(ir.StateInit, '0', ir.StateReject, '1', ir.Left),
	})

	moves := table.Lookup(ir.StateInit, '0')
	require.Len(t, moves, 2)
	assert.Equal(t, ir.Move{Write: '0', Dir: ir.Stay, To: ir.StateAccept}, moves[0])
	assert.Equal(t, ir.Move{Write: '1', Dir: ir.Left, To: ir.StateReject}, moves[1])

	assert.Len(t, table.Lookup(ir.StateInit, '1'), 1)
	assert.Equal(t, 3, table.Len())
}

func TestTable_LookupMissingIsEmpty(t *testing.T) {
	table := NewTable(nil)
	assert.Empty(t, table.Lookup(ir.StateInit, ir.Blank))

	table = NewTable([]ir.Transition{tr(ir.StateInit, '1', ir.StateAccept, '1', ir.Stay)})
	assert.Empty(t, table.Lookup(ir.StateInit, '0'))
	assert.Empty(t, table.Lookup("other", '1'))
}

func TestTable_ExactDuplicatesAreKept(t *testing.T) {
	dup := tr(ir.StateInit, '0', "a", '0', ir.Right)
	table := NewTable([]ir.Transition{dup, dup})

	assert.Len(t, table.Lookup(ir.StateInit, '0'), 2)
}

func TestTable_Immutable(t *testing.T) {
	source := []ir.Transition{tr(ir.StateInit, '0', ir.StateAccept, '0', ir.Stay)}
	table := NewTable(source)

	source[0].To = ir.StateReject
	moves := table.Lookup(ir.StateInit, '0')
	require.Len(t, moves, 1)
	assert.Equal(t, ir.StateAccept, moves[0].To, "mutating the input must not change the table")

	moves[0].To = ir.StateReject
	assert.Equal(t, ir.StateAccept, table.Lookup(ir.StateInit, '0')[0].To, "mutating a lookup result must not change the table")

	ts := table.Transitions()
	ts[0].Write = '1'
	assert.Equal(t, ir.Symbol('0'), table.Transitions()[0].Write)
}

func TestTable_StatesAndAlphabet(t *testing.T) {
	table := NewTable([]ir.Transition{
		tr(ir.StateInit, '1', "scan", 'x', ir.Right),
		tr("scan", '0', ir.StateAccept, '0', ir.Stay),
		tr("scan", '1', "scan", '1', ir.Right),
	})

	assert.Equal(t, []ir.State{"accept", "scan", "start"}, table.States())
	assert.Equal(t, []ir.Symbol{'0', '1', 'x'}, table.Alphabet())
}

func TestTable_Hash(t *testing.T) {
	ts := []ir.Transition{tr(ir.StateInit, '0', ir.StateAccept, '0', ir.Stay)}

	h, err := NewTable(ts).Hash()
	require.NoError(t, err)
	assert.Equal(t, ir.MustMachineHash(ts), h)
}

func TestTable_NilSafe(t *testing.T) {
	var table *Table
	assert.Empty(t, table.Lookup(ir.StateInit, '0'))
	assert.Equal(t, 0, table.Len())
	assert.Empty(t, table.States())
}
