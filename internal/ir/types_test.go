package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDirection(t *testing.T) {
	tests := []struct {
		input   string
		want    Direction
		wantErr bool
	}{
		{"L", Left, false},
		{"R", Right, false},
		{"S", Stay, false},
		{"l", 0, true},
		{"", 0, true},
		{"LR", 0, true},
		{"X", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseDirection(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStateIsTerminal(t *testing.T) {
	assert.True(t, StateAccept.IsTerminal())
	assert.True(t, StateReject.IsTerminal())
	assert.False(t, StateInit.IsTerminal())
	assert.False(t, State("scan").IsTerminal())
}

func TestTapeRoundTrip(t *testing.T) {
	tape := Tape("01ab")
	assert.Equal(t, []Symbol{'0', '1', 'a', 'b'}, tape)
	assert.Equal(t, "01ab", TapeString(tape))
	assert.Empty(t, Tape(""))
}

func TestTransitionString(t *testing.T) {
	tr := Transition{From: StateInit, Read: '0', To: StateAccept, Write: '1', Dir: Right}
	assert.Equal(t, "start 0 accept 1 R", tr.String())
	assert.Equal(t, Move{Write: '1', Dir: Right, To: StateAccept}, tr.Move())
}

func TestParseVerdict(t *testing.T) {
	v, err := ParseVerdict("YES")
	require.NoError(t, err)
	assert.Equal(t, VerdictYes, v)

	_, err = ParseVerdict("yes")
	assert.Error(t, err)
}
