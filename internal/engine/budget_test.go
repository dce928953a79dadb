package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestStepBudget_WithinLimit tests normal operation within the budget.
func TestStepBudget_WithinLimit(t *testing.T) {
	b := NewStepBudget(3)

	for i := 0; i < 3; i++ {
		assert.True(t, b.Take(), "round %d should be allowed", i+1)
	}

	assert.Equal(t, 3, b.Used())
	assert.Equal(t, 3, b.Limit())
	assert.Equal(t, 0, b.Remaining())
	assert.True(t, b.Exhausted())
}

// TestStepBudget_ExhaustedStaysExhausted tests that Take does not overcount.
func TestStepBudget_ExhaustedStaysExhausted(t *testing.T) {
	b := NewStepBudget(1)

	assert.True(t, b.Take())
	assert.False(t, b.Take())
	assert.False(t, b.Take())
	assert.Equal(t, 1, b.Used())
}

// TestStepBudget_ZeroAndNegative tests that no rounds are allowed.
func TestStepBudget_ZeroAndNegative(t *testing.T) {
	for _, limit := range []int{0, -1, -100} {
		b := NewStepBudget(limit)
		assert.False(t, b.Take())
		assert.Equal(t, 0, b.Limit())
		assert.True(t, b.Exhausted())
	}
}
