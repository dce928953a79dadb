package harness

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/ntm/internal/engine"
	"github.com/roach88/ntm/internal/ir"
	"github.com/roach88/ntm/internal/testutil"
)

func mustParse(t *testing.T, src string) *Scenario {
	t.Helper()
	s, err := ParseScenario([]byte(src))
	require.NoError(t, err)
	return s
}

func TestRunPasses(t *testing.T) {
	s := mustParse(t, `
name: pass
transitions: ["start 0 accept 1 R"]
tape: ""
budget: 1
expect: {verdict: "YES", cause: accepted, steps: 1}
`)
	result, err := Run(s)
	require.NoError(t, err)

	assert.True(t, result.Pass, "errors: %v", result.Errors)
	assert.Equal(t, ir.VerdictYes, result.Run.Verdict)
	require.Len(t, result.Trace, 1)
	assert.Equal(t, 1, result.Trace[0].Accepting)
	assert.Len(t, result.MachineHash, 64)
}

func TestRunReportsEveryMismatch(t *testing.T) {
	s := mustParse(t, `
name: mismatch
transitions: ["start 0 accept 0 S"]
tape: "0"
budget: 5
expect: {verdict: "NO", cause: extinct, steps: 3}
`)
	result, err := Run(s)
	require.NoError(t, err)

	assert.False(t, result.Pass)
	require.Len(t, result.Errors, 3)
	assert.Contains(t, result.Errors[0], "verdict: expected NO, got YES")
	assert.Contains(t, result.Errors[1], "cause: expected extinct, got accepted")
	assert.Contains(t, result.Errors[2], "steps: expected 3, got 1")
}

func TestRunDedupDisabled(t *testing.T) {
	s := mustParse(t, `
name: loop
transitions: ["start 0 start 0 S"]
tape: ""
budget: 4
dedup: false
expect: {verdict: "NO", cause: budget_exhausted, steps: 4}
`)
	result, err := Run(s)
	require.NoError(t, err)

	assert.True(t, result.Pass, "errors: %v", result.Errors)
	assert.Equal(t, 0, result.Run.Distinct)
	assert.Equal(t, 0, result.Run.Pruned)
}

func TestRunCompareWithoutDedup(t *testing.T) {
	s := mustParse(t, `
name: loop
transitions: ["start 0 start 0 S"]
tape: ""
budget: 4
compare_without_dedup: true
expect: {verdict: "NO", cause: extinct}
`)
	result, err := Run(s)
	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)
	assert.Equal(t, engine.CauseExtinct, result.Run.Cause)
}

func TestRunZeroBudget(t *testing.T) {
	s := mustParse(t, `
name: zero
transitions: ["start 0 accept 0 S"]
tape: "0"
budget: 0
expect: {verdict: "NO", cause: budget_exhausted, steps: 0}
`)
	result, err := Run(s)
	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)
	assert.Empty(t, result.Trace)
}

func TestRunBadInlineTransitions(t *testing.T) {
	s := mustParse(t, `
name: broken
transitions: ["start 0 accept"]
budget: 1
expect: {verdict: "NO"}
`)
	_, err := Run(s)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "inline transitions")
	assert.Contains(t, err.Error(), "E201")
}

func TestRunMachineFile(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteMachine(t, dir, "flip.ntm", "start 1 accept 0 S")
	path := testutil.WriteFile(t, dir, "flip.yaml", `
name: flip
machine: flip.ntm
tape: "1"
budget: 1
expect: {verdict: "YES"}
`)

	s, err := LoadScenario(path)
	require.NoError(t, err)

	result, err := Run(s)
	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)
}
