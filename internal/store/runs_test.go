package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/ntm/internal/engine"
	"github.com/roach88/ntm/internal/ir"
	"github.com/roach88/ntm/internal/testutil"
)

func TestRecordRun_AssignsIDAndTimestamp(t *testing.T) {
	s := createTestStore(t, "run-1")
	ctx := context.Background()

	run, err := s.RecordRun(ctx, createTestRun("hash-a", ir.VerdictYes))
	require.NoError(t, err)

	assert.Equal(t, "run-1", run.ID)
	assert.Equal(t, testutil.Epoch, run.CreatedAt)

	got, err := s.ReadRun(ctx, "run-1")
	require.NoError(t, err)

	assert.Equal(t, int64(1), got.Seq)
	assert.Equal(t, "hash-a", got.MachineHash)
	assert.Equal(t, "machines/test.ntm", got.MachinePath)
	assert.Equal(t, "101", got.Tape)
	assert.Equal(t, ir.TapeHash(ir.Tape("101")), got.TapeHash)
	assert.Equal(t, 10, got.Budget)
	assert.True(t, got.Dedup)
	assert.Equal(t, engine.Result{
		Verdict:      ir.VerdictYes,
		Cause:        engine.CauseAccepted,
		Steps:        3,
		Explored:     5,
		Pruned:       1,
		Distinct:     4,
		PeakFrontier: 2,
	}, got.Result)
	assert.Equal(t, ir.EngineVersion, got.EngineVersion)
	assert.True(t, testutil.Epoch.Equal(got.CreatedAt))
}

func TestWriteRun_Idempotent(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	first := createTestRun("hash-a", ir.VerdictYes)
	first.ID = "dup"
	first.CreatedAt = testutil.Epoch
	require.NoError(t, s.WriteRun(ctx, first))

	second := createTestRun("hash-b", ir.VerdictNo)
	second.ID = "dup"
	second.CreatedAt = testutil.Epoch
	require.NoError(t, s.WriteRun(ctx, second))

	runs, err := s.ListRuns(ctx, RunFilter{})
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, "hash-a", runs[0].MachineHash, "first write wins")
}

func TestWriteRun_RequiresID(t *testing.T) {
	s := createTestStore(t)
	err := s.WriteRun(context.Background(), createTestRun("hash-a", ir.VerdictYes))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "id is required")
}

func TestWriteRun_RejectsInvalidVerdict(t *testing.T) {
	s := createTestStore(t, "bad")
	run := createTestRun("hash-a", ir.VerdictYes)
	run.Result.Verdict = "MAYBE"

	_, err := s.RecordRun(context.Background(), run)
	require.Error(t, err)
}

func TestReadRun_NotFound(t *testing.T) {
	s := createTestStore(t)
	_, err := s.ReadRun(context.Background(), "missing")
	assert.True(t, errors.Is(err, sql.ErrNoRows))
}

func TestListRuns_OrderAndFilter(t *testing.T) {
	s := createTestStore(t, "r1", "r2", "r3", "r4")
	ctx := context.Background()

	for _, hash := range []string{"hash-a", "hash-b", "hash-a", "hash-a"} {
		_, err := s.RecordRun(ctx, createTestRun(hash, ir.VerdictNo))
		require.NoError(t, err)
	}

	all, err := s.ListRuns(ctx, RunFilter{})
	require.NoError(t, err)
	assert.Equal(t, []string{"r1", "r2", "r3", "r4"}, runIDs(all))

	onlyA, err := s.ListRuns(ctx, RunFilter{MachineHash: "hash-a"})
	require.NoError(t, err)
	assert.Equal(t, []string{"r1", "r3", "r4"}, runIDs(onlyA))

	latest, err := s.ListRuns(ctx, RunFilter{MachineHash: "hash-a", Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, []string{"r3", "r4"}, runIDs(latest))
}

func TestListRuns_EmptyNotNil(t *testing.T) {
	s := createTestStore(t)
	runs, err := s.ListRuns(context.Background(), RunFilter{MachineHash: "nothing"})
	require.NoError(t, err)
	assert.NotNil(t, runs)
	assert.Empty(t, runs)
}

func TestNewRun_ClampsNegativeBudget(t *testing.T) {
	run := NewRun("h", "", nil, -5, false, engine.Result{Verdict: ir.VerdictNo})
	assert.Equal(t, 0, run.Budget)
	assert.Equal(t, "", run.Tape)
}

func runIDs(runs []Run) []string {
	ids := make([]string, len(runs))
	for i, r := range runs {
		ids[i] = r.ID
	}
	return ids
}
