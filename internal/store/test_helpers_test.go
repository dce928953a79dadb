package store

import (
	"path/filepath"
	"testing"

	"github.com/roach88/ntm/internal/engine"
	"github.com/roach88/ntm/internal/ir"
	"github.com/roach88/ntm/internal/testutil"
)

// createTestStore creates a fresh on-disk store with deterministic IDs and clock.
func createTestStore(t *testing.T, ids ...string) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path,
		WithIDGenerator(NewFixedGenerator(ids...)),
		WithClock(testutil.NewDeterministicClock().Now),
	)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// createTestRun creates a run with minimal required fields.
func createTestRun(machineHash string, verdict ir.Verdict) Run {
	cause := engine.CauseAccepted
	if verdict == ir.VerdictNo {
		cause = engine.CauseExtinct
	}
	return NewRun(machineHash, "machines/test.ntm", ir.Tape("101"), 10, true, engine.Result{
		Verdict:      verdict,
		Cause:        cause,
		Steps:        3,
		Explored:     5,
		Pruned:       1,
		Distinct:     4,
		PeakFrontier: 2,
	})
}
