package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/roach88/ntm/internal/engine"
	"github.com/roach88/ntm/internal/ir"
)

// Run is one ledger row.
type Run struct {
	// Seq is the insertion sequence assigned by the database. Zero until read back.
	Seq int64 `json:"seq"`

	ID          string `json:"id"`
	MachineHash string `json:"machine_hash"`
	MachinePath string `json:"machine_path,omitempty"`
	Tape        string `json:"tape"`
	TapeHash    string `json:"tape_hash"`
	Budget      int    `json:"budget"`
	Dedup       bool   `json:"dedup"`

	Result engine.Result `json:"result"`

	EngineVersion string    `json:"engine_version"`
	CreatedAt     time.Time `json:"created_at"`
}

// NewRun describes a finished run. ID and CreatedAt are filled in by
// RecordRun.
func NewRun(machineHash, machinePath string, tape []ir.Symbol, budget int, dedup bool, result engine.Result) Run {
	return Run{
		MachineHash:   machineHash,
		MachinePath:   machinePath,
		Tape:          ir.TapeString(tape),
		TapeHash:      ir.TapeHash(tape),
		Budget:        max(budget, 0),
		Dedup:         dedup,
		Result:        result,
		EngineVersion: ir.EngineVersion,
	}
}

// RecordRun assigns an ID and timestamp where missing, writes the run and
// returns it as stored.
func (s *Store) RecordRun(ctx context.Context, run Run) (Run, error) {
	if run.ID == "" {
		run.ID = s.ids.Generate()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = s.now()
	}
	if err := s.WriteRun(ctx, run); err != nil {
		return Run{}, err
	}
	return run, nil
}

// WriteRun inserts a run into the ledger.
// Uses ON CONFLICT(id) DO NOTHING for idempotency - duplicate IDs are silently ignored.
// Other constraint violations (e.g., an invalid verdict) still return errors.
func (s *Store) WriteRun(ctx context.Context, run Run) error {
	if run.ID == "" {
		return fmt.Errorf("write run: id is required")
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO runs
		(id, machine_hash, machine_path, tape, tape_hash, budget, dedup,
		 verdict, cause, steps, explored, pruned, distinct_configs, peak_frontier,
		 engine_version, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`,
		run.ID,
		run.MachineHash,
		run.MachinePath,
		run.Tape,
		run.TapeHash,
		run.Budget,
		run.Dedup,
		string(run.Result.Verdict),
		string(run.Result.Cause),
		run.Result.Steps,
		run.Result.Explored,
		run.Result.Pruned,
		run.Result.Distinct,
		run.Result.PeakFrontier,
		run.EngineVersion,
		run.CreatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("write run: %w", err)
	}
	return nil
}

const selectRun = `
	SELECT seq, id, machine_hash, machine_path, tape, tape_hash, budget, dedup,
	       verdict, cause, steps, explored, pruned, distinct_configs, peak_frontier,
	       engine_version, created_at
	FROM runs`

// ReadRun retrieves a single run by ID.
// Returns sql.ErrNoRows if not found.
func (s *Store) ReadRun(ctx context.Context, id string) (Run, error) {
	row := s.db.QueryRowContext(ctx, selectRun+` WHERE id = ?`, id)
	return scanRun(row)
}

// RunFilter narrows ListRuns.
type RunFilter struct {
	// MachineHash restricts results to one machine when non-empty.
	MachineHash string

	// Limit caps the number of rows when positive. The most recent rows
	// are kept, still returned in insertion order.
	Limit int
}

// ListRuns returns recorded runs ordered by insertion sequence.
// Returns an empty slice (not nil) if nothing matches.
func (s *Store) ListRuns(ctx context.Context, filter RunFilter) ([]Run, error) {
	query := selectRun
	var args []any
	if filter.MachineHash != "" {
		query += ` WHERE machine_hash = ?`
		args = append(args, filter.MachineHash)
	}
	if filter.Limit > 0 {
		query = `SELECT * FROM (` + query + ` ORDER BY seq DESC LIMIT ?)`
		args = append(args, filter.Limit)
	}
	query += ` ORDER BY seq ASC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	runs := []Run{}
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (Run, error) {
	var (
		run       Run
		verdict   string
		cause     string
		createdAt string
	)
	err := row.Scan(
		&run.Seq,
		&run.ID,
		&run.MachineHash,
		&run.MachinePath,
		&run.Tape,
		&run.TapeHash,
		&run.Budget,
		&run.Dedup,
		&verdict,
		&cause,
		&run.Result.Steps,
		&run.Result.Explored,
		&run.Result.Pruned,
		&run.Result.Distinct,
		&run.Result.PeakFrontier,
		&run.EngineVersion,
		&createdAt,
	)
	if err == sql.ErrNoRows {
		return Run{}, err
	}
	if err != nil {
		return Run{}, fmt.Errorf("scan run: %w", err)
	}

	run.Result.Verdict = ir.Verdict(verdict)
	run.Result.Cause = engine.Cause(cause)
	run.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return Run{}, fmt.Errorf("scan run %s: created_at: %w", run.ID, err)
	}
	return run, nil
}
