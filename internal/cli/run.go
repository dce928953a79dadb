package cli

import (
	"fmt"
	"log/slog"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/roach88/ntm/internal/compiler"
	"github.com/roach88/ntm/internal/engine"
	"github.com/roach88/ntm/internal/ir"
	"github.com/roach88/ntm/internal/metrics"
	"github.com/roach88/ntm/internal/parser"
	"github.com/roach88/ntm/internal/store"
)

// RunOptions holds flags for the run command.
type RunOptions struct {
	*RootOptions
	Tape        string
	NoDedup     bool
	Database    string
	MetricsFile string

	// IDGenerator allows overriding the run ID generator (for testing).
	// If nil, the store defaults to UUIDv7.
	IDGenerator store.RunIDGenerator
}

// RunOutput is the JSON payload of a run.
type RunOutput struct {
	Verdict      ir.Verdict   `json:"verdict"`
	Cause        engine.Cause `json:"cause"`
	Steps        int          `json:"steps"`
	Budget       int          `json:"budget"`
	Dedup        bool         `json:"dedup"`
	Explored     int          `json:"explored"`
	Pruned       int          `json:"pruned"`
	Distinct     int          `json:"distinct"`
	PeakFrontier int          `json:"peak_frontier"`
	Machine      string       `json:"machine"`
	MachineHash  string       `json:"machine_hash"`
	RunID        string       `json:"run_id,omitempty"`
}

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RunOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "run <machine> [steps]",
		Short: "Simulate a machine on a tape",
		Long: `Simulate a nondeterministic Turing machine on an input tape.

The machine is a text transition file (one "state read next write move"
line per transition) or a .cue definition. The tape is taken from --tape,
or else from the first line of standard input. [steps] is the step budget;
it defaults to the configured budget.

Prints YES or NO. Both verdicts exit 0; exit code 2 means the machine or
arguments could not be used.

Examples:
  echo 0110 | ntm run machine.txt 500
  ntm run machine.cue --tape 0110
  ntm run machine.txt 100 --tape 01 --db runs.db --format json`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMachine(opts, args, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Tape, "tape", "", "input tape (default: first line of stdin)")
	cmd.Flags().BoolVar(&opts.NoDedup, "no-dedup", false, "disable duplicate configuration pruning")
	cmd.Flags().StringVar(&opts.Database, "db", "", "record the run in this SQLite ledger")
	cmd.Flags().StringVar(&opts.MetricsFile, "metrics-file", "", "write Prometheus metrics to this file")

	return cmd
}

func runMachine(opts *RunOptions, args []string, cmd *cobra.Command) error {
	f := opts.formatter(cmd)
	cfg := opts.config()

	logger, closeLog, err := opts.newLogger(cmd.ErrOrStderr())
	if err != nil {
		return f.Fail(ExitCommandError, ErrCodeConfig, "failed to set up logging", err)
	}
	defer closeLog()

	budget := cfg.Budget
	if len(args) == 2 {
		budget, err = strconv.Atoi(args[1])
		if err != nil {
			return f.Fail(ExitCommandError, ErrCodeArgs, fmt.Sprintf("invalid steps %q", args[1]), err)
		}
	}
	dedup := cfg.Dedup
	if cmd.Flags().Changed("no-dedup") {
		dedup = !opts.NoDedup
	}
	database := opts.Database
	if !cmd.Flags().Changed("db") {
		database = cfg.Database
	}
	metricsFile := opts.MetricsFile
	if !cmd.Flags().Changed("metrics-file") {
		metricsFile = cfg.MetricsFile
	}

	def, err := compiler.LoadFile(args[0])
	if err != nil {
		return f.Fail(ExitCommandError, "", "failed to load machine", err)
	}
	table := def.Table()
	hash, err := table.Hash()
	if err != nil {
		return f.Fail(ExitCommandError, ErrCodeGeneric, "failed to hash machine", err)
	}
	logger.Info("machine loaded",
		"path", args[0],
		"name", def.Name,
		"transitions", table.Len(),
		"machine_hash", hash,
	)

	var tape []ir.Symbol
	if cmd.Flags().Changed("tape") {
		tape = parser.ParseTape(opts.Tape)
	} else {
		tape, err = parser.ReadTape(cmd.InOrStdin())
		if err != nil {
			return f.Fail(ExitCommandError, string(parser.ErrCodeRead), "failed to read tape", err)
		}
	}

	engineOpts := []engine.Option{
		engine.WithDedup(dedup),
		engine.WithLogger(logger),
	}
	var m *metrics.Metrics
	if metricsFile != "" {
		m = metrics.New()
		engineOpts = append(engineOpts, engine.WithObserver(m))
	}

	result := engine.New(table, engineOpts...).Run(tape, budget)
	logger.Info("run finished",
		"verdict", result.Verdict,
		"cause", result.Cause,
		"steps", result.Steps,
	)

	out := RunOutput{
		Verdict:      result.Verdict,
		Cause:        result.Cause,
		Steps:        result.Steps,
		Budget:       max(budget, 0),
		Dedup:        dedup,
		Explored:     result.Explored,
		Pruned:       result.Pruned,
		Distinct:     result.Distinct,
		PeakFrontier: result.PeakFrontier,
		Machine:      def.Name,
		MachineHash:  hash,
	}

	if database != "" {
		id, err := recordRun(opts, database, store.NewRun(hash, args[0], tape, budget, dedup, result), logger, cmd)
		if err != nil {
			return f.Fail(ExitCommandError, ErrCodeStore, "failed to record run", err)
		}
		out.RunID = id
	}

	if m != nil {
		m.Record(result)
		if err := m.WriteTextfile(metricsFile); err != nil {
			return f.Fail(ExitCommandError, ErrCodeMetrics, "failed to write metrics", err)
		}
	}

	if f.JSON() {
		return f.Success(out)
	}
	return f.Success(string(result.Verdict))
}

// recordRun appends the run to the ledger and returns its ID.
func recordRun(opts *RunOptions, path string, run store.Run, logger *slog.Logger, cmd *cobra.Command) (string, error) {
	var storeOpts []store.Option
	if opts.IDGenerator != nil {
		storeOpts = append(storeOpts, store.WithIDGenerator(opts.IDGenerator))
	}

	st, err := store.Open(path, storeOpts...)
	if err != nil {
		return "", err
	}
	defer func() {
		if closeErr := st.Close(); closeErr != nil {
			logger.Error("error closing database", "error", closeErr)
		}
	}()

	recorded, err := st.RecordRun(commandContext(cmd), run)
	if err != nil {
		return "", err
	}
	logger.Info("run recorded", "db", path, "run_id", recorded.ID)
	return recorded.ID, nil
}
