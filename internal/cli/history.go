package cli

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/ntm/internal/store"
)

// HistoryOptions holds flags for the history command.
type HistoryOptions struct {
	*RootOptions
	Database    string
	MachineHash string
	Limit       int
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &HistoryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List runs recorded in a ledger",
		Long: `List runs recorded with "ntm run --db", oldest first.

Example:
  ntm history --db runs.db
  ntm history --db runs.db --machine 5e2b5175... --limit 10 --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite run ledger (default: configured database)")
	cmd.Flags().StringVar(&opts.MachineHash, "machine", "", "only runs of this machine hash")
	cmd.Flags().IntVar(&opts.Limit, "limit", 0, "only the most recent N runs")

	return cmd
}

func runHistory(opts *HistoryOptions, cmd *cobra.Command) error {
	f := opts.formatter(cmd)

	database := opts.Database
	if database == "" {
		database = opts.config().Database
	}
	if database == "" {
		return f.Fail(ExitCommandError, ErrCodeArgs, "no database: pass --db or set database in the config file", nil)
	}
	if _, err := os.Stat(database); err != nil {
		return f.Fail(ExitCommandError, ErrCodeStore, "database not found", err)
	}

	st, err := store.Open(database)
	if err != nil {
		return f.Fail(ExitCommandError, ErrCodeStore, "failed to open database", err)
	}
	defer st.Close()

	runs, err := st.ListRuns(commandContext(cmd), store.RunFilter{
		MachineHash: opts.MachineHash,
		Limit:       opts.Limit,
	})
	if err != nil {
		return f.Fail(ExitCommandError, ErrCodeStore, "failed to list runs", err)
	}

	if f.JSON() {
		return f.Success(runs)
	}

	w := cmd.OutOrStdout()
	if len(runs) == 0 {
		fmt.Fprintln(w, "No runs recorded.")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "SEQ\tID\tVERDICT\tCAUSE\tSTEPS\tBUDGET\tMACHINE\tTAPE\tCREATED")
	for _, r := range runs {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%d\t%d\t%s\t%s\t%s\n",
			r.Seq,
			r.ID,
			r.Result.Verdict,
			r.Result.Cause,
			r.Result.Steps,
			r.Budget,
			shortHash(r.MachineHash),
			r.Tape,
			r.CreatedAt.UTC().Format(time.RFC3339),
		)
	}
	return tw.Flush()
}

// shortHash abbreviates a hex hash for table output.
func shortHash(h string) string {
	if len(h) > 12 {
		return h[:12]
	}
	return h
}
