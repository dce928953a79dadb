package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/ntm/internal/compiler"
	"github.com/roach88/ntm/internal/ir"
)

// ValidateOptions holds flags for the validate command.
type ValidateOptions struct {
	*RootOptions
	Strict bool // treat lint warnings as failures
}

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid       bool                       `json:"valid"`
	Name        string                     `json:"name"`
	Transitions int                        `json:"transitions"`
	States      []string                   `json:"states"`
	Alphabet    []string                   `json:"alphabet"`
	MachineHash string                     `json:"machine_hash"`
	Warnings    []compiler.ValidationError `json:"warnings,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ValidateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "validate <machine>",
		Short: "Check a machine definition without running it",
		Long: `Parse a machine definition and report its states, alphabet and hash.

Lint warnings (W3xx) flag transitions that can never fire, states that
cannot be reached, and machines that can never accept. They do not fail
validation unless --strict is set.

Exit codes:
  0 - Machine is valid
  1 - Warnings found with --strict
  2 - Machine could not be parsed`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(opts, args[0], cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.Strict, "strict", false, "fail on lint warnings")

	return cmd
}

func runValidate(opts *ValidateOptions, path string, cmd *cobra.Command) error {
	f := opts.formatter(cmd)

	def, err := compiler.LoadFile(path)
	if err != nil {
		return f.Fail(ExitCommandError, "", "invalid machine", err)
	}
	f.VerboseLog("Loaded %d transition(s) from %s", len(def.Transitions), path)

	table := def.Table()
	hash, err := table.Hash()
	if err != nil {
		return f.Fail(ExitCommandError, ErrCodeGeneric, "failed to hash machine", err)
	}

	result := ValidationResult{
		Valid:       true,
		Name:        def.Name,
		Transitions: table.Len(),
		States:      stateNames(table.States()),
		Alphabet:    symbolNames(table.Alphabet()),
		MachineHash: hash,
		Warnings:    compiler.Validate(def.Transitions),
	}
	if opts.Strict && len(result.Warnings) > 0 {
		result.Valid = false
	}

	if f.JSON() {
		if err := f.Success(result); err != nil {
			return err
		}
	} else {
		outputValidateText(cmd, result)
	}

	if !result.Valid {
		return &ExitError{
			Code:     ExitFailure,
			Message:  fmt.Sprintf("validation failed with %d warning(s)", len(result.Warnings)),
			Reported: true,
		}
	}
	return nil
}

func outputValidateText(cmd *cobra.Command, result ValidationResult) {
	w := cmd.OutOrStdout()
	s := newStyles(w)

	mark := s.passMark()
	if !result.Valid {
		mark = s.failMark()
	}
	fmt.Fprintf(w, "%s %s\n", mark, result.Name)
	fmt.Fprintf(w, "  transitions: %d\n", result.Transitions)
	fmt.Fprintf(w, "  states:      %d\n", len(result.States))
	fmt.Fprintf(w, "  alphabet:    %d\n", len(result.Alphabet))
	fmt.Fprintf(w, "  hash:        %s\n", s.dim.Render(result.MachineHash))

	for _, warning := range result.Warnings {
		fmt.Fprintf(w, "  %s %s\n", s.warn.Render("warning"), warning.Error())
	}
}

func stateNames(states []ir.State) []string {
	out := make([]string, len(states))
	for i, st := range states {
		out[i] = string(st)
	}
	return out
}

func symbolNames(symbols []ir.Symbol) []string {
	out := make([]string, len(symbols))
	for i, sym := range symbols {
		out[i] = sym.String()
	}
	return out
}
