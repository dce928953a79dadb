package cli

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/roach88/ntm/internal/testutil"
)

// execute runs the root command with args and stdin, returning stdout,
// stderr and the command error.
func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	cmd := NewRootCommand()
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	var in io.Reader = strings.NewReader(stdin)
	cmd.SetIn(in)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

// onesMachine accepts any run of ones followed by a blank.
func onesMachine(t *testing.T, dir string) string {
	t.Helper()
	return testutil.WriteMachine(t, dir, "ones.ntm",
		"// ones then blank",
		"start 1 start 1 R",
		"start 0 accept 0 S",
	)
}
