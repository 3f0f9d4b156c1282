// Package testutil provides test utilities for CLI testing.
package testutil

import (
	"bytes"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/shopdash/internal/cli/config"
)

// Token and User are the API credentials written by SetupTestProject.
const (
	Token = "cli-test-token"
	User  = "user-1"
)

// SetupTestProject creates a temporary project with a shopdash.yaml that
// points at a SQLite file and lets Token act as User. The working directory
// is switched to the project for the duration of the test.
func SetupTestProject(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	content := `database:
  driver: sqlite
  dsn: .shopdash/test.db
api:
  token: ` + Token + `
auth:
  tokens:
    ` + Token + `: ` + User + `
`
	if err := os.WriteFile(filepath.Join(dir, "shopdash.yaml"), []byte(content), 0600); err != nil {
		t.Fatalf("failed to write shopdash.yaml: %v", err)
	}

	orig, err := os.Getwd()
	if err != nil {
		t.Fatalf("failed to get working directory: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("failed to chdir: %v", err)
	}
	t.Cleanup(func() {
		_ = os.Chdir(orig)
		config.ResetConfig()
	})
	return dir
}

// LoadTestConfig loads the configuration of the current project so commands
// executed without the root command see it.
func LoadTestConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.LoadConfig("", nil)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	return cfg
}

// Result holds the captured output of a command run.
type Result struct {
	Out    string
	ErrOut string
	Err    error
}

// Execute runs cmd with args and captures stdout and stderr separately.
func Execute(cmd *cobra.Command, args ...string) Result {
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.SetIn(strings.NewReader(""))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return Result{Out: out.String(), ErrOut: errOut.String(), Err: err}
}

// ansiPattern matches ANSI escape codes.
var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

// AssertNoANSI checks that a string contains no ANSI escape codes.
func AssertNoANSI(t *testing.T, s string) {
	t.Helper()
	if ansiPattern.MatchString(s) {
		t.Errorf("string contains ANSI escape codes: %q", s)
	}
}
