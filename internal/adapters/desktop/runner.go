package desktop

import (
	"context"
	"os/exec"

	"zwallpaper/internal/ports"
)

// ExecRunner implements ports.CommandRunner with os/exec
type ExecRunner struct{}

// Ensure ExecRunner implements CommandRunner
var _ ports.CommandRunner = (*ExecRunner)(nil)

// NewExecRunner creates a new runner
func NewExecRunner() *ExecRunner {
	return &ExecRunner{}
}

// Run executes the command and returns its combined output
func (r *ExecRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).CombinedOutput()
}

// LookPath finds an executable on PATH
func (r *ExecRunner) LookPath(name string) (string, error) {
	return exec.LookPath(name)
}
