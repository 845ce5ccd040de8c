package extractors

import (
	"context"
	"os/exec"
)

// CommandRunner executes an external converter and returns its stdout.
// Abstracted so tests can inject a fake instead of shelling out.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

// ExecRunner runs commands via os/exec.
type ExecRunner struct{}

// Run executes the named command and returns its stdout.
func (ExecRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output()
}
