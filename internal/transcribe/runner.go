package transcribe

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
)

// CommandLog captures one external command invocation result.
type CommandLog struct {
	Command  string   `json:"command"`
	Args     []string `json:"args"`
	ExitCode int      `json:"exitCode"`
	Stdout   string   `json:"stdout"`
	Stderr   string   `json:"stderr"`
}

// commandResult is an internal process execution response.
type commandResult struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// commandRunner abstracts process execution for testability.
type commandRunner interface {
	Run(ctx context.Context, name string, args ...string) (commandResult, error)
}

// execRunner executes commands via os/exec.
type execRunner struct{}

// Run executes one command and captures stdout/stderr and exit code.
func (r *execRunner) Run(ctx context.Context, name string, args ...string) (commandResult, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var stdout bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	result := commandResult{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		ExitCode: 0,
	}
	if err != nil {
		result.ExitCode = -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			result.ExitCode = exitErr.ExitCode()
		}
		return result, err
	}

	return result, nil
}
