package harness

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"

	clierrors "github.com/snyk/error-catalog-golang-public/cli"
	"github.com/snyk/error-catalog-golang-public/snyk"
	"github.com/snyk/error-catalog-golang-public/snyk_errors"
)

// Result is what one fixture invocation produced.
type Result struct {
	Stdout   string `json:"stdout"`
	Stderr   string `json:"stderr"`
	ExitCode int    `json:"exitCode"`
}

//go:generate mockgen -destination=../mocks/executor.go -package=mocks github.com/snyk/cli-test-fixture/internal/harness Executor

// Executor runs the fixture with the given stdin and arguments.
type Executor interface {
	Execute(ctx context.Context, stdin []byte, args ...string) (*Result, error)
}

// exitCoder allows checking for exit codes without depending on concrete exec.ExitError.
type exitCoder interface {
	ExitCode() int
}

// cmdExecutor is the Executor implementation running the fixture binary as a subprocess.
type cmdExecutor struct {
	binary string
}

// NewExecutor returns an Executor for binary, which is either a path or a
// name looked up in PATH on every execution.
func NewExecutor(binary string) Executor {
	return &cmdExecutor{binary: binary}
}

func (e *cmdExecutor) Execute(ctx context.Context, stdin []byte, args ...string) (*Result, error) {
	resolvedBinary, err := exec.LookPath(e.binary)
	if err != nil {
		return nil, clierrors.NewGeneralSCAFailureError(
			fmt.Sprintf("%s binary not found in PATH", e.binary),
			snyk_errors.WithCause(err),
		)
	}

	cmd := exec.CommandContext(ctx, resolvedBinary, args...)
	// A non-nil reader closes the child's stdin once drained, so directives
	// that read until EOF always finish.
	cmd.Stdin = bytes.NewReader(stdin)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	runErr := cmd.Run()

	if ctxErr := ctx.Err(); ctxErr != nil {
		if errors.Is(ctxErr, context.DeadlineExceeded) {
			return nil, snyk.NewTimeoutError(
				fmt.Sprintf("%s did not exit before the deadline", e.binary),
				snyk_errors.WithCause(ctxErr),
			)
		}
		return nil, fmt.Errorf("fixture run canceled: %w", ctxErr)
	}

	result := &Result{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}

	if runErr != nil {
		var ec exitCoder
		if !errors.As(runErr, &ec) || ec.ExitCode() < 0 {
			return nil, clierrors.NewGeneralSCAFailureError(
				fmt.Sprintf("failed to execute %s: %v\nstdout: %s\nstderr: %s", e.binary, runErr, result.Stdout, result.Stderr),
				snyk_errors.WithCause(runErr),
			)
		}
		result.ExitCode = ec.ExitCode()
	}

	return result, nil
}
