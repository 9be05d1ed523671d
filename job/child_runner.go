package job

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"syscall"
	"time"
)

// RunOutcome is what the scheduler learns about one child run.
type RunOutcome struct {
	StartedAt time.Time
	Duration  time.Duration
	ExitCode  int
	Output    []string
	Err       error
}

func (o RunOutcome) Succeeded() bool {
	return o.Err == nil && o.ExitCode == 0
}

// Runner executes one pipeline run.
type Runner interface {
	Run(ctx context.Context) RunOutcome
}

// ChildRunner runs the pipeline as a separate process so a crash or leak in
// one run cannot take the scheduler down.
type ChildRunner struct {
	executable string
	args       []string
	timeout    time.Duration
	logger     *slog.Logger
}

// NewChildRunner re-executes the current binary with the run command.
func NewChildRunner(configFile string, timeout time.Duration, logger *slog.Logger) (*ChildRunner, error) {
	exe, err := os.Executable()
	if err != nil {
		return nil, fmt.Errorf("resolve executable: %w", err)
	}
	args := []string{"run"}
	if configFile != "" {
		args = append(args, "--config", configFile)
	}
	return newCommandRunner(exe, args, timeout, logger), nil
}

func newCommandRunner(executable string, args []string, timeout time.Duration, logger *slog.Logger) *ChildRunner {
	return &ChildRunner{executable: executable, args: args, timeout: timeout, logger: logger}
}

// Run starts the child, streams its combined output into the log and waits
// for it to exit or time out.
func (r *ChildRunner) Run(ctx context.Context) RunOutcome {
	outcome := RunOutcome{StartedAt: time.Now()}

	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, r.executable, r.args...)
	cmd.Env = os.Environ()
	cmd.WaitDelay = 5 * time.Second
	// own process group: a terminal Ctrl-C or group SIGTERM aimed at the
	// scheduler must not cancel a run in progress
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}

	pr, pw := io.Pipe()
	cmd.Stdout = pw
	cmd.Stderr = pw

	lines := make(chan []string, 1)
	go func() {
		var captured []string
		scanner := bufio.NewScanner(pr)
		scanner.Buffer(make([]byte, 64*1024), 1024*1024)
		for scanner.Scan() {
			line := scanner.Text()
			captured = append(captured, line)
			r.logger.Info("child output", "line", line)
		}
		// drain so the writer never blocks
		_, _ = io.Copy(io.Discard, pr)
		lines <- captured
	}()

	r.logger.Info("child run starting", "executable", r.executable, "args", r.args, "timeout", r.timeout)

	err := cmd.Start()
	if err == nil {
		err = cmd.Wait()
	}
	_ = pw.Close()
	outcome.Output = <-lines
	outcome.Duration = time.Since(outcome.StartedAt)

	switch {
	case err == nil:
		outcome.ExitCode = 0
	case errors.Is(ctx.Err(), context.DeadlineExceeded):
		outcome.ExitCode = -1
		outcome.Err = fmt.Errorf("child run timed out after %s: %w", r.timeout, ctx.Err())
	default:
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			outcome.ExitCode = exitErr.ExitCode()
		} else {
			outcome.ExitCode = -1
			outcome.Err = fmt.Errorf("child run: %w", err)
		}
	}

	return outcome
}
