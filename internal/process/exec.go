package process

import (
	"context"
	"os"
	"os/exec"
	"sync"

	"extedit/internal/errors"
	"extedit/internal/logging"
)

// ExecProcess implements the Process interface on top of os/exec.
// A monitor goroutine waits for the child and dispatches the registered
// callbacks when it terminates.
type ExecProcess struct {
	logger *logging.Logger

	mu         sync.Mutex
	cmd        *exec.Cmd
	started    bool
	exitStatus ExitStatus
	onFinished FinishedFunc
	onError    ErrorFunc
}

// NewExecProcess creates a new os/exec-backed process.
// A nil logger disables logging.
func NewExecProcess(logger *logging.Logger) *ExecProcess {
	if logger == nil {
		logger = logging.NopLogger()
	}
	return &ExecProcess{
		logger:     logger,
		exitStatus: StatusUnknown,
	}
}

// OnFinished registers the completion callback.
func (p *ExecProcess) OnFinished(fn FinishedFunc) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.onFinished = fn
}

// OnError registers the monitor error callback.
func (p *ExecProcess) OnError(fn ErrorFunc) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.onError = fn
}

// Start launches the editor executable with the given arguments.
// The child inherits stdin, stdout and stderr so terminal editors work.
func (p *ExecProcess) Start(ctx context.Context, executable string, args []string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.started {
		return errors.ErrAlreadyRunning
	}
	if err := checkStartable(executable); err != nil {
		return err
	}

	// Check if context is already cancelled
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	cmd := exec.Command(executable, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Start(); err != nil {
		return errors.NewEditError("failed to start editor", err)
	}

	p.cmd = cmd
	p.started = true
	p.logger.Debug("editor process started", "executable", executable, "args", args, "pid", cmd.Process.Pid)

	go p.monitor()

	return nil
}

// waitOutcome classifies the result of cmd.Wait. A nil error or an
// exec.ExitError is a regular termination; exit code -1 means the child was
// killed by a signal, which counts as a crash. Any other error is a monitor
// failure, not a crash of the editor, and is returned for the error callback.
func waitOutcome(err error) (exitCode int, status ExitStatus, waitErr error) {
	if err == nil {
		return 0, StatusNormal, nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		code := exitErr.ExitCode()
		if code == -1 {
			return code, StatusCrash, nil
		}
		return code, StatusNormal, nil
	}
	return 0, StatusUnknown, err
}

// monitor waits for the child to exit and dispatches callbacks.
func (p *ExecProcess) monitor() {
	exitCode, status, waitErr := waitOutcome(p.cmd.Wait())

	p.mu.Lock()
	p.exitStatus = status

	if waitErr != nil {
		onError := p.onError
		p.mu.Unlock()

		p.logger.Error("editor process wait failed", "error", waitErr.Error())
		if onError != nil {
			onError(waitErr)
		}
		return
	}

	onFinished := p.onFinished
	p.mu.Unlock()

	p.logger.Debug("editor process finished", "exit_code", exitCode, "status", status.String())
	if onFinished != nil {
		onFinished(exitCode, status)
	}
}

// ExitStatus returns how the process terminated, or StatusUnknown while it
// is still running.
func (p *ExecProcess) ExitStatus() ExitStatus {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.exitStatus
}

// Kill forcefully terminates the child process.
func (p *ExecProcess) Kill() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.started || p.cmd.Process == nil {
		return errors.ErrNotStarted
	}
	return p.cmd.Process.Kill()
}
