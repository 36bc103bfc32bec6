package editor

import (
	"context"
	"os"
	"sync"

	"golang.org/x/text/encoding"

	"extedit/internal/config"
	"extedit/internal/errors"
	"extedit/internal/event"
	"extedit/internal/logging"
	"extedit/internal/message"
	"extedit/internal/process"
	"extedit/internal/textenc"
)

// state tracks whether an edit cycle is active.
type state int

const (
	stateIdle state = iota
	stateEditing
)

// Session manages one edit operation at a time: it materializes the file to
// edit, launches the external editor through the process abstraction, and
// reacts to its termination. See the package documentation for the full
// lifecycle.
type Session struct {
	cfg    *config.Config
	bus    *event.Bus
	sink   message.Sink
	logger *logging.Logger

	// newProcess builds the process handle for each cycle; tests swap in a
	// mock implementation.
	newProcess func() process.Process

	mu         sync.Mutex
	state      state
	filename   string
	removeFile bool
	proc       process.Process
	enc        encoding.Encoding
	cleaned    bool
	watcher    *saveWatcher
}

// NewSession creates a Session publishing to bus. A nil sink discards
// user-facing messages and a nil logger disables logging.
func NewSession(cfg *config.Config, bus *event.Bus, sink message.Sink, logger *logging.Logger) *Session {
	if sink == nil {
		sink = message.NopSink{}
	}
	if logger == nil {
		logger = logging.NopLogger()
	}
	s := &Session{
		cfg:    cfg,
		bus:    bus,
		sink:   sink,
		logger: logger,
	}
	s.newProcess = func() process.Process {
		return process.NewExecProcess(logger)
	}
	return s
}

// EditText opens the external editor on the given text. caretPosition is a
// zero-based character offset into text; the editor is asked to place its
// cursor on the corresponding line and column. The call returns as soon as
// the editor has been spawned; the edited text arrives later as an
// EditFinishedEvent.
//
// Returns errors.ErrEditInProgress when a cycle is already active, and a
// synchronous error when the temp file cannot be created or the editor
// cannot be started - in both failure cases no process runs and the session
// stays clean for a retry.
func (s *Session) EditText(text string, caretPosition int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == stateEditing {
		return errors.ErrEditInProgress
	}

	enc, err := textenc.Lookup(s.cfg.Editor.Encoding)
	if err != nil {
		return err
	}

	f, err := os.CreateTemp("", "extedit-*")
	if err != nil {
		return errors.NewEditError("failed to create initial file", err)
	}

	// Write and close before the external process starts: systems with
	// exclusive write access (e.g. Windows) fail to update a file that
	// another process still holds open.
	if err := textenc.WriteString(f, text, enc); err != nil {
		f.Close()
		os.Remove(f.Name())
		return errors.NewEditError("failed to write initial file", err).WithFilename(f.Name())
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return errors.NewEditError("failed to close initial file", err).WithFilename(f.Name())
	}

	s.beginCycleLocked(f.Name(), s.cfg.Editor.RemoveFile, enc)

	line, column := caretToLineColumn(text, caretPosition)
	return s.startEditorLocked(line, column, text)
}

// EditFile opens the external editor on an existing file. The session never
// deletes a caller-supplied file, whatever the outcome of the cycle.
func (s *Session) EditFile(filename string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == stateEditing {
		return errors.ErrEditInProgress
	}

	enc, err := textenc.Lookup(s.cfg.Editor.Encoding)
	if err != nil {
		return err
	}

	s.beginCycleLocked(filename, false, enc)
	return s.startEditorLocked(1, 1, "")
}

// Editing reports whether an edit cycle is currently active.
func (s *Session) Editing() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state == stateEditing
}

// Filename returns the file of the active cycle, or "" when idle.
func (s *Session) Filename() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filename
}

// beginCycleLocked records the state of a fresh edit cycle.
func (s *Session) beginCycleLocked(filename string, removeFile bool, enc encoding.Encoding) {
	s.state = stateEditing
	s.filename = filename
	s.removeFile = removeFile
	s.enc = enc
	s.cleaned = false
}

// startEditorLocked resolves the editor command, substitutes placeholders
// and spawns the process. initial is the content the file started with,
// used to suppress a redundant first watch notification.
func (s *Session) startEditorLocked(line, column int, initial string) error {
	command := resolveCommand(&s.cfg.Editor, s.filename)
	if len(command) == 0 || command[0] == "" {
		s.cleanupLocked()
		s.resetLocked()
		return errors.ErrEmptyCommand
	}

	executable := command[0]
	args := buildArgs(command, s.filename, line, column)

	proc := s.newProcess()
	proc.OnFinished(s.onProcFinished)
	proc.OnError(s.onProcError)

	s.logger.Debug("starting editor",
		"executable", executable, "args", args, "file", s.filename,
		"line", line, "column", column)

	if err := proc.Start(context.Background(), executable, args); err != nil {
		// Spawn failures are synchronous: clean up, hand the error back.
		s.cleanupLocked()
		s.resetLocked()
		return err
	}
	s.proc = proc

	if s.cfg.Editor.Watch {
		w, err := startSaveWatcher(s.filename, initial, s.enc, s.bus, s.sink, s.logger)
		if err != nil {
			s.sink.Warn("Failed to watch file for saves: %v", err)
		} else {
			s.watcher = w
		}
	}
	return nil
}

// onProcFinished is the completion callback, invoked from the process
// monitor goroutine when the editor terminates.
func (s *Session) onProcFinished(exitCode int, status process.ExitStatus) {
	s.mu.Lock()
	filename := s.filename
	enc := s.enc
	owned := s.removeFile && filename != ""

	if status != process.StatusNormal {
		s.cleanupLocked()
		s.resetLocked()
		s.mu.Unlock()

		s.logger.Warn("editor crashed", "file", filename)
		if owned {
			s.sink.Error("Editor process crashed; file kept at %s", filename)
		} else {
			s.sink.Error("Editor process crashed")
		}
		s.bus.Publish(event.NewEditAbortedEvent(filename, event.AbortCrashed, exitCode))
		return
	}

	if exitCode != 0 {
		// The editor reported failure or the user aborted; not an
		// infrastructure fault, so no user-facing message.
		s.cleanupLocked()
		s.resetLocked()
		s.mu.Unlock()

		s.logger.Debug("editor exited non-zero", "file", filename, "exit_code", exitCode)
		s.bus.Publish(event.NewEditAbortedEvent(filename, event.AbortExitCode, exitCode))
		return
	}

	// Normal termination, exit code zero: read the edited content back.
	// Cleanup must run exactly once whichever way the read goes.
	var text string
	var readErr error
	func() {
		defer func() {
			s.cleanupLocked()
			s.resetLocked()
		}()
		text, readErr = textenc.ReadFile(filename, enc)
	}()
	s.mu.Unlock()

	if readErr != nil {
		s.sink.Error("Failed to read back edited file: %v", readErr)
		s.bus.Publish(event.NewEditAbortedEvent(filename, event.AbortReadError, exitCode))
		return
	}

	s.logger.Debug("read back edited file", "file", filename, "bytes", len(text))
	s.bus.Publish(event.NewEditFinishedEvent(filename, text))
}

// onProcError is the error callback, invoked when the process monitor fails
// before producing a result. No read-back is attempted.
func (s *Session) onProcError(err error) {
	s.mu.Lock()
	filename := s.filename
	s.cleanupLocked()
	s.resetLocked()
	s.mu.Unlock()

	s.logger.Error("editor process error", "file", filename, "error", err.Error())
	s.sink.Error("Editor process error: %v", err)
	s.bus.Publish(event.NewEditAbortedEvent(filename, event.AbortStartError, 0))
}

// cleanupLocked releases the cycle's resources and removes the temp file
// when the session owns one. Only the first call per cycle acts, so the
// cleanup paths may overlap safely.
func (s *Session) cleanupLocked() {
	if s.cleaned {
		return
	}
	s.cleaned = true

	if s.watcher != nil {
		s.watcher.stop()
		s.watcher = nil
	}

	if s.filename == "" || !s.removeFile {
		// Nothing was created, or the caller owns the file.
		return
	}

	if s.proc != nil && s.proc.ExitStatus() == process.StatusCrash {
		// Keep the file after a crash so unsaved edits can be recovered.
		s.logger.Warn("keeping temp file after crash", "file", s.filename)
		return
	}

	if err := os.Remove(s.filename); err != nil && !os.IsNotExist(err) {
		// Executed async; report instead of returning an error nobody can
		// catch anymore.
		s.sink.Error("Failed to delete tempfile (%v)", err)
	}
}

// resetLocked returns the session to idle so a long-lived session can run
// further cycles.
func (s *Session) resetLocked() {
	s.state = stateIdle
	s.filename = ""
	s.removeFile = false
	s.proc = nil
	s.enc = nil
}
