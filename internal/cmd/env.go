package cmd

import (
	"fmt"
	"os"

	"extedit/internal/config"
	"extedit/internal/editor"
	"extedit/internal/event"
	"extedit/internal/logging"
	"extedit/internal/message"
)

// env bundles the wiring shared by the edit-running commands.
type env struct {
	cfg     *config.Config
	bus     *event.Bus
	session *editor.Session
	logger  *logging.Logger
}

// newEnv loads the effective configuration and assembles a session around
// it. Messages go to stderr so stdout stays clean for edited text.
func newEnv() (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := logging.NopLogger()
	if cfg.Logging.Enabled {
		l, err := logging.NewLogger(cfg.Logging.Dir, cfg.Logging.Level)
		if err != nil {
			return nil, fmt.Errorf("failed to set up logging: %w", err)
		}
		logger = l
	}

	bus := event.NewBus()
	sink := message.NewConsoleSink(os.Stderr)

	return &env{
		cfg:     cfg,
		bus:     bus,
		session: editor.NewSession(cfg, bus, sink, logger),
		logger:  logger,
	}, nil
}

func (e *env) close() {
	_ = e.logger.Close()
}

// cycleResult is the terminal outcome of one edit cycle.
type cycleResult struct {
	finished *event.EditFinishedEvent
	aborted  *event.EditAbortedEvent
}

// awaitCycle subscribes for the events that end an edit cycle and returns a
// channel delivering exactly one result. Subscribe before starting the edit
// or a fast editor can finish unobserved. Both subscriptions are removed
// once the first terminal event arrives.
func awaitCycle(bus *event.Bus) <-chan cycleResult {
	done := make(chan cycleResult, 1)

	var ids []uint64
	deliver := func(r cycleResult) {
		select {
		case done <- r:
			for _, id := range ids {
				bus.Unsubscribe(id)
			}
		default:
		}
	}

	ids = append(ids, bus.Subscribe(event.TypeEditFinished, func(e event.Event) {
		ev := e.(event.EditFinishedEvent)
		deliver(cycleResult{finished: &ev})
	}))
	ids = append(ids, bus.Subscribe(event.TypeEditAborted, func(e event.Event) {
		ev := e.(event.EditAbortedEvent)
		deliver(cycleResult{aborted: &ev})
	}))
	return done
}

// abortError converts an aborted cycle into the error shown to the user.
// A non-zero editor exit means the user discarded the edit; that's not an
// extedit failure, so it maps to a silent non-zero exit.
func abortError(ev *event.EditAbortedEvent) error {
	switch ev.Reason {
	case event.AbortExitCode:
		return fmt.Errorf("editor exited with code %d, edit discarded", ev.ExitCode)
	case event.AbortCrashed:
		return fmt.Errorf("editor crashed")
	case event.AbortReadError:
		return fmt.Errorf("could not read edited file")
	default:
		return fmt.Errorf("edit aborted: %s", ev.Reason)
	}
}
