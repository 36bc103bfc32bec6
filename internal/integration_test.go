// Package internal contains integration tests that verify the packages work
// together correctly: session, event bus, process execution, configuration
// and save watching composed the way the CLI composes them.
package internal

import (
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"extedit/internal/config"
	"extedit/internal/editor"
	"extedit/internal/event"
	"extedit/internal/logging"
	"extedit/internal/message"
	"extedit/internal/testutil"
)

// TestEventBusIntegration tests that the event bus correctly routes events
// between components, simulating session-to-frontend communication.
func TestEventBusIntegration(t *testing.T) {
	bus := event.NewBus()

	var receivedEvents []event.Event
	var mu sync.Mutex

	bus.Subscribe(event.TypeEditFinished, func(e event.Event) {
		mu.Lock()
		receivedEvents = append(receivedEvents, e)
		mu.Unlock()
	})
	bus.Subscribe(event.TypeEditAborted, func(e event.Event) {
		mu.Lock()
		receivedEvents = append(receivedEvents, e)
		mu.Unlock()
	})

	bus.Publish(event.NewEditFinishedEvent("/tmp/a", "one"))
	bus.Publish(event.NewEditAbortedEvent("/tmp/b", event.AbortExitCode, 1))
	bus.Publish(event.NewFileUpdatedEvent("/tmp/c", "ignored by these subscribers"))

	mu.Lock()
	defer mu.Unlock()
	if len(receivedEvents) != 2 {
		t.Fatalf("received %d events, want 2", len(receivedEvents))
	}
	if receivedEvents[0].EventType() != event.TypeEditFinished {
		t.Errorf("first event = %s, want %s", receivedEvents[0].EventType(), event.TypeEditFinished)
	}
	if receivedEvents[1].EventType() != event.TypeEditAborted {
		t.Errorf("second event = %s, want %s", receivedEvents[1].EventType(), event.TypeEditAborted)
	}
}

// TestFullEditCycle runs a complete edit cycle against a real subprocess:
// temp file creation, editor launch, read-back and cleanup.
func TestFullEditCycle(t *testing.T) {
	testutil.SkipIfNoSh(t)

	script := testutil.FakeEditor(t, "rewritten by the editor", 0)

	cfg := config.Default()
	cfg.Editor.Command = []string{script, "{}"}

	bus := event.NewBus()
	var mu sync.Mutex
	var finished []event.EditFinishedEvent
	bus.Subscribe(event.TypeEditFinished, func(e event.Event) {
		mu.Lock()
		finished = append(finished, e.(event.EditFinishedEvent))
		mu.Unlock()
	})

	session := editor.NewSession(cfg, bus, message.NopSink{}, logging.NopLogger())
	if err := session.EditText("original text", 0); err != nil {
		t.Fatalf("EditText failed: %v", err)
	}

	tempFile := session.Filename()

	testutil.WaitFor(t, 5*time.Second, "finished event", func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(finished) == 1
	})

	mu.Lock()
	got := finished[0].Text
	mu.Unlock()
	if got != "rewritten by the editor" {
		t.Errorf("edited text = %q, want %q", got, "rewritten by the editor")
	}

	if _, err := os.Stat(tempFile); !os.IsNotExist(err) {
		t.Error("temp file should be deleted after the cycle")
	}
	if session.Editing() {
		t.Error("session should be idle after the cycle")
	}
}

// TestCrashKeepsFileForRecovery kills the editor with a signal and verifies
// the temp file survives so unsaved work can be recovered.
func TestCrashKeepsFileForRecovery(t *testing.T) {
	testutil.SkipIfNoSh(t)

	dir := t.TempDir()
	script := testutil.WriteFile(t, dir, "crash.sh", "#!/bin/sh\nkill -9 $$\n")
	if err := os.Chmod(script, 0755); err != nil {
		t.Fatalf("failed to chmod script: %v", err)
	}

	cfg := config.Default()
	cfg.Editor.Command = []string{script, "{}"}

	bus := event.NewBus()
	var mu sync.Mutex
	var aborted []event.EditAbortedEvent
	bus.Subscribe(event.TypeEditAborted, func(e event.Event) {
		mu.Lock()
		aborted = append(aborted, e.(event.EditAbortedEvent))
		mu.Unlock()
	})

	session := editor.NewSession(cfg, bus, message.NopSink{}, logging.NopLogger())
	if err := session.EditText("unsaved work", 0); err != nil {
		t.Fatalf("EditText failed: %v", err)
	}
	tempFile := session.Filename()
	defer os.Remove(tempFile)

	testutil.WaitFor(t, 5*time.Second, "aborted event", func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(aborted) == 1
	})

	mu.Lock()
	reason := aborted[0].Reason
	mu.Unlock()
	if reason != event.AbortCrashed {
		t.Errorf("abort reason = %q, want %q", reason, event.AbortCrashed)
	}

	data, err := os.ReadFile(tempFile)
	if err != nil {
		t.Fatalf("temp file must survive a crash: %v", err)
	}
	if string(data) != "unsaved work" {
		t.Errorf("preserved content = %q, want %q", data, "unsaved work")
	}
}

// TestWatchReportsIntermediateSaves enables watch mode and verifies saves
// made while the editor runs are published before the final result.
func TestWatchReportsIntermediateSaves(t *testing.T) {
	testutil.SkipIfNoSh(t)

	dir := t.TempDir()
	script := testutil.WriteFile(t, dir, "saver.sh", strings.Join([]string{
		"#!/bin/sh",
		`printf '%s' "draft" > "$1"`,
		"sleep 0.3",
		`printf '%s' "final" > "$1"`,
		"sleep 0.3",
		"exit 0",
		"",
	}, "\n"))
	if err := os.Chmod(script, 0755); err != nil {
		t.Fatalf("failed to chmod script: %v", err)
	}

	cfg := config.Default()
	cfg.Editor.Command = []string{script, "{}"}
	cfg.Editor.Watch = true

	bus := event.NewBus()
	var mu sync.Mutex
	var updates []string
	var finished []string
	bus.Subscribe(event.TypeFileUpdated, func(e event.Event) {
		mu.Lock()
		updates = append(updates, e.(event.FileUpdatedEvent).Text)
		mu.Unlock()
	})
	bus.Subscribe(event.TypeEditFinished, func(e event.Event) {
		mu.Lock()
		finished = append(finished, e.(event.EditFinishedEvent).Text)
		mu.Unlock()
	})

	session := editor.NewSession(cfg, bus, message.NopSink{}, logging.NopLogger())
	if err := session.EditText("start", 0); err != nil {
		t.Fatalf("EditText failed: %v", err)
	}

	testutil.WaitFor(t, 10*time.Second, "finished event", func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(finished) == 1
	})

	mu.Lock()
	defer mu.Unlock()
	if finished[0] != "final" {
		t.Errorf("final text = %q, want %q", finished[0], "final")
	}
	if len(updates) == 0 {
		t.Error("expected at least one file updated event while editing")
	}
	for _, u := range updates {
		if u == "start" {
			t.Error("initial content must not be reported as an update")
		}
	}
}

// TestSessionRejectsConcurrentEdits verifies the busy guard across a real
// subprocess cycle.
func TestSessionRejectsConcurrentEdits(t *testing.T) {
	testutil.SkipIfNoSh(t)

	dir := t.TempDir()
	script := testutil.WriteFile(t, dir, "slow.sh", "#!/bin/sh\nsleep 0.5\nexit 0\n")
	if err := os.Chmod(script, 0755); err != nil {
		t.Fatalf("failed to chmod script: %v", err)
	}

	cfg := config.Default()
	cfg.Editor.Command = []string{script, "{}"}

	bus := event.NewBus()
	session := editor.NewSession(cfg, bus, message.NopSink{}, logging.NopLogger())
	if err := session.EditText("text", 0); err != nil {
		t.Fatalf("EditText failed: %v", err)
	}

	if err := session.EditText("other", 0); err == nil {
		t.Error("second EditText should fail while the editor runs")
	}

	testutil.WaitFor(t, 5*time.Second, "cycle end", func() bool {
		return !session.Editing()
	})
}
