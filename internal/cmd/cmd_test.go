package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"extedit/internal/event"
)

// executeCommand runs a cobra command with args and returns captured output
func executeCommand(root *cobra.Command, args ...string) (output string, err error) {
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err = root.Execute()
	return buf.String(), err
}

func TestRootCommand(t *testing.T) {
	if rootCmd.Use != "extedit" {
		t.Errorf("rootCmd.Use = %q, want %q", rootCmd.Use, "extedit")
	}

	expectedCmds := []string{"edit", "text", "config", "tui"}
	cmdMap := make(map[string]bool)
	for _, cmd := range rootCmd.Commands() {
		cmdMap[cmd.Name()] = true
	}

	for _, expected := range expectedCmds {
		if !cmdMap[expected] {
			t.Errorf("expected subcommand %q not found", expected)
		}
	}
}

func TestEditCommand_MissingFile(t *testing.T) {
	_, err := executeCommand(rootCmd, "edit", "/nonexistent/path/to/file")
	if err == nil {
		t.Error("edit should fail for a file that does not exist")
	}
}

func TestEditCommand_RequiresArgument(t *testing.T) {
	_, err := executeCommand(rootCmd, "edit")
	if err == nil {
		t.Error("edit should fail without a file argument")
	}
}

func TestAwaitCycle_DeliversFinished(t *testing.T) {
	bus := event.NewBus()
	done := awaitCycle(bus)

	bus.Publish(event.NewEditFinishedEvent("/tmp/f", "result"))

	result := <-done
	if result.finished == nil {
		t.Fatal("expected a finished result")
	}
	if result.finished.Text != "result" {
		t.Errorf("finished text = %q, want %q", result.finished.Text, "result")
	}
}

func TestAwaitCycle_DeliversAborted(t *testing.T) {
	bus := event.NewBus()
	done := awaitCycle(bus)

	bus.Publish(event.NewEditAbortedEvent("/tmp/f", event.AbortCrashed, -1))

	result := <-done
	if result.aborted == nil {
		t.Fatal("expected an aborted result")
	}
	if result.aborted.Reason != event.AbortCrashed {
		t.Errorf("abort reason = %q, want %q", result.aborted.Reason, event.AbortCrashed)
	}
}

func TestAwaitCycle_OnlyFirstResultCounts(t *testing.T) {
	bus := event.NewBus()
	done := awaitCycle(bus)

	bus.Publish(event.NewEditFinishedEvent("/tmp/f", "first"))
	// A stray second event must not block the publisher.
	bus.Publish(event.NewEditAbortedEvent("/tmp/f", event.AbortReadError, 0))

	result := <-done
	if result.finished == nil || result.finished.Text != "first" {
		t.Errorf("expected the first event to win, got %+v", result)
	}
}

func TestWatchFlagHelpNamesStream(t *testing.T) {
	// The two commands stream saves to different descriptors (text keeps
	// stdout for the result); the help text must say which.
	textFlag := textCmd.Flags().Lookup("watch")
	if textFlag == nil {
		t.Fatal("text command should define --watch")
	}
	if !strings.Contains(textFlag.Usage, "stderr") {
		t.Errorf("text --watch help = %q, should name stderr", textFlag.Usage)
	}

	editFlag := editCmd.Flags().Lookup("watch")
	if editFlag == nil {
		t.Fatal("edit command should define --watch")
	}
	if !strings.Contains(editFlag.Usage, "stdout") {
		t.Errorf("edit --watch help = %q, should name stdout", editFlag.Usage)
	}
}

func TestAbortError(t *testing.T) {
	tests := []struct {
		name   string
		event  event.EditAbortedEvent
		substr string
	}{
		{"exit code", event.NewEditAbortedEvent("f", event.AbortExitCode, 3), "code 3"},
		{"crash", event.NewEditAbortedEvent("f", event.AbortCrashed, -1), "crashed"},
		{"read error", event.NewEditAbortedEvent("f", event.AbortReadError, 0), "read"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := abortError(&tt.event)
			if err == nil {
				t.Fatal("abortError should never return nil")
			}
			if !strings.Contains(err.Error(), tt.substr) {
				t.Errorf("error %q should contain %q", err.Error(), tt.substr)
			}
		})
	}
}
