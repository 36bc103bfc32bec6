// Package testutil provides testing utilities for extedit tests.
package testutil

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"
)

// SkipIfNoSh skips the test if a POSIX shell is not installed.
func SkipIfNoSh(t *testing.T) {
	t.Helper()

	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not found in PATH, skipping test")
	}
}

// WriteFile creates a file with the given content in dir and returns its path.
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

// FakeEditor creates an executable shell script that simulates an editor:
// it overwrites the file given as its first argument with content and exits
// with exitCode. Returns the script path.
func FakeEditor(t *testing.T, content string, exitCode int) string {
	t.Helper()

	SkipIfNoSh(t)

	dir := t.TempDir()
	script := filepath.Join(dir, "fake-editor.sh")
	body := fmt.Sprintf("#!/bin/sh\nprintf '%%s' %q > \"$1\"\nexit %d\n", content, exitCode)
	if err := os.WriteFile(script, []byte(body), 0700); err != nil {
		t.Fatalf("failed to write fake editor script: %v", err)
	}
	return script
}

// FakeEditorNoop creates an executable shell script that leaves the file
// untouched and exits with exitCode.
func FakeEditorNoop(t *testing.T, exitCode int) string {
	t.Helper()

	SkipIfNoSh(t)

	dir := t.TempDir()
	script := filepath.Join(dir, "noop-editor.sh")
	body := fmt.Sprintf("#!/bin/sh\nexit %d\n", exitCode)
	if err := os.WriteFile(script, []byte(body), 0700); err != nil {
		t.Fatalf("failed to write fake editor script: %v", err)
	}
	return script
}

// WaitFor polls cond until it returns true or the timeout elapses.
// Fails the test on timeout.
func WaitFor(t *testing.T, timeout time.Duration, what string, cond func() bool) {
	t.Helper()

	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", what)
}
