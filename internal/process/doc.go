// Package process defines an interface and types for running the external
// editor as a child process.
//
// The package provides a clean abstraction over the underlying execution
// mechanism (currently os/exec) to enable better testability, separation of
// concerns, and potential alternative implementations. The editor session
// never talks to os/exec directly; it registers completion and error
// callbacks on a Process and reacts to whatever the implementation reports.
package process
