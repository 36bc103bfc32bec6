package event

import "time"

// Event type identifiers published by the editor session.
const (
	TypeEditFinished = "edit.finished"
	TypeFileUpdated  = "edit.file_updated"
	TypeEditAborted  = "edit.aborted"
	TypeMessage      = "message.posted"
)

// Event is the interface that all events must implement.
// It provides a common way to identify and timestamp events.
type Event interface {
	// EventType returns a string identifier for this event type.
	// Convention: "category.action" (e.g., "edit.finished")
	EventType() string

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// baseEvent provides common fields for all events.
// Embed this in concrete event types to satisfy the Event interface.
type baseEvent struct {
	eventType string
	timestamp time.Time
}

func (e baseEvent) EventType() string    { return e.eventType }
func (e baseEvent) Timestamp() time.Time { return e.timestamp }

// newBaseEvent creates a baseEvent with the current time.
func newBaseEvent(eventType string) baseEvent {
	return baseEvent{
		eventType: eventType,
		timestamp: time.Now(),
	}
}

// EditFinishedEvent is emitted when an edit cycle completes successfully:
// the editor exited normally with code zero and the file was read back.
// It is emitted at most once per cycle.
type EditFinishedEvent struct {
	baseEvent
	Filename string // Path of the file that was edited
	Text     string // Final edited content
}

// NewEditFinishedEvent creates an EditFinishedEvent.
func NewEditFinishedEvent(filename, text string) EditFinishedEvent {
	return EditFinishedEvent{
		baseEvent: newBaseEvent(TypeEditFinished),
		Filename:  filename,
		Text:      text,
	}
}

// FileUpdatedEvent is emitted while watch mode is active, each time the
// editor saves the file before exiting. Consecutive identical contents are
// suppressed by the session.
type FileUpdatedEvent struct {
	baseEvent
	Filename string
	Text     string
}

// NewFileUpdatedEvent creates a FileUpdatedEvent.
func NewFileUpdatedEvent(filename, text string) FileUpdatedEvent {
	return FileUpdatedEvent{
		baseEvent: newBaseEvent(TypeFileUpdated),
		Filename:  filename,
		Text:      text,
	}
}

// AbortReason identifies why an edit cycle ended without a result.
type AbortReason string

// Abort reasons carried by EditAbortedEvent.
const (
	AbortCrashed    AbortReason = "crashed"     // Editor terminated abnormally
	AbortExitCode   AbortReason = "exit_code"   // Editor exited non-zero
	AbortReadError  AbortReason = "read_error"  // Edited file could not be read back
	AbortStartError AbortReason = "start_error" // Editor process failed to start
)

// EditAbortedEvent is emitted when an edit cycle ends without producing a
// result.
type EditAbortedEvent struct {
	baseEvent
	Filename string
	Reason   AbortReason
	ExitCode int // Meaningful only for AbortExitCode
}

// NewEditAbortedEvent creates an EditAbortedEvent.
func NewEditAbortedEvent(filename string, reason AbortReason, exitCode int) EditAbortedEvent {
	return EditAbortedEvent{
		baseEvent: newBaseEvent(TypeEditAborted),
		Filename:  filename,
		Reason:    reason,
		ExitCode:  exitCode,
	}
}

// MessageEvent carries a user-facing advisory message. The message sink
// publishes these so a TUI can render them without the session knowing
// about the display layer.
type MessageEvent struct {
	baseEvent
	Level string // "info", "warning", or "error"
	Text  string
}

// NewMessageEvent creates a MessageEvent.
func NewMessageEvent(level, text string) MessageEvent {
	return MessageEvent{
		baseEvent: newBaseEvent(TypeMessage),
		Level:     level,
		Text:      text,
	}
}
