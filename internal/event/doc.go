// Package event provides a pub-sub event bus for decoupled inter-component
// communication in extedit.
//
// The editor session publishes the outcome of an edit cycle as events rather
// than invoking its consumers directly. The CLI and the TUI subscribe to the
// events they care about without the session knowing who is listening.
//
// # Main Types
//
//   - [Event]: Interface that all events must implement, providing EventType() and Timestamp()
//   - [Bus]: Synchronous pub-sub event dispatcher with thread-safe operations
//   - [Handler]: Function type for event handlers (func(Event))
//
// # Event Types
//
//   - [EditFinishedEvent]: Emitted when an edit cycle completes successfully,
//     carrying the final edited text. At most once per cycle.
//   - [FileUpdatedEvent]: Emitted on each intermediate save while watch mode
//     is active.
//   - [EditAbortedEvent]: Emitted when a cycle ends without a result
//     (crash, non-zero exit, read-back failure, start error).
//   - [MessageEvent]: Emitted for user-facing advisory messages.
//
// # Thread Safety
//
// The [Bus] type is safe for concurrent use. Multiple goroutines can publish
// and subscribe concurrently. Handlers are called synchronously and protected
// against panics - a panicking handler will not prevent other handlers from
// being called.
//
// # Basic Usage
//
//	bus := event.NewBus()
//
//	bus.Subscribe(event.TypeEditFinished, func(e event.Event) {
//	    finished := e.(event.EditFinishedEvent)
//	    fmt.Print(finished.Text)
//	})
//
//	bus.Publish(event.NewEditFinishedEvent("/tmp/extedit-1", "edited text"))
//
// # Event Type Naming Convention
//
// Event types follow the pattern "category.action":
//   - edit.finished, edit.file_updated, edit.aborted
//   - message.posted
package event
