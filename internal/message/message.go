// Package message delivers user-facing advisory messages. The editor session
// reports asynchronous failures (read-back errors, temp file deletion
// failures, crashes) through a Sink rather than returning errors to a caller
// that has long since regained control.
package message

import (
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"extedit/internal/event"
)

// Sink receives user-facing messages. Implementations must be safe for
// concurrent use; the session may post from its process monitor goroutine.
type Sink interface {
	// Info posts an informational message.
	Info(format string, args ...any)
	// Warn posts a warning.
	Warn(format string, args ...any)
	// Error posts an error message.
	Error(format string, args ...any)
}

var (
	infoStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#60A5FA")) // Blue
	warnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F59E0B")) // Amber
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F87171")) // Red
)

// ConsoleSink renders styled messages to a writer, one per line.
type ConsoleSink struct {
	mu sync.Mutex
	w  io.Writer
}

// NewConsoleSink creates a ConsoleSink writing to w.
func NewConsoleSink(w io.Writer) *ConsoleSink {
	return &ConsoleSink{w: w}
}

// Info posts an informational message.
func (s *ConsoleSink) Info(format string, args ...any) {
	s.write(infoStyle, format, args...)
}

// Warn posts a warning.
func (s *ConsoleSink) Warn(format string, args ...any) {
	s.write(warnStyle, format, args...)
}

// Error posts an error message.
func (s *ConsoleSink) Error(format string, args ...any) {
	s.write(errorStyle, format, args...)
}

func (s *ConsoleSink) write(style lipgloss.Style, format string, args ...any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintln(s.w, style.Render(fmt.Sprintf(format, args...)))
}

// BusSink publishes messages as MessageEvents so UI components can render
// them without a direct dependency on the producer.
type BusSink struct {
	bus *event.Bus
}

// NewBusSink creates a BusSink publishing to bus.
func NewBusSink(bus *event.Bus) *BusSink {
	return &BusSink{bus: bus}
}

// Info posts an informational message.
func (s *BusSink) Info(format string, args ...any) {
	s.bus.Publish(event.NewMessageEvent("info", fmt.Sprintf(format, args...)))
}

// Warn posts a warning.
func (s *BusSink) Warn(format string, args ...any) {
	s.bus.Publish(event.NewMessageEvent("warning", fmt.Sprintf(format, args...)))
}

// Error posts an error message.
func (s *BusSink) Error(format string, args ...any) {
	s.bus.Publish(event.NewMessageEvent("error", fmt.Sprintf(format, args...)))
}

// NopSink discards all messages. Useful for tests.
type NopSink struct{}

// Info discards the message.
func (NopSink) Info(format string, args ...any) {}

// Warn discards the message.
func (NopSink) Warn(format string, args ...any) {}

// Error discards the message.
func (NopSink) Error(format string, args ...any) {}
