package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"extedit/internal/event"
)

// busEventMsg wraps a session event for delivery through the bubbletea
// update loop.
type busEventMsg struct {
	event event.Event
}

// editStartedMsg is sent when the external editor has been spawned.
type editStartedMsg struct{}

// errMsg wraps an error for display in the UI
type errMsg struct {
	err error
}

// listenForEvents delivers the next session event from ch as a message.
// Reissue it after every busEventMsg to keep the stream flowing.
func listenForEvents(ch <-chan event.Event) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return nil
		}
		return busEventMsg{event: ev}
	}
}
