// Package tui provides an interactive terminal frontend for edit cycles: it
// shows the current buffer, hands it to the external editor on demand, and
// folds finished edits and intermediate saves back into the view. Pair it
// with a GUI editor or watch mode; a terminal editor would fight the TUI for
// the screen.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"extedit/internal/editor"
	"extedit/internal/event"
	"extedit/internal/tui/styles"
)

// eventBuffer is the size of the bus-to-update-loop channel. Events beyond
// it are dropped rather than blocking the bus.
const eventBuffer = 64

// Model is the bubbletea model for the edit frontend.
type Model struct {
	session *editor.Session
	events  chan event.Event

	buffer   string
	vp       viewport.Model
	filename string // non-empty when editing an existing file
	editing  bool
	statuses []string
	width    int
	height   int
	err      error
}

// New creates a Model around session. initial seeds the buffer; filename,
// when non-empty, makes edits operate on that file instead of a temp file.
// The model subscribes to bus for the session's events.
func New(session *editor.Session, bus *event.Bus, initial, filename string) *Model {
	m := &Model{
		session:  session,
		events:   make(chan event.Event, eventBuffer),
		filename: filename,
		vp:       viewport.New(76, 20),
	}
	m.setBuffer(initial)

	bus.SubscribeAll(func(ev event.Event) {
		select {
		case m.events <- ev:
		default:
			// A stalled UI must not block the session.
		}
	})

	return m
}

// setBuffer updates the buffer and the viewport rendering it.
func (m *Model) setBuffer(text string) {
	m.buffer = text
	if text == "" {
		m.vp.SetContent(styles.Muted.Render("(empty buffer)"))
		return
	}
	m.vp.SetContent(text)
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return listenForEvents(m.events)
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		// Leave room for the box border/padding and the chrome around it.
		m.vp.Width = max(msg.Width-6, 20)
		m.vp.Height = max(msg.Height-9, 3)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case editStartedMsg:
		m.editing = true
		m.pushStatus(styles.Info.Render("Editor opened; waiting for it to exit"))
		return m, nil

	case errMsg:
		m.err = msg.err
		m.pushStatus(styles.Error.Render(msg.err.Error()))
		return m, nil

	case busEventMsg:
		m.handleEvent(msg.event)
		return m, listenForEvents(m.events)
	}

	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "e":
		if m.editing {
			m.pushStatus(styles.Warning.Render("An edit is already in progress"))
			return m, nil
		}
		return m, m.startEdit()
	}

	// Everything else scrolls the buffer view.
	var cmd tea.Cmd
	m.vp, cmd = m.vp.Update(msg)
	return m, cmd
}

// startEdit launches the external editor on the current buffer or file.
func (m *Model) startEdit() tea.Cmd {
	return func() tea.Msg {
		var err error
		if m.filename != "" {
			err = m.session.EditFile(m.filename)
		} else {
			err = m.session.EditText(m.buffer, 0)
		}
		if err != nil {
			return errMsg{err: err}
		}
		return editStartedMsg{}
	}
}

// handleEvent folds a session event into the model.
func (m *Model) handleEvent(ev event.Event) {
	switch ev := ev.(type) {
	case event.EditFinishedEvent:
		m.setBuffer(ev.Text)
		m.editing = false
		m.err = nil
		m.pushStatus(styles.Info.Render("Edit finished"))

	case event.FileUpdatedEvent:
		m.setBuffer(ev.Text)
		m.pushStatus(styles.Muted.Render("File saved"))

	case event.EditAbortedEvent:
		m.editing = false
		m.pushStatus(styles.Warning.Render(fmt.Sprintf("Edit aborted (%s)", ev.Reason)))

	case event.MessageEvent:
		switch ev.Level {
		case "error":
			m.pushStatus(styles.Error.Render(ev.Text))
		case "warning":
			m.pushStatus(styles.Warning.Render(ev.Text))
		default:
			m.pushStatus(styles.Info.Render(ev.Text))
		}
	}
}

// pushStatus appends a status line, keeping only the most recent few.
func (m *Model) pushStatus(line string) {
	const keep = 3
	m.statuses = append(m.statuses, line)
	if len(m.statuses) > keep {
		m.statuses = m.statuses[len(m.statuses)-keep:]
	}
}

// View implements tea.Model.
func (m *Model) View() string {
	var sb strings.Builder

	title := "extedit"
	if m.filename != "" {
		title += " - " + m.filename
	}
	sb.WriteString(styles.Title.Render(title))
	sb.WriteString("\n")

	if m.editing {
		sb.WriteString(styles.EditingBadge.Render("EDITING"))
		sb.WriteString("\n")
	}

	box := styles.ContentBox
	if m.width > 4 {
		box = box.Width(m.width - 4)
	}
	sb.WriteString(box.Render(m.vp.View()))
	sb.WriteString("\n")

	for _, line := range m.statuses {
		sb.WriteString(styles.StatusBar.Render(line))
		sb.WriteString("\n")
	}

	sb.WriteString(styles.Help.Render("e: edit in external editor • up/down: scroll • q: quit"))
	sb.WriteString("\n")

	return sb.String()
}

// Buffer returns the current buffer contents.
func (m *Model) Buffer() string {
	return m.buffer
}

// Run drives the model in a full-screen bubbletea program until the user
// quits, then returns the final buffer contents.
func Run(m *Model) (string, error) {
	p := tea.NewProgram(m, tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return "", err
	}
	if fm, ok := final.(*Model); ok {
		return fm.Buffer(), nil
	}
	return m.Buffer(), nil
}
