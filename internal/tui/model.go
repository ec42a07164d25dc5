package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// inputCharLimit caps a single command line.
const inputCharLimit = 256

// Entry is one line of the session transcript.
type Entry struct {
	Input bool // Echoed user input rather than a reply.
	Text  string
}

// Model is the Bubble Tea model for an interactive session: a scrolling
// transcript above a single-line text input.
type Model struct {
	input      textinput.Model
	viewport   viewport.Model
	help       help.Model
	keys       sessionKeys
	dispatch   DispatchFunc
	transcript []Entry
	done       bool
}

// NewModel creates a Model that sends submitted lines to dispatch.
func NewModel(dispatch DispatchFunc) Model {
	ti := textinput.New()
	ti.Placeholder = "add John 5551234567"
	ti.Prompt = PromptStyle().Render("> ")
	ti.CharLimit = inputCharLimit
	ti.Width = 60
	ti.Focus()

	vp := viewport.New(80, 20)
	// Only page keys scroll; everything else belongs to the text input.
	vp.KeyMap = viewport.KeyMap{
		PageUp:   SessionKeyMap().ScrollUp,
		PageDown: SessionKeyMap().ScrollDown,
	}

	m := Model{
		input:      ti,
		viewport:   vp,
		help:       help.New(),
		keys:       SessionKeyMap(),
		dispatch:   dispatch,
		transcript: []Entry{{Text: Welcome}},
	}
	m.refresh()
	return m
}

// Transcript returns a copy of the session transcript.
func (m Model) Transcript() []Entry {
	out := make([]Entry, len(m.transcript))
	copy(out, m.transcript)
	return out
}

// Done reports whether the session has ended.
func (m Model) Done() bool {
	return m.done
}

// Init starts the cursor blink.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.viewport.Width, m.viewport.Height = transcriptSize(msg.Width, msg.Height)
		m.input.Width = max(m.viewport.Width-len("> ")-1, 1)
		m.help.Width = msg.Width
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.done = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Submit):
			return m.submit()
		case key.Matches(msg, m.keys.ScrollUp, m.keys.ScrollDown):
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submit dispatches the current input line and records both sides of the
// exchange in the transcript.
func (m Model) submit() (tea.Model, tea.Cmd) {
	line := m.input.Value()
	m.input.Reset()

	reply, exit := m.dispatch(line)
	m.transcript = append(m.transcript,
		Entry{Input: true, Text: line},
		Entry{Text: reply},
	)
	m.refresh()

	if exit {
		m.done = true
		m.input.Blur()
		return m, tea.Quit
	}
	return m, nil
}

// refresh re-renders the transcript into the viewport and scrolls to the end.
func (m *Model) refresh() {
	var sb strings.Builder
	for i, e := range m.transcript {
		if i > 0 {
			sb.WriteByte('\n')
		}
		if e.Input {
			sb.WriteString(InputStyle().Render("> " + e.Text))
			continue
		}
		sb.WriteString(ReplyStyle().Render(e.Text))
	}
	m.viewport.SetContent(sb.String())
	m.viewport.GotoBottom()
}

// View renders the transcript, the input line and the help bar.
func (m Model) View() string {
	var sb strings.Builder
	sb.WriteString(TranscriptBorder().Render(m.viewport.View()))
	sb.WriteByte('\n')
	if !m.done {
		sb.WriteString(m.input.View())
		sb.WriteByte('\n')
		sb.WriteString(m.help.View(m.keys))
	}
	return sb.String()
}
