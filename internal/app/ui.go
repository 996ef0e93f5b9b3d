package app

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/jorkle/chatscreen/internal/chat"
	"github.com/jorkle/chatscreen/internal/models"
)

// rows taken by everything around the message list in the chat view
const chromeHeight = 8

// Model is the Bubbletea model of the chat screen. All screen state lives in
// state and is only changed through chat.Reduce.
type Model struct {
	app   *App
	state chat.State

	input    textinput.Model
	viewport viewport.Model

	recordingTime time.Duration
	scrolls       int
	width         int
	height        int
}

// NewModel creates a new Bubbletea model
func NewModel(app *App) *Model {
	input := textinput.New()
	input.Placeholder = "Type your message..."
	input.Prompt = "› "
	input.Focus()

	m := &Model{
		app:      app,
		state:    chat.NewState(app.config.Greeting),
		input:    input,
		viewport: viewport.New(80, 24-chromeHeight),
		width:    80,
		height:   24,
	}
	m.refresh()
	return m
}

// Init fetches the camera and media library permissions. Rendering does not
// wait for them.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.app.FetchPermissionsCmd())
}

// State returns the current screen state
func (m *Model) State() chat.State {
	return m.state
}

// Update handles messages and updates the model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = msg.Width
		m.viewport.Height = max(msg.Height-chromeHeight, 3)
		m.input.Width = max(msg.Width-6, 10)
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case recordingTickMsg:
		// ticks of an earlier session stop here
		rec := m.state.Recording
		if rec.State == chat.Recording && rec.Handle.Valid() && rec.Handle.ID == msg.recording {
			m.recordingTime += msg.step
			return m, m.tickRecording(msg.recording)
		}
		return m, nil

	case chat.Event:
		return m, m.dispatch(msg)
	}

	return m, nil
}

// dispatch runs ev through the reducer and schedules the resulting effects.
// The viewport takes the new content before any scroll is applied.
func (m *Model) dispatch(ev chat.Event) tea.Cmd {
	wasRecording := m.state.Recording.Handle.Valid()

	next, effects, err := chat.Reduce(m.state, ev)
	if err != nil {
		m.app.logger.Warn("gesture failed", "event", fmt.Sprintf("%T", ev), "error", err)
	}
	m.state = next
	m.refresh()

	var cmds []tea.Cmd
	for _, e := range effects {
		if _, ok := e.(chat.ScrollToEnd); ok {
			m.viewport.GotoBottom()
			m.scrolls++
			continue
		}
		if cmd := m.app.effectCmd(e); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}

	if !wasRecording && m.state.Recording.State == chat.Recording && m.state.Recording.Handle.Valid() {
		m.recordingTime = 0
		cmds = append(cmds, m.tickRecording(m.state.Recording.Handle.ID))
	}

	return tea.Batch(cmds...)
}

// refresh re-renders the message list into the viewport
func (m *Model) refresh() {
	m.viewport.SetContent(m.renderLog())
}

// handleKeyPress routes keys by capture mode
func (m *Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	switch m.state.Mode {
	case chat.Chat:
		return m.handleChatKeys(msg)
	case chat.CameraLive:
		return m.handleCameraKeys(msg)
	case chat.PhotoPreview:
		return m.handlePreviewKeys(msg)
	default:
		return m, nil
	}
}

// handleChatKeys handles the input bar, microphone, camera and playback keys
func (m *Model) handleChatKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		before := m.state.Log.Len()
		cmd := m.dispatch(chat.TextSubmitted{Text: m.input.Value()})
		if m.state.Log.Len() > before {
			m.input.Reset()
		}
		return m, cmd
	case "ctrl+r":
		return m, m.toggleMic()
	case "ctrl+o":
		return m, m.dispatch(chat.CameraOpened{})
	case "ctrl+p":
		voice, ok := m.state.Log.LastOfKind(models.AudioKind)
		if !ok {
			return m, nil
		}
		return m, m.dispatch(chat.PlayRequested{MessageID: voice.ID})
	case "pgup", "pgdown", "up", "down":
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// toggleMic stands in for press-and-hold: terminals report key presses but
// not releases, so the first press starts the session and the next ends it.
func (m *Model) toggleMic() tea.Cmd {
	if m.state.Recording.Active() {
		return m.dispatch(chat.MicReleased{})
	}
	return m.dispatch(chat.MicPressed{})
}

// handleCameraKeys handles the live camera view
func (m *Model) handleCameraKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter", " ":
		return m, m.dispatch(chat.ShutterPressed{})
	case "esc", "q":
		return m, m.dispatch(chat.CameraClosed{})
	}
	return m, nil
}

// handlePreviewKeys handles send / save / discard of the captured photo
func (m *Model) handlePreviewKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "s", "enter":
		return m, m.dispatch(chat.PhotoSent{})
	case "w":
		return m, m.dispatch(chat.PhotoSaveRequested{})
	case "d", "esc":
		return m, m.dispatch(chat.PhotoDiscarded{})
	}
	return m, nil
}

type recordingTickMsg struct {
	recording string
	step      time.Duration
}

// tickRecording creates a command to update the recording time of the
// session with the given handle ID
func (m *Model) tickRecording(recording string) tea.Cmd {
	const step = 100 * time.Millisecond
	return tea.Tick(step, func(time.Time) tea.Msg {
		return recordingTickMsg{recording: recording, step: step}
	})
}
