package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/jorkle/chatscreen/internal/chat"
	"github.com/jorkle/chatscreen/internal/models"
)

// View renders the UI
func (m *Model) View() string {
	switch m.state.Mode {
	case chat.CameraLive:
		return m.renderCamera()
	case chat.PhotoPreview:
		return m.renderPreview()
	default:
		return m.renderChat()
	}
}

// renderChat renders the message list, input bar and controls
func (m *Model) renderChat() string {
	title := titleStyle.Render("Chat")

	parts := []string{
		lipgloss.JoinHorizontal(lipgloss.Top, title, "  ", m.renderIndicators()),
		m.viewport.View(),
		inputStyle.Width(max(m.width-4, 10)).Render(m.input.View()),
	}
	if status := m.renderStatus(); status != "" {
		parts = append(parts, status)
	}
	parts = append(parts, helpStyle.Render("Enter send • Ctrl+R start/stop voice note • Ctrl+P play last voice note • Ctrl+O camera • Ctrl+C quit"))

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// renderIndicators shows the recording phase and the cached permissions
func (m *Model) renderIndicators() string {
	var items []string

	switch m.state.Recording.State {
	case chat.Recording:
		if m.state.Recording.Handle.Valid() {
			items = append(items, recordingStyle.Render(fmt.Sprintf("● REC %.1fs", m.recordingTime.Seconds())))
		} else {
			items = append(items, recordingStyle.Render("● starting microphone..."))
		}
	case chat.Finalizing:
		items = append(items, processingStyle.Render("saving voice note..."))
	}

	perms := m.state.Permissions
	switch {
	case !perms.Resolved():
		items = append(items, statusStyle.Render("checking permissions..."))
	default:
		items = append(items, statusStyle.Render(fmt.Sprintf("camera %s • library %s",
			yesNo(perms.CameraGranted()), yesNo(perms.MediaLibraryGranted()))))
	}

	return strings.Join(items, "  ")
}

// renderCamera renders the live camera view
func (m *Model) renderCamera() string {
	title := titleStyle.Render("Camera")

	body := "Point the camera and press Enter to take a picture."
	if m.state.Capturing {
		body = processingStyle.Render("Taking picture...")
	} else if !m.state.Permissions.CameraGranted() {
		body = errorStyle.Render("Camera permission is not granted.")
	}

	parts := []string{title, cameraStyle.Render(fmt.Sprintf("%s\n\n%s", m.app.config.CameraDevice, body))}
	if status := m.renderStatus(); status != "" {
		parts = append(parts, status)
	}
	parts = append(parts, helpStyle.Render("Enter/Space take picture • Esc back"))

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// renderPreview renders the captured photo awaiting a decision
func (m *Model) renderPreview() string {
	title := titleStyle.Render("Photo preview")

	var body string
	if p := m.state.PendingPhoto; p != nil {
		body = fmt.Sprintf("%d×%d • %s\n%s", p.Width, p.Height, humanSize(p.Size()), p.Locator)
	}
	if m.state.Saving {
		body += "\n" + processingStyle.Render("Saving to library...")
	}

	help := "S send • D discard"
	if m.state.Permissions.MediaLibraryGranted() {
		help = "S send • W save • D discard"
	}

	parts := []string{title, photoStyle.Render(body)}
	if status := m.renderStatus(); status != "" {
		parts = append(parts, status)
	}
	parts = append(parts, helpStyle.Render(help))

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m *Model) renderStatus() string {
	switch m.state.Status.Kind {
	case chat.StatusError:
		return errorStyle.Render("Error: " + m.state.Status.Text)
	case chat.StatusInfo:
		return statusStyle.Render(m.state.Status.Text)
	}
	return ""
}

// renderLog renders every message, user messages on the right
func (m *Model) renderLog() string {
	msgs := m.state.Log.All()
	if len(msgs) == 0 {
		return statusStyle.Render("No messages yet")
	}

	bubbleWidth := max(m.width*3/4, 20)
	lines := make([]string, 0, len(msgs))
	for _, msg := range msgs {
		bubble := renderMessage(msg, bubbleWidth)
		if msg.Author == models.User {
			bubble = lipgloss.PlaceHorizontal(m.width, lipgloss.Right, bubble)
		}
		lines = append(lines, bubble)
	}
	return strings.Join(lines, "\n")
}

func renderMessage(msg models.Message, width int) string {
	style := systemMessageStyle
	if msg.Author == models.User {
		style = userMessageStyle
	}

	switch p := msg.Payload.(type) {
	case models.AudioPayload:
		return style.Render("▶ Voice note " + p.Duration)
	case models.PhotoPayload:
		return userPhotoStyle.Render(fmt.Sprintf("Photo %d×%d • %s", p.Photo.Width, p.Photo.Height, humanSize(p.Photo.Size())))
	case models.TextPayload:
		return style.MaxWidth(width).Render(p.Text)
	}
	return ""
}

func humanSize(n int) string {
	switch {
	case n >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(n)/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(n)/(1<<10))
	}
	return fmt.Sprintf("%d B", n)
}

func yesNo(ok bool) string {
	if ok {
		return "✓"
	}
	return "✗"
}

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("86"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	inputStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("33")).
			Padding(0, 1)

	userMessageStyle = lipgloss.NewStyle().
				Background(lipgloss.Color("#DCF8C6")).
				Foreground(lipgloss.Color("#000000")).
				Padding(0, 1).
				MarginBottom(1)

	userPhotoStyle = userMessageStyle.
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#DCF8C6")).
			Padding(1, 2)

	systemMessageStyle = lipgloss.NewStyle().
				Background(lipgloss.Color("#E4E4E4")).
				Foreground(lipgloss.Color("#000000")).
				Padding(0, 1).
				MarginBottom(1)

	cameraStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("39")).
			Padding(1, 2)

	photoStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color("86")).
			Padding(1, 2)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			MarginTop(1)

	recordingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	processingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")).
			Bold(true)
)
