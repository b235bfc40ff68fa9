package components

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mmcdole/reel/internal/tui/styles"
)

const (
	fieldUsername = iota
	fieldPassword
)

// LoginModal collects the admin username and password
type LoginModal struct {
	visible bool
	focus   int
	inputs  [2]textinput.Model
	err     string
	busy    bool
}

// NewLoginModal creates a new login modal
func NewLoginModal() LoginModal {
	user := newField("User     ", "username", 64)

	pass := newField("Password ", "password", 128)
	pass.EchoMode = textinput.EchoPassword
	pass.EchoCharacter = '•'

	return LoginModal{inputs: [2]textinput.Model{user, pass}}
}

// Show displays the modal with the username prefilled
func (m *LoginModal) Show(username string) tea.Cmd {
	m.visible = true
	m.err = ""
	m.busy = false
	m.inputs[fieldUsername].SetValue(username)
	m.inputs[fieldPassword].SetValue("")

	m.focus = fieldUsername
	if username != "" {
		m.focus = fieldPassword
	}
	return m.focusCurrent()
}

// Hide dismisses the modal and forgets the password
func (m *LoginModal) Hide() {
	m.visible = false
	m.inputs[fieldPassword].SetValue("")
	for i := range m.inputs {
		m.inputs[i].Blur()
	}
}

// IsVisible returns whether the modal is shown
func (m LoginModal) IsVisible() bool {
	return m.visible
}

// SetError shows a failed attempt and clears the password
func (m *LoginModal) SetError(msg string) {
	m.err = msg
	m.busy = false
	m.inputs[fieldPassword].SetValue("")
	m.focus = fieldPassword
	m.focusCurrent()
}

// SetBusy marks a login attempt in flight
func (m *LoginModal) SetBusy(busy bool) {
	m.busy = busy
}

// Credentials returns the entered username and password
func (m LoginModal) Credentials() (string, string) {
	return m.inputs[fieldUsername].Value(), m.inputs[fieldPassword].Value()
}

func (m *LoginModal) focusCurrent() tea.Cmd {
	for i := range m.inputs {
		m.inputs[i].Blur()
	}
	return m.inputs[m.focus].Focus()
}

// Update handles input events, returns (modal, cmd, submitted)
func (m LoginModal) Update(msg tea.Msg) (LoginModal, tea.Cmd, bool) {
	if !m.visible || m.busy {
		return m, nil, false
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			m.Hide()
			return m, nil, false
		case "tab", "shift+tab", "up", "down":
			m.focus = 1 - m.focus
			return m, m.focusCurrent(), false
		case "enter":
			if m.focus == fieldUsername {
				m.focus = fieldPassword
				return m, m.focusCurrent(), false
			}
			user, pass := m.Credentials()
			if user == "" || pass == "" {
				m.err = "username and password are required"
				return m, nil, false
			}
			return m, nil, true
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd, false
}

// View renders the login modal
func (m LoginModal) View() string {
	if !m.visible {
		return ""
	}

	status := styles.DimStyle.Render("enter sign in · tab switch · esc cancel")
	switch {
	case m.busy:
		status = styles.DimStyle.Render("Signing in...")
	case m.err != "":
		status = styles.ErrorStyle.Render(m.err)
	}

	return renderModal("Admin Login", []string{
		m.inputs[fieldUsername].View(),
		m.inputs[fieldPassword].View(),
	}, status)
}
