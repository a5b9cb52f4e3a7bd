package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/zarlcorp/core/pkg/zstyle"
	"github.com/zarlcorp/zsignup/internal/identity"
)

// emailModel collects the temporary email address.
type emailModel struct {
	input  textinput.Model
	errMsg string
}

// emailSubmitMsg carries an email that passed the syntax check.
type emailSubmitMsg struct {
	email string
}

func newEmailModel() emailModel {
	ti := textinput.New()
	ti.Placeholder = "name@temp-mail.org"
	ti.Focus()
	ti.CharLimit = 254
	ti.Width = 40

	return emailModel{input: ti}
}

func (m emailModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m emailModel) Update(msg tea.Msg) (emailModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		// q is a valid email character, so only ctrl+c quits here
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}

		if key.Matches(msg, zstyle.KeyBack) {
			return m, func() tea.Msg { return navigateMsg{view: viewMenu} }
		}

		if key.Matches(msg, zstyle.KeyEnter) {
			return m.handleSubmit()
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m emailModel) handleSubmit() (emailModel, tea.Cmd) {
	val := m.input.Value()
	if val == "" {
		return m, nil
	}

	if !identity.ValidEmail(val) {
		m.errMsg = "invalid email format, try again"
		return m, nil
	}

	m.errMsg = ""
	return m, func() tea.Msg {
		return emailSubmitMsg{email: val}
	}
}

func (m emailModel) View() string {
	s := fmt.Sprintf("\n  %s\n  %s\n", "paste your temporary email address:", m.input.View())

	if m.errMsg != "" {
		s += "\n  " + zstyle.StatusErr.Render(m.errMsg) + "\n"
	} else {
		s += "\n\n"
	}
	return s
}
