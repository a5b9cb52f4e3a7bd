package tui

import (
	"slices"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/zarlcorp/core/pkg/zstyle"
	"github.com/zarlcorp/zsignup/internal/identity"
)

// countryModel picks the country for the record.
type countryModel struct {
	email     string
	countries []string
	def       string
	cursor    int
	errMsg    string
}

// editEmailMsg returns to the email view with the address already typed.
type editEmailMsg struct {
	email string
}

// countrySelectedMsg carries the chosen country with the pending email.
type countrySelectedMsg struct {
	email   string
	country string
}

func newCountryModel(email, def string) countryModel {
	list := identity.Countries()
	return countryModel{
		email:     email,
		countries: list,
		def:       def,
		cursor:    max(slices.Index(list, def), 0),
	}
}

func (m countryModel) Init() tea.Cmd {
	return nil
}

func (m countryModel) Update(msg tea.Msg) (countryModel, tea.Cmd) {
	k, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	if key.Matches(k, zstyle.KeyQuit) {
		return m, tea.Quit
	}

	if key.Matches(k, zstyle.KeyBack) {
		email := m.email
		return m, func() tea.Msg { return editEmailMsg{email: email} }
	}

	if key.Matches(k, zstyle.KeyUp) {
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil
	}

	if key.Matches(k, zstyle.KeyDown) {
		if m.cursor < len(m.countries)-1 {
			m.cursor++
		}
		return m, nil
	}

	if key.Matches(k, zstyle.KeyEnter) {
		sel := countrySelectedMsg{email: m.email, country: m.countries[m.cursor]}
		return m, func() tea.Msg { return sel }
	}

	return m, nil
}

func (m countryModel) View() string {
	accentStyle := lipgloss.NewStyle().Foreground(accent).Bold(true)

	s := "\n  " + zstyle.MutedText.Render("email ") + m.email + "\n\n"

	for i, c := range m.countries {
		line := c
		if c == m.def {
			line += zstyle.MutedText.Render(" (default)")
		}
		if i == m.cursor {
			s += "  " + accentStyle.Render("▸") + " " + line + "\n"
		} else {
			s += "    " + line + "\n"
		}
	}

	s += "\n"
	if m.errMsg != "" {
		s += "  " + zstyle.StatusErr.Render(m.errMsg) + "\n"
	} else {
		s += "\n"
	}
	return s
}
