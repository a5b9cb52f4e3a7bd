package tui

import (
	"fmt"
	"slices"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/zarlcorp/core/pkg/zstyle"
	"github.com/zarlcorp/zsignup/internal/identity"
)

// historyModel lists records from the account log, newest first.
type historyModel struct {
	records []identity.Record
	cursor  int
	errMsg  string
}

// viewRecordMsg opens a logged record in the guide.
type viewRecordMsg struct {
	record identity.Record
}

func newHistoryModel(recs []identity.Record, err error) historyModel {
	recs = slices.Clone(recs)
	slices.Reverse(recs)

	m := historyModel{records: recs}
	if err != nil {
		m.errMsg = err.Error()
	}
	return m
}

func (m historyModel) Init() tea.Cmd {
	return nil
}

func (m historyModel) Update(msg tea.Msg) (historyModel, tea.Cmd) {
	k, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	if key.Matches(k, zstyle.KeyQuit) {
		return m, tea.Quit
	}

	if key.Matches(k, zstyle.KeyBack) {
		return m, func() tea.Msg { return navigateMsg{view: viewMenu} }
	}

	if len(m.records) == 0 {
		return m, nil
	}

	if key.Matches(k, zstyle.KeyUp) {
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil
	}

	if key.Matches(k, zstyle.KeyDown) {
		if m.cursor < len(m.records)-1 {
			m.cursor++
		}
		return m, nil
	}

	if key.Matches(k, zstyle.KeyEnter) {
		rec := m.records[m.cursor]
		return m, func() tea.Msg { return viewRecordMsg{record: rec} }
	}

	return m, nil
}

func (m historyModel) View() string {
	if m.errMsg != "" {
		return "\n  " + zstyle.StatusErr.Render(m.errMsg) + "\n"
	}

	if len(m.records) == 0 {
		return "\n  " + zstyle.MutedText.Render("no accounts generated yet") + "\n"
	}

	accentStyle := lipgloss.NewStyle().Foreground(accent).Bold(true)

	s := "\n"
	for i, r := range m.records {
		when := zstyle.MutedText.Render(r.CreatedAt.Format("2006-01-02 15:04"))
		line := fmt.Sprintf("%-28s %s  %s", r.Email, r.DisplayName, when)
		if i == m.cursor {
			s += "  " + accentStyle.Render("▸") + " " + line + "\n"
		} else {
			s += "    " + line + "\n"
		}
	}
	return s
}
