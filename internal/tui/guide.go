package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/zarlcorp/core/pkg/zstyle"
	"github.com/zarlcorp/zsignup/internal/clipboard"
	"github.com/zarlcorp/zsignup/internal/identity"
)

// guideModel walks the user through the signup form one field at a time.
type guideModel struct {
	record  identity.Record
	fields  []identity.Field
	clip    clipboard.Copier
	back    viewID
	cursor  int
	copied  map[int]bool
	flash   string
	warning string
}

// flashMsg clears the flash after a timeout.
type flashMsg struct{}

// openSignupMsg asks the root model to reopen the signup page.
type openSignupMsg struct{}

func newGuideModel(rec identity.Record, clip clipboard.Copier, back viewID) guideModel {
	fields := append(rec.FormFields(),
		identity.Field{Label: "Date of birth", Value: rec.DateOfBirth},
		identity.Field{Label: "Country", Value: rec.Country},
	)
	return guideModel{
		record: rec,
		fields: fields,
		clip:   clip,
		back:   back,
		copied: make(map[int]bool),
	}
}

func (m guideModel) Init() tea.Cmd {
	return nil
}

func (m guideModel) Update(msg tea.Msg) (guideModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case flashMsg:
		m.flash = ""
		return m, nil
	}

	return m, nil
}

func (m guideModel) handleKey(msg tea.KeyMsg) (guideModel, tea.Cmd) {
	if key.Matches(msg, zstyle.KeyQuit) {
		return m, tea.Quit
	}

	if key.Matches(msg, zstyle.KeyBack) {
		back := m.back
		return m, func() tea.Msg { return navigateMsg{view: back} }
	}

	if key.Matches(msg, zstyle.KeyUp) {
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil
	}

	if key.Matches(msg, zstyle.KeyDown) {
		if m.cursor < len(m.fields)-1 {
			m.cursor++
		}
		return m, nil
	}

	if key.Matches(msg, zstyle.KeyEnter) {
		f := m.fields[m.cursor]
		if err := m.clip.Copy(f.Value); err != nil {
			return m.setFlash("copy failed, type it in: " + f.Value), clearFlashAfter()
		}
		m.copied[m.cursor] = true
		m = m.setFlash(fmt.Sprintf("copied %s, paste it into the form", f.Label))
		// advance so repeated enter walks the form in order
		if m.cursor < len(m.fields)-1 {
			m.cursor++
		}
		return m, clearFlashAfter()
	}

	switch msg.String() {
	case "c":
		if err := m.clip.Copy(m.record.Format()); err != nil {
			return m.setFlash("copy: " + err.Error()), clearFlashAfter()
		}
		return m.setFlash("copied all!"), clearFlashAfter()

	case "o":
		return m, func() tea.Msg { return openSignupMsg{} }

	case "n":
		return m, func() tea.Msg { return startSignupMsg{} }
	}

	return m, nil
}

func (m guideModel) setFlash(msg string) guideModel {
	m.flash = msg
	return m
}

func clearFlashAfter() tea.Cmd {
	return tea.Tick(2*time.Second, func(time.Time) tea.Msg {
		return flashMsg{}
	})
}

func (m guideModel) View() string {
	accentStyle := lipgloss.NewStyle().Foreground(accent).Bold(true)

	var s string
	s += "\n"
	for i, f := range m.fields {
		label := zstyle.MutedText.Render(fmt.Sprintf("%-20s", f.Label))
		mark := " "
		if m.copied[i] {
			mark = zstyle.StatusOK.Render("✓")
		}
		if i == m.cursor {
			s += fmt.Sprintf("  %s %s %s %s\n", accentStyle.Render("▸"), mark, label, f.Value)
		} else {
			s += fmt.Sprintf("    %s %s %s\n", mark, label, f.Value)
		}
	}

	s += "\n  " + zstyle.MutedText.Render("select the country and date of birth in the form, then accept the terms of service") + "\n\n"

	if m.warning != "" {
		s += "  " + zstyle.StatusWarn.Render(m.warning) + "\n"
	}

	// always reserve a line for flash to prevent layout shift
	if m.flash != "" {
		s += "  " + zstyle.StatusOK.Render(m.flash) + "\n"
	} else {
		s += "\n"
	}
	return s
}
