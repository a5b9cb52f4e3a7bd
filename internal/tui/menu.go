package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/zarlcorp/core/pkg/zstyle"
)

type menuChoice int

const (
	menuCreate menuChoice = iota
	menuHistory
	menuQuit
)

var menuItems = []string{
	"Create new account details",
	"Browse generated accounts",
	"Quit",
}

// menuModel is the main menu view.
type menuModel struct {
	cursor  int
	version string
	logged  int
}

// navigateMsg tells the root model to switch views.
type navigateMsg struct {
	view viewID
}

// startSignupMsg begins a new guided signup.
type startSignupMsg struct{}

func newMenuModel(version string, logged int) menuModel {
	return menuModel{version: version, logged: logged}
}

func (m menuModel) Init() tea.Cmd {
	return nil
}

func (m menuModel) Update(msg tea.Msg) (menuModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, zstyle.KeyQuit) {
			return m, tea.Quit
		}

		if key.Matches(msg, zstyle.KeyUp) {
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil
		}

		if key.Matches(msg, zstyle.KeyDown) {
			if m.cursor < len(menuItems)-1 {
				m.cursor++
			}
			return m, nil
		}

		if key.Matches(msg, zstyle.KeyEnter) {
			return m, m.selectItem()
		}
	}

	return m, nil
}

func (m menuModel) selectItem() tea.Cmd {
	switch menuChoice(m.cursor) {
	case menuCreate:
		return func() tea.Msg { return startSignupMsg{} }
	case menuHistory:
		return func() tea.Msg { return navigateMsg{view: viewHistory} }
	case menuQuit:
		return tea.Quit
	}
	return nil
}

func (m menuModel) View() string {
	indent := lipgloss.NewStyle().MarginLeft(2)
	logo := indent.Render(zstyle.StyledLogo(lipgloss.NewStyle().Foreground(accent)))
	name := indent.Render(zstyle.MutedText.Render("zsignup " + m.version))

	s := fmt.Sprintf("\n%s\n%s\n\n", logo, name)

	for i, item := range menuItems {
		mi := zstyle.MenuItem{Label: item, Active: m.cursor == i}
		if menuChoice(i) == menuHistory && m.logged > 0 {
			mi.Count = fmt.Sprintf("(%d)", m.logged)
		}
		s += zstyle.RenderMenuItem(mi, accent) + "\n"
	}

	s += "\n  " + zstyle.MutedText.Render("j/k navigate  enter select  q quit") + "\n\n"
	return s
}
