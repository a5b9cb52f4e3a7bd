// Package tui implements the root Bubble Tea model for zsignup.
package tui

import (
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/zarlcorp/core/pkg/zstyle"
	"github.com/zarlcorp/zsignup/internal/accountlog"
	"github.com/zarlcorp/zsignup/internal/browser"
	"github.com/zarlcorp/zsignup/internal/clipboard"
	"github.com/zarlcorp/zsignup/internal/identity"
)

type viewID int

const (
	viewMenu viewID = iota
	viewEmail
	viewCountry
	viewGuide
	viewHistory
)

var accent = zstyle.ZburnAccent

// Deps holds what the TUI needs from the rest of the program.
type Deps struct {
	Gen         *identity.Generator
	Log         *accountlog.Log
	Clip        clipboard.Copier
	Browser     browser.Opener
	TempMailURL string
	SignupURL   string
	Logger      *slog.Logger
}

// browserErrMsg reports a failed browser launch.
type browserErrMsg struct {
	err error
}

// Model is the root TUI model.
type Model struct {
	version string
	deps    Deps

	active  viewID
	menu    menuModel
	email   emailModel
	country countryModel
	guide   guideModel
	history historyModel

	// shown under the active view until the next navigation
	notice string

	// terminal dimensions
	width  int
	height int
}

// New creates the root TUI model.
func New(version string, d Deps) Model {
	if d.Logger == nil {
		d.Logger = slog.Default()
	}
	if d.Browser == nil {
		d.Browser = browser.Nop{}
	}
	return Model{
		version: version,
		deps:    d,
		active:  viewMenu,
		menu:    newMenuModel(version, loggedCount(d.Log)),
	}
}

// loggedCount returns the number of records in the log, or zero when it
// cannot be read.
func loggedCount(l *accountlog.Log) int {
	if l == nil {
		return 0
	}
	recs, err := l.Records()
	if err != nil {
		return 0
	}
	return len(recs)
}

func (m Model) Init() tea.Cmd {
	return m.menu.Init()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case navigateMsg:
		return m.navigate(msg.view)

	case startSignupMsg:
		m.notice = ""
		m.email = newEmailModel()
		m.active = viewEmail
		return m, tea.Batch(m.email.Init(), m.openURL(m.deps.TempMailURL))

	case editEmailMsg:
		// the temp mail page is already open
		m.email = newEmailModel()
		m.email.input.SetValue(msg.email)
		m.active = viewEmail
		return m, m.email.Init()

	case emailSubmitMsg:
		m.country = newCountryModel(msg.email, m.deps.Gen.Config().DefaultCountry)
		m.active = viewCountry
		return m, m.country.Init()

	case countrySelectedMsg:
		return m.createRecord(msg.email, msg.country)

	case viewRecordMsg:
		m.notice = ""
		m.guide = newGuideModel(msg.record, m.deps.Clip, viewHistory)
		m.active = viewGuide
		return m, m.guide.Init()

	case openSignupMsg:
		return m, m.openURL(m.deps.SignupURL)

	case browserErrMsg:
		m.notice = "could not open the browser, visit the page manually: " + msg.err.Error()
		return m, nil
	}

	return m.updateActive(msg)
}

func (m Model) createRecord(email, country string) (tea.Model, tea.Cmd) {
	rec, err := m.deps.Gen.Account(email, country)
	if err != nil {
		m.country.errMsg = err.Error()
		return m, nil
	}

	m.notice = ""
	m.guide = newGuideModel(rec, m.deps.Clip, viewMenu)

	if m.deps.Log != nil {
		if err := m.deps.Log.Append(rec); err != nil {
			m.deps.Logger.Warn("append account log", "path", m.deps.Log.Name(), "err", err)
			m.guide.warning = "could not save to " + m.deps.Log.Name() + ", copy the details before leaving"
		}
	}

	m.active = viewGuide
	return m, tea.Batch(m.guide.Init(), m.openURL(m.deps.SignupURL))
}

// openURL launches url in the background and reports failure as a message.
func (m Model) openURL(url string) tea.Cmd {
	opener := m.deps.Browser
	return func() tea.Msg {
		if err := opener.Open(url); err != nil {
			return browserErrMsg{err: err}
		}
		return nil
	}
}

func (m Model) navigate(view viewID) (tea.Model, tea.Cmd) {
	m.notice = ""
	switch view {
	case viewMenu:
		m.menu = newMenuModel(m.version, loggedCount(m.deps.Log))
		m.active = viewMenu
		return m, m.menu.Init()

	case viewHistory:
		var recs []identity.Record
		var err error
		if m.deps.Log != nil {
			recs, err = m.deps.Log.Records()
		}
		m.history = newHistoryModel(recs, err)
		m.active = viewHistory
		return m, m.history.Init()
	}

	m.active = view
	return m, nil
}

func (m Model) View() string {
	// the menu carries its own title
	if m.active == viewMenu {
		return m.menu.View()
	}

	var content string
	switch m.active {
	case viewEmail:
		content = m.email.View()
	case viewCountry:
		content = m.country.View()
	case viewGuide:
		content = m.guide.View()
	case viewHistory:
		content = m.history.View()
	}

	if m.notice != "" {
		content += "  " + zstyle.StatusWarn.Render(m.notice) + "\n"
	}

	header := zstyle.RenderHeader("zsignup", viewTitle(m.active), accent)
	sep := zstyle.RenderSeparator(m.width)
	footer := zstyle.RenderFooter(helpFor(m.active))

	return "\n" + header + "\n" + sep + "\n" + content + "\n" + footer + "\n"
}

// viewTitle returns the display title for each view.
func viewTitle(id viewID) string {
	switch id {
	case viewEmail:
		return "Temporary Email"
	case viewCountry:
		return "Country"
	case viewGuide:
		return "Signup Form"
	case viewHistory:
		return "Generated Accounts"
	}
	return ""
}

// helpFor returns keybinding pairs for each view's footer.
func helpFor(id viewID) []zstyle.HelpPair {
	switch id {
	case viewEmail:
		return []zstyle.HelpPair{
			{Key: "enter", Desc: "submit"},
			{Key: "esc", Desc: "back"},
			{Key: "ctrl+c", Desc: "quit"},
		}
	case viewCountry:
		return []zstyle.HelpPair{
			{Key: "j/k", Desc: "navigate"},
			{Key: "enter", Desc: "select"},
			{Key: "esc", Desc: "back"},
			{Key: "q", Desc: "quit"},
		}
	case viewGuide:
		return []zstyle.HelpPair{
			{Key: "enter", Desc: "copy field"},
			{Key: "c", Desc: "copy all"},
			{Key: "o", Desc: "open form"},
			{Key: "n", Desc: "new"},
			{Key: "esc", Desc: "back"},
			{Key: "q", Desc: "quit"},
		}
	case viewHistory:
		return []zstyle.HelpPair{
			{Key: "j/k", Desc: "navigate"},
			{Key: "enter", Desc: "view"},
			{Key: "esc", Desc: "back"},
			{Key: "q", Desc: "quit"},
		}
	}
	return nil
}

func (m Model) updateActive(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.active {
	case viewMenu:
		m.menu, cmd = m.menu.Update(msg)
	case viewEmail:
		m.email, cmd = m.email.Update(msg)
	case viewCountry:
		m.country, cmd = m.country.Update(msg)
	case viewGuide:
		m.guide, cmd = m.guide.Update(msg)
	case viewHistory:
		m.history, cmd = m.history.Update(msg)
	}

	return m, cmd
}
