package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeanpaul/bookshelf/internal/library"
	"github.com/jeanpaul/bookshelf/internal/logger"
)

type screen int

const (
	screenMenu screen = iota
	screenAdd
	screenRemove
	screenSearch
	screenList
	screenStats
)

type statusKind int

const (
	statusInfo statusKind = iota
	statusSuccess
	statusWarning
	statusError
)

type status struct {
	kind statusKind
	text string
}

func (s status) render() string {
	switch s.kind {
	case statusSuccess:
		return SuccessStyle.Render("✓ " + s.text)
	case statusWarning:
		return WarningStyle.Render("! " + s.text)
	case statusError:
		return ErrorStyle.Render("✗ " + s.text)
	}
	return InfoStyle.Render("● " + s.text)
}

// savedMsg reports the outcome of Save and Exit.
type savedMsg struct{ err error }

// Model is the interactive front end. It owns no book data: every action goes through
// the library it was given, and persistence only happens on Save and Exit.
type Model struct {
	lib     *library.Library
	path    string
	loadErr error
	screen  screen

	menu    MenuModel
	add     addForm
	remove  searchForm
	search  searchForm
	results table.Model
	hasRows bool

	status   status
	dirty    bool
	saving   bool
	quitting bool
	width    int
	height   int
}

// NewModel builds the UI around lib, which was loaded from path with loadErr as the
// reported condition (nil when the file loaded cleanly).
func NewModel(lib *library.Library, path string, loadErr error) Model {
	return Model{
		lib:     lib,
		path:    path,
		loadErr: loadErr,
		menu:    NewMenuModel(),
		add:     newAddForm(),
		remove:  newSearchForm(),
		search:  newSearchForm(),
		results: newResultsTable(),
		status:  loadStatus(loadErr),
	}
}

func loadStatus(err error) status {
	switch {
	case err == nil:
		return status{statusSuccess, "Library loaded from file."}
	case errors.Is(err, library.ErrNotFound):
		return status{statusInfo, "No library file found. Starting with an empty library."}
	case errors.Is(err, library.ErrCorruptData):
		return status{statusError, "Error loading library file. Starting with an empty library."}
	}
	return status{statusError, "Could not read library file: " + err.Error()}
}

func newResultsTable() table.Model {
	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "Title", Width: 28},
			{Title: "Author", Width: 22},
			{Title: "Year", Width: 6},
			{Title: "Genre", Width: 16},
			{Title: "Status", Width: 8},
		}),
		table.WithFocused(true),
		table.WithHeight(12),
	)
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(DarkGreen).
		BorderBottom(true).
		Bold(true).
		Foreground(BrightGreen)
	s.Selected = s.Selected.Foreground(Black).Background(Green).Bold(false)
	t.SetStyles(s)
	return t
}

func (m *Model) setRows(books []library.Book) {
	rows := make([]table.Row, 0, len(books))
	for _, b := range books {
		rows = append(rows, table.Row{b.Title, b.Author, strconv.Itoa(b.Year), b.Genre, b.ReadLabel()})
	}
	m.results.SetRows(rows)
	m.results.GotoTop()
	m.hasRows = len(rows) > 0
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		if h := msg.Height - 12; h > 3 {
			m.results.SetHeight(h)
		}
		return m, nil

	case savedMsg:
		m.saving = false
		if msg.err != nil {
			m.status = status{statusError, "Error saving library: " + msg.err.Error()}
			return m, nil
		}
		m.dirty = false
		m.quitting = true
		m.status = status{statusSuccess, "Library saved. You can close the app."}
		return m, tea.Quit

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.quitting = true
			return m, tea.Quit
		}
		if m.saving {
			return m, nil
		}
		if m.screen == screenMenu {
			return m.updateMenu(msg)
		}
		if msg.String() == "esc" {
			m.screen = screenMenu
			return m, nil
		}
	}

	switch m.screen {
	case screenAdd:
		return m.updateAdd(msg)
	case screenRemove:
		return m.updateRemove(msg)
	case screenSearch:
		return m.updateSearch(msg)
	case screenList:
		var cmd tea.Cmd
		m.results, cmd = m.results.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) updateMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		m.quitting = true
		return m, tea.Quit
	case "enter":
		return m.open(m.menu.Selected())
	}
	var cmd tea.Cmd
	m.menu, cmd = m.menu.Update(msg)
	return m, cmd
}

// open switches to the screen for a menu action. Listing, statistics and saving act
// immediately; the forms start empty.
func (m Model) open(a action) (tea.Model, tea.Cmd) {
	switch a {
	case actionAdd:
		m.screen = screenAdd
		m.add = newAddForm()
	case actionRemove:
		m.screen = screenRemove
		m.remove = newSearchForm()
		m.remove.term.Placeholder = "title of the book to remove"
	case actionSearch:
		m.screen = screenSearch
		m.search = newSearchForm()
		m.setRows(nil)
	case actionList:
		m.screen = screenList
		m.setRows(m.lib.All())
		if !m.hasRows {
			m.status = status{statusWarning, "Your library is empty."}
		}
	case actionStats:
		m.screen = screenStats
		if m.lib.Len() == 0 {
			m.status = status{statusWarning, "Your library is empty."}
		}
	case actionSave:
		if !library.SafeToOverwrite(m.loadErr) {
			m.status = status{statusError, "The library file could not be loaded, so saving would overwrite it. Fix or move " + m.path + " and restart."}
			return m, nil
		}
		m.saving = true
		summary := "no changes"
		if diff, err := library.Diff(m.path, m.lib); err == nil && diff != "" {
			summary = changeSummary(diff)
		}
		m.status = status{statusInfo, fmt.Sprintf("Saving to %s (%s)...", m.path, summary)}
		return m, saveCmd(m.lib, m.path)
	}
	return m, nil
}

func saveCmd(lib *library.Library, path string) tea.Cmd {
	return func() tea.Msg {
		return savedMsg{err: library.Save(lib, path)}
	}
}

func (m Model) updateAdd(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "tab", "down":
			return m, m.add.move(1)
		case "shift+tab", "up":
			return m, m.add.move(-1)
		case "enter":
			if !m.add.last() {
				return m, m.add.move(1)
			}
			return m.submitAdd()
		}
	}
	var cmd tea.Cmd
	m.add, cmd = m.add.update(msg)
	return m, cmd
}

func (m Model) submitAdd() (tea.Model, tea.Cmd) {
	in, problem := m.add.values()
	if problem != "" {
		m.status = status{statusError, problem}
		return m, nil
	}
	b, err := m.lib.Add(in.title, in.author, in.year, in.genre, in.read)
	if err != nil {
		m.status = status{statusError, "Could not add book: " + err.Error()}
		return m, nil
	}
	logger.Get().Info().Str("title", b.Title).Msg("book added")
	m.dirty = true
	m.status = status{statusSuccess, "Book added successfully!"}
	m.add = newAddForm()
	return m, nil
}

func (m Model) updateRemove(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "enter" {
		found, err := m.lib.Remove(m.remove.term.Value())
		switch {
		case err != nil:
			m.status = status{statusError, "Please enter a book title."}
		case found:
			m.dirty = true
			m.status = status{statusSuccess, "Book removed successfully!"}
			m.remove.term.SetValue("")
		default:
			m.status = status{statusError, "Book not found in the library."}
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.remove.term, cmd = m.remove.term.Update(msg)
	return m, cmd
}

func (m Model) updateSearch(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "tab":
			m.search.toggle()
			return m, nil
		case "up", "down":
			var cmd tea.Cmd
			m.results, cmd = m.results.Update(msg)
			return m, cmd
		case "enter":
			matches, err := m.lib.Search(m.search.field, m.search.term.Value())
			switch {
			case err != nil:
				m.status = status{statusError, fmt.Sprintf("Please enter a %s to search.", strings.ToLower(m.search.field.String()))}
				m.setRows(nil)
			case len(matches) == 0:
				m.status = status{statusWarning, "No matching books found."}
				m.setRows(nil)
			default:
				m.status = status{statusSuccess, fmt.Sprintf("Found %d matching %s.", len(matches), plural(len(matches), "book", "books"))}
				m.setRows(matches)
			}
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.search.term, cmd = m.search.term.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if m.quitting {
		return m.status.render() + "\n"
	}

	var b strings.Builder
	b.WriteString(GradientBanner())
	b.WriteString(m.statusBar())
	b.WriteString("\n\n")

	switch m.screen {
	case screenMenu:
		b.WriteString(m.menu.View())
	case screenAdd:
		b.WriteString(HeadingStyle.Render("Add a Book"))
		b.WriteString("\n")
		b.WriteString(m.add.view())
	case screenRemove:
		b.WriteString(HeadingStyle.Render("Remove a Book"))
		b.WriteString("\n")
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, FocusedLabelStyle.Render("Title"), m.remove.term.View()))
		b.WriteString("\n")
	case screenSearch:
		b.WriteString(HeadingStyle.Render("Search for a Book"))
		b.WriteString("\n")
		b.WriteString(m.search.view())
		if m.hasRows {
			b.WriteString("\n" + HeadingStyle.Render("Matching Books:") + "\n")
			b.WriteString(m.results.View())
		}
	case screenList:
		b.WriteString(HeadingStyle.Render("All Books"))
		b.WriteString("\n")
		if m.hasRows {
			b.WriteString(m.results.View())
		}
	case screenStats:
		b.WriteString(HeadingStyle.Render("Library Statistics"))
		b.WriteString("\n")
		b.WriteString(m.statsView())
	}

	b.WriteString("\n\n")
	b.WriteString(m.status.render())
	b.WriteString("\n")
	b.WriteString(HelpStyle.Render(m.helpLine()))
	return b.String()
}

func (m Model) statsView() string {
	s := m.lib.Stats()
	if s.Total == 0 {
		return ""
	}
	return fmt.Sprintf("%s%s\n%s%s\n%s%s\n\n%s\n",
		LabelStyle.Render("Total books:"), ValueStyle.Render(strconv.Itoa(s.Total)),
		LabelStyle.Render("Books read:"), ValueStyle.Render(strconv.Itoa(s.Read)),
		LabelStyle.Render("Percentage read:"), ValueStyle.Render(fmt.Sprintf("%.1f%%", s.PercentRead)),
		SuccessStyle.Render(makeBar(s.PercentRead/100, 30)),
	)
}

func (m Model) statusBar() string {
	parts := []string{
		StatusFileStyle.Render(m.path),
		StatusBarStyle.Render(fmt.Sprintf("%d %s", m.lib.Len(), plural(m.lib.Len(), "book", "books"))),
	}
	if m.dirty {
		parts = append(parts, DirtyStyle.Render("unsaved changes"))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m Model) helpLine() string {
	switch m.screen {
	case screenMenu:
		return "↑/↓ choose • enter select • q quit without saving"
	case screenAdd:
		return "tab/↓ next field • shift+tab/↑ previous • enter on last field adds • esc menu"
	case screenSearch:
		return "tab switch title/author • enter search • ↑/↓ scroll • esc menu"
	case screenList:
		return "↑/↓ scroll • esc menu"
	}
	return "enter confirm • esc menu"
}
