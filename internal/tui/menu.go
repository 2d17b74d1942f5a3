package tui

import (
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// action is what a menu entry opens.
type action int

const (
	actionAdd action = iota
	actionRemove
	actionSearch
	actionList
	actionStats
	actionSave
)

type item struct {
	title, desc string
	action      action
}

func (i item) Title() string       { return i.title }
func (i item) Description() string { return i.desc }
func (i item) FilterValue() string { return i.title }

type MenuModel struct {
	list list.Model
}

func NewMenuModel() MenuModel {
	items := []list.Item{
		item{title: "Add a Book", desc: "Record a new book", action: actionAdd},
		item{title: "Remove a Book", desc: "Delete a book by its title", action: actionRemove},
		item{title: "Search for a Book", desc: "Find books by title or author", action: actionSearch},
		item{title: "Display All Books", desc: "Show the whole collection", action: actionList},
		item{title: "Display Statistics", desc: "How much of it you have read", action: actionStats},
		item{title: "Save and Exit", desc: "Write the library to disk and quit", action: actionSave},
	}

	d := list.NewDefaultDelegate()
	d.Styles.SelectedTitle = lipgloss.NewStyle().Foreground(Green).Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(Green).PaddingLeft(1)
	d.Styles.SelectedDesc = d.Styles.SelectedTitle.Foreground(DimGreen)

	l := list.New(items, d, 44, 22)
	l.Title = "Menu"
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.KeyMap.Quit.SetEnabled(false)
	l.Styles.Title = lipgloss.NewStyle().Foreground(Green).Bold(true).MarginLeft(2)

	return MenuModel{list: l}
}

// Selected returns the highlighted action.
func (m MenuModel) Selected() action {
	if it, ok := m.list.SelectedItem().(item); ok {
		return it.action
	}
	return actionList
}

func (m MenuModel) Update(msg tea.Msg) (MenuModel, tea.Cmd) {
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m MenuModel) View() string {
	return BoxStyle.Render(m.list.View())
}
