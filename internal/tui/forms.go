package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeanpaul/bookshelf/internal/library"
)

const (
	fieldTitle = iota
	fieldAuthor
	fieldYear
	fieldGenre
	fieldRead
)

var addLabels = []string{"Book Title", "Author", "Publication Year", "Genre", "Read it? (y/n)"}

func newInput(placeholder string, limit int) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = limit
	ti.Width = 40
	ti.Prompt = "> "
	ti.PromptStyle = lipgloss.NewStyle().Foreground(DarkGreen)
	ti.TextStyle = ValueStyle
	ti.PlaceholderStyle = lipgloss.NewStyle().Foreground(DimGreen)
	return ti
}

// addForm collects the fields of a new book. It only parses; the library validates.
type addForm struct {
	inputs []textinput.Model
	focus  int
}

func newAddForm() addForm {
	f := addForm{inputs: []textinput.Model{
		newInput("Dune", 200),
		newInput("Frank Herbert", 200),
		newInput(fmt.Sprintf("%d-%d", library.MinYear, library.MaxYear), 4),
		newInput("Science Fiction", 100),
		newInput("n", 3),
	}}
	f.inputs[fieldTitle].Focus()
	return f
}

func (f *addForm) move(delta int) tea.Cmd {
	f.inputs[f.focus].Blur()
	f.focus = (f.focus + delta + len(f.inputs)) % len(f.inputs)
	return f.inputs[f.focus].Focus()
}

func (f addForm) last() bool { return f.focus == len(f.inputs)-1 }

func (f addForm) update(msg tea.Msg) (addForm, tea.Cmd) {
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return f, cmd
}

type addInput struct {
	title, author string
	year          int
	genre         string
	read          bool
}

// values reads the form. The second result is a message for the user when the form is
// incomplete. Year is range-checked here, mirroring a bounded number entry.
func (f addForm) values() (addInput, string) {
	in := addInput{
		title:  f.inputs[fieldTitle].Value(),
		author: f.inputs[fieldAuthor].Value(),
		genre:  f.inputs[fieldGenre].Value(),
	}
	if strings.TrimSpace(in.title) == "" || strings.TrimSpace(in.author) == "" || strings.TrimSpace(in.genre) == "" {
		return addInput{}, "Please fill in all fields."
	}

	year, err := strconv.Atoi(strings.TrimSpace(f.inputs[fieldYear].Value()))
	if err != nil || year < library.MinYear || year > library.MaxYear {
		return addInput{}, fmt.Sprintf("Publication year must be a number from %d to %d.", library.MinYear, library.MaxYear)
	}
	in.year = year

	switch strings.ToLower(strings.TrimSpace(f.inputs[fieldRead].Value())) {
	case "y", "yes":
		in.read = true
	case "", "n", "no":
	default:
		return addInput{}, "Answer y or n for whether you have read it."
	}
	return in, ""
}

func (f addForm) view() string {
	var b strings.Builder
	for i, in := range f.inputs {
		label := LabelStyle
		if i == f.focus {
			label = FocusedLabelStyle
		}
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, label.Render(addLabels[i]), in.View()))
		b.WriteString("\n")
	}
	return b.String()
}

// searchForm pairs a field toggle with the search term.
type searchForm struct {
	field library.Field
	term  textinput.Model
}

func newSearchForm() searchForm {
	s := searchForm{field: library.FieldTitle, term: newInput("", 200)}
	s.term.Focus()
	return s
}

func (s *searchForm) toggle() {
	if s.field == library.FieldTitle {
		s.field = library.FieldAuthor
	} else {
		s.field = library.FieldTitle
	}
}

func (s searchForm) view() string {
	field := lipgloss.JoinHorizontal(lipgloss.Top,
		LabelStyle.Render("Search by"),
		ValueStyle.Render(s.field.String()),
		HelpStyle.Render("  (tab to switch)"),
	)
	term := lipgloss.JoinHorizontal(lipgloss.Top,
		FocusedLabelStyle.Render("Enter the "+strings.ToLower(s.field.String())),
		s.term.View(),
	)
	return field + "\n" + term + "\n"
}
