package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/gedvault/gedvault/pkg/errors"
	"github.com/gedvault/gedvault/pkg/gedcom"
)

var listDimStyle = lipgloss.NewStyle().Foreground(colorDim)

// =============================================================================
// PersonListModel - Interactive root person selection
// =============================================================================

// PersonSelection holds the result of the person selection.
type PersonSelection struct {
	Person *gedcom.Individual
}

// PersonListModel is the bubbletea model for interactive person selection.
type PersonListModel struct {
	People   []*gedcom.Individual
	Cursor   int
	Selected *PersonSelection
	Height   int
	Offset   int
}

// NewPersonListModel creates a person list model over people sorted by name.
func NewPersonListModel(people []*gedcom.Individual) PersonListModel {
	return PersonListModel{
		People: people,
		Cursor: 0,
		Height: 15,
		Offset: 0,
	}
}

func (m PersonListModel) Init() tea.Cmd {
	return nil
}

func (m PersonListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.People)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			m.Selected = &PersonSelection{Person: m.People[m.Cursor]}
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 6
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m PersonListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Root Person"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.People) {
		end = len(m.People)
	}

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		p := m.People[i]

		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}

		born := p.BirthYear()
		if born == "" {
			born = "—"
		}
		died := p.DeathYear()
		if died == "" {
			died = "—"
		}

		rows = append(rows, []string{cursor, p.FullName(), born, died, p.ID})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Name", "Born", "Died", "ID").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}

			actualIdx := m.Offset + row
			if actualIdx >= len(m.People) {
				return lipgloss.NewStyle()
			}

			base := lipgloss.NewStyle()
			if col >= 2 {
				base = base.Foreground(colorDim)
			}
			if actualIdx == m.Cursor {
				if col < 2 {
					return base.Foreground(colorGreen).Bold(true)
				}
				return base.Bold(true)
			}
			if col < 2 {
				return base.Foreground(colorWhite)
			}
			return base
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.People))))

	return b.String()
}

// pickPerson runs the interactive picker and returns the chosen person id.
func pickPerson(idx *gedcom.Index) (string, error) {
	model := NewPersonListModel(idx.SortedByName())
	p := tea.NewProgram(model)
	final, err := p.Run()
	if err != nil {
		return "", fmt.Errorf("person picker: %w", err)
	}
	m, ok := final.(PersonListModel)
	if !ok || m.Selected == nil {
		return "", errors.New(errors.ErrCodeNoRoot, "no person selected")
	}
	return m.Selected.Person.ID, nil
}
