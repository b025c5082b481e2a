package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// List styles
var (
	listDimStyle = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// NameListModel - Interactive profile selection
// =============================================================================

// NameListModel is the bubbletea model for interactive profile selection.
// Typing narrows the listing; enter selects the profile under the cursor.
type NameListModel struct {
	Names    []string
	Filter   string
	Cursor   int
	Offset   int
	Height   int
	Selected string
}

// NewNameListModel creates a new profile list model.
func NewNameListModel(names []string) NameListModel {
	return NameListModel{
		Names:  names,
		Height: 15,
	}
}

// visible returns the names matching the current filter.
func (m NameListModel) visible() []string {
	if m.Filter == "" {
		return m.Names
	}
	var out []string
	for _, n := range m.Names {
		if strings.Contains(n, m.Filter) {
			out = append(out, n)
		}
	}
	return out
}

func (m NameListModel) Init() tea.Cmd {
	return nil
}

func (m NameListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "up":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down":
			if m.Cursor < len(m.visible())-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			names := m.visible()
			if len(names) > 0 {
				m.Selected = names[m.Cursor]
			}
			return m, tea.Quit
		case "backspace":
			if len(m.Filter) > 0 {
				m.Filter = m.Filter[:len(m.Filter)-1]
				m.Cursor, m.Offset = 0, 0
			}
		default:
			if len(msg.String()) == 1 {
				m.Filter += msg.String()
				m.Cursor, m.Offset = 0, 0
			}
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 8
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m NameListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Airfoil Profile"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("type to filter  ↑/↓ navigate  ⏎ select  esc quit"))
	b.WriteString("\n\n")

	names := m.visible()
	end := m.Offset + m.Height
	if end > len(names) {
		end = len(names)
	}

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		rows = append(rows, []string{cursor, names[i], fmt.Sprintf("%s mesh %s", appName, names[i])})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Profile", "Command").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if m.Offset+row == m.Cursor {
				if col == 2 {
					return lipgloss.NewStyle().Foreground(colorGray).Bold(true)
				}
				return lipgloss.NewStyle().Foreground(colorGreen).Bold(true)
			}
			if col == 2 {
				return lipgloss.NewStyle().Foreground(colorDim)
			}
			return lipgloss.NewStyle().Foreground(colorWhite)
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")

	status := fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(names))
	if m.Filter != "" {
		status += "  filter: " + m.Filter
	}
	b.WriteString(listDimStyle.Render(status))

	return b.String()
}
