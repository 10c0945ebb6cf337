package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// StrategyPickerModel - Interactive strategy selection
// =============================================================================

// StrategyChoice is one row of the picker.
type StrategyChoice struct {
	Name    string
	Summary string
}

// StrategyPickerModel is the bubbletea model behind `layout --pick`.
type StrategyPickerModel struct {
	Choices  []StrategyChoice
	Cursor   int
	Selected string
	Quit     bool
}

// NewStrategyPickerModel starts the cursor on current when it is listed.
func NewStrategyPickerModel(choices []StrategyChoice, current string) StrategyPickerModel {
	m := StrategyPickerModel{Choices: choices}
	for i, c := range choices {
		if c.Name == current {
			m.Cursor = i
		}
	}
	return m
}

func (m StrategyPickerModel) Init() tea.Cmd {
	return nil
}

func (m StrategyPickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "q", "ctrl+c", "esc":
		m.Quit = true
		return m, tea.Quit
	case "up", "k":
		if m.Cursor > 0 {
			m.Cursor--
		}
	case "down", "j":
		if m.Cursor < len(m.Choices)-1 {
			m.Cursor++
		}
	case "enter":
		if len(m.Choices) > 0 {
			m.Selected = m.Choices[m.Cursor].Name
		}
		return m, tea.Quit
	}
	return m, nil
}

func (m StrategyPickerModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Layout Strategy"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	for i, c := range m.Choices {
		cursor := "  "
		style := listNormalStyle
		if i == m.Cursor {
			cursor = "▸ "
			style = listSelectedStyle
		}
		b.WriteString(style.Render(fmt.Sprintf("%s%-14s", cursor, c.Name)))
		b.WriteString(" ")
		b.WriteString(listDimStyle.Render(c.Summary))
		b.WriteString("\n")
	}
	return b.String()
}

// pickStrategy runs the picker and returns the chosen name, or "" when the
// user quit.
func pickStrategy(choices []StrategyChoice, current string) (string, error) {
	final, err := tea.NewProgram(NewStrategyPickerModel(choices, current)).Run()
	if err != nil {
		return "", fmt.Errorf("strategy picker: %w", err)
	}
	return final.(StrategyPickerModel).Selected, nil
}
