package dialog

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
)

const dialogWidth = 60

var (
	borderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("170")).
			Padding(0, 1)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("214")) // Orange

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	hintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

	yesStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("82")).Bold(true)
	noStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
)

// renderDialog draws a bordered box with a centered title above body.
func renderDialog(title, body, footer string) string {
	contentWidth := dialogWidth - 4

	var content strings.Builder
	if title != "" {
		content.WriteString(lipgloss.NewStyle().
			Width(contentWidth).
			Align(lipgloss.Center).
			Render(headerStyle.Render(title)))
		content.WriteString("\n\n")
	}
	content.WriteString(wordwrap.String(body, contentWidth))
	if footer != "" {
		content.WriteString("\n\n")
		content.WriteString(lipgloss.NewStyle().
			Width(contentWidth).
			Align(lipgloss.Center).
			Render(footer))
	}

	return borderStyle.Width(dialogWidth).Render(content.String()) + "\n"
}

// formatConfirmOptions renders the key hints of a question.
func formatConfirmOptions(withCancel bool) string {
	options := fmt.Sprintf("[%s]es / [%s]o", yesStyle.Render("y"), noStyle.Render("n"))
	if withCancel {
		options += " / " + hintStyle.Render("[esc] cancel")
	}
	return options
}

// confirmationModel asks a yes/no or yes/no/cancel question.
type confirmationModel struct {
	title      string
	message    string
	withCancel bool
	choice     Choice
}

func newConfirmation(title, message string, withCancel bool) confirmationModel {
	m := confirmationModel{title: title, message: message, withCancel: withCancel, choice: Cancel}
	if !withCancel {
		m.choice = No
	}
	return m
}

func (m confirmationModel) Init() tea.Cmd {
	return nil
}

func (m confirmationModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "y", "Y":
		m.choice = Yes
		return m, tea.Quit
	case "n", "N":
		m.choice = No
		return m, tea.Quit
	case "esc", "ctrl+c":
		// choice keeps its cancel-equivalent default
		return m, tea.Quit
	}
	return m, nil
}

func (m confirmationModel) View() string {
	return renderDialog(m.title, m.message, formatConfirmOptions(m.withCancel))
}

// errorModel shows an error until any key is pressed.
type errorModel struct {
	title string
	err   error
}

func (m errorModel) Init() tea.Cmd {
	return nil
}

func (m errorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if _, ok := msg.(tea.KeyMsg); ok {
		return m, tea.Quit
	}
	return m, nil
}

func (m errorModel) View() string {
	return renderDialog(m.title, errorStyle.Render(m.err.Error()), hintStyle.Render("press any key"))
}
