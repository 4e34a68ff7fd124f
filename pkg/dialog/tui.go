package dialog

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// TUI shows each dialog as a small bubbletea program.
type TUI struct {
	in  io.Reader
	out io.Writer
}

var _ Service = (*TUI)(nil)

// NewTUI creates a dialog service drawing on out and reading keys from in.
func NewTUI(in io.Reader, out io.Writer) *TUI {
	return &TUI{in: in, out: out}
}

func (t *TUI) run(ctx context.Context, m tea.Model) (tea.Model, error) {
	p := tea.NewProgram(m,
		tea.WithContext(ctx),
		tea.WithInput(t.in),
		tea.WithOutput(t.out),
	)
	final, err := p.Run()
	if err != nil {
		return nil, fmt.Errorf("failed to run dialog: %w", err)
	}
	return final, nil
}

func (t *TUI) PromptText(ctx context.Context, req TextRequest) (string, bool, error) {
	final, err := t.run(ctx, newTextPrompt(req))
	if err != nil {
		return "", false, err
	}
	m := final.(textPromptModel)
	if m.cancelled {
		return "", false, nil
	}
	return m.input.Value(), true, nil
}

func (t *TUI) AskYesNo(ctx context.Context, title, message string) (bool, error) {
	final, err := t.run(ctx, newConfirmation(title, message, false))
	if err != nil {
		return false, err
	}
	return final.(confirmationModel).choice == Yes, nil
}

func (t *TUI) AskYesNoCancel(ctx context.Context, title, message string) (Choice, error) {
	final, err := t.run(ctx, newConfirmation(title, message, true))
	if err != nil {
		return Cancel, err
	}
	return final.(confirmationModel).choice, nil
}

func (t *TUI) ShowError(ctx context.Context, title string, err error) error {
	_, runErr := t.run(ctx, errorModel{title: title, err: err})
	return runErr
}

// textPromptModel edits a single line of text and refuses to submit input
// rejected by its rules.
type textPromptModel struct {
	req       TextRequest
	input     textinput.Model
	rejection string
	cancelled bool
}

func newTextPrompt(req TextRequest) textPromptModel {
	ti := textinput.New()
	ti.CharLimit = 100
	ti.Width = dialogWidth - 8
	ti.SetValue(req.Initial)
	ti.Focus()
	return textPromptModel{req: req, input: ti}
}

func (m textPromptModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m textPromptModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "enter":
			if reason, valid := Validate(m.req.Rules, m.input.Value()); !valid {
				m.rejection = reason
				return m, nil
			}
			return m, tea.Quit
		case "esc", "ctrl+c":
			m.cancelled = true
			return m, tea.Quit
		}
		m.rejection = ""
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m textPromptModel) View() string {
	body := m.req.Message + "\n\n" + m.input.View()
	if m.rejection != "" {
		body += "\n" + errorStyle.Render(m.rejection)
	}
	return renderDialog(m.req.Title, body, hintStyle.Render("enter confirm • esc cancel"))
}
