package dialog

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var uniqueRule = Rule{
	Message: "Name must be unique.",
	Check:   func(s string) bool { return s != "taken" },
}

func TestValidateReportsFirstFailingRule(t *testing.T) {
	rules := []Rule{NotBlank("Name cannot be empty."), uniqueRule}

	tests := []struct {
		input string
		want  string
		ok    bool
	}{
		{input: "", want: "Name cannot be empty.", ok: false},
		{input: "   ", want: "Name cannot be empty.", ok: false},
		{input: "taken", want: "Name must be unique.", ok: false},
		{input: "fresh", want: "", ok: true},
	}

	for _, tt := range tests {
		msg, ok := Validate(rules, tt.input)
		assert.Equal(t, tt.ok, ok, tt.input)
		assert.Equal(t, tt.want, msg, tt.input)
	}
}

func TestPresetPromptText(t *testing.T) {
	p := &Preset{Texts: []string{"", "taken", "Fire Rod"}}
	req := TextRequest{Rules: []Rule{NotBlank("Name cannot be empty."), uniqueRule}}

	text, ok, err := p.PromptText(context.Background(), req)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "Fire Rod", text)
	assert.Equal(t, []string{"Name cannot be empty.", "Name must be unique."}, p.Rejections)

	_, ok, err = p.PromptText(context.Background(), req)
	require.NoError(t, err)
	assert.False(t, ok, "exhausted queue cancels")
}

func TestPresetQuestions(t *testing.T) {
	p := &Preset{Answers: []Choice{Yes, No}, Default: Cancel}
	ctx := context.Background()

	yes, err := p.AskYesNo(ctx, "t", "first?")
	require.NoError(t, err)
	assert.True(t, yes)

	choice, err := p.AskYesNoCancel(ctx, "t", "second?")
	require.NoError(t, err)
	assert.Equal(t, No, choice)

	choice, err = p.AskYesNoCancel(ctx, "t", "third?")
	require.NoError(t, err)
	assert.Equal(t, Cancel, choice)

	assert.Equal(t, []string{"first?", "second?", "third?"}, p.Questions)
}

func TestPresetHonoursContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := (&Preset{Texts: []string{"x"}}).PromptText(ctx, TextRequest{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPresetShowError(t *testing.T) {
	p := &Preset{}
	boom := errors.New("boom")

	require.NoError(t, p.ShowError(context.Background(), "Delete Failed", boom))

	assert.Equal(t, []error{boom}, p.Errors)
}

func TestTerminalPromptText(t *testing.T) {
	var out bytes.Buffer
	term := NewTerminal(strings.NewReader("\ntaken\nGoblin\n"), &out)

	text, ok, err := term.PromptText(context.Background(), TextRequest{
		Title:   "New Entity",
		Message: "Name",
		Rules:   []Rule{NotBlank("Name cannot be empty."), uniqueRule},
	})

	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "Goblin", text)
	assert.Contains(t, out.String(), "✗ Name cannot be empty.")
	assert.Contains(t, out.String(), "✗ Name must be unique.")
}

func TestTerminalPromptTextUsesInitial(t *testing.T) {
	term := NewTerminal(strings.NewReader("\n"), &bytes.Buffer{})

	text, ok, err := term.PromptText(context.Background(), TextRequest{Message: "Name", Initial: "Old"})

	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "Old", text)
}

func TestTerminalPromptTextCancelsOnEOF(t *testing.T) {
	term := NewTerminal(strings.NewReader(""), &bytes.Buffer{})

	_, ok, err := term.PromptText(context.Background(), TextRequest{Message: "Name"})

	require.NoError(t, err)
	assert.False(t, ok)
}

func TestTerminalQuestions(t *testing.T) {
	tests := []struct {
		input      string
		withCancel bool
		want       Choice
	}{
		{input: "y\n", withCancel: true, want: Yes},
		{input: "YES\n", withCancel: true, want: Yes},
		{input: "n\n", withCancel: true, want: No},
		{input: "\n", withCancel: true, want: Cancel},
		{input: "", withCancel: true, want: Cancel},
		{input: "\n", withCancel: false, want: No},
		{input: "y\n", withCancel: false, want: Yes},
	}

	for _, tt := range tests {
		term := NewTerminal(strings.NewReader(tt.input), &bytes.Buffer{})
		var got Choice
		if tt.withCancel {
			choice, err := term.AskYesNoCancel(context.Background(), "", "Save?")
			require.NoError(t, err)
			got = choice
		} else {
			yes, err := term.AskYesNo(context.Background(), "", "Delete?")
			require.NoError(t, err)
			got = No
			if yes {
				got = Yes
			}
		}
		assert.Equal(t, tt.want, got, "input %q cancel=%v", tt.input, tt.withCancel)
	}
}

func TestConfirmationModelKeys(t *testing.T) {
	tests := []struct {
		key        tea.KeyMsg
		withCancel bool
		want       Choice
	}{
		{key: tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("y")}, withCancel: true, want: Yes},
		{key: tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("n")}, withCancel: true, want: No},
		{key: tea.KeyMsg{Type: tea.KeyEsc}, withCancel: true, want: Cancel},
		{key: tea.KeyMsg{Type: tea.KeyEsc}, withCancel: false, want: No},
	}

	for _, tt := range tests {
		updated, cmd := newConfirmation("Unsaved Changes", "Save?", tt.withCancel).Update(tt.key)
		assert.NotNil(t, cmd, tt.key.String())
		assert.Equal(t, tt.want, updated.(confirmationModel).choice, tt.key.String())
	}
}

func TestTextPromptModelRejectsInvalidInput(t *testing.T) {
	var m tea.Model = newTextPrompt(TextRequest{
		Title: "Rename",
		Rules: []Rule{NotBlank("Name cannot be empty.")},
	})

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
	assert.Equal(t, "Name cannot be empty.", m.(textPromptModel).rejection)
	assert.Contains(t, m.View(), "Name cannot be empty.")

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("Orc")})
	assert.Empty(t, m.(textPromptModel).rejection)

	m, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.NotNil(t, cmd)
	assert.Equal(t, "Orc", m.(textPromptModel).input.Value())
	assert.False(t, m.(textPromptModel).cancelled)
}

func TestTextPromptModelEscCancels(t *testing.T) {
	m, _ := newTextPrompt(TextRequest{Initial: "x"}).Update(tea.KeyMsg{Type: tea.KeyEsc})

	assert.True(t, m.(textPromptModel).cancelled)
}
