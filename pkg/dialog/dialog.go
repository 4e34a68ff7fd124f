// Package dialog defines the user-interaction collaborator used by the
// document and pack folder services, together with its implementations.
//
// Every dialog may be cancelled by the user. Cancellation is reported as a
// normal outcome, never as an error; errors are reserved for failures of the
// dialog itself (closed input, cancelled context).
package dialog

import (
	"context"
	"strings"
)

// Choice is the answer to a yes/no or yes/no/cancel question.
type Choice int

const (
	Cancel Choice = iota
	Yes
	No
)

func (c Choice) String() string {
	switch c {
	case Yes:
		return "yes"
	case No:
		return "no"
	default:
		return "cancel"
	}
}

// Rule validates text input. Check returns true for acceptable input;
// Message is shown otherwise.
type Rule struct {
	Message string
	Check   func(input string) bool
}

// Validate applies rules in order and returns the message of the first rule
// that rejects input.
func Validate(rules []Rule, input string) (string, bool) {
	for _, rule := range rules {
		if !rule.Check(input) {
			return rule.Message, false
		}
	}
	return "", true
}

// NotBlank rejects empty and whitespace-only input.
func NotBlank(message string) Rule {
	return Rule{
		Message: message,
		Check:   func(input string) bool { return strings.TrimSpace(input) != "" },
	}
}

// TextRequest describes a text input dialog.
type TextRequest struct {
	Title   string
	Message string
	Initial string
	Rules   []Rule
}

// Service presents dialogs to the user.
type Service interface {
	// PromptText asks for text until it passes req.Rules or the user cancels.
	// ok is false when the user cancelled.
	PromptText(ctx context.Context, req TextRequest) (text string, ok bool, err error)
	AskYesNo(ctx context.Context, title, message string) (bool, error)
	AskYesNoCancel(ctx context.Context, title, message string) (Choice, error)
	ShowError(ctx context.Context, title string, err error) error
}
