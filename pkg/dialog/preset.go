package dialog

import (
	"context"
)

// Preset answers dialogs from queued responses. It backs the non-interactive
// CLI and the service tests.
//
// Text prompts consume Texts one by one; inputs rejected by the request's
// rules are recorded in Rejections and the next queued text is tried. When
// the queue runs dry the prompt is cancelled. Questions consume Answers and
// fall back to Default once it is empty. Shown errors are recorded in Errors.
type Preset struct {
	Texts   []string
	Answers []Choice
	Default Choice

	Rejections []string
	Questions  []string
	Errors     []error
}

var _ Service = (*Preset)(nil)

func (p *Preset) PromptText(ctx context.Context, req TextRequest) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	for len(p.Texts) > 0 {
		text := p.Texts[0]
		p.Texts = p.Texts[1:]
		if msg, ok := Validate(req.Rules, text); !ok {
			p.Rejections = append(p.Rejections, msg)
			continue
		}
		return text, true, nil
	}
	return "", false, nil
}

func (p *Preset) AskYesNo(ctx context.Context, title, message string) (bool, error) {
	choice, err := p.next(ctx, message)
	if err != nil {
		return false, err
	}
	return choice == Yes, nil
}

func (p *Preset) AskYesNoCancel(ctx context.Context, title, message string) (Choice, error) {
	return p.next(ctx, message)
}

func (p *Preset) ShowError(ctx context.Context, title string, err error) error {
	p.Errors = append(p.Errors, err)
	return nil
}

func (p *Preset) next(ctx context.Context, message string) (Choice, error) {
	if err := ctx.Err(); err != nil {
		return Cancel, err
	}
	p.Questions = append(p.Questions, message)
	if len(p.Answers) == 0 {
		return p.Default, nil
	}
	choice := p.Answers[0]
	p.Answers = p.Answers[1:]
	return choice, nil
}
