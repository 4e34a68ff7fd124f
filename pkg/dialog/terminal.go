package dialog

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// Terminal asks questions on a line-oriented terminal. End of input (Ctrl+D)
// cancels a prompt.
type Terminal struct {
	out    io.Writer
	reader *bufio.Reader
}

var _ Service = (*Terminal)(nil)

// NewTerminal creates a terminal dialog service reading answers from in.
func NewTerminal(in io.Reader, out io.Writer) *Terminal {
	return &Terminal{out: out, reader: bufio.NewReader(in)}
}

// ForStdio returns the TUI dialogs when stdin is a terminal and interactive
// is set, and line-oriented dialogs otherwise.
func ForStdio(interactive bool) Service {
	if interactive && term.IsTerminal(int(os.Stdin.Fd())) {
		return NewTUI(os.Stdin, os.Stdout)
	}
	return NewTerminal(os.Stdin, os.Stdout)
}

// readLine returns the next line, or ok=false on end of input.
func (t *Terminal) readLine() (string, bool, error) {
	line, err := t.reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) {
			if line == "" {
				return "", false, nil
			}
			return strings.TrimRight(line, "\r\n"), true, nil
		}
		return "", false, err
	}
	return strings.TrimRight(line, "\r\n"), true, nil
}

func (t *Terminal) PromptText(ctx context.Context, req TextRequest) (string, bool, error) {
	if req.Title != "" {
		fmt.Fprintf(t.out, "%s\n", req.Title)
	}
	for {
		if err := ctx.Err(); err != nil {
			return "", false, err
		}
		if req.Initial != "" {
			fmt.Fprintf(t.out, "%s [%s] (Ctrl+D to cancel): ", req.Message, req.Initial)
		} else {
			fmt.Fprintf(t.out, "%s (Ctrl+D to cancel): ", req.Message)
		}

		line, ok, err := t.readLine()
		if err != nil {
			return "", false, err
		}
		if !ok {
			fmt.Fprintln(t.out)
			return "", false, nil
		}
		if line == "" && req.Initial != "" {
			line = req.Initial
		}
		if msg, valid := Validate(req.Rules, line); !valid {
			fmt.Fprintf(t.out, "✗ %s\n", msg)
			continue
		}
		return line, true, nil
	}
}

func (t *Terminal) AskYesNo(ctx context.Context, title, message string) (bool, error) {
	choice, err := t.ask(ctx, message, " [y/N]: ", No)
	return choice == Yes, err
}

func (t *Terminal) AskYesNoCancel(ctx context.Context, title, message string) (Choice, error) {
	return t.ask(ctx, message, " [y/n/C]: ", Cancel)
}

func (t *Terminal) ask(ctx context.Context, message, suffix string, fallback Choice) (Choice, error) {
	if err := ctx.Err(); err != nil {
		return Cancel, err
	}
	fmt.Fprint(t.out, message+suffix)

	line, ok, err := t.readLine()
	if err != nil {
		return Cancel, err
	}
	if !ok {
		fmt.Fprintln(t.out)
		return fallback, nil
	}

	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return Yes, nil
	case "n", "no":
		return No, nil
	default:
		return fallback, nil
	}
}

func (t *Terminal) ShowError(ctx context.Context, title string, err error) error {
	_, werr := fmt.Fprintf(t.out, "✗ %s: %v\n", title, err)
	return werr
}
