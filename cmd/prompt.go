package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/josephgoksu/todowing/internal/logger"
	"github.com/manifoldco/promptui"
	"golang.org/x/term"
)

// ErrInputClosed is returned by a Prompter once the user can no longer answer:
// end of input or Ctrl+C at a prompt.
var ErrInputClosed = errors.New("input closed")

// Prompter reads one answer per question.
type Prompter interface {
	// Prompt shows label and returns the entered line without its newline.
	Prompt(label string) (string, error)
}

// linePrompter reads answers line by line. It serves pipes, redirected files
// and --plain terminals.
type linePrompter struct {
	in  *bufio.Reader
	out io.Writer
}

func newLinePrompter(in io.Reader, out io.Writer) *linePrompter {
	return &linePrompter{in: bufio.NewReader(in), out: out}
}

func (p *linePrompter) Prompt(label string) (string, error) {
	fmt.Fprint(p.out, label)
	line, err := p.in.ReadString('\n')
	if err != nil {
		if !errors.Is(err, io.EOF) {
			return "", err
		}
		// A final line without a newline still counts.
		if line == "" {
			return "", ErrInputClosed
		}
	}
	line = strings.TrimRight(line, "\r\n")
	logger.SetLastInput(line)
	return line, nil
}

// promptuiPrompter uses promptui's line editor on an interactive terminal.
type promptuiPrompter struct{}

func (promptuiPrompter) Prompt(label string) (string, error) {
	// promptui appends its own ": " after the label.
	label = strings.TrimSpace(label)
	label = strings.TrimSuffix(label, ":")

	prompt := promptui.Prompt{Label: label}
	value, err := prompt.Run()
	if err != nil {
		if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
			return "", ErrInputClosed
		}
		return "", fmt.Errorf("prompt failed: %w", err)
	}
	logger.SetLastInput(value)
	return value, nil
}

// newPrompter picks promptui when in is a terminal and plain mode is off.
func newPrompter(in io.Reader, out io.Writer, plain bool) Prompter {
	if f, ok := in.(*os.File); ok && !plain && term.IsTerminal(int(f.Fd())) {
		return promptuiPrompter{}
	}
	return newLinePrompter(in, out)
}
