// Package interactive provides terminal prompts for choosing what to run.
package interactive

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
)

const quitLabel = "Quit"

var (
	// ErrExit means the user asked to leave, either by choosing Quit or by
	// interrupting a prompt.
	ErrExit = errors.New("exit")
	// ErrPrompt wraps failures of the terminal prompt itself.
	ErrPrompt = errors.New("prompt failed")
	// ErrUnknownItem is returned for a label the menu does not contain.
	ErrUnknownItem = errors.New("unknown menu item")
)

type menuItem struct {
	label string
	run   func() error
}

// Menu offers a fixed list of actions through a single select prompt.
type Menu struct {
	question string
	items    []menuItem
}

// NewMenu returns an empty menu asking question.
func NewMenu(question string) *Menu {
	return &Menu{question: question}
}

// Add appends an action. The hint is shown after the title.
func (m *Menu) Add(title, hint string, run func() error) *Menu {
	label := title
	if hint != "" {
		label = title + ": " + hint
	}

	m.items = append(m.items, menuItem{label: label, run: run})

	return m
}

func (m *Menu) labels() []string {
	labels := make([]string, 0, len(m.items)+1)
	for _, item := range m.items {
		labels = append(labels, item.label)
	}

	return append(labels, quitLabel)
}

func (m *Menu) choose(label string) error {
	if label == quitLabel {
		return ErrExit
	}

	for _, item := range m.items {
		if item.label == label {
			return item.run()
		}
	}

	return fmt.Errorf("%w: %q", ErrUnknownItem, label)
}

// Prompt asks for one item and runs it.
func (m *Menu) Prompt() error {
	var label string

	err := survey.AskOne(&survey.Select{Message: m.question, Options: m.labels()}, &label)
	if err != nil {
		return promptErr(err)
	}

	return m.choose(label)
}

// Confirm asks a yes/no question defaulting to yes.
func Confirm(question string) (bool, error) {
	var yes bool

	if err := survey.AskOne(&survey.Confirm{Message: question, Default: true}, &yes); err != nil {
		return false, promptErr(err)
	}

	return yes, nil
}

// Pause blocks until a line is read from stdin.
func Pause(out io.Writer) {
	fmt.Fprint(out, "\n[enter] back to menu")
	_, _ = bufio.NewReader(os.Stdin).ReadString('\n')
}

// promptErr maps an interrupted or closed prompt to ErrExit and keeps every
// other failure, such as stdin not being a terminal.
func promptErr(err error) error {
	if errors.Is(err, terminal.InterruptErr) || errors.Is(err, io.EOF) {
		return ErrExit
	}

	return fmt.Errorf("%w: %w", ErrPrompt, err)
}
