package config

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Prompter asks the user for values on an interactive terminal.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

// NewPrompter creates a Prompter reading answers from in and writing labels to out.
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewReader(in), out: out}
}

// Ask prints label and returns the next line of input without surrounding whitespace.
// End of input yields whatever was typed so far.
func (p *Prompter) Ask(label string) (string, error) {
	if _, err := fmt.Fprint(p.out, label); err != nil {
		return "", err
	}
	line, err := p.in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("failed to read answer: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// Inputs are the run parameters collected from the user.
type Inputs struct {
	Org   string
	User  string
	Since string
	// SinceSet means Since was supplied up front, even if blank.
	SinceSet bool
}

// Collect fills the empty fields of preset by prompting, in the order
// organization, username, since. Answers are not validated here.
func (p *Prompter) Collect(preset Inputs) (Inputs, error) {
	in := preset
	var err error
	if in.Org == "" {
		if in.Org, err = p.Ask("Enter org: "); err != nil {
			return Inputs{}, err
		}
	}
	if in.User == "" {
		if in.User, err = p.Ask("Enter username: "); err != nil {
			return Inputs{}, err
		}
	}
	if !in.SinceSet {
		if in.Since, err = p.Ask("Enter since (optional: YYYY-MM-DDTHH:MM:SSZ) : "); err != nil {
			return Inputs{}, err
		}
		in.SinceSet = true
	}
	return in, nil
}
