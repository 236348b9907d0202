package util

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Prompter asks questions on out and reads answers from in.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewReader(in), out: out}
}

// Stdio prompts on the terminal.
var Stdio = NewPrompter(os.Stdin, os.Stdout)

func (p *Prompter) readLine() string {
	response, err := p.in.ReadString('\n')
	if err != nil && response == "" {
		// closed input takes the default
		return ""
	}
	return strings.TrimSpace(response)
}

func (p *Prompter) PromptString(prompt string, def string) string {
	fmt.Fprintf(p.out, "%s (%s): ", prompt, def)

	response := p.readLine()
	if response == "" {
		return def
	}

	return response
}

func (p *Prompter) PromptYN(prompt string, def bool) bool {
	if def {
		fmt.Fprintf(p.out, "%s (Y/n): ", prompt)
	} else {
		fmt.Fprintf(p.out, "%s (y/N): ", prompt)
	}

	response := p.readLine()
	if response == "" {
		return def
	}

	return strings.ToLower(response) == "y"
}
