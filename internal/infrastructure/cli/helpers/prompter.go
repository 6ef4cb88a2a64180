package helpers

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/doeshing/hateshield/internal/ports"
)

// Prompter implements ports.Confirmer using stdin/stdout.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

// NewPrompter constructs a prompter referencing stdio.
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	if in == nil {
		in = os.Stdin
	}
	if out == nil {
		out = os.Stdout
	}
	return &Prompter{
		in:  bufio.NewReader(in),
		out: out,
	}
}

// Confirm asks a yes/no question; anything but y/yes declines.
func (p *Prompter) Confirm(question string) (bool, error) {
	fmt.Fprintf(p.out, "%s [y/N]: ", question)
	line, err := p.in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, err
	}
	line = strings.ToLower(strings.TrimSpace(line))
	return line == "y" || line == "yes", nil
}

// AutoConfirm answers yes without asking; used by --yes.
type AutoConfirm struct{}

func (AutoConfirm) Confirm(string) (bool, error) {
	return true, nil
}

var (
	_ ports.Confirmer = (*Prompter)(nil)
	_ ports.Confirmer = AutoConfirm{}
)
