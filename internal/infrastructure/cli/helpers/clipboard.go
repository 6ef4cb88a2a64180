package helpers

import (
	"fmt"
	"os/exec"
	"runtime"
	"strings"

	"github.com/doeshing/hateshield/internal/ports"
)

// Clipboard copies safe rewrites using the platform clipboard tool.
type Clipboard struct {
	lookPath func(string) (string, error)
}

func NewClipboard() *Clipboard {
	return &Clipboard{lookPath: exec.LookPath}
}

// Enabled reports whether a clipboard tool is available.
func (c *Clipboard) Enabled() bool {
	_, err := c.command()
	return err == nil
}

// Copy writes text to the system clipboard.
func (c *Clipboard) Copy(text string) error {
	argv, err := c.command()
	if err != nil {
		return err
	}
	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Stdin = strings.NewReader(text)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("copy to clipboard: %w: %s", err, strings.TrimSpace(string(out)))
	}
	return nil
}

func (c *Clipboard) command() ([]string, error) {
	var candidates [][]string
	switch runtime.GOOS {
	case "darwin":
		candidates = [][]string{{"pbcopy"}}
	case "windows":
		candidates = [][]string{{"clip"}}
	default:
		candidates = [][]string{{"wl-copy"}, {"xclip", "-selection", "clipboard"}, {"xsel", "--clipboard", "--input"}}
	}
	for _, argv := range candidates {
		if _, err := c.lookPath(argv[0]); err == nil {
			return argv, nil
		}
	}
	return nil, fmt.Errorf("no clipboard utility found on %s", runtime.GOOS)
}

var _ ports.Clipboard = (*Clipboard)(nil)
