package helpers

import (
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/doeshing/hateshield/internal/domain"
	"github.com/doeshing/hateshield/internal/ports"
)

// ParseModeFlag parses a --mode value. An empty value means "use the stored mode".
func ParseModeFlag(raw string) (domain.RunMode, error) {
	if raw == "" {
		return "", nil
	}
	mode, ok := domain.ParseRunMode(strings.ToLower(raw))
	if !ok {
		return "", fmt.Errorf("invalid mode %q: want local|llm|offline", raw)
	}
	return mode, nil
}

// NewConfirmer returns a stdin prompter, or AutoConfirm when yes is set.
func NewConfirmer(in io.Reader, out io.Writer, yes bool) ports.Confirmer {
	if yes {
		return AutoConfirm{}
	}
	return NewPrompter(in, out)
}

// WriteYAML encodes v with two-space indentation.
func WriteYAML(w io.Writer, v interface{}) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

func Pluralize(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
