package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownClassification is returned when a backend reports a label outside the closed set.
var ErrUnknownClassification = errors.New("unknown classification")

// Classification is the four-way label a backend assigns to submitted text.
type Classification string

const (
	ClassificationSafe       Classification = "safe"
	ClassificationOffensive  Classification = "offensive"
	ClassificationHateSpeech Classification = "hate_speech"
	ClassificationToxic      Classification = "toxic"
)

// Classifications lists every valid classification in display order.
func Classifications() []Classification {
	return []Classification{
		ClassificationSafe,
		ClassificationOffensive,
		ClassificationHateSpeech,
		ClassificationToxic,
	}
}

// ParseClassification normalises a raw label ("Hate Speech", " TOXIC ") and rejects unknown values.
func ParseClassification(raw string) (Classification, error) {
	normalized := strings.ToLower(strings.TrimSpace(raw))
	normalized = strings.NewReplacer(" ", "_", "-", "_").Replace(normalized)
	for _, c := range Classifications() {
		if string(c) == normalized {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownClassification, raw)
}

// Valid reports whether c is one of the four known classifications.
func (c Classification) Valid() bool {
	for _, known := range Classifications() {
		if c == known {
			return true
		}
	}
	return false
}

// Label returns the badge text, e.g. "HATE SPEECH".
func (c Classification) Label() string {
	return strings.ToUpper(strings.ReplaceAll(string(c), "_", " "))
}

// IsFlagged is true for everything except safe content.
func (c Classification) IsFlagged() bool {
	return c != ClassificationSafe
}
