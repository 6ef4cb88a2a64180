package helpers

import (
	"fmt"
	"io"

	"github.com/doeshing/hateshield/internal/domain"
	"github.com/doeshing/hateshield/internal/ports"
)

// Notifier prints feedback messages. Success messages honour showSuccess;
// soundEffects rings the terminal bell.
type Notifier struct {
	out      io.Writer
	settings domain.Settings
	styles   Styles
}

func NewNotifier(out io.Writer, settings domain.Settings) *Notifier {
	return &Notifier{out: out, settings: settings, styles: NewStyles(ThemeFor(settings))}
}

func (n *Notifier) Notify(kind domain.FeedbackKind, message string) {
	var line string
	switch kind {
	case domain.FeedbackSuccess:
		if !n.settings.ShowSuccess {
			return
		}
		line = n.styles.Success.Render("✅ " + message)
	case domain.FeedbackWarning:
		line = n.styles.Warning.Render("⚠️  " + message)
	default:
		line = n.styles.Error.Render("❌ " + message)
	}
	if n.settings.SoundEffects {
		line = "\a" + line
	}
	fmt.Fprintln(n.out, line)
}

var _ ports.Notifier = (*Notifier)(nil)
