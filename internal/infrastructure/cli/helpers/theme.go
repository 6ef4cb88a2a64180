package helpers

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/doeshing/hateshield/internal/domain"
)

var (
	lightForeground = lipgloss.Color("#1f2937")
	lightMuted      = lipgloss.Color("#6b7280")
	lightAccent     = lipgloss.Color("#4f46e5")

	darkForeground = lipgloss.Color("#f3f4f6")
	darkMuted      = lipgloss.Color("#9ca3af")
	darkAccent     = lipgloss.Color("#818cf8")

	colorSafe       = lipgloss.Color("#16a34a")
	colorOffensive  = lipgloss.Color("#d97706")
	colorHateSpeech = lipgloss.Color("#dc2626")
	colorToxic      = lipgloss.Color("#9333ea")
	colorWarning    = lipgloss.Color("#f59e0b")
	colorError      = lipgloss.Color("#ef4444")
)

// Theme holds the palette for one display mode.
type Theme struct {
	Foreground lipgloss.Color
	Muted      lipgloss.Color
	Accent     lipgloss.Color
	IsDark     bool
}

func LightTheme() Theme {
	return Theme{Foreground: lightForeground, Muted: lightMuted, Accent: lightAccent}
}

func DarkTheme() Theme {
	return Theme{Foreground: darkForeground, Muted: darkMuted, Accent: darkAccent, IsDark: true}
}

// ThemeFor picks the palette from the darkMode setting.
func ThemeFor(settings domain.Settings) Theme {
	if settings.DarkMode {
		return DarkTheme()
	}
	return LightTheme()
}

// Styles holds the styled components used by the renderer.
type Styles struct {
	Theme   Theme
	Title   lipgloss.Style
	Text    lipgloss.Style
	Muted   lipgloss.Style
	Label   lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
	Rewrite lipgloss.Style
}

func NewStyles(theme Theme) Styles {
	return Styles{
		Theme:   theme,
		Title:   lipgloss.NewStyle().Bold(true).Foreground(theme.Accent),
		Text:    lipgloss.NewStyle().Foreground(theme.Foreground),
		Muted:   lipgloss.NewStyle().Foreground(theme.Muted),
		Label:   lipgloss.NewStyle().Foreground(theme.Muted).Width(10),
		Success: lipgloss.NewStyle().Foreground(colorSafe),
		Warning: lipgloss.NewStyle().Foreground(colorWarning),
		Error:   lipgloss.NewStyle().Foreground(colorError).Bold(true),
		Rewrite: lipgloss.NewStyle().
			Foreground(theme.Foreground).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorSafe).
			Padding(0, 1),
	}
}

// Badge renders the classification label in its colour.
func (s Styles) Badge(c domain.Classification) string {
	return lipgloss.NewStyle().
		Bold(true).
		Padding(0, 1).
		Foreground(lipgloss.Color("#ffffff")).
		Background(classificationColor(c)).
		Render(c.Label())
}

func classificationColor(c domain.Classification) lipgloss.Color {
	switch c {
	case domain.ClassificationSafe:
		return colorSafe
	case domain.ClassificationOffensive:
		return colorOffensive
	case domain.ClassificationHateSpeech:
		return colorHateSpeech
	default:
		return colorToxic
	}
}
