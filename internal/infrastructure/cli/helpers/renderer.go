package helpers

import (
	"fmt"
	"io"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/doeshing/hateshield/internal/application/history"
	"github.com/doeshing/hateshield/internal/domain"
)

const barWidth = 20

// MsgNoHistory is shown when no analyses are stored.
const MsgNoHistory = "No analyses yet."

// Renderer prints results, history and reports with the user's theme.
type Renderer struct {
	out      io.Writer
	settings domain.Settings
	styles   Styles
	now      func() time.Time
}

func NewRenderer(out io.Writer, settings domain.Settings) *Renderer {
	return &Renderer{
		out:      out,
		settings: settings,
		styles:   NewStyles(ThemeFor(settings)),
		now:      time.Now,
	}
}

// RenderResult prints the classification badge, meta line, emotions and rewrite.
func (r *Renderer) RenderResult(result domain.AnalysisResult) {
	s := r.styles
	fmt.Fprintf(r.out, "%s  %s\n", s.Badge(result.Classification),
		s.Muted.Render(fmt.Sprintf("Confidence: %.0f%% • Processed in %dms • via %s",
			result.Confidence, result.ProcessingTimeMS, result.Backend)))

	if result.Classification.IsFlagged() && r.settings.ExceedsThreshold(result.Confidence) {
		fmt.Fprintln(r.out, s.Warning.Render(fmt.Sprintf("⚠ Flagged with %.0f%% confidence (threshold %.0f%%)",
			result.Confidence, r.settings.ConfidenceThreshold)))
	}

	if r.settings.ShowEmotions {
		fmt.Fprintln(r.out)
		fmt.Fprintln(r.out, s.Title.Render("Emotions"))
		for _, e := range result.Emotions.Ordered() {
			fmt.Fprintf(r.out, "  %s %s %3.0f%%\n", s.Label.Render(e.Name), bar(e.Value), e.Value)
		}
	}

	rewritten := result.RewrittenText
	if rewritten == "" {
		rewritten = result.OriginalText
	}
	fmt.Fprintln(r.out)
	fmt.Fprintln(r.out, s.Title.Render("Safe rewrite"))
	fmt.Fprintln(r.out, s.Rewrite.Render(rewritten))
}

func bar(value float64) string {
	filled := int(math.Round(value / 100 * barWidth))
	filled = max(0, min(barWidth, filled))
	return strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)
}

// RenderHistory lists records newest first with their relative age.
func (r *Renderer) RenderHistory(records []domain.AnalysisRecord) {
	if len(records) == 0 {
		fmt.Fprintln(r.out, r.styles.Muted.Render(MsgNoHistory))
		return
	}
	for i, rec := range records {
		r.renderRow(i, rec)
	}
}

// RenderSearch lists matches with their index into the full history.
func (r *Renderer) RenderSearch(hits []history.IndexedRecord) {
	if len(hits) == 0 {
		fmt.Fprintln(r.out, r.styles.Muted.Render("No matching analyses."))
		return
	}
	for _, hit := range hits {
		r.renderRow(hit.Index, hit.Record)
	}
}

func (r *Renderer) renderRow(index int, rec domain.AnalysisRecord) {
	text := rec.Text
	if rec.Truncated() {
		text += "..."
	}
	fmt.Fprintf(r.out, "%3d  %s  %s  %s\n     %s\n",
		index,
		r.styles.Badge(rec.Classification),
		r.styles.Muted.Render(fmt.Sprintf("%.0f%%", rec.Confidence)),
		r.styles.Muted.Render(domain.RelativeAge(rec.Timestamp, r.now())),
		r.styles.Text.Render(text))
}

// RenderStats prints the dashboard aggregates.
func (r *Renderer) RenderStats(stats domain.DashboardStats) {
	s := r.styles
	fmt.Fprintln(r.out, s.Title.Render("Dashboard"))
	fmt.Fprintf(r.out, "  %s %s\n", s.Label.Render("total"), humanize.Comma(int64(stats.Total)))
	fmt.Fprintf(r.out, "  %s %s\n", s.Label.Render("safe"), humanize.Comma(int64(stats.Safe)))
	fmt.Fprintf(r.out, "  %s %s\n", s.Label.Render("flagged"), humanize.Comma(int64(stats.Flagged)))
	fmt.Fprintf(r.out, "  %s %d%%\n", s.Label.Render("avg conf"), stats.AvgConfidence)

	if stats.Total == 0 {
		return
	}
	fmt.Fprintln(r.out)
	fmt.Fprintln(r.out, s.Title.Render("Distribution"))
	for _, c := range domain.Classifications() {
		n := stats.Distribution[c]
		pct := float64(n) / float64(stats.Total) * 100
		fmt.Fprintf(r.out, "  %s %s %s\n", s.Badge(c), bar(pct), humanize.Comma(int64(n)))
	}

	if stats.EmotionSamples > 0 {
		fmt.Fprintln(r.out)
		fmt.Fprintln(r.out, s.Title.Render("Average emotions"))
		for _, e := range stats.EmotionAverages.Ordered() {
			fmt.Fprintf(r.out, "  %s %s %3.0f%%\n", s.Label.Render(e.Name), bar(e.Value), e.Value)
		}
	}
}

// RenderSettings prints every option as key = value, sorted by key.
func (r *Renderer) RenderSettings(values map[string]interface{}) {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(r.out, "%s = %v\n", r.styles.Label.Width(22).Render(k), values[k])
	}
}

// RenderDoctorReport prints one line per check.
func (r *Renderer) RenderDoctorReport(report domain.HealthReport) {
	for _, check := range report.Checks {
		var marker string
		switch check.Status {
		case domain.HealthOK:
			marker = r.styles.Success.Render("✔")
		case domain.HealthWarn:
			marker = r.styles.Warning.Render("!")
		default:
			marker = r.styles.Error.Render("✖")
		}
		fmt.Fprintf(r.out, "%s %s %s\n", marker, r.styles.Label.Width(20).Render(check.Name), check.Details)
	}
}
