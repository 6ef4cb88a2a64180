package domain

import (
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// Emotions holds the 0-100 emotion scores returned by a backend.
type Emotions struct {
	Anger   float64 `json:"anger"`
	Fear    float64 `json:"fear"`
	Sadness float64 `json:"sadness"`
	Disgust float64 `json:"disgust"`
	Joy     float64 `json:"joy"`
}

// EmotionScore is a single named emotion value, used for ordered rendering.
type EmotionScore struct {
	Name  string
	Value float64
}

// Ordered returns the emotions in the order they are rendered.
func (e Emotions) Ordered() []EmotionScore {
	return []EmotionScore{
		{Name: "anger", Value: e.Anger},
		{Name: "joy", Value: e.Joy},
		{Name: "sadness", Value: e.Sadness},
		{Name: "fear", Value: e.Fear},
		{Name: "disgust", Value: e.Disgust},
	}
}

// AnalysisResult is the validated outcome of one backend call.
type AnalysisResult struct {
	OriginalText     string         `json:"original_text"`
	Classification   Classification `json:"classification"`
	Confidence       float64        `json:"confidence"`
	Emotions         Emotions       `json:"emotions"`
	RewrittenText    string         `json:"rewritten_text"`
	ProcessingTimeMS int64          `json:"processing_time_ms"`
	Backend          string         `json:"backend,omitempty"`
}

// AnalysisRecord is one immutable entry of the local history list.
type AnalysisRecord struct {
	ID             string         `json:"id,omitempty"`
	Text           string         `json:"text"`
	FullText       string         `json:"fullText"`
	Classification Classification `json:"classification"`
	Confidence     float64        `json:"confidence"`
	Timestamp      time.Time      `json:"timestamp"`
	Emotions       *Emotions      `json:"emotions,omitempty"`
}

// NewAnalysisRecord builds a record stamped at now, truncating the display copy.
func NewAnalysisRecord(text string, classification Classification, confidence float64, now time.Time) AnalysisRecord {
	return AnalysisRecord{
		ID:             uuid.NewString(),
		Text:           TruncateDisplay(text),
		FullText:       text,
		Classification: classification,
		Confidence:     confidence,
		Timestamp:      now,
	}
}

// Truncated reports whether the display copy is shorter than the full text.
func (r AnalysisRecord) Truncated() bool {
	return utf8.RuneCountInString(r.Text) >= DisplayTextLength && r.FullText != r.Text
}

// ReusableText returns the text to put back into the input, preferring the full copy.
func (r AnalysisRecord) ReusableText() string {
	if r.FullText != "" {
		return r.FullText
	}
	return r.Text
}

// TruncateDisplay keeps the first DisplayTextLength runes of text.
func TruncateDisplay(text string) string {
	if utf8.RuneCountInString(text) <= DisplayTextLength {
		return text
	}
	runes := []rune(text)
	return string(runes[:DisplayTextLength])
}
