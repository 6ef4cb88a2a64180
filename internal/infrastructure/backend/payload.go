// Package backend holds the analyzers that classify text: the REST backend, hosted LLMs
// and the offline keyword rules.
package backend

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/doeshing/hateshield/internal/domain"
)

var (
	// ErrBackendReported means the backend answered with an explicit error field.
	ErrBackendReported = errors.New("backend reported an error")
	// ErrMalformedPayload means the body did not match the analysis result shape.
	ErrMalformedPayload = errors.New("malformed analysis payload")
)

// wirePayload is the union of the success and error shapes a backend may return.
type wirePayload struct {
	Error            *string       `json:"error"`
	OriginalText     string        `json:"original_text"`
	Classification   *string       `json:"classification"`
	Confidence       *float64      `json:"confidence"`
	Emotions         *wireEmotions `json:"emotions"`
	RewrittenText    *string       `json:"rewritten_text"`
	ProcessingTimeMS *float64      `json:"processing_time_ms"`
}

type wireEmotions struct {
	Anger   float64 `json:"anger"`
	Fear    float64 `json:"fear"`
	Sadness float64 `json:"sadness"`
	Disgust float64 `json:"disgust"`
	Joy     float64 `json:"joy"`
}

// DecodePayload validates a backend body and converts it to an AnalysisResult.
func DecodePayload(body []byte, backendName string) (domain.AnalysisResult, error) {
	var wire wirePayload
	if err := json.Unmarshal(body, &wire); err != nil {
		return domain.AnalysisResult{}, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}
	return wire.toResult(backendName)
}

func (w wirePayload) toResult(backendName string) (domain.AnalysisResult, error) {
	if w.Error != nil {
		return domain.AnalysisResult{}, fmt.Errorf("%w: %s", ErrBackendReported, *w.Error)
	}

	var missing []string
	if w.Classification == nil {
		missing = append(missing, "classification")
	}
	if w.Confidence == nil {
		missing = append(missing, "confidence")
	}
	if w.Emotions == nil {
		missing = append(missing, "emotions")
	}
	if w.RewrittenText == nil {
		missing = append(missing, "rewritten_text")
	}
	if len(missing) > 0 {
		return domain.AnalysisResult{}, fmt.Errorf("%w: missing %s", ErrMalformedPayload, strings.Join(missing, ", "))
	}

	classification, err := domain.ParseClassification(*w.Classification)
	if err != nil {
		return domain.AnalysisResult{}, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}

	result := domain.AnalysisResult{
		OriginalText:   w.OriginalText,
		Classification: classification,
		Confidence:     clampPercent(*w.Confidence),
		Emotions: domain.Emotions{
			Anger:   clampPercent(w.Emotions.Anger),
			Fear:    clampPercent(w.Emotions.Fear),
			Sadness: clampPercent(w.Emotions.Sadness),
			Disgust: clampPercent(w.Emotions.Disgust),
			Joy:     clampPercent(w.Emotions.Joy),
		},
		RewrittenText: *w.RewrittenText,
		Backend:       backendName,
	}
	if w.ProcessingTimeMS != nil && *w.ProcessingTimeMS > 0 {
		result.ProcessingTimeMS = int64(*w.ProcessingTimeMS)
	}
	return result, nil
}

func clampPercent(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Max(0, math.Min(100, v))
}

// extractJSONObject pulls the JSON object out of a model reply, which may wrap it in
// a fenced code block or surround it with prose.
func extractJSONObject(content string) string {
	content = strings.TrimSpace(content)
	if block := extractCodeBlock(content); block != "" {
		content = block
	}
	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start == -1 || end < start {
		return content
	}
	return content[start : end+1]
}

func extractCodeBlock(content string) string {
	start := strings.Index(content, "```")
	if start == -1 {
		return ""
	}
	suffix := content[start+3:]
	end := strings.Index(suffix, "```")
	if end == -1 {
		return ""
	}

	lines := strings.Split(suffix[:end], "\n")
	if len(lines) > 0 && strings.HasPrefix(strings.TrimSpace(lines[0]), "json") {
		lines = lines[1:]
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
