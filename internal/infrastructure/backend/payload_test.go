package backend

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doeshing/hateshield/internal/domain"
)

func TestDecodePayload(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr error
		check   func(t *testing.T, r domain.AnalysisResult)
	}{
		{
			name: "well formed",
			body: `{"original_text":"x","classification":"Hate Speech","confidence":87,"emotions":{"anger":70,"fear":10,"sadness":5,"disgust":60,"joy":0},"rewritten_text":"y","processing_time_ms":12}`,
			check: func(t *testing.T, r domain.AnalysisResult) {
				assert.Equal(t, domain.ClassificationHateSpeech, r.Classification)
				assert.Equal(t, 87.0, r.Confidence)
				assert.Equal(t, 70.0, r.Emotions.Anger)
				assert.Equal(t, int64(12), r.ProcessingTimeMS)
				assert.Equal(t, "test", r.Backend)
			},
		},
		{
			name: "confidence clamped",
			body: `{"classification":"safe","confidence":140,"emotions":{"joy":-3},"rewritten_text":""}`,
			check: func(t *testing.T, r domain.AnalysisResult) {
				assert.Equal(t, 100.0, r.Confidence)
				assert.Equal(t, 0.0, r.Emotions.Joy)
			},
		},
		{name: "error field", body: `{"error":"model not loaded"}`, wantErr: ErrBackendReported},
		{name: "missing emotions", body: `{"classification":"safe","confidence":50,"rewritten_text":"ok"}`, wantErr: ErrMalformedPayload},
		{name: "unknown classification", body: `{"classification":"spicy","confidence":50,"emotions":{},"rewritten_text":"ok"}`, wantErr: ErrMalformedPayload},
		{name: "not json", body: `<html>`, wantErr: ErrMalformedPayload},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := DecodePayload([]byte(tt.body), "test")
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			tt.check(t, result)
		})
	}
}

func TestExtractJSONObject(t *testing.T) {
	tests := map[string]string{
		"bare":   `{"a":1}`,
		"fenced": "Here you go:\n```json\n{\"a\":1}\n```",
		"prose":  "Sure! {\"a\":1} Hope that helps.",
	}
	for name, input := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, `{"a":1}`, extractJSONObject(input))
		})
	}
}
