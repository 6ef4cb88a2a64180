package domain_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/doeshing/hateshield/internal/domain"
)

func TestDefaultSettings(t *testing.T) {
	s := domain.DefaultSettings()
	assert.True(t, s.DarkMode)
	assert.True(t, s.Animations)
	assert.False(t, s.AutoAnalyze)
	assert.Equal(t, 50.0, s.ConfidenceThreshold)
	assert.True(t, s.ShowEmotions)
	assert.Equal(t, "http://127.0.0.1:5000", s.BackendURL)
	assert.Equal(t, 10.0, s.RequestTimeout)
	assert.True(t, s.SaveHistory)
	assert.Equal(t, 5, s.HistoryLimit)
}

func TestSettingsFallbacks(t *testing.T) {
	var s domain.Settings
	assert.Equal(t, domain.DefaultHistoryLimit, s.HistoryLimitOrDefault())
	assert.Equal(t, 10*time.Second, s.RequestTimeoutDuration())
	assert.Equal(t, domain.DefaultBackendURL, s.BackendURLOrDefault())

	s.RequestTimeout = 2.5
	assert.Equal(t, 2500*time.Millisecond, s.RequestTimeoutDuration())
}

func TestParseRunMode(t *testing.T) {
	mode, ok := domain.ParseRunMode("llm")
	assert.True(t, ok)
	assert.Equal(t, domain.RunModeLLM, mode)

	_, ok = domain.ParseRunMode("cloud")
	assert.False(t, ok)
}

func TestNewAnalysisRecordTruncatesDisplayCopy(t *testing.T) {
	long := strings.Repeat("é", 150)
	now := time.Now()

	rec := domain.NewAnalysisRecord(long, domain.ClassificationSafe, 40, now)
	assert.Equal(t, 100, len([]rune(rec.Text)))
	assert.Equal(t, long, rec.FullText)
	assert.True(t, rec.Truncated())
	assert.Equal(t, long, rec.ReusableText())
	assert.Equal(t, now, rec.Timestamp)
	assert.NotEmpty(t, rec.ID)

	short := domain.NewAnalysisRecord("hello", domain.ClassificationSafe, 40, now)
	assert.False(t, short.Truncated())
}
