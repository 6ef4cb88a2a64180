// Package history implements the bounded, newest-first analysis history kept in the
// hs_history record.
package history

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/doeshing/hateshield/internal/domain"
	"github.com/doeshing/hateshield/internal/ports"
)

// ErrConfirmationRequired is returned by ClearHistory when no confirmer is supplied.
var ErrConfirmationRequired = errors.New("clearing history requires confirmation")

// Cache is the history list. Records are only ever prepended or cleared as a whole.
type Cache struct {
	kv       ports.KeyValueStore
	settings ports.SettingsProvider
	log      ports.Logger
	now      func() time.Time
	onChange func([]domain.AnalysisRecord)
	mu       sync.Mutex
}

// NewCache builds a history cache. The history limit is read from settings on every write.
func NewCache(kv ports.KeyValueStore, settings ports.SettingsProvider, log ports.Logger) *Cache {
	return &Cache{
		kv:       kv,
		settings: settings,
		log:      log,
		now:      time.Now,
	}
}

// WithClock replaces the timestamp source.
func (c *Cache) WithClock(now func() time.Time) *Cache {
	c.now = now
	return c
}

// OnChange registers the render hook invoked after every write or clear.
func (c *Cache) OnChange(fn func(records []domain.AnalysisRecord)) {
	c.onChange = fn
}

// RecordAnalysis prepends a new record and evicts the oldest beyond the history limit.
func (c *Cache) RecordAnalysis(ctx context.Context, text string, classification domain.Classification, confidence float64) (domain.AnalysisRecord, error) {
	return c.prepend(ctx, domain.NewAnalysisRecord(text, classification, confidence, c.now()))
}

// RecordResult records a backend result, keeping its emotions for the stats view.
func (c *Cache) RecordResult(ctx context.Context, result domain.AnalysisResult) (domain.AnalysisRecord, error) {
	rec := domain.NewAnalysisRecord(result.OriginalText, result.Classification, result.Confidence, c.now())
	emotions := result.Emotions
	rec.Emotions = &emotions
	return c.prepend(ctx, rec)
}

func (c *Cache) prepend(ctx context.Context, rec domain.AnalysisRecord) (domain.AnalysisRecord, error) {
	c.mu.Lock()
	records := c.load(ctx)
	if len(records) > 0 && rec.Timestamp.Before(records[0].Timestamp) {
		rec.Timestamp = records[0].Timestamp
	}

	limit := c.settings.GetSettings(ctx).HistoryLimitOrDefault()
	records = append([]domain.AnalysisRecord{rec}, records...)
	if len(records) > limit {
		records = records[:limit]
	}

	err := c.save(ctx, records)
	c.mu.Unlock()
	if err != nil {
		return domain.AnalysisRecord{}, err
	}
	c.render(records)
	return rec, nil
}

// Records returns the list newest first, capped at the current history limit.
func (c *Cache) Records(ctx context.Context) []domain.AnalysisRecord {
	c.mu.Lock()
	defer c.mu.Unlock()
	records := c.load(ctx)
	if limit := c.settings.GetSettings(ctx).HistoryLimitOrDefault(); len(records) > limit {
		records = records[:limit]
	}
	return records
}

// LoadFromHistory returns the full text at index for reuse as input. An index
// outside the list returns false and changes nothing.
func (c *Cache) LoadFromHistory(ctx context.Context, index int) (string, bool) {
	records := c.Records(ctx)
	if index < 0 || index >= len(records) {
		return "", false
	}
	return records[index].ReusableText(), true
}

// ClearHistory empties the list once confirmer agrees. It reports whether it cleared.
func (c *Cache) ClearHistory(ctx context.Context, confirmer ports.Confirmer) (bool, error) {
	if confirmer == nil {
		return false, ErrConfirmationRequired
	}
	ok, err := confirmer.Confirm("Clear all analysis history?")
	if err != nil {
		return false, fmt.Errorf("confirm clear: %w", err)
	}
	if !ok {
		return false, nil
	}

	c.mu.Lock()
	err = c.kv.Delete(ctx, domain.HistoryKey)
	c.mu.Unlock()
	if err != nil {
		return false, fmt.Errorf("clear history: %w", err)
	}
	c.render(nil)
	return true, nil
}

// IndexedRecord pairs a record with its position in the rendered list.
type IndexedRecord struct {
	Index  int
	Record domain.AnalysisRecord
}

// Search filters by case-insensitive substring and, when filter is non-empty, by classification.
func (c *Cache) Search(ctx context.Context, query string, filter domain.Classification) []IndexedRecord {
	query = strings.ToLower(strings.TrimSpace(query))
	var out []IndexedRecord
	for i, rec := range c.Records(ctx) {
		if filter != "" && rec.Classification != filter {
			continue
		}
		if query != "" && !strings.Contains(strings.ToLower(rec.ReusableText()), query) {
			continue
		}
		out = append(out, IndexedRecord{Index: i, Record: rec})
	}
	return out
}

// Stats aggregates the current list for the dashboard view.
func (c *Cache) Stats(ctx context.Context) domain.DashboardStats {
	return domain.ComputeStats(c.Records(ctx))
}

// Export writes the list as JSON Lines and returns the number of records written.
func (c *Cache) Export(ctx context.Context, w io.Writer) (int, error) {
	records := c.Records(ctx)
	enc := json.NewEncoder(w)
	for i, rec := range records {
		if err := enc.Encode(rec); err != nil {
			return i, fmt.Errorf("export record %d: %w", i, err)
		}
	}
	return len(records), nil
}

func (c *Cache) load(ctx context.Context) []domain.AnalysisRecord {
	raw, found, err := c.kv.Get(ctx, domain.HistoryKey)
	if err != nil {
		c.log.Warn("failed to read history", map[string]interface{}{"error": err.Error()})
		return nil
	}
	if !found || raw == "" {
		return nil
	}
	var records []domain.AnalysisRecord
	if err := json.Unmarshal([]byte(raw), &records); err != nil {
		c.log.Warn("discarding corrupt history", map[string]interface{}{"error": err.Error()})
		return nil
	}
	return records
}

func (c *Cache) save(ctx context.Context, records []domain.AnalysisRecord) error {
	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("marshal history: %w", err)
	}
	if err := c.kv.Set(ctx, domain.HistoryKey, string(data)); err != nil {
		return fmt.Errorf("save history: %w", err)
	}
	return nil
}

func (c *Cache) render(records []domain.AnalysisRecord) {
	if c.onChange != nil {
		c.onChange(records)
	}
}

var _ ports.HistoryRecorder = (*Cache)(nil)
