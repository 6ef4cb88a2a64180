package analysis

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/doeshing/hateshield/internal/domain"
)

const testQuiet = 20 * time.Millisecond

// The genai dependency starts an opencensus worker at init.
var ignoreOpenCensus = goleak.IgnoreTopFunction("go.opencensus.io/stats/view.(*worker).start")

func newAutoHarness(t *testing.T, auto bool) (*harness, *Debouncer, chan domain.AnalysisResult) {
	t.Helper()
	h := newHarness(t, &stubAnalyzer{result: toxicResult()})
	h.settings.settings.AutoAnalyze = auto
	results := make(chan domain.AnalysisResult, 4)
	d := NewDebouncer(h.flow, h.settings, func(r domain.AnalysisResult, err error) {
		if err == nil {
			results <- r
		}
	}).WithQuiet(testQuiet)
	return h, d, results
}

func TestDebouncerSubmitsLastInputOfBurst(t *testing.T) {
	defer goleak.VerifyNone(t, ignoreOpenCensus)
	h, d, results := newAutoHarness(t, true)
	defer d.Stop()

	ctx := context.Background()
	for _, text := range []string{"this is a draft", "this is a draft com", "this is a draft comment"} {
		assert.True(t, d.Input(ctx, text))
	}

	select {
	case r := <-results:
		assert.Equal(t, "this is a draft comment", r.OriginalText)
	case <-time.After(2 * time.Second):
		t.Fatal("debounced submission never ran")
	}
	d.Stop()
	assert.Equal(t, []string{"this is a draft comment"}, h.analyzer.Calls())
}

func TestDebouncerIgnoresShortTextAndDisabledSetting(t *testing.T) {
	defer goleak.VerifyNone(t, ignoreOpenCensus)
	ctx := context.Background()

	h, d, _ := newAutoHarness(t, true)
	assert.False(t, d.Input(ctx, "ten chars!"))
	time.Sleep(3 * testQuiet)
	d.Stop()
	assert.Empty(t, h.analyzer.Calls())

	h, d, _ = newAutoHarness(t, false)
	assert.False(t, d.Input(ctx, "long enough to analyze"))
	time.Sleep(3 * testQuiet)
	d.Stop()
	assert.Empty(t, h.analyzer.Calls())
}

func TestDebouncerShortInputCancelsPending(t *testing.T) {
	defer goleak.VerifyNone(t, ignoreOpenCensus)
	h, d, _ := newAutoHarness(t, true)
	d.WithQuiet(100 * time.Millisecond)

	ctx := context.Background()
	require.True(t, d.Input(ctx, "long enough to analyze"))
	require.False(t, d.Input(ctx, "short"))
	time.Sleep(200 * time.Millisecond)
	d.Stop()
	assert.Empty(t, h.analyzer.Calls())
}

func TestDebouncerStopCancelsPending(t *testing.T) {
	defer goleak.VerifyNone(t, ignoreOpenCensus)
	h, d, _ := newAutoHarness(t, true)
	d.WithQuiet(time.Hour)

	require.True(t, d.Input(context.Background(), "long enough to analyze"))
	d.Stop()
	assert.False(t, d.Input(context.Background(), "another long comment"))
	assert.Empty(t, h.analyzer.Calls())
}

func TestDebouncerDeliversResultToCallback(t *testing.T) {
	defer goleak.VerifyNone(t, ignoreOpenCensus)
	h, d, results := newAutoHarness(t, true)
	defer d.Stop()

	require.True(t, d.Input(context.Background(), "please look at this comment"))

	select {
	case r := <-results:
		assert.Equal(t, domain.ClassificationToxic, r.Classification)
		assert.Equal(t, "please look at this comment", r.OriginalText)
	case <-time.After(2 * time.Second):
		t.Fatal("result never delivered")
	}
	assert.Len(t, h.cache.Records(context.Background()), 1)
}

func TestDebouncerStopDuringRequestSkipsCallback(t *testing.T) {
	defer goleak.VerifyNone(t, ignoreOpenCensus)
	analyzer := &stubAnalyzer{result: toxicResult(), block: make(chan struct{})}
	h := newHarness(t, analyzer)
	h.settings.settings.AutoAnalyze = true

	var mu sync.Mutex
	delivered := 0
	d := NewDebouncer(h.flow, h.settings, func(domain.AnalysisResult, error) {
		mu.Lock()
		delivered++
		mu.Unlock()
	}).WithQuiet(testQuiet)

	require.True(t, d.Input(context.Background(), "long enough to analyze"))
	require.Eventually(t, func() bool { return len(analyzer.Calls()) == 1 }, 2*time.Second, 5*time.Millisecond)
	d.Stop()

	mu.Lock()
	defer mu.Unlock()
	assert.Zero(t, delivered)
	assert.Equal(t, domain.StateIdle, h.flow.State())
}
