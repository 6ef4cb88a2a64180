package analysis

import (
	"context"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/doeshing/hateshield/internal/domain"
	"github.com/doeshing/hateshield/internal/ports"
)

// Debouncer submits text after a quiet period with no further input.
// Only the last input of a burst is submitted.
type Debouncer struct {
	flow     *Flow
	settings ports.SettingsProvider
	quiet    time.Duration
	onResult func(domain.AnalysisResult, error)

	mu       sync.Mutex
	timer    *time.Timer
	cancel   context.CancelFunc
	inflight context.CancelFunc
	wg       sync.WaitGroup
	stopped  bool
}

// NewDebouncer creates a debouncer with the default quiet period.
func NewDebouncer(flow *Flow, settings ports.SettingsProvider, onResult func(domain.AnalysisResult, error)) *Debouncer {
	return &Debouncer{
		flow:     flow,
		settings: settings,
		quiet:    domain.AutoAnalyzeQuiet,
		onResult: onResult,
	}
}

// WithQuiet overrides the quiet period.
func (d *Debouncer) WithQuiet(quiet time.Duration) *Debouncer {
	d.quiet = quiet
	return d
}

// Input records a change of the text. Any pending submission is cancelled; a new one
// is scheduled when auto-analyze is enabled and the text is long enough.
func (d *Debouncer) Input(ctx context.Context, text string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return false
	}
	d.cancelPendingLocked()

	if !d.settings.GetSettings(ctx).AutoAnalyze {
		return false
	}
	if utf8.RuneCountInString(strings.TrimSpace(text)) <= domain.AutoAnalyzeMinLength {
		return false
	}

	runCtx, cancel := context.WithCancel(ctx)
	d.cancel = cancel
	d.wg.Add(1)
	d.timer = time.AfterFunc(d.quiet, func() {
		defer d.wg.Done()
		if !d.claim(runCtx, cancel) {
			cancel()
			return
		}
		result, err := d.flow.Submit(runCtx, text)
		superseded := runCtx.Err() != nil
		d.release(cancel)
		if d.onResult != nil && !superseded {
			d.onResult(result, err)
		}
	})
	return true
}

// claim hands ownership of a fired timer's context to the in-flight slot.
// A context already cancelled by a newer Input loses the claim.
func (d *Debouncer) claim(runCtx context.Context, cancel context.CancelFunc) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped || runCtx.Err() != nil {
		return false
	}
	d.timer = nil
	d.cancel = nil
	d.inflight = cancel
	return true
}

func (d *Debouncer) release(cancel context.CancelFunc) {
	cancel()
	d.mu.Lock()
	d.inflight = nil
	d.mu.Unlock()
}

// Stop cancels pending work and waits for a running submission to finish.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	d.stopped = true
	d.cancelPendingLocked()
	if d.inflight != nil {
		d.inflight()
	}
	d.mu.Unlock()
	d.wg.Wait()
}

func (d *Debouncer) cancelPendingLocked() {
	if d.timer != nil && d.timer.Stop() {
		// never fired; release the slot its callback would have released
		d.wg.Done()
	}
	if d.cancel != nil {
		d.cancel()
	}
	d.timer = nil
	d.cancel = nil
}
