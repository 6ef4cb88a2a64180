// Package analysis drives a single analysis request from submission to rendered result.
package analysis

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"golang.org/x/sync/semaphore"

	"github.com/doeshing/hateshield/internal/domain"
	"github.com/doeshing/hateshield/internal/ports"
)

var (
	// ErrBusy is returned when a submission arrives while another request is in flight.
	ErrBusy = errors.New("an analysis is already in progress")
	// ErrValidation wraps every input rejected before the backend is contacted.
	ErrValidation = errors.New("invalid input")
)

const (
	msgEmptyText    = "Please enter text to analyze"
	msgTooShort     = "Text is too short. Please enter at least 3 characters."
	msgTooLong      = "Text is over 5000 characters; the backend may truncate it."
	msgComplete     = "Analysis complete!"
	msgFailedPrefix = "Failed to analyze. Make sure backend is running at "
)

// Flow is the Idle → Validating → Requesting → Success|Failed → Idle state machine.
type Flow struct {
	analyzer ports.Analyzer
	settings ports.SettingsProvider
	history  ports.HistoryRecorder
	notifier ports.Notifier
	log      ports.Logger

	inflight *semaphore.Weighted

	mu        sync.Mutex
	state     domain.FlowState
	listeners []func(domain.FlowEvent)
}

// NewFlow wires a flow. history and notifier may be nil.
func NewFlow(analyzer ports.Analyzer, settings ports.SettingsProvider, history ports.HistoryRecorder, notifier ports.Notifier, log ports.Logger) *Flow {
	return &Flow{
		analyzer: analyzer,
		settings: settings,
		history:  history,
		notifier: notifier,
		log:      log,
		inflight: semaphore.NewWeighted(1),
		state:    domain.StateIdle,
	}
}

// OnTransition registers a listener invoked synchronously on every state change.
func (f *Flow) OnTransition(fn func(domain.FlowEvent)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listeners = append(f.listeners, fn)
}

// State returns the current state.
func (f *Flow) State() domain.FlowState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Busy reports whether the submit control is disabled.
func (f *Flow) Busy() bool {
	return f.State() != domain.StateIdle
}

// Submit runs one analysis. Validation failures never reach the backend, and the
// flow is back in Idle by the time Submit returns, whatever the outcome.
func (f *Flow) Submit(ctx context.Context, raw string) (result domain.AnalysisResult, err error) {
	if !f.inflight.TryAcquire(1) {
		return domain.AnalysisResult{}, ErrBusy
	}
	defer f.inflight.Release(1)

	text := strings.TrimSpace(raw)
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("analysis aborted: %v", r)
			f.log.Error("analysis panicked", err, nil)
			f.transition(domain.StateFailed, text, nil, err)
			f.notify(domain.FeedbackError, f.failureMessage())
		}
		if f.State() != domain.StateIdle {
			f.transition(domain.StateIdle, text, nil, nil)
		}
	}()

	f.transition(domain.StateValidating, text, nil, nil)
	if msg, ok := validate(text); !ok {
		f.notify(domain.FeedbackWarning, msg)
		return domain.AnalysisResult{}, fmt.Errorf("%w: %s", ErrValidation, msg)
	}

	if utf8.RuneCountInString(text) > domain.MaxTextLength {
		f.notify(domain.FeedbackWarning, msgTooLong)
	}

	settings := f.settings.GetSettings(ctx)
	f.transition(domain.StateRequesting, text, nil, nil)

	reqCtx, cancel := context.WithTimeout(ctx, settings.RequestTimeoutDuration())
	defer cancel()

	start := time.Now()
	result, err = f.analyzer.Analyze(reqCtx, text)
	if err != nil {
		f.log.Warn("analysis failed", map[string]interface{}{
			"backend":  f.analyzer.Name(),
			"endpoint": f.analyzer.Endpoint(),
			"error":    err.Error(),
		})
		f.transition(domain.StateFailed, text, nil, err)
		f.notify(domain.FeedbackError, f.failureMessage())
		return domain.AnalysisResult{}, fmt.Errorf("analyze via %s: %w", f.analyzer.Name(), err)
	}

	result.OriginalText = text
	if result.ProcessingTimeMS == 0 {
		result.ProcessingTimeMS = time.Since(start).Milliseconds()
	}
	if result.Backend == "" {
		result.Backend = f.analyzer.Name()
	}

	if settings.SaveHistory && f.history != nil {
		if _, herr := f.history.RecordResult(ctx, result); herr != nil {
			f.log.Warn("failed to record history", map[string]interface{}{"error": herr.Error()})
		}
	}

	f.transition(domain.StateSuccess, text, &result, nil)
	f.notify(domain.FeedbackSuccess, msgComplete)
	return result, nil
}

func validate(text string) (string, bool) {
	n := utf8.RuneCountInString(text)
	switch {
	case n == 0:
		return msgEmptyText, false
	case n < domain.MinTextLength:
		return msgTooShort, false
	}
	return "", true
}

func (f *Flow) failureMessage() string {
	endpoint := f.analyzer.Endpoint()
	if endpoint == "" {
		endpoint = domain.DefaultBackendURL
	}
	return msgFailedPrefix + endpoint
}

func (f *Flow) transition(to domain.FlowState, text string, result *domain.AnalysisResult, err error) {
	f.mu.Lock()
	event := domain.FlowEvent{From: f.state, To: to, Text: text, Result: result, Err: err}
	f.state = to
	listeners := append([]func(domain.FlowEvent){}, f.listeners...)
	f.mu.Unlock()

	f.log.Debug("flow transition", map[string]interface{}{"from": string(event.From), "to": string(to)})
	for _, fn := range listeners {
		fn(event)
	}
}

func (f *Flow) notify(kind domain.FeedbackKind, msg string) {
	if f.notifier != nil {
		f.notifier.Notify(kind, msg)
	}
}
