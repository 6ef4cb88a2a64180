package backend

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/doeshing/hateshield/internal/domain"
	"github.com/doeshing/hateshield/internal/ports"
)

// ErrNoModel is returned in llm mode when the config declares no usable model.
var ErrNoModel = errors.New("no LLM model configured")

// Factory builds the analyzer for a run mode.
type Factory struct {
	httpClient *http.Client
	log        ports.Logger
}

func NewFactory(log ports.Logger) *Factory {
	return &Factory{
		httpClient: &http.Client{Timeout: domain.DefaultHTTPClientTimeout},
		log:        log,
	}
}

// WithHTTPClient replaces the client used by REST and chat-completion analyzers.
func (f *Factory) WithHTTPClient(client *http.Client) *Factory {
	f.httpClient = client
	return f
}

func (f *Factory) ForMode(mode domain.RunMode, settings domain.Settings, cfg domain.Config) (ports.Analyzer, error) {
	switch mode {
	case domain.RunModeLocal, "":
		return NewRESTClient(settings.BackendURLOrDefault(), f.httpClient), nil
	case domain.RunModeOffline:
		return NewHeuristicAnalyzer(), nil
	case domain.RunModeLLM:
		return f.ForModels(cfg.ModelChain())
	default:
		return nil, fmt.Errorf("unsupported run mode: %s", mode)
	}
}

// ForModels builds the default model followed by its fallbacks. Models that cannot be
// constructed are skipped with a warning.
func (f *Factory) ForModels(models []domain.ModelDefinition) (ports.Analyzer, error) {
	var chain []ports.Analyzer
	for _, model := range models {
		analyzer, err := f.ForModel(model)
		if err != nil {
			f.log.Warn("skipping model", map[string]interface{}{"model": model.Name, "error": err.Error()})
			continue
		}
		chain = append(chain, analyzer)
	}

	switch len(chain) {
	case 0:
		return nil, ErrNoModel
	case 1:
		return chain[0], nil
	default:
		return &chainAnalyzer{analyzers: chain, log: f.log}, nil
	}
}

func (f *Factory) ForModel(model domain.ModelDefinition) (ports.Analyzer, error) {
	switch kind := model.Kind(); kind {
	case domain.ProviderKindAnthropic:
		model.Endpoint = defaultString(model.Endpoint, defaultAnthropicEndpoint)
		return newLLMAnalyzer("anthropic", model, f.httpClient, anthropicAdapter()), nil
	case domain.ProviderKindOpenAI:
		return newLLMAnalyzer("openai", model, f.httpClient, openaiAdapter()), nil
	case domain.ProviderKindOllama:
		return newLLMAnalyzer("ollama", model, f.httpClient, ollamaAdapter()), nil
	case domain.ProviderKindGemini:
		return NewGeminiAnalyzer(context.Background(), model)
	case domain.ProviderKindUnknown:
		return NewHeuristicAnalyzer(), nil
	default:
		return nil, fmt.Errorf("unsupported provider kind: %s", kind)
	}
}

// chainAnalyzer tries each analyzer in order and returns the first success.
type chainAnalyzer struct {
	analyzers []ports.Analyzer
	log       ports.Logger
}

func (c *chainAnalyzer) Name() string {
	names := make([]string, 0, len(c.analyzers))
	for _, a := range c.analyzers {
		names = append(names, a.Name())
	}
	return strings.Join(names, ",")
}

func (c *chainAnalyzer) Endpoint() string {
	return c.analyzers[0].Endpoint()
}

func (c *chainAnalyzer) Analyze(ctx context.Context, text string) (domain.AnalysisResult, error) {
	var errs []error
	for _, a := range c.analyzers {
		result, err := a.Analyze(ctx, text)
		if err == nil {
			return result, nil
		}
		errs = append(errs, fmt.Errorf("%s: %w", a.Name(), err))
		if ctx.Err() != nil {
			break
		}
		c.log.Warn("analyzer failed, trying fallback", map[string]interface{}{"analyzer": a.Name(), "error": err.Error()})
	}
	return domain.AnalysisResult{}, errors.Join(errs...)
}

var _ ports.AnalyzerFactory = (*Factory)(nil)
