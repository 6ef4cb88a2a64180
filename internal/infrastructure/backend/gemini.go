package backend

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"github.com/doeshing/hateshield/internal/domain"
	"github.com/doeshing/hateshield/internal/ports"
)

const (
	defaultGeminiModel    = "gemini-2.0-flash"
	defaultGeminiEndpoint = "https://generativelanguage.googleapis.com"
)

// contentGenerator is the slice of the genai Models service the analyzer needs.
type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// GeminiAnalyzer classifies text with Gemini structured output.
type GeminiAnalyzer struct {
	model     domain.ModelDefinition
	generator contentGenerator
}

// NewGeminiAnalyzer creates a Gemini client for the model definition.
// The API key comes from the model's auth env var, then GEMINI_API_KEY.
func NewGeminiAnalyzer(ctx context.Context, model domain.ModelDefinition) (*GeminiAnalyzer, error) {
	apiKey := getEnv(model.AuthEnvVar, "GEMINI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("missing API key: set %s or GEMINI_API_KEY", model.AuthEnvVar)
	}

	cfg := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}
	if model.Endpoint != "" && model.Endpoint != defaultGeminiEndpoint {
		cfg.HTTPOptions = genai.HTTPOptions{BaseURL: model.Endpoint}
	}

	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}
	return newGeminiAnalyzer(model, client.Models), nil
}

func newGeminiAnalyzer(model domain.ModelDefinition, generator contentGenerator) *GeminiAnalyzer {
	return &GeminiAnalyzer{model: model, generator: generator}
}

func (g *GeminiAnalyzer) Name() string {
	return "gemini:" + g.model.Name
}

func (g *GeminiAnalyzer) Endpoint() string {
	return defaultString(g.model.Endpoint, defaultGeminiEndpoint)
}

func (g *GeminiAnalyzer) Analyze(ctx context.Context, text string) (domain.AnalysisResult, error) {
	messages, err := renderPromptMessages(text)
	if err != nil {
		return domain.AnalysisResult{}, err
	}

	config := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(messages[0].Content, genai.RoleUser),
		MaxOutputTokens:   int32(g.model.MaxTokensOrDefault()),
		ResponseMIMEType:  "application/json",
		ResponseSchema:    analysisSchema(),
	}
	contents := []*genai.Content{
		genai.NewContentFromText(messages[1].Content, genai.RoleUser),
	}

	resp, err := g.generator.GenerateContent(ctx, defaultString(g.model.ModelID, defaultGeminiModel), contents, config)
	if err != nil {
		return domain.AnalysisResult{}, fmt.Errorf("gemini: %w", err)
	}
	if resp == nil {
		return domain.AnalysisResult{}, fmt.Errorf("%w: empty gemini response", ErrMalformedPayload)
	}

	result, err := DecodePayload([]byte(extractJSONObject(resp.Text())), g.Name())
	if err != nil {
		return domain.AnalysisResult{}, err
	}
	result.OriginalText = text
	return result, nil
}

func analysisSchema() *genai.Schema {
	percent := func() *genai.Schema { return &genai.Schema{Type: genai.TypeNumber} }

	classes := make([]string, 0, len(domain.Classifications()))
	for _, c := range domain.Classifications() {
		classes = append(classes, string(c))
	}

	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"classification": {Type: genai.TypeString, Enum: classes},
			"confidence":     percent(),
			"emotions": {
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"anger":   percent(),
					"fear":    percent(),
					"sadness": percent(),
					"disgust": percent(),
					"joy":     percent(),
				},
			},
			"rewritten_text": {Type: genai.TypeString},
		},
		Required: []string{"classification", "confidence", "emotions", "rewritten_text"},
	}
}

var _ ports.Analyzer = (*GeminiAnalyzer)(nil)
