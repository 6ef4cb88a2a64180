package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/doeshing/hateshield/internal/domain"
	"github.com/doeshing/hateshield/internal/ports"
)

const (
	defaultAnthropicEndpoint = "https://api.anthropic.com/v1/messages"
	defaultAnthropicModel    = "claude-3-5-sonnet-20240620"
)

// LLMAnalyzer asks a chat-completion model to classify text and parses the JSON reply.
type LLMAnalyzer struct {
	name       string
	model      domain.ModelDefinition
	httpClient *http.Client
	adapter    providerAdapter
}

type providerAdapter struct {
	buildRequest  func(domain.ModelDefinition, []promptMessage) ([]byte, error)
	parseResponse func([]byte) (string, error)
	setHeaders    func(*http.Request, domain.ModelDefinition) error
}

func newLLMAnalyzer(name string, model domain.ModelDefinition, client *http.Client, adapter providerAdapter) *LLMAnalyzer {
	return &LLMAnalyzer{
		name:       name,
		model:      model,
		httpClient: client,
		adapter:    adapter,
	}
}

func (a *LLMAnalyzer) Name() string {
	return a.name + ":" + a.model.Name
}

func (a *LLMAnalyzer) Endpoint() string {
	return a.model.Endpoint
}

func (a *LLMAnalyzer) Analyze(ctx context.Context, text string) (domain.AnalysisResult, error) {
	messages, err := renderPromptMessages(text)
	if err != nil {
		return domain.AnalysisResult{}, err
	}

	requestBody, err := a.adapter.buildRequest(a.model, messages)
	if err != nil {
		return domain.AnalysisResult{}, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, a.model.Endpoint, bytes.NewReader(requestBody))
	if err != nil {
		return domain.AnalysisResult{}, err
	}
	httpReq.Header.Set("content-type", "application/json")
	if err := a.adapter.setHeaders(httpReq, a.model); err != nil {
		return domain.AnalysisResult{}, err
	}

	resp, err := a.httpClient.Do(httpReq)
	if err != nil {
		return domain.AnalysisResult{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return domain.AnalysisResult{}, fmt.Errorf("%s: %s", a.name, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return domain.AnalysisResult{}, err
	}

	content, err := a.adapter.parseResponse(body)
	if err != nil {
		return domain.AnalysisResult{}, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}

	result, err := DecodePayload([]byte(extractJSONObject(content)), a.Name())
	if err != nil {
		return domain.AnalysisResult{}, err
	}
	result.OriginalText = text
	return result, nil
}

func anthropicAdapter() providerAdapter {
	return providerAdapter{
		buildRequest:  buildAnthropicRequest,
		parseResponse: parseAnthropicResponse,
		setHeaders:    setAnthropicHeaders,
	}
}

func openaiAdapter() providerAdapter {
	return providerAdapter{
		buildRequest:  buildChatCompletionRequest,
		parseResponse: parseChatCompletionResponse,
		setHeaders:    setOpenAIHeaders,
	}
}

func ollamaAdapter() providerAdapter {
	return providerAdapter{
		buildRequest:  buildChatCompletionRequest,
		parseResponse: parseChatCompletionResponse,
		setHeaders:    setOllamaHeaders,
	}
}

func buildAnthropicRequest(model domain.ModelDefinition, messages []promptMessage) ([]byte, error) {
	system, chatMessages := splitSystemMessages(messages)

	request := map[string]interface{}{
		"model":      defaultString(model.ModelID, defaultAnthropicModel),
		"max_tokens": model.MaxTokensOrDefault(),
		"messages":   chatMessages,
	}
	if system != "" {
		request["system"] = system
	}
	return json.Marshal(request)
}

func splitSystemMessages(messages []promptMessage) (string, []map[string]interface{}) {
	var systemLines []string
	var chatMessages []map[string]interface{}

	for _, msg := range messages {
		if strings.EqualFold(msg.Role, "system") {
			systemLines = append(systemLines, msg.Content)
			continue
		}
		chatMessages = append(chatMessages, map[string]interface{}{
			"role": msg.Role,
			"content": []map[string]string{
				{"type": "text", "text": msg.Content},
			},
		})
	}

	return strings.TrimSpace(strings.Join(systemLines, "\n")), chatMessages
}

func parseAnthropicResponse(body []byte) (string, error) {
	var response struct {
		Content []struct {
			Text string `json:"text"`
		} `json:"content"`
	}
	if err := json.Unmarshal(body, &response); err != nil {
		return "", err
	}
	if len(response.Content) == 0 {
		return "", fmt.Errorf("empty reply")
	}
	return response.Content[0].Text, nil
}

func setAnthropicHeaders(req *http.Request, model domain.ModelDefinition) error {
	apiKey := getEnv(model.AuthEnvVar, "ANTHROPIC_API_KEY")
	if apiKey == "" {
		return fmt.Errorf("missing API key: set %s or ANTHROPIC_API_KEY", model.AuthEnvVar)
	}
	req.Header.Set("x-api-key", apiKey)
	req.Header.Set("anthropic-version", "2023-06-01")
	return nil
}

func buildChatCompletionRequest(model domain.ModelDefinition, messages []promptMessage) ([]byte, error) {
	chatMessages := make([]map[string]string, 0, len(messages))
	for _, msg := range messages {
		chatMessages = append(chatMessages, map[string]string{
			"role":    strings.ToLower(msg.Role),
			"content": msg.Content,
		})
	}

	request := map[string]interface{}{
		"model":    model.ModelID,
		"messages": chatMessages,
	}
	if model.MaxTokens > 0 {
		request["max_tokens"] = model.MaxTokens
	}
	return json.Marshal(request)
}

func parseChatCompletionResponse(body []byte) (string, error) {
	var response struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(body, &response); err != nil {
		return "", err
	}
	if len(response.Choices) == 0 {
		return "", fmt.Errorf("empty reply")
	}
	return strings.TrimSpace(response.Choices[0].Message.Content), nil
}

func setOpenAIHeaders(req *http.Request, model domain.ModelDefinition) error {
	apiKey := getEnv(model.AuthEnvVar, "OPENAI_API_KEY")
	if apiKey == "" {
		return fmt.Errorf("missing API key: set %s or OPENAI_API_KEY", model.AuthEnvVar)
	}
	req.Header.Set("authorization", "Bearer "+apiKey)

	if org := getEnv(model.OrgEnvVar, "OPENAI_ORG_ID"); org != "" {
		req.Header.Set("OpenAI-Organization", org)
	}
	return nil
}

func setOllamaHeaders(*http.Request, domain.ModelDefinition) error {
	return nil
}

func getEnv(primary, fallback string) string {
	if primary != "" {
		if value := os.Getenv(primary); value != "" {
			return value
		}
	}
	if fallback != "" {
		return os.Getenv(fallback)
	}
	return ""
}

func defaultString(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

var _ ports.Analyzer = (*LLMAnalyzer)(nil)
