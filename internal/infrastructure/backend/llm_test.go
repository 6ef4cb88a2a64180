package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doeshing/hateshield/internal/domain"
)

func TestLLMAnalyzerOpenAI(t *testing.T) {
	t.Setenv("TEST_OPENAI_KEY", "sk-test")

	var request struct {
		Model    string              `json:"model"`
		Messages []map[string]string `json:"messages"`
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer sk-test", r.Header.Get("authorization"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&request))
		reply := "```json\n" + toxicBody + "\n```"
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{{"message": map[string]string{"content": reply}}},
		})
	}))
	defer srv.Close()

	model := domain.ModelDefinition{Name: "gpt", Endpoint: srv.URL, AuthEnvVar: "TEST_OPENAI_KEY", ModelID: "gpt-4o-mini"}
	analyzer := newLLMAnalyzer("openai", model, srv.Client(), openaiAdapter())

	result, err := analyzer.Analyze(context.Background(), "go die")
	require.NoError(t, err)
	assert.Equal(t, domain.ClassificationToxic, result.Classification)
	assert.Equal(t, "openai:gpt", result.Backend)
	assert.Equal(t, "go die", result.OriginalText)

	assert.Equal(t, "gpt-4o-mini", request.Model)
	require.Len(t, request.Messages, 2)
	assert.Equal(t, "system", request.Messages[0]["role"])
	assert.True(t, strings.Contains(request.Messages[1]["content"], `"go die"`))
}

func TestLLMAnalyzerAnthropic(t *testing.T) {
	t.Setenv("ANTHROPIC_API_KEY", "anthropic-test")

	var request map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "anthropic-test", r.Header.Get("x-api-key"))
		assert.Equal(t, "2023-06-01", r.Header.Get("anthropic-version"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&request))
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"content": []map[string]string{{"type": "text", "text": toxicBody}},
		})
	}))
	defer srv.Close()

	model := domain.ModelDefinition{Name: "claude", Endpoint: srv.URL}
	analyzer := newLLMAnalyzer("anthropic", model, srv.Client(), anthropicAdapter())

	result, err := analyzer.Analyze(context.Background(), "go die")
	require.NoError(t, err)
	assert.Equal(t, domain.ClassificationToxic, result.Classification)
	assert.Equal(t, defaultAnthropicModel, request["model"])
	assert.NotEmpty(t, request["system"])
	assert.EqualValues(t, domain.DefaultMaxTokens, request["max_tokens"])
}

func TestLLMAnalyzerMissingKey(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	model := domain.ModelDefinition{Name: "gpt", Endpoint: "http://127.0.0.1:1", AuthEnvVar: "UNSET_KEY_FOR_TEST"}
	analyzer := newLLMAnalyzer("openai", model, http.DefaultClient, openaiAdapter())

	_, err := analyzer.Analyze(context.Background(), "hello there")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing API key")
}

func TestLLMAnalyzerUnparseableReply(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{{"message": map[string]string{"content": "I cannot help with that."}}},
		})
	}))
	defer srv.Close()

	model := domain.ModelDefinition{Name: "ollama", Endpoint: srv.URL, ModelID: "llama3"}
	_, err := newLLMAnalyzer("ollama", model, srv.Client(), ollamaAdapter()).Analyze(context.Background(), "hello there")
	assert.ErrorIs(t, err, ErrMalformedPayload)
}
