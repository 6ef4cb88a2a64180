package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/doeshing/hateshield/internal/domain"
	"github.com/doeshing/hateshield/internal/ports"
)

const maxResponseBytes = 1 << 20

// RESTClient talks to a HateShield backend over POST {baseURL}/analyze.
type RESTClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewRESTClient creates a client for baseURL. A nil client gets the default timeout.
func NewRESTClient(baseURL string, client *http.Client) *RESTClient {
	if client == nil {
		client = &http.Client{Timeout: domain.DefaultHTTPClientTimeout}
	}
	return &RESTClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: client,
	}
}

func (c *RESTClient) Name() string {
	return "rest"
}

// Endpoint returns the backend base URL shown in failure messages.
func (c *RESTClient) Endpoint() string {
	return c.baseURL
}

func (c *RESTClient) Analyze(ctx context.Context, text string) (domain.AnalysisResult, error) {
	body, err := json.Marshal(map[string]string{"text": text})
	if err != nil {
		return domain.AnalysisResult{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/analyze", bytes.NewReader(body))
	if err != nil {
		return domain.AnalysisResult{}, err
	}
	req.Header.Set("content-type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.AnalysisResult{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return domain.AnalysisResult{}, fmt.Errorf("backend returned error: %s", resp.Status)
	}

	payload, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return domain.AnalysisResult{}, err
	}
	return DecodePayload(payload, c.Name())
}

// Health fetches GET {baseURL}/ and returns the reported status line.
func (c *RESTClient) Health(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/", nil)
	if err != nil {
		return "", err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("backend health: %s", resp.Status)
	}

	var status struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(&status); err != nil {
		return "", fmt.Errorf("backend health: %w", err)
	}
	return status.Status, nil
}

var _ ports.Analyzer = (*RESTClient)(nil)
