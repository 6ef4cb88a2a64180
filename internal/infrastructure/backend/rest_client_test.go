package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doeshing/hateshield/internal/domain"
)

const toxicBody = `{"original_text":"go die","classification":"toxic","confidence":95,"emotions":{"anger":90,"fear":15,"sadness":0,"disgust":55,"joy":0},"rewritten_text":"I respectfully express my disagreement.","processing_time_ms":3}`

func TestRESTClientAnalyze(t *testing.T) {
	var got map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/analyze", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("content-type"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(toxicBody))
	}))
	defer srv.Close()

	client := NewRESTClient(srv.URL+"/", srv.Client())
	assert.Equal(t, srv.URL, client.Endpoint())

	result, err := client.Analyze(context.Background(), "go die")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"text": "go die"}, got)
	assert.Equal(t, domain.ClassificationToxic, result.Classification)
	assert.Equal(t, 95.0, result.Confidence)
	assert.Equal(t, "rest", result.Backend)
}

func TestRESTClientErrors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{name: "server error", status: http.StatusInternalServerError, body: `{"error":"boom"}`},
		{name: "reported error", status: http.StatusOK, body: `{"error":"model missing"}`, wantErr: ErrBackendReported},
		{name: "malformed", status: http.StatusOK, body: `{"classification":"safe"}`, wantErr: ErrMalformedPayload},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := NewRESTClient(srv.URL, srv.Client()).Analyze(context.Background(), "text")
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestRESTClientUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := NewRESTClient(url, nil).Analyze(context.Background(), "text")
	assert.Error(t, err)
}

func TestRESTClientHealth(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/", r.URL.Path)
		_, _ = w.Write([]byte(`{"status":"HateShield backend running"}`))
	}))
	defer srv.Close()

	status, err := NewRESTClient(srv.URL, srv.Client()).Health(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "HateShield backend running", status)
}
