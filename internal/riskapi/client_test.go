package riskapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient(t *testing.T) {
	tests := []struct {
		name         string
		config       Config
		wantEndpoint string
		wantErr      bool
	}{
		{
			name:         "default base URL",
			config:       Config{},
			wantEndpoint: "http://127.0.0.1:5000/analyze_transaction",
		},
		{
			name:         "trailing slash trimmed",
			config:       Config{BaseURL: "https://risk.example.com/"},
			wantEndpoint: "https://risk.example.com/analyze_transaction",
		},
		{
			name:         "base path kept",
			config:       Config{BaseURL: "http://localhost:8080/api"},
			wantEndpoint: "http://localhost:8080/api/analyze_transaction",
		},
		{
			name:    "missing scheme",
			config:  Config{BaseURL: "127.0.0.1:5000"},
			wantErr: true,
		},
		{
			name:    "unsupported scheme",
			config:  Config{BaseURL: "ftp://example.com"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := NewClient(tt.config)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidBaseURL)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantEndpoint, client.Endpoint())
		})
	}
}

func TestClientAnalyze(t *testing.T) {
	const body = `{"Transaction_ID":"TX123","Extracted_Entities":"Acme Holdings","Entity_Type":"Shell Company","Risk_Score":"High","Supporting_Evidence":"OFAC","Confidence_Score":0.95,"Reason":"Unusual amount"}`

	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, AnalyzePath, r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NotEmpty(t, r.Header.Get("X-Request-ID"))
		assert.Empty(t, r.Header.Get("Authorization"))

		raw, err := io.ReadAll(r.Body)
		assert.NoError(t, err)
		assert.JSONEq(t, `{"transaction_id":"TX123","details":"wire transfer $10,000"}`, string(raw))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
	defer server.Close()

	client, err := NewClient(Config{BaseURL: server.URL})
	require.NoError(t, err)

	result, err := client.Analyze(context.Background(), Request{
		TransactionID: "TX123",
		Details:       "wire transfer $10,000",
	})
	require.NoError(t, err)

	assert.Equal(t, int32(1), calls.Load())
	assert.Equal(t, "TX123", result.TransactionID.String())
	assert.Equal(t, "Acme Holdings", result.ExtractedEntities.String())
	assert.Equal(t, "Shell Company", result.EntityType.String())
	assert.Equal(t, "High", result.RiskScore.String())
	assert.Equal(t, "OFAC", result.SupportingEvidence.String())
	assert.Equal(t, "0.95", result.ConfidenceScore.String())
	assert.Equal(t, "Unusual amount", result.Reason.String())
	assert.Equal(t, body, string(result.Raw))
}

func TestClientAnalyzeFailures(t *testing.T) {
	tests := []struct {
		check   func(t *testing.T, err error)
		handler http.HandlerFunc
		name    string
	}{
		{
			name: "server error",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				http.Error(w, `{"Risk_Score":"ignored"}`, http.StatusInternalServerError)
			},
			check: func(t *testing.T, err error) {
				t.Helper()
				var statusErr *StatusError
				require.ErrorAs(t, err, &statusErr)
				assert.Equal(t, http.StatusInternalServerError, statusErr.StatusCode)
				assert.True(t, IsStatus(err, http.StatusInternalServerError))
				assert.Contains(t, err.Error(), "500")
			},
		},
		{
			name: "client error",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusBadRequest)
			},
			check: func(t *testing.T, err error) {
				t.Helper()
				assert.True(t, IsStatus(err, http.StatusBadRequest))
			},
		},
		{
			name: "malformed JSON",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(`{"Transaction_ID":`))
			},
			check: func(t *testing.T, err error) {
				t.Helper()
				assert.Contains(t, err.Error(), "failed to parse response")
				var statusErr *StatusError
				assert.False(t, errors.As(err, &statusErr))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			defer server.Close()

			client, err := NewClient(Config{BaseURL: server.URL})
			require.NoError(t, err)

			_, err = client.Analyze(context.Background(), Request{TransactionID: "TX1", Details: "d"})
			require.Error(t, err)
			tt.check(t, err)
		})
	}
}

func TestClientAnalyzeNetworkError(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	client, err := NewClient(Config{BaseURL: url})
	require.NoError(t, err)

	_, err = client.Analyze(context.Background(), Request{TransactionID: "TX1", Details: "d"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "request failed")
}

func TestClientAnalyzeBearerToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer secret-token", r.Header.Get("Authorization"))
		_ = json.NewEncoder(w).Encode(map[string]any{"Transaction_ID": "TX1"})
	}))
	defer server.Close()

	client, err := NewClient(Config{BaseURL: server.URL, Token: "secret-token"})
	require.NoError(t, err)

	result, err := client.Analyze(context.Background(), Request{TransactionID: "TX1", Details: "d"})
	require.NoError(t, err)
	assert.Equal(t, "TX1", result.TransactionID.String())
}

func TestClientAnalyzeTimeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		<-release
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()
	defer close(release)

	client, err := NewClient(Config{BaseURL: server.URL, Timeout: 50 * time.Millisecond})
	require.NoError(t, err)

	_, err = client.Analyze(context.Background(), Request{TransactionID: "TX1", Details: "d"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "request failed")
}

func TestClientAnalyzeCanceledContext(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client, err := NewClient(Config{BaseURL: server.URL})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = client.Analyze(ctx, Request{TransactionID: "TX1", Details: "d"})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}
