package llm

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroq_Generate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer groq-key", r.Header.Get("Authorization"))

		raw, _ := io.ReadAll(r.Body)
		var body map[string]any
		require.NoError(t, json.Unmarshal(raw, &body))
		assert.Equal(t, "llama-3.1-8b-instant", body["model"])
		// temperature 0도 반드시 전송되어야 합니다
		temp, ok := body["temperature"]
		assert.True(t, ok)
		assert.EqualValues(t, 0, temp)
		msgs := body["messages"].([]any)
		require.Len(t, msgs, 1)
		assert.Equal(t, "user", msgs[0].(map[string]any)["role"])
		assert.Equal(t, "the prompt", msgs[0].(map[string]any)["content"])

		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"1. Naruto"}}]}`))
	}))
	defer srv.Close()

	out, err := NewGroq(srv.URL+"/", "groq-key", "llama-3.1-8b-instant").Generate(context.Background(), "the prompt")
	require.NoError(t, err)
	assert.Equal(t, "1. Naruto", out)
}

func TestGroq_Errors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr string
	}{
		{"http error", http.StatusTooManyRequests, `{"error":{"message":"rate limit"}}`, "429"},
		{"no choices", http.StatusOK, `{"choices":[]}`, "no choices"},
		{"error payload", http.StatusOK, `{"error":{"message":"model decommissioned"}}`, "model decommissioned"},
		{"bad json", http.StatusOK, `not json`, "decode"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := NewGroq(srv.URL, "k", "m").Generate(context.Background(), "p")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestGroq_CancelledContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"x"}}]}`))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewGroq(srv.URL, "k", "m").Generate(ctx, "p")
	assert.ErrorIs(t, err, context.Canceled)
}
