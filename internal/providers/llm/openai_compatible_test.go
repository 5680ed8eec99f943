package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sandevgo/sidenote/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenAICompatible_Chat(t *testing.T) {
	tests := []struct {
		name       string
		opts       core.ChatOptions
		handler    http.HandlerFunc
		want       string
		wantErr    bool
		wantErrMsg string
	}{
		{
			name: "successful completion",
			opts: core.ChatOptions{Temperature: 0.1, MaxTokens: 500},
			handler: func(w http.ResponseWriter, r *http.Request) {
				require.Equal(t, "/v1/chat/completions", r.URL.Path)
				require.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

				var payload map[string]any
				require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
				assert.Equal(t, "test-model", payload["model"])
				assert.InDelta(t, 0.1, payload["temperature"], 0.001)
				assert.EqualValues(t, 500, payload["max_tokens"])

				fmt.Fprint(w, `{"choices": [{"message": {"content": "[\"Raft\"]"}}]}`)
			},
			want: `["Raft"]`,
		},
		{
			name: "zero options omitted from payload",
			handler: func(w http.ResponseWriter, r *http.Request) {
				var payload map[string]any
				require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
				assert.NotContains(t, payload, "temperature")
				assert.NotContains(t, payload, "max_tokens")

				fmt.Fprint(w, `{"choices": [{"message": {"content": "ok"}}]}`)
			},
			want: "ok",
		},
		{
			name: "non-200 response",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusTooManyRequests)
				fmt.Fprint(w, `{"error": "rate limit"}`)
			},
			wantErr:    true,
			wantErrMsg: "http 429",
		},
		{
			name: "empty choices",
			handler: func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, `{"choices": []}`)
			},
			wantErr:    true,
			wantErrMsg: "empty choices",
		},
		{
			name: "malformed body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, `not json at all`)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			defer server.Close()

			provider := NewOpenAICompatible(OpenAICompatibleConfig{
				BaseURL:    server.URL,
				APIKey:     "test-key",
				Model:      "test-model",
				AuthHeader: "Authorization",
				AuthPrefix: "Bearer ",
			})

			got, err := provider.Chat(context.Background(), []core.Message{
				{Role: core.RoleUser, Content: "hello"},
			}, tt.opts)

			if tt.wantErr {
				require.Error(t, err)
				if tt.wantErrMsg != "" {
					assert.Contains(t, err.Error(), tt.wantErrMsg)
				}
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestOpenAICompatible_ChatExtraHeaders(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "https://example.com", r.Header.Get("HTTP-Referer"))
		fmt.Fprint(w, `{"choices": [{"message": {"content": "ok"}}]}`)
	}))
	defer server.Close()

	provider := NewOpenAICompatible(OpenAICompatibleConfig{
		BaseURL:      server.URL,
		APIKey:       "k",
		Model:        "m",
		AuthHeader:   "Authorization",
		AuthPrefix:   "Bearer ",
		ExtraHeaders: map[string]string{"HTTP-Referer": "https://example.com"},
	})

	_, err := provider.Chat(context.Background(), []core.Message{{Role: core.RoleUser, Content: "hi"}}, core.ChatOptions{})
	require.NoError(t, err)
}

func TestOpenAICompatible_ChatContextCancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"choices": [{"message": {"content": "ok"}}]}`)
	}))
	defer server.Close()

	provider := NewOpenAICompatible(OpenAICompatibleConfig{
		BaseURL: server.URL,
		Model:   "m",
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := provider.Chat(ctx, []core.Message{{Role: core.RoleUser, Content: "hi"}}, core.ChatOptions{})
	require.Error(t, err)
}
