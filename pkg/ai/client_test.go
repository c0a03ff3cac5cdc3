package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resumetuner/pkg/config"
)

func TestClientGenerate(t *testing.T) {
	var got chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"` + "```text\\nSUMMARY\\nGo engineer.\\n```" + `"}}]}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL+"/", "sk-test", "gpt-4o-mini", 5*time.Second)
	c.Temperature = 0.2
	out, err := c.Generate(context.Background(), "be terse", "resume text")
	require.NoError(t, err)

	assert.Equal(t, "SUMMARY\nGo engineer.", out)
	assert.Equal(t, "gpt-4o-mini", got.Model)
	require.Len(t, got.Messages, 2)
	assert.Equal(t, chatMessage{Role: "system", Content: "be terse"}, got.Messages[0])
	assert.Equal(t, chatMessage{Role: "user", Content: "resume text"}, got.Messages[1])
	assert.InDelta(t, 0.2, got.Temperature, 1e-9)
}

func TestClientGenerateErrors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr string
	}{
		{name: "non-200", status: http.StatusTooManyRequests, body: `{"error":"slow down"}`, wantErr: "status 429"},
		{name: "no choices", status: http.StatusOK, body: `{"choices":[]}`, wantErr: "no choices"},
		{name: "bad json", status: http.StatusOK, body: `not json`, wantErr: "decode"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := NewClient(srv.URL, "", "m", time.Second).Generate(context.Background(), "i", "x")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestClientHonoursContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err := NewClient(srv.URL, "", "m", 10*time.Second).Generate(ctx, "i", "x")
	assert.Error(t, err)
}

func TestAnthropicClientGenerate(t *testing.T) {
	var body map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/messages", r.URL.Path)
		assert.Equal(t, "sk-ant", r.Header.Get("X-Api-Key"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "msg_1", "type": "message", "role": "assistant", "model": "claude-test",
			"content": [{"type": "text", "text": "SKILLS\n"}, {"type": "text", "text": "Go"}],
			"stop_reason": "end_turn", "stop_sequence": null,
			"usage": {"input_tokens": 3, "output_tokens": 2}
		}`))
	}))
	defer srv.Close()

	c := NewAnthropicClient(config.AIConfig{
		APIKey:  "sk-ant",
		BaseURL: srv.URL + "/",
		Model:   "claude-test",
		Timeout: 5 * time.Second,
	})
	out, err := c.Generate(context.Background(), "system rules", "input")
	require.NoError(t, err)
	assert.Equal(t, "SKILLS\nGo", out)
	assert.Equal(t, "claude-test", body["model"])
	assert.EqualValues(t, 4096, body["max_tokens"])
}

func TestAnthropicClientError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"type":"error","error":{"type":"invalid_request_error","message":"bad"}}`))
	}))
	defer srv.Close()

	c := NewAnthropicClient(config.AIConfig{APIKey: "k", BaseURL: srv.URL + "/", Model: "m"})
	_, err := c.Generate(context.Background(), "i", "x")
	assert.Error(t, err)
}

func TestNewSelectsProvider(t *testing.T) {
	g, err := New(context.Background(), config.AIConfig{Provider: config.ProviderOpenAI, Model: "m", MaxTokens: 10})
	require.NoError(t, err)
	c, ok := g.(*Client)
	require.True(t, ok)
	assert.Equal(t, defaultOpenAIBase, c.BaseURL)
	assert.Equal(t, 10, c.MaxTokens)

	g, err = New(context.Background(), config.AIConfig{Provider: config.ProviderAnthropic, APIKey: "k", Model: "m"})
	require.NoError(t, err)
	assert.IsType(t, &AnthropicClient{}, g)

	_, err = New(context.Background(), config.AIConfig{Provider: "bard"})
	assert.Error(t, err)
}

func TestStripCodeFences(t *testing.T) {
	tests := []struct{ in, want string }{
		{"```\nSUMMARY\n```", "SUMMARY"},
		{"```latex\n\\documentclass{article}\n```\n", "\\documentclass{article}"},
		{"plain text", "plain text"},
		{"text with ``` inside", "text with ``` inside"},
		{"``````", "``````"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, stripCodeFences(tt.in), tt.in)
	}
}

func TestGeminiClientGenerate(t *testing.T) {
	var body map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1beta/models/gemini-test:generateContent", r.URL.Path)
		assert.Equal(t, "g-key", r.Header.Get("x-goog-api-key"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"role":"model","parts":[{"text":"` + "```\\nEXPERIENCE\\nAcme\\n```" + `"}]}}]}`))
	}))
	defer srv.Close()

	c, err := NewGeminiClient(context.Background(), config.AIConfig{
		APIKey:      "g-key",
		BaseURL:     srv.URL + "/",
		Model:       "gemini-test",
		Temperature: 0.5,
		MaxTokens:   256,
	})
	require.NoError(t, err)
	out, err := c.Generate(context.Background(), "system rules", "resume text")
	require.NoError(t, err)
	assert.Equal(t, "EXPERIENCE\nAcme", out)

	sys, ok := body["systemInstruction"].(map[string]interface{})
	require.True(t, ok, "systemInstruction missing: %v", body)
	parts := sys["parts"].([]interface{})
	assert.Equal(t, "system rules", parts[0].(map[string]interface{})["text"])

	contents := body["contents"].([]interface{})
	require.Len(t, contents, 1)
	userParts := contents[0].(map[string]interface{})["parts"].([]interface{})
	assert.Equal(t, "resume text", userParts[0].(map[string]interface{})["text"])

	gen := body["generationConfig"].(map[string]interface{})
	assert.InDelta(t, 0.5, gen["temperature"], 1e-6)
	assert.EqualValues(t, 256, gen["maxOutputTokens"])
}

func TestGeminiClientError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"code":400,"message":"bad","status":"INVALID_ARGUMENT"}}`))
	}))
	defer srv.Close()

	c, err := NewGeminiClient(context.Background(), config.AIConfig{APIKey: "k", BaseURL: srv.URL + "/", Model: "m"})
	require.NoError(t, err)
	_, err = c.Generate(context.Background(), "i", "x")
	assert.Error(t, err)
}
