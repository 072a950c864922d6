package ai

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

// chatJSON builds a chat-completions response with the given content.
func chatJSON(content string) []byte {
	resp := map[string]any{
		"id": "test",
		"choices": []map[string]any{
			{"index": 0, "message": map[string]string{"role": "assistant", "content": content}},
		},
		"usage": map[string]int{"total_tokens": 10},
	}
	b, _ := json.Marshal(resp)
	return b
}

func TestClientGenerate(t *testing.T) {
	var gotAuth, gotPath string
	var gotReq chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &gotReq)
		_, _ = w.Write(chatJSON("hello there"))
	}))
	defer srv.Close()

	c := NewClient(&Config{APIKey: "test-key", BaseURL: srv.URL, Model: "test-model"})
	out, err := c.Generate(context.Background(), "say hello")
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}
	if out != "hello there" {
		t.Fatalf("out=%q", out)
	}
	if gotAuth != "Bearer test-key" {
		t.Fatalf("auth=%q", gotAuth)
	}
	if gotPath != "/v1/chat/completions" {
		t.Fatalf("path=%q", gotPath)
	}
	if gotReq.Model != "test-model" || len(gotReq.Messages) != 1 || gotReq.Messages[0].Content != "say hello" {
		t.Fatalf("request=%+v", gotReq)
	}
}

func TestClientGenerateAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := NewClient(&Config{APIKey: "k", BaseURL: srv.URL})
	if _, err := c.Generate(context.Background(), "hi"); err == nil {
		t.Fatal("expected error on non-200 status")
	}
}

func TestClientGenerateEmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id":"x","choices":[]}`))
	}))
	defer srv.Close()

	c := NewClient(&Config{APIKey: "k", BaseURL: srv.URL})
	if _, err := c.Generate(context.Background(), "hi"); err == nil {
		t.Fatal("expected error on empty choices")
	}
}

func TestClientConfigured(t *testing.T) {
	if NewClient(&Config{}).Configured() {
		t.Fatal("empty key should report unconfigured")
	}
	if !NewClient(&Config{APIKey: "k"}).Configured() {
		t.Fatal("non-empty key should report configured")
	}
}
