package llm

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestOpenAIProvider_MissingKey(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")

	p := &OpenAIProvider{}
	_, err := p.GenerateResponse(context.Background(), "prompt", "system", nil)
	if err == nil || !strings.Contains(err.Error(), "OPENAI_API_KEY_MISSING") {
		t.Fatalf("expected missing key error, got %v", err)
	}
}

func TestOpenAIProvider_ParsesChoice(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("unexpected auth header %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"choices":[{"message":{"content":"EXECUTIVE SUMMARY:\nok"}}]}`)
	}))
	defer srv.Close()

	p := &OpenAIProvider{}
	out, err := p.GenerateResponse(context.Background(), "prompt", "system", map[string]interface{}{
		"api_key":  "test-key",
		"base_url": srv.URL,
	})
	if err != nil {
		t.Fatalf("GenerateResponse failed: %v", err)
	}
	if !strings.Contains(out, "EXECUTIVE SUMMARY") {
		t.Errorf("unexpected content: %q", out)
	}
}

func TestChatCompletion_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"bad key","type":"invalid_request_error"}}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	p := &DeepSeekProvider{}
	_, err := p.GenerateResponse(context.Background(), "prompt", "system", map[string]interface{}{
		"api_key":  "wrong",
		"base_url": srv.URL,
	})
	if err == nil || !strings.Contains(err.Error(), "CHAT_API_ERROR") {
		t.Fatalf("expected CHAT_API_ERROR, got %v", err)
	}
}

func TestChatCompletion_NoChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"choices":[]}`)
	}))
	defer srv.Close()

	p := &OpenAIProvider{}
	_, err := p.GenerateResponse(context.Background(), "prompt", "system", map[string]interface{}{
		"api_key":  "k",
		"base_url": srv.URL,
	})
	if err == nil || !strings.Contains(err.Error(), "CHAT_NO_CHOICES") {
		t.Fatalf("expected CHAT_NO_CHOICES, got %v", err)
	}
}
