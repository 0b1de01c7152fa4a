package llm

import (
	"context"
	"fmt"
	"os"
)

// OpenAIProvider targets the OpenAI chat completions API. This is the
// default generation backend for executive reports.
type OpenAIProvider struct{}

var _ Provider = (*OpenAIProvider)(nil)

func (p *OpenAIProvider) GenerateResponse(ctx context.Context, prompt string, systemPrompt string, options map[string]interface{}) (string, error) {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if val := optString(options, "api_key"); val != "" {
		apiKey = val
	}
	if apiKey == "" {
		return "", fmt.Errorf("OPENAI_API_KEY_MISSING: Please set OPENAI_API_KEY env var")
	}

	model := "gpt-4"
	if val := optString(options, "model"); val != "" {
		model = val
	}

	url := "https://api.openai.com/v1/chat/completions"
	if val := optString(options, "base_url"); val != "" {
		url = val + "/chat/completions"
	}

	reqBody := chatRequest{
		Model: model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: prompt},
		},
		Temperature: 0.3,
		MaxTokens:   4096,
		Stream:      false,
	}

	return chatCompletion(ctx, url, apiKey, reqBody, optTimeout(options))
}

func (p *OpenAIProvider) AdaptInstructions(raw string) string {
	return raw
}
