package llm

import (
	"context"
	"fmt"
	"os"
)

// DeepSeekProvider targets the DeepSeek chat completions API, which is
// wire-compatible with the OpenAI format.
type DeepSeekProvider struct{}

var _ Provider = (*DeepSeekProvider)(nil)

func (p *DeepSeekProvider) GenerateResponse(ctx context.Context, prompt string, systemPrompt string, options map[string]interface{}) (string, error) {
	apiKey := os.Getenv("DEEPSEEK_API_KEY")
	if val := optString(options, "api_key"); val != "" {
		apiKey = val
	}
	if apiKey == "" {
		return "", fmt.Errorf("DEEPSEEK_API_KEY_MISSING: Please set DEEPSEEK_API_KEY env var")
	}

	model := "deepseek-chat"
	if val := optString(options, "model"); val != "" {
		model = val
	}

	url := "https://api.deepseek.com/chat/completions"
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

func (p *DeepSeekProvider) AdaptInstructions(raw string) string {
	return raw
}
