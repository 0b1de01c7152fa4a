package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// defaultTimeout bounds every outbound generation call. Overridable per
// call via options["timeout_seconds"].
const defaultTimeout = 30 * time.Second

// chatRequest is the OpenAI-compatible chat completions payload shared by
// the OpenAI and DeepSeek providers.
type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
	Stream      bool          `json:"stream"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

// chatCompletion posts a chat completions request to an OpenAI-compatible
// endpoint and returns the first choice's content.
func chatCompletion(ctx context.Context, url string, apiKey string, body chatRequest, timeout time.Duration) (string, error) {
	jsonBytes, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("CHAT_MARSHAL_ERROR: %v", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonBytes))
	if err != nil {
		return "", fmt.Errorf("CHAT_REQ_CREATE_ERROR: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+apiKey)

	if timeout <= 0 {
		timeout = defaultTimeout
	}
	client := &http.Client{Timeout: timeout}
	res, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("CHAT_API_CALL_ERROR: %v", err)
	}
	defer res.Body.Close()

	payload, err := io.ReadAll(res.Body)
	if err != nil {
		return "", fmt.Errorf("CHAT_READ_BODY_ERROR: %v", err)
	}

	if res.StatusCode != 200 {
		return "", fmt.Errorf("CHAT_API_ERROR: status=%d body=%s", res.StatusCode, string(payload))
	}

	var response chatResponse
	if err := json.Unmarshal(payload, &response); err != nil {
		return "", fmt.Errorf("CHAT_UNMARSHAL_ERROR: %v", err)
	}
	if response.Error != nil {
		return "", fmt.Errorf("CHAT_API_ERROR: %s (%s)", response.Error.Message, response.Error.Type)
	}
	if len(response.Choices) == 0 {
		return "", fmt.Errorf("CHAT_NO_CHOICES: %s", string(payload))
	}

	return response.Choices[0].Message.Content, nil
}

// optString pulls an override string out of the options map.
func optString(options map[string]interface{}, key string) string {
	if val, ok := options[key].(string); ok {
		return val
	}
	return ""
}

// optTimeout reads a per-call timeout override in seconds.
func optTimeout(options map[string]interface{}) time.Duration {
	switch v := options["timeout_seconds"].(type) {
	case int:
		return time.Duration(v) * time.Second
	case float64:
		return time.Duration(v * float64(time.Second))
	}
	return defaultTimeout
}
