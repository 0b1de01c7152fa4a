package research

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const defaultEndpoint = "https://api.tavily.com/search"

// TavilyClient is a minimal client for the Tavily search API.
type TavilyClient struct {
	APIKey   string
	Endpoint string // Overridable for tests
	HTTP     *http.Client
}

// NewTavilyClient creates a client with the bounded timeout applied.
func NewTavilyClient(apiKey string, timeout time.Duration) *TavilyClient {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &TavilyClient{
		APIKey:   apiKey,
		Endpoint: defaultEndpoint,
		HTTP:     &http.Client{Timeout: timeout},
	}
}

type tavilyRequest struct {
	APIKey        string `json:"api_key"`
	Query         string `json:"query"`
	SearchDepth   string `json:"search_depth"`
	MaxResults    int    `json:"max_results"`
	IncludeAnswer bool   `json:"include_answer"`
}

type tavilyResponse struct {
	Results []struct {
		Title         string `json:"title"`
		URL           string `json:"url"`
		Content       string `json:"content"`
		PublishedDate string `json:"published_date"`
	} `json:"results"`
}

// Search runs a single query and returns its results in relevance order.
func (c *TavilyClient) Search(ctx context.Context, query string, maxResults int) ([]Snippet, error) {
	reqBody := tavilyRequest{
		APIKey:        c.APIKey,
		Query:         query,
		SearchDepth:   "advanced",
		MaxResults:    maxResults,
		IncludeAnswer: true,
	}

	jsonBytes, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("TAVILY_MARSHAL_ERROR: %v", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.Endpoint, bytes.NewBuffer(jsonBytes))
	if err != nil {
		return nil, fmt.Errorf("TAVILY_REQ_CREATE_ERROR: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	res, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("TAVILY_API_CALL_ERROR: %v", err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("TAVILY_READ_BODY_ERROR: %v", err)
	}

	if res.StatusCode != 200 {
		return nil, fmt.Errorf("TAVILY_API_ERROR: status=%d body=%s", res.StatusCode, string(body))
	}

	var response tavilyResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("TAVILY_UNMARSHAL_ERROR: %v", err)
	}

	snippets := make([]Snippet, 0, len(response.Results))
	for _, r := range response.Results {
		snippets = append(snippets, Snippet{
			Title:         r.Title,
			URL:           r.URL,
			Content:       StripHTML(r.Content),
			PublishedDate: r.PublishedDate,
		})
	}
	return snippets, nil
}
