// Package research enriches a report with externally retrieved industry
// context. Retrieval is best-effort by contract: every failure mode is
// absorbed into Context{Available: false} so the report pipeline can always
// proceed on sales data alone.
package research

import (
	"context"
	"fmt"
	"time"
)

// maxSnippets caps the snippets carried into the prompt.
const maxSnippets = 5

// Snippet is one free-text summary of a retrieved external document.
type Snippet struct {
	Title         string `json:"title"`
	URL           string `json:"url"`
	Content       string `json:"content"`
	PublishedDate string `json:"published_date,omitempty"`
}

// Context is the retrieval result. Available=false with no snippets is a
// valid, expected state (missing key, timeout, backend error), never an
// error condition for downstream consumers.
type Context struct {
	Snippets  []Snippet `json:"snippets"`
	Available bool      `json:"available"`
}

// Unavailable is the canonical absence value.
func Unavailable() Context {
	return Context{Snippets: []Snippet{}, Available: false}
}

// Searcher is the external search capability. TavilyClient is the live
// implementation; tests substitute their own.
type Searcher interface {
	Search(ctx context.Context, query string, maxResults int) ([]Snippet, error)
}

// Config carries the retrieval credentials and timeout as plain values.
type Config struct {
	APIKey  string
	Timeout time.Duration // Default 30s when zero
}

// Retriever queries the search backend for company, product, industry and
// competitive context.
type Retriever struct {
	searcher Searcher
}

// NewRetriever builds a retriever over the live Tavily backend. A missing
// API key is handled at call time, not here.
func NewRetriever(cfg Config) *Retriever {
	return &Retriever{searcher: NewTavilyClient(cfg.APIKey, cfg.Timeout)}
}

// NewRetrieverWithSearcher injects a custom search backend (tests).
func NewRetrieverWithSearcher(s Searcher) *Retriever {
	return &Retriever{searcher: s}
}

// Research runs one best-effort retrieval pass for a company. Queries cover
// company trends, the top products, industry news and the competitive
// landscape; each query is individually best-effort and results are
// flattened in relevance order, capped at maxSnippets. Never returns an
// error and never panics out; the caller decides whether to re-invoke.
func (r *Retriever) Research(ctx context.Context, companyName string, topProducts []string) Context {
	if tc, ok := r.searcher.(*TavilyClient); ok && tc.APIKey == "" {
		return Unavailable()
	}

	queries := buildQueries(companyName, topProducts)

	var snippets []Snippet
	anySuccess := false
	for _, q := range queries {
		results, err := r.searcher.Search(ctx, q.text, q.maxResults)
		if err != nil {
			fmt.Printf("[research] query %q failed: %v\n", q.text, err)
			continue
		}
		anySuccess = true
		snippets = append(snippets, results...)
		if len(snippets) >= maxSnippets {
			break
		}
	}

	if !anySuccess {
		return Unavailable()
	}
	if len(snippets) > maxSnippets {
		snippets = snippets[:maxSnippets]
	}
	return Context{Snippets: snippets, Available: true}
}

type query struct {
	text       string
	maxResults int
}

// buildQueries mirrors the four query families: company trends, product
// trends for up to three top products, industry news, competitive landscape.
func buildQueries(companyName string, topProducts []string) []query {
	queries := []query{
		{fmt.Sprintf("%s latest news trends business strategy", companyName), 3},
	}
	for i, product := range topProducts {
		if i >= 3 {
			break
		}
		queries = append(queries, query{fmt.Sprintf("%s market trends industry analysis", product), 2})
	}
	queries = append(queries,
		query{fmt.Sprintf("%s industry market analysis competitive landscape", companyName), 3},
		query{fmt.Sprintf("%s competitors market share analysis", companyName), 3},
	)
	return queries
}
