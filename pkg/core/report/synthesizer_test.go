package report

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"execresearch/pkg/core/metrics"
	"execresearch/pkg/core/research"
	"execresearch/pkg/core/schema"
)

// --- Mocks ---

type mockProvider struct {
	GenerateFunc func(ctx context.Context, prompt string, systemPrompt string, options map[string]interface{}) (string, error)
}

func (m *mockProvider) GenerateResponse(ctx context.Context, prompt string, systemPrompt string, options map[string]interface{}) (string, error) {
	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx, prompt, systemPrompt, options)
	}
	return "", nil
}

func (m *mockProvider) AdaptInstructions(raw string) string { return raw }

const headedResponse = `EXECUTIVE SUMMARY:
Revenue is concentrated in a single flagship product.
Regional performance remains uneven.

KEY FINDINGS:
- iPhone drives 83% of revenue
- Americas is the strongest region

STRATEGIC RECOMMENDATIONS:
Diversify the product portfolio
Category: Strategic
Priority: High
Timeline: Long-term
Expected Impact: Reduced concentration risk

Expand EMEA sales coverage
Category: Operational
Priority: Medium
Timeline: Short-term
Expected Impact: Broader regional base

RISK ASSESSMENT:
Concentration on one product exposes revenue to demand shocks.

NEXT STEPS:
- Review product roadmap
- Commission EMEA market study`

func sampleRequest() Request {
	summary := metrics.Aggregate([]schema.NormalizedRecord{
		{Product: "iPhone", Region: "Americas", Value: 100},
		{Product: "iPhone", Region: "EMEA", Value: 50},
		{Product: "iPad", Region: "Americas", Value: 30},
	})
	return Request{
		CompanyName: "Apple Inc.",
		Role:        RoleCEO,
		Metrics:     summary,
		Research:    research.Unavailable(),
	}
}

// --- Tests ---

func TestSynthesize_ParsesHeadedResponse(t *testing.T) {
	syn := NewSynthesizer(&mockProvider{
		GenerateFunc: func(ctx context.Context, prompt, systemPrompt string, options map[string]interface{}) (string, error) {
			return headedResponse, nil
		},
	}, nil)

	sections, err := syn.Synthesize(context.Background(), sampleRequest())
	if err != nil {
		t.Fatalf("Synthesize failed: %v", err)
	}

	if !strings.Contains(sections.ExecutiveSummary, "flagship product") {
		t.Errorf("unexpected summary: %q", sections.ExecutiveSummary)
	}
	if len(sections.KeyFindings) != 2 {
		t.Errorf("expected 2 findings, got %v", sections.KeyFindings)
	}
	if len(sections.Recommendations) != 2 {
		t.Fatalf("expected 2 recommendations, got %v", sections.Recommendations)
	}
	if len(sections.Structured) != 2 || sections.Structured[0].Priority != "High" {
		t.Errorf("structured recommendations not recovered: %+v", sections.Structured)
	}
	if len(sections.Risks) != 1 || !strings.Contains(sections.Risks[0], "demand shocks") {
		t.Errorf("unexpected risks: %v", sections.Risks)
	}
	if len(sections.NextSteps) != 2 {
		t.Errorf("expected 2 next steps, got %v", sections.NextSteps)
	}
}

func TestSynthesize_BackendFailure(t *testing.T) {
	syn := NewSynthesizer(&mockProvider{
		GenerateFunc: func(ctx context.Context, prompt, systemPrompt string, options map[string]interface{}) (string, error) {
			return "", fmt.Errorf("CHAT_API_ERROR: status=401")
		},
	}, nil)

	sections, err := syn.Synthesize(context.Background(), sampleRequest())
	if sections != nil {
		t.Error("no sections should be produced on backend failure")
	}

	var synErr *SynthesisError
	if !errors.As(err, &synErr) {
		t.Fatalf("expected SynthesisError, got %v", err)
	}
	if synErr.Kind != BackendUnavailable {
		t.Errorf("expected backend_unavailable, got %s", synErr.Kind)
	}
}

// With research unavailable, the prompt must say so explicitly and
// synthesis must still succeed.
func TestSynthesize_MissingResearch(t *testing.T) {
	var capturedPrompt string
	syn := NewSynthesizer(&mockProvider{
		GenerateFunc: func(ctx context.Context, prompt, systemPrompt string, options map[string]interface{}) (string, error) {
			capturedPrompt = prompt
			return headedResponse, nil
		},
	}, nil)

	sections, err := syn.Synthesize(context.Background(), sampleRequest())
	if err != nil {
		t.Fatalf("Synthesize failed: %v", err)
	}
	if sections == nil {
		t.Fatal("expected sections")
	}
	if !strings.Contains(capturedPrompt, "No external research available") {
		t.Error("prompt must state that research is absent")
	}
}

func TestSynthesize_ResearchEmbeddedWhenAvailable(t *testing.T) {
	req := sampleRequest()
	req.Research = research.Context{
		Available: true,
		Snippets: []research.Snippet{
			{Title: "Smartphone market update", URL: "https://example.com/a", Content: "Premium segment growing."},
		},
	}

	var capturedPrompt string
	syn := NewSynthesizer(&mockProvider{
		GenerateFunc: func(ctx context.Context, prompt, systemPrompt string, options map[string]interface{}) (string, error) {
			capturedPrompt = prompt
			return headedResponse, nil
		},
	}, nil)

	if _, err := syn.Synthesize(context.Background(), req); err != nil {
		t.Fatalf("Synthesize failed: %v", err)
	}
	if !strings.Contains(capturedPrompt, "Smartphone market update") {
		t.Error("research snippet missing from prompt")
	}
	if strings.Contains(capturedPrompt, "No external research available") {
		t.Error("prompt must not claim research is absent when it is present")
	}
}

func TestSynthesize_CallsBackendOnce(t *testing.T) {
	calls := 0
	syn := NewSynthesizer(&mockProvider{
		GenerateFunc: func(ctx context.Context, prompt, systemPrompt string, options map[string]interface{}) (string, error) {
			calls++
			return headedResponse, nil
		},
	}, nil)

	if _, err := syn.Synthesize(context.Background(), sampleRequest()); err != nil {
		t.Fatalf("Synthesize failed: %v", err)
	}
	if calls != 1 {
		t.Errorf("expected exactly one backend call, got %d", calls)
	}
}
