package report

import (
	"context"

	"execresearch/pkg/core/llm"
)

// Synthesizer drives the generative backend to produce an executive
// report. One outbound call per report; no retries, no self-critique.
type Synthesizer struct {
	provider llm.Provider
	options  map[string]interface{}
}

// NewSynthesizer creates a synthesizer over a provider. options is passed
// through to the provider on every call (api_key, model, timeout_seconds).
func NewSynthesizer(provider llm.Provider, options map[string]interface{}) *Synthesizer {
	return &Synthesizer{provider: provider, options: options}
}

// Synthesize produces the report sections for a request. It fails only
// when the backend call itself fails; missing or malformed sections in an
// otherwise successful response are represented as empty fields, never as
// an error. Research absence is handled inside the prompt and is not a
// failure condition.
func (s *Synthesizer) Synthesize(ctx context.Context, req Request) (*Sections, error) {
	systemPrompt := BuildSystemPrompt(req.Role)
	userPrompt := BuildUserPrompt(req)

	raw, err := s.provider.GenerateResponse(ctx, userPrompt, s.provider.AdaptInstructions(systemPrompt), s.options)
	if err != nil {
		return nil, &SynthesisError{Kind: BackendUnavailable, Err: err}
	}

	sections := ParseSections(raw)
	return &sections, nil
}
