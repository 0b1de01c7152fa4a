// Package report synthesizes a role-targeted executive narrative from
// aggregated sales metrics and optional external research. This is the
// orchestration core: prompt assembly, a single generation call, and
// tolerant parsing of the result into the five canonical sections.
package report

import (
	"fmt"

	"execresearch/pkg/core/metrics"
	"execresearch/pkg/core/research"
)

// Request is the sole input to synthesis. Immutable once constructed.
type Request struct {
	CompanyName string           `json:"company_name"`
	Role        Role             `json:"role"`
	Metrics     metrics.Summary  `json:"metrics"`
	Research    research.Context `json:"research"`
}

// Recommendation is a strategic recommendation with the structured
// sub-fields the briefing format asks the model for. Fields other than
// Text may be empty when the model skipped them.
type Recommendation struct {
	Text           string `json:"recommendation"`
	Category       string `json:"category,omitempty"`        // Strategic/Operational/Financial/Marketing
	Priority       string `json:"priority,omitempty"`        // High/Medium/Low
	Timeline       string `json:"timeline,omitempty"`        // Immediate/Short-term/Long-term
	ExpectedImpact string `json:"expected_impact,omitempty"`
}

// Sections is the sole output artifact. Each field may be empty (partial
// synthesis) but the object itself is always produced when the backend
// call succeeds.
type Sections struct {
	ExecutiveSummary string           `json:"executive_summary"`
	KeyFindings      []string         `json:"key_findings"`
	Recommendations  []string         `json:"recommendations"`
	Risks            []string         `json:"risks"`
	NextSteps        []string         `json:"next_steps"`
	Structured       []Recommendation `json:"structured_recommendations,omitempty"`
}

// ErrorKind classifies synthesis failures.
type ErrorKind string

const (
	// BackendUnavailable covers authentication, network and transport
	// failures of the generation backend, including a missing API key.
	BackendUnavailable ErrorKind = "backend_unavailable"
)

// SynthesisError is fatal to producing textual sections. Any metrics
// computed before synthesis remain valid and must still be delivered.
type SynthesisError struct {
	Kind ErrorKind
	Err  error
}

func (e *SynthesisError) Error() string {
	return fmt.Sprintf("report synthesis failed (%s): %v", e.Kind, e.Err)
}

func (e *SynthesisError) Unwrap() error {
	return e.Err
}
