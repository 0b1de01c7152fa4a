// Package pipeline wires the end-to-end report flow:
// Normalize -> Aggregate -> Retrieve (best-effort) -> Synthesize.
// One invocation produces at most one report; no stage is retried and no
// state survives across invocations.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"execresearch/pkg/core/metrics"
	"execresearch/pkg/core/report"
	"execresearch/pkg/core/research"
	"execresearch/pkg/core/schema"
)

// ResearchRetriever is the best-effort enrichment stage. It returns a
// value, never an error: unavailability is expressed in the Context.
type ResearchRetriever interface {
	Research(ctx context.Context, companyName string, topProducts []string) research.Context
}

// ReportSynthesizer drives the generative backend.
type ReportSynthesizer interface {
	Synthesize(ctx context.Context, req report.Request) (*report.Sections, error)
}

// Input is what the presentation layer hands the pipeline.
type Input struct {
	Rows        []schema.RawRecord
	CompanyName string
	Role        report.Role
}

// Result carries everything the caller may want to show. Metrics are
// populated as soon as aggregation ran, so they remain displayable even
// when synthesis fails.
type Result struct {
	Mapping  schema.ColumnMapping `json:"column_mapping"`
	Metrics  metrics.Summary      `json:"metrics"`
	Research research.Context     `json:"research"`
	Report   *report.Sections     `json:"report,omitempty"`
}

// Orchestrator runs the four pipeline stages in order.
type Orchestrator struct {
	retriever   ResearchRetriever
	synthesizer ReportSynthesizer
}

// NewOrchestrator assembles the pipeline from its two external-facing
// stages. Normalization and aggregation are pure and need no injection.
func NewOrchestrator(retriever ResearchRetriever, synthesizer ReportSynthesizer) *Orchestrator {
	return &Orchestrator{retriever: retriever, synthesizer: synthesizer}
}

// Run executes one full report generation. On normalization failure the
// returned Result is nil. On synthesis failure the Result still carries
// the computed metrics and research context alongside the error, so the
// caller can render the metrics overview regardless.
func (o *Orchestrator) Run(ctx context.Context, input Input) (*Result, error) {
	start := time.Now()
	fmt.Printf("[pipeline] starting report run for %s (%s)\n", input.CompanyName, input.Role)

	// 1. Normalize
	records, mapping, err := schema.Normalize(input.Rows)
	if err != nil {
		return nil, fmt.Errorf("normalization failed: %w", err)
	}
	fmt.Printf("[pipeline] normalized %d/%d rows (columns: %+v)\n", len(records), len(input.Rows), mapping)

	// 2. Aggregate
	summary := metrics.Aggregate(records)
	result := &Result{Mapping: mapping, Metrics: summary}

	// 3. Retrieve (best-effort, never fails the run)
	result.Research = o.retriever.Research(ctx, input.CompanyName, topProducts(summary))
	if result.Research.Available {
		fmt.Printf("[pipeline] research available: %d snippets\n", len(result.Research.Snippets))
	} else {
		fmt.Println("[pipeline] research unavailable, proceeding on sales data only")
	}

	// 4. Synthesize
	sections, err := o.synthesizer.Synthesize(ctx, report.Request{
		CompanyName: input.CompanyName,
		Role:        input.Role,
		Metrics:     summary,
		Research:    result.Research,
	})
	if err != nil {
		// Metrics stay deliverable; only the narrative is lost.
		return result, err
	}

	result.Report = sections
	fmt.Printf("[pipeline] report complete in %v\n", time.Since(start))
	return result, nil
}

// topProducts lists product names in descending sales order for the
// research product-trend queries.
func topProducts(s metrics.Summary) []string {
	names := make([]string, 0, len(s.ByProduct))
	for _, g := range s.ByProduct {
		names = append(names, g.Name)
	}
	return names
}
