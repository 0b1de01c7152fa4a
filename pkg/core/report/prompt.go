package report

import (
	"fmt"
	"strings"

	"execresearch/pkg/core/metrics"
	"execresearch/pkg/core/prompt"
	"execresearch/pkg/core/research"
)

// systemPromptTemplate is the built-in briefing instruction, used whenever
// the prompt registry has no entry for the role. The section headers here
// are the same fixed set the parser keys on.
const systemPromptTemplate = `You are an expert business analyst creating an executive briefing for a %s.

Your task is to analyze sales data and industry research to provide:
1. A concise executive summary (2-3 paragraphs)
2. Key findings (3-5 bullet points)
3. Strategic recommendations with priority, timeline, and expected impact
4. Risk assessment
5. Next steps

Tailor your analysis and recommendations specifically for the %s perspective.
Be data-driven, actionable, and strategic in your recommendations.

Format your response as follows:

EXECUTIVE SUMMARY:
[2-3 paragraph summary]

KEY FINDINGS:
- [Finding 1]
- [Finding 2]

STRATEGIC RECOMMENDATIONS:
[Recommendation 1]
Category: [Strategic/Operational/Financial/Marketing]
Priority: [High/Medium/Low]
Timeline: [Immediate/Short-term/Long-term]
Expected Impact: [Description of expected impact]

RISK ASSESSMENT:
[Risk analysis]

NEXT STEPS:
- [Action 1]
- [Action 2]`

// BuildSystemPrompt returns the role-steering system prompt, preferring a
// registry entry (resources/prompts/report/<slug>.json) over the built-in.
func BuildSystemPrompt(role Role) string {
	if sys, err := prompt.GetReportPrompt(role.Slug()); err == nil && sys != "" {
		return sys
	}
	return fmt.Sprintf(systemPromptTemplate, role.Description(), string(role))
}

// BuildUserPrompt assembles the full analysis context: metrics first with
// totals and top performers highlighted, then breakdowns, then research
// snippets explicitly labeled as present or absent so the model does not
// fabricate sourcing claims.
func BuildUserPrompt(req Request) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Please analyze the following information for %s and create a comprehensive executive briefing:\n\n", req.CompanyName)
	b.WriteString(FormatMetrics(req.Metrics, req.CompanyName))
	b.WriteString("\n")
	b.WriteString(FormatResearch(req.Research, req.CompanyName))
	b.WriteString("\nBased on this sales data and industry research, provide strategic insights and actionable recommendations tailored for the executive role specified in the system prompt.\n")

	return b.String()
}

// FormatMetrics serializes the aggregated metrics as readable structured
// text. Totals and top performers lead; per-group breakdowns follow.
func FormatMetrics(s metrics.Summary, companyName string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Sales Data Summary for %s:\n\n", companyName)
	fmt.Fprintf(&b, "TOTAL SALES: %.2f across %d records\n", s.TotalValue, s.RecordCount)

	if s.RecordCount == 0 {
		b.WriteString("No sales records were available for this period.\n")
		return b.String()
	}

	if s.TopProduct != "" {
		fmt.Fprintf(&b, "TOP PRODUCT: %s\n", s.TopProduct)
	}
	if s.TopRegion != "" {
		fmt.Fprintf(&b, "TOP REGION: %s\n", s.TopRegion)
	}

	b.WriteString("\nPRODUCT PERFORMANCE:\n")
	for _, g := range s.ByProduct {
		fmt.Fprintf(&b, "- %s: %.2f (%.1f%% share, %d records)\n", g.Name, g.Total, g.Share*100, g.Count)
	}

	b.WriteString("\nREGIONAL PERFORMANCE:\n")
	for _, g := range s.ByRegion {
		fmt.Fprintf(&b, "- %s: %.2f (%.1f%% of total, %d records)\n", g.Name, g.Total, g.Share*100, g.Count)
	}

	if len(s.KeyInsights) > 0 {
		b.WriteString("\nKEY INSIGHTS:\n")
		for _, insight := range s.KeyInsights {
			fmt.Fprintf(&b, "- %s\n", insight)
		}
	}

	return b.String()
}

// FormatResearch serializes the research context. Absence is stated
// explicitly rather than omitted.
func FormatResearch(rc research.Context, companyName string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Industry Research Summary for %s:\n\n", companyName)

	if !rc.Available || len(rc.Snippets) == 0 {
		b.WriteString("No external research available. Analysis must be based on the sales data only; do not cite external sources.\n")
		return b.String()
	}

	for i, s := range rc.Snippets {
		fmt.Fprintf(&b, "%d. %s\n", i+1, s.Title)
		if s.Content != "" {
			fmt.Fprintf(&b, "   %s\n", truncate(s.Content, 300))
		}
		if s.URL != "" {
			fmt.Fprintf(&b, "   Source: %s\n", s.URL)
		}
		b.WriteString("\n")
	}

	return b.String()
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
