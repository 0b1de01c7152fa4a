package report

import (
	"strings"
	"testing"
)

func TestParseSections_MissingHeadersYieldEmptyFields(t *testing.T) {
	raw := `EXECUTIVE SUMMARY:
Solid quarter overall.

KEY FINDINGS:
- Growth in Americas`

	s := ParseSections(raw)

	if s.ExecutiveSummary != "Solid quarter overall." {
		t.Errorf("unexpected summary: %q", s.ExecutiveSummary)
	}
	if len(s.KeyFindings) != 1 {
		t.Errorf("expected 1 finding, got %v", s.KeyFindings)
	}
	if len(s.Recommendations) != 0 || len(s.Risks) != 0 || len(s.NextSteps) != 0 {
		t.Errorf("missing sections must be empty, got %+v", s)
	}
}

func TestParseSections_MarkdownDecoratedHeaders(t *testing.T) {
	raw := "## EXECUTIVE SUMMARY\nGood results.\n\n**KEY FINDINGS:**\n* One finding\n\n### NEXT STEPS\n1. First action\n2) Second action"

	s := ParseSections(raw)

	if s.ExecutiveSummary != "Good results." {
		t.Errorf("unexpected summary: %q", s.ExecutiveSummary)
	}
	if len(s.KeyFindings) != 1 || s.KeyFindings[0] != "One finding" {
		t.Errorf("unexpected findings: %v", s.KeyFindings)
	}
	if len(s.NextSteps) != 2 || s.NextSteps[1] != "Second action" {
		t.Errorf("numbered steps not parsed: %v", s.NextSteps)
	}
}

func TestParseSections_CodeFenceStripped(t *testing.T) {
	raw := "```markdown\nEXECUTIVE SUMMARY:\nFenced output.\n```"

	s := ParseSections(raw)
	if s.ExecutiveSummary != "Fenced output." {
		t.Errorf("fence not stripped: %q", s.ExecutiveSummary)
	}
}

func TestParseSections_JSONFallback(t *testing.T) {
	raw := `{
  "executive_summary": "Concise summary.",
  "key_findings": ["Finding A", "Finding B"],
  "recommendations": ["Do the thing"],
  "risks": ["Concentration"],
  "next_steps": ["Plan review"]
}`

	s := ParseSections(raw)

	if s.ExecutiveSummary != "Concise summary." {
		t.Errorf("unexpected summary: %q", s.ExecutiveSummary)
	}
	if len(s.KeyFindings) != 2 || len(s.Recommendations) != 1 || len(s.Risks) != 1 || len(s.NextSteps) != 1 {
		t.Errorf("JSON response not recovered: %+v", s)
	}
}

// Single-quoted keys and trailing commas still parse via the repair path.
func TestParseSections_MalformedJSONRepaired(t *testing.T) {
	raw := `{'executive_summary': 'Repaired summary', 'key_findings': ['F1',],}`

	s := ParseSections(raw)
	if s.ExecutiveSummary != "Repaired summary" {
		t.Errorf("repair path failed: %+v", s)
	}
}

func TestParseSections_UnstructuredResponseKeptAsSummary(t *testing.T) {
	raw := "The model ignored the format and wrote prose instead."

	s := ParseSections(raw)
	if !strings.Contains(s.ExecutiveSummary, "wrote prose") {
		t.Errorf("raw text should survive as the summary, got %q", s.ExecutiveSummary)
	}
}

func TestParseSections_RiskBulletsAndParagraph(t *testing.T) {
	raw := `RISK ASSESSMENT:
- Supply chain exposure
- FX volatility`

	s := ParseSections(raw)
	if len(s.Risks) != 2 {
		t.Errorf("expected 2 risks, got %v", s.Risks)
	}
}

func TestParseRole(t *testing.T) {
	role, err := ParseRole("head_of_sales")
	if err != nil || role != RoleHeadOfSales {
		t.Errorf("expected Head of Sales, got %v (%v)", role, err)
	}
	if _, err := ParseRole("Janitor"); err == nil {
		t.Error("expected error for unknown role")
	}
	if len(AllRoles) != 10 {
		t.Errorf("role set must stay closed at 10, got %d", len(AllRoles))
	}
}
