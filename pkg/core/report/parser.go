package report

import (
	"strings"

	"execresearch/pkg/core/utils"
)

// section identifies one of the five canonical report parts.
type section int

const (
	sectionNone section = iota
	sectionSummary
	sectionFindings
	sectionRecommendations
	sectionRisks
	sectionNextSteps
)

// sectionHeaders is the fixed header set the model is instructed to emit.
// Matching is done on a normalized line (markdown decoration and trailing
// colon stripped, uppercased).
var sectionHeaders = map[string]section{
	"EXECUTIVE SUMMARY":         sectionSummary,
	"KEY FINDINGS":              sectionFindings,
	"STRATEGIC RECOMMENDATIONS": sectionRecommendations,
	"RECOMMENDATIONS":           sectionRecommendations,
	"RISK ASSESSMENT":           sectionRisks,
	"RISKS":                     sectionRisks,
	"NEXT STEPS":                sectionNextSteps,
}

// jsonSections mirrors Sections for models that answer in JSON despite the
// headed-text instruction.
type jsonSections struct {
	ExecutiveSummary string   `json:"executive_summary"`
	KeyFindings      []string `json:"key_findings"`
	Recommendations  []string `json:"recommendations"`
	Risks            []string `json:"risks"`
	NextSteps        []string `json:"next_steps"`
}

// ParseSections converts raw model output into Sections. The strategy is
// tolerant by contract: a missing header leaves that field empty, and a
// response in neither format still yields a Sections value (everything
// empty except the summary, which keeps the raw text so the caller never
// loses the model's answer entirely).
func ParseSections(raw string) Sections {
	cleaned := utils.CleanMarkdown(raw)

	if s, ok := parseJSONSections(cleaned); ok {
		return s
	}

	s, sawHeader := parseHeadedSections(cleaned)
	if !sawHeader {
		s.ExecutiveSummary = strings.TrimSpace(cleaned)
	}
	return s
}

// parseJSONSections recovers a JSON answer via SmartParse (repair, then
// hjson). Only accepted when it actually carries a summary or findings.
func parseJSONSections(cleaned string) (Sections, bool) {
	trimmed := strings.TrimSpace(cleaned)
	if !strings.HasPrefix(trimmed, "{") {
		return Sections{}, false
	}

	var js jsonSections
	if _, err := utils.SmartParse(trimmed, &js); err != nil {
		return Sections{}, false
	}
	if js.ExecutiveSummary == "" && len(js.KeyFindings) == 0 {
		return Sections{}, false
	}

	s := Sections{
		ExecutiveSummary: strings.TrimSpace(js.ExecutiveSummary),
		KeyFindings:      js.KeyFindings,
		Recommendations:  js.Recommendations,
		Risks:            js.Risks,
		NextSteps:        js.NextSteps,
	}
	for _, r := range js.Recommendations {
		s.Structured = append(s.Structured, Recommendation{Text: r})
	}
	return s, true
}

// parseHeadedSections walks the response line by line, switching sections
// on the canonical headers. Returns whether any header was seen at all.
func parseHeadedSections(cleaned string) (Sections, bool) {
	var s Sections
	var summaryParts []string
	var riskParagraph []string
	var current section
	var currentRec *Recommendation
	sawHeader := false

	flushRec := func() {
		if currentRec != nil && currentRec.Text != "" {
			s.Recommendations = append(s.Recommendations, currentRec.Text)
			s.Structured = append(s.Structured, *currentRec)
		}
		currentRec = nil
	}
	flushRisk := func() {
		if len(riskParagraph) > 0 {
			s.Risks = append(s.Risks, strings.Join(riskParagraph, " "))
			riskParagraph = nil
		}
	}

	for _, rawLine := range strings.Split(cleaned, "\n") {
		line := strings.TrimSpace(rawLine)
		if line == "" {
			continue
		}

		if sec, ok := matchHeader(line); ok {
			flushRec()
			flushRisk()
			current = sec
			sawHeader = true
			continue
		}

		switch current {
		case sectionSummary:
			summaryParts = append(summaryParts, line)
		case sectionFindings:
			if item, ok := bulletText(line); ok {
				s.KeyFindings = append(s.KeyFindings, item)
			}
		case sectionRecommendations:
			if key, value, ok := recommendationField(line); ok {
				if currentRec == nil {
					currentRec = &Recommendation{}
				}
				switch key {
				case "category":
					currentRec.Category = value
				case "priority":
					currentRec.Priority = value
				case "timeline":
					currentRec.Timeline = value
				case "expected impact":
					currentRec.ExpectedImpact = value
				}
				continue
			}
			// A plain line starts the next recommendation
			flushRec()
			text := line
			if item, ok := bulletText(line); ok {
				text = item
			}
			currentRec = &Recommendation{Text: text}
		case sectionRisks:
			if item, ok := bulletText(line); ok {
				flushRisk()
				s.Risks = append(s.Risks, item)
			} else {
				riskParagraph = append(riskParagraph, line)
			}
		case sectionNextSteps:
			if item, ok := bulletText(line); ok {
				s.NextSteps = append(s.NextSteps, item)
			}
		}
	}

	flushRec()
	flushRisk()
	s.ExecutiveSummary = strings.Join(summaryParts, " ")
	return s, sawHeader
}

// matchHeader normalizes a line (markdown heading/bold markers, trailing
// colon) and looks it up in the fixed header set.
func matchHeader(line string) (section, bool) {
	norm := strings.TrimSpace(line)
	norm = strings.TrimLeft(norm, "#")
	norm = strings.Trim(norm, "*")
	norm = strings.TrimSpace(norm)
	norm = strings.TrimSuffix(norm, ":")
	sec, ok := sectionHeaders[strings.ToUpper(strings.TrimSpace(norm))]
	return sec, ok
}

// bulletText strips a leading bullet or numbering marker. Returns false
// for lines that are not list items.
func bulletText(line string) (string, bool) {
	for _, marker := range []string{"•", "-", "*", "–"} {
		if strings.HasPrefix(line, marker) {
			return strings.TrimSpace(strings.TrimPrefix(line, marker)), true
		}
	}
	// Numbered items like "1." or "2)"
	for i, r := range line {
		if r >= '0' && r <= '9' {
			continue
		}
		if i > 0 && (r == '.' || r == ')') {
			return strings.TrimSpace(line[i+1:]), true
		}
		break
	}
	return "", false
}

// recommendationField recognizes the structured sub-fields of a strategic
// recommendation ("Category:", "Priority:", "Timeline:", "Expected Impact:").
func recommendationField(line string) (key, value string, ok bool) {
	idx := strings.Index(line, ":")
	if idx <= 0 {
		return "", "", false
	}
	key = strings.ToLower(strings.TrimSpace(strings.Trim(line[:idx], "*")))
	switch key {
	case "category", "priority", "timeline", "expected impact":
		return key, strings.TrimSpace(line[idx+1:]), true
	}
	return "", "", false
}
