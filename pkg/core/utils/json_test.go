package utils

import "testing"

type sample struct {
	Name  string `json:"name"`
	Score int    `json:"score"`
}

func TestSmartParse_StandardJSON(t *testing.T) {
	var s sample
	if _, err := SmartParse(`{"name":"a","score":1}`, &s); err != nil {
		t.Fatalf("SmartParse failed: %v", err)
	}
	if s.Name != "a" || s.Score != 1 {
		t.Errorf("unexpected result: %+v", s)
	}
}

func TestSmartParse_RepairsSingleQuotes(t *testing.T) {
	var s sample
	if _, err := SmartParse(`{'name': 'a', 'score': 1,}`, &s); err != nil {
		t.Fatalf("repair path failed: %v", err)
	}
	if s.Name != "a" {
		t.Errorf("unexpected result: %+v", s)
	}
}

func TestSmartParse_HjsonFallback(t *testing.T) {
	var s sample
	input := `{
  # comment
  name: a
  score: 1
}`
	if _, err := SmartParse(input, &s); err != nil {
		t.Fatalf("hjson path failed: %v", err)
	}
	if s.Name != "a" || s.Score != 1 {
		t.Errorf("unexpected result: %+v", s)
	}
}

func TestCleanMarkdown_StripsFences(t *testing.T) {
	if got := CleanMarkdown("```markdown\nhello\n```"); got != "hello" {
		t.Errorf("got %q", got)
	}
	if got := CleanMarkdown("```\nhello\n```"); got != "hello" {
		t.Errorf("got %q", got)
	}
	if got := CleanMarkdown("plain"); got != "plain" {
		t.Errorf("got %q", got)
	}
}

func TestValidateMarkdown(t *testing.T) {
	if !ValidateMarkdown("# heading\n\nbody") {
		t.Error("valid markdown rejected")
	}
}
