// Package prompt provides a centralized prompt library for LLM interactions.
// Prompts live in JSON files loaded at runtime, so role briefing language
// can be tuned without code changes; every lookup has a hardcoded fallback.
package prompt

// Template represents a reusable prompt with metadata
type Template struct {
	ID             string `json:"id"`                   // Unique identifier (e.g., "report.ceo")
	Name           string `json:"name"`                 // Human-readable name
	Category       string `json:"category"`             // Category (report, research, ...)
	Description    string `json:"description"`          // Description of prompt purpose
	SystemPrompt   string `json:"system_prompt"`        // The system prompt content
	UserPromptTmpl string `json:"user_prompt_template"` // Go template for user prompt
	Version        string `json:"version"`              // Version for tracking changes
}
