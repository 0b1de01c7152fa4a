// Command report runs one report generation end to end from a CSV file
// and prints the metrics overview followed by the executive briefing.
// The metrics overview is printed even when synthesis fails.
package main

import (
	"context"
	"encoding/csv"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"execresearch/pkg/core/llm"
	"execresearch/pkg/core/pipeline"
	"execresearch/pkg/core/report"
	"execresearch/pkg/core/research"
	"execresearch/pkg/core/schema"
)

func main() {
	godotenv.Load()

	csvPath := flag.String("csv", "", "Path to the sales CSV (header row required)")
	company := flag.String("company", "", "Company name")
	roleName := flag.String("role", "CEO", "Executive role to target")
	provider := flag.String("provider", "openai", "Generation backend: openai, gemini, deepseek")
	timeout := flag.Int("timeout", 30, "Timeout in seconds for external calls")
	flag.Parse()

	if *csvPath == "" || *company == "" {
		flag.Usage()
		os.Exit(2)
	}

	role, err := report.ParseRole(*roleName)
	if err != nil {
		fmt.Printf("[FATAL] %v (valid: %v)\n", err, report.AllRoles)
		os.Exit(2)
	}

	rows, err := readCSV(*csvPath)
	if err != nil {
		fmt.Printf("[FATAL] Failed to read %s: %v\n", *csvPath, err)
		os.Exit(1)
	}

	retriever := research.NewRetriever(research.Config{
		APIKey:  os.Getenv("TAVILY_API_KEY"),
		Timeout: time.Duration(*timeout) * time.Second,
	})
	synthesizer := report.NewSynthesizer(providerByName(*provider), map[string]interface{}{
		"timeout_seconds": *timeout,
	})

	orch := pipeline.NewOrchestrator(retriever, synthesizer)
	result, runErr := orch.Run(context.Background(), pipeline.Input{
		Rows:        rows,
		CompanyName: *company,
		Role:        role,
	})
	if result == nil {
		fmt.Printf("[FATAL] %v\n", runErr)
		os.Exit(1)
	}

	// Metrics overview first, report second
	fmt.Println()
	fmt.Println(report.FormatMetrics(result.Metrics, *company))

	if runErr != nil {
		fmt.Printf("[ERROR] Report generation failed: %v\n", runErr)
		os.Exit(1)
	}
	printSections(result.Report)
}

// readCSV turns a headered CSV into RawRecords.
func readCSV(path string) ([]schema.RawRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	all, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(all) < 2 {
		return nil, fmt.Errorf("need a header row and at least one data row")
	}

	header := all[0]
	rows := make([]schema.RawRecord, 0, len(all)-1)
	for _, line := range all[1:] {
		row := schema.RawRecord{}
		for i, cell := range line {
			if i < len(header) {
				row[header[i]] = cell
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func providerByName(name string) llm.Provider {
	switch strings.ToLower(name) {
	case "gemini":
		return &llm.GeminiProvider{}
	case "deepseek":
		return &llm.DeepSeekProvider{}
	default:
		return &llm.OpenAIProvider{}
	}
}

func printSections(s *report.Sections) {
	fmt.Println("EXECUTIVE SUMMARY")
	fmt.Println(s.ExecutiveSummary)

	printList("KEY FINDINGS", s.KeyFindings)
	printList("STRATEGIC RECOMMENDATIONS", s.Recommendations)
	printList("RISKS", s.Risks)
	printList("NEXT STEPS", s.NextSteps)
}

func printList(title string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Printf("\n%s\n", title)
	for _, item := range items {
		fmt.Printf("  - %s\n", item)
	}
}
