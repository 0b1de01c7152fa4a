package schema

import (
	"errors"
	"testing"
)

func TestNormalize_StandardColumns(t *testing.T) {
	rows := []RawRecord{
		{"product": "iPhone", "region": "Americas", "sales": "100"},
		{"product": "iPad", "region": "EMEA", "sales": "50.5"},
	}

	records, mapping, err := Normalize(rows)
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}
	if mapping.Value != "sales" {
		t.Errorf("expected value column 'sales', got %q", mapping.Value)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[1].Value != 50.5 {
		t.Errorf("expected 50.5, got %f", records[1].Value)
	}
}

// Tables using different accepted value headers must produce equivalent
// records given equivalent underlying values.
func TestNormalize_AlternateValueHeaders(t *testing.T) {
	salesRows := []RawRecord{
		{"product": "iPhone", "region": "Americas", "sales": "100"},
	}
	revenueRows := []RawRecord{
		{"product": "iPhone", "region": "Americas", "revenue_millions_usd": "100"},
	}

	a, mappingA, err := Normalize(salesRows)
	if err != nil {
		t.Fatalf("sales table failed: %v", err)
	}
	b, mappingB, err := Normalize(revenueRows)
	if err != nil {
		t.Fatalf("revenue table failed: %v", err)
	}

	if mappingA.Value != "sales" || mappingB.Value != "revenue_millions_usd" {
		t.Errorf("unexpected mappings: %+v %+v", mappingA, mappingB)
	}
	if a[0] != b[0] {
		t.Errorf("records differ: %+v vs %+v", a[0], b[0])
	}
}

func TestNormalize_HeaderCaseAndSpaces(t *testing.T) {
	rows := []RawRecord{
		{"Product": "MacBook", "Region": "Europe", "Revenue Millions USD": "800"},
	}

	records, mapping, err := Normalize(rows)
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}
	if mapping.Value != "Revenue Millions USD" {
		t.Errorf("mapping should keep the original header, got %q", mapping.Value)
	}
	if records[0].Value != 800 {
		t.Errorf("expected 800, got %f", records[0].Value)
	}
}

func TestNormalize_MissingRole(t *testing.T) {
	rows := []RawRecord{
		{"product": "iPhone", "sales": "100"},
	}

	_, _, err := Normalize(rows)
	var normErr *NormalizationError
	if !errors.As(err, &normErr) {
		t.Fatalf("expected NormalizationError, got %v", err)
	}
	if normErr.Kind != MissingRole || normErr.Role != "region" {
		t.Errorf("expected missing_role for region, got kind=%s role=%s", normErr.Kind, normErr.Role)
	}
}

func TestNormalize_DropsBadRowsKeepsGood(t *testing.T) {
	rows := []RawRecord{
		{"product": "iPhone", "region": "Americas", "sales": "not-a-number"},
		{"product": "iPad", "region": "EMEA", "sales": "$1,500.25"},
	}

	records, _, err := Normalize(rows)
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 surviving record, got %d", len(records))
	}
	if records[0].Value != 1500.25 {
		t.Errorf("currency coercion failed, got %f", records[0].Value)
	}
}

func TestNormalize_NoValidRows(t *testing.T) {
	rows := []RawRecord{
		{"product": "iPhone", "region": "Americas", "sales": "n/a"},
		{"product": "iPad", "region": "EMEA", "sales": ""},
	}

	_, _, err := Normalize(rows)
	var normErr *NormalizationError
	if !errors.As(err, &normErr) {
		t.Fatalf("expected NormalizationError, got %v", err)
	}
	if normErr.Kind != NoValidRows {
		t.Errorf("expected no_valid_rows, got %s", normErr.Kind)
	}
}

func TestNormalize_NegativeValuesPassThrough(t *testing.T) {
	rows := []RawRecord{
		{"product": "Returns", "region": "Americas", "sales": "-25"},
	}

	records, _, err := Normalize(rows)
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}
	if records[0].Value != -25 {
		t.Errorf("negative values should pass through, got %f", records[0].Value)
	}
}
