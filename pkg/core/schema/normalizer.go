// Package schema maps arbitrary tabular sales data onto the fixed
// {product, region, value} role schema used by the rest of the pipeline.
package schema

import (
	"fmt"
	"strconv"
	"strings"
)

// RawRecord is one row of input data keyed by column name.
// No fixed schema; column names vary across accepted formats.
type RawRecord map[string]string

// NormalizedRecord is a single row after column resolution and coercion.
type NormalizedRecord struct {
	Product string  `json:"product"`
	Region  string  `json:"region"`
	Value   float64 `json:"value"`
}

// ColumnMapping records which input columns were resolved for each role.
type ColumnMapping struct {
	Product string `json:"product"`
	Region  string `json:"region"`
	Value   string `json:"value"`
}

// ErrorKind classifies normalization failures.
type ErrorKind string

const (
	MissingRole ErrorKind = "missing_role"
	NoValidRows ErrorKind = "no_valid_rows"
)

// NormalizationError is fatal to the pipeline: without a resolved schema
// there are no metrics and no report.
type NormalizationError struct {
	Kind    ErrorKind
	Role    string   // which role could not be resolved (missing_role only)
	Columns []string // columns that were available in the input
}

func (e *NormalizationError) Error() string {
	switch e.Kind {
	case MissingRole:
		return fmt.Sprintf("could not resolve %q column, available columns: %v", e.Role, e.Columns)
	case NoValidRows:
		return "no rows with a numeric value survived coercion"
	}
	return string(e.Kind)
}

// columnCandidates is the detection policy: per role, an ordered list of
// accepted header names tried in priority order, first match wins.
// Pure configuration data; matching itself lives in resolveColumn.
var columnCandidates = map[string][]string{
	"product": {"product", "product_name", "item", "sku"},
	"region":  {"region", "territory", "market", "geography", "country"},
	"value":   {"sales", "revenue_millions_usd", "revenue", "total_sales", "amount", "units", "revenue_usd"},
}

// roleOrder fixes the order roles are resolved (and reported missing) in.
var roleOrder = []string{"product", "region", "value"}

// canonicalHeader lowercases and underscores a header the same way the
// candidate lists are written, so "Revenue Millions USD" matches
// "revenue_millions_usd".
func canonicalHeader(h string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(h)), " ", "_")
}

// resolveColumn finds the actual input column for a role, or "".
func resolveColumn(role string, columns []string) string {
	canon := make(map[string]string, len(columns))
	for _, c := range columns {
		if _, taken := canon[canonicalHeader(c)]; !taken {
			canon[canonicalHeader(c)] = c
		}
	}
	for _, cand := range columnCandidates[role] {
		if orig, ok := canon[cand]; ok {
			return orig
		}
	}
	return ""
}

// Normalize resolves the column mapping for a table and coerces every row
// into a NormalizedRecord. Rows whose value cell cannot be coerced to a
// number are dropped; the table only fails when a role cannot be resolved
// or when every row was dropped.
func Normalize(rows []RawRecord) ([]NormalizedRecord, ColumnMapping, error) {
	columns := collectColumns(rows)

	resolved := make(map[string]string, len(roleOrder))
	for _, role := range roleOrder {
		col := resolveColumn(role, columns)
		if col == "" {
			return nil, ColumnMapping{}, &NormalizationError{Kind: MissingRole, Role: role, Columns: columns}
		}
		resolved[role] = col
	}

	mapping := ColumnMapping{
		Product: resolved["product"],
		Region:  resolved["region"],
		Value:   resolved["value"],
	}

	records := make([]NormalizedRecord, 0, len(rows))
	for _, row := range rows {
		value, ok := coerceNumeric(row[mapping.Value])
		if !ok {
			continue
		}
		records = append(records, NormalizedRecord{
			Product: strings.TrimSpace(row[mapping.Product]),
			Region:  strings.TrimSpace(row[mapping.Region]),
			Value:   value,
		})
	}

	if len(rows) > 0 && len(records) == 0 {
		return nil, mapping, &NormalizationError{Kind: NoValidRows, Columns: columns}
	}

	return records, mapping, nil
}

// collectColumns gathers the union of column names across rows, preserving
// first-seen order so error messages read like the input header.
func collectColumns(rows []RawRecord) []string {
	seen := make(map[string]bool)
	var columns []string
	for _, row := range rows {
		for col := range row {
			if !seen[col] {
				seen[col] = true
				columns = append(columns, col)
			}
		}
	}
	return columns
}

// coerceNumeric parses a raw cell as a float. Currency symbols, thousands
// separators and surrounding whitespace are tolerated; anything else fails
// the cell (and drops the row).
func coerceNumeric(raw string) (float64, bool) {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "$")
	s = strings.TrimPrefix(s, "€")
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
