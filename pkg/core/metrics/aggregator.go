// Package metrics computes the aggregate sales summary that feeds both the
// report prompt and the metrics overview shown to the caller.
package metrics

import (
	"fmt"
	"sort"

	"execresearch/pkg/core/schema"
)

// GroupStat holds the per-product or per-region rollup for one group.
type GroupStat struct {
	Name    string  `json:"name"`
	Total   float64 `json:"total"`
	Share   float64 `json:"share_of_total"`
	Average float64 `json:"average"`
	Count   int     `json:"count"`
}

// Summary is the aggregated result. ByProduct and ByRegion are sorted
// descending by total, ties broken lexicographically by name, so the first
// entry is always the top performer.
type Summary struct {
	TotalValue  float64     `json:"total_value"`
	ByProduct   []GroupStat `json:"by_product"`
	ByRegion    []GroupStat `json:"by_region"`
	TopProduct  string      `json:"top_product"`
	TopRegion   string      `json:"top_region"`
	RecordCount int         `json:"record_count"`
	KeyInsights []string    `json:"key_insights"`
}

// Aggregate rolls up normalized records by product and by region. It never
// fails: an empty input yields a zero summary with RecordCount 0, which
// downstream synthesis must handle without crashing.
func Aggregate(records []schema.NormalizedRecord) Summary {
	summary := Summary{RecordCount: len(records)}

	productTotals := make(map[string]*GroupStat)
	regionTotals := make(map[string]*GroupStat)
	for _, rec := range records {
		summary.TotalValue += rec.Value
		accumulate(productTotals, rec.Product, rec.Value)
		accumulate(regionTotals, rec.Region, rec.Value)
	}

	summary.ByProduct = finalize(productTotals, summary.TotalValue)
	summary.ByRegion = finalize(regionTotals, summary.TotalValue)

	if len(summary.ByProduct) > 0 {
		summary.TopProduct = summary.ByProduct[0].Name
	}
	if len(summary.ByRegion) > 0 {
		summary.TopRegion = summary.ByRegion[0].Name
	}

	summary.KeyInsights = buildInsights(summary)
	return summary
}

func accumulate(groups map[string]*GroupStat, name string, value float64) {
	g, ok := groups[name]
	if !ok {
		g = &GroupStat{Name: name}
		groups[name] = g
	}
	g.Total += value
	g.Count++
}

// finalize sorts groups descending by total (lexicographic tie-break) and
// computes shares and averages. Shares are 0 when the grand total is 0.
func finalize(groups map[string]*GroupStat, grandTotal float64) []GroupStat {
	out := make([]GroupStat, 0, len(groups))
	for _, g := range groups {
		stat := *g
		if grandTotal != 0 {
			stat.Share = stat.Total / grandTotal
		}
		if stat.Count > 0 {
			stat.Average = stat.Total / float64(stat.Count)
		}
		out = append(out, stat)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Total != out[j].Total {
			return out[i].Total > out[j].Total
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// buildInsights derives the headline observations embedded in the prompt:
// top performers, portfolio breadth, and a concentration warning when one
// product carries more than half of total sales.
func buildInsights(s Summary) []string {
	if s.RecordCount == 0 {
		return nil
	}

	var insights []string
	if s.TopProduct != "" {
		insights = append(insights, fmt.Sprintf("Top performing product: %s with %.2f in sales", s.TopProduct, s.ByProduct[0].Total))
	}
	if s.TopRegion != "" {
		insights = append(insights, fmt.Sprintf("Top performing region: %s with %.2f in sales", s.TopRegion, s.ByRegion[0].Total))
	}
	insights = append(insights, fmt.Sprintf("Portfolio consists of %d products", len(s.ByProduct)))
	insights = append(insights, fmt.Sprintf("Operating in %d regions", len(s.ByRegion)))

	if len(s.ByProduct) > 0 && s.ByProduct[0].Share > 0.5 {
		insights = append(insights, fmt.Sprintf("High product concentration risk: %s represents %.1f%% of total sales",
			s.TopProduct, s.ByProduct[0].Share*100))
	}
	return insights
}
