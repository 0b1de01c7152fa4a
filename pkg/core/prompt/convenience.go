package prompt

// Convenience functions for common prompt operations

// GetReportPrompt returns the system prompt for a report role slug
// (e.g. "ceo", "head_of_sales"). Callers fall back to their built-in
// prompt when the registry has no entry.
func GetReportPrompt(roleSlug string) (string, error) {
	id := "report." + roleSlug
	return Get().GetSystemPrompt(id)
}

// PromptIDs contains all known prompt identifiers
var PromptIDs = struct {
	ReportCEO                  string
	ReportCFO                  string
	ReportCOO                  string
	ReportCTO                  string
	ReportCMO                  string
	ReportHeadOfSales          string
	ReportHeadOfProduct        string
	ReportVPMarketing          string
	ReportVPOperations         string
	ReportChiefStrategyOfficer string
}{
	ReportCEO:                  "report.ceo",
	ReportCFO:                  "report.cfo",
	ReportCOO:                  "report.coo",
	ReportCTO:                  "report.cto",
	ReportCMO:                  "report.cmo",
	ReportHeadOfSales:          "report.head_of_sales",
	ReportHeadOfProduct:        "report.head_of_product",
	ReportVPMarketing:          "report.vp_marketing",
	ReportVPOperations:         "report.vp_operations",
	ReportChiefStrategyOfficer: "report.chief_strategy_officer",
}
