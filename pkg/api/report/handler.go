// Package report exposes the report pipeline over HTTP.
package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"execresearch/pkg/core/agent"
	"execresearch/pkg/core/pipeline"
	corereport "execresearch/pkg/core/report"
	"execresearch/pkg/core/research"
	"execresearch/pkg/core/schema"
	"execresearch/pkg/core/store"
)

// Handler holds dependencies for report endpoints.
type Handler struct {
	agentMgr *agent.Manager
	repo     *store.ReportRepo // nil when archiving is disabled
}

// NewHandler creates a report handler. repo may be nil.
func NewHandler(agentMgr *agent.Manager, repo *store.ReportRepo) *Handler {
	return &Handler{agentMgr: agentMgr, repo: repo}
}

// GenerateRequest is the POST /api/report body. Rows carry the tabular
// sales data as column name -> cell value. API keys default to the
// server's environment when omitted.
type GenerateRequest struct {
	CompanyName string             `json:"company_name"`
	Role        string             `json:"role"`
	Rows        []schema.RawRecord `json:"rows"`
	OpenAIKey   string             `json:"openai_api_key,omitempty"`
	TavilyKey   string             `json:"tavily_api_key,omitempty"`
	Provider    string             `json:"provider,omitempty"`
	TimeoutSecs int                `json:"timeout_seconds,omitempty"`
}

// GenerateResponse mirrors pipeline.Result plus the archive row ID. Error
// is set when synthesis failed; the metrics are still populated in that
// case so the caller can render the overview regardless.
type GenerateResponse struct {
	*pipeline.Result
	ReportID string `json:"report_id,omitempty"`
	Error    string `json:"error,omitempty"`
}

// HandleGenerate runs one full pipeline invocation.
func (h *Handler) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}
	if r.Method != "POST" {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.CompanyName == "" {
		http.Error(w, "company_name is required", http.StatusBadRequest)
		return
	}

	role, err := corereport.ParseRole(req.Role)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	orch := h.buildOrchestrator(req)
	result, runErr := orch.Run(r.Context(), pipeline.Input{
		Rows:        req.Rows,
		CompanyName: req.CompanyName,
		Role:        role,
	})

	var normErr *schema.NormalizationError
	if errors.As(runErr, &normErr) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		json.NewEncoder(w).Encode(map[string]string{"error": normErr.Error(), "kind": string(normErr.Kind)})
		return
	}

	resp := GenerateResponse{Result: result}
	if runErr != nil {
		// Synthesis failed; metrics remain deliverable.
		resp.Error = runErr.Error()
		w.WriteHeader(http.StatusBadGateway)
	} else if h.repo != nil {
		// Best-effort archive; a storage failure never fails the request.
		id, saveErr := h.repo.Save(r.Context(), req.CompanyName, role, result)
		if saveErr != nil {
			fmt.Printf("[api.report] archive failed: %v\n", saveErr)
		} else {
			resp.ReportID = id
		}
	}
	json.NewEncoder(w).Encode(resp)
}

// buildOrchestrator wires retriever and synthesizer from request keys,
// falling back to server environment credentials.
func (h *Handler) buildOrchestrator(req GenerateRequest) *pipeline.Orchestrator {
	tavilyKey := req.TavilyKey
	if tavilyKey == "" {
		tavilyKey = os.Getenv("TAVILY_API_KEY")
	}
	timeout := time.Duration(req.TimeoutSecs) * time.Second
	retriever := research.NewRetriever(research.Config{APIKey: tavilyKey, Timeout: timeout})

	provider := h.agentMgr.GetProvider("report")
	if req.Provider != "" {
		if p := h.agentMgr.GetProviderByName(req.Provider); p != nil {
			provider = p
		}
	}

	options := map[string]interface{}{}
	if req.OpenAIKey != "" {
		options["api_key"] = req.OpenAIKey
	}
	if req.TimeoutSecs > 0 {
		options["timeout_seconds"] = req.TimeoutSecs
	}
	synthesizer := corereport.NewSynthesizer(provider, options)

	return pipeline.NewOrchestrator(retriever, synthesizer)
}

// HandleRoles lists the closed role set with descriptions.
func (h *Handler) HandleRoles(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")

	type roleInfo struct {
		ID          string `json:"id"`
		Description string `json:"description"`
	}
	out := make([]roleInfo, 0, len(corereport.AllRoles))
	for _, role := range corereport.AllRoles {
		out = append(out, roleInfo{ID: string(role), Description: role.Description()})
	}
	json.NewEncoder(w).Encode(out)
}

// HandleRecent returns the latest archived reports.
func (h *Handler) HandleRecent(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")

	if h.repo == nil {
		http.Error(w, "report archive not configured", http.StatusNotImplemented)
		return
	}

	reports, err := h.repo.ListRecent(r.Context(), 20)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(reports)
}
