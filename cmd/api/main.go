package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"

	"execresearch/pkg/api/config"
	"execresearch/pkg/api/report"
	"execresearch/pkg/core/agent"
	"execresearch/pkg/core/prompt"
	"execresearch/pkg/core/store"
)

func main() {
	godotenv.Load()

	// Prompt library (optional, falls back to hardcoded prompts)
	resourcesPath := "resources"
	if _, err := os.Stat(resourcesPath); os.IsNotExist(err) {
		exePath, _ := os.Executable()
		resourcesPath = filepath.Join(filepath.Dir(exePath), "resources")
	}
	if err := prompt.LoadFromDirectory(resourcesPath); err != nil {
		fmt.Printf("[WARNING] Failed to load prompt library: %v\n", err)
		fmt.Println("  Falling back to hardcoded prompts")
	}

	// Provider selection from config
	var agentCfg agent.Config
	if configData, err := os.ReadFile("config/models.yaml"); err == nil {
		yaml.Unmarshal(configData, &agentCfg)
	}
	if agentCfg.ActiveProvider == "" {
		agentCfg.ActiveProvider = "openai"
	}
	agentMgr := agent.NewManager(agentCfg)

	// Optional report archive
	var repo *store.ReportRepo
	if os.Getenv("DATABASE_URL") != "" {
		if err := store.InitDB(context.Background()); err != nil {
			fmt.Printf("[WARNING] Report archive disabled: %v\n", err)
		} else {
			repo = store.NewReportRepo()
			fmt.Println("[store] Report archive enabled")
		}
	}

	configHandler := config.NewHandler(agentMgr)
	http.HandleFunc("/api/config", configHandler.HandleConfig)
	http.HandleFunc("/api/config/switch", configHandler.HandleSwitch)

	reportHandler := report.NewHandler(agentMgr, repo)
	http.HandleFunc("/api/report", reportHandler.HandleGenerate)
	http.HandleFunc("/api/report/recent", reportHandler.HandleRecent)
	http.HandleFunc("/api/roles", reportHandler.HandleRoles)

	fmt.Println("API server starting on :8080...")
	fmt.Println("  - GET  /api/config")
	fmt.Println("  - POST /api/config/switch")
	fmt.Println("  - POST /api/report")
	fmt.Println("  - GET  /api/report/recent")
	fmt.Println("  - GET  /api/roles")

	if err := http.ListenAndServe(":8080", nil); err != nil {
		fmt.Printf("[FATAL] Server failed to start: %v\n", err)
		os.Exit(1)
	}
}
