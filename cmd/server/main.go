package main

import (
	"context"
	"fmt"
	"log"

	"spherical/internal/config"
	"spherical/internal/domain"
	"spherical/internal/handler"
	"spherical/internal/oracle/gemini"
	"spherical/internal/port"
	"spherical/internal/renderer"
	"spherical/internal/router"
	"spherical/internal/watcher"
	"spherical/internal/workbench"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Oracle is nil when no API key is configured; the store degrades
	// oracle-dependent operations instead of failing startup. The client
	// is assigned through a typed check so the interface stays nil too.
	var oracle port.AnalysisOracle
	if client := gemini.NewClient(&cfg.Oracle); client != nil {
		oracle = client
	}
	pages := renderer.NewPDFRenderer(cfg.Render.MaxPages)

	store := workbench.NewStore(oracle, pages, domain.DefaultAgents, cfg.Oracle.PageConcurrency)

	// Inbox watcher is optional; an empty dir disables it.
	if cfg.Inbox.Dir != "" {
		w, err := watcher.New(store, cfg.Inbox.Dir)
		if err != nil {
			return fmt.Errorf("failed to start inbox watcher: %w", err)
		}
		defer w.Stop()
		w.IngestExisting()
		go w.Run(context.Background())
	}

	// Initialize handlers
	documentH := handler.NewDocumentHandler(store)
	ocrH := handler.NewOcrHandler(store)
	analysisH := handler.NewAnalysisHandler(store)
	agentH := handler.NewAgentHandler(store)
	dashboardH := handler.NewDashboardHandler(store)
	stateH := handler.NewStateHandler(store)
	healthH := handler.NewHealthHandler(store)

	// Setup router
	r := router.Setup(cfg.CORS.AllowedOrigins, documentH, ocrH, analysisH, agentH, dashboardH, stateH, healthH)

	log.Printf("Server starting on %s", cfg.Server.Port)
	if err := r.Run(cfg.Server.Port); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}
