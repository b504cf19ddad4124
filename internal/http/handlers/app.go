package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"audito/internal/analysis"
	"audito/internal/infra"
)

// Analyzer runs the critique pipeline for either input kind.
type Analyzer interface {
	AnalyzeUpload(ctx context.Context, data []byte, filename, productContext string) (map[string]any, error)
	AnalyzeFromURL(ctx context.Context, rawURL, productContext string) (map[string]any, error)
}

type App struct {
	Config   *infra.Config
	Logger   infra.Logger
	Analyzer Analyzer
}

func NewApp(cfg *infra.Config, logger infra.Logger, analyzer Analyzer) *App {
	return &App{Config: cfg, Logger: logger, Analyzer: analyzer}
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// error writes the uniform failure shape; every handler funnels errors here so
// clients always get the same envelope.
func (a *App) error(w http.ResponseWriter, code int, message string) {
	a.json(w, code, analysis.ErrorResponse(message))
}
