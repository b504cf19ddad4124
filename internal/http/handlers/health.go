package handlers

import (
	"net/http"
	"time"
)

const serviceVersion = "1.0.0"

// Root answers with a small service banner and the routes worth knowing.
func (a *App) Root(w http.ResponseWriter, r *http.Request) {
	a.json(w, http.StatusOK, map[string]any{
		"message":   "🚀 Audito Backend - API de Análise de Interfaces",
		"version":   serviceVersion,
		"status":    "OK",
		"timestamp": unixSeconds(time.Now()),
		"endpoints": map[string]string{
			"health":  "/api/health",
			"analyze": "/api/analyze",
		},
	})
}

func (a *App) Health(w http.ResponseWriter, r *http.Request) {
	a.json(w, http.StatusOK, map[string]any{
		"status":    "healthy",
		"service":   "audito-backend",
		"version":   serviceVersion,
		"timestamp": unixSeconds(time.Now()),
	})
}

// unixSeconds renders a timestamp as fractional Unix seconds, the format the
// frontend already consumes.
func unixSeconds(t time.Time) float64 {
	return float64(t.UnixNano()) / float64(time.Second)
}
