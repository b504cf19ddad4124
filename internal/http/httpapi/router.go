package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"audito/internal/http/handlers"
	"audito/internal/infra"
	"audito/internal/middleware"
)

// NewRouter assembles the chi router and its middleware chain.
func NewRouter(app *handlers.App, cfg *infra.Config, logger infra.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.RequestID,
		chimiddleware.RealIP,
		chimiddleware.Recoverer,
		middleware.Logger(logger),
		middleware.CORS(cfg.CORSAllowedOrigins),
	)

	r.Get("/", app.Root)
	r.Get("/api/health", app.Health)

	r.Route("/api/analyze", func(r chi.Router) {
		// One vision-model call per request; keep an abusive client from
		// burning the quota.
		r.Use(middleware.RateLimit(30, time.Minute))

		r.Post("/", app.Analyze)
		r.Post("/upload", app.AnalyzeUpload)
		r.Post("/url", app.AnalyzeURL)
		r.Post("/screenshot", app.AnalyzeScreenshot)
	})

	return r
}
