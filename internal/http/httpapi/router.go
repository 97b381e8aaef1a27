package httpapi

import (
	"net/http"

	"nanomerch/internal/http/handlers"
	appmw "nanomerch/internal/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter mounts the studio. countries enriches access logs and may be nil.
func NewRouter(app *handlers.App, countries appmw.CountryLookup) http.Handler {
	r := chi.NewRouter()

	r.Use(
		appmw.RequestID,
		middleware.RealIP,
		middleware.Recoverer,
		appmw.Logger(*app.Logger, countries),
	)

	// Health + docs
	r.Get("/v1/healthz", app.Health)
	r.Get("/v1/openapi.json", app.OpenAPIJSON)
	r.Get("/v1/docs", app.OpenAPIDocs)

	// Studio page and its intents
	r.Get("/", app.Index)
	r.Post("/upload", app.Upload)
	r.Post("/clear", app.Clear)
	r.Post("/mode", app.SetMode)
	r.Route("/generate", func(r chi.Router) {
		r.Post("/catalog/{id}", app.GenerateCatalog)
		r.Post("/text", app.GenerateText)
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/state", app.State)
		r.Get("/catalog", app.CatalogJSON)
	})

	r.Route("/history", func(r chi.Router) {
		r.Get("/download.zip", app.DownloadAll)
		r.Get("/{id}/download", app.Download)
	})

	return r
}
