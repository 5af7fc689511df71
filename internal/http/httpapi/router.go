package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"myshop/internal/domain"
	"myshop/internal/http/handlers"
	"myshop/internal/middleware"
)

// Options configures the router middleware.
type Options struct {
	CORSOrigins     []string
	RateLimitPerMin int
	DefaultLocale   string
	CountryLookup   middleware.CountryLookup
}

func NewRouter(app *handlers.App, opts Options) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.RequestID,
		chimw.RealIP,
		middleware.Logger(app.Logger),
		chimw.Recoverer,
		chimw.StripSlashes,
		middleware.CORS(opts.CORSOrigins),
		middleware.RateLimit(opts.RateLimitPerMin, time.Minute),
		middleware.I18N(opts.DefaultLocale, opts.CountryLookup),
		middleware.AuthJWT(app.JWTSecret),
	)

	r.Get("/v1/healthz", app.Health)

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/login/{provider}", app.Login)
		r.Post("/auth/logout", app.Logout)
		r.Get("/auth/session", app.Session)
		r.Get("/assets/{id}/download", app.DownloadAsset)
		r.Get("/generations/styles", app.Styles)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireUser)

			r.Get("/me", app.GetMe)
			r.Patch("/me", app.PatchMe)

			r.Route("/stores", func(r chi.Router) {
				r.Get("/", app.ListStores)
				r.Get("/search", app.SearchStores)
				r.Delete("/{id}", app.UnlinkStore)
				r.Post("/{id}/ingestions", app.StartIngestion)
			})

			r.Route("/ingestions/{id}", func(r chi.Router) {
				r.Get("/", app.GetIngestion)
				r.Post("/cancel", app.CancelIngestion)
				r.Get("/assets", app.IngestionAssets)
				r.Post("/selection", app.RecordSelection)
				r.Post("/finalize", app.FinalizeIngestion)
			})

			r.Route("/assets", func(r chi.Router) {
				r.Get("/", app.ListAssets)
				r.Post("/", app.CreateAsset)
				r.Post("/uploads", app.CreateUpload)
				r.Get("/{id}", app.GetAsset)
				r.Patch("/{id}", app.PatchAsset)
				r.Delete("/{id}", app.DeleteAsset)
			})

			r.Route("/generations", func(r chi.Router) {
				jobRoutes(r, "/posters", app, domain.JobKindPoster)
				jobRoutes(r, "/menu-boards", app, domain.JobKindMenuBoard)
			})
		})
	})

	return r
}

func jobRoutes(r chi.Router, prefix string, app *handlers.App, kind domain.JobKind) {
	r.Post(prefix, app.StartJob(kind))
	r.Get(prefix+"/{id}", app.GetJob(kind))
	r.Post(prefix+"/{id}/save", app.SaveJob(kind))
}
