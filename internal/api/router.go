package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimid "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/contactbook/engine/docs"
	"github.com/contactbook/engine/internal/api/handlers"
	mw "github.com/contactbook/engine/internal/api/middleware"
)

type Dependencies struct {
	Tokens         mw.TokenVerifier
	RateLimitRPS   float64
	RateLimitBurst int
	CORSOrigins    []string

	HealthHandler     *handlers.HealthHandler
	AuthHandler       *handlers.AuthHandler
	ContactsHandler   *handlers.ContactsHandler
	CategoriesHandler *handlers.CategoriesHandler
	TransferHandler   *handlers.TransferHandler
	UploadHandler     *handlers.UploadHandler
	StatsHandler      *handlers.StatsHandler
}

func NewRouter(dep Dependencies) http.Handler {
	r := chi.NewRouter()

	r.Use(mw.RequestID)
	r.Use(mw.Recovery)
	r.Use(mw.Logging)
	r.Use(mw.CORS(dep.CORSOrigins))
	r.Use(mw.RateLimit(dep.RateLimitRPS, dep.RateLimitBurst))
	r.Use(chimid.Compress(5))

	r.Get("/healthz", dep.HealthHandler.Health)
	r.Get("/readyz", dep.HealthHandler.Readiness)

	r.Get("/docs/*", httpSwagger.Handler(
		httpSwagger.URL("/docs/doc.json"),
	))

	r.Route("/api", func(api chi.Router) {
		api.Get("/health", dep.HealthHandler.Health)

		api.Route("/auth", func(ar chi.Router) {
			ar.Post("/register", dep.AuthHandler.Register)
			ar.Post("/login", dep.AuthHandler.Login)
			ar.With(mw.Auth(dep.Tokens)).Get("/me", dep.AuthHandler.Me)
		})

		api.Group(func(protected chi.Router) {
			protected.Use(mw.Auth(dep.Tokens))

			protected.Route("/contacts", func(cr chi.Router) {
				cr.Get("/", dep.ContactsHandler.List)
				cr.Post("/", dep.ContactsHandler.Create)
				cr.Post("/import/{format}", dep.TransferHandler.Import)
				cr.Get("/export/{format}", dep.TransferHandler.Export)
				cr.Get("/{id}", dep.ContactsHandler.Get)
				cr.Put("/{id}", dep.ContactsHandler.Update)
				cr.Delete("/{id}", dep.ContactsHandler.Delete)
			})

			protected.Route("/categories", func(cr chi.Router) {
				cr.Get("/", dep.CategoriesHandler.List)
				cr.Post("/", dep.CategoriesHandler.Create)
				cr.Delete("/{id}", dep.CategoriesHandler.Delete)
			})

			protected.Post("/upload-profile-picture", dep.UploadHandler.ProfilePicture)
			protected.Get("/stats", dep.StatsHandler.Get)
		})
	})

	return r
}
