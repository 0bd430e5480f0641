package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"newsact/internal/config"
	"newsact/internal/handler"
	"newsact/internal/middleware"
)

type Handlers struct {
	Auth      *handler.AuthHandler
	Post      *handler.PostHandler
	Region    *handler.RegionHandler
	Storage   *handler.StorageHandler
	Analytics *handler.AnalyticsHandler
}

// New assembles the route tree. The rate limiter sits in front of the auth
// gate so repeated invalid-credential attempts are throttled regardless of
// token validity.
func New(cfg *config.Config, authMiddleware *middleware.AuthMiddleware, h Handlers, localUploadsDir string) http.Handler {
	r := chi.NewRouter()
	rateLimit := middleware.NewRateLimitMiddleware(cfg.RateLimitWindow, cfg.RateLimitGeneral, cfg.RateLimitAuth)

	r.Use(middleware.Recovery)
	r.Use(middleware.Logging)
	r.Use(middleware.CORS(cfg.CORSOrigins))
	r.Use(middleware.SecurityHeaders)
	r.Use(rateLimit.Handler)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Route("/api/v1", func(api chi.Router) {
		api.Use(middleware.Timeout(cfg.RequestTimeout))

		api.Route("/auth", func(auth chi.Router) {
			auth.Post("/login", h.Auth.Login)
			auth.With(authMiddleware.RequireAuth).Get("/me", h.Auth.Me)
			auth.With(authMiddleware.RequireAuth).Put("/profile", h.Auth.UpdateProfile)
		})

		api.Route("/posts", func(posts chi.Router) {
			posts.Get("/", h.Post.List)
			posts.Get("/{post_id}", h.Post.Get)
			posts.With(authMiddleware.RequireAuth).Post("/", h.Post.Create)
			posts.With(authMiddleware.RequireAuth).Put("/{post_id}", h.Post.Update)
			posts.With(authMiddleware.RequireAuth).Delete("/{post_id}", h.Post.Delete)
		})

		api.Route("/regions", func(regions chi.Router) {
			regions.Get("/", h.Region.List)
			regions.Get("/{region_id}", h.Region.Get)
			regions.With(authMiddleware.RequireAuth).Post("/", h.Region.Create)
			regions.With(authMiddleware.RequireAuth).Put("/{region_id}", h.Region.Update)
			regions.With(authMiddleware.RequireAuth).Delete("/{region_id}", h.Region.Delete)
			regions.With(authMiddleware.RequireAuth).Post("/{region_id}/sub-zones", h.Region.AddSubZone)
			regions.With(authMiddleware.RequireAuth).Delete("/{region_id}/sub-zones/{sub_zone_id}", h.Region.RemoveSubZone)
		})

		api.Get("/analytics/summary", h.Analytics.Summary)

		api.Route("/storage", func(st chi.Router) {
			st.Use(authMiddleware.RequireAuth)
			st.Post("/upload", h.Storage.Upload)
			st.Post("/upload/avatar", h.Storage.UploadAvatar)
			st.Post("/upload/post-image", h.Storage.UploadPostImage)
			st.Delete("/upload", h.Storage.Delete)
		})
	})

	// Static mount for the local backend only; the S3 backend serves its own URLs.
	if localUploadsDir != "" {
		fileServer := http.StripPrefix("/static/uploads/", http.FileServer(http.Dir(localUploadsDir)))
		r.Get("/static/uploads/*", fileServer.ServeHTTP)
	}

	return r
}
