package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/yeyclub/platform/internal/authn"
	"github.com/yeyclub/platform/internal/blog"
	"github.com/yeyclub/platform/internal/contact"
	"github.com/yeyclub/platform/internal/events"
	"github.com/yeyclub/platform/internal/gallery"
	"github.com/yeyclub/platform/internal/notifications"
	"github.com/yeyclub/platform/internal/observability"
	"github.com/yeyclub/platform/internal/platform/httpx"
	"github.com/yeyclub/platform/internal/profiles"
	"github.com/yeyclub/platform/internal/shared"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger         *slog.Logger
	Config         *Config
	SessionManager *shared.SessionManager
	CSRFManager    *shared.CSRFManager

	AuthHandler          *authn.Handler
	ProfilesHandler      *profiles.Handler
	EventsHandler        *events.Handler
	BlogHandler          *blog.Handler
	GalleryHandler       *gallery.Handler
	NotificationsHandler *notifications.Handler
	ContactHandler       *contact.Handler

	Metrics *observability.Metrics
}

// NewRouter constructs the chi.Router.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:         params.Logger,
		Config:         params.Config,
		SessionManager: params.SessionManager,
		CSRFManager:    params.CSRFManager,
		Metrics:        params.Metrics,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	// Clients fetch a CSRF token here before their first mutation.
	r.Get("/csrf", func(w http.ResponseWriter, r *http.Request) {
		sess := shared.SessionFromContext(r.Context())
		token, err := params.CSRFManager.EnsureToken(r.Context(), sess)
		if err != nil {
			httpx.RespondError(w, err)
			return
		}
		httpx.JSON(w, http.StatusOK, map[string]string{"token": token})
	})

	r.Route("/auth", params.AuthHandler.MountRoutes)
	r.Route("/profiles", params.ProfilesHandler.MountRoutes)
	r.Route("/events", params.EventsHandler.MountRoutes)
	r.Route("/blog", params.BlogHandler.MountRoutes)
	r.Route("/gallery", params.GalleryHandler.MountRoutes)
	r.Route("/notifications", params.NotificationsHandler.MountRoutes)
	r.Route("/contact", params.ContactHandler.MountRoutes)

	if params.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())
	}

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		httpx.Problem(w, http.StatusNotFound, "Not Found", "Kayıt bulunamadı.")
	})

	return r
}
