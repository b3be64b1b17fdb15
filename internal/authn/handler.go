package authn

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/yeyclub/platform/internal/action"
	"github.com/yeyclub/platform/internal/platform/httpx"
	"github.com/yeyclub/platform/internal/ratelimit"
	"github.com/yeyclub/platform/internal/shared"
)

// SessionUser is the payload returned by login and register.
type SessionUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// Handler wires authentication endpoints.
type Handler struct {
	logger   *slog.Logger
	service  *Service
	sessions *shared.SessionManager
	pipeline *action.Pipeline
	limiter  *ratelimit.Limiter
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, service *Service, sessions *shared.SessionManager, pipeline *action.Pipeline, limiter *ratelimit.Limiter) *Handler {
	return &Handler{logger: logger, service: service, sessions: sessions, pipeline: pipeline, limiter: limiter}
}

// MountRoutes registers auth routes on the provided router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/login", h.login)
	r.Post("/register", h.register)
	r.Post("/logout", h.logout)
}

// login checks the throttle before touching credentials or the
// session; a throttled caller learns nothing about the account.
func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var input LoginInput
	if err := httpx.DecodeJSON(w, r, &input); err != nil {
		httpx.JSON(w, http.StatusOK, action.Fail[*SessionUser](action.MsgInvalidBody))
		return
	}
	res := action.RunWithRateLimit(r, h.limiter, ratelimit.LoginLimit, func() action.Result[*SessionUser] {
		return action.Run(r.Context(), h.pipeline, "auth.login", func(ctx context.Context) (*SessionUser, map[string]any, error) {
			user, meta, err := h.service.Login(ctx, input)
			if err != nil {
				return nil, nil, err
			}
			h.establishSession(ctx, user)
			return &SessionUser{ID: user.ID, Email: user.Email}, meta, nil
		})
	})
	httpx.JSON(w, http.StatusOK, res)
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var input RegisterInput
	if err := httpx.DecodeJSON(w, r, &input); err != nil {
		httpx.JSON(w, http.StatusOK, action.Fail[*SessionUser](action.MsgInvalidBody))
		return
	}
	res := action.RunWithRateLimit(r, h.limiter, ratelimit.RegisterLimit, func() action.Result[*SessionUser] {
		return action.Run(r.Context(), h.pipeline, "auth.register", func(ctx context.Context) (*SessionUser, map[string]any, error) {
			user, meta, err := h.service.Register(ctx, input)
			if err != nil {
				return nil, nil, err
			}
			h.establishSession(ctx, user)
			return &SessionUser{ID: user.ID, Email: user.Email}, meta, nil
		})
	})
	httpx.JSON(w, http.StatusOK, res)
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	res := action.Run(r.Context(), h.pipeline, "auth.logout", func(ctx context.Context) (action.Void, map[string]any, error) {
		sess := shared.SessionFromContext(ctx)
		if sess != nil {
			h.sessions.Destroy(sess)
		}
		return action.Void{}, nil, nil
	})
	httpx.JSON(w, http.StatusOK, res)
}

func (h *Handler) establishSession(ctx context.Context, user *User) {
	sess := shared.SessionFromContext(ctx)
	if sess == nil {
		return
	}
	sess.SetUser(user.ID)
	sess.Set(shared.SessionKeyEmail, user.Email)
}
