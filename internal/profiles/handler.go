package profiles

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/yeyclub/platform/internal/action"
	"github.com/yeyclub/platform/internal/platform/httpx"
)

// Handler wires HTTP endpoints for the profiles module.
type Handler struct {
	logger   *slog.Logger
	service  *Service
	pipeline *action.Pipeline
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, service *Service, pipeline *action.Pipeline) *Handler {
	return &Handler{logger: logger, service: service, pipeline: pipeline}
}

// MountRoutes registers profile routes on the provided router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/me", h.me)
	r.Get("/", h.list)
	r.Post("/update", h.update)
	r.Post("/role", h.updateRole)
	r.Post("/push-token", h.registerPushToken)
}

func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	profile, err := h.service.Me(r.Context())
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, profile)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	members, err := h.service.ListMembers(r.Context())
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, members)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	var input UpdateProfileInput
	if err := httpx.DecodeJSON(w, r, &input); err != nil {
		httpx.JSON(w, http.StatusOK, action.Fail[*Profile](action.MsgInvalidBody))
		return
	}
	res := action.Run(r.Context(), h.pipeline, "profile.updated", func(ctx context.Context) (*Profile, map[string]any, error) {
		return h.service.UpdateProfile(ctx, input)
	})
	httpx.JSON(w, http.StatusOK, res)
}

func (h *Handler) updateRole(w http.ResponseWriter, r *http.Request) {
	var input UpdateMemberRoleInput
	if err := httpx.DecodeJSON(w, r, &input); err != nil {
		httpx.JSON(w, http.StatusOK, action.Fail[action.Void](action.MsgInvalidBody))
		return
	}
	res := action.Run(r.Context(), h.pipeline, "profile.roleChanged", func(ctx context.Context) (action.Void, map[string]any, error) {
		return h.service.UpdateMemberRole(ctx, input)
	})
	httpx.JSON(w, http.StatusOK, res)
}

func (h *Handler) registerPushToken(w http.ResponseWriter, r *http.Request) {
	var input RegisterPushTokenInput
	if err := httpx.DecodeJSON(w, r, &input); err != nil {
		httpx.JSON(w, http.StatusOK, action.Fail[action.Void](action.MsgInvalidBody))
		return
	}
	res := action.Run(r.Context(), h.pipeline, "push.tokenRegistered", func(ctx context.Context) (action.Void, map[string]any, error) {
		return h.service.RegisterPushToken(ctx, input)
	})
	httpx.JSON(w, http.StatusOK, res)
}
