package notifications

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/yeyclub/platform/internal/action"
	"github.com/yeyclub/platform/internal/platform/httpx"
)

// Handler wires HTTP endpoints for the notifications module.
type Handler struct {
	logger   *slog.Logger
	service  *Service
	pipeline *action.Pipeline
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, service *Service, pipeline *action.Pipeline) *Handler {
	return &Handler{logger: logger, service: service, pipeline: pipeline}
}

// MountRoutes registers notification routes on the provided router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.list)
	r.Get("/unread-count", h.unreadCount)

	r.Post("/create", h.create)
	r.Post("/bulk", h.sendBulk)
	r.Post("/{id}/read", h.markRead)
	r.Post("/read-all", h.markAllRead)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.List(r.Context())
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, items)
}

func (h *Handler) unreadCount(w http.ResponseWriter, r *http.Request) {
	count, err := h.service.UnreadCount(r.Context())
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]int{"count": count})
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var input CreateNotificationInput
	if err := httpx.DecodeJSON(w, r, &input); err != nil {
		httpx.JSON(w, http.StatusOK, action.Fail[*Notification](action.MsgInvalidBody))
		return
	}
	res := action.Run(r.Context(), h.pipeline, "notification.created", func(ctx context.Context) (*Notification, map[string]any, error) {
		return h.service.CreateNotification(ctx, input)
	})
	httpx.JSON(w, http.StatusOK, res)
}

func (h *Handler) sendBulk(w http.ResponseWriter, r *http.Request) {
	var input SendBulkInput
	if err := httpx.DecodeJSON(w, r, &input); err != nil {
		httpx.JSON(w, http.StatusOK, action.Fail[*BulkResult](action.MsgInvalidBody))
		return
	}
	res := action.Run(r.Context(), h.pipeline, "notification.bulk", func(ctx context.Context) (*BulkResult, map[string]any, error) {
		return h.service.SendBulk(ctx, input)
	})
	httpx.JSON(w, http.StatusOK, res)
}

func (h *Handler) markRead(w http.ResponseWriter, r *http.Request) {
	notificationID := chi.URLParam(r, "id")
	res := action.Run(r.Context(), h.pipeline, "notification.read", func(ctx context.Context) (action.Void, map[string]any, error) {
		return h.service.MarkRead(ctx, notificationID)
	})
	httpx.JSON(w, http.StatusOK, res)
}

func (h *Handler) markAllRead(w http.ResponseWriter, r *http.Request) {
	res := action.Run(r.Context(), h.pipeline, "notifications.markAllRead", func(ctx context.Context) (action.Void, map[string]any, error) {
		return h.service.MarkAllRead(ctx)
	})
	httpx.JSON(w, http.StatusOK, res)
}
