package notifications

import (
	"context"
	"log/slog"

	"github.com/yeyclub/platform/internal/action"
	"github.com/yeyclub/platform/internal/authz"
	"github.com/yeyclub/platform/internal/sanitize"
	"github.com/yeyclub/platform/internal/validate"
)

// Recipients yields the audience of a bulk send.
type Recipients interface {
	MemberIDs(ctx context.Context) ([]string, error)
	PushTokens(ctx context.Context) ([]string, error)
}

// Pusher dispatches a push notification to device tokens. Wired to the
// background queue in production; nil disables push delivery.
type Pusher interface {
	Push(ctx context.Context, tokens []string, title, body string, data map[string]string) error
}

// Service wraps notification business rules.
type Service struct {
	guard      *authz.Guard
	repo       Repository
	recipients Recipients
	pusher     Pusher
	logger     *slog.Logger
}

// NewService constructs a Service. pusher may be nil.
func NewService(guard *authz.Guard, repo Repository, recipients Recipients, pusher Pusher, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{guard: guard, repo: repo, recipients: recipients, pusher: pusher, logger: logger}
}

// CreateNotificationInput targets a single member.
type CreateNotificationInput struct {
	UserID  string  `json:"user_id" validate:"required,uuid" msg:"Geçersiz üye."`
	Title   string  `json:"title" validate:"required,min=1" msg:"Başlık gerekli."`
	Message *string `json:"message"`
	Type    string  `json:"type" validate:"omitempty,oneof=event rsvp system blog" msg:"Geçersiz bildirim türü."`
}

// CreateNotification inserts one notification. Admin only.
func (s *Service) CreateNotification(ctx context.Context, input CreateNotificationInput) (*Notification, map[string]any, error) {
	if _, err := s.guard.RequireAdmin(ctx); err != nil {
		return nil, nil, err
	}
	if err := validate.Input(&input); err != nil {
		return nil, nil, err
	}

	n := &Notification{
		UserID:  input.UserID,
		Title:   sanitize.Text(input.Title),
		Message: sanitize.TextPtr(input.Message),
		Type:    input.Type,
	}
	if n.Type == "" {
		n.Type = TypeSystem
	}
	if err := s.repo.Create(ctx, n); err != nil {
		return nil, nil, err
	}
	return n, map[string]any{"user_id": input.UserID}, nil
}

// SendBulkInput fans a notification out to every member.
type SendBulkInput struct {
	Title   string  `json:"title" validate:"required,min=1" msg:"Başlık gerekli."`
	Message *string `json:"message"`
	Type    string  `json:"type" validate:"omitempty,oneof=event rsvp system blog" msg:"Geçersiz bildirim türü."`
}

// BulkResult reports how many notifications a fan-out created.
type BulkResult struct {
	Count int `json:"count"`
}

// SendBulk creates a notification for every member and dispatches a
// push to registered devices. Push failures are logged, never surfaced;
// the in-app rows are the source of truth.
func (s *Service) SendBulk(ctx context.Context, input SendBulkInput) (*BulkResult, map[string]any, error) {
	user, err := s.guard.RequireAdmin(ctx)
	if err != nil {
		return nil, nil, err
	}
	if err := validate.Input(&input); err != nil {
		return nil, nil, err
	}

	memberIDs, err := s.recipients.MemberIDs(ctx)
	if err != nil {
		return nil, nil, err
	}

	title := sanitize.Text(input.Title)
	message := sanitize.TextPtr(input.Message)
	notType := input.Type
	if notType == "" {
		notType = TypeSystem
	}

	batch := make([]Notification, 0, len(memberIDs))
	for _, id := range memberIDs {
		batch = append(batch, Notification{
			UserID:  id,
			Title:   title,
			Message: message,
			Type:    notType,
		})
	}
	if len(batch) == 0 {
		return &BulkResult{Count: 0}, map[string]any{"count": 0, "user_id": user.ID}, nil
	}
	if err := s.repo.CreateBatch(ctx, batch); err != nil {
		return nil, nil, err
	}

	s.dispatchPush(ctx, title, message)

	meta := map[string]any{"count": len(batch), "user_id": user.ID}
	return &BulkResult{Count: len(batch)}, meta, nil
}

func (s *Service) dispatchPush(ctx context.Context, title string, message *string) {
	if s.pusher == nil {
		return
	}
	tokens, err := s.recipients.PushTokens(ctx)
	if err != nil {
		s.logger.Warn("push token lookup failed", "error", err)
		return
	}
	if len(tokens) == 0 {
		return
	}
	body := ""
	if message != nil {
		body = *message
	}
	if err := s.pusher.Push(ctx, tokens, title, body, nil); err != nil {
		s.logger.Warn("push dispatch failed", "error", err, "tokens", len(tokens))
	}
}

// MarkRead flips one of the caller's notifications read. Rows the
// caller does not own are ignored.
func (s *Service) MarkRead(ctx context.Context, notificationID string) (action.Void, map[string]any, error) {
	user, err := s.guard.RequireAuth(ctx)
	if err != nil {
		return action.Void{}, nil, err
	}
	if err := s.repo.MarkRead(ctx, notificationID, user.ID); err != nil {
		return action.Void{}, nil, err
	}
	return action.Void{}, nil, nil
}

// MarkAllRead flips every unread notification of the caller.
func (s *Service) MarkAllRead(ctx context.Context) (action.Void, map[string]any, error) {
	user, err := s.guard.RequireAuth(ctx)
	if err != nil {
		return action.Void{}, nil, err
	}
	if err := s.repo.MarkAllRead(ctx, user.ID); err != nil {
		return action.Void{}, nil, err
	}
	return action.Void{}, map[string]any{"user_id": user.ID}, nil
}

// List returns the caller's notifications.
func (s *Service) List(ctx context.Context) ([]Notification, error) {
	user, err := s.guard.RequireAuth(ctx)
	if err != nil {
		return nil, err
	}
	return s.repo.ListByUser(ctx, user.ID)
}

// UnreadCount returns the caller's unread badge count.
func (s *Service) UnreadCount(ctx context.Context) (int, error) {
	user, err := s.guard.RequireAuth(ctx)
	if err != nil {
		return 0, err
	}
	return s.repo.UnreadCount(ctx, user.ID)
}
