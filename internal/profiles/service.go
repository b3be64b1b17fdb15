package profiles

import (
	"context"

	"github.com/yeyclub/platform/internal/authz"
	"github.com/yeyclub/platform/internal/sanitize"
	"github.com/yeyclub/platform/internal/validate"
)

// Service wraps profile business rules.
type Service struct {
	guard *authz.Guard
	repo  Repository
}

// NewService constructs a Service.
func NewService(guard *authz.Guard, repo Repository) *Service {
	return &Service{guard: guard, repo: repo}
}

// UpdateProfileInput carries a partial profile update. Nil fields are
// left untouched.
type UpdateProfileInput struct {
	FullName          *string         `json:"full_name" validate:"omitempty,min=2" msg:"İsim en az 2 karakter olmalı"`
	Phone             *string         `json:"phone"`
	AvatarURL         *string         `json:"avatar_url" validate:"omitempty,url" msg:"Geçerli bir URL giriniz"`
	NotificationPrefs map[string]bool `json:"notification_prefs"`
}

// UpdateProfile updates the caller's own profile.
func (s *Service) UpdateProfile(ctx context.Context, input UpdateProfileInput) (*Profile, map[string]any, error) {
	user, err := s.guard.RequireAuth(ctx)
	if err != nil {
		return nil, nil, err
	}
	if err := validate.Input(&input); err != nil {
		return nil, nil, err
	}

	patch := UpdatePatch{
		FullName:          sanitize.TextPtr(input.FullName),
		Phone:             input.Phone,
		AvatarURL:         input.AvatarURL,
		NotificationPrefs: input.NotificationPrefs,
	}
	profile, err := s.repo.Update(ctx, user.ID, patch)
	if err != nil {
		return nil, nil, err
	}
	return profile, map[string]any{"user_id": user.ID}, nil
}

// UpdateMemberRoleInput changes a member's role. Admin only.
type UpdateMemberRoleInput struct {
	UserID string `json:"user_id" validate:"required,uuid" msg:"Geçersiz kullanıcı."`
	Role   string `json:"role" validate:"required,oneof=admin member" msg:"Geçersiz rol."`
}

// UpdateMemberRole promotes or demotes a member.
func (s *Service) UpdateMemberRole(ctx context.Context, input UpdateMemberRoleInput) (struct{}, map[string]any, error) {
	user, err := s.guard.RequireAdmin(ctx)
	if err != nil {
		return struct{}{}, nil, err
	}
	if err := validate.Input(&input); err != nil {
		return struct{}{}, nil, err
	}
	if err := s.repo.UpdateRole(ctx, input.UserID, input.Role); err != nil {
		return struct{}{}, nil, err
	}
	meta := map[string]any{
		"target_user_id": input.UserID,
		"new_role":       input.Role,
		"changed_by":     user.ID,
	}
	return struct{}{}, meta, nil
}

// RegisterPushTokenInput registers an Expo push token for the caller.
type RegisterPushTokenInput struct {
	Token string `json:"token" validate:"required,min=10" msg:"Geçersiz bildirim anahtarı."`
}

// RegisterPushToken stores the caller's device token for push fan-out.
func (s *Service) RegisterPushToken(ctx context.Context, input RegisterPushTokenInput) (struct{}, map[string]any, error) {
	user, err := s.guard.RequireAuth(ctx)
	if err != nil {
		return struct{}{}, nil, err
	}
	if err := validate.Input(&input); err != nil {
		return struct{}{}, nil, err
	}
	if err := s.repo.SavePushToken(ctx, user.ID, input.Token); err != nil {
		return struct{}{}, nil, err
	}
	return struct{}{}, map[string]any{"user_id": user.ID}, nil
}

// Me returns the caller's profile.
func (s *Service) Me(ctx context.Context) (*Profile, error) {
	user, err := s.guard.RequireAuth(ctx)
	if err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, user.ID)
}

// ListMembers returns every profile. Admin only.
func (s *Service) ListMembers(ctx context.Context) ([]Profile, error) {
	if _, err := s.guard.RequireAdmin(ctx); err != nil {
		return nil, err
	}
	return s.repo.List(ctx)
}

// MemberIDs returns every profile id. Internal fan-out helper for the
// notifications module, not exposed over HTTP.
func (s *Service) MemberIDs(ctx context.Context) ([]string, error) {
	profiles, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	ids := make([]string, len(profiles))
	for i, p := range profiles {
		ids[i] = p.ID
	}
	return ids, nil
}

// PushTokens returns every registered push token.
func (s *Service) PushTokens(ctx context.Context) ([]string, error) {
	return s.repo.AllPushTokens(ctx)
}
