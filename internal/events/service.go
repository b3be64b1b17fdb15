package events

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/yeyclub/platform/internal/action"
	"github.com/yeyclub/platform/internal/authz"
	"github.com/yeyclub/platform/internal/sanitize"
	"github.com/yeyclub/platform/internal/shared"
	"github.com/yeyclub/platform/internal/validate"
)

// MsgCapacityFull is surfaced when an event's attending quota is used up.
const MsgCapacityFull = "Bu etkinlik için katılımcı limiti dolmuştur."

// Service wraps event business rules.
type Service struct {
	guard *authz.Guard
	repo  Repository
}

// NewService constructs a Service.
func NewService(guard *authz.Guard, repo Repository) *Service {
	return &Service{guard: guard, repo: repo}
}

// CreateEventInput carries a new event. Admin only.
type CreateEventInput struct {
	Title           string    `json:"title" validate:"required,min=3" msg:"Başlık en az 3 karakter olmalı"`
	Slug            string    `json:"slug" validate:"required,min=3,slug" msg:"Slug en az 3 karakter olmalı"`
	Description     *string   `json:"description"`
	Category        string    `json:"category" validate:"required,oneof=corba iftar eglence diger" msg:"Geçersiz kategori."`
	EventDate       time.Time `json:"event_date" validate:"required" msg:"Etkinlik tarihi gerekli."`
	LocationName    *string   `json:"location_name"`
	LocationLat     *float64  `json:"location_lat"`
	LocationLng     *float64  `json:"location_lng"`
	CoverImage      *string   `json:"cover_image"`
	MaxParticipants *int      `json:"max_participants" validate:"omitempty,gt=0" msg:"Katılımcı limiti pozitif olmalı."`
	Status          *string   `json:"status" validate:"omitempty,oneof=upcoming ongoing completed cancelled" msg:"Geçersiz durum."`
}

// CreateEvent creates an event on behalf of an admin.
func (s *Service) CreateEvent(ctx context.Context, input CreateEventInput) (*Event, map[string]any, error) {
	user, err := s.guard.RequireAdmin(ctx)
	if err != nil {
		return nil, nil, err
	}
	if err := validate.Input(&input); err != nil {
		return nil, nil, err
	}

	status := StatusUpcoming
	if input.Status != nil {
		status = *input.Status
	}
	event := &Event{
		Title:           sanitize.Text(input.Title),
		Slug:            input.Slug,
		Description:     sanitize.TextPtr(input.Description),
		Category:        input.Category,
		EventDate:       input.EventDate,
		LocationName:    input.LocationName,
		LocationLat:     input.LocationLat,
		LocationLng:     input.LocationLng,
		CoverImage:      input.CoverImage,
		MaxParticipants: input.MaxParticipants,
		Status:          status,
		CreatedBy:       user.ID,
	}
	if err := s.repo.Create(ctx, event); err != nil {
		return nil, nil, err
	}
	return event, map[string]any{"event_id": event.ID, "user_id": user.ID}, nil
}

// UpdateEventInput carries a partial event update.
type UpdateEventInput struct {
	ID              string     `json:"id" validate:"required,uuid" msg:"Geçersiz etkinlik."`
	Title           *string    `json:"title" validate:"omitempty,min=3" msg:"Başlık en az 3 karakter olmalı"`
	Slug            *string    `json:"slug" validate:"omitempty,min=3,slug" msg:"Slug en az 3 karakter olmalı"`
	Description     *string    `json:"description"`
	Category        *string    `json:"category" validate:"omitempty,oneof=corba iftar eglence diger" msg:"Geçersiz kategori."`
	EventDate       *time.Time `json:"event_date"`
	LocationName    *string    `json:"location_name"`
	LocationLat     *float64   `json:"location_lat"`
	LocationLng     *float64   `json:"location_lng"`
	CoverImage      *string    `json:"cover_image"`
	MaxParticipants *int       `json:"max_participants" validate:"omitempty,gt=0" msg:"Katılımcı limiti pozitif olmalı."`
	Status          *string    `json:"status" validate:"omitempty,oneof=upcoming ongoing completed cancelled" msg:"Geçersiz durum."`
}

// UpdateEvent updates an event. Non-admins must own the record.
func (s *Service) UpdateEvent(ctx context.Context, input UpdateEventInput) (*Event, map[string]any, error) {
	user, err := s.guard.RequireAuth(ctx)
	if err != nil {
		return nil, nil, err
	}
	if err := validate.Input(&input); err != nil {
		return nil, nil, err
	}
	if !user.IsAdmin() {
		if err := s.guard.RequireOwnership(ctx, s.repo, input.ID, user.ID); err != nil {
			return nil, nil, err
		}
	}

	patch := UpdatePatch{
		Title:           sanitize.TextPtr(input.Title),
		Slug:            input.Slug,
		Description:     sanitize.TextPtr(input.Description),
		Category:        input.Category,
		EventDate:       input.EventDate,
		LocationName:    input.LocationName,
		LocationLat:     input.LocationLat,
		LocationLng:     input.LocationLng,
		CoverImage:      input.CoverImage,
		MaxParticipants: input.MaxParticipants,
		Status:          input.Status,
	}
	event, err := s.repo.Update(ctx, input.ID, patch)
	if err != nil {
		return nil, nil, err
	}
	return event, map[string]any{"event_id": input.ID, "user_id": user.ID}, nil
}

// DeleteEvent removes an event. Admin only.
func (s *Service) DeleteEvent(ctx context.Context, eventID string) (action.Void, map[string]any, error) {
	user, err := s.guard.RequireAdmin(ctx)
	if err != nil {
		return action.Void{}, nil, err
	}
	if err := s.repo.Delete(ctx, eventID); err != nil {
		return action.Void{}, nil, err
	}
	return action.Void{}, map[string]any{"event_id": eventID, "user_id": user.ID}, nil
}

// UpsertRsvpInput registers or updates the caller's RSVP.
type UpsertRsvpInput struct {
	EventID string `json:"event_id" validate:"required,uuid" msg:"Geçersiz etkinlik."`
	Status  string `json:"status" validate:"required,oneof=attending maybe declined" msg:"Geçersiz katılım durumu."`
}

// RsvpResult is the payload returned by UpsertRsvp.
type RsvpResult struct {
	Status string `json:"status"`
}

// UpsertRsvp registers the caller for an event or updates an existing
// registration. The capacity check reads the attending count and then
// writes; two concurrent registrations for the last slot can both pass.
func (s *Service) UpsertRsvp(ctx context.Context, input UpsertRsvpInput) (RsvpResult, map[string]any, error) {
	user, err := s.guard.RequireAuth(ctx)
	if err != nil {
		return RsvpResult{}, nil, err
	}
	if err := validate.Input(&input); err != nil {
		return RsvpResult{}, nil, err
	}

	existing, err := s.repo.GetRsvp(ctx, input.EventID, user.ID)
	switch {
	case err == nil && existing != nil:
		if err := s.repo.UpdateRsvpStatus(ctx, input.EventID, user.ID, input.Status); err != nil {
			return RsvpResult{}, nil, err
		}
	case errors.Is(err, shared.ErrNotFound):
		event, err := s.repo.GetByID(ctx, input.EventID)
		if err != nil {
			return RsvpResult{}, nil, err
		}
		if event.MaxParticipants != nil {
			count, err := s.repo.AttendingCount(ctx, input.EventID)
			if err != nil {
				return RsvpResult{}, nil, err
			}
			if count >= *event.MaxParticipants && input.Status == RsvpAttending {
				return RsvpResult{}, nil, action.NewError(MsgCapacityFull, action.CodeCapacityFull, http.StatusConflict)
			}
		}
		if err := s.repo.InsertRsvp(ctx, &Rsvp{
			EventID: input.EventID,
			UserID:  user.ID,
			Status:  input.Status,
		}); err != nil {
			return RsvpResult{}, nil, err
		}
	default:
		return RsvpResult{}, nil, err
	}

	meta := map[string]any{
		"event_id": input.EventID,
		"user_id":  user.ID,
		"status":   input.Status,
	}
	return RsvpResult{Status: input.Status}, meta, nil
}

// DeleteRsvp withdraws the caller's RSVP.
func (s *Service) DeleteRsvp(ctx context.Context, eventID string) (action.Void, map[string]any, error) {
	user, err := s.guard.RequireAuth(ctx)
	if err != nil {
		return action.Void{}, nil, err
	}
	if err := s.repo.DeleteRsvp(ctx, eventID, user.ID); err != nil {
		return action.Void{}, nil, err
	}
	return action.Void{}, map[string]any{"event_id": eventID, "user_id": user.ID}, nil
}

// List returns all events.
func (s *Service) List(ctx context.Context) ([]Event, error) {
	return s.repo.List(ctx)
}

// Upcoming returns upcoming events.
func (s *Service) Upcoming(ctx context.Context) ([]Event, error) {
	return s.repo.Upcoming(ctx)
}

// BySlug returns one event plus its RSVP counts.
func (s *Service) BySlug(ctx context.Context, slug string) (*Event, map[string]int, error) {
	event, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, nil, err
	}
	counts, err := s.repo.RsvpCounts(ctx, event.ID)
	if err != nil {
		return nil, nil, err
	}
	return event, counts, nil
}

// Related returns other events in the same category.
func (s *Service) Related(ctx context.Context, eventID string, limit int) ([]Event, error) {
	event, err := s.repo.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	return s.repo.RelatedByCategory(ctx, event.Category, event.ID, limit)
}
