package authn

import (
	"context"
	"errors"
	"net/http"

	"golang.org/x/crypto/bcrypt"

	"github.com/yeyclub/platform/internal/action"
	"github.com/yeyclub/platform/internal/sanitize"
	"github.com/yeyclub/platform/internal/shared"
	"github.com/yeyclub/platform/internal/validate"
)

// User-facing authentication messages.
const (
	MsgBadCredentials = "E-posta veya şifre hatalı."
	MsgEmailTaken     = "Bu e-posta adresi zaten kullanılıyor."
)

// Service wraps authentication business rules.
type Service struct {
	repo Repository
}

// NewService constructs a Service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// LoginInput carries login credentials.
type LoginInput struct {
	Email    string `json:"email" validate:"required,email" msg:"Geçerli bir e-posta giriniz"`
	Password string `json:"password" validate:"required" msg:"Şifre gerekli."`
}

// Login verifies credentials. The same failure message covers unknown
// accounts and wrong passwords.
func (s *Service) Login(ctx context.Context, input LoginInput) (*User, map[string]any, error) {
	input.Email = sanitize.Email(input.Email)
	if err := validate.Input(&input); err != nil {
		return nil, nil, err
	}

	user, err := s.repo.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, nil, badCredentials()
		}
		return nil, nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, nil, badCredentials()
	}
	return user, map[string]any{"user_id": user.ID}, nil
}

// RegisterInput carries a new account.
type RegisterInput struct {
	FullName string `json:"full_name" validate:"required,min=2" msg:"İsim en az 2 karakter olmalı"`
	Email    string `json:"email" validate:"required,email" msg:"Geçerli bir e-posta giriniz"`
	Password string `json:"password" validate:"required,min=8" msg:"Şifre en az 8 karakter olmalı"`
}

// Register creates an account plus its member profile. The unique
// constraint on users.email backstops the pre-check under concurrent
// registrations.
func (s *Service) Register(ctx context.Context, input RegisterInput) (*User, map[string]any, error) {
	input.Email = sanitize.Email(input.Email)
	if err := validate.Input(&input); err != nil {
		return nil, nil, err
	}

	fullName := sanitize.Text(input.FullName)

	if _, err := s.repo.FindByEmail(ctx, input.Email); err == nil {
		return nil, nil, action.NewError(MsgEmailTaken, action.CodeValidation, http.StatusConflict)
	} else if !errors.Is(err, shared.ErrNotFound) {
		return nil, nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, nil, err
	}

	user := &User{Email: input.Email, PasswordHash: string(hash)}
	if err := s.repo.CreateWithProfile(ctx, user, fullName); err != nil {
		return nil, nil, err
	}
	return user, map[string]any{"user_id": user.ID}, nil
}

func badCredentials() *action.Error {
	return action.NewError(MsgBadCredentials, action.CodeUnauthorized, http.StatusUnauthorized)
}
