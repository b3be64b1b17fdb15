package action

import (
	"errors"
	"net/http"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/yeyclub/platform/internal/shared"
)

// Error codes for typed action failures.
const (
	CodeAction           = "ACTION_ERROR"
	CodeValidation       = "VALIDATION_ERROR"
	CodeUnauthorized     = "UNAUTHORIZED"
	CodeForbidden        = "FORBIDDEN"
	CodeNotFound         = "NOT_FOUND"
	CodeCapacityFull     = "CAPACITY_FULL"
	CodeUnsupportedMedia = "UNSUPPORTED_MEDIA"
)

// User-facing messages. Only these strings (and per-schema validation
// messages) ever reach the caller; raw internal errors never do.
const (
	MsgUnauthorized = "Oturum açmanız gerekiyor."
	MsgForbidden    = "Bu işlem için yetkiniz yok."
	MsgNotFound     = "Kayıt bulunamadı."
	MsgUnexpected   = "Beklenmeyen bir hata oluştu. Lütfen tekrar deneyin."
	MsgInvalidBody  = "Geçersiz veri."
)

// Error is a typed, user-presentable failure. Its message is surfaced
// verbatim; anything else is mapped to a generic message.
type Error struct {
	Message    string
	Code       string
	StatusCode int
}

// NewError constructs an Error.
func NewError(message, code string, statusCode int) *Error {
	if code == "" {
		code = CodeAction
	}
	if statusCode == 0 {
		statusCode = http.StatusBadRequest
	}
	return &Error{Message: message, Code: code, StatusCode: statusCode}
}

func (e *Error) Error() string {
	return e.Message
}

// Unauthorized returns the standard missing-session failure.
func Unauthorized() *Error {
	return NewError(MsgUnauthorized, CodeUnauthorized, http.StatusUnauthorized)
}

// Forbidden returns the standard missing-permission failure.
func Forbidden() *Error {
	return NewError(MsgForbidden, CodeForbidden, http.StatusForbidden)
}

// NotFound returns the standard missing-record failure.
func NotFound() *Error {
	return NewError(MsgNotFound, CodeNotFound, http.StatusNotFound)
}

// Fixed user-facing strings for known persistence error codes;
// unmapped codes fall through to the generic message.
var storeErrorMessages = map[string]string{
	"23505": "Bu kayıt zaten mevcut.",     // unique_violation
	"23503": "İlişkili kayıt bulunamadı.", // foreign_key_violation
}

// mapStoreError converts recognised persistence failures into their
// fixed user-facing strings.
func mapStoreError(err error) (message, code string, ok bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if msg, known := storeErrorMessages[pgErr.Code]; known {
			return msg, pgErr.Code, true
		}
		return "", "", false
	}
	if errors.Is(err, shared.ErrNotFound) {
		return MsgNotFound, CodeNotFound, true
	}
	return "", "", false
}
