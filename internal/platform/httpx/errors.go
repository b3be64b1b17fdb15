package httpx

import (
	"errors"
	"net/http"

	"github.com/yeyclub/platform/internal/action"
	"github.com/yeyclub/platform/internal/shared"
)

// RespondError maps errors from read endpoints to RFC7807 responses.
// Mutation endpoints never use this; they always answer with the
// action result envelope.
func RespondError(w http.ResponseWriter, err error) {
	var actErr *action.Error
	switch {
	case errors.As(err, &actErr):
		Problem(w, actErr.StatusCode, http.StatusText(actErr.StatusCode), actErr.Message)
	case errors.Is(err, shared.ErrNotFound):
		Problem(w, http.StatusNotFound, "Not Found", "Kayıt bulunamadı.")
	case errors.Is(err, shared.ErrCSRFTokenMissing), errors.Is(err, shared.ErrCSRFTokenMismatch):
		Problem(w, http.StatusForbidden, "Forbidden", "CSRF doğrulaması başarısız.")
	default:
		Problem(w, http.StatusInternalServerError, "Internal Error", "")
	}
}
