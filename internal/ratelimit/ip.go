package ratelimit

import (
	"net/http"
	"strings"
)

// ClientIP derives the caller address from forwarding headers. Falls
// back to the literal "unknown", meaning every un-attributable caller
// shares a single throttle bucket.
func ClientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		first, _, _ := strings.Cut(fwd, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}
	if ip := strings.TrimSpace(r.Header.Get("X-Real-IP")); ip != "" {
		return ip
	}
	return "unknown"
}
