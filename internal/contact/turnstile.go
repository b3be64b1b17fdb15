// Package contact handles contact form submissions. Nothing is
// persisted; a verified submission becomes an outbound e-mail task.
package contact

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultTurnstileEndpoint is Cloudflare's siteverify API.
const DefaultTurnstileEndpoint = "https://challenges.cloudflare.com/turnstile/v0/siteverify"

// TurnstileVerifier checks CAPTCHA tokens against Cloudflare
// Turnstile. With no secret configured every token passes, so local
// environments work without Cloudflare credentials.
type TurnstileVerifier struct {
	secret   string
	endpoint string
	client   *http.Client
}

// NewTurnstileVerifier constructs a verifier. An empty secret disables
// verification.
func NewTurnstileVerifier(secret string) *TurnstileVerifier {
	return &TurnstileVerifier{
		secret:   secret,
		endpoint: DefaultTurnstileEndpoint,
		client:   &http.Client{Timeout: 10 * time.Second},
	}
}

// WithEndpoint overrides the siteverify URL. Test hook.
func (v *TurnstileVerifier) WithEndpoint(endpoint string) *TurnstileVerifier {
	v.endpoint = endpoint
	return v
}

// Verify reports whether token is valid.
func (v *TurnstileVerifier) Verify(ctx context.Context, token string) (bool, error) {
	if v.secret == "" {
		return true, nil
	}

	form := url.Values{
		"secret":   {v.secret},
		"response": {token},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, v.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return false, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := v.client.Do(req)
	if err != nil {
		return false, fmt.Errorf("turnstile verify: %w", err)
	}
	defer resp.Body.Close()

	var body struct {
		Success bool `json:"success"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return false, fmt.Errorf("turnstile verify: %w", err)
	}
	return body.Success, nil
}
