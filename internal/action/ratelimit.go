package action

import (
	"fmt"
	"math"
	"net/http"
	"time"

	"github.com/yeyclub/platform/internal/ratelimit"
)

const throttleMessageFormat = "Çok fazla istek gönderdiniz. Lütfen %d dakika sonra tekrar deneyin."

// RunWithRateLimit applies a sliding-window budget keyed by action
// class and caller IP before the wrapped action runs. On rejection the
// unit of work is never invoked: throttling is checked before any
// session lookup or validation happens.
func RunWithRateLimit[T any](r *http.Request, limiter *ratelimit.Limiter, cfg ratelimit.Config, fn func() Result[T]) Result[T] {
	identifier := ratelimit.Key(cfg.Prefix, ratelimit.ClientIP(r))
	res := limiter.Check(identifier, cfg.MaxRequests, cfg.Window)
	if !res.Allowed {
		return Fail[T](ThrottleMessage(res.Reset, time.Now()))
	}
	return fn()
}

// ThrottleMessage renders the retry-after notice with whole minutes,
// rounded up.
func ThrottleMessage(reset, now time.Time) string {
	minutes := int(math.Ceil(reset.Sub(now).Seconds() / 60))
	if minutes < 1 {
		minutes = 1
	}
	return fmt.Sprintf(throttleMessageFormat, minutes)
}
