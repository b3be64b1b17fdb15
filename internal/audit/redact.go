package audit

import "strings"

var sensitiveKeys = []string{
	"password",
	"token",
	"secret",
	"api_key",
	"apikey",
	"authorization",
	"cookie",
	"session",
}

const redactedPlaceholder = "[REDACTED]"

// Redact walks the value and replaces any map entry whose key contains
// a sensitive substring (case-insensitive) with "[REDACTED]", at every
// nesting level. Non-container values pass through unchanged.
func Redact(value any) any {
	switch v := value.(type) {
	case map[string]any:
		masked := make(map[string]any, len(v))
		for key, inner := range v {
			if isSensitiveKey(key) {
				masked[key] = redactedPlaceholder
				continue
			}
			masked[key] = Redact(inner)
		}
		return masked
	case []any:
		masked := make([]any, len(v))
		for i, inner := range v {
			masked[i] = Redact(inner)
		}
		return masked
	default:
		return value
	}
}

func isSensitiveKey(key string) bool {
	lower := strings.ToLower(key)
	for _, sk := range sensitiveKeys {
		if strings.Contains(lower, sk) {
			return true
		}
	}
	return false
}
