package audit_test

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yeyclub/platform/internal/audit"
)

func TestRecordLineFormat(t *testing.T) {
	var buf bytes.Buffer
	fixed := time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC)
	logger := audit.NewLogger(nil,
		audit.WithWriter(&buf),
		audit.WithClock(func() time.Time { return fixed }),
	)

	logger.Record(context.Background(), "event.created", map[string]any{
		"eventId": "abc",
		"userId":  "u1",
	})

	line := strings.TrimSuffix(buf.String(), "\n")
	require.True(t, strings.HasPrefix(line, "[2026-08-31T10:00:00Z] [AUDIT] event.created "), "line: %s", line)

	var payload map[string]any
	require.NoError(t, json.Unmarshal([]byte(line[strings.Index(line, "{"):]), &payload))
	assert.Equal(t, "abc", payload["eventId"])
	assert.Equal(t, "u1", payload["userId"])
}

func TestRedactRecursive(t *testing.T) {
	input := map[string]any{
		"userId":       "u1",
		"password":     "hunter2",
		"RefreshToken": "tok",
		"nested": map[string]any{
			"api_key": "k",
			"note":    "keep",
			"list": []any{
				map[string]any{"webhook_secret": "s", "name": "n"},
			},
		},
	}

	out, ok := audit.Redact(input).(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "u1", out["userId"])
	assert.Equal(t, "[REDACTED]", out["password"])
	assert.Equal(t, "[REDACTED]", out["RefreshToken"])

	nested := out["nested"].(map[string]any)
	assert.Equal(t, "[REDACTED]", nested["api_key"])
	assert.Equal(t, "keep", nested["note"])

	item := nested["list"].([]any)[0].(map[string]any)
	assert.Equal(t, "[REDACTED]", item["webhook_secret"])
	assert.Equal(t, "n", item["name"])

	// The input map is not mutated.
	assert.Equal(t, "hunter2", input["password"])
}

func TestRecordRedactsBeforeWriting(t *testing.T) {
	var buf bytes.Buffer
	logger := audit.NewLogger(nil, audit.WithWriter(&buf))

	logger.Record(context.Background(), "member.invited", map[string]any{
		"email":    "x@example.com",
		"password": "plaintext",
	})

	assert.NotContains(t, buf.String(), "plaintext")
	assert.Contains(t, buf.String(), "[REDACTED]")
}

func TestRecordNilMeta(t *testing.T) {
	var buf bytes.Buffer
	logger := audit.NewLogger(nil, audit.WithWriter(&buf))
	logger.Record(context.Background(), "auth.logout", nil)
	assert.Contains(t, buf.String(), "[AUDIT] auth.logout {}")
}
