package sanitize_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yeyclub/platform/internal/sanitize"
)

func TestTextEscapesSpecials(t *testing.T) {
	cases := map[string]string{
		"<script>alert(1)</script>": "&lt;script&gt;alert(1)&lt;&#x2F;script&gt;",
		`a "quoted" value`:          "a &quot;quoted&quot; value",
		"Tom & Jerry":               "Tom &amp; Jerry",
		"it's fine":                 "it&#x27;s fine",
		"  padded  ":                "padded",
	}
	for input, want := range cases {
		assert.Equal(t, want, sanitize.Text(input))
	}
}

func TestTextLeavesCleanInputAlone(t *testing.T) {
	for _, s := range []string{"Çorba dağıtımı", "hello world", "  trimmed only  "} {
		assert.Equal(t, strings.TrimSpace(s), sanitize.Text(s))
	}
}

func TestTextOutputHasNoRawSpecials(t *testing.T) {
	inputs := []string{
		`<img src=x onerror="alert('x')">`,
		"a/b/c & <d>",
		"&amp; already escaped",
	}
	for _, in := range inputs {
		out := sanitize.Text(in)
		for _, ch := range []string{"<", ">", `"`, "'", "/"} {
			assert.NotContains(t, out, ch, "input %q", in)
		}
		// Every ampersand must start an entity.
		for i := 0; i < len(out); i++ {
			if out[i] == '&' {
				rest := out[i:]
				require.True(t,
					strings.HasPrefix(rest, "&amp;") ||
						strings.HasPrefix(rest, "&lt;") ||
						strings.HasPrefix(rest, "&gt;") ||
						strings.HasPrefix(rest, "&quot;") ||
						strings.HasPrefix(rest, "&#x27;") ||
						strings.HasPrefix(rest, "&#x2F;"),
					"unescaped ampersand in %q", out)
			}
		}
	}
}

func TestTextNotIdempotent(t *testing.T) {
	// Documented limitation: escaping is applied exactly once per write.
	once := sanitize.Text("&")
	assert.Equal(t, "&amp;", once)
	assert.Equal(t, "&amp;amp;", sanitize.Text(once))
}

func TestTextPtr(t *testing.T) {
	assert.Nil(t, sanitize.TextPtr(nil))
	s := " <b> "
	require.NotNil(t, sanitize.TextPtr(&s))
	assert.Equal(t, "&lt;b&gt;", *sanitize.TextPtr(&s))
}

func TestEmail(t *testing.T) {
	assert.Equal(t, "user@example.com", sanitize.Email("  User@Example.COM "))
	// NFKC folds full-width characters.
	assert.Equal(t, "abc@example.com", sanitize.Email("ａｂｃ@example.com"))
}
