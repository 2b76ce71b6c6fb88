package mail

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	tests := []struct {
		name        string
		n           Notification
		contains    []string
		notContains []string
	}{
		{
			name: "title and link",
			n: Notification{
				Subject: "New Blog Post: Go",
				Title:   "Go",
				Body:    "<p>An <strong>excerpt</strong></p>",
				Link:    "https://blog.example.com/go",
			},
			contains: []string{
				"<h1 style=\"margin:8px 0 0;font-size:22px;\">Go</h1>",
				"<p>An <strong>excerpt</strong></p>",
				`href="https://blog.example.com/go"`,
				"Read More",
				"MY PORTFOLIO",
			},
		},
		{
			name: "title falls back to subject",
			n:    Notification{Subject: "Weekly update", Body: "<p>hi</p>"},
			contains: []string{
				"<title>Weekly update</title>",
			},
			notContains: []string{"Read More", "href="},
		},
		{
			name:     "title is escaped",
			n:        Notification{Subject: "s", Title: "<script>x</script>", Body: "b"},
			contains: []string{"&lt;script&gt;x&lt;/script&gt;"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := Render(tt.n, "My Portfolio")
			require.NoError(t, err)
			for _, c := range tt.contains {
				assert.Contains(t, out, c)
			}
			for _, c := range tt.notContains {
				assert.NotContains(t, out, c)
			}
		})
	}
}

func TestRenderBodyIsVerbatim(t *testing.T) {
	body := `<div class="post"><img src="https://x/y.png"><a href="/z">z</a></div>`
	out, err := Render(Notification{Subject: "s", Body: body}, "b")
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(out, body))
}
