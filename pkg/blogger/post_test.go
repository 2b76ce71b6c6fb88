package blogger

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestStripHTML(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "plain", input: "hello world", want: "hello world"},
		{name: "inline tags", input: "Hel<b>lo</b> <i>there</i>", want: "Hello there"},
		{name: "block tags separate words", input: "<p>One</p><p>Two</p>", want: "One Two"},
		{name: "entities decoded", input: "Fish &amp; Chips", want: "Fish & Chips"},
		{name: "script dropped", input: "<p>a</p><script>alert(1)</script><style>p{}</style>b", want: "a b"},
		{name: "whitespace collapsed", input: "  a\n\n\t b  ", want: "a b"},
		{name: "empty", input: "", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StripHTML(tt.input))
		})
	}
}

func TestExcerpt(t *testing.T) {
	assert.Equal(t, "short...", Excerpt("<p>short</p>"))
	assert.Equal(t, "...", Excerpt(""))
	assert.Equal(t, "a &lt; b...", Excerpt("a &lt; b"), "text is re-escaped")

	long := "<div>" + strings.Repeat("é", 400) + "</div>"
	got := Excerpt(long)
	assert.True(t, strings.HasSuffix(got, "..."))
	assert.Equal(t, ExcerptLength, utf8.RuneCountInString(strings.TrimSuffix(got, "...")))
}

func TestPostNotification(t *testing.T) {
	p := Post{
		Title:   "Concurrency in Go",
		Content: "<p>Goroutines are cheap.</p>",
		URL:     "https://blog.example.com/concurrency",
	}

	n := p.Notification()
	assert.Equal(t, "New Blog Post: Concurrency in Go", n.Subject)
	assert.Equal(t, "Concurrency in Go", n.Title)
	assert.Equal(t, "Goroutines are cheap....", n.Body)
	assert.Equal(t, "https://blog.example.com/concurrency", n.Link)
}
