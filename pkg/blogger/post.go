package blogger

import (
	"html"
	"strings"
	"time"

	nethtml "golang.org/x/net/html"

	"github.com/ashokpds15/Myself/pkg/mail"
)

// ExcerptLength is the number of characters of post text kept in a notification.
const ExcerptLength = 300

type Post struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Content   string     `json:"content"`
	URL       string     `json:"url"`
	Published time.Time  `json:"published"`
	Updated   *time.Time `json:"updated,omitempty"`
}

// Notification builds the subscriber message announcing p.
func (p Post) Notification() mail.Notification {
	return mail.Notification{
		Subject: "New Blog Post: " + p.Title,
		Title:   p.Title,
		Body:    Excerpt(p.Content),
		Link:    p.URL,
	}
}

// Excerpt returns the first ExcerptLength characters of the text in content,
// followed by "...". The result is escaped and safe to embed in HTML.
func Excerpt(content string) string {
	text := []rune(StripHTML(content))
	if len(text) > ExcerptLength {
		text = text[:ExcerptLength]
	}
	return html.EscapeString(string(text)) + "..."
}

// StripHTML returns the text content of an HTML fragment with whitespace
// collapsed. Script and style contents are dropped.
func StripHTML(content string) string {
	var b strings.Builder
	z := nethtml.NewTokenizer(strings.NewReader(content))
	skip := 0
	for {
		tt := z.Next()
		switch tt {
		case nethtml.ErrorToken:
			return strings.Join(strings.Fields(b.String()), " ")
		case nethtml.StartTagToken, nethtml.EndTagToken, nethtml.SelfClosingTagToken:
			name, _ := z.TagName()
			tag := string(name)
			if tag == "script" || tag == "style" {
				if tt == nethtml.StartTagToken {
					skip++
				} else if tt == nethtml.EndTagToken && skip > 0 {
					skip--
				}
			}
			if blockTags[tag] {
				b.WriteByte(' ')
			}
		case nethtml.TextToken:
			if skip == 0 {
				b.Write(z.Text())
			}
		}
	}
}

// blockTags separate words when tags are removed.
var blockTags = map[string]bool{
	"br": true, "p": true, "div": true, "li": true, "ul": true, "ol": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"tr": true, "td": true, "th": true, "blockquote": true, "pre": true,
	"img": true, "hr": true, "section": true, "article": true, "figure": true,
}
