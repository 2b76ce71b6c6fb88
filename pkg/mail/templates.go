package mail

import (
	"bytes"
	_ "embed"
	"html/template"

	"github.com/Masterminds/sprig/v3"
)

// Notification is one message to deliver to every subscriber.
// Body is trusted HTML and is embedded verbatim.
type Notification struct {
	Subject string
	Body    string
	Title   string
	Link    string
}

type notificationParams struct {
	Title        string
	Body         template.HTML
	Link         string
	BrandingName string
}

var (
	//go:embed templates/notification.html
	notificationTemplateRaw string
	notificationTemplate    = template.Must(template.New("notification").
				Funcs(sprig.FuncMap()).
				Parse(notificationTemplateRaw))
)

// Render produces the HTML body sent to every recipient of n.
func Render(n Notification, brandingName string) (string, error) {
	title := n.Title
	if title == "" {
		title = n.Subject
	}
	return render(notificationTemplate, notificationParams{
		Title:        title,
		Body:         template.HTML(n.Body), //nolint:gosec // operator-supplied HTML
		Link:         n.Link,
		BrandingName: brandingName,
	})
}

func render(t *template.Template, p any) (string, error) {
	b := bytes.Buffer{}
	if err := t.Execute(&b, p); err != nil {
		return "", err
	}
	return b.String(), nil
}
