// Package apitypes holds the JSON bodies of the /api routes. It has no
// dependencies so that HTTP clients such as notifyctl can share it without
// pulling in the server.
package apitypes

import "regexp"

// APIKeyParam is the query parameter carrying the admin key.
const APIKeyParam = "key"

type EmailRequest struct {
	Email string `json:"email"`
}

type EmailResponse struct {
	Message string `json:"message"`
	Email   string `json:"email"`
}

type SubscriberEntry struct {
	Email string `json:"email"`
}

type SubscribersResponse struct {
	Subscribers []SubscriberEntry `json:"subscribers"`
}

type NotifyRequest struct {
	Subject     string `json:"subject"`
	HTMLContent string `json:"htmlContent"`
	BlogTitle   string `json:"blogTitle,omitempty"`
	BlogLink    string `json:"blogLink,omitempty"`
}

type NotifyResponse struct {
	Message string `json:"message"`
	Sent    int    `json:"sent"`
	Failed  int    `json:"failed"`
	Total   int    `json:"total"`
}

type AutoNotifyResponse struct {
	Message   string `json:"message"`
	BlogTitle string `json:"blogTitle"`
	Sent      int    `json:"sent"`
	Failed    int    `json:"failed"`
	Total     int    `json:"total"`
}

// Error is the body of every error response.
type Error struct {
	Message string `json:"message"`
}

const redacted = "REDACTED"

var apiKeyPattern = regexp.MustCompile(`(^|[?&\s])` + APIKeyParam + `=[^&\s#]*`)

// RedactAPIKey replaces the value of every key= query parameter in s, which
// may be a raw query, a URL or a whole request dump.
func RedactAPIKey(s string) string {
	return apiKeyPattern.ReplaceAllString(s, "${1}"+APIKeyParam+"="+redacted)
}
