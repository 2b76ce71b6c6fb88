package apitypes

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRedactAPIKey(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "", want: ""},
		{in: "key=s3cret", want: "key=REDACTED"},
		{in: "maxResults=5&key=s3cret&x=1", want: "maxResults=5&key=REDACTED&x=1"},
		{in: "key=", want: "key=REDACTED"},
		{in: "monkey=banana", want: "monkey=banana"},
		{in: "http://h/api/subscribers?key=s3cret#frag", want: "http://h/api/subscribers?key=REDACTED#frag"},
		{in: "GET /api/subscribers?key=s3cret HTTP/1.1\r\nHost: h\r\n", want: "GET /api/subscribers?key=REDACTED HTTP/1.1\r\nHost: h\r\n"},
		{in: "key=a&key=b", want: "key=REDACTED&key=REDACTED"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, RedactAPIKey(tt.in), "input %q", tt.in)
	}
}
