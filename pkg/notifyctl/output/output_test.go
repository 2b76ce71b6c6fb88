package output

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ashokpds15/Myself/pkg/apitypes"
)

func TestWriteObject(t *testing.T) {
	obj := map[string]any{"sent": 2, "total": 3}

	var buf bytes.Buffer
	require.NoError(t, WriteObject(&buf, FormatJSON, obj))
	assert.JSONEq(t, `{"sent":2,"total":3}`, buf.String())

	buf.Reset()
	require.NoError(t, WriteObject(&buf, FormatYAML, obj))
	assert.Equal(t, "sent: 2\ntotal: 3\n", buf.String())

	assert.Error(t, WriteObject(&buf, FormatText, obj))
	assert.Error(t, WriteObject(&buf, Format("xml"), obj))
}

func TestWriteAutoNotify(t *testing.T) {
	var buf bytes.Buffer
	WriteAutoNotify(&buf, apitypes.AutoNotifyResponse{
		Message: "Latest blog post notification sent", BlogTitle: "Go Tips", Sent: 2, Failed: 1, Total: 3,
	})
	assert.Equal(t, "Latest blog post notification sent\nBlog title: Go Tips\nEmails sent: 2/3\nFailed: 1\n", buf.String())

	buf.Reset()
	WriteAutoNotify(&buf, apitypes.AutoNotifyResponse{Message: "ok", BlogTitle: "T", Sent: 3, Total: 3})
	assert.NotContains(t, buf.String(), "Failed")
}

func TestWriteNotify(t *testing.T) {
	var buf bytes.Buffer
	WriteNotify(&buf, apitypes.NotifyResponse{Message: "Emails sent successfully", Sent: 1, Total: 1})
	assert.Equal(t, "Emails sent successfully\nEmails sent: 1/1\n", buf.String())
}

func TestWriteSubscriberTable(t *testing.T) {
	var buf bytes.Buffer
	WriteSubscriberTable(&buf, []string{"a@x.com", "b@x.com"})
	out := buf.String()
	assert.Contains(t, out, "EMAIL")
	assert.Contains(t, out, "1  a@x.com")
	assert.Contains(t, out, "2  b@x.com")
	assert.Contains(t, out, "2 subscriber(s)")
}
