package output

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"gopkg.in/yaml.v2"

	"github.com/ashokpds15/Myself/pkg/apitypes"
)

type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// WriteObject writes obj as JSON or YAML. Text output needs a specific writer.
func WriteObject(w io.Writer, format Format, obj any) error {
	switch format {
	case FormatJSON:
		data, err := json.MarshalIndent(obj, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	case FormatYAML:
		data, err := yaml.Marshal(obj)
		if err != nil {
			return err
		}
		_, err = fmt.Fprint(w, string(data))
		return err
	case FormatText:
		return fmt.Errorf("text format requires a specific formatter")
	default:
		return fmt.Errorf("unknown output format: %s", format)
	}
}

// WriteNotifyResult prints a run summary. The failed line only appears when
// some deliveries failed.
func WriteNotifyResult(w io.Writer, blogTitle string, sent, failed, total int) {
	if blogTitle != "" {
		_, _ = fmt.Fprintf(w, "Blog title: %s\n", blogTitle)
	}
	_, _ = fmt.Fprintf(w, "Emails sent: %d/%d\n", sent, total)
	if failed > 0 {
		_, _ = fmt.Fprintf(w, "Failed: %d\n", failed)
	}
}

func WriteAutoNotify(w io.Writer, resp apitypes.AutoNotifyResponse) {
	_, _ = fmt.Fprintln(w, resp.Message)
	WriteNotifyResult(w, resp.BlogTitle, resp.Sent, resp.Failed, resp.Total)
}

func WriteNotify(w io.Writer, resp apitypes.NotifyResponse) {
	_, _ = fmt.Fprintln(w, resp.Message)
	WriteNotifyResult(w, "", resp.Sent, resp.Failed, resp.Total)
}

func WriteSubscriberTable(w io.Writer, emails []string) {
	tw := tabwriter.NewWriter(w, 2, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "#\tEMAIL")
	for i, e := range emails {
		_, _ = fmt.Fprintf(tw, "%d\t%s\n", i+1, e)
	}
	_ = tw.Flush()
	_, _ = fmt.Fprintf(w, "%d subscriber(s)\n", len(emails))
}
