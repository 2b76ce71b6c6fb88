package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ashokpds15/Myself/pkg/apitypes"
	"github.com/ashokpds15/Myself/pkg/notifyctl/output"
)

func NewNotifyLatestCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "notify-latest",
		Short: "Email every subscriber about the newest blog post",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := getRuntime(cmd)
			if err != nil {
				return err
			}
			c, err := buildClient(rt)
			if err != nil {
				return err
			}
			resp, err := c.AutoNotifyLatest(cmd.Context())
			if err != nil {
				return err
			}
			if rt.OutputFormat() == output.FormatText {
				output.WriteAutoNotify(rt.Writer(), resp)
				return nil
			}
			return output.WriteObject(rt.Writer(), rt.OutputFormat(), resp)
		},
	}
}

func NewNotifyCommand() *cobra.Command {
	var (
		subject  string
		htmlFile string
		title    string
		link     string
	)

	cmd := &cobra.Command{
		Use:   "notify",
		Short: "Email every subscriber a custom message",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := getRuntime(cmd)
			if err != nil {
				return err
			}
			if subject == "" {
				return errors.New("--subject is required")
			}
			if htmlFile == "" {
				return errors.New("--html-file is required")
			}
			body, err := os.ReadFile(htmlFile)
			if err != nil {
				return fmt.Errorf("reading %s: %w", htmlFile, err)
			}

			c, err := buildClient(rt)
			if err != nil {
				return err
			}
			resp, err := c.Notify(cmd.Context(), apitypes.NotifyRequest{
				Subject:     subject,
				HTMLContent: string(body),
				BlogTitle:   title,
				BlogLink:    link,
			})
			if err != nil {
				return err
			}
			if rt.OutputFormat() == output.FormatText {
				output.WriteNotify(rt.Writer(), resp)
				return nil
			}
			return output.WriteObject(rt.Writer(), rt.OutputFormat(), resp)
		},
	}

	cmd.Flags().StringVar(&subject, "subject", "", "Email subject")
	cmd.Flags().StringVar(&htmlFile, "html-file", "", "File with the HTML body")
	cmd.Flags().StringVar(&title, "title", "", "Heading shown in the email (defaults to the subject)")
	cmd.Flags().StringVar(&link, "link", "", "Read More link")

	return cmd
}
