package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ashokpds15/Myself/pkg/notifyctl/output"
)

func NewSubscribersCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "subscribers",
		Short: "Inspect the subscriber list",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List subscriber emails",
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
			emails, err := c.ListSubscribers(cmd.Context())
			if err != nil {
				return err
			}
			if rt.OutputFormat() == output.FormatText {
				output.WriteSubscriberTable(rt.Writer(), emails)
				return nil
			}
			return output.WriteObject(rt.Writer(), rt.OutputFormat(), emails)
		},
	})
	return cmd
}
