package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ashokpds15/Myself/pkg/notifyctl/output"
	"github.com/ashokpds15/Myself/pkg/version"
)

func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show notifyctl version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			info := version.GetBuildInfo()

			writer := cmd.OutOrStdout()
			format := output.FormatText
			if rt, err := getRuntime(cmd); err == nil {
				writer = rt.Writer()
				format = rt.OutputFormat()
			}

			if format == output.FormatText {
				_, _ = fmt.Fprintf(writer, "notifyctl %s (commit: %s, built: %s)\n", info.Version, info.GitCommit, info.BuildDate)
				return nil
			}
			return output.WriteObject(writer, format, info)
		},
	}
}
