package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func NewKeyCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "key",
		Short: "Manage the admin API key stored in the OS keyring",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "set [KEY]",
		Short: "Store the admin API key; reads it from stdin when omitted",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := getRuntime(cmd)
			if err != nil {
				return err
			}
			if rt.keys == nil {
				return errors.New("no key store available")
			}
			var key string
			if len(args) == 1 {
				key = args[0]
			} else {
				line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if err != nil && line == "" {
					return fmt.Errorf("reading key from stdin: %w", err)
				}
				key = strings.TrimSpace(line)
			}
			if err := rt.keys.Set(key); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(rt.Writer(), "Admin key stored")
			return nil
		},
	}, &cobra.Command{
		Use:   "clear",
		Short: "Remove the stored admin API key",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := getRuntime(cmd)
			if err != nil {
				return err
			}
			if rt.keys == nil {
				return errors.New("no key store available")
			}
			if err := rt.keys.Clear(); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(rt.Writer(), "Admin key removed")
			return nil
		},
	})

	return cmd
}
