package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-blog/internal/runtimeconfig"
)

func envCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "env",
		Short: "Describe the environment variables the blog reads",
		RunE: func(cmd *cobra.Command, args []string) error {
			usage, err := runtimeconfig.EnvUsage()
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), usage)
			return err
		},
	}
}
