package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func sitemapCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sitemap",
		Short: "Print the sitemap for the configured base URL",
		RunE: func(cmd *cobra.Command, args []string) error {
			module, err := loadModule()
			if err != nil {
				return err
			}
			if module.Config().Site.BaseURL == "" {
				return fmt.Errorf("sitemap: site.base_url (BLOG_BASE_URL) is required outside a request")
			}
			sitemap, err := module.Sitemap(cmd.Context())
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), sitemap)
			return err
		},
	}
}
