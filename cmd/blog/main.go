package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-blog"
)

var Version = "dev"

var configPath string

func main() {
	rootCmd := &cobra.Command{
		Use:           "blog",
		Short:         "Serve and inspect a Markdown blog",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "YAML config file (BLOG_* env vars override it)")

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(listCmd())
	rootCmd.AddCommand(sitemapCmd())
	rootCmd.AddCommand(envCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadModule(opts ...blog.Option) (*blog.Module, error) {
	cfg, err := blog.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}
	return blog.New(cfg, opts...)
}
