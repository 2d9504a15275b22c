package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-blog"
)

func listCmd() *cobra.Command {
	var (
		tag         string
		asJSON      bool
		diagnostics bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List published posts, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			module, err := loadModule()
			if err != nil {
				return err
			}

			var collection []*blog.Post
			if tag != "" {
				collection, err = module.Posts().ByTag(cmd.Context(), tag)
			} else {
				collection, err = module.Posts().All(cmd.Context())
			}
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				type entry struct {
					Slug     string            `json:"slug"`
					Metadata blog.PostMetadata `json:"metadata"`
				}
				entries := make([]entry, 0, len(collection))
				for _, post := range collection {
					entries = append(entries, entry{Slug: post.Slug, Metadata: post.Metadata})
				}
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(entries)
			}

			w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "DATE\tSLUG\tTITLE")
			for _, post := range collection {
				fmt.Fprintf(w, "%s\t%s\t%s\n", post.Metadata.Date, post.Slug, post.Metadata.Title)
			}
			if err := w.Flush(); err != nil {
				return err
			}

			if diagnostics {
				for _, d := range module.Diagnostics() {
					if d.Err != nil {
						fmt.Fprintf(cmd.ErrOrStderr(), "skipped %s (%s): %v\n", d.Path, d.Kind, d.Err)
					} else {
						fmt.Fprintf(cmd.ErrOrStderr(), "skipped %s (%s)\n", d.Path, d.Kind)
					}
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&tag, "tag", "t", "", "only posts with this tag (case-sensitive)")
	cmd.Flags().BoolVarP(&asJSON, "json", "j", false, "output as JSON")
	cmd.Flags().BoolVar(&diagnostics, "diagnostics", false, "report skipped documents on stderr")
	return cmd
}
