package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/mesh-intelligence/airtable/pkg/content"
)

func newContentCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "content",
		Short: "Show the demo content rows and tags by category",
		Args:  userArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.clientConfig()
			if err != nil {
				return err
			}
			svc, err := content.NewService(cfg, a.clientOptions()...)
			if err != nil {
				return userError(err)
			}

			var (
				items []content.Content
				tags  []content.Tag
			)
			g, ctx := errgroup.WithContext(cmd.Context())
			g.Go(func() error {
				var err error
				items, err = svc.FetchContent(ctx)
				return err
			})
			g.Go(func() error {
				var err error
				tags, err = svc.FetchTags(ctx)
				return err
			})
			if err := g.Wait(); err != nil {
				return classify(err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "content:")
			for _, c := range items {
				fmt.Fprintf(out, "  %d\t%s\t%s\t(%s)\n", c.Position, c.Type(), c.Title, c.ID())
			}
			fmt.Fprintln(out, "tags:")
			for _, cat := range content.AllCategories {
				fmt.Fprintf(out, "  %s:", cat)
				for _, t := range content.TagsIn(tags, cat) {
					fmt.Fprintf(out, " %s", t.Name)
				}
				fmt.Fprintln(out)
			}
			return nil
		},
	}
}
