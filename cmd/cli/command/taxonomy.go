package command

import (
	"context"
	"fmt"

	"titlehub/cmd/cli/command/client"
	"titlehub/internal/microservices/http-api/dto"

	"github.com/spf13/cobra"
)

// taxonomyOps are the client calls behind the category and genre commands.
type taxonomyOps struct {
	list   func(c *client.HTTPClient, ctx context.Context, search string) (*dto.Paginated[dto.CategoryResponse], error)
	create func(c *client.HTTPClient, ctx context.Context, name, slug string) (*dto.CategoryResponse, error)
	remove func(c *client.HTTPClient, ctx context.Context, slug string) error
}

var (
	categoryCmd = newTaxonomyCmd("category", "categories", taxonomyOps{
		list:   (*client.HTTPClient).ListCategories,
		create: (*client.HTTPClient).CreateCategory,
		remove: (*client.HTTPClient).DeleteCategory,
	})
	genreCmd = newTaxonomyCmd("genre", "genres", taxonomyOps{
		list:   (*client.HTTPClient).ListGenres,
		create: (*client.HTTPClient).CreateGenre,
		remove: (*client.HTTPClient).DeleteGenre,
	})
)

func newTaxonomyCmd(singular, plural string, ops taxonomyOps) *cobra.Command {
	root := &cobra.Command{
		Use:   singular,
		Short: fmt.Sprintf("List and manage %s", plural),
	}

	list := &cobra.Command{
		Use:   "list",
		Short: fmt.Sprintf("List %s", plural),
		RunE: func(cmd *cobra.Command, args []string) error {
			search, _ := cmd.Flags().GetString("search")
			ctx, cancel := commandContext(cmd)
			defer cancel()

			page, err := ops.list(publicClient(ctx), ctx, search)
			if err != nil {
				return fmt.Errorf("failed to list %s: %w", plural, err)
			}
			if len(page.Data) == 0 {
				fmt.Printf("No %s found.\n", plural)
				return nil
			}
			for _, item := range page.Data {
				fmt.Printf("%-30s %s\n", item.Name, faint(item.Slug))
			}
			printPageFooter(page.Page, page.TotalPages, page.Total)
			return nil
		},
	}
	list.Flags().String("search", "", "Filter by name")

	create := &cobra.Command{
		Use:   "create [name] [slug]",
		Short: fmt.Sprintf("Create a %s (admin only)", singular),
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := commandContext(cmd)
			defer cancel()

			c, err := authedClient(ctx)
			if err != nil {
				return err
			}
			item, err := ops.create(c, ctx, args[0], args[1])
			if err != nil {
				return fmt.Errorf("failed to create %s: %w", singular, err)
			}
			printSuccess("Created %s %s (%s)", singular, item.Name, item.Slug)
			return nil
		},
	}

	remove := &cobra.Command{
		Use:   "delete [slug]",
		Short: fmt.Sprintf("Delete a %s (admin only)", singular),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := commandContext(cmd)
			defer cancel()

			c, err := authedClient(ctx)
			if err != nil {
				return err
			}
			if err := ops.remove(c, ctx, args[0]); err != nil {
				return fmt.Errorf("failed to delete %s: %w", singular, err)
			}
			printSuccess("Deleted %s %s", singular, args[0])
			return nil
		},
	}

	root.AddCommand(list, create, remove)
	return root
}
