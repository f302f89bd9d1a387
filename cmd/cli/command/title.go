package command

import (
	"fmt"
	"strconv"

	"titlehub/cmd/cli/command/client"
	"titlehub/internal/microservices/http-api/dto"

	"github.com/spf13/cobra"
)

var titleCmd = &cobra.Command{
	Use:   "title",
	Short: "Browse and manage titles",
}

var listTitlesCmd = &cobra.Command{
	Use:   "list",
	Short: "List titles, optionally filtered",
	RunE: func(cmd *cobra.Command, args []string) error {
		var filter client.TitleFilter
		filter.Category, _ = cmd.Flags().GetString("category")
		filter.Genre, _ = cmd.Flags().GetString("genre")
		filter.Name, _ = cmd.Flags().GetString("name")
		filter.Year, _ = cmd.Flags().GetInt("year")
		filter.Page, _ = cmd.Flags().GetInt("page")

		ctx, cancel := commandContext(cmd)
		defer cancel()

		page, err := publicClient(ctx).ListTitles(ctx, filter)
		if err != nil {
			return fmt.Errorf("failed to list titles: %w", err)
		}
		if len(page.Data) == 0 {
			fmt.Println("No titles found.")
			return nil
		}
		for _, t := range page.Data {
			printTitle(t)
		}
		printPageFooter(page.Page, page.TotalPages, page.Total)
		return nil
	},
}

var getTitleCmd = &cobra.Command{
	Use:   "get [id]",
	Short: "Show one title with its rating",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0], "title")
		if err != nil {
			return err
		}
		ctx, cancel := commandContext(cmd)
		defer cancel()

		title, err := publicClient(ctx).GetTitle(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to get title: %w", err)
		}
		printTitle(*title)
		return nil
	},
}

var createTitleCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a title (admin only)",
	RunE: func(cmd *cobra.Command, args []string) error {
		var req dto.CreateTitleRequest
		req.Name, _ = cmd.Flags().GetString("name")
		req.Year, _ = cmd.Flags().GetInt("year")
		req.Description, _ = cmd.Flags().GetString("description")
		req.Genre, _ = cmd.Flags().GetStringSlice("genre")
		if category, _ := cmd.Flags().GetString("category"); category != "" {
			req.Category = &category
		}

		ctx, cancel := commandContext(cmd)
		defer cancel()

		c, err := authedClient(ctx)
		if err != nil {
			return err
		}
		title, err := c.CreateTitle(ctx, &req)
		if err != nil {
			return fmt.Errorf("failed to create title: %w", err)
		}
		printSuccess("Title created")
		printTitle(*title)
		return nil
	},
}

var deleteTitleCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Delete a title with its reviews and comments (admin only)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0], "title")
		if err != nil {
			return err
		}
		ctx, cancel := commandContext(cmd)
		defer cancel()

		c, err := authedClient(ctx)
		if err != nil {
			return err
		}
		if err := c.DeleteTitle(ctx, id); err != nil {
			return fmt.Errorf("failed to delete title: %w", err)
		}
		printSuccess("Title %d deleted", id)
		return nil
	},
}

func parseID(s, what string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("invalid %s ID %q", what, s)
	}
	return id, nil
}

func init() {
	titleCmd.AddCommand(listTitlesCmd, getTitleCmd, createTitleCmd, deleteTitleCmd)

	listTitlesCmd.Flags().String("category", "", "Category slug")
	listTitlesCmd.Flags().String("genre", "", "Genre slug")
	listTitlesCmd.Flags().String("name", "", "Part of the title name")
	listTitlesCmd.Flags().Int("year", 0, "Release year")
	listTitlesCmd.Flags().Int("page", 1, "Page number")

	createTitleCmd.Flags().StringP("name", "n", "", "Title name")
	createTitleCmd.Flags().IntP("year", "y", 0, "Release year")
	createTitleCmd.Flags().StringP("description", "d", "", "Description")
	createTitleCmd.Flags().StringP("category", "c", "", "Category slug")
	createTitleCmd.Flags().StringSliceP("genre", "g", nil, "Genre slugs (repeat or comma separate)")
	createTitleCmd.MarkFlagRequired("name")
	createTitleCmd.MarkFlagRequired("year")
}
