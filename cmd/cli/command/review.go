package command

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var reviewCmd = &cobra.Command{
	Use:   "review",
	Short: "Read and write reviews of a title",
}

var listReviewsCmd = &cobra.Command{
	Use:   "list [title-id]",
	Short: "List the reviews of a title",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		titleID, err := parseID(args[0], "title")
		if err != nil {
			return err
		}
		ctx, cancel := commandContext(cmd)
		defer cancel()

		page, err := publicClient(ctx).ListReviews(ctx, titleID)
		if err != nil {
			return fmt.Errorf("failed to list reviews: %w", err)
		}
		if len(page.Data) == 0 {
			fmt.Println("No reviews yet.")
			return nil
		}
		for _, r := range page.Data {
			fmt.Printf("%s %s %s\n", heading(fmt.Sprintf("#%d", r.ID)), warning(fmt.Sprintf("%d/10", r.Score)), faint("by "+r.Author+" on "+r.PubDate.Format("2006-01-02")))
			fmt.Printf("  %s\n", r.Text)
			fmt.Println(faint(strings.Repeat("-", 50)))
		}
		printPageFooter(page.Page, page.TotalPages, page.Total)
		return nil
	},
}

var addReviewCmd = &cobra.Command{
	Use:   "add [title-id]",
	Short: "Review a title (one review per title)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		titleID, err := parseID(args[0], "title")
		if err != nil {
			return err
		}
		text, _ := cmd.Flags().GetString("text")
		score, _ := cmd.Flags().GetInt("score")
		if score < 0 || score > 10 {
			return fmt.Errorf("score must be between 0 and 10")
		}

		ctx, cancel := commandContext(cmd)
		defer cancel()

		c, err := authedClient(ctx)
		if err != nil {
			return err
		}
		review, err := c.CreateReview(ctx, titleID, text, score)
		if err != nil {
			return fmt.Errorf("failed to add review: %w", err)
		}
		printSuccess("Review #%d added", review.ID)
		return nil
	},
}

var deleteReviewCmd = &cobra.Command{
	Use:   "delete [title-id] [review-id]",
	Short: "Delete a review you wrote",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		titleID, err := parseID(args[0], "title")
		if err != nil {
			return err
		}
		reviewID, err := parseID(args[1], "review")
		if err != nil {
			return err
		}
		ctx, cancel := commandContext(cmd)
		defer cancel()

		c, err := authedClient(ctx)
		if err != nil {
			return err
		}
		if err := c.DeleteReview(ctx, titleID, reviewID); err != nil {
			return fmt.Errorf("failed to delete review: %w", err)
		}
		printSuccess("Review #%d deleted", reviewID)
		return nil
	},
}

var commentCmd = &cobra.Command{
	Use:   "comment",
	Short: "Read and write comments on a review",
}

var listCommentsCmd = &cobra.Command{
	Use:   "list [title-id] [review-id]",
	Short: "List the comments on a review",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		titleID, err := parseID(args[0], "title")
		if err != nil {
			return err
		}
		reviewID, err := parseID(args[1], "review")
		if err != nil {
			return err
		}
		ctx, cancel := commandContext(cmd)
		defer cancel()

		page, err := publicClient(ctx).ListComments(ctx, titleID, reviewID)
		if err != nil {
			return fmt.Errorf("failed to list comments: %w", err)
		}
		if len(page.Data) == 0 {
			fmt.Println("No comments yet.")
			return nil
		}
		for _, c := range page.Data {
			fmt.Printf("%s %s\n  %s\n", heading(c.Author), faint(c.PubDate.Format("2006-01-02 15:04")), c.Text)
		}
		printPageFooter(page.Page, page.TotalPages, page.Total)
		return nil
	},
}

var addCommentCmd = &cobra.Command{
	Use:   "add [title-id] [review-id]",
	Short: "Comment on a review",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		titleID, err := parseID(args[0], "title")
		if err != nil {
			return err
		}
		reviewID, err := parseID(args[1], "review")
		if err != nil {
			return err
		}
		text, _ := cmd.Flags().GetString("text")

		ctx, cancel := commandContext(cmd)
		defer cancel()

		c, err := authedClient(ctx)
		if err != nil {
			return err
		}
		comment, err := c.CreateComment(ctx, titleID, reviewID, text)
		if err != nil {
			return fmt.Errorf("failed to add comment: %w", err)
		}
		printSuccess("Comment #%d added", comment.ID)
		return nil
	},
}

func init() {
	reviewCmd.AddCommand(listReviewsCmd, addReviewCmd, deleteReviewCmd)
	addReviewCmd.Flags().StringP("text", "t", "", "Review text")
	addReviewCmd.Flags().IntP("score", "s", 0, "Score from 0 to 10")
	addReviewCmd.MarkFlagRequired("text")
	addReviewCmd.MarkFlagRequired("score")

	commentCmd.AddCommand(listCommentsCmd, addCommentCmd)
	addCommentCmd.Flags().StringP("text", "t", "", "Comment text")
	addCommentCmd.MarkFlagRequired("text")
}
