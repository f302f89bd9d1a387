package command

import (
	"fmt"
	"os"
	"strings"

	"titlehub/internal/microservices/http-api/dto"

	"github.com/fatih/color"
)

var (
	success = color.New(color.FgGreen).SprintFunc()
	heading = color.New(color.FgCyan, color.Bold).SprintFunc()
	faint   = color.New(color.FgHiBlack).SprintFunc()
	warning = color.New(color.FgYellow).SprintFunc()
)

func printError(err error) {
	fmt.Fprintln(os.Stderr, color.RedString("✗ %v", err))
}

func printSuccess(format string, args ...any) {
	fmt.Println(success("✓ " + fmt.Sprintf(format, args...)))
}

func formatRating(r *float64) string {
	if r == nil {
		return faint("no rating yet")
	}
	return warning(fmt.Sprintf("%.1f/10", *r))
}

func printTitle(t dto.TitleResponse) {
	fmt.Printf("%s %s (%d)\n", heading(fmt.Sprintf("#%d", t.ID)), t.Name, t.Year)
	fmt.Printf("  Rating:   %s\n", formatRating(t.Rating))
	if t.Category != nil {
		fmt.Printf("  Category: %s\n", t.Category.Name)
	}
	if len(t.Genre) > 0 {
		names := make([]string, 0, len(t.Genre))
		for _, g := range t.Genre {
			names = append(names, g.Name)
		}
		fmt.Printf("  Genres:   %s\n", strings.Join(names, ", "))
	}
	if t.Description != "" {
		fmt.Printf("  %s\n", t.Description)
	}
}

func printPageFooter(page, totalPages int, total int64) {
	fmt.Println(faint(fmt.Sprintf("page %d of %d, %d total", page, max(totalPages, 1), total)))
}
