package validator

import (
	"regexp"
	"time"

	"titlehub/internal/shared/apperr"
)

const (
	MinScore = 0
	MaxScore = 10

	maxNameLength = 256
	maxSlugLength = 50
)

var slugPattern = regexp.MustCompile(`^[-a-zA-Z0-9_]+$`)

// ValidateYear rejects years before 1 and years that have not arrived yet.
func ValidateYear(year int) error {
	return validateYearAt(year, time.Now())
}

func validateYearAt(year int, now time.Time) error {
	if year > now.Year() {
		return apperr.Validation("year", "%d has not yet arrived", year)
	}
	if year < 1 {
		return apperr.Validation("year", "year must be positive (%d)", year)
	}
	return nil
}

// ValidateScore accepts scores in [MinScore, MaxScore].
func ValidateScore(score int) error {
	if score < MinScore || score > MaxScore {
		return apperr.Validation("score", "must be between %d and %d, got %d", MinScore, MaxScore, score)
	}
	return nil
}

// ValidateSlug checks the URL-safe slug format shared by categories and genres.
func ValidateSlug(slug string) error {
	if slug == "" || len(slug) > maxSlugLength {
		return apperr.Validation("slug", "must be 1 to %d characters", maxSlugLength)
	}
	if !slugPattern.MatchString(slug) {
		return apperr.Validation("slug", "may contain only letters, numbers, underscores or hyphens")
	}
	return nil
}

// ValidateName checks a required display name.
func ValidateName(name string) error {
	if name == "" {
		return apperr.Validation("name", "is required")
	}
	if len(name) > maxNameLength {
		return apperr.Validation("name", "must be at most %d characters", maxNameLength)
	}
	return nil
}
