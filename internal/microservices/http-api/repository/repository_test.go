package repository

import (
	"context"
	"fmt"
	"testing"

	"titlehub/database"
	"titlehub/internal/microservices/http-api/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// newTestDB returns a migrated in-memory SQLite database private to the test.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", uuid.NewString())
	db, err := database.Open("sqlite", dsn, false)
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })
	return db
}

func seedUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	u := models.NewUser(username, username+"@example.com")
	u.Password = "hash"
	require.NoError(t, db.Create(u).Error)
	return u
}

func seedCategory(t *testing.T, db *gorm.DB, slug string) *models.Category {
	t.Helper()
	c := &models.Category{Name: "Category " + slug, Slug: slug}
	require.NoError(t, db.Create(c).Error)
	return c
}

func seedGenre(t *testing.T, db *gorm.DB, slug string) *models.Genre {
	t.Helper()
	g := &models.Genre{Name: "Genre " + slug, Slug: slug}
	require.NoError(t, db.Create(g).Error)
	return g
}

func seedTitle(t *testing.T, db *gorm.DB, name string, year int, category *models.Category, genres ...models.Genre) *models.Title {
	t.Helper()
	title := &models.Title{Name: name, Year: year, Genres: genres}
	if category != nil {
		title.CategoryID = &category.ID
	}
	require.NoError(t, NewTitleRepository(db).Create(context.Background(), title))
	return title
}

func seedReview(t *testing.T, db *gorm.DB, author *models.User, title *models.Title, score int) *models.Review {
	t.Helper()
	r := &models.Review{Text: "review", Score: score, AuthorID: author.ID, TitleID: title.ID}
	require.NoError(t, NewReviewRepository(db).Create(context.Background(), r))
	return r
}
