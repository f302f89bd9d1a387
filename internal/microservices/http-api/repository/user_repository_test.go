package repository

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"titlehub/internal/microservices/http-api/models"
	"titlehub/internal/shared/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository_RegisterRejectsDuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	first := models.NewUser("a@example.com", "a@example.com")
	first.Password = "hash"
	require.NoError(t, repo.Register(ctx, first))

	second := models.NewUser("other", "a@example.com")
	second.Password = "hash"
	err := repo.Register(ctx, second)
	assert.ErrorIs(t, err, apperr.ErrConflict)
	assert.Equal(t, "email", apperr.FieldOf(err))
}

func TestUserRepository_CreateTranslatesUniqueIndex(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)
	seedUser(t, db, "alice")

	dup := models.NewUser("alice", "different@example.com")
	dup.Password = "hash"
	err := repo.Create(context.Background(), dup)
	assert.ErrorIs(t, err, apperr.ErrConflict)
}

func TestUserRepository_EmailIndexBacksRegister(t *testing.T) {
	db := newTestDB(t)
	seedUser(t, db, "alice")

	// bypass Register's checks; the index alone must refuse the row
	dup := models.NewUser("someone-else", "alice@example.com")
	dup.Password = "hash"
	err := translate(db.Create(dup).Error, "user")

	assert.ErrorIs(t, err, apperr.ErrConflict)
}

func TestUserRepository_ConcurrentRegister(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)

	const writers = 4
	errs := make([]error, writers)
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			u := models.NewUser(fmt.Sprintf("racer-%d", i), "race@example.com")
			u.Password = "hash"
			errs[i] = repo.Register(context.Background(), u)
		}(i)
	}
	wg.Wait()

	registered := 0
	for _, err := range errs {
		if err == nil {
			registered++
			continue
		}
		assert.ErrorIs(t, err, apperr.ErrConflict)
	}
	assert.Equal(t, 1, registered)

	var count int64
	require.NoError(t, db.Model(&models.User{}).Where("email = ?", "race@example.com").Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestUserRepository_FindAndList(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()
	seedUser(t, db, "carol")
	seedUser(t, db, "alice")
	seedUser(t, db, "bob")

	found, err := repo.FindByEmail(ctx, "bob@example.com")
	require.NoError(t, err)
	assert.Equal(t, "bob", found.Username)
	assert.Equal(t, models.RoleUser, found.Role)

	_, err = repo.FindByUsername(ctx, "nobody")
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	users, total, err := repo.List(ctx, "", 1, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, users, 2)
	assert.Equal(t, "alice", users[0].Username)
	assert.Equal(t, "bob", users[1].Username)

	users, total, err = repo.List(ctx, "CAR", 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, "carol", users[0].Username)
}

func TestUserRepository_UpdateAndMarkConfirmed(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()
	u := seedUser(t, db, "dave")

	u.Role = models.RoleModerator
	u.Bio = "hello"
	require.NoError(t, repo.Update(ctx, u))

	first := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, repo.MarkConfirmed(ctx, u.ID, first))
	require.NoError(t, repo.MarkConfirmed(ctx, u.ID, first.Add(time.Hour)))

	got, err := repo.FindByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RoleModerator, got.Role)
	assert.Equal(t, "hello", got.Bio)
	require.NotNil(t, got.ConfirmedAt)
	assert.True(t, got.ConfirmedAt.Equal(first))
}

func TestUserRepository_DeleteCascades(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	author := seedUser(t, db, "erin")
	title := seedTitle(t, db, "Dune", 1965, nil)
	review := seedReview(t, db, author, title, 9)
	require.NoError(t, NewCommentRepository(db).Create(ctx, &models.Comment{Text: "c", AuthorID: author.ID, ReviewID: review.ID}))
	require.NoError(t, NewRefreshTokenRepository(db).Create(ctx, &models.RefreshToken{
		ID: "rt-1", UserID: author.ID, Token: "tok", ExpiresAt: time.Now().Add(time.Hour),
	}))

	require.NoError(t, repo.DeleteByUsername(ctx, "erin"))

	var count int64
	db.Model(&models.Review{}).Count(&count)
	assert.Zero(t, count)
	db.Model(&models.Comment{}).Count(&count)
	assert.Zero(t, count)
	db.Model(&models.RefreshToken{}).Count(&count)
	assert.Zero(t, count)

	assert.ErrorIs(t, repo.DeleteByUsername(ctx, "erin"), apperr.ErrNotFound)
}

func TestRefreshTokenRepository_Lifecycle(t *testing.T) {
	db := newTestDB(t)
	repo := NewRefreshTokenRepository(db)
	ctx := context.Background()
	u := seedUser(t, db, "frank")
	now := time.Now()

	require.NoError(t, repo.Create(ctx, &models.RefreshToken{ID: "live", UserID: u.ID, Token: "live-token", ExpiresAt: now.Add(time.Hour)}))
	require.NoError(t, repo.Create(ctx, &models.RefreshToken{ID: "old", UserID: u.ID, Token: "old-token", ExpiresAt: now.Add(-time.Hour)}))

	require.NoError(t, repo.Revoke(ctx, "live"))
	got, err := repo.FindByToken(ctx, "live-token")
	require.NoError(t, err)
	assert.True(t, got.Revoked)

	removed, err := repo.DeleteExpired(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, int64(2), removed)

	_, err = repo.FindByToken(ctx, "old-token")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}
