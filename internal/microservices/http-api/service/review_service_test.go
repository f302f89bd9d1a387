package service

import (
	"context"
	"net/http"
	"testing"

	"titlehub/internal/microservices/http-api/dto"
	"titlehub/internal/microservices/http-api/models"
	"titlehub/internal/microservices/http-api/permission"
	"titlehub/internal/shared/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func intPtr(i int) *int { return &i }

func TestReviewService_Create(t *testing.T) {
	ctx := context.Background()
	reviews := new(MockReviewRepository)
	svc := NewReviewService(reviews, new(MockTitleRepository))

	reviews.On("Create", ctx, mock.MatchedBy(func(r *models.Review) bool {
		return r.AuthorID == plainUser.UserID && r.TitleID == 9 && r.Score == 10
	})).Return(nil)

	review, err := svc.Create(ctx, plainUser, 9, dto.CreateReviewRequest{Text: "great", Score: intPtr(10)})

	require.NoError(t, err)
	assert.Equal(t, 10, review.Score)
	reviews.AssertExpectations(t)
}

func TestReviewService_CreateBounds(t *testing.T) {
	ctx := context.Background()

	for _, score := range []int{0, 10} {
		reviews := new(MockReviewRepository)
		reviews.On("Create", ctx, mock.Anything).Return(nil)
		svc := NewReviewService(reviews, new(MockTitleRepository))

		_, err := svc.Create(ctx, plainUser, 1, dto.CreateReviewRequest{Text: "ok", Score: intPtr(score)})
		assert.NoError(t, err, "score %d", score)
	}

	for _, score := range []int{-1, 11} {
		reviews := new(MockReviewRepository)
		svc := NewReviewService(reviews, new(MockTitleRepository))

		_, err := svc.Create(ctx, plainUser, 1, dto.CreateReviewRequest{Text: "bad", Score: intPtr(score)})
		assert.ErrorIs(t, err, apperr.ErrValidation, "score %d", score)
		reviews.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	}
}

func TestReviewService_CreateDuplicate(t *testing.T) {
	ctx := context.Background()
	reviews := new(MockReviewRepository)
	reviews.On("Create", ctx, mock.Anything).Return(apperr.Conflict("title", "you have already reviewed this title"))
	svc := NewReviewService(reviews, new(MockTitleRepository))

	_, err := svc.Create(ctx, plainUser, 1, dto.CreateReviewRequest{Text: "again", Score: intPtr(5)})

	assert.ErrorIs(t, err, apperr.ErrConflict)
}

func TestReviewService_CreateAnonymous(t *testing.T) {
	svc := NewReviewService(new(MockReviewRepository), new(MockTitleRepository))

	_, err := svc.Create(context.Background(), anonymous, 1, dto.CreateReviewRequest{Text: "x", Score: intPtr(5)})

	assert.ErrorIs(t, err, apperr.ErrUnauthenticated)
}

func TestReviewService_MutationMatrix(t *testing.T) {
	ctx := context.Background()
	staff := permission.Identity{UserID: "staff", IsStaff: true}
	superuser := permission.Identity{UserID: "root", IsSuperuser: true}

	tests := []struct {
		name    string
		actor   permission.Identity
		method  string
		wantErr error
	}{
		{"anonymous patch", anonymous, http.MethodPatch, apperr.ErrUnauthenticated},
		{"anonymous delete", anonymous, http.MethodDelete, apperr.ErrUnauthenticated},
		{"author patch", plainUser, http.MethodPatch, nil},
		{"author delete", plainUser, http.MethodDelete, nil},
		{"other user patch", otherUser, http.MethodPatch, apperr.ErrPermissionDenied},
		{"other user delete", otherUser, http.MethodDelete, apperr.ErrPermissionDenied},
		{"moderator delete", moderator, http.MethodDelete, nil},
		{"admin patch", admin, http.MethodPatch, nil},
		{"staff delete", staff, http.MethodDelete, nil},
		{"superuser delete", superuser, http.MethodDelete, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reviews := new(MockReviewRepository)
			reviews.On("GetByID", ctx, int64(1), int64(2)).
				Return(&models.Review{ID: 2, TitleID: 1, AuthorID: plainUser.UserID, Score: 5, Text: "t"}, nil)
			reviews.On("Update", ctx, mock.Anything).Return(nil)
			reviews.On("Delete", ctx, int64(2)).Return(nil)
			svc := NewReviewService(reviews, new(MockTitleRepository))

			var err error
			if tt.method == http.MethodPatch {
				_, err = svc.Update(ctx, tt.actor, 1, 2, dto.UpdateReviewRequest{Score: intPtr(7)})
			} else {
				err = svc.Delete(ctx, tt.actor, 1, 2)
			}

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				reviews.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
				reviews.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestReviewService_ListUnknownTitle(t *testing.T) {
	ctx := context.Background()
	titles := new(MockTitleRepository)
	titles.On("Exists", ctx, int64(404)).Return(apperr.NotFound("title"))
	svc := NewReviewService(new(MockReviewRepository), titles)

	_, _, err := svc.List(ctx, 404, 1, 10)

	assert.ErrorIs(t, err, apperr.ErrNotFound)
}
