package service

import (
	"context"
	"net/http"

	"titlehub/internal/microservices/http-api/dto"
	"titlehub/internal/microservices/http-api/models"
	"titlehub/internal/microservices/http-api/permission"
	"titlehub/internal/microservices/http-api/repository"
	"titlehub/internal/microservices/http-api/validator"
	"titlehub/internal/shared/apperr"
)

type ReviewService interface {
	List(ctx context.Context, titleID int64, page, pageSize int) ([]models.Review, int64, error)
	Get(ctx context.Context, titleID, reviewID int64) (*models.Review, error)
	Create(ctx context.Context, actor permission.Identity, titleID int64, req dto.CreateReviewRequest) (*models.Review, error)
	Update(ctx context.Context, actor permission.Identity, titleID, reviewID int64, req dto.UpdateReviewRequest) (*models.Review, error)
	Delete(ctx context.Context, actor permission.Identity, titleID, reviewID int64) error
}

type reviewService struct {
	reviews repository.ReviewRepository
	titles  repository.TitleRepository
}

func NewReviewService(reviews repository.ReviewRepository, titles repository.TitleRepository) ReviewService {
	return &reviewService{reviews: reviews, titles: titles}
}

func (s *reviewService) List(ctx context.Context, titleID int64, page, pageSize int) ([]models.Review, int64, error) {
	if err := s.titles.Exists(ctx, titleID); err != nil {
		return nil, 0, err
	}
	return s.reviews.ListByTitle(ctx, titleID, page, pageSize)
}

func (s *reviewService) Get(ctx context.Context, titleID, reviewID int64) (*models.Review, error) {
	return s.reviews.GetByID(ctx, titleID, reviewID)
}

// Create stores the caller's review of a title. A second review by the same author is a conflict.
func (s *reviewService) Create(ctx context.Context, actor permission.Identity, titleID int64, req dto.CreateReviewRequest) (*models.Review, error) {
	if !actor.Authenticated() {
		return nil, apperr.Unauthenticated("authentication credentials were not provided")
	}
	if req.Score == nil {
		return nil, apperr.Validation("score", "this field is required")
	}
	if err := validator.ValidateScore(*req.Score); err != nil {
		return nil, err
	}
	if req.Text == "" {
		return nil, apperr.Validation("text", "this field is required")
	}

	review := &models.Review{
		Text:     req.Text,
		Score:    *req.Score,
		AuthorID: actor.UserID,
		TitleID:  titleID,
	}
	if err := s.reviews.Create(ctx, review); err != nil {
		return nil, err
	}
	return review, nil
}

func (s *reviewService) Update(ctx context.Context, actor permission.Identity, titleID, reviewID int64, req dto.UpdateReviewRequest) (*models.Review, error) {
	review, err := s.reviews.GetByID(ctx, titleID, reviewID)
	if err != nil {
		return nil, err
	}
	if err := authorize(actor, permission.AuthorOrPrivileged(actor, http.MethodPatch, review.AuthorID)); err != nil {
		return nil, err
	}

	if req.Text != nil {
		review.Text = *req.Text
	}
	if req.Score != nil {
		if err := validator.ValidateScore(*req.Score); err != nil {
			return nil, err
		}
		review.Score = *req.Score
	}
	if err := s.reviews.Update(ctx, review); err != nil {
		return nil, err
	}
	return review, nil
}

func (s *reviewService) Delete(ctx context.Context, actor permission.Identity, titleID, reviewID int64) error {
	review, err := s.reviews.GetByID(ctx, titleID, reviewID)
	if err != nil {
		return err
	}
	if err := authorize(actor, permission.AuthorOrPrivileged(actor, http.MethodDelete, review.AuthorID)); err != nil {
		return err
	}
	return s.reviews.Delete(ctx, review.ID)
}
