package service

import (
	"context"
	"net/http"
	"strings"

	"titlehub/internal/microservices/http-api/dto"
	"titlehub/internal/microservices/http-api/models"
	"titlehub/internal/microservices/http-api/permission"
	"titlehub/internal/microservices/http-api/repository"
	"titlehub/internal/shared/apperr"
)

// CommentService manages comments under /titles/:title_id/reviews/:review_id.
// Every call first resolves the review within its title, so a review id under
// the wrong title reads as not found.
type CommentService interface {
	List(ctx context.Context, titleID, reviewID int64, page, pageSize int) ([]models.Comment, int64, error)
	Get(ctx context.Context, titleID, reviewID, commentID int64) (*models.Comment, error)
	Create(ctx context.Context, actor permission.Identity, titleID, reviewID int64, req dto.CreateCommentRequest) (*models.Comment, error)
	Update(ctx context.Context, actor permission.Identity, titleID, reviewID, commentID int64, req dto.UpdateCommentRequest) (*models.Comment, error)
	Delete(ctx context.Context, actor permission.Identity, titleID, reviewID, commentID int64) error
}

type commentService struct {
	comments repository.CommentRepository
	reviews  repository.ReviewRepository
}

func NewCommentService(comments repository.CommentRepository, reviews repository.ReviewRepository) CommentService {
	return &commentService{comments: comments, reviews: reviews}
}

func (s *commentService) List(ctx context.Context, titleID, reviewID int64, page, pageSize int) ([]models.Comment, int64, error) {
	if _, err := s.reviews.GetByID(ctx, titleID, reviewID); err != nil {
		return nil, 0, err
	}
	return s.comments.ListByReview(ctx, reviewID, page, pageSize)
}

func (s *commentService) Get(ctx context.Context, titleID, reviewID, commentID int64) (*models.Comment, error) {
	if _, err := s.reviews.GetByID(ctx, titleID, reviewID); err != nil {
		return nil, err
	}
	return s.comments.GetByID(ctx, reviewID, commentID)
}

func (s *commentService) Create(ctx context.Context, actor permission.Identity, titleID, reviewID int64, req dto.CreateCommentRequest) (*models.Comment, error) {
	if !actor.Authenticated() {
		return nil, apperr.Unauthenticated("authentication credentials were not provided")
	}
	text := strings.TrimSpace(req.Text)
	if text == "" {
		return nil, apperr.Validation("text", "this field is required")
	}
	if _, err := s.reviews.GetByID(ctx, titleID, reviewID); err != nil {
		return nil, err
	}

	comment := &models.Comment{Text: text, AuthorID: actor.UserID, ReviewID: reviewID}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *commentService) Update(ctx context.Context, actor permission.Identity, titleID, reviewID, commentID int64, req dto.UpdateCommentRequest) (*models.Comment, error) {
	comment, err := s.Get(ctx, titleID, reviewID, commentID)
	if err != nil {
		return nil, err
	}
	if err := authorize(actor, permission.AuthorOrPrivileged(actor, http.MethodPatch, comment.AuthorID)); err != nil {
		return nil, err
	}
	text := strings.TrimSpace(req.Text)
	if text == "" {
		return nil, apperr.Validation("text", "this field is required")
	}
	comment.Text = text
	if err := s.comments.Update(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *commentService) Delete(ctx context.Context, actor permission.Identity, titleID, reviewID, commentID int64) error {
	comment, err := s.Get(ctx, titleID, reviewID, commentID)
	if err != nil {
		return err
	}
	if err := authorize(actor, permission.AuthorOrPrivileged(actor, http.MethodDelete, comment.AuthorID)); err != nil {
		return err
	}
	return s.comments.Delete(ctx, comment.ID)
}
