package repository

import (
	"context"

	"titlehub/internal/microservices/http-api/models"
	"titlehub/internal/shared/apperr"

	"gorm.io/gorm"
)

type ReviewRepository interface {
	// Create inserts review after checking the title exists and the author has not reviewed it yet.
	Create(ctx context.Context, review *models.Review) error
	GetByID(ctx context.Context, titleID, reviewID int64) (*models.Review, error)
	ListByTitle(ctx context.Context, titleID int64, page, pageSize int) ([]models.Review, int64, error)
	Update(ctx context.Context, review *models.Review) error
	// Delete removes the review; its comments cascade in the store.
	Delete(ctx context.Context, reviewID int64) error
}

type reviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) Create(ctx context.Context, review *models.Review) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Title{}).Where("id = ?", review.TitleID).Count(&count).Error; err != nil {
			return translate(err, "title")
		}
		if count == 0 {
			return apperr.NotFound("title")
		}

		if err := tx.Model(&models.Review{}).
			Where("author_id = ? AND title_id = ?", review.AuthorID, review.TitleID).
			Count(&count).Error; err != nil {
			return translate(err, "review")
		}
		if count > 0 {
			return apperr.Conflict("title", "you have already reviewed this title")
		}

		// idx_reviews_author_title rejects a concurrent duplicate that passed the check
		if err := tx.Omit("Author", "Comments").Create(review).Error; err != nil {
			return translate(err, "review")
		}
		return nil
	})
	if err != nil {
		return err
	}
	return translate(r.db.WithContext(ctx).First(&review.Author, "id = ?", review.AuthorID).Error, "user")
}

// GetByID fetches a review scoped to its title so mismatched paths read as not found.
func (r *reviewRepository) GetByID(ctx context.Context, titleID, reviewID int64) (*models.Review, error) {
	var review models.Review
	err := r.db.WithContext(ctx).
		Preload("Author").
		Where("id = ? AND title_id = ?", reviewID, titleID).
		First(&review).Error
	if err != nil {
		return nil, translate(err, "review")
	}
	return &review, nil
}

// ListByTitle returns a title's reviews, oldest first.
func (r *reviewRepository) ListByTitle(ctx context.Context, titleID int64, page, pageSize int) ([]models.Review, int64, error) {
	var reviews []models.Review
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.Review{}).Where("title_id = ?", titleID).Count(&total).Error; err != nil {
		return nil, 0, translate(err, "review")
	}

	err := r.db.WithContext(ctx).
		Where("title_id = ?", titleID).
		Preload("Author").
		Order("pub_date").Order("id").
		Scopes(paginate(page, pageSize)).
		Find(&reviews).Error
	if err != nil {
		return nil, 0, translate(err, "review")
	}
	return reviews, total, nil
}

// Update saves text and score; author, title and pub_date never change after creation.
func (r *reviewRepository) Update(ctx context.Context, review *models.Review) error {
	result := r.db.WithContext(ctx).Model(review).Select("Text", "Score").Updates(review)
	if result.Error != nil {
		return translate(result.Error, "review")
	}
	if result.RowsAffected == 0 {
		return apperr.NotFound("review")
	}
	return nil
}

func (r *reviewRepository) Delete(ctx context.Context, reviewID int64) error {
	result := r.db.WithContext(ctx).Delete(&models.Review{}, reviewID)
	if result.Error != nil {
		return translate(result.Error, "review")
	}
	if result.RowsAffected == 0 {
		return apperr.NotFound("review")
	}
	return nil
}
