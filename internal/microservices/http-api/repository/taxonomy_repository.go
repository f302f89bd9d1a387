package repository

import (
	"context"
	"strings"

	"titlehub/internal/microservices/http-api/models"
	"titlehub/internal/shared/apperr"

	"gorm.io/gorm"
)

// CategoryRepository stores the categories titles are filed under.
type CategoryRepository interface {
	List(ctx context.Context, search string, page, pageSize int) ([]models.Category, int64, error)
	Create(ctx context.Context, category *models.Category) error
	GetBySlug(ctx context.Context, slug string) (*models.Category, error)
	// DeleteBySlug removes the category; titles filed under it keep existing with no category.
	DeleteBySlug(ctx context.Context, slug string) error
}

// GenreRepository stores the genres titles are tagged with.
type GenreRepository interface {
	List(ctx context.Context, search string, page, pageSize int) ([]models.Genre, int64, error)
	Create(ctx context.Context, genre *models.Genre) error
	GetBySlug(ctx context.Context, slug string) (*models.Genre, error)
	// FindBySlugs resolves every slug or fails with NotFound naming the first missing one.
	FindBySlugs(ctx context.Context, slugs []string) ([]models.Genre, error)
	DeleteBySlug(ctx context.Context, slug string) error
}

type taxonomy interface {
	models.Category | models.Genre
}

// slugRepository serves both categories and genres, which share the (name, slug) shape.
type slugRepository[T taxonomy] struct {
	db     *gorm.DB
	entity string
}

func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &slugRepository[models.Category]{db: db, entity: "category"}
}

func NewGenreRepository(db *gorm.DB) GenreRepository {
	return &slugRepository[models.Genre]{db: db, entity: "genre"}
}

// List returns rows ordered by name, optionally filtered by a case-insensitive name substring.
func (r *slugRepository[T]) List(ctx context.Context, search string, page, pageSize int) ([]T, int64, error) {
	var list []T
	var total int64

	query := r.db.WithContext(ctx).Model(new(T))
	if search = strings.TrimSpace(search); search != "" {
		query = query.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(search)+"%")
	}
	query = query.Session(&gorm.Session{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, translate(err, r.entity)
	}
	if err := query.Order("name").Scopes(paginate(page, pageSize)).Find(&list).Error; err != nil {
		return nil, 0, translate(err, r.entity)
	}
	return list, total, nil
}

func (r *slugRepository[T]) Create(ctx context.Context, item *T) error {
	return translate(r.db.WithContext(ctx).Create(item).Error, r.entity)
}

func (r *slugRepository[T]) GetBySlug(ctx context.Context, slug string) (*T, error) {
	var item T
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&item).Error; err != nil {
		return nil, translate(err, r.entity)
	}
	return &item, nil
}

func (r *slugRepository[T]) FindBySlugs(ctx context.Context, slugs []string) ([]T, error) {
	if len(slugs) == 0 {
		return nil, nil
	}
	var found []T
	if err := r.db.WithContext(ctx).Where("slug IN ?", slugs).Find(&found).Error; err != nil {
		return nil, translate(err, r.entity)
	}

	var seen []string
	if err := r.db.WithContext(ctx).Model(new(T)).Where("slug IN ?", slugs).Pluck("slug", &seen).Error; err != nil {
		return nil, translate(err, r.entity)
	}
	known := make(map[string]bool, len(seen))
	for _, s := range seen {
		known[s] = true
	}
	for _, s := range slugs {
		if !known[s] {
			return nil, apperr.NotFound(r.entity + " " + s)
		}
	}
	return found, nil
}

func (r *slugRepository[T]) DeleteBySlug(ctx context.Context, slug string) error {
	result := r.db.WithContext(ctx).Where("slug = ?", slug).Delete(new(T))
	if result.Error != nil {
		return translate(result.Error, r.entity)
	}
	if result.RowsAffected == 0 {
		return apperr.NotFound(r.entity)
	}
	return nil
}
