package repository

import (
	"context"
	"strings"

	"titlehub/internal/microservices/http-api/models"
	"titlehub/internal/microservices/http-api/rating"
	"titlehub/internal/shared/apperr"

	"gorm.io/gorm"
)

// TitleFilter narrows a title listing. Zero fields are ignored.
type TitleFilter struct {
	CategorySlug string
	GenreSlug    string
	Name         string
	Year         int
}

type TitleRepository interface {
	List(ctx context.Context, filter TitleFilter, page, pageSize int) ([]models.TitleWithRating, int64, error)
	GetByID(ctx context.Context, id int64) (*models.TitleWithRating, error)
	Exists(ctx context.Context, id int64) error
	Create(ctx context.Context, title *models.Title) error
	// Update saves the scalar columns and category; genres are replaced only when replaceGenres is set.
	Update(ctx context.Context, title *models.Title, replaceGenres bool) error
	// Delete removes the title; its reviews and their comments cascade in the store.
	Delete(ctx context.Context, id int64) error
}

type titleRepository struct {
	db *gorm.DB
}

func NewTitleRepository(db *gorm.DB) TitleRepository {
	return &titleRepository{db: db}
}

// scoreAggregate is one row of the per-title review aggregate.
type scoreAggregate struct {
	TitleID    int64
	ScoreSum   int64
	ScoreCount int64
}

func (r *titleRepository) List(ctx context.Context, filter TitleFilter, page, pageSize int) ([]models.TitleWithRating, int64, error) {
	var titles []models.Title
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Title{}).Scopes(filter.apply).Session(&gorm.Session{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, translate(err, "title")
	}
	if err := query.
		Preload("Category").
		Preload("Genres", func(db *gorm.DB) *gorm.DB { return db.Order("genres.name") }).
		Order("titles.name").Order("titles.id").
		Scopes(paginate(page, pageSize)).
		Find(&titles).Error; err != nil {
		return nil, 0, translate(err, "title")
	}

	withRating, err := r.attachRatings(ctx, titles)
	if err != nil {
		return nil, 0, err
	}
	return withRating, total, nil
}

func (r *titleRepository) GetByID(ctx context.Context, id int64) (*models.TitleWithRating, error) {
	var title models.Title
	if err := r.db.WithContext(ctx).
		Preload("Category").
		Preload("Genres", func(db *gorm.DB) *gorm.DB { return db.Order("genres.name") }).
		First(&title, id).Error; err != nil {
		return nil, translate(err, "title")
	}
	withRating, err := r.attachRatings(ctx, []models.Title{title})
	if err != nil {
		return nil, err
	}
	return &withRating[0], nil
}

func (r *titleRepository) Exists(ctx context.Context, id int64) error {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Title{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return translate(err, "title")
	}
	if count == 0 {
		return apperr.NotFound("title")
	}
	return nil
}

func (r *titleRepository) Create(ctx context.Context, title *models.Title) error {
	// genres already exist; only the join rows are written
	err := r.db.WithContext(ctx).
		Omit("Category", "Genres.*").
		Create(title).Error
	return translate(err, "title")
}

func (r *titleRepository) Update(ctx context.Context, title *models.Title, replaceGenres bool) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(title).
			Select("Name", "Year", "Description", "CategoryID").
			Updates(title)
		if result.Error != nil {
			return translate(result.Error, "title")
		}
		if result.RowsAffected == 0 {
			return apperr.NotFound("title")
		}
		if replaceGenres {
			if err := tx.Model(title).Association("Genres").Replace(title.Genres); err != nil {
				return translate(err, "title")
			}
		}
		return nil
	})
}

func (r *titleRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&models.Title{}, id)
	if result.Error != nil {
		return translate(result.Error, "title")
	}
	if result.RowsAffected == 0 {
		return apperr.NotFound("title")
	}
	return nil
}

// attachRatings reads SUM/COUNT of review scores for the given titles in one grouped query.
func (r *titleRepository) attachRatings(ctx context.Context, titles []models.Title) ([]models.TitleWithRating, error) {
	out := make([]models.TitleWithRating, len(titles))
	if len(titles) == 0 {
		return out, nil
	}

	ids := make([]int64, len(titles))
	for i, t := range titles {
		ids[i] = t.ID
	}

	var aggregates []scoreAggregate
	if err := r.db.WithContext(ctx).Model(&models.Review{}).
		Select("title_id, SUM(score) AS score_sum, COUNT(*) AS score_count").
		Where("title_id IN ?", ids).
		Group("title_id").
		Scan(&aggregates).Error; err != nil {
		return nil, translate(err, "review")
	}

	byTitle := make(map[int64]scoreAggregate, len(aggregates))
	for _, a := range aggregates {
		byTitle[a.TitleID] = a
	}
	for i, t := range titles {
		a := byTitle[t.ID]
		out[i] = models.TitleWithRating{Title: t, Rating: rating.FromAggregate(a.ScoreSum, a.ScoreCount)}
	}
	return out, nil
}

func (f TitleFilter) apply(db *gorm.DB) *gorm.DB {
	if f.CategorySlug != "" {
		db = db.Where("titles.category_id IN (?)",
			db.Session(&gorm.Session{NewDB: true}).Model(&models.Category{}).Select("id").Where("slug = ?", f.CategorySlug))
	}
	if f.GenreSlug != "" {
		db = db.Where("titles.id IN (?)",
			db.Session(&gorm.Session{NewDB: true}).Table("title_genres").
				Select("title_genres.title_id").
				Joins("JOIN genres ON genres.id = title_genres.genre_id").
				Where("genres.slug = ?", f.GenreSlug))
	}
	if name := strings.TrimSpace(f.Name); name != "" {
		db = db.Where("LOWER(titles.name) LIKE ?", "%"+strings.ToLower(name)+"%")
	}
	if f.Year != 0 {
		db = db.Where("titles.year = ?", f.Year)
	}
	return db
}
