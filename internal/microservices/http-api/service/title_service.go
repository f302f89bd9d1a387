package service

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"titlehub/internal/microservices/http-api/dto"
	"titlehub/internal/microservices/http-api/models"
	"titlehub/internal/microservices/http-api/permission"
	"titlehub/internal/microservices/http-api/repository"
	"titlehub/internal/microservices/http-api/validator"
	"titlehub/internal/shared/apperr"
)

type TitleService interface {
	List(ctx context.Context, filter repository.TitleFilter, page, pageSize int) ([]models.TitleWithRating, int64, error)
	Get(ctx context.Context, id int64) (*models.TitleWithRating, error)
	Create(ctx context.Context, actor permission.Identity, req dto.CreateTitleRequest) (*models.TitleWithRating, error)
	Update(ctx context.Context, actor permission.Identity, id int64, req dto.UpdateTitleRequest) (*models.TitleWithRating, error)
	Delete(ctx context.Context, actor permission.Identity, id int64) error
}

type titleService struct {
	titles     repository.TitleRepository
	categories repository.CategoryRepository
	genres     repository.GenreRepository
}

func NewTitleService(titles repository.TitleRepository, categories repository.CategoryRepository, genres repository.GenreRepository) TitleService {
	return &titleService{titles: titles, categories: categories, genres: genres}
}

func (s *titleService) List(ctx context.Context, filter repository.TitleFilter, page, pageSize int) ([]models.TitleWithRating, int64, error) {
	return s.titles.List(ctx, filter, page, pageSize)
}

func (s *titleService) Get(ctx context.Context, id int64) (*models.TitleWithRating, error) {
	return s.titles.GetByID(ctx, id)
}

func (s *titleService) Create(ctx context.Context, actor permission.Identity, req dto.CreateTitleRequest) (*models.TitleWithRating, error) {
	if err := authorize(actor, permission.AdminOrReadOnly(actor, http.MethodPost)); err != nil {
		return nil, err
	}

	title := &models.Title{
		Name:        strings.TrimSpace(req.Name),
		Year:        req.Year,
		Description: req.Description,
	}
	if err := validateTitle(title); err != nil {
		return nil, err
	}
	if err := s.resolveCategory(ctx, title, req.Category); err != nil {
		return nil, err
	}
	if err := s.resolveGenres(ctx, title, req.Genre); err != nil {
		return nil, err
	}

	if err := s.titles.Create(ctx, title); err != nil {
		return nil, err
	}
	return s.titles.GetByID(ctx, title.ID)
}

func (s *titleService) Update(ctx context.Context, actor permission.Identity, id int64, req dto.UpdateTitleRequest) (*models.TitleWithRating, error) {
	if err := authorize(actor, permission.AdminOrReadOnly(actor, http.MethodPatch)); err != nil {
		return nil, err
	}
	current, err := s.titles.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	title := current.Title
	if req.Name != nil {
		title.Name = strings.TrimSpace(*req.Name)
	}
	if req.Year != nil {
		title.Year = *req.Year
	}
	if req.Description != nil {
		title.Description = *req.Description
	}
	if err := validateTitle(&title); err != nil {
		return nil, err
	}
	if req.Category != nil {
		if err := s.resolveCategory(ctx, &title, req.Category); err != nil {
			return nil, err
		}
	}
	replaceGenres := req.Genre != nil
	if replaceGenres {
		if err := s.resolveGenres(ctx, &title, *req.Genre); err != nil {
			return nil, err
		}
	}

	if err := s.titles.Update(ctx, &title, replaceGenres); err != nil {
		return nil, err
	}
	return s.titles.GetByID(ctx, id)
}

func (s *titleService) Delete(ctx context.Context, actor permission.Identity, id int64) error {
	if err := authorize(actor, permission.AdminOrReadOnly(actor, http.MethodDelete)); err != nil {
		return err
	}
	return s.titles.Delete(ctx, id)
}

func validateTitle(t *models.Title) error {
	if err := validator.ValidateName(t.Name); err != nil {
		return err
	}
	return validator.ValidateYear(t.Year)
}

// resolveCategory points title at the category with slug; an empty slug clears it.
func (s *titleService) resolveCategory(ctx context.Context, title *models.Title, slug *string) error {
	if slug == nil || *slug == "" {
		title.CategoryID = nil
		title.Category = nil
		return nil
	}
	category, err := s.categories.GetBySlug(ctx, *slug)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return apperr.Validation("category", "category %q does not exist", *slug)
		}
		return err
	}
	title.CategoryID = &category.ID
	title.Category = category
	return nil
}

func (s *titleService) resolveGenres(ctx context.Context, title *models.Title, slugs []string) error {
	genres, err := s.genres.FindBySlugs(ctx, slugs)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return apperr.Validation("genre", "%s", err.Error())
		}
		return err
	}
	title.Genres = genres
	return nil
}
