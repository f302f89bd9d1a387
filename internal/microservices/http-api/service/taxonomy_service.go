package service

import (
	"context"
	"net/http"
	"strings"

	"titlehub/internal/microservices/http-api/dto"
	"titlehub/internal/microservices/http-api/models"
	"titlehub/internal/microservices/http-api/permission"
	"titlehub/internal/microservices/http-api/validator"
)

type CategoryService interface {
	List(ctx context.Context, search string, page, pageSize int) ([]models.Category, int64, error)
	Create(ctx context.Context, actor permission.Identity, req dto.CreateCategoryRequest) (*models.Category, error)
	Delete(ctx context.Context, actor permission.Identity, slug string) error
}

type GenreService interface {
	List(ctx context.Context, search string, page, pageSize int) ([]models.Genre, int64, error)
	Create(ctx context.Context, actor permission.Identity, req dto.CreateGenreRequest) (*models.Genre, error)
	Delete(ctx context.Context, actor permission.Identity, slug string) error
}

// slugStore is the part of a category or genre repository the services use.
type slugStore[T any] interface {
	List(ctx context.Context, search string, page, pageSize int) ([]T, int64, error)
	Create(ctx context.Context, item *T) error
	DeleteBySlug(ctx context.Context, slug string) error
}

type taxonomyService[T any] struct {
	store slugStore[T]
	build func(name, slug string) *T
}

func NewCategoryService(store slugStore[models.Category]) CategoryService {
	return &taxonomyService[models.Category]{
		store: store,
		build: func(name, slug string) *models.Category { return &models.Category{Name: name, Slug: slug} },
	}
}

func NewGenreService(store slugStore[models.Genre]) GenreService {
	return &taxonomyService[models.Genre]{
		store: store,
		build: func(name, slug string) *models.Genre { return &models.Genre{Name: name, Slug: slug} },
	}
}

func (s *taxonomyService[T]) List(ctx context.Context, search string, page, pageSize int) ([]T, int64, error) {
	return s.store.List(ctx, search, page, pageSize)
}

func (s *taxonomyService[T]) Create(ctx context.Context, actor permission.Identity, req dto.CreateCategoryRequest) (*T, error) {
	if err := authorize(actor, permission.AdminOrReadOnly(actor, http.MethodPost)); err != nil {
		return nil, err
	}
	name := strings.TrimSpace(req.Name)
	if err := validator.ValidateName(name); err != nil {
		return nil, err
	}
	if err := validator.ValidateSlug(req.Slug); err != nil {
		return nil, err
	}

	item := s.build(name, req.Slug)
	if err := s.store.Create(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *taxonomyService[T]) Delete(ctx context.Context, actor permission.Identity, slug string) error {
	if err := authorize(actor, permission.AdminOrReadOnly(actor, http.MethodDelete)); err != nil {
		return err
	}
	return s.store.DeleteBySlug(ctx, slug)
}
