package dto

import "titlehub/internal/microservices/http-api/models"

// CreateTitleRequest used for POST /titles; category and genres are referenced by slug
type CreateTitleRequest struct {
	Name        string   `json:"name" binding:"required,max=256"`
	Year        int      `json:"year" binding:"required,pastyear"`
	Description string   `json:"description"`
	Category    *string  `json:"category,omitempty" binding:"omitempty,slug"`
	Genre       []string `json:"genre" binding:"dive,slug"`
}

// UpdateTitleRequest used for PATCH /titles/:title_id (partial updates allowed)
type UpdateTitleRequest struct {
	Name        *string   `json:"name,omitempty" binding:"omitempty,max=256"`
	Year        *int      `json:"year,omitempty" binding:"omitempty,pastyear"`
	Description *string   `json:"description,omitempty"`
	Category    *string   `json:"category,omitempty" binding:"omitempty,slug"`
	Genre       *[]string `json:"genre,omitempty" binding:"omitempty,dive,slug"`
}

// TitleResponse DTO for responses; Rating is null until the title has a review
type TitleResponse struct {
	ID          int64             `json:"id"`
	Name        string            `json:"name"`
	Year        int               `json:"year"`
	Description string            `json:"description"`
	Category    *CategoryResponse `json:"category"`
	Genre       []GenreResponse   `json:"genre"`
	Rating      *float64          `json:"rating"`
}

func TitleFromModel(t *models.TitleWithRating) TitleResponse {
	resp := TitleResponse{
		ID:          t.ID,
		Name:        t.Name,
		Year:        t.Year,
		Description: t.Description,
		Genre:       GenresFromModels(t.Genres),
		Rating:      t.Rating,
	}
	if t.Category != nil {
		c := CategoryFromModel(*t.Category)
		resp.Category = &c
	}
	return resp
}

func TitlesFromModels(list []models.TitleWithRating) []TitleResponse {
	out := make([]TitleResponse, 0, len(list))
	for i := range list {
		out = append(out, TitleFromModel(&list[i]))
	}
	return out
}
