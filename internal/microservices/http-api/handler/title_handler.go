package handler

import (
	"net/http"
	"strconv"

	"titlehub/internal/microservices/http-api/dto"
	"titlehub/internal/microservices/http-api/middleware"
	"titlehub/internal/microservices/http-api/repository"
	"titlehub/internal/microservices/http-api/service"
	"titlehub/internal/shared/apperr"

	"github.com/gin-gonic/gin"
)

type TitleHandler struct {
	svc service.TitleService
}

func NewTitleHandler(svc service.TitleService) *TitleHandler {
	return &TitleHandler{svc: svc}
}

func (h *TitleHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/titles/", h.List)
	rg.POST("/titles/", h.Create)
	rg.GET("/titles/:title_id/", h.Get)
	rg.PATCH("/titles/:title_id/", h.Update)
	rg.DELETE("/titles/:title_id/", h.Delete)
}

// List filters by category slug, genre slug, name substring and year.
func (h *TitleHandler) List(c *gin.Context) {
	filter := repository.TitleFilter{
		CategorySlug: c.Query("category"),
		GenreSlug:    c.Query("genre"),
		Name:         c.Query("name"),
	}
	if y := c.Query("year"); y != "" {
		year, err := strconv.Atoi(y)
		if err != nil {
			respondError(c, apperr.Validation("year", "enter a whole number"))
			return
		}
		filter.Year = year
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	page, pageSize := pagination(c)
	list, total, err := h.svc.List(ctx, filter, page, pageSize)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewPaginated(dto.TitlesFromModels(list), total, page, pageSize))
}

func (h *TitleHandler) Get(c *gin.Context) {
	id, err := pathID(c, "title_id", "title")
	if err != nil {
		respondError(c, err)
		return
	}
	ctx, cancel := requestContext(c)
	defer cancel()

	title, err := h.svc.Get(ctx, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.TitleFromModel(title))
}

func (h *TitleHandler) Create(c *gin.Context) {
	var req dto.CreateTitleRequest
	if !bindJSON(c, &req) {
		return
	}
	ctx, cancel := requestContext(c)
	defer cancel()

	title, err := h.svc.Create(ctx, middleware.IdentityFrom(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.TitleFromModel(title))
}

func (h *TitleHandler) Update(c *gin.Context) {
	id, err := pathID(c, "title_id", "title")
	if err != nil {
		respondError(c, err)
		return
	}
	var req dto.UpdateTitleRequest
	if !bindJSON(c, &req) {
		return
	}
	ctx, cancel := requestContext(c)
	defer cancel()

	title, err := h.svc.Update(ctx, middleware.IdentityFrom(c), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.TitleFromModel(title))
}

func (h *TitleHandler) Delete(c *gin.Context) {
	id, err := pathID(c, "title_id", "title")
	if err != nil {
		respondError(c, err)
		return
	}
	ctx, cancel := requestContext(c)
	defer cancel()

	if err := h.svc.Delete(ctx, middleware.IdentityFrom(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
