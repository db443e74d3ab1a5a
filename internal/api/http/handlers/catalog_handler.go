package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/tour-backoffice/internal/api/dto"
	"github.com/spec-kit/tour-backoffice/internal/domain"
	"github.com/spec-kit/tour-backoffice/internal/repository"
	"github.com/spec-kit/tour-backoffice/internal/service"
	apperrors "github.com/spec-kit/tour-backoffice/pkg/util"
)

// CatalogHandler exposes category and tour management endpoints.
type CatalogHandler struct {
	catalog *service.CatalogService
}

// NewCatalogHandler constructs handler.
func NewCatalogHandler(catalogService *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalog: catalogService}
}

// CreateCategory handles POST /categories.
func (h *CatalogHandler) CreateCategory(c *fiber.Ctx) error {
	var req dto.CreateCategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	category, err := h.catalog.CreateCategory(c.Context(), req.Name)
	if err != nil {
		return err
	}
	return created(c, categoryResponse(category))
}

// UpdateCategory handles PATCH /categories/:id.
func (h *CatalogHandler) UpdateCategory(c *fiber.Ctx) error {
	var req dto.UpdateCategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	category, err := h.catalog.UpdateCategory(c.Context(), c.Params("id"), req.Name, req.Active)
	if err != nil {
		return err
	}
	return ok(c, categoryResponse(category))
}

// DeleteCategory handles DELETE /categories/:id.
func (h *CatalogHandler) DeleteCategory(c *fiber.Ctx) error {
	if err := h.catalog.DeleteCategory(c.Context(), c.Params("id")); err != nil {
		return err
	}
	return ok(c, fiber.Map{"deleted": true})
}

// ListCategories handles GET /categories.
func (h *CatalogHandler) ListCategories(c *fiber.Ctx) error {
	categories, err := h.catalog.ListCategories(c.Context())
	if err != nil {
		return err
	}
	items := make([]dto.CategoryResponse, 0, len(categories))
	for i := range categories {
		items = append(items, categoryResponse(&categories[i]))
	}
	return ok(c, items)
}

// CreateTour handles POST /tours.
func (h *CatalogHandler) CreateTour(c *fiber.Ctx) error {
	input, err := tourInput(c)
	if err != nil {
		return err
	}
	tour, err := h.catalog.CreateTour(c.Context(), input)
	if err != nil {
		return err
	}
	return created(c, tourResponse(tour))
}

// UpdateTour handles PUT /tours/:id.
func (h *CatalogHandler) UpdateTour(c *fiber.Ctx) error {
	input, err := tourInput(c)
	if err != nil {
		return err
	}
	tour, err := h.catalog.UpdateTour(c.Context(), c.Params("id"), input)
	if err != nil {
		return err
	}
	return ok(c, tourResponse(tour))
}

// DeleteTour handles DELETE /tours/:id.
func (h *CatalogHandler) DeleteTour(c *fiber.Ctx) error {
	if err := h.catalog.DeleteTour(c.Context(), c.Params("id")); err != nil {
		return err
	}
	return ok(c, fiber.Map{"deleted": true})
}

// GetTour handles GET /tours/:id.
func (h *CatalogHandler) GetTour(c *fiber.Ctx) error {
	tour, err := h.catalog.GetTour(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return ok(c, tourResponse(tour))
}

// ListTours handles GET /tours.
func (h *CatalogHandler) ListTours(c *fiber.Ctx) error {
	filter := repository.TourFilter{}
	filter.Limit, filter.Offset = pagination(c)
	if categoryID := c.Query("category_id"); categoryID != "" {
		filter.CategoryID = &categoryID
	}
	if raw := c.Query("active"); raw != "" {
		active, err := strconv.ParseBool(raw)
		if err != nil {
			return apperrors.NewValidationError("active must be a boolean", nil)
		}
		filter.Active = &active
	}

	tours, err := h.catalog.ListTours(c.Context(), filter)
	if err != nil {
		return err
	}
	items := make([]dto.TourResponse, 0, len(tours))
	for i := range tours {
		items = append(items, tourResponse(&tours[i]))
	}
	return ok(c, items)
}

func tourInput(c *fiber.Ctx) (service.TourInput, error) {
	var req dto.TourRequest
	if err := c.BodyParser(&req); err != nil {
		return service.TourInput{}, apperrors.NewValidationError("invalid payload", nil)
	}
	active := true
	if req.Active != nil {
		active = *req.Active
	}
	return service.TourInput{
		CategoryID:  req.CategoryID,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Active:      active,
	}, nil
}

func categoryResponse(cat *domain.Category) dto.CategoryResponse {
	return dto.CategoryResponse{
		ID:        cat.ID,
		Name:      cat.Name,
		Active:    cat.Active,
		CreatedAt: cat.CreatedAt,
		UpdatedAt: cat.UpdatedAt,
	}
}

func tourResponse(tour *domain.Tour) dto.TourResponse {
	return dto.TourResponse{
		ID:          tour.ID,
		CategoryID:  tour.CategoryID,
		Name:        tour.Name,
		Description: tour.Description,
		Price:       tour.Price,
		Active:      tour.Active,
		CreatedAt:   tour.CreatedAt,
		UpdatedAt:   tour.UpdatedAt,
	}
}
