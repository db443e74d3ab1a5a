package service

import (
	"context"
	"strings"

	"github.com/spec-kit/tour-backoffice/internal/domain"
	"github.com/spec-kit/tour-backoffice/internal/repository"
	apperrors "github.com/spec-kit/tour-backoffice/pkg/util"
)

// CatalogService manages the tour catalog: categories and tours.
type CatalogService struct {
	tours      repository.TourRepository
	categories repository.CategoryRepository
}

// NewCatalogService builds the service.
func NewCatalogService(tours repository.TourRepository, categories repository.CategoryRepository) *CatalogService {
	return &CatalogService{tours: tours, categories: categories}
}

// CreateCategory adds a category.
func (s *CatalogService) CreateCategory(ctx context.Context, name string) (*domain.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.NewValidationError("category name is required", nil)
	}
	category := &domain.Category{Name: name, Active: true}
	if err := s.categories.Create(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// UpdateCategory renames or toggles a category.
func (s *CatalogService) UpdateCategory(ctx context.Context, id string, name *string, active *bool) (*domain.Category, error) {
	category, err := s.categories.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if name != nil {
		trimmed := strings.TrimSpace(*name)
		if trimmed == "" {
			return nil, apperrors.NewValidationError("category name must not be empty", nil)
		}
		category.Name = trimmed
	}
	if active != nil {
		category.Active = *active
	}
	if err := s.categories.Update(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// DeleteCategory removes a category. Categories referenced by tours are
// protected by the foreign key and surface as internal errors; deactivate
// instead of deleting in that case.
func (s *CatalogService) DeleteCategory(ctx context.Context, id string) error {
	return s.categories.Delete(ctx, id)
}

// ListCategories lists all categories.
func (s *CatalogService) ListCategories(ctx context.Context) ([]domain.Category, error) {
	return s.categories.List(ctx)
}

// TourInput describes a tour create/update payload.
type TourInput struct {
	CategoryID  string
	Name        string
	Description string
	Price       int64
	Active      bool
}

// CreateTour adds a tour under an active category.
func (s *CatalogService) CreateTour(ctx context.Context, input TourInput) (*domain.Tour, error) {
	if err := s.validateTour(ctx, input); err != nil {
		return nil, err
	}
	tour := &domain.Tour{
		CategoryID:  input.CategoryID,
		Name:        strings.TrimSpace(input.Name),
		Description: strings.TrimSpace(input.Description),
		Price:       input.Price,
		Active:      input.Active,
	}
	if err := s.tours.Create(ctx, tour); err != nil {
		return nil, err
	}
	return tour, nil
}

// UpdateTour replaces a tour's fields.
func (s *CatalogService) UpdateTour(ctx context.Context, id string, input TourInput) (*domain.Tour, error) {
	tour, err := s.tours.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.validateTour(ctx, input); err != nil {
		return nil, err
	}
	tour.CategoryID = input.CategoryID
	tour.Name = strings.TrimSpace(input.Name)
	tour.Description = strings.TrimSpace(input.Description)
	tour.Price = input.Price
	tour.Active = input.Active
	if err := s.tours.Update(ctx, tour); err != nil {
		return nil, err
	}
	return tour, nil
}

// DeleteTour removes a tour.
func (s *CatalogService) DeleteTour(ctx context.Context, id string) error {
	return s.tours.Delete(ctx, id)
}

// GetTour loads a single tour.
func (s *CatalogService) GetTour(ctx context.Context, id string) (*domain.Tour, error) {
	return s.tours.GetByID(ctx, id)
}

// ListTours lists tours.
func (s *CatalogService) ListTours(ctx context.Context, filter repository.TourFilter) ([]domain.Tour, error) {
	return s.tours.List(ctx, filter)
}

func (s *CatalogService) validateTour(ctx context.Context, input TourInput) error {
	if strings.TrimSpace(input.Name) == "" {
		return apperrors.NewValidationError("tour name is required", nil)
	}
	if input.Price < 0 {
		return apperrors.NewValidationError("tour price must not be negative", nil)
	}
	category, err := s.categories.GetByID(ctx, input.CategoryID)
	if err != nil {
		return err
	}
	if !category.Active {
		return apperrors.NewValidationError("category is not active", nil)
	}
	return nil
}
