package service

import (
	"context"

	"github.com/spec-kit/tour-backoffice/internal/domain"
	"github.com/spec-kit/tour-backoffice/internal/repository"
)

// SaleService reads the money records produced by ticket sales. Sales are
// written only by TicketService.
type SaleService struct {
	sales repository.SaleRepository
}

// NewSaleService builds the service.
func NewSaleService(sales repository.SaleRepository) *SaleService {
	return &SaleService{sales: sales}
}

// ListSales lists sales for the caller. Managers are scoped to their own.
func (s *SaleService) ListSales(ctx context.Context, actor *domain.User, filter repository.SaleFilter) ([]domain.Sale, error) {
	if actor.Role == domain.RoleManager {
		filter.ManagerID = &actor.ID
	}
	return s.sales.List(ctx, filter)
}
