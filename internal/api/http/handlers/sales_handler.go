package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/tour-backoffice/internal/api/dto"
	"github.com/spec-kit/tour-backoffice/internal/repository"
	"github.com/spec-kit/tour-backoffice/internal/service"
)

// SalesHandler exposes the sale listing endpoint.
type SalesHandler struct {
	sales *service.SaleService
}

// NewSalesHandler constructs handler.
func NewSalesHandler(saleService *service.SaleService) *SalesHandler {
	return &SalesHandler{sales: saleService}
}

// List handles GET /sales.
func (h *SalesHandler) List(c *fiber.Ctx) error {
	principal, err := requirePrincipal(c)
	if err != nil {
		return err
	}

	filter := repository.SaleFilter{}
	filter.Limit, filter.Offset = pagination(c)
	if managerID := c.Query("manager_id"); managerID != "" {
		filter.ManagerID = &managerID
	}

	sales, err := h.sales.ListSales(c.Context(), principal.User, filter)
	if err != nil {
		return err
	}
	items := make([]dto.SaleResponse, 0, len(sales))
	for i := range sales {
		items = append(items, saleResponse(&sales[i]))
	}
	return ok(c, items)
}
