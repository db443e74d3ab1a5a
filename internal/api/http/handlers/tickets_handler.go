package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/tour-backoffice/internal/api/dto"
	"github.com/spec-kit/tour-backoffice/internal/domain"
	"github.com/spec-kit/tour-backoffice/internal/repository"
	"github.com/spec-kit/tour-backoffice/internal/service"
	apperrors "github.com/spec-kit/tour-backoffice/pkg/util"
)

// TicketsHandler exposes ticket sale and lifecycle endpoints.
type TicketsHandler struct {
	tickets *service.TicketService
}

// NewTicketsHandler constructs handler.
func NewTicketsHandler(ticketService *service.TicketService) *TicketsHandler {
	return &TicketsHandler{tickets: ticketService}
}

// Sell handles POST /tickets/sell.
func (h *TicketsHandler) Sell(c *fiber.Ctx) error {
	principal, err := requirePrincipal(c)
	if err != nil {
		return err
	}
	var req dto.SellTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.TourID == "" {
		return apperrors.NewValidationError("tour_id required", nil)
	}

	ticket, sale, err := h.tickets.SellTicket(c.Context(), principal.User, service.SellInput{
		TourID:       req.TourID,
		TicketNumber: req.TicketNumber,
		BuyerName:    req.BuyerName,
		BuyerPhone:   req.BuyerPhone,
		Price:        req.Price,
	})
	if err != nil {
		return err
	}
	return created(c, fiber.Map{
		"ticket": ticketResponse(ticket),
		"sale":   saleResponse(sale),
	})
}

// Use handles POST /tickets/:id/use.
func (h *TicketsHandler) Use(c *fiber.Ctx) error {
	principal, err := requirePrincipal(c)
	if err != nil {
		return err
	}
	ticket, err := h.tickets.UseTicket(c.Context(), principal.User, c.Params("id"))
	if err != nil {
		return err
	}
	return ok(c, ticketResponse(ticket))
}

// Cancel handles POST /tickets/:id/cancel.
func (h *TicketsHandler) Cancel(c *fiber.Ctx) error {
	principal, err := requirePrincipal(c)
	if err != nil {
		return err
	}
	ticket, err := h.tickets.CancelTicket(c.Context(), principal.User, c.Params("id"))
	if err != nil {
		return err
	}
	return ok(c, ticketResponse(ticket))
}

// List handles GET /tickets.
func (h *TicketsHandler) List(c *fiber.Ctx) error {
	principal, err := requirePrincipal(c)
	if err != nil {
		return err
	}

	filter := repository.TicketFilter{}
	filter.Limit, filter.Offset = pagination(c)
	if tourID := c.Query("tour_id"); tourID != "" {
		filter.TourID = &tourID
	}
	if raw := c.Query("status"); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			status := domain.TicketStatus(strings.ToUpper(strings.TrimSpace(part)))
			switch status {
			case domain.TicketStatusSold, domain.TicketStatusUsed, domain.TicketStatusCancelled:
				filter.Statuses = append(filter.Statuses, status)
			default:
				return apperrors.NewValidationError("unknown ticket status: "+string(status), nil)
			}
		}
	}

	tickets, err := h.tickets.ListTickets(c.Context(), principal.User, filter)
	if err != nil {
		return err
	}

	items := make([]dto.TicketResponse, 0, len(tickets))
	for i := range tickets {
		items = append(items, ticketResponse(&tickets[i]))
	}
	return ok(c, items)
}

func ticketResponse(t *domain.Ticket) dto.TicketResponse {
	return dto.TicketResponse{
		ID:           t.ID,
		TourID:       t.TourID,
		TicketNumber: t.TicketNumber,
		Status:       t.Status,
		Price:        t.Price,
		BuyerName:    t.BuyerName,
		BuyerPhone:   t.BuyerPhone,
		SoldByID:     t.SoldByID,
		CreatedAt:    t.CreatedAt,
		UsedAt:       t.UsedAt,
		CancelledAt:  t.CancelledAt,
	}
}

func saleResponse(s *domain.Sale) dto.SaleResponse {
	return dto.SaleResponse{
		ID:        s.ID,
		Reference: s.Reference,
		TicketID:  s.TicketID,
		ManagerID: s.ManagerID,
		Amount:    s.Amount,
		CreatedAt: s.CreatedAt,
	}
}
