package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/tour-backoffice/internal/api/dto"
	"github.com/spec-kit/tour-backoffice/internal/domain"
	"github.com/spec-kit/tour-backoffice/internal/service"
	apperrors "github.com/spec-kit/tour-backoffice/pkg/util"
)

// RangesHandler manages ticket-number block assignment and availability.
type RangesHandler struct {
	ranges *service.RangeService
}

// NewRangesHandler constructs handler.
func NewRangesHandler(rangeService *service.RangeService) *RangesHandler {
	return &RangesHandler{ranges: rangeService}
}

// Create handles POST /manager-ticket-ranges.
func (h *RangesHandler) Create(c *fiber.Ctx) error {
	principal, err := requirePrincipal(c)
	if err != nil {
		return err
	}
	var req dto.CreateRangeRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.ManagerID == "" {
		return apperrors.NewValidationError("manager_id required", nil)
	}

	rng, err := h.ranges.CreateRange(c.Context(), service.RangeCreateInput{
		ManagerID: req.ManagerID,
		Start:     req.Start,
		End:       req.End,
	}, principal.User.ID)
	if err != nil {
		return err
	}
	return created(c, rangeResponse(rng))
}

// ListAll handles GET /manager-ticket-ranges.
func (h *RangesHandler) ListAll(c *fiber.Ctx) error {
	limit, offset := pagination(c)
	ranges, err := h.ranges.ListAll(c.Context(), limit, offset)
	if err != nil {
		return err
	}
	return ok(c, rangeResponses(ranges))
}

// My handles GET /manager-ticket-ranges/my.
func (h *RangesHandler) My(c *fiber.Ctx) error {
	principal, err := requirePrincipal(c)
	if err != nil {
		return err
	}
	ranges, err := h.ranges.MyRanges(c.Context(), principal.User.ID)
	if err != nil {
		return err
	}
	return ok(c, rangeResponses(ranges))
}

// MyAvailable handles GET /manager-ticket-ranges/my-available.
func (h *RangesHandler) MyAvailable(c *fiber.Ctx) error {
	principal, err := requirePrincipal(c)
	if err != nil {
		return err
	}
	available, err := h.ranges.MyAvailable(c.Context(), principal.User.ID)
	if err != nil {
		return err
	}
	return ok(c, available)
}

func rangeResponse(rng *domain.TicketRange) dto.RangeResponse {
	return dto.RangeResponse{
		ID:        rng.ID,
		ManagerID: rng.ManagerID,
		Start:     rng.Start,
		End:       rng.End,
		CreatedBy: rng.CreatedByID,
		CreatedAt: rng.CreatedAt,
	}
}

func rangeResponses(ranges []domain.TicketRange) []dto.RangeResponse {
	items := make([]dto.RangeResponse, 0, len(ranges))
	for i := range ranges {
		items = append(items, rangeResponse(&ranges[i]))
	}
	return items
}
