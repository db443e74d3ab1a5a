package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/tour-backoffice/internal/domain"
	"github.com/spec-kit/tour-backoffice/internal/events"
	"github.com/spec-kit/tour-backoffice/internal/persistence"
	"github.com/spec-kit/tour-backoffice/internal/repository"
	"github.com/spec-kit/tour-backoffice/internal/ticketnum"
	apperrors "github.com/spec-kit/tour-backoffice/pkg/util"
)

// AvailableLimit caps the number of ticket numbers returned by the
// availability endpoint, bounding the response payload.
const AvailableLimit = 2000

// RangeService manages assigned ticket-number blocks and computes
// per-manager availability.
type RangeService struct {
	ranges     repository.TicketRangeRepository
	tickets    repository.TicketRepository
	users      repository.UserRepository
	cache      *persistence.AvailabilityCache
	dispatcher events.Dispatcher
}

// RangeDependencies bundles requirements for the range service.
type RangeDependencies struct {
	RangeRepo  repository.TicketRangeRepository
	TicketRepo repository.TicketRepository
	UserRepo   repository.UserRepository
	Cache      *persistence.AvailabilityCache
	Dispatcher events.Dispatcher
}

// NewRangeService builds the service.
func NewRangeService(deps RangeDependencies) *RangeService {
	return &RangeService{
		ranges:     deps.RangeRepo,
		tickets:    deps.TicketRepo,
		users:      deps.UserRepo,
		cache:      deps.Cache,
		dispatcher: deps.Dispatcher,
	}
}

// RangeCreateInput describes a new block assignment.
type RangeCreateInput struct {
	ManagerID string
	Start     string
	End       string
}

// CreateRange validates and persists a new block for a manager. The
// endpoints are stored in canonical form (uppercased, zero-padded).
func (s *RangeService) CreateRange(ctx context.Context, input RangeCreateInput, createdBy string) (*domain.TicketRange, error) {
	manager, err := s.users.GetByID(ctx, input.ManagerID)
	if err != nil {
		return nil, err
	}
	if manager.Role != domain.RoleManager {
		return nil, apperrors.NewConflict("ticket ranges can only be assigned to managers", nil)
	}

	start, end, err := ticketnum.ValidateRange(input.Start, input.End)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error(), map[string]any{
			"start": input.Start,
			"end":   input.End,
		})
	}

	rng := &domain.TicketRange{
		ManagerID:   manager.ID,
		Start:       start.String(),
		End:         end.String(),
		CreatedByID: createdBy,
	}
	if err := s.ranges.Create(ctx, rng); err != nil {
		return nil, err
	}

	s.cache.Invalidate(ctx, manager.ID)
	s.publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventRangeAssigned,
		ActorID:   createdBy,
		Timestamp: time.Now(),
		Payload: events.RangeAssignedPayload{
			RangeID:   rng.ID,
			ManagerID: rng.ManagerID,
			Start:     rng.Start,
			End:       rng.End,
		},
	})
	return rng, nil
}

// MyRanges lists the blocks assigned to a manager, oldest first.
func (s *RangeService) MyRanges(ctx context.Context, managerID string) ([]domain.TicketRange, error) {
	return s.ranges.ListByManager(ctx, managerID)
}

// ListAll lists assigned blocks across managers.
func (s *RangeService) ListAll(ctx context.Context, limit, offset int) ([]domain.TicketRange, error) {
	return s.ranges.ListAll(ctx, limit, offset)
}

// MyAvailable returns up to AvailableLimit unused ticket numbers across the
// manager's blocks, in assignment order, ascending within each block. The
// result is a best-effort offer, not a reservation: no lock is held between
// this read and a later sale.
func (s *RangeService) MyAvailable(ctx context.Context, managerID string) ([]string, error) {
	if cached, ok := s.cache.Get(ctx, managerID); ok {
		return cached, nil
	}

	assigned, err := s.ranges.ListByManager(ctx, managerID)
	if err != nil {
		return nil, err
	}
	if len(assigned) == 0 {
		return []string{}, nil
	}

	used, err := s.tickets.ListUsedNumbers(ctx)
	if err != nil {
		return nil, err
	}

	available := ticketnum.Available(parseRanges(assigned), used, AvailableLimit)
	if available == nil {
		available = []string{}
	}
	s.cache.Set(ctx, managerID, available)
	return available, nil
}

// InvalidateAvailability drops the cached availability payload, e.g. after
// a ticket sale consumed a number.
func (s *RangeService) InvalidateAvailability(ctx context.Context, managerID string) {
	s.cache.Invalidate(ctx, managerID)
}

// NumberInRanges reports whether a canonical ticket number falls inside one
// of the given blocks.
func NumberInRanges(id ticketnum.TicketID, assigned []domain.TicketRange) bool {
	for _, r := range parseRanges(assigned) {
		if id.Prefix == r.Start.Prefix && id.Num >= r.Start.Num && id.Num <= r.End.Num {
			return true
		}
	}
	return false
}

// parseRanges converts stored endpoints back to structured form. Endpoints
// were validated at creation time; rows that no longer parse are skipped.
func parseRanges(assigned []domain.TicketRange) []ticketnum.Range {
	result := make([]ticketnum.Range, 0, len(assigned))
	for _, rng := range assigned {
		start, ok := ticketnum.Parse(rng.Start)
		if !ok {
			continue
		}
		end, ok := ticketnum.Parse(rng.End)
		if !ok {
			continue
		}
		result = append(result, ticketnum.Range{Start: start, End: end})
	}
	return result
}

func (s *RangeService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, event)
}
