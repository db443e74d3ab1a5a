package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/tour-backoffice/internal/domain"
	"github.com/spec-kit/tour-backoffice/internal/events"
	"github.com/spec-kit/tour-backoffice/internal/repository"
	"github.com/spec-kit/tour-backoffice/internal/ticketnum"
	apperrors "github.com/spec-kit/tour-backoffice/pkg/util"
)

// TicketService coordinates ticket sales and lifecycle transitions.
type TicketService struct {
	tickets repository.TicketRepository
	tours   repository.TourRepository
	sales   repository.SaleRepository
	ranges  *RangeService
	ledger  *LedgerService

	dispatcher events.Dispatcher
}

// TicketDependencies bundles requirements for the ticket service.
type TicketDependencies struct {
	TicketRepo repository.TicketRepository
	TourRepo   repository.TourRepository
	SaleRepo   repository.SaleRepository
	Ranges     *RangeService
	Ledger     *LedgerService
	Dispatcher events.Dispatcher
}

// NewTicketService constructs the service.
func NewTicketService(deps TicketDependencies) *TicketService {
	return &TicketService{
		tickets:    deps.TicketRepo,
		tours:      deps.TourRepo,
		sales:      deps.SaleRepo,
		ranges:     deps.Ranges,
		ledger:     deps.Ledger,
		dispatcher: deps.Dispatcher,
	}
}

// SellInput describes a ticket sale by a manager.
type SellInput struct {
	TourID       string
	TicketNumber string
	BuyerName    string
	BuyerPhone   *string
	Price        *int64
}

// SellTicket sells a ticket for a tour. When a ticket number is supplied it
// must parse, fall inside one of the manager's assigned blocks, and be
// unused; when omitted, the first available number across the manager's
// blocks is assigned. The sale amount is credited to the manager's
// debt_to_company through the ledger (cash stays with the manager until
// settled).
func (s *TicketService) SellTicket(ctx context.Context, manager *domain.User, input SellInput) (*domain.Ticket, *domain.Sale, error) {
	tour, err := s.tours.GetByID(ctx, input.TourID)
	if err != nil {
		return nil, nil, err
	}
	if !tour.Active {
		return nil, nil, apperrors.NewValidationError("tour is not active", nil)
	}
	if strings.TrimSpace(input.BuyerName) == "" {
		return nil, nil, apperrors.NewValidationError("buyer name is required", nil)
	}

	price := tour.Price
	if input.Price != nil {
		if *input.Price < 0 {
			return nil, nil, apperrors.NewValidationError("price must not be negative", nil)
		}
		price = *input.Price
	}

	number, err := s.resolveNumber(ctx, manager.ID, input.TicketNumber)
	if err != nil {
		return nil, nil, err
	}

	ticket := &domain.Ticket{
		TourID:       tour.ID,
		TicketNumber: number,
		Status:       domain.TicketStatusSold,
		Price:        price,
		BuyerName:    strings.TrimSpace(input.BuyerName),
		BuyerPhone:   input.BuyerPhone,
		SoldByID:     manager.ID,
	}
	if err := s.tickets.Create(ctx, ticket); err != nil {
		return nil, nil, err
	}

	sale := &domain.Sale{
		Reference: uuid.NewString(),
		TicketID:  ticket.ID,
		ManagerID: manager.ID,
		Amount:    price,
	}
	if err := s.sales.Create(ctx, sale); err != nil {
		return nil, nil, err
	}

	description := fmt.Sprintf("ticket sale %s", ticket.ID)
	if number != nil {
		description = fmt.Sprintf("ticket sale %s", *number)
	}
	if _, err := s.ledger.ApplyDelta(ctx, LedgerInput{
		UserID:        manager.ID,
		BalanceType:   domain.BalanceTypeDebt,
		Transaction:   domain.TransactionCredit,
		Amount:        price,
		Description:   description,
		PerformedByID: manager.ID,
	}); err != nil {
		return nil, nil, err
	}

	s.ranges.InvalidateAvailability(ctx, manager.ID)
	s.publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventTicketSold,
		ActorID:   manager.ID,
		Timestamp: time.Now(),
		Payload: events.TicketSoldPayload{
			TicketID:     ticket.ID,
			TicketNumber: ticket.TicketNumber,
			TourID:       tour.ID,
			SaleID:       sale.ID,
			Amount:       sale.Amount,
		},
	})
	return ticket, sale, nil
}

// resolveNumber validates a supplied ticket number or assigns the first
// available one. A nil return means the ticket is sold without a number
// (the manager has no blocks assigned and supplied none).
func (s *TicketService) resolveNumber(ctx context.Context, managerID, raw string) (*string, error) {
	assigned, err := s.ranges.MyRanges(ctx, managerID)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(raw) == "" {
		if len(assigned) == 0 {
			return nil, nil
		}
		available, err := s.ranges.MyAvailable(ctx, managerID)
		if err != nil {
			return nil, err
		}
		if len(available) == 0 {
			return nil, apperrors.NewConflict("no unused ticket numbers left in assigned ranges", nil)
		}
		number := available[0]
		return &number, nil
	}

	id, ok := ticketnum.Parse(raw)
	if !ok {
		return nil, apperrors.NewValidationError(
			fmt.Sprintf("ticket number must be 2 letters followed by %d digits", ticketnum.NumberWidth), nil)
	}
	if !NumberInRanges(id, assigned) {
		return nil, apperrors.NewValidationError("ticket number is outside your assigned ranges", nil)
	}

	canonical := id.String()
	if _, err := s.tickets.GetByNumber(ctx, canonical); err == nil {
		return nil, apperrors.NewConflict(fmt.Sprintf("ticket number %s is already used", canonical), nil)
	} else if !apperrors.IsNoRows(err) {
		return nil, err
	}
	return &canonical, nil
}

// UseTicket marks a sold ticket as used.
func (s *TicketService) UseTicket(ctx context.Context, actor *domain.User, ticketID string) (*domain.Ticket, error) {
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if ticket.Status != domain.TicketStatusSold {
		return nil, apperrors.NewConflict(
			fmt.Sprintf("ticket is %s, only sold tickets can be used", ticket.Status), nil)
	}

	now := time.Now()
	old := ticket.Status
	ticket.Status = domain.TicketStatusUsed
	ticket.UsedAt = &now
	if err := s.tickets.Update(ctx, ticket); err != nil {
		return nil, err
	}

	s.publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventTicketUsed,
		ActorID:   actor.ID,
		Timestamp: now,
		Payload:   events.TicketStatusPayload{TicketID: ticket.ID, OldStatus: old, NewStatus: ticket.Status},
	})
	return ticket, nil
}

// CancelTicket cancels a sold ticket and debits the sale amount back off
// the selling manager's debt. The ticket number stays consumed: cancelled
// tickets keep their number out of the availability set.
func (s *TicketService) CancelTicket(ctx context.Context, actor *domain.User, ticketID string) (*domain.Ticket, error) {
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if ticket.Status != domain.TicketStatusSold {
		return nil, apperrors.NewConflict(
			fmt.Sprintf("ticket is %s, only sold tickets can be cancelled", ticket.Status), nil)
	}
	if actor.Role == domain.RoleManager && ticket.SoldByID != actor.ID {
		return nil, apperrors.NewForbidden("managers can only cancel their own sales")
	}

	now := time.Now()
	old := ticket.Status
	ticket.Status = domain.TicketStatusCancelled
	ticket.CancelledAt = &now
	if err := s.tickets.Update(ctx, ticket); err != nil {
		return nil, err
	}

	description := fmt.Sprintf("ticket cancelled %s", ticket.ID)
	if ticket.TicketNumber != nil {
		description = fmt.Sprintf("ticket cancelled %s", *ticket.TicketNumber)
	}
	if _, err := s.ledger.ApplyDelta(ctx, LedgerInput{
		UserID:        ticket.SoldByID,
		BalanceType:   domain.BalanceTypeDebt,
		Transaction:   domain.TransactionDebit,
		Amount:        ticket.Price,
		Description:   description,
		PerformedByID: actor.ID,
	}); err != nil {
		return nil, err
	}

	s.publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventTicketCancelled,
		ActorID:   actor.ID,
		Timestamp: now,
		Payload:   events.TicketStatusPayload{TicketID: ticket.ID, OldStatus: old, NewStatus: ticket.Status},
	})
	return ticket, nil
}

// ListTickets lists tickets for the caller. Managers are scoped to their
// own sales.
func (s *TicketService) ListTickets(ctx context.Context, actor *domain.User, filter repository.TicketFilter) ([]domain.Ticket, error) {
	if actor.Role == domain.RoleManager {
		filter.SoldByID = &actor.ID
	}
	return s.tickets.ListWithFilter(ctx, filter)
}

func (s *TicketService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, event)
}
