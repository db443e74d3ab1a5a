package events

import (
	"time"

	"github.com/spec-kit/tour-backoffice/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventTicketSold      EventType = "ticket_sold"
	EventTicketUsed      EventType = "ticket_used"
	EventTicketCancelled EventType = "ticket_cancelled"
	EventRangeAssigned   EventType = "range_assigned"
	EventBalanceAdjusted EventType = "balance_adjusted"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	ActorID   string      `json:"actor_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// TicketSoldPayload payload.
type TicketSoldPayload struct {
	TicketID     string  `json:"ticket_id"`
	TicketNumber *string `json:"ticket_number,omitempty"`
	TourID       string  `json:"tour_id"`
	SaleID       string  `json:"sale_id"`
	Amount       int64   `json:"amount"`
}

// TicketStatusPayload payload for use/cancel transitions.
type TicketStatusPayload struct {
	TicketID  string              `json:"ticket_id"`
	OldStatus domain.TicketStatus `json:"old_status"`
	NewStatus domain.TicketStatus `json:"new_status"`
}

// RangeAssignedPayload payload.
type RangeAssignedPayload struct {
	RangeID   string `json:"range_id"`
	ManagerID string `json:"manager_id"`
	Start     string `json:"start"`
	End       string `json:"end"`
}

// BalanceAdjustedPayload payload.
type BalanceAdjustedPayload struct {
	UserID        string                 `json:"user_id"`
	BalanceType   domain.BalanceType     `json:"balance_type"`
	Transaction   domain.TransactionType `json:"transaction_type"`
	Amount        int64                  `json:"amount"`
	BalanceAfter  int64                  `json:"balance_after"`
	Description   string                 `json:"description"`
	PerformedByID string                 `json:"performed_by"`
}
