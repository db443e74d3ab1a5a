package domain

import "time"

// TicketStatus enumerates lifecycle states for sold tickets.
type TicketStatus string

const (
	TicketStatusSold      TicketStatus = "SOLD"
	TicketStatusUsed      TicketStatus = "USED"
	TicketStatusCancelled TicketStatus = "CANCELLED"
)

// Ticket is a sold admission for a tour. TicketNumber, when present, is the
// canonical string form of a TicketID drawn from one of the selling
// manager's assigned ranges.
type Ticket struct {
	ID           string
	TourID       string
	TicketNumber *string
	Status       TicketStatus
	Price        int64
	BuyerName    string
	BuyerPhone   *string
	SoldByID     string
	CreatedAt    time.Time
	UpdatedAt    time.Time
	UsedAt       *time.Time
	CancelledAt  *time.Time
}
