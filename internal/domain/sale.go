package domain

import "time"

// Sale is the money record produced when a manager sells a ticket.
// Reference is an externally quotable identifier (UUID string).
type Sale struct {
	ID        string
	Reference string
	TicketID  string
	ManagerID string
	Amount    int64
	CreatedAt time.Time
}
