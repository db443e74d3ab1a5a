package domain

import "time"

// TicketRange is a contiguous block of ticket numbers assigned to a manager.
// Ranges are immutable once created; there is no update path.
type TicketRange struct {
	ID          string
	ManagerID   string
	Start       string
	End         string
	CreatedByID string
	CreatedAt   time.Time
}
