package dto

import (
	"time"

	"github.com/spec-kit/tour-backoffice/internal/domain"
)

// SellTicketRequest payload.
type SellTicketRequest struct {
	TourID       string  `json:"tour_id"`
	TicketNumber string  `json:"ticket_number"`
	BuyerName    string  `json:"buyer_name"`
	BuyerPhone   *string `json:"buyer_phone"`
	Price        *int64  `json:"price"`
}

// TicketResponse represents a sold ticket.
type TicketResponse struct {
	ID           string              `json:"id"`
	TourID       string              `json:"tour_id"`
	TicketNumber *string             `json:"ticket_number"`
	Status       domain.TicketStatus `json:"status"`
	Price        int64               `json:"price"`
	BuyerName    string              `json:"buyer_name"`
	BuyerPhone   *string             `json:"buyer_phone"`
	SoldByID     string              `json:"sold_by"`
	CreatedAt    time.Time           `json:"created_at"`
	UsedAt       *time.Time          `json:"used_at"`
	CancelledAt  *time.Time          `json:"cancelled_at"`
}

// SaleResponse represents a money record.
type SaleResponse struct {
	ID        string    `json:"id"`
	Reference string    `json:"reference"`
	TicketID  string    `json:"ticket_id"`
	ManagerID string    `json:"manager_id"`
	Amount    int64     `json:"amount"`
	CreatedAt time.Time `json:"created_at"`
}
