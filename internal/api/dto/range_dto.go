package dto

import "time"

// CreateRangeRequest payload.
type CreateRangeRequest struct {
	ManagerID string `json:"manager_id"`
	Start     string `json:"start"`
	End       string `json:"end"`
}

// RangeResponse represents an assigned block.
type RangeResponse struct {
	ID        string    `json:"id"`
	ManagerID string    `json:"manager_id"`
	Start     string    `json:"start"`
	End       string    `json:"end"`
	CreatedBy string    `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
}
