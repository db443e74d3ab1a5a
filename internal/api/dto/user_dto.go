package dto

import (
	"time"

	"github.com/spec-kit/tour-backoffice/internal/domain"
)

// LoginRequest payload.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse standard response for auth endpoints.
type AuthResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// CreateUserRequest payload for new accounts.
type CreateUserRequest struct {
	Name     string      `json:"name"`
	Email    string      `json:"email"`
	Phone    *string     `json:"phone"`
	Password string      `json:"password"`
	Role     domain.Role `json:"role"`
}

// UpdateUserRequest payload for partial account updates.
type UpdateUserRequest struct {
	Name     *string `json:"name"`
	Phone    *string `json:"phone"`
	Password *string `json:"password"`
	Active   *bool   `json:"active"`
}

// ResetRequest carries the operator-supplied reason recorded in the ledger.
type ResetRequest struct {
	Reason string `json:"reason"`
}

// UserResponse represents an account.
type UserResponse struct {
	ID            string      `json:"id"`
	Name          string      `json:"name"`
	Email         string      `json:"email"`
	Phone         *string     `json:"phone"`
	Role          domain.Role `json:"role"`
	Active        bool        `json:"active"`
	Balance       int64       `json:"balance"`
	DebtToCompany int64       `json:"debt_to_company"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
}

// BalanceHistoryResponse represents a ledger entry.
type BalanceHistoryResponse struct {
	ID            string                 `json:"id"`
	UserID        string                 `json:"user_id"`
	BalanceType   domain.BalanceType     `json:"balance_type"`
	Transaction   domain.TransactionType `json:"transaction_type"`
	Amount        int64                  `json:"amount"`
	BalanceBefore int64                  `json:"balance_before"`
	BalanceAfter  int64                  `json:"balance_after"`
	Description   string                 `json:"description"`
	PerformedByID string                 `json:"performed_by"`
	CreatedAt     time.Time              `json:"created_at"`
}
