package domain

import "time"

// Role enumerates back-office account roles.
type Role string

const (
	RoleOwner     Role = "OWNER"
	RoleAssistant Role = "ASSISTANT"
	RoleManager   Role = "MANAGER"
	RolePromoter  Role = "PROMOTER"
)

// ValidRole reports whether r is a known role.
func ValidRole(r Role) bool {
	switch r {
	case RoleOwner, RoleAssistant, RoleManager, RolePromoter:
		return true
	}
	return false
}

// User is the domain model for back-office accounts. Balance and
// DebtToCompany are mutable running totals; every change to either must be
// paired with a BalanceHistory row.
type User struct {
	ID            string
	Name          string
	Email         string
	Phone         *string
	PasswordHash  string
	Role          Role
	Active        bool
	Balance       int64
	DebtToCompany int64
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
