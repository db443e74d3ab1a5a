package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/tour-backoffice/internal/domain"
	apperrors "github.com/spec-kit/tour-backoffice/pkg/util"
)

// Operation names a protected back-office action.
type Operation string

const (
	OpUserManage         Operation = "user.manage"
	OpUserResetBalance   Operation = "user.reset_balance"
	OpUserResetDebt      Operation = "user.reset_debt"
	OpUserBalanceHistory Operation = "user.balance_history"
	OpCatalogManage      Operation = "catalog.manage"
	OpRangeAssign        Operation = "range.assign"
	OpRangeListAll       Operation = "range.list_all"
	OpRangeMy            Operation = "range.my"
	OpTicketSell         Operation = "ticket.sell"
	OpTicketUse          Operation = "ticket.use"
	OpTicketCancel       Operation = "ticket.cancel"
	OpTicketList         Operation = "ticket.list"
	OpSaleList           Operation = "sale.list"
)

// policy is the single declarative role table consulted by Require. Adding
// an endpoint means adding a row here rather than another inline role check.
var policy = map[Operation][]domain.Role{
	OpUserManage:         {domain.RoleOwner, domain.RoleAssistant},
	OpUserResetBalance:   {domain.RoleOwner},
	OpUserResetDebt:      {domain.RoleOwner},
	OpUserBalanceHistory: {domain.RoleOwner, domain.RoleAssistant},
	OpCatalogManage:      {domain.RoleOwner, domain.RoleAssistant},
	OpRangeAssign:        {domain.RoleOwner, domain.RoleAssistant},
	OpRangeListAll:       {domain.RoleOwner, domain.RoleAssistant},
	OpRangeMy:            {domain.RoleManager},
	OpTicketSell:         {domain.RoleManager},
	OpTicketUse:          {domain.RoleManager},
	OpTicketCancel:       {domain.RoleOwner, domain.RoleManager},
	OpTicketList:         {domain.RoleOwner, domain.RoleAssistant, domain.RoleManager},
	OpSaleList:           {domain.RoleOwner, domain.RoleAssistant, domain.RoleManager},
}

// AllowedRoles returns the roles permitted to perform op.
func AllowedRoles(op Operation) []domain.Role {
	return policy[op]
}

// Allowed reports whether role may perform op.
func Allowed(op Operation, role domain.Role) bool {
	for _, allowed := range policy[op] {
		if allowed == role {
			return true
		}
	}
	return false
}

// Require returns a handler enforcing the policy table for op. It runs
// after AuthMiddleware, so a missing principal means a wiring mistake and
// is rejected as unauthorized.
func Require(op Operation) fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok || principal.User == nil {
			return apperrors.NewUnauthorized("authentication required")
		}
		if !Allowed(op, principal.User.Role) {
			return apperrors.NewForbidden("insufficient role")
		}
		return c.Next()
	}
}
