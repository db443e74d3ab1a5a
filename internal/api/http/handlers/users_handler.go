package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/tour-backoffice/internal/api/dto"
	"github.com/spec-kit/tour-backoffice/internal/domain"
	"github.com/spec-kit/tour-backoffice/internal/repository"
	"github.com/spec-kit/tour-backoffice/internal/service"
	apperrors "github.com/spec-kit/tour-backoffice/pkg/util"
)

// UsersHandler manages back-office accounts and their ledgers.
type UsersHandler struct {
	users  *service.UserService
	ledger *service.LedgerService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(userService *service.UserService, ledgerService *service.LedgerService) *UsersHandler {
	return &UsersHandler{users: userService, ledger: ledgerService}
}

// Create handles POST /users.
func (h *UsersHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	user, err := h.users.CreateUser(c.Context(), service.UserCreateInput{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		return err
	}
	return created(c, userResponse(user))
}

// List handles GET /users.
func (h *UsersHandler) List(c *fiber.Ctx) error {
	limit, offset := pagination(c)
	filter := repository.UserFilter{Limit: limit, Offset: offset}
	if role := c.Query("role"); role != "" {
		filter.Roles = []domain.Role{domain.Role(role)}
	}

	users, err := h.users.ListUsers(c.Context(), filter)
	if err != nil {
		return err
	}
	items := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		items = append(items, userResponse(&users[i]))
	}
	return ok(c, items)
}

// Get handles GET /users/:id.
func (h *UsersHandler) Get(c *fiber.Ctx) error {
	user, err := h.users.GetUser(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return ok(c, userResponse(user))
}

// Update handles PATCH /users/:id.
func (h *UsersHandler) Update(c *fiber.Ctx) error {
	var req dto.UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	user, err := h.users.UpdateUser(c.Context(), c.Params("id"), service.UserUpdateInput{
		Name:     req.Name,
		Phone:    req.Phone,
		Password: req.Password,
		Active:   req.Active,
	})
	if err != nil {
		return err
	}
	return ok(c, userResponse(user))
}

// ResetBalance handles POST /users/:id/reset-balance.
func (h *UsersHandler) ResetBalance(c *fiber.Ctx) error {
	principal, err := requirePrincipal(c)
	if err != nil {
		return err
	}
	var req dto.ResetRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	entry, err := h.ledger.ResetBalance(c.Context(), c.Params("id"), req.Reason, principal.User.ID)
	if err != nil {
		return err
	}
	return ok(c, historyResponse(entry))
}

// ResetDebt handles POST /users/:id/reset-debt.
func (h *UsersHandler) ResetDebt(c *fiber.Ctx) error {
	principal, err := requirePrincipal(c)
	if err != nil {
		return err
	}
	var req dto.ResetRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	entry, err := h.ledger.ResetDebt(c.Context(), c.Params("id"), req.Reason, principal.User.ID)
	if err != nil {
		return err
	}
	return ok(c, historyResponse(entry))
}

// BalanceHistory handles GET /users/:id/balance-history.
func (h *UsersHandler) BalanceHistory(c *fiber.Ctx) error {
	limit, offset := pagination(c)
	entries, err := h.ledger.History(c.Context(), c.Params("id"), limit, offset)
	if err != nil {
		return err
	}
	items := make([]dto.BalanceHistoryResponse, 0, len(entries))
	for i := range entries {
		items = append(items, historyResponse(&entries[i]))
	}
	return ok(c, items)
}

func userResponse(user *domain.User) dto.UserResponse {
	return dto.UserResponse{
		ID:            user.ID,
		Name:          user.Name,
		Email:         user.Email,
		Phone:         user.Phone,
		Role:          user.Role,
		Active:        user.Active,
		Balance:       user.Balance,
		DebtToCompany: user.DebtToCompany,
		CreatedAt:     user.CreatedAt,
		UpdatedAt:     user.UpdatedAt,
	}
}

func historyResponse(entry *domain.BalanceHistory) dto.BalanceHistoryResponse {
	return dto.BalanceHistoryResponse{
		ID:            entry.ID,
		UserID:        entry.UserID,
		BalanceType:   entry.BalanceType,
		Transaction:   entry.Transaction,
		Amount:        entry.Amount,
		BalanceBefore: entry.BalanceBefore,
		BalanceAfter:  entry.BalanceAfter,
		Description:   entry.Description,
		PerformedByID: entry.PerformedByID,
		CreatedAt:     entry.CreatedAt,
	}
}
