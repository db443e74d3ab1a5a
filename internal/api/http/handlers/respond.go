package handlers

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/tour-backoffice/internal/auth"
	apperrors "github.com/spec-kit/tour-backoffice/pkg/util"
)

// respond renders the success envelope.
func respond(c *fiber.Ctx, status int, data any) error {
	return c.Status(status).JSON(fiber.Map{"success": true, "data": data})
}

func ok(c *fiber.Ctx, data any) error {
	return respond(c, http.StatusOK, data)
}

func created(c *fiber.Ctx, data any) error {
	return respond(c, http.StatusCreated, data)
}

// requirePrincipal fetches the authenticated account; a missing principal
// on a protected route is a wiring error surfaced as 401.
func requirePrincipal(c *fiber.Ctx) (*auth.Principal, error) {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return nil, apperrors.NewUnauthorized("authentication required")
	}
	return principal, nil
}

// pagination reads limit/offset query parameters.
func pagination(c *fiber.Ctx) (limit, offset int) {
	limit, _ = strconv.Atoi(c.Query("limit"))
	offset, _ = strconv.Atoi(c.Query("offset"))
	return limit, offset
}
