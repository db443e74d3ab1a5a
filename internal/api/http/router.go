package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/tour-backoffice/internal/api/http/handlers"
	"github.com/spec-kit/tour-backoffice/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Users          *handlers.UsersHandler
	Ranges         *handlers.RangesHandler
	Tickets        *handlers.TicketsHandler
	Catalog        *handlers.CatalogHandler
	Sales          *handlers.SalesHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	app.Post("/auth/login", cfg.Auth.Login)

	protected := app.Group("", cfg.AuthMiddleware.Handle)

	users := protected.Group("/users")
	users.Post("", auth.Require(auth.OpUserManage), cfg.Users.Create)
	users.Get("", auth.Require(auth.OpUserManage), cfg.Users.List)
	users.Get("/:id", auth.Require(auth.OpUserManage), cfg.Users.Get)
	users.Patch("/:id", auth.Require(auth.OpUserManage), cfg.Users.Update)
	users.Post("/:id/reset-balance", auth.Require(auth.OpUserResetBalance), cfg.Users.ResetBalance)
	users.Post("/:id/reset-debt", auth.Require(auth.OpUserResetDebt), cfg.Users.ResetDebt)
	users.Get("/:id/balance-history", auth.Require(auth.OpUserBalanceHistory), cfg.Users.BalanceHistory)

	categories := protected.Group("/categories", auth.Require(auth.OpCatalogManage))
	categories.Post("", cfg.Catalog.CreateCategory)
	categories.Get("", cfg.Catalog.ListCategories)
	categories.Patch("/:id", cfg.Catalog.UpdateCategory)
	categories.Delete("/:id", cfg.Catalog.DeleteCategory)

	tours := protected.Group("/tours")
	tours.Get("", cfg.Catalog.ListTours)
	tours.Get("/:id", cfg.Catalog.GetTour)
	tours.Post("", auth.Require(auth.OpCatalogManage), cfg.Catalog.CreateTour)
	tours.Put("/:id", auth.Require(auth.OpCatalogManage), cfg.Catalog.UpdateTour)
	tours.Delete("/:id", auth.Require(auth.OpCatalogManage), cfg.Catalog.DeleteTour)

	ranges := protected.Group("/manager-ticket-ranges")
	ranges.Post("", auth.Require(auth.OpRangeAssign), cfg.Ranges.Create)
	ranges.Get("", auth.Require(auth.OpRangeListAll), cfg.Ranges.ListAll)
	ranges.Get("/my", auth.Require(auth.OpRangeMy), cfg.Ranges.My)
	ranges.Get("/my-available", auth.Require(auth.OpRangeMy), cfg.Ranges.MyAvailable)

	tickets := protected.Group("/tickets")
	tickets.Post("/sell", auth.Require(auth.OpTicketSell), cfg.Tickets.Sell)
	tickets.Post("/:id/use", auth.Require(auth.OpTicketUse), cfg.Tickets.Use)
	tickets.Post("/:id/cancel", auth.Require(auth.OpTicketCancel), cfg.Tickets.Cancel)
	tickets.Get("", auth.Require(auth.OpTicketList), cfg.Tickets.List)

	protected.Get("/sales", auth.Require(auth.OpSaleList), cfg.Sales.List)
}
