package routes

import (
	"inventaris-backend/controllers"
	"inventaris-backend/utils"

	"github.com/gofiber/fiber/v2"
)

// SetupDashboardRoutes настраивает маршруты сводки для главного экрана
func SetupDashboardRoutes(app *fiber.App, dashboardController *controllers.DashboardController) {
	dashboard := app.Group("/dashboard", utils.AuthMiddleware)

	// GET /dashboard/stats - сводные показатели (любая роль)
	dashboard.Get("/stats", dashboardController.GetStats)
}
