package routes

import (
	"inventaris-backend/controllers"
	"inventaris-backend/utils"

	"github.com/gofiber/fiber/v2"
)

// SetupStockHistoryRoutes настраивает маршруты журнала движения остатков
func SetupStockHistoryRoutes(app *fiber.App, stockHistoryController *controllers.StockHistoryController) {
	history := app.Group("/stock-history", utils.AuthMiddleware)

	// GET /stock-history - последние записи журнала (любая роль)
	history.Get("/", stockHistoryController.GetStockHistory)
}
