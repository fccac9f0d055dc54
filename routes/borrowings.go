package routes

import (
	"inventaris-backend/controllers"
	"inventaris-backend/utils"

	"github.com/gofiber/fiber/v2"
)

// SetupBorrowingRoutes настраивает маршруты для выдач во временное пользование
func SetupBorrowingRoutes(app *fiber.App, borrowingController *controllers.BorrowingController) {
	borrowings := app.Group("/borrowings", utils.AuthMiddleware)

	// GET /borrowings - список выдач (любая роль)
	borrowings.Get("/", borrowingController.GetBorrowings)

	// POST /borrowings - оформить выдачу
	borrowings.Post("/", utils.RequirePermission("borrowings.create"), borrowingController.CreateBorrowing)

	// PUT /borrowings/:id/return - закрыть выдачу
	borrowings.Put("/:id/return", utils.RequirePermission("borrowings.return"), borrowingController.ReturnBorrowing)
}
